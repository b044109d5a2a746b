package gutenberg

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func scanAll(src []byte, start int, end int) []Token {
	var toks []Token
	s := NewScanner(src, start, end)
	for {
		tok := s.Next()
		toks = append(toks, tok)
		if tok.Type == EOFToken {
			return toks
		}
	}
}

func TestScanner(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []Token
	}{
		{
			name: "Empty",
			src:  "",
			want: []Token{{Type: EOFToken}},
		},
		{
			name: "Only phrase",
			src:  "foobar",
			want: []Token{
				{Type: PhraseBytes, Span: Offset{0, 6}},
				{Type: EOFToken, Span: Offset{6, 6}},
			},
		},
		{
			name: "Markers and phrases",
			src:  "ab<!-- wp:x /-->cd<!-- /wp:y -->",
			want: []Token{
				{Type: PhraseBytes, Span: Offset{0, 2}},
				{Type: OpeningMarkerStart, Span: Offset{2, 16}, Body: Offset{10, 12}, Terminator: SelfClosingMarkerEnd, End: Offset{12, 16}},
				{Type: PhraseBytes, Span: Offset{16, 18}},
				{Type: ClosingMarkerStart, Span: Offset{18, 32}, Body: Offset{27, 29}, Terminator: MarkerEnd, End: Offset{29, 32}},
				{Type: EOFToken, Span: Offset{32, 32}},
			},
		},
		{
			name: "Whitespace after comment open",
			src:  "<!--\n\twp:x-->",
			want: []Token{
				{Type: OpeningMarkerStart, Span: Offset{0, 13}, Body: Offset{9, 10}, Terminator: MarkerEnd, End: Offset{10, 13}},
				{Type: EOFToken, Span: Offset{13, 13}},
			},
		},
		{
			name: "Slash glued to the name is not a self-close mark",
			src:  "<!-- wp:ns/-->",
			want: []Token{
				{Type: OpeningMarkerStart, Span: Offset{0, 14}, Body: Offset{8, 11}, Terminator: MarkerEnd, End: Offset{11, 14}},
				{Type: EOFToken, Span: Offset{14, 14}},
			},
		},
		{
			name: "Slash after the attributes is a self-close mark",
			src:  "<!-- wp:a {}/-->",
			want: []Token{
				{Type: OpeningMarkerStart, Span: Offset{0, 16}, Body: Offset{8, 12}, Terminator: SelfClosingMarkerEnd, End: Offset{12, 16}},
				{Type: EOFToken, Span: Offset{16, 16}},
			},
		},
		{
			name: "Regular comment is a phrase",
			src:  "<p><!-- more --></p>",
			want: []Token{
				{Type: PhraseBytes, Span: Offset{0, 20}},
				{Type: EOFToken, Span: Offset{20, 20}},
			},
		},
		{
			name: "Unterminated marker is a phrase",
			src:  "foo<!-- wp:bar",
			want: []Token{
				{Type: PhraseBytes, Span: Offset{0, 14}},
				{Type: EOFToken, Span: Offset{14, 14}},
			},
		},
		{
			name: "Marker interrupted by another marker",
			src:  "a<!-- wp:x <!-- wp:y /-->",
			want: []Token{
				{Type: PhraseBytes, Span: Offset{0, 11}},
				{Type: OpeningMarkerStart, Span: Offset{11, 25}, Body: Offset{19, 21}, Terminator: SelfClosingMarkerEnd, End: Offset{21, 25}},
				{Type: EOFToken, Span: Offset{25, 25}},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scanAll([]byte(tt.src), 0, len(tt.src))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Scanner mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestScannerBoundedSpan(t *testing.T) {
	src := []byte("ab<!-- wp:x /-->")

	// The terminator lies beyond the end of the span
	got := scanAll(src, 2, 10)
	want := []Token{
		{Type: PhraseBytes, Span: Offset{2, 10}},
		{Type: EOFToken, Span: Offset{10, 10}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Scanner mismatch (-want +got):\n%s", diff)
	}
}

func TestScannerPeekDoesNotAdvance(t *testing.T) {
	src := []byte("x<!-- wp:a /-->")
	s := NewScanner(src, 0, len(src))

	first := s.Peek()
	if s.Pos() != 0 {
		t.Fatalf("Peek() moved the cursor to %d", s.Pos())
	}
	if got := s.Next(); got != first {
		t.Errorf("Next() = %v, want %v", got, first)
	}
	if s.Pos() != 1 {
		t.Errorf("Pos() = %d, want 1", s.Pos())
	}
}

func TestTokenString(t *testing.T) {
	tok := Token{Type: OpeningMarkerStart, Span: Offset{2, 16}, Terminator: SelfClosingMarkerEnd}
	if got, want := tok.String(), "OpeningMarker[2:16]/-->"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got, want := TokenType(42).String(), "Invalid(42)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
