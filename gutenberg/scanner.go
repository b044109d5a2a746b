package gutenberg

import (
	"bytes"
)

// Scanner classifies a span of the input into phrase runs and block markers.
// Its only state is the cursor. Marker recognition uses bounded lookahead: a
// marker-looking start which does not reach its "-->" before the end of the
// span, or before the next marker start, is not a marker and its bytes are
// returned as part of a phrase.
type Scanner struct {
	src []byte
	pos int
	end int
}

// NewScanner returns a Scanner over src[start:end]. Offsets in the returned
// tokens are relative to src.
func NewScanner(src []byte, start int, end int) *Scanner {
	if end > len(src) {
		end = len(src)
	}
	if start > end {
		start = end
	}
	return &Scanner{src: src, pos: start, end: end}
}

// Pos returns the cursor.
func (s *Scanner) Pos() int {
	return s.pos
}

// Seek moves the cursor to pos, which must be inside the scanned span.
func (s *Scanner) Seek(pos int) {
	if pos > s.end {
		pos = s.end
	}
	s.pos = pos
}

// Next returns the token at the cursor and advances past it.
func (s *Scanner) Next() Token {
	tok := s.Peek()
	s.pos = tok.Span.End
	return tok
}

// Peek returns the token at the cursor without advancing.
func (s *Scanner) Peek() Token {

	if s.pos >= s.end {
		return Token{Type: EOFToken, Span: Offset{s.pos, s.pos}}
	}

	// A marker right at the cursor
	if tok, ok := s.markerAt(s.pos); ok {
		return tok
	}

	// Otherwise a phrase, extended up to the next confirmed marker
	start := s.pos
	i := start + 1
	for i < s.end {
		idx := bytes.Index(s.src[i:s.end], []byte(commentOpen))
		if idx < 0 {
			break
		}
		candidate := i + idx
		if _, ok := s.markerAt(candidate); ok {
			return Token{Type: PhraseBytes, Span: Offset{start, candidate}}
		}
		i = candidate + 1
	}

	return Token{Type: PhraseBytes, Span: Offset{start, s.end}}
}

// keywordAt checks for "<!--", optional whitespace and "wp:" or "/wp:" at pos.
// It returns the offset just after the keyword.
func (s *Scanner) keywordAt(pos int) (kwEnd int, typ TokenType, ok bool) {

	if !bytes.HasPrefix(s.src[pos:s.end], []byte(commentOpen)) {
		return 0, EOFToken, false
	}

	i := skipWhiteSpace(s.src, pos+len(commentOpen), s.end)
	rest := s.src[i:s.end]

	switch {
	case bytes.HasPrefix(rest, []byte(openingKeyword)):
		return i + len(openingKeyword), OpeningMarkerStart, true
	case bytes.HasPrefix(rest, []byte(closingKeyword)):
		return i + len(closingKeyword), ClosingMarkerStart, true
	}

	return 0, EOFToken, false
}

// nextKeyword returns the offset of the first marker start at or after pos,
// or -1 if there is none before the end of the span.
func (s *Scanner) nextKeyword(pos int) int {
	for pos < s.end {
		idx := bytes.Index(s.src[pos:s.end], []byte(commentOpen))
		if idx < 0 {
			return -1
		}
		if _, _, ok := s.keywordAt(pos + idx); ok {
			return pos + idx
		}
		pos = pos + idx + 1
	}
	return -1
}

// markerAt recognizes a complete marker starting at pos.
func (s *Scanner) markerAt(pos int) (Token, bool) {

	kwEnd, typ, ok := s.keywordAt(pos)
	if !ok {
		return Token{}, false
	}

	// The terminator must come before any other marker start
	limit := s.end
	if next := s.nextKeyword(kwEnd); next >= 0 {
		limit = next
	}

	idx := bytes.Index(s.src[kwEnd:limit], []byte(commentClose))
	if idx < 0 {
		return Token{}, false
	}
	termStart := kwEnd + idx
	termEnd := termStart + len(commentClose)

	tok := Token{
		Type:       typ,
		Span:       Offset{pos, termEnd},
		Body:       Offset{kwEnd, termStart},
		Terminator: MarkerEnd,
		End:        Offset{termStart, termEnd},
	}

	// A '/' right before "-->" makes it self-closing, unless it is glued to
	// the block name: "wp:ns/-->" names the block "ns/" instead
	if termStart > kwEnd && s.src[termStart-1] == selfCloseMarker && !s.gluedToName(kwEnd, termStart-1) {
		tok.Terminator = SelfClosingMarkerEnd
		tok.Body.End = termStart - 1
		tok.End.Start = termStart - 1
	}

	return tok, true
}

// gluedToName is true when src[start:pos] has no whitespace after the first
// non-whitespace byte, that is, when pos is still inside the block name.
func (s *Scanner) gluedToName(start int, pos int) bool {
	i := skipWhiteSpace(s.src, start, pos)
	if i == pos {
		return true
	}
	for ; i < pos; i++ {
		if isWhiteSpace(s.src[i]) {
			return false
		}
	}
	return true
}
