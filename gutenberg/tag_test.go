package gutenberg

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// firstTag scans the marker at the start of src and decodes it
func firstTag(src []byte, defaultNamespace string) (Tag, error) {
	tok := NewScanner(src, 0, len(src)).Next()
	return ParseTag(src, tok, defaultNamespace)
}

func TestParseTag(t *testing.T) {
	tests := []struct {
		name             string
		src              string
		defaultNamespace string
		want             Tag
	}{
		{
			name: "Default namespace without attributes",
			src:  "<!-- wp:foo -->",
			want: Tag{Namespace: "core", Name: "foo"},
		},
		{
			name: "Namespace with attributes",
			src:  `<!-- wp:ns/foo {"abc": "xyz"} -->`,
			want: Tag{Namespace: "ns", Name: "foo", Attributes: []byte(`{"abc": "xyz"}`)},
		},
		{
			name: "Self-closing",
			src:  "<!-- wp:foo_bar/baz42 /-->",
			want: Tag{Namespace: "foo_bar", Name: "baz42", SelfClosing: true},
		},
		{
			name: "Self-closing right after the attributes",
			src:  `<!-- wp:foo {"a":1}/-->`,
			want: Tag{Namespace: "core", Name: "foo", Attributes: []byte(`{"a":1}`), SelfClosing: true},
		},
		{
			name: "Extended name characters",
			src:  "<!-- wp:a0b_1c- -->",
			want: Tag{Namespace: "core", Name: "a0b_1c-"},
		},
		{
			name: "Attributes surrounded by whitespace",
			src:  "<!-- wp:foo \t{\"foo\": true} \t\r\n-->",
			want: Tag{Namespace: "core", Name: "foo", Attributes: []byte(`{"foo": true}`)},
		},
		{
			name: "Attributes are opaque",
			src:  "<!-- wp:foo not json at all -->",
			want: Tag{Namespace: "core", Name: "foo", Attributes: []byte("not json at all")},
		},
		{
			name: "Closing",
			src:  "<!-- /wp:ns/foo -->",
			want: Tag{Namespace: "ns", Name: "foo", Closing: true},
		},
		{
			name:             "Custom default namespace",
			src:              "<!-- wp:foo -->",
			defaultNamespace: "custom",
			want:             Tag{Namespace: "custom", Name: "foo"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := firstTag([]byte(tt.src), tt.defaultNamespace)
			if err != nil {
				t.Fatalf("ParseTag() error = %v", err)
			}
			ignoreSpans := cmpopts.IgnoreFields(Tag{}, "NameSpan", "AttributesSpan")
			if diff := cmp.Diff(tt.want, got, ignoreSpans, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("ParseTag() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseTagMalformed(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{name: "Empty name", src: "<!-- wp: -->"},
		{name: "Only whitespace", src: "<!-- wp:  \n -->"},
		{name: "Uppercase", src: "<!-- wp:Foo -->"},
		{name: "Leading digit", src: "<!-- wp:1a -->"},
		{name: "Two slashes", src: "<!-- wp:a/b/c -->"},
		{name: "Empty name after namespace", src: "<!-- wp:ns/ -->"},
		{name: "Empty namespace", src: "<!-- wp:/foo -->"},
		{name: "Attributes glued to the name", src: `<!-- wp:foo{"a":1} -->`},
		{name: "Closing with attributes", src: "<!-- /wp:foo {} -->"},
		{name: "Self-closing closing marker", src: "<!-- /wp:foo /-->"},
		{name: "Self-close mark glued to the name", src: "<!-- wp:foo/-->"},
		{name: "Self-close mark glued to the namespace", src: "<!-- wp:ns/-->"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := firstTag([]byte(tt.src), "")
			if !errors.Is(err, ErrMalformedTag) {
				t.Fatalf("ParseTag() error = %v, want %v", err, ErrMalformedTag)
			}
			var pe *ParseError
			if !errors.As(err, &pe) || pe.Offset != 0 || pe.Kind != MalformedTag {
				t.Errorf("ParseTag() error = %#v, want MalformedTag at offset 0", err)
			}
		})
	}
}

func TestParseTagSpans(t *testing.T) {
	tests := []struct {
		name           string
		src            string
		wantName       string
		wantAttributes string
		wantEmptyAt    int
	}{
		{
			name:           "With attributes",
			src:            `<!-- wp:ns/foo {"a":1} -->`,
			wantName:       "ns/foo",
			wantAttributes: `{"a":1}`,
		},
		{
			name:        "Without attributes",
			src:         "<!--\twp: foo -->",
			wantName:    "foo",
			wantEmptyAt: 12,
		},
		{
			name:           "Attributes ending like the terminator",
			src:            "<!-- wp:a / /-->",
			wantName:       "a",
			wantAttributes: "/",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := []byte(tt.src)
			got, err := firstTag(src, "")
			if err != nil {
				t.Fatalf("ParseTag() error = %v", err)
			}
			if name := string(src[got.NameSpan.Start:got.NameSpan.End]); name != tt.wantName {
				t.Errorf("NameSpan gives %q, want %q", name, tt.wantName)
			}
			attrs := string(src[got.AttributesSpan.Start:got.AttributesSpan.End])
			if attrs != tt.wantAttributes || attrs != string(got.Attributes) {
				t.Errorf("AttributesSpan gives %q, want %q", attrs, tt.wantAttributes)
			}
			if len(tt.wantAttributes) == 0 && got.AttributesSpan != (Offset{tt.wantEmptyAt, tt.wantEmptyAt}) {
				t.Errorf("AttributesSpan = %v, want empty at %d", got.AttributesSpan, tt.wantEmptyAt)
			}
		})
	}
}

func TestParseTagRejectsPhrase(t *testing.T) {
	src := []byte("foo")
	tok := NewScanner(src, 0, len(src)).Next()
	if _, err := ParseTag(src, tok, ""); !errors.Is(err, ErrMalformedTag) {
		t.Errorf("ParseTag() error = %v, want %v", err, ErrMalformedTag)
	}
}

func TestTagSameBlock(t *testing.T) {
	a := Tag{Namespace: "core", Name: "a"}
	if !a.SameBlock(Tag{Namespace: "core", Name: "a", Closing: true}) {
		t.Errorf("SameBlock() = false for the closing marker of the same block")
	}
	if a.SameBlock(Tag{Namespace: "x", Name: "a"}) {
		t.Errorf("SameBlock() = true for a different namespace")
	}
	if got := a.FullName(); got != "core/a" {
		t.Errorf("FullName() = %q, want %q", got, "core/a")
	}
}
