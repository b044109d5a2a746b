package gutenberg

import (
	"bytes"
	"errors"
	"io"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// breaking elements end a line of plain text
var breaking = map[atom.Atom]bool{
	atom.Br: true, atom.P: true, atom.Div: true, atom.Li: true,
	atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true,
	atom.Blockquote: true, atom.Pre: true, atom.Figcaption: true, atom.Tr: true,
}

// PlainText returns the readable text of the post: the markers are removed,
// the HTML of the phrases is tokenized and only its text is kept, with
// entities decoded. Block-level elements end a line. nodes must be the result
// of parsing src.
func PlainText(src []byte, nodes []*Node) ([]byte, error) {
	var out bytes.Buffer

	atLineStart := func() bool {
		return out.Len() == 0 || out.Bytes()[out.Len()-1] == '\n'
	}
	newline := func() {
		if !atLineStart() {
			out.WriteByte('\n')
		}
	}

	z := html.NewTokenizer(bytes.NewReader(StripMarkers(src, nodes)))
	skipping := 0

	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return nil, err
			}
			return bytes.TrimSpace(out.Bytes()), nil

		case html.TextToken:
			if skipping > 0 {
				continue
			}
			text := z.Text()
			if atLineStart() {
				text = bytes.TrimLeft(text, " \t\r\n")
			}
			out.Write(text)

		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			if tok.DataAtom == atom.Script || tok.DataAtom == atom.Style {
				if tt == html.StartTagToken {
					skipping++
				}
				continue
			}
			if breaking[tok.DataAtom] {
				newline()
			}

		case html.EndTagToken:
			tok := z.Token()
			if tok.DataAtom == atom.Script || tok.DataAtom == atom.Style {
				if skipping > 0 {
					skipping--
				}
				continue
			}
			if breaking[tok.DataAtom] {
				newline()
			}
		}
	}
}
