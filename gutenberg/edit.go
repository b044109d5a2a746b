package gutenberg

import (
	"bytes"
	"encoding/json"

	"github.com/hesusruiz/gutenberg/sliceedit"
)

// StripMarkers returns a copy of src without any block marker. What is left
// is the concatenation of all the phrases, in document order. nodes must be
// the result of parsing src.
func StripMarkers(src []byte, nodes []*Node) []byte {
	b := sliceedit.NewBuffer(src)

	Walk(nodes, func(n *Node, _ int) bool {
		if n.Type == BlockNode {
			b.Delete(n.OpenTag.Start, n.OpenTag.End)
			b.Delete(n.CloseTag.Start, n.CloseTag.End)
		}
		return true
	})

	return b.Bytes()
}

// RewriteAttributes returns a copy of src where the attribute payload of the
// blocks is replaced by what fn returns. fn is called for every block in
// document order; when it returns false the block is left untouched.
// A returned nil payload removes the attributes of the block, and blocks
// without attributes may get them. nodes must be the result of parsing src.
func RewriteAttributes(src []byte, nodes []*Node, fn func(n *Node) (attrs []byte, ok bool)) []byte {
	b := sliceedit.NewBuffer(src)

	Walk(nodes, func(n *Node, _ int) bool {
		if n.Type != BlockNode {
			return true
		}

		attrs, ok := fn(n)
		if !ok {
			return true
		}

		name, payload := n.NameSpan, n.AttributesSpan
		switch {
		case attrs == nil && n.Attributes != nil:
			// Remove the payload together with the whitespace before it
			b.Delete(name.End, payload.End)
		case attrs != nil && n.Attributes != nil:
			b.Replace(payload.Start, payload.End, attrs)
		case attrs != nil:
			b.Insert(name.End, append([]byte{' '}, attrs...))
		}

		return true
	})

	return b.Bytes()
}

// CompactAttributes returns a copy of src where every attribute payload which
// is valid JSON is written without insignificant whitespace.
func CompactAttributes(src []byte, nodes []*Node) []byte {
	return RewriteAttributes(src, nodes, func(n *Node) ([]byte, bool) {
		if n.Attributes == nil {
			return nil, false
		}
		var buf bytes.Buffer
		if err := json.Compact(&buf, n.Attributes); err != nil {
			return nil, false
		}
		if bytes.Equal(buf.Bytes(), n.Attributes) {
			return nil, false
		}
		return buf.Bytes(), true
	})
}
