package gutenberg

import (
	"bytes"
	"io"
	"strconv"
)

// A NodeType is the type of a Node.
type NodeType uint32

const (
	BlockNode NodeType = iota + 1
	PhraseNode
)

// String returns a string representation of the NodeType.
func (n NodeType) String() string {
	switch n {
	case BlockNode:
		return "Block Node"
	case PhraseNode:
		return "Phrase Node"
	}
	return "Invalid Node (" + strconv.Itoa(int(n)) + ")"
}

// Node is either a block or a phrase.
//
// A block has a Namespace, a Name, the opaque Attributes payload (nil when the
// marker has none) and its Children in document order. A self-closing block
// never has children.
//
// A phrase has the Content bytes, copied verbatim from the input.
//
// Span is the whole input range consumed by the node. For blocks, OpenTag and
// CloseTag are the ranges of the markers; CloseTag is empty for self-closing
// blocks. The children spans exactly fill the gap between both markers.
// NameSpan and AttributesSpan locate the name and the payload inside
// OpenTag; AttributesSpan is empty at NameSpan.End when there is no payload.
type Node struct {
	Type        NodeType
	Namespace   string
	Name        string
	Attributes  []byte
	Children    []*Node
	Content     []byte
	SelfClosing bool
	Span        Offset
	OpenTag     Offset
	CloseTag    Offset

	NameSpan       Offset
	AttributesSpan Offset
}

// IsBlock is true for block nodes.
func (n *Node) IsBlock() bool {
	return n.Type == BlockNode
}

// IsPhrase is true for phrase nodes.
func (n *Node) IsPhrase() bool {
	return n.Type == PhraseNode
}

// FullName returns "namespace/name" for blocks, and the empty string otherwise.
func (n *Node) FullName() string {
	if n.Type != BlockNode {
		return ""
	}
	return n.Namespace + "/" + n.Name
}

// HasAttributes is true if the opening marker carried an attribute payload.
func (n *Node) HasAttributes() bool {
	return n.Attributes != nil
}

// String returns a compact, single-line representation of the node and its
// descendants.
func (n *Node) String() string {
	var buf bytes.Buffer
	n.writeDebug(&buf)
	return buf.String()
}

func (n *Node) writeDebug(buf *bytes.Buffer) {
	switch n.Type {
	case PhraseNode:
		buf.WriteString("Phrase{")
		buf.WriteString(strconv.Quote(string(n.Content)))
		buf.WriteString("}")
	case BlockNode:
		buf.WriteString("Block{")
		buf.WriteString(n.FullName())
		if n.Attributes != nil {
			buf.WriteString(", attrs=")
			buf.Write(n.Attributes)
		}
		buf.WriteString(", children=[")
		for i, c := range n.Children {
			if i > 0 {
				buf.WriteString(", ")
			}
			c.writeDebug(buf)
		}
		buf.WriteString("]}")
	default:
		buf.WriteString(n.Type.String())
	}
}

// Clone returns a deep copy of the node. The copy does not share any memory
// with the original.
func (n *Node) Clone() *Node {
	m := &Node{
		Type:        n.Type,
		Namespace:   n.Namespace,
		Name:        n.Name,
		Attributes:  bytes.Clone(n.Attributes),
		Content:     bytes.Clone(n.Content),
		SelfClosing: n.SelfClosing,
		Span:        n.Span,
		OpenTag:     n.OpenTag,
		CloseTag:    n.CloseTag,

		NameSpan:       n.NameSpan,
		AttributesSpan: n.AttributesSpan,
	}
	if n.Children != nil {
		m.Children = make([]*Node, len(n.Children))
		for i, c := range n.Children {
			m.Children[i] = c.Clone()
		}
	}
	return m
}

// Walk visits the nodes depth-first in document order. depth is 0 for the
// nodes in the list passed to Walk. If fn returns false the children of that
// node are not visited.
func Walk(nodes []*Node, fn func(n *Node, depth int) bool) {
	walk(nodes, 0, fn)
}

func walk(nodes []*Node, depth int, fn func(n *Node, depth int) bool) {
	for _, n := range nodes {
		if fn(n, depth) && len(n.Children) > 0 {
			walk(n.Children, depth+1, fn)
		}
	}
}

// The indentation string
var aBigIndentationString = bytes.Repeat([]byte(" "), 200)

func indent(n int) []byte {
	if n > len(aBigIndentationString) {
		n = len(aBigIndentationString)
	}
	return aBigIndentationString[:n]
}

// maxTreePhrase is the number of bytes of a phrase shown by WriteTree.
const maxTreePhrase = 40

// WriteTree writes an indented outline of the nodes to w, one node per line.
func WriteTree(w io.Writer, nodes []*Node) error {
	var err error

	Walk(nodes, func(n *Node, depth int) bool {
		if err != nil {
			return false
		}

		line := bytes.NewBuffer(nil)
		line.Write(indent(2 * depth))

		switch n.Type {
		case BlockNode:
			line.WriteString(n.FullName())
			if n.SelfClosing {
				line.WriteString(" /")
			}
			if n.Attributes != nil {
				line.WriteByte(' ')
				line.Write(n.Attributes)
			}
		case PhraseNode:
			content := n.Content
			if len(content) > maxTreePhrase {
				content = content[:maxTreePhrase]
			}
			line.WriteString("#phrase ")
			line.WriteString(strconv.Quote(string(content)))
			if len(n.Content) > maxTreePhrase {
				line.WriteString("...")
			}
		}

		line.WriteByte('\n')
		_, err = w.Write(line.Bytes())
		return true
	})

	return err
}

// Source returns the input bytes consumed by the nodes, in order. Over the
// nodes returned by a parse it reconstructs the whole input.
func Source(src []byte, nodes []*Node) []byte {
	var buf bytes.Buffer
	for _, n := range nodes {
		buf.Write(src[n.Span.Start:n.Span.End])
	}
	return buf.Bytes()
}
