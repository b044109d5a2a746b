package gutenberg

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrNoAttributes is returned when decoding the attributes of a block whose
// marker has none.
var ErrNoAttributes = errors.New("block has no attributes")

// DecodeAttributes decodes the attribute payload of a block as JSON into v.
// This is a separate stage on top of the parse: the parser itself never
// looks inside the payload.
func (n *Node) DecodeAttributes(v any) error {
	if n.Type != BlockNode || n.Attributes == nil {
		return ErrNoAttributes
	}
	if err := json.Unmarshal(n.Attributes, v); err != nil {
		return fmt.Errorf("attributes of %s at offset %d: %w", n.FullName(), n.OpenTag.Start, err)
	}
	return nil
}

// AttributesMap decodes the attribute payload as a JSON object. A block
// without attributes yields an empty map.
func (n *Node) AttributesMap() (map[string]any, error) {
	attrs := map[string]any{}
	if n.Attributes == nil {
		return attrs, nil
	}
	if err := n.DecodeAttributes(&attrs); err != nil {
		return nil, err
	}
	return attrs, nil
}

type jsonBlock struct {
	BlockName   string          `json:"blockName"`
	Attrs       json.RawMessage `json:"attrs"`
	InnerBlocks []jsonBlock     `json:"innerBlocks"`
	InnerHTML   string          `json:"innerHTML"`
}

type jsonPhrase struct {
	Attrs     json.RawMessage `json:"attrs"`
	InnerHTML string          `json:"innerHTML"`
}

var (
	jsonNull        = json.RawMessage("null")
	jsonEmptyObject = json.RawMessage("{}")
)

// rawAttributes returns the payload as JSON. A payload which is not valid
// JSON is turned into a JSON string.
func rawAttributes(attrs []byte) (json.RawMessage, error) {
	if attrs == nil {
		return jsonNull, nil
	}
	if json.Valid(attrs) {
		return json.RawMessage(attrs), nil
	}
	quoted, err := json.Marshal(string(attrs))
	if err != nil {
		return nil, err
	}
	return json.RawMessage(quoted), nil
}

func toJSONBlock(n *Node) (jsonBlock, error) {

	attrs, err := rawAttributes(n.Attributes)
	if err != nil {
		return jsonBlock{}, err
	}

	b := jsonBlock{
		BlockName:   n.FullName(),
		Attrs:       attrs,
		InnerBlocks: []jsonBlock{},
	}

	// Inner blocks are listed apart, and the phrases are joined into innerHTML
	var html []byte
	for _, c := range n.Children {
		switch c.Type {
		case BlockNode:
			inner, err := toJSONBlock(c)
			if err != nil {
				return jsonBlock{}, err
			}
			b.InnerBlocks = append(b.InnerBlocks, inner)
		case PhraseNode:
			html = append(html, c.Content...)
		}
	}
	b.InnerHTML = string(html)

	return b, nil
}

// WriteJSON writes the nodes as a JSON array. Blocks are written as
// {"blockName","attrs","innerBlocks","innerHTML"} and phrases as
// {"attrs":{},"innerHTML"}.
func WriteJSON(w io.Writer, nodes []*Node) error {

	out := make([]any, 0, len(nodes))
	for _, n := range nodes {
		switch n.Type {
		case BlockNode:
			b, err := toJSONBlock(n)
			if err != nil {
				return err
			}
			out = append(out, b)
		case PhraseNode:
			out = append(out, jsonPhrase{Attrs: jsonEmptyObject, InnerHTML: string(n.Content)})
		}
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(out)
}
