package gutenberg

import (
	"bytes"
)

// DefaultNamespace is the namespace of blocks whose marker has no "ns/" prefix.
const DefaultNamespace = "core"

// Tag is the decoded content of a block marker. NameSpan is the range of
// the name as written, with its namespace if any. AttributesSpan is the
// range of the payload, or the empty range at NameSpan.End when there is none.
type Tag struct {
	Namespace      string
	Name           string
	Attributes     []byte
	SelfClosing    bool
	Closing        bool
	NameSpan       Offset
	AttributesSpan Offset
}

// FullName returns "namespace/name".
func (t Tag) FullName() string {
	return t.Namespace + "/" + t.Name
}

// SameBlock is true when both tags name the same kind of block.
func (t Tag) SameBlock(other Tag) bool {
	return t.Namespace == other.Namespace && t.Name == other.Name
}

// ParseTag decodes the marker token tok found in src. The keyword body is
// split on its first whitespace: the left part is the block name, optionally
// prefixed by "namespace/", and the rest, if any, is the opaque attribute
// payload. The payload is not interpreted in any way.
func ParseTag(src []byte, tok Token, defaultNamespace string) (Tag, error) {

	if tok.Type != OpeningMarkerStart && tok.Type != ClosingMarkerStart {
		return Tag{}, newParseError(MalformedTag, tok.Span.Start, "not a marker: "+tok.String())
	}
	if len(defaultNamespace) == 0 {
		defaultNamespace = DefaultNamespace
	}

	tag := Tag{
		Closing:     tok.Type == ClosingMarkerStart,
		SelfClosing: tok.Terminator == SelfClosingMarkerEnd,
	}

	// Trim the body, keeping it inside the source buffer
	start := skipWhiteSpace(src, tok.Body.Start, tok.Body.End)
	end := trimRightWhiteSpace(src, start, tok.Body.End)
	body := src[start:end:end]

	nameSpec, rest := readWord(body)
	if len(nameSpec) == 0 {
		return Tag{}, newParseError(MalformedTag, tok.Span.Start, "empty block name")
	}
	tag.NameSpan = Offset{start, start + len(nameSpec)}

	// rest is a suffix of body
	tag.AttributesSpan = Offset{end - len(rest), end}
	if len(rest) == 0 {
		tag.AttributesSpan = Offset{tag.NameSpan.End, tag.NameSpan.End}
	}

	// The namespace is optional
	if i := bytes.IndexByte(nameSpec, namespaceMarker); i >= 0 {
		namespace := nameSpec[:i]
		name := nameSpec[i+1:]
		if !isNamePart(namespace) {
			return Tag{}, newParseError(MalformedTag, tok.Span.Start, "invalid block namespace: "+string(namespace))
		}
		if !isNamePart(name) {
			return Tag{}, newParseError(MalformedTag, tok.Span.Start, "invalid block name: "+string(name))
		}
		tag.Namespace = string(namespace)
		tag.Name = string(name)
	} else {
		if !isNamePart(nameSpec) {
			return Tag{}, newParseError(MalformedTag, tok.Span.Start, "invalid block name: "+string(nameSpec))
		}
		tag.Namespace = defaultNamespace
		tag.Name = string(nameSpec)
	}

	if tag.Closing {
		// Closing markers carry only the name
		if tag.SelfClosing {
			return Tag{}, newParseError(MalformedTag, tok.Span.Start, "self-closing closing marker for "+tag.FullName())
		}
		if len(rest) > 0 {
			return Tag{}, newParseError(MalformedTag, tok.Span.Start, "attributes in closing marker for "+tag.FullName())
		}
		return tag, nil
	}

	if len(rest) > 0 {
		tag.Attributes = rest
	}

	return tag, nil
}
