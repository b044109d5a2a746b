package gutenberg

import (
	"strconv"
)

// A TokenType is the type of a Token.
type TokenType uint32

const (
	// EOFToken means that the end of the scanned span was reached.
	EOFToken TokenType = iota
	// PhraseBytes is a maximal run of bytes which are not part of a marker.
	PhraseBytes
	// An OpeningMarkerStart token looks like <!-- wp:ns/name {"a":1} -->.
	OpeningMarkerStart
	// A ClosingMarkerStart token looks like <!-- /wp:ns/name -->.
	ClosingMarkerStart
)

// String returns a string representation of the TokenType.
func (t TokenType) String() string {
	switch t {
	case EOFToken:
		return "EOF"
	case PhraseBytes:
		return "Phrase"
	case OpeningMarkerStart:
		return "OpeningMarker"
	case ClosingMarkerStart:
		return "ClosingMarker"
	}
	return "Invalid(" + strconv.Itoa(int(t)) + ")"
}

// A Terminator is the sequence closing a marker.
type Terminator uint32

const (
	// NoTerminator is the terminator of phrase and EOF tokens.
	NoTerminator Terminator = iota
	// MarkerEnd is the plain "-->".
	MarkerEnd
	// SelfClosingMarkerEnd is "/-->".
	SelfClosingMarkerEnd
)

// String returns the terminator as it appears in the input.
func (t Terminator) String() string {
	switch t {
	case NoTerminator:
		return "None"
	case MarkerEnd:
		return "-->"
	case SelfClosingMarkerEnd:
		return "/-->"
	}
	return "Invalid(" + strconv.Itoa(int(t)) + ")"
}

// An Offset is a half-open byte range [Start, End) of the input.
type Offset struct {
	Start int
	End   int
}

// Len returns the number of bytes in the range.
func (o Offset) Len() int {
	return o.End - o.Start
}

// IsEmpty is true for the zero-length range.
func (o Offset) IsEmpty() bool {
	return o.End <= o.Start
}

// A Token is a classified span of the input. For marker tokens, Span covers
// the whole marker from "<!--" to the end of its terminator, Body is the
// keyword body between "wp:" and the terminator, and End is the terminator
// itself.
type Token struct {
	Type       TokenType
	Span       Offset
	Body       Offset
	Terminator Terminator
	End        Offset
}

// String returns a string representation of the Token.
func (t Token) String() string {
	switch t.Type {
	case EOFToken:
		return "EOF@" + strconv.Itoa(t.Span.Start)
	case PhraseBytes:
		return "Phrase[" + strconv.Itoa(t.Span.Start) + ":" + strconv.Itoa(t.Span.End) + "]"
	case OpeningMarkerStart, ClosingMarkerStart:
		return t.Type.String() + "[" + strconv.Itoa(t.Span.Start) + ":" + strconv.Itoa(t.Span.End) + "]" + t.Terminator.String()
	}
	return "Invalid(" + strconv.Itoa(int(t.Type)) + ")"
}
