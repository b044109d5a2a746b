package gutenberg

import (
	"errors"
	"fmt"
	"strconv"
)

// An ErrorKind classifies a ParseError.
type ErrorKind uint32

const (
	// MalformedTag means a recognized marker does not yield a valid block name.
	MalformedTag ErrorKind = iota + 1
	// UnmatchedOpeningTag means an opening marker has no closing marker.
	UnmatchedOpeningTag
	// UnexpectedClosingTag means a closing marker has no enclosing block.
	UnexpectedClosingTag
	// NestingTooDeep means blocks are nested deeper than the configured maximum.
	NestingTooDeep
)

func (k ErrorKind) String() string {
	switch k {
	case MalformedTag:
		return "MalformedTag"
	case UnmatchedOpeningTag:
		return "UnmatchedOpeningTag"
	case UnexpectedClosingTag:
		return "UnexpectedClosingTag"
	case NestingTooDeep:
		return "NestingTooDeep"
	}
	return "Invalid(" + strconv.Itoa(int(k)) + ")"
}

var (
	ErrMalformedTag         = errors.New("malformed block marker")
	ErrUnmatchedOpeningTag  = errors.New("opening block marker without closing marker")
	ErrUnexpectedClosingTag = errors.New("closing block marker without opening marker")
	ErrNestingTooDeep       = errors.New("blocks nested too deeply")
)

func (k ErrorKind) sentinel() error {
	switch k {
	case MalformedTag:
		return ErrMalformedTag
	case UnmatchedOpeningTag:
		return ErrUnmatchedOpeningTag
	case UnexpectedClosingTag:
		return ErrUnexpectedClosingTag
	case NestingTooDeep:
		return ErrNestingTooDeep
	}
	return nil
}

// ParseError is the single terminal error of a parse. Offset is the byte
// offset in the input where it was detected. Line and Column are 1-based and
// are filled in by the parser entry points.
type ParseError struct {
	Kind     ErrorKind
	Offset   int
	Filename string
	Line     int
	Column   int
	Msg      string
}

func newParseError(kind ErrorKind, offset int, msg string) *ParseError {
	return &ParseError{Kind: kind, Offset: offset, Msg: msg}
}

func (e *ParseError) Error() string {
	msg := e.Kind.String()
	if sentinel := e.Kind.sentinel(); sentinel != nil {
		msg = sentinel.Error()
	}
	if len(e.Msg) > 0 {
		msg = msg + ": " + e.Msg
	}
	if e.Line == 0 {
		return fmt.Sprintf("offset %d: %s", e.Offset, msg)
	}
	filename := e.Filename
	if len(filename) == 0 {
		filename = "input"
	}
	return fmt.Sprintf("%s:%d:%d: %s", filename, e.Line, e.Column, msg)
}

// Unwrap allows errors.Is(err, ErrMalformedTag) and friends.
func (e *ParseError) Unwrap() error {
	return e.Kind.sentinel()
}

// locate fills in the position of the error in src.
func (e *ParseError) locate(fileName string, src []byte) *ParseError {
	e.Filename = fileName
	e.Line, e.Column = position(src, e.Offset)
	return e
}
