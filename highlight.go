package main

import (
	"io"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// lexerFor maps an output format to the name of a chroma lexer
var lexerFor = map[string]string{
	formatJSON:   "json",
	formatSource: "html",
	formatText:   "html",
	formatD2:     "d2",
}

// highlight writes out to w with terminal colors
func highlight(w io.Writer, out []byte, format string, styleName string) error {

	contents := string(out)

	// Determine lexer.
	l := lexers.Get(lexerFor[format])
	if l == nil {
		l = lexers.Analyse(contents)
	}
	if l == nil {
		l = lexers.Fallback
	}
	l = chroma.Coalesce(l)

	// Unknown styles give the fallback style
	s := styles.Get(styleName)

	f := formatters.Get("terminal256")
	if f == nil {
		f = formatters.Fallback
	}

	it, err := l.Tokenise(nil, contents)
	if err != nil {
		return err
	}

	return f.Format(w, s, it)
}
