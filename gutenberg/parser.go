// Package gutenberg parses posts made of blocks delimited by HTML comments,
// like
//
//	<!-- wp:core/paragraph {"align":"center"} --><p>Hi</p><!-- /wp:core/paragraph -->
//
// into an ordered tree of blocks and phrases. Phrases are the bytes between
// blocks, kept verbatim. Block attributes are kept as an opaque payload.
package gutenberg

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultMaxDepth is the default limit for the nesting of paired blocks.
const DefaultMaxDepth = 1024

// Options tune a Parser. The zero value is valid.
type Options struct {
	// DefaultNamespace is used for blocks without "namespace/". Defaults to "core".
	DefaultNamespace string

	// MaxDepth limits how deeply paired blocks can be nested. Defaults to DefaultMaxDepth.
	MaxDepth int

	// Logger receives debug traces. Defaults to a no-op logger.
	Logger *zap.SugaredLogger
}

// Parser builds the block tree of one input. It is not safe for concurrent
// use, but independent Parsers do not share any state.
type Parser struct {
	// the name of the file being processed, for error messages
	fileName string

	// private copy of the input; all nodes borrow from it
	src []byte

	defaultNamespace string
	maxDepth         int
	log              *zap.SugaredLogger
	debug            bool

	// the tokens of the whole input and the index of the pair of each marker
	items []item
	pairs []int
}

// NewParser returns a parser for src. The input is copied, so the caller may
// reuse src once NewParser returns. fileName is for error messages only.
func NewParser(fileName string, src []byte, opts *Options) *Parser {
	if opts == nil {
		opts = &Options{}
	}

	p := &Parser{
		fileName:         fileName,
		src:              append([]byte(nil), src...),
		defaultNamespace: opts.DefaultNamespace,
		maxDepth:         opts.MaxDepth,
		log:              opts.Logger,
	}

	if len(p.defaultNamespace) == 0 {
		p.defaultNamespace = DefaultNamespace
	}
	if p.maxDepth <= 0 {
		p.maxDepth = DefaultMaxDepth
	}
	if p.log == nil {
		p.log = zap.NewNop().Sugar()
	}
	p.debug = p.log.Desugar().Core().Enabled(zapcore.DebugLevel)

	return p
}

// Source returns the parser's copy of the input.
func (p *Parser) Source() []byte {
	return p.src
}

// Parse builds the node list of the whole input. Any error aborts the parse
// and no partial tree is returned. An empty input yields an empty list.
func (p *Parser) Parse() ([]*Node, error) {

	p.scan()
	nodes, err := p.parseList(0, len(p.items), 0)
	p.items, p.pairs = nil, nil

	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.locate(p.fileName, p.src)
		}
		p.log.Debugw("parse failed", "file", p.fileName, "error", err)
		return nil, err
	}

	return nodes, nil
}

// Parse parses src with the default options.
func Parse(src []byte) ([]*Node, error) {
	return NewParser("", src, nil).Parse()
}

// Document is a parsed input together with its source.
type Document struct {
	FileName string
	Source   []byte
	Nodes    []*Node
}

// ParseFromBytes uses a byte array as the source.
// fileName is for logging/tracing purposes.
func ParseFromBytes(fileName string, src []byte, opts *Options) (*Document, error) {

	p := NewParser(fileName, src, opts)

	nodes, err := p.Parse()
	if err != nil {
		return nil, err
	}

	return &Document{FileName: fileName, Source: p.src, Nodes: nodes}, nil
}

// ParseFromFile reads a file and parses it in memory.
func ParseFromFile(fileName string, opts *Options) (*Document, error) {

	src, err := os.ReadFile(fileName)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", fileName, err)
	}

	return ParseFromBytes(fileName, src, opts)
}

// scan tokenizes the whole input once, decodes its markers and pairs them.
func (p *Parser) scan() {
	p.items = scanItems(p.src, p.defaultNamespace)
	p.pairs = matchMarkers(p.items)
}

// parseList builds the nodes of p.items[start:end]. depth is the number of
// paired blocks enclosing them.
func (p *Parser) parseList(start int, end int, depth int) ([]*Node, error) {
	var nodes []*Node

	for i := start; i < end; i++ {
		it := p.items[i]

		switch it.tok.Type {

		case PhraseBytes:
			span := it.tok.Span
			if p.debug {
				p.traceDegraded(span)
			}
			nodes = append(nodes, &Node{
				Type:    PhraseNode,
				Content: p.src[span.Start:span.End:span.End],
				Span:    span,
			})

		case ClosingMarkerStart:
			// Closing markers are consumed only together with their opening marker
			if it.err != nil {
				return nil, it.err
			}
			return nil, newParseError(UnexpectedClosingTag, it.tok.Span.Start, "closing marker for "+it.tag.FullName())

		case OpeningMarkerStart:
			block, last, err := p.parseBlock(i, end, depth)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, block)
			i = last

		}
	}

	return nodes, nil
}

// parseBlock builds the block opened by p.items[i], whose closing marker
// must come before p.items[end]. It returns the index of the last item of
// the block.
func (p *Parser) parseBlock(i int, end int, depth int) (*Node, int, error) {

	it := p.items[i]
	if it.err != nil {
		return nil, 0, it.err
	}
	tok, tag := it.tok, it.tag

	block := &Node{
		Type:           BlockNode,
		Namespace:      tag.Namespace,
		Name:           tag.Name,
		Attributes:     tag.Attributes,
		SelfClosing:    tag.SelfClosing,
		Span:           tok.Span,
		OpenTag:        tok.Span,
		NameSpan:       tag.NameSpan,
		AttributesSpan: tag.AttributesSpan,
	}

	if tag.SelfClosing {
		if p.debug {
			p.log.Debugw("self-closing block", "name", tag.FullName(), "offset", tok.Span.Start)
		}
		return block, i, nil
	}

	if depth+1 > p.maxDepth {
		return nil, 0, newParseError(NestingTooDeep, tok.Span.Start, fmt.Sprintf("more than %d levels", p.maxDepth))
	}

	// The pair must lie inside the enclosing block
	j := p.pairs[i]
	if j < 0 || j >= end {
		return nil, 0, newParseError(UnmatchedOpeningTag, tok.Span.Start, "no closing marker for "+tag.FullName())
	}
	closing := p.items[j].tok

	if p.debug {
		p.log.Debugw("block", "name", tag.FullName(), "offset", tok.Span.Start, "closing", closing.Span.Start, "depth", depth)
	}

	// The children are exactly the items between both markers
	children, err := p.parseList(i+1, j, depth+1)
	if err != nil {
		return nil, 0, err
	}

	block.Children = children
	block.CloseTag = closing.Span
	block.Span = Offset{tok.Span.Start, closing.Span.End}

	return block, j, nil
}

// traceDegraded logs the marker-looking starts inside a phrase. Phrases do
// not contain markers, so any of them was rejected by the scanner.
func (p *Parser) traceDegraded(span Offset) {
	s := NewScanner(p.src, span.Start, span.End)
	for pos := span.Start; pos < span.End; {
		next := s.nextKeyword(pos)
		if next < 0 {
			return
		}
		p.log.Debugw("unterminated marker kept as phrase", "offset", next)
		pos = next + 1
	}
}
