package gutenberg

// item is a token of the input. For markers it carries the decoded tag, or
// the error which prevented decoding it.
type item struct {
	tok Token
	tag Tag
	err error
}

// scanItems tokenizes the whole src once and decodes its markers.
func scanItems(src []byte, defaultNamespace string) []item {
	var items []item

	s := NewScanner(src, 0, len(src))
	for tok := s.Next(); tok.Type != EOFToken; tok = s.Next() {
		it := item{tok: tok}
		if tok.Type == OpeningMarkerStart || tok.Type == ClosingMarkerStart {
			it.tag, it.err = ParseTag(src, tok, defaultNamespace)
		}
		items = append(items, it)
	}

	return items
}

// matchMarkers pairs every non-self-closing opening marker with its closing
// marker, in a single pass over the tokens of the whole input. It returns,
// for each item, the index of its pair, or -1 when it has none.
//
// Block names are not unique inside a document, so the pairing is structural
// and done separately for every block name: each one keeps a stack of the
// opening markers still waiting for a closing marker, and a closing marker
// pairs with the innermost of them. This is the same as starting a depth
// counter at 1 after the opening marker, growing it with every paired
// opening marker of the same block and shrinking it with every closing
// marker of the same block, until it reaches 0.
//
// Self-closing markers and markers of other blocks do not take part.
// Markers which can not be decoded can not name any block either, so they
// are skipped here and reported by the parser when it reaches them.
func matchMarkers(items []item) []int {
	pairs := make([]int, len(items))
	open := map[string][]int{}

	for i, m := range items {
		pairs[i] = -1
		if m.err != nil {
			continue
		}

		switch m.tok.Type {

		case OpeningMarkerStart:
			if !m.tag.SelfClosing {
				key := m.tag.FullName()
				open[key] = append(open[key], i)
			}

		case ClosingMarkerStart:
			key := m.tag.FullName()
			stack := open[key]
			if len(stack) == 0 {
				continue
			}
			j := stack[len(stack)-1]
			open[key] = stack[:len(stack)-1]
			pairs[i] = j
			pairs[j] = i

		}
	}

	return pairs
}
