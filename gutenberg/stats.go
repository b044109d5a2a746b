package gutenberg

// Stats counts the nodes of a tree.
type Stats struct {
	Blocks      int
	SelfClosing int
	Phrases     int
	PhraseBytes int
	// MaxDepth is the deepest nesting of a node, 1 for top-level nodes
	MaxDepth int
	// Names counts the blocks by "namespace/name"
	Names map[string]int
}

// Summarize walks the tree and returns its Stats.
func Summarize(nodes []*Node) Stats {
	st := Stats{Names: map[string]int{}}

	Walk(nodes, func(n *Node, depth int) bool {
		if depth+1 > st.MaxDepth {
			st.MaxDepth = depth + 1
		}
		switch n.Type {
		case BlockNode:
			st.Blocks++
			st.Names[n.FullName()]++
			if n.SelfClosing {
				st.SelfClosing++
			}
		case PhraseNode:
			st.Phrases++
			st.PhraseBytes += len(n.Content)
		}
		return true
	})

	return st
}
