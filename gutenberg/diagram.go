package gutenberg

import (
	"context"
	"fmt"
	"strings"

	"oss.terrastruct.com/d2/d2graph"
	"oss.terrastruct.com/d2/d2layouts/d2dagrelayout"
	"oss.terrastruct.com/d2/d2lib"
	"oss.terrastruct.com/d2/d2renderers/d2svg"
	"oss.terrastruct.com/d2/d2themes/d2themescatalog"
	"oss.terrastruct.com/d2/lib/textmeasure"
)

// DiagramSource returns a D2 diagram of the tree: a "post" root connected to
// every top-level node, and every block connected to its children.
// Labels only carry names and sizes, never phrase or attribute text.
func DiagramSource(nodes []*Node) string {
	var sb strings.Builder

	sb.WriteString("direction: right\n")
	sb.WriteString("post: \"post\"\n")

	counter := 0
	var add func(parent string, nodes []*Node)
	add = func(parent string, nodes []*Node) {
		for _, n := range nodes {
			id := fmt.Sprintf("n%d", counter)
			counter++

			switch n.Type {
			case BlockNode:
				label := n.FullName()
				if n.Attributes != nil {
					label += " (attrs)"
				}
				fmt.Fprintf(&sb, "%s: \"%s\"\n", id, label)
			case PhraseNode:
				fmt.Fprintf(&sb, "%s: \"phrase, %d bytes\" {\n  shape: page\n}\n", id, len(n.Content))
			}
			fmt.Fprintf(&sb, "%s -> %s\n", parent, id)

			if len(n.Children) > 0 {
				add(id, n.Children)
			}
		}
	}
	add("post", nodes)

	return sb.String()
}

// RenderSVG renders the diagram of the tree as SVG.
func RenderSVG(ctx context.Context, nodes []*Node) ([]byte, error) {

	ruler, err := textmeasure.NewRuler()
	if err != nil {
		return nil, fmt.Errorf("creating text ruler: %w", err)
	}

	defaultLayout := func(ctx context.Context, g *d2graph.Graph) error {
		return d2dagrelayout.Layout(ctx, g, nil)
	}
	diagram, _, err := d2lib.Compile(ctx, DiagramSource(nodes), &d2lib.CompileOptions{
		Layout: defaultLayout,
		Ruler:  ruler,
	})
	if err != nil {
		return nil, fmt.Errorf("compiling diagram: %w", err)
	}

	body, err := d2svg.Render(diagram, &d2svg.RenderOpts{
		Pad:     d2svg.DEFAULT_PADDING,
		ThemeID: d2themescatalog.NeutralDefault.ID,
	})
	if err != nil {
		return nil, fmt.Errorf("rendering diagram: %w", err)
	}

	return body, nil
}
