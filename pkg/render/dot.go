package render

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/pkgscope/frontier/pkg/frontier"
	"github.com/pkgscope/frontier/pkg/pkggraph"
)

// ToDOT converts the ancestor subgraph of a frontier analysis to Graphviz
// DOT format. Workspace packages are filled, the target is double-bordered,
// and boundary-crossing edges are drawn bold red so the frontier stands
// out. The resulting DOT string can be rendered with [RenderSVG].
func ToDOT(sub *pkggraph.Subgraph, target string) string {
	var buf bytes.Buffer
	buf.WriteString("digraph frontier {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, id := range sub.NodeIDs() {
		n, _ := sub.Node(id)
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(nodeAttrs(n, target), ", "))
	}

	buf.WriteString("\n")
	for _, e := range sub.Edges() {
		from, _ := sub.Node(e.From)
		to, _ := sub.Node(e.To)
		if from.InWorkspace != to.InWorkspace {
			fmt.Fprintf(&buf, "  %q -> %q [color=red, penwidth=2];\n", e.From, e.To)
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(n pkggraph.Node, target string) []string {
	label := frontier.DisplayName(n.Name)
	if n.Version != "" {
		label += "\n" + n.Version
	}
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if n.InWorkspace {
		attrs = append(attrs, "fillcolor=lightblue")
	}
	if n.ID == target {
		attrs = append(attrs, "peripheries=2", "penwidth=2")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
