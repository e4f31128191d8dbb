// Package export renders BOM structures as Graphviz DOT and SVG, for
// diagnostics: inspecting a built tree, or the product reference graph a
// cycle path runs through.
package export

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/SeonWoooPark/Mes-Base-sub002/pkg/bom"
	"github.com/SeonWoooPark/Mes-Base-sub002/pkg/bom/guard"
	"github.com/SeonWoooPark/Mes-Base-sub002/pkg/bom/tree"
)

// Options configures DOT generation.
type Options struct {
	// Detailed includes quantity, cost, and type in node labels.
	// When false, only the component ID is shown.
	Detailed bool

	// IncludeInactive renders logically removed nodes (dashed).
	IncludeInactive bool
}

// TreeToDOT converts a component tree to Graphviz DOT format.
// Inactive nodes are skipped unless opts.IncludeInactive is set, in which
// case they render with dashed outlines. The resulting string can be
// rendered with [RenderSVG].
func TreeToDOT(t *tree.Tree, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph BOM {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=12, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	skip := make(map[int]bool)
	t.Walk(func(i int) bool {
		n := t.Node(i)
		if !n.IsActive && !opts.IncludeInactive {
			skip[i] = true
			return true
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, nodeAttrs(*n, opts.Detailed))
		return true
	})

	buf.WriteString("\n")
	t.Walk(func(i int) bool {
		p := t.Parent(i)
		if p < 0 || skip[i] || skip[p] {
			return true
		}
		fmt.Fprintf(&buf, "  %q -> %q;\n", t.Node(p).ID, t.Node(i).ID)
		return true
	})

	buf.WriteString("}\n")
	return buf.String()
}

// GraphToDOT converts product reference edges to Graphviz DOT format.
func GraphToDOT(edges []guard.Edge) string {
	var buf bytes.Buffer
	buf.WriteString("digraph Products {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  node [shape=box, style=rounded, fontsize=12];\n")
	buf.WriteString("\n")
	for _, e := range edges {
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.ProductID, e.ComponentProductID)
	}
	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(n bom.ComponentNode, detailed bool) string {
	label := n.ComponentID
	if detailed {
		label = fmt.Sprintf("%s\n%s x%s @ %s", n.ComponentID, n.ComponentType, n.Quantity, n.UnitCost)
	}
	attrs := fmt.Sprintf("label=%q", label)
	if !n.IsActive {
		attrs += ", style=\"rounded,filled,dashed\", fillcolor=lightgrey"
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
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
