// Package dot renders a compiled environment's family graphs as a
// graphviz DOT document, purely for diagnostics — it carries no behavioral
// contract beyond producing valid DOT.
package dot

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mkazlow/envbuilder/internal/compiler"
	"github.com/mkazlow/envbuilder/internal/dag"
)

// Render emits a DOT document with one cluster_<family> subgraph per
// processed family, one node per asset, parent->child edges, and — for a
// parent with attached filters — a nested cluster_filters_<parent> that
// the parent routes through via ltail/lhead edge rewiring before reaching
// its children.
func Render(env *compiler.Environment) string {
	var b strings.Builder

	b.WriteString("digraph G {\n")
	b.WriteString("compound=true;\n")
	b.WriteString("fontname=\"Helvetica,Arial,sans-serif\";\n")
	b.WriteString("fontsize=12;\n")
	b.WriteString("node [fontname=\"Helvetica,Arial,sans-serif\", fontsize=10];\n")
	b.WriteString("edge [fontname=\"Helvetica,Arial,sans-serif\", fontsize=8];\n")
	fmt.Fprintf(&b, "environment [label=\"%s\", shape=Mdiamond];\n", env.Name)

	for _, family := range env.FamilyOrder {
		g := env.Graphs[family]

		b.WriteString("\n")
		fmt.Fprintf(&b, "subgraph cluster_%s {\n", family)
		fmt.Fprintf(&b, "label=\"%s\";\n", family)
		b.WriteString("style=filled;\n")
		b.WriteString("color=lightgrey;\n")
		b.WriteString("node [style=filled,color=white];\n")

		names := nodeNames(g)
		for _, name := range names {
			fmt.Fprintf(&b, "%s [label=\"%s\"];\n", name, name)
		}

		for _, parent := range names {
			children := g.EdgesOf(parent)
			if len(children) == 0 {
				continue
			}
			asset, _ := g.Node(parent)
			if len(asset.Filters) > 0 {
				renderFilterCluster(&b, parent, asset.SortedFilters(), children)
				continue
			}
			for _, child := range children {
				fmt.Fprintf(&b, "%s -> %s;\n", parent, child)
			}
		}

		b.WriteString("}\n")
		fmt.Fprintf(&b, "environment -> %s;\n", g.Root())
	}

	b.WriteString("}\n")
	return b.String()
}

func renderFilterCluster(b *strings.Builder, parent string, filters, children []string) {
	fmt.Fprintf(b, "subgraph cluster_filters_%s{\n", parent)
	b.WriteString("label=\"\";\n")
	b.WriteString("color=\"blue\";\n")
	b.WriteString("style=default;\n")
	for _, filter := range filters {
		fmt.Fprintf(b, "%s [label=\"%s\"];\n", filter, filter)
	}
	b.WriteString("}\n")

	for _, filter := range filters {
		fmt.Fprintf(b, "%s -> %s [ltail=%s lhead=cluster_filters_%s];\n", parent, filter, parent, parent)
	}
	for _, child := range children {
		for _, filter := range filters {
			fmt.Fprintf(b, "%s -> %s [ltail=cluster_filters_%s lhead=%s];\n", filter, child, parent, child)
		}
	}
}

// nodeNames returns every node name in g, root first, then the rest sorted
// for a deterministic rendering.
func nodeNames(g *dag.Graph) []string {
	all := g.NodeNames()
	rest := make([]string, 0, len(all))
	root := g.Root()
	for _, n := range all {
		if n != root {
			rest = append(rest, n)
		}
	}
	sort.Strings(rest)
	return append([]string{root}, rest...)
}
