// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package decido

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// statistics renders a human-readable summary of the node table, its growth
// and GC history. kind labels the report ("BDD" or "MDD") since
// both engines share this method through table.
func (t *table) statistics(kind string) string {
	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 4, 1, ' ', 0)

	used := len(t.nodes) - t.freenum
	pct := 0.0
	if len(t.nodes) > 0 {
		pct = 100 * float64(used) / float64(len(t.nodes))
	}
	fmt.Fprintf(w, "%s statistics\n", kind)
	fmt.Fprintf(w, "Variables:\t%d\n", t.varnum)
	fmt.Fprintf(w, "Allocated:\t%d nodes\n", len(t.nodes))
	fmt.Fprintf(w, "Produced:\t%d nodes\n", t.produced)
	fmt.Fprintf(w, "Used:\t%d nodes (%.1f%%)\n", used, pct)
	fmt.Fprintf(w, "Free:\t%d nodes\n", t.freenum)
	fmt.Fprintf(w, "# of GC:\t%d\n", len(t.gcHistory))
	if n := len(t.gcHistory); n > 0 {
		last := t.gcHistory[n-1]
		fmt.Fprintf(w, "Last GC:\t%d nodes, %d free before sweep\n", last.nodes, last.freeNodes)
	}
	fmt.Fprintf(w, "Ext. refs:\t%d issued, %d reclaimed\n", t.setFinalizers, t.calledFinalizers)

	if debugBuild {
		report := func(name string, g *genCache) {
			fmt.Fprintf(w, "%s cache:\t%d entries, %d hits, %d misses\n", name, len(g.table), g.hit, g.miss)
		}
		report("not", &t.notCache)
		report("apply", &t.applyCache)
		report("implies", &t.impliesCache)
		report("ite", &t.iteCache)
		report("compose", &t.composeCache)
		report("quant", &t.quantCache)
		fmt.Fprintf(w, "Unique table:\t%d accesses, %d chain walks, %d hits, %d misses\n",
			t.uniqueAccess, t.uniqueChain, t.uniqueHit, t.uniqueMiss)
	}

	w.Flush()
	return sb.String()
}

// Print writes a line-oriented dump of n's reachable sub-diagram to w, one
// node per line ("id: variable low high" for a BDD node, "id: variable
// child0 child1 ..." for an MDD node). Terminals are written as "F" and "T".
func (b *BDD) Print(w io.Writer, n Node) error {
	bw := bufio.NewWriter(w)
	defer bw.Flush()
	b.t.unmarkall()
	err := b.t.printRec(bw, int(n))
	b.t.unmarkall()
	return err
}

func (t *table) printRec(w *bufio.Writer, n int) error {
	if n < 0 {
		return nil
	}
	if n < 2 || t.ismarked(n) {
		return nil
	}
	t.marknode(n)
	children := t.children(n)
	parts := make([]string, len(children))
	for i, c := range children {
		parts[i] = nodeLabel(c)
	}
	if _, err := fmt.Fprintf(w, "%d: %d %s\n", n, t.level(n), strings.Join(parts, " ")); err != nil {
		return err
	}
	for _, c := range children {
		if err := t.printRec(w, c); err != nil {
			return err
		}
	}
	return nil
}

func nodeLabel(n int) string {
	switch n {
	case int(FalseNode):
		return "F"
	case int(TrueNode):
		return "T"
	default:
		return fmt.Sprintf("%d", n)
	}
}

// PrintDot writes n's reachable sub-diagram to w in Graphviz DOT format:
// one box per terminal, one ellipse per variable node, solid edges for
// "high"/last-value children and dashed for "low"/earlier-value children.
func (b *BDD) PrintDot(w io.Writer, n Node) error {
	bw := bufio.NewWriter(w)
	defer bw.Flush()
	fmt.Fprintln(bw, "digraph G {")
	fmt.Fprintln(bw, `  "F" [shape=box, label="0", style=filled, shape=box, height=0.3, width=0.3];`)
	fmt.Fprintln(bw, `  "T" [shape=box, label="1", style=filled, shape=box, height=0.3, width=0.3];`)
	b.t.unmarkall()
	if err := b.t.dotRec(bw, int(n)); err != nil {
		return err
	}
	b.t.unmarkall()
	fmt.Fprintln(bw, "}")
	return nil
}

func (t *table) dotRec(w *bufio.Writer, n int) error {
	if n < 2 || t.ismarked(n) {
		return nil
	}
	t.marknode(n)
	fmt.Fprintf(w, "  %d [label=\"%d\"];\n", n, t.level(n))
	children := t.children(n)
	for i, c := range children {
		style := "solid"
		if i == 0 {
			style = "dashed"
		}
		fmt.Fprintf(w, "  %d -> %s [style=%s];\n", n, nodeLabel(c), style)
	}
	for _, c := range children {
		if err := t.dotRec(w, c); err != nil {
			return err
		}
	}
	return nil
}
