package matchtree

import (
	"fmt"
	"strings"
)

// WriteDOT renders tree as a Graphviz DOT digraph. Selector nodes are
// drawn as boxes labeled with the test they apply; leaves are ellipses
// labeled with their span size and whether
// they are perfect. Edges are labeled T, F or X for the true/false/dontcare
// branch they represent.
func WriteDOT(tree *Tree) string {
	var b strings.Builder
	b.WriteString("digraph matchtree {\n")
	b.WriteString("  node [fontname=\"monospace\"];\n")
	if tree.root != nil {
		ids := make(map[*Node]int)
		writeDOTNode(&b, tree.root, ids)
	}
	b.WriteString("}\n")
	return b.String()
}

func writeDOTNode(b *strings.Builder, n *Node, ids map[*Node]int) int {
	if id, ok := ids[n]; ok {
		return id
	}
	id := len(ids)
	ids[n] = id

	if n.IsLeaf() {
		kind := "imperfect"
		if n.perfect {
			kind = "perfect"
		}
		fmt.Fprintf(b, "  n%d [shape=ellipse, label=\"leaf (%s)\\n%d elements\"];\n", id, kind, len(n.span))
		return id
	}

	label := testLabel(n.test)
	fmt.Fprintf(b, "  n%d [shape=box, label=%q];\n", id, label)

	if n.trueChild != nil {
		childID := writeDOTNode(b, n.trueChild, ids)
		fmt.Fprintf(b, "  n%d -> n%d [label=\"T\"];\n", id, childID)
	}
	if n.falseChild != nil {
		childID := writeDOTNode(b, n.falseChild, ids)
		fmt.Fprintf(b, "  n%d -> n%d [label=\"F\"];\n", id, childID)
	}
	if n.dontCareChild != nil {
		childID := writeDOTNode(b, n.dontCareChild, ids)
		fmt.Fprintf(b, "  n%d -> n%d [label=\"X\"];\n", id, childID)
	}
	return id
}

func testLabel(t Test) string {
	if t.kind == testNumeric {
		return fmt.Sprintf("numeric #%d", t.constraintIdx)
	}
	domain := "fluent"
	if t.domain == DerivedDomain {
		domain = "derived"
	}
	return fmt.Sprintf("%s atom #%d", domain, t.atomIdx)
}
