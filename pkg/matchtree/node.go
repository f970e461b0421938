// Package matchtree implements the three-valued decision DAG that indexes
// ground actions or ground axioms by the atoms and numeric constraints that
// must hold for their conjunctive condition to be satisfied.
//
// A match tree is built once, over either the set of ground actions or the
// set of ground axioms of one stratum, and evaluated many times per search
// state. Construction cost is amortized; evaluation must touch
// O(|output|+depth) nodes.
package matchtree

import "github.com/simon-stahlberg/mimir-sub004/pkg/formalism"

// Element is anything with a ground conjunctive condition: a ground action
// or a ground axiom. The match tree is generic over this so one
// implementation serves both use sites (action applicability and axiom
// firing).
type Element interface {
	Condition() *formalism.ConjunctiveCondition
}

// AtomDomain distinguishes fluent-atom tests from derived-atom tests; the
// two occupy disjoint index spaces, so a Test always names both.
type AtomDomain uint8

const (
	FluentDomain AtomDomain = iota
	DerivedDomain
)

// testKind is the closed set of split-test shapes: an atom test (with a
// domain) or a numeric-constraint test.
type testKind uint8

const (
	testAtom testKind = iota
	testNumeric
)

// Test is a candidate split: either an atom (fluent or derived) or a
// ground numeric constraint, identified by its repository intern index.
type Test struct {
	kind     testKind
	domain   AtomDomain
	atomIdx  int
	constraintIdx int
	constraint *formalism.NumericConstraint
}

func AtomTest(domain AtomDomain, atomIndex int) Test {
	return Test{kind: testAtom, domain: domain, atomIdx: atomIndex}
}

func NumericTest(nc *formalism.NumericConstraint) Test {
	return Test{kind: testNumeric, constraintIdx: nc.Index(), constraint: nc}
}

func (t Test) IsNumeric() bool { return t.kind == testNumeric }

// InternIndex is used for the deterministic tie-break among equally-scored
// candidate splits.
func (t Test) InternIndex() int {
	if t.kind == testNumeric {
		return t.constraintIdx
	}
	return t.atomIdx
}

// nodeKind is the closed set of match-tree node shapes: six atom-selector
// shapes (which of {true,false,dontcare} children are present), two
// numeric-selector shapes (true, true+dontcare), and a leaf. Rather than one
// struct type per shape, Node carries a single kind tag and nils out
// whichever child slots a shape omits — the evaluator dispatches once per
// node on Kind and never needs a type switch over eight structs.
type nodeKind uint8

const (
	nodeAtomSelector nodeKind = iota
	nodeNumericSelector
	nodeLeaf
)

// Node is one vertex of the match tree.
type Node struct {
	kind nodeKind

	// Populated when kind == nodeAtomSelector or nodeNumericSelector.
	test Test

	trueChild     *Node
	falseChild    *Node // always nil for a numeric selector
	dontCareChild *Node

	// Populated when kind == nodeLeaf.
	span    []Element
	perfect bool
}

// IsLeaf reports whether n is an ElementGenerator.
func (n *Node) IsLeaf() bool { return n.kind == nodeLeaf }

// Perfect reports whether a leaf's span is guaranteed fully applicable
// without per-element re-verification.
func (n *Node) Perfect() bool { return n.perfect }

// Span returns a leaf's contiguous span of ground elements.
func (n *Node) Span() []Element { return n.span }

// Test returns the split test at a selector node.
func (n *Node) Test() Test { return n.test }

func newLeaf(span []Element, perfect bool) *Node {
	return &Node{kind: nodeLeaf, span: span, perfect: perfect}
}

func newAtomSelector(test Test, trueChild, falseChild, dontCareChild *Node) *Node {
	return &Node{kind: nodeAtomSelector, test: test, trueChild: trueChild, falseChild: falseChild, dontCareChild: dontCareChild}
}

func newNumericSelector(test Test, trueChild, dontCareChild *Node) *Node {
	return &Node{kind: nodeNumericSelector, test: test, trueChild: trueChild, dontCareChild: dontCareChild}
}

// Tree owns its nodes and the vector of ground elements it was built from.
// Each leaf holds its own element slice; leaves do not share storage with
// this vector.
type Tree struct {
	root     *Node
	elements []Element
	nodeCount int
}

func (t *Tree) Root() *Node      { return t.root }
func (t *Tree) NumNodes() int    { return t.nodeCount }
func (t *Tree) NumElements() int { return len(t.elements) }
