package matchtree

import "github.com/simon-stahlberg/mimir-sub004/pkg/state"

// Evaluate walks the tree against one ground state and returns every element
// whose condition is satisfied. At a selector it enters only the branch the
// state's value selects plus the dontcare branch, so subtrees whose test
// fails are never visited; an imperfect leaf re-checks every element of its
// span against the state.
func Evaluate(tree *Tree, fluent, derived state.Bitset, numeric state.NumericVector) []Element {
	var out []Element
	if tree.root == nil {
		return out
	}
	stack := []*Node{tree.root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if n.IsLeaf() {
			out = appendSpan(out, n, fluent, derived, numeric)
			continue
		}

		if n.test.kind == testNumeric {
			if state.EvalNumericConstraint(n.test.constraint, numeric) && n.trueChild != nil {
				stack = append(stack, n.trueChild)
			}
			if n.dontCareChild != nil {
				stack = append(stack, n.dontCareChild)
			}
			continue
		}

		var holds bool
		if n.test.domain == FluentDomain {
			holds = fluent.Test(n.test.atomIdx)
		} else {
			holds = derived.Test(n.test.atomIdx)
		}
		if holds {
			if n.trueChild != nil {
				stack = append(stack, n.trueChild)
			}
		} else if n.falseChild != nil {
			stack = append(stack, n.falseChild)
		}
		if n.dontCareChild != nil {
			stack = append(stack, n.dontCareChild)
		}
	}
	return out
}

// appendSpan yields a leaf's span. A perfect leaf's elements are guaranteed
// applicable by construction and are emitted without re-verification; an
// imperfect leaf (produced when construction hit its node budget before
// every test was discharged) re-checks each element's full condition
// against the current state before emitting it.
func appendSpan(out []Element, n *Node, fluent, derived state.Bitset, numeric state.NumericVector) []Element {
	if n.perfect {
		return append(out, n.span...)
	}
	for _, el := range n.span {
		if state.EvalCondition(el.Condition(), fluent, derived, numeric) {
			out = append(out, el)
		}
	}
	return out
}
