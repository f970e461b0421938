package matchtree_test

import (
	"testing"

	"github.com/simon-stahlberg/mimir-sub004/examples/blocksworld"
	"github.com/simon-stahlberg/mimir-sub004/pkg/axiom"
	"github.com/simon-stahlberg/mimir-sub004/pkg/formalism"
	"github.com/simon-stahlberg/mimir-sub004/pkg/grounding"
	"github.com/simon-stahlberg/mimir-sub004/pkg/matchtree"
	"github.com/simon-stahlberg/mimir-sub004/pkg/state"
	"github.com/stretchr/testify/require"
)

func groundBlocksworld(t *testing.T, names []string) (*formalism.Problem, *grounding.Result) {
	t.Helper()
	inst := blocksworld.Build(names)
	result, err := grounding.Ground(inst.Problem)
	require.NoError(t, err)
	return inst.Problem, result
}

func initialBitset(t *testing.T, problem *formalism.Problem) state.Bitset {
	t.Helper()
	b := state.NewBitsetWithCapacity(problem.Repositories.FluentAtoms.Len())
	for _, a := range problem.FluentInitialAtoms {
		b.Set(a.Index())
	}
	return b
}

func elementNames(elems []matchtree.Element) []string {
	var out []string
	for _, el := range elems {
		out = append(out, el.(*formalism.GroundAction).String())
	}
	return out
}

func TestMatchTreeFindsOnlyApplicableActions(t *testing.T) {
	problem, result := groundBlocksworld(t, []string{"a", "b"})
	elems := make([]matchtree.Element, len(result.Actions))
	for i, a := range result.Actions {
		elems[i] = a
	}
	tree := matchtree.Build(elems, matchtree.DefaultBuildOptions())

	fluent := initialBitset(t, problem)
	derived := state.NewBitset()
	numeric := state.NewNumericVector(0)

	applicable := matchtree.Evaluate(tree, fluent, derived, numeric)

	// In the initial state every block is on the table, clear, and the arm
	// is empty: only "pickup" instances can apply, never putdown/unstack/stack.
	for _, name := range elementNames(applicable) {
		require.Contains(t, name, "pickup")
	}
	require.NotEmpty(t, applicable)
}

func TestMatchTreeEmptyElementSetProducesEmptyResult(t *testing.T) {
	tree := matchtree.Build(nil, matchtree.DefaultBuildOptions())
	out := matchtree.Evaluate(tree, state.NewBitset(), state.NewBitset(), state.NewNumericVector(0))
	require.Empty(t, out)
}

func TestMatchTreeAgreesWithNaiveScanOverReachableStates(t *testing.T) {
	inst := blocksworld.Build([]string{"a", "b", "c"})
	result, err := grounding.Ground(inst.Problem)
	require.NoError(t, err)

	elems := make([]matchtree.Element, len(result.Actions))
	for i, a := range result.Actions {
		elems[i] = a
	}
	tree := matchtree.Build(elems, matchtree.DefaultBuildOptions())

	closer := axiom.NewGroundedEvaluator(result.Axioms, result.Strata, matchtree.DefaultBuildOptions())
	repo := state.NewRepository(inst.Problem, closer)

	// Walk two plies of the real transition system and cross-check every
	// visited state: the tree's output must equal a brute-force filter over
	// the full ground action set.
	frontier := []*state.DenseState{repo.GetOrCreateInitial()}
	seen := map[int]bool{frontier[0].Index(): true}
	for ply := 0; ply < 2; ply++ {
		var next []*state.DenseState
		for _, s := range frontier {
			var naive []matchtree.Element
			for _, a := range result.Actions {
				if state.EvalCondition(a.Condition(), s.Fluent(), s.Derived(), s.Numeric()) {
					naive = append(naive, a)
				}
			}
			fromTree := matchtree.Evaluate(tree, s.Fluent(), s.Derived(), s.Numeric())
			require.ElementsMatch(t, naive, fromTree)

			for _, el := range fromTree {
				succ, _ := repo.GetOrCreateSuccessor(s, el.(*formalism.GroundAction), &inst.Problem.Metric)
				if !seen[succ.Index()] {
					seen[succ.Index()] = true
					next = append(next, succ)
				}
			}
		}
		frontier = next
	}
}

func TestMatchTreeNodeBudgetStillProducesCorrectResults(t *testing.T) {
	problem, result := groundBlocksworld(t, []string{"a", "b", "c"})
	elems := make([]matchtree.Element, len(result.Actions))
	for i, a := range result.Actions {
		elems[i] = a
	}

	full := matchtree.DefaultBuildOptions()
	tight := full
	tight.MaxNumNodes = 1 // one selector split at the root; every child subset becomes an imperfect leaf

	fullTree := matchtree.Build(elems, full)
	tightTree := matchtree.Build(elems, tight)

	fluent := initialBitset(t, problem)
	derived := state.NewBitset()
	numeric := state.NewNumericVector(0)

	fullOut := elementNames(matchtree.Evaluate(fullTree, fluent, derived, numeric))
	tightOut := elementNames(matchtree.Evaluate(tightTree, fluent, derived, numeric))

	require.ElementsMatch(t, fullOut, tightOut, "an imperfect, budget-truncated tree must still re-verify and return the same applicable set")
	require.Less(t, tightTree.NumNodes(), fullTree.NumNodes())
}
