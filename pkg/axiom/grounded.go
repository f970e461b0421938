package axiom

import (
	"github.com/simon-stahlberg/mimir-sub004/pkg/formalism"
	"github.com/simon-stahlberg/mimir-sub004/pkg/matchtree"
	"github.com/simon-stahlberg/mimir-sub004/pkg/state"
)

// GroundedEvaluator closes a fluent set under a problem's axioms by
// building one match tree per stratum over that stratum's ground axioms and
// running each stratum's fixed point via match-tree evaluation.
type GroundedEvaluator struct {
	strata []*matchtree.Tree
}

// NewGroundedEvaluator partitions axioms by stratum (already assigned by
// grounding.Stratify) and builds a match tree per stratum.
func NewGroundedEvaluator(axioms []*formalism.GroundAxiom, numStrata int, opts matchtree.BuildOptions) *GroundedEvaluator {
	byStratum := make([][]matchtree.Element, numStrata)
	for _, ax := range axioms {
		s := ax.Stratum()
		byStratum[s] = append(byStratum[s], ax)
	}
	strata := make([]*matchtree.Tree, numStrata)
	for i, elems := range byStratum {
		strata[i] = matchtree.Build(elems, opts)
	}
	return &GroundedEvaluator{strata: strata}
}

// Close implements state.AxiomCloser. numeric is the state's own numeric
// vector, threaded through so an axiom body's numeric constraints see the
// same values the fluent/derived tests do, rather than an always-undefined
// stand-in.
func (e *GroundedEvaluator) Close(fluent state.Bitset, numeric state.NumericVector) state.Bitset {
	derived := state.NewBitset()

	for _, tree := range e.strata {
		for {
			matched := matchtree.Evaluate(tree, fluent, derived, numeric)
			changed := false
			for _, el := range matched {
				ax := el.(*formalism.GroundAxiom)
				if !derived.Test(ax.Head().Index()) {
					derived.Set(ax.Head().Index())
					changed = true
				}
			}
			if !changed {
				break
			}
		}
	}
	return derived
}
