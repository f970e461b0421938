package axiom

import (
	"github.com/simon-stahlberg/mimir-sub004/pkg/formalism"
	"github.com/simon-stahlberg/mimir-sub004/pkg/state"
)

// LiftedEvaluator closes a fluent set under a problem's axioms without
// building a match tree: each round it tests every not-yet-derived ground
// axiom's condition directly. It forgoes
// match-tree indexing entirely rather than re-deriving bindings from the
// lifted axiom by clique enumeration, since axioms are already grounded
// upstream by package grounding; the name marks it as the evaluator that
// skips the grounded index, not a claim that it operates on unground
// axioms.
type LiftedEvaluator struct {
	strata [][]*formalism.GroundAxiom
}

// NewLiftedEvaluator partitions axioms by stratum.
func NewLiftedEvaluator(axioms []*formalism.GroundAxiom, numStrata int) *LiftedEvaluator {
	byStratum := make([][]*formalism.GroundAxiom, numStrata)
	for _, ax := range axioms {
		byStratum[ax.Stratum()] = append(byStratum[ax.Stratum()], ax)
	}
	return &LiftedEvaluator{strata: byStratum}
}

// Close implements state.AxiomCloser. numeric is the state's own numeric
// vector, so a numeric constraint in an axiom body evaluates against the
// same values the fluent/derived tests do.
func (e *LiftedEvaluator) Close(fluent state.Bitset, numeric state.NumericVector) state.Bitset {
	derived := state.NewBitset()

	for _, axioms := range e.strata {
		for {
			changed := false
			for _, ax := range axioms {
				if derived.Test(ax.Head().Index()) {
					continue
				}
				if state.EvalCondition(ax.Condition(), fluent, derived, numeric) {
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
