// Package axiom computes the derived-atom closure of a fluent state under a
// problem's stratified axiom program. Two independent
// implementations are provided — a grounded, match-tree-driven evaluator
// and a "lifted" one that re-tests each already-ground axiom's body
// directly, without a match tree — and both are required to produce
// bit-identical results for the same input, since nothing downstream can
// distinguish between them.
package axiom

import "github.com/simon-stahlberg/mimir-sub004/pkg/state"

// Evaluator closes a fluent bitset under a problem's axioms, returning the
// derived-atom bitset that, unioned with the fluent bitset, is the least
// model of the axiom program. It implements state.AxiomCloser.
type Evaluator interface {
	Close(fluent state.Bitset, numeric state.NumericVector) state.Bitset
}
