package state

import (
	"fmt"
	"sync"

	"github.com/simon-stahlberg/mimir-sub004/pkg/formalism"
)

// AxiomCloser closes a fluent-atom bitset under a problem's stratified
// axiom program, returning the derived-atom bitset that makes the union a
// model. The state repository never trusts a derived set from
// anywhere else; it always recomputes via AxiomCloser.
type AxiomCloser interface {
	Close(fluent Bitset, numeric NumericVector) Bitset
}

// Repository manages the content-addressed set of interned states for one
// problem. It is append-only: existing state payloads are never
// rewritten, and a state's intern index is stable for the repository's
// lifetime.
type Repository struct {
	mu      sync.RWMutex
	byKey   map[string]int
	states  []*DenseState
	closer  AxiomCloser
	problem *formalism.Problem
}

// NewRepository creates an empty state repository for problem, closing
// derived sets via closer.
func NewRepository(problem *formalism.Problem, closer AxiomCloser) *Repository {
	return &Repository{
		byKey:   make(map[string]int),
		closer:  closer,
		problem: problem,
	}
}

func (r *Repository) intern(fluent, derived Bitset, numeric NumericVector) *DenseState {
	k := key(fluent, derived, numeric)
	r.mu.RLock()
	if idx, ok := r.byKey[k]; ok {
		s := r.states[idx]
		r.mu.RUnlock()
		return s
	}
	r.mu.RUnlock()

	r.mu.Lock()
	defer r.mu.Unlock()
	if idx, ok := r.byKey[k]; ok {
		return r.states[idx]
	}
	idx := len(r.states)
	s := newDenseState(idx, fluent, derived, numeric)
	r.states = append(r.states, s)
	r.byKey[k] = idx
	return s
}

// GetByIndex returns the state for a previously assigned intern index.
func (r *Repository) GetByIndex(i int) (*DenseState, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i < 0 || i >= len(r.states) {
		return nil, fmt.Errorf("state: index %d out of range [0,%d)", i, len(r.states))
	}
	return r.states[i], nil
}

// Len reports how many states have been interned so far.
func (r *Repository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.states)
}

// GetOrCreateInitial forms the fluent bitset from the problem's positive
// initial literals, the numeric vector from its initial numeric fluents,
// closes under axioms, and interns.
func (r *Repository) GetOrCreateInitial() *DenseState {
	fluent := NewBitsetWithCapacity(r.problem.Repositories.FluentAtoms.Len())
	for _, a := range r.problem.FluentInitialAtoms {
		fluent.Set(a.Index())
	}
	fluent = fluent.Clone()

	numeric := NewNumericVector(r.problem.Repositories.Functions.Len())
	for idx, v := range r.problem.NumericInitial {
		numeric[idx] = v
	}

	derived := r.closer.Close(fluent, numeric)
	return r.intern(fluent, derived, numeric)
}

// GetOrCreate canonicalizes an externally supplied fluent set (a
// first-class operation for dataset tools that enumerate state spaces
// without going through successors) and closes it under axioms.
func (r *Repository) GetOrCreate(fluent Bitset, numeric NumericVector) *DenseState {
	f := fluent.Clone()
	derived := r.closer.Close(f, numeric)
	return r.intern(f, derived, numeric)
}
