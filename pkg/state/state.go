package state

import (
	"math"
	"strconv"
	"strings"
)

// canonicalNaN is the single bit pattern used to represent "undefined" in a
// NumericVector, so that two numeric vectors that are both "undefined at
// index i" compare bit-for-bit equal regardless of which arithmetic path
// produced the NaN.
var canonicalNaN = math.NaN()

// NumericVector is a dense vector of fluent numeric-variable values, indexed
// by ground-function intern index. A missing/undefined entry is NaN, which
// makes every comparator false and poisons arithmetic (NaN-propagating) —
// the intended "undefined numeric access" semantics, not an error.
type NumericVector []float64

// NewNumericVector returns a vector of size n with every entry undefined.
func NewNumericVector(n int) NumericVector {
	v := make(NumericVector, n)
	for i := range v {
		v[i] = canonicalNaN
	}
	return v
}

// Get returns the value at i, or NaN if i is out of range.
func (v NumericVector) Get(i int) float64 {
	if i < 0 || i >= len(v) {
		return canonicalNaN
	}
	return v[i]
}

// Clone returns an independent copy.
func (v NumericVector) Clone() NumericVector {
	out := make(NumericVector, len(v))
	copy(out, v)
	return out
}

// Equal compares two vectors bit-for-bit, treating any NaN payload as the
// canonical "undefined" marker (so NaN==NaN here, unlike IEEE-754 `==`).
func (v NumericVector) Equal(other NumericVector) bool {
	if len(v) != len(other) {
		return false
	}
	for i := range v {
		a, b := v[i], other[i]
		if math.IsNaN(a) != math.IsNaN(b) {
			return false
		}
		if math.IsNaN(a) {
			continue
		}
		if a != b {
			return false
		}
	}
	return true
}

// Key returns a canonical string encoding for use as part of a state's
// intern fingerprint.
func (v NumericVector) Key() string {
	var sb strings.Builder
	for i, f := range v {
		if i > 0 {
			sb.WriteByte(',')
		}
		if math.IsNaN(f) {
			sb.WriteByte('?')
			continue
		}
		sb.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
	}
	return sb.String()
}

// DenseState is {fluent-atom bitset, derived-atom bitset, dense numeric
// vector} — the complete content of a ground planning state.
// States are produced only by Repository and are never mutated after
// interning.
type DenseState struct {
	index   int
	fluent  Bitset
	derived Bitset
	numeric NumericVector
}

func newDenseState(index int, fluent, derived Bitset, numeric NumericVector) *DenseState {
	return &DenseState{index: index, fluent: fluent, derived: derived, numeric: numeric}
}

// Index is the process-wide stable identifier assigned at intern time.
func (s *DenseState) Index() int { return s.index }

// Fluent returns the fluent-atom bitset.
func (s *DenseState) Fluent() Bitset { return s.fluent }

// Derived returns the derived-atom bitset, always the closure of Fluent()
// under the problem's axiom program.
func (s *DenseState) Derived() Bitset { return s.derived }

// Numeric returns the dense numeric-variable vector.
func (s *DenseState) Numeric() NumericVector { return s.numeric }

// HoldsFluent reports whether ground fluent atom index i holds.
func (s *DenseState) HoldsFluent(i int) bool { return s.fluent.Test(i) }

// HoldsDerived reports whether ground derived atom index i holds.
func (s *DenseState) HoldsDerived(i int) bool { return s.derived.Test(i) }

// key is the canonical fingerprint used by Repository's intern map.
func key(fluent, derived Bitset, numeric NumericVector) string {
	return fluent.Key() + "\x00" + derived.Key() + "\x00" + numeric.Key()
}
