package search

// PruningStrategy decides whether a freshly generated successor should be
// discarded instead of pushed onto the open list.
type PruningStrategy interface {
	// Skip reports whether a successor already recorded once (seen) should
	// be discarded given its previous g-value oldG, whether that previous
	// record is already closed, and the newly computed g-value newG.
	Skip(seen, closed bool, newG, oldG float64) bool
}

// DuplicatePruning discards a successor whenever it has already been
// recorded with an equal-or-better g-value, or whenever its record is
// already closed — the default, and the only behavior the original driver
// offered before this strategy was pulled out as a pluggable parameter.
type DuplicatePruning struct{}

func (DuplicatePruning) Skip(seen, closed bool, newG, oldG float64) bool {
	return seen && (closed || oldG <= newG)
}

// NoPruning never discards a successor: every generated state is pushed
// onto the open list even if seen before, trading blown-up open-list size
// for never missing a cheaper path through a state whose g-value the
// policy in use doesn't monotonically improve (e.g. exploring with a
// deliberately inadmissible, non-consistent heuristic).
type NoPruning struct{}

func (NoPruning) Skip(seen, closed bool, newG, oldG float64) bool { return false }
