package formalism

import "sort"

// ConjunctiveCondition is the applicability test of an action or axiom,
// decomposed into six literal sets (positive/negative × static/fluent/
// derived) plus a list of ground numeric constraints. Both lifted
// (schema-level) and ground conditions use this type.
type ConjunctiveCondition struct {
	PositiveStatic  []Literal[StaticTag]
	NegativeStatic  []Literal[StaticTag]
	PositiveFluent  []Literal[FluentTag]
	NegativeFluent  []Literal[FluentTag]
	PositiveDerived []Literal[DerivedTag]
	NegativeDerived []Literal[DerivedTag]
	Numeric         []*NumericConstraint
}

// Normalize sorts every literal list by atom intern index and deduplicates
// it in place, the canonical order every downstream consumer assumes.
func (c *ConjunctiveCondition) Normalize() {
	c.PositiveStatic = sortDedupLiterals(c.PositiveStatic)
	c.NegativeStatic = sortDedupLiterals(c.NegativeStatic)
	c.PositiveFluent = sortDedupLiterals(c.PositiveFluent)
	c.NegativeFluent = sortDedupLiterals(c.NegativeFluent)
	c.PositiveDerived = sortDedupLiterals(c.PositiveDerived)
	c.NegativeDerived = sortDedupLiterals(c.NegativeDerived)
	sort.Slice(c.Numeric, func(i, j int) bool { return c.Numeric[i].Index() < c.Numeric[j].Index() })
	c.Numeric = dedupNumeric(c.Numeric)
}

func sortDedupLiterals[P Tag](lits []Literal[P]) []Literal[P] {
	if len(lits) == 0 {
		return lits
	}
	sort.Slice(lits, ByAtomIndex(lits))
	out := lits[:1]
	for _, l := range lits[1:] {
		if l.Atom.Index() != out[len(out)-1].Atom.Index() {
			out = append(out, l)
		}
	}
	return out
}

func dedupNumeric(ncs []*NumericConstraint) []*NumericConstraint {
	if len(ncs) == 0 {
		return ncs
	}
	out := ncs[:1]
	for _, n := range ncs[1:] {
		if n.Index() != out[len(out)-1].Index() {
			out = append(out, n)
		}
	}
	return out
}

// IsEmpty reports whether the condition has no tests at all (true for
// every state), the case for, e.g., an unconditional action schema with no
// precondition.
func (c *ConjunctiveCondition) IsEmpty() bool {
	return len(c.PositiveStatic) == 0 && len(c.NegativeStatic) == 0 &&
		len(c.PositiveFluent) == 0 && len(c.NegativeFluent) == 0 &&
		len(c.PositiveDerived) == 0 && len(c.NegativeDerived) == 0 &&
		len(c.Numeric) == 0
}

// Ground substitutes binding into every literal and numeric constraint,
// interning the results in problemRepos, and normalizes the result.
func (c *ConjunctiveCondition) Ground(problemRepos *ProblemRepositories, binding []*Object) ConjunctiveCondition {
	out := ConjunctiveCondition{
		PositiveStatic:  groundLiterals(c.PositiveStatic, problemRepos.StaticAtoms, binding),
		NegativeStatic:  groundLiterals(c.NegativeStatic, problemRepos.StaticAtoms, binding),
		PositiveFluent:  groundLiterals(c.PositiveFluent, problemRepos.FluentAtoms, binding),
		NegativeFluent:  groundLiterals(c.NegativeFluent, problemRepos.FluentAtoms, binding),
		PositiveDerived: groundLiterals(c.PositiveDerived, problemRepos.DerivedAtoms, binding),
		NegativeDerived: groundLiterals(c.NegativeDerived, problemRepos.DerivedAtoms, binding),
	}
	out.Numeric = make([]*NumericConstraint, len(c.Numeric))
	for i, nc := range c.Numeric {
		out.Numeric[i] = nc.Ground(problemRepos, binding)
	}
	out.Normalize()
	return out
}

func groundLiterals[P Tag](lits []Literal[P], groundRepo *Repository[Atom[P]], binding []*Object) []Literal[P] {
	out := make([]Literal[P], len(lits))
	for i, l := range lits {
		out[i] = Literal[P]{Polarity: l.Polarity, Atom: l.Atom.Ground(groundRepo, binding)}
	}
	return out
}

// StaticSatisfied checks only the static portion against the problem's
// static extension, used at grounding time to prune infeasible bindings
// and at goal-verification time to reject a problem outright
// before any search.
func (c *ConjunctiveCondition) StaticSatisfied(staticExtension map[int]bool) bool {
	for _, lit := range c.PositiveStatic {
		if !staticExtension[lit.Atom.Index()] {
			return false
		}
	}
	for _, lit := range c.NegativeStatic {
		if staticExtension[lit.Atom.Index()] {
			return false
		}
	}
	return true
}
