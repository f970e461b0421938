package formalism

import "sort"

// NumericEffectOp is one of the five PDDL numeric-assignment operators.
type NumericEffectOp uint8

const (
	OpAssign NumericEffectOp = iota
	OpScaleUp
	OpScaleDown
	OpIncrease
	OpDecrease
)

// NumericEffect applies Op to the fluent function Target using the value of
// Expr, always evaluated against the pre-effect numeric vector.
type NumericEffect struct {
	Op     NumericEffectOp
	Target *Function
	Expr   *FunctionExpression
}

func (e NumericEffect) Ground(repos *ProblemRepositories, binding []*Object) NumericEffect {
	return NumericEffect{
		Op:     e.Op,
		Target: e.Target.Ground(repos.Functions, binding),
		Expr:   e.Expr.Ground(repos, binding),
	}
}

// ConjunctiveEffect is an add/delete literal bundle over fluent atoms plus
// numeric effects and an optional auxiliary numeric effect.
// Effects never touch static or derived predicates (static predicates
// cannot appear in any effect by invariant; derived atoms are recomputed,
// never assigned).
type ConjunctiveEffect struct {
	Add          []*Atom[FluentTag]
	Delete       []*Atom[FluentTag]
	Numeric      []NumericEffect
	AuxiliaryOp  NumericEffectOp
	AuxiliaryFn  *Function // nil if this effect has no auxiliary (metric) contribution
	AuxiliaryExp *FunctionExpression
}

// Normalize sorts and deduplicates Add/Delete by atom index. A single
// normalized conjunctive effect never has the same atom in both Add
// and Delete after normalization of the *lifted* effect (conflicting
// lifted effects are resolved by PDDL's own normalization before this
// point, not here); this pass only sorts+dedups within each list.
func (e *ConjunctiveEffect) Normalize() {
	e.Add = sortDedupAtoms(e.Add)
	e.Delete = sortDedupAtoms(e.Delete)
}

func sortDedupAtoms(atoms []*Atom[FluentTag]) []*Atom[FluentTag] {
	if len(atoms) == 0 {
		return atoms
	}
	sort.Slice(atoms, func(i, j int) bool { return atoms[i].Index() < atoms[j].Index() })
	out := atoms[:1]
	for _, a := range atoms[1:] {
		if a.Index() != out[len(out)-1].Index() {
			out = append(out, a)
		}
	}
	return out
}

// Ground substitutes binding into every add/delete atom and numeric effect,
// interning the results in problemRepos.
func (e *ConjunctiveEffect) Ground(problemRepos *ProblemRepositories, binding []*Object) ConjunctiveEffect {
	out := ConjunctiveEffect{
		Add:         groundFluentAtoms(e.Add, problemRepos.FluentAtoms, binding),
		Delete:      groundFluentAtoms(e.Delete, problemRepos.FluentAtoms, binding),
		AuxiliaryOp: e.AuxiliaryOp,
	}
	out.Numeric = make([]NumericEffect, len(e.Numeric))
	for i, ne := range e.Numeric {
		out.Numeric[i] = ne.Ground(problemRepos, binding)
	}
	if e.AuxiliaryFn != nil {
		out.AuxiliaryFn = e.AuxiliaryFn.Ground(problemRepos.Functions, binding)
		out.AuxiliaryExp = e.AuxiliaryExp.Ground(problemRepos, binding)
	}
	out.Normalize()
	return out
}

func groundFluentAtoms(atoms []*Atom[FluentTag], groundRepo *Repository[Atom[FluentTag]], binding []*Object) []*Atom[FluentTag] {
	out := make([]*Atom[FluentTag], len(atoms))
	for i, a := range atoms {
		out[i] = a.Ground(groundRepo, binding)
	}
	return out
}

// ConditionalEffect is a conjunctive effect guarded by its own local
// conjunctive condition, evaluated against the pre-transition state.
type ConditionalEffect struct {
	Condition ConjunctiveCondition
	Effect    ConjunctiveEffect
}

// Ground substitutes binding into both the local condition and effect.
func (ce *ConditionalEffect) Ground(problemRepos *ProblemRepositories, binding []*Object) ConditionalEffect {
	return ConditionalEffect{
		Condition: ce.Condition.Ground(problemRepos, binding),
		Effect:    ce.Effect.Ground(problemRepos, binding),
	}
}
