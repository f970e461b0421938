package grounding

import (
	"fmt"
	"strings"

	"github.com/simon-stahlberg/mimir-sub004/pkg/formalism"
)

// tag distinguishes which of the three disjoint ground-atom universes a
// fact tuple belongs to.
type tag uint8

const (
	tagStatic tag = iota
	tagFluent
	tagDerived
)

// fact is a ground (predicate, argument tuple) pair, represented without
// going through the Atom[P] generic machinery so the join below can treat
// all three predicate categories uniformly.
type fact struct {
	pred int
	args []int
}

func factKey(pred int, args []int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d(", pred)
	for i, a := range args {
		if i > 0 {
			sb.WriteByte(',')
		}
		fmt.Fprintf(&sb, "%d", a)
	}
	sb.WriteByte(')')
	return sb.String()
}

// factSet is the known tuples for one ground-atom universe, indexed by
// predicate for the join in enumerateBindings.
type factSet struct {
	byPred map[int][]fact
	seen   map[string]bool
}

func newFactSet() *factSet {
	return &factSet{byPred: make(map[int][]fact), seen: make(map[string]bool)}
}

// add reports whether the tuple was new.
func (fs *factSet) add(pred int, args []int) bool {
	k := factKey(pred, args)
	if fs.seen[k] {
		return false
	}
	fs.seen[k] = true
	cp := append([]int(nil), args...)
	fs.byPred[pred] = append(fs.byPred[pred], fact{pred: pred, args: cp})
	return true
}

// atomRef is a lifted literal abstracted down to what the join needs: which
// universe it draws from, which predicate, and its (variable or object)
// terms.
type atomRef struct {
	tag   tag
	pred  int
	terms []formalism.Term
}

func positiveRefs(cond *formalism.ConjunctiveCondition) []atomRef {
	var refs []atomRef
	for _, l := range cond.PositiveStatic {
		refs = append(refs, atomRef{tag: tagStatic, pred: l.Atom.Predicate().Index(), terms: l.Atom.Terms()})
	}
	for _, l := range cond.PositiveFluent {
		refs = append(refs, atomRef{tag: tagFluent, pred: l.Atom.Predicate().Index(), terms: l.Atom.Terms()})
	}
	for _, l := range cond.PositiveDerived {
		refs = append(refs, atomRef{tag: tagDerived, pred: l.Atom.Predicate().Index(), terms: l.Atom.Terms()})
	}
	return refs
}

// facts bundles the three universes the join draws candidate tuples from.
type facts struct {
	static, fluent, derived *factSet
}

func (f *facts) tuples(t tag, pred int) []fact {
	switch t {
	case tagStatic:
		return f.static.byPred[pred]
	case tagFluent:
		return f.fluent.byPred[pred]
	default:
		return f.derived.byPred[pred]
	}
}

// enumerateBindings backtracks over refs (assumed already ordered as they
// appear in the lifted condition) joining against f, and cross-products any
// parameter position no positive literal ever constrains against every
// known object. This is a plain nested-loop join: no join-order planning is
// attempted, which is fine at the problem sizes this evaluator targets and
// keeps construction cost linear in the number of candidate matches rather
// than requiring a cost-based optimizer (out of scope; see DESIGN.md).
func enumerateBindings(arity int, refs []atomRef, f *facts, allObjects []int) [][]int {
	var results [][]int
	binding := make([]int, arity)
	for i := range binding {
		binding[i] = -1
	}

	var recurse func(refIdx int)
	recurse = func(refIdx int) {
		if refIdx == len(refs) {
			fillFreeVariables(binding, allObjects, &results)
			return
		}
		ref := refs[refIdx]
		for _, cand := range f.tuples(ref.tag, ref.pred) {
			if len(cand.args) != len(ref.terms) {
				continue
			}
			saved := append([]int(nil), binding...)
			ok := true
			for i, term := range ref.terms {
				if term.IsGround() {
					if term.Object().Index() != cand.args[i] {
						ok = false
						break
					}
					continue
				}
				pos := term.Variable().Position()
				if binding[pos] != -1 && binding[pos] != cand.args[i] {
					ok = false
					break
				}
				binding[pos] = cand.args[i]
			}
			if ok {
				recurse(refIdx + 1)
			}
			copy(binding, saved)
		}
	}
	recurse(0)
	return results
}

func fillFreeVariables(binding []int, allObjects []int, results *[][]int) {
	pos := -1
	for i, v := range binding {
		if v == -1 {
			pos = i
			break
		}
	}
	if pos == -1 {
		*results = append(*results, append([]int(nil), binding...))
		return
	}
	for _, obj := range allObjects {
		binding[pos] = obj
		fillFreeVariables(binding, allObjects, results)
	}
	binding[pos] = -1
}

// Reachable is the output of the delete-relaxation explorator: the
// intern-index sets of ground atoms that can possibly become true, and the
// schema/axiom bindings that can possibly become applicable.
type Reachable struct {
	ActionBindings map[int][][]int // schema intern index -> reachable bindings (object indices)
	AxiomBindings  map[int][][]int // axiom intern index -> reachable bindings
}

// Explore computes the relaxed (delete-ignoring) fixed point of reachable
// ground atoms, then the schema/axiom bindings consistent with it. Grounded
// negative preconditions and numeric constraints are not used to restrict
// the join: in the relaxed semantics a negative literal can never block
// reachability, so only positive literals narrow candidate bindings.
func Explore(problem *formalism.Problem) *Reachable {
	static := newFactSet()
	for _, a := range problem.StaticInitialAtoms {
		static.add(a.Predicate().Index(), groundArgs(a.Terms()))
	}

	fluent := newFactSet()
	for _, a := range problem.FluentInitialAtoms {
		fluent.add(a.Predicate().Index(), groundArgs(a.Terms()))
	}

	derived := newFactSet()

	var allObjects []int
	problem.Repositories.Objects.Each(func(i int, _ *formalism.Object) {
		allObjects = append(allObjects, i)
	})

	f := &facts{static: static, fluent: fluent, derived: derived}

	actionBindings := make(map[int][][]int)
	seenAction := make(map[int]map[string]bool)
	axiomBindings := make(map[int][][]int)
	seenAxiom := make(map[int]map[string]bool)

	for {
		changed := closeAxiomsOnce(problem.Domain.Repositories, f, allObjects, axiomBindings, seenAxiom)

		problem.Domain.Repositories.ActionSchemas.Each(func(_ int, schema *formalism.ActionSchema) {
			refs := positiveRefs(schema.Condition())
			bindings := enumerateBindings(schema.Arity(), refs, f, allObjects)
			if seenAction[schema.Index()] == nil {
				seenAction[schema.Index()] = make(map[string]bool)
			}
			for _, b := range bindings {
				k := bindingKey(b)
				if seenAction[schema.Index()][k] {
					continue
				}
				seenAction[schema.Index()][k] = true
				actionBindings[schema.Index()] = append(actionBindings[schema.Index()], b)
				changed = true

				for _, a := range schema.Effect().Add {
					args := substitute(a.Terms(), b)
					if fluent.add(a.Predicate().Index(), args) {
						changed = true
					}
				}
				for _, ce := range schema.ConditionalEffects() {
					for _, a := range ce.Effect.Add {
						args := substitute(a.Terms(), b)
						if fluent.add(a.Predicate().Index(), args) {
							changed = true
						}
					}
				}
			}
		})

		if !changed {
			break
		}
	}

	return &Reachable{ActionBindings: actionBindings, AxiomBindings: axiomBindings}
}

// closeAxiomsOnce runs one round of axiom firing against the current facts,
// growing the derived factSet and axiomBindings. It ignores negative
// derived literals (treated as always satisfiable, the standard relaxed
// over-approximation for stratified negation under reachability analysis).
func closeAxiomsOnce(repos *formalism.DomainRepositories, f *facts, allObjects []int, axiomBindings map[int][][]int, seen map[int]map[string]bool) bool {
	changed := false
	repos.Axioms.Each(func(_ int, ax *formalism.Axiom) {
		refs := positiveRefs(ax.Condition())
		bindings := enumerateBindings(len(ax.Parameters()), refs, f, allObjects)
		if seen[ax.Index()] == nil {
			seen[ax.Index()] = make(map[string]bool)
		}
		for _, b := range bindings {
			k := bindingKey(b)
			if seen[ax.Index()][k] {
				continue
			}
			seen[ax.Index()][k] = true
			axiomBindings[ax.Index()] = append(axiomBindings[ax.Index()], b)
			changed = true

			args := substitute(ax.Head().Terms(), b)
			if f.derived.add(ax.Head().Predicate().Index(), args) {
				changed = true
			}
		}
	})
	return changed
}

func groundArgs(terms []formalism.Term) []int {
	args := make([]int, len(terms))
	for i, t := range terms {
		args[i] = t.Object().Index()
	}
	return args
}

func substitute(terms []formalism.Term, binding []int) []int {
	args := make([]int, len(terms))
	for i, t := range terms {
		if t.IsGround() {
			args[i] = t.Object().Index()
		} else {
			args[i] = binding[t.Variable().Position()]
		}
	}
	return args
}

func bindingKey(b []int) string {
	var sb strings.Builder
	for i, v := range b {
		if i > 0 {
			sb.WriteByte(',')
		}
		fmt.Fprintf(&sb, "%d", v)
	}
	return sb.String()
}
