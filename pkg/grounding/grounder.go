package grounding

import (
	"fmt"
	"sort"

	"github.com/simon-stahlberg/mimir-sub004/pkg/formalism"
)

// Result is everything a search driver needs after grounding: the full
// ground action and ground axiom sets in their stable total order, plus how
// many axiom strata exist.
type Result struct {
	Actions []*formalism.GroundAction
	Axioms  []*formalism.GroundAxiom
	Strata  int
}

// ErrAuxiliaryWithoutCost is returned when an action schema's effect (or
// one of its conditional effects) declares an auxiliary numeric
// contribution but the domain never declared the action-costs requirement
// that contribution exists to serve.
type ErrAuxiliaryWithoutCost struct {
	ActionName string
}

func (e *ErrAuxiliaryWithoutCost) Error() string {
	return fmt.Sprintf("grounding: action %q has an auxiliary numeric effect but domain does not declare action-costs", e.ActionName)
}

// checkActionCosts rejects the whole grounding pass the moment any schema's
// effect declares an auxiliary contribution under a domain that never
// opted into action-costs.
func checkActionCosts(domain *formalism.Domain) error {
	if domain.RequiresActionCosts {
		return nil
	}
	var offending error
	domain.Repositories.ActionSchemas.Each(func(_ int, schema *formalism.ActionSchema) {
		if offending != nil {
			return
		}
		if schema.Effect().AuxiliaryFn != nil {
			offending = &ErrAuxiliaryWithoutCost{ActionName: schema.Name()}
			return
		}
		for _, ce := range schema.ConditionalEffects() {
			if ce.Effect.AuxiliaryFn != nil {
				offending = &ErrAuxiliaryWithoutCost{ActionName: schema.Name()}
				return
			}
		}
	})
	return offending
}

// Ground runs the full grounding pipeline: reject auxiliary
// numeric effects declared without action-costs, stratify the domain's
// axioms, explore relaxed reachability to bound which bindings are worth
// instantiating, instantiate every reachable binding, and discard any whose
// static portion can never hold (static predicates never change, so this
// filter is exact, not an approximation).
func Ground(problem *formalism.Problem) (*Result, error) {
	if err := checkActionCosts(problem.Domain); err != nil {
		return nil, err
	}

	strata, err := Stratify(problem.Domain.Repositories)
	if err != nil {
		return nil, err
	}

	reach := Explore(problem)
	staticExt := problem.StaticExtension()
	objects := indexObjects(problem.Repositories.Objects)

	var actions []*formalism.GroundAction
	problem.Domain.Repositories.ActionSchemas.Each(func(_ int, schema *formalism.ActionSchema) {
		for _, b := range reach.ActionBindings[schema.Index()] {
			binding, ok := resolveBinding(b, objects)
			if !ok {
				continue
			}
			ga := schema.Instantiate(problem.Repositories, binding)
			if !ga.Condition().StaticSatisfied(staticExt) {
				continue
			}
			actions = append(actions, ga)
		}
	})

	var axioms []*formalism.GroundAxiom
	problem.Domain.Repositories.Axioms.Each(func(_ int, ax *formalism.Axiom) {
		for _, b := range reach.AxiomBindings[ax.Index()] {
			binding, ok := resolveBinding(b, objects)
			if !ok {
				continue
			}
			gax := ax.Instantiate(problem.Repositories, binding)
			if !gax.Condition().StaticSatisfied(staticExt) {
				continue
			}
			axioms = append(axioms, gax)
		}
	})

	sort.Slice(actions, func(i, j int) bool { return actions[i].Less(actions[j]) })
	sort.Slice(axioms, func(i, j int) bool {
		if axioms[i].Axiom().Index() != axioms[j].Axiom().Index() {
			return axioms[i].Axiom().Index() < axioms[j].Axiom().Index()
		}
		for k := range axioms[i].Binding() {
			if axioms[i].Binding()[k].Index() != axioms[j].Binding()[k].Index() {
				return axioms[i].Binding()[k].Index() < axioms[j].Binding()[k].Index()
			}
		}
		return false
	})

	return &Result{Actions: actions, Axioms: axioms, Strata: strata}, nil
}

func indexObjects(repo *formalism.Repository[formalism.Object]) map[int]*formalism.Object {
	out := make(map[int]*formalism.Object, repo.Len())
	repo.Each(func(i int, o *formalism.Object) { out[i] = o })
	return out
}

func resolveBinding(indices []int, objects map[int]*formalism.Object) ([]*formalism.Object, bool) {
	out := make([]*formalism.Object, len(indices))
	for i, idx := range indices {
		o, ok := objects[idx]
		if !ok {
			return nil, false
		}
		out[i] = o
	}
	return out, true
}
