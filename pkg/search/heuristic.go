package search

import (
	"math"

	"github.com/simon-stahlberg/mimir-sub004/pkg/formalism"
	"github.com/simon-stahlberg/mimir-sub004/pkg/state"
)

// Heuristic estimates the cost remaining from a state to the goal. An
// admissible heuristic (one that never overestimates) keeps A* optimal.
type Heuristic interface {
	Estimate(s *state.DenseState) float64
}

// ZeroHeuristic always estimates 0, turning A* into uniform-cost/breadth-
// first search. Trivially admissible.
type ZeroHeuristic struct{}

func (ZeroHeuristic) Estimate(*state.DenseState) float64 { return 0 }

// BlindHeuristic is the planner-CLI name for ZeroHeuristic; kept as a
// distinct exported alias so callers can name either one.
type BlindHeuristic = ZeroHeuristic

// RPGHeuristic is the relaxed-planning-graph maximum heuristic (h_max): it
// ignores delete effects, tracks the minimum level at which each atom first
// becomes reachable (atoms of the evaluated state sit at level 0; an
// action's adds become reachable one level above the deepest of its
// precondition atoms), and estimates cost-to-go as the max level over the
// goal's unsatisfied atoms. Max aggregation never overestimates the real
// plan length, so h_max is admissible and keeps A* optimal on unit costs.
type RPGHeuristic struct {
	actions []*formalism.GroundAction
	axioms  []*formalism.GroundAxiom
	goal    *formalism.ConjunctiveCondition
}

// NewRPGHeuristic builds an RPG heuristic over the given ground actions,
// ground axioms and goal condition. Axioms participate in the relaxation so
// derived goal atoms achievable only after future fluent changes are still
// credited: firing an axiom takes no plan step, so a derived head sits at
// the deepest level of its body rather than one above it.
func NewRPGHeuristic(actions []*formalism.GroundAction, axioms []*formalism.GroundAxiom, goal *formalism.ConjunctiveCondition) *RPGHeuristic {
	return &RPGHeuristic{actions: actions, axioms: axioms, goal: goal}
}

const rpgUnreachable = math.MaxFloat64

func (h *RPGHeuristic) Estimate(s *state.DenseState) float64 {
	fluentLevel := make(map[int]float64)
	derivedLevel := make(map[int]float64)
	s.Fluent().ForEach(func(i int) { fluentLevel[i] = 0 })
	s.Derived().ForEach(func(i int) { derivedLevel[i] = 0 })

	for {
		changed := false
		for _, a := range h.actions {
			level, ok := maxPreconditionLevel(a.Condition(), fluentLevel, derivedLevel)
			if !ok {
				continue
			}
			for _, add := range a.Effect().Add {
				if cur, have := fluentLevel[add.Index()]; !have || level+1 < cur {
					fluentLevel[add.Index()] = level + 1
					changed = true
				}
			}
			for _, ce := range a.ConditionalEffects() {
				ceLevel, ceOK := maxPreconditionLevel(&ce.Condition, fluentLevel, derivedLevel)
				if !ceOK {
					continue
				}
				if level > ceLevel {
					ceLevel = level
				}
				for _, add := range ce.Effect.Add {
					if cur, have := fluentLevel[add.Index()]; !have || ceLevel+1 < cur {
						fluentLevel[add.Index()] = ceLevel + 1
						changed = true
					}
				}
			}
		}
		for _, ax := range h.axioms {
			level, ok := maxPreconditionLevel(ax.Condition(), fluentLevel, derivedLevel)
			if !ok {
				continue
			}
			if cur, have := derivedLevel[ax.Head().Index()]; !have || level < cur {
				derivedLevel[ax.Head().Index()] = level
				changed = true
			}
		}
		if !changed {
			break
		}
	}

	level, ok := maxPreconditionLevel(h.goal, fluentLevel, derivedLevel)
	if !ok {
		return rpgUnreachable
	}
	return level
}

// maxPreconditionLevel returns the deepest level among cond's positive
// fluent/derived literals; negative literals and static/numeric tests are
// free under the delete relaxation. Returns ok=false if any required atom
// has no known level (unreachable in the relaxed problem, so the real goal
// is too).
func maxPreconditionLevel(cond *formalism.ConjunctiveCondition, fluentLevel, derivedLevel map[int]float64) (float64, bool) {
	level := 0.0
	for _, lit := range cond.PositiveFluent {
		l, ok := fluentLevel[lit.Atom.Index()]
		if !ok {
			return 0, false
		}
		if l > level {
			level = l
		}
	}
	for _, lit := range cond.PositiveDerived {
		l, ok := derivedLevel[lit.Atom.Index()]
		if !ok {
			return 0, false
		}
		if l > level {
			level = l
		}
	}
	return level, true
}
