// Package grounding instantiates a domain/problem pair into the ground
// actions and ground axioms a search driver consumes: delete-relaxation
// reachability analysis restricts instantiation to bindings that can
// possibly occur, and stratification orders axioms into strata so a
// per-stratum fixed-point axiom evaluator (package axiom) can be built.
package grounding

import (
	"fmt"

	"github.com/simon-stahlberg/mimir-sub004/pkg/formalism"
)

// ErrUnstratifiable is returned when the derived-predicate dependency graph
// has a cycle through a negative literal: no stratum assignment can make
// every axiom's negative dependencies evaluate in a strictly earlier
// stratum.
type ErrUnstratifiable struct {
	Predicates []int // derived-predicate intern indices forming the offending cycle
}

func (e *ErrUnstratifiable) Error() string {
	return fmt.Sprintf("grounding: axioms are not stratifiable, negative dependency cycle through derived predicates %v", e.Predicates)
}

type depEdge struct {
	to       int
	negative bool
}

// Stratify assigns a stratum to every axiom in repos.Axioms, in place via
// Axiom.SetStratum, and returns the number of strata. Axioms whose head
// predicate never depends (directly or transitively) on another derived
// predicate land in stratum 0.
func Stratify(repos *formalism.DomainRepositories) (int, error) {
	graph := make(map[int][]depEdge)
	nodes := make(map[int]bool)

	repos.Axioms.Each(func(_ int, ax *formalism.Axiom) {
		head := ax.Head().Predicate().Index()
		nodes[head] = true
		for _, lit := range ax.Condition().PositiveDerived {
			dep := lit.Atom.Predicate().Index()
			nodes[dep] = true
			graph[head] = append(graph[head], depEdge{to: dep, negative: false})
		}
		for _, lit := range ax.Condition().NegativeDerived {
			dep := lit.Atom.Predicate().Index()
			nodes[dep] = true
			graph[head] = append(graph[head], depEdge{to: dep, negative: true})
		}
	})

	sccOf, order := tarjanSCC(nodes, graph)

	for comp, members := range order {
		for _, u := range members {
			for _, e := range graph[u] {
				if e.negative && sccOf[e.to] == comp {
					return 0, &ErrUnstratifiable{Predicates: members}
				}
			}
		}
	}

	stratumOfComp := make([]int, len(order))
	// order is already in reverse topological order (dependencies resolved
	// before dependents) from tarjanSCC, so a single forward pass suffices.
	for comp := 0; comp < len(order); comp++ {
		for _, u := range order[comp] {
			for _, e := range graph[u] {
				depComp := sccOf[e.to]
				if depComp == comp {
					continue
				}
				need := stratumOfComp[depComp]
				if e.negative {
					need++
				}
				if need > stratumOfComp[comp] {
					stratumOfComp[comp] = need
				}
			}
		}
	}

	stratumOfPred := make(map[int]int, len(sccOf))
	for pred, comp := range sccOf {
		stratumOfPred[pred] = stratumOfComp[comp]
	}

	maxStratum := 0
	repos.Axioms.Each(func(_ int, ax *formalism.Axiom) {
		s := stratumOfPred[ax.Head().Predicate().Index()]
		ax.SetStratum(s)
		if s > maxStratum {
			maxStratum = s
		}
	})

	return maxStratum + 1, nil
}

// tarjanSCC returns, for the graph over nodes, a map from node to component
// id and the list of components themselves ordered so that a component
// earlier in the slice never depends on one later in it (i.e. dependencies
// of comp i only ever reference components i or later is false in general;
// what Tarjan actually guarantees is that components are discovered in
// reverse topological order of the *original* edges, which is exactly the
// "dependencies first" order the stratification pass above walks).
func tarjanSCC(nodes map[int]bool, graph map[int][]depEdge) (map[int]int, [][]int) {
	index := 0
	indices := make(map[int]int)
	lowlink := make(map[int]int)
	onStack := make(map[int]bool)
	var stack []int
	sccOf := make(map[int]int)
	var components [][]int

	var strongconnect func(v int)
	strongconnect = func(v int) {
		indices[v] = index
		lowlink[v] = index
		index++
		stack = append(stack, v)
		onStack[v] = true

		for _, e := range graph[v] {
			w := e.to
			if _, seen := indices[w]; !seen {
				strongconnect(w)
				if lowlink[w] < lowlink[v] {
					lowlink[v] = lowlink[w]
				}
			} else if onStack[w] {
				if indices[w] < lowlink[v] {
					lowlink[v] = indices[w]
				}
			}
		}

		if lowlink[v] == indices[v] {
			var comp []int
			for {
				n := len(stack) - 1
				w := stack[n]
				stack = stack[:n]
				onStack[w] = false
				sccOf[w] = len(components)
				comp = append(comp, w)
				if w == v {
					break
				}
			}
			components = append(components, comp)
		}
	}

	for v := range nodes {
		if _, seen := indices[v]; !seen {
			strongconnect(v)
		}
	}

	return sccOf, components
}
