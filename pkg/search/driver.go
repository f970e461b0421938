package search

import (
	"time"

	"github.com/simon-stahlberg/mimir-sub004/pkg/formalism"
	"github.com/simon-stahlberg/mimir-sub004/pkg/matchtree"
	"github.com/simon-stahlberg/mimir-sub004/pkg/state"
)

// Node is an open-list entry: just enough to find its state record. The
// authoritative g-value, parent pointer and closed flag live in the
// driver's node table, keyed by state intern index, so the open list never
// needs to be searched or updated in place.
type Node struct {
	StateIndex int
}

// PriorityPolicy turns a node's g-value and heuristic estimate into an open-
// list priority (lower pops first). BreadthFirstPolicy ignores both and
// relies on the open list's FIFO tie-break; AStarPolicy sums them.
type PriorityPolicy func(g, h float64) float64

func BreadthFirstPolicy(g, h float64) float64 { return 0 }
func AStarPolicy(g, h float64) float64        { return g + h }

// Options configures one Driver.Search invocation.
type Options struct {
	Policy    PriorityPolicy
	Heuristic Heuristic
	Pruning   PruningStrategy // nil means DuplicatePruning
	Deadline  time.Time       // zero value means no deadline
	MaxStates int             // zero means unbounded

	// Cancel, when non-nil, is polled without blocking at each loop head.
	// Once closed, the search stops and reports OutOfTime with whatever
	// counters it had accumulated; states already interned remain valid.
	Cancel <-chan struct{}
}

type nodeRecord struct {
	g            float64
	parentState  int
	parentAction *formalism.GroundAction
	closed       bool
}

// Driver is the generic open/closed/parent/goal search loop shared by every
// search algorithm this package offers; what changes between BrFS and A* is
// only the Options.Policy and Options.Heuristic passed to Search.
type Driver struct {
	problem    *formalism.Problem
	states     *state.Repository
	actionTree *matchtree.Tree
}

// NewDriver builds the match tree over actions once and returns a reusable
// driver.
func NewDriver(problem *formalism.Problem, states *state.Repository, actions []*formalism.GroundAction, buildOpts matchtree.BuildOptions) *Driver {
	elems := make([]matchtree.Element, len(actions))
	for i, a := range actions {
		elems[i] = a
	}
	return &Driver{
		problem:    problem,
		states:     states,
		actionTree: matchtree.Build(elems, buildOpts),
	}
}

// MatchTreeNodes reports the size of the driver's action match tree, for
// per-run diagnostics counters.
func (d *Driver) MatchTreeNodes() int { return d.actionTree.NumNodes() }

// MatchTreeDOT renders the action match tree as Graphviz DOT.
func (d *Driver) MatchTreeDOT() string { return matchtree.WriteDOT(d.actionTree) }

// Result is the outcome of one Search call.
type Result struct {
	Status    Status
	Plan      []*formalism.GroundAction
	Cost      float64
	Expanded  int
	Generated int
}

// Search runs the loop: pop the lowest-priority open node, goal-test it,
// expand it via the action match tree, and push each not-yet-better-seen
// successor.
func (d *Driver) Search(opts Options) Result {
	// The static portion of the goal never changes across a run, so it is
	// checked once here rather than re-tested at every popped state: a
	// problem whose static goal literals are already false in the initial
	// static extension can never become solvable, and is rejected without
	// expanding a single state.
	if !d.problem.Goal.StaticSatisfied(d.problem.StaticExtension()) {
		return Result{Status: Exhausted}
	}

	heuristic := opts.Heuristic
	if heuristic == nil {
		heuristic = ZeroHeuristic{}
	}
	pruning := opts.Pruning
	if pruning == nil {
		pruning = DuplicatePruning{}
	}

	initial := d.states.GetOrCreateInitial()
	records := map[int]*nodeRecord{initial.Index(): {g: 0, parentState: -1}}

	open := NewOpenList()
	open.Push(&Node{StateIndex: initial.Index()}, opts.Policy(0, heuristic.Estimate(initial)))

	var expanded, generated int

	for open.Len() > 0 {
		if opts.Cancel != nil {
			select {
			case <-opts.Cancel:
				return Result{Status: OutOfTime, Expanded: expanded, Generated: generated}
			default:
			}
		}
		if !opts.Deadline.IsZero() && time.Now().After(opts.Deadline) {
			return Result{Status: OutOfTime, Expanded: expanded, Generated: generated}
		}
		if opts.MaxStates > 0 && d.states.Len() > opts.MaxStates {
			return Result{Status: OutOfMemory, Expanded: expanded, Generated: generated}
		}

		n := open.Pop()
		rec := records[n.StateIndex]
		if rec.closed {
			continue
		}
		rec.closed = true

		s, err := d.states.GetByIndex(n.StateIndex)
		if err != nil {
			continue
		}

		if state.EvalCondition(&d.problem.Goal, s.Fluent(), s.Derived(), s.Numeric()) {
			plan := reconstructPlan(records, n.StateIndex)
			return Result{Status: Solved, Plan: plan, Cost: rec.g, Expanded: expanded, Generated: generated}
		}
		expanded++

		applicable := matchtree.Evaluate(d.actionTree, s.Fluent(), s.Derived(), s.Numeric())
		for _, el := range applicable {
			action := el.(*formalism.GroundAction)
			succ, cost := d.states.GetOrCreateSuccessor(s, action, &d.problem.Metric)
			g := rec.g + cost

			existing, seen := records[succ.Index()]
			var oldG float64
			var closed bool
			if seen {
				oldG, closed = existing.g, existing.closed
			}
			if pruning.Skip(seen, closed, g, oldG) {
				continue
			}
			// The parent pointer and g only change for a new state or a
			// strictly cheaper path, so parent chains never form a cycle.
			if !seen || g < oldG {
				records[succ.Index()] = &nodeRecord{g: g, parentState: n.StateIndex, parentAction: action}
			}
			generated++
			open.Push(&Node{StateIndex: succ.Index()}, opts.Policy(g, heuristic.Estimate(succ)))
		}
	}

	return Result{Status: Exhausted, Expanded: expanded, Generated: generated}
}

// reconstructPlan walks parent pointers from goalState back to the root
// (parentState == -1), reversing as it goes.
func reconstructPlan(records map[int]*nodeRecord, goalState int) []*formalism.GroundAction {
	var rev []*formalism.GroundAction
	for idx := goalState; ; {
		rec := records[idx]
		if rec.parentState == -1 {
			break
		}
		rev = append(rev, rec.parentAction)
		idx = rec.parentState
	}
	plan := make([]*formalism.GroundAction, len(rev))
	for i, a := range rev {
		plan[len(rev)-1-i] = a
	}
	return plan
}
