package search_test

import (
	"testing"

	"github.com/simon-stahlberg/mimir-sub004/examples/blocksworld"
	"github.com/simon-stahlberg/mimir-sub004/examples/graphreach"
	"github.com/simon-stahlberg/mimir-sub004/examples/gripper"
	"github.com/simon-stahlberg/mimir-sub004/pkg/axiom"
	"github.com/simon-stahlberg/mimir-sub004/pkg/formalism"
	"github.com/simon-stahlberg/mimir-sub004/pkg/grounding"
	"github.com/simon-stahlberg/mimir-sub004/pkg/matchtree"
	"github.com/simon-stahlberg/mimir-sub004/pkg/search"
	"github.com/simon-stahlberg/mimir-sub004/pkg/state"
	"github.com/stretchr/testify/require"
)

func newDriver(t *testing.T, problem *formalism.Problem) *search.Driver {
	t.Helper()
	result, err := grounding.Ground(problem)
	require.NoError(t, err)
	closer := axiom.NewGroundedEvaluator(result.Axioms, result.Strata, matchtree.DefaultBuildOptions())
	states := state.NewRepository(problem, closer)
	return search.NewDriver(problem, states, result.Actions, matchtree.DefaultBuildOptions())
}

func buildBlocksworldDriver(t *testing.T) (*search.Driver, *grounding.Result) {
	t.Helper()
	inst := blocksworld.Build([]string{"a", "b", "c"})
	inst.SetGoalOn("a", "b")
	inst.SetGoalOn("b", "c")

	result, err := grounding.Ground(inst.Problem)
	require.NoError(t, err)

	closer := axiom.NewGroundedEvaluator(result.Axioms, result.Strata, matchtree.DefaultBuildOptions())
	states := state.NewRepository(inst.Problem, closer)
	driver := search.NewDriver(inst.Problem, states, result.Actions, matchtree.DefaultBuildOptions())
	return driver, result
}

func TestBreadthFirstSearchSolvesBlocksworld(t *testing.T) {
	driver, _ := buildBlocksworldDriver(t)
	res := driver.Search(search.Options{Policy: search.BreadthFirstPolicy})

	require.Equal(t, search.Solved, res.Status)
	require.NotEmpty(t, res.Plan)
	require.Equal(t, float64(len(res.Plan)), res.Cost, "every blocksworld action costs 1")
}

func TestAStarWithZeroHeuristicFindsOptimalPlan(t *testing.T) {
	driver, _ := buildBlocksworldDriver(t)
	bfs := driver.Search(search.Options{Policy: search.BreadthFirstPolicy})

	driver2, _ := buildBlocksworldDriver(t)
	astar := driver2.Search(search.Options{Policy: search.AStarPolicy, Heuristic: search.ZeroHeuristic{}})

	require.Equal(t, search.Solved, astar.Status)
	require.Equal(t, bfs.Cost, astar.Cost, "BrFS and admissible A* must agree on optimal cost for unit-cost actions")
}

func TestAStarWithRPGHeuristicFindsOptimalPlan(t *testing.T) {
	bfsDriver, _ := buildBlocksworldDriver(t)
	bfs := bfsDriver.Search(search.Options{Policy: search.BreadthFirstPolicy})

	inst := blocksworld.Build([]string{"a", "b", "c"})
	inst.SetGoalOn("a", "b")
	inst.SetGoalOn("b", "c")

	result, err := grounding.Ground(inst.Problem)
	require.NoError(t, err)
	closer := axiom.NewGroundedEvaluator(result.Axioms, result.Strata, matchtree.DefaultBuildOptions())
	states := state.NewRepository(inst.Problem, closer)
	driver := search.NewDriver(inst.Problem, states, result.Actions, matchtree.DefaultBuildOptions())

	h := search.NewRPGHeuristic(result.Actions, result.Axioms, &inst.Problem.Goal)
	res := driver.Search(search.Options{Policy: search.AStarPolicy, Heuristic: h})
	require.Equal(t, search.Solved, res.Status)
	require.NotEmpty(t, res.Plan)
	require.Equal(t, bfs.Cost, res.Cost, "h_max never overestimates, so A* must match the breadth-first optimum on unit costs")
}

func TestMaxStatesBudgetStopsSearch(t *testing.T) {
	driver, _ := buildBlocksworldDriver(t)
	res := driver.Search(search.Options{Policy: search.BreadthFirstPolicy, MaxStates: 1})
	require.Equal(t, search.OutOfMemory, res.Status)
}

func TestBreadthFirstSolvesGripperInThreeSteps(t *testing.T) {
	inst := gripper.Build(
		[]string{"room-a", "room-b"},
		[]string{"ball1"},
		[]string{"left"},
		map[string]string{"ball1": "room-a"},
		"room-a",
	)
	inst.SetGoalAtBall("ball1", "room-b")

	driver := newDriver(t, inst.Problem)
	res := driver.Search(search.Options{Policy: search.BreadthFirstPolicy})

	require.Equal(t, search.Solved, res.Status)
	require.Len(t, res.Plan, 3, "pick, move, drop is the shortest way to ferry the ball")
	require.Equal(t, 3.0, res.Cost)
}

func TestGoalSatisfiedInitiallyReturnsEmptyPlan(t *testing.T) {
	inst := graphreach.Build(
		[]string{"n1", "n2", "n3", "n4"},
		[][2]string{{"n1", "n2"}, {"n2", "n3"}, {"n3", "n4"}},
	)
	inst.SetGoalReachable("n1", "n4")

	driver := newDriver(t, inst.Problem)
	res := driver.Search(search.Options{Policy: search.BreadthFirstPolicy})

	require.Equal(t, search.Solved, res.Status)
	require.Empty(t, res.Plan, "axiom closure already derives (reachable n1 n4) in the initial state")
	require.Equal(t, 0.0, res.Cost)
	require.Zero(t, res.Expanded)
}

// buildTwoCostProblem is modeled after the classic action-costs setup: two
// actions achieve the same goal atom, one via an auxiliary (total-cost)
// increase of 2 and the other of 5.
func buildTwoCostProblem() *formalism.Problem {
	domain := formalism.NewDomain("two-costs")
	domain.RequiresActionCosts = true
	repos := domain.Repositories

	goalP := formalism.GetOrCreatePredicate[formalism.FluentTag](repos.FluentPredicates, "done", nil)
	goalAtom := formalism.GetOrCreateAtom(repos.FluentAtoms, goalP, nil)

	totalCost := formalism.GetOrCreateFunctionSkeleton(repos.FunctionSkeletons, "total-cost", formalism.FunctionAuxiliary, nil)
	totalCostFn := formalism.GetOrCreateFunction(repos.Functions, totalCost, nil)

	addDone := func(name string, amount float64) {
		formalism.GetOrCreateActionSchema(repos.ActionSchemas, name, nil,
			formalism.ConjunctiveCondition{},
			formalism.ConjunctiveEffect{
				Add:          []*formalism.Atom[formalism.FluentTag]{goalAtom},
				AuxiliaryOp:  formalism.OpIncrease,
				AuxiliaryFn:  totalCostFn,
				AuxiliaryExp: formalism.NewNumberExpression(amount),
			},
			nil)
	}
	addDone("cheap", 2)
	addDone("dear", 5)

	problem := formalism.NewProblem("two-costs-instance", domain)
	groundGoal := formalism.GetOrCreateAtom(problem.Repositories.FluentAtoms, goalP, nil)
	problem.Goal.PositiveFluent = []formalism.Literal[formalism.FluentTag]{formalism.NewLiteral(formalism.Positive, groundGoal)}
	return problem
}

func TestAStarPrefersCheaperActionCost(t *testing.T) {
	driver := newDriver(t, buildTwoCostProblem())
	res := driver.Search(search.Options{Policy: search.AStarPolicy, Heuristic: search.ZeroHeuristic{}})

	require.Equal(t, search.Solved, res.Status)
	require.Len(t, res.Plan, 1)
	require.Equal(t, "cheap", res.Plan[0].Schema().Name())
	require.Equal(t, 2.0, res.Cost)
}

func TestCancellationStopsSearchBeforeExpansion(t *testing.T) {
	driver, _ := buildBlocksworldDriver(t)
	cancelled := make(chan struct{})
	close(cancelled)

	res := driver.Search(search.Options{Policy: search.BreadthFirstPolicy, Cancel: cancelled})
	require.Equal(t, search.OutOfTime, res.Status)
	require.Zero(t, res.Expanded, "a cancel flag set before the first iteration must stop the loop at its head")
}

func TestNoPruningStillFindsAPlanButGeneratesAtLeastAsMuch(t *testing.T) {
	driver, _ := buildBlocksworldDriver(t)
	dup := driver.Search(search.Options{Policy: search.BreadthFirstPolicy})

	driver2, _ := buildBlocksworldDriver(t)
	noPrune := driver2.Search(search.Options{Policy: search.BreadthFirstPolicy, Pruning: search.NoPruning{}})

	require.Equal(t, search.Solved, noPrune.Status)
	require.GreaterOrEqual(t, noPrune.Generated, dup.Generated, "never discarding re-generated successors can only generate as many or more states")
}
