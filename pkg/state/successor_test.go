package state_test

import (
	"testing"

	"github.com/simon-stahlberg/mimir-sub004/examples/blocksworld"
	"github.com/simon-stahlberg/mimir-sub004/pkg/axiom"
	"github.com/simon-stahlberg/mimir-sub004/pkg/formalism"
	"github.com/simon-stahlberg/mimir-sub004/pkg/grounding"
	"github.com/simon-stahlberg/mimir-sub004/pkg/matchtree"
	"github.com/simon-stahlberg/mimir-sub004/pkg/state"
	"github.com/stretchr/testify/require"
)

func groundedRepo(t *testing.T, problem *formalism.Problem) (*state.Repository, *grounding.Result) {
	t.Helper()
	result, err := grounding.Ground(problem)
	require.NoError(t, err)
	closer := axiom.NewGroundedEvaluator(result.Axioms, result.Strata, matchtree.DefaultBuildOptions())
	return state.NewRepository(problem, closer), result
}

func findAction(t *testing.T, actions []*formalism.GroundAction, name string) *formalism.GroundAction {
	t.Helper()
	for _, a := range actions {
		if a.Schema().Name() == name {
			return a
		}
	}
	t.Fatalf("no ground action for schema %q", name)
	return nil
}

func TestSuccessorIsDeterministicAndContentAddressed(t *testing.T) {
	inst := blocksworld.Build([]string{"a", "b"})
	repo, result := groundedRepo(t, inst.Problem)

	initial := repo.GetOrCreateInitial()
	pickup := findAction(t, result.Actions, "pickup")

	succ1, cost1 := repo.GetOrCreateSuccessor(initial, pickup, &inst.Problem.Metric)
	succ2, cost2 := repo.GetOrCreateSuccessor(initial, pickup, &inst.Problem.Metric)

	require.Equal(t, succ1.Index(), succ2.Index(), "applying the same action to the same state must intern to the same handle")
	require.Equal(t, cost1, cost2)
	require.Equal(t, 2, repo.Len(), "initial state plus one successor, no duplicate")
}

func TestSuccessorOfPickupChangesFluentState(t *testing.T) {
	inst := blocksworld.Build([]string{"a"})
	repo, result := groundedRepo(t, inst.Problem)

	initial := repo.GetOrCreateInitial()
	pickup := findAction(t, result.Actions, "pickup")
	succ, _ := repo.GetOrCreateSuccessor(initial, pickup, &inst.Problem.Metric)

	require.NotEqual(t, initial.Index(), succ.Index())
	require.False(t, succ.Fluent().Equal(initial.Fluent()))
}

func TestSuccessorDefaultCostIsUnitWhenNoMetric(t *testing.T) {
	inst := blocksworld.Build([]string{"a"})
	repo, result := groundedRepo(t, inst.Problem)

	initial := repo.GetOrCreateInitial()
	pickup := findAction(t, result.Actions, "pickup")
	_, cost := repo.GetOrCreateSuccessor(initial, pickup, &inst.Problem.Metric)

	require.Equal(t, 1.0, cost, "blocksworld declares no action-cost metric, so every transition costs 1")
}
