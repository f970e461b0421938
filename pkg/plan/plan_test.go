package plan_test

import (
	"bytes"
	"testing"

	"github.com/simon-stahlberg/mimir-sub004/examples/blocksworld"
	"github.com/simon-stahlberg/mimir-sub004/pkg/axiom"
	"github.com/simon-stahlberg/mimir-sub004/pkg/grounding"
	"github.com/simon-stahlberg/mimir-sub004/pkg/matchtree"
	"github.com/simon-stahlberg/mimir-sub004/pkg/plan"
	"github.com/simon-stahlberg/mimir-sub004/pkg/search"
	"github.com/simon-stahlberg/mimir-sub004/pkg/state"
	"github.com/stretchr/testify/require"
)

func TestWriteReadResolveRoundTrip(t *testing.T) {
	inst := blocksworld.Build([]string{"a", "b", "c"})
	inst.SetGoalOn("a", "b")
	inst.SetGoalOn("b", "c")

	result, err := grounding.Ground(inst.Problem)
	require.NoError(t, err)
	closer := axiom.NewGroundedEvaluator(result.Axioms, result.Strata, matchtree.DefaultBuildOptions())
	states := state.NewRepository(inst.Problem, closer)
	driver := search.NewDriver(inst.Problem, states, result.Actions, matchtree.DefaultBuildOptions())
	res := driver.Search(search.Options{Policy: search.BreadthFirstPolicy})
	require.Equal(t, search.Solved, res.Status)

	var buf bytes.Buffer
	require.NoError(t, plan.Write(&buf, res.Plan, res.Cost))

	parsed, err := plan.Read(&buf)
	require.NoError(t, err)
	require.True(t, parsed.HasCost)
	require.Equal(t, res.Cost, parsed.Cost)
	require.Len(t, parsed.Actions, len(res.Plan))

	for i, pa := range parsed.Actions {
		resolved, err := plan.Resolve(pa, inst.Domain, inst.Problem.Repositories)
		require.NoError(t, err)
		require.Equal(t, res.Plan[i].Index(), resolved.Index(), "resolving a parsed action must intern back to the same ground action")
	}
}

func TestReadToleratesBlankLinesAndMissingCost(t *testing.T) {
	input := "\n(pickup a)\n\n(stack a b)\n"
	parsed, err := plan.Read(bytes.NewBufferString(input))
	require.NoError(t, err)
	require.False(t, parsed.HasCost)
	require.Equal(t, []plan.Action{{Name: "pickup", Args: []string{"a"}}, {Name: "stack", Args: []string{"a", "b"}}}, parsed.Actions)
}

func TestReadRejectsMalformedActionLine(t *testing.T) {
	_, err := plan.Read(bytes.NewBufferString("pickup a)\n"))
	require.Error(t, err)
}
