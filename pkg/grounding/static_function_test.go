package grounding_test

import (
	"testing"

	"github.com/simon-stahlberg/mimir-sub004/pkg/formalism"
	"github.com/simon-stahlberg/mimir-sub004/pkg/grounding"
	"github.com/simon-stahlberg/mimir-sub004/pkg/state"
	"github.com/stretchr/testify/require"
)

// buildCapacityProblem is a one-action domain gated by a static numeric
// function: "load" requires (>= (capacity) 3). capacity is a static
// function, so its problem-declared value must be folded into the ground
// constraint at grounding time. declare=false leaves the value undeclared.
func buildCapacityProblem(t *testing.T, declare bool, value float64) *formalism.Problem {
	t.Helper()
	domain := formalism.NewDomain("capacity-demo")
	repos := domain.Repositories

	loadedP := formalism.GetOrCreatePredicate[formalism.FluentTag](repos.FluentPredicates, "loaded", nil)
	loadedAtom := formalism.GetOrCreateAtom(repos.FluentAtoms, loadedP, nil)

	capSkel := formalism.GetOrCreateFunctionSkeleton(repos.FunctionSkeletons, "capacity", formalism.FunctionStatic, nil)
	capFn := formalism.GetOrCreateFunction(repos.Functions, capSkel, nil)

	constraint := formalism.GetOrCreateNumericConstraint(repos.NumericConstraints,
		formalism.CompGreaterEqual,
		formalism.NewFunctionRefExpression(capFn),
		formalism.NewNumberExpression(3))

	formalism.GetOrCreateActionSchema(repos.ActionSchemas, "load", nil,
		formalism.ConjunctiveCondition{Numeric: []*formalism.NumericConstraint{constraint}},
		formalism.ConjunctiveEffect{Add: []*formalism.Atom[formalism.FluentTag]{loadedAtom}},
		nil)

	problem := formalism.NewProblem("capacity-instance", domain)
	if declare {
		capGround := formalism.GetOrCreateFunction(problem.Repositories.Functions, capSkel, nil)
		problem.SetStaticFunctionValue(capGround, value)
	}
	return problem
}

func groundedConstraint(t *testing.T, problem *formalism.Problem) *formalism.NumericConstraint {
	t.Helper()
	result, err := grounding.Ground(problem)
	require.NoError(t, err)
	require.Len(t, result.Actions, 1)
	require.Len(t, result.Actions[0].Condition().Numeric, 1)
	return result.Actions[0].Condition().Numeric[0]
}

func TestGroundFoldsStaticFunctionValueIntoNumber(t *testing.T) {
	problem := buildCapacityProblem(t, true, 5)
	nc := groundedConstraint(t, problem)

	require.Equal(t, formalism.ExprNumber, nc.Left().Kind(), "a static function reference must be folded to a plain number at grounding")
	require.Equal(t, 5.0, nc.Left().Number())
	require.True(t, state.EvalNumericConstraint(nc, state.NewNumericVector(0)))
}

func TestFoldedStaticValueBelowThresholdFailsConstraint(t *testing.T) {
	problem := buildCapacityProblem(t, true, 2)
	nc := groundedConstraint(t, problem)

	require.Equal(t, 2.0, nc.Left().Number())
	require.False(t, state.EvalNumericConstraint(nc, state.NewNumericVector(0)))
}

func TestUndeclaredStaticValueFoldsToUndefined(t *testing.T) {
	problem := buildCapacityProblem(t, false, 0)
	nc := groundedConstraint(t, problem)

	require.Equal(t, formalism.ExprNumber, nc.Left().Kind())
	require.False(t, state.EvalNumericConstraint(nc, state.NewNumericVector(0)), "an undeclared static value is undefined and never satisfies a comparator")
}
