package grounding_test

import (
	"testing"

	"github.com/simon-stahlberg/mimir-sub004/pkg/formalism"
	"github.com/simon-stahlberg/mimir-sub004/pkg/grounding"
	"github.com/stretchr/testify/require"
)

// buildAuxiliaryDomain builds a one-action, one-object domain whose single
// action's effect carries an auxiliary (total-cost) numeric contribution,
// optionally declaring the domain's action-costs requirement.
func buildAuxiliaryDomain(requiresActionCosts bool) (*formalism.Domain, *formalism.Problem) {
	domain := formalism.NewDomain("aux-demo")
	domain.RequiresActionCosts = requiresActionCosts
	repos := domain.Repositories

	onP := formalism.GetOrCreatePredicate[formalism.FluentTag](repos.FluentPredicates, "on", nil)
	onAtom := formalism.GetOrCreateAtom(repos.FluentAtoms, onP, nil)

	totalCostSkeleton := formalism.GetOrCreateFunctionSkeleton(repos.FunctionSkeletons, "total-cost", formalism.FunctionAuxiliary, nil)
	totalCostFn := formalism.GetOrCreateFunction(repos.Functions, totalCostSkeleton, nil)

	effect := formalism.ConjunctiveEffect{
		Add:          []*formalism.Atom[formalism.FluentTag]{onAtom},
		AuxiliaryOp:  formalism.OpIncrease,
		AuxiliaryFn:  totalCostFn,
		AuxiliaryExp: formalism.NewNumberExpression(3),
	}
	formalism.GetOrCreateActionSchema(repos.ActionSchemas, "act", nil, formalism.ConjunctiveCondition{}, effect, nil)

	problem := formalism.NewProblem("aux-demo-instance", domain)
	return domain, problem
}

func TestGroundRejectsAuxiliaryEffectWithoutActionCosts(t *testing.T) {
	_, problem := buildAuxiliaryDomain(false)
	_, err := grounding.Ground(problem)
	require.Error(t, err)
	var auxErr *grounding.ErrAuxiliaryWithoutCost
	require.ErrorAs(t, err, &auxErr)
	require.Equal(t, "act", auxErr.ActionName)
}

func TestGroundAcceptsAuxiliaryEffectUnderActionCosts(t *testing.T) {
	_, problem := buildAuxiliaryDomain(true)
	result, err := grounding.Ground(problem)
	require.NoError(t, err)
	require.Len(t, result.Actions, 1)
}
