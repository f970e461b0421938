package state_test

import (
	"testing"

	"github.com/simon-stahlberg/mimir-sub004/pkg/formalism"
	"github.com/stretchr/testify/require"
)

// buildPaintProblem is a one-action domain whose paint action only colors a
// block when it is clean: (paint ?b ?c) with effect
// (when (clean ?b) (colored ?b ?c)). Static block/color predicates keep the
// grounder from cross-producting blocks with colors.
func buildPaintProblem(t *testing.T, initiallyClean bool) (*formalism.Problem, *formalism.Atom[formalism.FluentTag]) {
	t.Helper()
	domain := formalism.NewDomain("paint")
	repos := domain.Repositories

	vB := formalism.GetOrCreateVariable(repos.Variables, "b", 0)
	vC := formalism.GetOrCreateVariable(repos.Variables, "c", 1)
	tB := formalism.NewVariableTerm(vB)
	tC := formalism.NewVariableTerm(vC)

	blockP := formalism.GetOrCreatePredicate[formalism.StaticTag](repos.StaticPredicates, "block", []*formalism.Variable{vB})
	colorP := formalism.GetOrCreatePredicate[formalism.StaticTag](repos.StaticPredicates, "color", []*formalism.Variable{vC})
	cleanP := formalism.GetOrCreatePredicate[formalism.FluentTag](repos.FluentPredicates, "clean", []*formalism.Variable{vB})
	coloredP := formalism.GetOrCreatePredicate[formalism.FluentTag](repos.FluentPredicates, "colored", []*formalism.Variable{vB, vC})

	blockB := formalism.GetOrCreateAtom(repos.StaticAtoms, blockP, []formalism.Term{tB})
	colorC := formalism.GetOrCreateAtom(repos.StaticAtoms, colorP, []formalism.Term{tC})
	cleanB := formalism.GetOrCreateAtom(repos.FluentAtoms, cleanP, []formalism.Term{tB})
	coloredBC := formalism.GetOrCreateAtom(repos.FluentAtoms, coloredP, []formalism.Term{tB, tC})

	formalism.GetOrCreateActionSchema(repos.ActionSchemas, "paint",
		[]*formalism.Variable{vB, vC},
		formalism.ConjunctiveCondition{
			PositiveStatic: []formalism.Literal[formalism.StaticTag]{
				formalism.NewLiteral(formalism.Positive, blockB),
				formalism.NewLiteral(formalism.Positive, colorC),
			},
		},
		formalism.ConjunctiveEffect{},
		[]formalism.ConditionalEffect{{
			Condition: formalism.ConjunctiveCondition{
				PositiveFluent: []formalism.Literal[formalism.FluentTag]{formalism.NewLiteral(formalism.Positive, cleanB)},
			},
			Effect: formalism.ConjunctiveEffect{
				Add: []*formalism.Atom[formalism.FluentTag]{coloredBC},
			},
		}})

	problem := formalism.NewProblem("paint-instance", domain)
	prepos := problem.Repositories
	b1 := formalism.GetOrCreateObject(prepos.Objects, "b1")
	red := formalism.GetOrCreateObject(prepos.Objects, "red")

	problem.StaticInitialAtoms = append(problem.StaticInitialAtoms,
		formalism.GetOrCreateAtom(prepos.StaticAtoms, blockP, []formalism.Term{formalism.NewObjectTerm(b1)}),
		formalism.GetOrCreateAtom(prepos.StaticAtoms, colorP, []formalism.Term{formalism.NewObjectTerm(red)}))

	if initiallyClean {
		problem.FluentInitialAtoms = append(problem.FluentInitialAtoms,
			formalism.GetOrCreateAtom(prepos.FluentAtoms, cleanP, []formalism.Term{formalism.NewObjectTerm(b1)}))
	}

	coloredGround := formalism.GetOrCreateAtom(prepos.FluentAtoms, coloredP, []formalism.Term{
		formalism.NewObjectTerm(b1), formalism.NewObjectTerm(red)})
	return problem, coloredGround
}

func TestConditionalEffectFiresOnlyWhenGuardHolds(t *testing.T) {
	t.Run("clean block gets colored", func(t *testing.T) {
		problem, colored := buildPaintProblem(t, true)
		repo, result := groundedRepo(t, problem)
		require.Len(t, result.Actions, 1, "static typing must restrict paint to (paint b1 red)")

		initial := repo.GetOrCreateInitial()
		succ, _ := repo.GetOrCreateSuccessor(initial, result.Actions[0], &problem.Metric)

		require.True(t, succ.HoldsFluent(colored.Index()))
		require.Equal(t, 2, repo.Len(), "initial plus exactly one distinct successor")
	})

	t.Run("dirty block stays uncolored", func(t *testing.T) {
		problem, colored := buildPaintProblem(t, false)
		repo, result := groundedRepo(t, problem)
		require.Len(t, result.Actions, 1)

		initial := repo.GetOrCreateInitial()
		succ, _ := repo.GetOrCreateSuccessor(initial, result.Actions[0], &problem.Metric)

		require.False(t, succ.HoldsFluent(colored.Index()))
		require.Equal(t, initial.Index(), succ.Index(), "a no-op transition must intern back to the same state")
	})
}
