package state

import (
	"math"

	"github.com/simon-stahlberg/mimir-sub004/pkg/formalism"
)

// GetOrCreateSuccessor computes and interns the successor of (state,
// action):
//
//  1. Start from state's fluent bitset and numeric vector.
//  2. Apply the action's unconditional effect: positive literals set bits,
//     then negative literals clear bits (positives-before-negatives is the
//     standard PDDL conflict-resolution order). Numeric effects are applied
//     in one pass against the *old* (pre-effect) numeric vector.
//  3. Each conditional effect's local condition is evaluated against the
//     pre-effect (fluent ∪ derived ∪ numeric) snapshot; if it holds, its
//     effect is applied the same way.
//  4. The derived bitset is recomputed from scratch via the axiom evaluator.
//  5. Cost is the metric's ground expression evaluated on the pre-effect
//     numeric vector; without a metric expression it is the transition's
//     auxiliary (total-cost) increase — unconditional plus fired
//     conditional contributions — or 1.0 when the action declares no
//     auxiliary effect at all.
//  6. The result is interned; if already present, the existing handle is
//     reused.
func (r *Repository) GetOrCreateSuccessor(s *DenseState, action *formalism.GroundAction, metric *formalism.OptimizationMetric) (*DenseState, float64) {
	preFluent := s.Fluent()
	preDerived := s.Derived()
	preNumeric := s.Numeric()

	fluent := preFluent.Clone()
	numeric := preNumeric.Clone()

	applyConjunctiveEffect(action.Effect(), preNumeric, &fluent, &numeric)

	var fired []formalism.ConjunctiveEffect
	for _, ce := range action.ConditionalEffects() {
		if evalCondition(&ce.Condition, preFluent, preDerived, preNumeric) {
			effect := ce.Effect
			applyConjunctiveEffect(&effect, preNumeric, &fluent, &numeric)
			fired = append(fired, ce.Effect)
		}
	}

	cost := computeCost(metric, preNumeric, action, fired)

	derived := r.closer.Close(fluent.Clone(), numeric)
	next := r.intern(fluent.Clone(), derived, numeric)
	return next, cost
}

// applyConjunctiveEffect applies add/delete literals (positives before
// negatives) and numeric effects to fluent/numeric in place. preNumeric is
// always the pre-transition snapshot, so fluent numeric effects evaluate
// deterministically even when several effects touch the same function
// across one action.
func applyConjunctiveEffect(effect *formalism.ConjunctiveEffect, preNumeric NumericVector, fluent *Bitset, numeric *NumericVector) {
	for _, a := range effect.Add {
		fluent.Set(a.Index())
	}
	for _, a := range effect.Delete {
		fluent.Clear(a.Index())
	}
	for _, ne := range effect.Numeric {
		applyNumericEffect(ne.Target.Index(), ne.Op, ne.Expr, preNumeric, numeric)
	}
	// The auxiliary (total-cost) contribution is never written into the
	// dense numeric vector: auxiliary functions are metric-only and
	// evalExpression's function-ref case refuses to read anything but a
	// fluent function back out of it. computeCost reads the
	// effect's AuxiliaryExp directly instead.
}

func applyNumericEffect(idx int, op formalism.NumericEffectOp, expr *formalism.FunctionExpression, preNumeric NumericVector, numeric *NumericVector) {
	if idx >= len(*numeric) {
		grown := make(NumericVector, idx+1)
		copy(grown, *numeric)
		for i := len(*numeric); i <= idx; i++ {
			grown[i] = math.NaN()
		}
		*numeric = grown
	}
	rhs := evalExpression(expr, preNumeric)
	(*numeric)[idx] = applyNumericOp(op, preNumeric.Get(idx), rhs)
}

func applyNumericOp(op formalism.NumericEffectOp, old, rhs float64) float64 {
	switch op {
	case formalism.OpAssign:
		return rhs
	case formalism.OpScaleUp:
		return old * rhs
	case formalism.OpScaleDown:
		return old / rhs
	case formalism.OpIncrease:
		return old + rhs
	case formalism.OpDecrease:
		return old - rhs
	default:
		return math.NaN()
	}
}

// evalExpression evaluates a ground FunctionExpression against a numeric
// vector. Any undefined operand poisons the whole expression with NaN.
func evalExpression(e *formalism.FunctionExpression, numeric NumericVector) float64 {
	switch e.Kind() {
	case formalism.ExprNumber:
		return e.Number()
	case formalism.ExprBinaryOp:
		lhs := evalExpression(e.Operands()[0], numeric)
		rhs := evalExpression(e.Operands()[1], numeric)
		switch e.BinaryOperator() {
		case formalism.OpAdd:
			return lhs + rhs
		case formalism.OpSub:
			return lhs - rhs
		case formalism.OpMul:
			return lhs * rhs
		case formalism.OpDiv:
			return lhs / rhs
		}
		return math.NaN()
	case formalism.ExprMultiOp:
		ops := e.Operands()
		if len(ops) == 0 {
			if e.MultiOperator() == formalism.OpMultiAdd {
				return 0
			}
			return 1
		}
		acc := evalExpression(ops[0], numeric)
		for _, o := range ops[1:] {
			v := evalExpression(o, numeric)
			if e.MultiOperator() == formalism.OpMultiAdd {
				acc += v
			} else {
				acc *= v
			}
		}
		return acc
	case formalism.ExprUnaryMinus:
		return -evalExpression(e.Operands()[0], numeric)
	case formalism.ExprFunctionRef:
		fn := e.FunctionRef()
		if fn.Category() != formalism.FunctionFluent {
			// Grounding folds every static function reference into a
			// number expression, and auxiliary functions never occupy a
			// vector slot, so a non-fluent ref surviving to evaluation is
			// an unground expression; treat it as undefined
			// (NaN-propagating) rather than panicking.
			return math.NaN()
		}
		return numeric.Get(fn.Index())
	default:
		return math.NaN()
	}
}

// evalCondition tests a ground ConjunctiveCondition against (fluent,
// derived, numeric). Static literals are assumed already discharged at
// grounding time and are not re-tested here.
func evalCondition(cond *formalism.ConjunctiveCondition, fluent, derived Bitset, numeric NumericVector) bool {
	for _, lit := range cond.PositiveFluent {
		if !fluent.Test(lit.Atom.Index()) {
			return false
		}
	}
	for _, lit := range cond.NegativeFluent {
		if fluent.Test(lit.Atom.Index()) {
			return false
		}
	}
	for _, lit := range cond.PositiveDerived {
		if !derived.Test(lit.Atom.Index()) {
			return false
		}
	}
	for _, lit := range cond.NegativeDerived {
		if derived.Test(lit.Atom.Index()) {
			return false
		}
	}
	for _, nc := range cond.Numeric {
		lhs := evalExpression(nc.Left(), numeric)
		rhs := evalExpression(nc.Right(), numeric)
		if !nc.Comparator().Evaluate(lhs, rhs) {
			return false
		}
	}
	return true
}

// EvalCondition exports evalCondition for use by goal-checking code outside
// this package (search driver, state repository callers).
func EvalCondition(cond *formalism.ConjunctiveCondition, fluent, derived Bitset, numeric NumericVector) bool {
	return evalCondition(cond, fluent, derived, numeric)
}

// EvalNumericConstraint exports the numeric-constraint test used by the
// match tree's numeric selector nodes so that package matchtree
// never has to duplicate expression evaluation.
func EvalNumericConstraint(nc *formalism.NumericConstraint, numeric NumericVector) bool {
	lhs := evalExpression(nc.Left(), numeric)
	rhs := evalExpression(nc.Right(), numeric)
	return nc.Comparator().Evaluate(lhs, rhs)
}

// computeCost resolves a transition's cost: the metric's ground expression
// evaluated on the pre-effect numeric vector when a metric is declared;
// otherwise, when the action declares any auxiliary (total-cost) effect,
// the total increase magnitude its transition actually applied — the
// unconditional contribution plus that of every conditional effect that
// fired (an all-conditional cost whose guards all failed contributes 0);
// otherwise the satisficing default of 1.0.
func computeCost(metric *formalism.OptimizationMetric, preNumeric NumericVector, action *formalism.GroundAction, fired []formalism.ConjunctiveEffect) float64 {
	if metric != nil && metric.Expression != nil {
		return evalExpression(metric.Expression, preNumeric)
	}
	hasAux := action.Effect().AuxiliaryFn != nil
	for _, ce := range action.ConditionalEffects() {
		if ce.Effect.AuxiliaryFn != nil {
			hasAux = true
		}
	}
	if !hasAux {
		return 1.0
	}
	total := 0.0
	if aux := action.Effect().AuxiliaryExp; aux != nil {
		total += evalExpression(aux, preNumeric)
	}
	for _, eff := range fired {
		if eff.AuxiliaryExp != nil {
			total += evalExpression(eff.AuxiliaryExp, preNumeric)
		}
	}
	return total
}
