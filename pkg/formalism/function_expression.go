package formalism

import (
	"fmt"
	"math"
)

// ExprKind enumerates the closed variants of FunctionExpression.
type ExprKind uint8

const (
	ExprNumber ExprKind = iota
	ExprBinaryOp
	ExprMultiOp
	ExprUnaryMinus
	ExprFunctionRef
)

// BinaryOperator is the operator of a two-operand expression.
type BinaryOperator uint8

const (
	OpAdd BinaryOperator = iota
	OpSub
	OpMul
	OpDiv
)

func (o BinaryOperator) String() string {
	return [...]string{"+", "-", "*", "/"}[o]
}

// MultiOperator is the operator of a variadic expression (PDDL's n-ary +/*).
type MultiOperator uint8

const (
	OpMultiAdd MultiOperator = iota
	OpMultiMul
)

func (o MultiOperator) String() string {
	if o == OpMultiAdd {
		return "+"
	}
	return "*"
}

// FunctionExpression is the tagged union
// { number(c), binary-op(op,e1,e2), multi-op(op,[ei]), unary-minus(e), function-ref(f) }.
// Ground and lifted expressions share this type: a lifted expression's
// function-ref leaves hold functions whose terms may be variable terms;
// Ground builds a new tree whose function-refs hold object terms, leaving
// the lifted tree unchanged.
type FunctionExpression struct {
	kind     ExprKind
	number   float64
	binOp    BinaryOperator
	multiOp  MultiOperator
	operands []*FunctionExpression
	fn       *Function
}

func NewNumberExpression(c float64) *FunctionExpression {
	return &FunctionExpression{kind: ExprNumber, number: c}
}

func NewBinaryOpExpression(op BinaryOperator, lhs, rhs *FunctionExpression) *FunctionExpression {
	return &FunctionExpression{kind: ExprBinaryOp, binOp: op, operands: []*FunctionExpression{lhs, rhs}}
}

func NewMultiOpExpression(op MultiOperator, operands []*FunctionExpression) *FunctionExpression {
	return &FunctionExpression{kind: ExprMultiOp, multiOp: op, operands: operands}
}

func NewUnaryMinusExpression(e *FunctionExpression) *FunctionExpression {
	return &FunctionExpression{kind: ExprUnaryMinus, operands: []*FunctionExpression{e}}
}

func NewFunctionRefExpression(fn *Function) *FunctionExpression {
	return &FunctionExpression{kind: ExprFunctionRef, fn: fn}
}

func (e *FunctionExpression) Kind() ExprKind                     { return e.kind }
func (e *FunctionExpression) Number() float64                    { return e.number }
func (e *FunctionExpression) BinaryOperator() BinaryOperator     { return e.binOp }
func (e *FunctionExpression) MultiOperator() MultiOperator       { return e.multiOp }
func (e *FunctionExpression) Operands() []*FunctionExpression    { return e.operands }
func (e *FunctionExpression) FunctionRef() *Function             { return e.fn }

// Ground returns a new expression tree with every function-ref grounded
// under binding and interned via repos.Functions. Numbers and operators are
// copied as-is; the recursion bottoms out at leaves. A reference to a
// static function is folded into a plain number expression here, using the
// problem's declared value (or the undefined NaN when no value was
// declared): static values never change, so resolving them once at
// grounding keeps them out of every state's numeric vector.
func (e *FunctionExpression) Ground(repos *ProblemRepositories, binding []*Object) *FunctionExpression {
	switch e.kind {
	case ExprNumber:
		return NewNumberExpression(e.number)
	case ExprBinaryOp:
		return NewBinaryOpExpression(e.binOp, e.operands[0].Ground(repos, binding), e.operands[1].Ground(repos, binding))
	case ExprMultiOp:
		grounded := make([]*FunctionExpression, len(e.operands))
		for i, o := range e.operands {
			grounded[i] = o.Ground(repos, binding)
		}
		return NewMultiOpExpression(e.multiOp, grounded)
	case ExprUnaryMinus:
		return NewUnaryMinusExpression(e.operands[0].Ground(repos, binding))
	case ExprFunctionRef:
		fn := e.fn.Ground(repos.Functions, binding)
		if fn.Category() == FunctionStatic {
			value, ok := repos.StaticFunctionValues[fn.Index()]
			if !ok {
				value = math.NaN()
			}
			return NewNumberExpression(value)
		}
		return NewFunctionRefExpression(fn)
	default:
		panic("formalism: unreachable expression kind")
	}
}

func (e *FunctionExpression) String() string {
	switch e.kind {
	case ExprNumber:
		return fmt.Sprintf("%g", e.number)
	case ExprBinaryOp:
		return fmt.Sprintf("(%s %s %s)", e.binOp, e.operands[0], e.operands[1])
	case ExprMultiOp:
		s := "(" + e.multiOp.String()
		for _, o := range e.operands {
			s += " " + o.String()
		}
		return s + ")"
	case ExprUnaryMinus:
		return fmt.Sprintf("(- %s)", e.operands[0])
	case ExprFunctionRef:
		return e.fn.String()
	default:
		return "<invalid-expr>"
	}
}
