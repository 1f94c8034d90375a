package expr

import (
	"fmt"

	"github.com/hugr-lab/doctable-go/value"
	"github.com/hugr-lab/doctable-go/vector"
)

// UpdateOp is one update-expression node kind (spec.md §4.G "Update
// expressions").
type UpdateOp int

const (
	OpSet UpdateOp = iota
	OpGetDocField
	OpGetParam
	OpCalc
)

// CalcOp is the arithmetic/logical operator a Calc node applies.
// Unary ops (Sqrt, Cbrt, Factorial, Abs, Not) ignore the node's Right
// child.
type CalcOp int

const (
	CalcAdd CalcOp = iota
	CalcSub
	CalcMul
	CalcDiv
	CalcMod
	CalcSqrt
	CalcCbrt
	CalcFactorial
	CalcAbs
	CalcNot
)

// UpdateExpr is one node of an update-expression tree. The tree is
// immutable after construction, but evaluation writes each node's
// result into its own output slot, so a single tree instance is not
// safe for concurrent Execute calls (spec.md §4.G).
type UpdateExpr struct {
	Op      UpdateOp
	Key     string // Set / GetDocField target or source column
	Side    Side   // GetDocField: not read by Execute
	ParamID string // GetParam
	CalcOp  CalcOp // Calc
	Left    *UpdateExpr
	Right   *UpdateExpr

	output value.Value
}

// Output returns the value Execute last computed for this node.
func (n *UpdateExpr) Output() value.Value { return n.output }

// EvalContext binds one row's source/target chunk plus the bound
// parameter map an UpdateExpr tree executes against. A columnar
// update reads and writes the same chunk/row, so `to` and `from` from
// spec.md §4.G collapse into one Chunk/Row pair here.
type EvalContext struct {
	Chunk  *vector.DataChunk
	Row    int
	Cols   map[string]int
	Params map[string]value.Value
}

// Execute evaluates n's children depth-first (left before right),
// then runs n's own implementation, returning true if Set performed
// an in-place mutation anywhere in the subtree (spec.md §4.G
// "Execution contract").
func (n *UpdateExpr) Execute(ctx *EvalContext) (bool, error) {
	mutated := false
	if n.Left != nil {
		m, err := n.Left.Execute(ctx)
		if err != nil {
			return false, err
		}
		mutated = mutated || m
	}
	if n.Right != nil {
		m, err := n.Right.Execute(ctx)
		if err != nil {
			return false, err
		}
		mutated = mutated || m
	}

	switch n.Op {
	case OpGetDocField:
		idx, ok := ctx.Cols[n.Key]
		if !ok {
			return mutated, fmt.Errorf("%w: unknown column %q", ErrInvalidExpression, n.Key)
		}
		n.output = ctx.Chunk.Column(idx).Value(ctx.Row)
		return mutated, nil
	case OpGetParam:
		v, ok := ctx.Params[n.ParamID]
		if !ok {
			return mutated, fmt.Errorf("%w: unbound parameter %q", ErrInvalidExpression, n.ParamID)
		}
		n.output = v
		return mutated, nil
	case OpCalc:
		out, err := n.evalCalc()
		if err != nil {
			return mutated, err
		}
		n.output = out
		return mutated, nil
	case OpSet:
		if n.Left == nil {
			return mutated, fmt.Errorf("%w: set has no left operand", ErrInvalidExpression)
		}
		idx, ok := ctx.Cols[n.Key]
		if !ok {
			return mutated, fmt.Errorf("%w: unknown column %q", ErrInvalidExpression, n.Key)
		}
		if err := ctx.Chunk.Column(idx).SetValue(ctx.Row, n.Left.output); err != nil {
			return mutated, err
		}
		n.output = n.Left.output
		return true, nil
	default:
		return mutated, fmt.Errorf("%w: unknown update op %d", ErrInvalidExpression, n.Op)
	}
}

func (n *UpdateExpr) evalCalc() (value.Value, error) {
	if n.Left == nil {
		return value.Value{}, fmt.Errorf("%w: calc has no left operand", ErrInvalidExpression)
	}
	left := n.Left.output
	switch n.CalcOp {
	case CalcSqrt:
		return value.Sqrt(left)
	case CalcCbrt:
		return value.Cbrt(left)
	case CalcFactorial:
		return value.Factorial(left)
	case CalcAbs:
		return value.Abs(left)
	case CalcNot:
		return value.Not(left)
	}
	if n.Right == nil {
		return value.Value{}, fmt.Errorf("%w: binary calc op has no right operand", ErrInvalidExpression)
	}
	right := n.Right.output
	switch n.CalcOp {
	case CalcAdd:
		return value.Sum(left, right)
	case CalcSub:
		return value.Sub(left, right)
	case CalcMul:
		return value.Mul(left, right)
	case CalcDiv:
		return value.Div(left, right)
	case CalcMod:
		return value.Mod(left, right)
	default:
		return value.Value{}, fmt.Errorf("%w: unknown calc op %d", ErrInvalidExpression, n.CalcOp)
	}
}
