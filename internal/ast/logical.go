package ast

import (
	"fmt"

	"github.com/afc/edgevm/internal/types"
	"github.com/afc/edgevm/internal/value"
)

// LogicalOp distinguishes && from || for the short-circuiting Logical node
//.
type LogicalOp int

const (
	LogicalAnd LogicalOp = iota
	LogicalOr
)

// Logical short-circuits; both sides must be Bool.
type Logical struct {
	base
	Op          LogicalOp
	Left, Right Node
}

func NewLogical(pos Position, op LogicalOp, left, right Node) *Logical {
	return &Logical{base: base{pos: pos, purity: types.Combine(left.Purity(), right.Purity())}, Op: op, Left: left, Right: right}
}

func (n *Logical) Types() []types.Type { return []types.Type{types.Bool} }

func (n *Logical) ReturnTypes() []types.Type {
	combined, ok := CombineReturnTypes(n.Left.ReturnTypes(), n.Right.ReturnTypes())
	if !ok {
		return nil
	}
	return combined
}

func (n *Logical) Evaluate(ctx EvalContext, expected types.Type) (Output, error) {
	left, err := ctx.Bounce(n.Left, types.Bool)
	if err != nil || left.Returning {
		return left, err
	}
	if left.Value.Type().Kind != types.KindBool {
		return Output{}, fmt.Errorf("logical operand must be Bool")
	}
	lb := left.Value.Bool()
	if n.Op == LogicalAnd && !lb {
		return Output{Value: value.Bool(false)}, nil
	}
	if n.Op == LogicalOr && lb {
		return Output{Value: value.Bool(true)}, nil
	}
	right, err := ctx.Bounce(n.Right, types.Bool)
	if err != nil || right.Returning {
		return right, err
	}
	if right.Value.Type().Kind != types.KindBool {
		return Output{}, fmt.Errorf("logical operand must be Bool")
	}
	return Output{Value: value.Bool(right.Value.Bool())}, nil
}
