package ast

import (
	"github.com/afc/edgevm/internal/types"
	"github.com/afc/edgevm/internal/value"
)

// base holds the fields every node variant carries, embedded rather than
// repeated on every node.
type base struct {
	pos     Position
	purity  types.Purity
}

func (b base) Pos() Position    { return b.pos }
func (b base) Purity() types.Purity { return b.purity }

// Constant returns the stored value unconditionally and is always pure.
type Constant struct {
	base
	Value value.Value
}

// NewConstant builds a Constant node.
func NewConstant(pos Position, v value.Value) *Constant {
	return &Constant{base: base{pos: pos, purity: types.Pure}, Value: v}
}

func (c *Constant) Types() []types.Type       { return []types.Type{c.Value.Type()} }
func (c *Constant) ReturnTypes() []types.Type { return nil }

func (c *Constant) Evaluate(ctx EvalContext, expected types.Type) (Output, error) {
	return Output{Value: c.Value}, nil
}
