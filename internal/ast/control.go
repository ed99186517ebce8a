package ast

import (
	"fmt"

	"github.com/afc/edgevm/internal/types"
)

// If evaluates Cond (must be Bool); on true evaluates Then, else Else.
// Branch types must match exactly, with no cross-promotion. Else may be nil
// for a bodyless `if` with no else clause, in which case both branches are
// treated as Void.
type If struct {
	base
	Cond, Then, Else Node
}

func NewIf(pos Position, cond, then, els Node) *If {
	p := types.Combine(cond.Purity(), then.Purity())
	if els != nil {
		p = types.Combine(p, els.Purity())
	}
	return &If{base: base{pos: pos, purity: p}, Cond: cond, Then: then, Else: els}
}

func (n *If) Types() []types.Type { return n.Then.Types() }

func (n *If) ReturnTypes() []types.Type {
	var elseReturns []types.Type
	if n.Else != nil {
		elseReturns = n.Else.ReturnTypes()
	}
	combined, ok := CombineReturnTypes(n.Then.ReturnTypes(), elseReturns)
	if !ok {
		return nil
	}
	return combined
}

func (n *If) Evaluate(ctx EvalContext, expected types.Type) (Output, error) {
	cond, err := ctx.Bounce(n.Cond, types.Bool)
	if err != nil || cond.Returning {
		return cond, err
	}
	if !cond.Value.IsVoid() && cond.Value.Type().Kind == types.KindBool && cond.Value.Bool() {
		return ctx.Bounce(n.Then, expected)
	}
	if n.Else == nil {
		return Output{}, nil
	}
	return ctx.Bounce(n.Else, expected)
}

// While loops while Cond evaluates true; the loop's own value is Void
//. Body's early return propagates out of the
// loop.
type While struct {
	base
	Cond, Body Node
}

func NewWhile(pos Position, cond, body Node) *While {
	return &While{base: base{pos: pos, purity: types.Combine(cond.Purity(), body.Purity())}, Cond: cond, Body: body}
}

func (n *While) Types() []types.Type       { return nil }
func (n *While) ReturnTypes() []types.Type { return n.Body.ReturnTypes() }

func (n *While) Evaluate(ctx EvalContext, expected types.Type) (Output, error) {
	for {
		cond, err := ctx.Bounce(n.Cond, types.Bool)
		if err != nil || cond.Returning {
			return cond, err
		}
		if cond.Value.Type().Kind != types.KindBool {
			return Output{}, fmt.Errorf("while condition must be Bool")
		}
		if !cond.Value.Bool() {
			return Output{}, nil
		}
		out, err := ctx.Bounce(n.Body, types.Void)
		if err != nil || out.Returning {
			return out, err
		}
	}
}

// DesugarFor builds `{ init; while(cond) { body; step; } }` from its parts.
// The for-loop therefore has no dedicated AST node; the parser calls this
// directly.
func DesugarFor(pos Position, init, cond, step, body Node) Node {
	loopBody := NewAppend(body.Pos(), body, step)
	loop := NewWhile(pos, cond, loopBody)
	return NewAppend(pos, init, loop)
}
