package ast

import "github.com/afc/edgevm/internal/types"

// Append evaluates First; if it returns, propagates; else evaluates Second
// and yields its value. This is how block statements
// (`{ s1; s2; ...; sn }`) desugar: a right-leaning chain of Append nodes,
// the same way the original vm/append_expression.cc builds sequencing.
type Append struct {
	base
	First, Second Node
}

func NewAppend(pos Position, first, second Node) *Append {
	return &Append{base: base{pos: pos, purity: types.Combine(first.Purity(), second.Purity())}, First: first, Second: second}
}

func (a *Append) Types() []types.Type { return a.Second.Types() }

func (a *Append) ReturnTypes() []types.Type {
	combined, ok := CombineReturnTypes(a.First.ReturnTypes(), a.Second.ReturnTypes())
	if !ok {
		return nil
	}
	return combined
}

func (a *Append) Evaluate(ctx EvalContext, expected types.Type) (Output, error) {
	firstTypes := a.First.Types()
	var firstExpected types.Type
	if len(firstTypes) > 0 {
		firstExpected = firstTypes[0]
	}
	out, err := ctx.Bounce(a.First, firstExpected)
	if err != nil || out.Returning {
		return out, err
	}
	return ctx.Bounce(a.Second, expected)
}

// Block chains a slice of statements into a right-leaning Append tree,
// yielding Void if the slice is empty (an empty `{ }` body).
func Block(pos Position, stmts []Node, voidValue Node) Node {
	if len(stmts) == 0 {
		return voidValue
	}
	result := stmts[len(stmts)-1]
	for i := len(stmts) - 2; i >= 0; i-- {
		result = NewAppend(stmts[i].Pos(), stmts[i], result)
	}
	return result
}
