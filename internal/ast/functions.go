package ast

import (
	"github.com/afc/edgevm/internal/ident"
	"github.com/afc/edgevm/internal/types"
	"github.com/afc/edgevm/internal/value"
)

// Return evaluates Expr and flags the output as an early return; the
// enclosing function's trampoline invocation catches this and unwraps it
// to a normal value.
type Return struct {
	base
	Expr Node
}

func NewReturn(pos Position, expr Node) *Return {
	return &Return{base: base{pos: pos, purity: expr.Purity()}, Expr: expr}
}

func (r *Return) Types() []types.Type       { return nil }
func (r *Return) ReturnTypes() []types.Type { return r.Expr.Types() }

func (r *Return) Evaluate(ctx EvalContext, expected types.Type) (Output, error) {
	exprTypes := r.Expr.Types()
	var want types.Type
	if len(exprTypes) > 0 {
		want = exprTypes[0]
	}
	out, err := ctx.Bounce(r.Expr, want)
	if err != nil {
		return out, err
	}
	out.Returning = true
	return out, nil
}

// Call evaluates Callee to a callable, evaluates each argument strictly
// left-to-right against the callable's corresponding input type, then
// invokes it.
type Call struct {
	base
	Callee Node
	Args   []Node
	// ResultType/ArgTypes are fixed once overload resolution has chosen a
	// candidate at compile time (package compiler).
	ResultType types.Type
	ArgTypes   []types.Type
}

func NewCall(pos Position, callee Node, args []Node, resultType types.Type, argTypes []types.Type) *Call {
	p := callee.Purity()
	for _, a := range args {
		p = types.Combine(p, a.Purity())
	}
	return &Call{base: base{pos: pos, purity: p}, Callee: callee, Args: args, ResultType: resultType, ArgTypes: argTypes}
}

func (c *Call) Types() []types.Type { return []types.Type{c.ResultType} }

func (c *Call) ReturnTypes() []types.Type {
	rt := c.Callee.ReturnTypes()
	for _, a := range c.Args {
		var ok bool
		rt, ok = CombineReturnTypes(rt, a.ReturnTypes())
		if !ok {
			return nil
		}
	}
	return rt
}

func (c *Call) Evaluate(ctx EvalContext, expected types.Type) (Output, error) {
	calleeType := types.Function(c.ResultType, c.ArgTypes, types.Unknown)
	calleeOut, err := ctx.Bounce(c.Callee, calleeType)
	if err != nil || calleeOut.Returning {
		return calleeOut, err
	}
	fn := calleeOut.Value.Callable()

	args := make([]value.Value, len(c.Args))
	for i, a := range c.Args {
		out, err := ctx.Bounce(a, c.ArgTypes[i])
		if err != nil {
			return Output{}, err
		}
		if out.Returning {
			return out, nil
		}
		args[i] = out.Value
	}
	return ctx.Invoke(fn, args)
}

// Lambda captures the compile-time parent environment pointer; at
// evaluation time it becomes a function value whose body is "open a child
// env, bind parameters, evaluate body, promote result".
type Lambda struct {
	base
	Params     []ident.Identifier
	InputTypes []types.Type
	Output     types.Type
	Body       Node
}

func NewLambda(pos Position, params []ident.Identifier, inputTypes []types.Type, output types.Type, body Node) *Lambda {
	return &Lambda{base: base{pos: pos, purity: types.Pure}, Params: params, InputTypes: inputTypes, Output: output, Body: body}
}

func (l *Lambda) Types() []types.Type {
	return []types.Type{types.Function(l.Output, l.InputTypes, l.Body.Purity())}
}
func (l *Lambda) ReturnTypes() []types.Type { return nil }

func (l *Lambda) Evaluate(ctx EvalContext, expected types.Type) (Output, error) {
	closure := ctx.MakeClosure(l.InputTypes, l.Output, l.Body.Purity(), l.Params, l.Body, ctx.Env())
	return Output{Value: closure}, nil
}
