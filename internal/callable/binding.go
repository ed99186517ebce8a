package callable

import (
	"github.com/afc/edgevm/internal/ast"
	"github.com/afc/edgevm/internal/gcpool"
	"github.com/afc/edgevm/internal/types"
	"github.com/afc/edgevm/internal/value"
)

// TypeMapper is the host's adapter between a Go type T and the VM's
// value.Value, per the native binding protocol: Get extracts a
// T from a Value, New boxes a T back into a Value, and VMType is the
// language-visible type the mapper represents.
type TypeMapper[T any] struct {
	VMType types.Type
	Get    func(value.Value) (T, error)
	New    func(pool *gcpool.Pool, v T) value.Value
}

// Bind0 through Bind3 construct a native Function from a host function of
// 0 to 3 arguments: map each argument (any mapping failure surfaces as the
// first evaluation error), call the host function, map the result. Higher
// arities follow the same shape and are omitted for brevity; host code
// needing more arguments can build a Function directly with a
// hand-written NativeFunc.

func Bind0[R any](output TypeMapper[R], purity types.Purity, fn func() (R, error)) *Function {
	return &Function{
		Inputs: nil,
		Output: output.VMType,
		Purity: purity,
		Native: func(ctx ast.EvalContext, args []value.Value) (value.Value, error) {
			r, err := fn()
			if err != nil {
				return value.Value{}, err
			}
			return output.New(ctx.Pool(), r), nil
		},
	}
}

func Bind1[A, R any](a TypeMapper[A], output TypeMapper[R], purity types.Purity, fn func(A) (R, error)) *Function {
	return &Function{
		Inputs: []types.Type{a.VMType},
		Output: output.VMType,
		Purity: purity,
		Native: func(ctx ast.EvalContext, args []value.Value) (value.Value, error) {
			av, err := a.Get(args[0])
			if err != nil {
				return value.Value{}, err
			}
			r, err := fn(av)
			if err != nil {
				return value.Value{}, err
			}
			return output.New(ctx.Pool(), r), nil
		},
	}
}

func Bind2[A, B, R any](a TypeMapper[A], b TypeMapper[B], output TypeMapper[R], purity types.Purity, fn func(A, B) (R, error)) *Function {
	return &Function{
		Inputs: []types.Type{a.VMType, b.VMType},
		Output: output.VMType,
		Purity: purity,
		Native: func(ctx ast.EvalContext, args []value.Value) (value.Value, error) {
			av, err := a.Get(args[0])
			if err != nil {
				return value.Value{}, err
			}
			bv, err := b.Get(args[1])
			if err != nil {
				return value.Value{}, err
			}
			r, err := fn(av, bv)
			if err != nil {
				return value.Value{}, err
			}
			return output.New(ctx.Pool(), r), nil
		},
	}
}

func Bind3[A, B, C, R any](a TypeMapper[A], b TypeMapper[B], c TypeMapper[C], output TypeMapper[R], purity types.Purity, fn func(A, B, C) (R, error)) *Function {
	return &Function{
		Inputs: []types.Type{a.VMType, b.VMType, c.VMType},
		Output: output.VMType,
		Purity: purity,
		Native: func(ctx ast.EvalContext, args []value.Value) (value.Value, error) {
			av, err := a.Get(args[0])
			if err != nil {
				return value.Value{}, err
			}
			bv, err := b.Get(args[1])
			if err != nil {
				return value.Value{}, err
			}
			cv, err := c.Get(args[2])
			if err != nil {
				return value.Value{}, err
			}
			r, err := fn(av, bv, cv)
			if err != nil {
				return value.Value{}, err
			}
			return output.New(ctx.Pool(), r), nil
		},
	}
}
