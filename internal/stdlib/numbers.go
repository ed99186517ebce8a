package stdlib

import (
	"math"
	"math/big"

	"github.com/afc/edgevm/internal/ast"
	"github.com/afc/edgevm/internal/gcpool"
	"github.com/afc/edgevm/internal/ident"
	"github.com/afc/edgevm/internal/numeric"
	"github.com/afc/edgevm/internal/otype"
	"github.com/afc/edgevm/internal/rterr"
	"github.com/afc/edgevm/internal/scope"
	"github.com/afc/edgevm/internal/types"
	"github.com/afc/edgevm/internal/value"
)

// RegisterNumbers wires the `number` pseudo-object-type's tostring method
// and the free transcendental functions §6.2 lists
// (log/log2/log10/exp/exp2/pow). The canonicalised big.Rat has no native
// transcendental operations, so these round-trip through float64 the way
// the teacher's internal/interp/builtins/math_advanced.go does for its own
// arbitrary-precision-adjacent Decimal type.
func RegisterNumbers(pool *gcpool.Pool, env *scope.Environment) {
	registerTable(env, "number", func(t *otype.ObjectType) {
		method(pool, t, "tostring", types.Number, []types.Type{types.Number}, types.String, types.Pure, func(ctx ast.EvalContext, args []value.Value) (value.Value, error) {
			precision, err := args[1].Number().ToInteger()
			if err != nil {
				return value.Value{}, rterr.New(rterr.KindNumericConversion, "tostring: precision must be an integer: %v", err)
			}
			s, err := receiverNumber(args).ToString(int(precision))
			if err != nil {
				return value.Value{}, err
			}
			return value.Str(s), nil
		})
	})

	unary := func(name string, f func(float64) float64) {
		freeFn(pool, env, ident.Identifier(name), []types.Type{types.Number}, types.Number, types.Pure, func(ctx ast.EvalContext, args []value.Value) (value.Value, error) {
			x, err := toFloat(args[0].Number())
			if err != nil {
				return value.Value{}, err
			}
			return value.Num(fromFloat(f(x))), nil
		})
	}
	unary("log", math.Log)
	unary("log2", math.Log2)
	unary("log10", math.Log10)
	unary("exp", math.Exp)
	unary("exp2", math.Exp2)

	freeFn(pool, env, "pow", []types.Type{types.Number, types.Number}, types.Number, types.Pure, func(ctx ast.EvalContext, args []value.Value) (value.Value, error) {
		base, err := toFloat(args[0].Number())
		if err != nil {
			return value.Value{}, err
		}
		exp, err := toFloat(args[1].Number())
		if err != nil {
			return value.Value{}, err
		}
		return value.Num(fromFloat(math.Pow(base, exp))), nil
	})
}

func toFloat(n *numeric.Number) (float64, error) {
	r, err := n.Value()
	if err != nil {
		return 0, err
	}
	f, _ := r.Float64()
	return f, nil
}

func fromFloat(f float64) *numeric.Number {
	r := new(big.Rat)
	r.SetFloat64(f)
	return numeric.FromRat(r)
}
