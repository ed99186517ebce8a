package stdlib

import (
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

// elementType is the VM-visible type VectorT and SetT elements carry. The
// type system has no parametric ObjectName (§3.2 lists ObjectName as a
// plain identifier, not a template), so a monomorphic host type cannot be
// re-instantiated per element type the way a generic container normally
// would; VectorT/SetT are therefore fixed containers of `number`, the
// scripting language's most common aggregate payload, rather than
// type-erased bags of arbitrary Value (which would make get/set/filter
// impossible to type-check at the call site). This is recorded as an Open
// Question resolution in DESIGN.md.
var elementType = types.Number

// vectorObject is VectorT's host payload: an ordered, GC-pool-registered
// slice of Values. Elements may themselves be GC-tracked (not true for the
// Number-only instantiation today, but the expansion callback is written
// generically so widening elementType later doesn't require touching it),
// matching §6.2's "containers with GC-tracked nested types participate in
// expansion".
type vectorObject struct {
	items []value.Value
}

func (o *vectorObject) TypeName() ident.Identifier { return "VectorT" }

func (o *vectorObject) Expand() []*gcpool.Handle {
	var out []*gcpool.Handle
	for _, v := range o.items {
		out = append(out, v.Expand()...)
	}
	return out
}

// setObject is SetT's host payload: an insertion-ordered slice with
// membership tested by value.Equal (so Contains/Insert/Erase are O(n),
// fine for the scripting-sized sets this language targets).
type setObject struct {
	items []value.Value
}

func (o *setObject) TypeName() ident.Identifier { return "SetT" }

func (o *setObject) Expand() []*gcpool.Handle {
	var out []*gcpool.Handle
	for _, v := range o.items {
		out = append(out, v.Expand()...)
	}
	return out
}

func asVector(v value.Value) (*vectorObject, error) {
	o, ok := v.Object().(*vectorObject)
	if !ok {
		return nil, rterr.New(rterr.KindNativeBindingFailure, "expected a VectorT value")
	}
	return o, nil
}

func asSet(v value.Value) (*setObject, error) {
	o, ok := v.Object().(*setObject)
	if !ok {
		return nil, rterr.New(rterr.KindNativeBindingFailure, "expected a SetT value")
	}
	return o, nil
}

func newVectorValue(pool *gcpool.Pool, items []value.Value) value.Value {
	o := &vectorObject{items: items}
	pool.Register(o.Expand)
	return value.Obj("VectorT", o)
}

func newSetValue(pool *gcpool.Pool, items []value.Value) value.Value {
	o := &setObject{items: items}
	pool.Register(o.Expand)
	return value.Obj("SetT", o)
}

// RegisterContainers wires VectorT and SetT (§6.2), grounded on the
// teacher's internal/interp/builtins/array.go and collections.go (Filter/
// ForEach as host-called callbacks via the same Invoke path a script-level
// call uses).
func RegisterContainers(pool *gcpool.Pool, env *scope.Environment) {
	vectorType := types.Object("VectorT")
	setType := types.Object("SetT")
	predType := types.Function(types.Bool, []types.Type{elementType}, types.Unknown)
	eachType := types.Function(types.Void, []types.Type{elementType}, types.Unknown)

	registerTable(env, "VectorT", func(t *otype.ObjectType) {
		method(pool, t, "size", vectorType, nil, types.Number, types.Pure, func(ctx ast.EvalContext, args []value.Value) (value.Value, error) {
			v, err := asVector(args[0])
			if err != nil {
				return value.Value{}, err
			}
			return value.Num(numeric.Int(int64(len(v.items)))), nil
		})
		method(pool, t, "empty", vectorType, nil, types.Bool, types.Pure, func(ctx ast.EvalContext, args []value.Value) (value.Value, error) {
			v, err := asVector(args[0])
			if err != nil {
				return value.Value{}, err
			}
			return value.Bool(len(v.items) == 0), nil
		})
		method(pool, t, "get", vectorType, []types.Type{types.Number}, elementType, types.Pure, func(ctx ast.EvalContext, args []value.Value) (value.Value, error) {
			v, err := asVector(args[0])
			if err != nil {
				return value.Value{}, err
			}
			i, err := indexArg(args[1], len(v.items))
			if err != nil {
				return value.Value{}, err
			}
			return v.items[i], nil
		})
		method(pool, t, "set", vectorType, []types.Type{types.Number, elementType}, types.Void, types.Unknown, func(ctx ast.EvalContext, args []value.Value) (value.Value, error) {
			v, err := asVector(args[0])
			if err != nil {
				return value.Value{}, err
			}
			i, err := indexArg(args[1], len(v.items))
			if err != nil {
				return value.Value{}, err
			}
			v.items[i] = args[2]
			return value.Void, nil
		})
		method(pool, t, "push_back", vectorType, []types.Type{elementType}, types.Void, types.Unknown, func(ctx ast.EvalContext, args []value.Value) (value.Value, error) {
			v, err := asVector(args[0])
			if err != nil {
				return value.Value{}, err
			}
			v.items = append(v.items, args[1])
			return value.Void, nil
		})
		method(pool, t, "filter", vectorType, []types.Type{predType}, vectorType, types.Unknown, func(ctx ast.EvalContext, args []value.Value) (value.Value, error) {
			v, err := asVector(args[0])
			if err != nil {
				return value.Value{}, err
			}
			pred := args[1].Callable()
			var out []value.Value
			for _, item := range v.items {
				keep, err := invokeBool(ctx, pred, item)
				if err != nil {
					return value.Value{}, err
				}
				if keep {
					out = append(out, item)
				}
			}
			return newVectorValue(ctx.Pool(), out), nil
		})
		method(pool, t, "ForEach", vectorType, []types.Type{eachType}, types.Void, types.Unknown, func(ctx ast.EvalContext, args []value.Value) (value.Value, error) {
			v, err := asVector(args[0])
			if err != nil {
				return value.Value{}, err
			}
			fn := args[1].Callable()
			for _, item := range v.items {
				if _, err := ctx.Invoke(fn, []value.Value{item}); err != nil {
					return value.Value{}, err
				}
			}
			return value.Void, nil
		})
	})

	registerTable(env, "SetT", func(t *otype.ObjectType) {
		method(pool, t, "size", setType, nil, types.Number, types.Pure, func(ctx ast.EvalContext, args []value.Value) (value.Value, error) {
			s, err := asSet(args[0])
			if err != nil {
				return value.Value{}, err
			}
			return value.Num(numeric.Int(int64(len(s.items)))), nil
		})
		method(pool, t, "empty", setType, nil, types.Bool, types.Pure, func(ctx ast.EvalContext, args []value.Value) (value.Value, error) {
			s, err := asSet(args[0])
			if err != nil {
				return value.Value{}, err
			}
			return value.Bool(len(s.items) == 0), nil
		})
		method(pool, t, "get", setType, []types.Type{types.Number}, elementType, types.Pure, func(ctx ast.EvalContext, args []value.Value) (value.Value, error) {
			s, err := asSet(args[0])
			if err != nil {
				return value.Value{}, err
			}
			i, err := indexArg(args[1], len(s.items))
			if err != nil {
				return value.Value{}, err
			}
			return s.items[i], nil
		})
		method(pool, t, "insert", setType, []types.Type{elementType}, types.Void, types.Unknown, func(ctx ast.EvalContext, args []value.Value) (value.Value, error) {
			s, err := asSet(args[0])
			if err != nil {
				return value.Value{}, err
			}
			if idx, found, err := findInSet(s, args[1]); err != nil {
				return value.Value{}, err
			} else if !found {
				_ = idx
				s.items = append(s.items, args[1])
			}
			return value.Void, nil
		})
		method(pool, t, "erase", setType, []types.Type{elementType}, types.Void, types.Unknown, func(ctx ast.EvalContext, args []value.Value) (value.Value, error) {
			s, err := asSet(args[0])
			if err != nil {
				return value.Value{}, err
			}
			idx, found, err := findInSet(s, args[1])
			if err != nil {
				return value.Value{}, err
			}
			if found {
				s.items = append(s.items[:idx], s.items[idx+1:]...)
			}
			return value.Void, nil
		})
		method(pool, t, "contains", setType, []types.Type{elementType}, types.Bool, types.Pure, func(ctx ast.EvalContext, args []value.Value) (value.Value, error) {
			s, err := asSet(args[0])
			if err != nil {
				return value.Value{}, err
			}
			_, found, err := findInSet(s, args[1])
			if err != nil {
				return value.Value{}, err
			}
			return value.Bool(found), nil
		})
		method(pool, t, "filter", setType, []types.Type{predType}, setType, types.Unknown, func(ctx ast.EvalContext, args []value.Value) (value.Value, error) {
			s, err := asSet(args[0])
			if err != nil {
				return value.Value{}, err
			}
			pred := args[1].Callable()
			var out []value.Value
			for _, item := range s.items {
				keep, err := invokeBool(ctx, pred, item)
				if err != nil {
					return value.Value{}, err
				}
				if keep {
					out = append(out, item)
				}
			}
			return newSetValue(ctx.Pool(), out), nil
		})
		method(pool, t, "ForEach", setType, []types.Type{eachType}, types.Void, types.Unknown, func(ctx ast.EvalContext, args []value.Value) (value.Value, error) {
			s, err := asSet(args[0])
			if err != nil {
				return value.Value{}, err
			}
			fn := args[1].Callable()
			for _, item := range s.items {
				if _, err := ctx.Invoke(fn, []value.Value{item}); err != nil {
					return value.Value{}, err
				}
			}
			return value.Void, nil
		})
	})

	freeFn(pool, env, "NewVector", nil, vectorType, types.Pure, func(ctx ast.EvalContext, args []value.Value) (value.Value, error) {
		return newVectorValue(ctx.Pool(), nil), nil
	})
	freeFn(pool, env, "NewSet", nil, setType, types.Pure, func(ctx ast.EvalContext, args []value.Value) (value.Value, error) {
		return newSetValue(ctx.Pool(), nil), nil
	})
}

func indexArg(v value.Value, length int) (int64, error) {
	i, err := v.Number().ToInteger()
	if err != nil {
		return 0, rterr.New(rterr.KindNumericConversion, "index: %v", err)
	}
	if i < 0 || i >= int64(length) {
		return 0, rterr.New(rterr.KindOutOfRange, "index %d out of range for length %d", i, length)
	}
	return i, nil
}

func findInSet(s *setObject, v value.Value) (int, bool, error) {
	for i, item := range s.items {
		eq, err := value.Equal(item, v)
		if err != nil {
			return 0, false, err
		}
		if eq {
			return i, true, nil
		}
	}
	return 0, false, nil
}

func invokeBool(ctx ast.EvalContext, fn value.Callable, arg value.Value) (bool, error) {
	out, err := ctx.Invoke(fn, []value.Value{arg})
	if err != nil {
		return false, err
	}
	return out.Value.Bool(), nil
}
