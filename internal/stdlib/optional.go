package stdlib

import (
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/afc/edgevm/internal/ast"
	"github.com/afc/edgevm/internal/gcpool"
	"github.com/afc/edgevm/internal/ident"
	"github.com/afc/edgevm/internal/otype"
	"github.com/afc/edgevm/internal/rterr"
	"github.com/afc/edgevm/internal/scope"
	"github.com/afc/edgevm/internal/types"
	"github.com/afc/edgevm/internal/value"
)

// optionalElementType mirrors containers.go's elementType decision: the
// type system has no generic parameter to bind Optional<T>'s T to, so
// Optional is a monomorphic Optional-of-number, the payload the VM's
// config/lookup-style APIs actually return. See DESIGN.md.
var optionalElementType = types.Number

// optionalObject is Optional<number>'s host payload: NewOptional always
// builds an empty one, present becomes true when set is called, and
// reset clears it again.
type optionalObject struct {
	present bool
	val     value.Value
}

func (o *optionalObject) TypeName() ident.Identifier { return "Optional" }

func (o *optionalObject) Expand() []*gcpool.Handle {
	if !o.present {
		return nil
	}
	return o.val.Expand()
}

func asOptional(v value.Value) (*optionalObject, error) {
	o, ok := v.Object().(*optionalObject)
	if !ok {
		return nil, rterr.New(rterr.KindNativeBindingFailure, "expected an Optional value")
	}
	return o, nil
}

func newOptionalValue(pool *gcpool.Pool, present bool, val value.Value) value.Value {
	o := &optionalObject{present: present, val: val}
	pool.Register(o.Expand)
	return value.Obj("Optional", o)
}

// RegisterOptional wires the Optional object type (has_value, value, set,
// reset — §6.2, with `value` raising rterr.KindOptionalEmpty the way the
// original interpreter's optional accessor does when empty) and the
// json_get/json_set free functions, grounded on the rest of the pack's
// gjson/sjson usage for schema-less JSON field access.
func RegisterOptional(pool *gcpool.Pool, env *scope.Environment) {
	optionalType := types.Object("Optional")

	registerTable(env, "Optional", func(t *otype.ObjectType) {
		method(pool, t, "has_value", optionalType, nil, types.Bool, types.Pure, func(ctx ast.EvalContext, args []value.Value) (value.Value, error) {
			o, err := asOptional(args[0])
			if err != nil {
				return value.Value{}, err
			}
			return value.Bool(o.present), nil
		})
		method(pool, t, "value", optionalType, nil, optionalElementType, types.Pure, func(ctx ast.EvalContext, args []value.Value) (value.Value, error) {
			o, err := asOptional(args[0])
			if err != nil {
				return value.Value{}, err
			}
			if !o.present {
				return value.Value{}, rterr.New(rterr.KindOptionalEmpty, "value: optional is empty")
			}
			return o.val, nil
		})
		method(pool, t, "set", optionalType, []types.Type{optionalElementType}, types.Void, types.Unknown, func(ctx ast.EvalContext, args []value.Value) (value.Value, error) {
			o, err := asOptional(args[0])
			if err != nil {
				return value.Value{}, err
			}
			o.present = true
			o.val = args[1]
			return value.Void, nil
		})
		method(pool, t, "reset", optionalType, nil, types.Void, types.Unknown, func(ctx ast.EvalContext, args []value.Value) (value.Value, error) {
			o, err := asOptional(args[0])
			if err != nil {
				return value.Value{}, err
			}
			o.present = false
			o.val = value.Value{}
			return value.Void, nil
		})
	})

	freeFn(pool, env, "NewOptional", nil, optionalType, types.Pure, func(ctx ast.EvalContext, args []value.Value) (value.Value, error) {
		return newOptionalValue(ctx.Pool(), false, value.Value{}), nil
	})

	freeFn(pool, env, "json_get", []types.Type{types.String, types.String}, types.String, types.Pure, func(ctx ast.EvalContext, args []value.Value) (value.Value, error) {
		res := gjson.Get(args[0].Str(), args[1].Str())
		if !res.Exists() {
			return value.Value{}, rterr.New(rterr.KindOutOfRange, "json_get: no value at path %q", args[1].Str())
		}
		return value.Str(res.String()), nil
	})

	freeFn(pool, env, "json_set", []types.Type{types.String, types.String, types.String}, types.String, types.Pure, func(ctx ast.EvalContext, args []value.Value) (value.Value, error) {
		out, err := sjson.Set(args[0].Str(), args[1].Str(), args[2].Str())
		if err != nil {
			return value.Value{}, rterr.New(rterr.KindNativeBindingFailure, "json_set: %v", err)
		}
		return value.Str(out), nil
	})
}
