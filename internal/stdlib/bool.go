package stdlib

import (
	"github.com/afc/edgevm/internal/ast"
	"github.com/afc/edgevm/internal/gcpool"
	"github.com/afc/edgevm/internal/otype"
	"github.com/afc/edgevm/internal/scope"
	"github.com/afc/edgevm/internal/types"
	"github.com/afc/edgevm/internal/value"
)

// RegisterBool wires the `bool` pseudo-object-type's tostring method,
// yielding "true"/"false" per §6.2.
func RegisterBool(pool *gcpool.Pool, env *scope.Environment) {
	registerTable(env, "bool", func(t *otype.ObjectType) {
		method(pool, t, "tostring", types.Bool, nil, types.String, types.Pure, func(ctx ast.EvalContext, args []value.Value) (value.Value, error) {
			if receiverBool(args) {
				return value.Str("true"), nil
			}
			return value.Str("false"), nil
		})
	})
}
