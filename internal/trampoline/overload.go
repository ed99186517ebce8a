package trampoline

import (
	"fmt"

	"github.com/afc/edgevm/internal/ast"
	"github.com/afc/edgevm/internal/callable"
	"github.com/afc/edgevm/internal/gcpool"
	"github.com/afc/edgevm/internal/otype"
	"github.com/afc/edgevm/internal/types"
	"github.com/afc/edgevm/internal/value"
)

// overloadSet is the callable value bound by Trampoline.BindMethod when a
// name resolves to more than one member on an object type: it defers
// picking the actual function until invocation, when the argument count
// and types are known, the same way a multi-candidate variable lookup
// defers to the type its caller expects.
type overloadSet struct {
	pool     *gcpool.Pool
	receiver value.Value
	members  []otype.Member
}

var _ value.Callable = (*overloadSet)(nil)
var _ ast.Invocable = (*overloadSet)(nil)

// Type reports the first candidate's receiver-dropped signature; callers
// needing a specific overload's type should consult the candidate types
// in ast.MethodLookup's BoundTypes instead of relying on this single type.
func (o *overloadSet) Type() types.Type {
	if len(o.members) == 0 {
		return types.Void
	}
	fn, ok := o.members[0].Function.(*callable.Function)
	if !ok {
		return types.Void
	}
	return callable.WithBoundReceiver(fn, o.receiver).Type()
}

func (o *overloadSet) Expand() []*gcpool.Handle {
	return o.receiver.Expand()
}

// Invoke picks the candidate whose arity and input types match args, binds
// the receiver, and invokes it.
func (o *overloadSet) Invoke(ctx ast.EvalContext, args []value.Value) (ast.Output, error) {
	for _, m := range o.members {
		fn, ok := m.Function.(*callable.Function)
		if !ok {
			continue
		}
		bound := callable.WithBoundReceiver(fn, o.receiver)
		if len(bound.Inputs) != len(args) {
			continue
		}
		match := true
		for i, want := range bound.Inputs {
			if !types.Equal(want, args[i].Type()) {
				match = false
				break
			}
		}
		if !match {
			continue
		}
		return bound.Invoke(ctx, args)
	}
	return ast.Output{}, fmt.Errorf("no overload of %q matches the given arguments", o.members[0].Name)
}
