// Package callable implements function values: closures over a compiled
// AST body, and native bindings adapting host Go functions.
//
// Function doubles as a registry entry (a bound method value keyed by
// receiver type, built from a type-erased adapter that extracts arguments
// from a value slice via a type-mapper protocol; see binding.go).
package callable

import (
	"fmt"

	"github.com/afc/edgevm/internal/ast"
	"github.com/afc/edgevm/internal/gcpool"
	"github.com/afc/edgevm/internal/ident"
	"github.com/afc/edgevm/internal/otype"
	"github.com/afc/edgevm/internal/scope"
	"github.com/afc/edgevm/internal/types"
	"github.com/afc/edgevm/internal/value"
)

// NativeFunc is a host-provided implementation, already adapted to the
// Value-vector calling convention by the binding helper.
type NativeFunc func(ctx ast.EvalContext, args []value.Value) (value.Value, error)

// Function is a function value: either a native callback or a compiled
// AST body plus a captured environment.
type Function struct {
	Inputs []types.Type
	Output types.Type
	Purity types.Purity

	// Native is set for a host callback, Params/Body/Captured for a
	// compiled closure. A native bound to a class instance by
	// WithBoundReceiver also carries that instance's scope in Captured.
	Native   NativeFunc
	Params   []ident.Identifier
	Body     ast.Node
	Captured *scope.Environment

	// BoundReceiver is non-nil for a method value produced by
	// ast.MethodLookup: it is prepended to the argument list on Invoke
	// and excluded from Inputs (which already reflects the
	// receiver-dropped signature).
	BoundReceiver *value.Value

	handle *gcpool.Handle
}

var _ value.Callable = (*Function)(nil)
var _ ast.Invocable = (*Function)(nil)

// Type returns this function's Function-kind Type.
func (f *Function) Type() types.Type {
	return types.Function(f.Output, f.Inputs, f.Purity)
}

// Register allocates this Function's GC handle, whose expansion callback
// returns the captured environment's handle (for closures) and the bound
// receiver's own references (for bound methods) — every GC-visible
// reference the closure retains.
func (f *Function) Register(pool *gcpool.Pool) *gcpool.Handle {
	f.handle = pool.Register(f.Expand)
	return f.handle
}

// Expand implements value.Callable.
func (f *Function) Expand() []*gcpool.Handle {
	var out []*gcpool.Handle
	if f.Captured != nil {
		out = append(out, f.Captured.Handle())
	}
	if f.BoundReceiver != nil {
		out = append(out, f.BoundReceiver.Expand()...)
	}
	return out
}

// Invoke implements ast.Invocable: dispatch to the native callback, or
// open a child environment, bind parameters (and the bound receiver, if
// any), evaluate the body, and promote the result to Output.
func (f *Function) Invoke(ctx ast.EvalContext, args []value.Value) (ast.Output, error) {
	if f.Native != nil {
		// A bound method's receiver rides in front of the argument list
		// for natives (field getters/setters read it directly); a
		// compiled method body instead sees the receiver through
		// Captured, overridden to the instance's own scope by
		// WithBoundReceiver, so it is not prepended below.
		callArgs := args
		if f.BoundReceiver != nil {
			callArgs = append([]value.Value{*f.BoundReceiver}, args...)
		}
		v, err := f.Native(ctx, callArgs)
		if err != nil {
			return ast.Output{}, err
		}
		return ast.Output{Value: v}, nil
	}

	env := f.Captured.NewChild()
	params := f.Params
	inputs := f.Inputs
	if len(args) != len(params) {
		return ast.Output{}, fmt.Errorf("callable: expected %d arguments, got %d", len(params), len(args))
	}
	for i, p := range params {
		env.Define(p, inputs[i], args[i])
	}

	return ctx.WithEnv(env, func() (ast.Output, error) {
		out, err := ctx.Bounce(f.Body, f.Output)
		if err != nil {
			return out, err
		}
		out.Returning = false
		return out, nil
	})
}

// WithBoundReceiver returns a shallow copy of f with receiver bound as the
// implicit first argument, and receiver's type dropped from Inputs. If
// receiver is a class instance, the clone's Captured is also switched to
// the instance's own scope, so a compiled method body's bare field
// references resolve against that specific instance rather than the
// shared class-declaration environment every instance's Function was
// compiled against.
func WithBoundReceiver(f *Function, receiver value.Value) *Function {
	inputs := f.Inputs
	if len(inputs) > 0 {
		inputs = inputs[1:]
	}
	clone := *f
	clone.Inputs = inputs
	clone.BoundReceiver = &receiver
	if inst, ok := receiver.Object().(*otype.Instance); ok {
		if env, ok := inst.Scope.(*scope.Environment); ok {
			clone.Captured = env
		}
	}
	return &clone
}
