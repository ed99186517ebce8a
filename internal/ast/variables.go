package ast

import (
	"fmt"

	"github.com/afc/edgevm/internal/ident"
	"github.com/afc/edgevm/internal/types"
	"github.com/afc/edgevm/internal/value"
)

// VariableLookup resolves (namespace, name) in the current environment,
// yielding the uniquely-promoting overload for expected.
type VariableLookup struct {
	base
	Namespace ident.Namespace
	Name      ident.Identifier
	// candidateTypes is filled in at compile time (package compiler) from
	// the set of overloads visible for Name; it is what Types() reports.
	CandidateTypes []types.Type
}

func NewVariableLookup(pos Position, ns ident.Namespace, name ident.Identifier, candidates []types.Type) *VariableLookup {
	return &VariableLookup{base: base{pos: pos, purity: types.Pure}, Namespace: ns, Name: name, CandidateTypes: candidates}
}

func (v *VariableLookup) Types() []types.Type       { return v.CandidateTypes }
func (v *VariableLookup) ReturnTypes() []types.Type { return nil }

func (v *VariableLookup) Evaluate(ctx EvalContext, expected types.Type) (Output, error) {
	env := ctx.Env()
	target := env
	if !v.Namespace.Empty() {
		resolved, ok := env.Resolve(v.Namespace)
		if !ok {
			return Output{}, fmt.Errorf("unknown namespace: %s", v.Namespace)
		}
		target = resolved
	}
	overloads := target.Lookup(v.Name)
	for t, val := range overloads {
		if prom, ok := ctx.Promoter().Promote(t, expected); ok {
			promoted, err := applyPromotion(prom, t, expected, val)
			if err != nil {
				return Output{}, err
			}
			return Output{Value: promoted}, nil
		}
	}
	// Should not occur after successful compilation.
	return Output{}, fmt.Errorf("unexpected: variable value is null: %s", v.Name)
}

// applyPromotion runs prom.Fn, with the function-type special case (nil
// Fn marker from types.Promoter) delegated to package callable via the
// value's own Callable, since wrapping a function value requires invoking
// a Callable that package types cannot see.
func applyPromotion(prom types.Promotion, src, dst types.Type, v value.Value) (value.Value, error) {
	if prom.Identity || src.Kind != types.KindFunction {
		if prom.Fn == nil {
			return v, nil
		}
		raw, err := prom.Fn(v)
		if err != nil {
			return value.Value{}, err
		}
		return raw.(value.Value), nil
	}
	// Function-to-function promotion: no wrapper is built, here or
	// elsewhere. The function value is returned unchanged and keeps its
	// original type; its inputs and output are not converted when it is
	// later called.
	return v, nil
}

// Assignment evaluates the RHS, then assigns it in the defining scope,
// walking parents. The target may be a
// plain variable or a namespace-qualified one.
type Assignment struct {
	base
	Namespace ident.Namespace
	Name      ident.Identifier
	Target    types.Type
	RHS       Node
}

func NewAssignment(pos Position, ns ident.Namespace, name ident.Identifier, target types.Type, rhs Node) *Assignment {
	return &Assignment{base: base{pos: pos, purity: types.Combine(rhs.Purity(), types.Reader)}, Namespace: ns, Name: name, Target: target, RHS: rhs}
}

func (a *Assignment) Types() []types.Type       { return []types.Type{a.Target} }
func (a *Assignment) ReturnTypes() []types.Type { return a.RHS.ReturnTypes() }

func (a *Assignment) Evaluate(ctx EvalContext, expected types.Type) (Output, error) {
	out, err := ctx.Bounce(a.RHS, a.Target)
	if err != nil || out.Returning {
		return out, err
	}
	env := ctx.Env()
	if !a.Namespace.Empty() {
		resolved, ok := env.Resolve(a.Namespace)
		if !ok {
			return Output{}, fmt.Errorf("unknown namespace: %s", a.Namespace)
		}
		env = resolved
	}
	if err := env.Assign(a.Name, a.Target, out.Value); err != nil {
		return Output{}, err
	}
	return Output{Value: out.Value}, nil
}

// Define evaluates the RHS then defines Name in the current scope.
// Auto-typed defines resolve Target at compile time from the RHS's unique
// type (package compiler); by the time a Define node is built, Target is
// always concrete.
type Define struct {
	base
	Name   ident.Identifier
	Target types.Type
	RHS    Node
}

func NewDefine(pos Position, name ident.Identifier, target types.Type, rhs Node) *Define {
	return &Define{base: base{pos: pos, purity: rhs.Purity()}, Name: name, Target: target, RHS: rhs}
}

func (d *Define) Types() []types.Type       { return []types.Type{d.Target} }
func (d *Define) ReturnTypes() []types.Type { return d.RHS.ReturnTypes() }

func (d *Define) Evaluate(ctx EvalContext, expected types.Type) (Output, error) {
	out, err := ctx.Bounce(d.RHS, d.Target)
	if err != nil || out.Returning {
		return out, err
	}
	ctx.Env().Define(d.Name, d.Target, out.Value)
	return Output{Value: out.Value}, nil
}
