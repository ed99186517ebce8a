// Package stdlib implements the VM's standard library surface: string,
// number, and bool methods; the Time/Duration object types; the VectorT
// and SetT container object types; the Optional object type; and the
// free functions spec.md §6.2 lists (log/log2/log10/exp/exp2/pow, Now,
// ParseTime, Seconds, DurationBetween, Error, json_get/json_set).
//
// Everything here is wired into a fresh scope.Environment by Register,
// grounded on the teacher's internal/interp/builtins/register.go
// category-file-per-concern layout: one file per builtin category, one
// RegisterXxx entry point per file, called in turn from Register.
package stdlib

import (
	"github.com/afc/edgevm/internal/callable"
	"github.com/afc/edgevm/internal/gcpool"
	"github.com/afc/edgevm/internal/ident"
	"github.com/afc/edgevm/internal/numeric"
	"github.com/afc/edgevm/internal/otype"
	"github.com/afc/edgevm/internal/scope"
	"github.com/afc/edgevm/internal/types"
	"github.com/afc/edgevm/internal/value"
)

// nativeFn wraps a NativeFunc as a *callable.Function with an explicit
// signature, registering its GC handle. Used for member-table entries and
// free functions alike, since both are ultimately just named callables
// bound into an Environment (a member table is an otype.ObjectType whose
// AddMember calls are a thin wrapper over the same construction).
func nativeFn(pool *gcpool.Pool, inputs []types.Type, output types.Type, purity types.Purity, fn callable.NativeFunc) *callable.Function {
	f := &callable.Function{Inputs: inputs, Output: output, Purity: purity, Native: fn}
	f.Register(pool)
	return f
}

// method registers fn as a member of table under name: a function whose
// first input is recv (the receiver type), spec.md §4.5's "field
// functions take the object instance as their first positional argument"
// rule applied uniformly whether the receiver is a class instance or a
// primitive.
func method(pool *gcpool.Pool, table *otype.ObjectType, name ident.Identifier, recv types.Type, inputs []types.Type, output types.Type, purity types.Purity, fn callable.NativeFunc) {
	allInputs := append([]types.Type{recv}, inputs...)
	table.AddMember(name, nativeFn(pool, allInputs, output, purity, fn))
}

// freeFn defines fn under name directly in env (not behind a receiver),
// for §6.2's free functions (Now, ParseTime, log, Error, ...).
func freeFn(pool *gcpool.Pool, env *scope.Environment, name ident.Identifier, inputs []types.Type, output types.Type, purity types.Purity, fn callable.NativeFunc) {
	f := nativeFn(pool, inputs, output, purity, fn)
	env.Define(name, f.Type(), value.Fn(f.Type(), f))
}

// registerTable creates a fresh ObjectType named name, lets build populate
// it, and registers it in env — the primitive pseudo-object-types
// ("string", "number", "bool") and the real host-registered object types
// (Time, Duration, VectorT, SetT, Optional) are all wired this way.
func registerTable(env *scope.Environment, name ident.Identifier, build func(t *otype.ObjectType)) *otype.ObjectType {
	t := otype.New(name)
	build(t)
	env.DefineObjectType(t)
	return t
}

// receiverString/receiverNumber/receiverBool/receiverObject read the
// implicit first argument a bound method call always carries: the
// instance the method was looked up on.
func receiverString(args []value.Value) string       { return args[0].Str() }
func receiverNumber(args []value.Value) *numeric.Number { return args[0].Number() }
func receiverBool(args []value.Value) bool           { return args[0].Bool() }
func receiverObject(args []value.Value) value.Object { return args[0].Object() }

// Register builds a fresh scope.Environment seeded with the entire
// standard library surface, the default environment the host embedding
// API (pkg/vmhost) hands to Compile/Evaluate.
func Register(pool *gcpool.Pool) *scope.Environment {
	env := scope.New(pool)
	RegisterStrings(pool, env)
	RegisterNumbers(pool, env)
	RegisterBool(pool, env)
	RegisterTime(pool, env)
	RegisterContainers(pool, env)
	RegisterOptional(pool, env)
	return env
}
