// Package ast defines the VM's AST node kinds: one Go
// type per syntactic form, each exposing Types(), ReturnTypes(),
// Purity(), and an Evaluate contract mediated by a trampoline.
//
// Evaluate takes an EvalContext interface rather than a concrete
// trampoline type, breaking what would otherwise be an ast<->trampoline
// import cycle (package trampoline's concrete type implements EvalContext;
// see internal/trampoline/trampoline.go). Small interfaces passed across
// package boundaries like this keep packages that would otherwise form a
// cycle decoupled.
package ast

import (
	"github.com/afc/edgevm/internal/gcpool"
	"github.com/afc/edgevm/internal/ident"
	"github.com/afc/edgevm/internal/otype"
	"github.com/afc/edgevm/internal/scope"
	"github.com/afc/edgevm/internal/types"
	"github.com/afc/edgevm/internal/value"
)

// Position is a single (source, line, column) coordinate recorded at the
// token that produced a node, for error reporting.
type Position struct {
	Source string
	Line   int
	Column int
}

// Output is what evaluating a node produces: a value, possibly flagged as
// an early return, or nothing if an error occurred
// (the error rides out-of-band so Go call sites can use normal error
// handling rather than sentinel Output values).
type Output struct {
	Value     value.Value
	Returning bool
}

// EvalContext is the trampoline-facing surface an AST node needs to
// recursively evaluate its children and to reach the live environment and
// GC pool; every recursive evaluation step is mediated through it rather
// than by direct host-stack recursion. The concrete implementation lives
// in package trampoline.
type EvalContext interface {
	// Bounce evaluates node against expected, mediating through the
	// trampoline's suspension machinery rather than recursing directly on
	// the host stack.
	Bounce(node Node, expected types.Type) (Output, error)

	// Env returns the environment currently in scope.
	Env() *scope.Environment
	// WithEnv runs fn with env temporarily current, restoring the previous
	// environment afterwards (used by namespace bodies and calls).
	WithEnv(env *scope.Environment, fn func() (Output, error)) (Output, error)

	Pool() *gcpool.Pool

	// Promoter resolves implicit promotions during
	// evaluation, e.g. to pick the uniquely-promoting overload of a
	// variable lookup.
	Promoter() *types.Promoter

	// Invoke calls fn with args, mediated by the trampoline the same way
	// Bounce mediates expression evaluation.
	Invoke(fn value.Callable, args []value.Value) (Output, error)

	// MakeClosure builds a function value whose body is an AST node
	// evaluated in a child of captured. Building the
	// actual callable.Function lives in package trampoline so that ast
	// need not import package callable (which itself imports ast for the
	// Body field), avoiding an import cycle.
	MakeClosure(inputs []types.Type, output types.Type, purity types.Purity, params []ident.Identifier, body Node, captured *scope.Environment) value.Value

	// BindMethod returns a new callable value binding receiver as the
	// first argument of every candidate in members, dropping it from each
	// candidate's visible input signature.
	BindMethod(receiver value.Value, members []otype.Member) value.Value
}

// Node is the evaluation contract every AST variant implements.
type Node interface {
	// Types returns the set of result types this node can support; a
	// polymorphic node (e.g. an overloaded variable lookup) may report more
	// than one.
	Types() []types.Type
	// ReturnTypes returns the set of types a `return` nested inside this
	// node may surface; empty if the node contains no return.
	ReturnTypes() []types.Type
	// Purity reports this node's combined read/write effect flags.
	Purity() types.Purity
	// Evaluate runs the node against expected, through ctx.
	Evaluate(ctx EvalContext, expected types.Type) (Output, error)
	// Pos returns the node's source coordinate, for error reporting.
	Pos() Position
}

// Invocable is implemented by package callable's Function: the trampoline
// type-asserts a value.Callable to Invocable when it needs to actually
// call it.
type Invocable interface {
	value.Callable
	Invoke(ctx EvalContext, args []value.Value) (Output, error)
}

// CombineReturnTypes combines the return types of two sub-expressions: if
// either is empty, take the other; otherwise require equality.
func CombineReturnTypes(a, b []types.Type) ([]types.Type, bool) {
	if len(a) == 0 {
		return b, true
	}
	if len(b) == 0 {
		return a, true
	}
	if len(a) != len(b) {
		return nil, false
	}
	for i := range a {
		if !types.Equal(a[i], b[i]) {
			return nil, false
		}
	}
	return a, true
}
