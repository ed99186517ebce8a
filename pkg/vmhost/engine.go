// Package vmhost is the host embedding API: the surface a Go program
// linking this VM in uses to compile and run scripts, register native
// functions and object types, and drive evaluation either synchronously
// or as a cancellable background Future. It plays the role the teacher's
// pkg/dwscript package plays for go-dws (New/RegisterFunction/Eval), built
// on this VM's own gcpool/scope/trampoline stack instead of go-dws's
// interp.Interpreter.
package vmhost

import (
	"fmt"

	"github.com/afc/edgevm/internal/ast"
	"github.com/afc/edgevm/internal/compiler"
	"github.com/afc/edgevm/internal/gcpool"
	"github.com/afc/edgevm/internal/lexer"
	"github.com/afc/edgevm/internal/scope"
	"github.com/afc/edgevm/internal/stdlib"
	"github.com/afc/edgevm/internal/trampoline"
	"github.com/afc/edgevm/internal/types"
	"github.com/afc/edgevm/internal/value"
	"github.com/afc/edgevm/pkg/vmconfig"
)

// Engine owns one GC pool and one global Environment (standard library
// already registered) that every Compile/Run call shares, the same
// single-pool-per-program shape runner.NewWithOptions wires an
// interp.Interpreter around.
type Engine struct {
	pool     *gcpool.Pool
	env      *scope.Environment
	promoter *types.Promoter
	cfg      *vmconfig.Config
}

// New builds an Engine with a fresh GC pool, the standard library
// registered into its root Environment, and the given configuration
// (defaults from vmconfig.New if no options are passed).
func New(opts ...vmconfig.Option) *Engine {
	cfg := vmconfig.New(opts...)
	pool := gcpool.New()
	return &Engine{
		pool:     pool,
		env:      stdlib.Register(pool),
		promoter: types.NewPromoter(),
		cfg:      cfg,
	}
}

// Pool returns the Engine's GC pool, for a host that wants to drive
// collection directly (LightCollect between script invocations, Collect
// at idle points); the trampoline itself never starts a collection.
func (e *Engine) Pool() *gcpool.Pool { return e.pool }

// Env returns the Engine's root Environment, for a host registering
// additional native functions or object types via Define/DefineObjectType
// before compiling scripts that use them.
func (e *Engine) Env() *scope.Environment { return e.env }

// Promoter returns the Engine's type promoter, for a host registering
// custom promotion rules (types.Promoter.Register) beyond the built-in
// function-type contravariant promotion.
func (e *Engine) Promoter() *types.Promoter { return e.promoter }

// Compile lexes, resolves #includes (against e.cfg's IncludeSearchPaths,
// local-relative for the quoted form), and compiles source into an
// evaluatable ast.Node against the Engine's current Environment — so
// functions/object types registered on Env() before this call are visible
// to the script.
func (e *Engine) Compile(name, source string) (ast.Node, error) {
	resolver := FileResolver{SearchPaths: e.cfg.IncludeSearchPaths}
	root, errs := compiler.Compile(e.pool, e.env, e.promoter, name, source, resolver, lexer.WithMaxExponent(e.cfg.MaxExponent))
	if errs != nil && !errs.Empty() {
		return nil, errs.AsError()
	}
	return root, nil
}

// Run evaluates root to completion synchronously: its yield hook resumes
// immediately, matching the teacher's CLI runner, which has no concurrent
// host work competing for the trampoline.
func (e *Engine) Run(root ast.Node) (value.Value, error) {
	hook := func(resume func()) { resume() }
	future := trampoline.Evaluate(root, e.pool, e.env, e.promoter, hook, trampoline.Config{MaxBounces: e.cfg.MaxBounces})
	return future.Await()
}

// RunAsync starts evaluating root without blocking, handing the caller a
// Future it can Await from another goroutine or Cancel, for hosts driving
// a cooperative scheduler across multiple in-flight scripts (the yield
// hook lets each one cede control at a bounce boundary).
func (e *Engine) RunAsync(root ast.Node, hook trampoline.YieldHook) *trampoline.Future {
	if hook == nil {
		hook = func(resume func()) { resume() }
	}
	return trampoline.Evaluate(root, e.pool, e.env, e.promoter, hook, trampoline.Config{MaxBounces: e.cfg.MaxBounces})
}

// CompileAndRun is the common case: compile source under name and run it
// to completion, returning the final expression's Value.
func (e *Engine) CompileAndRun(name, source string) (value.Value, error) {
	root, err := e.Compile(name, source)
	if err != nil {
		return value.Value{}, fmt.Errorf("compile: %w", err)
	}
	return e.Run(root)
}
