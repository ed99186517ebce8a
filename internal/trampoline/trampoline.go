// Package trampoline implements the bounded-stack evaluator driving AST
// evaluation: every recursive evaluation step is mediated by
// Bounce rather than direct host-stack recursion, and a configurable
// number of bounces triggers the installed yield hook, resetting stack
// depth and making evaluation time-sliceable.
//
// Bounce is the single dispatcher every node-kind's Evaluate method
// routes back through. Go has no native continuations, so the suspension
// point is realised with a goroutine blocked on a channel: the yield hook
// receives a resume closure that unblocks it, and Cancel closes a second
// channel the same select watches, so dropping the returned future cancels
// the in-flight continuation instead of letting it run unattended.
package trampoline

import (
	"fmt"

	"github.com/afc/edgevm/internal/ast"
	"github.com/afc/edgevm/internal/callable"
	"github.com/afc/edgevm/internal/gcpool"
	"github.com/afc/edgevm/internal/ident"
	"github.com/afc/edgevm/internal/otype"
	"github.com/afc/edgevm/internal/rterr"
	"github.com/afc/edgevm/internal/scope"
	"github.com/afc/edgevm/internal/types"
	"github.com/afc/edgevm/internal/value"
	"github.com/afc/edgevm/internal/vmlog"
)

// YieldHook is invoked with a resume closure once every Config.MaxBounces
// steps; calling the closure continues the evaluation.
type YieldHook func(resume func())

// Config bounds the trampoline's cooperative behaviour; package vmconfig
// supplies the defaults a host didn't override.
type Config struct {
	MaxBounces int
}

// ErrCancelled is returned by Bounce (and therefore propagates out of
// Evaluate's Future) when the host cancels an in-flight evaluation by
// calling Future.Cancel instead of resuming it.
var ErrCancelled = fmt.Errorf("evaluation cancelled")

// Trampoline is the concrete ast.EvalContext implementation.
type Trampoline struct {
	pool     *gcpool.Pool
	env      *scope.Environment
	promoter *types.Promoter
	hook     YieldHook
	cfg      Config
	bounces  int
	cancelCh chan struct{}
}

var _ ast.EvalContext = (*Trampoline)(nil)

// New constructs a Trampoline. cancelCh may be nil if the caller never
// needs to cancel (e.g. synchronous CLI evaluation).
func New(pool *gcpool.Pool, env *scope.Environment, promoter *types.Promoter, hook YieldHook, cfg Config, cancelCh chan struct{}) *Trampoline {
	if cfg.MaxBounces <= 0 {
		cfg.MaxBounces = 10000
	}
	return &Trampoline{pool: pool, env: env, promoter: promoter, hook: hook, cfg: cfg, cancelCh: cancelCh}
}

func (t *Trampoline) Pool() *gcpool.Pool         { return t.pool }
func (t *Trampoline) Env() *scope.Environment    { return t.env }
func (t *Trampoline) Promoter() *types.Promoter  { return t.promoter }

// Bounce is the trampoline's single external operation: it
// periodically auto-yields, then evaluates node.
func (t *Trampoline) Bounce(node ast.Node, expected types.Type) (ast.Output, error) {
	t.bounces++
	if t.hook != nil && t.bounces%t.cfg.MaxBounces == 0 {
		if err := t.yield(); err != nil {
			return ast.Output{}, err
		}
	}
	if t.cancelCh != nil {
		select {
		case <-t.cancelCh:
			return ast.Output{}, ErrCancelled
		default:
		}
	}
	return node.Evaluate(t, expected)
}

func (t *Trampoline) yield() error {
	resumeCh := make(chan struct{})
	vmlog.L().Debug("trampoline: yield", "bounces", t.bounces)
	t.hook(func() { close(resumeCh) })
	if t.cancelCh == nil {
		<-resumeCh
		return nil
	}
	select {
	case <-resumeCh:
		return nil
	case <-t.cancelCh:
		return ErrCancelled
	}
}

// WithEnv runs fn with env current, restoring the previous environment
// afterwards.
func (t *Trampoline) WithEnv(env *scope.Environment, fn func() (ast.Output, error)) (ast.Output, error) {
	prev := t.env
	t.env = env
	out, err := fn()
	t.env = prev
	return out, err
}

// Invoke calls fn, type-asserting to ast.Invocable. A value.Callable that
// is not Invocable indicates a host-exposed object type misregistration
// and is reported as a native-binding failure rather than a panic.
func (t *Trampoline) Invoke(fn value.Callable, args []value.Value) (ast.Output, error) {
	inv, ok := fn.(ast.Invocable)
	if !ok {
		return ast.Output{}, rterr.New(rterr.KindNativeBindingFailure, "value is not callable")
	}
	return inv.Invoke(t, args)
}

// MakeClosure builds a callable.Function from a lambda/function-definition
// body plus its captured environment.
func (t *Trampoline) MakeClosure(inputs []types.Type, output types.Type, purity types.Purity, params []ident.Identifier, body ast.Node, captured *scope.Environment) value.Value {
	fn := &callable.Function{Inputs: inputs, Output: output, Purity: purity, Params: params, Body: body, Captured: captured}
	handle := fn.Register(t.pool)
	t.pool.Protect(handle)
	return value.Fn(fn.Type(), fn)
}

// BindMethod resolves the call-site-independent part of a method lookup:
// it wraps every candidate member's function with the receiver bound in,
// deferring the actual overload choice to the call site the same way an
// ordinary overloaded variable lookup defers to its expected type.
func (t *Trampoline) BindMethod(receiver value.Value, members []otype.Member) value.Value {
	if len(members) == 1 {
		fn, ok := members[0].Function.(*callable.Function)
		if !ok {
			return value.Value{}
		}
		bound := callable.WithBoundReceiver(fn, receiver)
		handle := bound.Register(t.pool)
		t.pool.Protect(handle)
		return value.Fn(bound.Type(), bound)
	}
	// Multiple overloads: build an overload-set value.Callable that picks
	// the matching candidate at invocation time based on argument count
	// and types, mirroring how VariableLookup defers to the expected type.
	set := &overloadSet{pool: t.pool, receiver: receiver, members: members}
	handle := t.pool.Register(set.Expand)
	t.pool.Protect(handle)
	return value.Fn(set.Type(), set)
}
