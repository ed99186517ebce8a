package trampoline

import (
	"github.com/afc/edgevm/internal/ast"
	"github.com/afc/edgevm/internal/gcpool"
	"github.com/afc/edgevm/internal/scope"
	"github.com/afc/edgevm/internal/types"
	"github.com/afc/edgevm/internal/value"
)

// Result is what a Future ultimately resolves to: a value, or the error
// that aborted evaluation (a run-time failure, an uncaught cancellation,
// or an internal Go error).
type Result struct {
	Value value.Value
	Err   error
}

// Future is the handle a host gets back from Evaluate: the program runs
// on its own goroutine, yielding control back to the host at well-defined
// points via the installed YieldHook, and the host observes completion
// through Await or tears the computation down early through Cancel.
type Future struct {
	done   chan Result
	cancel chan struct{}
}

// Await blocks until the evaluation completes (whether by producing a
// value, failing, or being cancelled).
func (f *Future) Await() (value.Value, error) {
	r := <-f.done
	return r.Value, r.Err
}

// Cancel drops the future: any in-flight yield is woken with
// ErrCancelled instead of being resumed, and evaluation unwinds through
// ordinary Go error returns without running further script code.
func (f *Future) Cancel() {
	select {
	case <-f.cancel:
	default:
		close(f.cancel)
	}
}

// Evaluate runs root to completion (or until cancelled) on its own
// goroutine, driving it through a fresh Trampoline. This is the one
// operation a host embeds: compile a program, build an environment, call
// Evaluate, and Await or Cancel the returned Future.
func Evaluate(root ast.Node, pool *gcpool.Pool, env *scope.Environment, promoter *types.Promoter, hook YieldHook, cfg Config) *Future {
	fut := &Future{done: make(chan Result, 1), cancel: make(chan struct{})}
	tr := New(pool, env, promoter, hook, cfg, fut.cancel)

	expected := types.Void
	if ts := root.Types(); len(ts) > 0 {
		expected = ts[0]
	}

	go func() {
		out, err := tr.Bounce(root, expected)
		if err != nil {
			fut.done <- Result{Err: err}
			return
		}
		fut.done <- Result{Value: out.Value}
	}()

	return fut
}
