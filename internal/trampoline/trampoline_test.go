package trampoline

import (
	"testing"
	"time"

	"github.com/afc/edgevm/internal/ast"
	"github.com/afc/edgevm/internal/gcpool"
	"github.com/afc/edgevm/internal/numeric"
	"github.com/afc/edgevm/internal/scope"
	"github.com/afc/edgevm/internal/types"
	"github.com/afc/edgevm/internal/value"
)

// constNode is a minimal ast.Node that evaluates to a fixed numeric value,
// used to drive the trampoline without a full parser/compiler pipeline.
type constNode struct{ n int64 }

func (constNode) Types() []types.Type       { return []types.Type{types.Number} }
func (constNode) ReturnTypes() []types.Type { return nil }
func (constNode) Purity() types.Purity      { return types.Pure }
func (constNode) Pos() ast.Position         { return ast.Position{} }
func (c constNode) Evaluate(ctx ast.EvalContext, expected types.Type) (ast.Output, error) {
	return ast.Output{Value: value.Num(numeric.Int(c.n))}, nil
}

// bounceNode re-enters the trampoline via Bounce, exercising the auto-yield
// counter on a nested evaluation step rather than the top-level one.
type bounceNode struct{ inner ast.Node }

func (bounceNode) Types() []types.Type       { return []types.Type{types.Number} }
func (bounceNode) ReturnTypes() []types.Type { return nil }
func (bounceNode) Purity() types.Purity      { return types.Pure }
func (bounceNode) Pos() ast.Position         { return ast.Position{} }
func (b bounceNode) Evaluate(ctx ast.EvalContext, expected types.Type) (ast.Output, error) {
	return ctx.Bounce(b.inner, expected)
}

func newTrampoline() (*Trampoline, *gcpool.Pool) {
	pool := gcpool.New()
	env := scope.New(pool)
	promoter := types.NewPromoter()
	return New(pool, env, promoter, nil, Config{MaxBounces: 10000}, nil), pool
}

func TestBounceEvaluatesNode(t *testing.T) {
	tr, _ := newTrampoline()
	out, err := tr.Bounce(constNode{n: 7}, types.Number)
	if err != nil {
		t.Fatalf("Bounce: %v", err)
	}
	r, _ := out.Value.Number().Value()
	got, _ := r.Float64()
	if got != 7 {
		t.Errorf("Bounce result = %v, want 7", got)
	}
}

func TestBounceTriggersYieldHookAtConfiguredInterval(t *testing.T) {
	pool := gcpool.New()
	env := scope.New(pool)
	promoter := types.NewPromoter()
	yields := 0
	hook := func(resume func()) {
		yields++
		resume()
	}
	tr := New(pool, env, promoter, hook, Config{MaxBounces: 2}, nil)

	for i := 0; i < 5; i++ {
		if _, err := tr.Bounce(constNode{n: 1}, types.Number); err != nil {
			t.Fatalf("Bounce #%d: %v", i, err)
		}
	}
	if yields != 2 {
		t.Errorf("yields = %d, want 2 (5 bounces / interval 2)", yields)
	}
}

func TestNewDefaultsMaxBouncesWhenUnset(t *testing.T) {
	pool := gcpool.New()
	env := scope.New(pool)
	promoter := types.NewPromoter()
	tr := New(pool, env, promoter, nil, Config{}, nil)
	if tr.cfg.MaxBounces != 10000 {
		t.Errorf("cfg.MaxBounces = %d, want the 10000 default", tr.cfg.MaxBounces)
	}
}

func TestWithEnvRestoresPreviousEnvironment(t *testing.T) {
	tr, pool := newTrampoline()
	orig := tr.Env()
	child := scope.New(pool)

	_, err := tr.WithEnv(child, func() (ast.Output, error) {
		if tr.Env() != child {
			t.Error("Env() inside WithEnv did not return the child")
		}
		return ast.Output{}, nil
	})
	if err != nil {
		t.Fatalf("WithEnv: %v", err)
	}
	if tr.Env() != orig {
		t.Error("WithEnv did not restore the original environment")
	}
}

func TestInvokeRejectsNonInvocableCallable(t *testing.T) {
	tr, _ := newTrampoline()
	_, err := tr.Invoke(nonInvocable{}, nil)
	if err == nil {
		t.Fatal("Invoke: expected an error for a non-Invocable Callable")
	}
}

type nonInvocable struct{}

func (nonInvocable) Type() types.Type             { return types.Void }
func (nonInvocable) Expand() []*gcpool.Handle { return nil }

func TestEvaluateAwaitReturnsValue(t *testing.T) {
	pool := gcpool.New()
	env := scope.New(pool)
	promoter := types.NewPromoter()
	fut := Evaluate(constNode{n: 11}, pool, env, promoter, nil, Config{MaxBounces: 1000})

	v, err := fut.Await()
	if err != nil {
		t.Fatalf("Await: %v", err)
	}
	r, _ := v.Number().Value()
	got, _ := r.Float64()
	if got != 11 {
		t.Errorf("Await result = %v, want 11", got)
	}
}

func TestEvaluateCancelDuringYieldReturnsErrCancelled(t *testing.T) {
	pool := gcpool.New()
	env := scope.New(pool)
	promoter := types.NewPromoter()

	var fut *Future
	hookFired := make(chan struct{})
	hook := func(resume func()) {
		close(hookFired)
		// deliberately never calls resume: the cancel channel must be what
		// unblocks Bounce.
	}
	node := bounceNode{inner: constNode{n: 1}}
	fut = Evaluate(node, pool, env, promoter, hook, Config{MaxBounces: 1})

	select {
	case <-hookFired:
	case <-time.After(time.Second):
		t.Fatal("yield hook was never invoked")
	}
	fut.Cancel()

	_, err := fut.Await()
	if err != ErrCancelled {
		t.Errorf("Await: err = %v, want ErrCancelled", err)
	}
}
