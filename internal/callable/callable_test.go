package callable

import (
	"testing"

	"github.com/afc/edgevm/internal/ast"
	"github.com/afc/edgevm/internal/gcpool"
	"github.com/afc/edgevm/internal/ident"
	"github.com/afc/edgevm/internal/numeric"
	"github.com/afc/edgevm/internal/otype"
	"github.com/afc/edgevm/internal/scope"
	"github.com/afc/edgevm/internal/types"
	"github.com/afc/edgevm/internal/value"
)

func TestFunctionTypeReflectsSignature(t *testing.T) {
	f := &Function{Inputs: []types.Type{types.Number}, Output: types.String, Purity: types.Pure}
	got := f.Type()
	if got.Kind != types.KindFunction {
		t.Fatalf("Type().Kind = %v, want KindFunction", got.Kind)
	}
	if !types.Equal(got.Function.Output, types.String) {
		t.Errorf("Output = %v, want String", got.Function.Output)
	}
}

func TestNativeInvokeDoesNotTouchEvalContext(t *testing.T) {
	called := false
	f := &Function{
		Inputs: []types.Type{types.Number},
		Output: types.Number,
		Native: func(ctx ast.EvalContext, args []value.Value) (value.Value, error) {
			called = true
			return args[0], nil
		},
	}
	out, err := f.Invoke(nil, []value.Value{value.Num(numeric.Int(3))})
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if !called {
		t.Fatal("Native was not invoked")
	}
	r, _ := out.Value.Number().Value()
	got, _ := r.Float64()
	if got != 3 {
		t.Errorf("Invoke result = %v, want 3", got)
	}
}

func TestWithBoundReceiverPrependsArgumentForNative(t *testing.T) {
	var seen []value.Value
	f := &Function{
		Inputs: []types.Type{types.Object("Vector"), types.Number},
		Output: types.Number,
		Native: func(ctx ast.EvalContext, args []value.Value) (value.Value, error) {
			seen = args
			return value.Void, nil
		},
	}
	receiver := value.Obj("Vector", &fakeObject{})
	bound := WithBoundReceiver(f, receiver)

	if len(bound.Inputs) != 1 {
		t.Fatalf("bound.Inputs = %v, want the receiver type dropped", bound.Inputs)
	}
	if _, err := bound.Invoke(nil, []value.Value{value.Num(numeric.Int(1))}); err != nil {
		t.Fatalf("Invoke: %v", err)
	}
	if len(seen) != 2 {
		t.Fatalf("Native saw %d args, want 2 (receiver prepended)", len(seen))
	}
}

func TestWithBoundReceiverSwitchesCapturedToInstanceScope(t *testing.T) {
	pool := gcpool.New()
	env := scope.New(pool)
	ot := otype.New("Point")
	inst := env.NewInstance(ot)

	f := &Function{Inputs: []types.Type{types.Object("Point")}, Output: types.Void, Captured: scope.New(pool)}
	receiver := value.Obj("Point", inst)
	bound := WithBoundReceiver(f, receiver)

	if bound.Captured != inst.Scope {
		t.Error("WithBoundReceiver did not switch Captured to the instance's own scope")
	}
}

func TestExpandIncludesCaptured(t *testing.T) {
	pool := gcpool.New()
	env := scope.New(pool)
	f := &Function{Captured: env}
	f.Register(pool)

	expanded := f.Expand()
	if len(expanded) != 1 || expanded[0] != env.Handle() {
		t.Errorf("Expand() = %v, want [env.Handle()]", expanded)
	}
}

type fakeObject struct{}

func (fakeObject) TypeName() ident.Identifier { return "Vector" }
func (fakeObject) Expand() []*gcpool.Handle   { return nil }
