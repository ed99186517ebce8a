package vmhost

import (
	"testing"

	"github.com/afc/edgevm/internal/numeric"
	"github.com/afc/edgevm/internal/value"
)

func TestCompileAndRunArithmetic(t *testing.T) {
	e := New()
	got, err := e.CompileAndRun("<test>", "number x = 3 + 4; return x;")
	if err != nil {
		t.Fatalf("CompileAndRun: %v", err)
	}
	want := numeric.Int(7)
	cmp, err := got.Number().Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	wantRat, err := want.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	if cmp.Cmp(wantRat) != 0 {
		t.Errorf("result = %s, want %s", got.Number().String(), want.String())
	}
}

func TestCompileAndRunStringMethod(t *testing.T) {
	e := New()
	got, err := e.CompileAndRun("<test>", `string s = "Hello"; return s.toupper();`)
	if err != nil {
		t.Fatalf("CompileAndRun: %v", err)
	}
	if got.Str() != "HELLO" {
		t.Errorf("result = %q, want %q", got.Str(), "HELLO")
	}
}

func TestCompileErrorSurfacesAsError(t *testing.T) {
	e := New()
	if _, err := e.Compile("<test>", "number x = ;"); err == nil {
		t.Fatal("Compile: expected a compilation error for malformed input")
	}
}

func TestRuntimeErrorSurfacesFromRun(t *testing.T) {
	e := New()
	_, err := e.CompileAndRun("<test>", "number x = 1 / 0; return x;")
	if err == nil {
		t.Fatal("CompileAndRun: expected a division-by-zero runtime error")
	}
}

func TestEnvAllowsHostRegistration(t *testing.T) {
	e := New()
	if _, ok := e.Env().ObjectType("string"); !ok {
		t.Fatal("Env: expected the standard library's string object type to be registered")
	}
	if names := e.Env().Names(); len(names) == 0 {
		t.Fatal("Env: expected standard library free functions to be registered")
	}
}

func TestCompileAndRunVectorContainer(t *testing.T) {
	e := New()
	got, err := e.CompileAndRun("<test>", `
		auto v = NewVector();
		v.push_back(10);
		v.push_back(20);
		return v.get(1);
	`)
	if err != nil {
		t.Fatalf("CompileAndRun: %v", err)
	}
	f, _ := mustFloat(t, got)
	if f != 20 {
		t.Errorf("result = %v, want 20", f)
	}
}

func TestCompileAndRunOptional(t *testing.T) {
	e := New()
	got, err := e.CompileAndRun("<test>", `
		auto o = NewOptional();
		bool before = o.has_value();
		o.set(42);
		return o.value();
	`)
	if err != nil {
		t.Fatalf("CompileAndRun: %v", err)
	}
	f, _ := mustFloat(t, got)
	if f != 42 {
		t.Errorf("result = %v, want 42", f)
	}
}

func TestCompileAndRunOptionalEmptyRaises(t *testing.T) {
	e := New()
	_, err := e.CompileAndRun("<test>", `
		auto o = NewOptional();
		return o.value();
	`)
	if err == nil {
		t.Fatal("CompileAndRun: expected an optional-empty runtime error")
	}
}

func mustFloat(t *testing.T, v value.Value) (float64, error) {
	t.Helper()
	r, err := v.Number().Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	f, _ := r.Float64()
	return f, nil
}

func TestValueVoidRoundTrip(t *testing.T) {
	e := New()
	got, err := e.CompileAndRun("<test>", "number x = 1;")
	if err != nil {
		t.Fatalf("CompileAndRun: %v", err)
	}
	if !got.IsVoid() {
		t.Errorf("result = %v, want Void for a program with no return", got)
	}
}
