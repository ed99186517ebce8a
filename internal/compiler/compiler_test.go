package compiler

import (
	"testing"

	"github.com/afc/edgevm/internal/gcpool"
	"github.com/afc/edgevm/internal/lexer"
	"github.com/afc/edgevm/internal/scope"
	"github.com/afc/edgevm/internal/trampoline"
	"github.com/afc/edgevm/internal/types"
)

func compileAndRun(t *testing.T, src string) (float64, error) {
	t.Helper()
	pool := gcpool.New()
	env := scope.New(pool)
	promoter := types.NewPromoter()
	root, errs := Compile(pool, env, promoter, "<test>", src, lexer.NoIncludes{})
	if errs != nil && !errs.Empty() {
		t.Fatalf("Compile: %v", errs.AsError())
	}
	future := trampoline.Evaluate(root, pool, env, promoter, func(resume func()) { resume() }, trampoline.Config{MaxBounces: 10000})
	v, err := future.Await()
	if err != nil {
		return 0, err
	}
	if v.IsVoid() {
		return 0, nil
	}
	r, err := v.Number().Value()
	if err != nil {
		return 0, err
	}
	f, _ := r.Float64()
	return f, nil
}

func TestCompileArithmetic(t *testing.T) {
	got, err := compileAndRun(t, "number x = 1 + 2 * 3; return x;")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if got != 7 {
		t.Errorf("got %v, want 7", got)
	}
}

func TestCompileIfElse(t *testing.T) {
	got, err := compileAndRun(t, `
		number x = 0;
		if (1 < 2) { x = 10; } else { x = 20; }
		return x;
	`)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if got != 10 {
		t.Errorf("got %v, want 10", got)
	}
}

func TestCompileWhileLoop(t *testing.T) {
	got, err := compileAndRun(t, `
		number i = 0;
		number sum = 0;
		while (i < 5) {
			sum = sum + i;
			i = i + 1;
		}
		return sum;
	`)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if got != 10 {
		t.Errorf("got %v, want 10", got)
	}
}

func TestCompileUnknownTypeError(t *testing.T) {
	pool := gcpool.New()
	env := scope.New(pool)
	promoter := types.NewPromoter()
	_, errs := Compile(pool, env, promoter, "<test>", "Nonexistent x = 1;", lexer.NoIncludes{})
	if errs == nil || errs.Empty() {
		t.Fatal("Compile: expected an error for an unknown type")
	}
}

func TestCompileDivisionByZeroIsRuntimeNotCompileError(t *testing.T) {
	pool := gcpool.New()
	env := scope.New(pool)
	promoter := types.NewPromoter()
	root, errs := Compile(pool, env, promoter, "<test>", "number x = 1 / 0; return x;", lexer.NoIncludes{})
	if errs != nil && !errs.Empty() {
		t.Fatalf("Compile: %v", errs.AsError())
	}
	future := trampoline.Evaluate(root, pool, env, promoter, func(resume func()) { resume() }, trampoline.Config{MaxBounces: 10000})
	if _, err := future.Await(); err == nil {
		t.Fatal("Await: expected a division-by-zero runtime error")
	}
}
