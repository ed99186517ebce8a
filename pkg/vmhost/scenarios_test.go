package vmhost

import (
	"testing"

	"github.com/afc/edgevm/internal/rterr"
)

// TestDocumentedScenarios runs the worked end-to-end programs the
// language's own walkthrough uses to introduce arithmetic, strings,
// recursion, loops, and classes, and checks each against its documented
// result.
func TestDocumentedScenarios(t *testing.T) {
	t.Run("arithmetic", func(t *testing.T) {
		e := New()
		got, err := e.CompileAndRun("<test>", `return 40 + 2;`)
		if err != nil {
			t.Fatalf("CompileAndRun: %v", err)
		}
		f, _ := mustFloat(t, got)
		if f != 42 {
			t.Errorf("result = %v, want 42", f)
		}
	})

	t.Run("string concat and substr", func(t *testing.T) {
		e := New()
		got, err := e.CompileAndRun("<test>", `string s = "ab"; s = s + "cd"; return s.substr(1,2);`)
		if err != nil {
			t.Fatalf("CompileAndRun: %v", err)
		}
		if got.Str() != "bc" {
			t.Errorf("result = %q, want %q", got.Str(), "bc")
		}
	})

	t.Run("recursive factorial", func(t *testing.T) {
		e := New()
		got, err := e.CompileAndRun("<test>", `
			number fact(number n) {
				if (n <= 1) return 1;
				return n * fact(n-1);
			}
			return fact(5);
		`)
		if err != nil {
			t.Fatalf("CompileAndRun: %v", err)
		}
		f, _ := mustFloat(t, got)
		if f != 120 {
			t.Errorf("result = %v, want 120", f)
		}
	})

	t.Run("for loop with prefix increment", func(t *testing.T) {
		e := New()
		got, err := e.CompileAndRun("<test>", `
			number x = 0;
			for (number i = 1; i <= 4; ++i) x = x + i;
			return x;
		`)
		if err != nil {
			t.Fatalf("CompileAndRun: %v", err)
		}
		f, _ := mustFloat(t, got)
		if f != 10 {
			t.Errorf("result = %v, want 10", f)
		}
	})

	t.Run("class with synthesized accessors", func(t *testing.T) {
		e := New()
		got, err := e.CompileAndRun("<test>", `
			class Pair {
				number a;
				number b;
			}
			Pair p = Pair();
			p.set_a(3);
			p.set_b(4);
			return p.a() + p.b();
		`)
		if err != nil {
			t.Fatalf("CompileAndRun: %v", err)
		}
		f, _ := mustFloat(t, got)
		if f != 7 {
			t.Errorf("result = %v, want 7", f)
		}
	})

	t.Run("division by zero", func(t *testing.T) {
		e := New()
		_, err := e.CompileAndRun("<test>", `return 1 / 0;`)
		if err == nil {
			t.Fatal("CompileAndRun: expected a division-by-zero runtime error")
		}
		rerr, ok := rterr.As(err)
		if !ok {
			t.Fatalf("error = %v, want an *rterr.Error", err)
		}
		if rerr.Kind != rterr.KindDivisionByZero {
			t.Errorf("Kind = %s, want %s", rerr.Kind, rterr.KindDivisionByZero)
		}
	})
}
