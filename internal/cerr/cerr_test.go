package cerr

import "testing"

func TestErrorOneLineForm(t *testing.T) {
	e := New("<test>", 3, 5, "number x = ;", "unexpected token")
	want := "<test>:3:5: unexpected token"
	if got := e.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestFormatRendersCaretUnderColumn(t *testing.T) {
	e := New("<test>", 1, 5, "1 + ;", "expected expression")
	got := e.Format(false)
	want := "<test>:1:5: expected expression\n1 + ;\n    ^"
	if got != want {
		t.Errorf("Format(false) =\n%q\nwant\n%q", got, want)
	}
}

func TestFormatRendersIncludeChain(t *testing.T) {
	e := New("inner.h", 2, 1, "bad", "oops").WithChain([]IncludeFrame{
		{Source: "main.vm", Line: 1, Column: 1},
	})
	got := e.Format(false)
	wantPrefix := "in file included from main.vm:1:1:\n"
	if len(got) < len(wantPrefix) || got[:len(wantPrefix)] != wantPrefix {
		t.Errorf("Format(false) = %q, want prefix %q", got, wantPrefix)
	}
}

func TestWithChainDoesNotMutateOriginal(t *testing.T) {
	orig := New("a", 1, 1, "", "msg")
	chained := orig.WithChain([]IncludeFrame{{Source: "b", Line: 1, Column: 1}})
	if len(orig.Chain) != 0 {
		t.Error("WithChain mutated the receiver's Chain")
	}
	if len(chained.Chain) != 1 {
		t.Error("WithChain did not set the chain on the returned copy")
	}
}

func TestCompilationErrorsEmptyAndAsError(t *testing.T) {
	agg := &CompilationErrors{}
	if !agg.Empty() {
		t.Fatal("a fresh CompilationErrors should be Empty")
	}
	if agg.AsError() != nil {
		t.Error("AsError() should be nil for an empty aggregate")
	}

	agg.Add(New("a", 1, 1, "", "first"))
	agg.Add(New("a", 2, 1, "", "second"))
	if agg.Empty() {
		t.Fatal("CompilationErrors should not be Empty after Add")
	}
	if agg.AsError() == nil {
		t.Fatal("AsError() should be non-nil once errors are present")
	}
	want := "a:1:1: first\na:2:1: second"
	if got := agg.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
