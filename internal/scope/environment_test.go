package scope

import (
	"testing"

	"github.com/afc/edgevm/internal/gcpool"
	"github.com/afc/edgevm/internal/ident"
	"github.com/afc/edgevm/internal/numeric"
	"github.com/afc/edgevm/internal/otype"
	"github.com/afc/edgevm/internal/types"
	"github.com/afc/edgevm/internal/value"
)

func TestDefineAndLookup(t *testing.T) {
	e := New(gcpool.New())
	e.Define("x", types.Number, value.Num(numeric.Int(1)))

	overloads := e.Lookup("x")
	v, ok := overloads[types.Number]
	if !ok {
		t.Fatal("Lookup(x) did not find the Number overload")
	}
	f, _ := v.Number().Value()
	got, _ := f.Float64()
	if got != 1 {
		t.Errorf("Lookup(x)[Number] = %v, want 1", got)
	}
}

func TestLookupWalksParentChain(t *testing.T) {
	parent := New(gcpool.New())
	parent.Define("x", types.Number, value.Num(numeric.Int(1)))
	child := parent.NewChild()

	overloads := child.Lookup("x")
	if _, ok := overloads[types.Number]; !ok {
		t.Fatal("child Lookup(x) did not find parent's definition")
	}
}

func TestChildShadowsParentOfSameType(t *testing.T) {
	parent := New(gcpool.New())
	parent.Define("x", types.Number, value.Num(numeric.Int(1)))
	child := parent.NewChild()
	child.Define("x", types.Number, value.Num(numeric.Int(2)))

	overloads := child.Lookup("x")
	v := overloads[types.Number]
	r, _ := v.Number().Value()
	got, _ := r.Float64()
	if got != 2 {
		t.Errorf("child Lookup(x)[Number] = %v, want 2 (shadowed)", got)
	}
}

func TestOverloadsBySeparateType(t *testing.T) {
	e := New(gcpool.New())
	e.Define("f", types.Number, value.Num(numeric.Int(1)))
	e.Define("f", types.String, value.Str("s"))

	overloads := e.Lookup("f")
	if len(overloads) != 2 {
		t.Fatalf("Lookup(f) = %v, want 2 overloads", overloads)
	}
}

func TestAssignUpdatesDefiningScope(t *testing.T) {
	parent := New(gcpool.New())
	parent.Define("x", types.Number, value.Num(numeric.Int(1)))
	child := parent.NewChild()

	if err := child.Assign("x", types.Number, value.Num(numeric.Int(9))); err != nil {
		t.Fatalf("Assign: %v", err)
	}
	v := parent.Overloads("x")[types.Number]
	r, _ := v.Number().Value()
	got, _ := r.Float64()
	if got != 9 {
		t.Errorf("parent's x = %v, want 9 after child Assign", got)
	}
}

func TestAssignUndefinedFails(t *testing.T) {
	e := New(gcpool.New())
	if err := e.Assign("nope", types.Number, value.Num(numeric.Int(1))); err == nil {
		t.Fatal("Assign: expected an error for an undefined variable")
	}
}

func TestNamespaceResolve(t *testing.T) {
	root := New(gcpool.New())
	child := root.NewChild()
	root.DefineNamespace("math", child)
	child.Define("pi", types.Number, value.Num(numeric.Int(3)))

	resolved, ok := root.Resolve(ident.Namespace{"math"})
	if !ok {
		t.Fatal("Resolve(math) = false")
	}
	if _, ok := resolved.Lookup("pi")[types.Number]; !ok {
		t.Error("resolved namespace does not see its own pi definition")
	}
}

func TestObjectTypeLookupWalksParents(t *testing.T) {
	parent := New(gcpool.New())
	ot := otype.New("Vector")
	parent.DefineObjectType(ot)
	child := parent.NewChild()

	got, ok := child.ObjectType("Vector")
	if !ok || got != ot {
		t.Errorf("ObjectType(Vector) = %v, %v, want the parent's registration", got, ok)
	}
}

func TestNamesReflectsOwnScopeOnly(t *testing.T) {
	parent := New(gcpool.New())
	parent.Define("x", types.Number, value.Num(numeric.Int(1)))
	child := parent.NewChild()
	child.Define("y", types.Number, value.Num(numeric.Int(2)))

	names := child.Names()
	if len(names) != 1 || names[0] != "y" {
		t.Errorf("child.Names() = %v, want [y]", names)
	}
}

func TestNewInstanceGetSet(t *testing.T) {
	e := New(gcpool.New())
	ot := otype.New("Point")
	inst := e.NewInstance(ot)

	inst.Set("x", types.Number, value.Num(numeric.Int(5)))
	v, ok := inst.Get("x", types.Number)
	if !ok {
		t.Fatal("Get(x) = false after Set")
	}
	r, _ := v.Number().Value()
	got, _ := r.Float64()
	if got != 5 {
		t.Errorf("Get(x) = %v, want 5", got)
	}
}
