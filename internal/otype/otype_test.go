package otype

import (
	"testing"

	"github.com/afc/edgevm/internal/gcpool"
	"github.com/afc/edgevm/internal/types"
)

type stubCallable struct{ t types.Type }

func (s stubCallable) Type() types.Type             { return s.t }
func (s stubCallable) Expand() []*gcpool.Handle { return nil }

func TestAddMemberAndLookup(t *testing.T) {
	ot := New("Vector")
	fn := stubCallable{t: types.Function(types.Number, nil, types.Pure)}
	ot.AddMember("size", fn)

	members, ok := ot.Lookup("size")
	if !ok {
		t.Fatal("Lookup(size) = false, want true")
	}
	if len(members) != 1 || members[0].Function != fn {
		t.Errorf("Lookup(size) = %v, want one member wrapping fn", members)
	}
}

func TestLookupMissingReturnsFalse(t *testing.T) {
	ot := New("Vector")
	if _, ok := ot.Lookup("nope"); ok {
		t.Error("Lookup(nope) = true, want false")
	}
}

func TestAddMemberAllowsOverloads(t *testing.T) {
	ot := New("Vector")
	fn1 := stubCallable{t: types.Function(types.Number, []types.Type{types.Number}, types.Pure)}
	fn2 := stubCallable{t: types.Function(types.Number, []types.Type{types.String}, types.Pure)}
	ot.AddMember("get", fn1)
	ot.AddMember("get", fn2)

	members, ok := ot.Lookup("get")
	if !ok || len(members) != 2 {
		t.Fatalf("Lookup(get) = %v, ok=%v, want 2 overloads", members, ok)
	}
}

func TestFieldNames(t *testing.T) {
	ot := New("Vector")
	ot.AddMember("size", stubCallable{t: types.Number})
	ot.AddMember("push_back", stubCallable{t: types.Number})

	names := ot.FieldNames()
	if len(names) != 2 {
		t.Fatalf("FieldNames() = %v, want 2 entries", names)
	}
}

func TestObjectNameType(t *testing.T) {
	ot := New("Vector")
	got := ot.ObjectNameType()
	if got.Kind != types.KindObject || got.Object != "Vector" {
		t.Errorf("ObjectNameType() = %+v, want Object(Vector)", got)
	}
}

func TestInstanceTypeNameAndExpand(t *testing.T) {
	ot := New("Vector")
	h := gcpool.New().Register(func() []*gcpool.Handle { return nil })
	inst := &Instance{Class: ot, ScopeHandle: h}

	if inst.TypeName() != "Vector" {
		t.Errorf("TypeName() = %q, want Vector", inst.TypeName())
	}
	expanded := inst.Expand()
	if len(expanded) != 1 || expanded[0] != h {
		t.Errorf("Expand() = %v, want [h]", expanded)
	}
}

func TestInstanceExpandFallsBackToScopeExpand(t *testing.T) {
	ot := New("Vector")
	called := false
	inst := &Instance{Class: ot, ScopeExpand: func() []*gcpool.Handle {
		called = true
		return nil
	}}
	inst.Expand()
	if !called {
		t.Error("Expand() did not call ScopeExpand when ScopeHandle is nil")
	}
}
