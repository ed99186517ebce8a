package value

import (
	"testing"

	"github.com/afc/edgevm/internal/numeric"
	"github.com/afc/edgevm/internal/types"
)

func TestConstructorsCarryType(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want types.Kind
	}{
		{"void", Void, types.KindVoid},
		{"bool", Bool(true), types.KindBool},
		{"number", Num(numeric.Int(1)), types.KindNumber},
		{"string", Str("x"), types.KindString},
		{"symbol", Sym("sym"), types.KindSymbol},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Type().Kind; got != tt.want {
				t.Errorf("Type().Kind = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsVoid(t *testing.T) {
	if !Void.IsVoid() {
		t.Error("Void.IsVoid() = false")
	}
	if Bool(false).IsVoid() {
		t.Error("Bool(false).IsVoid() = true")
	}
}

func TestStringRendersEachKind(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want string
	}{
		{"void", Void, "void"},
		{"true", Bool(true), "true"},
		{"false", Bool(false), "false"},
		{"number", Num(numeric.Int(42)), "42"},
		{"string", Str("hi"), "hi"},
		{"symbol", Sym("foo"), "foo"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEqualAcrossDifferentTypesIsFalse(t *testing.T) {
	eq, err := Equal(Bool(true), Str("true"))
	if err != nil {
		t.Fatalf("Equal: %v", err)
	}
	if eq {
		t.Error("a Bool and a String compared equal")
	}
}

func TestEqualNumberUsesNumericCompare(t *testing.T) {
	eq, err := Equal(Num(numeric.Int(2)), Num(numeric.Int(2)))
	if err != nil {
		t.Fatalf("Equal: %v", err)
	}
	if !eq {
		t.Error("Num(2) != Num(2)")
	}

	eq, err = Equal(Num(numeric.Int(2)), Num(numeric.Int(3)))
	if err != nil {
		t.Fatalf("Equal: %v", err)
	}
	if eq {
		t.Error("Num(2) == Num(3)")
	}
}

func TestEqualPropagatesDivisionByZero(t *testing.T) {
	bad := numeric.Quo(numeric.Int(1), numeric.Int(0))
	if _, err := Equal(Num(bad), Num(numeric.Int(1))); err != numeric.ErrDivisionByZero {
		t.Fatalf("Equal: err = %v, want ErrDivisionByZero", err)
	}
}

func TestEqualStringAndSymbol(t *testing.T) {
	eq, _ := Equal(Str("a"), Str("a"))
	if !eq {
		t.Error(`Str("a") != Str("a")`)
	}
	eq, _ = Equal(Sym("a"), Sym("b"))
	if eq {
		t.Error("Sym(a) == Sym(b)")
	}
}

func TestExpandPrimitivesReturnNil(t *testing.T) {
	if got := Num(numeric.Int(1)).Expand(); got != nil {
		t.Errorf("Expand() on a number = %v, want nil", got)
	}
	if got := Str("x").Expand(); got != nil {
		t.Errorf("Expand() on a string = %v, want nil", got)
	}
}
