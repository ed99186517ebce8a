package numeric

import "testing"

func mustValue(t *testing.T, n *Number) float64 {
	t.Helper()
	r, err := n.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	f, _ := r.Float64()
	return f
}

func TestAddMulNeg(t *testing.T) {
	got := mustValue(t, Add(Int(2), Mul(Int(3), Int(4))))
	if got != 14 {
		t.Errorf("2 + 3*4 = %v, want 14", got)
	}
	got = mustValue(t, Neg(Int(5)))
	if got != -5 {
		t.Errorf("-5 = %v, want -5", got)
	}
}

func TestQuoDivisionByZero(t *testing.T) {
	_, err := Quo(Int(1), Int(0)).Value()
	if err != ErrDivisionByZero {
		t.Fatalf("Value: err = %v, want ErrDivisionByZero", err)
	}
}

func TestValueIsMemoized(t *testing.T) {
	n := Add(Int(1), Int(1))
	first, err := n.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	if n.cache != first {
		t.Fatal("Value did not cache its result on the node")
	}
	second, err := n.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	if first != second {
		t.Error("second Value() call did not return the memoized result")
	}
}

func TestFromString(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"42", 42},
		{"3.14", 3.14},
		{"-7", -7},
		{"1.5e2", 150},
	}
	for _, tt := range tests {
		n, err := FromString(tt.in)
		if err != nil {
			t.Fatalf("FromString(%q): %v", tt.in, err)
		}
		if got := mustValue(t, n); got != tt.want {
			t.Errorf("FromString(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFromStringInvalid(t *testing.T) {
	if _, err := FromString("not-a-number"); err == nil {
		t.Fatal("FromString: expected an error for an invalid literal")
	}
}

func TestCompare(t *testing.T) {
	cmp, err := Compare(Int(1), Int(2), -1)
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if cmp >= 0 {
		t.Errorf("Compare(1, 2) = %d, want < 0", cmp)
	}

	cmp, err = Compare(Int(2), Int(2), -1)
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if cmp != 0 {
		t.Errorf("Compare(2, 2) = %d, want 0", cmp)
	}
}

func TestComparePrecisionRounds(t *testing.T) {
	a, err := FromString("1.001")
	if err != nil {
		t.Fatalf("FromString: %v", err)
	}
	b := Int(1)
	cmp, err := Compare(a, b, 1)
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if cmp != 0 {
		t.Errorf("Compare(1.001, 1, precision=1) = %d, want 0 (rounds equal)", cmp)
	}
}

func TestCompareDivisionByZeroPropagates(t *testing.T) {
	_, err := Compare(Quo(Int(1), Int(0)), Int(1), -1)
	if err != ErrDivisionByZero {
		t.Fatalf("Compare: err = %v, want ErrDivisionByZero", err)
	}
}

func TestToInteger(t *testing.T) {
	v, err := Int(7).ToInteger()
	if err != nil {
		t.Fatalf("ToInteger: %v", err)
	}
	if v != 7 {
		t.Errorf("ToInteger = %d, want 7", v)
	}
}

func TestToIntegerNonIntegralFails(t *testing.T) {
	n, err := FromString("1.5")
	if err != nil {
		t.Fatalf("FromString: %v", err)
	}
	if _, err := n.ToInteger(); err == nil {
		t.Fatal("ToInteger: expected an error for a non-integral value")
	}
}

func TestStringTrimsFractionForIntegers(t *testing.T) {
	if got := Int(42).String(); got != "42" {
		t.Errorf("String() = %q, want %q", got, "42")
	}
}

func TestToStringFixedPrecision(t *testing.T) {
	n, err := FromString("1.5")
	if err != nil {
		t.Fatalf("FromString: %v", err)
	}
	got, err := n.ToString(3)
	if err != nil {
		t.Fatalf("ToString: %v", err)
	}
	if got != "1.500" {
		t.Errorf("ToString(3) = %q, want %q", got, "1.500")
	}
}
