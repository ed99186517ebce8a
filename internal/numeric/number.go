// Package numeric implements the VM's arbitrary-precision rational Number:
// an expression tree of sums, negations, products, and quotients over big
// integers, canonicalised lazily on demand and memoized once computed,
// since the tree is immutable after construction. One constructor exists
// per operator, mirroring the one-file-per-kind convention used for AST
// node variants.
package numeric

import (
	"fmt"
	"math/big"
)

// op tags the internal expression-tree node kind.
type op int

const (
	opLeaf op = iota
	opAdd
	opNeg
	opMul
	opQuo
)

// Number is a lazily-evaluated rational number. The zero value is not
// valid; use Int or Leaf to construct one.
type Number struct {
	kind op
	a, b *Number
	leaf *big.Rat

	// cache holds the canonicalised value once Value() has been called.
	cache *big.Rat
}

// Int constructs a Number from an int64.
func Int(v int64) *Number {
	return &Number{kind: opLeaf, leaf: new(big.Rat).SetInt64(v)}
}

// FromRat wraps an existing big.Rat as a leaf Number.
func FromRat(r *big.Rat) *Number {
	return &Number{kind: opLeaf, leaf: new(big.Rat).Set(r)}
}

// FromString parses a decimal/scientific literal of the form produced by
// the lexer: an optional sign,
// digits, optional '.' fraction, optional 'e'/'E' exponent.
func FromString(s string) (*Number, error) {
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return nil, fmt.Errorf("invalid numeric literal: %q", s)
	}
	return FromRat(r), nil
}

// Add builds a lazy sum node; no canonicalisation happens here. All
// arithmetic stays lazy until Value is forced.
func Add(a, b *Number) *Number { return &Number{kind: opAdd, a: a, b: b} }

// Neg builds a lazy negation node.
func Neg(a *Number) *Number { return &Number{kind: opNeg, a: a} }

// Mul builds a lazy product node.
func Mul(a, b *Number) *Number { return &Number{kind: opMul, a: a, b: b} }

// Quo builds a lazy quotient node. Division by zero is not detected here;
// it surfaces as a runtime error when Value() is eventually forced, mapped
// by the evaluator to the "division by zero" runtime-error kind.
func Quo(a, b *Number) *Number { return &Number{kind: opQuo, a: a, b: b} }

// Value forces canonicalisation: collapses the expression tree into a
// single big.Rat, memoizing the result on the node (since the tree is
// immutable once built, repeated calls are free after the first).
func (n *Number) Value() (*big.Rat, error) {
	if n.cache != nil {
		return n.cache, nil
	}
	var result *big.Rat
	switch n.kind {
	case opLeaf:
		result = n.leaf
	case opAdd:
		av, err := n.a.Value()
		if err != nil {
			return nil, err
		}
		bv, err := n.b.Value()
		if err != nil {
			return nil, err
		}
		result = new(big.Rat).Add(av, bv)
	case opNeg:
		av, err := n.a.Value()
		if err != nil {
			return nil, err
		}
		result = new(big.Rat).Neg(av)
	case opMul:
		av, err := n.a.Value()
		if err != nil {
			return nil, err
		}
		bv, err := n.b.Value()
		if err != nil {
			return nil, err
		}
		result = new(big.Rat).Mul(av, bv)
	case opQuo:
		av, err := n.a.Value()
		if err != nil {
			return nil, err
		}
		bv, err := n.b.Value()
		if err != nil {
			return nil, err
		}
		if bv.Sign() == 0 {
			return nil, ErrDivisionByZero
		}
		result = new(big.Rat).Quo(av, bv)
	default:
		return nil, fmt.Errorf("numeric: unknown node kind %d", n.kind)
	}
	n.cache = result
	return result, nil
}

// ErrDivisionByZero is returned by Value (and by Compare/ToInteger, which
// force Value) when a quotient node's divisor canonicalises to zero.
var ErrDivisionByZero = fmt.Errorf("division by zero")

// Compare orders two Numbers, canonicalising both to the requested decimal
// precision first. A
// negative precision means "full precision, no rounding".
func Compare(a, b *Number, precisionDigits int) (int, error) {
	av, err := roundedValue(a, precisionDigits)
	if err != nil {
		return 0, err
	}
	bv, err := roundedValue(b, precisionDigits)
	if err != nil {
		return 0, err
	}
	return av.Cmp(bv), nil
}

func roundedValue(n *Number, precisionDigits int) (*big.Rat, error) {
	v, err := n.Value()
	if err != nil {
		return nil, err
	}
	if precisionDigits < 0 {
		return v, nil
	}
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(precisionDigits)), nil)
	scaled := new(big.Rat).Mul(v, new(big.Rat).SetInt(scale))
	rounded := new(big.Int)
	rounded.Quo(scaled.Num(), scaled.Denom())
	return new(big.Rat).Quo(new(big.Rat).SetInt(rounded), new(big.Rat).SetInt(scale)), nil
}

// ToInteger converts n to an int64, failing if the canonicalised value is
// non-integral or out of int64 range.
func (n *Number) ToInteger() (int64, error) {
	v, err := n.Value()
	if err != nil {
		return 0, err
	}
	if !v.IsInt() {
		return 0, fmt.Errorf("numeric: %s is not an integer", v.RatString())
	}
	num := v.Num()
	if !num.IsInt64() {
		return 0, fmt.Errorf("numeric: %s is out of int64 range", v.RatString())
	}
	return num.Int64(), nil
}

// String renders an integer n without a fractional part, and any other n
// rounded to exactly 12 fractional digits (trailing zeros are kept).
func (n *Number) String() string {
	v, err := n.Value()
	if err != nil {
		return "<error>"
	}
	if v.IsInt() {
		return v.Num().String()
	}
	return v.FloatString(12)
}

// ToString renders n with exactly precision fractional digits, backing the
// number type's tostring(precision) method.
func (n *Number) ToString(precision int) (string, error) {
	v, err := n.Value()
	if err != nil {
		return "", err
	}
	return v.FloatString(precision), nil
}
