package ast

import (
	"strings"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/afc/edgevm/internal/numeric"
	"github.com/afc/edgevm/internal/rterr"
	"github.com/afc/edgevm/internal/types"
	"github.com/afc/edgevm/internal/value"
)

// defaultCollator backs the language's `<`/`>`/`<=`/`>=` string comparison
// operators: locale-aware ordering under the VM's default (English)
// locale, rather than raw byte comparison. Operands are compared as
// given; no Unicode normalization is applied first.
// collate.Collator is not safe for concurrent use, so callers serialize
// through collatorMu; the VM is single-threaded-cooperative, but tests
// may run packages in parallel within one process.
var (
	collatorMu sync.Mutex
	collator   = collate.New(language.English)
)

func collateCompare(a, b string) int {
	collatorMu.Lock()
	defer collatorMu.Unlock()
	return collator.CompareString(a, b)
}

// BinOp enumerates the binary operator spellings the language defines.
type BinOp int

const (
	OpAdd BinOp = iota
	OpSub
	OpMul
	OpDiv
	OpLt
	OpLe
	OpGt
	OpGe
	OpEq
	OpNe
)

// Binary covers the four arithmetic operations on numbers (+ also
// concatenates strings; string*int repeats), comparisons on numbers and
// strings, and equality on bools, numbers, strings, and objects (identity).
// Division by zero surfaces as a runtime error rather than a compile-time
// one, since the divisor's value is not generally known until evaluation.
type Binary struct {
	base
	Op          BinOp
	Left, Right Node
	// ResultType is fixed at compile time once the operand types are
	// known (package compiler); it is what Types() reports.
	ResultType types.Type
	LeftType, RightType types.Type
}

func NewBinary(pos Position, op BinOp, left, right Node, resultType, leftType, rightType types.Type) *Binary {
	return &Binary{
		base:       base{pos: pos, purity: types.Combine(left.Purity(), right.Purity())},
		Op:         op,
		Left:       left,
		Right:      right,
		ResultType: resultType,
		LeftType:   leftType,
		RightType:  rightType,
	}
}

func (b *Binary) Types() []types.Type       { return []types.Type{b.ResultType} }
func (b *Binary) ReturnTypes() []types.Type {
	combined, ok := CombineReturnTypes(b.Left.ReturnTypes(), b.Right.ReturnTypes())
	if !ok {
		return nil
	}
	return combined
}

func (b *Binary) Evaluate(ctx EvalContext, expected types.Type) (Output, error) {
	left, err := ctx.Bounce(b.Left, b.LeftType)
	if err != nil || left.Returning {
		return left, err
	}
	right, err := ctx.Bounce(b.Right, b.RightType)
	if err != nil || right.Returning {
		return right, err
	}

	switch b.Op {
	case OpEq, OpNe:
		eq, err := value.Equal(left.Value, right.Value)
		if err != nil {
			return Output{}, err
		}
		if b.Op == OpNe {
			eq = !eq
		}
		return Output{Value: value.Bool(eq)}, nil
	}

	if b.LeftType.Kind == types.KindString && b.Op == OpAdd {
		return Output{Value: value.Str(left.Value.Str() + right.Value.Str())}, nil
	}
	if b.LeftType.Kind == types.KindString && b.Op == OpMul {
		n, err := right.Value.Number().ToInteger()
		if err != nil {
			return Output{}, rterr.New(rterr.KindNumericConversion, "%v", err)
		}
		if n < 0 {
			n = 0
		}
		return Output{Value: value.Str(strings.Repeat(left.Value.Str(), int(n)))}, nil
	}
	if b.LeftType.Kind == types.KindString {
		c := collateCompare(left.Value.Str(), right.Value.Str())
		return Output{Value: value.Bool(compareResult(b.Op, c))}, nil
	}

	// Numeric path.
	ln, rn := left.Value.Number(), right.Value.Number()
	switch b.Op {
	case OpAdd:
		return Output{Value: value.Num(numeric.Add(ln, rn))}, nil
	case OpSub:
		return Output{Value: value.Num(numeric.Add(ln, numeric.Neg(rn)))}, nil
	case OpMul:
		return Output{Value: value.Num(numeric.Mul(ln, rn))}, nil
	case OpDiv:
		q := numeric.Quo(ln, rn)
		if _, err := q.Value(); err != nil {
			if err == numeric.ErrDivisionByZero {
				return Output{}, rterr.New(rterr.KindDivisionByZero, "division by zero")
			}
			return Output{}, err
		}
		return Output{Value: value.Num(q)}, nil
	case OpLt, OpLe, OpGt, OpGe:
		c, err := numeric.Compare(ln, rn, -1)
		if err != nil {
			return Output{}, err
		}
		return Output{Value: value.Bool(compareResult(b.Op, c))}, nil
	}
	return Output{}, rterr.New(rterr.KindNativeBindingFailure, "unsupported binary operator")
}

func compareResult(op BinOp, c int) bool {
	switch op {
	case OpLt:
		return c < 0
	case OpLe:
		return c <= 0
	case OpGt:
		return c > 0
	case OpGe:
		return c >= 0
	default:
		return false
	}
}

// UnaryKind distinguishes the two negation forms the language allows:
// boolean not and numeric negate.
type UnaryKind int

const (
	UnaryNotBool UnaryKind = iota
	UnaryNegNumber
)

// Unary implements unary `!` and `-`.
type Unary struct {
	base
	Kind    UnaryKind
	Operand Node
}

func NewUnary(pos Position, kind UnaryKind, operand Node) *Unary {
	return &Unary{base: base{pos: pos, purity: operand.Purity()}, Kind: kind, Operand: operand}
}

func (u *Unary) Types() []types.Type {
	if u.Kind == UnaryNotBool {
		return []types.Type{types.Bool}
	}
	return []types.Type{types.Number}
}

func (u *Unary) ReturnTypes() []types.Type { return u.Operand.ReturnTypes() }

func (u *Unary) Evaluate(ctx EvalContext, expected types.Type) (Output, error) {
	if u.Kind == UnaryNotBool {
		out, err := ctx.Bounce(u.Operand, types.Bool)
		if err != nil || out.Returning {
			return out, err
		}
		return Output{Value: value.Bool(!out.Value.Bool())}, nil
	}
	out, err := ctx.Bounce(u.Operand, types.Number)
	if err != nil || out.Returning {
		return out, err
	}
	return Output{Value: value.Num(numeric.Neg(out.Value.Number()))}, nil
}
