// Package value implements the VM's tagged runtime Value container: bool,
// number, string, symbol, user-object, and callable, each carrying its
// Type. Value is a single tagged struct rather than one Go type per case,
// since every consumer needs to hold "one of several possible payloads"
// behind a uniform, directly-comparable value.
package value

import (
	"github.com/afc/edgevm/internal/gcpool"
	"github.com/afc/edgevm/internal/ident"
	"github.com/afc/edgevm/internal/numeric"
	"github.com/afc/edgevm/internal/types"
)

// Object is the opaque payload of a user-object Value: a shared pointer
// plus an expansion callback for the GC. Concrete object
// kinds (class instances, host containers) implement this interface; see
// package otype for class instances and package gcpool for the expansion
// contract it is registered against.
type Object interface {
	// TypeName returns the ObjectName this instance was created from.
	TypeName() ident.Identifier
	// Expand returns every GC-visible reference this object retains
	// directly.
	Expand() []*gcpool.Handle
}

// Callable is implemented by package callable's function values. Value
// stores it as an interface to avoid an import cycle (callable.Value ==
// this Value, so callable depends on value, not the reverse).
type Callable interface {
	Type() types.Type
	Expand() []*gcpool.Handle
}

// Value is the tagged runtime container.
type Value struct {
	typ types.Type

	b   bool
	n   *numeric.Number
	s   string
	sym ident.Identifier
	obj Object
	fn  Callable
}

// Void is the dedicated absent value.
var Void = Value{typ: types.Void}

func Bool(b bool) Value     { return Value{typ: types.Bool, b: b} }
func Num(n *numeric.Number) Value { return Value{typ: types.Number, n: n} }
func Str(s string) Value    { return Value{typ: types.String, s: s} }
func Sym(id ident.Identifier) Value { return Value{typ: types.Symbol, sym: id} }

func Obj(name ident.Identifier, o Object) Value {
	return Value{typ: types.Object(name), obj: o}
}

func Fn(t types.Type, c Callable) Value { return Value{typ: t, fn: c} }

// Type returns the value's carried type. Every value carries exactly one.
func (v Value) Type() types.Type { return v.typ }

func (v Value) IsVoid() bool { return v.typ.Kind == types.KindVoid }

func (v Value) Bool() bool               { return v.b }
func (v Value) Number() *numeric.Number  { return v.n }
func (v Value) Str() string              { return v.s }
func (v Value) Symbol() ident.Identifier { return v.sym }
func (v Value) Object() Object           { return v.obj }
func (v Value) Callable() Callable       { return v.fn }

// Expand returns the GC-visible neighbours directly held by this value:
// nothing for primitives, the object/callable's own expansion otherwise.
// This is the Value-level half of the expansion-callback contract every
// GC-tracked payload implements.
func (v Value) Expand() []*gcpool.Handle {
	switch v.typ.Kind {
	case types.KindObject:
		if v.obj != nil {
			return v.obj.Expand()
		}
	case types.KindFunction:
		if v.fn != nil {
			return v.fn.Expand()
		}
	}
	return nil
}

// String renders the value textually. This is used for diagnostics and by
// the standard library's implicit string conversions; it is not the
// language-level tostring() method dispatch (that lives in stdlib), since
// user object types may override tostring with their own method.
func (v Value) String() string {
	switch v.typ.Kind {
	case types.KindVoid:
		return "void"
	case types.KindBool:
		if v.b {
			return "true"
		}
		return "false"
	case types.KindNumber:
		return v.n.String()
	case types.KindString:
		return v.s
	case types.KindSymbol:
		return string(v.sym)
	case types.KindObject:
		return "<" + string(v.typ.Object) + ">"
	case types.KindFunction:
		return "<function " + v.typ.String() + ">"
	default:
		return "<?>"
	}
}

// Equal implements the identity/value equality the binary equality
// operator requires for bools, numbers, strings, and objects (identity).
func Equal(a, b Value) (bool, error) {
	if !types.Equal(a.typ, b.typ) {
		return false, nil
	}
	switch a.typ.Kind {
	case types.KindVoid:
		return true, nil
	case types.KindBool:
		return a.b == b.b, nil
	case types.KindNumber:
		c, err := numeric.Compare(a.n, b.n, -1)
		return c == 0, err
	case types.KindString:
		return a.s == b.s, nil
	case types.KindSymbol:
		return a.sym == b.sym, nil
	case types.KindObject:
		return a.obj == b.obj, nil
	case types.KindFunction:
		return false, nil
	default:
		return false, nil
	}
}
