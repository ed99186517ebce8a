// Package types implements the VM's structural type system: the Type sum,
// purity flags, and the promotion table that the compiler consults
// whenever an expression's type must be reconciled with a context's
// expected type.
package types

import (
	"fmt"
	"strings"

	"github.com/afc/edgevm/internal/ident"
)

// Kind tags the sum in Type.
type Kind int

const (
	KindVoid Kind = iota
	KindBool
	KindNumber
	KindString
	KindSymbol
	KindObject
	KindFunction
)

func (k Kind) String() string {
	switch k {
	case KindVoid:
		return "Void"
	case KindBool:
		return "Bool"
	case KindNumber:
		return "Number"
	case KindString:
		return "String"
	case KindSymbol:
		return "Symbol"
	case KindObject:
		return "Object"
	case KindFunction:
		return "Function"
	default:
		return "?"
	}
}

// Purity is the pair of effect flags attached to expressions and function
// values.
type Purity struct {
	ReadsExternalInputs  bool
	WritesExternalOutput bool
}

var (
	Pure    = Purity{}
	Reader  = Purity{ReadsExternalInputs: true}
	Unknown = Purity{ReadsExternalInputs: true, WritesExternalOutput: true}
)

// Combine implements the pointwise-OR combine rule.
func Combine(ps ...Purity) Purity {
	var out Purity
	for _, p := range ps {
		out.ReadsExternalInputs = out.ReadsExternalInputs || p.ReadsExternalInputs
		out.WritesExternalOutput = out.WritesExternalOutput || p.WritesExternalOutput
	}
	return out
}

// SubsetOf reports whether p admits no effect not already admitted by q,
// i.e. p ⊆ q; used for the function-promotion purity check
// "purity1 ⊆ purity2".
func (p Purity) SubsetOf(q Purity) bool {
	if p.ReadsExternalInputs && !q.ReadsExternalInputs {
		return false
	}
	if p.WritesExternalOutput && !q.WritesExternalOutput {
		return false
	}
	return true
}

// Type is the tagged sum of the language's value categories.
type Type struct {
	Kind Kind

	// Object carries the registered name for KindObject.
	Object ident.Identifier

	// Function carries output/inputs/purity for KindFunction.
	Function *FunctionType
}

// FunctionType is the signature payload of a Function-kind Type.
type FunctionType struct {
	Output  Type
	Inputs  []Type
	Purity  Purity
}

var (
	Void   = Type{Kind: KindVoid}
	Bool   = Type{Kind: KindBool}
	Number = Type{Kind: KindNumber}
	String = Type{Kind: KindString}
	Symbol = Type{Kind: KindSymbol}
)

// Object constructs a user/host object type reference.
func Object(name ident.Identifier) Type { return Type{Kind: KindObject, Object: name} }

// Function constructs a function type.
func Function(out Type, inputs []Type, purity Purity) Type {
	return Type{Kind: KindFunction, Function: &FunctionType{Output: out, Inputs: inputs, Purity: purity}}
}

// Equal implements structural type equality.
func Equal(a, b Type) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindObject:
		return a.Object == b.Object
	case KindFunction:
		return functionEqual(a.Function, b.Function)
	default:
		return true
	}
}

func functionEqual(a, b *FunctionType) bool {
	if len(a.Inputs) != len(b.Inputs) {
		return false
	}
	if a.Purity != b.Purity {
		return false
	}
	if !Equal(a.Output, b.Output) {
		return false
	}
	for i := range a.Inputs {
		if !Equal(a.Inputs[i], b.Inputs[i]) {
			return false
		}
	}
	return true
}

// String renders the type the way the language would write it back
//.
func (t Type) String() string {
	switch t.Kind {
	case KindObject:
		return string(t.Object)
	case KindFunction:
		parts := make([]string, len(t.Function.Inputs))
		for i, in := range t.Function.Inputs {
			parts[i] = in.String()
		}
		return fmt.Sprintf("fn(%s) -> %s", strings.Join(parts, ", "), t.Function.Output.String())
	default:
		return t.Kind.String()
	}
}
