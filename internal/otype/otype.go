// Package otype implements the object-type registry and class instances:
// a record of ObjectName plus a multimap from field name to function
// values acting as methods/fields, and the runtime instance wrapper class
// declarations produce. Method lookup here is a flat map rather than an
// inheritance chain, since the language has no subclassing. The instance
// wrapper holds its scope behind an interface-free accessor closure to
// avoid an import cycle with package scope, the same way package scope
// avoids one back with this package.
package otype

import (
	"github.com/afc/edgevm/internal/gcpool"
	"github.com/afc/edgevm/internal/ident"
	"github.com/afc/edgevm/internal/types"
	"github.com/afc/edgevm/internal/value"
)

// Member is one entry of the field/method multimap: a function
// value whose first positional input is the instance, synthesised either
// by a class-member declaration (field getter/setter) or written directly
// as a method body.
type Member struct {
	Name     ident.Identifier
	Function value.Callable
}

// ObjectType is the registry record for a user-defined (or host-registered)
// type.
type ObjectType struct {
	Name    ident.Identifier
	// Members maps a field/method name to every overload registered under
	// it — several definitions may share a name so long as their types
	// differ, and class fields generate both a getter and an unconditional
	// setter under distinct names ("a" and "set_a"), so in practice each
	// name maps to one entry, but user-declared methods may still be
	// overloaded by parameter type.
	Members map[ident.Identifier][]Member
}

// New constructs an empty ObjectType for name.
func New(name ident.Identifier) *ObjectType {
	return &ObjectType{Name: name, Members: make(map[ident.Identifier][]Member)}
}

// AddMember registers fn under name, used both by class-declaration
// compilation and by host code registering a native field/method.
func (t *ObjectType) AddMember(name ident.Identifier, fn value.Callable) {
	t.Members[name] = append(t.Members[name], Member{Name: name, Function: fn})
}

// Lookup returns every overload registered under name.
func (t *ObjectType) Lookup(name ident.Identifier) ([]Member, bool) {
	m, ok := t.Members[name]
	return m, ok
}

// FieldNames returns every member name, for enumerating the field names
// of the object type in a failed-method-lookup diagnostic.
func (t *ObjectType) FieldNames() []ident.Identifier {
	names := make([]ident.Identifier, 0, len(t.Members))
	for n := range t.Members {
		names = append(names, n)
	}
	return names
}

// Instance is the runtime value an ObjectType's constructor produces: a
// user-object wrapping a private scope, carried by owning an environment.
// The scope itself is represented here as an opaque gcpool.Handle,
// accessor closures, and an untyped Scope field, to avoid an import cycle
// with package scope
// (which must import otype to hold the object-type registry map).
type Instance struct {
	Class     *ObjectType
	ScopeHandle *gcpool.Handle
	// ScopeExpand returns the handles the owned scope itself exposes,
	// supplied by package scope when it builds the Instance so otype need
	// not know the Environment type.
	ScopeExpand func() []*gcpool.Handle

	// Get and Set read and write a single (name, type) slot of the
	// instance's owned scope; both are supplied by package scope when it
	// builds the Instance, for the same reason as ScopeExpand. A class
	// declaration's synthesised field getter/setter natives call these
	// rather than holding the Environment type directly.
	Get func(name ident.Identifier, t types.Type) (value.Value, bool)
	Set func(name ident.Identifier, t types.Type, v value.Value)

	// Scope is the instance's owning *scope.Environment, stored as any to
	// avoid an import cycle (package scope already imports otype). Package
	// callable, which imports both, type-asserts this back when binding a
	// compiled method so the method body resolves fields against this
	// specific instance.
	Scope any
}

func (i *Instance) TypeName() ident.Identifier { return i.Class.Name }

func (i *Instance) Expand() []*gcpool.Handle {
	if i.ScopeHandle != nil {
		return []*gcpool.Handle{i.ScopeHandle}
	}
	if i.ScopeExpand != nil {
		return i.ScopeExpand()
	}
	return nil
}

var _ value.Object = (*Instance)(nil)

// ObjectNameType returns the types.Type for this ObjectType, for building
// method/field signatures of the form fn(instance: C) -> T.
func (t *ObjectType) ObjectNameType() types.Type { return types.Object(t.Name) }
