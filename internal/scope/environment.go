// Package scope implements the VM's lexical Environment: a
// scope owning an overload-aware symbol table, a namespace-child map, an
// object-type registry, and an optional parent, all GC-pool-registered
// since environments close over closures that may outlive their creating
// call frame. Lookup walks the parent chain; definition always lands in
// the current scope only. The symbol table is a nested
// name-to-type-to-value map rather than a flat name-to-value map, so that
// function overloading can keep multiple values live under one name.
package scope

import (
	"fmt"

	"github.com/afc/edgevm/internal/gcpool"
	"github.com/afc/edgevm/internal/ident"
	"github.com/afc/edgevm/internal/otype"
	"github.com/afc/edgevm/internal/types"
	"github.com/afc/edgevm/internal/value"
)

// Environment is a scope.
type Environment struct {
	pool   *gcpool.Pool
	handle *gcpool.Handle

	parent *Environment

	// symbols maps an identifier to a map from type to value slot, so that
	// several overloads can share one name.
	symbols map[ident.Identifier]map[types.Type]value.Value

	namespaces  map[ident.Identifier]*Environment
	objectTypes map[ident.Identifier]*otype.ObjectType
}

// New creates a root-level environment with no parent, registered with
// pool.
func New(pool *gcpool.Pool) *Environment {
	e := &Environment{
		pool:        pool,
		symbols:     make(map[ident.Identifier]map[types.Type]value.Value),
		namespaces:  make(map[ident.Identifier]*Environment),
		objectTypes: make(map[ident.Identifier]*otype.ObjectType),
	}
	e.handle = pool.Register(e.expand)
	return e
}

// NewChild creates a new environment enclosed by e: a child is created per
// block, per function call, and per namespace/class declaration.
func (e *Environment) NewChild() *Environment {
	child := &Environment{
		pool:        e.pool,
		parent:      e,
		symbols:     make(map[ident.Identifier]map[types.Type]value.Value),
		namespaces:  make(map[ident.Identifier]*Environment),
		objectTypes: make(map[ident.Identifier]*otype.ObjectType),
	}
	child.handle = e.pool.Register(child.expand)
	// A fresh child's only neighbour so far is its parent; register the
	// pointer now so a concurrently-running collection cannot miss it once
	// the child starts receiving its own members.
	e.pool.Protect(child.handle)
	return child
}

// Handle exposes the environment's own GC handle, e.g. so a class instance
// can hold it as its owned private scope (see package otype's
// Instance.ScopeHandle).
func (e *Environment) Handle() *gcpool.Handle { return e.handle }

// Parent returns the enclosing environment, or nil at the root.
func (e *Environment) Parent() *Environment { return e.parent }

// expand is this environment's GC expansion callback: every value's own
// GC-visible references, every namespace child, and the parent.
func (e *Environment) expand() []*gcpool.Handle {
	var out []*gcpool.Handle
	for _, byType := range e.symbols {
		for _, v := range byType {
			out = append(out, v.Expand()...)
		}
	}
	for _, ns := range e.namespaces {
		out = append(out, ns.handle)
	}
	if e.parent != nil {
		out = append(out, e.parent.handle)
	}
	return out
}

// Define creates a new variable in e's own scope. If a slot already
// exists for this (name, type) pair it is overwritten — this is an
// overload redefinition, and neither this layer nor the compiler reports
// it as an error.
func (e *Environment) Define(name ident.Identifier, t types.Type, v value.Value) {
	byType, ok := e.symbols[name]
	if !ok {
		byType = make(map[types.Type]value.Value)
		e.symbols[name] = byType
	}
	byType[t] = v
	for _, h := range v.Expand() {
		e.pool.Protect(h)
	}
}

// Overloads returns every (type -> value) pair defined for name in e's own
// scope, without walking parents; used by the compiler's overload
// resolution.
func (e *Environment) Overloads(name ident.Identifier) map[types.Type]value.Value {
	return e.symbols[name]
}

// Lookup walks e and its parents, collecting every overload visible for
// name, innermost scope first. Shadowed
// outer overloads of an identical type are not included.
func (e *Environment) Lookup(name ident.Identifier) map[types.Type]value.Value {
	out := make(map[types.Type]value.Value)
	for env := e; env != nil; env = env.parent {
		for t, v := range env.symbols[name] {
			if _, seen := out[t]; !seen {
				out[t] = v
			}
		}
	}
	return out
}

// Assign walks parents to find the scope that already defines (name, t)
// and updates the slot there. Returns an error if no such scope exists.
func (e *Environment) Assign(name ident.Identifier, t types.Type, v value.Value) error {
	for env := e; env != nil; env = env.parent {
		if byType, ok := env.symbols[name]; ok {
			if _, ok := byType[t]; ok {
				byType[t] = v
				for _, h := range v.Expand() {
					e.pool.Protect(h)
				}
				return nil
			}
		}
	}
	return fmt.Errorf("variable not found: %s", name)
}

// DefineNamespace registers a namespace child environment under name.
func (e *Environment) DefineNamespace(name ident.Identifier, child *Environment) {
	e.namespaces[name] = child
	e.pool.Protect(child.handle)
}

// Namespace returns the namespace child registered under name, walking
// parents (namespaces nest the same way variable scopes do).
func (e *Environment) Namespace(name ident.Identifier) (*Environment, bool) {
	for env := e; env != nil; env = env.parent {
		if ns, ok := env.namespaces[name]; ok {
			return ns, true
		}
	}
	return nil, false
}

// Resolve walks ns component-by-component from e, returning the
// environment the final component names.
func (e *Environment) Resolve(ns ident.Namespace) (*Environment, bool) {
	cur := e
	for _, part := range ns {
		next, ok := cur.Namespace(part)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// Names returns every identifier with at least one overload defined in e's
// own scope, not walking parents — used by package compiler to seed its
// compile-time symbol table from a pre-populated host/stdlib environment.
func (e *Environment) Names() []ident.Identifier {
	names := make([]ident.Identifier, 0, len(e.symbols))
	for n := range e.symbols {
		names = append(names, n)
	}
	return names
}

// NamespaceNames returns every namespace child name registered in e's own
// scope.
func (e *Environment) NamespaceNames() []ident.Identifier {
	names := make([]ident.Identifier, 0, len(e.namespaces))
	for n := range e.namespaces {
		names = append(names, n)
	}
	return names
}

// ObjectTypeNames returns every object type name registered in e's own
// scope.
func (e *Environment) ObjectTypeNames() []ident.Identifier {
	names := make([]ident.Identifier, 0, len(e.objectTypes))
	for n := range e.objectTypes {
		names = append(names, n)
	}
	return names
}

// NewInstance wraps e as the private scope of a fresh class instance: the
// constructor a class declaration's compilation synthesises calls this
// once it has defined every field in e with its zero value.
func (e *Environment) NewInstance(class *otype.ObjectType) *otype.Instance {
	return &otype.Instance{
		Class:       class,
		ScopeHandle: e.handle,
		ScopeExpand: e.expand,
		Scope:       e,
		Get: func(name ident.Identifier, t types.Type) (value.Value, bool) {
			v, ok := e.symbols[name][t]
			return v, ok
		},
		Set: func(name ident.Identifier, t types.Type, v value.Value) {
			e.Define(name, t, v)
		},
	}
}

// DefineObjectType registers an object type in e's own scope. Object-type
// maps are only populated in environments that hosted a class declaration
// or a host registration.
func (e *Environment) DefineObjectType(t *otype.ObjectType) {
	e.objectTypes[t.Name] = t
}

// ObjectType looks up an object type by name, walking parents.
func (e *Environment) ObjectType(name ident.Identifier) (*otype.ObjectType, bool) {
	for env := e; env != nil; env = env.parent {
		if t, ok := env.objectTypes[name]; ok {
			return t, true
		}
	}
	return nil, false
}
