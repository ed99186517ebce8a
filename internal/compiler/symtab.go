package compiler

import (
	"github.com/afc/edgevm/internal/ident"
	"github.com/afc/edgevm/internal/otype"
	"github.com/afc/edgevm/internal/scope"
	"github.com/afc/edgevm/internal/types"
)

// symtab is the compiler's compile-time shadow of scope.Environment: it
// tracks which (name, type) overloads and object types are visible at a
// given point in the source, without needing real runtime values — the
// actual scope.Environment slots are only populated when the compiled AST
// later runs. Its lookup semantics mirror scope.Environment's exactly so
// that a name resolvable at compile time is resolvable the same way at run
// time.
type symtab struct {
	parent *symtab

	vars        map[ident.Identifier]map[types.Type]bool
	namespaces  map[ident.Identifier]*symtab
	objectTypes map[ident.Identifier]*otype.ObjectType
}

func newSymtab(parent *symtab) *symtab {
	return &symtab{
		parent:      parent,
		vars:        make(map[ident.Identifier]map[types.Type]bool),
		namespaces:  make(map[ident.Identifier]*symtab),
		objectTypes: make(map[ident.Identifier]*otype.ObjectType),
	}
}

func (s *symtab) define(name ident.Identifier, t types.Type) {
	byType, ok := s.vars[name]
	if !ok {
		byType = make(map[types.Type]bool)
		s.vars[name] = byType
	}
	byType[t] = true
}

// lookup collects every overload visible for name across s and its
// parents, innermost first, matching scope.Environment.Lookup.
func (s *symtab) lookup(name ident.Identifier) []types.Type {
	seen := make(map[types.Type]bool)
	var out []types.Type
	for cur := s; cur != nil; cur = cur.parent {
		for t := range cur.vars[name] {
			if !seen[t] {
				seen[t] = true
				out = append(out, t)
			}
		}
	}
	return out
}

func (s *symtab) defineNamespace(name ident.Identifier, child *symtab) {
	s.namespaces[name] = child
}

func (s *symtab) namespace(name ident.Identifier) (*symtab, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if ns, ok := cur.namespaces[name]; ok {
			return ns, true
		}
	}
	return nil, false
}

func (s *symtab) resolve(ns ident.Namespace) (*symtab, bool) {
	cur := s
	for _, part := range ns {
		next, ok := cur.namespace(part)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

func (s *symtab) defineObjectType(t *otype.ObjectType) {
	s.objectTypes[t.Name] = t
}

func (s *symtab) objectType(name ident.Identifier) (*otype.ObjectType, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if t, ok := cur.objectTypes[name]; ok {
			return t, true
		}
	}
	return nil, false
}

// names collects every identifier and near-miss candidate visible from s,
// for suggest's near-miss suggestions on a failed lookup.
func (s *symtab) names() []ident.Identifier {
	seen := make(map[ident.Identifier]bool)
	var out []ident.Identifier
	for cur := s; cur != nil; cur = cur.parent {
		for name := range cur.vars {
			if !seen[name] {
				seen[name] = true
				out = append(out, name)
			}
		}
	}
	return out
}

// SeedFromEnvironment copies env's own-scope structure (names, types,
// namespaces, object types — never values) into a fresh root symtab, so
// the compiler can resolve references to host/stdlib bindings already
// registered in the runtime environment before any script has run.
func SeedFromEnvironment(env *scope.Environment) *symtab {
	s := newSymtab(nil)
	seedInto(s, env)
	return s
}

func seedInto(s *symtab, env *scope.Environment) {
	for _, name := range env.Names() {
		for t := range env.Overloads(name) {
			s.define(name, t)
		}
	}
	for _, name := range env.ObjectTypeNames() {
		if ot, ok := env.ObjectType(name); ok {
			s.defineObjectType(ot)
		}
	}
	for _, name := range env.NamespaceNames() {
		if child, ok := env.Namespace(name); ok {
			childTab := newSymtab(s)
			seedInto(childTab, child)
			s.defineNamespace(name, childTab)
		}
	}
}
