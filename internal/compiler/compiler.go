// Package compiler walks a parser.Program against a live scope.Environment
// and object-type registry, resolving overloads, inferring `auto` types,
// synthesising class accessors, and building the fully-typed internal/ast
// tree the trampoline evaluates. It never runs script code itself — every
// type decision is made against a compile-time symtab that shadows the
// runtime environment's structure without needing real values.
package compiler

import (
	"fmt"

	"github.com/afc/edgevm/internal/ast"
	"github.com/afc/edgevm/internal/cerr"
	"github.com/afc/edgevm/internal/gcpool"
	"github.com/afc/edgevm/internal/ident"
	"github.com/afc/edgevm/internal/lexer"
	"github.com/afc/edgevm/internal/otype"
	"github.com/afc/edgevm/internal/parser"
	"github.com/afc/edgevm/internal/scope"
	"github.com/afc/edgevm/internal/types"
	"github.com/afc/edgevm/internal/value"
)

// Compiler holds the state a compile pass threads through every node it
// visits: the live environment and GC pool the compiled tree will run
// against, the compile-time symbol table shadowing it, the promotion
// table, and the running diagnostic list.
type Compiler struct {
	pool     *gcpool.Pool
	env      *scope.Environment
	promoter *types.Promoter
	sources  map[string]string

	sym  *symtab
	errs cerr.CompilationErrors
}

// New constructs a Compiler targeting env (already seeded with any
// host/stdlib bindings) and pool. sources maps a source name to its full
// text, used to render a compile error's offending line.
func New(pool *gcpool.Pool, env *scope.Environment, promoter *types.Promoter, sources map[string]string) *Compiler {
	return &Compiler{
		pool:     pool,
		env:      env,
		promoter: promoter,
		sources:  sources,
		sym:      SeedFromEnvironment(env),
	}
}

// Compile parses source under name, following #includes via resolver, then
// compiles the result against c's environment. The returned ast.Node is
// nil if any diagnostic was recorded.
func Compile(pool *gcpool.Pool, env *scope.Environment, promoter *types.Promoter, name, content string, resolver lexer.Resolver, opts ...lexer.Option) (ast.Node, *cerr.CompilationErrors) {
	toks, err := lexer.Tokenize(lexer.Source{Name: name, Content: content}, resolver, opts...)
	if err != nil {
		errs := &cerr.CompilationErrors{}
		if ce, ok := err.(*cerr.CompilationError); ok {
			errs.Add(ce)
		} else {
			errs.Add(cerr.New(name, 0, 0, "", "%v", err))
		}
		return nil, errs
	}
	prog, perrs := parser.Parse(toks)
	c := New(pool, env, promoter, map[string]string{name: content})
	for _, e := range perrs {
		c.errs.Add(cerr.New(name, 0, 0, "", "%v", e))
	}
	node := c.compileProgram(prog)
	if !c.errs.Empty() {
		return nil, &c.errs
	}
	return node, nil
}

func (c *Compiler) errorf(pos parser.Pos, format string, args ...any) {
	line := ""
	if text, ok := c.sources[pos.Source]; ok {
		line = lineOf(text, pos.Line)
	}
	c.errs.Add(cerr.New(pos.Source, pos.Line, pos.Column, line, format, args...))
}

func lineOf(text string, n int) string {
	line, col := 1, 0
	start := 0
	for i, r := range text {
		if line == n && col == 0 {
			start = i
		}
		if r == '\n' {
			if line == n {
				return text[start:i]
			}
			line++
			col = 0
			continue
		}
		col++
	}
	if line == n {
		return text[start:]
	}
	return ""
}

func toPos(p parser.Pos) ast.Position {
	return ast.Position{Source: p.Source, Line: p.Line, Column: p.Column}
}

func toNamespace(parts []string) ident.Namespace {
	ns := make(ident.Namespace, len(parts))
	for i, p := range parts {
		ns[i] = ident.Identifier(p)
	}
	return ns
}

// compileProgram compiles every top-level statement into a right-leaning
// Append chain, the same shape ast.Block builds for an ordinary block.
func (c *Compiler) compileProgram(prog *parser.Program) ast.Node {
	nodes := make([]ast.Node, 0, len(prog.Stmts))
	for _, stmt := range prog.Stmts {
		n := c.compileStmt(stmt)
		if n != nil {
			nodes = append(nodes, n)
		}
	}
	voidPos := ast.Position{}
	return ast.Block(voidPos, nodes, ast.NewConstant(voidPos, value.Void))
}

// resolveType turns a parser.TypeExpr into a types.Type, failing if it
// names an unknown object type; it records no diagnostic itself
// (resolveTypeOrError does). "auto" is
// rejected here — callers needing auto inference (VarDef) special-case it
// before calling resolveType.
func (c *Compiler) resolveType(te *parser.TypeExpr) (types.Type, bool) {
	if te.Func != nil {
		inputs := make([]types.Type, len(te.Func.Inputs))
		ok := true
		for i, in := range te.Func.Inputs {
			t, k := c.resolveType(in)
			inputs[i] = t
			ok = ok && k
		}
		out, k := c.resolveType(te.Func.Output)
		ok = ok && k
		return types.Function(out, inputs, types.Unknown), ok
	}
	switch te.Name {
	case "void":
		return types.Void, true
	case "bool":
		return types.Bool, true
	case "number":
		return types.Number, true
	case "string":
		return types.String, true
	case "symbol":
		return types.Symbol, true
	case "auto":
		return types.Type{}, false
	default:
		if _, ok := c.sym.objectType(ident.Identifier(te.Name)); ok {
			return types.Object(ident.Identifier(te.Name)), true
		}
		return types.Type{}, false
	}
}

func (c *Compiler) resolveTypeOrError(pos parser.Pos, te *parser.TypeExpr) (types.Type, bool) {
	t, ok := c.resolveType(te)
	if !ok {
		c.errorf(pos, "unknown type %q", typeExprString(te))
	}
	return t, ok
}

func typeExprString(te *parser.TypeExpr) string {
	if te.Func != nil {
		return "fn(...)"
	}
	return te.Name
}

// otypeFor looks up an already-registered object type by name, recording a
// diagnostic with a near-miss suggestion if it doesn't exist.
func (c *Compiler) otypeFor(pos parser.Pos, name string) (*otype.ObjectType, bool) {
	ot, ok := c.sym.objectType(ident.Identifier(name))
	if !ok {
		c.errorf(pos, "%s", withHint(fmt.Sprintf("unknown type %q", name), suggest(name, c.sym.names())))
		return nil, false
	}
	return ot, true
}
