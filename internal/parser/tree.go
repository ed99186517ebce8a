// Package parser turns a token stream into an untyped syntax tree: package
// compiler walks this tree to resolve overloads, infer `auto` types, and
// build the fully-typed internal/ast node tree the evaluator runs. Keeping
// parsing and type resolution as separate passes means a syntax error never
// depends on environment state, and the compiler's overload resolution
// never has to re-parse.
package parser

import "github.com/afc/edgevm/internal/lexer"

// Pos is a raw source coordinate carried by every tree node, copied
// straight from the token that introduced it.
type Pos struct {
	Source string
	Line   int
	Column int
}

func posOf(t lexer.Token) Pos { return Pos{Source: t.Source, Line: t.Line, Column: t.Column} }

// TypeExpr is a parsed type spelling: a primitive/object name, or a
// function-type shape `fn(T1, T2) -> T3`. Function-type purity is never
// spelled in source — the compiler derives it from the closure body once
// compiled — so FuncTypeExpr carries no purity field.
type TypeExpr struct {
	Name string // "auto", "void", "bool", "number", "string", "symbol", or an object type name
	Func *FuncTypeExpr
}

type FuncTypeExpr struct {
	Inputs []*TypeExpr
	Output *TypeExpr
}

// Program is the parse result: a flat list of top-level statements.
type Program struct {
	Stmts []Stmt
}

// Stmt is any top-level or block-level statement form.
type Stmt interface{ stmtNode() }

// Expr is any expression form.
type Expr interface{ exprNode() }

// ExprStmt wraps an expression used as a statement.
type ExprStmt struct {
	Pos  Pos
	Expr Expr
}

// VarDef is `type name = expr;` or `auto name = expr;`.
type VarDef struct {
	Pos   Pos
	Type  *TypeExpr // Name == "auto" for an inferred define
	Name  string
	Value Expr
}

// Assign is `name = expr;` (or `ns::name = expr;`).
type Assign struct {
	Pos       Pos
	Namespace []string
	Name      string
	Value     Expr
}

// Block is `{ stmt* }`.
type Block struct {
	Pos   Pos
	Stmts []Stmt
}

// IfStmt is `if (cond) then [else else_]`.
type IfStmt struct {
	Pos        Pos
	Cond       Expr
	Then       Stmt
	Else       Stmt
}

// WhileStmt is `while (cond) body`.
type WhileStmt struct {
	Pos  Pos
	Cond Expr
	Body Stmt
}

// ForStmt is `for (init; cond; step) body`.
type ForStmt struct {
	Pos  Pos
	Init Stmt
	Cond Expr
	Step Stmt
	Body Stmt
}

// ReturnStmt is `return [expr];`.
type ReturnStmt struct {
	Pos  Pos
	Expr Expr // nil for a bare `return;`
}

// Param is one function/method/lambda parameter.
type Param struct {
	Type *TypeExpr
	Name string
}

// FuncDef is `type name(params) { body }` — a named function or method
// declared at top level or inside a namespace/class body.
type FuncDef struct {
	Pos    Pos
	Output *TypeExpr
	Name   string
	Params []Param
	Body   *Block
}

// NamespaceDecl is `namespace name { body }`.
type NamespaceDecl struct {
	Pos   Pos
	Name  string
	Body  []Stmt
}

// ClassDecl is `class name { members }`.
type ClassDecl struct {
	Pos     Pos
	Name    string
	Fields  []FieldDecl
	Methods []FuncDef
}

// FieldDecl is one `type name;` member of a class body.
type FieldDecl struct {
	Pos  Pos
	Type *TypeExpr
	Name string
}

func (*ExprStmt) stmtNode()      {}
func (*VarDef) stmtNode()        {}
func (*Assign) stmtNode()        {}
func (*Block) stmtNode()         {}
func (*IfStmt) stmtNode()        {}
func (*WhileStmt) stmtNode()     {}
func (*ForStmt) stmtNode()       {}
func (*ReturnStmt) stmtNode()    {}
func (*FuncDef) stmtNode()       {}
func (*NamespaceDecl) stmtNode() {}
func (*ClassDecl) stmtNode()     {}

// Ident is a bare or namespace-qualified variable/function reference, e.g.
// `x` or `ns::x`.
type Ident struct {
	Pos       Pos
	Namespace []string
	Name      string
}

// Literal is a bool/number/string constant.
type LiteralKind int

const (
	LitBool LiteralKind = iota
	LitNumber
	LitString
)

type Literal struct {
	Pos  Pos
	Kind LiteralKind
	Bool bool
	Text string // number or string literal text, verbatim from the token
}

// Binary is any two-operand infix expression, identified by the lexer
// token kind that spelled the operator (PLUS, LT, EQ, AND, ...).
type Binary struct {
	Pos         Pos
	Op          lexer.Kind
	Left, Right Expr
}

// Unary is prefix `!` or `-`.
type Unary struct {
	Pos     Pos
	Op      lexer.Kind
	Operand Expr
}

// Call is `callee(args)`.
type Call struct {
	Pos    Pos
	Callee Expr
	Args   []Expr
}

// MemberAccess is `receiver.name`.
type MemberAccess struct {
	Pos      Pos
	Receiver Expr
	Name     string
}

// LambdaExpr is `(params) -> type { body }` or the expression-bodied form
// `(params) -> type expr`.
type LambdaExpr struct {
	Pos    Pos
	Output *TypeExpr
	Params []Param
	Body   *Block
	Expr   Expr // set instead of Body for the expression-bodied form
}

func (*Ident) exprNode()        {}
func (*Literal) exprNode()      {}
func (*Binary) exprNode()       {}
func (*Unary) exprNode()        {}
func (*Call) exprNode()         {}
func (*MemberAccess) exprNode() {}
func (*LambdaExpr) exprNode()   {}
