package compiler

import (
	"github.com/afc/edgevm/internal/ast"
	"github.com/afc/edgevm/internal/ident"
	"github.com/afc/edgevm/internal/parser"
	"github.com/afc/edgevm/internal/types"
	"github.com/afc/edgevm/internal/value"
)

// compileStmt compiles one statement, in whatever scope (program,
// namespace, block, if/while/for body) it was found in. Blocks never open
// a new symtab scope of their own: a `{ }` body shares its enclosing
// function/namespace scope, the same way ast.Block's Append desugaring
// never opens a new runtime environment per brace — only a function call
// or namespace/class declaration does that.
func (c *Compiler) compileStmt(s parser.Stmt) ast.Node {
	switch n := s.(type) {
	case *parser.ExprStmt:
		node, _ := c.compileExpr(n.Expr, nil)
		return node
	case *parser.VarDef:
		return c.compileVarDef(n)
	case *parser.Assign:
		return c.compileAssign(n)
	case *parser.Block:
		return c.compileBlockBody(n)
	case *parser.IfStmt:
		return c.compileIf(n)
	case *parser.WhileStmt:
		return c.compileWhile(n)
	case *parser.ForStmt:
		return c.compileFor(n)
	case *parser.ReturnStmt:
		return c.compileReturn(n)
	case *parser.FuncDef:
		return c.compileFuncDef(n)
	case *parser.NamespaceDecl:
		return c.compileNamespace(n)
	case *parser.ClassDecl:
		return c.compileClassDecl(n)
	default:
		c.errorf(parser.Pos{}, "internal: unhandled statement node %T", s)
		return ast.NewConstant(ast.Position{}, value.Void)
	}
}

// compileBlockBody compiles every statement of b into a right-leaning
// Append chain, yielding Void if b is empty.
func (c *Compiler) compileBlockBody(b *parser.Block) ast.Node {
	nodes := make([]ast.Node, 0, len(b.Stmts))
	for _, stmt := range b.Stmts {
		n := c.compileStmt(stmt)
		if n != nil {
			nodes = append(nodes, n)
		}
	}
	return ast.Block(toPos(b.Pos), nodes, ast.NewConstant(toPos(b.Pos), value.Void))
}

func (c *Compiler) compileVarDef(n *parser.VarDef) ast.Node {
	pos := toPos(n.Pos)
	name := ident.Identifier(n.Name)

	var target types.Type
	var rhsNode ast.Node
	if n.Type.Name == "auto" && n.Type.Func == nil {
		var natural types.Type
		rhsNode, natural = c.compileExpr(n.Value, nil)
		target = natural
	} else {
		resolved, ok := c.resolveTypeOrError(n.Pos, n.Type)
		if !ok {
			resolved = types.Void
		}
		target = resolved
		rhsNode, _ = c.compileExpr(n.Value, &target)
	}

	c.sym.define(name, target)
	return ast.NewDefine(pos, name, target, rhsNode)
}

// pickAssignTarget chooses the candidate of an already-declared name that
// naturalRHS can be promoted to, preferring an identity match.
func (c *Compiler) pickAssignTarget(candidates []types.Type, naturalRHS types.Type) (types.Type, bool) {
	for _, t := range candidates {
		if prom, ok := c.promoter.Promote(naturalRHS, t); ok && prom.Identity {
			return t, true
		}
	}
	for _, t := range candidates {
		if _, ok := c.promoter.Promote(naturalRHS, t); ok {
			return t, true
		}
	}
	return types.Type{}, false
}

func (c *Compiler) compileAssign(n *parser.Assign) ast.Node {
	pos := toPos(n.Pos)
	candidates, ok := c.lookupCandidates(n.Pos, n.Namespace, n.Name)
	if !ok {
		return ast.NewConstant(pos, value.Void)
	}
	rhsNode, natural := c.compileExpr(n.Value, nil)
	target, ok := c.pickAssignTarget(candidates, natural)
	if !ok {
		c.errorf(n.Pos, "cannot assign a %s to %q", natural, n.Name)
		return ast.NewConstant(pos, value.Void)
	}
	return ast.NewAssignment(pos, toNamespace(n.Namespace), ident.Identifier(n.Name), target, rhsNode)
}

func (c *Compiler) compileIf(n *parser.IfStmt) ast.Node {
	pos := toPos(n.Pos)
	cond, _ := c.compileExpr(n.Cond, &types.Bool)
	then := c.compileStmt(n.Then)
	var els ast.Node
	if n.Else != nil {
		els = c.compileStmt(n.Else)
	}
	return ast.NewIf(pos, cond, then, els)
}

func (c *Compiler) compileWhile(n *parser.WhileStmt) ast.Node {
	pos := toPos(n.Pos)
	cond, _ := c.compileExpr(n.Cond, &types.Bool)
	body := c.compileStmt(n.Body)
	return ast.NewWhile(pos, cond, body)
}

func (c *Compiler) compileFor(n *parser.ForStmt) ast.Node {
	pos := toPos(n.Pos)

	var initNode ast.Node
	if n.Init != nil {
		initNode = c.compileStmt(n.Init)
	} else {
		initNode = ast.NewConstant(pos, value.Void)
	}

	var condNode ast.Node
	if n.Cond != nil {
		condNode, _ = c.compileExpr(n.Cond, &types.Bool)
	} else {
		condNode = ast.NewConstant(pos, value.Bool(true))
	}

	var stepNode ast.Node
	if n.Step != nil {
		stepNode = c.compileStmt(n.Step)
	} else {
		stepNode = ast.NewConstant(pos, value.Void)
	}

	body := c.compileStmt(n.Body)
	return ast.DesugarFor(pos, initNode, condNode, stepNode, body)
}

func (c *Compiler) compileReturn(n *parser.ReturnStmt) ast.Node {
	pos := toPos(n.Pos)
	if n.Expr == nil {
		return ast.NewReturn(pos, ast.NewConstant(pos, value.Void))
	}
	exprNode, _ := c.compileExpr(n.Expr, nil)
	return ast.NewReturn(pos, exprNode)
}

// compileFuncDef compiles a named top-level/namespace-level function
// definition into `auto name = (params) -> output { body };`'s shape: a
// Define binding name to a Lambda value. The function's own name is
// pre-declared in its child scope (with a permissive Unknown-purity
// signature) before the body compiles, so a direct recursive call
// resolves; FunctionPromotable always accepts promoting a more specific
// purity up to Unknown, so the recursive call site still type-checks once
// the real closure value is built at evaluation time.
func (c *Compiler) compileFuncDef(n *parser.FuncDef) ast.Node {
	pos := toPos(n.Pos)
	name := ident.Identifier(n.Name)

	output, ok := c.resolveTypeOrError(n.Pos, n.Output)
	if !ok {
		output = types.Void
	}
	inputs := make([]types.Type, len(n.Params))
	params := make([]ident.Identifier, len(n.Params))
	child := newSymtab(c.sym)
	for i, p := range n.Params {
		t, ok := c.resolveTypeOrError(n.Pos, p.Type)
		if !ok {
			t = types.Void
		}
		inputs[i] = t
		params[i] = ident.Identifier(p.Name)
		child.define(params[i], t)
	}

	fnType := types.Function(output, inputs, types.Unknown)
	child.define(name, fnType)

	prevSym := c.sym
	c.sym = child
	body := c.compileBlockBody(n.Body)
	c.sym = prevSym

	c.sym.define(name, fnType)
	lambda := ast.NewLambda(pos, params, inputs, output, body)
	return ast.NewDefine(pos, name, fnType, lambda)
}

// compileNamespace compiles a namespace body against a child symtab and a
// real child runtime environment, reopening both if the namespace was
// already declared earlier in the same compilation unit.
func (c *Compiler) compileNamespace(n *parser.NamespaceDecl) ast.Node {
	pos := toPos(n.Pos)
	name := ident.Identifier(n.Name)

	childEnv, ok := c.env.Namespace(name)
	if !ok {
		childEnv = c.env.NewChild()
		c.env.DefineNamespace(name, childEnv)
	}
	childSym, ok := c.sym.namespace(name)
	if !ok {
		childSym = newSymtab(c.sym)
		c.sym.defineNamespace(name, childSym)
	}

	prevEnv, prevSym := c.env, c.sym
	c.env, c.sym = childEnv, childSym
	nodes := make([]ast.Node, 0, len(n.Body))
	for _, stmt := range n.Body {
		if node := c.compileStmt(stmt); node != nil {
			nodes = append(nodes, node)
		}
	}
	c.env, c.sym = prevEnv, prevSym

	body := ast.Block(pos, nodes, ast.NewConstant(pos, value.Void))
	return ast.NewNamespaceBody(pos, name, body)
}
