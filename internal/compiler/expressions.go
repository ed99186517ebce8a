package compiler

import (
	"fmt"
	"sort"

	"github.com/afc/edgevm/internal/ast"
	"github.com/afc/edgevm/internal/ident"
	"github.com/afc/edgevm/internal/lexer"
	"github.com/afc/edgevm/internal/numeric"
	"github.com/afc/edgevm/internal/parser"
	"github.com/afc/edgevm/internal/types"
	"github.com/afc/edgevm/internal/value"
)

// compileExpr compiles e, returning the node and the single concrete type
// the compiler has chosen for it. expected, if non-nil, is the type the
// enclosing context wants this expression promoted to; a nil expected
// leaves the choice to the expression's own natural (unique, or
// first-in-sorted-order) type.
func (c *Compiler) compileExpr(e parser.Expr, expected *types.Type) (ast.Node, types.Type) {
	switch n := e.(type) {
	case *parser.Literal:
		return c.compileLiteral(n)
	case *parser.Ident:
		return c.compileIdent(n, expected)
	case *parser.Binary:
		return c.compileBinary(n)
	case *parser.Unary:
		return c.compileUnary(n)
	case *parser.Call:
		return c.compileCall(n)
	case *parser.MemberAccess:
		return c.compileMemberAccess(n, expected)
	case *parser.LambdaExpr:
		return c.compileLambda(n)
	default:
		c.errorf(parser.Pos{}, "internal: unhandled expression node %T", e)
		return ast.NewConstant(ast.Position{}, value.Void), types.Void
	}
}

func (c *Compiler) compileLiteral(n *parser.Literal) (ast.Node, types.Type) {
	pos := toPos(n.Pos)
	switch n.Kind {
	case parser.LitBool:
		return ast.NewConstant(pos, value.Bool(n.Bool)), types.Bool
	case parser.LitString:
		return ast.NewConstant(pos, value.Str(n.Text)), types.String
	case parser.LitNumber:
		num, err := numeric.FromString(n.Text)
		if err != nil {
			c.errorf(n.Pos, "%v", err)
			return ast.NewConstant(pos, value.Num(numeric.Int(0))), types.Number
		}
		return ast.NewConstant(pos, value.Num(num)), types.Number
	default:
		return ast.NewConstant(pos, value.Void), types.Void
	}
}

// lookupCandidates resolves a (namespace, name) reference against the
// compile-time symbol table.
func (c *Compiler) lookupCandidates(pos parser.Pos, nsParts []string, name string) ([]types.Type, bool) {
	sym := c.sym
	if len(nsParts) > 0 {
		ns := toNamespace(nsParts)
		resolved, ok := c.sym.resolve(ns)
		if !ok {
			c.errorf(pos, "unknown namespace %q", ns.String())
			return nil, false
		}
		sym = resolved
	}
	candidates := sym.lookup(ident.Identifier(name))
	if len(candidates) == 0 {
		hint := suggest(name, sym.names())
		c.errorf(pos, "%s", withHint(fmt.Sprintf("unknown identifier %q", name), hint))
		return nil, false
	}
	return candidates, true
}

// pickCandidate chooses one member of candidates: the one matching
// expected via the promoter if expected is given, else the unique
// candidate, else the first in a deterministic (stringified) sort order —
// an ambiguous-without-context overload is resolved consistently rather
// than arbitrarily by map iteration order.
func (c *Compiler) pickCandidate(pos parser.Pos, candidates []types.Type, expected *types.Type) types.Type {
	if expected != nil {
		for _, t := range candidates {
			if _, ok := c.promoter.Promote(t, *expected); ok {
				return *expected
			}
		}
		c.errorf(pos, "no overload matches expected type %s", expected)
	}
	if len(candidates) == 1 {
		return candidates[0]
	}
	sorted := append([]types.Type{}, candidates...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].String() < sorted[j].String() })
	return sorted[0]
}

func (c *Compiler) compileIdent(n *parser.Ident, expected *types.Type) (ast.Node, types.Type) {
	candidates, ok := c.lookupCandidates(n.Pos, n.Namespace, n.Name)
	if !ok {
		return ast.NewConstant(toPos(n.Pos), value.Void), types.Void
	}
	chosen := c.pickCandidate(n.Pos, candidates, expected)
	node := ast.NewVariableLookup(toPos(n.Pos), toNamespace(n.Namespace), ident.Identifier(n.Name), candidates)
	return node, chosen
}

func (c *Compiler) compileUnary(n *parser.Unary) (ast.Node, types.Type) {
	pos := toPos(n.Pos)
	if n.Op == lexer.BANG {
		operand, _ := c.compileExpr(n.Operand, &types.Bool)
		return ast.NewUnary(pos, ast.UnaryNotBool, operand), types.Bool
	}
	operand, _ := c.compileExpr(n.Operand, &types.Number)
	return ast.NewUnary(pos, ast.UnaryNegNumber, operand), types.Number
}

func (c *Compiler) compileBinary(n *parser.Binary) (ast.Node, types.Type) {
	if n.Op == lexer.AND {
		return c.compileLogical(n, ast.LogicalAnd)
	}
	if n.Op == lexer.OR {
		return c.compileLogical(n, ast.LogicalOr)
	}

	pos := toPos(n.Pos)
	leftNode, leftType := c.compileExpr(n.Left, nil)

	op, ok := binOpFor(n.Op)
	if !ok {
		c.errorf(n.Pos, "unsupported operator %s", n.Op)
		return ast.NewConstant(pos, value.Void), types.Void
	}

	if op == ast.OpEq || op == ast.OpNe {
		rightNode, rightType := c.compileExpr(n.Right, nil)
		return ast.NewBinary(pos, op, leftNode, rightNode, types.Bool, leftType, rightType), types.Bool
	}

	switch leftType.Kind {
	case types.KindString:
		switch op {
		case ast.OpAdd:
			rightNode, rightType := c.compileExpr(n.Right, &types.String)
			return ast.NewBinary(pos, op, leftNode, rightNode, types.String, leftType, rightType), types.String
		case ast.OpMul:
			rightNode, rightType := c.compileExpr(n.Right, &types.Number)
			return ast.NewBinary(pos, op, leftNode, rightNode, types.String, leftType, rightType), types.String
		case ast.OpLt, ast.OpLe, ast.OpGt, ast.OpGe:
			rightNode, rightType := c.compileExpr(n.Right, &types.String)
			return ast.NewBinary(pos, op, leftNode, rightNode, types.Bool, leftType, rightType), types.Bool
		default:
			c.errorf(n.Pos, "operator %s is not defined for String", n.Op)
			return ast.NewConstant(pos, value.Void), types.Void
		}
	case types.KindNumber:
		rightNode, rightType := c.compileExpr(n.Right, &types.Number)
		resultType := types.Number
		if op == ast.OpLt || op == ast.OpLe || op == ast.OpGt || op == ast.OpGe {
			resultType = types.Bool
		}
		return ast.NewBinary(pos, op, leftNode, rightNode, resultType, leftType, rightType), resultType
	default:
		c.errorf(n.Pos, "operator %s requires a Number or String left operand", n.Op)
		return ast.NewConstant(pos, value.Void), types.Void
	}
}

func binOpFor(k lexer.Kind) (ast.BinOp, bool) {
	switch k {
	case lexer.PLUS:
		return ast.OpAdd, true
	case lexer.MINUS:
		return ast.OpSub, true
	case lexer.STAR:
		return ast.OpMul, true
	case lexer.SLASH:
		return ast.OpDiv, true
	case lexer.LT:
		return ast.OpLt, true
	case lexer.LE:
		return ast.OpLe, true
	case lexer.GT:
		return ast.OpGt, true
	case lexer.GE:
		return ast.OpGe, true
	case lexer.EQ:
		return ast.OpEq, true
	case lexer.NE:
		return ast.OpNe, true
	default:
		return 0, false
	}
}

// compileLogical handles && and ||, which short-circuit and so cannot
// share compileBinary's eager both-operands evaluation.
func (c *Compiler) compileLogical(n *parser.Binary, op ast.LogicalOp) (ast.Node, types.Type) {
	pos := toPos(n.Pos)
	left, _ := c.compileExpr(n.Left, &types.Bool)
	right, _ := c.compileExpr(n.Right, &types.Bool)
	return ast.NewLogical(pos, op, left, right), types.Bool
}

func (c *Compiler) compileCall(n *parser.Call) (ast.Node, types.Type) {
	pos := toPos(n.Pos)

	var calleeNode ast.Node
	var candidates []types.Type
	switch callee := n.Callee.(type) {
	case *parser.Ident:
		cands, ok := c.lookupCandidates(callee.Pos, callee.Namespace, callee.Name)
		if !ok {
			return ast.NewConstant(pos, value.Void), types.Void
		}
		candidates = filterFunctions(cands)
		calleeNode = ast.NewVariableLookup(toPos(callee.Pos), toNamespace(callee.Namespace), ident.Identifier(callee.Name), cands)
	case *parser.MemberAccess:
		node, boundTypes, ok := c.compileMemberAccessRaw(callee)
		if !ok {
			return ast.NewConstant(pos, value.Void), types.Void
		}
		candidates = filterFunctions(boundTypes)
		calleeNode = node
	default:
		node, typ := c.compileExpr(n.Callee, nil)
		calleeNode = node
		if typ.Kind == types.KindFunction {
			candidates = []types.Type{typ}
		}
	}

	if len(candidates) == 0 {
		c.errorf(n.Pos, "expression is not callable")
		return ast.NewConstant(pos, value.Void), types.Void
	}

	naturalArgTypes := make([]types.Type, len(n.Args))
	for i, a := range n.Args {
		_, t := c.compileExpr(a, nil)
		naturalArgTypes[i] = t
	}

	chosen, ok := pickOverload(c.promoter, candidates, naturalArgTypes)
	if !ok {
		c.errorf(n.Pos, "no overload of the called function matches the given %d argument(s)", len(n.Args))
		return ast.NewConstant(pos, value.Void), types.Void
	}

	argNodes := make([]ast.Node, len(n.Args))
	for i, a := range n.Args {
		in := chosen.Function.Inputs[i]
		argNodes[i], _ = c.compileExpr(a, &in)
	}

	return ast.NewCall(pos, calleeNode, argNodes, chosen.Function.Output, chosen.Function.Inputs), chosen.Function.Output
}

func filterFunctions(ts []types.Type) []types.Type {
	var out []types.Type
	for _, t := range ts {
		if t.Kind == types.KindFunction {
			out = append(out, t)
		}
	}
	return out
}

// pickOverload finds the candidate function type whose arity matches
// argTypes and whose inputs each accept the corresponding natural argument
// type via promotion, preferring an all-identity (exact) match over one
// requiring promotion.
func pickOverload(promoter *types.Promoter, candidates []types.Type, argTypes []types.Type) (types.Type, bool) {
	var bestPromoting *types.Type
	for i := range candidates {
		cand := candidates[i]
		if len(cand.Function.Inputs) != len(argTypes) {
			continue
		}
		exact := true
		all := true
		for j, in := range cand.Function.Inputs {
			prom, ok := promoter.Promote(argTypes[j], in)
			if !ok {
				all = false
				break
			}
			if !prom.Identity {
				exact = false
			}
		}
		if !all {
			continue
		}
		if exact {
			return cand, true
		}
		if bestPromoting == nil {
			bestPromoting = &candidates[i]
		}
	}
	if bestPromoting != nil {
		return *bestPromoting, true
	}
	return types.Type{}, false
}

// memberTableName resolves the identifier under which a receiver type's
// member table is registered: an object type's own name for KindObject,
// or a fixed pseudo-name for the three primitive kinds package stdlib
// attaches methods to (string, number, bool) per spec.md §6.2. Symbol,
// Void, and Function receivers have no members.
func memberTableName(t types.Type) (ident.Identifier, bool) {
	switch t.Kind {
	case types.KindObject:
		return t.Object, true
	case types.KindString:
		return "string", true
	case types.KindNumber:
		return "number", true
	case types.KindBool:
		return "bool", true
	default:
		return "", false
	}
}

func (c *Compiler) compileMemberAccess(n *parser.MemberAccess, expected *types.Type) (ast.Node, types.Type) {
	node, boundTypes, ok := c.compileMemberAccessRaw(n)
	if !ok {
		return ast.NewConstant(toPos(n.Pos), value.Void), types.Void
	}
	chosen := c.pickCandidate(n.Pos, boundTypes, expected)
	return node, chosen
}

// compileMemberAccessRaw compiles `receiver.name` into a MethodLookup node
// plus the full set of receiver-dropped candidate function types, shared
// by both plain member-access compilation and call-callee compilation
// (which needs the whole candidate set for arity-based overload picking,
// not just one chosen type).
func (c *Compiler) compileMemberAccessRaw(n *parser.MemberAccess) (ast.Node, []types.Type, bool) {
	receiverNode, receiverType := c.compileExpr(n.Receiver, nil)
	otName, ok := memberTableName(receiverType)
	if !ok {
		c.errorf(n.Pos, "member access requires an object, string, number, or bool, got %s", receiverType)
		return nil, nil, false
	}
	ot, ok := c.sym.objectType(otName)
	if !ok {
		c.errorf(n.Pos, "unknown object type %q", otName)
		return nil, nil, false
	}
	members, ok := ot.Lookup(ident.Identifier(n.Name))
	if !ok {
		hint := suggest(n.Name, ot.FieldNames())
		c.errorf(n.Pos, "%s", withHint(fmt.Sprintf("type %q has no member %q", ot.Name, n.Name), hint))
		return nil, nil, false
	}
	boundTypes := make([]types.Type, len(members))
	for i, m := range members {
		ft := m.Function.Type()
		inputs := ft.Function.Inputs
		if len(inputs) > 0 {
			inputs = inputs[1:]
		}
		boundTypes[i] = types.Function(ft.Function.Output, inputs, ft.Function.Purity)
	}
	node := ast.NewMethodLookup(toPos(n.Pos), receiverNode, ident.Identifier(n.Name), members, boundTypes)
	return node, boundTypes, true
}

func (c *Compiler) compileLambda(n *parser.LambdaExpr) (ast.Node, types.Type) {
	pos := toPos(n.Pos)
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

	prevSym := c.sym
	c.sym = child
	var body ast.Node
	if n.Body != nil {
		body = c.compileBlockBody(n.Body)
	} else {
		body, _ = c.compileExpr(n.Expr, &output)
	}
	c.sym = prevSym

	lambda := ast.NewLambda(pos, params, inputs, output, body)
	return lambda, types.Function(output, inputs, body.Purity())
}
