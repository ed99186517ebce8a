package parser

import "github.com/afc/edgevm/internal/lexer"

func (p *Parser) parseStmt() (Stmt, error) {
	switch {
	case p.at(lexer.LBRACE):
		return p.parseBlock()
	case p.at(lexer.IF):
		return p.parseIf()
	case p.at(lexer.WHILE):
		return p.parseWhile()
	case p.at(lexer.FOR):
		return p.parseFor()
	case p.at(lexer.RETURN):
		return p.parseReturn()
	case p.at(lexer.NAMESPACE):
		return p.parseNamespace()
	case p.at(lexer.CLASS):
		return p.parseClass()
	case p.at(lexer.INC) || p.at(lexer.DEC):
		return p.parseIncDecStmt(nil)
	case p.at(lexer.IDENT) && isIncDec(p.peek().Kind):
		return p.parseIncDecStmt(nil)
	case p.at(lexer.IDENT) && isCompoundAssign(p.peek().Kind):
		return p.parseCompoundAssignStmt(nil)
	case p.at(lexer.IDENT) && p.peek().Kind == lexer.ASSIGN:
		return p.parseAssign(nil)
	case p.at(lexer.IDENT) && p.peek().Kind == lexer.COLONCOLON:
		return p.parseQualifiedStmt()
	case p.looksLikeTypeStart():
		return p.parseDecl()
	default:
		return p.parseExprStmt()
	}
}

func (p *Parser) parseBlock() (*Block, error) {
	open, err := p.expect(lexer.LBRACE)
	if err != nil {
		return nil, err
	}
	b := &Block{Pos: posOf(open)}
	for !p.at(lexer.RBRACE) && !p.at(lexer.EOF) {
		stmt, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		b.Stmts = append(b.Stmts, stmt)
	}
	if _, err := p.expect(lexer.RBRACE); err != nil {
		return nil, err
	}
	return b, nil
}

func (p *Parser) parseIf() (Stmt, error) {
	tok := p.advance()
	if _, err := p.expect(lexer.LPAREN); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr(lowest)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	then, err := p.parseStmt()
	if err != nil {
		return nil, err
	}
	var elseStmt Stmt
	if p.at(lexer.ELSE) {
		p.advance()
		elseStmt, err = p.parseStmt()
		if err != nil {
			return nil, err
		}
	}
	return &IfStmt{Pos: posOf(tok), Cond: cond, Then: then, Else: elseStmt}, nil
}

func (p *Parser) parseWhile() (Stmt, error) {
	tok := p.advance()
	if _, err := p.expect(lexer.LPAREN); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr(lowest)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	body, err := p.parseStmt()
	if err != nil {
		return nil, err
	}
	return &WhileStmt{Pos: posOf(tok), Cond: cond, Body: body}, nil
}

func (p *Parser) parseFor() (Stmt, error) {
	tok := p.advance()
	if _, err := p.expect(lexer.LPAREN); err != nil {
		return nil, err
	}
	var init Stmt
	var err error
	if !p.at(lexer.SEMI) {
		init, err = p.parseForClause()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(lexer.SEMI); err != nil {
		return nil, err
	}
	var cond Expr
	if !p.at(lexer.SEMI) {
		cond, err = p.parseExpr(lowest)
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(lexer.SEMI); err != nil {
		return nil, err
	}
	var step Stmt
	if !p.at(lexer.RPAREN) {
		step, err = p.parseForClause()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	body, err := p.parseStmt()
	if err != nil {
		return nil, err
	}
	return &ForStmt{Pos: posOf(tok), Init: init, Cond: cond, Step: step, Body: body}, nil
}

// parseForClause parses a for-loop's init/step slot: either a declaration
// or an assignment/expression, without the trailing `;` the caller consumes.
func (p *Parser) parseForClause() (Stmt, error) {
	if p.looksLikeTypeStart() {
		return p.parseDeclBodyNoSemi()
	}
	if p.at(lexer.INC) || p.at(lexer.DEC) {
		return p.parseIncDecBodyNoSemi(nil)
	}
	if p.at(lexer.IDENT) && isIncDec(p.peek().Kind) {
		return p.parseIncDecBodyNoSemi(nil)
	}
	if p.at(lexer.IDENT) && isCompoundAssign(p.peek().Kind) {
		return p.parseCompoundAssignBodyNoSemi(nil)
	}
	if p.at(lexer.IDENT) && p.peek().Kind == lexer.ASSIGN {
		return p.parseAssignBodyNoSemi(nil)
	}
	pos := posOf(p.cur())
	expr, err := p.parseExpr(lowest)
	if err != nil {
		return nil, err
	}
	return &ExprStmt{Pos: pos, Expr: expr}, nil
}

func isIncDec(k lexer.Kind) bool {
	return k == lexer.INC || k == lexer.DEC
}

func isCompoundAssign(k lexer.Kind) bool {
	switch k {
	case lexer.PLUS_ASSIGN, lexer.MINUS_ASSIGN, lexer.STAR_ASSIGN, lexer.SLASH_ASSIGN:
		return true
	default:
		return false
	}
}

// parseIncDecStmt parses prefix (`++i`) or postfix (`i++`) increment and
// decrement as a full statement, desugaring to `i = i +/- 1`.
func (p *Parser) parseIncDecStmt(ns []string) (Stmt, error) {
	stmt, err := p.parseIncDecBodyNoSemi(ns)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.SEMI); err != nil {
		return nil, err
	}
	return stmt, nil
}

func (p *Parser) parseIncDecBodyNoSemi(ns []string) (Stmt, error) {
	var op lexer.Kind
	var name lexer.Token
	var err error
	if isIncDec(p.cur().Kind) {
		op = p.advance().Kind
		name, err = p.expect(lexer.IDENT)
		if err != nil {
			return nil, err
		}
	} else {
		name, err = p.expect(lexer.IDENT)
		if err != nil {
			return nil, err
		}
		op = p.advance().Kind
	}
	binOp := lexer.PLUS
	if op == lexer.DEC {
		binOp = lexer.MINUS
	}
	one := &Literal{Pos: posOf(name), Kind: LitNumber, Text: "1"}
	value := &Binary{
		Pos:   posOf(name),
		Op:    binOp,
		Left:  &Ident{Pos: posOf(name), Namespace: ns, Name: name.Literal},
		Right: one,
	}
	return &Assign{Pos: posOf(name), Namespace: ns, Name: name.Literal, Value: value}, nil
}

// parseCompoundAssignStmt parses `i += expr;` and its `-=`/`*=`/`/=`
// siblings as a full statement, desugaring to `i = i OP expr`.
func (p *Parser) parseCompoundAssignStmt(ns []string) (Stmt, error) {
	stmt, err := p.parseCompoundAssignBodyNoSemi(ns)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.SEMI); err != nil {
		return nil, err
	}
	return stmt, nil
}

func (p *Parser) parseCompoundAssignBodyNoSemi(ns []string) (Stmt, error) {
	name, err := p.expect(lexer.IDENT)
	if err != nil {
		return nil, err
	}
	opTok := p.advance()
	rhs, err := p.parseExpr(lowest)
	if err != nil {
		return nil, err
	}
	binOp := compoundBinOp(opTok.Kind)
	value := &Binary{
		Pos:   posOf(name),
		Op:    binOp,
		Left:  &Ident{Pos: posOf(name), Namespace: ns, Name: name.Literal},
		Right: rhs,
	}
	return &Assign{Pos: posOf(name), Namespace: ns, Name: name.Literal, Value: value}, nil
}

func compoundBinOp(k lexer.Kind) lexer.Kind {
	switch k {
	case lexer.PLUS_ASSIGN:
		return lexer.PLUS
	case lexer.MINUS_ASSIGN:
		return lexer.MINUS
	case lexer.STAR_ASSIGN:
		return lexer.STAR
	case lexer.SLASH_ASSIGN:
		return lexer.SLASH
	default:
		return k
	}
}

// parseDeclBodyNoSemi and parseAssignBodyNoSemi parse a for-loop clause's
// declaration/assignment form without consuming a trailing `;` (the caller
// in parseFor consumes the loop's own semicolons).
func (p *Parser) parseDeclBodyNoSemi() (Stmt, error) {
	pos := posOf(p.cur())
	typ, err := p.parseType()
	if err != nil {
		return nil, err
	}
	name, err := p.expect(lexer.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.ASSIGN); err != nil {
		return nil, err
	}
	value, err := p.parseExpr(lowest)
	if err != nil {
		return nil, err
	}
	return &VarDef{Pos: pos, Type: typ, Name: name.Literal, Value: value}, nil
}

func (p *Parser) parseAssignBodyNoSemi(ns []string) (Stmt, error) {
	name, err := p.expect(lexer.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.ASSIGN); err != nil {
		return nil, err
	}
	value, err := p.parseExpr(lowest)
	if err != nil {
		return nil, err
	}
	return &Assign{Pos: posOf(name), Namespace: ns, Name: name.Literal, Value: value}, nil
}

func (p *Parser) parseReturn() (Stmt, error) {
	tok := p.advance()
	if p.at(lexer.SEMI) {
		p.advance()
		return &ReturnStmt{Pos: posOf(tok)}, nil
	}
	expr, err := p.parseExpr(lowest)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.SEMI); err != nil {
		return nil, err
	}
	return &ReturnStmt{Pos: posOf(tok), Expr: expr}, nil
}

func (p *Parser) parseNamespace() (Stmt, error) {
	tok := p.advance()
	name, err := p.expect(lexer.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LBRACE); err != nil {
		return nil, err
	}
	var body []Stmt
	for !p.at(lexer.RBRACE) && !p.at(lexer.EOF) {
		stmt, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
	}
	if _, err := p.expect(lexer.RBRACE); err != nil {
		return nil, err
	}
	return &NamespaceDecl{Pos: posOf(tok), Name: name.Literal, Body: body}, nil
}

func (p *Parser) parseClass() (Stmt, error) {
	tok := p.advance()
	name, err := p.expect(lexer.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LBRACE); err != nil {
		return nil, err
	}
	decl := &ClassDecl{Pos: posOf(tok), Name: name.Literal}
	for !p.at(lexer.RBRACE) && !p.at(lexer.EOF) {
		memberType, err := p.parseType()
		if err != nil {
			return nil, err
		}
		memberName, err := p.expect(lexer.IDENT)
		if err != nil {
			return nil, err
		}
		if p.at(lexer.LPAREN) {
			fn, err := p.parseFuncDefTail(posOf(tok), memberType, memberName.Literal)
			if err != nil {
				return nil, err
			}
			decl.Methods = append(decl.Methods, *fn)
			continue
		}
		if _, err := p.expect(lexer.SEMI); err != nil {
			return nil, err
		}
		decl.Fields = append(decl.Fields, FieldDecl{Pos: posOf(memberName), Type: memberType, Name: memberName.Literal})
	}
	if _, err := p.expect(lexer.RBRACE); err != nil {
		return nil, err
	}
	return decl, nil
}

// parseDecl disambiguates a type-led declaration into a FuncDef or VarDef
// once past the leading type and name.
func (p *Parser) parseDecl() (Stmt, error) {
	return p.parseDeclBody()
}

func (p *Parser) parseDeclBody() (Stmt, error) {
	pos := posOf(p.cur())
	typ, err := p.parseType()
	if err != nil {
		return nil, err
	}
	name, err := p.expect(lexer.IDENT)
	if err != nil {
		return nil, err
	}
	if p.at(lexer.LPAREN) {
		return p.parseFuncDefTail(pos, typ, name.Literal)
	}
	if _, err := p.expect(lexer.ASSIGN); err != nil {
		return nil, err
	}
	value, err := p.parseExpr(lowest)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.SEMI); err != nil {
		return nil, err
	}
	return &VarDef{Pos: pos, Type: typ, Name: name.Literal, Value: value}, nil
}

func (p *Parser) parseFuncDefTail(pos Pos, output *TypeExpr, name string) (*FuncDef, error) {
	params, err := p.parseParamList()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &FuncDef{Pos: pos, Output: output, Name: name, Params: params, Body: body}, nil
}

func (p *Parser) parseParamList() ([]Param, error) {
	if _, err := p.expect(lexer.LPAREN); err != nil {
		return nil, err
	}
	var params []Param
	for !p.at(lexer.RPAREN) {
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		name, err := p.expect(lexer.IDENT)
		if err != nil {
			return nil, err
		}
		params = append(params, Param{Type: t, Name: name.Literal})
		if p.at(lexer.COMMA) {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	return params, nil
}

func (p *Parser) parseAssign(ns []string) (Stmt, error) {
	return p.parseAssignBody(ns)
}

func (p *Parser) parseAssignBody(ns []string) (Stmt, error) {
	name, err := p.expect(lexer.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.ASSIGN); err != nil {
		return nil, err
	}
	value, err := p.parseExpr(lowest)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.SEMI); err != nil {
		return nil, err
	}
	return &Assign{Pos: posOf(name), Namespace: ns, Name: name.Literal, Value: value}, nil
}

// parseQualifiedStmt disambiguates `ns::name = expr;` (an assignment) from
// `ns::name(...)` / `ns::name` used as an expression statement.
func (p *Parser) parseQualifiedStmt() (Stmt, error) {
	startPos := posOf(p.cur())
	var ns []string
	for p.at(lexer.IDENT) && p.peek().Kind == lexer.COLONCOLON {
		ns = append(ns, p.advance().Literal)
		p.advance() // ::
	}
	if p.at(lexer.IDENT) && p.peek().Kind == lexer.ASSIGN {
		return p.parseAssign(ns)
	}
	expr, err := p.parseQualifiedExprTail(startPos, ns)
	if err != nil {
		return nil, err
	}
	expr, err = p.parseInfixChain(expr, lowest)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.SEMI); err != nil {
		return nil, err
	}
	return &ExprStmt{Pos: startPos, Expr: expr}, nil
}

func (p *Parser) parseExprStmt() (Stmt, error) {
	pos := posOf(p.cur())
	expr, err := p.parseExpr(lowest)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.SEMI); err != nil {
		return nil, err
	}
	return &ExprStmt{Pos: pos, Expr: expr}, nil
}
