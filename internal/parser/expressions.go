package parser

import (
	"github.com/afc/edgevm/internal/lexer"
)

func (p *Parser) parseExpr(prec int) (Expr, error) {
	left, err := p.parsePrefix()
	if err != nil {
		return nil, err
	}
	return p.parseInfixChain(left, prec)
}

// parseInfixChain continues a Pratt parse from an already-parsed left
// operand, used both by the ordinary expression entry point and by
// statement parsing that had to special-case a leading `ns::name` before
// falling into the shared infix loop.
func (p *Parser) parseInfixChain(left Expr, prec int) (Expr, error) {
	for {
		opPrec, ok := precedences[p.cur().Kind]
		if !ok || opPrec <= prec {
			return left, nil
		}
		var err error
		left, err = p.parseInfix(left, opPrec)
		if err != nil {
			return nil, err
		}
	}
}

func (p *Parser) parseInfix(left Expr, opPrec int) (Expr, error) {
	switch p.cur().Kind {
	case lexer.LPAREN:
		return p.parseCall(left)
	case lexer.DOT:
		return p.parseMemberAccess(left)
	default:
		return p.parseBinary(left, opPrec)
	}
}

func (p *Parser) parseBinary(left Expr, opPrec int) (Expr, error) {
	tok := p.advance()
	right, err := p.parseExpr(opPrec)
	if err != nil {
		return nil, err
	}
	return &Binary{Pos: posOf(tok), Op: tok.Kind, Left: left, Right: right}, nil
}

func (p *Parser) parseCall(callee Expr) (Expr, error) {
	tok := p.advance() // (
	var args []Expr
	for !p.at(lexer.RPAREN) {
		arg, err := p.parseExpr(lowest)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.at(lexer.COMMA) {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	return &Call{Pos: posOf(tok), Callee: callee, Args: args}, nil
}

func (p *Parser) parseMemberAccess(receiver Expr) (Expr, error) {
	tok := p.advance() // .
	name, err := p.expect(lexer.IDENT)
	if err != nil {
		return nil, err
	}
	return &MemberAccess{Pos: posOf(tok), Receiver: receiver, Name: name.Literal}, nil
}

func (p *Parser) parsePrefix() (Expr, error) {
	switch p.cur().Kind {
	case lexer.TRUE:
		tok := p.advance()
		return &Literal{Pos: posOf(tok), Kind: LitBool, Bool: true}, nil
	case lexer.FALSE:
		tok := p.advance()
		return &Literal{Pos: posOf(tok), Kind: LitBool, Bool: false}, nil
	case lexer.NUMBER:
		tok := p.advance()
		return &Literal{Pos: posOf(tok), Kind: LitNumber, Text: tok.Literal}, nil
	case lexer.STRING:
		tok := p.advance()
		return &Literal{Pos: posOf(tok), Kind: LitString, Text: tok.Literal}, nil
	case lexer.BANG:
		tok := p.advance()
		operand, err := p.parseExpr(prefix)
		if err != nil {
			return nil, err
		}
		return &Unary{Pos: posOf(tok), Op: lexer.BANG, Operand: operand}, nil
	case lexer.MINUS:
		tok := p.advance()
		operand, err := p.parseExpr(prefix)
		if err != nil {
			return nil, err
		}
		return &Unary{Pos: posOf(tok), Op: lexer.MINUS, Operand: operand}, nil
	case lexer.LPAREN:
		return p.parseParenOrLambda()
	case lexer.IDENT:
		return p.parseIdentOrQualified()
	default:
		tok := p.cur()
		return nil, p.errf(tok, "unexpected token %s %q", tok.Kind, tok.Literal)
	}
}

func (p *Parser) parseIdentOrQualified() (Expr, error) {
	start := posOf(p.cur())
	var ns []string
	for p.at(lexer.IDENT) && p.peek().Kind == lexer.COLONCOLON {
		ns = append(ns, p.advance().Literal)
		p.advance() // ::
	}
	return p.parseQualifiedExprTail(start, ns)
}

func (p *Parser) parseQualifiedExprTail(start Pos, ns []string) (Expr, error) {
	name, err := p.expect(lexer.IDENT)
	if err != nil {
		return nil, err
	}
	return &Ident{Pos: start, Namespace: ns, Name: name.Literal}, nil
}

// parseParenOrLambda disambiguates `(expr)` grouping from a lambda
// `(params) -> type body` by scanning ahead for a balanced `)` followed by
// `->`; lambdas are otherwise indistinguishable from a parenthesised
// expression at the first token.
func (p *Parser) parseParenOrLambda() (Expr, error) {
	if p.looksLikeLambda() {
		return p.parseLambda()
	}
	p.advance() // (
	expr, err := p.parseExpr(lowest)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RPAREN); err != nil {
		return nil, err
	}
	return expr, nil
}

func (p *Parser) looksLikeLambda() bool {
	depth := 0
	for i := p.pos; i < len(p.tokens); i++ {
		switch p.tokens[i].Kind {
		case lexer.LPAREN:
			depth++
		case lexer.RPAREN:
			depth--
			if depth == 0 {
				return i+1 < len(p.tokens) && p.tokens[i+1].Kind == lexer.ARROW
			}
		case lexer.EOF, lexer.SEMI, lexer.LBRACE, lexer.RBRACE:
			return false
		}
	}
	return false
}

func (p *Parser) parseLambda() (Expr, error) {
	tok := p.cur()
	params, err := p.parseParamList()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.ARROW); err != nil {
		return nil, err
	}
	output, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if p.at(lexer.LBRACE) {
		body, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		return &LambdaExpr{Pos: posOf(tok), Output: output, Params: params, Body: body}, nil
	}
	expr, err := p.parseExpr(lowest)
	if err != nil {
		return nil, err
	}
	return &LambdaExpr{Pos: posOf(tok), Output: output, Params: params, Expr: expr}, nil
}

