package parser

import "github.com/afc/edgevm/internal/lexer"

// parseType parses a type spelling: a bare name (primitive or object type)
// or a `fn(T1, T2) -> T3` function-type shape.
func (p *Parser) parseType() (*TypeExpr, error) {
	if p.at(lexer.IDENT) && p.cur().Literal == "fn" {
		p.advance()
		if _, err := p.expect(lexer.LPAREN); err != nil {
			return nil, err
		}
		var inputs []*TypeExpr
		for !p.at(lexer.RPAREN) {
			t, err := p.parseType()
			if err != nil {
				return nil, err
			}
			inputs = append(inputs, t)
			if p.at(lexer.COMMA) {
				p.advance()
				continue
			}
			break
		}
		if _, err := p.expect(lexer.RPAREN); err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.ARROW); err != nil {
			return nil, err
		}
		out, err := p.parseType()
		if err != nil {
			return nil, err
		}
		return &TypeExpr{Func: &FuncTypeExpr{Inputs: inputs, Output: out}}, nil
	}
	if p.at(lexer.AUTO) {
		p.advance()
		return &TypeExpr{Name: "auto"}, nil
	}
	t, err := p.expect(lexer.IDENT)
	if err != nil {
		return nil, err
	}
	return &TypeExpr{Name: t.Literal}, nil
}

// looksLikeTypeStart reports whether the parser is positioned at something
// that could begin a type-led declaration (`type name ...`), used to
// disambiguate a declaration statement from a bare expression statement
// that happens to start with an identifier (e.g. a function call).
func (p *Parser) looksLikeTypeStart() bool {
	if p.at(lexer.AUTO) {
		return true
	}
	if !p.at(lexer.IDENT) {
		return false
	}
	// `IDENT IDENT` (`number x`) or `fn(...)->T name` both start a
	// declaration; `IDENT (` or `IDENT .`/`IDENT ::`/`IDENT =` do not.
	if p.cur().Literal == "fn" {
		return true
	}
	return p.peek().Kind == lexer.IDENT
}
