package parser

import (
	"fmt"

	"github.com/afc/edgevm/internal/lexer"
)

// Precedence levels, lowest to highest.
const (
	_ int = iota
	lowest
	orPrec
	andPrec
	equals
	lessGreater
	sum
	product
	prefix
	callPrec
	memberPrec
)

var precedences = map[lexer.Kind]int{
	lexer.OR:    orPrec,
	lexer.AND:   andPrec,
	lexer.EQ:    equals,
	lexer.NE:    equals,
	lexer.LT:    lessGreater,
	lexer.LE:    lessGreater,
	lexer.GT:    lessGreater,
	lexer.GE:    lessGreater,
	lexer.PLUS:  sum,
	lexer.MINUS: sum,
	lexer.STAR:  product,
	lexer.SLASH: product,
	lexer.LPAREN: callPrec,
	lexer.DOT:    memberPrec,
}

// Parser is a Pratt parser over a flattened, #include-resolved token
// stream: the lexer's include-following Tokenize has already run by the
// time a Parser is constructed.
type Parser struct {
	tokens []lexer.Token
	pos    int
	errs   []error
}

// New constructs a Parser over tokens (as produced by lexer.Tokenize).
func New(tokens []lexer.Token) *Parser {
	return &Parser{tokens: tokens}
}

func (p *Parser) cur() lexer.Token {
	if p.pos >= len(p.tokens) {
		return lexer.Token{Kind: lexer.EOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) peek() lexer.Token {
	if p.pos+1 >= len(p.tokens) {
		return lexer.Token{Kind: lexer.EOF}
	}
	return p.tokens[p.pos+1]
}

func (p *Parser) advance() lexer.Token {
	t := p.cur()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return t
}

func (p *Parser) at(k lexer.Kind) bool { return p.cur().Kind == k }

func (p *Parser) expect(k lexer.Kind) (lexer.Token, error) {
	if !p.at(k) {
		t := p.cur()
		return t, fmt.Errorf("%s:%d:%d: expected %s, got %s %q", t.Source, t.Line, t.Column, k, t.Kind, t.Literal)
	}
	return p.advance(), nil
}

func (p *Parser) errf(t lexer.Token, format string, args ...any) error {
	return fmt.Errorf("%s:%d:%d: %s", t.Source, t.Line, t.Column, fmt.Sprintf(format, args...))
}

// Parse consumes the whole token stream, returning every top-level
// statement and every syntax error encountered (parsing continues past an
// error at statement granularity, so a single run surfaces as many errors
// as possible, mirroring the panic-mode recovery the teacher's parser
// documents).
func Parse(tokens []lexer.Token) (*Program, []error) {
	p := New(tokens)
	prog := &Program{}
	for !p.at(lexer.EOF) {
		start := p.pos
		stmt, err := p.parseStmt()
		if err != nil {
			p.errs = append(p.errs, err)
			p.synchronize()
			if p.pos == start {
				p.advance()
			}
			continue
		}
		prog.Stmts = append(prog.Stmts, stmt)
	}
	return prog, p.errs
}

// synchronize skips tokens until a statement boundary (`;` or `}`) so one
// syntax error doesn't cascade into spurious follow-on errors.
func (p *Parser) synchronize() {
	for !p.at(lexer.EOF) {
		if p.at(lexer.SEMI) {
			p.advance()
			return
		}
		if p.at(lexer.RBRACE) {
			return
		}
		p.advance()
	}
}
