package lexer

import "testing"

func TestNextBasicTokens(t *testing.T) {
	tests := []struct {
		name string
		in   string
		kind Kind
		lit  string
	}{
		{"plus", "+", PLUS, "+"},
		{"arrow", "->", ARROW, "->"},
		{"minus", "-", MINUS, "-"},
		{"le", "<=", LE, "<="},
		{"lt", "<", LT, "<"},
		{"eq", "==", EQ, "=="},
		{"assign", "=", ASSIGN, "="},
		{"and", "&&", AND, "&&"},
		{"or", "||", OR, "||"},
		{"coloncolon", "::", COLONCOLON, "::"},
		{"ident", "foo_bar", IDENT, "foo_bar"},
		{"keyword if", "if", IF, "if"},
		{"number", "42", NUMBER, "42"},
		{"float", "3.14", NUMBER, "3.14"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New("<test>", tt.in)
			tok := l.Next()
			if tok.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", tok.Kind, tt.kind)
			}
			if tok.Literal != tt.lit {
				t.Errorf("Literal = %q, want %q", tok.Literal, tt.lit)
			}
		})
	}
}

func TestNextStringLiteral(t *testing.T) {
	l := New("<test>", `"hello world"`)
	tok := l.Next()
	if tok.Kind != STRING {
		t.Fatalf("Kind = %v, want STRING", tok.Kind)
	}
	if tok.Literal != "hello world" {
		t.Errorf("Literal = %q, want %q", tok.Literal, "hello world")
	}
}

func TestSkipsLineComments(t *testing.T) {
	l := New("<test>", "// comment\n42")
	tok := l.Next()
	if tok.Kind != NUMBER || tok.Literal != "42" {
		t.Errorf("got Kind=%v Literal=%q, want NUMBER 42", tok.Kind, tok.Literal)
	}
}

func TestEOFRepeats(t *testing.T) {
	l := New("<test>", "")
	for i := 0; i < 3; i++ {
		if tok := l.Next(); tok.Kind != EOF {
			t.Errorf("Next() #%d = %v, want EOF", i, tok.Kind)
		}
	}
}

func TestPositionsTrackLinesAndColumns(t *testing.T) {
	l := New("<test>", "x\ny")
	first := l.Next()
	if first.Line != 1 {
		t.Errorf("first token Line = %d, want 1", first.Line)
	}
	second := l.Next()
	if second.Line != 2 {
		t.Errorf("second token Line = %d, want 2", second.Line)
	}
}

func TestWithMaxExponentOption(t *testing.T) {
	l := New("<test>", "1e10", WithMaxExponent(4))
	if l.maxExponent != 4 {
		t.Errorf("maxExponent = %d, want 4", l.maxExponent)
	}
}

func TestTokenizeFollowsNoIncludesRejection(t *testing.T) {
	_, err := Tokenize(Source{Name: "<test>", Content: `#include "missing.h"` + "\n1"}, NoIncludes{})
	if err == nil {
		t.Fatal("Tokenize: expected an error, NoIncludes must reject #include")
	}
}

func TestTokenizeFlattensToEOF(t *testing.T) {
	toks, err := Tokenize(Source{Name: "<test>", Content: "1 + 2"}, NoIncludes{})
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	if toks[len(toks)-1].Kind != EOF {
		t.Errorf("last token = %v, want EOF", toks[len(toks)-1].Kind)
	}
}
