package parser

import (
	"testing"

	"github.com/afc/edgevm/internal/lexer"
)

func mustTokenize(t *testing.T, src string) []lexer.Token {
	t.Helper()
	toks, err := lexer.Tokenize(lexer.Source{Name: "<test>", Content: src}, lexer.NoIncludes{})
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	return toks
}

func TestParseVarDef(t *testing.T) {
	prog, errs := Parse(mustTokenize(t, "number x = 1 + 2;"))
	if len(errs) != 0 {
		t.Fatalf("Parse errors: %v", errs)
	}
	if len(prog.Stmts) != 1 {
		t.Fatalf("len(Stmts) = %d, want 1", len(prog.Stmts))
	}
	def, ok := prog.Stmts[0].(*VarDef)
	if !ok {
		t.Fatalf("Stmts[0] = %T, want *VarDef", prog.Stmts[0])
	}
	if def.Type.Name != "number" || def.Name != "x" {
		t.Errorf("VarDef = %s %s, want number x", def.Type.Name, def.Name)
	}
	bin, ok := def.Value.(*Binary)
	if !ok {
		t.Fatalf("Value = %T, want *Binary", def.Value)
	}
	if bin.Op != lexer.PLUS {
		t.Errorf("Binary.Op = %v, want PLUS", bin.Op)
	}
}

func TestParseIfElse(t *testing.T) {
	prog, errs := Parse(mustTokenize(t, `if (true) { return 1; } else { return 2; }`))
	if len(errs) != 0 {
		t.Fatalf("Parse errors: %v", errs)
	}
	ifStmt, ok := prog.Stmts[0].(*IfStmt)
	if !ok {
		t.Fatalf("Stmts[0] = %T, want *IfStmt", prog.Stmts[0])
	}
	if ifStmt.Else == nil {
		t.Error("Else = nil, want a block")
	}
}

func TestParseFuncDef(t *testing.T) {
	prog, errs := Parse(mustTokenize(t, "number add(number a, number b) { return a + b; }"))
	if len(errs) != 0 {
		t.Fatalf("Parse errors: %v", errs)
	}
	fn, ok := prog.Stmts[0].(*FuncDef)
	if !ok {
		t.Fatalf("Stmts[0] = %T, want *FuncDef", prog.Stmts[0])
	}
	if fn.Name != "add" || len(fn.Params) != 2 {
		t.Errorf("FuncDef = %s with %d params, want add/2", fn.Name, len(fn.Params))
	}
}

func TestParseMemberCallChain(t *testing.T) {
	prog, errs := Parse(mustTokenize(t, `s.toupper().size();`))
	if len(errs) != 0 {
		t.Fatalf("Parse errors: %v", errs)
	}
	stmt, ok := prog.Stmts[0].(*ExprStmt)
	if !ok {
		t.Fatalf("Stmts[0] = %T, want *ExprStmt", prog.Stmts[0])
	}
	outer, ok := stmt.Expr.(*Call)
	if !ok {
		t.Fatalf("Expr = %T, want *Call", stmt.Expr)
	}
	if _, ok := outer.Callee.(*MemberAccess); !ok {
		t.Errorf("Callee = %T, want *MemberAccess", outer.Callee)
	}
}

func TestParseRecoversFromError(t *testing.T) {
	_, errs := Parse(mustTokenize(t, "number x = ; number y = 1;"))
	if len(errs) == 0 {
		t.Fatal("Parse: expected at least one error for malformed input")
	}
}
