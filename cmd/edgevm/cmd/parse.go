package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/afc/edgevm/internal/lexer"
	"github.com/afc/edgevm/internal/parser"
)

var parseEval string

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a source file or expression and print the AST",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&parseEval, "eval", "e", "", "parse inline code instead of reading from a file")
}

func runParse(cmd *cobra.Command, args []string) error {
	name, content, err := readSource(parseEval, args)
	if err != nil {
		return err
	}

	toks, err := lexer.Tokenize(lexer.Source{Name: name, Content: content}, lexer.NoIncludes{})
	if err != nil {
		return err
	}

	prog, errs := parser.Parse(toks)
	if len(errs) > 0 {
		for _, e := range errs {
			fmt.Println(e)
		}
		return fmt.Errorf("parsing failed with %d error(s)", len(errs))
	}

	for _, stmt := range prog.Stmts {
		dumpStmt(stmt, 0)
	}
	return nil
}

func indent(depth int) string { return strings.Repeat("  ", depth) }

func dumpStmt(s parser.Stmt, depth int) {
	switch n := s.(type) {
	case *parser.ExprStmt:
		fmt.Printf("%sExprStmt\n", indent(depth))
		dumpExpr(n.Expr, depth+1)
	case *parser.VarDef:
		fmt.Printf("%sVarDef %s %s\n", indent(depth), typeName(n.Type), n.Name)
		dumpExpr(n.Value, depth+1)
	case *parser.Assign:
		fmt.Printf("%sAssign %s\n", indent(depth), qualifiedName(n.Namespace, n.Name))
		dumpExpr(n.Value, depth+1)
	case *parser.Block:
		fmt.Printf("%sBlock\n", indent(depth))
		for _, stmt := range n.Stmts {
			dumpStmt(stmt, depth+1)
		}
	case *parser.IfStmt:
		fmt.Printf("%sIf\n", indent(depth))
		dumpExpr(n.Cond, depth+1)
		dumpStmt(n.Then, depth+1)
		if n.Else != nil {
			dumpStmt(n.Else, depth+1)
		}
	case *parser.WhileStmt:
		fmt.Printf("%sWhile\n", indent(depth))
		dumpExpr(n.Cond, depth+1)
		dumpStmt(n.Body, depth+1)
	case *parser.ForStmt:
		fmt.Printf("%sFor\n", indent(depth))
		if n.Init != nil {
			dumpStmt(n.Init, depth+1)
		}
		if n.Cond != nil {
			dumpExpr(n.Cond, depth+1)
		}
		if n.Step != nil {
			dumpStmt(n.Step, depth+1)
		}
		dumpStmt(n.Body, depth+1)
	case *parser.ReturnStmt:
		fmt.Printf("%sReturn\n", indent(depth))
		if n.Expr != nil {
			dumpExpr(n.Expr, depth+1)
		}
	case *parser.FuncDef:
		fmt.Printf("%sFuncDef %s %s(%s)\n", indent(depth), typeName(n.Output), n.Name, paramList(n.Params))
		dumpStmt(n.Body, depth+1)
	case *parser.NamespaceDecl:
		fmt.Printf("%sNamespace %s\n", indent(depth), n.Name)
		for _, stmt := range n.Body {
			dumpStmt(stmt, depth+1)
		}
	case *parser.ClassDecl:
		fmt.Printf("%sClass %s\n", indent(depth), n.Name)
		for _, f := range n.Fields {
			fmt.Printf("%sField %s %s\n", indent(depth+1), typeName(f.Type), f.Name)
		}
		for _, m := range n.Methods {
			dumpStmt(&m, depth+1)
		}
	default:
		fmt.Printf("%s%T\n", indent(depth), n)
	}
}

func dumpExpr(e parser.Expr, depth int) {
	switch n := e.(type) {
	case *parser.Ident:
		fmt.Printf("%sIdent %s\n", indent(depth), qualifiedName(n.Namespace, n.Name))
	case *parser.Literal:
		fmt.Printf("%sLiteral %s\n", indent(depth), literalText(n))
	case *parser.Binary:
		fmt.Printf("%sBinary %v\n", indent(depth), n.Op)
		dumpExpr(n.Left, depth+1)
		dumpExpr(n.Right, depth+1)
	case *parser.Unary:
		fmt.Printf("%sUnary %v\n", indent(depth), n.Op)
		dumpExpr(n.Operand, depth+1)
	case *parser.Call:
		fmt.Printf("%sCall\n", indent(depth))
		dumpExpr(n.Callee, depth+1)
		for _, arg := range n.Args {
			dumpExpr(arg, depth+1)
		}
	case *parser.MemberAccess:
		fmt.Printf("%sMemberAccess .%s\n", indent(depth), n.Name)
		dumpExpr(n.Receiver, depth+1)
	case *parser.LambdaExpr:
		fmt.Printf("%sLambda %s(%s)\n", indent(depth), typeName(n.Output), paramList(n.Params))
		if n.Body != nil {
			dumpStmt(n.Body, depth+1)
		}
		if n.Expr != nil {
			dumpExpr(n.Expr, depth+1)
		}
	default:
		fmt.Printf("%s%T\n", indent(depth), n)
	}
}

func typeName(t *parser.TypeExpr) string {
	if t == nil {
		return "?"
	}
	if t.Func != nil {
		inputs := make([]string, len(t.Func.Inputs))
		for i, in := range t.Func.Inputs {
			inputs[i] = typeName(in)
		}
		return fmt.Sprintf("fn(%s)->%s", strings.Join(inputs, ", "), typeName(t.Func.Output))
	}
	return t.Name
}

func paramList(params []parser.Param) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = typeName(p.Type) + " " + p.Name
	}
	return strings.Join(parts, ", ")
}

func qualifiedName(ns []string, name string) string {
	if len(ns) == 0 {
		return name
	}
	return strings.Join(ns, "::") + "::" + name
}

func literalText(l *parser.Literal) string {
	switch l.Kind {
	case parser.LitBool:
		return fmt.Sprintf("%v", l.Bool)
	default:
		return l.Text
	}
}
