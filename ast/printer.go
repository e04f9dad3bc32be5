package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Print renders a Program back into Wabbit surface syntax. It is not
// expected to preserve comments or exact formatting, but re-parsing
// its output must yield a structurally-equal AST (spec §4.3, §8.2):
// since the parser enforces operator precedence at construction time,
// a plain infix reconstruction with no invented parentheses always
// reparses to the same tree. The only parentheses that appear are the
// ones explicitly recorded by a Grouped node.
func Print(p *Program) string {
	var b strings.Builder
	writeStmts(&b, 0, p.Stmts)
	return b.String()
}

func indentOf(n int) string { return strings.Repeat("    ", n) }

func writeStmts(b *strings.Builder, indent int, stmts []Stmt) {
	for _, s := range stmts {
		writeStmt(b, indent, s)
	}
}

func writeStmt(b *strings.Builder, indent int, s Stmt) {
	pad := indentOf(indent)
	switch n := s.(type) {
	case *ExprStmt:
		fmt.Fprintf(b, "%s%s;\n", pad, exprString(n.X))
	case *PrintStmt:
		fmt.Fprintf(b, "%sprint %s;\n", pad, exprString(n.X))
	case *ConstDecl:
		if n.Type != NoType {
			fmt.Fprintf(b, "%sconst %s %s = %s;\n", pad, n.Name, n.Type, exprString(n.Init))
		} else {
			fmt.Fprintf(b, "%sconst %s = %s;\n", pad, n.Name, exprString(n.Init))
		}
	case *VarDecl:
		switch {
		case n.Init != nil && n.Type != NoType:
			fmt.Fprintf(b, "%svar %s %s = %s;\n", pad, n.Name, n.Type, exprString(n.Init))
		case n.Init != nil:
			fmt.Fprintf(b, "%svar %s = %s;\n", pad, n.Name, exprString(n.Init))
		default:
			fmt.Fprintf(b, "%svar %s %s;\n", pad, n.Name, n.Type)
		}
	case *IfStmt:
		fmt.Fprintf(b, "%sif %s {\n", pad, exprString(n.Test))
		writeStmts(b, indent+1, n.Then.Stmts)
		if n.Else != nil {
			fmt.Fprintf(b, "%s} else {\n", pad)
			writeStmts(b, indent+1, n.Else.Stmts)
		}
		fmt.Fprintf(b, "%s}\n", pad)
	case *WhileStmt:
		fmt.Fprintf(b, "%swhile %s {\n", pad, exprString(n.Test))
		writeStmts(b, indent+1, n.Body.Stmts)
		fmt.Fprintf(b, "%s}\n", pad)
	case *BreakStmt:
		fmt.Fprintf(b, "%sbreak;\n", pad)
	case *ContinueStmt:
		fmt.Fprintf(b, "%scontinue;\n", pad)
	case *FuncDef:
		fmt.Fprintf(b, "%sfunc %s(%s) %s {\n", pad, n.Name, paramsString(n.Params), n.ReturnType)
		writeStmts(b, indent+1, n.Body.Stmts)
		fmt.Fprintf(b, "%s}\n", pad)
	case *ReturnStmt:
		fmt.Fprintf(b, "%sreturn %s;\n", pad, exprString(n.X))
	case *Block:
		fmt.Fprintf(b, "%s{\n", pad)
		writeStmts(b, indent+1, n.Stmts)
		fmt.Fprintf(b, "%s}\n", pad)
	default:
		panic(fmt.Sprintf("ast.Print: unhandled statement type %T", s))
	}
}

func paramsString(params []Param) string {
	parts := make([]string, len(params))
	for i, p := range params {
		if p.Default != nil {
			parts[i] = fmt.Sprintf("%s %s = %s", p.Name, p.Type, exprString(p.Default))
		} else {
			parts[i] = fmt.Sprintf("%s %s", p.Name, p.Type)
		}
	}
	return strings.Join(parts, ", ")
}

func exprString(e Expr) string {
	switch n := e.(type) {
	case *IntegerLit:
		return n.Lexeme
	case *FloatLit:
		return n.Lexeme
	case *CharLit:
		return n.Lexeme
	case *BoolLit:
		return strconv.FormatBool(n.Value)
	case *Name:
		return n.Ident
	case *BinOp:
		return fmt.Sprintf("%s %s %s", exprString(n.Left), n.Op, exprString(n.Right))
	case *RelOp:
		return fmt.Sprintf("%s %s %s", exprString(n.Left), n.Op, exprString(n.Right))
	case *LogicalOp:
		return fmt.Sprintf("%s %s %s", exprString(n.Left), n.Op, exprString(n.Right))
	case *UnaryOp:
		return fmt.Sprintf("%s%s", n.Op, exprString(n.Operand))
	case *Grouped:
		return fmt.Sprintf("(%s)", exprString(n.Inner))
	case *Assignment:
		return fmt.Sprintf("%s = %s", exprString(n.Target), exprString(n.Value))
	case *Call:
		args := make([]string, len(n.Args))
		for i, a := range n.Args {
			args[i] = exprString(a)
		}
		return fmt.Sprintf("%s(%s)", n.Callee, strings.Join(args, ", "))
	case *Compound:
		var b strings.Builder
		b.WriteString("{ ")
		for _, s := range n.Stmts {
			writeStmt(&b, 0, s)
		}
		b.WriteString("}")
		return strings.ReplaceAll(b.String(), "\n", " ")
	default:
		panic(fmt.Sprintf("ast.Print: unhandled expression type %T", e))
	}
}
