package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseInt(t *testing.T) {
	lit := &IntegerLit{Lexeme: "42"}
	assert.Equal(t, int64(42), lit.ParseInt())
}

func TestParseIntPanicsOnMalformedLexeme(t *testing.T) {
	lit := &IntegerLit{Lexeme: "not-a-number"}
	assert.Panics(t, func() { lit.ParseInt() })
}

func TestParseFloat(t *testing.T) {
	lit := &FloatLit{Lexeme: "3.25"}
	assert.Equal(t, 3.25, lit.ParseFloat())
}

func TestParseChar(t *testing.T) {
	cases := []struct {
		lexeme string
		want   byte
	}{
		{"'a'", 'a'},
		{"'\\n'", '\n'},
		{"'\\t'", '\t'},
		{"'\\\\'", '\\'},
		{"'\\''", '\''},
		{"'\\0'", 0},
	}
	for _, c := range cases {
		lit := &CharLit{Lexeme: c.lexeme}
		assert.Equal(t, c.want, lit.ParseChar(), "lexeme %q", c.lexeme)
	}
}

func TestParseCharPanicsOnEmptyLiteral(t *testing.T) {
	lit := &CharLit{Lexeme: "''", Line: 3}
	assert.Panics(t, func() { lit.ParseChar() })
}

func TestParseCharPanicsOnUnknownEscape(t *testing.T) {
	lit := &CharLit{Lexeme: "'\\q'", Line: 5}
	assert.Panics(t, func() { lit.ParseChar() })
}

func TestPrint_Literals(t *testing.T) {
	prog := &Program{Stmts: []Stmt{
		&PrintStmt{X: &IntegerLit{Lexeme: "7"}},
		&PrintStmt{X: &BoolLit{Value: true}},
	}}
	got := Print(prog)
	assert.Equal(t, "print 7;\nprint true;\n", got)
}

func TestPrint_GroupedPreservesParens(t *testing.T) {
	prog := &Program{Stmts: []Stmt{
		&ExprStmt{X: &BinOp{
			Op:   "*",
			Left: &Grouped{Inner: &BinOp{Op: "+", Left: &IntegerLit{Lexeme: "1"}, Right: &IntegerLit{Lexeme: "2"}}},
			Right: &IntegerLit{Lexeme: "3"},
		}},
	}}
	got := Print(prog)
	assert.Equal(t, "(1 + 2) * 3;\n", got)
}

func TestPrint_VarDeclWithoutInitializer(t *testing.T) {
	prog := &Program{Stmts: []Stmt{
		&VarDecl{Name: "x", Type: Int},
	}}
	assert.Equal(t, "var x int;\n", Print(prog))
}
