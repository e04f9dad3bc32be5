package parser

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wabbitlang/wabbit/ast"
)

func TestParse_IntegerLiteral(t *testing.T) {
	prog, err := Parse("12;")
	require.NoError(t, err)
	require.Len(t, prog.Stmts, 1)
	es, ok := prog.Stmts[0].(*ast.ExprStmt)
	require.True(t, ok)
	lit, ok := es.X.(*ast.IntegerLit)
	require.True(t, ok)
	assert.Equal(t, "12", lit.Lexeme)
}

func TestParse_PrecedenceClimbing(t *testing.T) {
	prog, err := Parse("2 + 3 * 4;")
	require.NoError(t, err)
	es := prog.Stmts[0].(*ast.ExprStmt)
	top, ok := es.X.(*ast.BinOp)
	require.True(t, ok)
	assert.Equal(t, "+", top.Op)
	_, leftIsLit := top.Left.(*ast.IntegerLit)
	assert.True(t, leftIsLit)
	mul, ok := top.Right.(*ast.BinOp)
	require.True(t, ok)
	assert.Equal(t, "*", mul.Op)
}

func TestParse_ChainedComparisonIsSyntaxError(t *testing.T) {
	_, err := Parse("a < b < c;")
	require.Error(t, err)
}

func TestParse_VarDeclWithTypeAndInitializer(t *testing.T) {
	prog, err := Parse("var x int = 2;")
	require.NoError(t, err)
	decl := prog.Stmts[0].(*ast.VarDecl)
	assert.Equal(t, "x", decl.Name)
	assert.Equal(t, ast.Int, decl.Type)
	require.NotNil(t, decl.Init)
}

func TestParse_VarDeclWithOnlyType(t *testing.T) {
	prog, err := Parse("var x int;")
	require.NoError(t, err)
	decl := prog.Stmts[0].(*ast.VarDecl)
	assert.Equal(t, ast.Int, decl.Type)
	assert.Nil(t, decl.Init)
}

func TestParse_FuncDef(t *testing.T) {
	prog, err := Parse("func add(x int, y int) int { return x + y; }")
	require.NoError(t, err)
	fn := prog.Stmts[0].(*ast.FuncDef)
	assert.Equal(t, "add", fn.Name)
	require.Len(t, fn.Params, 2)
	assert.Equal(t, ast.Int, fn.Params[0].Type)
	assert.Equal(t, ast.Int, fn.ReturnType)
}

func TestParse_CallExpression(t *testing.T) {
	prog, err := Parse("print add(2, 3);")
	require.NoError(t, err)
	ps := prog.Stmts[0].(*ast.PrintStmt)
	call, ok := ps.X.(*ast.Call)
	require.True(t, ok)
	assert.Equal(t, "add", call.Callee)
	assert.Len(t, call.Args, 2)
}

func TestParse_CompoundExpression(t *testing.T) {
	prog, err := Parse("var x = { var y = 2; y + 1; };")
	require.NoError(t, err)
	decl := prog.Stmts[0].(*ast.VarDecl)
	compound, ok := decl.Init.(*ast.Compound)
	require.True(t, ok)
	_, lastIsExpr := compound.Stmts[len(compound.Stmts)-1].(*ast.ExprStmt)
	assert.True(t, lastIsExpr)
}

func TestParse_CompoundMustEndInExpressionStatement(t *testing.T) {
	_, err := Parse("var x = { var y = 2; };")
	require.Error(t, err)
}

func TestParse_IfElse(t *testing.T) {
	prog, err := Parse("if a < b { print a; } else { print b; }")
	require.NoError(t, err)
	ifs := prog.Stmts[0].(*ast.IfStmt)
	require.NotNil(t, ifs.Else)
	assert.Len(t, ifs.Then.Stmts, 1)
	assert.Len(t, ifs.Else.Stmts, 1)
}

func TestParse_NameFollowedByParenIsAlwaysACall(t *testing.T) {
	prog, err := Parse("notafunction(1);")
	require.NoError(t, err)
	_, ok := prog.Stmts[0].(*ast.ExprStmt).X.(*ast.Call)
	assert.True(t, ok)
}

func TestParse_MismatchedTokenReportsLine(t *testing.T) {
	_, err := Parse("var x =\n;")
	require.Error(t, err)
	pe, ok := err.(*ParseError)
	require.True(t, ok)
	assert.Equal(t, 2, pe.Line)
}

func TestPrintParseRoundTrip(t *testing.T) {
	sources := []string{
		"print 2 + 3 * 4;",
		"const pi = 3.14159;",
		"var a int = 2; var b int = 3; if a < b { print a; } else { print b; }",
		"func add(x int, y int) int { return x + y; } print add(2, 3);",
		"var n = 0; while true { if n == 2 { print n; break; } else { n = n + 1; continue; } }",
	}
	for _, src := range sources {
		prog, err := Parse(src)
		require.NoError(t, err)
		printed := ast.Print(prog)
		reparsed, err := Parse(printed)
		require.NoError(t, err, "reprinted source: %s", printed)
		clearLines(reflect.ValueOf(prog))
		clearLines(reflect.ValueOf(reparsed))
		assert.Equal(t, prog, reparsed, "round-trip mismatch for %q", src)
	}
}

// clearLines zeroes every Line field reachable from v, so two trees can
// be compared by structure alone: the printer puts each statement on
// its own line, so reparsed nodes carry different line numbers.
func clearLines(v reflect.Value) {
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface:
		if !v.IsNil() {
			clearLines(v.Elem())
		}
	case reflect.Slice:
		for i := 0; i < v.Len(); i++ {
			clearLines(v.Index(i))
		}
	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			if v.Type().Field(i).Name == "Line" {
				v.Field(i).SetInt(0)
				continue
			}
			clearLines(v.Field(i))
		}
	}
}
