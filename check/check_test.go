package check

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wabbitlang/wabbit/parser"
)

func checkSource(t *testing.T, src string) []Diagnostic {
	t.Helper()
	prog, err := parser.Parse(src)
	require.NoError(t, err)
	return Check(prog)
}

func TestCheck_ValidProgramsHaveNoDiagnostics(t *testing.T) {
	sources := []string{
		"print 2 + 3 * 4;",
		"const pi = 3.14159; var r = 4.0; print pi * r * 2.0;",
		"var a int = 2; var b int = 3; if a < b { print a; } else { print b; }",
		"var x int = 1; var f int = 1; while x <= 5 { f = f * x; x = x + 1; print f; }",
		"func add(x int, y int) int { return x + y; } print add(2, 3);",
		"var n = 0; while true { if n == 2 { print n; break; } else { n = n + 1; continue; } }",
	}
	for _, src := range sources {
		diags := checkSource(t, src)
		assert.Empty(t, diags, "source: %s diags: %v", src, diags)
	}
}

func TestCheck_MismatchedBinOpTypes(t *testing.T) {
	diags := checkSource(t, "print 1 + 1.0;")
	require.NotEmpty(t, diags)
}

func TestCheck_UndeclaredName(t *testing.T) {
	diags := checkSource(t, "print x;")
	require.Len(t, diags, 1)
}

func TestCheck_AssignToConst(t *testing.T) {
	diags := checkSource(t, "const x = 1; x = 2;")
	require.NotEmpty(t, diags)
}

func TestCheck_IfTestMustBeBool(t *testing.T) {
	diags := checkSource(t, "if 1 { print 1; }")
	require.NotEmpty(t, diags)
}

func TestCheck_BreakOutsideWhile(t *testing.T) {
	diags := checkSource(t, "break;")
	require.Len(t, diags, 1)
}

func TestCheck_ContinueOutsideWhile(t *testing.T) {
	diags := checkSource(t, "continue;")
	require.Len(t, diags, 1)
}

func TestCheck_ReturnOutsideFunction(t *testing.T) {
	diags := checkSource(t, "return 1;")
	require.NotEmpty(t, diags)
}

func TestCheck_CallArityMismatch(t *testing.T) {
	diags := checkSource(t, "func add(x int, y int) int { return x + y; } print add(1);")
	require.NotEmpty(t, diags)
}

func TestCheck_CallArgumentTypeMismatch(t *testing.T) {
	diags := checkSource(t, "func add(x int, y int) int { return x + y; } print add(1, 1.0);")
	require.NotEmpty(t, diags)
}

func TestCheck_CallToUndeclaredFunction(t *testing.T) {
	diags := checkSource(t, "print nope(1);")
	require.NotEmpty(t, diags)
}

func TestCheck_VarDeclWithoutTypeOrInitializerIsAnError(t *testing.T) {
	diags := checkSource(t, "var x;")
	require.Len(t, diags, 1)
}

// The grammar makes `=` mandatory after a const name, so a const without
// an initializer never reaches the checker: it is a syntax error.
func TestCheck_ConstDeclRequiresInitializer(t *testing.T) {
	_, err := parser.Parse("const x int;")
	require.Error(t, err)
}

func TestCheck_ChainedComparisonRejectedAtParseTime(t *testing.T) {
	_, err := parser.Parse("print a < b < c;")
	require.Error(t, err)
}

func TestCheck_ShortCircuitOperandsMustBeBool(t *testing.T) {
	diags := checkSource(t, "print 1 && true;")
	require.NotEmpty(t, diags)
}

func TestCheck_FunctionCanBeUsedBeforeItsDeclaration(t *testing.T) {
	diags := checkSource(t, "print later(1); func later(x int) int { return x; }")
	assert.Empty(t, diags)
}

func TestCheck_FuncDefWithoutReturnTypeIsAnError(t *testing.T) {
	diags := checkSource(t, "func noop(x int) { print x; }")
	require.NotEmpty(t, diags)
}

func TestCheck_FuncDefMustReturnOnEveryPath(t *testing.T) {
	diags := checkSource(t, "func f(x int) int { if x > 0 { return x; } }")
	require.NotEmpty(t, diags)
}

func TestCheck_FuncDefReturnsOnEveryPathViaIfElse(t *testing.T) {
	diags := checkSource(t, "func f(x int) int { if x > 0 { return x; } else { return 0; } } print f(1);")
	assert.Empty(t, diags)
}
