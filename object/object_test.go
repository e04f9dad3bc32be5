package object

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wabbitlang/wabbit/ast"
)

func TestZeroValue(t *testing.T) {
	assert.Equal(t, Int(0), ZeroValue(ast.Int))
	assert.Equal(t, Float(0), ZeroValue(ast.Float))
	assert.Equal(t, Bool(false), ZeroValue(ast.Bool))
	assert.Equal(t, Char(0), ZeroValue(ast.Char))
}

func TestZeroValuePanicsOnNoType(t *testing.T) {
	assert.Panics(t, func() { ZeroValue(ast.NoType) })
}

func TestTypeOf(t *testing.T) {
	assert.Equal(t, ast.Int, TypeOf(Int(1)))
	assert.Equal(t, ast.Float, TypeOf(Float(1.5)))
	assert.Equal(t, ast.Bool, TypeOf(Bool(true)))
	assert.Equal(t, ast.Char, TypeOf(Char('a')))
}

func TestValueStrings(t *testing.T) {
	assert.Equal(t, "42", Int(42).String())
	assert.Equal(t, "3.5", Float(3.5).String())
	assert.Equal(t, "true", Bool(true).String())
	assert.Equal(t, "a", Char('a').String())
}

func TestFunctionString(t *testing.T) {
	fn := &Function{Def: &ast.FuncDef{Name: "add"}}
	assert.Equal(t, "func(add)", fn.String())
	assert.Equal(t, FuncKind, fn.Kind())
}
