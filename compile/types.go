package compile

import (
	"fmt"

	"github.com/wabbitlang/wabbit/ast"
)

// registerFuncSig caches a top-level function's return type, since
// Compile visits function bodies after the statements that call them
// and an inferType on a Call needs the callee's return type.
func (c *Compiler) registerFuncSig(fn *ast.FuncDef) {
	if c.funcRetTypes == nil {
		c.funcRetTypes = make(map[string]ast.Type)
	}
	c.funcRetTypes[fn.Name] = fn.ReturnType
}

// inferType recovers the static type of e by walking it the same way
// the checker did; Compile only ever runs on an already-checked
// program, so this never needs to report an error, only to decide
// which typed opcode family (I or F) to emit.
func (c *Compiler) inferType(e ast.Expr) ast.Type {
	switch n := e.(type) {
	case *ast.IntegerLit:
		return ast.Int
	case *ast.FloatLit:
		return ast.Float
	case *ast.CharLit:
		return ast.Char
	case *ast.BoolLit:
		return ast.Bool
	case *ast.Name:
		if info, ok := c.sym.lookup(n.Ident); ok {
			if info.isFloat {
				return ast.Float
			}
			return ast.Int
		}
		return ast.NoType
	case *ast.Grouped:
		return c.inferType(n.Inner)
	case *ast.BinOp:
		return c.inferType(n.Left)
	case *ast.UnaryOp:
		return c.inferType(n.Operand)
	case *ast.RelOp, *ast.LogicalOp:
		return ast.Bool
	case *ast.Assignment:
		return c.inferType(n.Target)
	case *ast.Call:
		return c.funcRetTypes[n.Callee]
	case *ast.Compound:
		last := n.Stmts[len(n.Stmts)-1].(*ast.ExprStmt)
		return c.inferType(last.X)
	default:
		panic(fmt.Sprintf("compile: cannot infer type of %T", e))
	}
}

func isFloatType(t ast.Type) bool { return t == ast.Float }
