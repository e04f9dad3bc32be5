package check

import "github.com/wabbitlang/wabbit/ast"

// checkExpr returns the expression's type, or ast.NoType if a type
// error made it unknowable. Callers must tolerate NoType flowing
// through without cascading spurious errors (spec §4.4 implies a
// single diagnostic per genuine mistake, not one per consumer).
func (c *Checker) checkExpr(e ast.Expr, sc *scope) ast.Type {
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
		info, ok := sc.lookup(n.Ident)
		if !ok {
			c.errorf(n.Line, "undeclared name %q", n.Ident)
			return ast.NoType
		}
		return info.typ
	case *ast.BinOp:
		return c.checkBinOp(n, sc)
	case *ast.RelOp:
		return c.checkRelOp(n, sc)
	case *ast.LogicalOp:
		return c.checkLogicalOp(n, sc)
	case *ast.UnaryOp:
		return c.checkUnaryOp(n, sc)
	case *ast.Grouped:
		return c.checkExpr(n.Inner, sc)
	case *ast.Assignment:
		return c.checkAssignment(n, sc)
	case *ast.Compound:
		return c.checkCompound(n, sc)
	case *ast.Call:
		return c.checkCall(n, sc)
	default:
		panic("check: unhandled expression type")
	}
}

func (c *Checker) checkBinOp(n *ast.BinOp, sc *scope) ast.Type {
	lt := c.checkExpr(n.Left, sc)
	rt := c.checkExpr(n.Right, sc)
	if lt == ast.NoType || rt == ast.NoType {
		return ast.NoType
	}
	if lt != rt {
		c.errorf(n.Line, "operands of %q have mismatched types %s and %s", n.Op, lt, rt)
		return ast.NoType
	}
	if lt != ast.Int && lt != ast.Float {
		c.errorf(n.Line, "operator %q requires int or float operands, got %s", n.Op, lt)
		return ast.NoType
	}
	return lt
}

func (c *Checker) checkRelOp(n *ast.RelOp, sc *scope) ast.Type {
	lt := c.checkExpr(n.Left, sc)
	rt := c.checkExpr(n.Right, sc)
	if lt == ast.NoType || rt == ast.NoType {
		return ast.Bool
	}
	if lt != rt {
		c.errorf(n.Line, "operands of %q have mismatched types %s and %s", n.Op, lt, rt)
		return ast.Bool
	}
	switch n.Op {
	case "==", "!=":
		if lt != ast.Int && lt != ast.Float && lt != ast.Char && lt != ast.Bool {
			c.errorf(n.Line, "operator %q does not support type %s", n.Op, lt)
		}
	default: // < <= > >=
		if lt != ast.Int && lt != ast.Float && lt != ast.Char {
			c.errorf(n.Line, "operator %q does not support type %s", n.Op, lt)
		}
	}
	return ast.Bool
}

func (c *Checker) checkLogicalOp(n *ast.LogicalOp, sc *scope) ast.Type {
	lt := c.checkExpr(n.Left, sc)
	rt := c.checkExpr(n.Right, sc)
	if lt != ast.NoType && lt != ast.Bool {
		c.errorf(n.Line, "operand of %q must be bool, got %s", n.Op, lt)
	}
	if rt != ast.NoType && rt != ast.Bool {
		c.errorf(n.Line, "operand of %q must be bool, got %s", n.Op, rt)
	}
	return ast.Bool
}

func (c *Checker) checkUnaryOp(n *ast.UnaryOp, sc *scope) ast.Type {
	t := c.checkExpr(n.Operand, sc)
	if t == ast.NoType {
		return ast.NoType
	}
	switch n.Op {
	case "!":
		if t != ast.Bool {
			c.errorf(n.Line, "operator %q requires bool, got %s", n.Op, t)
			return ast.NoType
		}
		return ast.Bool
	default: // - +
		if t != ast.Int && t != ast.Float {
			c.errorf(n.Line, "operator %q requires int or float, got %s", n.Op, t)
			return ast.NoType
		}
		return t
	}
}

func (c *Checker) checkAssignment(n *ast.Assignment, sc *scope) ast.Type {
	name, ok := n.Target.(*ast.Name)
	if !ok {
		c.errorf(n.Line, "assignment target must be a name")
		c.checkExpr(n.Value, sc)
		return ast.NoType
	}
	info, declared := sc.lookup(name.Ident)
	valType := c.checkExpr(n.Value, sc)
	if !declared {
		c.errorf(n.Line, "undeclared name %q", name.Ident)
		return ast.NoType
	}
	if info.isConst {
		c.errorf(n.Line, "cannot assign to const %q", name.Ident)
		return info.typ
	}
	if info.typ != ast.NoType && valType != ast.NoType && info.typ != valType {
		c.errorf(n.Line, "cannot assign %s value to %q of type %s", valType, name.Ident, info.typ)
	}
	return info.typ
}

// checkCompound checks a `{ stmts...; tail }` expression: the parser
// already guaranteed the trailing statement is an ExprStmt (spec §4.2),
// so its type is the compound's type.
func (c *Checker) checkCompound(n *ast.Compound, sc *scope) ast.Type {
	inner := newScope(sc)
	var last ast.Type
	for i, s := range n.Stmts {
		if i == len(n.Stmts)-1 {
			es := s.(*ast.ExprStmt)
			last = c.checkExpr(es.X, inner)
			continue
		}
		c.checkStmt(s, inner)
	}
	return last
}

func (c *Checker) checkCall(n *ast.Call, sc *scope) ast.Type {
	sig, ok := c.funcs[n.Callee]
	if !ok {
		c.errorf(n.Line, "call to undeclared function %q", n.Callee)
		for _, a := range n.Args {
			c.checkExpr(a, sc)
		}
		return ast.NoType
	}
	if len(n.Args) != len(sig.params) {
		c.errorf(n.Line, "function %q expects %d argument(s), got %d", n.Callee, len(sig.params), len(n.Args))
	}
	for i, a := range n.Args {
		argType := c.checkExpr(a, sc)
		if i >= len(sig.params) {
			continue
		}
		want := sig.params[i]
		if argType != ast.NoType && want != ast.NoType && argType != want {
			c.errorf(a.Pos(), "argument %d to %q: expected %s, got %s", i+1, n.Callee, want, argType)
		}
	}
	return sig.ret
}
