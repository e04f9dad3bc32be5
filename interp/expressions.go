package interp

import (
	"fmt"

	"github.com/wabbitlang/wabbit/ast"
	"github.com/wabbitlang/wabbit/env"
	"github.com/wabbitlang/wabbit/object"
)

// evalExpr evaluates e in env e, returning a RuntimeError for any
// mismatch the checker should have already ruled out (spec §4.5:
// "mixed-type operators fail at evaluation as well as at type-check,
// for robustness against an un-checked tree").
func (in *Interp) evalExpr(e ast.Expr, sc *env.Env) (object.Value, error) {
	switch n := e.(type) {
	case *ast.IntegerLit:
		return object.Int(n.ParseInt()), nil
	case *ast.FloatLit:
		return object.Float(n.ParseFloat()), nil
	case *ast.CharLit:
		return object.Char(n.ParseChar()), nil
	case *ast.BoolLit:
		return object.Bool(n.Value), nil
	case *ast.Name:
		v, ok := sc.LookUp(n.Ident)
		if !ok {
			return nil, runtimeErrorf(n.Line, "undeclared name %q", n.Ident)
		}
		return v, nil
	case *ast.Grouped:
		return in.evalExpr(n.Inner, sc)
	case *ast.BinOp:
		return in.evalBinOp(n, sc)
	case *ast.RelOp:
		return in.evalRelOp(n, sc)
	case *ast.LogicalOp:
		return in.evalLogicalOp(n, sc)
	case *ast.UnaryOp:
		return in.evalUnaryOp(n, sc)
	case *ast.Assignment:
		return in.evalAssignment(n, sc)
	case *ast.Compound:
		return in.evalCompound(n, sc)
	case *ast.Call:
		return in.evalCall(n, sc)
	default:
		panic(fmt.Sprintf("interp: unhandled expression type %T", e))
	}
}

func (in *Interp) evalBinOp(n *ast.BinOp, sc *env.Env) (object.Value, error) {
	lv, err := in.evalExpr(n.Left, sc)
	if err != nil {
		return nil, err
	}
	rv, err := in.evalExpr(n.Right, sc)
	if err != nil {
		return nil, err
	}
	if li, ok := lv.(object.Int); ok {
		ri, ok := rv.(object.Int)
		if !ok {
			return nil, runtimeErrorf(n.Line, "operand type mismatch in %q", n.Op)
		}
		return evalIntBinOp(n.Line, n.Op, li, ri)
	}
	lf, ok := lv.(object.Float)
	if !ok {
		return nil, runtimeErrorf(n.Line, "operator %q requires int or float operands", n.Op)
	}
	rf, ok := rv.(object.Float)
	if !ok {
		return nil, runtimeErrorf(n.Line, "operand type mismatch in %q", n.Op)
	}
	return evalFloatBinOp(n.Op, lf, rf)
}

// evalIntBinOp implements integer `/` as floor division (spec §4.4).
func evalIntBinOp(line int, op string, l, r object.Int) (object.Value, error) {
	switch op {
	case "+":
		return l + r, nil
	case "-":
		return l - r, nil
	case "*":
		return l * r, nil
	case "/":
		if r == 0 {
			return nil, runtimeErrorf(line, "integer division by zero")
		}
		q := int64(l) / int64(r)
		if (int64(l)%int64(r) != 0) && ((int64(l) < 0) != (int64(r) < 0)) {
			q--
		}
		return object.Int(q), nil
	default:
		panic("interp: unhandled integer operator " + op)
	}
}

func evalFloatBinOp(op string, l, r object.Float) (object.Value, error) {
	switch op {
	case "+":
		return l + r, nil
	case "-":
		return l - r, nil
	case "*":
		return l * r, nil
	case "/":
		return l / r, nil
	default:
		panic("interp: unhandled float operator " + op)
	}
}

func (in *Interp) evalRelOp(n *ast.RelOp, sc *env.Env) (object.Value, error) {
	lv, err := in.evalExpr(n.Left, sc)
	if err != nil {
		return nil, err
	}
	rv, err := in.evalExpr(n.Right, sc)
	if err != nil {
		return nil, err
	}
	cmp, err := compare(n.Line, lv, rv)
	if err != nil {
		return nil, err
	}
	switch n.Op {
	case "<":
		return object.Bool(cmp < 0), nil
	case "<=":
		return object.Bool(cmp <= 0), nil
	case ">":
		return object.Bool(cmp > 0), nil
	case ">=":
		return object.Bool(cmp >= 0), nil
	case "==":
		return object.Bool(cmp == 0), nil
	case "!=":
		return object.Bool(cmp != 0), nil
	default:
		panic("interp: unhandled relational operator " + n.Op)
	}
}

// compare returns -1, 0, or 1. Only same-kind operands ever reach here
// once the checker has run; the switch still covers bool equality,
// which has no ordering, only equality.
func compare(line int, l, r object.Value) (int, error) {
	switch lv := l.(type) {
	case object.Int:
		rv, ok := r.(object.Int)
		if !ok {
			return 0, runtimeErrorf(line, "operand type mismatch in comparison")
		}
		return intCmp(int64(lv), int64(rv)), nil
	case object.Float:
		rv, ok := r.(object.Float)
		if !ok {
			return 0, runtimeErrorf(line, "operand type mismatch in comparison")
		}
		switch {
		case lv < rv:
			return -1, nil
		case lv > rv:
			return 1, nil
		default:
			return 0, nil
		}
	case object.Char:
		rv, ok := r.(object.Char)
		if !ok {
			return 0, runtimeErrorf(line, "operand type mismatch in comparison")
		}
		return intCmp(int64(lv), int64(rv)), nil
	case object.Bool:
		rv, ok := r.(object.Bool)
		if !ok {
			return 0, runtimeErrorf(line, "operand type mismatch in comparison")
		}
		if lv == rv {
			return 0, nil
		}
		return 1, nil
	default:
		return 0, runtimeErrorf(line, "value is not comparable")
	}
}

func intCmp(l, r int64) int {
	switch {
	case l < r:
		return -1
	case l > r:
		return 1
	default:
		return 0
	}
}

// evalLogicalOp implements short-circuit evaluation (spec §4.5, §8):
// the right operand's side effects must not occur when the left
// operand already determines the result.
func (in *Interp) evalLogicalOp(n *ast.LogicalOp, sc *env.Env) (object.Value, error) {
	lv, err := in.evalExpr(n.Left, sc)
	if err != nil {
		return nil, err
	}
	lb, ok := lv.(object.Bool)
	if !ok {
		return nil, runtimeErrorf(n.Line, "operand of %q must be bool", n.Op)
	}
	if n.Op == "&&" && !bool(lb) {
		return object.Bool(false), nil
	}
	if n.Op == "||" && bool(lb) {
		return object.Bool(true), nil
	}
	rv, err := in.evalExpr(n.Right, sc)
	if err != nil {
		return nil, err
	}
	rb, ok := rv.(object.Bool)
	if !ok {
		return nil, runtimeErrorf(n.Line, "operand of %q must be bool", n.Op)
	}
	return rb, nil
}

func (in *Interp) evalUnaryOp(n *ast.UnaryOp, sc *env.Env) (object.Value, error) {
	v, err := in.evalExpr(n.Operand, sc)
	if err != nil {
		return nil, err
	}
	switch n.Op {
	case "-":
		switch t := v.(type) {
		case object.Int:
			return -t, nil
		case object.Float:
			return -t, nil
		default:
			return nil, runtimeErrorf(n.Line, "unary %q requires int or float", n.Op)
		}
	case "+":
		switch v.(type) {
		case object.Int, object.Float:
			return v, nil
		default:
			return nil, runtimeErrorf(n.Line, "unary %q requires int or float", n.Op)
		}
	case "!":
		b, ok := v.(object.Bool)
		if !ok {
			return nil, runtimeErrorf(n.Line, "unary %q requires bool", n.Op)
		}
		return !b, nil
	default:
		panic("interp: unhandled unary operator " + n.Op)
	}
}

func (in *Interp) evalAssignment(n *ast.Assignment, sc *env.Env) (object.Value, error) {
	name, ok := n.Target.(*ast.Name)
	if !ok {
		return nil, runtimeErrorf(n.Line, "assignment target must be a name")
	}
	v, err := in.evalExpr(n.Value, sc)
	if err != nil {
		return nil, err
	}
	if !sc.Assign(name.Ident, v) {
		return nil, runtimeErrorf(n.Line, "undeclared name %q", name.Ident)
	}
	return v, nil
}

// evalCompound evaluates `{ stmts...; tail }`, yielding the value of
// the mandatory trailing expression statement (spec §4.2).
func (in *Interp) evalCompound(n *ast.Compound, sc *env.Env) (object.Value, error) {
	inner := env.NewChild(sc)
	var last object.Value
	for i, s := range n.Stmts {
		if i == len(n.Stmts)-1 {
			es := s.(*ast.ExprStmt)
			v, err := in.evalExpr(es.X, inner)
			if err != nil {
				return nil, err
			}
			last = v
			continue
		}
		out, err := in.execStmt(s, inner)
		if err != nil {
			return nil, err
		}
		if out.Signal != SigNone {
			return nil, runtimeErrorf(s.Pos(), "break, continue, or return used inside a compound expression")
		}
	}
	return last, nil
}

// evalCall implements spec §4.5's function call semantics: arguments
// evaluate left-to-right in the caller's environment; the callee's
// frame parent is its definition-site environment, not the caller's,
// so user functions only ever see globals plus their own locals.
func (in *Interp) evalCall(n *ast.Call, sc *env.Env) (object.Value, error) {
	callee, ok := sc.LookUp(n.Callee)
	if !ok {
		return nil, runtimeErrorf(n.Line, "call to undeclared function %q", n.Callee)
	}
	fn, ok := callee.(*object.Function)
	if !ok {
		return nil, runtimeErrorf(n.Line, "%q is not a function", n.Callee)
	}
	args := make([]object.Value, len(n.Args))
	for i, a := range n.Args {
		v, err := in.evalExpr(a, sc)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	if len(args) != len(fn.Def.Params) {
		return nil, runtimeErrorf(n.Line, "function %q expects %d argument(s), got %d", n.Callee, len(fn.Def.Params), len(args))
	}
	frame := env.NewChild(fn.Env.(*env.Env))
	for i, p := range fn.Def.Params {
		if string(args[i].Kind()) != string(p.Type) {
			return nil, runtimeErrorf(n.Line, "argument %d to %q: expected %s, got %s", i+1, n.Callee, p.Type, args[i].Kind())
		}
		frame.Define(p.Name, args[i], env.ParamBinding)
	}
	for _, st := range fn.Def.Body.Stmts {
		out, err := in.execStmt(st, frame)
		if err != nil {
			return nil, err
		}
		switch out.Signal {
		case SigReturn:
			return out.Value, nil
		case SigBreak, SigContinue:
			return nil, runtimeErrorf(st.Pos(), "break or continue used outside of a loop")
		}
	}
	if fn.Def.ReturnType != ast.NoType {
		return nil, runtimeErrorf(n.Line, "function %q did not return a value", n.Callee)
	}
	return object.Int(0), nil
}
