package interp

import (
	"fmt"

	"github.com/wabbitlang/wabbit/ast"
	"github.com/wabbitlang/wabbit/env"
	"github.com/wabbitlang/wabbit/object"
)

// execStmt evaluates one statement in e, returning the Outcome the
// nearest enclosing loop or function boundary must act on.
func (in *Interp) execStmt(s ast.Stmt, e *env.Env) (Outcome, error) {
	switch n := s.(type) {
	case *ast.ExprStmt:
		_, err := in.evalExpr(n.X, e)
		return normal, err

	case *ast.PrintStmt:
		v, err := in.evalExpr(n.X, e)
		if err != nil {
			return normal, err
		}
		in.print(v)
		return normal, nil

	case *ast.ConstDecl:
		v, err := in.evalExpr(n.Init, e)
		if err != nil {
			return normal, err
		}
		e.Define(n.Name, v, env.ConstBinding)
		return normal, nil

	case *ast.VarDecl:
		var v object.Value
		if n.Init != nil {
			var err error
			v, err = in.evalExpr(n.Init, e)
			if err != nil {
				return normal, err
			}
		} else {
			v = object.ZeroValue(n.Type)
		}
		e.Define(n.Name, v, env.VarBinding)
		return normal, nil

	case *ast.IfStmt:
		test, err := in.evalExpr(n.Test, e)
		if err != nil {
			return normal, err
		}
		cond, ok := test.(object.Bool)
		if !ok {
			return normal, runtimeErrorf(n.Line, "if condition must be bool")
		}
		if bool(cond) {
			return in.execBlock(n.Then, e)
		}
		if n.Else != nil {
			return in.execBlock(n.Else, e)
		}
		return normal, nil

	case *ast.WhileStmt:
		return in.execWhile(n, e)

	case *ast.BreakStmt:
		return Outcome{Signal: SigBreak}, nil

	case *ast.ContinueStmt:
		return Outcome{Signal: SigContinue}, nil

	case *ast.FuncDef:
		e.Define(n.Name, &object.Function{Def: n, Env: e}, env.FuncBinding)
		return normal, nil

	case *ast.ReturnStmt:
		v, err := in.evalExpr(n.X, e)
		if err != nil {
			return normal, err
		}
		return Outcome{Signal: SigReturn, Value: v}, nil

	case *ast.Block:
		return in.execBlock(n, e)

	default:
		panic(fmt.Sprintf("interp: unhandled statement type %T", s))
	}
}

// execBlock runs stmts in a fresh child environment, stopping early and
// propagating the first non-SigNone Outcome (spec §4.5: break/continue/
// return are non-local exits, so nested blocks must not swallow them).
func (in *Interp) execBlock(b *ast.Block, parent *env.Env) (Outcome, error) {
	inner := env.NewChild(parent)
	for _, s := range b.Stmts {
		out, err := in.execStmt(s, inner)
		if err != nil {
			return normal, err
		}
		if out.Signal != SigNone {
			return out, nil
		}
	}
	return normal, nil
}

// execWhile is the only place a SigBreak or SigContinue is consumed: it
// implements "unwind to that while and exit" and "unwind to the
// innermost while and restart its test" (spec §4.5).
func (in *Interp) execWhile(n *ast.WhileStmt, e *env.Env) (Outcome, error) {
	for {
		test, err := in.evalExpr(n.Test, e)
		if err != nil {
			return normal, err
		}
		cond, ok := test.(object.Bool)
		if !ok {
			return normal, runtimeErrorf(n.Line, "while condition must be bool")
		}
		if !bool(cond) {
			return normal, nil
		}
		out, err := in.execBlock(n.Body, e)
		if err != nil {
			return normal, err
		}
		switch out.Signal {
		case SigBreak:
			return normal, nil
		case SigContinue, SigNone:
			continue
		case SigReturn:
			return out, nil
		}
	}
}

// print formats v to in.Out per spec §6: int/float/bool followed by a
// newline, char with no terminator.
func (in *Interp) print(v object.Value) {
	if v.Kind() == object.CharKind {
		fmt.Fprint(in.Out, v.String())
		return
	}
	fmt.Fprintln(in.Out, v.String())
}
