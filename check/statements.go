package check

import "github.com/wabbitlang/wabbit/ast"

func (c *Checker) checkStmt(s ast.Stmt, sc *scope) {
	switch n := s.(type) {
	case *ast.ExprStmt:
		c.checkExpr(n.X, sc)
	case *ast.PrintStmt:
		c.checkExpr(n.X, sc)
	case *ast.ConstDecl:
		c.checkConstDecl(n, sc)
	case *ast.VarDecl:
		c.checkVarDecl(n, sc)
	case *ast.IfStmt:
		c.checkIfStmt(n, sc)
	case *ast.WhileStmt:
		c.checkWhileStmt(n, sc)
	case *ast.BreakStmt:
		if c.whileDepth == 0 {
			c.errorf(n.Line, "break outside of a while loop")
		}
	case *ast.ContinueStmt:
		if c.whileDepth == 0 {
			c.errorf(n.Line, "continue outside of a while loop")
		}
	case *ast.FuncDef:
		c.checkFuncDef(n, sc)
	case *ast.ReturnStmt:
		c.checkReturnStmt(n, sc)
	case *ast.Block:
		inner := newScope(sc)
		for _, st := range n.Stmts {
			c.checkStmt(st, inner)
		}
	default:
		panic("check: unhandled statement type")
	}
}

func (c *Checker) checkConstDecl(n *ast.ConstDecl, sc *scope) {
	if n.Init == nil {
		c.errorf(n.Line, "const %q requires an initializer", n.Name)
		sc.define(n.Name, n.Type, true)
		return
	}
	initType := c.checkExpr(n.Init, sc)
	declared := n.Type
	if declared != ast.NoType && initType != ast.NoType && declared != initType {
		c.errorf(n.Line, "const %q: declared type %s does not match initializer type %s", n.Name, declared, initType)
	}
	finalType := declared
	if finalType == ast.NoType {
		finalType = initType
	}
	sc.define(n.Name, finalType, true)
}

func (c *Checker) checkVarDecl(n *ast.VarDecl, sc *scope) {
	if n.Type == ast.NoType && n.Init == nil {
		c.errorf(n.Line, "var %q needs a type annotation, an initializer, or both", n.Name)
		sc.define(n.Name, ast.NoType, false)
		return
	}
	var initType ast.Type
	if n.Init != nil {
		initType = c.checkExpr(n.Init, sc)
	}
	if n.Type != ast.NoType && n.Init != nil && initType != ast.NoType && n.Type != initType {
		c.errorf(n.Line, "var %q: declared type %s does not match initializer type %s", n.Name, n.Type, initType)
	}
	finalType := n.Type
	if finalType == ast.NoType {
		finalType = initType
	}
	sc.define(n.Name, finalType, false)
}

func (c *Checker) checkIfStmt(n *ast.IfStmt, sc *scope) {
	testType := c.checkExpr(n.Test, sc)
	if testType != ast.NoType && testType != ast.Bool {
		c.errorf(n.Test.Pos(), "if condition must be bool, got %s", testType)
	}
	c.checkStmt(n.Then, sc)
	if n.Else != nil {
		c.checkStmt(n.Else, sc)
	}
}

func (c *Checker) checkWhileStmt(n *ast.WhileStmt, sc *scope) {
	testType := c.checkExpr(n.Test, sc)
	if testType != ast.NoType && testType != ast.Bool {
		c.errorf(n.Test.Pos(), "while condition must be bool, got %s", testType)
	}
	c.whileDepth++
	c.checkStmt(n.Body, sc)
	c.whileDepth--
}

// checkFuncDef checks a function body in a fresh scope seeded with its
// parameters. Function definitions are only meaningful at top level
// (spec §4.2); this package does not itself reject a nested FuncDef,
// matching the parser's deliberate permissiveness (spec §9) — a nested
// one simply shadows no outer binding and is unreachable by any Call,
// since Check collects function signatures once, from prog.Stmts only.
//
// A return type is mandatory (spec's FuncDef node carries return-type
// as a required field, not an optional one — matching the original
// source's FunctionDefinition constructor, which asserts fn_return_type
// is always a Type). A body that can fall through without hitting a
// return on every path is also rejected here: compiling such a body
// would leave the VM's CALL/RET convention expecting a pushed value
// that was never pushed, crashing instead of reporting a diagnostic.
func (c *Checker) checkFuncDef(n *ast.FuncDef, sc *scope) {
	inner := newScope(sc)
	seen := make(map[string]bool)
	for _, p := range n.Params {
		if seen[p.Name] {
			c.errorf(n.Line, "duplicate parameter %q in function %q", p.Name, n.Name)
		}
		seen[p.Name] = true
		if p.Default != nil {
			defType := c.checkExpr(p.Default, inner)
			if defType != ast.NoType && defType != p.Type {
				c.errorf(n.Line, "parameter %q: default value type %s does not match declared type %s", p.Name, defType, p.Type)
			}
		}
		inner.define(p.Name, p.Type, false)
	}
	if n.ReturnType == ast.NoType {
		c.errorf(n.Line, "function %q requires a declared return type", n.Name)
	}
	c.funcRet = append(c.funcRet, n.ReturnType)
	for _, st := range n.Body.Stmts {
		c.checkStmt(st, inner)
	}
	c.funcRet = c.funcRet[:len(c.funcRet)-1]
	if n.ReturnType != ast.NoType && !stmtsAlwaysReturn(n.Body.Stmts) {
		c.errorf(n.Line, "function %q: not all paths return a value", n.Name)
	}
}

// stmtsAlwaysReturn reports whether executing stmts in order is
// guaranteed to hit a ReturnStmt. Conservative: a while loop never
// counts, since it may execute zero times or exit via break.
func stmtsAlwaysReturn(stmts []ast.Stmt) bool {
	if len(stmts) == 0 {
		return false
	}
	return stmtAlwaysReturns(stmts[len(stmts)-1])
}

func stmtAlwaysReturns(s ast.Stmt) bool {
	switch n := s.(type) {
	case *ast.ReturnStmt:
		return true
	case *ast.Block:
		return stmtsAlwaysReturn(n.Stmts)
	case *ast.IfStmt:
		return n.Else != nil && stmtAlwaysReturns(n.Then) && stmtAlwaysReturns(n.Else)
	default:
		return false
	}
}

func (c *Checker) checkReturnStmt(n *ast.ReturnStmt, sc *scope) {
	if len(c.funcRet) == 0 {
		c.errorf(n.Line, "return outside of a function")
		c.checkExpr(n.X, sc)
		return
	}
	want := c.funcRet[len(c.funcRet)-1]
	got := c.checkExpr(n.X, sc)
	if want != ast.NoType && got != ast.NoType && want != got {
		c.errorf(n.Line, "return type %s does not match declared return type %s", got, want)
	}
}
