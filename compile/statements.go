package compile

import (
	"fmt"

	"github.com/wabbitlang/wabbit/ast"
	"github.com/wabbitlang/wabbit/vmcode"
)

func (c *Compiler) compileStmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.ExprStmt:
		c.compileExpr(n.X)
		c.discardTop(n.X)

	case *ast.PrintStmt:
		c.compileExpr(n.X)
		c.emitPrint(c.inferType(n.X))

	case *ast.ConstDecl:
		c.compileDecl(n.Name, n.Type, n.Init)

	case *ast.VarDecl:
		c.compileDecl(n.Name, n.Type, n.Init)

	case *ast.IfStmt:
		c.compileIf(n)

	case *ast.WhileStmt:
		c.compileWhile(n)

	case *ast.BreakStmt:
		c.emit(vmcode.Instr{Op: vmcode.GOTO, Label: c.endStack[len(c.endStack)-1]})

	case *ast.ContinueStmt:
		c.emit(vmcode.Instr{Op: vmcode.GOTO, Label: c.testStack[len(c.testStack)-1]})

	case *ast.ReturnStmt:
		c.compileExpr(n.X)
		c.emit(vmcode.Instr{Op: vmcode.RET})

	case *ast.FuncDef:
		// Top-level function definitions are hoisted and compiled as
		// label blocks after the main instruction stream (spec §4.6);
		// encountering one mid-statement-list is a no-op here.

	case *ast.Block:
		for _, st := range n.Stmts {
			c.compileStmt(st)
		}

	default:
		panic(fmt.Sprintf("compile: unhandled statement type %T", s))
	}
}

// discardTop drops the value an ExprStmt produced: every expression,
// including Assignment and Call, lowers to exactly one value pushed on
// its typed stack, so a bare expression statement always needs a
// balancing pop.
func (c *Compiler) discardTop(x ast.Expr) {
	t := c.inferType(x)
	if isFloatType(t) {
		c.emit(vmcode.Instr{Op: vmcode.FPOP})
		return
	}
	c.emit(vmcode.Instr{Op: vmcode.IPOP})
}

func (c *Compiler) compileDecl(name string, declared ast.Type, init ast.Expr) {
	isFloat := isFloatType(declared)
	if init != nil {
		isFloat = isFloatType(c.inferType(init))
		c.compileExpr(init)
	} else {
		c.pushZero(declared)
	}

	var info *slotInfo
	if c.sym.locals != nil {
		info = c.sym.defineLocal(name, isFloat)
	} else {
		info = c.sym.defineGlobal(name, isFloat)
	}
	c.emitStore(info)
}

func (c *Compiler) pushZero(t ast.Type) {
	if isFloatType(t) {
		c.emit(vmcode.Instr{Op: vmcode.FPUSH, FloatArg: 0})
		return
	}
	c.emit(vmcode.Instr{Op: vmcode.IPUSH, IntArg: 0})
}

func (c *Compiler) emitStore(info *slotInfo) {
	switch {
	case info.global && info.isFloat:
		c.emit(vmcode.Instr{Op: vmcode.FSTORE_GLOBAL, Slot: info.slot})
	case info.global && !info.isFloat:
		c.emit(vmcode.Instr{Op: vmcode.ISTORE_GLOBAL, Slot: info.slot})
	case !info.global && info.isFloat:
		c.emit(vmcode.Instr{Op: vmcode.FSTORE_LOCAL, Slot: info.slot})
	default:
		c.emit(vmcode.Instr{Op: vmcode.ISTORE_LOCAL, Slot: info.slot})
	}
}

func (c *Compiler) emitLoad(info *slotInfo) {
	switch {
	case info.global && info.isFloat:
		c.emit(vmcode.Instr{Op: vmcode.FLOAD_GLOBAL, Slot: info.slot})
	case info.global && !info.isFloat:
		c.emit(vmcode.Instr{Op: vmcode.ILOAD_GLOBAL, Slot: info.slot})
	case !info.global && info.isFloat:
		c.emit(vmcode.Instr{Op: vmcode.FLOAD_LOCAL, Slot: info.slot})
	default:
		c.emit(vmcode.Instr{Op: vmcode.ILOAD_LOCAL, Slot: info.slot})
	}
}

func (c *Compiler) emitPrint(t ast.Type) {
	switch t {
	case ast.Int:
		c.emit(vmcode.Instr{Op: vmcode.IPRINT})
	case ast.Float:
		c.emit(vmcode.Instr{Op: vmcode.FPRINT})
	case ast.Bool:
		c.emit(vmcode.Instr{Op: vmcode.BPRINT})
	case ast.Char:
		c.emit(vmcode.Instr{Op: vmcode.CPRINT})
	default:
		panic(fmt.Sprintf("compile: cannot print type %q", t))
	}
}

// compileIf lowers `if test { then } [else { else }]` with fresh
// unique labels (spec §4.6).
func (c *Compiler) compileIf(n *ast.IfStmt) {
	c.compileExpr(n.Test)
	lelse := c.newLabel("Lelse")
	lend := c.newLabel("Lend")
	c.emit(vmcode.Instr{Op: vmcode.BZ, Label: lelse})
	c.compileStmt(n.Then)
	if n.Else != nil {
		c.emit(vmcode.Instr{Op: vmcode.GOTO, Label: lend})
		c.emit(vmcode.Instr{Op: vmcode.LABEL, Label: lelse})
		c.compileStmt(n.Else)
		c.emit(vmcode.Instr{Op: vmcode.LABEL, Label: lend})
	} else {
		c.emit(vmcode.Instr{Op: vmcode.LABEL, Label: lelse})
	}
}

// compileWhile lowers `while test { body }`: condition at top, BZ out
// after the test, GOTO back to the test after the body (spec §4.6).
// The test and end labels are pushed so break/continue inside body can
// find their target.
func (c *Compiler) compileWhile(n *ast.WhileStmt) {
	ltest := c.newLabel("Ltest")
	lend := c.newLabel("Lend")
	c.emit(vmcode.Instr{Op: vmcode.LABEL, Label: ltest})
	c.compileExpr(n.Test)
	c.emit(vmcode.Instr{Op: vmcode.BZ, Label: lend})

	c.testStack = append(c.testStack, ltest)
	c.endStack = append(c.endStack, lend)
	c.compileStmt(n.Body)
	c.testStack = c.testStack[:len(c.testStack)-1]
	c.endStack = c.endStack[:len(c.endStack)-1]

	c.emit(vmcode.Instr{Op: vmcode.GOTO, Label: ltest})
	c.emit(vmcode.Instr{Op: vmcode.LABEL, Label: lend})
}

// compileFunction lowers a top-level function into a label block ending
// in RET: the callee stores its arguments into local slots in
// right-to-left order, matching the caller's left-to-right push (spec
// §4.6), then falls through to the compiled body.
func (c *Compiler) compileFunction(fn *ast.FuncDef) {
	c.sym.enterFunction()
	c.emit(vmcode.Instr{Op: vmcode.LABEL, Label: fn.Name})

	infos := make([]*slotInfo, len(fn.Params))
	for i, p := range fn.Params {
		infos[i] = c.sym.defineLocal(p.Name, isFloatType(p.Type))
	}
	for i := len(fn.Params) - 1; i >= 0; i-- {
		c.emitStore(infos[i])
	}

	for _, st := range fn.Body.Stmts {
		c.compileStmt(st)
	}
	// The checker (check.checkFuncDef) rejects any function whose body
	// can fall through without hitting a return on every path, so by
	// the time Compile runs, every reachable RET here is preceded by a
	// compiled ReturnStmt that already pushed the result value.
	c.emit(vmcode.Instr{Op: vmcode.RET})
	c.sym.leaveFunction()
}
