package compile

import (
	"fmt"

	"github.com/wabbitlang/wabbit/ast"
	"github.com/wabbitlang/wabbit/vmcode"
)

func (c *Compiler) compileExpr(e ast.Expr) {
	switch n := e.(type) {
	case *ast.IntegerLit:
		c.emit(vmcode.Instr{Op: vmcode.IPUSH, IntArg: n.ParseInt()})
	case *ast.FloatLit:
		c.emit(vmcode.Instr{Op: vmcode.FPUSH, FloatArg: n.ParseFloat()})
	case *ast.CharLit:
		c.emit(vmcode.Instr{Op: vmcode.IPUSH, IntArg: int64(n.ParseChar())})
	case *ast.BoolLit:
		v := int64(0)
		if n.Value {
			v = 1
		}
		c.emit(vmcode.Instr{Op: vmcode.IPUSH, IntArg: v})
	case *ast.Name:
		info, ok := c.sym.lookup(n.Ident)
		if !ok {
			panic(fmt.Sprintf("compile: undeclared name %q", n.Ident))
		}
		c.emitLoad(info)
	case *ast.Grouped:
		c.compileExpr(n.Inner)
	case *ast.BinOp:
		c.compileBinOp(n)
	case *ast.RelOp:
		c.compileRelOp(n)
	case *ast.LogicalOp:
		c.compileLogicalOp(n)
	case *ast.UnaryOp:
		c.compileUnaryOp(n)
	case *ast.Assignment:
		c.compileAssignment(n)
	case *ast.Compound:
		c.compileCompound(n)
	case *ast.Call:
		c.compileCall(n)
	default:
		panic(fmt.Sprintf("compile: unhandled expression type %T", e))
	}
}

// compileBinOp lowers operands left-then-right and emits the typed
// arithmetic opcode (spec §4.6). Integer `/` is IDIV, whose floor
// semantics (spec §4.4) are the VM's responsibility at execution time.
func (c *Compiler) compileBinOp(n *ast.BinOp) {
	c.compileExpr(n.Left)
	c.compileExpr(n.Right)
	isFloat := isFloatType(c.inferType(n.Left))
	var op vmcode.Op
	switch n.Op {
	case "+":
		op = pick(isFloat, vmcode.IADD, vmcode.FADD)
	case "-":
		op = pick(isFloat, vmcode.ISUB, vmcode.FSUB)
	case "*":
		op = pick(isFloat, vmcode.IMUL, vmcode.FMUL)
	case "/":
		op = pick(isFloat, vmcode.IDIV, vmcode.FDIV)
	default:
		panic("compile: unhandled binary operator " + n.Op)
	}
	c.emit(vmcode.Instr{Op: op})
}

func pick(isFloat bool, i, f vmcode.Op) vmcode.Op {
	if isFloat {
		return f
	}
	return i
}

// compileRelOp lowers to ICMP/FCMP, whose result always lands on the
// integer stack regardless of operand type (spec §4.6).
func (c *Compiler) compileRelOp(n *ast.RelOp) {
	c.compileExpr(n.Left)
	c.compileExpr(n.Right)
	isFloat := isFloatType(c.inferType(n.Left))
	op := pick(isFloat, vmcode.ICMP, vmcode.FCMP)
	c.emit(vmcode.Instr{Op: op, CmpOp: n.Op})
}

// compileLogicalOp lowers && and || to conditional branches (spec
// §4.6's exact scheme), so the right operand's side effects genuinely
// never execute when the left already decides the result.
func (c *Compiler) compileLogicalOp(n *ast.LogicalOp) {
	c.compileExpr(n.Left)
	lfalse := c.newLabel("Lfalse")
	lend := c.newLabel("Lend")
	switch n.Op {
	case "&&":
		c.emit(vmcode.Instr{Op: vmcode.BZ, Label: lfalse})
		c.compileExpr(n.Right)
		c.emit(vmcode.Instr{Op: vmcode.GOTO, Label: lend})
		c.emit(vmcode.Instr{Op: vmcode.LABEL, Label: lfalse})
		c.emit(vmcode.Instr{Op: vmcode.IPUSH, IntArg: 0})
		c.emit(vmcode.Instr{Op: vmcode.LABEL, Label: lend})
	case "||":
		ltrueLabel := c.newLabel("Ltrue")
		c.emit(vmcode.Instr{Op: vmcode.BZ, Label: ltrueLabel})
		c.emit(vmcode.Instr{Op: vmcode.IPUSH, IntArg: 1})
		c.emit(vmcode.Instr{Op: vmcode.GOTO, Label: lend})
		c.emit(vmcode.Instr{Op: vmcode.LABEL, Label: ltrueLabel})
		c.compileExpr(n.Right)
		c.emit(vmcode.Instr{Op: vmcode.LABEL, Label: lend})
	default:
		panic("compile: unhandled logical operator " + n.Op)
	}
}

func (c *Compiler) compileUnaryOp(n *ast.UnaryOp) {
	switch n.Op {
	case "!":
		c.compileExpr(n.Operand)
		// Wabbit bool is 0/1 on the integer stack; `!x` is `x == 0`.
		c.emit(vmcode.Instr{Op: vmcode.IPUSH, IntArg: 0})
		c.emit(vmcode.Instr{Op: vmcode.ICMP, CmpOp: "=="})
	case "-":
		isFloat := isFloatType(c.inferType(n.Operand))
		if isFloat {
			c.emit(vmcode.Instr{Op: vmcode.FPUSH, FloatArg: 0})
			c.compileExpr(n.Operand)
			c.emit(vmcode.Instr{Op: vmcode.FSUB})
		} else {
			c.emit(vmcode.Instr{Op: vmcode.IPUSH, IntArg: 0})
			c.compileExpr(n.Operand)
			c.emit(vmcode.Instr{Op: vmcode.ISUB})
		}
	case "+":
		c.compileExpr(n.Operand)
	default:
		panic("compile: unhandled unary operator " + n.Op)
	}
}

func (c *Compiler) compileAssignment(n *ast.Assignment) {
	name := n.Target.(*ast.Name)
	info, ok := c.sym.lookup(name.Ident)
	if !ok {
		panic(fmt.Sprintf("compile: undeclared name %q", name.Ident))
	}
	c.compileExpr(n.Value)
	// Assignment yields the assigned value, so the stored value is
	// duplicated by storing then reloading rather than consuming it.
	c.emitStore(info)
	c.emitLoad(info)
}

// compileCompound lowers `{ stmts...; tail }`: every non-tail statement
// compiles normally, and the tail expression's value is left on the
// stack as the compound's own value (spec §4.2).
func (c *Compiler) compileCompound(n *ast.Compound) {
	for i, s := range n.Stmts {
		if i == len(n.Stmts)-1 {
			c.compileExpr(s.(*ast.ExprStmt).X)
			continue
		}
		c.compileStmt(s)
	}
}

// compileCall pushes arguments left-to-right and emits CALL; the
// callee's prologue consumes them in right-to-left order (spec §4.6).
func (c *Compiler) compileCall(n *ast.Call) {
	for _, a := range n.Args {
		c.compileExpr(a)
	}
	c.emit(vmcode.Instr{Op: vmcode.CALL, Label: n.Callee})
}
