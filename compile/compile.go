/*
File    : wabbit/compile/compile.go
Package : compile
*/

// Package compile lowers a checked *ast.Program into a flat
// []vmcode.Instr sequence for package vm, following the lowering rules
// of spec §4.6. It assumes the program already passed check.Check —
// Compile does not itself diagnose type errors, only panics if it
// meets an AST shape the checker should have ruled out.
package compile

import (
	"fmt"

	"github.com/wabbitlang/wabbit/ast"
	"github.com/wabbitlang/wabbit/vmcode"
)

// slotInfo records where a name lives: as a global or as a local slot
// within the current function, and whether it holds an int or a float
// (spec §4.6: "look up the binding's (scope, slot, type)").
type slotInfo struct {
	global bool
	slot   int
	isFloat bool
}

// symtab is a two-level symbol table: the global table persists for
// the whole compile, and one local table exists per function body,
// discarded when the function finishes compiling.
type symtab struct {
	globals map[string]*slotInfo
	locals  map[string]*slotInfo
	nextGlobal int
	nextLocal  int
}

func newSymtab() *symtab {
	return &symtab{globals: make(map[string]*slotInfo)}
}

func (st *symtab) enterFunction() {
	st.locals = make(map[string]*slotInfo)
	st.nextLocal = 0
}

func (st *symtab) leaveFunction() {
	st.locals = nil
}

// defineGlobal assigns the next free global slot, in order of
// appearance (spec §4.6: "slots are assigned at declaration time in
// the order of appearance within their scope").
func (st *symtab) defineGlobal(name string, isFloat bool) *slotInfo {
	info := &slotInfo{global: true, slot: st.nextGlobal, isFloat: isFloat}
	st.nextGlobal++
	st.globals[name] = info
	return info
}

func (st *symtab) defineLocal(name string, isFloat bool) *slotInfo {
	info := &slotInfo{global: false, slot: st.nextLocal, isFloat: isFloat}
	st.nextLocal++
	st.locals[name] = info
	return info
}

func (st *symtab) lookup(name string) (*slotInfo, bool) {
	if st.locals != nil {
		if info, ok := st.locals[name]; ok {
			return info, true
		}
	}
	info, ok := st.globals[name]
	return info, ok
}

// Compiler accumulates the emitted instruction stream and the state
// lowering needs: the symbol table, a label counter for unique if/
// while labels, and the label of the innermost while's test and end
// (for break/continue — spec §4.6).
type Compiler struct {
	code      []vmcode.Instr
	sym       *symtab
	labelSeq  int
	testStack []string // stack of enclosing while test labels; innermost is last
	endStack  []string // stack of enclosing while end labels; innermost is last
	funcRetTypes map[string]ast.Type
}

// Compile lowers prog to a complete instruction sequence: the top-level
// statements come first and end in HALT (spec §4.6: execution halts on
// an explicit halt instruction), followed by one label block per
// top-level function.
func Compile(prog *ast.Program) []vmcode.Instr {
	c := &Compiler{sym: newSymtab()}

	var funcs []*ast.FuncDef
	var rest []ast.Stmt
	for _, s := range prog.Stmts {
		if fn, ok := s.(*ast.FuncDef); ok {
			funcs = append(funcs, fn)
			c.registerFuncSig(fn)
			continue
		}
		rest = append(rest, s)
	}

	for _, s := range rest {
		c.compileStmt(s)
	}
	c.emit(vmcode.Instr{Op: vmcode.HALT})

	for _, fn := range funcs {
		c.compileFunction(fn)
	}

	return c.code
}

func (c *Compiler) emit(i vmcode.Instr) {
	c.code = append(c.code, i)
}

func (c *Compiler) newLabel(prefix string) string {
	c.labelSeq++
	return fmt.Sprintf("%s%d", prefix, c.labelSeq)
}
