/*
File    : wabbit/vm/vm.go
Package : vm
*/

// Package vm executes a []vmcode.Instr program on the two-typed-stack
// machine of spec §4.6: an integer stack, a float stack, indexed
// global storage, a stack of call frames for locals, and a label map
// precomputed once before execution begins.
package vm

import (
	"fmt"
	"io"
	"os"

	"github.com/wabbitlang/wabbit/vmcode"
)

// State is the machine's run state (spec §4.6: "States: Running,
// Halted. ... No error state — a malformed instruction triggers a
// fatal evaluation error").
type State int

const (
	Running State = iota
	Halted
)

// ExecError is a fatal evaluation error raised at VM execution time:
// division by zero or a malformed instruction (spec §7).
type ExecError struct {
	PC  int
	Msg string
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("pc %d: %s", e.PC, e.Msg)
}

// frame holds one call's local storage, plus the program counter to
// resume at when it returns.
type frame struct {
	localsI []int64
	localsF []float64
	retPC   int
}

// VM is one runnable instance of a compiled program.
type VM struct {
	code   []vmcode.Instr
	labels map[string]int

	iStack []int64
	fStack []float64

	globalsI []int64
	globalsF []float64

	frames []*frame

	pc    int
	State State
	Out   io.Writer
}

// New prepares a VM over code, precomputing its label map in one linear
// scan (spec §4.6). Output defaults to os.Stdout.
func New(code []vmcode.Instr) *VM {
	return &VM{
		code:   code,
		labels: vmcode.LabelMap(code),
		Out:    os.Stdout,
	}
}

// Run drives the VM to Halted or to running off the end of the program,
// whichever comes first (spec §4.6).
func (vm *VM) Run() error {
	for vm.pc < len(vm.code) {
		if vm.State == Halted {
			return nil
		}
		if err := vm.step(); err != nil {
			return err
		}
	}
	vm.State = Halted
	return nil
}

func (vm *VM) fatalf(format string, args ...any) error {
	return &ExecError{PC: vm.pc, Msg: fmt.Sprintf(format, args...)}
}

func (vm *VM) curFrame() *frame {
	if len(vm.frames) == 0 {
		return nil
	}
	return vm.frames[len(vm.frames)-1]
}

func growI(s *[]int64, n int) {
	for len(*s) <= n {
		*s = append(*s, 0)
	}
}

func growF(s *[]float64, n int) {
	for len(*s) <= n {
		*s = append(*s, 0)
	}
}

// pushI/popI/pushF/popF manipulate the two typed operand stacks; a pop
// on an empty stack is always a compiler bug in package compile, not a
// recoverable VM condition, so it panics rather than returning an
// ExecError.
func (vm *VM) pushI(v int64) { vm.iStack = append(vm.iStack, v) }
func (vm *VM) popI() int64 {
	n := len(vm.iStack) - 1
	v := vm.iStack[n]
	vm.iStack = vm.iStack[:n]
	return v
}
func (vm *VM) pushF(v float64) { vm.fStack = append(vm.fStack, v) }
func (vm *VM) popF() float64 {
	n := len(vm.fStack) - 1
	v := vm.fStack[n]
	vm.fStack = vm.fStack[:n]
	return v
}
