package vm

import (
	"fmt"

	"github.com/wabbitlang/wabbit/vmcode"
)

// step executes the instruction at the current PC and advances it,
// per spec §4.6: "any step advances PC by 1 and dispatches on opcode;
// branch/call/return overwrite PC".
func (vm *VM) step() error {
	instr := vm.code[vm.pc]

	switch instr.Op {
	case vmcode.IPUSH:
		vm.pushI(instr.IntArg)
	case vmcode.IPOP:
		vm.popI()
	case vmcode.IADD:
		r, l := vm.popI(), vm.popI()
		vm.pushI(l + r)
	case vmcode.ISUB:
		r, l := vm.popI(), vm.popI()
		vm.pushI(l - r)
	case vmcode.IMUL:
		r, l := vm.popI(), vm.popI()
		vm.pushI(l * r)
	case vmcode.IDIV:
		r, l := vm.popI(), vm.popI()
		if r == 0 {
			return vm.fatalf("integer division by zero")
		}
		q := l / r
		if (l%r != 0) && ((l < 0) != (r < 0)) {
			q--
		}
		vm.pushI(q)
	case vmcode.AND:
		r, l := vm.popI(), vm.popI()
		vm.pushI(l & r)
	case vmcode.OR:
		r, l := vm.popI(), vm.popI()
		vm.pushI(l | r)
	case vmcode.XOR:
		r, l := vm.popI(), vm.popI()
		vm.pushI(l ^ r)
	case vmcode.ICMP:
		r, l := vm.popI(), vm.popI()
		result, err := vm.intCompare(l, r, instr.CmpOp)
		if err != nil {
			return err
		}
		vm.pushI(result)
	case vmcode.ITOF:
		vm.pushF(float64(vm.popI()))

	case vmcode.FPUSH:
		vm.pushF(instr.FloatArg)
	case vmcode.FPOP:
		vm.popF()
	case vmcode.FADD:
		r, l := vm.popF(), vm.popF()
		vm.pushF(l + r)
	case vmcode.FSUB:
		r, l := vm.popF(), vm.popF()
		vm.pushF(l - r)
	case vmcode.FMUL:
		r, l := vm.popF(), vm.popF()
		vm.pushF(l * r)
	case vmcode.FDIV:
		r, l := vm.popF(), vm.popF()
		vm.pushF(l / r)
	case vmcode.FCMP:
		r, l := vm.popF(), vm.popF()
		result, err := vm.floatCompare(l, r, instr.CmpOp)
		if err != nil {
			return err
		}
		vm.pushI(result)

	case vmcode.ISTORE_GLOBAL:
		growI(&vm.globalsI, instr.Slot)
		vm.globalsI[instr.Slot] = vm.popI()
	case vmcode.ILOAD_GLOBAL:
		growI(&vm.globalsI, instr.Slot)
		vm.pushI(vm.globalsI[instr.Slot])
	case vmcode.FSTORE_GLOBAL:
		growF(&vm.globalsF, instr.Slot)
		vm.globalsF[instr.Slot] = vm.popF()
	case vmcode.FLOAD_GLOBAL:
		growF(&vm.globalsF, instr.Slot)
		vm.pushF(vm.globalsF[instr.Slot])
	case vmcode.ISTORE_LOCAL:
		f := vm.curFrame()
		growI(&f.localsI, instr.Slot)
		f.localsI[instr.Slot] = vm.popI()
	case vmcode.ILOAD_LOCAL:
		f := vm.curFrame()
		growI(&f.localsI, instr.Slot)
		vm.pushI(f.localsI[instr.Slot])
	case vmcode.FSTORE_LOCAL:
		f := vm.curFrame()
		growF(&f.localsF, instr.Slot)
		f.localsF[instr.Slot] = vm.popF()
	case vmcode.FLOAD_LOCAL:
		f := vm.curFrame()
		growF(&f.localsF, instr.Slot)
		vm.pushF(f.localsF[instr.Slot])

	case vmcode.LABEL:
		vm.pc++
		return nil
	case vmcode.GOTO:
		target, ok := vm.labels[instr.Label]
		if !ok {
			return vm.fatalf("undefined label %q", instr.Label)
		}
		vm.pc = target
		return nil
	case vmcode.BZ:
		target, ok := vm.labels[instr.Label]
		if !ok {
			return vm.fatalf("undefined label %q", instr.Label)
		}
		if vm.popI() == 0 {
			vm.pc = target
			return nil
		}
		vm.pc++
		return nil
	case vmcode.CALL:
		target, ok := vm.labels[instr.Label]
		if !ok {
			return vm.fatalf("call to undefined function %q", instr.Label)
		}
		vm.frames = append(vm.frames, &frame{retPC: vm.pc + 1})
		vm.pc = target
		return nil
	case vmcode.RET:
		if len(vm.frames) == 0 {
			return vm.fatalf("return with no active call frame")
		}
		f := vm.frames[len(vm.frames)-1]
		vm.frames = vm.frames[:len(vm.frames)-1]
		vm.pc = f.retPC
		return nil
	case vmcode.HALT:
		vm.State = Halted
		return nil

	case vmcode.IPRINT:
		fmt.Fprintln(vm.Out, vm.popI())
	case vmcode.FPRINT:
		fmt.Fprintln(vm.Out, formatFloat(vm.popF()))
	case vmcode.BPRINT:
		if vm.popI() != 0 {
			fmt.Fprintln(vm.Out, "true")
		} else {
			fmt.Fprintln(vm.Out, "false")
		}
	case vmcode.CPRINT:
		fmt.Fprint(vm.Out, string(rune(byte(vm.popI()))))

	default:
		return vm.fatalf("unknown opcode %v", instr.Op)
	}

	vm.pc++
	return nil
}

func (vm *VM) intCompare(l, r int64, op string) (int64, error) {
	var result bool
	switch op {
	case "<":
		result = l < r
	case "<=":
		result = l <= r
	case ">":
		result = l > r
	case ">=":
		result = l >= r
	case "==":
		result = l == r
	case "!=":
		result = l != r
	default:
		return 0, vm.fatalf("unknown comparison operator %q", op)
	}
	if result {
		return 1, nil
	}
	return 0, nil
}

func (vm *VM) floatCompare(l, r float64, op string) (int64, error) {
	var result bool
	switch op {
	case "<":
		result = l < r
	case "<=":
		result = l <= r
	case ">":
		result = l > r
	case ">=":
		result = l >= r
	case "==":
		result = l == r
	case "!=":
		result = l != r
	default:
		return 0, vm.fatalf("unknown comparison operator %q", op)
	}
	if result {
		return 1, nil
	}
	return 0, nil
}
