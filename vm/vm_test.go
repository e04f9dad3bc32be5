package vm

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wabbitlang/wabbit/vmcode"
)

func TestVM_IntegerArithmetic(t *testing.T) {
	code := []vmcode.Instr{
		{Op: vmcode.IPUSH, IntArg: 2},
		{Op: vmcode.IPUSH, IntArg: 3},
		{Op: vmcode.IADD},
		{Op: vmcode.IPUSH, IntArg: 4},
		{Op: vmcode.IMUL},
		{Op: vmcode.IPRINT},
		{Op: vmcode.HALT},
	}
	var buf bytes.Buffer
	m := New(code)
	m.Out = &buf
	require.NoError(t, m.Run())
	assert.Equal(t, "20\n", buf.String())
}

func TestVM_IntegerDivisionByZero(t *testing.T) {
	code := []vmcode.Instr{
		{Op: vmcode.IPUSH, IntArg: 1},
		{Op: vmcode.IPUSH, IntArg: 0},
		{Op: vmcode.IDIV},
		{Op: vmcode.HALT},
	}
	m := New(code)
	err := m.Run()
	require.Error(t, err)
	var execErr *ExecError
	require.ErrorAs(t, err, &execErr)
}

func TestVM_GotoAndLabels(t *testing.T) {
	code := []vmcode.Instr{
		{Op: vmcode.GOTO, Label: "skip"},
		{Op: vmcode.IPUSH, IntArg: 999}, // never executed
		{Op: vmcode.LABEL, Label: "skip"},
		{Op: vmcode.IPUSH, IntArg: 1},
		{Op: vmcode.IPRINT},
		{Op: vmcode.HALT},
	}
	var buf bytes.Buffer
	m := New(code)
	m.Out = &buf
	require.NoError(t, m.Run())
	assert.Equal(t, "1\n", buf.String())
}

func TestVM_BranchIfZero(t *testing.T) {
	code := []vmcode.Instr{
		{Op: vmcode.IPUSH, IntArg: 0},
		{Op: vmcode.BZ, Label: "zero"},
		{Op: vmcode.IPUSH, IntArg: 1},
		{Op: vmcode.IPRINT},
		{Op: vmcode.GOTO, Label: "end"},
		{Op: vmcode.LABEL, Label: "zero"},
		{Op: vmcode.IPUSH, IntArg: 0},
		{Op: vmcode.IPRINT},
		{Op: vmcode.LABEL, Label: "end"},
		{Op: vmcode.HALT},
	}
	var buf bytes.Buffer
	m := New(code)
	m.Out = &buf
	require.NoError(t, m.Run())
	assert.Equal(t, "0\n", buf.String())
}

func TestVM_GlobalStorage(t *testing.T) {
	code := []vmcode.Instr{
		{Op: vmcode.IPUSH, IntArg: 42},
		{Op: vmcode.ISTORE_GLOBAL, Slot: 0},
		{Op: vmcode.ILOAD_GLOBAL, Slot: 0},
		{Op: vmcode.IPRINT},
		{Op: vmcode.HALT},
	}
	var buf bytes.Buffer
	m := New(code)
	m.Out = &buf
	require.NoError(t, m.Run())
	assert.Equal(t, "42\n", buf.String())
}

func TestVM_CallAndReturn(t *testing.T) {
	// func double(x) { return x * 2; }  print double(21);
	code := []vmcode.Instr{
		{Op: vmcode.IPUSH, IntArg: 21},
		{Op: vmcode.CALL, Label: "double"},
		{Op: vmcode.IPRINT},
		{Op: vmcode.HALT},
		{Op: vmcode.LABEL, Label: "double"},
		{Op: vmcode.ISTORE_LOCAL, Slot: 0},
		{Op: vmcode.ILOAD_LOCAL, Slot: 0},
		{Op: vmcode.IPUSH, IntArg: 2},
		{Op: vmcode.IMUL},
		{Op: vmcode.RET},
	}
	var buf bytes.Buffer
	m := New(code)
	m.Out = &buf
	require.NoError(t, m.Run())
	assert.Equal(t, "42\n", buf.String())
}

func TestVM_CharPrintNoNewline(t *testing.T) {
	code := []vmcode.Instr{
		{Op: vmcode.IPUSH, IntArg: int64('a')},
		{Op: vmcode.CPRINT},
		{Op: vmcode.IPUSH, IntArg: int64('b')},
		{Op: vmcode.CPRINT},
		{Op: vmcode.HALT},
	}
	var buf bytes.Buffer
	m := New(code)
	m.Out = &buf
	require.NoError(t, m.Run())
	assert.Equal(t, "ab", buf.String())
}
