package vmcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInstrString(t *testing.T) {
	assert.Equal(t, "IPUSH 42", Instr{Op: IPUSH, IntArg: 42}.String())
	assert.Equal(t, "FPUSH 3.5", Instr{Op: FPUSH, FloatArg: 3.5}.String())
	assert.Equal(t, "ICMP <", Instr{Op: ICMP, CmpOp: "<"}.String())
	assert.Equal(t, "ILOAD_GLOBAL 2", Instr{Op: ILOAD_GLOBAL, Slot: 2}.String())
	assert.Equal(t, "GOTO Lend", Instr{Op: GOTO, Label: "Lend"}.String())
	assert.Equal(t, "HALT", Instr{Op: HALT}.String())
}

func TestLabelMap(t *testing.T) {
	code := []Instr{
		{Op: IPUSH, IntArg: 1},
		{Op: LABEL, Label: "Ltest"},
		{Op: IPUSH, IntArg: 2},
		{Op: LABEL, Label: "Lend"},
		{Op: HALT},
	}
	m := LabelMap(code)
	assert.Equal(t, 1, m["Ltest"])
	assert.Equal(t, 3, m["Lend"])
}
