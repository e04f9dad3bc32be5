package repl

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wabbitlang/wabbit/interp"
)

func newSession() *session {
	return &session{in: interp.New()}
}

func TestEvalLine_PrintStatementProducesNoEcho(t *testing.T) {
	s := newSession()
	var buf bytes.Buffer
	s.in.Out = &buf
	s.evalLine(&buf, "print 2 + 3;")
	assert.Equal(t, "5\n", buf.String())
}

func TestEvalLine_BareExpressionIsEchoed(t *testing.T) {
	s := newSession()
	var buf bytes.Buffer
	s.in.Out = &buf
	s.evalLine(&buf, "2 + 3;")
	assert.Equal(t, "5\n", buf.String())
}

func TestEvalLine_BindingsPersistAcrossLines(t *testing.T) {
	s := newSession()
	var buf bytes.Buffer
	s.in.Out = &buf
	s.evalLine(&buf, "var x int = 10;")
	s.evalLine(&buf, "x + 5;")
	assert.Equal(t, "15\n", buf.String())
}

func TestEvalLine_FailingLineDoesNotPoisonHistory(t *testing.T) {
	s := newSession()
	var buf bytes.Buffer
	s.in.Out = &buf
	s.evalLine(&buf, "var x int = 10;")
	s.evalLine(&buf, "x + true;") // type error, must not corrupt history
	buf.Reset()
	s.evalLine(&buf, "x + 5;")
	assert.Equal(t, "15\n", buf.String())
}
