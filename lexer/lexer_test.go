package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextToken_Operators(t *testing.T) {
	src := `+ - * / < <= > >= == != && || ! = ; , ( ) { }`
	want := []TokenType{
		PLUS, MINUS, TIMES, DIVIDE, LT, LE, GT, GE, EQ, NE, LAND, LOR, LNOT,
		ASSIGN, SEMI, COMMA, LPAREN, RPAREN, LBRACE, RBRACE, EOF,
	}
	l := New(src)
	for _, wantType := range want {
		tok := l.NextToken()
		assert.Equal(t, wantType, tok.Type)
	}
}

func TestNextToken_TwoCharMaximalMunch(t *testing.T) {
	l := New("<=<")
	assert.Equal(t, LE, l.NextToken().Type)
	assert.Equal(t, LT, l.NextToken().Type)
}

func TestNextToken_Keywords(t *testing.T) {
	src := "const var print break continue if else while func return true false"
	want := []TokenType{CONST, VAR, PRINT, BREAK, CONTINUE, IF, ELSE, WHILE, FUNC, RETURN, TRUE, FALSE}
	l := New(src)
	for _, wantType := range want {
		assert.Equal(t, wantType, l.NextToken().Type)
	}
}

func TestNextToken_Literals(t *testing.T) {
	l := New(`123 3.14 'a' '\n' abc_2`)
	tok := l.NextToken()
	assert.Equal(t, INTEGER, tok.Type)
	assert.Equal(t, "123", tok.Text)

	tok = l.NextToken()
	assert.Equal(t, FLOAT, tok.Type)
	assert.Equal(t, "3.14", tok.Text)

	tok = l.NextToken()
	assert.Equal(t, CHAR, tok.Type)
	assert.Equal(t, "'a'", tok.Text)

	tok = l.NextToken()
	assert.Equal(t, CHAR, tok.Type)
	assert.Equal(t, `'\n'`, tok.Text)

	tok = l.NextToken()
	assert.Equal(t, NAME, tok.Type)
	assert.Equal(t, "abc_2", tok.Text)
}

func TestNextToken_LineNumbers(t *testing.T) {
	l := New("1\n2\n3")
	assert.Equal(t, 1, l.NextToken().Line)
	assert.Equal(t, 2, l.NextToken().Line)
	assert.Equal(t, 3, l.NextToken().Line)
}

func TestNextToken_CommentsSkipped(t *testing.T) {
	src := "1 // trailing comment\n/* block\ncomment */ 2"
	l := New(src)
	tok := l.NextToken()
	assert.Equal(t, INTEGER, tok.Type)
	assert.Equal(t, "1", tok.Text)
	tok = l.NextToken()
	assert.Equal(t, INTEGER, tok.Type)
	assert.Equal(t, "2", tok.Text)
	assert.Equal(t, 3, tok.Line)
}

func TestNextToken_IllegalCharacterSkippedNotFatal(t *testing.T) {
	var errs []byte
	l := New("1 @ 2")
	l.ErrW = sliceWriter{&errs}
	tok := l.NextToken()
	assert.Equal(t, INTEGER, tok.Type)
	tok = l.NextToken()
	assert.Equal(t, INTEGER, tok.Type)
	assert.Equal(t, "2", tok.Text)
	assert.Contains(t, string(errs), "illegal character")
}

func TestTokenize_EndsWithEOF(t *testing.T) {
	toks := New("1 + 2").Tokenize()
	assert.Equal(t, EOF, toks[len(toks)-1].Type)
}

type sliceWriter struct{ buf *[]byte }

func (w sliceWriter) Write(p []byte) (int, error) {
	*w.buf = append(*w.buf, p...)
	return len(p), nil
}
