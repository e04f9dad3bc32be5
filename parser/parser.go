/*
File    : wabbit/parser/parser.go
Package : parser
*/

// Package parser implements a recursive-descent parser with explicit
// one-token lookahead for Wabbit, turning a lexer.Lexer token stream
// into an *ast.Program.
//
// Following spec §9's redesign flag, function calls are never
// disambiguated through a side table of previously-declared function
// names: `NAME(` is always parsed as a Call, and it is the type
// checker's job (package check) to reject a call to a name that isn't
// actually a function.
package parser

import (
	"fmt"

	"github.com/wabbitlang/wabbit/ast"
	"github.com/wabbitlang/wabbit/lexer"
)

// ParseError is a syntax error: the token stream did not match the
// grammar. It is fatal — parsing aborts for the file (spec §4.2).
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// Parser holds the token-stream state for recursive-descent parsing.
type Parser struct {
	lex  *lexer.Lexer
	cur  lexer.Token
	next lexer.Token
}

// New creates a Parser over src and primes its one-token lookahead.
func New(src string) *Parser {
	p := &Parser{lex: lexer.New(src)}
	p.cur = p.lex.NextToken()
	p.next = p.lex.NextToken()
	return p
}

// Parse parses src into a Program, or returns the first syntax error
// encountered. There is no error recovery (spec §4.2).
func Parse(src string) (prog *ast.Program, err error) {
	p := New(src)
	defer func() {
		if r := recover(); r != nil {
			if pe, ok := r.(*ParseError); ok {
				err = pe
				return
			}
			panic(r)
		}
	}()
	return p.parseProgram(), nil
}

func (p *Parser) advance() {
	p.cur = p.next
	p.next = p.lex.NextToken()
}

// at reports whether the current token has the given kind, without
// consuming it.
func (p *Parser) at(t lexer.TokenType) bool { return p.cur.Type == t }

// accept consumes and returns the current token if it has kind t.
func (p *Parser) accept(t lexer.TokenType) (lexer.Token, bool) {
	if p.cur.Type != t {
		return lexer.Token{}, false
	}
	tok := p.cur
	p.advance()
	return tok, true
}

// expect consumes the current token if it has kind t, or raises a
// syntax error annotated with the line number and the expected kind.
func (p *Parser) expect(t lexer.TokenType) lexer.Token {
	tok, ok := p.accept(t)
	if !ok {
		p.fail("expected %s, got %s %q", t, p.cur.Type, p.cur.Text)
	}
	return tok
}

func (p *Parser) fail(format string, args ...any) {
	panic(&ParseError{Line: p.cur.Line, Msg: fmt.Sprintf(format, args...)})
}

func (p *Parser) parseProgram() *ast.Program {
	var stmts []ast.Stmt
	for !p.at(lexer.EOF) {
		stmts = append(stmts, p.parseStatement())
	}
	return &ast.Program{Stmts: stmts}
}

// parseBlock parses `{ stmts... }`, the body of an if/while/func.
func (p *Parser) parseBlock() *ast.Block {
	line := p.expect(lexer.LBRACE).Line
	var stmts []ast.Stmt
	for !p.at(lexer.RBRACE) {
		stmts = append(stmts, p.parseStatement())
	}
	p.expect(lexer.RBRACE)
	return &ast.Block{Line: line, Stmts: stmts}
}

// typeNames are the only NAME lexemes the parser treats as a type
// annotation rather than an identifier (spec §4.2: type names lex as
// NAME and are distinguished by context, not token kind).
var typeNames = map[string]ast.Type{
	"int":   ast.Int,
	"float": ast.Float,
	"bool":  ast.Bool,
	"char":  ast.Char,
}

// acceptType consumes a type annotation if the current token is one
// of the four type names.
func (p *Parser) acceptType() (ast.Type, bool) {
	if p.cur.Type != lexer.NAME {
		return ast.NoType, false
	}
	t, ok := typeNames[p.cur.Text]
	if !ok {
		return ast.NoType, false
	}
	p.advance()
	return t, true
}
