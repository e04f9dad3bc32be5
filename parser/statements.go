package parser

import (
	"github.com/wabbitlang/wabbit/ast"
	"github.com/wabbitlang/wabbit/lexer"
)

// parseStatement dispatches on the first token of the statement, per
// spec §4.2.
func (p *Parser) parseStatement() ast.Stmt {
	switch p.cur.Type {
	case lexer.BREAK:
		line := p.cur.Line
		p.advance()
		p.expect(lexer.SEMI)
		return &ast.BreakStmt{Line: line}
	case lexer.CONTINUE:
		line := p.cur.Line
		p.advance()
		p.expect(lexer.SEMI)
		return &ast.ContinueStmt{Line: line}
	case lexer.PRINT:
		return p.parsePrintStatement()
	case lexer.CONST:
		return p.parseConstDecl()
	case lexer.VAR:
		return p.parseVarDecl()
	case lexer.IF:
		return p.parseIfStatement()
	case lexer.WHILE:
		return p.parseWhileStatement()
	case lexer.FUNC:
		return p.parseFuncDef()
	case lexer.RETURN:
		return p.parseReturnStatement()
	default:
		return p.parseExprStatement()
	}
}

func (p *Parser) parsePrintStatement() ast.Stmt {
	line := p.expect(lexer.PRINT).Line
	x := p.parseExpression()
	p.expect(lexer.SEMI)
	return &ast.PrintStmt{Line: line, X: x}
}

func (p *Parser) parseConstDecl() ast.Stmt {
	line := p.expect(lexer.CONST).Line
	name := p.expect(lexer.NAME).Text
	typ, _ := p.acceptType()
	p.expect(lexer.ASSIGN)
	init := p.parseExpression()
	p.expect(lexer.SEMI)
	return &ast.ConstDecl{Line: line, Name: name, Type: typ, Init: init}
}

func (p *Parser) parseVarDecl() ast.Stmt {
	line := p.expect(lexer.VAR).Line
	name := p.expect(lexer.NAME).Text
	typ, _ := p.acceptType()
	var init ast.Expr
	if _, ok := p.accept(lexer.ASSIGN); ok {
		init = p.parseExpression()
	}
	p.expect(lexer.SEMI)
	return &ast.VarDecl{Line: line, Name: name, Type: typ, Init: init}
}

func (p *Parser) parseIfStatement() ast.Stmt {
	line := p.expect(lexer.IF).Line
	test := p.parseExpression()
	then := p.parseBlock()
	var elseBlock *ast.Block
	if _, ok := p.accept(lexer.ELSE); ok {
		elseBlock = p.parseBlock()
	}
	return &ast.IfStmt{Line: line, Test: test, Then: then, Else: elseBlock}
}

func (p *Parser) parseWhileStatement() ast.Stmt {
	line := p.expect(lexer.WHILE).Line
	test := p.parseExpression()
	body := p.parseBlock()
	return &ast.WhileStmt{Line: line, Test: test, Body: body}
}

func (p *Parser) parseReturnStatement() ast.Stmt {
	line := p.expect(lexer.RETURN).Line
	x := p.parseExpression()
	p.expect(lexer.SEMI)
	return &ast.ReturnStmt{Line: line, X: x}
}

func (p *Parser) parseExprStatement() ast.Stmt {
	line := p.cur.Line
	x := p.parseExpression()
	p.expect(lexer.SEMI)
	return &ast.ExprStmt{Line: line, X: x}
}

// parseFuncDef parses `func name(params) [returnType] { body }`.
// Function definitions are only legal at the top level (spec §4.2);
// the parser itself doesn't enforce that — it accepts a FuncDef
// wherever a statement may appear. The checker does not reject a
// nested one either, but it only registers signatures of top-level
// FuncDefs, so any call to a nested function is reported as a call to
// an undeclared function.
func (p *Parser) parseFuncDef() ast.Stmt {
	line := p.expect(lexer.FUNC).Line
	name := p.expect(lexer.NAME).Text
	p.expect(lexer.LPAREN)
	var params []ast.Param
	for !p.at(lexer.RPAREN) {
		params = append(params, p.parseParam())
		if !p.at(lexer.RPAREN) {
			p.expect(lexer.COMMA)
		}
	}
	p.expect(lexer.RPAREN)
	returnType, _ := p.acceptType()
	body := p.parseBlock()
	return &ast.FuncDef{Line: line, Name: name, Params: params, ReturnType: returnType, Body: body}
}

func (p *Parser) parseParam() ast.Param {
	name := p.expect(lexer.NAME).Text
	typ, ok := p.acceptType()
	if !ok {
		p.fail("expected a type for parameter %q", name)
	}
	var def ast.Expr
	if _, ok := p.accept(lexer.ASSIGN); ok {
		def = p.parseExpression()
	}
	return ast.Param{Name: name, Type: typ, Default: def}
}
