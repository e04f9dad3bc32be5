package parser

import (
	"github.com/wabbitlang/wabbit/ast"
	"github.com/wabbitlang/wabbit/lexer"
)

// parseExpression is the entry point for expression parsing; it
// implements the seven precedence levels of spec §4.2, lowest first.
func (p *Parser) parseExpression() ast.Expr {
	return p.parseAssignment()
}

// parseAssignment is level 1: logical_or ( '=' logical_or )?.
// Exactly one '=' is admitted per expression — the right-hand side is
// itself a logical_or, not another assignment, so "x = y = 1" is a
// syntax error rather than silently chaining.
func (p *Parser) parseAssignment() ast.Expr {
	left := p.parseLogicalOr()
	if tok, ok := p.accept(lexer.ASSIGN); ok {
		value := p.parseLogicalOr()
		return &ast.Assignment{Line: tok.Line, Target: left, Value: value}
	}
	return left
}

// parseLogicalOr is level 2: logical_and ( '||' logical_and )*.
func (p *Parser) parseLogicalOr() ast.Expr {
	left := p.parseLogicalAnd()
	for p.at(lexer.LOR) {
		tok := p.cur
		p.advance()
		right := p.parseLogicalAnd()
		left = &ast.LogicalOp{Line: tok.Line, Op: string(tok.Type), Left: left, Right: right}
	}
	return left
}

// parseLogicalAnd is level 3: relational ( '&&' relational )*.
func (p *Parser) parseLogicalAnd() ast.Expr {
	left := p.parseRelational()
	for p.at(lexer.LAND) {
		tok := p.cur
		p.advance()
		right := p.parseRelational()
		left = &ast.LogicalOp{Line: tok.Line, Op: string(tok.Type), Left: left, Right: right}
	}
	return left
}

var relOps = map[lexer.TokenType]bool{
	lexer.LT: true, lexer.LE: true, lexer.GT: true, lexer.GE: true,
	lexer.EQ: true, lexer.NE: true,
}

// parseRelational is level 4: additive ( relop additive )?, checked
// to be non-associative: "a < b < c" must fail rather than be
// silently read left-associatively (spec §8 boundary behavior).
func (p *Parser) parseRelational() ast.Expr {
	left := p.parseAdditive()
	if relOps[p.cur.Type] {
		tok := p.cur
		p.advance()
		right := p.parseAdditive()
		left = &ast.RelOp{Line: tok.Line, Op: string(tok.Type), Left: left, Right: right}
		if relOps[p.cur.Type] {
			p.fail("chained comparisons are not allowed")
		}
	}
	return left
}

// parseAdditive is level 5: multiplicative ( ('+'|'-') multiplicative )*.
func (p *Parser) parseAdditive() ast.Expr {
	left := p.parseMultiplicative()
	for p.at(lexer.PLUS) || p.at(lexer.MINUS) {
		tok := p.cur
		p.advance()
		right := p.parseMultiplicative()
		left = &ast.BinOp{Line: tok.Line, Op: string(tok.Type), Left: left, Right: right}
	}
	return left
}

// parseMultiplicative is level 6: factor ( ('*'|'/') factor )*.
func (p *Parser) parseMultiplicative() ast.Expr {
	left := p.parseFactor()
	for p.at(lexer.TIMES) || p.at(lexer.DIVIDE) {
		tok := p.cur
		p.advance()
		right := p.parseFactor()
		left = &ast.BinOp{Line: tok.Line, Op: string(tok.Type), Left: left, Right: right}
	}
	return left
}

// parseFactor is level 7: literal | Name | Name(args) | unary-op
// factor | '(' expression ')' | '{' block-expr '}'.
func (p *Parser) parseFactor() ast.Expr {
	tok := p.cur
	switch tok.Type {
	case lexer.INTEGER:
		p.advance()
		return &ast.IntegerLit{Line: tok.Line, Lexeme: tok.Text}
	case lexer.FLOAT:
		p.advance()
		return &ast.FloatLit{Line: tok.Line, Lexeme: tok.Text}
	case lexer.CHAR:
		p.advance()
		return &ast.CharLit{Line: tok.Line, Lexeme: tok.Text}
	case lexer.TRUE:
		p.advance()
		return &ast.BoolLit{Line: tok.Line, Value: true}
	case lexer.FALSE:
		p.advance()
		return &ast.BoolLit{Line: tok.Line, Value: false}
	case lexer.NAME:
		p.advance()
		if _, ok := p.accept(lexer.LPAREN); ok {
			args := p.parseArgs()
			p.expect(lexer.RPAREN)
			return &ast.Call{Line: tok.Line, Callee: tok.Text, Args: args}
		}
		return &ast.Name{Line: tok.Line, Ident: tok.Text}
	case lexer.MINUS, lexer.PLUS, lexer.LNOT:
		p.advance()
		operand := p.parseFactor()
		return &ast.UnaryOp{Line: tok.Line, Op: string(tok.Type), Operand: operand}
	case lexer.LPAREN:
		p.advance()
		inner := p.parseExpression()
		p.expect(lexer.RPAREN)
		return &ast.Grouped{Line: tok.Line, Inner: inner}
	case lexer.LBRACE:
		return p.parseCompound()
	default:
		p.fail("unexpected token %s %q in expression", tok.Type, tok.Text)
		panic("unreachable")
	}
}

func (p *Parser) parseArgs() []ast.Expr {
	if p.at(lexer.RPAREN) {
		return nil
	}
	args := []ast.Expr{p.parseExpression()}
	for {
		if _, ok := p.accept(lexer.COMMA); !ok {
			break
		}
		args = append(args, p.parseExpression())
	}
	return args
}

// parseCompound parses `{ stmts...; tail-expr-stmt }`: its value is
// the value of the trailing expression statement, which is mandatory
// (spec §4.2).
func (p *Parser) parseCompound() ast.Expr {
	line := p.expect(lexer.LBRACE).Line
	var stmts []ast.Stmt
	for !p.at(lexer.RBRACE) {
		stmts = append(stmts, p.parseStatement())
	}
	p.expect(lexer.RBRACE)
	if len(stmts) == 0 {
		p.fail("a compound expression cannot be empty")
	}
	if _, ok := stmts[len(stmts)-1].(*ast.ExprStmt); !ok {
		p.fail("the last statement of a compound expression must be an expression statement")
	}
	return &ast.Compound{Line: line, Stmts: stmts}
}
