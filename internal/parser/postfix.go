package parser

import (
	"github.com/lavendeux/lavendish/internal/ast"
	"github.com/lavendeux/lavendish/internal/lexer"
)

// parsePostfix applies the postfix chain to a term: indexing
// (`[expr]`, `[]`), calls (`name(args)`), object-mode calls
// (`recv.name(args)`), `++`/`--`, and decorate (`@name`).
func (p *Parser) parsePostfix() ast.Expression {
	expr := p.parseTerm()
	for {
		switch {
		case p.at(lexer.LBRACKET):
			expr = p.parseIndexStep(expr)
		case p.at(lexer.LPAREN):
			id, ok := expr.(*ast.Identifier)
			if !ok {
				tok := p.cur()
				p.addError("a call target must be a plain name", tok.Pos)
				return expr
			}
			expr = p.parseCallArgs(id)
		case p.at(lexer.DOT):
			expr = p.parseObjectCall(expr)
		case p.at(lexer.INC) || p.at(lexer.DEC):
			tok := p.advance()
			expr = &ast.IncDec{Token: tok, Op: tok.Literal, Operand: expr, Prefix: false}
		case p.at(lexer.AT):
			tok := p.advance()
			nameTok, _ := p.expect(lexer.IDENT)
			expr = &ast.Decorate{Token: tok, Expr: expr, Name: nameTok.Literal}
		default:
			return expr
		}
	}
}

// parseIndexStep consumes one `[...]` step, folding consecutive steps
// onto a single IndexChain rather than nesting one chain inside
// another.
func (p *Parser) parseIndexStep(base ast.Expression) ast.Expression {
	tok := p.advance() // '['
	var idx ast.Expression
	if !p.at(lexer.RBRACKET) {
		idx = p.parseExpression(precLowest)
	}
	if _, ok := p.expect(lexer.RBRACKET); !ok {
		p.addError("unclosed '['", tok.Pos)
	}
	step := ast.IndexStep{Index: idx}
	if chain, ok := base.(*ast.IndexChain); ok {
		chain.Steps = append(chain.Steps, step)
		return chain
	}
	return &ast.IndexChain{Base: base, Steps: []ast.IndexStep{step}}
}

func (p *Parser) parseCallArgs(id *ast.Identifier) ast.Expression {
	tok := p.advance() // '('
	var args []ast.Expression
	for !p.at(lexer.RPAREN) && !p.at(lexer.EOF) {
		args = append(args, p.parseExpression(precAssign))
		if p.at(lexer.COMMA) {
			p.advance()
			continue
		}
		break
	}
	if _, ok := p.expect(lexer.RPAREN); !ok {
		p.addError("unclosed '('", tok.Pos)
	}
	return &ast.Call{Token: id.Token, Name: id.Value, Args: args}
}

// parseObjectCall parses `.name(args)`, sugar for `name(receiver, args...)`.
func (p *Parser) parseObjectCall(receiver ast.Expression) ast.Expression {
	dotTok := p.advance() // '.'
	nameTok, ok := p.expect(lexer.IDENT)
	if !ok {
		return receiver
	}
	if _, ok := p.expect(lexer.LPAREN); !ok {
		return &ast.ObjectCall{Token: dotTok, Receiver: receiver, Name: nameTok.Literal}
	}
	var args []ast.Expression
	for !p.at(lexer.RPAREN) && !p.at(lexer.EOF) {
		args = append(args, p.parseExpression(precAssign))
		if p.at(lexer.COMMA) {
			p.advance()
			continue
		}
		break
	}
	if _, ok := p.expect(lexer.RPAREN); !ok {
		p.addError("unclosed '('", dotTok.Pos)
	}
	return &ast.ObjectCall{Token: dotTok, Receiver: receiver, Name: nameTok.Literal, Args: args}
}
