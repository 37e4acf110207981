package parser

import (
	"github.com/lavendeux/lavendish/internal/ast"
	"github.com/lavendeux/lavendish/internal/lexer"
)

// parseTerm parses the tightest-binding productions: literals,
// identifiers, bracketed constructs, and keyword expressions.
func (p *Parser) parseTerm() ast.Expression {
	tok := p.cur()

	if tok.Type.IsError() {
		p.advance()
		p.addError(describeLexError(tok), tok.Pos)
		return &ast.ErrorNode{Token: tok, Message: describeLexError(tok)}
	}

	switch tok.Type {
	case lexer.INT:
		p.advance()
		return &ast.Literal{Token: tok, Kind: "int", Raw: tok.Literal}
	case lexer.FLOAT:
		p.advance()
		return &ast.Literal{Token: tok, Kind: "float", Raw: tok.Literal}
	case lexer.FIXED:
		p.advance()
		return &ast.Literal{Token: tok, Kind: "fixed", Raw: tok.Literal}
	case lexer.CURRENCY:
		p.advance()
		return &ast.Literal{Token: tok, Kind: "currency", Raw: tok.Literal}
	case lexer.STRING:
		p.advance()
		return &ast.Literal{Token: tok, Kind: "string", Raw: tok.Literal}
	case lexer.REGEX:
		p.advance()
		return &ast.Literal{Token: tok, Kind: "regex", Raw: tok.Literal}
	case lexer.TRUE:
		p.advance()
		return &ast.Literal{Token: tok, Kind: "bool", Raw: "true"}
	case lexer.FALSE:
		p.advance()
		return &ast.Literal{Token: tok, Kind: "bool", Raw: "false"}
	case lexer.NIL:
		p.advance()
		return &ast.Literal{Token: tok, Kind: "nil", Raw: "nil"}
	case lexer.PI, lexer.E, lexer.TAU:
		p.advance()
		return &ast.Literal{Token: tok, Kind: "const", Raw: tok.Literal}
	case lexer.IDENT:
		p.advance()
		return &ast.Identifier{Token: tok, Value: tok.Literal}
	case lexer.UNDERSCORE:
		p.advance()
		return &ast.Identifier{Token: tok, Value: "_"}
	case lexer.LPAREN:
		return p.parseParenOrTuple()
	case lexer.LBRACKET:
		return p.parseArrayLiteral()
	case lexer.LBRACE:
		if p.looksLikeObjectLiteral() {
			return p.parseObjectLiteral()
		}
		return p.parseBlock()
	case lexer.IF:
		return p.parseIf()
	case lexer.FOR:
		return p.parseFor()
	case lexer.MATCH:
		return p.parseMatch()
	case lexer.RETURN:
		return p.parseReturn()
	case lexer.SKIP, lexer.CONTINUE:
		p.advance()
		return &ast.Skip{Token: tok}
	case lexer.BREAK:
		return p.parseBreak()
	default:
		p.advance()
		p.addError("unexpected token "+tok.Type.String()+" (\""+tok.Literal+"\")", tok.Pos)
		return &ast.ErrorNode{Token: tok, Message: "unexpected token"}
	}
}

func describeLexError(tok lexer.Token) string {
	switch tok.Type {
	case lexer.ERR_UNTERMINATED_STRING:
		return "unterminated string literal"
	case lexer.ERR_UNCLOSED_BRACKET:
		return "unclosed bracket or comment"
	case lexer.ERR_STRAY_DECORATOR:
		return "stray '@' with no decorator name"
	case lexer.ERR_BAD_MATCH_RANGE:
		return "matching or range operator at the start of a line"
	case lexer.ERR_TRAILING_BACKSLASH:
		return "trailing backslash"
	default:
		return "illegal token \"" + tok.Literal + "\""
	}
}

// looksLikeObjectLiteral disambiguates `{` between an ObjectLiteral
// (`{k: v, ...}`) and a Block (`{ line* trailing-expr? }`): it scans
// ahead, at the current brace's nesting depth, for a `:` before any
// statement separator or the matching closing `}`.
func (p *Parser) looksLikeObjectLiteral() bool {
	if p.peek(1).Type == lexer.RBRACE {
		return true // `{}` reads as an empty Object, consistent with the JSON-like literal form.
	}
	depth := 0
	for i := p.pos; i < len(p.tokens); i++ {
		switch p.tokens[i].Type {
		case lexer.LBRACE, lexer.LPAREN, lexer.LBRACKET:
			depth++
		case lexer.RBRACE, lexer.RPAREN, lexer.RBRACKET:
			depth--
			if depth == 0 {
				return false
			}
		case lexer.COLON:
			if depth == 1 {
				return true
			}
		case lexer.NEWLINE, lexer.SEMI:
			if depth == 1 {
				return false
			}
		case lexer.EOF:
			return false
		}
	}
	return false
}

func (p *Parser) parseParenOrTuple() ast.Expression {
	tok := p.advance() // '('
	if p.at(lexer.RPAREN) {
		p.advance()
		p.addError("empty parenthesized expression", tok.Pos)
		return &ast.ErrorNode{Token: tok, Message: "empty parenthesized expression"}
	}
	first := p.parseExpression(precLowest)
	if p.at(lexer.COMMA) {
		elems := []ast.Expression{first}
		for p.at(lexer.COMMA) {
			p.advance()
			if p.at(lexer.RPAREN) {
				break
			}
			elems = append(elems, p.parseExpression(precLowest))
		}
		if _, ok := p.expect(lexer.RPAREN); !ok {
			p.addError("unclosed '('", tok.Pos)
			return &ast.ErrorNode{Token: tok, Message: "unclosed '('"}
		}
		return &tupleExpr{Token: tok, Elems: elems}
	}
	if !p.at(lexer.RPAREN) {
		p.addError("unclosed '('", tok.Pos)
		return &ast.ErrorNode{Token: tok, Message: "unclosed '('"}
	}
	p.advance()
	return first
}

func (p *Parser) parseArrayLiteral() ast.Expression {
	tok := p.advance() // '['
	arr := &ast.ArrayLiteral{Token: tok}
	for !p.at(lexer.RBRACKET) && !p.at(lexer.EOF) {
		arr.Elements = append(arr.Elements, p.parseExpression(precAssign))
		if p.at(lexer.COMMA) {
			p.advance()
			continue
		}
		break
	}
	if _, ok := p.expect(lexer.RBRACKET); !ok {
		p.addError("unclosed '['", tok.Pos)
	}
	return arr
}

func (p *Parser) parseObjectLiteral() ast.Expression {
	tok := p.advance() // '{'
	obj := &ast.ObjectLiteral{Token: tok}
	for !p.at(lexer.RBRACE) && !p.at(lexer.EOF) {
		key := p.parseExpression(precAssign)
		p.expect(lexer.COLON)
		val := p.parseExpression(precAssign)
		obj.Entries = append(obj.Entries, ast.ObjectEntry{Key: key, Value: val})
		if p.at(lexer.COMMA) {
			p.advance()
			continue
		}
		break
	}
	if _, ok := p.expect(lexer.RBRACE); !ok {
		p.addError("unclosed '{'", tok.Pos)
	}
	return obj
}

// parseBlock parses `{ line* trailing-expr? }`.
func (p *Parser) parseBlock() ast.Expression {
	tok := p.advance() // '{'
	blk := &ast.Block{Token: tok}
	p.skipStatementSeparators()
	for !p.at(lexer.RBRACE) && !p.at(lexer.EOF) {
		line := p.parseExpression(precLowest)
		blk.Lines = append(blk.Lines, line)
		if p.at(lexer.RBRACE) {
			break
		}
		if !p.at(lexer.NEWLINE) && !p.at(lexer.SEMI) {
			tok2 := p.cur()
			p.addError("expected statement separator inside block, got "+tok2.Type.String(), tok2.Pos)
			break
		}
		p.skipStatementSeparators()
	}
	if !p.at(lexer.RBRACE) {
		p.addError("unclosed '{'", tok.Pos)
	} else {
		p.advance()
	}
	return blk
}

// parseBlockOrExpression parses the BLOCK production used for
// function bodies, if/else branches, for bodies, and match arm
// bodies: either `{ ... }` or a single bare expression.
func (p *Parser) parseBlockOrExpression() ast.Expression {
	if p.at(lexer.LBRACE) {
		return p.parseBlock()
	}
	return p.parseExpression(precLowest)
}

func (p *Parser) parseIf() ast.Expression {
	tok := p.advance() // 'if'
	cond := p.parseExpression(precLowest)
	p.expect(lexer.THEN)
	thenExpr := p.parseBlockOrExpression()
	p.expect(lexer.ELSE)
	elseExpr := p.parseBlockOrExpression()
	return &ast.If{Token: tok, Cond: cond, Then: thenExpr, Alt: elseExpr}
}

func (p *Parser) parseFor() ast.Expression {
	tok := p.advance() // 'for'
	var binder *ast.Identifier
	if p.at(lexer.IDENT) && p.peek(1).Type == lexer.IN {
		idTok := p.advance()
		binder = &ast.Identifier{Token: idTok, Value: idTok.Literal}
		p.advance() // 'in'
	}
	iterable := p.parseExpression(precLowest)
	var guard ast.Expression
	if p.at(lexer.IF) {
		p.advance()
		guard = p.parseExpression(precLowest)
	}
	p.expect(lexer.DO)
	body := p.parseBlockOrExpression()
	return &ast.ForLoop{Token: tok, Binder: binder, Iterable: iterable, Guard: guard, Body: body}
}

func (p *Parser) parseMatch() ast.Expression {
	tok := p.advance() // 'match'
	subject := p.parseExpression(precLowest)
	p.expect(lexer.LBRACE)
	m := &ast.Match{Token: tok, Subject: subject}
	p.skipStatementSeparators()
	for !p.at(lexer.RBRACE) && !p.at(lexer.EOF) {
		arm := ast.MatchArm{}
		if p.at(lexer.UNDERSCORE) {
			p.advance()
			arm.Wildcard = true
		} else {
			arm.Values = append(arm.Values, p.parseExpression(precCast))
			for p.at(lexer.COMMA) {
				p.advance()
				arm.Values = append(arm.Values, p.parseExpression(precCast))
			}
		}
		p.expect(lexer.ARROW)
		arm.Body = p.parseBlockOrExpression()
		m.Arms = append(m.Arms, arm)
		if p.at(lexer.COMMA) || p.at(lexer.NEWLINE) || p.at(lexer.SEMI) {
			p.skipArmSeparators()
			continue
		}
		break
	}
	p.expect(lexer.RBRACE)
	return m
}

func (p *Parser) skipArmSeparators() {
	for p.at(lexer.NEWLINE) || p.at(lexer.SEMI) || p.at(lexer.COMMA) {
		p.advance()
	}
}

func (p *Parser) parseReturn() ast.Expression {
	tok := p.advance()
	if p.hasOperand() {
		payload := p.parseExpression(precTernary)
		return &ast.Return{Token: tok, Payload: payload}
	}
	return &ast.Return{Token: tok}
}

func (p *Parser) parseBreak() ast.Expression {
	tok := p.advance()
	if p.hasOperand() {
		payload := p.parseExpression(precTernary)
		return &ast.Break{Token: tok, Payload: payload}
	}
	return &ast.Break{Token: tok}
}

// hasOperand reports whether the current token could begin an
// expression, used to tell bare `return`/`break` apart from their
// payload-carrying forms.
func (p *Parser) hasOperand() bool {
	switch p.cur().Type {
	case lexer.NEWLINE, lexer.SEMI, lexer.EOF, lexer.RBRACE, lexer.RPAREN,
		lexer.RBRACKET, lexer.COMMA, lexer.ARROW, lexer.ELSE, lexer.THEN,
		lexer.DO, lexer.COLON:
		return false
	default:
		return true
	}
}
