// Package parser turns a Lavendish token stream into an AST, following
// the precedence-stratified grammar of spec.md §4.2. Every input
// parses to a tree: ill-formed constructs are captured as
// *ast.ErrorNode values carrying a diagnostic and a source span rather
// than aborting the parse.
package parser

import (
	"fmt"

	"github.com/lavendeux/lavendish/internal/ast"
	"github.com/lavendeux/lavendish/internal/lexer"
)

// ParseError is one parser diagnostic, collected alongside the tree so
// a host can report every problem in a single pass.
type ParseError struct {
	Message string
	Pos     lexer.Position
}

func (e ParseError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Pos.Line, e.Pos.Column, e.Message)
}

// Parser is a token-buffered recursive-descent parser. Buffering the
// whole token stream up front (rather than streaming from the lexer)
// keeps disambiguation of `{` (Block vs. ObjectLiteral) and similar
// lookahead-heavy productions simple, and Lavendish programs are
// small and single-line-biased so the memory cost is negligible.
type Parser struct {
	tokens []lexer.Token
	pos    int
	errors []ParseError
}

// New tokenizes src in full and prepares a Parser over the result.
func New(src string, opts ...lexer.Option) *Parser {
	l := lexer.New(src, opts...)
	var toks []lexer.Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == lexer.EOF {
			break
		}
	}
	return &Parser{tokens: toks}
}

// Errors returns every diagnostic recorded during parsing.
func (p *Parser) Errors() []ParseError { return p.errors }

func (p *Parser) addError(msg string, pos lexer.Position) {
	p.errors = append(p.errors, ParseError{Message: msg, Pos: pos})
}

func (p *Parser) cur() lexer.Token {
	if p.pos >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // EOF
	}
	return p.tokens[p.pos]
}

func (p *Parser) peek(n int) lexer.Token {
	idx := p.pos + n
	if idx >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[idx]
}

func (p *Parser) advance() lexer.Token {
	tok := p.cur()
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

func (p *Parser) at(tt lexer.TokenType) bool { return p.cur().Type == tt }

func (p *Parser) expect(tt lexer.TokenType) (lexer.Token, bool) {
	if p.at(tt) {
		return p.advance(), true
	}
	tok := p.cur()
	p.addError(fmt.Sprintf("expected %s, got %s (%q)", tt, tok.Type, tok.Literal), tok.Pos)
	return tok, false
}

// skipStatementSeparators consumes any run of NEWLINE/SEMI tokens,
// treating consecutive separators (blank lines, `;;`) as one boundary.
func (p *Parser) skipStatementSeparators() {
	for p.at(lexer.NEWLINE) || p.at(lexer.SEMI) {
		p.advance()
	}
}

// ParseProgram parses the entire token stream into a Program.
func ParseProgram(src string, opts ...lexer.Option) (*ast.Program, []ParseError) {
	p := New(src, opts...)
	prog := &ast.Program{}
	p.skipStatementSeparators()
	for !p.at(lexer.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		}
		if p.at(lexer.EOF) {
			break
		}
		if !p.at(lexer.NEWLINE) && !p.at(lexer.SEMI) {
			tok := p.cur()
			p.addError(fmt.Sprintf("expected statement separator, got %s (%q)", tok.Type, tok.Literal), tok.Pos)
			p.advance() // avoid looping forever on unexpected input
		}
		p.skipStatementSeparators()
	}
	return prog, p.errors
}

// parseStatement parses one top-level or block-level line: a function
// definition, a deletion, or a (possibly decorated) expression
// statement.
func (p *Parser) parseStatement() ast.Statement {
	if p.looksLikeFunctionDef() {
		return p.parseFunctionDef()
	}
	if p.at(lexer.DEL) || p.at(lexer.DELETE) || p.at(lexer.UNSET) {
		return p.parseDel()
	}
	return p.parseExprStmt()
}

// looksLikeFunctionDef detects `name(...)  [: Kind]  =  body` and
// `@name(...)  =  body` without committing to consuming tokens, since
// a bare call expression (`foo(1,2)`) shares its prefix with a
// definition.
func (p *Parser) looksLikeFunctionDef() bool {
	start := p.pos
	if p.at(lexer.AT) {
		start++ // @name(...)
	}
	if p.tokens[min(start, len(p.tokens)-1)].Type != lexer.IDENT {
		return false
	}
	if p.tokens[min(start+1, len(p.tokens)-1)].Type != lexer.LPAREN {
		return false
	}
	// Scan to the matching ')' and check for a following '=' (directly,
	// or after a ': Kind' return annotation), tracking nested brackets
	// so a call argument like `f(g(x)) = ...` (invalid, but harmless to
	// misdetect) doesn't confuse the scan.
	depth := 0
	i := start + 1
	for i < len(p.tokens) {
		switch p.tokens[i].Type {
		case lexer.LPAREN, lexer.LBRACKET, lexer.LBRACE:
			depth++
		case lexer.RPAREN, lexer.RBRACKET, lexer.RBRACE:
			depth--
			if depth == 0 {
				i++
				goto afterParen
			}
		case lexer.EOF, lexer.NEWLINE, lexer.SEMI:
			return false
		}
		i++
	}
	return false
afterParen:
	if i < len(p.tokens) && p.tokens[i].Type == lexer.COLON {
		i++
		for i < len(p.tokens) && p.tokens[i].Type == lexer.IDENT {
			i++
			break
		}
	}
	return i < len(p.tokens) && p.tokens[i].Type == lexer.ASSIGN
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// parseFunctionDef parses `[@]name(a[:T], ...)[: R] = BLOCK`.
func (p *Parser) parseFunctionDef() ast.Statement {
	tok := p.cur()
	decorator := false
	if p.at(lexer.AT) {
		decorator = true
		p.advance()
	}
	nameTok, _ := p.expect(lexer.IDENT)
	p.expect(lexer.LPAREN)
	var params []ast.Param
	for !p.at(lexer.RPAREN) && !p.at(lexer.EOF) {
		nameT, _ := p.expect(lexer.IDENT)
		param := ast.Param{Name: ast.Identifier{Token: nameT, Value: nameT.Literal}}
		if p.at(lexer.COLON) {
			p.advance()
			kindT, _ := p.expect(lexer.IDENT)
			param.Kind = kindT.Literal
		}
		params = append(params, param)
		if p.at(lexer.COMMA) {
			p.advance()
		} else {
			break
		}
	}
	p.expect(lexer.RPAREN)
	var retKind string
	if p.at(lexer.COLON) {
		p.advance()
		kindT, _ := p.expect(lexer.IDENT)
		retKind = kindT.Literal
	}
	p.expect(lexer.ASSIGN)
	body := p.parseBlockOrExpression()
	return &ast.FunctionDef{
		Token: tok, Name: nameTok.Literal, Params: params,
		ReturnKind: retKind, Body: body, Decorator: decorator,
	}
}

// parseDel parses `del/delete/unset target`.
func (p *Parser) parseDel() ast.Statement {
	tok := p.advance()
	target := p.parseExpression(precAssign)
	return &ast.Del{Token: tok, Target: target}
}

// parseExprStmt parses an expression statement, hoisting a trailing
// decorate onto ExprStmt.Decorator for host convenience while keeping
// the full Decorate node as Expr.
func (p *Parser) parseExprStmt() ast.Statement {
	tok := p.cur()
	expr := p.parseExpression(precLowest)
	stmt := &ast.ExprStmt{Token: tok, Expr: expr}
	if dec, ok := expr.(*ast.Decorate); ok {
		stmt.Decorator = dec.Name
	}
	return stmt
}
