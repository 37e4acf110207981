package parser

import (
	"github.com/lavendeux/lavendish/internal/ast"
	"github.com/lavendeux/lavendish/internal/lexer"
)

// Precedence levels, loosest to tightest, mirroring the stratification
// in spec.md §4.2. Each level's parse function calls the next tighter
// level for its operands; see individual comments for associativity.
const (
	precLowest = iota
	precAssign
	precTernary
	precOr
	precAnd
	precEquality
	precBitwise
	precShift
	precAdditive
	precMultiplicative
	precExponent
	precMatching
	precRange
	precCast
	precPrefix
	precPostfix
)

// parseExpression is the generic entry point, starting at the given
// minimum precedence level. Most callers pass precLowest; narrower
// contexts pass a tighter floor (e.g. a `return`/`break` payload
// passes precTernary to exclude assignment).
func (p *Parser) parseExpression(minPrec int) ast.Expression {
	switch {
	case minPrec <= precAssign:
		return p.parseAssignment()
	case minPrec <= precTernary:
		return p.parseTernary()
	case minPrec <= precOr:
		return p.parseOr()
	case minPrec <= precAnd:
		return p.parseAnd()
	case minPrec <= precEquality:
		return p.parseEquality()
	case minPrec <= precBitwise:
		return p.parseBitwise()
	case minPrec <= precShift:
		return p.parseShift()
	case minPrec <= precAdditive:
		return p.parseAdditive()
	case minPrec <= precMultiplicative:
		return p.parseMultiplicative()
	case minPrec <= precExponent:
		return p.parseExponent()
	case minPrec <= precMatching:
		return p.parseMatching()
	case minPrec <= precRange:
		return p.parseRangeExpr()
	case minPrec <= precCast:
		return p.parseCast()
	case minPrec <= precPrefix:
		return p.parsePrefix()
	default:
		return p.parsePostfix()
	}
}

var compoundAssignOps = map[lexer.TokenType]string{
	lexer.PLUSEQ: "+", lexer.MINUSEQ: "-", lexer.STAREQ: "*", lexer.SLASHEQ: "/",
	lexer.PERCENTEQ: "%", lexer.POWEQ: "**", lexer.AMPEQ: "&", lexer.PIPEEQ: "|",
	lexer.CARETEQ: "^", lexer.SHLEQ: "<<", lexer.SHREQ: ">>", lexer.ANDEQ: "&&", lexer.OREQ: "||",
}

// parseAssignment is the loosest level: `target = expr` and the
// compound-assignment forms, right-associative.
func (p *Parser) parseAssignment() ast.Expression {
	left := p.parseTernary()

	if p.at(lexer.ASSIGN) {
		tok := p.advance()
		target, ok := exprToTarget(left)
		if !ok {
			p.addError("left-hand side of '=' is not an assignable target", tok.Pos)
			return left
		}
		rhs := p.parseAssignment()
		return &ast.Assign{Token: tok, Target: target, Op: "", Expr: rhs}
	}
	if op, ok := compoundAssignOps[p.cur().Type]; ok {
		tok := p.advance()
		target, okt := exprToTarget(left)
		if !okt {
			p.addError("left-hand side of '"+op+"=' is not an assignable target", tok.Pos)
			return left
		}
		rhs := p.parseAssignment()
		return &ast.Assign{Token: tok, Target: target, Op: op, Expr: rhs}
	}
	return left
}

// exprToTarget converts an already-parsed expression into an
// AssignTarget, per the three assignable shapes in spec.md §4.3:
// identifier, index-chain, or destructure-tuple (the latter is
// produced directly by parseParenOrTuple, as *tupleExpr).
func exprToTarget(e ast.Expression) (ast.AssignTarget, bool) {
	switch t := e.(type) {
	case *ast.Identifier:
		return ast.AssignTarget{Kind: ast.TargetIdentifier, Identifier: t}, true
	case *ast.IndexChain:
		return ast.AssignTarget{Kind: ast.TargetIndexChain, IndexChain: t}, true
	case *tupleExpr:
		names := make([]*ast.Identifier, 0, len(t.Elems))
		for _, el := range t.Elems {
			id, ok := el.(*ast.Identifier)
			if !ok {
				return ast.AssignTarget{}, false
			}
			names = append(names, id)
		}
		return ast.AssignTarget{Kind: ast.TargetDestructure, Names: names}, true
	default:
		return ast.AssignTarget{}, false
	}
}

// parseTernary is `cond ? then : else`, right-associative.
func (p *Parser) parseTernary() ast.Expression {
	cond := p.parseOr()
	if !p.at(lexer.QUESTION) {
		return cond
	}
	tok := p.advance()
	thenExpr := p.parseTernary()
	p.expect(lexer.COLON)
	elseExpr := p.parseTernary()
	return &ast.Ternary{Token: tok, Cond: cond, Then: thenExpr, Else: elseExpr}
}

func (p *Parser) parseLeftAssocBinary(sub func() ast.Expression, ops map[lexer.TokenType]string) ast.Expression {
	left := sub()
	for {
		op, ok := ops[p.cur().Type]
		if !ok {
			return left
		}
		tok := p.advance()
		right := sub()
		left = &ast.Binary{Token: tok, Op: op, Left: left, Right: right}
	}
}

var orOps = map[lexer.TokenType]string{lexer.OR: "||"}

func (p *Parser) parseOr() ast.Expression {
	return p.parseLeftAssocBinary(p.parseAnd, orOps)
}

var andOps = map[lexer.TokenType]string{lexer.AND: "&&"}

func (p *Parser) parseAnd() ast.Expression {
	return p.parseLeftAssocBinary(p.parseEquality, andOps)
}

var equalityOps = map[lexer.TokenType]string{
	lexer.EQ: "==", lexer.NE: "!=", lexer.SEQ: "===", lexer.SNE: "!==",
	lexer.LT: "<", lexer.GT: ">", lexer.LE: "<=", lexer.GE: ">=",
}

func (p *Parser) parseEquality() ast.Expression {
	return p.parseLeftAssocBinary(p.parseBitwise, equalityOps)
}

var bitwiseOps = map[lexer.TokenType]string{
	lexer.PIPE: "|", lexer.CARET: "^", lexer.AMP: "&",
}

func (p *Parser) parseBitwise() ast.Expression {
	return p.parseLeftAssocBinary(p.parseShift, bitwiseOps)
}

var shiftOps = map[lexer.TokenType]string{
	lexer.SHL: "<<", lexer.SHR: ">>", lexer.LLSHIFT: "llshift", lexer.LRSHIFT: "lrshift",
}

func (p *Parser) parseShift() ast.Expression {
	return p.parseLeftAssocBinary(p.parseAdditive, shiftOps)
}

var additiveOps = map[lexer.TokenType]string{lexer.PLUS: "+", lexer.MINUS: "-"}

func (p *Parser) parseAdditive() ast.Expression {
	return p.parseLeftAssocBinary(p.parseMultiplicative, additiveOps)
}

var multiplicativeOps = map[lexer.TokenType]string{
	lexer.ASTERISK: "*", lexer.SLASH: "/", lexer.PERCENT: "%",
}

func (p *Parser) parseMultiplicative() ast.Expression {
	return p.parseLeftAssocBinary(p.parseExponent, multiplicativeOps)
}

// parseExponent is `**`, right-associative.
func (p *Parser) parseExponent() ast.Expression {
	left := p.parseMatching()
	if !p.at(lexer.POW) {
		return left
	}
	tok := p.advance()
	right := p.parseExponent()
	return &ast.Binary{Token: tok, Op: "**", Left: left, Right: right}
}

var matchingOps = map[lexer.TokenType]string{
	lexer.CONTAINS: "contains", lexer.MATCHES: "matches", lexer.IS: "is",
	lexer.STARTSWITH: "starts_with", lexer.ENDSWITH: "ends_with",
}

func (p *Parser) parseMatching() ast.Expression {
	return p.parseLeftAssocBinary(p.parseRangeExpr, matchingOps)
}

// parseRangeExpr is `start..end`.
func (p *Parser) parseRangeExpr() ast.Expression {
	left := p.parseCast()
	if !p.at(lexer.DOTDOT) {
		return left
	}
	tok := p.advance()
	right := p.parseCast()
	return &ast.Range{Token: tok, Start: left, End: right}
}

// parseCast is `expr as Kind`, folded left (chained casts apply in
// source order: `x as int as float` is `(x as int) as float`).
func (p *Parser) parseCast() ast.Expression {
	left := p.parsePrefix()
	for p.at(lexer.AS) {
		tok := p.advance()
		kindTok, _ := p.expect(lexer.IDENT)
		left = &ast.Cast{Token: tok, Expr: left, Target: kindTok.Literal}
	}
	return left
}

var prefixOps = map[lexer.TokenType]string{
	lexer.BANG: "!", lexer.TILDE: "~", lexer.MINUS: "-",
}

// parsePrefix handles `!`, `~`, unary `-`, `++x`/`--x`, and
// `del/delete/unset` used in expression position (e.g. inside a block
// line rather than as the statement form).
func (p *Parser) parsePrefix() ast.Expression {
	if op, ok := prefixOps[p.cur().Type]; ok {
		tok := p.advance()
		operand := p.parsePrefix()
		return &ast.Unary{Token: tok, Op: op, Operand: operand}
	}
	if p.at(lexer.INC) || p.at(lexer.DEC) {
		tok := p.advance()
		operand := p.parsePrefix()
		return &ast.IncDec{Token: tok, Op: tok.Literal, Operand: operand, Prefix: true}
	}
	if p.at(lexer.DEL) || p.at(lexer.DELETE) || p.at(lexer.UNSET) {
		tok := p.advance()
		target := p.parsePrefix()
		return &ast.Del{Token: tok, Target: target}
	}
	return p.parsePostfix()
}
