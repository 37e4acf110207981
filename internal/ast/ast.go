// Package ast defines the Abstract Syntax Tree node types for Lavendish.
package ast

import (
	"bytes"
	"strings"

	"github.com/lavendeux/lavendish/internal/lexer"
)

// Node is the base interface for all AST nodes.
type Node interface {
	TokenLiteral() string
	String() string
	Pos() lexer.Position
}

// Expression represents any node that produces a value. Lavendish is
// expression-oriented: almost every node is an Expression, including
// if/match/for/block, which is why Statement is a small set.
type Expression interface {
	Node
	expressionNode()
}

// Statement represents a top-level or block-level construct that is
// not itself a value producer (though ExprStmt wraps an Expression so
// a block's trailing line can still yield a value).
type Statement interface {
	Node
	statementNode()
}

// Program is the root node: a sequence of top-level statements.
type Program struct {
	Statements []Statement
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

func (p *Program) String() string {
	var out bytes.Buffer
	for i, stmt := range p.Statements {
		if i > 0 {
			out.WriteString("\n")
		}
		out.WriteString(stmt.String())
	}
	return out.String()
}

func (p *Program) Pos() lexer.Position {
	if len(p.Statements) > 0 {
		return p.Statements[0].Pos()
	}
	return lexer.Position{Line: 1, Column: 1, Offset: 0}
}

// Identifier is a variable or function reference.
type Identifier struct {
	Token lexer.Token
	Value string
}

func (i *Identifier) expressionNode()      {}
func (i *Identifier) TokenLiteral() string { return i.Token.Literal }
func (i *Identifier) String() string       { return i.Value }
func (i *Identifier) Pos() lexer.Position  { return i.Token.Pos }

// Literal wraps any scalar literal token (int/float/fixed/currency/
// string/bool/nil/regex/named constant).
type Literal struct {
	Token lexer.Token
	Kind  string // "int", "float", "fixed", "currency", "string", "bool", "nil", "regex", "const" (Raw names pi, e or tau)
	Raw   string // raw literal text as scanned, parsed downstream by internal/value
}

func (l *Literal) expressionNode()      {}
func (l *Literal) TokenLiteral() string { return l.Token.Literal }
func (l *Literal) String() string       { return l.Raw }
func (l *Literal) Pos() lexer.Position  { return l.Token.Pos }

// ArrayLiteral is `[e1, e2, ...]`.
type ArrayLiteral struct {
	Token    lexer.Token
	Elements []Expression
}

func (a *ArrayLiteral) expressionNode()      {}
func (a *ArrayLiteral) TokenLiteral() string { return a.Token.Literal }
func (a *ArrayLiteral) Pos() lexer.Position  { return a.Token.Pos }
func (a *ArrayLiteral) String() string {
	parts := make([]string, len(a.Elements))
	for i, e := range a.Elements {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// ObjectEntry is one `key: value` pair of an ObjectLiteral.
type ObjectEntry struct {
	Key   Expression
	Value Expression
}

// ObjectLiteral is `{k1: v1, k2: v2, ...}`.
type ObjectLiteral struct {
	Token   lexer.Token
	Entries []ObjectEntry
}

func (o *ObjectLiteral) expressionNode()      {}
func (o *ObjectLiteral) TokenLiteral() string { return o.Token.Literal }
func (o *ObjectLiteral) Pos() lexer.Position  { return o.Token.Pos }
func (o *ObjectLiteral) String() string {
	parts := make([]string, len(o.Entries))
	for i, e := range o.Entries {
		parts[i] = e.Key.String() + ": " + e.Value.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// Block is `{ line* trailing-expr? }` or a bare single expression used
// in block position. Its value is Lines[len-1] if non-empty, else nil.
type Block struct {
	Token lexer.Token
	Lines []Expression
}

func (b *Block) expressionNode()      {}
func (b *Block) TokenLiteral() string { return b.Token.Literal }
func (b *Block) Pos() lexer.Position  { return b.Token.Pos }
func (b *Block) String() string {
	parts := make([]string, len(b.Lines))
	for i, l := range b.Lines {
		parts[i] = l.String()
	}
	return "{ " + strings.Join(parts, "; ") + " }"
}

// ErrorNode represents a structured parse error production: the
// parser still returns a tree, with this node standing in for the
// malformed construct and carrying the lexer's diagnostic.
type ErrorNode struct {
	Token   lexer.Token
	Message string
}

func (e *ErrorNode) expressionNode()      {}
func (e *ErrorNode) statementNode()       {}
func (e *ErrorNode) TokenLiteral() string { return e.Token.Literal }
func (e *ErrorNode) Pos() lexer.Position  { return e.Token.Pos }
func (e *ErrorNode) String() string       { return "<error: " + e.Message + ">" }
