package ast

import (
	"strings"

	"github.com/lavendeux/lavendish/internal/lexer"
)

// Param is one formal parameter of a FunctionDef: `name[:Kind]`.
type Param struct {
	Name Identifier
	Kind string // declared argument kind, empty if untyped ("Any")
}

// FunctionDef is `name(a[:T], b[:T], ...)[: R] = BLOCK`, or, when
// Decorator is true, `@name(a) = BLOCK`.
type FunctionDef struct {
	Token      lexer.Token
	Name       string
	Params     []Param
	ReturnKind string // declared return kind, empty if untyped
	Body       Expression
	Decorator  bool
}

func (f *FunctionDef) statementNode()      {}
func (f *FunctionDef) TokenLiteral() string { return f.Token.Literal }
func (f *FunctionDef) Pos() lexer.Position  { return f.Token.Pos }
func (f *FunctionDef) String() string {
	var sb strings.Builder
	if f.Decorator {
		sb.WriteString("@")
	}
	sb.WriteString(f.Name)
	sb.WriteString("(")
	parts := make([]string, len(f.Params))
	for i, p := range f.Params {
		if p.Kind != "" {
			parts[i] = p.Name.Value + ":" + p.Kind
		} else {
			parts[i] = p.Name.Value
		}
	}
	sb.WriteString(strings.Join(parts, ", "))
	sb.WriteString(")")
	if f.ReturnKind != "" {
		sb.WriteString(": " + f.ReturnKind)
	}
	sb.WriteString(" = ")
	sb.WriteString(f.Body.String())
	return sb.String()
}

// AssignTargetKind distinguishes the three assignable target shapes.
type AssignTargetKind int

const (
	TargetIdentifier AssignTargetKind = iota
	TargetIndexChain
	TargetDestructure
)

// AssignTarget is the left-hand side of an Assign statement.
type AssignTarget struct {
	Kind       AssignTargetKind
	Identifier *Identifier   // TargetIdentifier
	IndexChain *IndexChain   // TargetIndexChain (Chain ends the assignment path)
	Names      []*Identifier // TargetDestructure
}

func (t AssignTarget) String() string {
	switch t.Kind {
	case TargetIdentifier:
		return t.Identifier.String()
	case TargetIndexChain:
		return t.IndexChain.String()
	case TargetDestructure:
		parts := make([]string, len(t.Names))
		for i, n := range t.Names {
			parts[i] = n.String()
		}
		return "(" + strings.Join(parts, ", ") + ")"
	default:
		return "?"
	}
}

// Assign is `target op= expr` for op in {"", "+", "-", "*", "/", "%",
// "**", "&", "|", "^", "<<", ">>", "&&", "||"} (empty means plain `=`).
type Assign struct {
	Token  lexer.Token
	Target AssignTarget
	Op     string
	Expr   Expression
}

func (a *Assign) expressionNode()      {}
func (a *Assign) statementNode()       {}
func (a *Assign) TokenLiteral() string { return a.Token.Literal }
func (a *Assign) Pos() lexer.Position  { return a.Token.Pos }
func (a *Assign) String() string {
	return a.Target.String() + " " + a.Op + "= " + a.Expr.String()
}

// Del is `del/delete/unset target`.
type Del struct {
	Token  lexer.Token
	Target Expression
}

func (d *Del) expressionNode()      {}
func (d *Del) statementNode()       {}
func (d *Del) TokenLiteral() string { return d.Token.Literal }
func (d *Del) Pos() lexer.Position  { return d.Token.Pos }
func (d *Del) String() string       { return "del " + d.Target.String() }

// ExprStmt wraps a top-level expression, optionally decorated with
// `@name` for formatting of its result.
type ExprStmt struct {
	Token     lexer.Token
	Expr      Expression
	Decorator string // empty if undecorated
}

func (e *ExprStmt) statementNode()       {}
func (e *ExprStmt) TokenLiteral() string { return e.Token.Literal }
func (e *ExprStmt) Pos() lexer.Position  { return e.Token.Pos }
func (e *ExprStmt) String() string {
	if e.Decorator != "" {
		return e.Expr.String() + " @" + e.Decorator
	}
	return e.Expr.String()
}
