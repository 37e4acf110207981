package ast

import (
	"strings"

	"github.com/lavendeux/lavendish/internal/lexer"
)

// If is `if cond then conseq else alt`. Chained `else if` is modeled
// by nesting another *If as Alt. Both branches are mandatory in
// source (the parser rejects a missing `else`); Alt is never nil.
type If struct {
	Token     lexer.Token
	Cond      Expression
	Then      Expression
	Alt       Expression
}

func (i *If) expressionNode()      {}
func (i *If) TokenLiteral() string { return i.Token.Literal }
func (i *If) Pos() lexer.Position  { return i.Token.Pos }
func (i *If) String() string {
	return "if " + i.Cond.String() + " then " + i.Then.String() + " else " + i.Alt.String()
}

// MatchArm is one arm of a Match expression. Wildcard is true for the
// mandatory default arm (`_`), in which case Values is empty.
type MatchArm struct {
	Values   []Expression
	Body     Expression
	Wildcard bool
}

// Match is `match subject { v1 => e1, v2, v3 => e2, _ => edefault }`.
type Match struct {
	Token   lexer.Token
	Subject Expression
	Arms    []MatchArm
}

func (m *Match) expressionNode()      {}
func (m *Match) TokenLiteral() string { return m.Token.Literal }
func (m *Match) Pos() lexer.Position  { return m.Token.Pos }
func (m *Match) String() string {
	var sb strings.Builder
	sb.WriteString("match ")
	sb.WriteString(m.Subject.String())
	sb.WriteString(" { ")
	for _, arm := range m.Arms {
		if arm.Wildcard {
			sb.WriteString("_")
		} else {
			parts := make([]string, len(arm.Values))
			for i, v := range arm.Values {
				parts[i] = v.String()
			}
			sb.WriteString(strings.Join(parts, ", "))
		}
		sb.WriteString(" => ")
		sb.WriteString(arm.Body.String())
		sb.WriteString("; ")
	}
	sb.WriteString("}")
	return sb.String()
}

// ForLoop is `for [binder in] iterable [if guard] do body`. Binder may
// be nil for a bare iteration count/range with no bound variable.
type ForLoop struct {
	Token    lexer.Token
	Binder   *Identifier
	Iterable Expression
	Guard    Expression // nil if no `if guard` clause
	Body     Expression
}

func (f *ForLoop) expressionNode()      {}
func (f *ForLoop) TokenLiteral() string { return f.Token.Literal }
func (f *ForLoop) Pos() lexer.Position  { return f.Token.Pos }
func (f *ForLoop) String() string {
	var sb strings.Builder
	sb.WriteString("for ")
	if f.Binder != nil {
		sb.WriteString(f.Binder.String())
		sb.WriteString(" in ")
	}
	sb.WriteString(f.Iterable.String())
	if f.Guard != nil {
		sb.WriteString(" if ")
		sb.WriteString(f.Guard.String())
	}
	sb.WriteString(" do ")
	sb.WriteString(f.Body.String())
	return sb.String()
}

// Break is `break` or `break payload`, unwinding the nearest loop.
type Break struct {
	Token   lexer.Token
	Payload Expression // nil if bare `break`
}

func (b *Break) expressionNode()      {}
func (b *Break) TokenLiteral() string { return b.Token.Literal }
func (b *Break) Pos() lexer.Position  { return b.Token.Pos }
func (b *Break) String() string {
	if b.Payload != nil {
		return "break " + b.Payload.String()
	}
	return "break"
}

// Skip is `skip`/`continue`, eliding the current loop iteration.
type Skip struct {
	Token lexer.Token
}

func (s *Skip) expressionNode()      {}
func (s *Skip) TokenLiteral() string { return s.Token.Literal }
func (s *Skip) Pos() lexer.Position  { return s.Token.Pos }
func (s *Skip) String() string       { return "skip" }

// Return is `return payload`, unwinding to the enclosing function call.
type Return struct {
	Token   lexer.Token
	Payload Expression // nil if bare `return`
}

func (r *Return) expressionNode()      {}
func (r *Return) TokenLiteral() string { return r.Token.Literal }
func (r *Return) Pos() lexer.Position  { return r.Token.Pos }
func (r *Return) String() string {
	if r.Payload != nil {
		return "return " + r.Payload.String()
	}
	return "return"
}
