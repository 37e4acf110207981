package ast

import (
	"strings"

	"github.com/lavendeux/lavendish/internal/lexer"
)

// Ternary is `cond ? thenExpr : elseExpr`.
type Ternary struct {
	Token lexer.Token
	Cond  Expression
	Then  Expression
	Else  Expression
}

func (t *Ternary) expressionNode()      {}
func (t *Ternary) TokenLiteral() string { return t.Token.Literal }
func (t *Ternary) Pos() lexer.Position  { return t.Token.Pos }
func (t *Ternary) String() string {
	return "(" + t.Cond.String() + " ? " + t.Then.String() + " : " + t.Else.String() + ")"
}

// Binary is any two-operand operator node: arithmetic, bitwise, shift,
// comparison/equality, boolean, or matching (`contains`/`matches`/
// `is`/`starts_with`/`ends_with`).
type Binary struct {
	Token lexer.Token
	Op    string
	Left  Expression
	Right Expression
}

func (b *Binary) expressionNode()      {}
func (b *Binary) TokenLiteral() string { return b.Token.Literal }
func (b *Binary) Pos() lexer.Position  { return b.Token.Pos }
func (b *Binary) String() string {
	return "(" + b.Left.String() + " " + b.Op + " " + b.Right.String() + ")"
}

// Unary is a prefix operator node: `!`, `~`, unary `-`.
type Unary struct {
	Token    lexer.Token
	Op       string
	Operand  Expression
}

func (u *Unary) expressionNode()      {}
func (u *Unary) TokenLiteral() string { return u.Token.Literal }
func (u *Unary) Pos() lexer.Position  { return u.Token.Pos }
func (u *Unary) String() string       { return "(" + u.Op + u.Operand.String() + ")" }

// Cast is `expr as Kind`.
type Cast struct {
	Token  lexer.Token
	Expr   Expression
	Target string
}

func (c *Cast) expressionNode()      {}
func (c *Cast) TokenLiteral() string { return c.Token.Literal }
func (c *Cast) Pos() lexer.Position  { return c.Token.Pos }
func (c *Cast) String() string       { return "(" + c.Expr.String() + " as " + c.Target + ")" }

// Range is `start..end` (inclusive both ends).
type Range struct {
	Token lexer.Token
	Start Expression
	End   Expression
}

func (r *Range) expressionNode()      {}
func (r *Range) TokenLiteral() string { return r.Token.Literal }
func (r *Range) Pos() lexer.Position  { return r.Token.Pos }
func (r *Range) String() string       { return r.Start.String() + ".." + r.End.String() }

// IndexStep is one `[expr]` or empty `[]` link in an index chain.
type IndexStep struct {
	Token lexer.Token
	Index Expression // nil for the empty-brackets last/append form
}

// IndexChain is `base[i][j]...`.
type IndexChain struct {
	Token lexer.Token
	Base  Expression
	Steps []IndexStep
}

func (x *IndexChain) expressionNode()      {}
func (x *IndexChain) TokenLiteral() string { return x.Token.Literal }
func (x *IndexChain) Pos() lexer.Position  { return x.Token.Pos }
func (x *IndexChain) String() string {
	var sb strings.Builder
	sb.WriteString(x.Base.String())
	for _, s := range x.Steps {
		sb.WriteString("[")
		if s.Index != nil {
			sb.WriteString(s.Index.String())
		}
		sb.WriteString("]")
	}
	return sb.String()
}

// Call is `name(args...)`.
type Call struct {
	Token lexer.Token
	Name  string
	Args  []Expression
}

func (c *Call) expressionNode()      {}
func (c *Call) TokenLiteral() string { return c.Token.Literal }
func (c *Call) Pos() lexer.Position  { return c.Token.Pos }
func (c *Call) String() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = a.String()
	}
	return c.Name + "(" + strings.Join(parts, ", ") + ")"
}

// ObjectCall is `receiver.name(args...)`, sugar for `name(receiver, args...)`.
type ObjectCall struct {
	Token    lexer.Token
	Receiver Expression
	Name     string
	Args     []Expression
}

func (o *ObjectCall) expressionNode()      {}
func (o *ObjectCall) TokenLiteral() string { return o.Token.Literal }
func (o *ObjectCall) Pos() lexer.Position  { return o.Token.Pos }
func (o *ObjectCall) String() string {
	parts := make([]string, len(o.Args))
	for i, a := range o.Args {
		parts[i] = a.String()
	}
	return o.Receiver.String() + "." + o.Name + "(" + strings.Join(parts, ", ") + ")"
}

// Decorate is `expr @name`, a postfix decorator application.
type Decorate struct {
	Token lexer.Token
	Expr  Expression
	Name  string
}

func (d *Decorate) expressionNode()      {}
func (d *Decorate) TokenLiteral() string { return d.Token.Literal }
func (d *Decorate) Pos() lexer.Position  { return d.Token.Pos }
func (d *Decorate) String() string       { return d.Expr.String() + " @" + d.Name }

// IncDec is `++x`/`--x` (prefix) or `x++`/`x--` (postfix).
type IncDec struct {
	Token   lexer.Token
	Op      string // "++" or "--"
	Operand Expression
	Prefix  bool
}

func (i *IncDec) expressionNode()      {}
func (i *IncDec) TokenLiteral() string { return i.Token.Literal }
func (i *IncDec) Pos() lexer.Position  { return i.Token.Pos }
func (i *IncDec) String() string {
	if i.Prefix {
		return i.Op + i.Operand.String()
	}
	return i.Operand.String() + i.Op
}
