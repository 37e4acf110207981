package parser

import (
	"strings"

	"github.com/lavendeux/lavendish/internal/ast"
	"github.com/lavendeux/lavendish/internal/lexer"
)

// tupleExpr is a parser-internal node for a parenthesized comma-list,
// `(a, b, c)`. As the target of `=`, exprToTarget converts it to
// ast.TargetDestructure; anywhere else the evaluator evaluates its
// elements in order into an Array, since there is no Tuple Value
// variant in the data model.
type tupleExpr struct {
	// The embedded, always-nil ast.Expression supplies the interface's
	// unexported marker method, which a type outside package ast cannot
	// declare itself; every other method is defined on tupleExpr below.
	ast.Expression
	Token lexer.Token
	Elems []ast.Expression
}

func (t *tupleExpr) TokenLiteral() string { return t.Token.Literal }
func (t *tupleExpr) Pos() lexer.Position  { return t.Token.Pos }

// TupleElems lets a caller outside this package (the evaluator) detect
// a stray tuple literal structurally, without needing to name the
// unexported concrete type: `node.(interface{ TupleElems() []ast.Expression })`.
func (t *tupleExpr) TupleElems() []ast.Expression { return t.Elems }

func (t *tupleExpr) String() string {
	parts := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
