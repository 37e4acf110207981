// Package interp implements the Lavendish tree-walking evaluator:
// expression/statement semantics, control flow, function and
// decorator dispatch, indexing, and the four assignment forms
// (spec.md §4.3).
package interp

import (
	"strconv"

	"github.com/lavendeux/lavendish/internal/lexer"
)

// ArityError is raised when a call supplies the wrong number of
// arguments for a declared function or decorator signature.
type ArityError struct {
	Name string
	Want int
	Got  int
	Pos  lexer.Position
}

func (e *ArityError) Error() string {
	return "ArityError: " + e.Name + " expects " + strconv.Itoa(e.Want) + " argument(s), got " + strconv.Itoa(e.Got)
}

// NameError is raised for an unbound identifier or an unknown
// function/decorator name.
type NameError struct {
	Name string
	Pos  lexer.Position
}

func (e *NameError) Error() string { return "NameError: unbound name " + e.Name }

// IndexError is raised for out-of-bounds access or a missing key when
// assignment requires an existing path.
type IndexError struct {
	Message string
	Pos     lexer.Position
}

func (e *IndexError) Error() string { return "IndexError: " + e.Message }

// UserError is raised by the built-in `error(msg)`, letting Lavendish
// source synthesize its own diagnostic (spec.md §4.5, §7).
type UserError struct {
	Message string
	Pos     lexer.Position
}

func (e *UserError) Error() string { return e.Message }

// SyntaxError wraps a parser diagnostic so it can flow through the
// same error channel as runtime errors once promoted into evaluation
// (spec.md §7: "Parser errors preempt evaluation").
type SyntaxError struct {
	Message string
	Pos     lexer.Position
}

func (e *SyntaxError) Error() string { return "SyntaxError: " + e.Message }

// ControlFlowError is raised when `break`/`skip` escapes to top level
// with no enclosing loop, or `return` escapes with no enclosing call.
type ControlFlowError struct {
	Keyword string
	Pos     lexer.Position
}

func (e *ControlFlowError) Error() string {
	return "ControlFlowError: '" + e.Keyword + "' used outside its enclosing construct"
}
