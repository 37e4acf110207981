// Package errors formats Lavendish diagnostics with source-line
// context and a caret indicator (spec.md §4.5/§7). Lavendish's error
// channel is a small closed set of typed Go errors (parser.ParseError
// and internal/interp's ArityError/NameError/IndexError/UserError/
// SyntaxError/ControlFlowError), so FromError recovers position
// information by type-switching on those concrete types directly.
package errors

import (
	"fmt"
	"strings"

	"github.com/lavendeux/lavendish/internal/interp"
	"github.com/lavendeux/lavendish/internal/lexer"
	"github.com/lavendeux/lavendish/internal/parser"
)

// CompilerError pairs a diagnostic message with the source position
// and text it refers to, ready for terminal display.
type CompilerError struct {
	Message string
	Source  string
	File    string
	Pos     lexer.Position
	HasPos  bool
}

// NewCompilerError creates a new compiler error.
func NewCompilerError(pos lexer.Position, message, source, file string) *CompilerError {
	return &CompilerError{Pos: pos, HasPos: true, Message: message, Source: source, File: file}
}

// FromError recovers a CompilerError from any error Lavendish's parser
// or evaluator can raise. Errors without a carried position (the
// internal/value error kinds, which originate below the lexer/parser
// layer and never see a lexer.Position) format with the message alone.
func FromError(err error, source, file string) *CompilerError {
	ce := &CompilerError{Message: err.Error(), Source: source, File: file}
	switch e := err.(type) {
	case parser.ParseError:
		ce.Pos, ce.HasPos = e.Pos, true
	case *interp.ArityError:
		ce.Pos, ce.HasPos = e.Pos, true
	case *interp.NameError:
		ce.Pos, ce.HasPos = e.Pos, true
	case *interp.IndexError:
		ce.Pos, ce.HasPos = e.Pos, true
	case *interp.UserError:
		ce.Pos, ce.HasPos = e.Pos, true
	case *interp.SyntaxError:
		ce.Pos, ce.HasPos = e.Pos, true
	case *interp.ControlFlowError:
		ce.Pos, ce.HasPos = e.Pos, true
	}
	return ce
}

// Error implements the error interface.
func (e *CompilerError) Error() string {
	return e.Format(false)
}

// Format formats the error message with source context. If color is
// true, ANSI color codes are used for terminal output.
func (e *CompilerError) Format(color bool) string {
	var sb strings.Builder

	if !e.HasPos {
		if e.File != "" {
			sb.WriteString(fmt.Sprintf("Error in %s: ", e.File))
		} else {
			sb.WriteString("Error: ")
		}
		sb.WriteString(e.Message)
		return sb.String()
	}

	if e.File != "" {
		sb.WriteString(fmt.Sprintf("Error in %s:%d:%d\n", e.File, e.Pos.Line, e.Pos.Column))
	} else {
		sb.WriteString(fmt.Sprintf("Error at line %d:%d\n", e.Pos.Line, e.Pos.Column))
	}

	sourceLine := e.getSourceLine(e.Pos.Line)
	if sourceLine != "" {
		lineNumStr := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(lineNumStr)
		sb.WriteString(sourceLine)
		sb.WriteString("\n")

		sb.WriteString(strings.Repeat(" ", len(lineNumStr)+e.Pos.Column-1))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(e.Message)
	if color {
		sb.WriteString("\033[0m")
	}

	return sb.String()
}

// getSourceLine extracts a specific line from the source code.
// Lines are 1-indexed.
func (e *CompilerError) getSourceLine(lineNum int) string {
	if e.Source == "" {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if lineNum < 1 || lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

// FormatErrors formats multiple compiler errors, each with its own
// source context.
func FormatErrors(errs []*CompilerError, color bool) string {
	if len(errs) == 0 {
		return ""
	}
	if len(errs) == 1 {
		return errs[0].Format(color)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("failed with %d error(s):\n\n", len(errs)))
	for i, err := range errs {
		sb.WriteString(fmt.Sprintf("[Error %d of %d]\n", i+1, len(errs)))
		sb.WriteString(err.Format(color))
		if i < len(errs)-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}

// FromParseErrors converts every parser.ParseError from a failed parse
// into CompilerErrors sharing the same source/file context.
func FromParseErrors(parseErrs []parser.ParseError, source, file string) []*CompilerError {
	out := make([]*CompilerError, len(parseErrs))
	for i, pe := range parseErrs {
		out[i] = NewCompilerError(pe.Pos, pe.Message, source, file)
	}
	return out
}
