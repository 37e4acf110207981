package errors

import (
	"strings"
	"testing"

	"github.com/lavendeux/lavendish/internal/interp"
	"github.com/lavendeux/lavendish/internal/lexer"
	"github.com/lavendeux/lavendish/internal/parser"
)

func TestCompilerErrorFormatIncludesCaret(t *testing.T) {
	ce := NewCompilerError(lexer.Position{Line: 1, Column: 5}, "unbound name x", "1 + x", "<eval>")
	out := ce.Format(false)
	if !strings.Contains(out, "1 + x") {
		t.Errorf("expected source line in output, got %q", out)
	}
	if !strings.Contains(out, "unbound name x") {
		t.Errorf("expected message in output, got %q", out)
	}
	if !strings.Contains(out, "^") {
		t.Errorf("expected caret in output, got %q", out)
	}
}

func TestFromErrorRecoversPositionFromInterpErrors(t *testing.T) {
	src := "1 + asparagus"
	err := &interp.NameError{Name: "asparagus", Pos: lexer.Position{Line: 1, Column: 5}}
	ce := FromError(err, src, "<eval>")
	if !ce.HasPos {
		t.Fatalf("expected HasPos true")
	}
	if ce.Pos.Column != 5 {
		t.Errorf("got column %d, want 5", ce.Pos.Column)
	}
}

func TestFromParseErrors(t *testing.T) {
	src := "1 +"
	_, parseErrs := parser.ParseProgram(src)
	if len(parseErrs) == 0 {
		t.Fatalf("expected a parse error for %q", src)
	}
	ces := FromParseErrors(parseErrs, src, "<eval>")
	if len(ces) != len(parseErrs) {
		t.Fatalf("got %d compiler errors, want %d", len(ces), len(parseErrs))
	}
	if !ces[0].HasPos {
		t.Errorf("expected parse error to carry a position")
	}
}

func TestFormatErrorsMultiple(t *testing.T) {
	a := NewCompilerError(lexer.Position{Line: 1, Column: 1}, "first", "src", "<eval>")
	b := NewCompilerError(lexer.Position{Line: 2, Column: 1}, "second", "src", "<eval>")
	out := FormatErrors([]*CompilerError{a, b}, false)
	if !strings.Contains(out, "2 error(s)") {
		t.Errorf("expected error count in output, got %q", out)
	}
	if !strings.Contains(out, "first") || !strings.Contains(out, "second") {
		t.Errorf("expected both messages in output, got %q", out)
	}
}
