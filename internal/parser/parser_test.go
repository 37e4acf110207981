package parser

import (
	"testing"

	"github.com/lavendeux/lavendish/internal/ast"
)

func parseOneExpr(t *testing.T, src string) ast.Expression {
	t.Helper()
	prog, errs := ParseProgram(src)
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors for %q: %v", src, errs)
	}
	if len(prog.Statements) != 1 {
		t.Fatalf("%q: got %d statements, want 1: %+v", src, len(prog.Statements), prog.Statements)
	}
	stmt, ok := prog.Statements[0].(*ast.ExprStmt)
	if !ok {
		t.Fatalf("%q: statement is %T, not *ast.ExprStmt", src, prog.Statements[0])
	}
	return stmt.Expr
}

func TestParsePrecedence(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"1 + 2 * 3", "(1 + (2 * 3))"},
		{"(1 + 2) * 3", "((1 + 2) * 3)"},
		{"2 ** 3 ** 2", "(2 ** (3 ** 2))"},
		{"1 + 2 == 3", "((1 + 2) == 3)"},
		{"a && b || c", "((a && b) || c)"},
		{"-1 + 2", "((-1) + 2)"},
		{"1 .. 2", "1..2"},
		{"x as int", "(x as int)"},
		{"x as int as float", "((x as int) as float)"},
		{"1 < 2 && 3 > 4", "((1 < 2) && (3 > 4))"},
	}
	for _, c := range cases {
		expr := parseOneExpr(t, c.src)
		if got := expr.String(); got != c.want {
			t.Errorf("%q: got %q, want %q", c.src, got, c.want)
		}
	}
}

func TestParseTernary(t *testing.T) {
	expr := parseOneExpr(t, "a ? b : c")
	tern, ok := expr.(*ast.Ternary)
	if !ok {
		t.Fatalf("got %T, want *ast.Ternary", expr)
	}
	if tern.Cond.String() != "a" || tern.Then.String() != "b" || tern.Else.String() != "c" {
		t.Errorf("got %+v", tern)
	}
}

func TestParseAssignment(t *testing.T) {
	expr := parseOneExpr(t, "x = 1")
	assign, ok := expr.(*ast.Assign)
	if !ok {
		t.Fatalf("got %T, want *ast.Assign", expr)
	}
	if assign.Target.Kind != ast.TargetIdentifier || assign.Target.Identifier.Value != "x" {
		t.Errorf("got target %+v", assign.Target)
	}
	if assign.Op != "" {
		t.Errorf("got op %q, want plain assign", assign.Op)
	}
}

func TestParseCompoundAssignment(t *testing.T) {
	expr := parseOneExpr(t, "x += 1")
	assign, ok := expr.(*ast.Assign)
	if !ok {
		t.Fatalf("got %T, want *ast.Assign", expr)
	}
	if assign.Op != "+" {
		t.Errorf("got op %q, want +", assign.Op)
	}
}

func TestParseDestructureAssignment(t *testing.T) {
	expr := parseOneExpr(t, "(a, b) = pair")
	assign, ok := expr.(*ast.Assign)
	if !ok {
		t.Fatalf("got %T, want *ast.Assign", expr)
	}
	if assign.Target.Kind != ast.TargetDestructure {
		t.Fatalf("got target kind %v, want TargetDestructure", assign.Target.Kind)
	}
	if len(assign.Target.Names) != 2 || assign.Target.Names[0].Value != "a" || assign.Target.Names[1].Value != "b" {
		t.Errorf("got names %+v", assign.Target.Names)
	}
}

func TestParseIndexAssignment(t *testing.T) {
	expr := parseOneExpr(t, "arr[0] = 1")
	assign, ok := expr.(*ast.Assign)
	if !ok {
		t.Fatalf("got %T, want *ast.Assign", expr)
	}
	if assign.Target.Kind != ast.TargetIndexChain {
		t.Fatalf("got target kind %v, want TargetIndexChain", assign.Target.Kind)
	}
}

func TestParseIndexChainAndAppend(t *testing.T) {
	expr := parseOneExpr(t, "arr[0][1]")
	chain, ok := expr.(*ast.IndexChain)
	if !ok {
		t.Fatalf("got %T, want *ast.IndexChain", expr)
	}
	if len(chain.Steps) != 2 {
		t.Fatalf("got %d steps, want 2", len(chain.Steps))
	}

	appendExpr := parseOneExpr(t, "arr[]")
	appendChain, ok := appendExpr.(*ast.IndexChain)
	if !ok {
		t.Fatalf("got %T, want *ast.IndexChain", appendExpr)
	}
	if appendChain.Steps[0].Index != nil {
		t.Errorf("append step should carry a nil Index")
	}
}

func TestParseCall(t *testing.T) {
	expr := parseOneExpr(t, "foo(1, 2)")
	call, ok := expr.(*ast.Call)
	if !ok {
		t.Fatalf("got %T, want *ast.Call", expr)
	}
	if call.Name != "foo" || len(call.Args) != 2 {
		t.Errorf("got %+v", call)
	}
}

func TestParseObjectCall(t *testing.T) {
	expr := parseOneExpr(t, "x.upper()")
	oc, ok := expr.(*ast.ObjectCall)
	if !ok {
		t.Fatalf("got %T, want *ast.ObjectCall", expr)
	}
	if oc.Name != "upper" || oc.Receiver.String() != "x" {
		t.Errorf("got %+v", oc)
	}
}

func TestParseDecorate(t *testing.T) {
	expr := parseOneExpr(t, "(1 + 1) @hex")
	dec, ok := expr.(*ast.Decorate)
	if !ok {
		t.Fatalf("got %T, want *ast.Decorate", expr)
	}
	if dec.Name != "hex" {
		t.Errorf("got decorator %q, want hex", dec.Name)
	}
}

func TestParsePostfixIncDec(t *testing.T) {
	expr := parseOneExpr(t, "x++")
	id, ok := expr.(*ast.IncDec)
	if !ok {
		t.Fatalf("got %T, want *ast.IncDec", expr)
	}
	if id.Prefix || id.Op != "++" {
		t.Errorf("got %+v", id)
	}
}

func TestParsePrefixIncDec(t *testing.T) {
	expr := parseOneExpr(t, "++x")
	id, ok := expr.(*ast.IncDec)
	if !ok {
		t.Fatalf("got %T, want *ast.IncDec", expr)
	}
	if !id.Prefix {
		t.Errorf("expected prefix IncDec")
	}
}

func TestParseArrayLiteral(t *testing.T) {
	expr := parseOneExpr(t, "[1, 2, 3]")
	arr, ok := expr.(*ast.ArrayLiteral)
	if !ok {
		t.Fatalf("got %T, want *ast.ArrayLiteral", expr)
	}
	if len(arr.Elements) != 3 {
		t.Errorf("got %d elements, want 3", len(arr.Elements))
	}
}

func TestParseObjectLiteral(t *testing.T) {
	expr := parseOneExpr(t, "{'a': 1, 'b': 2}")
	obj, ok := expr.(*ast.ObjectLiteral)
	if !ok {
		t.Fatalf("got %T, want *ast.ObjectLiteral", expr)
	}
	if len(obj.Entries) != 2 {
		t.Errorf("got %d entries, want 2", len(obj.Entries))
	}
}

func TestParseEmptyObjectLiteral(t *testing.T) {
	expr := parseOneExpr(t, "{}")
	if _, ok := expr.(*ast.ObjectLiteral); !ok {
		t.Fatalf("got %T, want *ast.ObjectLiteral for empty braces", expr)
	}
}

func TestParseBlockVsObjectDisambiguation(t *testing.T) {
	block := parseOneExpr(t, "{ x = 1\ny = 2\ny }")
	if _, ok := block.(*ast.Block); !ok {
		t.Fatalf("got %T, want *ast.Block", block)
	}

	obj := parseOneExpr(t, "{ 'k': 'v' }")
	if _, ok := obj.(*ast.ObjectLiteral); !ok {
		t.Fatalf("got %T, want *ast.ObjectLiteral", obj)
	}
}

func TestParseIfElse(t *testing.T) {
	expr := parseOneExpr(t, "if x > 0 then 1 else -1")
	iff, ok := expr.(*ast.If)
	if !ok {
		t.Fatalf("got %T, want *ast.If", expr)
	}
	if iff.Then.String() != "1" {
		t.Errorf("got then %q", iff.Then.String())
	}
}

func TestParseIfElseIfChain(t *testing.T) {
	expr := parseOneExpr(t, "if x then 1 else if y then 2 else 3")
	outer, ok := expr.(*ast.If)
	if !ok {
		t.Fatalf("got %T, want *ast.If", expr)
	}
	if _, ok := outer.Alt.(*ast.If); !ok {
		t.Fatalf("got Alt %T, want nested *ast.If", outer.Alt)
	}
}

func TestParseForLoop(t *testing.T) {
	expr := parseOneExpr(t, "for i in 1..3 do i")
	loop, ok := expr.(*ast.ForLoop)
	if !ok {
		t.Fatalf("got %T, want *ast.ForLoop", expr)
	}
	if loop.Binder == nil || loop.Binder.Value != "i" {
		t.Errorf("got binder %+v", loop.Binder)
	}
}

func TestParseForLoopWithGuard(t *testing.T) {
	expr := parseOneExpr(t, "for i in 1..10 if i > 5 do i")
	loop, ok := expr.(*ast.ForLoop)
	if !ok {
		t.Fatalf("got %T, want *ast.ForLoop", expr)
	}
	if loop.Guard == nil {
		t.Fatalf("expected a guard clause")
	}
}

func TestParseMatch(t *testing.T) {
	expr := parseOneExpr(t, "match 2 { 1 => 'a', 2 => 'b', _ => 'c' }")
	m, ok := expr.(*ast.Match)
	if !ok {
		t.Fatalf("got %T, want *ast.Match", expr)
	}
	if len(m.Arms) != 3 {
		t.Fatalf("got %d arms, want 3", len(m.Arms))
	}
	if !m.Arms[2].Wildcard {
		t.Errorf("expected last arm to be wildcard")
	}
}

func TestParseMatchMultiValueArm(t *testing.T) {
	expr := parseOneExpr(t, "match 2 { 1, 2 => 'low', _ => 'high' }")
	m, ok := expr.(*ast.Match)
	if !ok {
		t.Fatalf("got %T, want *ast.Match", expr)
	}
	if len(m.Arms[0].Values) != 2 {
		t.Fatalf("got %d values in first arm, want 2", len(m.Arms[0].Values))
	}
}

func TestParseReturnBreakSkip(t *testing.T) {
	if r, ok := parseOneExpr(t, "return 1").(*ast.Return); !ok || r.Payload.String() != "1" {
		t.Errorf("return: got %+v", r)
	}
	if r, ok := parseOneExpr(t, "return").(*ast.Return); !ok || r.Payload != nil {
		t.Errorf("bare return: got %+v", r)
	}
	if b, ok := parseOneExpr(t, "break").(*ast.Break); !ok || b.Payload != nil {
		t.Errorf("bare break: got %+v", b)
	}
	if _, ok := parseOneExpr(t, "skip").(*ast.Skip); !ok {
		t.Errorf("expected *ast.Skip")
	}
	if _, ok := parseOneExpr(t, "continue").(*ast.Skip); !ok {
		t.Errorf("expected continue to parse as *ast.Skip")
	}
}

func TestParseFunctionDef(t *testing.T) {
	prog, errs := ParseProgram("add(a: int, b: int): int = a + b")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	fn, ok := prog.Statements[0].(*ast.FunctionDef)
	if !ok {
		t.Fatalf("got %T, want *ast.FunctionDef", prog.Statements[0])
	}
	if fn.Name != "add" || len(fn.Params) != 2 || fn.ReturnKind != "int" {
		t.Errorf("got %+v", fn)
	}
	if fn.Params[0].Kind != "int" {
		t.Errorf("got param kind %q, want int", fn.Params[0].Kind)
	}
}

func TestParseDecoratorFunctionDef(t *testing.T) {
	prog, errs := ParseProgram("@hex(x) = x as string")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	fn, ok := prog.Statements[0].(*ast.FunctionDef)
	if !ok {
		t.Fatalf("got %T, want *ast.FunctionDef", prog.Statements[0])
	}
	if !fn.Decorator || fn.Name != "hex" {
		t.Errorf("got %+v", fn)
	}
}

func TestParseDel(t *testing.T) {
	prog, errs := ParseProgram("del x")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	del, ok := prog.Statements[0].(*ast.Del)
	if !ok {
		t.Fatalf("got %T, want *ast.Del", prog.Statements[0])
	}
	if del.Target.String() != "x" {
		t.Errorf("got target %q", del.Target.String())
	}
}

func TestParseMultiStatementProgram(t *testing.T) {
	prog, errs := ParseProgram("x = 1\ny = 2\nx + y")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(prog.Statements) != 3 {
		t.Fatalf("got %d statements, want 3", len(prog.Statements))
	}
}

func TestParseUnterminatedString(t *testing.T) {
	prog, errs := ParseProgram(`"oops`)
	if len(errs) == 0 {
		t.Fatalf("expected at least one parse error")
	}
	stmt, ok := prog.Statements[0].(*ast.ExprStmt)
	if !ok {
		t.Fatalf("got %T, want *ast.ExprStmt", prog.Statements[0])
	}
	if _, ok := stmt.Expr.(*ast.ErrorNode); !ok {
		t.Fatalf("got %T, want *ast.ErrorNode", stmt.Expr)
	}
}

func TestParseUnclosedBracket(t *testing.T) {
	_, errs := ParseProgram("[1, 2")
	if len(errs) == 0 {
		t.Fatalf("expected an unclosed-bracket diagnostic")
	}
}

func TestParseBadMatchAtLineStart(t *testing.T) {
	_, errs := ParseProgram("x\ncontains y")
	if len(errs) == 0 {
		t.Fatalf("expected a bad-match-range diagnostic")
	}
}
