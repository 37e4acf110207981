package interp

import (
	"testing"

	"github.com/lavendeux/lavendish/internal/extension"
	"github.com/lavendeux/lavendish/internal/parser"
	"github.com/lavendeux/lavendish/internal/value"
)

func evalAll(t *testing.T, src string) []value.Value {
	t.Helper()
	prog, errs := parser.ParseProgram(src)
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors for %q: %v", src, errs)
	}
	it := New(extension.NewRegistry())
	results, err := it.EvalProgram(prog)
	if err != nil {
		t.Fatalf("unexpected eval error for %q: %v", src, err)
	}
	return results
}

func evalOne(t *testing.T, src string) value.Value {
	t.Helper()
	results := evalAll(t, src)
	if len(results) != 1 {
		t.Fatalf("%q: got %d results, want 1", src, len(results))
	}
	return results[0]
}

func evalErr(t *testing.T, src string) error {
	t.Helper()
	prog, errs := parser.ParseProgram(src)
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors for %q: %v", src, errs)
	}
	it := New(extension.NewRegistry())
	_, err := it.EvalProgram(prog)
	if err == nil {
		t.Fatalf("%q: expected an evaluation error, got none", src)
	}
	return err
}

func TestArithmeticPromotion(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"1 + 2", "3"},
		{"1 + 2.5", "3.5"},
		{"2 ** 10", "1024"},
		{"7 % 3", "1"},
		{"true + 1", "2"},
		{"\"a\" + \"b\"", "ab"},
		{"[1, 2] + [3]", "[1, 2, 3]"},
	}
	for _, c := range cases {
		got := evalOne(t, c.src).String()
		if got != c.want {
			t.Errorf("%q: got %q, want %q", c.src, got, c.want)
		}
	}
}

func TestDivisionByZero(t *testing.T) {
	err := evalErr(t, "1 / 0")
	if _, ok := err.(*value.DivisionByZeroError); !ok {
		t.Errorf("got %T, want *value.DivisionByZeroError", err)
	}
}

func TestIntWidthSaturation(t *testing.T) {
	got := evalOne(t, "200u8 + 100u8")
	i, ok := got.(value.Int)
	if !ok {
		t.Fatalf("got %T, want value.Int", got)
	}
	if i.Val != 44 {
		t.Errorf("got %d, want 44 (300 wraps to 44 in u8)", i.Val)
	}
}

func TestVariablesAndAssignment(t *testing.T) {
	results := evalAll(t, "x = 5\nx += 3\nx")
	if got := results[2].String(); got != "8" {
		t.Errorf("got %q, want 8", got)
	}
}

func TestDestructuringAssignment(t *testing.T) {
	results := evalAll(t, "(a, b) = [1, 2]\na + b")
	if got := results[1].String(); got != "3" {
		t.Errorf("got %q, want 3", got)
	}
}

func TestIndexChainAssignmentRebuildsRoot(t *testing.T) {
	results := evalAll(t, "a = [[1, 2], [3, 4]]\na[0][1] = 9\na")
	if got := results[2].String(); got != "[[1, 9], [3, 4]]" {
		t.Errorf("got %q, want [[1, 9], [3, 4]]", got)
	}
}

func TestArrayAppendAndPopViaEmptyBrackets(t *testing.T) {
	results := evalAll(t, "a = [1, 2]\na[] = 3\nb = del a[]\na\nb")
	if got := results[3].String(); got != "[1, 2]" {
		t.Errorf("after pop, got %q, want [1, 2]", got)
	}
	if got := results[4].String(); got != "3" {
		t.Errorf("popped value got %q, want 3", got)
	}
}

func TestObjectDeleteByKey(t *testing.T) {
	results := evalAll(t, "o = {\"a\": 1, \"b\": 2}\ndel o[\"a\"]\no")
	if got := results[2].String(); got != `{"b": 2}` {
		t.Errorf("got %q, want {\"b\": 2}", got)
	}
}

func TestSubrangeReadAndWrite(t *testing.T) {
	results := evalAll(t, "a = [1, 2, 3, 4, 5]\na[1..3] = [9, 9]\na")
	if got := results[2].String(); got != "[1, 9, 9, 5]" {
		t.Errorf("got %q, want [1, 9, 9, 5]", got)
	}
}

func TestNegativeIndex(t *testing.T) {
	if got := evalOne(t, "[1, 2, 3][-1]").String(); got != "3" {
		t.Errorf("got %q, want 3", got)
	}
}

func TestIfExpression(t *testing.T) {
	if got := evalOne(t, "if 1 < 2 then \"yes\" else \"no\"").String(); got != "yes" {
		t.Errorf("got %q, want yes", got)
	}
}

func TestMatchFallsThroughToWildcard(t *testing.T) {
	src := "x = 5\nmatch x { 1 => \"one\", 2, 3 => \"two-or-three\", _ => \"other\" }"
	if got := evalAll(t, src)[1].String(); got != "other" {
		t.Errorf("got %q, want other", got)
	}
}

func TestMatchMultiValueArm(t *testing.T) {
	src := "x = 3\nmatch x { 1 => \"one\", 2, 3 => \"two-or-three\", _ => \"other\" }"
	if got := evalAll(t, src)[1].String(); got != "two-or-three" {
		t.Errorf("got %q, want two-or-three", got)
	}
}

func TestForLoopCollectsResults(t *testing.T) {
	if got := evalOne(t, "for x in 1..3 do x * 2").String(); got != "[2, 4, 6]" {
		t.Errorf("got %q, want [2, 4, 6]", got)
	}
}

func TestForLoopGuardFiltersIterations(t *testing.T) {
	src := "for x in 1..5 if x % 2 == 0 do x"
	if got := evalOne(t, src).String(); got != "[2, 4]" {
		t.Errorf("got %q, want [2, 4]", got)
	}
}

func TestForLoopBreakReplacesResult(t *testing.T) {
	src := "for x in 1..10 do if x == 3 then break \"stopped\" else x"
	if got := evalOne(t, src).String(); got != "stopped" {
		t.Errorf("got %q, want stopped", got)
	}
}

func TestFunctionDefAndCall(t *testing.T) {
	results := evalAll(t, "square(x) = x * x\nsquare(5)")
	if got := results[1].String(); got != "25" {
		t.Errorf("got %q, want 25", got)
	}
}

func TestRecursiveFunctionCall(t *testing.T) {
	src := "fact(n) = if n <= 1 then 1 else n * fact(n - 1)\nfact(5)"
	results := evalAll(t, src)
	if got := results[1].String(); got != "120" {
		t.Errorf("got %q, want 120", got)
	}
}

func TestFunctionParamKindCoercion(t *testing.T) {
	src := "addf(x:float, y:float) = x + y\naddf(1, 2)"
	results := evalAll(t, src)
	if got := results[1].String(); got != "3" {
		t.Errorf("got %q, want 3", got)
	}
	if _, ok := results[1].(value.Float); !ok {
		t.Errorf("got %T, want value.Float (param Kind coercion)", results[1])
	}
}

func TestArityErrorOnCall(t *testing.T) {
	err := evalErr(t, "f(x) = x\nf(1, 2)")
	if _, ok := err.(*ArityError); !ok {
		t.Errorf("got %T, want *ArityError", err)
	}
}

func TestDeleteFunctionReturnsSignature(t *testing.T) {
	src := "square(x:int): int = x * x\ndel square"
	if got := evalAll(t, src)[1].String(); got != "square(x:int): int" {
		t.Errorf("got %q, want square(x:int): int", got)
	}
}

func TestDecoratorWrapsResultAsString(t *testing.T) {
	src := "@loud(x) = x + \"!\"\n\"hi\" @loud"
	if got := evalAll(t, src)[1].String(); got != "hi!" {
		t.Errorf("got %q, want hi!", got)
	}
}

func TestIncDecPrefixAndPostfix(t *testing.T) {
	results := evalAll(t, "x = 1\n++x\nx++\nx")
	if got := results[3].String(); got != "3" {
		t.Errorf("got %q, want 3", got)
	}
	if got := results[1].String(); got != "2" {
		t.Errorf("prefix ++x result got %q, want 2", got)
	}
	if got := results[2].String(); got != "2" {
		t.Errorf("postfix x++ result got %q, want 2 (pre-increment value)", got)
	}
}

func TestShortCircuitAnd(t *testing.T) {
	if got := evalOne(t, "false && (1 / 0 > 0)").String(); got != "false" {
		t.Errorf("got %q, want false (should not evaluate right side)", got)
	}
}

func TestShortCircuitOr(t *testing.T) {
	if got := evalOne(t, "true || (1 / 0 > 0)").String(); got != "true" {
		t.Errorf("got %q, want true (should not evaluate right side)", got)
	}
}

func TestCompoundAndAssignShortCircuits(t *testing.T) {
	results := evalAll(t, "x = false\nx &&= (1 / 0 > 0)\nx")
	if got := results[2].String(); got != "false" {
		t.Errorf("got %q, want false (right side must not run)", got)
	}
}

func TestCompoundOrAssignShortCircuits(t *testing.T) {
	results := evalAll(t, "x = true\nx ||= (1 / 0 > 0)\nx")
	if got := results[2].String(); got != "true" {
		t.Errorf("got %q, want true (right side must not run)", got)
	}
}

func TestCompoundAndAssignEvaluatesWhenTruthy(t *testing.T) {
	results := evalAll(t, "x = true\nx &&= false\nx")
	if got := results[2].String(); got != "false" {
		t.Errorf("got %q, want false", got)
	}
}

func TestCompoundOrAssignEvaluatesWhenFalsy(t *testing.T) {
	results := evalAll(t, "x = false\nx ||= true\nx")
	if got := results[2].String(); got != "true" {
		t.Errorf("got %q, want true", got)
	}
}

func TestBareBreakAtTopLevelIsControlFlowError(t *testing.T) {
	err := evalErr(t, "break")
	if _, ok := err.(*ControlFlowError); !ok {
		t.Errorf("got %T, want *ControlFlowError", err)
	}
}

func TestUnboundNameErrors(t *testing.T) {
	err := evalErr(t, "unbound_name_xyz")
	if _, ok := err.(*NameError); !ok {
		t.Errorf("got %T, want *NameError", err)
	}
}

func TestCurrencyArithmeticReconcilesTags(t *testing.T) {
	if got := evalOne(t, "$5 + £3").String(); got != "8" {
		t.Errorf("got %q, want 8 (differing currency tags strip to plain decimal string)", got)
	}
}

func TestCurrencySameTagArithmeticKeepsTag(t *testing.T) {
	if got := evalOne(t, "$5 + 3USD").String(); got != "USD 8" {
		t.Errorf("got %q, want USD 8 (matching tags are preserved)", got)
	}
}

func TestRangeMaterializationExceedsLimitRaisesOverflow(t *testing.T) {
	prog, errs := parser.ParseProgram("for x in 1..10 do x")
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	it := New(extension.NewRegistry())
	it.Limits.MaxRangeLen = 5
	if _, err := it.EvalProgram(prog); err == nil {
		t.Fatalf("expected an OverflowError, got none")
	} else if _, ok := err.(*value.OverflowError); !ok {
		t.Errorf("got %T, want *value.OverflowError", err)
	}
}

func TestCallDepthLimitRaisesOverflow(t *testing.T) {
	src := "loop(n) = loop(n + 1)\nloop(0)"
	prog, errs := parser.ParseProgram(src)
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	it := New(extension.NewRegistry())
	it.Limits.MaxCallDepth = 10
	if _, err := it.EvalProgram(prog); err == nil {
		t.Fatalf("expected an OverflowError, got none")
	} else if _, ok := err.(*value.OverflowError); !ok {
		t.Errorf("got %T, want *value.OverflowError", err)
	}
}
