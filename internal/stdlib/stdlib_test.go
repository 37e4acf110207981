package stdlib

import (
	"testing"

	"github.com/lavendeux/lavendish/internal/extension"
	"github.com/lavendeux/lavendish/internal/interp"
	"github.com/lavendeux/lavendish/internal/parser"
	"github.com/lavendeux/lavendish/internal/value"
)

func newEngine(t *testing.T) *interp.Interp {
	t.Helper()
	reg := extension.NewRegistry()
	if err := Register(reg); err != nil {
		t.Fatalf("Register: %v", err)
	}
	return interp.New(reg)
}

func evalOne(t *testing.T, src string) value.Value {
	t.Helper()
	prog, errs := parser.ParseProgram(src)
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors for %q: %v", src, errs)
	}
	it := newEngine(t)
	results, err := it.EvalProgram(prog)
	if err != nil {
		t.Fatalf("unexpected eval error for %q: %v", src, err)
	}
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
	it := newEngine(t)
	_, err := it.EvalProgram(prog)
	if err == nil {
		t.Fatalf("%q: expected an evaluation error, got none", src)
	}
	return err
}

func TestMathBuiltins(t *testing.T) {
	cases := []struct{ src, want string }{
		{"abs(-5)", "5"},
		{"ceil(1.2)", "2"},
		{"floor(1.8)", "1"},
		{"round(1.5)", "2"},
		{"round_to(3.14159, 2)", "3.14"},
		{"trunc(1.9)", "1"},
		{"sqrt(16)", "4"},
		{"pow(2, 10)", "1024"},
		{"sign(-3)", "-1"},
		{"min([3, 1, 2])", "1"},
		{"max([3, 1, 2])", "3"},
		{"sum([1, 2, 3])", "6"},
		{"avg([2, 4, 6])", "4"},
		{"gcd(12, 18)", "6"},
		{"lcm(4, 6)", "12"},
		{"factorial(5)", "120"},
		{"is_prime(7)", "true"},
		{"is_prime(8)", "false"},
	}
	for _, c := range cases {
		if got := evalOne(t, c.src).String(); got != c.want {
			t.Errorf("%q: got %q, want %q", c.src, got, c.want)
		}
	}
}

func TestSqrtOfNegativeIsValueError(t *testing.T) {
	err := evalErr(t, "sqrt(-1)")
	if _, ok := err.(*value.ValueError); !ok {
		t.Errorf("got %T, want *value.ValueError", err)
	}
}

func TestStringBuiltins(t *testing.T) {
	cases := []struct{ src, want string }{
		{`upper("abc")`, "ABC"},
		{`lower("ABC")`, "abc"},
		{`trim("  hi  ")`, "hi"},
		{`split("a,b,c", ",")`, `["a", "b", "c"]`},
		{`join(["a", "b", "c"], "-")`, "a-b-c"},
		{`replace("hello", "l", "L")`, "heLLo"},
		{`repeat("ab", 3)`, "ababab"},
		{`reverse("abc")`, "cba"},
		{`pad_left("7", 3, "0")`, "007"},
		{`pad_right("7", 3, "0")`, "700"},
		{`index_of("hello", "ll")`, "2"},
		{`ord("A")`, "65"},
		{`chr(65)`, "A"},
	}
	for _, c := range cases {
		if got := evalOne(t, c.src).String(); got != c.want {
			t.Errorf("%q: got %q, want %q", c.src, got, c.want)
		}
	}
}

func TestCollectionBuiltins(t *testing.T) {
	cases := []struct{ src, want string }{
		{`len("hello")`, "5"},
		{`len([1, 2, 3])`, "3"},
		{`keys({"a": 1, "b": 2})`, `["a", "b"]`},
		{`values({"a": 1, "b": 2})`, "[1, 2]"},
		{`sort([3, 1, 2])`, "[1, 2, 3]"},
		{`unique([1, 1, 2, 2, 3])`, "[1, 2, 3]"},
		{`flatten([[1, 2], [3], 4])`, "[1, 2, 3, 4]"},
		{`first([1, 2, 3])`, "1"},
		{`last([1, 2, 3])`, "3"},
	}
	for _, c := range cases {
		if got := evalOne(t, c.src).String(); got != c.want {
			t.Errorf("%q: got %q, want %q", c.src, got, c.want)
		}
	}
}

func TestTypeBuiltins(t *testing.T) {
	cases := []struct{ src, want string }{
		{"type_of(5)", "Int"},
		{"type_of(5.0)", "Float"},
		{`type_of("hi")`, "String"},
		{`is_kind(5, "int")`, "true"},
		{"is_numeric(5)", "true"},
		{`is_numeric("hi")`, "false"},
		{"is_nil(nil)", "true"},
		{"is_nil(0)", "false"},
	}
	for _, c := range cases {
		if got := evalOne(t, c.src).String(); got != c.want {
			t.Errorf("%q: got %q, want %q", c.src, got, c.want)
		}
	}
}

func TestAssertPassesThrough(t *testing.T) {
	if got := evalOne(t, "assert(1 == 1)").String(); got != "true" {
		t.Errorf("got %q, want true", got)
	}
}

func TestAssertFailureRaisesUserError(t *testing.T) {
	err := evalErr(t, "assert(1 == 2)")
	if _, ok := err.(*interp.UserError); !ok {
		t.Errorf("got %T, want *interp.UserError", err)
	}
}

func TestAssertEqFailsOnDifferingKindsEvenIfWeakEqual(t *testing.T) {
	err := evalErr(t, `assert_eq(1, "1")`)
	if _, ok := err.(*interp.UserError); !ok {
		t.Errorf("got %T, want *interp.UserError", err)
	}
}

func TestErrorBuiltinRaisesUserError(t *testing.T) {
	err := evalErr(t, `error("boom")`)
	ue, ok := err.(*interp.UserError)
	if !ok {
		t.Fatalf("got %T, want *interp.UserError", err)
	}
	if ue.Message != "boom" {
		t.Errorf("got %q, want boom", ue.Message)
	}
}

func TestWouldErr(t *testing.T) {
	if got := evalOne(t, `would_err("1 + 1")`).String(); got != "false" {
		t.Errorf("got %q, want false", got)
	}
	if got := evalOne(t, `would_err("1 + asparagus")`).String(); got != "true" {
		t.Errorf("got %q, want true", got)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	if got := evalOne(t, `to_json({"a": 1, "b": [1, 2, 3]})`).String(); got != `{"a":1,"b":[1,2,3]}` {
		t.Errorf("got %q", got)
	}
	if got := evalOne(t, `from_json("[1, 2, 3]")`).String(); got != "[1, 2, 3]" {
		t.Errorf("got %q, want [1, 2, 3]", got)
	}
	if got := evalOne(t, `json_get("{\"user\": {\"name\": \"ada\"}}", "user.name")`).String(); got != "ada" {
		t.Errorf("got %q, want ada", got)
	}
}
