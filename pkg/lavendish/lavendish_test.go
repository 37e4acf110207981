package lavendish

import (
	"strings"
	"testing"

	"github.com/lavendeux/lavendish/internal/value"
)

func TestEvalReturnsLastLineResult(t *testing.T) {
	e, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	res, err := e.Eval("1 + 2")
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if res.Last().String() != "3" {
		t.Errorf("got %q, want 3", res.Last().String())
	}
}

func TestEvalPersistsBindingsAcrossCalls(t *testing.T) {
	e, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := e.Eval("x = 41"); err != nil {
		t.Fatalf("Eval: %v", err)
	}
	res, err := e.Eval("x + 1")
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if res.Last().String() != "42" {
		t.Errorf("got %q, want 42", res.Last().String())
	}
}

func TestEvalParseErrorFormatsWithSourceContext(t *testing.T) {
	e, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_, err = e.Eval("1 +")
	if err == nil {
		t.Fatalf("expected a parse error")
	}
	if !strings.Contains(err.Error(), "1 +") {
		t.Errorf("expected source line in error, got %q", err.Error())
	}
}

func TestRegisterFunctionReflectsGoFunc(t *testing.T) {
	e, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	double := func(n int64) (int64, error) { return n * 2, nil }
	if err := e.RegisterFunction("double", double, []string{"int"}, "int", "doubles an integer"); err != nil {
		t.Fatalf("RegisterFunction: %v", err)
	}
	res, err := e.Eval("double(21)")
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if res.Last().String() != "42" {
		t.Errorf("got %q, want 42", res.Last().String())
	}
}

func TestRegisterDecoratorAppliesToLineResult(t *testing.T) {
	e, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	shout := func(s string) (string, error) { return strings.ToUpper(s) + "!", nil }
	if err := e.RegisterDecorator("shout", shout, "string", "uppercases and adds !"); err != nil {
		t.Fatalf("RegisterDecorator: %v", err)
	}
	res, err := e.Eval(`"hi"@shout`)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if res.Last().String() != "HI!" {
		t.Errorf("got %q, want HI!", res.Last().String())
	}
}

func TestCallFunctionInvokesRegisteredCallable(t *testing.T) {
	e, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	addOne := func(n int64) (int64, error) { return n + 1, nil }
	if err := e.RegisterFunction("add_one", addOne, []string{"int"}, "int", ""); err != nil {
		t.Fatalf("RegisterFunction: %v", err)
	}
	v, err := e.CallFunction("add_one", value.NewInt(9))
	if err != nil {
		t.Fatalf("CallFunction: %v", err)
	}
	if v.String() != "10" {
		t.Errorf("got %q, want 10", v.String())
	}
}

func TestExportExtensionListsRegisteredCallables(t *testing.T) {
	e, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	e.SetExtensionName("demo")
	e.SetExtensionAuthor("tester")
	e.SetExtensionVersion("0.1.0")
	noop := func() (int64, error) { return 0, nil }
	if err := e.RegisterFunction("noop", noop, nil, "int", ""); err != nil {
		t.Fatalf("RegisterFunction: %v", err)
	}
	m := e.ExportExtension()
	if m.Name != "demo" || m.Author != "tester" || m.Version != "0.1.0" {
		t.Errorf("unexpected manifest metadata: %+v", m)
	}
	found := false
	for _, f := range m.Functions {
		if f.Name == "noop" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected noop among exported functions, got %+v", m.Functions)
	}
}

func TestSaveStateAndLoadStateRoundTrip(t *testing.T) {
	e, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	e.SetState("counter", value.NewInt(7))

	doc, err := e.SaveState()
	if err != nil {
		t.Fatalf("SaveState: %v", err)
	}

	e2, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := e2.LoadState(doc); err != nil {
		t.Fatalf("LoadState: %v", err)
	}
	v, ok := e2.GetState("counter")
	if !ok {
		t.Fatalf("expected counter to survive the round trip")
	}
	if v.String() != "7" {
		t.Errorf("got %q, want 7", v.String())
	}
}

func TestWithMaxCallDepthOptionAppliesLimit(t *testing.T) {
	e, err := New(WithMaxCallDepth(2))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_, err = e.Eval(`
f(n) = f(n + 1)
f(0)
`)
	if err == nil {
		t.Fatalf("expected recursion to overflow the configured call depth")
	}
}
