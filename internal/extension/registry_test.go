package extension

import (
	"testing"

	"github.com/lavendeux/lavendish/internal/value"
)

func echoFn(args []value.Value) (value.Value, error) { return args[0], nil }

func TestRegisterAndLookupFunction(t *testing.T) {
	r := NewRegistry()
	if err := r.RegisterFunction("echo", echoFn, []string{"Any"}, "Any", "returns its argument"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c, ok := r.Lookup("echo")
	if !ok || c.Name != "echo" {
		t.Fatalf("got %+v, %v", c, ok)
	}
}

func TestRegisterDuplicateFunctionErrors(t *testing.T) {
	r := NewRegistry()
	_ = r.RegisterFunction("echo", echoFn, nil, "Any", "")
	if err := r.RegisterFunction("echo", echoFn, nil, "Any", ""); err == nil {
		t.Fatalf("expected duplicate registration to error")
	}
}

func TestRegisterAndDeleteDecorator(t *testing.T) {
	r := NewRegistry()
	if err := r.RegisterDecorator("hex", echoFn, "int", "hex formatting"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c, ok := r.DeleteDecorator("hex")
	if !ok || c.Name != "hex" {
		t.Fatalf("got %+v, %v", c, ok)
	}
	if _, ok := r.LookupDecorator("hex"); ok {
		t.Fatalf("decorator should be gone after delete")
	}
}

func TestSignature(t *testing.T) {
	c := &Callable{Name: "add", ArgKinds: []string{"int", "int"}, ReturnKind: "int"}
	if got, want := c.Signature(), "add(int, int): int"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestStateRoundTrip(t *testing.T) {
	r := NewRegistry()
	r.SetState("counter", value.NewInt(5))
	snap := r.State()
	r2 := NewRegistry()
	r2.ReplaceState(snap)
	v, ok := r2.GetState("counter")
	if !ok || v.String() != "5" {
		t.Fatalf("got %v, %v", v, ok)
	}
}

func TestExportManifest(t *testing.T) {
	r := NewRegistry()
	_ = r.RegisterFunction("add", echoFn, []string{"int", "int"}, "int", "adds two ints")
	_ = r.RegisterDecorator("hex", echoFn, "int", "")
	m := r.Export("demo", "me", "1.0.0")
	if len(m.Functions) != 1 || m.Functions[0].Name != "add" {
		t.Fatalf("got %+v", m.Functions)
	}
	if len(m.Decorators) != 1 || m.Decorators[0].Name != "hex" {
		t.Fatalf("got %+v", m.Decorators)
	}
	if _, err := m.MarshalYAML(); err != nil {
		t.Fatalf("unexpected marshal error: %v", err)
	}
}
