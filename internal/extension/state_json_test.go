package extension

import (
	"testing"

	"github.com/lavendeux/lavendish/internal/value"
)

func TestSaveStateLoadStateRoundTrip(t *testing.T) {
	r := NewRegistry()
	r.SetState("counter", value.NewInt(7))
	r.SetState("label", value.NewString("clipboard"))
	r.SetState("enabled", value.NewBool(true))
	r.SetState("ratio", value.NewFloat(1.5))
	r.SetState("tags", value.Array{Elems: []value.Value{value.NewString("a"), value.NewString("b")}})

	doc, err := r.SaveState()
	if err != nil {
		t.Fatalf("SaveState: %v", err)
	}

	r2 := NewRegistry()
	if err := r2.LoadState(doc); err != nil {
		t.Fatalf("LoadState: %v", err)
	}

	if v, ok := r2.GetState("counter"); !ok || v.String() != "7" {
		t.Errorf("counter: got %v, %v", v, ok)
	}
	if v, ok := r2.GetState("label"); !ok || v.String() != "clipboard" {
		t.Errorf("label: got %v, %v", v, ok)
	}
	if v, ok := r2.GetState("enabled"); !ok || !v.Truthy() {
		t.Errorf("enabled: got %v, %v", v, ok)
	}
	if v, ok := r2.GetState("ratio"); !ok || v.String() != "1.5" {
		t.Errorf("ratio: got %v, %v", v, ok)
	}
	if v, ok := r2.GetState("tags"); !ok || v.String() != `["a", "b"]` {
		t.Errorf("tags: got %v, %v", v, ok)
	}
}

func TestLoadStateRejectsMalformedJSON(t *testing.T) {
	r := NewRegistry()
	if err := r.LoadState("not json"); err == nil {
		t.Fatalf("expected malformed JSON to be rejected")
	}
}

func TestSaveStateEmptyRegistry(t *testing.T) {
	r := NewRegistry()
	doc, err := r.SaveState()
	if err != nil {
		t.Fatalf("SaveState: %v", err)
	}
	if doc != "{}" {
		t.Errorf("got %q, want {}", doc)
	}
}
