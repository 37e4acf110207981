package scope

import (
	"testing"

	"github.com/lavendeux/lavendish/internal/value"
)

func TestDefineAndGet(t *testing.T) {
	s := New()
	s.Define("x", value.NewInt(1))
	v, ok := s.Get("x")
	if !ok || v.(value.Int).Val != 1 {
		t.Fatalf("got %v, %v", v, ok)
	}
}

func TestAssignCreatesLocalWhenUnbound(t *testing.T) {
	s := New()
	inner := NewEnclosed(s)
	inner.Assign("y", value.NewInt(5))
	if _, ok := s.GetLocal("y"); ok {
		t.Errorf("y should not leak into outer frame")
	}
	if _, ok := inner.GetLocal("y"); !ok {
		t.Errorf("y should be local to inner frame")
	}
}

func TestAssignUpdatesOuterBinding(t *testing.T) {
	s := New()
	s.Define("x", value.NewInt(1))
	inner := NewEnclosed(s)
	inner.Assign("x", value.NewInt(2))
	if _, ok := inner.GetLocal("x"); ok {
		t.Errorf("x should not be redefined locally, it already exists in outer")
	}
	v, _ := s.Get("x")
	if v.(value.Int).Val != 2 {
		t.Errorf("got %v, want 2", v)
	}
}

func TestAssignGlobal(t *testing.T) {
	s := New()
	inner := NewEnclosed(s)
	inner.AssignGlobal("g", value.NewInt(9))
	if _, ok := inner.GetLocal("g"); ok {
		t.Errorf("g should not be local to inner frame")
	}
	v, ok := s.GetLocal("g")
	if !ok || v.(value.Int).Val != 9 {
		t.Errorf("got %v, %v", v, ok)
	}
}

func TestDeleteReturnsPriorValue(t *testing.T) {
	s := New()
	s.Define("x", value.NewInt(3))
	v, ok := s.Delete("x")
	if !ok || v.(value.Int).Val != 3 {
		t.Fatalf("got %v, %v", v, ok)
	}
	if s.Has("x") {
		t.Errorf("x should be gone after Delete")
	}
}
