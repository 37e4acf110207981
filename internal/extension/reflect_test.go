package extension

import (
	"errors"
	"testing"

	"github.com/lavendeux/lavendish/internal/value"
)

func TestWrapFuncSingleReturn(t *testing.T) {
	fn, err := WrapFunc(func(a, b int64) int64 { return a + b })
	if err != nil {
		t.Fatalf("WrapFunc: %v", err)
	}
	out, err := fn([]value.Value{value.NewInt(2), value.NewInt(40)})
	if err != nil {
		t.Fatalf("call: %v", err)
	}
	if out.String() != "42" {
		t.Errorf("got %q, want 42", out.String())
	}
}

func TestWrapFuncValueAndError(t *testing.T) {
	fn, err := WrapFunc(func(a, b int64) (int64, error) {
		if b == 0 {
			return 0, errors.New("division by zero")
		}
		return a / b, nil
	})
	if err != nil {
		t.Fatalf("WrapFunc: %v", err)
	}
	if _, err := fn([]value.Value{value.NewInt(10), value.NewInt(0)}); err == nil {
		t.Fatalf("expected a division-by-zero error")
	}
	out, err := fn([]value.Value{value.NewInt(10), value.NewInt(2)})
	if err != nil {
		t.Fatalf("call: %v", err)
	}
	if out.String() != "5" {
		t.Errorf("got %q, want 5", out.String())
	}
}

func TestWrapFuncNoReturn(t *testing.T) {
	called := false
	fn, err := WrapFunc(func(s string) { called = true; _ = s })
	if err != nil {
		t.Fatalf("WrapFunc: %v", err)
	}
	out, err := fn([]value.Value{value.NewString("hi")})
	if err != nil {
		t.Fatalf("call: %v", err)
	}
	if !called {
		t.Errorf("expected the wrapped function to run")
	}
	if out != value.NilValue {
		t.Errorf("got %v, want Nil", out)
	}
}

func TestWrapFuncSliceArgumentAndReturn(t *testing.T) {
	fn, err := WrapFunc(func(ns []int64) []int64 {
		out := make([]int64, len(ns))
		for i, n := range ns {
			out[i] = n * 2
		}
		return out
	})
	if err != nil {
		t.Fatalf("WrapFunc: %v", err)
	}
	arr := value.Array{Elems: []value.Value{value.NewInt(1), value.NewInt(2), value.NewInt(3)}}
	out, err := fn([]value.Value{arr})
	if err != nil {
		t.Fatalf("call: %v", err)
	}
	if out.String() != "[2, 4, 6]" {
		t.Errorf("got %q, want [2, 4, 6]", out.String())
	}
}

func TestWrapFuncRejectsVariadic(t *testing.T) {
	if _, err := WrapFunc(func(ns ...int64) int64 { return int64(len(ns)) }); err == nil {
		t.Fatalf("expected variadic functions to be rejected")
	}
}

func TestWrapFuncRejectsNonFunction(t *testing.T) {
	if _, err := WrapFunc(42); err == nil {
		t.Fatalf("expected a non-function value to be rejected")
	}
}

func TestWrapFuncArityMismatch(t *testing.T) {
	fn, err := WrapFunc(func(a int64) int64 { return a })
	if err != nil {
		t.Fatalf("WrapFunc: %v", err)
	}
	if _, err := fn([]value.Value{value.NewInt(1), value.NewInt(2)}); err == nil {
		t.Fatalf("expected an arity mismatch error")
	}
}
