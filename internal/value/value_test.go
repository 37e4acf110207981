package value

import "testing"

func TestIntWrap(t *testing.T) {
	i := Int{Val: 200, Width: W8, Signed: true}.Wrap()
	if i.Val != -56 {
		t.Errorf("got %d, want -56 (200 wraps to -56 in signed i8)", i.Val)
	}
}

func TestPromoteNumeric(t *testing.T) {
	a := NewBool(true)
	b := NewFloat(2.5)
	pa, pb, err := Promote(a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pa.Kind() != KindFloat || pb.Kind() != KindFloat {
		t.Errorf("got %s/%s, want Float/Float", pa.Kind(), pb.Kind())
	}
	if pa.(Float).Val != 1 {
		t.Errorf("got %v, want 1", pa.(Float).Val)
	}
}

func TestPromoteCollectionLift(t *testing.T) {
	arr := Array{Elems: []Value{NewInt(1), NewInt(2)}}
	pa, pb, err := Promote(arr, NewInt(3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pa.Kind() != KindArray || pb.Kind() != KindArray {
		t.Fatalf("got %s/%s, want Array/Array", pa.Kind(), pb.Kind())
	}
	if len(pb.(Array).Elems) != 1 {
		t.Errorf("got %d elems, want 1 (lifted singleton)", len(pb.(Array).Elems))
	}
}

func TestEqualsCrossKind(t *testing.T) {
	eq, err := Equals(NewInt(1), NewBool(true))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !eq {
		t.Errorf("want 1 == true")
	}
}

func TestEqualsIgnoresIntWidthAndSignedness(t *testing.T) {
	cases := []struct {
		name string
		a, b Value
	}{
		{"negative narrow signed vs default i64", Int{Val: -5, Width: W8, Signed: true}.Wrap(), NewInt(-5)},
		{"unsigned narrow vs default i64", Int{Val: 5, Width: W8, Signed: false}, NewInt(5)},
	}
	for _, c := range cases {
		eq, err := Equals(c.a, c.b)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", c.name, err)
		}
		if !eq {
			t.Errorf("%s: want %v == %v", c.name, c.a, c.b)
		}
	}
}

func TestStrictEqualsRequiresSameKind(t *testing.T) {
	if StrictEquals(NewInt(1), NewFloat(1)) {
		t.Errorf("want 1 !== 1.0")
	}
	if !StrictEquals(NewInt(1), NewInt(1)) {
		t.Errorf("want 1 === 1")
	}
}

func TestCastIntToFloat(t *testing.T) {
	out, err := Cast(NewInt(42), "float")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.(Float).Val != 42 {
		t.Errorf("got %v, want 42", out)
	}
}

func TestCastArraySingleton(t *testing.T) {
	arr := Array{Elems: []Value{NewInt(7)}}
	out, err := Cast(arr, "int")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.(Int).Val != 7 {
		t.Errorf("got %v, want 7", out)
	}
}

func TestCastArrayWrongLengthFails(t *testing.T) {
	arr := Array{Elems: []Value{NewInt(1), NewInt(2)}}
	if _, err := Cast(arr, "int"); err == nil {
		t.Errorf("want error casting length-2 array to scalar")
	}
}

func TestCastSaturation(t *testing.T) {
	out, err := Cast(NewInt(1000), "i8")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.(Int).Val != 127 {
		t.Errorf("got %d, want 127 (saturated)", out.(Int).Val)
	}
}

func TestRangeMaterialize(t *testing.T) {
	r := Range{Start: NewInt(1), End: NewInt(3)}
	elems, err := r.Materialize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(elems) != 3 {
		t.Fatalf("got %d elems, want 3", len(elems))
	}
}

func TestObjectInsertionOrder(t *testing.T) {
	var o Object
	o.Set(NewString("b"), NewInt(2))
	o.Set(NewString("a"), NewInt(1))
	if o.Entries[0].Key.(String).Val != "b" || o.Entries[1].Key.(String).Val != "a" {
		t.Errorf("got %+v, want insertion order b,a", o.Entries)
	}
}

func TestTruthiness(t *testing.T) {
	cases := []struct {
		v    Value
		want bool
	}{
		{NewInt(0), false},
		{NewInt(1), true},
		{NewString(""), false},
		{NewString("x"), true},
		{Array{}, false},
		{Array{Elems: []Value{NewInt(1)}}, true},
	}
	for _, c := range cases {
		if c.v.Truthy() != c.want {
			t.Errorf("%v.Truthy() = %v, want %v", c.v, c.v.Truthy(), c.want)
		}
	}
}
