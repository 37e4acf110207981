package value

import (
	"math"

	"github.com/shopspring/decimal"
)

// Promote brings two operands to a common kind for a binary operator,
// per spec.md §4.1: operands are promoted to the higher kind in
// lattice order (Bool, Int, Float, Fixed, Currency, Array, Object,
// String); Range is promoted to Array first; if either side is a
// collection, the other side is lifted to a single-element collection
// of the same kind.
func Promote(left, right Value) (Value, Value, error) {
	if r, ok := left.(Range); ok {
		arr, err := r.AsArray()
		if err != nil {
			return nil, nil, err
		}
		left = arr
	}
	if r, ok := right.(Range); ok {
		arr, err := r.AsArray()
		if err != nil {
			return nil, nil, err
		}
		right = arr
	}

	lIsColl := IsCollection(left)
	rIsColl := IsCollection(right)
	if lIsColl && !rIsColl {
		return left, lift(right, left.Kind()), nil
	}
	if rIsColl && !lIsColl {
		return lift(left, right.Kind()), right, nil
	}
	if lIsColl && rIsColl {
		if left.Kind() != right.Kind() {
			// Collection-vs-collection of differing kind: promote the
			// lower-ranked collection kind up (Array -> Object -> String).
			if rank(left.Kind()) < rank(right.Kind()) {
				left = lift(left, right.Kind())
			} else {
				right = lift(right, left.Kind())
			}
		}
		return left, right, nil
	}

	if left.Kind() == KindString || right.Kind() == KindString {
		return String{Val: left.String()}, String{Val: right.String()}, nil
	}

	target := rank(left.Kind())
	if rank(right.Kind()) > target {
		target = rank(right.Kind())
	}
	l, err := promoteNumericTo(left, target)
	if err != nil {
		return nil, nil, err
	}
	r, err := promoteNumericTo(right, target)
	if err != nil {
		return nil, nil, err
	}
	return l, r, nil
}

// lift wraps v as a single-element collection of kind, per the cast
// rule "Any T -> Array yields [T]" and the symmetric Object rule with
// synthesized integer key 0.
func lift(v Value, kind Kind) Value {
	switch kind {
	case KindArray:
		return Array{Elems: []Value{v}}
	case KindObject:
		return Object{Entries: []ObjectEntry{{Key: NewInt(0), Val: v}}}
	case KindString:
		return String{Val: v.String()}
	default:
		return v
	}
}

func promoteNumericTo(v Value, target int) (Value, error) {
	for rank(v.Kind()) < target {
		next, err := stepUp(v)
		if err != nil {
			return nil, err
		}
		v = next
	}
	return v, nil
}

// stepUp promotes v exactly one lattice rank: Bool->Int->Float->Fixed->Currency.
func stepUp(v Value) (Value, error) {
	switch t := v.(type) {
	case Bool:
		return t.AsInt(), nil
	case Int:
		if t.Signed {
			return Float{Val: float64(t.Val)}, nil
		}
		return Float{Val: float64(t.Unsigned())}, nil
	case Float:
		d := decimal.NewFromFloat(t.Val)
		return Fixed{Val: d}, nil
	case Fixed:
		return Currency{Val: t.Val, Tag: ""}, nil
	default:
		return v, nil
	}
}

// ReconcileCurrencyTags strips the tag from both sides when two
// Currencies carry differing tags, per the invariant in spec.md §3.1.
func ReconcileCurrencyTags(a, b Value) (Value, Value) {
	ca, aok := a.(Currency)
	cb, bok := b.(Currency)
	if aok && bok && ca.Tag != cb.Tag {
		return ca.StripTag(), cb.StripTag()
	}
	return a, b
}

// Equals implements type-insensitive equality: operands are promoted
// per Promote and then compared within the resulting common kind.
func Equals(a, b Value) (bool, error) {
	if a.Kind() == KindNil || b.Kind() == KindNil {
		return a.Kind() == KindNil && b.Kind() == KindNil, nil
	}
	pa, pb, err := Promote(a, b)
	if err != nil {
		return false, err
	}
	pa, pb = ReconcileCurrencyTags(pa, pb)
	return rawEquals(pa, pb), nil
}

func rawEquals(a, b Value) bool {
	switch x := a.(type) {
	case Bool:
		return x.Val == b.(Bool).Val
	case Int:
		px, py := PromoteInts(x, b.(Int))
		if px.Signed {
			return px.Val == py.Val
		}
		return px.Unsigned() == py.Unsigned()
	case Float:
		y := b.(Float).Val
		if math.IsNaN(x.Val) || math.IsNaN(y) {
			return false
		}
		return x.Val == y
	case Fixed:
		return x.Val.Equal(b.(Fixed).Val)
	case Currency:
		return x.Val.Equal(b.(Currency).Val)
	case String:
		return x.Val == b.(String).Val
	case Array:
		y := b.(Array)
		if len(x.Elems) != len(y.Elems) {
			return false
		}
		for i := range x.Elems {
			eq, err := Equals(x.Elems[i], y.Elems[i])
			if err != nil || !eq {
				return false
			}
		}
		return true
	case Object:
		y := b.(Object)
		if len(x.Entries) != len(y.Entries) {
			return false
		}
		for _, e := range x.Entries {
			yv, ok := y.Get(e.Key)
			if !ok {
				return false
			}
			eq, err := Equals(e.Val, yv)
			if err != nil || !eq {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// StrictEquals implements `===`/`!==`: requires identical Kind (no
// promotion) and, for Float, identical bit pattern so that
// `nan === nan` is true even though `nan == nan` is false.
func StrictEquals(a, b Value) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	if af, ok := a.(Float); ok {
		return math.Float64bits(af.Val) == math.Float64bits(b.(Float).Val)
	}
	return rawEquals(a, b)
}

// Compare orders two promoted values, returning -1/0/1. Used for
// `<`,`>`,`<=`,`>=`. Arrays/Objects/Strings compare lexicographically
// by element/entry; Booleans and numerics compare by numeric value.
func Compare(a, b Value) (int, error) {
	pa, pb, err := Promote(a, b)
	if err != nil {
		return 0, err
	}
	pa, pb = ReconcileCurrencyTags(pa, pb)
	switch x := pa.(type) {
	case Bool:
		y := pb.(Bool)
		return cmpBool(x.Val, y.Val), nil
	case Int:
		y := pb.(Int)
		if x.Signed {
			return cmpInt64(x.Val, y.Val), nil
		}
		return cmpUint64(x.Unsigned(), y.Unsigned()), nil
	case Float:
		y := pb.(Float).Val
		return cmpFloat(x.Val, y), nil
	case Fixed:
		return int(x.Val.Cmp(pb.(Fixed).Val)), nil
	case Currency:
		return int(x.Val.Cmp(pb.(Currency).Val)), nil
	case String:
		y := pb.(String).Val
		switch {
		case x.Val < y:
			return -1, nil
		case x.Val > y:
			return 1, nil
		default:
			return 0, nil
		}
	case Array:
		y := pb.(Array)
		n := len(x.Elems)
		if len(y.Elems) < n {
			n = len(y.Elems)
		}
		for i := 0; i < n; i++ {
			c, err := Compare(x.Elems[i], y.Elems[i])
			if err != nil {
				return 0, err
			}
			if c != 0 {
				return c, nil
			}
		}
		return cmpInt64(int64(len(x.Elems)), int64(len(y.Elems))), nil
	default:
		return 0, &TypeError{Message: "values are not ordered: " + pa.Kind().String()}
	}
}

func cmpBool(a, b bool) int {
	ai, bi := 0, 0
	if a {
		ai = 1
	}
	if b {
		bi = 1
	}
	return cmpInt64(int64(ai), int64(bi))
}

func cmpInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpUint64(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func cmpFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
