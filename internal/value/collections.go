package value

import (
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// Array is an ordered sequence of Value.
type Array struct {
	Elems []Value
}

func (a Array) Kind() Kind   { return KindArray }
func (a Array) Truthy() bool { return len(a.Elems) > 0 }
func (a Array) String() string {
	parts := make([]string, len(a.Elems))
	for i, e := range a.Elems {
		parts[i] = quoteIfString(e)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func quoteIfString(v Value) string {
	if s, ok := v.(String); ok {
		return "\"" + s.Val + "\""
	}
	return v.String()
}

// ObjectEntry is one key/value pair of an Object, kept in insertion
// order.
type ObjectEntry struct {
	Key Value
	Val Value
}

// Object associates non-collection keys to values, preserving
// insertion order for iteration (spec.md §3.1). Equality between keys
// uses the same canonical numeric/string identity as KeyString below,
// not Go's == on the Value interface.
type Object struct {
	Entries []ObjectEntry
}

func (o Object) Kind() Kind   { return KindObject }
func (o Object) Truthy() bool { return len(o.Entries) > 0 }
func (o Object) String() string {
	parts := make([]string, len(o.Entries))
	for i, e := range o.Entries {
		parts[i] = quoteIfString(e.Key) + ": " + quoteIfString(e.Val)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// IsCollection reports whether v is Array, Object, or Range — the
// three variants that cannot be used as Object keys (spec.md §3.1
// invariant: "Object keys must be non-collection").
func IsCollection(v Value) bool {
	switch v.Kind() {
	case KindArray, KindObject, KindRange:
		return true
	default:
		return false
	}
}

// KeyString produces a canonical identity string for a non-collection
// Value, used for Object key lookup/equality. Numeric kinds (Bool,
// Int, Float, Fixed, Currency) compare by canonical decimal value so
// that `1` and `1.0` and `true` address the same entry, consistent
// with the type-insensitive comparison rule in spec.md §4.1. Currency
// tags are not part of key identity.
func KeyString(v Value) string {
	switch t := v.(type) {
	case Bool:
		if t.Val {
			return "n:1"
		}
		return "n:0"
	case Int:
		var bi big.Int
		if t.Signed {
			bi.SetInt64(t.Val)
		} else {
			bi.SetUint64(t.Unsigned())
		}
		return "n:" + decimal.NewFromBigInt(&bi, 0).String()
	case Float:
		return "n:" + decimal.NewFromFloat(t.Val).String()
	case Fixed:
		return "n:" + t.Val.String()
	case Currency:
		return "n:" + t.Val.String()
	case String:
		return "s:" + t.Val
	case Nil:
		return "nil"
	default:
		return "?:" + v.String()
	}
}

// Get looks up a key, returning the stored value and whether it was
// present.
func (o *Object) Get(key Value) (Value, bool) {
	ks := KeyString(key)
	for _, e := range o.Entries {
		if KeyString(e.Key) == ks {
			return e.Val, true
		}
	}
	return nil, false
}

// Set inserts or updates key, preserving the original insertion
// position on update and appending on insert.
func (o *Object) Set(key, val Value) {
	ks := KeyString(key)
	for i, e := range o.Entries {
		if KeyString(e.Key) == ks {
			o.Entries[i].Val = val
			return
		}
	}
	o.Entries = append(o.Entries, ObjectEntry{Key: key, Val: val})
}

// Delete removes key, returning its prior value.
func (o *Object) Delete(key Value) (Value, bool) {
	ks := KeyString(key)
	for i, e := range o.Entries {
		if KeyString(e.Key) == ks {
			o.Entries = append(o.Entries[:i], o.Entries[i+1:]...)
			return e.Val, true
		}
	}
	return nil, false
}

// Range is an inclusive [Start,End] where both bounds are Int or
// single-character String (spec.md §3.1). It materializes to an Array
// on demand; it is never itself constructed by a cast.
type Range struct {
	Start Value
	End   Value
}

func (r Range) Kind() Kind { return KindRange }
func (r Range) String() string {
	return r.Start.String() + ".." + r.End.String()
}

// Truthy reports whether the Range's materialization would be
// non-empty (spec.md §4.1).
func (r Range) Truthy() bool {
	elems, err := r.Materialize()
	if err != nil {
		return false
	}
	return len(elems) > 0
}

// Materialize expands the Range into its inclusive element sequence.
func (r Range) Materialize() ([]Value, error) {
	switch start := r.Start.(type) {
	case Int:
		end, ok := r.End.(Int)
		if !ok {
			return nil, &TypeError{Message: "range bounds must be the same kind"}
		}
		if start.Val > end.Val {
			return nil, &ValueError{Message: "range start must not exceed end"}
		}
		out := make([]Value, 0, end.Val-start.Val+1)
		for v := start.Val; v <= end.Val; v++ {
			out = append(out, Int{Val: v, Width: W64, Signed: true})
		}
		return out, nil
	case String:
		end, ok := r.End.(String)
		if !ok {
			return nil, &TypeError{Message: "range bounds must be the same kind"}
		}
		sr := []rune(start.Val)
		er := []rune(end.Val)
		if len(sr) != 1 || len(er) != 1 {
			return nil, &ValueError{Message: "string range bounds must be single characters"}
		}
		if sr[0] > er[0] {
			return nil, &ValueError{Message: "range start must not exceed end"}
		}
		out := make([]Value, 0, er[0]-sr[0]+1)
		for c := sr[0]; c <= er[0]; c++ {
			out = append(out, String{Val: string(c)})
		}
		return out, nil
	default:
		return nil, &TypeError{Message: "range bounds must be Int or single-character String"}
	}
}

// AsArray converts the Range to an Array, the only conversion a Range
// supports (spec.md §3.1: "non-constructible from casts; only
// convertible to Array").
func (r Range) AsArray() (Array, error) {
	elems, err := r.Materialize()
	if err != nil {
		return Array{}, err
	}
	return Array{Elems: elems}, nil
}
