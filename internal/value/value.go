// Package value implements the Lavendish runtime value model: the
// tagged-union Value variants, the numeric coercion lattice, explicit
// casts, and truthiness.
package value

import (
	"fmt"
)

// Kind identifies a Value variant. The declared order matches the
// coercion lattice (low to high rank) used by binary-operator
// promotion, excluding Range and Nil which are not lattice members.
type Kind int

const (
	KindBool Kind = iota
	KindInt
	KindFloat
	KindFixed
	KindCurrency
	KindArray
	KindObject
	KindString
	KindRange
	KindNil
)

func (k Kind) String() string {
	switch k {
	case KindBool:
		return "Bool"
	case KindInt:
		return "Int"
	case KindFloat:
		return "Float"
	case KindFixed:
		return "Fixed"
	case KindCurrency:
		return "Currency"
	case KindArray:
		return "Array"
	case KindObject:
		return "Object"
	case KindString:
		return "String"
	case KindRange:
		return "Range"
	case KindNil:
		return "Nil"
	default:
		return "Unknown"
	}
}

// Value is any runtime Lavendish value.
type Value interface {
	Kind() Kind
	String() string
	// Truthy reports the value's boolean coercion (spec.md §4.1).
	Truthy() bool
}

// rank returns the numeric-lattice position used for binary-operator
// promotion (spec.md §4.1): Bool < Int < Float < Fixed < Currency <
// Array < Object < String. Range is promoted to Array before ranking
// and Nil never participates in a binary op (callers must special-case
// it, typically raising TypeError).
func rank(k Kind) int {
	switch k {
	case KindBool:
		return 0
	case KindInt:
		return 1
	case KindFloat:
		return 2
	case KindFixed:
		return 3
	case KindCurrency:
		return 4
	case KindArray:
		return 5
	case KindObject:
		return 6
	case KindString:
		return 7
	default:
		return -1
	}
}

// Nil is the singleton absent value; equal only to itself.
type Nil struct{}

func (Nil) Kind() Kind      { return KindNil }
func (Nil) String() string  { return "nil" }
func (Nil) Truthy() bool    { return false }

// NilValue is the shared Nil instance.
var NilValue Value = Nil{}

// Bool is a truth value, treated as a 1-bit wrapping integer in
// arithmetic contexts.
type Bool struct {
	Val bool
}

func (b Bool) Kind() Kind { return KindBool }
func (b Bool) Truthy() bool { return b.Val }
func (b Bool) String() string {
	if b.Val {
		return "true"
	}
	return "false"
}

// AsInt widens a Bool to the unsigned 8-bit Int (0 or 1) used when a
// Bool takes part in integer arithmetic.
func (b Bool) AsInt() Int {
	v := int64(0)
	if b.Val {
		v = 1
	}
	return Int{Val: v, Width: W8, Signed: false}
}

// String is a UTF-8 codepoint sequence.
type String struct {
	Val string
}

func (s String) Kind() Kind     { return KindString }
func (s String) Truthy() bool   { return s.Val != "" }
func (s String) String() string { return s.Val }

// Float is a 64-bit IEEE-754 value.
type Float struct {
	Val float64
}

func (f Float) Kind() Kind   { return KindFloat }
func (f Float) Truthy() bool { return f.Val != 0 }
func (f Float) String() string {
	return formatFloat(f.Val)
}

// New constructs convenience values for common literals, used by the
// evaluator and by builtin implementations that don't need a width or
// decimal scale.
func NewBool(b bool) Value   { return Bool{Val: b} }
func NewString(s string) Value { return String{Val: s} }
func NewFloat(f float64) Value { return Float{Val: f} }
func NewInt(i int64) Value   { return Int{Val: i, Width: W64, Signed: true} }

// TypeError is raised for illegal casts or cross-kind operators that
// have no defined promotion (spec.md §4.5).
type TypeError struct {
	Op      string
	Left    Kind
	Right   Kind
	Message string
}

func (e *TypeError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("TypeError: cannot apply %s to %s and %s", e.Op, e.Left, e.Right)
}

// ValueError covers domain errors: negative root index, non-inclusive
// range, malformed regex, and similar (spec.md §4.5).
type ValueError struct {
	Message string
}

func (e *ValueError) Error() string { return "ValueError: " + e.Message }

// OverflowError is raised when integer arithmetic cannot be
// represented even after width promotion, or a resource cap is hit.
type OverflowError struct {
	Message string
}

func (e *OverflowError) Error() string { return "OverflowError: " + e.Message }

// DivisionByZeroError is raised by `/`, `%`, and compound forms when
// the divisor is a zero numeric value.
type DivisionByZeroError struct{}

func (e *DivisionByZeroError) Error() string { return "DivisionByZero" }
