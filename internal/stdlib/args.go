package stdlib

import (
	"strconv"

	"github.com/lavendeux/lavendish/internal/value"
)

// arityError reports a built-in called with the wrong argument count
// as a *value.TypeError. Calls through the evaluator are checked
// against the registered ArgKinds first and raise *interp.ArityError,
// so this path is reached only by direct calls such as
// Engine.CallFunction.
func arityError(name string, want int, got int) error {
	return &value.TypeError{Message: name + " expects " + strconv.Itoa(want) + " argument(s), got " + strconv.Itoa(got)}
}

func typeError(name, expected string, got value.Value) error {
	return &value.TypeError{Message: name + " expects " + expected + ", got " + got.Kind().String()}
}

// asFloat coerces any numeric Value to float64 for math built-ins,
// which operate in floating point regardless of the operand's native
// Kind (spec.md §4.1 numeric coercion lattice).
func asFloat(name string, v value.Value) (float64, error) {
	f, err := value.Cast(v, "float")
	if err != nil {
		return 0, typeError(name, "a numeric argument", v)
	}
	return f.(value.Float).Val, nil
}

func asInt(name string, v value.Value) (int64, error) {
	i, err := value.Cast(v, "int")
	if err != nil {
		return 0, typeError(name, "an integer argument", v)
	}
	iv := i.(value.Int)
	if iv.Signed {
		return iv.Val, nil
	}
	return int64(iv.Unsigned()), nil
}

func asString(name string, v value.Value) (string, error) {
	s, ok := v.(value.String)
	if !ok {
		return "", typeError(name, "a String argument", v)
	}
	return s.Val, nil
}

func asArray(name string, v value.Value) (value.Array, error) {
	a, ok := v.(value.Array)
	if !ok {
		return value.Array{}, typeError(name, "an Array argument", v)
	}
	return a, nil
}
