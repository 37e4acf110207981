package stdlib

import (
	"strings"

	"github.com/lavendeux/lavendish/internal/extension"
	"github.com/lavendeux/lavendish/internal/value"
)

// registerTypeBuiltins covers runtime type inspection. Explicit
// conversion already has first-class grammar support via the `as
// Kind` cast operator (spec.md §4.1), so this category is limited to
// the predicates and introspection a cast can't express.
func registerTypeBuiltins(reg *extension.Registry) error {
	funcs := map[string]struct {
		fn   extension.NativeFunc
		args []string
		ret  string
	}{
		"type_of":  {builtinTypeOf, []string{"any"}, "string"},
		"is_kind":  {builtinIsKind, []string{"any", "string"}, "bool"},
		"is_numeric": {builtinIsNumeric, []string{"any"}, "bool"},
		"is_nil":   {builtinIsNil, []string{"any"}, "bool"},
	}
	for name, f := range funcs {
		if err := reg.RegisterFunction(name, f.fn, f.args, f.ret, ""); err != nil {
			return err
		}
	}
	return nil
}

func builtinTypeOf(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, arityError("type_of", 1, len(args))
	}
	return value.NewString(args[0].Kind().String()), nil
}

func builtinIsKind(args []value.Value) (value.Value, error) {
	if len(args) != 2 {
		return nil, arityError("is_kind", 2, len(args))
	}
	want, err := asString("is_kind", args[1])
	if err != nil {
		return nil, err
	}
	return value.NewBool(strings.EqualFold(args[0].Kind().String(), want)), nil
}

func builtinIsNumeric(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, arityError("is_numeric", 1, len(args))
	}
	switch args[0].Kind() {
	case value.KindBool, value.KindInt, value.KindFloat, value.KindFixed, value.KindCurrency:
		return value.NewBool(true), nil
	default:
		return value.NewBool(false), nil
	}
}

func builtinIsNil(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, arityError("is_nil", 1, len(args))
	}
	return value.NewBool(args[0].Kind() == value.KindNil), nil
}
