package stdlib

import (
	"github.com/lavendeux/lavendish/internal/extension"
	"github.com/lavendeux/lavendish/internal/interp"
	"github.com/lavendeux/lavendish/internal/parser"
	"github.com/lavendeux/lavendish/internal/value"
)

// registerAssertBuiltins covers the closed error taxonomy's one
// user-facing escape hatch (spec.md §4.5/§7): synthesizing a
// *interp.UserError from script code, structured assertions, and
// would_err's sandboxed re-evaluation. would_err needs the registry
// its sibling built-ins share, so it's a closure rather than a
// package-level function like the rest of this package.
func registerAssertBuiltins(reg *extension.Registry) error {
	if err := reg.RegisterFunction("error", builtinError, []string{"string"}, "", ""); err != nil {
		return err
	}
	if err := reg.RegisterFunction("assert", builtinAssert, []string{"any"}, "bool", ""); err != nil {
		return err
	}
	if err := reg.RegisterFunction("assert_eq", builtinAssertEq, []string{"any", "any"}, "bool", ""); err != nil {
		return err
	}
	if err := reg.RegisterFunction("would_err", wouldErr(reg), []string{"string"}, "bool", ""); err != nil {
		return err
	}
	return nil
}

func builtinError(args []value.Value) (value.Value, error) {
	msg, err := asString("error", args[0])
	if err != nil {
		return nil, err
	}
	return nil, &interp.UserError{Message: msg}
}

func builtinAssert(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, arityError("assert", 1, len(args))
	}
	if !args[0].Truthy() {
		return nil, &interp.UserError{Message: "assertion failed"}
	}
	return value.NewBool(true), nil
}

// builtinAssertEq requires identical Kind in addition to value
// equality (spec.md §4.5: "assert_eq additionally fails when kinds
// differ even if weak-equal values would compare as equal").
func builtinAssertEq(args []value.Value) (value.Value, error) {
	if len(args) != 2 {
		return nil, arityError("assert_eq", 2, len(args))
	}
	a, b := args[0], args[1]
	if a.Kind() != b.Kind() {
		return nil, &interp.UserError{Message: "assert_eq: kinds differ (" + a.Kind().String() + " vs " + b.Kind().String() + ")"}
	}
	eq, err := value.Equals(a, b)
	if err != nil {
		return nil, err
	}
	if !eq {
		return nil, &interp.UserError{Message: "assert_eq: " + a.String() + " != " + b.String()}
	}
	return value.NewBool(true), nil
}

// wouldErr implements `would_err(src)`: parses and evaluates src in a
// fresh Interp sharing this registry, reporting whether it raised any
// error rather than propagating one (spec.md §4.5, §7, example 9).
func wouldErr(reg *extension.Registry) extension.NativeFunc {
	return func(args []value.Value) (value.Value, error) {
		if len(args) != 1 {
			return nil, arityError("would_err", 1, len(args))
		}
		src, err := asString("would_err", args[0])
		if err != nil {
			return nil, err
		}
		prog, parseErrs := parser.ParseProgram(src)
		if len(parseErrs) != 0 {
			return value.NewBool(true), nil
		}
		sandbox := interp.New(reg)
		if _, err := sandbox.EvalProgram(prog); err != nil {
			return value.NewBool(true), nil
		}
		return value.NewBool(false), nil
	}
}
