package stdlib

import (
	"strings"

	"github.com/lavendeux/lavendish/internal/extension"
	"github.com/lavendeux/lavendish/internal/value"
)

// registerStringBuiltins registers the string built-ins for the
// single-line clipboard-transform use case (spec.md §1): case
// conversion, trimming, splitting/joining, padding, and substring
// search, under the lowercase_snake_case names a Lavendish script
// author would actually type.
func registerStringBuiltins(reg *extension.Registry) error {
	funcs := map[string]struct {
		fn   extension.NativeFunc
		args []string
		ret  string
	}{
		"upper":      {builtinUpper, []string{"string"}, "string"},
		"lower":      {builtinLower, []string{"string"}, "string"},
		"trim":       {builtinTrim, []string{"string"}, "string"},
		"trim_start": {builtinTrimStart, []string{"string"}, "string"},
		"trim_end":   {builtinTrimEnd, []string{"string"}, "string"},
		"split":      {builtinSplit, []string{"string", "string"}, "array"},
		"join":       {builtinJoin, []string{"array", "string"}, "string"},
		"replace":    {builtinReplace, []string{"string", "string", "string"}, "string"},
		"repeat":     {builtinRepeat, []string{"string", "int"}, "string"},
		"reverse":    {builtinReverse, []string{"string"}, "string"},
		"pad_left":   {builtinPadLeft, []string{"string", "int", "string"}, "string"},
		"pad_right":  {builtinPadRight, []string{"string", "int", "string"}, "string"},
		"index_of":   {builtinIndexOf, []string{"string", "string"}, "int"},
		"ord":        {builtinOrd, []string{"string"}, "int"},
		"chr":        {builtinChr, []string{"int"}, "string"},
	}
	for name, f := range funcs {
		if err := reg.RegisterFunction(name, f.fn, f.args, f.ret, ""); err != nil {
			return err
		}
	}
	return nil
}

func builtinUpper(args []value.Value) (value.Value, error) {
	s, err := asString("upper", args[0])
	if err != nil {
		return nil, err
	}
	return value.NewString(strings.ToUpper(s)), nil
}

func builtinLower(args []value.Value) (value.Value, error) {
	s, err := asString("lower", args[0])
	if err != nil {
		return nil, err
	}
	return value.NewString(strings.ToLower(s)), nil
}

func builtinTrim(args []value.Value) (value.Value, error) {
	s, err := asString("trim", args[0])
	if err != nil {
		return nil, err
	}
	return value.NewString(strings.TrimSpace(s)), nil
}

func builtinTrimStart(args []value.Value) (value.Value, error) {
	s, err := asString("trim_start", args[0])
	if err != nil {
		return nil, err
	}
	return value.NewString(strings.TrimLeft(s, " \t\r\n")), nil
}

func builtinTrimEnd(args []value.Value) (value.Value, error) {
	s, err := asString("trim_end", args[0])
	if err != nil {
		return nil, err
	}
	return value.NewString(strings.TrimRight(s, " \t\r\n")), nil
}

func builtinSplit(args []value.Value) (value.Value, error) {
	if len(args) != 2 {
		return nil, arityError("split", 2, len(args))
	}
	s, err := asString("split", args[0])
	if err != nil {
		return nil, err
	}
	sep, err := asString("split", args[1])
	if err != nil {
		return nil, err
	}
	parts := strings.Split(s, sep)
	elems := make([]value.Value, len(parts))
	for i, p := range parts {
		elems[i] = value.NewString(p)
	}
	return value.Array{Elems: elems}, nil
}

func builtinJoin(args []value.Value) (value.Value, error) {
	if len(args) != 2 {
		return nil, arityError("join", 2, len(args))
	}
	arr, err := asArray("join", args[0])
	if err != nil {
		return nil, err
	}
	sep, err := asString("join", args[1])
	if err != nil {
		return nil, err
	}
	parts := make([]string, len(arr.Elems))
	for i, e := range arr.Elems {
		parts[i] = e.String()
	}
	return value.NewString(strings.Join(parts, sep)), nil
}

func builtinReplace(args []value.Value) (value.Value, error) {
	if len(args) != 3 {
		return nil, arityError("replace", 3, len(args))
	}
	s, err := asString("replace", args[0])
	if err != nil {
		return nil, err
	}
	old, err := asString("replace", args[1])
	if err != nil {
		return nil, err
	}
	new_, err := asString("replace", args[2])
	if err != nil {
		return nil, err
	}
	return value.NewString(strings.ReplaceAll(s, old, new_)), nil
}

func builtinRepeat(args []value.Value) (value.Value, error) {
	if len(args) != 2 {
		return nil, arityError("repeat", 2, len(args))
	}
	s, err := asString("repeat", args[0])
	if err != nil {
		return nil, err
	}
	n, err := asInt("repeat", args[1])
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, &value.ValueError{Message: "repeat count must not be negative"}
	}
	return value.NewString(strings.Repeat(s, int(n))), nil
}

func builtinReverse(args []value.Value) (value.Value, error) {
	s, err := asString("reverse", args[0])
	if err != nil {
		return nil, err
	}
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return value.NewString(string(runes)), nil
}

func builtinPadLeft(args []value.Value) (value.Value, error) {
	return pad(args, "pad_left", true)
}

func builtinPadRight(args []value.Value) (value.Value, error) {
	return pad(args, "pad_right", false)
}

func pad(args []value.Value, name string, left bool) (value.Value, error) {
	if len(args) != 3 {
		return nil, arityError(name, 3, len(args))
	}
	s, err := asString(name, args[0])
	if err != nil {
		return nil, err
	}
	width, err := asInt(name, args[1])
	if err != nil {
		return nil, err
	}
	fill, err := asString(name, args[2])
	if err != nil {
		return nil, err
	}
	if fill == "" {
		fill = " "
	}
	runeLen := len([]rune(s))
	if int64(runeLen) >= width {
		return value.NewString(s), nil
	}
	need := int(width) - runeLen
	padding := strings.Repeat(fill, need/len([]rune(fill))+1)
	padding = string([]rune(padding)[:need])
	if left {
		return value.NewString(padding + s), nil
	}
	return value.NewString(s + padding), nil
}

func builtinIndexOf(args []value.Value) (value.Value, error) {
	if len(args) != 2 {
		return nil, arityError("index_of", 2, len(args))
	}
	s, err := asString("index_of", args[0])
	if err != nil {
		return nil, err
	}
	sub, err := asString("index_of", args[1])
	if err != nil {
		return nil, err
	}
	return value.NewInt(int64(strings.Index(s, sub))), nil
}

func builtinOrd(args []value.Value) (value.Value, error) {
	s, err := asString("ord", args[0])
	if err != nil {
		return nil, err
	}
	runes := []rune(s)
	if len(runes) != 1 {
		return nil, &value.ValueError{Message: "ord expects a single-character string"}
	}
	return value.NewInt(int64(runes[0])), nil
}

func builtinChr(args []value.Value) (value.Value, error) {
	n, err := asInt("chr", args[0])
	if err != nil {
		return nil, err
	}
	return value.NewString(string(rune(n))), nil
}
