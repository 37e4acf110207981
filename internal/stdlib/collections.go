package stdlib

import (
	"sort"

	"github.com/lavendeux/lavendish/internal/extension"
	"github.com/lavendeux/lavendish/internal/value"
)

// registerCollectionBuiltins covers Array/Object helpers that the
// grammar itself doesn't already provide through indexing (spec.md
// §4.2 index/subscript productions already cover append/pop/subrange;
// these are the remaining aggregate operations: length, key/value
// projection, sorting, de-duplication, and flattening).
func registerCollectionBuiltins(reg *extension.Registry) error {
	funcs := map[string]struct {
		fn   extension.NativeFunc
		args []string
		ret  string
	}{
		"len":     {builtinLen, []string{"any"}, "int"},
		"keys":    {builtinKeys, []string{"object"}, "array"},
		"values":  {builtinValues, []string{"object"}, "array"},
		"sort":    {builtinSort, []string{"array"}, "array"},
		"unique":  {builtinUnique, []string{"array"}, "array"},
		"flatten": {builtinFlatten, []string{"array"}, "array"},
		"first":   {builtinFirst, []string{"array"}, ""},
		"last":    {builtinLast, []string{"array"}, ""},
	}
	for name, f := range funcs {
		if err := reg.RegisterFunction(name, f.fn, f.args, f.ret, ""); err != nil {
			return err
		}
	}
	return nil
}

func builtinLen(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, arityError("len", 1, len(args))
	}
	switch t := args[0].(type) {
	case value.String:
		return value.NewInt(int64(len([]rune(t.Val)))), nil
	case value.Array:
		return value.NewInt(int64(len(t.Elems))), nil
	case value.Object:
		return value.NewInt(int64(len(t.Entries))), nil
	case value.Range:
		elems, err := t.Materialize()
		if err != nil {
			return nil, err
		}
		return value.NewInt(int64(len(elems))), nil
	default:
		return nil, typeError("len", "a String, Array, Object, or Range", args[0])
	}
}

func builtinKeys(args []value.Value) (value.Value, error) {
	o, ok := args[0].(value.Object)
	if !ok {
		return nil, typeError("keys", "an Object argument", args[0])
	}
	out := make([]value.Value, len(o.Entries))
	for i, e := range o.Entries {
		out[i] = e.Key
	}
	return value.Array{Elems: out}, nil
}

func builtinValues(args []value.Value) (value.Value, error) {
	o, ok := args[0].(value.Object)
	if !ok {
		return nil, typeError("values", "an Object argument", args[0])
	}
	out := make([]value.Value, len(o.Entries))
	for i, e := range o.Entries {
		out[i] = e.Val
	}
	return value.Array{Elems: out}, nil
}

func builtinSort(args []value.Value) (value.Value, error) {
	arr, err := asArray("sort", args[0])
	if err != nil {
		return nil, err
	}
	out := make([]value.Value, len(arr.Elems))
	copy(out, arr.Elems)
	var sortErr error
	sort.SliceStable(out, func(i, j int) bool {
		if sortErr != nil {
			return false
		}
		c, err := value.Compare(out[i], out[j])
		if err != nil {
			sortErr = err
			return false
		}
		return c < 0
	})
	if sortErr != nil {
		return nil, sortErr
	}
	return value.Array{Elems: out}, nil
}

func builtinUnique(args []value.Value) (value.Value, error) {
	arr, err := asArray("unique", args[0])
	if err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	out := make([]value.Value, 0, len(arr.Elems))
	for _, e := range arr.Elems {
		k := value.KeyString(e)
		if !seen[k] {
			seen[k] = true
			out = append(out, e)
		}
	}
	return value.Array{Elems: out}, nil
}

func builtinFlatten(args []value.Value) (value.Value, error) {
	arr, err := asArray("flatten", args[0])
	if err != nil {
		return nil, err
	}
	out := make([]value.Value, 0, len(arr.Elems))
	for _, e := range arr.Elems {
		if inner, ok := e.(value.Array); ok {
			out = append(out, inner.Elems...)
		} else {
			out = append(out, e)
		}
	}
	return value.Array{Elems: out}, nil
}

func builtinFirst(args []value.Value) (value.Value, error) {
	arr, err := asArray("first", args[0])
	if err != nil {
		return nil, err
	}
	if len(arr.Elems) == 0 {
		return nil, &value.ValueError{Message: "first of an empty array"}
	}
	return arr.Elems[0], nil
}

func builtinLast(args []value.Value) (value.Value, error) {
	arr, err := asArray("last", args[0])
	if err != nil {
		return nil, err
	}
	if len(arr.Elems) == 0 {
		return nil, &value.ValueError{Message: "last of an empty array"}
	}
	return arr.Elems[len(arr.Elems)-1], nil
}
