package stdlib

import (
	"strconv"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/lavendeux/lavendish/internal/extension"
	"github.com/lavendeux/lavendish/internal/value"
)

// registerJSONBuiltins gives scripts a way to operate on clipboard
// content that is itself JSON (spec.md §1's primary use case),
// grounded on the gjson/sjson dependency pair SPEC_FULL.md §4.4 wires
// in rather than a round-trip through reflection-based encoding/json.
func registerJSONBuiltins(reg *extension.Registry) error {
	if err := reg.RegisterFunction("to_json", builtinToJSON, []string{"any"}, "string", ""); err != nil {
		return err
	}
	if err := reg.RegisterFunction("from_json", builtinFromJSON, []string{"string"}, "", ""); err != nil {
		return err
	}
	if err := reg.RegisterFunction("json_get", builtinJSONGet, []string{"string", "string"}, "", ""); err != nil {
		return err
	}
	return nil
}

func builtinToJSON(args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, arityError("to_json", 1, len(args))
	}
	out, err := valueToJSON(args[0])
	if err != nil {
		return nil, err
	}
	return value.NewString(out), nil
}

func builtinFromJSON(args []value.Value) (value.Value, error) {
	s, err := asString("from_json", args[0])
	if err != nil {
		return nil, err
	}
	if !gjson.Valid(s) {
		return nil, &value.ValueError{Message: "from_json: malformed JSON"}
	}
	return jsonToValue(gjson.Parse(s)), nil
}

// builtinJSONGet reads a single gjson path out of a JSON document
// without materializing the whole structure into Lavendish Values
// first, e.g. `json_get(clipboard, "user.addresses.0.city")`.
func builtinJSONGet(args []value.Value) (value.Value, error) {
	src, err := asString("json_get", args[0])
	if err != nil {
		return nil, err
	}
	path, err := asString("json_get", args[1])
	if err != nil {
		return nil, err
	}
	result := gjson.Get(src, path)
	if !result.Exists() {
		return value.NilValue, nil
	}
	return jsonToValue(result), nil
}

// valueToJSON serializes v. Nil, Bool and Int are formatted directly;
// String, Float, Fixed and Currency are set under a throwaway key of a
// small wrapper document with sjson.Set and read back as raw JSON
// (sjson needs a non-empty path, so it cannot set a bare root scalar);
// Array/Object recursively build their document with sjson.SetRaw, one
// element/entry at a time, starting from "[]"/"{}".
func valueToJSON(v value.Value) (string, error) {
	switch t := v.(type) {
	case value.Nil:
		return "null", nil
	case value.Bool:
		return boolJSON(t.Val), nil
	case value.String:
		raw, err := sjson.Set(`{"v":0}`, "v", t.Val)
		if err != nil {
			return "", err
		}
		return gjson.Get(raw, "v").Raw, nil
	case value.Int:
		if t.Signed {
			return strconv.FormatInt(t.Val, 10), nil
		}
		return strconv.FormatUint(t.Unsigned(), 10), nil
	case value.Float:
		f, err := sjson.Set(`{"v":0}`, "v", t.Val)
		if err != nil {
			return "", err
		}
		return gjson.Get(f, "v").Raw, nil
	case value.Fixed, value.Currency:
		f, err := value.Cast(v, "float")
		if err != nil {
			return "", err
		}
		out, err := sjson.Set(`{"v":0}`, "v", f.(value.Float).Val)
		if err != nil {
			return "", err
		}
		return gjson.Get(out, "v").Raw, nil
	case value.Array:
		doc := "[]"
		for i, e := range t.Elems {
			child, err := valueToJSON(e)
			if err != nil {
				return "", err
			}
			var rawErr error
			doc, rawErr = sjson.SetRaw(doc, indexPath(i), child)
			if rawErr != nil {
				return "", rawErr
			}
		}
		return doc, nil
	case value.Object:
		doc := "{}"
		for _, e := range t.Entries {
			child, err := valueToJSON(e.Val)
			if err != nil {
				return "", err
			}
			var rawErr error
			doc, rawErr = sjson.SetRaw(doc, e.Key.String(), child)
			if rawErr != nil {
				return "", rawErr
			}
		}
		return doc, nil
	case value.Range:
		arr, err := t.AsArray()
		if err != nil {
			return "", err
		}
		return valueToJSON(arr)
	default:
		return "", &value.TypeError{Message: "to_json: unsupported value kind " + v.Kind().String()}
	}
}

func indexPath(i int) string {
	return strconv.Itoa(i)
}

func boolJSON(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// jsonToValue maps a gjson.Result onto the Lavendish value model.
func jsonToValue(r gjson.Result) value.Value {
	switch r.Type {
	case gjson.Null:
		return value.NilValue
	case gjson.False:
		return value.NewBool(false)
	case gjson.True:
		return value.NewBool(true)
	case gjson.Number:
		if r.Num == float64(int64(r.Num)) {
			return value.NewInt(int64(r.Num))
		}
		return value.NewFloat(r.Num)
	case gjson.String:
		return value.NewString(r.String())
	case gjson.JSON:
		if r.IsArray() {
			var elems []value.Value
			r.ForEach(func(_, v gjson.Result) bool {
				elems = append(elems, jsonToValue(v))
				return true
			})
			return value.Array{Elems: elems}
		}
		out := value.Object{}
		r.ForEach(func(k, v gjson.Result) bool {
			out.Set(value.NewString(k.String()), jsonToValue(v))
			return true
		})
		return out
	default:
		return value.NilValue
	}
}
