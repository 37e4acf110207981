package extension

import (
	"strconv"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/lavendeux/lavendish/internal/value"
)

// SaveState serializes the shared extension state map to a JSON
// document, the persistence format pkg/lavendish.Engine.SaveState
// exposes to a host (spec.md §4.4 loadState/saveState; SPEC_FULL.md
// §4.4's domain stack assigns sjson here for state save).
func (r *Registry) SaveState() (string, error) {
	doc := "{}"
	for k, v := range r.State() {
		child, err := stateValueToJSON(v)
		if err != nil {
			return "", err
		}
		var err2 error
		doc, err2 = sjson.SetRaw(doc, k, child)
		if err2 != nil {
			return "", err2
		}
	}
	return doc, nil
}

// LoadState replaces the shared extension state map with the contents
// of a JSON document previously produced by SaveState (gjson handles
// the read side, per SPEC_FULL.md §4.4's domain stack table).
func (r *Registry) LoadState(doc string) error {
	if !gjson.Valid(doc) {
		return &value.ValueError{Message: "loadState: malformed JSON"}
	}
	parsed := gjson.Parse(doc)
	snapshot := make(map[string]value.Value)
	parsed.ForEach(func(k, v gjson.Result) bool {
		snapshot[k.String()] = stateValueFromJSON(v)
		return true
	})
	r.ReplaceState(snapshot)
	return nil
}

func stateValueToJSON(v value.Value) (string, error) {
	switch t := v.(type) {
	case value.Nil:
		return "null", nil
	case value.Bool:
		if t.Val {
			return "true", nil
		}
		return "false", nil
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
		raw, err := sjson.Set(`{"v":0}`, "v", t.Val)
		if err != nil {
			return "", err
		}
		return gjson.Get(raw, "v").Raw, nil
	case value.Fixed, value.Currency:
		f, err := value.Cast(v, "float")
		if err != nil {
			return "", err
		}
		raw, err := sjson.Set(`{"v":0}`, "v", f.(value.Float).Val)
		if err != nil {
			return "", err
		}
		return gjson.Get(raw, "v").Raw, nil
	case value.Array:
		doc := "[]"
		for i, e := range t.Elems {
			child, err := stateValueToJSON(e)
			if err != nil {
				return "", err
			}
			var err2 error
			doc, err2 = sjson.SetRaw(doc, strconv.Itoa(i), child)
			if err2 != nil {
				return "", err2
			}
		}
		return doc, nil
	case value.Object:
		doc := "{}"
		for _, e := range t.Entries {
			child, err := stateValueToJSON(e.Val)
			if err != nil {
				return "", err
			}
			var err2 error
			doc, err2 = sjson.SetRaw(doc, e.Key.String(), child)
			if err2 != nil {
				return "", err2
			}
		}
		return doc, nil
	default:
		return "", &value.TypeError{Message: "saveState: unsupported value kind " + v.Kind().String()}
	}
}

func stateValueFromJSON(r gjson.Result) value.Value {
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
				elems = append(elems, stateValueFromJSON(v))
				return true
			})
			return value.Array{Elems: elems}
		}
		out := value.Object{}
		r.ForEach(func(k, v gjson.Result) bool {
			out.Set(value.NewString(k.String()), stateValueFromJSON(v))
			return true
		})
		return out
	default:
		return value.NilValue
	}
}
