package interp

import (
	"github.com/lavendeux/lavendish/internal/ast"
	"github.com/lavendeux/lavendish/internal/value"
)

// evalIndexChainRead evaluates `base[i][j]...` in read position,
// folding each step onto the running current value in turn.
func (it *Interp) evalIndexChainRead(f frame, n *ast.IndexChain) (Step, error) {
	baseStep, err := it.evalExpr(f, n.Base)
	if err != nil {
		return Step{}, err
	}
	if baseStep.nonLocal() {
		return baseStep, nil
	}
	cur := baseStep.val
	for _, step := range n.Steps {
		var idxVal value.Value
		if step.Index != nil {
			idxStep, err := it.evalExpr(f, step.Index)
			if err != nil {
				return Step{}, err
			}
			if idxStep.nonLocal() {
				return idxStep, nil
			}
			idxVal = idxStep.val
		}
		next, err := indexGet(cur, idxVal)
		if err != nil {
			return Step{}, err
		}
		cur = next
	}
	return valueStep(cur), nil
}

func (it *Interp) readIndexChain(f frame, chain *ast.IndexChain) (value.Value, error) {
	step, err := it.evalIndexChainRead(f, chain)
	if err != nil {
		return nil, err
	}
	if step.nonLocal() {
		return nil, &SyntaxError{Message: "control-flow expression is not assignable", Pos: chain.Pos()}
	}
	return step.val, nil
}

// indexGet reads one step of an index chain against a concrete
// container value. idx is nil for the empty-brackets `[]` form.
func indexGet(container, idx value.Value) (value.Value, error) {
	switch c := container.(type) {
	case value.Array:
		return arrayGet(c, idx)
	case value.Object:
		return objectGet(c, idx)
	case value.String:
		return stringGet(c, idx)
	case value.Range:
		arr, err := c.AsArray()
		if err != nil {
			return nil, err
		}
		return arrayGet(arr, idx)
	default:
		return nil, &value.TypeError{Message: "cannot index into " + container.Kind().String()}
	}
}

// getIntermediate is like indexGet but used for a non-terminal step of
// an assignment/deletion path, where an empty `[]` is never legal
// (spec.md §4.3: auto-create only applies at the terminal position).
func getIntermediate(container, idx value.Value) (value.Value, error) {
	if idx == nil {
		return nil, &IndexError{Message: "empty index '[]' is only valid as the final step of an assignment path"}
	}
	return indexGet(container, idx)
}

func resolveIndex(length int, idx int64) (int, error) {
	i := int(idx)
	if i < 0 {
		i += length
	}
	if i < 0 || i >= length {
		return 0, &IndexError{Message: "index out of bounds"}
	}
	return i, nil
}

func asInt64(v value.Value) (int64, bool) {
	switch t := v.(type) {
	case value.Int:
		if t.Signed {
			return t.Val, true
		}
		return int64(t.Unsigned()), true
	case value.Bool:
		return t.AsInt().Val, true
	default:
		return 0, false
	}
}

func arrayGet(c value.Array, idx value.Value) (value.Value, error) {
	if idx == nil {
		if len(c.Elems) == 0 {
			return nil, &IndexError{Message: "index [] on empty array"}
		}
		return c.Elems[len(c.Elems)-1], nil
	}
	switch t := idx.(type) {
	case value.Int, value.Bool:
		n, _ := asInt64(idx)
		i, err := resolveIndex(len(c.Elems), n)
		if err != nil {
			return nil, err
		}
		return c.Elems[i], nil
	case value.Range:
		return arraySubrange(c, t)
	case value.Array:
		out := make([]value.Value, 0, len(t.Elems))
		for _, e := range t.Elems {
			v, err := arrayGet(c, e)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return value.Array{Elems: out}, nil
	default:
		return nil, &value.TypeError{Message: "array index must be Int, Range, or a collection of indices"}
	}
}

func rangeBounds(r value.Range) (int64, int64, error) {
	startN, ok1 := asInt64(r.Start)
	endN, ok2 := asInt64(r.End)
	if !ok1 || !ok2 {
		return 0, 0, &value.TypeError{Message: "subrange bounds must be Int"}
	}
	return startN, endN, nil
}

func arraySubrange(c value.Array, r value.Range) (value.Value, error) {
	startN, endN, err := rangeBounds(r)
	if err != nil {
		return nil, err
	}
	n := len(c.Elems)
	start, err := resolveIndex(n, startN)
	if err != nil {
		return nil, err
	}
	end, err := resolveIndex(n, endN)
	if err != nil {
		return nil, err
	}
	if start > end {
		return nil, &value.ValueError{Message: "range start must not exceed end"}
	}
	out := make([]value.Value, end-start+1)
	copy(out, c.Elems[start:end+1])
	return value.Array{Elems: out}, nil
}

func objectGet(c value.Object, idx value.Value) (value.Value, error) {
	if idx == nil {
		if len(c.Entries) == 0 {
			return nil, &IndexError{Message: "index [] on empty object"}
		}
		return c.Entries[len(c.Entries)-1].Val, nil
	}
	if arr, ok := idx.(value.Array); ok {
		out := make([]value.Value, 0, len(arr.Elems))
		for _, k := range arr.Elems {
			v, ok := c.Get(k)
			if !ok {
				return nil, &IndexError{Message: "key not found: " + k.String()}
			}
			out = append(out, v)
		}
		return value.Array{Elems: out}, nil
	}
	if value.IsCollection(idx) {
		return nil, &value.TypeError{Message: "object index collection must be an Array of keys"}
	}
	v, ok := c.Get(idx)
	if !ok {
		return nil, &IndexError{Message: "key not found: " + idx.String()}
	}
	return v, nil
}

func stringGet(c value.String, idx value.Value) (value.Value, error) {
	runes := []rune(c.Val)
	if idx == nil {
		if len(runes) == 0 {
			return nil, &IndexError{Message: "index [] on empty string"}
		}
		return value.String{Val: string(runes[len(runes)-1])}, nil
	}
	switch t := idx.(type) {
	case value.Int, value.Bool:
		n, _ := asInt64(idx)
		i, err := resolveIndex(len(runes), n)
		if err != nil {
			return nil, err
		}
		return value.String{Val: string(runes[i])}, nil
	case value.Range:
		startN, endN, err := rangeBounds(t)
		if err != nil {
			return nil, err
		}
		n := len(runes)
		start, err := resolveIndex(n, startN)
		if err != nil {
			return nil, err
		}
		end, err := resolveIndex(n, endN)
		if err != nil {
			return nil, err
		}
		if start > end {
			return nil, &value.ValueError{Message: "range start must not exceed end"}
		}
		return value.String{Val: string(runes[start : end+1])}, nil
	case value.Array:
		out := make([]value.Value, 0, len(t.Elems))
		for _, e := range t.Elems {
			v, err := stringGet(c, e)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return value.Array{Elems: out}, nil
	default:
		return nil, &value.TypeError{Message: "string index must be Int, Range, or a collection of indices"}
	}
}
