package interp

import (
	"github.com/lavendeux/lavendish/internal/ast"
	"github.com/lavendeux/lavendish/internal/value"
)

// evalAssign implements the three assignable target shapes and the 13
// compound-operator forms (spec.md §4.3). `&&=`/`||=` short-circuit
// like their bare `&&`/`||` counterparts: the current value is read
// first, and the right-hand side is only evaluated when it can still
// change the result.
func (it *Interp) evalAssign(f frame, n *ast.Assign) (Step, error) {
	if n.Op == "&&" || n.Op == "||" {
		return it.evalShortCircuitAssign(f, n)
	}

	rhsStep, err := it.evalExpr(f, n.Expr)
	if err != nil {
		return Step{}, err
	}
	if rhsStep.nonLocal() {
		return rhsStep, nil
	}
	rhs := rhsStep.val

	switch n.Target.Kind {
	case ast.TargetIdentifier:
		name := n.Target.Identifier.Value
		final := rhs
		if n.Op != "" {
			cur, ok := f.env.Get(name)
			if !ok {
				return Step{}, &NameError{Name: name, Pos: n.Target.Identifier.Pos()}
			}
			final, err = applyBinary(n.Op, cur, rhs)
			if err != nil {
				return Step{}, err
			}
		}
		f.env.Assign(name, final)
		return valueStep(final), nil

	case ast.TargetIndexChain:
		final := rhs
		if n.Op != "" {
			cur, err := it.readIndexChain(f, n.Target.IndexChain)
			if err != nil {
				return Step{}, err
			}
			final, err = applyBinary(n.Op, cur, rhs)
			if err != nil {
				return Step{}, err
			}
		}
		if err := it.indexChainWrite(f, n.Target.IndexChain, final); err != nil {
			return Step{}, err
		}
		return valueStep(final), nil

	case ast.TargetDestructure:
		if n.Op != "" {
			return Step{}, &SyntaxError{Message: "destructuring assignment does not support compound operators", Pos: n.Pos()}
		}
		elems, err := destructureElements(rhs)
		if err != nil {
			return Step{}, err
		}
		if len(elems) != len(n.Target.Names) {
			return Step{}, &value.ValueError{Message: "destructuring assignment requires a collection of matching length"}
		}
		for i, nameID := range n.Target.Names {
			f.env.Assign(nameID.Value, elems[i])
		}
		return valueStep(rhs), nil

	default:
		return Step{}, &SyntaxError{Message: "unsupported assignment target", Pos: n.Pos()}
	}
}

// evalShortCircuitAssign handles `&&=`/`||=` for the two target shapes
// that support compound operators: the current value decides whether
// n.Expr needs to run at all, mirroring evalShortCircuit's handling of
// bare `&&`/`||`.
func (it *Interp) evalShortCircuitAssign(f frame, n *ast.Assign) (Step, error) {
	switch n.Target.Kind {
	case ast.TargetIdentifier:
		name := n.Target.Identifier.Value
		cur, ok := f.env.Get(name)
		if !ok {
			return Step{}, &NameError{Name: name, Pos: n.Target.Identifier.Pos()}
		}
		finalStep, err := it.shortCircuitCombine(f, n.Op, cur, n.Expr)
		if err != nil || finalStep.nonLocal() {
			return finalStep, err
		}
		f.env.Assign(name, finalStep.val)
		return finalStep, nil

	case ast.TargetIndexChain:
		cur, err := it.readIndexChain(f, n.Target.IndexChain)
		if err != nil {
			return Step{}, err
		}
		finalStep, err := it.shortCircuitCombine(f, n.Op, cur, n.Expr)
		if err != nil || finalStep.nonLocal() {
			return finalStep, err
		}
		if err := it.indexChainWrite(f, n.Target.IndexChain, finalStep.val); err != nil {
			return Step{}, err
		}
		return finalStep, nil

	default:
		return Step{}, &SyntaxError{Message: "unsupported assignment target", Pos: n.Pos()}
	}
}

// shortCircuitCombine evaluates `cur && rhsExpr` / `cur || rhsExpr`,
// skipping rhsExpr entirely when cur already determines the result.
func (it *Interp) shortCircuitCombine(f frame, op string, cur value.Value, rhsExpr ast.Expression) (Step, error) {
	if op == "&&" && !cur.Truthy() {
		return valueStep(value.NewBool(false)), nil
	}
	if op == "||" && cur.Truthy() {
		return valueStep(value.NewBool(true)), nil
	}
	rhsStep, err := it.evalExpr(f, rhsExpr)
	if err != nil || rhsStep.nonLocal() {
		return rhsStep, err
	}
	return valueStep(value.NewBool(rhsStep.val.Truthy())), nil
}

func destructureElements(v value.Value) ([]value.Value, error) {
	switch t := v.(type) {
	case value.Array:
		return t.Elems, nil
	case value.Range:
		return t.Materialize()
	case value.Object:
		out := make([]value.Value, len(t.Entries))
		for i, e := range t.Entries {
			out[i] = e.Val
		}
		return out, nil
	default:
		return nil, &value.TypeError{Message: "destructuring assignment requires a collection"}
	}
}

// indexChainWrite rebuilds the path from chain's root identifier down
// to the terminal step and rebinds the whole reconstructed value,
// since Array/Object are plain Go values rather than references
// (spec.md §3.3: mutating functions act as if by value, then rebind
// the named binding).
func (it *Interp) indexChainWrite(f frame, chain *ast.IndexChain, newVal value.Value) error {
	id, ok := chain.Base.(*ast.Identifier)
	if !ok {
		return &SyntaxError{Message: "assignment index chain must be rooted at a plain name", Pos: chain.Pos()}
	}
	root, ok := f.env.Get(id.Value)
	if !ok {
		return &NameError{Name: id.Value, Pos: id.Pos()}
	}
	idxs, err := it.evalIndexPath(f, chain)
	if err != nil {
		return err
	}
	updated, err := setPath(root, idxs, newVal)
	if err != nil {
		return err
	}
	f.env.Assign(id.Value, updated)
	return nil
}

func (it *Interp) evalIndexPath(f frame, chain *ast.IndexChain) ([]value.Value, error) {
	idxs := make([]value.Value, len(chain.Steps))
	for i, step := range chain.Steps {
		if step.Index == nil {
			idxs[i] = nil
			continue
		}
		idxStep, err := it.evalExpr(f, step.Index)
		if err != nil {
			return nil, err
		}
		if idxStep.nonLocal() {
			return nil, &SyntaxError{Message: "control-flow expression is not a valid index", Pos: step.Index.Pos()}
		}
		idxs[i] = idxStep.val
	}
	return idxs, nil
}

func setPath(container value.Value, idxs []value.Value, newVal value.Value) (value.Value, error) {
	if len(idxs) == 1 {
		return setTerminal(container, idxs[0], newVal)
	}
	head, rest := idxs[0], idxs[1:]
	child, err := getIntermediate(container, head)
	if err != nil {
		return nil, err
	}
	updatedChild, err := setPath(child, rest, newVal)
	if err != nil {
		return nil, err
	}
	return setTerminal(container, head, updatedChild)
}

func setTerminal(container, idx, newVal value.Value) (value.Value, error) {
	switch c := container.(type) {
	case value.Array:
		if idx == nil {
			out := make([]value.Value, len(c.Elems)+1)
			copy(out, c.Elems)
			out[len(c.Elems)] = newVal
			return value.Array{Elems: out}, nil
		}
		switch t := idx.(type) {
		case value.Int, value.Bool:
			n, _ := asInt64(idx)
			i, err := resolveIndex(len(c.Elems), n)
			if err != nil {
				return nil, err
			}
			out := append([]value.Value(nil), c.Elems...)
			out[i] = newVal
			return value.Array{Elems: out}, nil
		case value.Range:
			return arraySubrangeSet(c, t, newVal)
		default:
			return nil, &value.TypeError{Message: "array assignment index must be Int or Range"}
		}
	case value.Object:
		if idx == nil {
			return nil, &IndexError{Message: "empty index '[]' requires an Array target"}
		}
		if value.IsCollection(idx) {
			return nil, &value.TypeError{Message: "object assignment key must be non-collection"}
		}
		out := value.Object{Entries: append([]value.ObjectEntry(nil), c.Entries...)}
		out.Set(idx, newVal)
		return out, nil
	default:
		return nil, &value.TypeError{Message: "cannot index-assign into " + container.Kind().String()}
	}
}

func arraySubrangeSet(c value.Array, r value.Range, newVal value.Value) (value.Value, error) {
	repl, ok := newVal.(value.Array)
	if !ok {
		return nil, &value.TypeError{Message: "subrange assignment requires an Array value"}
	}
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
	out := make([]value.Value, 0, n-(end-start+1)+len(repl.Elems))
	out = append(out, c.Elems[:start]...)
	out = append(out, repl.Elems...)
	out = append(out, c.Elems[end+1:]...)
	return value.Array{Elems: out}, nil
}

// evalDel implements `del`/`delete`/`unset` on a name (variable,
// user-defined function, native function, or decorator) or an index
// chain (spec.md §4.3).
func (it *Interp) evalDel(f frame, n *ast.Del) (Step, error) {
	switch t := n.Target.(type) {
	case *ast.Identifier:
		if fn, ok := f.funcs.delete(t.Value); ok {
			return valueStep(value.String{Val: fn.Signature()}), nil
		}
		if c, ok := it.Registry.DeleteFunction(t.Value); ok {
			return valueStep(value.String{Val: c.Signature()}), nil
		}
		if c, ok := it.Registry.DeleteDecorator(t.Value); ok {
			return valueStep(value.String{Val: c.Signature()}), nil
		}
		v, ok := f.env.Delete(t.Value)
		if !ok {
			return Step{}, &NameError{Name: t.Value, Pos: t.Pos()}
		}
		return valueStep(v), nil
	case *ast.IndexChain:
		v, err := it.deleteIndexChain(f, t)
		if err != nil {
			return Step{}, err
		}
		return valueStep(v), nil
	default:
		return Step{}, &SyntaxError{Message: "del target must be a name or index chain", Pos: n.Pos()}
	}
}

func (it *Interp) deleteIndexChain(f frame, chain *ast.IndexChain) (value.Value, error) {
	id, ok := chain.Base.(*ast.Identifier)
	if !ok {
		return nil, &SyntaxError{Message: "del index chain must be rooted at a plain name", Pos: chain.Pos()}
	}
	root, ok := f.env.Get(id.Value)
	if !ok {
		return nil, &NameError{Name: id.Value, Pos: id.Pos()}
	}
	idxs, err := it.evalIndexPath(f, chain)
	if err != nil {
		return nil, err
	}
	removed, updatedRoot, err := deletePath(root, idxs)
	if err != nil {
		return nil, err
	}
	f.env.Assign(id.Value, updatedRoot)
	return removed, nil
}

func deletePath(container value.Value, idxs []value.Value) (removed, updated value.Value, err error) {
	if len(idxs) == 1 {
		return removeTerminal(container, idxs[0])
	}
	head, rest := idxs[0], idxs[1:]
	child, err := getIntermediate(container, head)
	if err != nil {
		return nil, nil, err
	}
	removed, updatedChild, err := deletePath(child, rest)
	if err != nil {
		return nil, nil, err
	}
	updated, err = setTerminal(container, head, updatedChild)
	return removed, updated, err
}

func removeTerminal(container, idx value.Value) (removed, updated value.Value, err error) {
	switch c := container.(type) {
	case value.Array:
		if idx == nil {
			if len(c.Elems) == 0 {
				return nil, nil, &IndexError{Message: "pop from empty array"}
			}
			removed = c.Elems[len(c.Elems)-1]
			updated = value.Array{Elems: append([]value.Value(nil), c.Elems[:len(c.Elems)-1]...)}
			return removed, updated, nil
		}
		n, ok := asInt64(idx)
		if !ok {
			return nil, nil, &value.TypeError{Message: "array delete index must be Int"}
		}
		i, err := resolveIndex(len(c.Elems), n)
		if err != nil {
			return nil, nil, err
		}
		removed = c.Elems[i]
		out := make([]value.Value, 0, len(c.Elems)-1)
		out = append(out, c.Elems[:i]...)
		out = append(out, c.Elems[i+1:]...)
		return removed, value.Array{Elems: out}, nil
	case value.Object:
		if idx == nil {
			return nil, nil, &IndexError{Message: "empty index '[]' requires an Array target"}
		}
		out := value.Object{Entries: append([]value.ObjectEntry(nil), c.Entries...)}
		removedVal, ok := out.Delete(idx)
		if !ok {
			return nil, nil, &IndexError{Message: "key not found: " + idx.String()}
		}
		return removedVal, out, nil
	default:
		return nil, nil, &value.TypeError{Message: "cannot delete from " + container.Kind().String()}
	}
}
