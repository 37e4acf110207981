package interp

import (
	"github.com/lavendeux/lavendish/internal/ast"
	"github.com/lavendeux/lavendish/internal/extension"
	"github.com/lavendeux/lavendish/internal/lexer"
	"github.com/lavendeux/lavendish/internal/scope"
	"github.com/lavendeux/lavendish/internal/value"
)

// evalFunctionDef binds a *UserFunction into the innermost funcScope
// frame, closing over both the current variable scope and the current
// funcScope frame (so recursive/mutual calls resolve names the way
// they were visible at the definition site, not the call site).
func (it *Interp) evalFunctionDef(f frame, n *ast.FunctionDef) (Step, error) {
	fn := &UserFunction{
		Name:        n.Name,
		Params:      n.Params,
		ReturnKind:  n.ReturnKind,
		Body:        n.Body,
		Decorator:   n.Decorator,
		Closure:     f.env,
		FuncClosure: f.funcs,
	}
	f.funcs.define(n.Name, fn)
	return valueStep(value.String{Val: fn.Signature()}), nil
}

func (it *Interp) evalArgs(f frame, argExprs []ast.Expression) ([]value.Value, Step, error) {
	args := make([]value.Value, 0, len(argExprs))
	for _, a := range argExprs {
		step, err := it.evalExpr(f, a)
		if err != nil {
			return nil, Step{}, err
		}
		if step.nonLocal() {
			return nil, step, nil
		}
		args = append(args, step.val)
	}
	return args, Step{}, nil
}

// evalCall dispatches `name(args...)`: the innermost-to-outermost
// funcScope chain is tried first, then the shared extension registry
// (spec.md §4.3 lookup order).
func (it *Interp) evalCall(f frame, n *ast.Call) (Step, error) {
	args, nl, err := it.evalArgs(f, n.Args)
	if err != nil {
		return Step{}, err
	}
	if nl.nonLocal() {
		return nl, nil
	}
	if fn, ok := f.funcs.get(n.Name); ok {
		return it.callUserFunction(fn, args, n.Pos())
	}
	if c, ok := it.Registry.Lookup(n.Name); ok {
		v, err := it.callNative(c, args, n.Pos())
		if err != nil {
			return Step{}, err
		}
		return valueStep(v), nil
	}
	return Step{}, &NameError{Name: n.Name, Pos: n.Pos()}
}

// evalObjectCall is sugar for `name(receiver, args...)`.
func (it *Interp) evalObjectCall(f frame, n *ast.ObjectCall) (Step, error) {
	recvStep, err := it.evalExpr(f, n.Receiver)
	if err != nil || recvStep.nonLocal() {
		return recvStep, err
	}
	args, nl, err := it.evalArgs(f, n.Args)
	if err != nil {
		return Step{}, err
	}
	if nl.nonLocal() {
		return nl, nil
	}
	full := append([]value.Value{recvStep.val}, args...)
	if fn, ok := f.funcs.get(n.Name); ok {
		return it.callUserFunction(fn, full, n.Pos())
	}
	if c, ok := it.Registry.Lookup(n.Name); ok {
		v, err := it.callNative(c, full, n.Pos())
		if err != nil {
			return Step{}, err
		}
		return valueStep(v), nil
	}
	return Step{}, &NameError{Name: n.Name, Pos: n.Pos()}
}

// coerceArgKind implements the parameter/return Kind coercion rule
// (spec.md §3.4): "" and "any" pass the value through unchanged,
// "numeric" accepts only Int or Float, anything else is an explicit
// `as Kind` cast.
func coerceArgKind(v value.Value, kind string) (value.Value, error) {
	switch kind {
	case "", "any", "Any":
		return v, nil
	case "numeric":
		switch v.(type) {
		case value.Int, value.Float:
			return v, nil
		default:
			return nil, &value.TypeError{Message: "expected a numeric argument, got " + v.Kind().String()}
		}
	default:
		return value.Cast(v, kind)
	}
}

// callUserFunction applies fn to args: arity check, call-depth limit,
// a fresh variable scope enclosed over fn.Closure (lexical, not
// caller-dynamic) and a fresh funcScope frame enclosed over
// fn.FuncClosure, parameter binding with kind coercion, body
// evaluation, and return-kind coercion on the way out (spec.md §4.3).
func (it *Interp) callUserFunction(fn *UserFunction, args []value.Value, pos lexer.Position) (Step, error) {
	if len(args) != len(fn.Params) {
		return Step{}, &ArityError{Name: fn.Name, Want: len(fn.Params), Got: len(args), Pos: pos}
	}
	if it.depth >= it.Limits.MaxCallDepth {
		return Step{}, &value.OverflowError{Message: "call depth exceeds the maximum recursion limit"}
	}
	it.depth++
	defer func() { it.depth-- }()

	outerFuncs := fn.FuncClosure
	if outerFuncs == nil {
		outerFuncs = it.globalFuncs
	}
	callee := frame{
		env:   scope.NewEnclosed(fn.Closure),
		funcs: newEnclosedFuncScope(outerFuncs),
	}
	for i, p := range fn.Params {
		bound, err := coerceArgKind(args[i], p.Kind)
		if err != nil {
			return Step{}, err
		}
		callee.env.Define(p.Name.Value, bound)
	}

	step, err := it.evalExpr(callee, fn.Body)
	if err != nil {
		return Step{}, err
	}

	var result value.Value
	switch {
	case step.isReturn():
		result = step.val
	case step.isValue():
		result = step.val
	case step.isBreak():
		return Step{}, &ControlFlowError{Keyword: "break", Pos: pos}
	default:
		return Step{}, &ControlFlowError{Keyword: "skip", Pos: pos}
	}

	if fn.ReturnKind != "" {
		result, err = coerceArgKind(result, fn.ReturnKind)
		if err != nil {
			return Step{}, err
		}
	}
	return valueStep(result), nil
}

// callNative applies a host/extension Callable: arity check against
// its declared ArgKinds, per-argument coercion, the native call
// itself, then return-kind coercion.
func (it *Interp) callNative(c *extension.Callable, args []value.Value, pos lexer.Position) (value.Value, error) {
	if len(args) != len(c.ArgKinds) {
		return nil, &ArityError{Name: c.Name, Want: len(c.ArgKinds), Got: len(args), Pos: pos}
	}
	coerced := make([]value.Value, len(args))
	for i, a := range args {
		v, err := coerceArgKind(a, c.ArgKinds[i])
		if err != nil {
			return nil, err
		}
		coerced[i] = v
	}
	result, err := c.Native(coerced)
	if err != nil {
		return nil, err
	}
	if c.ReturnKind != "" {
		return coerceArgKind(result, c.ReturnKind)
	}
	return result, nil
}

// evalDecorate implements the postfix `expr @name` decorator
// application (spec.md §4.2, §4.4): the callable must be a decorator
// (user-defined with Decorator==true, or native registered via
// RegisterDecorator), takes exactly the decorated value, and its
// result is always re-wrapped as a String.
func (it *Interp) evalDecorate(f frame, n *ast.Decorate) (Step, error) {
	step, err := it.evalExpr(f, n.Expr)
	if err != nil || step.nonLocal() {
		return step, err
	}
	result, err := it.dispatchDecorator(f, n.Name, step.val)
	if err != nil {
		return Step{}, err
	}
	return valueStep(result), nil
}

func (it *Interp) dispatchDecorator(f frame, name string, v value.Value) (value.Value, error) {
	if fn, ok := f.funcs.get(name); ok {
		if !fn.Decorator {
			return nil, &value.TypeError{Message: name + " is not a decorator"}
		}
		step, err := it.callUserFunction(fn, []value.Value{v}, lexer.Position{})
		if err != nil {
			return nil, err
		}
		return value.String{Val: step.val.String()}, nil
	}
	if c, ok := it.Registry.LookupDecorator(name); ok {
		result, err := it.callNative(c, []value.Value{v}, lexer.Position{})
		if err != nil {
			return nil, err
		}
		return value.String{Val: result.String()}, nil
	}
	return nil, &NameError{Name: name}
}
