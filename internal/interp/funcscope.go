package interp

import (
	"strings"

	"github.com/lavendeux/lavendish/internal/ast"
	"github.com/lavendeux/lavendish/internal/scope"
)

// UserFunction is a Lavendish-defined function or decorator: a
// FunctionDef's parameter list and body, closing lexically over the
// scope frame active at its definition site (spec.md §3.3: "User
// functions capture the defining frame by reference for closure over
// globals, but parameters live only in the callee frame").
type UserFunction struct {
	Name       string
	Params     []ast.Param
	ReturnKind string
	Body       ast.Expression
	Decorator  bool
	Closure    *scope.Scope

	// FuncClosure captures the function-scope frame active at the
	// definition site, mirroring Closure, so a call resolves callee
	// names (including recursive self-reference) the way they were
	// visible where the function was defined rather than where it is
	// called from.
	FuncClosure *funcScope
}

// Signature renders the declared shape of fn, the String `del` returns
// for a user-defined function or decorator entry (spec.md §4.3).
func (fn *UserFunction) Signature() string {
	var sb strings.Builder
	sb.WriteString(fn.Name)
	sb.WriteString("(")
	for i, p := range fn.Params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.Name.Value)
		if p.Kind != "" {
			sb.WriteString(":" + p.Kind)
		}
	}
	sb.WriteString(")")
	if fn.ReturnKind != "" {
		sb.WriteString(": " + fn.ReturnKind)
	}
	return sb.String()
}

// funcScope is a frame of function bindings, mirroring scope.Scope's
// frame-chain shape but keyed to *UserFunction rather than
// value.Value: function definitions can be locally scoped (defined
// inside a block) just as variables can, so lookup walks the same
// innermost-to-outermost chain before falling through to the
// extension/native registry (spec.md §4.3 "Function and decorator
// dispatch" lookup order).
type funcScope struct {
	store map[string]*UserFunction
	outer *funcScope
}

func newFuncScope() *funcScope {
	return &funcScope{store: make(map[string]*UserFunction)}
}

func newEnclosedFuncScope(outer *funcScope) *funcScope {
	return &funcScope{store: make(map[string]*UserFunction), outer: outer}
}

func (f *funcScope) get(name string) (*UserFunction, bool) {
	for s := f; s != nil; s = s.outer {
		if fn, ok := s.store[name]; ok {
			return fn, true
		}
	}
	return nil, false
}

func (f *funcScope) define(name string, fn *UserFunction) {
	f.store[name] = fn
}

func (f *funcScope) delete(name string) (*UserFunction, bool) {
	for s := f; s != nil; s = s.outer {
		if fn, ok := s.store[name]; ok {
			delete(s.store, name)
			return fn, true
		}
	}
	return nil, false
}
