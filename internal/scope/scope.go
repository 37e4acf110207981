// Package scope implements the Lavendish scope stack: nested frames
// with lexical lookup, used both for function-call frames and for
// block expressions that must shadow (spec.md §3.3).
package scope

import "github.com/lavendeux/lavendish/internal/value"

// Scope is one frame of the scope stack. The bottom frame (Outer ==
// nil) is the global/top scope.
type Scope struct {
	store map[string]value.Value
	outer *Scope
	root  *Scope
}

// New creates a root-level scope with no outer frame.
func New() *Scope {
	s := &Scope{store: make(map[string]value.Value)}
	s.root = s
	return s
}

// NewEnclosed creates a frame nested inside outer, used for function
// calls and shadowing block expressions.
func NewEnclosed(outer *Scope) *Scope {
	return &Scope{store: make(map[string]value.Value), outer: outer, root: outer.root}
}

// Get resolves name by searching this frame, then each outer frame in
// turn.
func (s *Scope) Get(name string) (value.Value, bool) {
	for f := s; f != nil; f = f.outer {
		if v, ok := f.store[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// GetLocal looks up name only in this frame, without searching outer
// frames.
func (s *Scope) GetLocal(name string) (value.Value, bool) {
	v, ok := s.store[name]
	return v, ok
}

// Has reports whether name is bound anywhere in the scope chain.
func (s *Scope) Has(name string) bool {
	_, ok := s.Get(name)
	return ok
}

// Define binds name in this frame, shadowing any outer binding of the
// same name. Used for function parameters and `for` binders.
func (s *Scope) Define(name string, v value.Value) {
	s.store[name] = v
}

// Assign implements `assign(name,v)` from spec.md §3.3: writes to the
// innermost frame already containing name, or to the current frame if
// the name is unbound anywhere in the chain (i.e. plain `x = e`
// creates a local binding when x is new).
func (s *Scope) Assign(name string, v value.Value) {
	for f := s; f != nil; f = f.outer {
		if _, ok := f.store[name]; ok {
			f.store[name] = v
			return
		}
	}
	s.store[name] = v
}

// AssignGlobal implements `assign_global(name,v)`: writes directly to
// the bottom (global) frame, regardless of any shadowing binding in
// between.
func (s *Scope) AssignGlobal(name string, v value.Value) {
	s.root.store[name] = v
}

// Delete removes name from the innermost frame that binds it,
// returning its prior value. Used by `del`/`delete`/`unset` on a
// plain identifier (spec.md §4.3).
func (s *Scope) Delete(name string) (value.Value, bool) {
	for f := s; f != nil; f = f.outer {
		if v, ok := f.store[name]; ok {
			delete(f.store, name)
			return v, true
		}
	}
	return nil, false
}

// Global returns the bottom frame of the chain s belongs to.
func (s *Scope) Global() *Scope { return s.root }

// Names returns the bindings visible in this frame only (not outer
// frames), for introspection builtins.
func (s *Scope) Names() []string {
	names := make([]string, 0, len(s.store))
	for k := range s.store {
		names = append(names, k)
	}
	return names
}
