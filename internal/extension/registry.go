// Package extension implements the process-wide registry that backs
// Lavendish's host-registration interface (spec.md §3.4, §4.4):
// native and extension-script callables under plain names, decorators
// under `@`-prefixed names, and a single shared mutable state map.
package extension

import (
	"fmt"
	"sync"

	"github.com/lavendeux/lavendish/internal/value"
)

// NativeFunc is a Go-native callable registered directly by the host
// (the `internal/stdlib` built-ins, or an embedder via
// pkg/lavendish.Engine.RegisterFunction).
type NativeFunc func(args []value.Value) (value.Value, error)

// Callable is a single registry entry shape for both host-native and
// extension-script callables. Native is the function invoked in both
// cases; a non-empty ExtensionOwner marks an extension-script callable.
type Callable struct {
	Name        string
	ArgKinds    []string // declared argument kinds, coerced before the call; "Any" skips coercion
	ReturnKind  string   // declared return kind, coerced after the call; "" means untyped
	Description string
	IsDecorator bool

	Native         NativeFunc // invoked on every call, host-native or extension-script
	ExtensionOwner string     // set for extension-script callables: the owning extension's name
}

// Registry is the process-wide function/decorator table plus the
// shared extension state map. Safe for concurrent use.
type Registry struct {
	mu         sync.RWMutex
	functions  map[string]*Callable
	decorators map[string]*Callable
	state      map[string]value.Value
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		functions:  make(map[string]*Callable),
		decorators: make(map[string]*Callable),
		state:      make(map[string]value.Value),
	}
}

// RegisterFunction adds a host-native function. Returns an error if a
// function with the same name is already registered.
func (r *Registry) RegisterFunction(name string, fn NativeFunc, argKinds []string, returnKind, description string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.functions[name]; exists {
		return fmt.Errorf("function %q is already registered", name)
	}
	r.functions[name] = &Callable{
		Name: name, ArgKinds: argKinds, ReturnKind: returnKind,
		Description: description, Native: fn,
	}
	return nil
}

// RegisterDecorator adds a host-native decorator, which must accept
// exactly one argument and yield a String (spec.md §4.2, §4.4).
func (r *Registry) RegisterDecorator(name string, fn NativeFunc, argKind, description string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.decorators[name]; exists {
		return fmt.Errorf("decorator %q is already registered", name)
	}
	r.decorators[name] = &Callable{
		Name: name, ArgKinds: []string{argKind}, ReturnKind: "string",
		Description: description, Native: fn, IsDecorator: true,
	}
	return nil
}

// RegisterExtensionFunction adds a callable owned by a loaded
// extension script rather than the host; `call` marshals into and out
// of the extension's own execution sandbox, which lives outside this
// module (spec.md §1 Out of scope: "the embedded extension-script
// execution sandbox itself").
func (r *Registry) RegisterExtensionFunction(owner, name string, call NativeFunc, argKinds []string, returnKind, description string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.functions[name]; exists {
		return fmt.Errorf("function %q is already registered", name)
	}
	r.functions[name] = &Callable{
		Name: name, ArgKinds: argKinds, ReturnKind: returnKind,
		Description: description, Native: call, ExtensionOwner: owner,
	}
	return nil
}

// Lookup finds a plain function by name.
func (r *Registry) Lookup(name string) (*Callable, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.functions[name]
	return c, ok
}

// LookupDecorator finds a decorator by its bare name (without the `@`
// prefix the grammar uses at the call site).
func (r *Registry) LookupDecorator(name string) (*Callable, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.decorators[name]
	return c, ok
}

// DeleteFunction removes a function entry, returning it for `del
// name` on a function (spec.md §4.3: "a function or decorator...
// removes the registry entry, returns its signature as a String").
func (r *Registry) DeleteFunction(name string) (*Callable, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.functions[name]
	if ok {
		delete(r.functions, name)
	}
	return c, ok
}

// DeleteDecorator removes a decorator entry.
func (r *Registry) DeleteDecorator(name string) (*Callable, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.decorators[name]
	if ok {
		delete(r.decorators, name)
	}
	return c, ok
}

// Signature renders a Callable's declared shape as the String spec.md
// §4.3 says `del` returns for a function/decorator entry.
func (c *Callable) Signature() string {
	s := c.Name + "("
	for i, k := range c.ArgKinds {
		if i > 0 {
			s += ", "
		}
		s += k
	}
	s += ")"
	if c.ReturnKind != "" {
		s += ": " + c.ReturnKind
	}
	return s
}

// SetState writes key into the shared extension state map (spec.md
// §3.4).
func (r *Registry) SetState(key string, v value.Value) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state[key] = v
}

// GetState reads key from the shared extension state map.
func (r *Registry) GetState(key string) (value.Value, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.state[key]
	return v, ok
}

// State returns a snapshot copy of the entire shared state map, used
// by `loadState`/`saveState` at the host boundary (spec.md §4.4).
func (r *Registry) State() map[string]value.Value {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]value.Value, len(r.state))
	for k, v := range r.state {
		out[k] = v
	}
	return out
}

// ReplaceState overwrites the entire shared state map, used to load a
// previously saved state snapshot.
func (r *Registry) ReplaceState(snapshot map[string]value.Value) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = make(map[string]value.Value, len(snapshot))
	for k, v := range snapshot {
		r.state[k] = v
	}
}
