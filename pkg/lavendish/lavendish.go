// Package lavendish is the public embedding API: a host application
// (the clipboard-utility shell the language is built for, spec.md §1)
// constructs an Engine, registers any host-specific functions/
// decorators, and evaluates one line of source at a time.
//
// This Engine carries no output-writer option: a line's result is its
// evaluated Value or a trailing decorator's String output (spec.md,
// "Result of a line"), never a captured print stream.
package lavendish

import (
	"fmt"

	"github.com/lavendeux/lavendish/internal/errors"
	"github.com/lavendeux/lavendish/internal/extension"
	"github.com/lavendeux/lavendish/internal/interp"
	"github.com/lavendeux/lavendish/internal/lexer"
	"github.com/lavendeux/lavendish/internal/parser"
	"github.com/lavendeux/lavendish/internal/stdlib"
	"github.com/lavendeux/lavendish/internal/value"
)

// Engine is one evaluation session: a shared extension registry and
// interpreter, reused across successive Eval calls so top-level
// variable bindings and function/decorator definitions persist the
// way a REPL's would (spec.md §3.3's scope stack is per-Engine, not
// per-Eval-call).
type Engine struct {
	reg *extension.Registry
	it  *interp.Interp

	name, author, version string
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithMaxCallDepth bounds user-function call recursion (spec.md §5).
func WithMaxCallDepth(n int) Option {
	return func(e *Engine) { e.it.Limits.MaxCallDepth = n }
}

// WithMaxRangeLen bounds how many elements a `..` range may
// materialize to.
func WithMaxRangeLen(n int) Option {
	return func(e *Engine) { e.it.Limits.MaxRangeLen = n }
}

// WithMaxCollectionLen bounds the length any Array/Object literal or
// collection operation may grow to.
func WithMaxCollectionLen(n int) Option {
	return func(e *Engine) { e.it.Limits.MaxCollectionLen = n }
}

// New builds an Engine with the standard library registered and
// spec.md §5's default resource limits, then applies opts.
func New(opts ...Option) (*Engine, error) {
	reg := extension.NewRegistry()
	if err := stdlib.Register(reg); err != nil {
		return nil, fmt.Errorf("lavendish: registering standard library: %w", err)
	}
	e := &Engine{reg: reg, it: interp.New(reg)}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Result is the outcome of evaluating a source string: one Value per
// top-level statement, in order (spec.md §3.2's Program is a sequence
// of statements; a single-line Eval call yields a single-element
// Result in the common case, but an Engine may also evaluate a
// multi-statement block in one call).
type Result struct {
	Values []value.Value
}

// Last returns the final statement's result, the value a single-line
// caller almost always wants. Returns value.NilValue if Values is
// empty (an empty or all-whitespace source string).
func (r Result) Last() value.Value {
	if len(r.Values) == 0 {
		return value.NilValue
	}
	return r.Values[len(r.Values)-1]
}

// String renders Last() the way a clipboard-replacement host would:
// the bare String contents if the result already is a String
// (including one produced by a trailing decorator), or the value's
// default textual form otherwise.
func (r Result) String() string {
	return r.Last().String()
}

// Eval parses and evaluates src against the Engine's persistent
// top-level scope. A parse failure yields every structured diagnostic
// spec.md §4.5/§7 describes, joined through internal/errors'
// source-context formatting; a runtime failure yields the single
// error the evaluator raised, formatted the same way.
func (e *Engine) Eval(src string) (Result, error) {
	prog, parseErrs := parser.ParseProgram(src, lexer.WithFilename("<eval>"))
	if len(parseErrs) > 0 {
		ces := errors.FromParseErrors(parseErrs, src, "<eval>")
		return Result{}, fmt.Errorf("%s", errors.FormatErrors(ces, false))
	}

	values, err := e.it.EvalProgram(prog)
	if err != nil {
		ce := errors.FromError(err, src, "<eval>")
		return Result{}, ce
	}
	return Result{Values: values}, nil
}

// RegisterFunction registers a host Go function under name, reachable
// from Lavendish source as an ordinary function call (spec.md §4.4,
// §6's registerFunction). fn is adapted via extension.WrapFunc: any
// non-variadic Go function returning at most (value, error).
func (e *Engine) RegisterFunction(name string, fn any, argKinds []string, returnKind, description string) error {
	native, err := extension.WrapFunc(fn)
	if err != nil {
		return fmt.Errorf("lavendish: RegisterFunction %q: %w", name, err)
	}
	return e.reg.RegisterFunction(name, native, argKinds, returnKind, description)
}

// RegisterDecorator registers a host Go function under name, callable
// from Lavendish source as a trailing `@name` decorator (spec.md
// §4.4, §6's registerDecorator). fn must accept exactly one argument
// and return a value coercible to String.
func (e *Engine) RegisterDecorator(name string, fn any, argKind, description string) error {
	native, err := extension.WrapFunc(fn)
	if err != nil {
		return fmt.Errorf("lavendish: RegisterDecorator %q: %w", name, err)
	}
	return e.reg.RegisterDecorator(name, native, argKind, description)
}

// CallFunction invokes a registered function directly, bypassing the
// parser (spec.md §6's callFunction(name, ...args)) — the mechanism a
// host uses to drive an extension's exported functions from outside
// any Lavendish source.
func (e *Engine) CallFunction(name string, args ...value.Value) (value.Value, error) {
	c, ok := e.reg.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("lavendish: no registered function %q", name)
	}
	return c.Native(args)
}

// SetExtensionName, SetExtensionAuthor, and SetExtensionVersion record
// the metadata ExportExtension bundles into its Manifest (spec.md
// §4.4, §6).
func (e *Engine) SetExtensionName(name string)       { e.name = name }
func (e *Engine) SetExtensionAuthor(author string)   { e.author = author }
func (e *Engine) SetExtensionVersion(version string) { e.version = version }

// ExportExtension describes every function and decorator currently
// registered, under the name/author/version set via the SetExtension*
// setters (spec.md §4.4: "exportExtension (returns
// {name,author,version,functions,decorators})").
func (e *Engine) ExportExtension() extension.Manifest {
	return e.reg.Export(e.name, e.author, e.version)
}

// LoadState replaces the Engine's shared extension state map with the
// contents of a JSON document previously produced by SaveState
// (spec.md §3.4, §4.4's loadState).
func (e *Engine) LoadState(doc string) error {
	return e.reg.LoadState(doc)
}

// SaveState serializes the Engine's shared extension state map to a
// JSON document a host can persist and later hand back to LoadState
// (spec.md §3.4, §4.4's saveState).
func (e *Engine) SaveState() (string, error) {
	return e.reg.SaveState()
}

// SetState and GetState set/read one key in the shared extension
// state map directly (spec.md §3.4, §4.4's "set/get shared state"),
// for a host that wants to seed or inspect state without a full
// JSON round trip through SaveState/LoadState.
func (e *Engine) SetState(key string, v value.Value) { e.reg.SetState(key, v) }
func (e *Engine) GetState(key string) (value.Value, bool) { return e.reg.GetState(key) }
