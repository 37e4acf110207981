// Package stdlib implements Lavendish's host-registered built-in
// functions, catalogued by category (spec.md §2 item 5, SPEC_FULL.md
// §4.4): math, string, array/object, type inspection, assertions, and
// JSON interop. Each category lives in its own file and exposes a
// register*Builtins(reg) helper.
//
// I/O-bound built-ins (HTTP, DNS, filesystem, cryptography) are out of
// scope (spec.md §1 "Out of scope: external collaborators") and are
// not implemented here; a host embedding pkg/lavendish registers those
// itself via Engine.RegisterFunction.
package stdlib

import (
	"github.com/lavendeux/lavendish/internal/extension"
)

// Register installs every built-in category into reg. Called once by
// pkg/lavendish.New when constructing a fresh Engine.
func Register(reg *extension.Registry) error {
	for _, register := range []func(*extension.Registry) error{
		registerMathBuiltins,
		registerStringBuiltins,
		registerCollectionBuiltins,
		registerTypeBuiltins,
		registerAssertBuiltins,
		registerJSONBuiltins,
	} {
		if err := register(reg); err != nil {
			return err
		}
	}
	return nil
}
