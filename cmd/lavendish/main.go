// Command lavendish is the standalone CLI for the Lavendish expression
// language: a developer tool for running and debugging scripts,
// separate from the clipboard-utility host application pkg/lavendish
// is meant to be embedded in (spec.md §1, out of scope here).
package main

import (
	"fmt"
	"os"

	"github.com/lavendeux/lavendish/cmd/lavendish/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
