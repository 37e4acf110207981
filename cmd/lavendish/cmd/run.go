package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lavendeux/lavendish/pkg/lavendish"
)

var evalExpr string

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a Lavendish script or expression",
	Long: `Evaluate Lavendish source from a file or inline expression and print
the result of each top-level line.

Examples:
  # Run a script file
  lavendish run script.lav

  # Evaluate an inline expression
  lavendish run -e "1 + 2 * 3"

  # Evaluate an expression with a trailing decorator
  lavendish run -e "1024 @bytes"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline code instead of reading from file")
}

func runScript(_ *cobra.Command, args []string) error {
	input, filename, err := readSource(evalExpr, args)
	if err != nil {
		return err
	}

	engine, err := lavendish.New()
	if err != nil {
		return fmt.Errorf("constructing engine: %w", err)
	}

	result, err := engine.Eval(input)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return fmt.Errorf("evaluation of %s failed", filename)
	}

	for _, v := range result.Values {
		fmt.Println(v.String())
	}

	return nil
}

// readSource resolves the input source for run/lex/parse: an inline
// -e expression or a single file argument. It never reads stdin.
func readSource(inline string, args []string) (input, filename string, err error) {
	if inline != "" {
		return inline, "<eval>", nil
	}
	if len(args) == 1 {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		return string(content), args[0], nil
	}
	return "", "", fmt.Errorf("either provide a file path or use -e flag for inline code")
}
