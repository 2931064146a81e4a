package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/lexc/internal/compiler"
	"github.com/roach88/lexc/internal/lexicon"
)

// TranslateResult is the JSON payload of the translate command.
type TranslateResult struct {
	Input  string `json:"input"`
	Output string `json:"output"`
}

// NewTranslateCommand creates the translate command.
func NewTranslateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "translate <specs-dir> <code>...",
		Short: "Render code with compiled forms",
		Long: `Compile specs-dir and replace every key in code with its form.

The code arguments are joined with single spaces. A single "-" reads the
code from standard input. Identifiers without an entry, and all text
between tokens, are kept as is.

Examples:
  lexc translate ./specs "fire water steam"
  lexc translate ./specs - < program.txt`,
		Args:          cobra.MinimumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTranslate(rootOpts, args[0], args[1:], cmd)
		},
	}

	return cmd
}

func runTranslate(opts *RootOptions, specsDir string, parts []string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	code := strings.Join(parts, " ")
	if len(parts) == 1 && parts[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return outputCommandError(formatter, compiler.ErrCodeLoadFailed, fmt.Sprintf("reading stdin: %v", err))
		}
		code = strings.TrimRight(string(data), "\n")
	}

	c, err := compileSpecs(opts, formatter, specsDir)
	if err != nil {
		return err
	}
	out := lexicon.New(c.Result.Table).Translate(code)

	if formatter.Format == "json" {
		return formatter.Success(TranslateResult{Input: code, Output: out})
	}
	fmt.Fprintln(formatter.Writer, out)
	return nil
}
