package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/lexc/internal/compiler"
	"github.com/roach88/lexc/internal/ir"
	"github.com/roach88/lexc/internal/store"
)

// CompileOptions holds flags for the compile command.
type CompileOptions struct {
	*RootOptions
	Output string // output file path
	DBPath string // history database path
	Strict bool   // exit 1 on error diagnostics
}

// CompilationSummary is the JSON payload of a compilation.
type CompilationSummary struct {
	Entries     int                     `json:"entries"`
	Passes      int                     `json:"passes"`
	Hash        string                  `json:"hash"`
	Errors      int                     `json:"errors"`
	Warnings    int                     `json:"warnings"`
	Diagnostics ir.Diagnostics          `json:"diagnostics"`
	Cycles      []compiler.CycleWarning `json:"cycles,omitempty"`
	Output      string                  `json:"output,omitempty"`
	RunID       string                  `json:"run_id,omitempty"`
}

// NewCompileCommand creates the compile command.
func NewCompileCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompileOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compile [specs-dir]",
		Short: "Compile a lexicon to its canonical entry table",
		Long: `Compile the CUE lexicon in specs-dir (default: the configured specs_dir).

Definitions that cannot be derived or resolved are dropped with a
diagnostic; the rest of the lexicon compiles normally. With --output the
canonical table is written to a file, with --db the run is recorded in the
history database.

Exit codes:
  0 - Compiled (diagnostics may have been reported)
  1 - Error diagnostics were reported and --strict is set
  2 - Command error (specs not found, bad CUE, unwritable output)`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true, // Don't print usage on errors - we handle our own error output
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(opts, opts.specsDir(args), cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file path")
	cmd.Flags().StringVar(&opts.DBPath, "db", "", "record the run in this history database")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "exit 1 when any error diagnostic is reported")

	return cmd
}

func runCompile(opts *CompileOptions, specsDir string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	cfg := opts.cfg()

	c, err := compileSpecs(opts.RootOptions, formatter, specsDir)
	if err != nil {
		return err
	}
	result := c.Result

	summary := CompilationSummary{
		Entries:     result.Table.Len(),
		Passes:      result.Passes,
		Hash:        result.Hash,
		Errors:      result.Diagnostics.Count(ir.SeverityError),
		Warnings:    result.Diagnostics.Count(ir.SeverityWarning),
		Diagnostics: result.Diagnostics,
		Cycles:      result.Cycles,
		Output:      opts.Output,
	}
	if summary.Diagnostics == nil {
		summary.Diagnostics = ir.Diagnostics{}
	}

	// Write to file if --output specified
	if opts.Output != "" {
		if err := writeTableToFile(result.Table, opts.Output); err != nil {
			return outputCommandError(formatter, compiler.ErrCodeWriteFailed, fmt.Sprintf("writing output file: %v", err))
		}
	}

	dbPath := opts.DBPath
	if dbPath == "" {
		dbPath = cfg.DBPath
	}
	if dbPath != "" {
		run, err := recordRun(cmd, dbPath, specsDir, result)
		if err != nil {
			return outputCommandError(formatter, compiler.ErrCodeWriteFailed, fmt.Sprintf("recording run: %v", err))
		}
		summary.RunID = run.ID
		formatter.VerboseLog("Recorded run %d (%s) in %s", run.Seq, run.ID, dbPath)
	}

	if err := outputCompileSuccess(formatter, summary); err != nil {
		return err
	}

	if (opts.Strict || cfg.Strict) && summary.Errors > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("compilation reported %d error(s)", summary.Errors))
	}
	return nil
}

// recordRun stores the compilation in the history database.
func recordRun(cmd *cobra.Command, dbPath, specsDir string, result *compiler.Result) (store.Run, error) {
	st, err := store.Open(dbPath)
	if err != nil {
		return store.Run{}, err
	}
	defer st.Close()

	return st.WriteRun(cmd.Context(), store.RunInput{
		SpecsDir:    specsDir,
		Table:       result.Table,
		Diagnostics: result.Diagnostics,
		Passes:      result.Passes,
	})
}

// outputCompileSuccess outputs the compilation summary.
func outputCompileSuccess(formatter *OutputFormatter, summary CompilationSummary) error {
	if formatter.Format == "json" {
		return formatter.Success(summary)
	}

	w := formatter.Writer
	mark := "✓"
	if summary.Errors > 0 {
		mark = "✗"
	}
	fmt.Fprintf(w, "%s Compiled %d entr(ies) in %d pass(es): %d error(s), %d warning(s)\n",
		mark, summary.Entries, summary.Passes, summary.Errors, summary.Warnings)

	if len(summary.Diagnostics) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Diagnostics:")
		printDiagnostics(w, summary.Diagnostics)
	}

	if formatter.Verbose && len(summary.Cycles) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Cycles:")
		for _, c := range summary.Cycles {
			fmt.Fprintf(w, "  %s\n", c.Diagnostic())
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Table hash: %s\n", summary.Hash)
	if summary.Output != "" {
		fmt.Fprintf(w, "Wrote canonical table to %s\n", summary.Output)
	}
	if summary.RunID != "" {
		fmt.Fprintf(w, "Recorded run %s\n", summary.RunID)
	}
	return nil
}

// writeTableToFile writes the compiled table to a file in canonical JSON format.
func writeTableToFile(table *ir.Table, filename string) error {
	data, err := ir.MarshalTable(table)
	if err != nil {
		return fmt.Errorf("marshaling table: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("writing file: %w", err)
	}

	return nil
}
