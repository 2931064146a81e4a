package cli

import (
	"database/sql"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/lexc/internal/compiler"
	"github.com/roach88/lexc/internal/ir"
	"github.com/roach88/lexc/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	DBPath string // history database path
	Diff   bool   // compare the two most recent runs
	Limit  int    // show at most this many runs
}

// RunDetail is a single run with its diagnostics.
type RunDetail struct {
	Run         store.Run      `json:"run"`
	Diagnostics ir.Diagnostics `json:"diagnostics"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "Inspect recorded compilations",
		Long: `List the compilations recorded by "lexc compile --db".

With a run ID, print that run and its diagnostics. With --diff, compare
the entries of the two most recent runs.

Examples:
  lexc history --db lexc.db
  lexc history --db lexc.db --limit 5
  lexc history --db lexc.db --diff
  lexc history --db lexc.db 0190a5b2-...`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.DBPath, "db", "", "history database path (default: configured db_path)")
	cmd.Flags().BoolVar(&opts.Diff, "diff", false, "compare the two most recent runs")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "show at most this many recent runs (0 = all)")

	return cmd
}

func runHistory(opts *HistoryOptions, args []string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	dbPath := opts.DBPath
	if dbPath == "" {
		dbPath = opts.cfg().DBPath
	}
	if dbPath == "" {
		return outputCommandError(formatter, compiler.ErrCodeNotFound, "no history database: pass --db or set db_path")
	}
	if _, err := os.Stat(dbPath); err != nil {
		return outputCommandError(formatter, compiler.ErrCodeNotFound, fmt.Sprintf("database not found: %s", dbPath))
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return outputCommandError(formatter, compiler.ErrCodeLoadFailed, fmt.Sprintf("opening database: %v", err))
	}
	defer st.Close()

	switch {
	case len(args) == 1:
		return showRun(formatter, cmd, st, args[0])
	case opts.Diff:
		return diffLatest(formatter, cmd, st)
	default:
		return listRuns(formatter, cmd, st, opts.Limit)
	}
}

// listRuns prints recorded runs, oldest first.
func listRuns(formatter *OutputFormatter, cmd *cobra.Command, st *store.Store, limit int) error {
	runs, err := st.ReadRuns(cmd.Context())
	if err != nil {
		return outputCommandError(formatter, compiler.ErrCodeGeneric, err.Error())
	}
	if limit > 0 && len(runs) > limit {
		runs = runs[len(runs)-limit:]
	}

	if formatter.Format == "json" {
		return formatter.Success(runs)
	}

	w := formatter.Writer
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return nil
	}
	for _, r := range runs {
		fmt.Fprintf(w, "#%d %s  %s  %d entr(ies), %d error(s), %d warning(s)  %s\n",
			r.Seq, r.ID, shortHash(r.TableHash), r.Entries, r.Errors, r.Warnings, r.SpecsDir)
	}
	return nil
}

// showRun prints one run with its diagnostics.
func showRun(formatter *OutputFormatter, cmd *cobra.Command, st *store.Store, id string) error {
	run, err := st.ReadRun(cmd.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		return outputCommandError(formatter, compiler.ErrCodeNotFound, fmt.Sprintf("run not found: %s", id))
	}
	if err != nil {
		return outputCommandError(formatter, compiler.ErrCodeGeneric, err.Error())
	}
	diags, err := st.ReadDiagnostics(cmd.Context(), id)
	if err != nil {
		return outputCommandError(formatter, compiler.ErrCodeGeneric, err.Error())
	}

	if formatter.Format == "json" {
		return formatter.Success(RunDetail{Run: run, Diagnostics: diags})
	}

	w := formatter.Writer
	fmt.Fprintf(w, "Run #%d %s\n", run.Seq, run.ID)
	fmt.Fprintf(w, "  specs: %s\n", run.SpecsDir)
	fmt.Fprintf(w, "  table: %s (version %s, compiler %s)\n", run.TableHash, run.TableVersion, run.CompilerVersion)
	fmt.Fprintf(w, "  %d entr(ies) in %d pass(es), %d error(s), %d warning(s)\n",
		run.Entries, run.Passes, run.Errors, run.Warnings)
	if len(diags) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Diagnostics:")
		printDiagnostics(w, diags)
	}
	return nil
}

// diffLatest compares the two most recent runs.
func diffLatest(formatter *OutputFormatter, cmd *cobra.Command, st *store.Store) error {
	runs, err := st.ReadRuns(cmd.Context())
	if err != nil {
		return outputCommandError(formatter, compiler.ErrCodeGeneric, err.Error())
	}
	if len(runs) < 2 {
		return outputCommandError(formatter, compiler.ErrCodeNotFound,
			fmt.Sprintf("diff needs two recorded runs, found %d", len(runs)))
	}
	from, to := runs[len(runs)-2], runs[len(runs)-1]

	diff, err := st.DiffRuns(cmd.Context(), from.ID, to.ID)
	if err != nil {
		return outputCommandError(formatter, compiler.ErrCodeGeneric, err.Error())
	}

	if formatter.Format == "json" {
		return formatter.Success(diff)
	}

	w := formatter.Writer
	fmt.Fprintf(w, "Run #%d → #%d\n", from.Seq, to.Seq)
	if diff.Empty() {
		fmt.Fprintln(w, "✓ No changes")
		return nil
	}
	for _, e := range diff.Added {
		fmt.Fprintf(w, "  + %s = %s\n", e.Key, e.Form)
	}
	for _, e := range diff.Removed {
		fmt.Fprintf(w, "  - %s = %s\n", e.Key, e.Form)
	}
	for _, c := range diff.Changed {
		fmt.Fprintf(w, "  ~ %s: %s → %s\n", c.Key, c.Before, c.After)
	}
	return nil
}

// shortHash abbreviates a table hash for listings.
func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}
