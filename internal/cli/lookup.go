package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/lexc/internal/lexicon"
)

// LookupResult is the outcome of looking up one key.
type LookupResult struct {
	Key    string          `json:"key"`
	Found  bool            `json:"found"`
	Record *lexicon.Record `json:"record,omitempty"`
}

// NewLookupCommand creates the lookup command.
func NewLookupCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lookup <specs-dir> <key>...",
		Short: "Look up compiled entries by key",
		Long: `Compile specs-dir and print the entry for each key.

A bare key falls back to its compound (key*) and idiom (key#) variants,
in that order.

Exit codes:
  0 - Every key was found
  1 - One or more keys have no entry
  2 - Command error`,
		Args:          cobra.MinimumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLookup(rootOpts, args[0], args[1:], cmd)
		},
	}

	return cmd
}

func runLookup(opts *RootOptions, specsDir string, keys []string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	c, err := compileSpecs(opts, formatter, specsDir)
	if err != nil {
		return err
	}
	lex := lexicon.New(c.Result.Table)

	results := make([]LookupResult, 0, len(keys))
	missing := 0
	for _, key := range keys {
		r, ok := lex.Lookup(key)
		if !ok {
			missing++
			results = append(results, LookupResult{Key: key})
			continue
		}
		results = append(results, LookupResult{Key: key, Found: true, Record: &r})
	}

	if formatter.Format == "json" {
		if err := formatter.Success(results); err != nil {
			return err
		}
	} else {
		w := formatter.Writer
		for _, res := range results {
			if !res.Found {
				fmt.Fprintf(w, "✗ %s: no entry\n", res.Key)
				continue
			}
			r := res.Record
			fmt.Fprintf(w, "%s = %s (%s)\n", r.Key, r.Form, r.Kind)
			if r.Gloss != "" {
				fmt.Fprintf(w, "  gloss: %s\n", r.Gloss)
			}
			if r.Class != "" {
				fmt.Fprintf(w, "  class: %s\n", r.Class)
			}
			if r.Etymology != "" {
				fmt.Fprintf(w, "  etymology: %s\n", r.Etymology)
			}
			if r.Date != "" {
				fmt.Fprintf(w, "  date: %s\n", r.Date)
			}
		}
	}

	if missing > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d key(s) not found", missing))
	}
	return nil
}
