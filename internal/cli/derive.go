package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/lexc/internal/compiler"
	"github.com/roach88/lexc/internal/derive"
)

// DeriveOptions holds flags for the derive command.
type DeriveOptions struct {
	*RootOptions
	Specs string // load project pipelines from this directory
	Trace bool   // print every rule that changed the word
}

// DeriveStep is one rule application in a derivation trace.
type DeriveStep struct {
	Match   string `json:"match"`
	Replace string `json:"replace"`
	Output  string `json:"output"`
}

// DeriveResult is the outcome of deriving one citation.
type DeriveResult struct {
	Family   string       `json:"family"`
	Citation string       `json:"citation"`
	Input    string       `json:"input"`
	Headword string       `json:"headword,omitempty"` // set with --trace
	Form     string       `json:"form"`
	Steps    []DeriveStep `json:"steps,omitempty"`
}

// NewDeriveCommand creates the derive command.
func NewDeriveCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DeriveOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "derive <family> <citation>...",
		Short: "Run a derivation family on source citations",
		Long: `Derive root forms from natural-language source citations.

The built-in families are gem, lat, sla and acronym. With --specs the
pipelines defined in that directory are available too. --trace prints
each rule that changed the word.

Examples:
  lexc derive lat centum
  lexc derive gem "*fanē" --trace
  lexc derive lenite fisa --specs ./specs`,
		Args:          cobra.MinimumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDerive(opts, args[0], args[1:], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Specs, "specs", "", "load pipelines from this specs directory")
	cmd.Flags().BoolVar(&opts.Trace, "trace", false, "print each rule that changed the word")

	return cmd
}

func runDerive(opts *DeriveOptions, name string, citations []string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	families := derive.Builtin()
	if opts.Specs != "" {
		var err error
		if _, families, err = loadSpecs(formatter, opts.Specs); err != nil {
			return err
		}
	}

	family, ok := families.Lookup(name)
	if !ok {
		return outputCommandError(formatter, compiler.ErrUnknownFamily,
			fmt.Sprintf("unknown derivation family %q (known: %s)", name, strings.Join(families.Names(), ", ")))
	}

	results := make([]DeriveResult, 0, len(citations))
	for _, citation := range citations {
		input, steps := family.Trace(citation)
		res := DeriveResult{Family: name, Citation: citation, Input: input, Form: input}
		if opts.Trace {
			res.Headword = derive.Headword(citation)
		}
		prev := input
		for _, s := range steps {
			if opts.Trace && s.Changed(prev) {
				res.Steps = append(res.Steps, DeriveStep{Match: s.Rule.Match, Replace: s.Rule.Replace, Output: s.Output})
			}
			prev = s.Output
		}
		res.Form = prev
		opts.log().Debug("derived", "family", name, "citation", citation, "form", res.Form)
		results = append(results, res)
	}

	if formatter.Format == "json" {
		return formatter.Success(results)
	}

	w := formatter.Writer
	for _, res := range results {
		fmt.Fprintf(w, "%s → %s\n", res.Citation, res.Form)
		if res.Headword != "" {
			fmt.Fprintf(w, "  headword: %s\n", res.Headword)
		}
		for _, s := range res.Steps {
			fmt.Fprintf(w, "  %s → %q: %s\n", s.Match, s.Replace, s.Output)
		}
	}
	return nil
}
