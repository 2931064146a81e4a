package cli

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/lexc/internal/compiler"
	"github.com/roach88/lexc/internal/phonology"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid   bool                       `json:"valid"`
	Entries int                        `json:"entries"`
	Errors  []compiler.ValidationError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [specs-dir]",
		Short: "Validate definitions without resolving them",
		Long: `Check every definition in specs-dir against the ingestion rules.

Validation reads the CUE files and checks keys, formulas and derivation
families without deriving or resolving any form. Faster than compile for
development feedback.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, rootOpts.specsDir(args), cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, specsDir string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)

	loaded, families, err := loadSpecs(formatter, specsDir)
	if err != nil {
		return err
	}

	validator := phonology.Default()
	for _, def := range loaded.Defs {
		formatter.VerboseLog("Validating entry: %s", def.Key)
		if !formatter.Verbose || def.Form == "" {
			continue
		}
		// compile reports the first broken rule; list them all.
		for _, v := range validator.ValidateAll(def.Form) {
			formatter.VerboseLog("  %s: %s", def.Key, v.Error())
		}
	}

	errs := append(slices.Clone(loaded.Skipped), compiler.ValidateDefs(loaded.Defs, families)...)
	if len(errs) > 0 {
		return outputValidationErrors(formatter, errs)
	}

	return outputValidateSuccess(formatter, len(loaded.Defs))
}

// outputValidateSuccess outputs successful validation results.
func outputValidateSuccess(formatter *OutputFormatter, entries int) error {
	if formatter.Format == "json" {
		return formatter.Success(ValidationResult{Valid: true, Entries: entries})
	}

	fmt.Fprintf(formatter.Writer, "✓ All %d definition(s) valid\n", entries)
	return nil
}

// outputValidationErrors outputs multiple validation errors.
func outputValidationErrors(formatter *OutputFormatter, errs []compiler.ValidationError) error {
	if formatter.Format == "json" {
		response := CLIResponse{
			Status: "error",
			Data: ValidationResult{
				Valid:  false,
				Errors: errs,
			},
			Error: &CLIError{
				Code:    errs[0].Code,
				Message: errs[0].Message,
			},
		}

		encoder := json.NewEncoder(formatter.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(response); err != nil {
			return err
		}

		// Validation failures = exit code 1
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
	}

	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)

	for _, err := range errs {
		if err.Origin != "" {
			fmt.Fprintln(formatter.Writer, err.Origin)
		}
		fmt.Fprintf(formatter.Writer, "  %s: %s: %s\n\n", err.Code, err.Field, err.Message)
	}

	// Validation failures = exit code 1
	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
}
