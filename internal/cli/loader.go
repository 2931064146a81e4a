package cli

import (
	"errors"
	"fmt"

	"github.com/roach88/lexc/internal/compiler"
	"github.com/roach88/lexc/internal/derive"
)

// compiled bundles what a command needs after loading and compiling specs.
type compiled struct {
	Load     *compiler.LoadResult
	Families *derive.Registry
	Result   *compiler.Result
}

// loadSpecs loads a specs directory and builds its derivation families.
// Definitions and pipelines skipped for their shape are collected in the
// load result. Only a failure that leaves nothing to compile becomes the
// command's error, after being written to the formatter.
func loadSpecs(formatter *OutputFormatter, specsDir string) (*compiler.LoadResult, *derive.Registry, error) {
	loaded, err := compiler.LoadSpecs(specsDir)
	if err != nil {
		return nil, nil, outputLoadError(formatter, err)
	}
	formatter.VerboseLog("Found %d CUE file(s) in %s", loaded.FileCount, specsDir)

	families, skipped := compiler.BuildRegistry(loaded.Pipelines)
	loaded.Skipped = append(loaded.Skipped, skipped...)
	for _, s := range loaded.Skipped {
		formatter.VerboseLog("Skipped %s: %s", s.Field, s.Message)
	}
	return loaded, families, nil
}

// compileSpecs loads and compiles a specs directory with the configured
// compiler settings.
func compileSpecs(opts *RootOptions, formatter *OutputFormatter, specsDir string) (*compiled, error) {
	loaded, families, err := loadSpecs(formatter, specsDir)
	if err != nil {
		return nil, err
	}

	copts, err := opts.cfg().Compiler.CompileOptions(families, opts.log())
	if err != nil {
		return nil, outputCommandError(formatter, compiler.ErrCodeGeneric, fmt.Sprintf("compiler settings: %v", err))
	}

	result := compiler.Compile(loaded.Defs, copts)
	result.AddSkipped(loaded.Skipped)
	formatter.VerboseLog("Resolved %d entr(ies) in %d pass(es)", result.Table.Len(), result.Passes)

	return &compiled{Load: loaded, Families: families, Result: result}, nil
}

// outputCommandError outputs a single command-level error (exit code 2).
func outputCommandError(formatter *OutputFormatter, code, message string) error {
	_ = formatter.Error(code, message, nil)
	return NewExitError(ExitCommandError, fmt.Sprintf("%s: %s", code, message))
}

// outputLoadError outputs a load failure as a command-level error,
// prefixed with its CUE position when one is known.
func outputLoadError(formatter *OutputFormatter, err error) error {
	code, message := compiler.ErrCodeGeneric, err.Error()
	var loadErr *compiler.LoadError
	if errors.As(err, &loadErr) {
		code, message = loadErr.Code, loadErr.Message
		if loadErr.Pos.IsValid() {
			message = fmt.Sprintf("%s:%d:%d: %s", loadErr.Pos.Filename(), loadErr.Pos.Line(), loadErr.Pos.Column(), message)
		}
	}
	return outputCommandError(formatter, code, message)
}
