package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/roach88/lexc/internal/compiler"
	"github.com/roach88/lexc/internal/config"
	"github.com/roach88/lexc/internal/ir"
	"github.com/roach88/lexc/internal/lexicon"
)

// DefaultConcurrency bounds RunAll when no limit is given.
const DefaultConcurrency = 4

// Run executes a test scenario and returns the result.
//
// Execution flow:
//  1. Load the specs directory, if any, and append the inline entries
//  2. Build the derivation families from the loaded pipelines
//  3. Compile with the scenario's compiler options
//  4. Evaluate the assertions against the table, lexicon and diagnostics
//
// An error is returned only when the scenario cannot be compiled at all.
// Failed assertions are reported in the result.
func Run(scenario *Scenario) (*Result, error) {
	compiled, err := compileScenario(scenario)
	if err != nil {
		return nil, err
	}

	result := NewResult()
	result.Compile = compiled
	result.Lexicon = lexicon.New(compiled.Table)

	for _, errMsg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(errMsg)
	}

	return result, nil
}

// compileScenario loads and compiles the scenario's lexicon.
func compileScenario(s *Scenario) (*compiler.Result, error) {
	var (
		defs      []ir.EntryDef
		pipelines []compiler.PipelineDef
		skipped   []compiler.ValidationError
	)

	if s.Specs != "" {
		loaded, err := compiler.LoadSpecs(s.Specs)
		if err != nil {
			return nil, fmt.Errorf("failed to load specs: %w", err)
		}
		defs = append(defs, loaded.Defs...)
		pipelines = loaded.Pipelines
		skipped = loaded.Skipped
	}
	for _, e := range s.Entries {
		defs = append(defs, e.Def())
	}

	families, badPipelines := compiler.BuildRegistry(pipelines)
	skipped = append(skipped, badPipelines...)

	cc := config.DefaultCompiler()
	if o := s.Options; o != nil {
		if o.Clusters != "" {
			cc.Clusters = o.Clusters
		}
		if o.Epenthetic != "" {
			cc.Epenthetic = o.Epenthetic
		}
		if o.MaxRootLength != nil {
			cc.MaxRootLength = *o.MaxRootLength
		}
	}

	// Suppress logs in tests
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	opts, err := cc.CompileOptions(families, logger)
	if err != nil {
		return nil, fmt.Errorf("invalid scenario options: %w", err)
	}

	result := compiler.Compile(defs, opts)
	result.AddSkipped(skipped)
	return result, nil
}

// FileResult is the outcome of one scenario file in RunAll.
type FileResult struct {
	Path     string
	Scenario *Scenario // nil if the file failed to load
	Result   *Result   // nil if Err is set
	Err      error
}

// RunAll loads and runs scenario files concurrently, at most limit at a
// time (limit <= 0 selects DefaultConcurrency). Results are returned in
// the order of paths. A file that fails to load or compile is reported in
// its FileResult; the returned error is non-nil only if ctx is cancelled.
func RunAll(ctx context.Context, paths []string, limit int) ([]FileResult, error) {
	if limit <= 0 {
		limit = DefaultConcurrency
	}

	results := make([]FileResult, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = runFile(path)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func runFile(path string) FileResult {
	fr := FileResult{Path: path}

	scenario, err := LoadScenario(path)
	if err != nil {
		fr.Err = err
		return fr
	}
	fr.Scenario = scenario

	result, err := Run(scenario)
	if err != nil {
		fr.Err = fmt.Errorf("execution failed: %w", err)
		return fr
	}
	fr.Result = result
	return fr
}
