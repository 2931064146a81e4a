package compiler

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"
	"cuelang.org/go/cue/token"

	"github.com/roach88/lexc/internal/derive"
	"github.com/roach88/lexc/internal/ir"
	"github.com/roach88/lexc/internal/rewrite"
)

// Load error codes, shared by every CLI command.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeScanError   = "E002" // Directory scan error
	ErrCodeNoFiles     = "E003" // No CUE files found
	ErrCodeLoadFailed  = "E004" // CUE load failed
	ErrCodeNotFound    = "E005" // Path not found
	ErrCodeBuildFailed = "E006" // CUE build failed
	ErrCodeWriteFailed = "E007" // File write error
	ErrCodeEntryShape  = "E008" // Entry or pipeline has the wrong shape
)

// LoadResult contains the lexicon sources found in a directory.
type LoadResult struct {
	Defs      []ir.EntryDef
	Pipelines []PipelineDef

	// Skipped lists the definitions left out because of their shape
	// (E008), in file order. They never reach Defs or Pipelines.
	Skipped []ValidationError

	FileCount int // Number of CUE files found
}

// LoadError represents an error that occurred during spec loading.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// LoadSpecs loads lexicon definitions and pipelines from a CUE directory.
//
// A definition with the wrong shape is skipped and recorded in Skipped so
// the rest of the lexicon still loads. The returned error is reserved for
// failures that leave nothing to compile: a missing or empty directory,
// CUE that does not load or build, or a directory without entries.
//
// Definitions keep CUE field order, which is the table's insertion order.
func LoadSpecs(dir string) (*LoadResult, error) {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("specs directory not found: %s", dir)}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing specs directory: %v", err)}
	}
	if !info.IsDir() {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("not a directory: %s", dir)}
	}

	cueFiles, err := FindCUEFiles(dir)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeScanError, Message: fmt.Sprintf("error scanning directory: %v", err)}
	}
	if len(cueFiles) == 0 {
		return nil, &LoadError{Code: ErrCodeNoFiles, Message: fmt.Sprintf("no CUE files found in %s", dir)}
	}

	ctx := cuecontext.New()
	instances := load.Instances([]string{"."}, &load.Config{Dir: dir})
	if len(instances) == 0 {
		return nil, &LoadError{Code: ErrCodeLoadFailed, Message: "no CUE instances loaded"}
	}

	inst := instances[0]
	if inst.Err != nil {
		return nil, &LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("loading CUE files: %v", inst.Err)}
	}

	value := ctx.BuildInstance(inst)
	if err := value.Err(); err != nil {
		return nil, &LoadError{Code: ErrCodeBuildFailed, Message: fmt.Sprintf("building CUE value: %v", err)}
	}

	result, err := Extract(value)
	if err != nil {
		return nil, err
	}
	result.FileCount = len(cueFiles)

	if len(result.Defs) == 0 && len(result.Skipped) == 0 {
		return nil, &LoadError{Code: ErrCodeGeneric, Message: "no entries found in specs"}
	}

	return result, nil
}

// Extract reads the entry and pipeline sections of a built CUE value.
// Malformed definitions are collected in Skipped; an error is returned
// only when a section cannot be iterated at all.
func Extract(value cue.Value) (*LoadResult, error) {
	result := &LoadResult{}

	pipelinesVal := value.LookupPath(cue.ParsePath("pipeline"))
	if pipelinesVal.Exists() {
		iter, err := pipelinesVal.Fields()
		if err != nil {
			return nil, &LoadError{Code: ErrCodeEntryShape, Message: fmt.Sprintf("iterating pipelines: %v", err), Pos: pipelinesVal.Pos()}
		}
		for iter.Next() {
			def, compileErr := CompilePipeline(iter.Value())
			if compileErr != nil {
				result.Skipped = append(result.Skipped, skippedDef("", "pipeline."+iter.Selector().String(), compileErr))
				continue
			}
			result.Pipelines = append(result.Pipelines, *def)
		}
	}

	entriesVal := value.LookupPath(cue.ParsePath("entry"))
	if entriesVal.Exists() {
		iter, err := entriesVal.Fields()
		if err != nil {
			return nil, &LoadError{Code: ErrCodeEntryShape, Message: fmt.Sprintf("iterating entries: %v", err), Pos: entriesVal.Pos()}
		}
		for iter.Next() {
			def, compileErr := CompileEntry(iter.Value())
			if compileErr != nil {
				key := iter.Selector().Unquoted()
				result.Skipped = append(result.Skipped, skippedDef(key, "entry."+key, compileErr))
				continue
			}
			result.Defs = append(result.Defs, *def)
		}
	}

	return result, nil
}

// FindCUEFiles walks the directory and returns all .cue file paths, sorted.
func FindCUEFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && filepath.Ext(path) == ".cue" {
			files = append(files, path)
		}
		return nil
	})
	slices.Sort(files)
	return files, err
}

// BuildRegistry returns the built-in derivation families plus pipelines.
// A pipeline whose rules do not compile, or that reuses a registered
// family name, is left out and reported as E008.
func BuildRegistry(pipelines []PipelineDef) (*derive.Registry, []ValidationError) {
	reg := derive.Builtin()
	var skipped []ValidationError
	for _, p := range pipelines {
		pl, err := rewrite.Compile(p.Name, p.Rules)
		if err == nil {
			err = reg.Register(derive.Framed(p.Name, p.Description, pl.Rules...))
		}
		if err != nil {
			skipped = append(skipped, ValidationError{
				Field:   "pipeline." + p.Name,
				Message: err.Error(),
				Code:    ErrCodeEntryShape,
				Origin:  p.Origin,
				Index:   -1,
			})
		}
	}
	return reg, skipped
}

// skippedDef records a definition left out of the load.
func skippedDef(key, context string, err error) ValidationError {
	v := ValidationError{Key: key, Field: context, Code: ErrCodeEntryShape, Message: err.Error(), Index: -1}
	var compileErr *CompileError
	if errors.As(err, &compileErr) {
		v.Message = fmt.Sprintf("%s: %s", compileErr.Field, compileErr.Message)
		v.Origin = posString(compileErr.Pos)
	}
	return v
}
