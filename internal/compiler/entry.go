package compiler

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/roach88/lexc/internal/ir"
	"github.com/roach88/lexc/internal/rewrite"
)

// entryFields are the fields an entry definition may carry.
var entryFields = map[string]bool{
	"form":      true,
	"derive":    true,
	"source":    true,
	"compound":  true,
	"idiom":     true,
	"etymology": true,
	"gloss":     true,
	"class":     true,
	"date":      true,
}

// CompileEntry parses a CUE value into an EntryDef.
// Uses CUE SDK's Go API directly (not CLI subprocess).
//
// The CUE value should be the entry struct itself, e.g.:
//
//	ctx := cuecontext.New()
//	v := ctx.CompileString(`entry: zero: { form: "ze", gloss: "0" }`)
//	def, err := CompileEntry(v.LookupPath(cue.ParsePath("entry.zero")))
//
// Only shape is checked here. Semantic rules (exactly one way to obtain a
// form, known derivation family) belong to ValidateDefs.
func CompileEntry(v cue.Value) (*ir.EntryDef, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	def := &ir.EntryDef{Origin: posString(v.Pos())}

	labels := v.Path().Selectors()
	if len(labels) > 0 {
		def.Key = unquoteLabel(labels[len(labels)-1])
	}

	iter, err := v.Fields()
	if err != nil {
		return nil, &CompileError{
			Field:   def.Key,
			Message: "entry must be a struct",
			Pos:     v.Pos(),
		}
	}
	for iter.Next() {
		if !entryFields[iter.Selector().Unquoted()] {
			return nil, &CompileError{
				Field:   iter.Selector().Unquoted(),
				Message: fmt.Sprintf("unknown field in entry %q", def.Key),
				Pos:     iter.Value().Pos(),
			}
		}
	}

	scalars := []struct {
		name string
		dst  *string
	}{
		{"form", &def.Form},
		{"derive", &def.Derive},
		{"source", &def.Source},
		{"etymology", &def.Etymology},
		{"gloss", &def.Gloss},
		{"class", &def.Class},
		{"date", &def.Date},
	}
	for _, f := range scalars {
		s, err := optionalString(v, f.name)
		if err != nil {
			return nil, err
		}
		*f.dst = s
	}

	compound, err := optionalStringList(v, "compound")
	if err != nil {
		return nil, err
	}
	if compound != nil {
		def.Compound = ir.ParseRefs(compound)
	}

	idiom, err := optionalStringList(v, "idiom")
	if err != nil {
		return nil, err
	}
	if idiom != nil {
		def.Idiom = ir.ParseRefs(idiom)
	}

	return def, nil
}

// PipelineDef is a project-defined derivation chain.
type PipelineDef struct {
	Name        string
	Description string
	Rules       []rewrite.Spec
	Origin      string
}

// CompilePipeline parses a CUE list of rules into a PipelineDef:
//
//	pipeline: norse: [
//		{match: "ø", replace: "o"},
//		{match: "r$", replace: "", scope: "first"},
//	]
//
// Patterns are compiled here so a bad pattern is reported at its position.
func CompilePipeline(v cue.Value) (*PipelineDef, error) {
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	def := &PipelineDef{Origin: posString(v.Pos())}
	labels := v.Path().Selectors()
	if len(labels) > 0 {
		def.Name = unquoteLabel(labels[len(labels)-1])
	}

	iter, err := v.List()
	if err != nil {
		return nil, &CompileError{
			Field:   "pipeline",
			Message: fmt.Sprintf("pipeline %q must be a list of rules", def.Name),
			Pos:     v.Pos(),
		}
	}

	for i := 0; iter.Next(); i++ {
		rv := iter.Value()

		match, err := optionalString(rv, "match")
		if err != nil {
			return nil, err
		}
		if match == "" {
			return nil, &CompileError{
				Field:   fmt.Sprintf("pipeline.%s[%d].match", def.Name, i),
				Message: "match is required",
				Pos:     rv.Pos(),
			}
		}
		replace, err := optionalString(rv, "replace")
		if err != nil {
			return nil, err
		}
		scope, err := optionalString(rv, "scope")
		if err != nil {
			return nil, err
		}

		spec := rewrite.Spec{Match: match, Replace: replace, Scope: rewrite.Scope(scope)}
		if _, err := rewrite.NewRule(spec.Match, spec.Replace, spec.Scope); err != nil {
			return nil, &CompileError{
				Field:   fmt.Sprintf("pipeline.%s[%d]", def.Name, i),
				Message: err.Error(),
				Pos:     rv.Pos(),
			}
		}
		def.Rules = append(def.Rules, spec)
	}

	return def, nil
}

// optionalString reads a string field, returning "" when it is absent.
func optionalString(v cue.Value, field string) (string, error) {
	fv := v.LookupPath(cue.ParsePath(field))
	if !fv.Exists() {
		return "", nil
	}
	s, err := fv.String()
	if err != nil {
		return "", &CompileError{
			Field:   field,
			Message: "must be a string",
			Pos:     fv.Pos(),
		}
	}
	return s, nil
}

// optionalStringList reads a list of strings, returning nil when absent.
// A present but empty list returns an empty, non-nil slice.
func optionalStringList(v cue.Value, field string) ([]string, error) {
	fv := v.LookupPath(cue.ParsePath(field))
	if !fv.Exists() {
		return nil, nil
	}
	iter, err := fv.List()
	if err != nil {
		return nil, &CompileError{
			Field:   field,
			Message: "must be a list of strings",
			Pos:     fv.Pos(),
		}
	}
	out := []string{}
	for iter.Next() {
		s, err := iter.Value().String()
		if err != nil {
			return nil, &CompileError{
				Field:   field,
				Message: "must be a list of strings",
				Pos:     iter.Value().Pos(),
			}
		}
		out = append(out, s)
	}
	return out, nil
}

func unquoteLabel(sel cue.Selector) string {
	if sel.LabelType() == cue.StringLabel {
		return sel.Unquoted()
	}
	return sel.String()
}

func posString(pos token.Pos) string {
	if !pos.IsValid() {
		return ""
	}
	return fmt.Sprintf("%s:%d:%d", pos.Filename(), pos.Line(), pos.Column())
}

// CompileError represents a compilation error with source position.
type CompileError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	first := errs[0]
	positions := errors.Positions(first)
	if len(positions) > 0 {
		return &CompileError{
			Field:   "cue",
			Message: first.Error(),
			Pos:     positions[0],
		}
	}

	return err
}
