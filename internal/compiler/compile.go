package compiler

import (
	"io"
	"log/slog"

	"github.com/roach88/lexc/internal/derive"
	"github.com/roach88/lexc/internal/ir"
	"github.com/roach88/lexc/internal/junction"
	"github.com/roach88/lexc/internal/phonology"
)

// DefaultMaxRootLength is the length at which a root is reported as too long.
const DefaultMaxRootLength = 7

// Options configures Compile. Nil components take their defaults.
type Options struct {
	Assembler *junction.Assembler
	Validator *phonology.Validator
	Families  *derive.Registry

	// MaxRootLength flags roots of this many letters or more. 0 disables.
	MaxRootLength int

	Logger *slog.Logger
}

// DefaultOptions returns the standard configuration.
func DefaultOptions() Options {
	return Options{
		Assembler:     junction.Default(),
		Validator:     phonology.Default(),
		Families:      derive.Builtin(),
		MaxRootLength: DefaultMaxRootLength,
	}
}

func (o Options) withDefaults() Options {
	if o.Assembler == nil {
		o.Assembler = junction.Default()
	}
	if o.Validator == nil {
		o.Validator = phonology.Default()
	}
	if o.Families == nil {
		o.Families = derive.Builtin()
	}
	if o.Logger == nil {
		o.Logger = discardLogger()
	}
	return o
}

// Result is the output of a compilation.
type Result struct {
	// Table holds every entry that resolved, in definition order.
	Table *ir.Table

	// Diagnostics is the ordered stream: definition errors, derivation,
	// resolution, phonotactics, then collisions.
	Diagnostics ir.Diagnostics

	Collisions []Collision

	// Cycles explains which unresolved entries sit on a reference cycle.
	// These notes are not part of Diagnostics.
	Cycles []CycleWarning

	// Passes is the number of resolver scans.
	Passes int

	// Hash is the content hash of Table.
	Hash string
}

// Compile turns definitions into a resolved, checked entry table.
//
// Compile never fails as a whole: a definition that cannot be ingested,
// derived or resolved is dropped with a diagnostic and the rest of the
// lexicon compiles normally. The result depends only on defs and opts.
func Compile(defs []ir.EntryDef, opts Options) *Result {
	opts = opts.withDefaults()
	result := &Result{Diagnostics: ir.Diagnostics{}}

	// Ingestion: drop definitions that break the definition rules.
	invalid := make(map[int]bool)
	for _, verr := range ValidateDefs(defs, opts.Families) {
		result.Diagnostics = append(result.Diagnostics, verr.Diagnostic())
		invalid[verr.Index] = true
	}
	accepted := make([]ir.EntryDef, 0, len(defs))
	for i, def := range defs {
		if !invalid[i] {
			accepted = append(accepted, def)
		}
	}

	table, diags := BuildTable(accepted, opts.Families)
	result.Diagnostics = append(result.Diagnostics, diags...)

	resolved := Resolve(table, opts.Assembler, opts.Logger)
	result.Diagnostics = append(result.Diagnostics, resolved.Diagnostics...)
	result.Passes = resolved.Passes
	result.Cycles = AnalyzeCycles(table, resolved.Unresolved)
	result.Table = resolved.Table

	result.Diagnostics = append(result.Diagnostics, CheckForms(result.Table, opts.Validator, opts.MaxRootLength)...)

	result.Collisions = FindCollisions(result.Table)
	for _, c := range result.Collisions {
		result.Diagnostics = append(result.Diagnostics, c.Diagnostic())
	}

	hash, err := ir.TableHash(result.Table)
	if err != nil {
		opts.Logger.Error("hashing compiled table", "error", err)
	}
	result.Hash = hash

	opts.Logger.Info("compiled lexicon",
		"definitions", len(defs),
		"entries", result.Table.Len(),
		"dropped", len(resolved.Unresolved),
		"passes", result.Passes,
		"errors", result.Diagnostics.Count(ir.SeverityError),
		"warnings", result.Diagnostics.Count(ir.SeverityWarning),
	)

	return result
}

// AddSkipped puts definitions that never reached Compile, such as those
// skipped while loading, at the head of the diagnostics stream as errors.
func (r *Result) AddSkipped(skipped []ValidationError) {
	if len(skipped) == 0 {
		return
	}
	diags := make(ir.Diagnostics, 0, len(skipped)+len(r.Diagnostics))
	for _, s := range skipped {
		diags = append(diags, s.Diagnostic())
	}
	r.Diagnostics = append(diags, r.Diagnostics...)
}

// discardLogger returns a logger that drops everything.
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
