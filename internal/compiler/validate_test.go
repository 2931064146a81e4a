package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/lexc/internal/derive"
	"github.com/roach88/lexc/internal/ir"
)

// TestValidateDefs_Valid tests that well-formed definitions pass.
func TestValidateDefs_Valid(t *testing.T) {
	defs := []ir.EntryDef{
		rootDef("zero", "ze", "0"),
		compoundDef("steam", "fire", "water"),
		idiomDef("good_day", "good", "day"),
		{Key: "fan", Derive: "gem", Attributes: ir.Attributes{Source: "https://en.wiktionary.org/wiki/fan%C4%93"}},
		rootDef("which{", "vi", "which"),
		rootDef(",", "i", "and"),
		rootDef("]", "o", "end of clause"),
	}
	errs := ValidateDefs(defs, derive.Builtin())
	assert.Empty(t, errs)
}

// TestValidateDefs_Codes tests each ingestion rule in isolation.
func TestValidateDefs_Codes(t *testing.T) {
	tests := []struct {
		name  string
		def   ir.EntryDef
		code  string
		field string
	}{
		{"uppercase key", rootDef("Zero", "ze", ""), ErrInvalidKey, "entry.Zero.key"},
		{"digit first", rootDef("0zero", "ze", ""), ErrInvalidKey, "entry.0zero.key"},
		{"brace inside key", rootDef("a{b", "ze", ""), ErrInvalidKey, "entry.a{b.key"},
		{"two symbols", rootDef(",,", "ze", ""), ErrInvalidKey, "entry.,,.key"},
		{"nothing to form", ir.EntryDef{Key: "void"}, ErrNoFormation, "entry.void.form"},
		{"empty compound", ir.EntryDef{Key: "hollow", Compound: []ir.ComponentRef{}}, ErrEmptyFormula, "entry.hollow.compound"},
		{"empty ref", ir.EntryDef{Key: "gap", Idiom: []ir.ComponentRef{{Key: "a"}, {}}}, ErrEmptyFormula, "entry.gap.idiom[1]"},
		{"unknown family", ir.EntryDef{Key: "x", Derive: "elvish", Attributes: ir.Attributes{Source: "mellon"}}, ErrUnknownFamily, "entry.x.derive"},
		{"missing source", ir.EntryDef{Key: "x", Derive: "gem"}, ErrMissingSource, "entry.x.source"},
		{"spaced form", rootDef("x", "ka ta", ""), ErrInvalidForm, "entry.x.form"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateDefs([]ir.EntryDef{tt.def}, derive.Builtin())
			require.Len(t, errs, 1, "errors: %v", errs)
			assert.Equal(t, tt.code, errs[0].Code)
			assert.Equal(t, tt.field, errs[0].Field)
			assert.Equal(t, 0, errs[0].Index)
		})
	}
}

// TestValidateDefs_FormulaConflict tests that compound and idiom exclude each other.
func TestValidateDefs_FormulaConflict(t *testing.T) {
	def := ir.EntryDef{
		Key:      "both",
		Compound: ir.ParseRefs([]string{"a", "b"}),
		Idiom:    ir.ParseRefs([]string{"a", "b"}),
	}
	errs := ValidateDefs([]ir.EntryDef{def}, nil)
	require.Len(t, errs, 1)
	assert.Equal(t, ErrFormulaConflict, errs[0].Code)
}

// TestValidateDefs_DuplicateKey tests that the second definition of a key is reported.
func TestValidateDefs_DuplicateKey(t *testing.T) {
	defs := []ir.EntryDef{
		rootDef("zero", "ze", "0"),
		rootDef("one", "ka", "1"),
		rootDef("zero", "zo", "nothing"),
	}
	errs := ValidateDefs(defs, nil)
	require.Len(t, errs, 1)
	assert.Equal(t, ErrDuplicateKey, errs[0].Code)
	assert.Equal(t, 2, errs[0].Index)
}

// TestValidateDefs_CollectsAll tests that validation does not stop at the first error.
func TestValidateDefs_CollectsAll(t *testing.T) {
	defs := []ir.EntryDef{
		{Key: "Bad"},
		rootDef("fine", "ka", ""),
		{Key: "x", Derive: "gem"},
	}
	errs := ValidateDefs(defs, derive.Builtin())
	require.Len(t, errs, 3)
	assert.Equal(t, []string{ErrInvalidKey, ErrNoFormation, ErrMissingSource},
		[]string{errs[0].Code, errs[1].Code, errs[2].Code})
	assert.Equal(t, []int{0, 0, 2}, []int{errs[0].Index, errs[1].Index, errs[2].Index})
}

// TestValidationError_Error tests message formatting with and without origin.
func TestValidationError_Error(t *testing.T) {
	e := ValidationError{Field: "entry.x.form", Message: "boom", Code: ErrNoFormation}
	assert.Equal(t, "[E102] entry.x.form: boom", e.Error())

	e.Origin = "lexicon.cue:3:5"
	assert.Equal(t, "[E102] lexicon.cue:3:5: entry.x.form: boom", e.Error())
}

// TestValidationError_Diagnostic tests conversion onto the diagnostics stream.
func TestValidationError_Diagnostic(t *testing.T) {
	e := ValidationError{Key: "x", Field: "entry.x.form", Message: "boom", Code: ErrNoFormation}
	d := e.Diagnostic()
	assert.Equal(t, ErrNoFormation, d.Code)
	assert.Equal(t, ir.SeverityError, d.Severity)
	assert.Equal(t, "x", d.Key)
	assert.Equal(t, "entry.x.form: boom", d.Message)
}
