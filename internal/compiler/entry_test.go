package compiler

import (
	"testing"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/lexc/internal/ir"
	"github.com/roach88/lexc/internal/rewrite"
)

func TestCompileEntryRoot(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`
		entry: zero: {
			form:   "ze"
			gloss:  "zero, 0"
			class:  "n"
			date:   "2024-02-13"
			source: "a priori"
		}
	`)
	require.NoError(t, v.Err())

	def, err := CompileEntry(v.LookupPath(cue.ParsePath("entry.zero")))
	require.NoError(t, err)

	assert.Equal(t, "zero", def.Key)
	assert.Equal(t, "ze", def.Form)
	assert.Equal(t, "zero, 0", def.Gloss)
	assert.Equal(t, "n", def.Class)
	assert.Equal(t, "2024-02-13", def.Date)
	assert.Equal(t, "a priori", def.Source)
	assert.Nil(t, def.Compound)
	assert.Nil(t, def.Idiom)
	assert.True(t, def.HasRoot())
}

func TestCompileEntryFormulas(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`
		entry: nation_en: {
			compound: ["nation", "$jen"]
			gloss:    "england"
		}
		entry: good_day: {
			idiom: ["good", "day"]
		}
	`)
	require.NoError(t, v.Err())

	def, err := CompileEntry(v.LookupPath(cue.ParsePath("entry.nation_en")))
	require.NoError(t, err)
	assert.Equal(t, []ir.ComponentRef{{Key: "nation"}, {Key: "jen", Literal: true}}, def.Compound)
	assert.False(t, def.HasRoot())

	def, err = CompileEntry(v.LookupPath(cue.ParsePath("entry.good_day")))
	require.NoError(t, err)
	assert.Equal(t, []ir.ComponentRef{{Key: "good"}, {Key: "day"}}, def.Idiom)
}

func TestCompileEntryEmptyListIsNotNil(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`entry: hollow: { compound: [] }`)
	require.NoError(t, v.Err())

	def, err := CompileEntry(v.LookupPath(cue.ParsePath("entry.hollow")))
	require.NoError(t, err)
	assert.NotNil(t, def.Compound)
	assert.Empty(t, def.Compound)
}

func TestCompileEntryUnknownField(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`entry: zero: { from: "ze" }`)
	require.NoError(t, v.Err())

	_, err := CompileEntry(v.LookupPath(cue.ParsePath("entry.zero")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "from")
	assert.Contains(t, err.Error(), "unknown field")
}

func TestCompileEntryWrongType(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`entry: zero: { form: 3 }`)
	require.NoError(t, v.Err())

	_, err := CompileEntry(v.LookupPath(cue.ParsePath("entry.zero")))
	require.Error(t, err)

	var cerr *CompileError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "form", cerr.Field)
	assert.Equal(t, "must be a string", cerr.Message)
}

func TestCompileEntryNotAStruct(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`entry: zero: "ze"`)
	require.NoError(t, v.Err())

	_, err := CompileEntry(v.LookupPath(cue.ParsePath("entry.zero")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be a struct")
}

func TestCompileEntryRecordsOrigin(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString("entry: zero: {\n\tform: \"ze\"\n}", cue.Filename("lexicon.cue"))
	require.NoError(t, v.Err())

	def, err := CompileEntry(v.LookupPath(cue.ParsePath("entry.zero")))
	require.NoError(t, err)
	assert.Contains(t, def.Origin, "lexicon.cue:1:")
}

func TestCompilePipeline(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`
		pipeline: norse: [
			{match: "ø", replace: "o"},
			{match: "r$", replace: "", scope: "first"},
		]
	`)
	require.NoError(t, v.Err())

	def, err := CompilePipeline(v.LookupPath(cue.ParsePath("pipeline.norse")))
	require.NoError(t, err)

	assert.Equal(t, "norse", def.Name)
	assert.Equal(t, []rewrite.Spec{
		{Match: "ø", Replace: "o"},
		{Match: "r$", Replace: "", Scope: rewrite.ScopeFirst},
	}, def.Rules)
}

func TestCompilePipelineBadPattern(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`pipeline: broken: [{match: "(?<=", replace: ""}]`)
	require.NoError(t, v.Err())

	_, err := CompilePipeline(v.LookupPath(cue.ParsePath("pipeline.broken")))
	require.Error(t, err)

	var cerr *CompileError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "pipeline.broken[0]", cerr.Field)
}

func TestCompilePipelineMissingMatch(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`pipeline: broken: [{replace: "x"}]`)
	require.NoError(t, v.Err())

	_, err := CompilePipeline(v.LookupPath(cue.ParsePath("pipeline.broken")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "match is required")
}

func TestCompilePipelineNotAList(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`pipeline: broken: {match: "a"}`)
	require.NoError(t, v.Err())

	_, err := CompilePipeline(v.LookupPath(cue.ParsePath("pipeline.broken")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be a list of rules")
}
