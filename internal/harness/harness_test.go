package harness

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/lexc/internal/compiler"
)

// inlineScenario compiles four entries and one compound that cannot resolve.
func inlineScenario() *Scenario {
	return &Scenario{
		Name:        "inline_compounds",
		Description: "Inline definitions with a missing component",
		Entries: []EntryStep{
			{Key: "zero", Form: "ze", Gloss: "0"},
			{Key: "fire", Form: "fa", Gloss: "fire"},
			{Key: "water", Form: "ta", Gloss: "water"},
			{Key: "steam", Compound: []string{"fire", "water"}, Gloss: "steam"},
			{Key: "cloud", Compound: []string{"steam", "sky"}},
		},
		Assertions: []Assertion{
			{Type: AssertEntryCount, Count: 4},
			{Type: AssertLookup, Key: "steam", Form: "fata"},
			{Type: AssertMissing, Key: "cloud*"},
			{Type: AssertDiagnostic, Code: compiler.CodeUnresolved, Key: "cloud*"},
			{Type: AssertTranslate, Input: "zero steam sky", Output: "ze fata sky"},
		},
	}
}

func TestRun_InlineScenario(t *testing.T) {
	result, err := Run(inlineScenario())
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Empty(t, result.Errors)
	assert.Equal(t, 2, result.Compile.Passes)
	assert.Equal(t, 4, result.Lexicon.Len())
}

func TestRun_FailingAssertions(t *testing.T) {
	scenario := inlineScenario()
	scenario.Assertions = []Assertion{
		{Type: AssertEntryCount, Count: 5},
		{Type: AssertLookup, Key: "steam", Form: "fatta"},
		{Type: AssertNoDiagnostic, Key: "cloud*"},
	}

	result, err := Run(scenario)
	require.NoError(t, err)

	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 3)
	assert.Contains(t, result.Errors[0], "Expected: 5 entries")
	assert.Contains(t, result.Errors[1], `steam = "fata" (via steam*)`)
	assert.Contains(t, result.Errors[2], "unresolved component(s): sky")
}

func TestRun_SpecsDir(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/basic.yaml")
	require.NoError(t, err)

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)

	fish, ok := result.Compile.Table.Get("fish")
	require.True(t, ok)
	assert.Equal(t, "https://example.org/wiki/fisa", fish.Etymology)
}

func TestRun_ClusterOption(t *testing.T) {
	build := func(opts *ScenarioOptions, form string) *Scenario {
		return &Scenario{
			Name:        "clusters",
			Description: "cluster strategy",
			Entries: []EntryStep{
				{Key: "kan", Form: "kan"},
				{Key: "water", Form: "ta"},
				{Key: "pond", Compound: []string{"kan", "water"}},
			},
			Options:    opts,
			Assertions: []Assertion{{Type: AssertLookup, Key: "pond", Form: form}},
		}
	}

	result, err := Run(build(nil, "kata"))
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)

	result, err = Run(build(&ScenarioOptions{Clusters: "keep"}, "kanta"))
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestRun_MaxRootLengthOption(t *testing.T) {
	disabled := -1
	scenario := &Scenario{
		Name:        "long_root",
		Description: "long root check can be disabled",
		Entries:     []EntryStep{{Key: "long", Form: "kanatama"}},
		Assertions:  []Assertion{{Type: AssertDiagnostic, Code: compiler.CodeLongRoot, Key: "long"}},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)

	scenario.Options = &ScenarioOptions{MaxRootLength: &disabled}
	scenario.Assertions = []Assertion{{Type: AssertNoDiagnostic, Code: compiler.CodeLongRoot}}
	result, err = Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestRun_InvalidOptions(t *testing.T) {
	scenario := inlineScenario()
	scenario.Options = &ScenarioOptions{Clusters: "merge"}

	_, err := Run(scenario)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid scenario options")
}

func TestRun_SpecsLoadError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.cue"), []byte("package lexicon\nentry: {"), 0o644))

	scenario := inlineScenario()
	scenario.Specs = dir

	_, err := Run(scenario)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load specs")
}

func TestRun_SpecsMalformedEntry(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "lexicon.cue"), []byte(`package lexicon

entry: fire: {form: "fa", gloss: "fire"}
entry: water: {form: "ta", glos: "water"}
`), 0o644))

	scenario := &Scenario{
		Name:        "malformed",
		Description: "a malformed entry does not hide the rest",
		Specs:       dir,
		Assertions: []Assertion{
			{Type: AssertLookup, Key: "fire", Form: "fa"},
			{Type: AssertMissing, Key: "water"},
			{Type: AssertDiagnostic, Code: compiler.ErrCodeEntryShape, Key: "water"},
		},
	}

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Equal(t, compiler.ErrCodeEntryShape, result.Compile.Diagnostics[0].Code)
}

func TestRunAll(t *testing.T) {
	paths := []string{
		"testdata/scenarios/basic.yaml",
		"testdata/scenarios/failing.yaml",
		"testdata/scenarios/invalid.yaml",
	}

	results, err := RunAll(context.Background(), paths, 2)
	require.NoError(t, err)
	require.Len(t, results, 3)

	for i, path := range paths {
		assert.Equal(t, path, results[i].Path)
	}

	require.NoError(t, results[0].Err)
	assert.True(t, results[0].Result.Pass, "errors: %v", results[0].Result.Errors)

	require.NoError(t, results[1].Err)
	assert.False(t, results[1].Result.Pass)
	assert.Equal(t, "failing", results[1].Scenario.Name)

	require.Error(t, results[2].Err)
	assert.Nil(t, results[2].Scenario)
	assert.Nil(t, results[2].Result)
}

func TestRunAll_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := RunAll(ctx, []string{"testdata/scenarios/basic.yaml"}, 0)
	require.ErrorIs(t, err, context.Canceled)
}
