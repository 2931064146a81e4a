package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenario(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadScenario_ResolvesSpecsDir(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/basic.yaml")
	require.NoError(t, err)

	assert.Equal(t, "basic", scenario.Name)
	assert.Equal(t, filepath.Join("testdata", "specs"), scenario.Specs)
	require.Len(t, scenario.Entries, 1)
	assert.Equal(t, []string{"steam", "zero"}, scenario.Entries[0].Compound)
	assert.Len(t, scenario.Assertions, 6)
}

func TestLoadScenario_UnknownField(t *testing.T) {
	_, err := LoadScenario("testdata/scenarios/invalid.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "assertion")
}

func TestLoadScenario_FileNotFound(t *testing.T) {
	_, err := LoadScenario("testdata/scenarios/nope.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestLoadScenarioWithBasePath(t *testing.T) {
	dir := t.TempDir()
	path := writeScenario(t, dir, `
name: based
description: "specs resolved against a base path"
specs: specs
assertions:
  - type: entry_count
    count: 6
`)

	scenario, err := LoadScenarioWithBasePath(path, "testdata")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("testdata", "specs"), scenario.Specs)
}

func TestLoadScenario_SpecsDirMissing(t *testing.T) {
	path := writeScenario(t, t.TempDir(), `
name: missing
description: "specs dir does not exist"
specs: ./nowhere
assertions:
  - type: entry_count
    count: 0
`)

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "specs directory not found")
}

func TestValidateScenario(t *testing.T) {
	base := func() *Scenario {
		return &Scenario{
			Name:        "s",
			Description: "d",
			Entries:     []EntryStep{{Key: "zero", Form: "ze"}},
			Assertions:  []Assertion{{Type: AssertEntryCount, Count: 1}},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Scenario)
		wantErr string
	}{
		{"valid", func(*Scenario) {}, ""},
		{"no name", func(s *Scenario) { s.Name = "" }, "name is required"},
		{"no description", func(s *Scenario) { s.Description = "" }, "description is required"},
		{"no source", func(s *Scenario) { s.Entries = nil }, "specs or entries is required"},
		{"no assertions", func(s *Scenario) { s.Assertions = nil }, "assertions list is required"},
		{"entry without key", func(s *Scenario) { s.Entries[0].Key = "" }, "entries[0]: key is required"},
		{"assertion without type", func(s *Scenario) { s.Assertions[0].Type = "" }, "type is required"},
		{"unknown type", func(s *Scenario) { s.Assertions[0].Type = "trace_order" }, "unknown assertion type"},
		{"lookup without key", func(s *Scenario) { s.Assertions[0] = Assertion{Type: AssertLookup, Form: "ze"} }, "key is required for lookup"},
		{"lookup without expectation", func(s *Scenario) { s.Assertions[0] = Assertion{Type: AssertLookup, Key: "zero"} }, "form or gloss"},
		{"translate without input", func(s *Scenario) { s.Assertions[0] = Assertion{Type: AssertTranslate} }, "input is required"},
		{"diagnostic without code", func(s *Scenario) { s.Assertions[0] = Assertion{Type: AssertDiagnostic, Key: "zero"} }, "code is required"},
		{"no_diagnostic without filter", func(s *Scenario) { s.Assertions[0] = Assertion{Type: AssertNoDiagnostic} }, "code or key"},
		{"missing without key", func(s *Scenario) { s.Assertions[0] = Assertion{Type: AssertMissing} }, "key is required for missing"},
		{"negative count", func(s *Scenario) { s.Assertions[0].Count = -1 }, "non-negative"},
		{"collision with one key", func(s *Scenario) { s.Assertions[0] = Assertion{Type: AssertCollision, Keys: []string{"a"}} }, "two entries"},
		{"collision bad kind", func(s *Scenario) {
			s.Assertions[0] = Assertion{Type: AssertCollision, Keys: []string{"a", "b"}, Kind: "echo"}
		}, "homophone or duplicate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := base()
			tt.mutate(s)
			err := validateScenario(s)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestEntryStep_Def(t *testing.T) {
	step := EntryStep{
		Key:      "sunrise",
		Compound: []string{"day", "$kxi"},
		Gloss:    "sunrise",
		Source:   "notes",
	}

	def := step.Def()
	assert.Equal(t, "sunrise", def.Key)
	require.Len(t, def.Compound, 2)
	assert.False(t, def.Compound[0].Literal)
	assert.True(t, def.Compound[1].Literal)
	assert.Equal(t, "kxi", def.Compound[1].Key)
	assert.Nil(t, def.Idiom)
	assert.Equal(t, "sunrise", def.Gloss)
	assert.Equal(t, "notes", def.Source)
}
