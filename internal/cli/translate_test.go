package cli

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslate(t *testing.T) {
	out, err := execute(NewTranslateCommand(&RootOptions{Format: "text"}), sampleSpecs(t), "[zero, one]", "big_fire", "greeting")
	require.NoError(t, err)
	assert.Equal(t, "[ze, ka] fan-ze ka di\n", out)
}

func TestTranslateKeepsUnknown(t *testing.T) {
	out, err := execute(NewTranslateCommand(&RootOptions{Format: "text"}), sampleSpecs(t), "fire + sky")
	require.NoError(t, err)
	assert.Equal(t, "fan + sky\n", out)
}

func TestTranslateSymbolEntries(t *testing.T) {
	dir := writeSpecs(t, map[string]string{"lexicon.cue": `package lexicon

entry: fire: {form: "fa"}
entry: "which{": {form: "vi", gloss: "which"}
entry: ",": {form: "ne", gloss: "and"}
`})

	out, err := execute(NewTranslateCommand(&RootOptions{Format: "text"}), dir, "which{ fire, fire }")
	require.NoError(t, err)
	assert.Equal(t, "vi fane fa }\n", out)
}

func TestTranslateStdin(t *testing.T) {
	cmd := NewTranslateCommand(&RootOptions{Format: "json"})
	cmd.SetIn(strings.NewReader("steam, light\n"))

	out, err := execute(cmd, sampleSpecs(t), "-")
	require.NoError(t, err)

	var resp struct {
		Status string          `json:"status"`
		Data   TranslateResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "steam, light", resp.Data.Input)
	assert.Equal(t, "fata, lux", resp.Data.Output)
}

func TestTranslateBadSpecs(t *testing.T) {
	_, err := execute(NewTranslateCommand(&RootOptions{Format: "text"}), "/nonexistent/path", "fire")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
