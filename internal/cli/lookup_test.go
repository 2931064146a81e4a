package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	out, err := execute(NewLookupCommand(&RootOptions{Format: "text"}), sampleSpecs(t), "fire", "day", "day*", "steam")
	require.NoError(t, err)

	assert.Contains(t, out, "fire = fan (root)\n  gloss: fire\n")
	assert.Contains(t, out, "day = di (root)")
	assert.Contains(t, out, "day* = luka (compound)\n  gloss: =day\n")
	// A bare key falls back to the compound.
	assert.Contains(t, out, "steam* = fata (compound)")
	assert.Contains(t, out, "etymology: fire+water")
}

func TestLookupJSON(t *testing.T) {
	out, err := execute(NewLookupCommand(&RootOptions{Format: "json"}), sampleSpecs(t), "sunrise", "big_fire")
	require.NoError(t, err)

	var resp struct {
		Status string         `json:"status"`
		Data   []LookupResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Data, 2)

	sunrise := resp.Data[0]
	require.True(t, sunrise.Found)
	assert.Equal(t, "sunrise*", sunrise.Record.Key)
	assert.Equal(t, "dikxi", sunrise.Record.Form)
	assert.Equal(t, "2024-03", sunrise.Record.Date)

	blaze := resp.Data[1]
	require.True(t, blaze.Found)
	assert.Equal(t, "big_fire#", blaze.Record.Key)
	assert.Equal(t, "fan-ze", blaze.Record.Form)
}

func TestLookupMissing(t *testing.T) {
	out, err := execute(NewLookupCommand(&RootOptions{Format: "text"}), sampleSpecs(t), "water", "cloud", "sky")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "2 key(s) not found")

	assert.Contains(t, out, "water = ta (root)")
	// Dropped entries are not in the lexicon.
	assert.Contains(t, out, "✗ cloud: no entry")
	assert.Contains(t, out, "✗ sky: no entry")
}

func TestLookupArgs(t *testing.T) {
	_, err := execute(NewLookupCommand(&RootOptions{Format: "text"}), sampleSpecs(t))
	require.Error(t, err)
}
