package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

// sampleSpecs returns the repository's sample lexicon directory.
func sampleSpecs(t *testing.T) string {
	t.Helper()
	dir := filepath.Join("..", "..", "testdata", "specs")
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		t.Skip("testdata/specs directory not found")
	}
	return dir
}

// writeSpecs writes CUE files into a fresh directory.
func writeSpecs(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	return dir
}

// execute runs cmd with args and returns what it wrote to stdout.
func execute(cmd *cobra.Command, args ...string) (string, error) {
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}
