package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/lexc/internal/ir"
)

// Snapshot renders the compiled table and diagnostics of a result as
// canonical JSON:
//
//	{"diagnostics":[...],"entries":[...],"scenario_name":"..."}
//
// The table hash is left out; the entries determine it.
func Snapshot(scenarioName string, result *Result) ([]byte, error) {
	diags := make(ir.Array, len(result.Compile.Diagnostics))
	for i, d := range result.Compile.Diagnostics {
		diags[i] = d.Value()
	}
	return ir.MarshalCanonical(ir.Object{
		"scenario_name": ir.String(scenarioName),
		"entries":       result.Compile.Table.Value(),
		"diagnostics":   diags,
	})
}

// RunWithGolden executes a scenario and compares its snapshot against a
// golden file stored in testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails.
// Test failure (via goldie) occurs if the snapshot doesn't match.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	if err := AssertGolden(t, scenario.Name, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares an existing result against a golden file without
// re-running the scenario.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	data, err := Snapshot(scenarioName, result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, data)

	return nil
}
