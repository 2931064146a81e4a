// Package harness runs lexicon test scenarios.
//
// A scenario compiles a lexicon, from a CUE specs directory, inline
// entries, or both, and asserts on the compiled table, the lexicon view
// and the diagnostics stream.
//
// # Scenario Format
//
//	name: compounds
//	description: "Compound junction repair"
//	specs: ../specs          # relative to the scenario file
//	entries:
//	  - key: steam
//	    compound: [fire, water]
//	    gloss: steam
//	options:
//	  clusters: keep
//	assertions:
//	  - type: lookup
//	    key: steam
//	    form: fatazo
//	  - type: translate
//	    input: "zero one"
//	    output: "ze ka"
//	  - type: diagnostic
//	    code: E201
//	    key: "sunrise*"
//
// # Assertion Types
//
//   - lookup: a key resolves, with the key, key*, key# fallback, to a form and gloss
//   - translate: a code string renders to an expected string
//   - diagnostic / no_diagnostic: a diagnostic code (and key) is or is not reported
//   - missing: a key was dropped from the table
//   - entry_count: the table holds exactly N entries
//   - collision: two keys share a form, optionally of a given kind
//
// # Golden Snapshots
//
// Snapshot renders entries and diagnostics as canonical JSON, so two runs
// of the same scenario produce identical bytes. RunWithGolden compares the
// snapshot against testdata/golden/{name}.golden with goldie.
package harness
