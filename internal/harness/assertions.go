package harness

import (
	"fmt"
	"strings"

	"github.com/roach88/lexc/internal/compiler"
	"github.com/roach88/lexc/internal/ir"
)

// AssertionError is returned when an assertion fails.
// It includes the diagnostics stream to help debug the failure.
type AssertionError struct {
	Type        string         // Assertion type for categorization
	Expected    string         // Human-readable expected outcome
	Actual      string         // Human-readable actual outcome
	Diagnostics ir.Diagnostics // Full diagnostics for context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Diagnostics) > 0 {
		fmt.Fprintf(&buf, "\nDiagnostics:\n")
		for _, d := range e.Diagnostics {
			fmt.Fprintf(&buf, "  %s\n", d)
		}
	}

	return buf.String()
}

// assertLookup checks the form and gloss an entry key resolves to.
func assertLookup(result *Result, a Assertion) error {
	rec, ok := result.Lexicon.Lookup(a.Key)
	if !ok {
		return &AssertionError{
			Type:        AssertLookup,
			Expected:    fmt.Sprintf("%s = %q", a.Key, a.Form),
			Actual:      fmt.Sprintf("%s not found", a.Key),
			Diagnostics: result.Compile.Diagnostics.ForKey(a.Key),
		}
	}
	if a.Form != "" && rec.Form != a.Form {
		return &AssertionError{
			Type:        AssertLookup,
			Expected:    fmt.Sprintf("%s = %q", a.Key, a.Form),
			Actual:      fmt.Sprintf("%s = %q (via %s)", a.Key, rec.Form, rec.Key),
			Diagnostics: result.Compile.Diagnostics.ForKey(rec.Key),
		}
	}
	if a.Gloss != "" && rec.Gloss != a.Gloss {
		return &AssertionError{
			Type:     AssertLookup,
			Expected: fmt.Sprintf("%s gloss %q", a.Key, a.Gloss),
			Actual:   fmt.Sprintf("%s gloss %q (via %s)", a.Key, rec.Gloss, rec.Key),
		}
	}
	return nil
}

// assertTranslate checks the rendering of a code string.
func assertTranslate(result *Result, a Assertion) error {
	got := result.Lexicon.Translate(a.Input)
	if got != a.Output {
		return &AssertionError{
			Type:     AssertTranslate,
			Expected: fmt.Sprintf("%q -> %q", a.Input, a.Output),
			Actual:   fmt.Sprintf("%q -> %q", a.Input, got),
		}
	}
	return nil
}

// matchDiagnostics returns the diagnostics matching the assertion's code
// and key. An empty code or key matches anything.
func matchDiagnostics(ds ir.Diagnostics, a Assertion) ir.Diagnostics {
	var out ir.Diagnostics
	for _, d := range ds {
		if a.Code != "" && d.Code != a.Code {
			continue
		}
		if a.Key != "" && d.Key != a.Key {
			continue
		}
		out = append(out, d)
	}
	return out
}

// describeFilter renders the code/key filter of a diagnostic assertion.
func describeFilter(a Assertion) string {
	switch {
	case a.Code != "" && a.Key != "":
		return fmt.Sprintf("[%s] on %s", a.Code, a.Key)
	case a.Code != "":
		return fmt.Sprintf("[%s]", a.Code)
	default:
		return fmt.Sprintf("any diagnostic on %s", a.Key)
	}
}

// assertDiagnostic checks that a matching diagnostic was reported.
func assertDiagnostic(result *Result, a Assertion) error {
	if len(matchDiagnostics(result.Compile.Diagnostics, a)) > 0 {
		return nil
	}
	return &AssertionError{
		Type:        AssertDiagnostic,
		Expected:    describeFilter(a),
		Actual:      "no matching diagnostic",
		Diagnostics: result.Compile.Diagnostics,
	}
}

// assertNoDiagnostic checks that no matching diagnostic was reported.
func assertNoDiagnostic(result *Result, a Assertion) error {
	matched := matchDiagnostics(result.Compile.Diagnostics, a)
	if len(matched) == 0 {
		return nil
	}
	return &AssertionError{
		Type:        AssertNoDiagnostic,
		Expected:    "no " + describeFilter(a),
		Actual:      fmt.Sprintf("%d matching diagnostic(s)", len(matched)),
		Diagnostics: matched,
	}
}

// assertMissing checks that a key was dropped from the table.
func assertMissing(result *Result, a Assertion) error {
	e, ok := result.Compile.Table.Get(a.Key)
	if !ok {
		return nil
	}
	return &AssertionError{
		Type:     AssertMissing,
		Expected: fmt.Sprintf("%s absent from table", a.Key),
		Actual:   fmt.Sprintf("%s = %q", a.Key, e.Form),
	}
}

// assertEntryCount checks the size of the table.
func assertEntryCount(result *Result, a Assertion) error {
	n := result.Compile.Table.Len()
	if n == a.Count {
		return nil
	}
	return &AssertionError{
		Type:        AssertEntryCount,
		Expected:    fmt.Sprintf("%d entries", a.Count),
		Actual:      fmt.Sprintf("%d entries", n),
		Diagnostics: result.Compile.Diagnostics,
	}
}

// assertCollision checks that two keys were reported as colliding.
// Order of the two keys is not significant.
func assertCollision(result *Result, a Assertion) error {
	for _, c := range result.Compile.Collisions {
		pair := (c.A == a.Keys[0] && c.B == a.Keys[1]) || (c.A == a.Keys[1] && c.B == a.Keys[0])
		if !pair {
			continue
		}
		if a.Kind != "" && c.Kind != compiler.CollisionKind(a.Kind) {
			return &AssertionError{
				Type:     AssertCollision,
				Expected: fmt.Sprintf("%s collision [%s, %s]", a.Kind, a.Keys[0], a.Keys[1]),
				Actual:   fmt.Sprintf("%s collision [%s, %s] = %s", c.Kind, c.A, c.B, c.Form),
			}
		}
		return nil
	}
	return &AssertionError{
		Type:     AssertCollision,
		Expected: fmt.Sprintf("collision [%s, %s]", a.Keys[0], a.Keys[1]),
		Actual:   fmt.Sprintf("%d collision(s), none between them", len(result.Compile.Collisions)),
	}
}

// EvaluateAssertions runs every assertion against the result and returns
// the failure messages in assertion order.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var errors []string

	for i, assertion := range assertions {
		var err error

		switch assertion.Type {
		case AssertLookup:
			err = assertLookup(result, assertion)
		case AssertTranslate:
			err = assertTranslate(result, assertion)
		case AssertDiagnostic:
			err = assertDiagnostic(result, assertion)
		case AssertNoDiagnostic:
			err = assertNoDiagnostic(result, assertion)
		case AssertMissing:
			err = assertMissing(result, assertion)
		case AssertEntryCount:
			err = assertEntryCount(result, assertion)
		case AssertCollision:
			if len(assertion.Keys) != 2 {
				err = fmt.Errorf("assertion[%d]: collision needs two keys", i)
			} else {
				err = assertCollision(result, assertion)
			}
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, assertion.Type)
		}

		if err != nil {
			errors = append(errors, err.Error())
		}
	}

	return errors
}
