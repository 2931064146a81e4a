package compiler

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/roach88/lexc/internal/ir"
	"github.com/roach88/lexc/internal/junction"
)

// refSuffixes is the lookup order for a bare component key.
var refSuffixes = []string{"", ir.Compound.KeySuffix(), ir.Idiom.KeySuffix()}

// etymologyJoiners join formula references into a default etymology note.
var etymologyJoiners = map[ir.Formation]string{
	ir.Compound: "+",
	ir.Idiom:    " ",
}

// ResolveResult reports what the resolver did.
type ResolveResult struct {
	// Table holds only resolved entries, in insertion order.
	Table *ir.Table

	// Unresolved lists the dropped entries, in insertion order.
	Unresolved []*ir.Entry

	// Diagnostics has one CodeUnresolved record per dropped entry.
	Diagnostics ir.Diagnostics

	// Passes is the number of full scans performed.
	Passes int
}

// Resolve computes the form of every formula entry whose components
// eventually resolve.
//
// Each pass scans the table in insertion order and resolves every pending
// entry whose references all have forms, including forms set earlier in
// the same pass. Scanning stops after a pass without progress or after
// table.Len() passes, so a table of n entries takes at most n passes.
//
// Entries still pending afterwards (missing keys or reference cycles, which
// this algorithm does not tell apart) are reported and dropped. The input
// table's entries are updated in place.
func Resolve(table *ir.Table, asm *junction.Assembler, logger *slog.Logger) *ResolveResult {
	if logger == nil {
		logger = discardLogger()
	}
	result := &ResolveResult{}
	entries := table.Entries()

	for pass := 0; pass < table.Len(); pass++ {
		resolved := 0
		for _, e := range entries {
			if !e.Pending() {
				continue
			}
			forms, missing := componentForms(table, e.Refs)
			if len(missing) > 0 {
				continue
			}
			form, err := asm.Assemble(e.Kind, forms)
			if err != nil {
				continue
			}
			e.Form = form
			e.Resolved = true
			if e.Etymology == "" {
				e.Etymology = strings.Join(ir.RefStrings(e.Refs), etymologyJoiners[e.Kind])
			}
			resolved++
		}
		result.Passes++
		logger.Debug("resolution pass", "pass", result.Passes, "resolved", resolved)
		if resolved == 0 {
			break
		}
	}

	for _, e := range entries {
		if !e.Pending() {
			continue
		}
		_, missing := componentForms(table, e.Refs)
		result.Unresolved = append(result.Unresolved, e)
		result.Diagnostics = append(result.Diagnostics, ir.Diagnostic{
			Code:     CodeUnresolved,
			Severity: ir.SeverityError,
			Key:      e.Key,
			Refs:     missing,
			Message:  fmt.Sprintf("unresolved component(s): %s", strings.Join(missing, ", ")),
		})
	}

	result.Table = table.Filter(func(e *ir.Entry) bool { return !e.Pending() })
	return result
}

// componentForms looks up the current form of every reference. It returns
// the references that have no form yet (missing or still pending).
func componentForms(table *ir.Table, refs []ir.ComponentRef) ([]string, []string) {
	forms := make([]string, 0, len(refs))
	var missing []string
	for _, r := range refs {
		if r.Literal {
			forms = append(forms, r.Key)
			continue
		}
		target := lookupRef(table, r.Key)
		if target == nil || target.Pending() {
			missing = append(missing, r.String())
			continue
		}
		forms = append(forms, target.Form)
	}
	return forms, missing
}

// lookupRef returns the first existing entry among key, key* and key#.
func lookupRef(table *ir.Table, key string) *ir.Entry {
	for _, suffix := range refSuffixes {
		if e, ok := table.Get(key + suffix); ok {
			return e
		}
	}
	return nil
}
