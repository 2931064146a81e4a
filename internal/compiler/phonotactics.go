package compiler

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/roach88/lexc/internal/ir"
	"github.com/roach88/lexc/internal/junction"
	"github.com/roach88/lexc/internal/phonology"
)

// CheckForms validates every resolved form.
//
// Roots are held to the inventory: a violation is an error, and so is a
// root of maxRootLength or more letters (0 disables the length check).
// Compounds and idioms only warn, since joining legitimately produces
// boundary clusters. Idioms are checked word by word with morpheme
// markers removed.
func CheckForms(table *ir.Table, v *phonology.Validator, maxRootLength int) ir.Diagnostics {
	var diags ir.Diagnostics
	for _, e := range table.Entries() {
		switch e.Kind {
		case ir.Root:
			if viol := v.Validate(e.Form); viol != nil {
				diags = append(diags, violationDiagnostic(e, viol, CodePhonotactic, ir.SeverityError))
			}
			if maxRootLength > 0 && utf8.RuneCountInString(e.Form) >= maxRootLength {
				diags = append(diags, ir.Diagnostic{
					Code:     CodeLongRoot,
					Severity: ir.SeverityError,
					Key:      e.Key,
					Form:     e.Form,
					Message:  fmt.Sprintf("long root: %s has %d letters (limit %d)", e.Form, utf8.RuneCountInString(e.Form), maxRootLength-1),
				})
			}
		case ir.Compound:
			if viol := v.Validate(e.Form); viol != nil {
				diags = append(diags, violationDiagnostic(e, viol, CodeFormulaShape, ir.SeverityWarning))
			}
		case ir.Idiom:
			for _, word := range strings.Fields(e.Form) {
				word = strings.ReplaceAll(word, junction.MorphemeMarker, "")
				if viol := v.Validate(word); viol != nil {
					diags = append(diags, violationDiagnostic(e, viol, CodeFormulaShape, ir.SeverityWarning))
					break
				}
			}
		}
	}
	return diags
}

func violationDiagnostic(e *ir.Entry, viol *phonology.Violation, code string, sev ir.Severity) ir.Diagnostic {
	return ir.Diagnostic{
		Code:     code,
		Severity: sev,
		Key:      e.Key,
		Rule:     viol.Rule,
		Form:     viol.Form,
		Message:  fmt.Sprintf("invalid: %s: %s", viol.Rule, viol.Form),
	}
}
