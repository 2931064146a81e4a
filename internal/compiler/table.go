package compiler

import (
	"fmt"

	"github.com/roach88/lexc/internal/derive"
	"github.com/roach88/lexc/internal/ir"
)

// BuildTable expands definitions into an entry table, in definition order.
//
// A definition yields up to two entries: the root "key" when it has a form
// or derivation, and the formula variant "key*" (compound) or "key#"
// (idiom). When both exist the variant's gloss points back at the root:
// "=key" for compounds, "=<root form>" for idioms.
//
// Definitions must already have passed ValidateDefs.
func BuildTable(defs []ir.EntryDef, families *derive.Registry) (*ir.Table, ir.Diagnostics) {
	table := ir.NewTable()
	var diags ir.Diagnostics

	for _, def := range defs {
		root, rootDiags := rootEntry(def, families)
		diags = append(diags, rootDiags...)
		if root != nil {
			addEntry(table, root, &diags)
		}

		kind, refs := ir.Compound, def.Compound
		if refs == nil {
			kind, refs = ir.Idiom, def.Idiom
		}
		if refs == nil {
			continue
		}

		variant := &ir.Entry{
			Key:        def.Key + kind.KeySuffix(),
			Kind:       kind,
			Refs:       refs,
			Etymology:  def.Etymology,
			Attributes: def.Attributes,
		}
		if root != nil {
			if kind == ir.Compound {
				variant.Gloss = "=" + def.Key
			} else {
				variant.Gloss = "=" + root.Form
			}
		}
		addEntry(table, variant, &diags)
	}

	return table, diags
}

// rootEntry builds the root entry of def, or nil when def has none or its
// derivation is empty.
func rootEntry(def ir.EntryDef, families *derive.Registry) (*ir.Entry, ir.Diagnostics) {
	if !def.HasRoot() {
		return nil, nil
	}
	var diags ir.Diagnostics

	form := def.Form
	if def.Derive != "" {
		derived, err := families.Derive(def.Derive, def.Source)
		switch {
		case err != nil:
			// ValidateDefs rejects unknown families; keep the literal if any.
		case form == "":
			form = derived
		case derived != form:
			diags = append(diags, ir.Diagnostic{
				Code:     CodeDerivationDrift,
				Severity: ir.SeverityInfo,
				Key:      def.Key,
				Form:     form,
				Message:  fmt.Sprintf("form %q differs from %s derivation %q", form, def.Derive, derived),
			})
		}
	}

	if form == "" {
		diags = append(diags, ir.Diagnostic{
			Code:     CodeEmptyDerivation,
			Severity: ir.SeverityError,
			Key:      def.Key,
			Message:  fmt.Sprintf("%s derivation of %q produced an empty form", def.Derive, def.Source),
		})
		return nil, diags
	}

	etymology := def.Etymology
	if etymology == "" {
		etymology = def.Source
	}

	return &ir.Entry{
		Key:        def.Key,
		Kind:       ir.Root,
		Form:       form,
		Etymology:  etymology,
		Attributes: def.Attributes,
		Resolved:   true,
	}, diags
}

// addEntry adds e, reporting a key clash as a duplicate.
func addEntry(table *ir.Table, e *ir.Entry, diags *ir.Diagnostics) {
	if err := table.Add(e); err != nil {
		*diags = append(*diags, ir.Diagnostic{
			Code:     ErrDuplicateKey,
			Severity: ir.SeverityError,
			Key:      e.Key,
			Message:  err.Error(),
		})
	}
}
