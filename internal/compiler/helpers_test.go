package compiler

import "github.com/roach88/lexc/internal/ir"

// rootDef returns a definition with a literal form.
func rootDef(key, form, gloss string) ir.EntryDef {
	return ir.EntryDef{Key: key, Form: form, Attributes: ir.Attributes{Gloss: gloss}}
}

// compoundDef returns a definition with only a compound formula.
func compoundDef(key string, refs ...string) ir.EntryDef {
	return ir.EntryDef{Key: key, Compound: ir.ParseRefs(refs)}
}

// idiomDef returns a definition with only an idiom formula.
func idiomDef(key string, refs ...string) ir.EntryDef {
	return ir.EntryDef{Key: key, Idiom: ir.ParseRefs(refs)}
}

// codesOf lists diagnostic codes in stream order.
func codesOf(diags ir.Diagnostics) []string {
	codes := make([]string, len(diags))
	for i, d := range diags {
		codes[i] = d.Code
	}
	return codes
}
