package compiler

import (
	"fmt"

	"github.com/roach88/lexc/internal/ir"
)

// CollisionKind classifies two entries sharing a surface form.
type CollisionKind string

const (
	// Homophone: same form, different meanings. Tolerated but flagged.
	Homophone CollisionKind = "homophone"

	// Duplicate: same form and same non-empty gloss. A data error.
	Duplicate CollisionKind = "duplicate"
)

// Collision is one pair of entries with identical forms.
type Collision struct {
	A    string        `json:"a"`
	B    string        `json:"b"`
	Form string        `json:"form"`
	Kind CollisionKind `json:"kind"`
}

// Diagnostic converts the collision onto the diagnostics stream.
func (c Collision) Diagnostic() ir.Diagnostic {
	d := ir.Diagnostic{
		Code:     CodeHomophone,
		Severity: ir.SeverityWarning,
		Key:      c.A,
		Refs:     []string{c.B},
		Form:     c.Form,
		Message:  fmt.Sprintf("homophone: [%s, %s] = %s", c.A, c.B, c.Form),
	}
	if c.Kind == Duplicate {
		d.Code = CodeDuplicate
		d.Severity = ir.SeverityError
		d.Message = fmt.Sprintf("duplicate: [%s, %s] = %s", c.A, c.B, c.Form)
	}
	return d
}

// FindCollisions compares every pair of entries, in insertion order, and
// reports each pair with equal forms. The table is not modified.
func FindCollisions(table *ir.Table) []Collision {
	entries := table.Entries()
	collisions := []Collision{}
	for i := 0; i < len(entries); i++ {
		for j := i + 1; j < len(entries); j++ {
			a, b := entries[i], entries[j]
			if a.Form != b.Form {
				continue
			}
			kind := Homophone
			if a.Gloss != "" && a.Gloss == b.Gloss {
				kind = Duplicate
			}
			collisions = append(collisions, Collision{A: a.Key, B: b.Key, Form: a.Form, Kind: kind})
		}
	}
	return collisions
}
