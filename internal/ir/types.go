package ir

import (
	"fmt"
	"strings"
)

// Formation is the tagged kind of a lexical entry.
type Formation string

const (
	// Root entries carry a literal or derived form from creation.
	Root Formation = "root"

	// Compound entries concatenate component forms with junction repair.
	Compound Formation = "compound"

	// Idiom entries join component forms as separate words.
	Idiom Formation = "idiom"
)

// Valid reports whether f is one of the known formation kinds.
func (f Formation) Valid() bool {
	switch f {
	case Root, Compound, Idiom:
		return true
	}
	return false
}

// KeySuffix is appended to a definition key to name its formula variant.
// A definition "sun" with both a form and a compound formula yields the
// entries "sun" and "sun*".
func (f Formation) KeySuffix() string {
	switch f {
	case Compound:
		return "*"
	case Idiom:
		return "#"
	}
	return ""
}

// LiteralPrefix marks a component reference that bypasses lookup.
const LiteralPrefix = "$"

// ComponentRef is one element of a compound or idiom formula.
type ComponentRef struct {
	Key     string `json:"key"`
	Literal bool   `json:"literal,omitempty"`
}

// ParseRef parses a single reference. "$kxi" is the literal form "kxi".
func ParseRef(s string) ComponentRef {
	if strings.HasPrefix(s, LiteralPrefix) {
		return ComponentRef{Key: strings.TrimPrefix(s, LiteralPrefix), Literal: true}
	}
	return ComponentRef{Key: s}
}

// ParseRefs parses a formula written as a list of strings.
func ParseRefs(ss []string) []ComponentRef {
	refs := make([]ComponentRef, len(ss))
	for i, s := range ss {
		refs[i] = ParseRef(s)
	}
	return refs
}

// String renders the reference in formula syntax.
func (r ComponentRef) String() string {
	if r.Literal {
		return LiteralPrefix + r.Key
	}
	return r.Key
}

// RefStrings renders refs in formula syntax.
func RefStrings(refs []ComponentRef) []string {
	out := make([]string, len(refs))
	for i, r := range refs {
		out[i] = r.String()
	}
	return out
}

// Attributes are carried through compilation unchanged.
type Attributes struct {
	Gloss  string `json:"gloss,omitempty"`
	Class  string `json:"class,omitempty"`
	Date   string `json:"date,omitempty"`
	Source string `json:"source,omitempty"`
}

// EntryDef is one declarative definition as written in the lexicon sources.
//
// A definition supplies a root (Form, or Derive plus Source) and/or one
// formula (Compound or Idiom). Expansion into entries happens in the
// compiler.
type EntryDef struct {
	Key       string         `json:"key"`
	Form      string         `json:"form,omitempty"`
	Derive    string         `json:"derive,omitempty"`
	Compound  []ComponentRef `json:"compound,omitempty"`
	Idiom     []ComponentRef `json:"idiom,omitempty"`
	Etymology string         `json:"etymology,omitempty"`
	Attributes

	// Origin is the source position of the definition ("file:line:col").
	Origin string `json:"-"`
}

// HasRoot reports whether the definition produces a root entry.
func (d EntryDef) HasRoot() bool {
	return d.Form != "" || d.Derive != ""
}

// Entry is one lexical entry in a Table.
type Entry struct {
	Key       string         `json:"key"`
	Kind      Formation      `json:"kind"`
	Refs      []ComponentRef `json:"refs,omitempty"`
	Form      string         `json:"form,omitempty"`
	Etymology string         `json:"etymology,omitempty"`
	Attributes

	// Resolved is true once Form is final. Root entries start resolved.
	Resolved bool `json:"-"`
}

// Pending reports whether the entry still waits on its components.
func (e *Entry) Pending() bool {
	return !e.Resolved
}

// Table is an insertion-ordered collection of entries addressed by key.
type Table struct {
	entries []*Entry
	index   map[string]int
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{index: make(map[string]int)}
}

// Add appends an entry. Keys are unique.
func (t *Table) Add(e *Entry) error {
	if _, ok := t.index[e.Key]; ok {
		return fmt.Errorf("duplicate entry key %q", e.Key)
	}
	t.index[e.Key] = len(t.entries)
	t.entries = append(t.entries, e)
	return nil
}

// Get returns the entry for key.
func (t *Table) Get(key string) (*Entry, bool) {
	i, ok := t.index[key]
	if !ok {
		return nil, false
	}
	return t.entries[i], true
}

// Has reports whether key is present.
func (t *Table) Has(key string) bool {
	_, ok := t.index[key]
	return ok
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.entries)
}

// Entries returns the entries in insertion order.
// The slice is a copy; the entries are shared.
func (t *Table) Entries() []*Entry {
	out := make([]*Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Keys returns the keys in insertion order.
func (t *Table) Keys() []string {
	keys := make([]string, len(t.entries))
	for i, e := range t.entries {
		keys[i] = e.Key
	}
	return keys
}

// Filter returns a new table holding the entries keep accepts,
// preserving order.
func (t *Table) Filter(keep func(*Entry) bool) *Table {
	out := NewTable()
	for _, e := range t.entries {
		if keep(e) {
			out.index[e.Key] = len(out.entries)
			out.entries = append(out.entries, e)
		}
	}
	return out
}
