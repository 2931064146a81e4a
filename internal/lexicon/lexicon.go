package lexicon

import (
	"regexp"

	"github.com/roach88/lexc/internal/ir"
)

// Record is the read-only view of one compiled entry.
type Record struct {
	Key       string       `json:"key"`
	Kind      ir.Formation `json:"kind"`
	Form      string       `json:"form"`
	Gloss     string       `json:"gloss,omitempty"`
	Class     string       `json:"class,omitempty"`
	Date      string       `json:"date,omitempty"`
	Etymology string       `json:"etymology,omitempty"`
	Source    string       `json:"source,omitempty"`
}

// lookupSuffixes is the fallback order for a bare key.
var lookupSuffixes = []string{"", ir.Compound.KeySuffix(), ir.Idiom.KeySuffix()}

// tokenPattern matches the segments Translate replaces: identifiers, an
// identifier opening a clause ("that{"), and the control symbols.
var tokenPattern = regexp.MustCompile(`[a-z_][a-z0-9_]*\{?|[\[\]}*#]|,`)

// Lexicon is an immutable projection of a compiled table.
type Lexicon struct {
	records []Record
	index   map[string]int
}

// New copies the resolved entries of table. Pending entries are skipped.
// Later changes to table do not affect the Lexicon.
func New(table *ir.Table) *Lexicon {
	l := &Lexicon{index: make(map[string]int, table.Len())}
	for _, e := range table.Entries() {
		if e.Pending() {
			continue
		}
		l.index[e.Key] = len(l.records)
		l.records = append(l.records, Record{
			Key:       e.Key,
			Kind:      e.Kind,
			Form:      e.Form,
			Gloss:     e.Gloss,
			Class:     e.Class,
			Date:      e.Date,
			Etymology: e.Etymology,
			Source:    e.Source,
		})
	}
	return l
}

// Exact returns the record stored under key, without fallback.
func (l *Lexicon) Exact(key string) (Record, bool) {
	i, ok := l.index[key]
	if !ok {
		return Record{}, false
	}
	return l.records[i], true
}

// Lookup returns the record for key, trying key, key* and key# in order.
func (l *Lexicon) Lookup(key string) (Record, bool) {
	for _, suffix := range lookupSuffixes {
		if r, ok := l.Exact(key + suffix); ok {
			return r, true
		}
	}
	return Record{}, false
}

// Translate replaces every token of code with its compiled form.
// Tokens without an entry, and all text between tokens, are kept as is.
func (l *Lexicon) Translate(code string) string {
	return tokenPattern.ReplaceAllStringFunc(code, func(tok string) string {
		if r, ok := l.Lookup(tok); ok {
			return r.Form
		}
		return tok
	})
}

// Keys returns every key in compilation order.
func (l *Lexicon) Keys() []string {
	keys := make([]string, len(l.records))
	for i, r := range l.records {
		keys[i] = r.Key
	}
	return keys
}

// Records returns a copy of every record in compilation order.
func (l *Lexicon) Records() []Record {
	out := make([]Record, len(l.records))
	copy(out, l.records)
	return out
}

// Len returns the number of entries.
func (l *Lexicon) Len() int {
	return len(l.records)
}
