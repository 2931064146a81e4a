package ir

import (
	"slices"
	"unicode/utf16"
)

// Value is a sealed interface over the types allowed in canonical output.
// Only String, Int, Bool, Array and Object implement it. There is no null
// and no float, so the canonical encoding of a table is unambiguous.
type Value interface {
	value()
}

// String is a string value.
type String string

func (String) value() {}

// Int is an integer value.
type Int int64

func (Int) value() {}

// Bool is a boolean value.
type Bool bool

func (Bool) value() {}

// Array is an ordered list of values.
type Array []Value

func (Array) value() {}

// Object maps string keys to values. Use SortedKeys for iteration.
type Object map[string]Value

func (Object) value() {}

// Strings converts a string slice to an Array.
func Strings(ss []string) Array {
	arr := make(Array, len(ss))
	for i, s := range ss {
		arr[i] = String(s)
	}
	return arr
}

// SortedKeys returns keys in RFC 8785 order (UTF-16 code units).
// Go's string comparison orders by UTF-8 bytes, which differs above U+FFFF.
func (obj Object) SortedKeys() []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareUTF16)
	return keys
}

func compareUTF16(a, b string) int {
	a16 := utf16.Encode([]rune(a))
	b16 := utf16.Encode([]rune(b))

	for i := 0; i < min(len(a16), len(b16)); i++ {
		if a16[i] != b16[i] {
			if a16[i] < b16[i] {
				return -1
			}
			return 1
		}
	}

	switch {
	case len(a16) < len(b16):
		return -1
	case len(a16) > len(b16):
		return 1
	}
	return 0
}

// putString sets key to s, skipping empty strings so optional attributes
// stay out of the canonical form.
func (obj Object) putString(key, s string) {
	if s != "" {
		obj[key] = String(s)
	}
}

// Value returns the canonical value of a component reference.
func (r ComponentRef) Value() Value {
	return String(r.String())
}

// Value returns the canonical value of an entry.
func (e *Entry) Value() Object {
	obj := Object{
		"key":  String(e.Key),
		"kind": String(e.Kind),
		"form": String(e.Form),
	}
	if len(e.Refs) > 0 {
		obj["refs"] = Strings(RefStrings(e.Refs))
	}
	obj.putString("etymology", e.Etymology)
	obj.putString("gloss", e.Gloss)
	obj.putString("class", e.Class)
	obj.putString("date", e.Date)
	obj.putString("source", e.Source)
	return obj
}

// Value returns the canonical value of the table: its entries in order.
func (t *Table) Value() Array {
	arr := make(Array, len(t.entries))
	for i, e := range t.entries {
		arr[i] = e.Value()
	}
	return arr
}
