// Package phonology checks surface forms against the phonotactic inventory.
//
// Checking runs on a normalized phonemic string. Normalize resolves the
// ambiguous letters j and v into a full consonant or a glide (ĭ, w) by
// syllable position; the stored form is never rewritten. The Validator
// then tries its named constraints in order, and the first match is the
// violation.
package phonology
