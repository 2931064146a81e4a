// Package lexicon exposes a compiled entry table to readers.
//
// A Lexicon is built once from a resolved table and never changes, so it
// can be shared between goroutines without locking. It answers two
// questions: what a key compiles to (Lookup) and how a line of key code
// reads in the language (Translate).
package lexicon
