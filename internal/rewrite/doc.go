// Package rewrite implements ordered, context-sensitive string rewriting.
//
// A Pipeline is a list of Rules applied strictly in order. Each rule scans
// the whole current string before the next rule runs, so a later rule sees
// every effect of the earlier ones. Patterns use .NET/ECMAScript syntax via
// regexp2, which supports the lookbehind, lookahead and back-references
// that sound-change rules are written with.
//
// Application is total: a rule whose match fails (or times out) leaves the
// string unchanged, and Apply never returns an error. Pattern errors are
// reported once, when the rule is constructed.
package rewrite
