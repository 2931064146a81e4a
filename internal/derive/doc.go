// Package derive turns etymological citations into root forms.
//
// A Family is one source-language sound-change chain (Germanic, Latin,
// Slavic, or a project-defined chain) framed by the shared citation steps:
//
//  1. percent-decode the citation and normalize it to NFC
//  2. strip everything up to the last "/" and any "#fragment"
//  3. strip one leading or trailing "-" (affix citations)
//  4. run the family rules
//  5. devoice non-initial z and drop a final vowel after an earlier vowel
//
// The acronym family spells a code letter by letter instead and has no frame.
package derive
