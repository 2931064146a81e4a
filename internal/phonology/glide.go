package phonology

import "github.com/roach88/lexc/internal/rewrite"

// glides marks consonantal j/v with the placeholders J/V, turns the rest
// into the glides ĭ/w, then restores the placeholders.
var glides = rewrite.New("glide",
	// word-initial
	rewrite.All(`^j`, "J"),
	rewrite.All(`^v`, "V"),

	// intervocalic pairs: first half closes the syllable, second opens the next
	rewrite.All(`(?<=[aiueo])jj(?=[aiueo])`, "ĭJ"),
	rewrite.All(`(?<=[aiueo])jv(?=[aiueo])`, "ĭV"),
	rewrite.All(`(?<=[aiueo])vj(?=[aiueo])`, "wJ"),
	rewrite.All(`(?<=[aiueo])vv(?=[aiueo])`, "wV"),

	// onset before a vowel or glide
	rewrite.All(`(?<=^|[aiueo])j(?=[waiueo])`, "J"),
	rewrite.All(`(?<=^|[aiueo])v(?=[ĭaiueo])`, "V"),

	rewrite.All(`j`, "ĭ"),
	rewrite.All(`v`, "w"),
	rewrite.All(`J`, "j"),
	rewrite.All(`V`, "v"),
)

// Normalize returns the phonemic reading of form with glides resolved.
func Normalize(form string) string {
	return glides.Apply(form)
}
