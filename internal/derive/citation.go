package derive

import (
	"net/url"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/lexc/internal/rewrite"
)

// DecodeCitation percent-decodes a citation and normalizes it to NFC.
// A citation that is not valid percent-encoding is used as written.
func DecodeCitation(citation string) string {
	decoded, err := url.PathUnescape(citation)
	if err != nil {
		decoded = citation
	}
	return norm.NFC.String(decoded)
}

// citationHead extracts the headword from a decoded citation URL.
var citationHead = []rewrite.Rule{
	rewrite.First(`^.+/`, ""),
	rewrite.First(`#.+$`, ""),
	rewrite.First(`^-|-$`, ""),
}

// citationTail is shared by every framed family.
var citationTail = []rewrite.Rule{
	rewrite.All(`(?<!^)z`, "s"),
	rewrite.All(`(?<=[ieaou].*)[ieaou]$`, ""),
}

// Headword returns the bare headword of a citation without applying any
// family rules.
func Headword(citation string) string {
	return rewrite.New("headword", citationHead...).Apply(DecodeCitation(citation))
}
