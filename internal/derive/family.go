package derive

import (
	"strings"

	"github.com/roach88/lexc/internal/rewrite"
)

// Family is a named derivation chain.
type Family struct {
	Name        string
	Description string

	prepare  func(string) string
	pipeline *rewrite.Pipeline
}

// Framed builds a family whose rules run inside the citation frame.
func Framed(name, description string, rules ...rewrite.Rule) *Family {
	return &Family{
		Name:        name,
		Description: description,
		prepare:     DecodeCitation,
		pipeline:    rewrite.New(name, citationHead...).Then(rules...).Then(citationTail...),
	}
}

// Derive applies the family to a citation.
func (f *Family) Derive(citation string) string {
	return f.pipeline.Apply(f.prepare(citation))
}

// Trace applies the family and returns the prepared input with the output
// of every rule.
func (f *Family) Trace(citation string) (string, []rewrite.Step) {
	input := f.prepare(citation)
	return input, f.pipeline.Trace(input)
}

// Rules returns the family's full rule list, frame included.
func (f *Family) Rules() []rewrite.Rule {
	return f.pipeline.Rules
}

// Germanic derives roots from Proto-Germanic reconstructions.
func Germanic() *Family {
	const vowel = `[ieaouīēāōūîêâôû]`
	return Framed("gem", "Proto-Germanic reconstruction",
		// inflectional suffix
		rewrite.First(`(?<=`+vowel+`.*)(ōr$|[aiu]z$|i?janą$|[ōaā]ną$|j?ą$|(ō|ô|ǭ)|ā)$|(?<!`+vowel+`)s$|ai$`, ""),

		// long vowels
		rewrite.All(`ī`, "i"),
		rewrite.All(`ē`, "e"),
		rewrite.All(`ā`, "a"),
		rewrite.All(`ō`, "o"),
		rewrite.All(`ū`, "u"),

		// spelling
		rewrite.First(`(.)\1`, "$1"),
		rewrite.All(`sk`, "x"),
		rewrite.All(`þ`, "d"),
		rewrite.All(`g`, "c"),
		rewrite.All(`nc`, "g"),
		rewrite.All(`w`, "v"),

		// sound change
		rewrite.All(`^h(?=[gnmrlv])`, ""),
		rewrite.All(`ts$`, "t"),
		rewrite.All(`mn(?![ieaou])`, "m"),
		rewrite.All(`(?<=[ieaou])ndr`, "dr"),

		// lexical exceptions
		rewrite.All(`berht`, "breht"),
		rewrite.All(`vintr`, "vintur"),
		rewrite.All(`nurdr`, "nurd"),
		rewrite.All(`vulkn`, "vulkan"),
		rewrite.All(`meluk`, "melk"),

		rewrite.All(`^sv(?=[ieaou])`, "sf"),
		rewrite.All(`(?<=[ieaou][hg])v$`, ""),
		rewrite.All(`nr$`, "n"),
	)
}

// Latin derives roots from Latin (and Latinized Greek) lemmas.
func Latin() *Family {
	return Framed("lat", "Latin lemma",
		// infinitive and nominative endings
		rewrite.First(`((ā|ē|e|ī)re|ā|i?ō|e|ū|iē)$`, ""),

		rewrite.All(`ī`, "i"),
		rewrite.All(`ē`, "e"),
		rewrite.All(`ā`, "a"),
		rewrite.All(`ō`, "o"),
		rewrite.All(`ū`, "u"),
		rewrite.All(`y`, "i"),

		// Greek digraphs
		rewrite.All(`kh`, "k"),
		rewrite.All(`th`, "t"),
		rewrite.All(`ph`, "p"),

		rewrite.All(`c|q`, "k"),
		rewrite.All(`g`, "c"),

		// palatalization
		rewrite.All(`k(?=[ie])`, "x"),
		rewrite.All(`c(?=[ie])`, "j"),
	)
}

// Slavic derives roots from Proto-Slavic reconstructions.
func Slavic() *Family {
	return Framed("sla", "Proto-Slavic reconstruction",
		rewrite.All(`(iti|ь)$`, ""),

		// yers and nasal vowels
		rewrite.All(`ь`, "i"),
		rewrite.All(`ъ`, "u"),
		rewrite.All(`y`, "w"),
		rewrite.All(`ě`, "je"),
		rewrite.All(`e`, "je"),
		rewrite.All(`ę`, "en"),
		rewrite.All(`ǫ`, "en"),

		rewrite.All(`x`, "h"),
		rewrite.All(`c`, "ts"),

		// soft consonants
		rewrite.All(`ň`, "nj"),
		rewrite.All(`ď`, "dj"),
		rewrite.All(`ť`, "tj"),
		rewrite.All(`ľ`, "lj"),
		rewrite.All(`ř`, "rj"),

		rewrite.All(`š`, "x"),
		rewrite.All(`ž`, "j"),
		rewrite.All(`j`, "i"),
	)
}

// Acronym spells an uppercase code (ISO country or language codes) letter
// by letter: "EN" becomes "jen".
func Acronym() *Family {
	return &Family{
		Name:        "acronym",
		Description: "letter-by-letter spelling of a code",
		prepare:     strings.ToUpper,
		pipeline: rewrite.New("acronym",
			rewrite.All(`A`, "za"),
			rewrite.All(`Ä`, "ja"),
			rewrite.All(`B`, "ba"),
			rewrite.All(`C`, "ca"),
			rewrite.All(`D`, "da"),
			rewrite.All(`E`, "je"),
			rewrite.All(`F`, "fa"),
			rewrite.All(`G`, "ga"),
			rewrite.All(`H`, "xo"),
			rewrite.All(`I`, "zi"),
			rewrite.All(`J`, "ja"),
			rewrite.All(`K`, "ka"),
			rewrite.All(`L`, "la"),
			rewrite.All(`M`, "ma"),
			rewrite.All(`N`, "na"),
			rewrite.All(`O`, "vo"),
			rewrite.All(`Ö`, "jo"),
			rewrite.All(`P`, "pa"),
			rewrite.All(`Q`, "ko"),
			rewrite.All(`R`, "ra"),
			rewrite.All(`S`, "sa"),
			rewrite.All(`T`, "ta"),
			rewrite.All(`U`, "zu"),
			rewrite.All(`V`, "va"),
			rewrite.All(`W`, "vi"),
			rewrite.All(`X`, "xa"),
			rewrite.All(`Y`, "ju"),
			rewrite.All(`Z`, "so"),

			rewrite.All(`(?<=[ktxsfnm])a$`, ""),
		),
	}
}
