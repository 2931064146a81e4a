// Package junction assembles compound and idiom forms from component forms.
package junction

import (
	"fmt"
	"strings"

	"github.com/roach88/lexc/internal/ir"
)

// ClusterStrategy selects the repair applied at a consonant-consonant boundary.
type ClusterStrategy string

const (
	// ClusterElide drops the weaker consonant per the precedence table.
	ClusterElide ClusterStrategy = "elide"

	// ClusterKeep concatenates the cluster unchanged.
	ClusterKeep ClusterStrategy = "keep"

	// ClusterEpenthesis inserts EpentheticVowel when that turns an invalid
	// join of a valid left side into a valid one.
	ClusterEpenthesis ClusterStrategy = "epenthesis"
)

// Valid reports whether s is a known strategy.
func (s ClusterStrategy) Valid() bool {
	switch s {
	case ClusterElide, ClusterKeep, ClusterEpenthesis:
		return true
	}
	return false
}

// Defaults.
const (
	DefaultEpenthetic      = "g"
	DefaultEpentheticVowel = "a"
	DefaultVowels          = "aeiou"
	DefaultPrecedence      = "ktpcdbxsfjzvgnmrl"
	IdiomSeparator         = " "
	MorphemeMarker         = "-"
)

// Options configures an Assembler. Zero fields take the defaults.
type Options struct {
	// Epenthetic is inserted between a vowel-final and a vowel-initial form.
	Epenthetic string

	// Vowels is the set of letters treated as vowels at a boundary.
	Vowels string

	// Precedence lists consonants strongest first. A consonant not listed
	// ranks below every listed one.
	Precedence string

	Clusters ClusterStrategy

	// EpentheticVowel and Check drive ClusterEpenthesis. Check reports
	// whether a form is phonotactically valid.
	EpentheticVowel string
	Check           func(string) bool
}

// Assembler joins component forms. It is a pure function of its inputs.
type Assembler struct {
	opts Options
	rank map[rune]int
}

// New returns an assembler for opts.
func New(opts Options) (*Assembler, error) {
	if opts.Epenthetic == "" {
		opts.Epenthetic = DefaultEpenthetic
	}
	if opts.Vowels == "" {
		opts.Vowels = DefaultVowels
	}
	if opts.Precedence == "" {
		opts.Precedence = DefaultPrecedence
	}
	if opts.Clusters == "" {
		opts.Clusters = ClusterElide
	}
	if opts.EpentheticVowel == "" {
		opts.EpentheticVowel = DefaultEpentheticVowel
	}
	if !opts.Clusters.Valid() {
		return nil, fmt.Errorf("invalid cluster strategy %q", opts.Clusters)
	}
	if opts.Clusters == ClusterEpenthesis && opts.Check == nil {
		return nil, fmt.Errorf("cluster strategy %q requires a validity check", opts.Clusters)
	}

	rank := make(map[rune]int)
	i := 0
	for _, r := range opts.Precedence {
		if _, dup := rank[r]; dup {
			return nil, fmt.Errorf("precedence lists %q twice", r)
		}
		rank[r] = i
		i++
	}
	return &Assembler{opts: opts, rank: rank}, nil
}

// Default returns an assembler with the default options.
func Default() *Assembler {
	a, _ := New(Options{})
	return a
}

// Options returns the effective options.
func (a *Assembler) Options() Options {
	return a.opts
}

// Assemble produces the surface form for a formula of the given kind.
func (a *Assembler) Assemble(kind ir.Formation, forms []string) (string, error) {
	switch kind {
	case ir.Compound:
		return a.Compound(forms), nil
	case ir.Idiom:
		return a.Idiom(forms), nil
	}
	return "", fmt.Errorf("cannot assemble %q entries", kind)
}

// Compound folds forms left to right with Join.
func (a *Assembler) Compound(forms []string) string {
	if len(forms) == 0 {
		return ""
	}
	joined := forms[0]
	for _, f := range forms[1:] {
		joined = a.Join(joined, f)
	}
	return joined
}

// Idiom joins forms as words. A word-initial morpheme marker attaches the
// word to the previous one: ["ka", "-ze"] becomes "ka-ze".
func (a *Assembler) Idiom(forms []string) string {
	joined := strings.Join(forms, IdiomSeparator)
	return strings.ReplaceAll(joined, IdiomSeparator+MorphemeMarker, MorphemeMarker)
}

// Join repairs a single boundary.
func (a *Assembler) Join(left, right string) string {
	if left == "" || right == "" {
		return left + right
	}

	lr := []rune(left)
	rr := []rune(right)
	last, first := lr[len(lr)-1], rr[0]

	switch lv, rv := a.isVowel(last), a.isVowel(first); {
	case lv && rv:
		return left + a.opts.Epenthetic + right
	case lv != rv:
		return left + right
	}

	switch a.opts.Clusters {
	case ClusterKeep:
		return left + right
	case ClusterEpenthesis:
		if a.opts.Check(left) && !a.opts.Check(left+right) && a.opts.Check(left+a.opts.EpentheticVowel+right) {
			return left + a.opts.EpentheticVowel + right
		}
		return left + right
	}

	if last == first || a.weaker(last, first) {
		return string(lr[:len(lr)-1]) + right
	}
	return left + string(rr[1:])
}

// weaker reports whether l ranks at or below r. Ties drop the left side.
func (a *Assembler) weaker(l, r rune) bool {
	return a.rankOf(l) >= a.rankOf(r)
}

func (a *Assembler) rankOf(c rune) int {
	if i, ok := a.rank[c]; ok {
		return i
	}
	return len(a.rank)
}

func (a *Assembler) isVowel(c rune) bool {
	return strings.ContainsRune(a.opts.Vowels, c)
}
