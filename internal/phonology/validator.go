package phonology

import (
	"fmt"

	"github.com/dlclark/regexp2"
)

// Constraint is a named forbidden pattern over normalized forms.
type Constraint struct {
	Name    string
	Pattern string

	re *regexp2.Regexp
}

// NewConstraint compiles a constraint.
func NewConstraint(name, pattern string) (Constraint, error) {
	re, err := regexp2.Compile(pattern, regexp2.None)
	if err != nil {
		return Constraint{}, fmt.Errorf("constraint %q: %w", name, err)
	}
	return Constraint{Name: name, Pattern: pattern, re: re}, nil
}

func mustConstraint(name, pattern string) Constraint {
	c, err := NewConstraint(name, pattern)
	if err != nil {
		panic(err)
	}
	return c
}

// Matches reports whether the constraint fires on a normalized form.
func (c Constraint) Matches(normalized string) bool {
	ok, err := c.re.MatchString(normalized)
	return err == nil && ok
}

// Alphabet is the phoneme inventory after normalization.
const Alphabet = "gnmcdbktpxsfjzvrlĭwaiueo"

// DefaultConstraints is the standard battery, in reporting order.
func DefaultConstraints() []Constraint {
	return []Constraint{
		mustConstraint("empty", `^$`),
		mustConstraint("repeat", `(.)\1`),
		mustConstraint("non-alphabet", `[^`+Alphabet+`]`),
		mustConstraint("initial", `^[aiueo]`),
		mustConstraint("final", `[^nmktxsfrĭwaiueo]$`),
		mustConstraint("coda", `l(?![ĭwaiueo])`),

		// vowel or consonant runs
		mustConstraint("2 vowels", `[aiueo]{2}`),
		mustConstraint("3 consonants", `[^ĭwaiueo]{3}`),

		// place
		mustConstraint("velar front", `[gck]i`),
		mustConstraint("palatal front", `[xj]ĭ`),
		mustConstraint("labial back", `[mbpfv]w`),

		mustConstraint("velar plosive nasal", `[ck]g`),
		mustConstraint("dental plosive nasal", `[dt]n`),
		mustConstraint("labial plosive nasal", `[bp]m`),

		mustConstraint("palatal glide", `(?<![xj])iw`),
		mustConstraint("labial glide", `(?<![mbpfv])uĭ`),

		// manner
		mustConstraint("sibilant", `xs|sx`),
		mustConstraint("nasal", `[gnm]{2}`),
		mustConstraint("plosive +v", `[cdb][gnmcdbktpxsfjzv]`),
		mustConstraint("plosive -v", `[ktp][cdbktpjzv]`),
		mustConstraint("fricative -v", `[xsf][cdbjzv]`),
		mustConstraint("fricative +v", `[jzv][cdbktpxsfjzv]`),
	}
}

// Violation names the constraint a form broke.
type Violation struct {
	Rule       string `json:"rule"`
	Form       string `json:"form"`
	Normalized string `json:"normalized"`
}

// Error implements the error interface.
func (v *Violation) Error() string {
	return fmt.Sprintf("%s: %s", v.Rule, v.Form)
}

// Validator runs an ordered constraint battery.
// It holds no state between calls and is safe for concurrent use.
type Validator struct {
	constraints []Constraint
}

// NewValidator returns a validator over constraints, in order.
func NewValidator(constraints ...Constraint) *Validator {
	return &Validator{constraints: constraints}
}

// Default returns a validator over DefaultConstraints.
func Default() *Validator {
	return NewValidator(DefaultConstraints()...)
}

// Constraints returns the battery in reporting order.
func (v *Validator) Constraints() []Constraint {
	out := make([]Constraint, len(v.constraints))
	copy(out, v.constraints)
	return out
}

// Validate returns the first violation, or nil if form is valid.
func (v *Validator) Validate(form string) *Violation {
	normalized := Normalize(form)
	for _, c := range v.constraints {
		if c.Matches(normalized) {
			return &Violation{Rule: c.Name, Form: form, Normalized: normalized}
		}
	}
	return nil
}

// ValidateAll returns every violation in battery order.
func (v *Validator) ValidateAll(form string) []Violation {
	normalized := Normalize(form)
	var out []Violation
	for _, c := range v.constraints {
		if c.Matches(normalized) {
			out = append(out, Violation{Rule: c.Name, Form: form, Normalized: normalized})
		}
	}
	return out
}

// Valid reports whether form passes every constraint.
func (v *Validator) Valid(form string) bool {
	return v.Validate(form) == nil
}
