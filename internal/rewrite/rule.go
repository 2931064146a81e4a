package rewrite

import (
	"fmt"
	"time"

	"github.com/dlclark/regexp2"
)

// Scope selects how many matches a rule rewrites.
type Scope string

const (
	// ScopeAll rewrites every non-overlapping match, left to right.
	ScopeAll Scope = "all"

	// ScopeFirst rewrites only the leftmost match.
	ScopeFirst Scope = "first"
)

// Valid reports whether s is a known scope.
func (s Scope) Valid() bool {
	return s == ScopeAll || s == ScopeFirst
}

// count maps the scope onto regexp2's replacement count.
func (s Scope) count() int {
	if s == ScopeFirst {
		return 1
	}
	return -1
}

// matchTimeout bounds a single rule application. Rules are short patterns
// over single words; hitting this means a pathological pattern.
const matchTimeout = time.Second

// Rule is one pattern → replacement step.
//
// Replace may refer to capture groups as $1, $2 or ${name}.
type Rule struct {
	Match   string `json:"match" yaml:"match"`
	Replace string `json:"replace" yaml:"replace"`
	Scope   Scope  `json:"scope" yaml:"scope"`

	re *regexp2.Regexp
}

// NewRule compiles a rule. An empty scope means ScopeAll.
func NewRule(match, replace string, scope Scope) (Rule, error) {
	if scope == "" {
		scope = ScopeAll
	}
	if !scope.Valid() {
		return Rule{}, fmt.Errorf("rule %q: invalid scope %q (expected %q or %q)", match, scope, ScopeAll, ScopeFirst)
	}

	re, err := regexp2.Compile(match, regexp2.None)
	if err != nil {
		return Rule{}, fmt.Errorf("rule %q: %w", match, err)
	}
	re.MatchTimeout = matchTimeout

	return Rule{Match: match, Replace: replace, Scope: scope, re: re}, nil
}

// MustRule is NewRule for rule tables known at compile time.
// It panics on an invalid pattern.
func MustRule(match, replace string, scope Scope) Rule {
	r, err := NewRule(match, replace, scope)
	if err != nil {
		panic(err)
	}
	return r
}

// All is shorthand for MustRule(match, replace, ScopeAll).
func All(match, replace string) Rule {
	return MustRule(match, replace, ScopeAll)
}

// First is shorthand for MustRule(match, replace, ScopeFirst).
func First(match, replace string) Rule {
	return MustRule(match, replace, ScopeFirst)
}

// Apply rewrites s. A failed match leaves s unchanged.
func (r Rule) Apply(s string) string {
	if r.re == nil {
		return s
	}
	out, err := r.re.Replace(s, r.Replace, -1, r.Scope.count())
	if err != nil {
		return s
	}
	return out
}

// String renders the rule as /match/ → replace.
func (r Rule) String() string {
	flag := "g"
	if r.Scope == ScopeFirst {
		flag = ""
	}
	return fmt.Sprintf("/%s/%s → %q", r.Match, flag, r.Replace)
}
