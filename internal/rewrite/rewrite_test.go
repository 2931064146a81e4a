package rewrite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Rules run in declared order; each sees the previous rule's output.
func TestPipeline_AppliesInOrder(t *testing.T) {
	p := New("demo",
		First(`z$`, ""),
		All(`k`, "q"),
	)

	steps := p.Trace("fiskaz")
	require.Len(t, steps, 2)
	assert.Equal(t, "fiska", steps[0].Output)
	assert.Equal(t, "fisqa", steps[1].Output)
	assert.Equal(t, "fisqa", p.Apply("fiskaz"))
}

func TestRule_ScopeAllRewritesEveryMatch(t *testing.T) {
	assert.Equal(t, "xaxa", All(`k`, "x").Apply("kaka"))
}

func TestRule_ScopeFirstRewritesLeftmostOnly(t *testing.T) {
	assert.Equal(t, "xaka", First(`k`, "x").Apply("kaka"))
}

func TestRule_Lookbehind(t *testing.T) {
	// Devoice z everywhere except word-initially.
	r := All(`(?<!^)z`, "s")
	assert.Equal(t, "zasas", r.Apply("zazaz"))

	// Variable-length lookbehind: drop a final vowel after an earlier vowel.
	r = All(`(?<=[ieaou].*)[ieaou]$`, "")
	assert.Equal(t, "fisk", r.Apply("fiska"))
	assert.Equal(t, "a", r.Apply("a"))
}

func TestRule_Lookahead(t *testing.T) {
	r := All(`k(?=[ie])`, "x")
	assert.Equal(t, "xentum", r.Apply("kentum"))
	assert.Equal(t, "kantum", r.Apply("kantum"))
}

func TestRule_Backreference(t *testing.T) {
	r := First(`(.)\1`, "$1")
	assert.Equal(t, "fula", r.Apply("fulla"))
	// Only the first geminate is simplified.
	assert.Equal(t, "fulabb", r.Apply("fullabb"))
}

func TestRule_UnmatchedInputPassesThrough(t *testing.T) {
	p := New("demo", All(`ā`, "a"), All(`þ`, "d"))
	assert.Equal(t, "xyz", p.Apply("xyz"))
	assert.Equal(t, "", p.Apply(""))
}

func TestRule_UnicodeAware(t *testing.T) {
	r := All(`[ьъ]`, "")
	assert.Equal(t, "dn", r.Apply("dьnъ"))
}

func TestNewRule_InvalidPattern(t *testing.T) {
	_, err := NewRule(`(unclosed`, "", ScopeAll)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "(unclosed")
}

func TestNewRule_InvalidScope(t *testing.T) {
	_, err := NewRule(`a`, "b", Scope("sometimes"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid scope")
}

func TestNewRule_DefaultScopeIsAll(t *testing.T) {
	r, err := NewRule(`a`, "o", "")
	require.NoError(t, err)
	assert.Equal(t, ScopeAll, r.Scope)
	assert.Equal(t, "oo", r.Apply("aa"))
}

func TestMustRule_PanicsOnInvalidPattern(t *testing.T) {
	assert.Panics(t, func() { MustRule(`[`, "", ScopeAll) })
}

func TestRule_ZeroValueIsIdentity(t *testing.T) {
	var r Rule
	assert.Equal(t, "same", r.Apply("same"))
}

func TestCompile_ReportsRuleIndex(t *testing.T) {
	_, err := Compile("bad", []Spec{
		{Match: `a`, Replace: "b"},
		{Match: `(?<=`, Replace: ""},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `pipeline "bad": rule[1]`)
}

func TestCompile_Valid(t *testing.T) {
	p, err := Compile("lenite", []Spec{
		{Match: `(?<=[aeiou])p(?=[aeiou])`, Replace: "b", Scope: ScopeAll},
		{Match: `b$`, Replace: "p", Scope: ScopeFirst},
	})
	require.NoError(t, err)
	assert.Equal(t, "lenite", p.Name)
	assert.Equal(t, "abap", p.Apply("apap"))
}

func TestPipeline_Then(t *testing.T) {
	base := New("base", All(`a`, "b"))
	ext := base.Then(All(`b`, "c"))

	assert.Equal(t, "bbb", base.Apply("aba"))
	assert.Equal(t, "ccc", ext.Apply("aba"))
	assert.Len(t, base.Rules, 1)
}

func TestPipeline_Deterministic(t *testing.T) {
	p := New("demo", All(`(?<=[aeiou])s(?=[aeiou])`, "z"), First(`z`, "r"))
	first := p.Apply("asasas")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, p.Apply("asasas"))
	}
	assert.Equal(t, "arazas", first)
}

func TestRule_String(t *testing.T) {
	assert.Equal(t, `/k/g → "x"`, All(`k`, "x").String())
	assert.Equal(t, `/k/ → "x"`, First(`k`, "x").String())
}
