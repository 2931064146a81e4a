package lexicon

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/lexc/internal/ir"
)

func testTable(t *testing.T) *ir.Table {
	t.Helper()
	table := ir.NewTable()
	for _, e := range []*ir.Entry{
		{Key: "zero", Kind: ir.Root, Form: "ze", Attributes: ir.Attributes{Gloss: "zero, 0", Class: "n", Date: "2024-02-13", Source: "a priori"}, Etymology: "a priori"},
		{Key: "cat", Kind: ir.Root, Form: "kat", Attributes: ir.Attributes{Gloss: "cat"}},
		{Key: "sun", Kind: ir.Root, Form: "sol", Attributes: ir.Attributes{Gloss: "sun"}},
		{Key: "sun*", Kind: ir.Compound, Form: "digfa", Attributes: ir.Attributes{Gloss: "=sun"}},
		{Key: "steam*", Kind: ir.Compound, Form: "fata", Etymology: "fire+water"},
		{Key: "good_day#", Kind: ir.Idiom, Form: "bon di"},
	} {
		e.Resolved = true
		require.NoError(t, table.Add(e))
	}
	require.NoError(t, table.Add(&ir.Entry{Key: "ghost*", Kind: ir.Compound}))
	return table
}

func TestNew_SkipsPending(t *testing.T) {
	lex := New(testTable(t))
	assert.Equal(t, 6, lex.Len())
	assert.Equal(t, []string{"zero", "cat", "sun", "sun*", "steam*", "good_day#"}, lex.Keys())

	_, ok := lex.Exact("ghost*")
	assert.False(t, ok)
}

func TestNew_Copies(t *testing.T) {
	table := testTable(t)
	lex := New(table)

	e, _ := table.Get("zero")
	e.Form = "zo"

	r, ok := lex.Lookup("zero")
	require.True(t, ok)
	assert.Equal(t, "ze", r.Form)
}

func TestLookup(t *testing.T) {
	lex := New(testTable(t))

	r, ok := lex.Lookup("zero")
	require.True(t, ok)
	assert.Equal(t, Record{
		Key:       "zero",
		Kind:      ir.Root,
		Form:      "ze",
		Gloss:     "zero, 0",
		Class:     "n",
		Date:      "2024-02-13",
		Etymology: "a priori",
		Source:    "a priori",
	}, r)

	r, ok = lex.Lookup("steam")
	require.True(t, ok)
	assert.Equal(t, "steam*", r.Key)
	assert.Equal(t, "fire+water", r.Etymology)

	r, ok = lex.Lookup("good_day")
	require.True(t, ok)
	assert.Equal(t, "good_day#", r.Key)

	// The root shadows the compound variant.
	r, ok = lex.Lookup("sun")
	require.True(t, ok)
	assert.Equal(t, "sol", r.Form)

	_, ok = lex.Lookup("xyz")
	assert.False(t, ok)
}

func TestExact(t *testing.T) {
	lex := New(testTable(t))

	r, ok := lex.Exact("sun*")
	require.True(t, ok)
	assert.Equal(t, "digfa", r.Form)

	_, ok = lex.Exact("steam")
	assert.False(t, ok)
}

func TestTranslate(t *testing.T) {
	lex := New(testTable(t))

	tests := []struct {
		name string
		code string
		want string
	}{
		{"known keys", "zero cat", "ze kat"},
		{"unknown key passes through", "zero xyz", "ze xyz"},
		{"compound fallback", "steam", "fata"},
		{"idiom fallback", "good_day zero", "bon di ze"},
		{"control symbols pass through", "[zero], cat*", "[ze], kat*"},
		{"clause marker", "cat{ zero }", "cat{ ze }"},
		{"uppercase is not a token", "Zero", "Zero"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, lex.Translate(tt.code))
		})
	}
}

func TestTranslate_SymbolEntries(t *testing.T) {
	table := testTable(t)
	for _, e := range []*ir.Entry{
		{Key: "which{", Kind: ir.Root, Form: "vi"},
		{Key: ",", Kind: ir.Root, Form: "i"},
		{Key: "}", Kind: ir.Root, Form: "o"},
	} {
		e.Resolved = true
		require.NoError(t, table.Add(e))
	}
	lex := New(table)

	assert.Equal(t, "kat vi ze o i sol", lex.Translate("cat which{ zero } , sun"))
	assert.Equal(t, "zei kat", lex.Translate("zero, cat"))
	// Symbols without an entry still pass through.
	assert.Equal(t, "[ze]", lex.Translate("[zero]"))
}

func TestTranslate_Concurrent(t *testing.T) {
	lex := New(testTable(t))

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				assert.Equal(t, "ze kat", lex.Translate("zero cat"))
			}
		}()
	}
	wg.Wait()
}

func TestRecords_Copy(t *testing.T) {
	lex := New(testTable(t))
	recs := lex.Records()
	recs[0].Form = "changed"

	r, _ := lex.Exact("zero")
	assert.Equal(t, "ze", r.Form)
}
