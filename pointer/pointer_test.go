package pointer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaptinlin/ujson-tools/parse"
	"github.com/kaptinlin/ujson-tools/value"
)

func parseDoc(t *testing.T, src string) value.Value {
	t.Helper()
	v, err := parse.Parse([]byte(src), parse.DefaultOptions())
	require.NoError(t, err, "parse(%q)", src)
	return v
}

func TestParsePointerText(t *testing.T) {
	p, err := Parse("/a/b~1c/d~0e")
	require.NoError(t, err)
	assert.Equal(t, Pointer{"a", "b/c", "d~e"}, p)
}

func TestParseEmptyPointerIsRoot(t *testing.T) {
	p, err := Parse("")
	require.NoError(t, err)
	assert.Empty(t, p)
}

func TestParseMalformedPointer(t *testing.T) {
	_, err := Parse("a/b")
	assert.Error(t, err, "expected malformed-pointer error for text not starting with /")
}

func TestPointerStringRoundTrips(t *testing.T) {
	p := Pointer{"a", "b/c", "d~e"}
	got := p.String()
	assert.Equal(t, "/a/b~1c/d~0e", got)

	reparsed, err := Parse(got)
	require.NoError(t, err)
	assert.Equal(t, p, reparsed, "round-trip mismatch")
}

func TestIsArrayIndex(t *testing.T) {
	cases := map[string]struct {
		n  int
		ok bool
	}{
		"0":   {0, true},
		"1":   {1, true},
		"10":  {10, true},
		"01":  {0, false}, // leading zero other than "0" itself is rejected
		"-1":  {0, false},
		"":    {0, false},
		"abc": {0, false},
	}
	for tok, want := range cases {
		n, ok := IsArrayIndex(tok)
		assert.Equal(t, want.ok, ok, "IsArrayIndex(%q)", tok)
		if want.ok {
			assert.Equal(t, want.n, n, "IsArrayIndex(%q)", tok)
		}
	}
}

func TestIsAppendToken(t *testing.T) {
	assert.True(t, IsAppendToken("-"), `"-" should be the append token`)
	assert.False(t, IsAppendToken("0"), `"0" should not be the append token`)
}

func TestFindEmptyPointerIsRoot(t *testing.T) {
	v := parseDoc(t, `{"a":1}`)
	got := Find(v, Pointer{})
	assert.Equal(t, v.Kind(), got.Kind(), `Find(root, "") should return the whole document`)
}

func TestFindEmptyStringKey(t *testing.T) {
	v := parseDoc(t, `{"":"x"}`)
	got, err := FindText(v, "/")
	require.NoError(t, err)
	assert.Equal(t, "x", got.Str())

	whole, err := FindText(v, "")
	require.NoError(t, err)
	assert.Equal(t, v.Kind(), whole.Kind(), `FindText("") should return the whole document`)
}

func TestFindArrayIndexing(t *testing.T) {
	v := parseDoc(t, `{"a":[10,20,30]}`)
	got, err := FindText(v, "/a/1")
	require.NoError(t, err)
	assert.Equal(t, float64(20), got.Num().Float64())
}

func TestFindOutOfRangeIsInvalid(t *testing.T) {
	v := parseDoc(t, `{"a":[1,2]}`)
	got, _ := FindText(v, "/a/5")
	assert.False(t, got.IsValid(), "out-of-range index should resolve to the invalid sentinel")
}

func TestFindAppendTokenNeverResolves(t *testing.T) {
	v := parseDoc(t, `{"a":[1,2]}`)
	got, _ := FindText(v, "/a/-")
	assert.False(t, got.IsValid(), `"-" should never resolve via Find (only patch add/move/copy use it)`)
}

func TestFindDuplicateKeyLastWins(t *testing.T) {
	v := parseDoc(t, `{"a":1,"a":2}`)
	got, _ := FindText(v, "/a")
	assert.Equal(t, float64(2), got.Num().Float64(), "FindText(/a) should be last-wins")
}
