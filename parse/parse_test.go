package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaptinlin/ujson-tools/token"
	"github.com/kaptinlin/ujson-tools/value"
)

func mustParse(t *testing.T, src string, opts Options) value.Value {
	t.Helper()
	v, err := Parse([]byte(src), opts)
	require.NoError(t, err, "Parse(%q)", src)
	return v
}

func TestParseScalars(t *testing.T) {
	opts := DefaultOptions()
	assert.True(t, mustParse(t, "null", opts).IsNull())
	assert.True(t, mustParse(t, "true", opts).Bool())
	assert.Equal(t, "hi", mustParse(t, `"hi"`, opts).Str())
	assert.Equal(t, float64(42), mustParse(t, "42", opts).Num().Float64())
}

func TestParseArrayAndObject(t *testing.T) {
	v := mustParse(t, `{"a":[1,2,3],"b":null}`, DefaultOptions())
	require.Equal(t, value.Object, v.Kind())
	arr := v.Member("a")
	assert.Equal(t, 3, arr.Len())
	assert.True(t, v.Member("b").IsNull())
}

func TestParseDuplicateMembersAllowedByDefault(t *testing.T) {
	v := mustParse(t, `{"a":1,"a":2}`, DefaultOptions())
	obj := v.ObjVal()
	assert.Equal(t, 2, obj.Len())
	got, _ := obj.Get("a")
	assert.Equal(t, float64(2), got.Num().Float64(), "Get(a) should be last-wins")

	rng := obj.EqualRange("a")
	require.Len(t, rng, 2)
	assert.Equal(t, float64(1), rng[0].Num().Float64())
	assert.Equal(t, float64(2), rng[1].Num().Float64())
}

func TestParseDuplicateMembersRejected(t *testing.T) {
	opts := DefaultOptions()
	opts.AllowDuplicates = false
	_, err := Parse([]byte(`{"a":1,"a":2}`), opts)
	require.Error(t, err)
	tokErr, ok := err.(*token.Error)
	require.True(t, ok, "expected *token.Error, got %T", err)
	assert.Equal(t, token.ErrDuplicateMember, tokErr.Code)

	// Per spec, the error is reported at the second occurrence's own key
	// token, not at whatever token trails its value.
	assert.Equal(t, 0, tokErr.Row)
	assert.Equal(t, 7, tokErr.Col)
}

func TestParseDuplicateMemberTakesPrecedenceOverExpectedColon(t *testing.T) {
	// The second "a" is itself malformed (no colon follows), but the
	// duplicate check fires as soon as the member name is read, before
	// the colon is even looked at.
	opts := DefaultOptions()
	opts.AllowDuplicates = false
	_, err := Parse([]byte(`{"a":1,"a" 5}`), opts)
	require.Error(t, err)
	tokErr, ok := err.(*token.Error)
	require.True(t, ok, "expected *token.Error, got %T", err)
	assert.Equal(t, token.ErrDuplicateMember, tokErr.Code)
	assert.Equal(t, 0, tokErr.Row)
	assert.Equal(t, 7, tokErr.Col)
}

func TestParseMaxDepthExceeded(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxDepth = 2
	_, err := Parse([]byte(`[[[1]]]`), opts)
	require.Error(t, err)
	tokErr, ok := err.(*token.Error)
	require.True(t, ok, "expected *token.Error, got %T", err)
	assert.Equal(t, token.ErrMaxDepthExceeded, tokErr.Code)
}

func TestParseMaxArraySizeExceeded(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxArraySize = 2
	_, err := Parse([]byte(`[1,2,3]`), opts)
	require.Error(t, err)
	tokErr, ok := err.(*token.Error)
	require.True(t, ok, "expected *token.Error, got %T", err)
	assert.Equal(t, token.ErrMaxArraySizeExceeded, tokErr.Code)
}

func TestParseMaxObjectSizeExceeded(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxObjectSize = 1
	_, err := Parse([]byte(`{"a":1,"b":2}`), opts)
	require.Error(t, err)
	tokErr, ok := err.(*token.Error)
	require.True(t, ok, "expected *token.Error, got %T", err)
	assert.Equal(t, token.ErrMaxObjectSizeExceeded, tokErr.Code)
}

func TestParseTrailingGarbageIsInvalidToken(t *testing.T) {
	_, err := Parse([]byte(`1 2`), DefaultOptions())
	assert.Error(t, err, "expected trailing-garbage error")
}

func TestParseMisplacedTokens(t *testing.T) {
	cases := []string{"]", "}", ",", ":"}
	for _, src := range cases {
		_, err := Parse([]byte(src), DefaultOptions())
		assert.Error(t, err, "%q: expected parse error", src)
	}
}

func TestParseRelaxedTrailingComma(t *testing.T) {
	opts := DefaultOptions()
	opts.Relaxed = true
	v := mustParse(t, `[1,2,]`, opts)
	assert.Equal(t, 2, v.Len())
}

func TestParseStrictRejectsTrailingComma(t *testing.T) {
	_, err := Parse([]byte(`[1,2,]`), DefaultOptions())
	assert.Error(t, err, "expected misplaced_comma error in strict mode")
}

func TestParseRelaxedStringConcatenation(t *testing.T) {
	opts := DefaultOptions()
	opts.Relaxed = true
	v := mustParse(t, `"foo" "bar"`, opts)
	assert.Equal(t, "foobar", v.Str())
}

func TestParseRelaxedUnquotedKeys(t *testing.T) {
	opts := DefaultOptions()
	opts.Relaxed = true
	v := mustParse(t, `{foo: 1}`, opts)
	got, ok := v.ObjVal().Get("foo")
	require.True(t, ok)
	assert.Equal(t, float64(1), got.Num().Float64())
}

func TestParseRelaxedComments(t *testing.T) {
	opts := DefaultOptions()
	opts.Relaxed = true
	v := mustParse(t, "// leading\n{\"a\": 1 /* trailing */}", opts)
	got, _ := v.ObjVal().Get("a")
	assert.Equal(t, float64(1), got.Num().Float64())
}

func TestParseEmptyArrayAndObject(t *testing.T) {
	v := mustParse(t, `[]`, DefaultOptions())
	assert.Equal(t, 0, v.Len())
	assert.Equal(t, value.Array, v.Kind())

	v = mustParse(t, `{}`, DefaultOptions())
	assert.Equal(t, 0, v.Len())
	assert.Equal(t, value.Object, v.Kind())
}
