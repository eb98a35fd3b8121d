package patch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaptinlin/ujson-tools/parse"
	"github.com/kaptinlin/ujson-tools/serialize"
	"github.com/kaptinlin/ujson-tools/value"
)

func parseDoc(t *testing.T, src string) value.Value {
	t.Helper()
	v, err := parse.Parse([]byte(src), parse.DefaultOptions())
	require.NoError(t, err, "parse(%q)", src)
	return v
}

func compact(v value.Value) string { return serialize.Serialize(v, 0) }

func TestApplyAddAppendToArray(t *testing.T) {
	doc := parseDoc(t, `{"a":[1,2,3]}`)
	ops := parseDoc(t, `[{"op":"add","path":"/a/-","value":4},{"op":"test","path":"/a/3","value":4}]`)
	res := Apply(doc, ops)
	require.True(t, res.OK, "Apply() not OK: %+v", res.Results)
	assert.Equal(t, `{"a": [1, 2, 3, 4]}`, compact(res.Root))
}

func TestApplyAddInsertsBeforeIndex(t *testing.T) {
	doc := parseDoc(t, `[1,2,3]`)
	ops := parseDoc(t, `[{"op":"add","path":"/1","value":99}]`)
	res := Apply(doc, ops)
	require.True(t, res.OK, "Apply() not OK: %+v", res.Results)
	assert.Equal(t, `[1, 99, 2, 3]`, compact(res.Root))
}

func TestApplyAddNewObjectKey(t *testing.T) {
	doc := parseDoc(t, `{"a":1}`)
	ops := parseDoc(t, `[{"op":"add","path":"/b","value":2}]`)
	res := Apply(doc, ops)
	require.True(t, res.OK, "Apply() not OK: %+v", res.Results)
	assert.Equal(t, `{"a": 1, "b": 2}`, compact(res.Root))
}

func TestApplyAddAtRootReplacesDocument(t *testing.T) {
	doc := parseDoc(t, `{"a":1}`)
	ops := parseDoc(t, `[{"op":"add","path":"","value":{"b":2}}]`)
	res := Apply(doc, ops)
	require.True(t, res.OK, "Apply() not OK: %+v", res.Results)
	assert.Equal(t, `{"b": 2}`, compact(res.Root))
}

func TestApplyRemoveObjectRemovesAllDuplicates(t *testing.T) {
	doc := parseDoc(t, `{"a":1,"a":2,"b":3}`)
	ops := parseDoc(t, `[{"op":"remove","path":"/a"}]`)
	res := Apply(doc, ops)
	require.True(t, res.OK, "Apply() not OK: %+v", res.Results)
	assert.False(t, res.Root.ObjVal().Has("a"), "a should be entirely removed")
}

func TestApplyRemoveArrayElement(t *testing.T) {
	doc := parseDoc(t, `[1,2,3]`)
	ops := parseDoc(t, `[{"op":"remove","path":"/1"}]`)
	res := Apply(doc, ops)
	require.True(t, res.OK, "Apply() not OK: %+v", res.Results)
	assert.Equal(t, `[1, 3]`, compact(res.Root))
}

func TestApplyReplace(t *testing.T) {
	doc := parseDoc(t, `{"a":1}`)
	ops := parseDoc(t, `[{"op":"replace","path":"/a","value":2}]`)
	res := Apply(doc, ops)
	require.True(t, res.OK, "Apply() not OK: %+v", res.Results)
	assert.Equal(t, `{"a": 2}`, compact(res.Root))
}

func TestApplyReplaceMissingIsNoEnt(t *testing.T) {
	doc := parseDoc(t, `{"a":1}`)
	ops := parseDoc(t, `[{"op":"replace","path":"/b","value":2}]`)
	res := Apply(doc, ops)
	require.False(t, res.OK)
	assert.Equal(t, NoEnt, res.Results[0].Outcome)
}

func TestApplyMoveNoOpWhenFromEqualsPath(t *testing.T) {
	doc := parseDoc(t, `{"a":1}`)
	ops := parseDoc(t, `[{"op":"move","from":"/a","path":"/a"}]`)
	res := Apply(doc, ops)
	require.True(t, res.OK, "move with from == path should be a successful no-op, got %+v", res.Results)
	assert.Equal(t, `{"a": 1}`, compact(res.Root), "document should be unchanged")
}

func TestApplyMoveIntoSelfIsInvalid(t *testing.T) {
	doc := parseDoc(t, `{"a":{"b":1}}`)
	ops := parseDoc(t, `[{"op":"move","from":"/a","path":"/a/c"}]`)
	res := Apply(doc, ops)
	require.False(t, res.OK, "moving a container into itself should be invalid")
	assert.Equal(t, InvalidOp, res.Results[0].Outcome)
}

func TestApplyMoveRelocatesValue(t *testing.T) {
	doc := parseDoc(t, `{"a":1,"b":2}`)
	ops := parseDoc(t, `[{"op":"move","from":"/a","path":"/c"}]`)
	res := Apply(doc, ops)
	require.True(t, res.OK, "Apply() not OK: %+v", res.Results)
	obj := res.Root.ObjVal()
	assert.False(t, obj.Has("a"), "a should be gone after move")
	v, ok := obj.Get("c")
	require.True(t, ok)
	assert.Equal(t, float64(1), v.Num().Float64())
}

func TestApplyCopyDuplicatesIndependently(t *testing.T) {
	doc := parseDoc(t, `{"a":[1,2]}`)
	ops := parseDoc(t, `[{"op":"copy","from":"/a","path":"/b"}]`)
	res := Apply(doc, ops)
	require.True(t, res.OK, "Apply() not OK: %+v", res.Results)
	assert.Equal(t, `{"a": [1, 2], "b": [1, 2]}`, compact(res.Root))
}

func TestApplyTestSuccessLeavesDocumentUnchanged(t *testing.T) {
	doc := parseDoc(t, `{"a":1}`)
	before := compact(doc)
	ops := parseDoc(t, `[{"op":"test","path":"/a","value":1}]`)
	res := Apply(doc, ops)
	require.True(t, res.OK, "Apply() not OK: %+v", res.Results)
	assert.Equal(t, before, compact(res.Root), "document should not change after a successful test op")
}

func TestApplyTestFailureReportsOutcome(t *testing.T) {
	doc := parseDoc(t, `{"a":1}`)
	ops := parseDoc(t, `[{"op":"test","path":"/a","value":2}]`)
	res := Apply(doc, ops)
	require.False(t, res.OK)
	assert.Equal(t, Fail, res.Results[0].Outcome)
}

func TestApplySequenceAbortsAtFirstNonOK(t *testing.T) {
	doc := parseDoc(t, `{"a":1}`)
	ops := parseDoc(t, `[{"op":"replace","path":"/a","value":2},{"op":"test","path":"/a","value":999},{"op":"replace","path":"/a","value":3}]`)
	res := Apply(doc, ops)
	require.False(t, res.OK, "expected the sequence to abort")
	assert.Equal(t, 1, res.AbortIndex)
	require.Len(t, res.Results, 2, "expected outcomes for the 2 operations attempted")
	assert.Equal(t, `{"a": 2}`, compact(res.Root), "Root should reflect only the first successful op")
}

func TestApplyMalformedPatchArray(t *testing.T) {
	doc := parseDoc(t, `{"a":1}`)
	notArray := parseDoc(t, `{"op":"add"}`)
	res := Apply(doc, notArray)
	require.False(t, res.OK, "expected InvalidOp for a non-array patch document")
	assert.Equal(t, InvalidOp, res.Results[0].Outcome)
}

func TestApplyMalformedOpObject(t *testing.T) {
	doc := parseDoc(t, `{"a":1}`)
	ops := parseDoc(t, `[{"path":"/a","value":1}]`)
	res := Apply(doc, ops)
	require.False(t, res.OK, `expected InvalidOp for an op object missing "op"`)
	assert.Equal(t, InvalidOp, res.Results[0].Outcome)
}

func TestOutcomeString(t *testing.T) {
	cases := map[Outcome]string{OK: "ok", Fail: "fail", NoEnt: "noent", InvalidOp: "invalid"}
	for o, want := range cases {
		assert.Equal(t, want, o.String(), "Outcome(%d).String()", o)
	}
}
