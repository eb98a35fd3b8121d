package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaptinlin/ujson-tools/value"
)

func mustCompile(t *testing.T, src string) *Schema {
	t.Helper()
	s, err := New(mustParseValue(t, src))
	require.NoError(t, err, "New(%s)", src)
	return s
}

func validateOK(t *testing.T, schemaSrc, instanceSrc string) bool {
	t.Helper()
	s := mustCompile(t, schemaSrc)
	inst := mustParseValue(t, instanceSrc)
	return s.Result(inst, false).Valid
}

func TestValidateType(t *testing.T) {
	assert.True(t, validateOK(t, `{"type":"string"}`, `"hi"`), "string should satisfy type:string")
	assert.False(t, validateOK(t, `{"type":"string"}`, `1`), "number should not satisfy type:string")
}

func TestValidateTypeArray(t *testing.T) {
	assert.True(t, validateOK(t, `{"type":["string","null"]}`, `null`), "null should satisfy type:[string,null]")
}

func TestValidateEnum(t *testing.T) {
	assert.True(t, validateOK(t, `{"enum":[1,2,3]}`, `2`), "2 should be in enum [1,2,3]")
	assert.False(t, validateOK(t, `{"enum":[1,2,3]}`, `4`), "4 should not be in enum [1,2,3]")
}

func TestValidateConst(t *testing.T) {
	assert.True(t, validateOK(t, `{"const":{"a":1}}`, `{"a":1}`), "identical object should satisfy const")
	assert.False(t, validateOK(t, `{"const":{"a":1}}`, `{"a":2}`), "differing object should not satisfy const")
}

func TestValidateMultipleOf(t *testing.T) {
	assert.True(t, validateOK(t, `{"multipleOf":2}`, `4`), "4 should be a multiple of 2")
	assert.False(t, validateOK(t, `{"multipleOf":2}`, `5`), "5 should not be a multiple of 2")
}

func TestValidateBounds(t *testing.T) {
	assert.True(t, validateOK(t, `{"minimum":1,"maximum":10}`, `5`), "5 should be within [1,10]")
	assert.False(t, validateOK(t, `{"exclusiveMaximum":10}`, `10`), "10 should not satisfy exclusiveMaximum:10")
}

func TestValidatePattern(t *testing.T) {
	assert.True(t, validateOK(t, `{"pattern":"^a+$"}`, `"aaa"`), `"aaa" should match ^a+$`)
	assert.False(t, validateOK(t, `{"pattern":"^a+$"}`, `"aab"`), `"aab" should not match ^a+$`)
}

func TestValidateRequired(t *testing.T) {
	assert.True(t, validateOK(t, `{"required":["a"]}`, `{"a":1}`), "object with a should satisfy required:[a]")
	assert.False(t, validateOK(t, `{"required":["a"]}`, `{"b":1}`), "object without a should not satisfy required:[a]")
}

func TestValidateDependentRequired(t *testing.T) {
	schema := `{"dependentRequired":{"credit_card":["billing_address"]}}`
	assert.True(t, validateOK(t, schema, `{"name":"x"}`), "no credit_card means no dependency triggers")
	assert.False(t, validateOK(t, schema, `{"credit_card":1}`), "credit_card without billing_address should fail")
	assert.True(t, validateOK(t, schema, `{"credit_card":1,"billing_address":"x"}`), "credit_card with billing_address should pass")
}

func TestValidateUniqueItems(t *testing.T) {
	assert.True(t, validateOK(t, `{"uniqueItems":true}`, `[1,2,3]`), "distinct elements should satisfy uniqueItems")
	assert.False(t, validateOK(t, `{"uniqueItems":true}`, `[1,2,2]`), "duplicate elements should fail uniqueItems")
}

func TestValidateAllOf(t *testing.T) {
	schema := `{"allOf":[{"type":"number"},{"minimum":0}]}`
	assert.True(t, validateOK(t, schema, `5`), "5 should satisfy both allOf branches")
	assert.False(t, validateOK(t, schema, `-5`), "-5 should fail the minimum branch")
}

func TestValidateAnyOf(t *testing.T) {
	schema := `{"anyOf":[{"type":"string"},{"type":"number"}]}`
	assert.True(t, validateOK(t, schema, `"x"`), `"x" should satisfy anyOf via the string branch`)
	assert.False(t, validateOK(t, schema, `true`), "boolean should satisfy neither anyOf branch")
}

func TestValidateOneOfExactlyOne(t *testing.T) {
	schema := `{"oneOf":[{"multipleOf":2},{"multipleOf":3}]}`
	assert.True(t, validateOK(t, schema, `4`), "4 is a multiple of 2 only, should satisfy oneOf")
	assert.False(t, validateOK(t, schema, `6`), "6 is a multiple of both 2 and 3, oneOf should fail")
}

func TestValidateNot(t *testing.T) {
	schema := `{"not":{"type":"string"}}`
	assert.True(t, validateOK(t, schema, `1`), "number should satisfy not:{type:string}")
	assert.False(t, validateOK(t, schema, `"x"`), "string should fail not:{type:string}")
}

func TestValidateIfThenElse(t *testing.T) {
	schema := `{
		"if": {"properties":{"kind":{"const":"a"}}, "required":["kind"]},
		"then": {"required":["aOnly"]},
		"else": {"required":["bOnly"]}
	}`
	assert.True(t, validateOK(t, schema, `{"kind":"a","aOnly":1}`), "if-branch true should route to then")
	assert.False(t, validateOK(t, schema, `{"kind":"a"}`), "then branch should require aOnly")
	assert.True(t, validateOK(t, schema, `{"kind":"b","bOnly":1}`), "if-branch false should route to else")
}

func TestValidateDependentSchemas(t *testing.T) {
	schema := `{"dependentSchemas":{"a":{"required":["b"]}}}`
	assert.True(t, validateOK(t, schema, `{}`), "no a means dependentSchemas doesn't trigger")
	assert.False(t, validateOK(t, schema, `{"a":1}`), "a present without b should fail the dependent schema")
	assert.True(t, validateOK(t, schema, `{"a":1,"b":2}`), "a and b present should pass")
}

func TestValidatePropertiesAndAdditional(t *testing.T) {
	schema := `{"properties":{"a":{"type":"number"}},"additionalProperties":false}`
	assert.True(t, validateOK(t, schema, `{"a":1}`), "declared property should be allowed")
	assert.False(t, validateOK(t, schema, `{"a":1,"b":2}`), "undeclared property should be rejected by additionalProperties:false")
}

func TestValidatePatternProperties(t *testing.T) {
	schema := `{"patternProperties":{"^S_":{"type":"string"}},"additionalProperties":false}`
	assert.True(t, validateOK(t, schema, `{"S_name":"x"}`), "key matching the pattern should be covered by patternProperties")
	assert.False(t, validateOK(t, schema, `{"S_name":1}`), "value failing the pattern schema should fail")
}

func TestValidatePrefixItemsAndItems(t *testing.T) {
	schema := `{"prefixItems":[{"type":"string"}],"items":{"type":"number"}}`
	assert.True(t, validateOK(t, schema, `["x",1,2,3]`), "tuple prefix plus uniform tail should validate")
	assert.False(t, validateOK(t, schema, `["x","y"]`), "tail element failing items:number should fail")
}

func TestValidateContainsMinMax(t *testing.T) {
	schema := `{"contains":{"type":"number"},"minContains":2,"maxContains":3}`
	assert.True(t, validateOK(t, schema, `[1,2,"x"]`), "2 matching numbers should satisfy minContains:2")
	assert.False(t, validateOK(t, schema, `["x","y"]`), "0 matches should fail minContains:2")
	assert.False(t, validateOK(t, schema, `[1,2,3,4]`), "4 matches should fail maxContains:3")
}

func TestValidateUnevaluatedPropertiesWithAllOf(t *testing.T) {
	schema := `{
		"allOf": [{"properties":{"a":{"type":"number"}}}],
		"unevaluatedProperties": false
	}`
	assert.True(t, validateOK(t, schema, `{"a":1}`), "a evaluated via allOf's properties should count for unevaluatedProperties")
	assert.False(t, validateOK(t, schema, `{"a":1,"b":2}`), "b touched by nothing should be rejected by unevaluatedProperties:false")
}

func TestValidateUnevaluatedItemsWithPrefixItems(t *testing.T) {
	schema := `{"prefixItems":[{"type":"string"}],"unevaluatedItems":false}`
	assert.True(t, validateOK(t, schema, `["x"]`), "prefixItems-covered element should count toward unevaluatedItems")
	assert.False(t, validateOK(t, schema, `["x","y"]`), "tail element beyond prefixItems should be rejected by unevaluatedItems:false")
}

func TestValidateRefWithinDefs(t *testing.T) {
	schema := `{
		"$defs": {"positive": {"type":"number","minimum":0}},
		"$ref": "#/$defs/positive"
	}`
	assert.True(t, validateOK(t, schema, `5`), "5 should satisfy the referenced positive schema")
	assert.False(t, validateOK(t, schema, `-5`), "-5 should fail the referenced positive schema's minimum")
}

func TestValidateUnresolvedRefIsInvalidNotError(t *testing.T) {
	s := mustCompile(t, `{"$ref":"#/$defs/missing"}`)
	unit := s.Result(mustParseValue(t, `1`), false)
	assert.False(t, unit.Valid, "an unresolved $ref should evaluate to valid:false, not panic or error")
}

func TestValidateDynamicRefSelfRecursive(t *testing.T) {
	schema := `{
		"$id": "https://example.com/list",
		"$dynamicAnchor": "items",
		"type": "array",
		"items": {"$dynamicRef": "#items"}
	}`
	assert.True(t, validateOK(t, schema, `[[],[[]]]`), "nested empty arrays should satisfy a self-recursive $dynamicRef")
	assert.False(t, validateOK(t, schema, `[1]`), "a non-array element should fail the recursive type:array check")
}

func TestOutputUnitToValueShape(t *testing.T) {
	s := mustCompile(t, `{"type":"number"}`)
	out := s.Validate(mustParseValue(t, `1`), false)
	obj, ok := out.ObjOK()
	require.True(t, ok, "output unit must serialize as an object")

	validField, ok := obj.Get("valid")
	require.True(t, ok)
	assert.Equal(t, value.Boolean, validField.Kind())
	assert.True(t, validField.Bool(), "expected valid:true in the output unit")

	_, ok = obj.Get("instanceLocation")
	assert.True(t, ok, "output unit must carry instanceLocation")
	_, ok = obj.Get("keywordLocation")
	assert.True(t, ok, "output unit must carry keywordLocation")
}

func TestFastFailAndFullModeAgreeOnValidity(t *testing.T) {
	schema := `{"allOf":[{"type":"number"},{"minimum":0},{"maximum":100}]}`
	s := mustCompile(t, schema)
	for _, instanceSrc := range []string{"50", "-1", `"x"`} {
		inst := mustParseValue(t, instanceSrc)
		fast := s.Result(inst, true)
		full := s.Result(inst, false)
		assert.Equal(t, full.Valid, fast.Valid, "instance %s: fastFail and full mode should agree", instanceSrc)
	}
}
