package schema

import (
	"unicode/utf8"

	"github.com/kaptinlin/ujson-tools/value"
)

// validationEvaluators lists every Validation-vocabulary keyword
// evaluator, in the order evaluate.go runs them. Each returns nil when
// its keyword is absent or inapplicable to the instance's kind.
var validationEvaluators = []func(*Schema, value.Value, *Context) *EvalUnit{
	evalType,
	evalEnum,
	evalConst,
	evalMultipleOf,
	evalMaximum,
	evalExclusiveMaximum,
	evalMinimum,
	evalExclusiveMinimum,
	evalMaxLength,
	evalMinLength,
	evalPattern,
	evalMaxItems,
	evalMinItems,
	evalUniqueItems,
	evalContainsCount,
	evalMaxProperties,
	evalMinProperties,
	evalRequired,
	evalDependentRequired,
}

func typeMatches(name string, instance value.Value) bool {
	switch name {
	case "null":
		return instance.Kind() == value.Null
	case "boolean":
		return instance.Kind() == value.Boolean
	case "string":
		return instance.Kind() == value.String
	case "number":
		return instance.Kind() == value.Number
	case "integer":
		return instance.Kind() == value.Number && instance.Num().IsInteger()
	case "array":
		return instance.Kind() == value.Array
	case "object":
		return instance.Kind() == value.Object
	}
	return false
}

func evalType(s *Schema, instance value.Value, ctx *Context) *EvalUnit {
	if len(s.typeNames) == 0 {
		return nil
	}
	for _, t := range s.typeNames {
		if typeMatches(t, instance) {
			return validUnit(ctx.child([]string{"type"}, nil), nil)
		}
	}
	return invalidUnitCoded(ctx.child([]string{"type"}, nil), "instance type does not match \"type\"", "type_mismatch", map[string]any{
		"expected": s.typeNames,
		"actual":   instance.Kind().String(),
	})
}

func evalEnum(s *Schema, instance value.Value, ctx *Context) *EvalUnit {
	if s.enumValues == nil {
		return nil
	}
	for _, v := range s.enumValues {
		if value.Equal(v, instance) {
			return validUnit(ctx.child([]string{"enum"}, nil), nil)
		}
	}
	return invalidUnitCoded(ctx.child([]string{"enum"}, nil), "instance does not match any value in \"enum\"", "value_not_in_enum", nil)
}

func evalConst(s *Schema, instance value.Value, ctx *Context) *EvalUnit {
	if !s.hasConst {
		return nil
	}
	if value.Equal(s.constValue, instance) {
		return validUnit(ctx.child([]string{"const"}, nil), nil)
	}
	return invalidUnit(ctx.child([]string{"const"}, nil), "instance does not equal \"const\"")
}

func evalMultipleOf(s *Schema, instance value.Value, ctx *Context) *EvalUnit {
	if s.multipleOf == nil || instance.Kind() != value.Number {
		return nil
	}
	if instance.Num().IsMultipleOf(s.multipleOf) {
		return validUnit(ctx.child([]string{"multipleOf"}, nil), nil)
	}
	return invalidUnitCoded(ctx.child([]string{"multipleOf"}, nil), "instance is not a multiple of \"multipleOf\"", "not_multiple_of", map[string]any{
		"multiple_of": s.multipleOf.Float64(),
	})
}

func evalMaximum(s *Schema, instance value.Value, ctx *Context) *EvalUnit {
	if s.maximum == nil || instance.Kind() != value.Number {
		return nil
	}
	if instance.Num().Cmp(s.maximum) <= 0 {
		return validUnit(ctx.child([]string{"maximum"}, nil), nil)
	}
	return invalidUnitCoded(ctx.child([]string{"maximum"}, nil), "instance exceeds \"maximum\"", "value_above_maximum", map[string]any{
		"value":   instance.Num().Float64(),
		"maximum": s.maximum.Float64(),
	})
}

func evalExclusiveMaximum(s *Schema, instance value.Value, ctx *Context) *EvalUnit {
	if s.exclusiveMaximum == nil || instance.Kind() != value.Number {
		return nil
	}
	if instance.Num().Cmp(s.exclusiveMaximum) < 0 {
		return validUnit(ctx.child([]string{"exclusiveMaximum"}, nil), nil)
	}
	return invalidUnitCoded(ctx.child([]string{"exclusiveMaximum"}, nil), "instance is not less than \"exclusiveMaximum\"", "exclusive_maximum_mismatch", map[string]any{
		"value":             instance.Num().Float64(),
		"exclusive_maximum": s.exclusiveMaximum.Float64(),
	})
}

func evalMinimum(s *Schema, instance value.Value, ctx *Context) *EvalUnit {
	if s.minimum == nil || instance.Kind() != value.Number {
		return nil
	}
	if instance.Num().Cmp(s.minimum) >= 0 {
		return validUnit(ctx.child([]string{"minimum"}, nil), nil)
	}
	return invalidUnitCoded(ctx.child([]string{"minimum"}, nil), "instance is below \"minimum\"", "value_below_minimum", map[string]any{
		"value":   instance.Num().Float64(),
		"minimum": s.minimum.Float64(),
	})
}

func evalExclusiveMinimum(s *Schema, instance value.Value, ctx *Context) *EvalUnit {
	if s.exclusiveMinimum == nil || instance.Kind() != value.Number {
		return nil
	}
	if instance.Num().Cmp(s.exclusiveMinimum) > 0 {
		return validUnit(ctx.child([]string{"exclusiveMinimum"}, nil), nil)
	}
	return invalidUnitCoded(ctx.child([]string{"exclusiveMinimum"}, nil), "instance is not greater than \"exclusiveMinimum\"", "exclusive_minimum_mismatch", map[string]any{
		"value":             instance.Num().Float64(),
		"exclusive_minimum": s.exclusiveMinimum.Float64(),
	})
}

func evalMaxLength(s *Schema, instance value.Value, ctx *Context) *EvalUnit {
	if s.maxLength == nil || instance.Kind() != value.String {
		return nil
	}
	if utf8.RuneCountInString(instance.Str()) <= *s.maxLength {
		return validUnit(ctx.child([]string{"maxLength"}, nil), nil)
	}
	return invalidUnitCoded(ctx.child([]string{"maxLength"}, nil), "string is longer than \"maxLength\"", "string_too_long", map[string]any{
		"max_length": *s.maxLength,
	})
}

func evalMinLength(s *Schema, instance value.Value, ctx *Context) *EvalUnit {
	if s.minLength == nil || instance.Kind() != value.String {
		return nil
	}
	if utf8.RuneCountInString(instance.Str()) >= *s.minLength {
		return validUnit(ctx.child([]string{"minLength"}, nil), nil)
	}
	return invalidUnitCoded(ctx.child([]string{"minLength"}, nil), "string is shorter than \"minLength\"", "string_too_short", map[string]any{
		"min_length": *s.minLength,
	})
}

func evalPattern(s *Schema, instance value.Value, ctx *Context) *EvalUnit {
	if s.compiledPattern == nil || instance.Kind() != value.String {
		return nil
	}
	m, err := s.compiledPattern.MatchString(instance.Str())
	if err == nil && m {
		return validUnit(ctx.child([]string{"pattern"}, nil), nil)
	}
	return invalidUnitCoded(ctx.child([]string{"pattern"}, nil), "string does not match \"pattern\"", "pattern_mismatch", map[string]any{
		"pattern": s.pattern,
	})
}

func evalMaxItems(s *Schema, instance value.Value, ctx *Context) *EvalUnit {
	if s.maxItems == nil || instance.Kind() != value.Array {
		return nil
	}
	if instance.Len() <= *s.maxItems {
		return validUnit(ctx.child([]string{"maxItems"}, nil), nil)
	}
	return invalidUnitCoded(ctx.child([]string{"maxItems"}, nil), "array has more items than \"maxItems\"", "items_too_long", map[string]any{
		"max_items": *s.maxItems,
	})
}

func evalMinItems(s *Schema, instance value.Value, ctx *Context) *EvalUnit {
	if s.minItems == nil || instance.Kind() != value.Array {
		return nil
	}
	if instance.Len() >= *s.minItems {
		return validUnit(ctx.child([]string{"minItems"}, nil), nil)
	}
	return invalidUnitCoded(ctx.child([]string{"minItems"}, nil), "array has fewer items than \"minItems\"", "items_too_short", map[string]any{
		"min_items": *s.minItems,
	})
}

func evalUniqueItems(s *Schema, instance value.Value, ctx *Context) *EvalUnit {
	if !s.uniqueItems || instance.Kind() != value.Array {
		return nil
	}
	arr := instance.Arr()
	for i := 0; i < len(arr); i++ {
		for j := i + 1; j < len(arr); j++ {
			if value.Equal(arr[i], arr[j]) {
				return invalidUnit(ctx.child([]string{"uniqueItems"}, nil), "array items are not unique")
			}
		}
	}
	return validUnit(ctx.child([]string{"uniqueItems"}, nil), nil)
}

// evalContainsCount re-applies minContains/maxContains as pass/fail
// leaves once evalContains (in the applicator pass) has already
// computed the match count; it reruns contains rather than threading
// the count through, since these keywords "have effect only when
// contains is also present" and must still report their own
// keywordLocation on failure.
func evalContainsCount(s *Schema, instance value.Value, ctx *Context) *EvalUnit {
	if s.contains == nil || instance.Kind() != value.Array || (s.minContains == nil && s.maxContains == nil) {
		return nil
	}
	arr := instance.Arr()
	count := 0
	for _, item := range arr {
		u, _ := s.contains.evaluate(item, ctx)
		if u.Valid {
			count++
		}
	}
	if s.minContains != nil && count < *s.minContains {
		return invalidUnit(ctx.child([]string{"minContains"}, nil), "array does not contain enough matching items for \"minContains\"")
	}
	if s.maxContains != nil && count > *s.maxContains {
		return invalidUnit(ctx.child([]string{"maxContains"}, nil), "array contains more matching items than \"maxContains\" allows")
	}
	return nil
}

func evalMaxProperties(s *Schema, instance value.Value, ctx *Context) *EvalUnit {
	if s.maxProperties == nil || instance.Kind() != value.Object {
		return nil
	}
	if len(instance.ObjVal().Keys()) <= *s.maxProperties {
		return validUnit(ctx.child([]string{"maxProperties"}, nil), nil)
	}
	return invalidUnitCoded(ctx.child([]string{"maxProperties"}, nil), "object has more properties than \"maxProperties\"", "too_many_properties", map[string]any{
		"max_properties": *s.maxProperties,
	})
}

func evalMinProperties(s *Schema, instance value.Value, ctx *Context) *EvalUnit {
	if s.minProperties == nil || instance.Kind() != value.Object {
		return nil
	}
	if len(instance.ObjVal().Keys()) >= *s.minProperties {
		return validUnit(ctx.child([]string{"minProperties"}, nil), nil)
	}
	return invalidUnitCoded(ctx.child([]string{"minProperties"}, nil), "object has fewer properties than \"minProperties\"", "too_few_properties", map[string]any{
		"min_properties": *s.minProperties,
	})
}

func evalRequired(s *Schema, instance value.Value, ctx *Context) *EvalUnit {
	if len(s.required) == 0 || instance.Kind() != value.Object {
		return nil
	}
	obj := instance.ObjVal()
	for _, name := range s.required {
		if !obj.Has(name) {
			return invalidUnitCoded(ctx.child([]string{"required"}, nil), "missing required property \""+name+"\"", "required_property_missing", map[string]any{
				"property": name,
			})
		}
	}
	return validUnit(ctx.child([]string{"required"}, nil), nil)
}

func evalDependentRequired(s *Schema, instance value.Value, ctx *Context) *EvalUnit {
	if len(s.dependentRequired) == 0 || instance.Kind() != value.Object {
		return nil
	}
	obj := instance.ObjVal()
	for trigger, names := range s.dependentRequired {
		if !obj.Has(trigger) {
			continue
		}
		for _, name := range names {
			if !obj.Has(name) {
				return invalidUnitCoded(ctx.child([]string{"dependentRequired"}, nil), "missing property \""+name+"\" required by \""+trigger+"\"", "dependent_property_required", map[string]any{
					"property": name,
					"trigger":  trigger,
				})
			}
		}
	}
	return validUnit(ctx.child([]string{"dependentRequired"}, nil), nil)
}
