package schema

import (
	"strconv"

	"github.com/kaptinlin/ujson-tools/value"
)

// unevaluatedItems/unevaluatedProperties run last (§4.7): by the time
// they run, accum already holds every index/name any sibling in-place
// or nested-instance keyword touched, including ones contributed by
// $ref/$dynamicRef/allOf/anyOf/oneOf/if-then-else and by
// prefixItems/items/contains/properties/patternProperties/additionalProperties
// on this same schema.

func evalUnevaluatedItems(s *Schema, instance value.Value, ctx *Context, accum *evalAccum) *EvalUnit {
	if s.unevaluatedItems == nil {
		return nil
	}
	arr := instance.Arr()
	var children []*EvalUnit
	var newlyEvaluated []int
	for i, item := range arr {
		if accum.items[i] {
			continue
		}
		u, _ := s.unevaluatedItems.evaluate(item, ctx.child([]string{"unevaluatedItems"}, []string{strconv.Itoa(i)}))
		children = append(children, u)
		if u.Valid {
			newlyEvaluated = append(newlyEvaluated, i)
		}
	}
	u := branchUnit(ctx.child([]string{"unevaluatedItems"}, nil), children)
	if u.Valid {
		u.Annotation = true
		u.HasAnnotation = true
		accum.mergeItemIndices(newlyEvaluated)
	}
	return u
}

func evalUnevaluatedProperties(s *Schema, instance value.Value, ctx *Context, accum *evalAccum) *EvalUnit {
	if s.unevaluatedProperties == nil {
		return nil
	}
	obj := instance.ObjVal()
	var children []*EvalUnit
	var newlyEvaluated []string
	for _, key := range obj.Keys() {
		if accum.props[key] {
			continue
		}
		val, _ := obj.Get(key)
		u, _ := s.unevaluatedProperties.evaluate(val, ctx.child([]string{"unevaluatedProperties"}, []string{key}))
		children = append(children, u)
		if u.Valid {
			newlyEvaluated = append(newlyEvaluated, key)
		}
	}
	u := branchUnit(ctx.child([]string{"unevaluatedProperties"}, nil), children)
	if u.Valid {
		u.Annotation = true
		u.HasAnnotation = true
		accum.mergeProps(newlyEvaluated)
	}
	return u
}
