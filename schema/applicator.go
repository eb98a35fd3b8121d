package schema

import (
	"strconv"

	"github.com/kaptinlin/ujson-tools/value"
)

// The evaluators in this file apply to the *same* instance as their
// parent schema (allOf, anyOf, oneOf, not, if/then/else,
// dependentSchemas): a successful one's annotations belong to the
// parent and are merged via the returned accum. evaluate.go does that
// merge; these functions only build the child unit and, when it
// succeeds, hand back the accum to merge.

func evalAllOf(s *Schema, instance value.Value, ctx *Context) (*EvalUnit, *evalAccum) {
	if len(s.allOf) == 0 {
		return nil, nil
	}
	var children []*EvalUnit
	merged := newEvalAccum()
	for i, sub := range s.allOf {
		u, a := sub.evaluate(instance, ctx.child([]string{"allOf", strconv.Itoa(i)}, nil))
		children = append(children, u)
		if u.Valid {
			merged.mergeFrom(a)
		} else if ctx.FastFail {
			break
		}
	}
	return branchUnit(ctx.child([]string{"allOf"}, nil), children), merged
}

func evalAnyOf(s *Schema, instance value.Value, ctx *Context) (*EvalUnit, *evalAccum) {
	if len(s.anyOf) == 0 {
		return nil, nil
	}
	var children []*EvalUnit
	merged := newEvalAccum()
	anyValid := false
	for i, sub := range s.anyOf {
		u, a := sub.evaluate(instance, ctx.child([]string{"anyOf", strconv.Itoa(i)}, nil))
		children = append(children, u)
		if u.Valid {
			anyValid = true
			merged.mergeFrom(a)
			if ctx.FastFail {
				break
			}
		}
	}
	u := branchUnit(ctx.child([]string{"anyOf"}, nil), children)
	u.Valid = anyValid
	if !anyValid {
		return u, nil
	}
	return u, merged
}

func evalOneOf(s *Schema, instance value.Value, ctx *Context) (*EvalUnit, *evalAccum) {
	if len(s.oneOf) == 0 {
		return nil, nil
	}
	var children []*EvalUnit
	var winnerAccum *evalAccum
	validCount := 0
	for i, sub := range s.oneOf {
		u, a := sub.evaluate(instance, ctx.child([]string{"oneOf", strconv.Itoa(i)}, nil))
		children = append(children, u)
		if u.Valid {
			validCount++
			winnerAccum = a
			if ctx.FastFail && validCount > 1 {
				break
			}
		}
	}
	branch := branchUnit(ctx.child([]string{"oneOf"}, nil), children)
	if validCount == 1 {
		branch.Valid = true
		return branch, winnerAccum
	}
	branch.Valid = false
	return branch, nil
}

func evalNot(s *Schema, instance value.Value, ctx *Context) (*EvalUnit, *evalAccum) {
	if s.not == nil {
		return nil, nil
	}
	sub, _ := s.not.evaluate(instance, ctx.child([]string{"not"}, nil))
	u := unitFor(ctx.child([]string{"not"}, nil), !sub.Valid)
	u.Children = []*EvalUnit{sub}
	if sub.Valid {
		u.HasError = true
		u.ErrorMessage = "instance must not validate against the \"not\" schema"
	}
	return u, nil
}

func evalIfThenElse(s *Schema, instance value.Value, ctx *Context) (*EvalUnit, *evalAccum) {
	if s.ifS == nil {
		return nil, nil
	}
	ifUnit, ifAccum := s.ifS.evaluate(instance, ctx.child([]string{"if"}, nil))

	var branchSchema *Schema
	var branchKeyword string
	if ifUnit.Valid {
		branchSchema, branchKeyword = s.thenS, "then"
	} else {
		branchSchema, branchKeyword = s.elseS, "else"
	}
	if branchSchema == nil {
		if ifUnit.Valid {
			return nil, ifAccum
		}
		return nil, nil
	}

	branchUnit2, branchAccum := branchSchema.evaluate(instance, ctx.child([]string{branchKeyword}, nil))
	merged := newEvalAccum()
	if ifUnit.Valid {
		merged.mergeFrom(ifAccum)
	}
	merged.mergeFrom(branchAccum)
	return branchUnit2, merged
}

func evalDependentSchemas(s *Schema, instance value.Value, ctx *Context) (*EvalUnit, *evalAccum) {
	if s.dependentSchemas == nil || s.dependentSchemas.len() == 0 || instance.Kind() != value.Object {
		return nil, nil
	}
	obj := instance.ObjVal()
	var children []*EvalUnit
	merged := newEvalAccum()
	for _, ns := range s.dependentSchemas.order {
		if !obj.Has(ns.name) {
			continue
		}
		u, a := ns.sub.evaluate(instance, ctx.child([]string{"dependentSchemas", ns.name}, nil))
		children = append(children, u)
		if u.Valid {
			merged.mergeFrom(a)
		} else if ctx.FastFail {
			break
		}
	}
	if len(children) == 0 {
		return nil, nil
	}
	return branchUnit(ctx.child([]string{"dependentSchemas"}, nil), children), merged
}

// The evaluators below apply to a *nested* instance (a property value,
// an element): their own annotation semantics (not a merged child
// accum) are what feeds the parent's accum, via the accum parameter.

func evalProperties(s *Schema, instance value.Value, ctx *Context, accum *evalAccum) *EvalUnit {
	if s.properties == nil || s.properties.len() == 0 {
		return nil
	}
	obj := instance.ObjVal()
	var children []*EvalUnit
	var evaluated []string
	for _, ns := range s.properties.order {
		val, ok := obj.Get(ns.name)
		if !ok {
			continue
		}
		u, _ := ns.sub.evaluate(val, ctx.child([]string{"properties", ns.name}, []string{ns.name}))
		children = append(children, u)
		if u.Valid {
			evaluated = append(evaluated, ns.name)
		}
	}
	u := branchUnit(ctx.child([]string{"properties"}, nil), children)
	if u.Valid && len(evaluated) > 0 {
		u.Annotation = evaluated
		u.HasAnnotation = true
		accum.mergeProps(evaluated)
	}
	return u
}

func evalPatternProperties(s *Schema, instance value.Value, ctx *Context, accum *evalAccum) *EvalUnit {
	if s.patternProperties == nil || s.patternProperties.len() == 0 {
		return nil
	}
	obj := instance.ObjVal()
	var children []*EvalUnit
	matchedNames := map[string]bool{}
	for _, key := range obj.Keys() {
		val, _ := obj.Get(key)
		keyOK := true
		matchedAny := false
		for _, ns := range s.patternProperties.order {
			re := s.compiledPatternProps[ns.name]
			if re == nil {
				continue
			}
			m, err := re.MatchString(key)
			if err != nil || !m {
				continue
			}
			matchedAny = true
			u, _ := ns.sub.evaluate(val, ctx.child([]string{"patternProperties", ns.name}, []string{key}))
			children = append(children, u)
			if !u.Valid {
				keyOK = false
			}
		}
		if matchedAny && keyOK {
			matchedNames[key] = true
		}
	}
	u := branchUnit(ctx.child([]string{"patternProperties"}, nil), children)
	if u.Valid && len(matchedNames) > 0 {
		names := make([]string, 0, len(matchedNames))
		for n := range matchedNames {
			names = append(names, n)
		}
		u.Annotation = names
		u.HasAnnotation = true
		accum.mergeProps(names)
	}
	return u
}

func evalPropertyNames(s *Schema, instance value.Value, ctx *Context, _ *evalAccum) *EvalUnit {
	if s.propertyNames == nil {
		return nil
	}
	obj := instance.ObjVal()
	var children []*EvalUnit
	for _, key := range obj.Keys() {
		u, _ := s.propertyNames.evaluate(value.NewString(key), ctx.child([]string{"propertyNames"}, nil))
		children = append(children, u)
	}
	return branchUnit(ctx.child([]string{"propertyNames"}, nil), children)
}

func evalAdditionalProperties(s *Schema, instance value.Value, ctx *Context, accum *evalAccum) *EvalUnit {
	if s.additionalProperties == nil {
		return nil
	}
	obj := instance.ObjVal()
	var children []*EvalUnit
	var evaluated []string
	for _, key := range obj.Keys() {
		if accum.props[key] {
			continue
		}
		val, _ := obj.Get(key)
		u, _ := s.additionalProperties.evaluate(val, ctx.child([]string{"additionalProperties"}, []string{key}))
		children = append(children, u)
		if u.Valid {
			evaluated = append(evaluated, key)
		}
	}
	u := branchUnit(ctx.child([]string{"additionalProperties"}, nil), children)
	if u.Valid && len(evaluated) > 0 {
		u.Annotation = true
		u.HasAnnotation = true
		accum.mergeProps(evaluated)
	}
	return u
}

func evalPrefixItems(s *Schema, instance value.Value, ctx *Context, accum *evalAccum) *EvalUnit {
	if len(s.prefixItems) == 0 {
		return nil
	}
	arr := instance.Arr()
	n := len(s.prefixItems)
	if n > len(arr) {
		n = len(arr)
	}
	var children []*EvalUnit
	for i := 0; i < n; i++ {
		u, _ := s.prefixItems[i].evaluate(arr[i], ctx.child([]string{"prefixItems", strconv.Itoa(i)}, []string{strconv.Itoa(i)}))
		children = append(children, u)
	}
	u := branchUnit(ctx.child([]string{"prefixItems"}, nil), children)
	if u.Valid {
		if n == len(arr) {
			u.Annotation = true
		} else {
			u.Annotation = n
		}
		u.HasAnnotation = true
		accum.mergeItemsUpTo(n)
	}
	return u
}

func evalItems(s *Schema, instance value.Value, ctx *Context, accum *evalAccum) *EvalUnit {
	if s.items == nil {
		return nil
	}
	arr := instance.Arr()
	start := 0
	for start < len(arr) && accum.items[start] {
		start++
	}
	var children []*EvalUnit
	for i := start; i < len(arr); i++ {
		u, _ := s.items.evaluate(arr[i], ctx.child([]string{"items"}, []string{strconv.Itoa(i)}))
		children = append(children, u)
	}
	u := branchUnit(ctx.child([]string{"items"}, nil), children)
	if u.Valid && start < len(arr) {
		u.Annotation = true
		u.HasAnnotation = true
		accum.mergeItemsUpTo(len(arr))
	}
	return u
}

func evalContains(s *Schema, instance value.Value, ctx *Context, accum *evalAccum) *EvalUnit {
	if s.contains == nil {
		return nil
	}
	arr := instance.Arr()
	var matched []int
	for i, item := range arr {
		u, _ := s.contains.evaluate(item, ctx.child([]string{"contains"}, []string{strconv.Itoa(i)}))
		if u.Valid {
			matched = append(matched, i)
		}
	}
	effectiveMin := 1
	if s.minContains != nil {
		effectiveMin = *s.minContains
	}
	valid := len(matched) >= effectiveMin
	if valid && s.maxContains != nil && len(matched) > *s.maxContains {
		valid = false
	}
	ctxHere := ctx.child([]string{"contains"}, nil)
	u := unitFor(ctxHere, valid)
	if valid {
		if len(matched) == len(arr) && len(arr) > 0 {
			u.Annotation = true
		} else {
			u.Annotation = matched
		}
		u.HasAnnotation = true
		accum.mergeItemIndices(matched)
	} else {
		u.HasError = true
		u.ErrorMessage = "array does not contain the required number of matching items"
	}
	return u
}
