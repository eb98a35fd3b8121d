package schema

import "github.com/kaptinlin/ujson-tools/value"

// Validate runs s against instance and renders the result as an output
// unit value (§6.1's Schema::validate).
func (s *Schema) Validate(instance value.Value, fastFail bool) value.Value {
	ctx := rootContext(fastFail, s.compiler.refCallback)
	unit, _ := s.evaluate(instance, ctx)
	return unit.ToValue()
}

// Result runs s against instance and returns the Go-native output unit,
// for callers that want structured access without round-tripping
// through value.Value.
func (s *Schema) Result(instance value.Value, fastFail bool) *EvalUnit {
	ctx := rootContext(fastFail, s.compiler.refCallback)
	unit, _ := s.evaluate(instance, ctx)
	return unit
}

func (s *Schema) evaluate(instance value.Value, ctx *Context) (*EvalUnit, *evalAccum) {
	if s.boolVal != nil {
		if *s.boolVal {
			return validUnit(ctx, nil), nil
		}
		return invalidUnit(ctx, "schema is `false`"), nil
	}

	if ctx.BaseURI != s.baseURI {
		next := *ctx
		next.BaseURI = s.baseURI
		ctx = &next
	}
	if n := len(ctx.Scope.schemas); n == 0 || ctx.Scope.schemas[n-1] != s {
		next := *ctx
		next.Scope = ctx.Scope.push(s)
		ctx = &next
	}

	accum := newEvalAccum()
	var children []*EvalUnit
	failed := false

	addChild := func(u *EvalUnit, childAccum *evalAccum, inPlace bool) bool {
		if u == nil {
			return true
		}
		children = append(children, u)
		if u.Valid && inPlace {
			accum.mergeFrom(childAccum)
		}
		if !u.Valid {
			failed = true
		}
		return u.Valid || !ctx.FastFail
	}

	if s.ref != "" {
		u, a := s.evaluateStaticRef(instance, ctx)
		if !addChild(u, a, true) {
			return branchUnit(ctx, children), accum
		}
	}
	if s.dynamicRef != "" {
		u, a := s.evaluateDynamicRef(instance, ctx)
		if !addChild(u, a, true) {
			return branchUnit(ctx, children), accum
		}
	}

	for _, fn := range []func(*Schema, value.Value, *Context) (*EvalUnit, *evalAccum){
		evalAllOf, evalAnyOf, evalOneOf, evalNot, evalIfThenElse, evalDependentSchemas,
	} {
		u, a := fn(s, instance, ctx)
		if !addChild(u, a, true) {
			return branchUnit(ctx, children), accum
		}
	}

	if instance.Kind() == value.Object {
		for _, fn := range []func(*Schema, value.Value, *Context, *evalAccum) *EvalUnit{
			evalProperties, evalPatternProperties, evalPropertyNames,
		} {
			u := fn(s, instance, ctx, accum)
			if !addChild(u, nil, false) {
				return branchUnit(ctx, children), accum
			}
		}
	}
	if instance.Kind() == value.Array {
		for _, fn := range []func(*Schema, value.Value, *Context, *evalAccum) *EvalUnit{
			evalPrefixItems, evalContains,
		} {
			u := fn(s, instance, ctx, accum)
			if !addChild(u, nil, false) {
				return branchUnit(ctx, children), accum
			}
		}
	}

	for _, fn := range validationEvaluators {
		u := fn(s, instance, ctx)
		if !addChild(u, nil, false) {
			return branchUnit(ctx, children), accum
		}
	}

	if instance.Kind() == value.Array {
		if u := evalItems(s, instance, ctx, accum); !addChild(u, nil, false) {
			return branchUnit(ctx, children), accum
		}
	}
	if instance.Kind() == value.Object {
		if u := evalAdditionalProperties(s, instance, ctx, accum); !addChild(u, nil, false) {
			return branchUnit(ctx, children), accum
		}
	}

	if instance.Kind() == value.Array {
		if u := evalUnevaluatedItems(s, instance, ctx, accum); !addChild(u, nil, false) {
			return branchUnit(ctx, children), accum
		}
	}
	if instance.Kind() == value.Object {
		if u := evalUnevaluatedProperties(s, instance, ctx, accum); !addChild(u, nil, false) {
			return branchUnit(ctx, children), accum
		}
	}

	_ = failed
	return branchUnit(ctx, children), accum
}

func (s *Schema) evaluateStaticRef(instance value.Value, ctx *Context) (*EvalUnit, *evalAccum) {
	target, _, ok := s.resolveRef(s.ref)
	if !ok && ctx.RefCallback != nil && ctx.RefCallback(s, s.baseURI, s.ref) {
		target, _, ok = s.resolveRef(s.ref)
	}
	if !ok {
		return invalidUnit(ctx.child([]string{"$ref"}, nil), "unresolved $ref: "+s.ref), nil
	}
	sub := ctx.viaRef("$ref", target)
	return target.evaluate(instance, sub)
}

func (s *Schema) evaluateDynamicRef(instance value.Value, ctx *Context) (*EvalUnit, *evalAccum) {
	target, ok := s.resolveDynamicRef(s.dynamicRef, ctx)
	if !ok && ctx.RefCallback != nil && ctx.RefCallback(s, s.baseURI, s.dynamicRef) {
		target, ok = s.resolveDynamicRef(s.dynamicRef, ctx)
	}
	if !ok {
		return invalidUnit(ctx.child([]string{"$dynamicRef"}, nil), "unresolved $dynamicRef: "+s.dynamicRef), nil
	}
	sub := ctx.viaRef("$dynamicRef", target)
	return target.evaluate(instance, sub)
}
