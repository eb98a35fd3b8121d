package schema

import (
	"regexp"
	"strconv"

	"github.com/dlclark/regexp2"

	"github.com/kaptinlin/ujson-tools/value"
)

var anchorNameRe = regexp.MustCompile(`^[A-Za-z_][-A-Za-z0-9._]*$`)

// buildSchema walks one schema value depth-first (§4.6), threading the
// base-URI in effect and the pointer path from the overall document root
// (refPath, used to resolve "#/..." fragments and never reset). The path
// within the nearest enclosing $id resource is derived from refPath where
// it is needed (Context.viaRef).
func buildSchema(c *Compiler, parent *Schema, raw value.Value, baseURI, refPath string) (*Schema, error) {
	if b, ok := raw.BoolOK(); ok {
		return &Schema{compiler: c, parent: parent, raw: raw, boolVal: &b, baseURI: baseURI, refPath: refPath, constValue: value.NewInvalid()}, nil
	}
	if raw.Kind() != value.Object {
		return nil, newSchemaError(baseURI, refPath, errNotASchema, "schema must be an object or boolean")
	}

	obj := raw.ObjVal()
	s := &Schema{compiler: c, parent: parent, raw: raw, baseURI: baseURI, refPath: refPath, constValue: value.NewInvalid()}

	if err := s.loadCore(obj); err != nil {
		return nil, err
	}
	if err := s.loadApplicator(obj); err != nil {
		return nil, err
	}
	if err := s.loadValidation(obj); err != nil {
		return nil, err
	}
	if err := s.loadUnevaluated(obj); err != nil {
		return nil, err
	}
	return s, nil
}

// childPath builds the refPath for a child reached via keyword (and
// optional index/name segment).
func (s *Schema) childPath(segments ...string) string {
	p := s.refPath
	for _, seg := range segments {
		p += "/" + seg
	}
	return p
}

func (s *Schema) loadCore(obj *value.Obj) error {
	if v, ok := obj.Get("$schema"); ok {
		dialect, ok := v.StrOK()
		if !ok || dialect != dialectURI {
			return newSchemaError(s.baseURI, s.refPath, errUnsupportedDialect, "unsupported $schema dialect")
		}
	}

	if v, ok := obj.Get("$id"); ok {
		id, ok := v.StrOK()
		if !ok {
			return newSchemaError(s.baseURI, s.refPath, errInvalidKeywordShape, "$id must be a string")
		}
		if idHasFragment(id) {
			return newSchemaError(s.baseURI, s.refPath, errIDHasFragment, "$id must not contain a fragment")
		}
		resolved := resolveURI(s.baseURI, id)
		if _, dup := s.compiler.ids[resolved]; dup {
			return newSchemaError(s.baseURI, s.refPath, errDuplicateID, "duplicate $id: "+resolved)
		}
		s.id = resolved
		s.baseURI = resolved
		s.compiler.ids[resolved] = s
		// Children keep extending s.refPath; the path relative to this
		// new base is derived from it where needed (see Context.viaRef).
	}

	if v, ok := obj.Get("$anchor"); ok {
		name, ok := v.StrOK()
		if !ok || !anchorNameRe.MatchString(name) {
			return newSchemaError(s.baseURI, s.refPath, errMalformedAnchor, "malformed $anchor")
		}
		key := s.baseURI + "#" + name
		if _, dup := s.compiler.anchors[key]; dup {
			return newSchemaError(s.baseURI, s.refPath, errDuplicateAnchor, "duplicate $anchor: "+name)
		}
		s.anchor = name
		s.compiler.anchors[key] = s
	}

	if v, ok := obj.Get("$dynamicAnchor"); ok {
		name, ok := v.StrOK()
		if !ok || !anchorNameRe.MatchString(name) {
			return newSchemaError(s.baseURI, s.refPath, errMalformedAnchor, "malformed $dynamicAnchor")
		}
		key := s.baseURI + "#" + name
		if _, dup := s.compiler.dynamicAnchors[key]; dup {
			return newSchemaError(s.baseURI, s.refPath, errDuplicateAnchor, "duplicate $dynamicAnchor: "+name)
		}
		s.dynamicAnchor = name
		s.compiler.dynamicAnchors[key] = s
	}

	if v, ok := obj.Get("$ref"); ok {
		ref, ok := v.StrOK()
		if !ok {
			return newSchemaError(s.baseURI, s.refPath, errInvalidKeywordShape, "$ref must be a string")
		}
		s.ref = ref
	}
	if v, ok := obj.Get("$dynamicRef"); ok {
		ref, ok := v.StrOK()
		if !ok {
			return newSchemaError(s.baseURI, s.refPath, errInvalidKeywordShape, "$dynamicRef must be a string")
		}
		s.dynamicRef = ref
	}

	if v, ok := obj.Get("$defs"); ok {
		defsObj, ok := v.ObjOK()
		if !ok {
			return newSchemaError(s.baseURI, s.refPath, errInvalidKeywordShape, "$defs must be an object")
		}
		s.defs = make(map[string]*Schema)
		var err error
		defsObj.Range(func(key string, val value.Value) bool {
			var sub *Schema
			sub, err = buildSchema(s.compiler, s, val, s.baseURI, s.childPath("$defs", key))
			if err != nil {
				return false
			}
			s.defs[key] = sub
			return true
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Schema) buildList(obj *value.Obj, keyword string, requireNonEmpty bool) ([]*Schema, bool, error) {
	v, ok := obj.Get(keyword)
	if !ok {
		return nil, false, nil
	}
	arr, ok := v.ArrOK()
	if !ok {
		return nil, false, newSchemaError(s.baseURI, s.refPath, errInvalidKeywordShape, keyword+" must be an array")
	}
	if requireNonEmpty && len(arr) == 0 {
		return nil, false, newSchemaError(s.baseURI, s.refPath, errEmptyKeywordArray, keyword+" must not be empty")
	}
	out := make([]*Schema, len(arr))
	for i, item := range arr {
		sub, err := buildSchema(s.compiler, s, item, s.baseURI, s.childPath(keyword, strconv.Itoa(i)))
		if err != nil {
			return nil, false, err
		}
		out[i] = sub
	}
	return out, true, nil
}

func (s *Schema) buildOne(obj *value.Obj, keyword string) (*Schema, error) {
	v, ok := obj.Get(keyword)
	if !ok {
		return nil, nil
	}
	return buildSchema(s.compiler, s, v, s.baseURI, s.childPath(keyword))
}

func (s *Schema) buildMap(obj *value.Obj, keyword string) (*schemaMap, error) {
	v, ok := obj.Get(keyword)
	if !ok {
		return nil, nil
	}
	memberObj, ok := v.ObjOK()
	if !ok {
		return nil, newSchemaError(s.baseURI, s.refPath, errInvalidKeywordShape, keyword+" must be an object")
	}
	m := newSchemaMap()
	var err error
	memberObj.Range(func(key string, val value.Value) bool {
		var sub *Schema
		sub, err = buildSchema(s.compiler, s, val, s.baseURI, s.childPath(keyword, key))
		if err != nil {
			return false
		}
		m.set(key, sub)
		return true
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Schema) loadApplicator(obj *value.Obj) error {
	var err error
	if s.allOf, _, err = s.buildList(obj, "allOf", true); err != nil {
		return err
	}
	if s.anyOf, _, err = s.buildList(obj, "anyOf", true); err != nil {
		return err
	}
	if s.oneOf, _, err = s.buildList(obj, "oneOf", true); err != nil {
		return err
	}
	if s.prefixItems, _, err = s.buildList(obj, "prefixItems", false); err != nil {
		return err
	}
	if s.not, err = s.buildOne(obj, "not"); err != nil {
		return err
	}
	if s.ifS, err = s.buildOne(obj, "if"); err != nil {
		return err
	}
	if s.thenS, err = s.buildOne(obj, "then"); err != nil {
		return err
	}
	if s.elseS, err = s.buildOne(obj, "else"); err != nil {
		return err
	}
	if s.items, err = s.buildOne(obj, "items"); err != nil {
		return err
	}
	if s.contains, err = s.buildOne(obj, "contains"); err != nil {
		return err
	}
	if s.additionalProperties, err = s.buildOne(obj, "additionalProperties"); err != nil {
		return err
	}
	if s.propertyNames, err = s.buildOne(obj, "propertyNames"); err != nil {
		return err
	}
	if s.dependentSchemas, err = s.buildMap(obj, "dependentSchemas"); err != nil {
		return err
	}
	if s.properties, err = s.buildMap(obj, "properties"); err != nil {
		return err
	}
	if s.patternProperties, err = s.buildMap(obj, "patternProperties"); err != nil {
		return err
	}
	if s.patternProperties != nil {
		s.compiledPatternProps = make(map[string]*regexp2.Regexp, s.patternProperties.len())
		for _, ns := range s.patternProperties.order {
			re, err := regexp2.Compile(ns.name, regexp2.ECMAScript)
			if err != nil {
				return newSchemaError(s.baseURI, s.refPath, errInvalidKeywordShape, "invalid patternProperties regex: "+ns.name)
			}
			s.compiledPatternProps[ns.name] = re
		}
	}
	return nil
}

func (s *Schema) loadUnevaluated(obj *value.Obj) error {
	var err error
	if s.unevaluatedItems, err = s.buildOne(obj, "unevaluatedItems"); err != nil {
		return err
	}
	if s.unevaluatedProperties, err = s.buildOne(obj, "unevaluatedProperties"); err != nil {
		return err
	}
	return nil
}
