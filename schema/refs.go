package schema

import (
	"strings"

	"github.com/kaptinlin/jsonpointer"
)

// resolveRef resolves a $ref/$dynamicRef's text against s's base URI
// using the compiler's ids/anchors/documents indexes (§4.6/§4.7). It
// does not apply the dynamic-scope override; callers wanting
// $dynamicRef semantics do that afterward using the returned anchor
// name.
func (s *Schema) resolveRef(ref string) (target *Schema, anchorName string, ok bool) {
	full := resolveURI(s.baseURI, ref)
	base, frag := splitFragment(full)

	if frag == "" {
		if t, found := s.compiler.documents[base]; found {
			return t, "", true
		}
		if t, found := s.compiler.ids[base]; found {
			return t, "", true
		}
		return nil, "", false
	}

	if strings.HasPrefix(frag, "/") {
		root, found := s.compiler.documents[base]
		if !found {
			root, found = s.compiler.ids[base]
		}
		if !found {
			return nil, "", false
		}
		t, found := navigateSchemaPointer(root, frag)
		return t, "", found
	}

	if t, found := s.compiler.anchors[base+"#"+frag]; found {
		return t, frag, true
	}
	if t, found := s.compiler.dynamicAnchors[base+"#"+frag]; found {
		return t, frag, true
	}
	return nil, frag, false
}

// resolveDynamicRef implements $dynamicRef's extra rule: once the
// reference resolves like a plain $ref, if the target names a dynamic
// anchor, the outermost matching frame in ctx's dynamic scope wins
// instead.
func (s *Schema) resolveDynamicRef(ref string, ctx *Context) (*Schema, bool) {
	target, anchor, ok := s.resolveRef(ref)
	if !ok {
		return nil, false
	}
	if anchor == "" || target.dynamicAnchor != anchor {
		return target, true
	}
	if dyn := ctx.Scope.lookupDynamicAnchor(anchor); dyn != nil {
		return dyn, true
	}
	return target, true
}

// navigateSchemaPointer walks the compiled Schema tree (not the raw
// value.Value) by JSON pointer, following the same keyword-aware
// descent a schema document structurally permits. Token un-escaping is
// delegated to jsonpointer.Parse, the same library the teacher's own
// resolveJSONPointer uses.
func navigateSchemaPointer(root *Schema, pointer string) (*Schema, bool) {
	if pointer == "" || pointer == "/" {
		return root, true
	}
	tokens := jsonpointer.Parse(pointer)
	cur := root
	prev := ""
	for _, tok := range tokens {
		next, found := stepSchemaPointer(cur, prev, tok)
		if !found {
			return nil, false
		}
		cur = next
		prev = tok
	}
	return cur, true
}

func stepSchemaPointer(cur *Schema, prevSegment, seg string) (*Schema, bool) {
	switch prevSegment {
	case "properties":
		if cur.properties != nil {
			return cur.properties.get(seg)
		}
	case "patternProperties":
		if cur.patternProperties != nil {
			return cur.patternProperties.get(seg)
		}
	case "dependentSchemas":
		if cur.dependentSchemas != nil {
			return cur.dependentSchemas.get(seg)
		}
	case "$defs", "definitions":
		if cur.defs != nil {
			sub, ok := cur.defs[seg]
			return sub, ok
		}
	case "prefixItems", "allOf", "anyOf", "oneOf":
		idx, err := parseArrayIndex(seg)
		if err != nil {
			return nil, false
		}
		list := map[string][]*Schema{"prefixItems": cur.prefixItems, "allOf": cur.allOf, "anyOf": cur.anyOf, "oneOf": cur.oneOf}[prevSegment]
		if idx < 0 || idx >= len(list) {
			return nil, false
		}
		return list[idx], true
	}
	// Keywords with a single subschema value are addressed directly by
	// name, regardless of prevSegment (they're leaves of the walk, not
	// containers keyed by a further segment).
	switch seg {
	case "properties", "patternProperties", "dependentSchemas", "$defs", "definitions",
		"prefixItems", "allOf", "anyOf", "oneOf":
		// Container keywords stay on cur; the next segment picks the
		// member or index (handled by the prevSegment switch above).
		return cur, true
	case "items":
		if cur.items != nil {
			return cur.items, true
		}
	case "contains":
		if cur.contains != nil {
			return cur.contains, true
		}
	case "additionalProperties":
		if cur.additionalProperties != nil {
			return cur.additionalProperties, true
		}
	case "propertyNames":
		if cur.propertyNames != nil {
			return cur.propertyNames, true
		}
	case "not":
		if cur.not != nil {
			return cur.not, true
		}
	case "if":
		if cur.ifS != nil {
			return cur.ifS, true
		}
	case "then":
		if cur.thenS != nil {
			return cur.thenS, true
		}
	case "else":
		if cur.elseS != nil {
			return cur.elseS, true
		}
	case "unevaluatedItems":
		if cur.unevaluatedItems != nil {
			return cur.unevaluatedItems, true
		}
	case "unevaluatedProperties":
		if cur.unevaluatedProperties != nil {
			return cur.unevaluatedProperties, true
		}
	}
	return nil, false
}

func parseArrayIndex(s string) (int, error) {
	n := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, errMalformedIndex
		}
		n = n*10 + int(c-'0')
	}
	if s == "" {
		return 0, errMalformedIndex
	}
	return n, nil
}

var errMalformedIndex = &indexError{}

type indexError struct{}

func (e *indexError) Error() string { return "schema: malformed array index in pointer" }
