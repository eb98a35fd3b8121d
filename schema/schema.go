// Package schema implements a JSON Schema 2020-12 loader and evaluator
// over a value.Value tree (§3.4, §4.6, §4.7).
package schema

import (
	"github.com/dlclark/regexp2"

	"github.com/kaptinlin/ujson-tools/value"
)

// InvalidRefCallback is invoked when a $ref/$dynamicRef cannot be
// resolved. It receives the schema that held the reference, the base
// URI in effect, and the raw reference text; returning true means the
// callback loaded a schema that should rescue the reference (the
// evaluator retries resolution once), false means give up.
type InvalidRefCallback func(s *Schema, baseURI, ref string) bool

// Compiler is the shared state behind one reference graph: every Schema
// produced by New or AddReferenced from the same starting call shares a
// *Compiler, so a $ref anywhere in the graph can find an anchor defined
// in any other part of it.
type Compiler struct {
	ids            map[string]*Schema // absolute $id (fragment-free) -> subtree
	anchors        map[string]*Schema // "base-uri#name" -> subtree
	dynamicAnchors map[string]*Schema // "base-uri#name" -> subtree
	idAliases      map[string]string  // alias -> canonical absolute id
	documents      map[string]*Schema // canonical document base-uri -> its root Schema
	refCallback    InvalidRefCallback
}

func newCompiler() *Compiler {
	return &Compiler{
		ids:            make(map[string]*Schema),
		anchors:        make(map[string]*Schema),
		dynamicAnchors: make(map[string]*Schema),
		idAliases:      make(map[string]string),
		documents:      make(map[string]*Schema),
	}
}

// Schema is a compiled 2020-12 schema: the original value.Value plus
// resolved keyword children and the bookkeeping the evaluator needs to
// build an output unit (§3.4).
type Schema struct {
	compiler *Compiler
	parent   *Schema

	raw     value.Value
	boolVal *bool // non-nil when this subschema is literally true/false

	id            string // this subschema's own absolute $id, if any
	baseURI       string // base URI in effect here (own $id or inherited)
	anchor        string
	dynamicAnchor string

	// location bookkeeping, relative to this Schema's document root
	refPath string // JSON-pointer-shaped path from the document root to this subschema

	// core
	ref                string
	dynamicRef         string
	resolvedRef        *Schema
	resolvedDynamicRef *Schema
	defs               map[string]*Schema

	// applicator
	allOf                 []*Schema
	anyOf                 []*Schema
	oneOf                 []*Schema
	not                   *Schema
	ifS, thenS, elseS     *Schema
	dependentSchemas      *schemaMap
	prefixItems           []*Schema
	items                 *Schema
	contains              *Schema
	properties            *schemaMap
	patternProperties     *schemaMap
	compiledPatternProps  map[string]*regexp2.Regexp
	additionalProperties  *Schema
	propertyNames         *Schema
	unevaluatedItems      *Schema
	unevaluatedProperties *Schema

	// validation
	typeNames         []string
	enumValues        []value.Value
	constValue        value.Value
	hasConst          bool
	multipleOf        *value.Num
	maximum           *value.Num
	exclusiveMaximum  *value.Num
	minimum           *value.Num
	exclusiveMinimum  *value.Num
	maxLength         *int
	minLength         *int
	pattern           string
	compiledPattern   *regexp2.Regexp
	maxItems          *int
	minItems          *int
	uniqueItems       bool
	maxContains       *int
	minContains       *int
	maxProperties     *int
	minProperties     *int
	required          []string
	dependentRequired map[string][]string
}

// New compiles root as the document graph's starting schema, optionally
// alongside externally supplied referenced schemas (schemas a $ref in
// root, or in each other, might point at). It matches the library
// surface's Schema::new(root, [referenced]).
func New(root value.Value, referenced ...value.Value) (*Schema, error) {
	c := newCompiler()
	s, err := c.compileDocument(root, "")
	if err != nil {
		return nil, err
	}
	for _, r := range referenced {
		if _, err := c.addReferenced(r, ""); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// AddReferenced registers an additional schema document into s's
// reference graph, so later $ref/$dynamicRef resolution (including a
// retry triggered by the invalid-reference callback) can find it. alias,
// if non-empty, lets a document with no $id of its own be addressed by a
// caller-chosen URI.
func (s *Schema) AddReferenced(v value.Value, alias string) error {
	_, err := s.compiler.addReferenced(v, alias)
	return err
}

// SetInvalidRefCallback installs the callback consulted when a
// $ref/$dynamicRef fails to resolve during evaluation.
func (s *Schema) SetInvalidRefCallback(fn InvalidRefCallback) {
	s.compiler.refCallback = fn
}

func (c *Compiler) addReferenced(v value.Value, alias string) (*Schema, error) {
	s, err := c.compileDocument(v, alias)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// compileDocument compiles v as the root of one document (its own base
// URI namespace), registering it under its own $id, or under alias, or
// under the default root URI if this is the graph's first document.
func (c *Compiler) compileDocument(v value.Value, alias string) (*Schema, error) {
	base := defaultBaseURI
	if len(c.documents) > 0 {
		// A referenced document with neither $id nor alias cannot be
		// addressed later; it still compiles, it just has no entry in
		// c.documents besides its own $id (if any).
		base = ""
	}
	s, err := buildSchema(c, nil, v, base, "")
	if err != nil {
		return nil, err
	}
	docBase := s.baseURI
	if docBase == "" {
		docBase = s.id
	}
	if docBase != "" {
		c.documents[docBase] = s
	}
	if alias != "" {
		canonical := docBase
		if canonical == "" {
			canonical = alias
		}
		c.idAliases[alias] = canonical
		c.documents[alias] = s
	}
	return s, nil
}
