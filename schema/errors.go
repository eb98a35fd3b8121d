package schema

import "fmt"

// === Loading and reference-resolution errors ===
//
// These are sentinel categories of SchemaError (see below), declared the
// way the teacher groups its own infrastructure errors: one var block per
// concern, one doc comment per error.
var (
	// errDuplicateID marks a second $id definition resolving to the same
	// absolute URI within one compilation unit.
	errDuplicateID = "duplicate_id"
	// errDuplicateAnchor marks a second $anchor/$dynamicAnchor with the
	// same name under one base URI.
	errDuplicateAnchor = "duplicate_anchor"
	// errMalformedAnchor marks an $anchor/$dynamicAnchor value that does
	// not match [A-Za-z_][-A-Za-z0-9._]*.
	errMalformedAnchor = "malformed_anchor"
	// errIDHasFragment marks an $id containing a non-empty fragment.
	errIDHasFragment = "id_has_fragment"
	// errUnsupportedDialect marks a $schema value other than the
	// 2020-12 dialect URI.
	errUnsupportedDialect = "unsupported_dialect"
	// errNotASchema marks a schema value that is neither an object nor
	// a boolean.
	errNotASchema = "not_a_schema"
	// errEmptyKeywordArray marks an applicator keyword (allOf, anyOf,
	// oneOf) given an empty array where a non-empty one is required.
	errEmptyKeywordArray = "empty_keyword_array"
	// errInvalidKeywordShape marks a validation keyword whose value
	// fails its own shape check (non-negative integer, valid regex,
	// non-empty string array, ...).
	errInvalidKeywordShape = "invalid_keyword_shape"
	// errUnresolvedRef names the unresolved-reference category. Evaluation
	// reports an unresolved $ref/$dynamicRef as a failing output unit, not
	// as a SchemaError, so no SchemaError carries this code.
	errUnresolvedRef = "unresolved_ref"
)

// SchemaError is raised during loading for malformed schemas. A
// $ref/$dynamicRef that cannot be resolved during evaluation, and that no
// invalid-reference callback rescues, is not reported as a SchemaError:
// it produces a failing output unit at that keyword. SchemaError is
// distinct from both value.TypeError (programmer usage error) and token.Error (parser
// lexical/structural error): an instance failing validation is never a
// SchemaError, only a successfully-returned output unit with valid:
// false.
type SchemaError struct {
	BaseURI string
	Pointer string
	Code    string
	Message string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("invalid_schema(%s, %s): %s", e.BaseURI, e.Pointer, e.Message)
}

func newSchemaError(baseURI, pointer, code, message string) *SchemaError {
	return &SchemaError{BaseURI: baseURI, Pointer: pointer, Code: code, Message: message}
}
