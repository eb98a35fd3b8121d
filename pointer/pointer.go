// Package pointer implements RFC 6901 JSON Pointer navigation over a
// value.Value tree (§3.3, §4.5's navigation half).
package pointer

import (
	"strconv"
	"strings"

	"github.com/kaptinlin/jsonpointer"

	"github.com/kaptinlin/ujson-tools/value"
)

// Pointer is an ordered sequence of reference tokens; a nil/empty
// Pointer addresses the document root.
type Pointer []string

// Parse decodes the textual form "/<tok>/<tok>/..." into a Pointer. The
// empty string parses to the empty (root) Pointer. Token un-escaping
// (~0/~1) is delegated to kaptinlin/jsonpointer, the same library the
// schema package's own $ref fragment resolution uses.
func Parse(text string) (Pointer, error) {
	if text == "" {
		return Pointer{}, nil
	}
	if text[0] != '/' {
		return nil, errMalformed
	}
	return Pointer(jsonpointer.Parse(text)), nil
}

// String renders p back into the textual "/<tok>/<tok>/..." form, via
// jsonpointer.Format.
func (p Pointer) String() string {
	if len(p) == 0 {
		return ""
	}
	return jsonpointer.Format([]string(p)...)
}

// errMalformed is returned by Parse for text that doesn't start with '/'
// and isn't empty.
var errMalformed = &MalformedError{}

// MalformedError is returned when pointer text is not a valid RFC 6901
// pointer string.
type MalformedError struct{}

func (e *MalformedError) Error() string { return "pointer: malformed pointer text" }

// IsArrayIndex reports whether tok is a valid array-index token:
// "0" or [1-9][0-9]*. Leading zeros other than the literal "0" are
// rejected.
func IsArrayIndex(tok string) (int, bool) {
	if tok == "0" {
		return 0, true
	}
	if tok == "" || tok[0] < '1' || tok[0] > '9' {
		return 0, false
	}
	for i := 1; i < len(tok); i++ {
		if tok[i] < '0' || tok[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, false
	}
	return n, true
}

// IsAppendToken reports whether tok is the "-" append sentinel.
func IsAppendToken(tok string) bool { return tok == "-" }

// Find resolves p against root, descending per §4.5: object keys are
// looked up by name (last-wins), array indices are parsed and bounds-
// checked. Against an array, "-" never resolves here (it is only
// meaningful to the patch engine's add/move/copy); an object member named
// "-" is looked up like any other key. A malformed token or out-of-range
// index yields the Invalid sentinel.
func Find(root value.Value, p Pointer) value.Value {
	cur := root
	for _, tok := range p {
		switch cur.Kind() {
		case value.Object:
			v, ok := cur.ObjVal().Get(tok)
			if !ok {
				return value.NewInvalid()
			}
			cur = v
		case value.Array:
			idx, ok := IsArrayIndex(tok)
			if !ok {
				return value.NewInvalid()
			}
			arr := cur.Arr()
			if idx < 0 || idx >= len(arr) {
				return value.NewInvalid()
			}
			cur = arr[idx]
		default:
			return value.NewInvalid()
		}
	}
	return cur
}

// FindText parses text and resolves it against root in one step.
func FindText(root value.Value, text string) (value.Value, error) {
	p, err := Parse(text)
	if err != nil {
		return value.NewInvalid(), err
	}
	return Find(root, p), nil
}
