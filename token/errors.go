package token

import "fmt"

// Code enumerates every distinct tokenizer/parser error, per the
// specification's error-model enumeration. The token package only ever
// produces a subset of these (the lexical ones); parse.Parser produces
// the structural ones (misplaced tokens, depth/size limits, duplicate
// members) using the same Code type so callers handle one error family.
type Code int

const (
	NoError Code = iota
	ErrInvalidString
	ErrUnterminatedString
	ErrInvalidEscape
	ErrInvalidUTF8
	ErrInvalidNumber
	ErrNumberOutOfRange
	ErrInvalidToken
	ErrMisplacedRBrace
	ErrMisplacedRBracket
	ErrMisplacedComma
	ErrMisplacedColon
	ErrExpectedCommaOrRBracket
	ErrExpectedCommaOrRBrace
	ErrExpectedMemberName
	ErrExpectedColon
	ErrDuplicateMember
	ErrUnterminatedArray
	ErrUnterminatedObject
	ErrUnexpectedCharacter
	ErrMaxDepthExceeded
	ErrMaxArraySizeExceeded
	ErrMaxObjectSizeExceeded
	ErrUnexpectedEOF
	ErrIO
	ErrInternal
	ErrReservedIdentifier
)

var codeNames = map[Code]string{
	NoError:                    "no_error",
	ErrInvalidString:           "invalid_string",
	ErrUnterminatedString:      "unterminated_string",
	ErrInvalidEscape:           "invalid_escape",
	ErrInvalidUTF8:             "invalid_utf8",
	ErrInvalidNumber:           "invalid_number",
	ErrNumberOutOfRange:        "number_out_of_range",
	ErrInvalidToken:            "invalid_token",
	ErrMisplacedRBrace:         "misplaced_rbrace",
	ErrMisplacedRBracket:       "misplaced_rbracket",
	ErrMisplacedComma:          "misplaced_comma",
	ErrMisplacedColon:          "misplaced_colon",
	ErrExpectedCommaOrRBracket: "expected_comma_or_rbracket",
	ErrExpectedCommaOrRBrace:   "expected_comma_or_rbrace",
	ErrExpectedMemberName:      "expected_member_name",
	ErrExpectedColon:           "expected_colon",
	ErrDuplicateMember:         "duplicate_member",
	ErrUnterminatedArray:       "unterminated_array",
	ErrUnterminatedObject:      "unterminated_object",
	ErrUnexpectedCharacter:     "unexpected_character",
	ErrMaxDepthExceeded:        "max_depth_exceeded",
	ErrMaxArraySizeExceeded:    "max_array_size_exceeded",
	ErrMaxObjectSizeExceeded:   "max_object_size_exceeded",
	ErrUnexpectedEOF:           "unexpected_eof",
	ErrIO:                      "io_error",
	ErrInternal:                "internal",
	ErrReservedIdentifier:      "reserved_identifier",
}

// String returns the snake_case error code name.
func (c Code) String() string {
	if s, ok := codeNames[c]; ok {
		return s
	}
	return "unknown"
}

// Error is a parser/tokenizer error: a code plus the 0-based (row, col)
// of the offending token, per §4.2's error model. It is distinct from
// value.TypeError (programmer usage error) and schema.SchemaError
// (malformed schema).
type Error struct {
	Code Code
	Row  int
	Col  int
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at %d:%d", e.Code, e.Row+1, e.Col+1)
}
