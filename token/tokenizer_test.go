package token

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"
)

func allTokens(src string, relaxed bool) []Token {
	tz := New([]byte(src), relaxed)
	var out []Token
	for {
		tok := tz.Next()
		out = append(out, tok)
		if tok.Kind == EOF || tok.Kind == Invalid {
			return out
		}
	}
}

func TestPunctuationTokens(t *testing.T) {
	toks := allTokens(`{}[],:`, false)
	want := []Kind{LBrace, RBrace, LBracket, RBracket, Comma, Colon, EOF}
	require.Len(t, toks, len(want))
	for i, k := range want {
		assert.Equal(t, k, toks[i].Kind, "token %d", i)
	}
}

func TestReservedWords(t *testing.T) {
	toks := allTokens(`null true false`, false)
	want := []Kind{Null, True, False, EOF}
	for i, k := range want {
		assert.Equal(t, k, toks[i].Kind, "token %d", i)
	}
}

func TestRowColTracking(t *testing.T) {
	tz := New([]byte("1\n22"), false)
	first := tz.Next()
	assert.Equal(t, 0, first.Row)
	assert.Equal(t, 0, first.Col)
	second := tz.Next()
	assert.Equal(t, 1, second.Row, "second token should be on the line after \\n")
	assert.Equal(t, 0, second.Col)
}

func TestStringEscapes(t *testing.T) {
	tz := New([]byte(`"a\n\t\"b"`), false)
	tok := tz.Next()
	require.Equal(t, String, tok.Kind)
	assert.Equal(t, "a\n\t\"b", tok.Value)
}

func TestStringSurrogatePair(t *testing.T) {
	// U+1F600 GRINNING FACE, encoded as a UTF-16 surrogate pair.
	tz := New([]byte("\"\\ud83d\\ude00\""), false)
	tok := tz.Next()
	require.Equal(t, String, tok.Kind)
	assert.Equal(t, "\U0001F600", tok.Value)
}

// TestStringSurrogatePairCrossCheckedWithXText encodes the same grinning-
// face rune through golang.org/x/text's UTF-16 codec to derive the
// surrogate pair independently of how scanUnicodeEscape computes it, then
// checks the tokenizer decodes the resulting \uXXXX\uXXXX escape back to
// the identical rune.
func TestStringSurrogatePairCrossCheckedWithXText(t *testing.T) {
	enc := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewEncoder()
	units, err := enc.Bytes([]byte("😀"))
	require.NoError(t, err, "UTF-16 encode")
	require.Len(t, units, 4, "want a 2-code-unit surrogate pair (4 bytes)")
	hi := uint16(units[0])<<8 | uint16(units[1])
	lo := uint16(units[2])<<8 | uint16(units[3])

	src := fmt.Sprintf(`"\u%04x\u%04x"`, hi, lo)
	tz := New([]byte(src), false)
	tok := tz.Next()
	require.Equal(t, String, tok.Kind)
	assert.Equal(t, "😀", tok.Value)
}

func TestStringRejectsControlByte(t *testing.T) {
	tz := New([]byte("\"a\x01b\""), false)
	tok := tz.Next()
	require.Equal(t, Invalid, tok.Kind)
	assert.Equal(t, ErrInvalidString, tok.Err.Code)
}

func TestStringUnterminated(t *testing.T) {
	tz := New([]byte(`"abc`), false)
	tok := tz.Next()
	require.Equal(t, Invalid, tok.Kind)
	assert.Equal(t, ErrUnterminatedString, tok.Err.Code)
}

func TestStringInvalidEscape(t *testing.T) {
	tz := New([]byte(`"\q"`), false)
	tok := tz.Next()
	require.Equal(t, Invalid, tok.Kind)
	assert.Equal(t, ErrInvalidEscape, tok.Err.Code)
}

func TestNumberForms(t *testing.T) {
	cases := []string{"0", "-1", "1.5", "1e10", "1E-10", "-1.5e+10"}
	for _, src := range cases {
		tz := New([]byte(src), false)
		tok := tz.Next()
		if !assert.Equal(t, Number, tok.Kind, "%q", src) {
			continue
		}
		assert.Equal(t, src, tok.Value, "%q", src)
	}
}

func TestNumberTrailingDotIsInvalid(t *testing.T) {
	tz := New([]byte("1."), false)
	tok := tz.Next()
	require.Equal(t, Invalid, tok.Kind)
	assert.Equal(t, ErrInvalidNumber, tok.Err.Code)
}

func TestNumberLoneMinusIsInvalid(t *testing.T) {
	tz := New([]byte("-"), false)
	tok := tz.Next()
	require.Equal(t, Invalid, tok.Kind)
	assert.Equal(t, ErrInvalidNumber, tok.Err.Code)
}

func TestNumberMissingExponentDigit(t *testing.T) {
	tz := New([]byte("1e"), false)
	tok := tz.Next()
	require.Equal(t, Invalid, tok.Kind)
	assert.Equal(t, ErrInvalidNumber, tok.Err.Code)
}

func TestRelaxedComments(t *testing.T) {
	toks := allTokens("// line\n/* block */123", true)
	kinds := make([]Kind, 0, len(toks))
	for _, tok := range toks {
		kinds = append(kinds, tok.Kind)
	}
	assert.Equal(t, []Kind{Comment, Comment, Number, EOF}, kinds)
}

func TestRelaxedIdentifierKey(t *testing.T) {
	tz := New([]byte("fooBar_2"), true)
	tok := tz.Next()
	require.Equal(t, Identifier, tok.Kind)
	assert.Equal(t, "fooBar_2", tok.Value)
}

func TestRelaxedReservedIdentifierRejected(t *testing.T) {
	tz := New([]byte("TRUE"), true)
	tok := tz.Next()
	require.Equal(t, Invalid, tok.Kind)
	assert.Equal(t, ErrReservedIdentifier, tok.Err.Code)
}

func TestStrictModeRejectsBareIdentifier(t *testing.T) {
	tz := New([]byte("foo"), false)
	tz.Strict = true
	tok := tz.Next()
	require.Equal(t, Invalid, tok.Kind)
	assert.Equal(t, ErrInvalidToken, tok.Err.Code)
}

func TestUnexpectedCharacter(t *testing.T) {
	tz := New([]byte("#"), false)
	tok := tz.Next()
	require.Equal(t, Invalid, tok.Kind)
	assert.Equal(t, ErrUnexpectedCharacter, tok.Err.Code)
}

func TestErrorCodeString(t *testing.T) {
	assert.Equal(t, "invalid_number at 1:1", (&Error{Code: ErrInvalidNumber, Row: 0, Col: 0}).Error())
}
