// Package parse turns a token.Tokenizer's stream into a value.Value tree.
// It is a hand-written recursive-descent parser; the grammar's implicit
// parse-state stack (value, str-value, array, elements, object, members,
// pair per §4.2) is realized as Go's own call stack, with an explicit
// depth counter enforcing Options.MaxDepth independently of how deep the
// Go stack itself gets.
package parse

import (
	"github.com/kaptinlin/ujson-tools/token"
	"github.com/kaptinlin/ujson-tools/value"
)

// Options configures a parse.
type Options struct {
	Strict          bool // RFC 8259 only; mutually exclusive with relaxed extensions
	Relaxed         bool // comments, trailing commas, string concatenation, unquoted identifier keys
	AllowDuplicates bool // default true: retain every duplicate object member instead of erroring
	MaxDepth        int  // 0 = unbounded; counts every array/object open
	MaxArraySize    int  // 0 = unbounded
	MaxObjectSize   int  // 0 = unbounded
}

// DefaultOptions returns strict-mode options with duplicates allowed and
// no resource limits, matching the reference implementation's defaults.
func DefaultOptions() Options {
	return Options{Strict: true, AllowDuplicates: true}
}

// Parser drives a token.Tokenizer to build one value.Value.
type Parser struct {
	tz    *token.Tokenizer
	opts  Options
	depth int
	tok   token.Token
}

// Parse parses src into a single JSON value.
func Parse(src []byte, opts Options) (value.Value, error) {
	p := &Parser{
		tz:   token.New(src, opts.Relaxed),
		opts: opts,
	}
	p.tz.Strict = opts.Strict && !opts.Relaxed
	p.advance()

	v, err := p.parseValue()
	if err != nil {
		return value.NewInvalid(), err
	}
	p.skipTrivia()
	if p.tok.Kind != token.EOF {
		return value.NewInvalid(), &token.Error{Code: token.ErrInvalidToken, Row: p.tok.Row, Col: p.tok.Col}
	}
	return v, nil
}

func (p *Parser) advance() {
	p.tok = p.tz.Next()
}

// skipTrivia advances past Comment tokens (relaxed mode only).
func (p *Parser) skipTrivia() {
	for p.tok.Kind == token.Comment {
		p.advance()
	}
}

func (p *Parser) tokenError(code token.Code) error {
	return &token.Error{Code: code, Row: p.tok.Row, Col: p.tok.Col}
}

// parseValue implements: value := str_value | number | object | array |
// true | false | null
func (p *Parser) parseValue() (value.Value, error) {
	p.skipTrivia()
	switch p.tok.Kind {
	case token.Invalid:
		return value.NewInvalid(), p.tok.Err
	case token.EOF:
		return value.NewInvalid(), p.tokenError(token.ErrUnexpectedEOF)
	case token.Null:
		p.advance()
		return value.NewNull(), nil
	case token.True:
		p.advance()
		return value.NewBool(true), nil
	case token.False:
		p.advance()
		return value.NewBool(false), nil
	case token.Number:
		lit := p.tok.Value
		n, err := value.NewNumberFromLiteral(lit)
		if err != nil {
			return value.NewInvalid(), p.tokenError(token.ErrNumberOutOfRange)
		}
		p.advance()
		return value.NewNumber(n), nil
	case token.String:
		return p.parseStrValue()
	case token.LBracket:
		return p.parseArray()
	case token.LBrace:
		return p.parseObject()
	case token.RBrace:
		return value.NewInvalid(), p.tokenError(token.ErrMisplacedRBrace)
	case token.RBracket:
		return value.NewInvalid(), p.tokenError(token.ErrMisplacedRBracket)
	case token.Comma:
		return value.NewInvalid(), p.tokenError(token.ErrMisplacedComma)
	case token.Colon:
		return value.NewInvalid(), p.tokenError(token.ErrMisplacedColon)
	default:
		return value.NewInvalid(), p.tokenError(token.ErrInvalidToken)
	}
}

// parseStrValue implements: str_value := STRING ( STRING )* — the
// trailing repetition (string literal concatenation) only fires in
// relaxed mode.
func (p *Parser) parseStrValue() (value.Value, error) {
	s := p.tok.Value
	p.advance()
	if !p.opts.Relaxed {
		return value.NewString(s), nil
	}
	for {
		p.skipTrivia()
		if p.tok.Kind != token.String {
			break
		}
		s += p.tok.Value
		p.advance()
	}
	return value.NewString(s), nil
}

// parseArray implements: array := '[' ']' | '[' elements ']'
func (p *Parser) parseArray() (value.Value, error) {
	if err := p.enterContainer(); err != nil {
		return value.NewInvalid(), err
	}
	defer p.leaveContainer()

	p.advance() // consume '['
	p.skipTrivia()

	var elems []value.Value
	if p.tok.Kind == token.RBracket {
		p.advance()
		return value.NewArray(elems...), nil
	}

	for {
		v, err := p.parseValue()
		if err != nil {
			return value.NewInvalid(), err
		}
		elems = append(elems, v)
		if p.opts.MaxArraySize > 0 && len(elems) > p.opts.MaxArraySize {
			return value.NewInvalid(), p.tokenError(token.ErrMaxArraySizeExceeded)
		}

		p.skipTrivia()
		switch p.tok.Kind {
		case token.Comma:
			p.advance()
			p.skipTrivia()
			if p.tok.Kind == token.RBracket {
				if !p.opts.Relaxed {
					return value.NewInvalid(), p.tokenError(token.ErrMisplacedComma)
				}
				p.advance()
				return value.NewArray(elems...), nil
			}
			continue
		case token.RBracket:
			p.advance()
			return value.NewArray(elems...), nil
		case token.EOF:
			return value.NewInvalid(), p.tokenError(token.ErrUnterminatedArray)
		default:
			return value.NewInvalid(), p.tokenError(token.ErrExpectedCommaOrRBracket)
		}
	}
}

// parseObject implements: object := '{' '}' | '{' members '}'
func (p *Parser) parseObject() (value.Value, error) {
	if err := p.enterContainer(); err != nil {
		return value.NewInvalid(), err
	}
	defer p.leaveContainer()

	p.advance() // consume '{'
	p.skipTrivia()

	obj := value.NewObj()
	seen := map[string]bool{}
	count := 0

	if p.tok.Kind == token.RBrace {
		p.advance()
		return value.NewObjectFrom(obj), nil
	}

	for {
		key, keyRow, keyCol, err := p.parseMemberName()
		if err != nil {
			return value.NewInvalid(), err
		}
		if seen[key] && !p.opts.AllowDuplicates {
			return value.NewInvalid(), &token.Error{Code: token.ErrDuplicateMember, Row: keyRow, Col: keyCol}
		}
		seen[key] = true

		p.skipTrivia()
		if p.tok.Kind != token.Colon {
			return value.NewInvalid(), p.tokenError(token.ErrExpectedColon)
		}
		p.advance()

		v, err := p.parseValue()
		if err != nil {
			return value.NewInvalid(), err
		}

		obj.Append(key, v)
		count++
		if p.opts.MaxObjectSize > 0 && count > p.opts.MaxObjectSize {
			return value.NewInvalid(), p.tokenError(token.ErrMaxObjectSizeExceeded)
		}

		p.skipTrivia()
		switch p.tok.Kind {
		case token.Comma:
			p.advance()
			p.skipTrivia()
			if p.tok.Kind == token.RBrace {
				if !p.opts.Relaxed {
					return value.NewInvalid(), p.tokenError(token.ErrMisplacedComma)
				}
				p.advance()
				return value.NewObjectFrom(obj), nil
			}
			continue
		case token.RBrace:
			p.advance()
			return value.NewObjectFrom(obj), nil
		case token.EOF:
			return value.NewInvalid(), p.tokenError(token.ErrUnterminatedObject)
		default:
			return value.NewInvalid(), p.tokenError(token.ErrExpectedCommaOrRBrace)
		}
	}
}

// parseMemberName implements: STRING | IDENTIFIER (identifier only in
// relaxed mode; the tokenizer itself rejects reserved-word identifiers).
// It returns the key's own (row, col) so a duplicate-member check can
// report the error at that key's token, per §4.2, rather than wherever
// parsing happens to be once the member's value is read.
func (p *Parser) parseMemberName() (key string, row, col int, err error) {
	p.skipTrivia()
	switch p.tok.Kind {
	case token.String:
		key, row, col = p.tok.Value, p.tok.Row, p.tok.Col
		p.advance()
		return key, row, col, nil
	case token.Identifier:
		if !p.opts.Relaxed {
			return "", 0, 0, p.tokenError(token.ErrExpectedMemberName)
		}
		key, row, col = p.tok.Value, p.tok.Row, p.tok.Col
		p.advance()
		return key, row, col, nil
	case token.Invalid:
		return "", 0, 0, p.tok.Err
	default:
		return "", 0, 0, p.tokenError(token.ErrExpectedMemberName)
	}
}

func (p *Parser) enterContainer() error {
	p.depth++
	if p.opts.MaxDepth > 0 && p.depth > p.opts.MaxDepth {
		return p.tokenError(token.ErrMaxDepthExceeded)
	}
	return nil
}

func (p *Parser) leaveContainer() {
	p.depth--
}
