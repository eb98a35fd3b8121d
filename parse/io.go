package parse

import (
	"io"
	"os"

	"github.com/kaptinlin/ujson-tools/token"
	"github.com/kaptinlin/ujson-tools/value"
)

// ParseReader reads r fully and parses it, wrapping any read failure as
// an ErrIO parser error rather than letting it look like a lexical one.
func ParseReader(r io.Reader, opts Options) (value.Value, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return value.NewInvalid(), &token.Error{Code: token.ErrIO}
	}
	return Parse(data, opts)
}

// ParseFile opens and parses path.
func ParseFile(path string, opts Options) (value.Value, error) {
	f, err := os.Open(path)
	if err != nil {
		return value.NewInvalid(), &token.Error{Code: token.ErrIO}
	}
	defer f.Close()
	return ParseReader(f, opts)
}
