//go:build !ujson_nobigfloat

package value

import (
	"math"
	"strconv"
	"strings"

	"github.com/cockroachdb/apd/v3"
)

// Num is the number payload of a Value. This build uses an
// arbitrary-precision decimal backend (github.com/cockroachdb/apd/v3) so
// that text parsed from a document round-trips exactly and keywords like
// multipleOf/const are not victim to float64 rounding. Building with the
// ujson_nobigfloat tag swaps in an IEEE-754 double backend instead (see
// number_double.go); both files expose the same API.
type Num struct {
	dec     apd.Decimal
	literal string // original parsed digits, kept for round-tripping
}

var numCtx = apd.BaseContext.WithPrecision(200)

// NewNumberFromLiteral parses RFC 8259 number text (as produced by the
// tokenizer) into a Num.
func NewNumberFromLiteral(lit string) (*Num, error) {
	d, _, err := apd.NewFromString(lit)
	if err != nil {
		return nil, err
	}
	return &Num{dec: *d, literal: lit}, nil
}

// NewNumberFromInt64 returns a Num holding an exact integer.
func NewNumberFromInt64(i int64) *Num {
	n := &Num{}
	n.dec.SetInt64(i)
	return n
}

// NewNumberFromFloat64 returns a Num holding the shortest decimal text
// that round-trips f. NaN and +/-Inf are stored as a zero decimal with
// the literal "null", which IsNaNOrInf reports and String renders, per
// the value-tree invariant that non-finite numbers serialize as null.
func NewNumberFromFloat64(f float64) *Num {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return &Num{literal: "null"}
	}
	lit := strconv.FormatFloat(f, 'g', -1, 64)
	d, _, _ := apd.NewFromString(lit)
	return &Num{dec: *d, literal: lit}
}

// IsNaNOrInf reports whether this Num represents a non-finite value
// (only reachable via NewNumberFromFloat64 fed a NaN/Inf).
func (n *Num) IsNaNOrInf() bool { return n.literal == "null" }

// String renders the Num's original literal text when it has one (text
// parsed from a document, or the shortest form of a float64), and the
// decimal's own text form otherwise; non-finite values render as null.
func (n *Num) String() string {
	if n.IsNaNOrInf() {
		return "null"
	}
	if n.literal != "" {
		return n.literal
	}
	return n.dec.Text('G')
}

// Float64 converts to the nearest IEEE-754 double.
func (n *Num) Float64() float64 {
	if n.IsNaNOrInf() {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(n.dec.Text('G'), 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

// Int64 returns the exact integer value and true if this Num is an
// integer that fits in an int64.
func (n *Num) Int64() (int64, bool) {
	if n.IsNaNOrInf() || !n.IsInteger() {
		return 0, false
	}
	i, err := n.dec.Int64()
	if err != nil {
		return 0, false
	}
	return i, true
}

// IsInteger reports whether the value is an exact integer. NaN and
// infinity are never integers.
func (n *Num) IsInteger() bool {
	if n.IsNaNOrInf() {
		return false
	}
	var rounded apd.Decimal
	_, _ = numCtx.RoundToIntegralExact(&rounded, &n.dec)
	return rounded.Cmp(&n.dec) == 0
}

// Cmp returns -1, 0, or 1 comparing n to other, numerically.
func (n *Num) Cmp(other *Num) int {
	if n.IsNaNOrInf() || other.IsNaNOrInf() {
		return strings.Compare(n.String(), other.String())
	}
	return n.dec.Cmp(&other.dec)
}

// Equal reports numeric equality (42 == 42.0).
func (n *Num) Equal(other *Num) bool {
	if n.IsNaNOrInf() != other.IsNaNOrInf() {
		return false
	}
	if n.IsNaNOrInf() {
		return true
	}
	return n.dec.Cmp(&other.dec) == 0
}

// IsMultipleOf reports whether n is an integer multiple of divisor, per
// the multipleOf keyword (divisor must be > 0, enforced by the caller).
func (n *Num) IsMultipleOf(divisor *Num) bool {
	if n.IsNaNOrInf() || divisor.IsNaNOrInf() {
		return false
	}
	var quotient apd.Decimal
	_, err := numCtx.Quo(&quotient, &n.dec, &divisor.dec)
	if err != nil {
		return false
	}
	var rounded apd.Decimal
	_, _ = numCtx.RoundToIntegralExact(&rounded, &quotient)
	return rounded.Cmp(&quotient) == 0
}
