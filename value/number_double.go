//go:build ujson_nobigfloat

package value

import (
	"math"
	"strconv"
)

// Num is the number payload of a Value. This build (tag ujson_nobigfloat)
// uses a plain IEEE-754 double instead of the arbitrary-precision decimal
// backend in number.go; exact round-tripping of arbitrary-precision
// literals and penny-perfect multipleOf checks are not guaranteed in this
// configuration, matching the reference implementation's documented
// fallback when its GMP dependency is unavailable.
type Num struct {
	f float64
}

// NewNumberFromLiteral parses RFC 8259 number text into a Num.
func NewNumberFromLiteral(lit string) (*Num, error) {
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return nil, err
	}
	return &Num{f: f}, nil
}

// NewNumberFromInt64 returns a Num holding an integer.
func NewNumberFromInt64(i int64) *Num { return &Num{f: float64(i)} }

// NewNumberFromFloat64 returns a Num holding f verbatim.
func NewNumberFromFloat64(f float64) *Num { return &Num{f: f} }

// IsNaNOrInf reports whether this Num is non-finite.
func (n *Num) IsNaNOrInf() bool { return math.IsNaN(n.f) || math.IsInf(n.f, 0) }

// String renders the shortest round-tripping decimal text, or "null" for
// non-finite values per the value-tree serialization invariant.
func (n *Num) String() string {
	if n.IsNaNOrInf() {
		return "null"
	}
	return strconv.FormatFloat(n.f, 'g', -1, 64)
}

// Float64 returns the payload directly.
func (n *Num) Float64() float64 { return n.f }

// Int64 returns the exact integer value and true if n is an integer
// representable exactly as int64.
func (n *Num) Int64() (int64, bool) {
	if !n.IsInteger() {
		return 0, false
	}
	return int64(n.f), true
}

// IsInteger reports whether n is an exact integer; NaN/Inf never are.
func (n *Num) IsInteger() bool {
	if n.IsNaNOrInf() {
		return false
	}
	return n.f == math.Trunc(n.f)
}

// Cmp returns -1, 0, or 1 comparing n to other.
func (n *Num) Cmp(other *Num) int {
	switch {
	case n.f < other.f:
		return -1
	case n.f > other.f:
		return 1
	default:
		return 0
	}
}

// Equal reports numeric equality.
func (n *Num) Equal(other *Num) bool {
	if n.IsNaNOrInf() || other.IsNaNOrInf() {
		return false
	}
	return n.f == other.f
}

// IsMultipleOf reports whether n is an integer multiple of divisor.
func (n *Num) IsMultipleOf(divisor *Num) bool {
	if divisor.f == 0 {
		return false
	}
	q := n.f / divisor.f
	return q == math.Trunc(q)
}
