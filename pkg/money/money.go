// Package money provides fixed-precision amount handling for order totals
// and receipts. Parsing is total: bad input becomes zero and is flagged.
package money

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Places is the number of fractional digits kept for every amount.
const Places = 2

// Zero is the canonical zero amount.
var Zero = decimal.Zero

// Parse converts v into a decimal amount. The boolean reports whether v was
// a usable number; nil, empty, non-numeric, NaN and infinite input all
// yield (0, false).
func Parse(v any) (decimal.Decimal, bool) {
	switch t := v.(type) {
	case nil:
		return Zero, false
	case decimal.Decimal:
		return t, true
	case *decimal.Decimal:
		if t == nil {
			return Zero, false
		}
		return *t, true
	case decimal.NullDecimal:
		if !t.Valid {
			return Zero, false
		}
		return t.Decimal, true
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return Zero, false
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return Zero, false
		}
		return d, true
	case int:
		return decimal.NewFromInt(int64(t)), true
	case int32:
		return decimal.NewFromInt32(t), true
	case int64:
		return decimal.NewFromInt(t), true
	case float32:
		return fromFloat(float64(t))
	case float64:
		return fromFloat(t)
	}
	return Zero, false
}

func fromFloat(f float64) (decimal.Decimal, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Zero, false
	}
	return decimal.NewFromFloat(f), true
}

// Round rounds half away from zero to two places.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(Places)
}

// ClampZero returns d, or zero when d is negative.
func ClampZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return Zero
	}
	return d
}

// Max returns the larger of a and b.
func Max(a, b decimal.Decimal) decimal.Decimal {
	if a.GreaterThan(b) {
		return a
	}
	return b
}

// Format renders v with exactly two decimals. Anything that is not a
// non-negative number renders as "0.00". It never panics.
func Format(v any) (out string) {
	defer func() {
		if recover() != nil {
			out = "0.00"
		}
	}()

	d, ok := Parse(v)
	if !ok || d.IsNegative() {
		return "0.00"
	}
	return d.StringFixed(Places)
}
