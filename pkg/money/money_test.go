package money

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	ten := decimal.RequireFromString("10.50")

	tests := []struct {
		name   string
		in     any
		want   string
		wantOK bool
	}{
		{"nil", nil, "0", false},
		{"decimal", ten, "10.5", true},
		{"decimal pointer", &ten, "10.5", true},
		{"nil decimal pointer", (*decimal.Decimal)(nil), "0", false},
		{"string", " 12.345 ", "12.345", true},
		{"empty string", "", "0", false},
		{"garbage", "abc", "0", false},
		{"int", 7, "7", true},
		{"int64", int64(-3), "-3", true},
		{"float", 2.25, "2.25", true},
		{"nan", math.NaN(), "0", false},
		{"inf", math.Inf(1), "0", false},
		{"unsupported type", struct{}{}, "0", false},
		{"null decimal invalid", decimal.NullDecimal{}, "0", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Parse(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{decimal.RequireFromString("52"), "52.00"},
		{"22.5", "22.50"},
		{"1.005", "1.01"},
		{"1.004", "1.00"},
		{nil, "0.00"},
		{"n/a", "0.00"},
		{"-4.00", "0.00"},
		{math.NaN(), "0.00"},
		{0, "0.00"},
		{1234567.891, "1234567.89"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Format(tt.in), "input %v", tt.in)
	}
}

func TestClampAndMax(t *testing.T) {
	neg := decimal.NewFromInt(-5)
	pos := decimal.NewFromInt(3)

	assert.True(t, ClampZero(neg).IsZero())
	assert.True(t, ClampZero(pos).Equal(pos))
	assert.True(t, Max(neg, pos).Equal(pos))
	assert.True(t, Round(decimal.RequireFromString("2.345")).Equal(decimal.RequireFromString("2.35")))
}
