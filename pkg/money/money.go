// Package money provides shared decimal helpers for monetary amounts,
// growth rates, and currency formatting.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// CeilDollar rounds an amount up to the next whole currency unit.
func CeilDollar(d decimal.Decimal) decimal.Decimal {
	return d.Ceil()
}

// PercentFactor converts an annual percentage rate into a growth factor,
// e.g. 2.5 -> 1.025. Negative rates yield factors below 1.
func PercentFactor(ratePercent decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(1).Add(ratePercent.Div(hundred))
}

// GrowthFactor returns (1 + rate/100)^years.
func GrowthFactor(ratePercent decimal.Decimal, years int) decimal.Decimal {
	if years <= 0 {
		return decimal.NewFromInt(1)
	}
	return PercentFactor(ratePercent).Pow(decimal.NewFromInt(int64(years)))
}

// RatioPercent returns num/den*100, or zero when den is zero or negative.
func RatioPercent(num, den decimal.Decimal) decimal.Decimal {
	if den.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return num.Div(den).Mul(hundred)
}

// Ratio returns num/den, or zero when den is zero.
func Ratio(num, den decimal.Decimal) decimal.Decimal {
	if den.IsZero() {
		return decimal.Zero
	}
	return num.Div(den)
}

// NonNegative floors an amount at zero.
func NonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// Min returns the smaller of two amounts.
func Min(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}

// Max returns the larger of two amounts.
func Max(a, b decimal.Decimal) decimal.Decimal {
	if a.GreaterThan(b) {
		return a
	}
	return b
}

// Format renders an amount as whole dollars with thousands separators,
// e.g. -1234567.89 -> "-$1,234,568".
func Format(d decimal.Decimal) string {
	s := d.Round(0).StringFixed(0)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteByte('$')
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	return b.String()
}

// FormatCents renders an amount with two decimal places and a dollar sign.
func FormatCents(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}
