package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/ruralsim/property-calculator/pkg/money"
)

// dutyBracket is one marginal bracket of the NSW transfer duty schedule: a
// base amount plus a marginal rate on the excess over the bracket floor.
type dutyBracket struct {
	upper decimal.Decimal // inclusive upper bound of the bracket
	base  decimal.Decimal
	floor decimal.Decimal
	rate  decimal.Decimal
}

// NSW transfer duty schedule (general rates, late 2023). The final bracket
// covers everything above the premium threshold.
var transferDutyBrackets = []dutyBracket{
	{upper: decimal.NewFromInt(16000), base: decimal.Zero, floor: decimal.Zero, rate: decimal.NewFromFloat(0.0125)},
	{upper: decimal.NewFromInt(35000), base: decimal.NewFromInt(200), floor: decimal.NewFromInt(16000), rate: decimal.NewFromFloat(0.015)},
	{upper: decimal.NewFromInt(93000), base: decimal.NewFromInt(485), floor: decimal.NewFromInt(35000), rate: decimal.NewFromFloat(0.0175)},
	{upper: decimal.NewFromInt(351000), base: decimal.NewFromInt(1500), floor: decimal.NewFromInt(93000), rate: decimal.NewFromFloat(0.035)},
	{upper: decimal.NewFromInt(1168000), base: decimal.NewFromInt(10530), floor: decimal.NewFromInt(351000), rate: decimal.NewFromFloat(0.045)},
	{upper: decimal.NewFromInt(3504000), base: decimal.NewFromInt(47295), floor: decimal.NewFromInt(1168000), rate: decimal.NewFromFloat(0.055)},
}

var topDutyBracket = dutyBracket{
	base:  decimal.NewFromInt(175775),
	floor: decimal.NewFromInt(3504000),
	rate:  decimal.NewFromFloat(0.07),
}

// CalculateStampDuty returns the approximate NSW transfer duty for a
// property value, rounded up to the next whole dollar. Zero or negative
// values owe no duty.
func CalculateStampDuty(propertyValue decimal.Decimal) decimal.Decimal {
	if propertyValue.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	for _, b := range transferDutyBrackets {
		if propertyValue.LessThanOrEqual(b.upper) {
			return money.CeilDollar(b.base.Add(propertyValue.Sub(b.floor).Mul(b.rate)))
		}
	}
	b := topDutyBracket
	return money.CeilDollar(b.base.Add(propertyValue.Sub(b.floor).Mul(b.rate)))
}
