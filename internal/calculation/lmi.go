package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/ruralsim/property-calculator/pkg/money"
)

// lmiTier maps an LVR band to a rough percentage-of-loan premium estimate.
// Actual premiums vary significantly by lender.
type lmiTier struct {
	maxLVR decimal.Decimal // inclusive upper bound of the band
	rate   decimal.Decimal
}

var lmiTiers = []lmiTier{
	{maxLVR: decimal.NewFromInt(85), rate: decimal.NewFromFloat(0.010)},
	{maxLVR: decimal.NewFromInt(90), rate: decimal.NewFromFloat(0.018)},
	{maxLVR: decimal.NewFromInt(95), rate: decimal.NewFromFloat(0.035)},
}

var lmiTopRate = decimal.NewFromFloat(0.045)

// lmiDutyFactor approximates the stamp duty charged on the premium itself.
var lmiDutyFactor = decimal.NewFromFloat(1.095)

var lmiThreshold = decimal.NewFromInt(80)

// EstimateLMI estimates the lenders mortgage insurance premium for a loan
// and returns it together with the loan-to-value ratio in percent. No
// premium applies at or below 80% LVR. A non-positive price yields (0, 0)
// rather than an error.
func EstimateLMI(propertyPrice, loanAmount decimal.Decimal) (premium, lvr decimal.Decimal) {
	if propertyPrice.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, decimal.Zero
	}
	lvr = money.RatioPercent(loanAmount, propertyPrice)
	if lvr.LessThanOrEqual(lmiThreshold) {
		return decimal.Zero, lvr
	}
	rate := lmiTopRate
	for _, tier := range lmiTiers {
		if lvr.LessThanOrEqual(tier.maxLVR) {
			rate = tier.rate
			break
		}
	}
	premium = money.CeilDollar(loanAmount.Mul(rate).Mul(lmiDutyFactor))
	return premium, lvr
}
