package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/ruralsim/property-calculator/internal/domain"
)

func TestApplyValuation(t *testing.T) {
	input := testScenario()
	rows := []domain.ProjectionRow{
		{Year: 0, LoanBalance: decimal.NewFromInt(1478580)},
		{Year: 1, LoanBalance: decimal.NewFromInt(1450000)},
		{Year: 2, LoanBalance: decimal.NewFromInt(1420000)},
	}
	ApplyValuation(input, rows)

	assert.True(t, rows[0].PropertyValue.Equal(decimal.NewFromInt(1700000)),
		"year 0 value is the purchase price")
	assert.InDelta(t, 1768000, rows[1].PropertyValue.InexactFloat64(), 0.01, "4 percent growth in year 1")
	assert.InDelta(t, 1838720, rows[2].PropertyValue.InexactFloat64(), 0.01)

	assert.True(t, rows[1].Equity.Equal(rows[1].PropertyValue.Sub(rows[1].LoanBalance)))
	assert.InDelta(t, 82.01, rows[1].LVRPercent.InexactFloat64(), 0.01)
}

func TestApplyValuationNegativeGrowth(t *testing.T) {
	input := testScenario()
	input.Assumptions.PropertyGrowthRate = decimal.NewFromInt(-10)
	rows := []domain.ProjectionRow{
		{Year: 0, LoanBalance: decimal.NewFromInt(1600000)},
		{Year: 1, LoanBalance: decimal.NewFromInt(1600000)},
	}
	ApplyValuation(input, rows)

	// 1.7m falling 10%: equity can go negative but LVR stays clipped at the
	// raw ratio, which now exceeds 100.
	assert.InDelta(t, 1530000, rows[1].PropertyValue.InexactFloat64(), 0.01)
	assert.True(t, rows[1].Equity.IsNegative(), "equity: got %s", rows[1].Equity)
	assert.True(t, rows[1].LVRPercent.GreaterThan(decimal.NewFromInt(100)))
}

func TestComputeRatios(t *testing.T) {
	rows := []domain.ProjectionRow{
		{Year: 0},
		{
			Year:            1,
			TotalIncome:     decimal.NewFromInt(200000),
			TotalExpenses:   decimal.NewFromInt(180000),
			MortgagePayment: decimal.NewFromInt(80000),
		},
	}
	ratios := ComputeRatios(decimal.NewFromInt(1450000), rows)

	assert.InDelta(t, 7.25, ratios.DebtToIncome.InexactFloat64(), 0.001)
	assert.InDelta(t, 0.9, ratios.ExpenseToIncome.InexactFloat64(), 0.001)
	assert.InDelta(t, 0.4, ratios.MortgageToIncome.InexactFloat64(), 0.001)
}

func TestComputeRatiosZeroIncome(t *testing.T) {
	rows := []domain.ProjectionRow{{Year: 0}, {Year: 1}}
	ratios := ComputeRatios(decimal.NewFromInt(1450000), rows)
	assert.True(t, ratios.DebtToIncome.IsZero(), "zero income reports zero, not infinity")
	assert.True(t, ratios.ExpenseToIncome.IsZero())
	assert.True(t, ratios.MortgageToIncome.IsZero())
}

func TestComputeRatiosBreakEven(t *testing.T) {
	neg := decimal.NewFromInt(-10000)
	rows := []domain.ProjectionRow{
		{Year: 0, CumulativeCashflow: decimal.Zero},
		{Year: 1, CumulativeCashflow: neg},
		{Year: 2, CumulativeCashflow: neg},
		{Year: 3, CumulativeCashflow: decimal.NewFromInt(5000)},
		{Year: 4, CumulativeCashflow: neg},
	}
	ratios := ComputeRatios(decimal.Zero, rows)
	if ratios.BreakEvenYear == nil {
		t.Fatal("expected a break-even year")
	}
	assert.Equal(t, 3, *ratios.BreakEvenYear, "first non-negative cumulative year wins")
}

func TestComputeRatiosNoBreakEven(t *testing.T) {
	neg := decimal.NewFromInt(-10000)
	rows := []domain.ProjectionRow{
		{Year: 0, CumulativeCashflow: decimal.Zero},
		{Year: 1, CumulativeCashflow: neg},
		{Year: 2, CumulativeCashflow: neg},
	}
	ratios := ComputeRatios(decimal.Zero, rows)
	assert.Nil(t, ratios.BreakEvenYear)
}
