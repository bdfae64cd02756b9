package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/ruralsim/property-calculator/internal/domain"
	"github.com/ruralsim/property-calculator/pkg/money"
)

// ApplyValuation fills the property value, equity, and LVR columns. The
// property compounds at the growth rate from the purchase price; equity is
// value less loan balance and may go negative if the property falls faster
// than the loan amortizes. LVR is clipped at zero and is zero whenever the
// property value is non-positive.
func ApplyValuation(input *domain.ScenarioInput, rows []domain.ProjectionRow) {
	price := input.Property.PurchasePrice
	for y := range rows {
		value := price.Mul(money.GrowthFactor(input.Assumptions.PropertyGrowthRate, rows[y].Year))
		rows[y].PropertyValue = value
		rows[y].Equity = value.Sub(rows[y].LoanBalance)
		rows[y].LVRPercent = money.NonNegative(money.RatioPercent(rows[y].LoanBalance, value))
	}
}

// ComputeRatios derives the Year-1 affordability ratios and the first
// break-even year. Ratios against a zero income are reported as zero rather
// than an error, mirroring the degenerate-input policy elsewhere.
func ComputeRatios(finalLoan decimal.Decimal, rows []domain.ProjectionRow) domain.Ratios {
	var ratios domain.Ratios
	if len(rows) == 0 {
		return ratios
	}
	y1 := rows[0]
	if len(rows) > 1 {
		y1 = rows[1]
	}
	ratios.DebtToIncome = money.Ratio(finalLoan, y1.TotalIncome)
	ratios.ExpenseToIncome = money.Ratio(y1.TotalExpenses, y1.TotalIncome)
	ratios.MortgageToIncome = money.Ratio(y1.MortgagePayment, y1.TotalIncome)

	for y := 1; y < len(rows); y++ {
		if rows[y].CumulativeCashflow.GreaterThanOrEqual(decimal.Zero) {
			year := rows[y].Year
			ratios.BreakEvenYear = &year
			break
		}
	}
	return ratios
}
