package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/ruralsim/property-calculator/internal/domain"
	"github.com/ruralsim/property-calculator/pkg/money"
)

// ApplyMortgagePayoff applies the user's super lump sum against the loan
// balance in the retirement year, when that option is enabled and the
// retirement falls within the horizon. The applied amount is capped at the
// outstanding balance; any remainder of the lump sum stays as ordinary
// income already booked by the projector.
//
// From the payoff year on, the loan balance is rewritten to the reduced
// amount and the regular mortgage payment drops to zero. Net and cumulative
// cash flow are recomputed for the whole table, with the payoff amount
// treated as an outgoing in its year. Returns the amount applied (zero when
// nothing happened).
func ApplyMortgagePayoff(input *domain.ScenarioInput, rows []domain.ProjectionRow) decimal.Decimal {
	super := input.Events.Super
	if !super.Include || !super.ApplyUserSuperToMortgage {
		return decimal.Zero
	}
	payoffYear := super.UserRetireYear
	if payoffYear < 0 || payoffYear > input.Assumptions.ProjectionYears || payoffYear >= len(rows) {
		return decimal.Zero
	}

	balance := rows[payoffYear].LoanBalance
	applied := money.NonNegative(money.Min(super.UserSuperAmount, balance))
	if !applied.IsPositive() {
		return decimal.Zero
	}
	newBalance := money.NonNegative(balance.Sub(applied))

	for y := payoffYear; y < len(rows); y++ {
		rows[y].LoanBalance = newBalance
		rows[y].MortgagePayment = decimal.Zero
		rows[y].TotalExpenses = rows[y].TotalExpensesExclMortgage
	}
	rows[payoffYear].MortgageLumpSumPayment = applied

	cumulative := decimal.Zero
	for y := range rows {
		if y == 0 {
			rows[y].NetCashflow = decimal.Zero
		} else {
			rows[y].NetCashflow = rows[y].TotalIncome.
				Sub(rows[y].TotalExpenses).
				Sub(rows[y].MortgageLumpSumPayment)
		}
		cumulative = cumulative.Add(rows[y].NetCashflow)
		rows[y].CumulativeCashflow = cumulative
	}
	return applied
}
