package domain

import (
	"github.com/shopspring/decimal"
)

// AnnualLoanRow is one year of the aggregated loan schedule: the balance
// snapshot at the 12-month boundary and the principal+interest actually paid
// during that year. Year 0 is origination (payment defined as zero).
type AnnualLoanRow struct {
	Year            int             `json:"year"`
	LoanBalance     decimal.Decimal `json:"loan_balance"`
	MortgagePayment decimal.Decimal `json:"mortgage_payment"`
}

// ProjectionRow is the complete cash flow picture for a single projection
// year. Year 0 is the pre-settlement baseline: its net cash flow is zero by
// definition.
type ProjectionRow struct {
	Year int `json:"year"`

	// Income
	EmploymentIncome decimal.Decimal `json:"employment_income"`
	RentalIncome     decimal.Decimal `json:"rental_income"`
	AgistmentIncome  decimal.Decimal `json:"agistment_income"`
	LumpSumIncome    decimal.Decimal `json:"lump_sum_income"`
	TotalIncome      decimal.Decimal `json:"total_income"`

	// Expenses
	LivingExpenses        decimal.Decimal `json:"living_expenses"`
	EducationExpenses     decimal.Decimal `json:"education_expenses"`
	CouncilRates          decimal.Decimal `json:"council_rates"`
	Insurance             decimal.Decimal `json:"insurance"`
	Maintenance           decimal.Decimal `json:"maintenance"`
	AgistmentCosts        decimal.Decimal `json:"agistment_costs"`
	OtherPropertyExpenses decimal.Decimal `json:"other_property_expenses"`
	MortgagePayment       decimal.Decimal `json:"mortgage_payment"`

	TotalExpensesExclMortgage decimal.Decimal `json:"total_expenses_excl_mortgage"`
	TotalExpenses             decimal.Decimal `json:"total_expenses"`

	// MortgageLumpSumPayment is the super amount actually applied to the
	// loan in this year (zero everywhere except a payoff year).
	MortgageLumpSumPayment decimal.Decimal `json:"mortgage_lump_sum_payment"`

	NetCashflow        decimal.Decimal `json:"net_cashflow"`
	CumulativeCashflow decimal.Decimal `json:"cumulative_cashflow"`

	// Valuation columns
	LoanBalance   decimal.Decimal `json:"loan_balance"`
	PropertyValue decimal.Decimal `json:"property_value"`
	Equity        decimal.Decimal `json:"equity"`
	LVRPercent    decimal.Decimal `json:"lvr_percent"`
}

// SumIncome recomputes total income from the component streams.
func (r *ProjectionRow) SumIncome() decimal.Decimal {
	return r.EmploymentIncome.Add(r.RentalIncome).Add(r.AgistmentIncome).Add(r.LumpSumIncome)
}

// SumExpensesExclMortgage recomputes the non-mortgage expense total.
func (r *ProjectionRow) SumExpensesExclMortgage() decimal.Decimal {
	return r.LivingExpenses.Add(r.EducationExpenses).Add(r.CouncilRates).
		Add(r.Insurance).Add(r.Maintenance).Add(r.AgistmentCosts).
		Add(r.OtherPropertyExpenses)
}

// UpfrontCosts summarizes the one-time funds position at settlement.
type UpfrontCosts struct {
	StampDuty      decimal.Decimal `json:"stamp_duty"`
	LMIPremium     decimal.Decimal `json:"lmi_premium"`
	LMIPayable     decimal.Decimal `json:"lmi_payable"` // zero when capitalized
	LMICapitalized bool            `json:"lmi_capitalized"`

	InitialLVR decimal.Decimal `json:"initial_lvr"` // before any capitalization
	FinalLVR   decimal.Decimal `json:"final_lvr"`   // on the final loan amount

	DepositFunds       decimal.Decimal `json:"deposit_funds"`
	EquityContribution decimal.Decimal `json:"equity_contribution"`
	BaseLoanAmount     decimal.Decimal `json:"base_loan_amount"`
	FinalLoanAmount    decimal.Decimal `json:"final_loan_amount"`
	DepositPaid        decimal.Decimal `json:"deposit_paid"`
	TotalFundsRequired decimal.Decimal `json:"total_funds_required"`
	Surplus            decimal.Decimal `json:"surplus"` // negative means shortfall
}

// Ratios holds the Year-1 affordability ratios and the break-even point.
type Ratios struct {
	DebtToIncome     decimal.Decimal `json:"debt_to_income"`
	ExpenseToIncome  decimal.Decimal `json:"expense_to_income"`
	MortgageToIncome decimal.Decimal `json:"mortgage_to_income"`
	// BreakEvenYear is the first year >= 1 whose cumulative cash flow is
	// non-negative; nil when it never happens within the horizon.
	BreakEvenYear *int `json:"break_even_year,omitempty"`
}

// ProjectionResult is the full output of one projection run.
type ProjectionResult struct {
	Upfront  UpfrontCosts    `json:"upfront"`
	Rows     []ProjectionRow `json:"rows"`
	Ratios   Ratios          `json:"ratios"`
	Warnings []string        `json:"warnings,omitempty"`
}

// Year1 returns the first operating year's row; for a degenerate zero-year
// horizon it falls back to year 0. Returns nil for an empty projection.
func (p *ProjectionResult) Year1() *ProjectionRow {
	if len(p.Rows) > 1 {
		return &p.Rows[1]
	}
	if len(p.Rows) == 1 {
		return &p.Rows[0]
	}
	return nil
}

// StressResult is one named stress scenario evaluated against Year-1
// figures. Result slices keep the insertion order of the fixed scenario
// menu: the first row is always the base case.
type StressResult struct {
	Name               string          `json:"name"`
	AnnualNetPosition  decimal.Decimal `json:"annual_net_position"`
	MonthlyNetPosition decimal.Decimal `json:"monthly_net_position"`
	InterestRate       decimal.Decimal `json:"interest_rate"`
	AnnualMortgage     decimal.Decimal `json:"annual_mortgage"`
}
