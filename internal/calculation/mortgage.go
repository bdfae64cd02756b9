package calculation

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/ruralsim/property-calculator/internal/domain"
	"github.com/ruralsim/property-calculator/pkg/money"
)

const monthsPerYear = 12

var twelve = decimal.NewFromInt(monthsPerYear)

// monthlyRate converts an annual percentage rate to a monthly decimal rate.
func monthlyRate(annualRate decimal.Decimal) decimal.Decimal {
	return annualRate.Div(decimal.NewFromInt(100)).Div(twelve)
}

// amortPow computes (1+r)^n in float64, used both for the payment formula
// and to detect numeric blow-ups before they propagate.
func amortPow(r decimal.Decimal, n int) float64 {
	rf, _ := r.Float64()
	return math.Pow(1+rf, float64(n))
}

// CalculateMonthlyPayment returns the fixed monthly repayment for a standard
// amortizing loan, plus a warning string when the inputs are numerically
// degenerate. Non-positive loan, rate, or term all yield a zero payment.
func CalculateMonthlyPayment(loanAmount, annualRate decimal.Decimal, termYears int) (decimal.Decimal, string) {
	if loanAmount.LessThanOrEqual(decimal.Zero) || annualRate.LessThanOrEqual(decimal.Zero) || termYears <= 0 {
		return decimal.Zero, ""
	}
	r := monthlyRate(annualRate)
	n := termYears * monthsPerYear

	factor := amortPow(r, n)
	if math.IsInf(factor, 0) || math.IsNaN(factor) {
		return decimal.Zero, fmt.Sprintf(
			"payment calculation overflowed for rate %s%% over %d years; treating payment as 0",
			annualRate.String(), termYears)
	}
	if factor == 1 {
		// Rate too small to register; fall back to straight-line repayment.
		return loanAmount.Div(decimal.NewFromInt(int64(n))), ""
	}

	growth := decimal.NewFromFloat(factor)
	numerator := loanAmount.Mul(r).Mul(growth)
	denominator := growth.Sub(decimal.NewFromInt(1))
	return numerator.Div(denominator), ""
}

// ProjectMonthlyBalances simulates the loan balance month by month and
// returns the series indexed 0..termYears*12, where index 0 is the balance
// at origination. The balance never goes negative and stays at zero once the
// loan is paid off. A positive rate with a non-positive payment compounds
// the balance upward and produces a warning.
func ProjectMonthlyBalances(loanAmount, annualRate, monthlyPayment decimal.Decimal, termYears int) ([]decimal.Decimal, string) {
	if termYears < 0 {
		termYears = 0
	}
	months := termYears * monthsPerYear
	balances := make([]decimal.Decimal, months+1)
	for i := range balances {
		balances[i] = decimal.Zero
	}
	if loanAmount.LessThanOrEqual(decimal.Zero) || months == 0 {
		return balances, ""
	}

	r := decimal.Zero
	if annualRate.GreaterThan(decimal.Zero) {
		r = monthlyRate(annualRate)
	}

	if monthlyPayment.LessThanOrEqual(decimal.Zero) {
		balances[0] = loanAmount
		if r.IsPositive() {
			bal := loanAmount
			growth := decimal.NewFromInt(1).Add(r)
			for m := 1; m <= months; m++ {
				bal = bal.Mul(growth).Round(8)
				balances[m] = bal
			}
			return balances, fmt.Sprintf(
				"monthly payment is %s with a positive interest rate; balance compounds instead of amortizing",
				money.Format(monthlyPayment))
		}
		for m := 1; m <= months; m++ {
			balances[m] = loanAmount
		}
		return balances, ""
	}

	bal := loanAmount
	balances[0] = bal
	for m := 1; m <= months; m++ {
		interest := money.NonNegative(bal.Mul(r))
		actual := decimal.Zero
		if bal.IsPositive() {
			actual = money.Min(monthlyPayment, bal.Add(interest))
		}
		principal := money.NonNegative(actual.Sub(interest))
		bal = money.NonNegative(bal.Sub(principal)).Round(8)
		balances[m] = bal
		if bal.IsZero() {
			break // remainder of the series stays zero-filled
		}
	}
	return balances, ""
}

// AnnualizeLoanSchedule collapses a monthly balance series into per-year
// rows for the projection horizon: the balance snapshot at each year
// boundary and the payment (interest plus principal reduction) made over
// the twelve months ending at that snapshot. Year 0 is origination and
// carries no payment; years past the loan term are zero. Summing the
// annual payments over the loan's active years recovers total interest
// plus the original principal.
func AnnualizeLoanSchedule(balances []decimal.Decimal, annualRate decimal.Decimal, termYears, projectionYears int) []domain.AnnualLoanRow {
	if projectionYears < 0 {
		projectionYears = 0
	}
	rows := make([]domain.AnnualLoanRow, projectionYears+1)
	for y := range rows {
		rows[y] = domain.AnnualLoanRow{Year: y, LoanBalance: decimal.Zero, MortgagePayment: decimal.Zero}
	}
	if len(balances) == 0 || termYears <= 0 {
		return rows
	}

	fullTerm := termYears * monthsPerYear
	series := make([]decimal.Decimal, fullTerm+1)
	for i := range series {
		if i < len(balances) {
			series[i] = balances[i]
		} else {
			series[i] = decimal.Zero
		}
	}

	r := decimal.Zero
	if annualRate.GreaterThan(decimal.Zero) {
		r = monthlyRate(annualRate)
	}

	for y := 0; y <= projectionYears; y++ {
		snapshot := y * monthsPerYear
		if snapshot < len(series) {
			rows[y].LoanBalance = series[snapshot]
		}
		if y == 0 {
			continue
		}
		startMonth := (y - 1) * monthsPerYear
		if startMonth >= fullTerm {
			continue
		}
		endMonth := startMonth + monthsPerYear
		if endMonth > fullTerm {
			endMonth = fullTerm
		}
		interest := decimal.Zero
		for m := startMonth; m < endMonth; m++ {
			interest = interest.Add(money.NonNegative(series[m].Mul(r)))
		}
		principal := money.NonNegative(series[startMonth].Sub(series[endMonth]))
		rows[y].MortgagePayment = interest.Add(principal)
	}
	return rows
}
