package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/ruralsim/property-calculator/internal/domain"
)

// stressScenario perturbs the Year-1 position: occupancy and agistment
// factors scale those income streams, and the rate increase is added to the
// loan's interest rate before recomputing the mortgage payment.
type stressScenario struct {
	name            string
	occupancyFactor decimal.Decimal
	agistmentFactor decimal.Decimal
	rateIncrease    decimal.Decimal
}

var (
	one  = decimal.NewFromInt(1)
	half = decimal.NewFromFloat(0.5)
)

// The fixed stress menu, evaluated and reported in this order.
var stressScenarios = []stressScenario{
	{name: "Base Case", occupancyFactor: one, agistmentFactor: one, rateIncrease: decimal.Zero},
	{name: "No Rental Income", occupancyFactor: decimal.Zero, agistmentFactor: one, rateIncrease: decimal.Zero},
	{name: "No Agistment Income", occupancyFactor: one, agistmentFactor: decimal.Zero, rateIncrease: decimal.Zero},
	{name: "Reduced Agistment (50%)", occupancyFactor: one, agistmentFactor: half, rateIncrease: decimal.Zero},
	{name: "Interest Rate +2%", occupancyFactor: one, agistmentFactor: one, rateIncrease: decimal.NewFromInt(2)},
	{name: "Interest Rate +3%", occupancyFactor: one, agistmentFactor: one, rateIncrease: decimal.NewFromInt(3)},
	{name: "Stress Test (Vacant 50%, Low Agist 50%, Rate +2%)", occupancyFactor: half, agistmentFactor: half, rateIncrease: decimal.NewFromInt(2)},
}

// EvaluateStressScenarios runs the fixed scenario menu against the Year-1
// row: income streams are scaled, the mortgage payment is recomputed at the
// perturbed rate on the final loan amount, and the annual net position is
// income less Year-1 non-mortgage expenses less the stressed mortgage. Lump
// sums are excluded from scenario income. A nil Year-1 row yields nil.
func EvaluateStressScenarios(input *domain.ScenarioInput, finalLoan decimal.Decimal, year1 *domain.ProjectionRow) []domain.StressResult {
	if year1 == nil {
		return nil
	}
	baseExpenses := year1.SumExpensesExclMortgage()

	results := make([]domain.StressResult, 0, len(stressScenarios))
	for _, s := range stressScenarios {
		rental := year1.RentalIncome.Mul(s.occupancyFactor)
		agistment := year1.AgistmentIncome.Mul(s.agistmentFactor)
		income := year1.EmploymentIncome.Add(rental).Add(agistment)

		rate := input.Financing.InterestRate.Add(s.rateIncrease)
		monthly, _ := CalculateMonthlyPayment(finalLoan, rate, input.Financing.LoanTermYears)
		annualMortgage := monthly.Mul(twelve)

		net := income.Sub(baseExpenses.Add(annualMortgage))
		results = append(results, domain.StressResult{
			Name:               s.name,
			AnnualNetPosition:  net,
			MonthlyNetPosition: net.Div(twelve),
			InterestRate:       rate,
			AnnualMortgage:     annualMortgage,
		})
	}
	return results
}
