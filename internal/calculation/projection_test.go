package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/ruralsim/property-calculator/internal/domain"
)

// flatScenario strips growth so stream values stay readable in assertions.
func flatScenario() *domain.ScenarioInput {
	input := testScenario()
	input.Assumptions.InflationRate = decimal.Zero
	input.Assumptions.IncomeGrowthRate = decimal.Zero
	input.Assumptions.RentalGrowthRate = decimal.Zero
	return input
}

func TestProjectIncomeExpensesEducationPhases(t *testing.T) {
	input := flatScenario()
	// Change after 3.5 years: original fee through year 3, new fee for 4
	// years starting year 4, nothing from year 8 on.
	rows := ProjectIncomeExpenses(input, nil)

	original := decimal.NewFromInt(50000)
	reduced := decimal.NewFromInt(15000)
	for y := 0; y <= 3; y++ {
		assert.True(t, rows[y].EducationExpenses.Equal(original),
			"year %d: got %s, want original fee", y, rows[y].EducationExpenses)
	}
	for y := 4; y <= 7; y++ {
		assert.True(t, rows[y].EducationExpenses.Equal(reduced),
			"year %d: got %s, want reduced fee", y, rows[y].EducationExpenses)
	}
	for y := 8; y <= input.Assumptions.ProjectionYears; y++ {
		assert.True(t, rows[y].EducationExpenses.IsZero(),
			"year %d: education should have ended", y)
	}
}

func TestProjectIncomeExpensesEducationChangeDisabled(t *testing.T) {
	input := flatScenario()
	input.Events.EducationChange.Include = false
	rows := ProjectIncomeExpenses(input, nil)

	original := decimal.NewFromInt(50000)
	for _, row := range rows {
		assert.True(t, row.EducationExpenses.Equal(original),
			"year %d: fee should run for the whole horizon", row.Year)
	}
}

func TestProjectIncomeExpensesRetirement(t *testing.T) {
	input := flatScenario()
	rows := ProjectIncomeExpenses(input, nil)

	userAnnual := decimal.NewFromInt(2500 * 26)
	partnerAnnual := decimal.NewFromInt(2500 * 26)
	postRetirement := decimal.NewFromInt(50000)

	// Both working before either retirement.
	assert.True(t, rows[6].EmploymentIncome.Equal(userAnnual.Add(partnerAnnual)))

	// User retires in year 7: post-retirement income plus the super lump sum.
	assert.True(t, rows[7].EmploymentIncome.Equal(postRetirement.Add(partnerAnnual)),
		"year 7 employment: got %s", rows[7].EmploymentIncome)
	assert.True(t, rows[7].LumpSumIncome.Equal(decimal.NewFromInt(700000)))
	assert.True(t, rows[8].LumpSumIncome.IsZero(), "lump sum is a one-year event")

	// Partner retires in year 10 with no post-retirement income.
	assert.True(t, rows[10].EmploymentIncome.Equal(postRetirement),
		"year 10 employment: got %s", rows[10].EmploymentIncome)
	assert.True(t, rows[10].LumpSumIncome.Equal(decimal.NewFromInt(600000)))
	assert.True(t, rows[12].EmploymentIncome.Equal(postRetirement),
		"post-retirement income is not indexed")
}

func TestProjectIncomeExpensesGrowth(t *testing.T) {
	input := testScenario()
	input.Events.Super.Include = false
	input.Events.EducationChange.Include = false
	rows := ProjectIncomeExpenses(input, nil)

	// Rental grows at its own rate, not inflation.
	baseRental := input.Income.Rental.Annual()
	wantYear2 := baseRental.Mul(decimal.NewFromFloat(1.035)).Mul(decimal.NewFromFloat(1.035))
	assert.InDelta(t, wantYear2.InexactFloat64(), rows[2].RentalIncome.InexactFloat64(), 0.01)

	// Living expenses grow at inflation.
	baseLiving := input.Expenses.AnnualLiving()
	wantLiving := baseLiving.Mul(decimal.NewFromFloat(1.025))
	assert.InDelta(t, wantLiving.InexactFloat64(), rows[1].LivingExpenses.InexactFloat64(), 0.01)

	// Employment grows at the income growth rate.
	baseEmployment := input.Income.AnnualUserEmployment().Add(input.Income.AnnualPartnerEmployment())
	wantEmployment := baseEmployment.Mul(decimal.NewFromFloat(1.03))
	assert.InDelta(t, wantEmployment.InexactFloat64(), rows[1].EmploymentIncome.InexactFloat64(), 0.01)
}

func TestProjectIncomeExpensesLoanMerge(t *testing.T) {
	input := flatScenario()
	loanRows := []domain.AnnualLoanRow{
		{Year: 0, LoanBalance: decimal.NewFromInt(1000000), MortgagePayment: decimal.Zero},
		{Year: 1, LoanBalance: decimal.NewFromInt(980000), MortgagePayment: decimal.NewFromInt(77000)},
	}
	rows := ProjectIncomeExpenses(input, loanRows)

	assert.True(t, rows[0].LoanBalance.Equal(decimal.NewFromInt(1000000)))
	assert.True(t, rows[0].MortgagePayment.IsZero())
	assert.True(t, rows[1].MortgagePayment.Equal(decimal.NewFromInt(77000)))
	assert.True(t, rows[1].TotalExpenses.Equal(rows[1].TotalExpensesExclMortgage.Add(decimal.NewFromInt(77000))))

	// Years past the schedule carry no payment or balance.
	assert.True(t, rows[2].MortgagePayment.IsZero())
	assert.True(t, rows[2].LoanBalance.IsZero())
}

func TestProjectIncomeExpensesZeroYearZeroNet(t *testing.T) {
	input := testScenario()
	rows := ProjectIncomeExpenses(input, nil)
	assert.True(t, rows[0].NetCashflow.IsZero())
	assert.True(t, rows[0].CumulativeCashflow.IsZero())
	assert.False(t, rows[0].TotalIncome.IsZero(), "year 0 still reports its streams")
}
