package calculation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/ruralsim/property-calculator/internal/domain"
)

// testScenario is the shared fixture: a 1.7m rural purchase funded by 250k
// of deposit (200k equity release plus 50k cash), financed at 6% over 25
// years, with rental and agistment income and both retirements inside the
// 25-year horizon.
func testScenario() *domain.ScenarioInput {
	return &domain.ScenarioInput{
		Property: domain.Property{
			PurchasePrice:     decimal.NewFromInt(1700000),
			CurrentHomeValue:  decimal.NewFromInt(1000000),
			OtherUpfrontCosts: decimal.NewFromInt(5000),
		},
		Financing: domain.Financing{
			UseEquity:         true,
			EquityPercent:     decimal.NewFromInt(20),
			AdditionalDeposit: decimal.NewFromInt(50000),
			CapitalizeLMI:     true,
			InterestRate:      decimal.NewFromInt(6),
			LoanTermYears:     25,
		},
		Income: domain.Income{
			UserFortnightly:    decimal.NewFromInt(2500),
			PartnerFortnightly: decimal.NewFromInt(2500),
			Rental: domain.RentalIncome{
				Include:          true,
				WeeklyRent:       decimal.NewFromInt(450),
				OccupancyPercent: decimal.NewFromInt(90),
			},
			Agistment: domain.AgistmentIncome{
				Include:         true,
				Head:            20,
				RatePerHeadWeek: decimal.NewFromInt(8),
			},
		},
		Expenses: domain.Expenses{
			FortnightlyLiving: decimal.NewFromInt(3000),
			Education: domain.EducationCosts{
				Children:          1,
				AnnualFeePerChild: decimal.NewFromInt(50000),
			},
			CouncilRates:   decimal.NewFromInt(2500),
			Insurance:      decimal.NewFromInt(2000),
			Maintenance:    decimal.NewFromInt(6000),
			AgistmentCosts: decimal.NewFromInt(2000),
			OtherProperty:  decimal.NewFromInt(1000),
		},
		Events: domain.Events{
			Super: domain.SuperEvents{
				Include:                  true,
				UserRetireYear:           7,
				UserSuperAmount:          decimal.NewFromInt(700000),
				UserPostRetirementIncome: decimal.NewFromInt(50000),
				PartnerRetireYear:        10,
				PartnerSuperAmount:       decimal.NewFromInt(600000),
				ApplyUserSuperToMortgage: true,
			},
			EducationChange: domain.EducationChange{
				Include:              true,
				YearsUntilChange:     decimal.NewFromFloat(3.5),
				NewAnnualFeePerChild: decimal.NewFromInt(15000),
				DurationYears:        4,
			},
		},
		Assumptions: domain.Assumptions{
			InflationRate:      decimal.NewFromFloat(2.5),
			PropertyGrowthRate: decimal.NewFromInt(4),
			IncomeGrowthRate:   decimal.NewFromInt(3),
			RentalGrowthRate:   decimal.NewFromFloat(3.5),
			ProjectionYears:    25,
		},
	}
}

func TestEngineProjectNilInput(t *testing.T) {
	engine := NewEngine()
	_, err := engine.Project(nil)
	assert.ErrorIs(t, err, ErrNilInput)
}

func TestEngineUpfrontCosts(t *testing.T) {
	engine := NewEngine()
	result, err := engine.Project(testScenario())
	if err != nil {
		t.Fatalf("project failed: %v", err)
	}

	up := result.Upfront
	assert.True(t, up.DepositFunds.Equal(decimal.NewFromInt(250000)),
		"deposit funds: got %s", up.DepositFunds)
	assert.True(t, up.EquityContribution.Equal(decimal.NewFromInt(200000)))
	assert.True(t, up.BaseLoanAmount.Equal(decimal.NewFromInt(1450000)),
		"base loan: got %s", up.BaseLoanAmount)

	// 85.3% LVR sits in the 1.8% band; the premium is capitalized.
	assert.InDelta(t, 85.29, up.InitialLVR.InexactFloat64(), 0.01)
	assert.True(t, up.LMIPremium.Equal(decimal.NewFromInt(28580)), "premium: got %s", up.LMIPremium)
	assert.True(t, up.LMICapitalized)
	assert.True(t, up.LMIPayable.IsZero(), "capitalized premium is not payable at settlement")
	assert.True(t, up.FinalLoanAmount.Equal(decimal.NewFromInt(1478580)),
		"final loan: got %s", up.FinalLoanAmount)

	assert.True(t, up.StampDuty.Equal(decimal.NewFromInt(76555)))
	assert.True(t, up.DepositPaid.Equal(decimal.NewFromInt(221420)))
	// deposit paid + duty + other upfront
	assert.True(t, up.TotalFundsRequired.Equal(decimal.NewFromInt(302975)),
		"funds required: got %s", up.TotalFundsRequired)
	assert.True(t, up.Surplus.Equal(decimal.NewFromInt(-52975)),
		"surplus: got %s", up.Surplus)
}

func TestEngineUpfrontCostsPayableLMI(t *testing.T) {
	input := testScenario()
	input.Financing.CapitalizeLMI = false

	engine := NewEngine()
	result, err := engine.Project(input)
	if err != nil {
		t.Fatalf("project failed: %v", err)
	}

	up := result.Upfront
	assert.False(t, up.LMICapitalized)
	assert.True(t, up.LMIPayable.Equal(up.LMIPremium))
	assert.True(t, up.FinalLoanAmount.Equal(up.BaseLoanAmount))
}

func TestEngineLoanAmountOverride(t *testing.T) {
	input := testScenario()
	override := decimal.NewFromInt(1000000)
	input.Financing.LoanAmountOverride = &override

	engine := NewEngine()
	result, err := engine.Project(input)
	if err != nil {
		t.Fatalf("project failed: %v", err)
	}
	assert.True(t, result.Upfront.FinalLoanAmount.Equal(override))
}

func TestEngineProjectRowShape(t *testing.T) {
	input := testScenario()
	engine := NewEngine()
	result, err := engine.Project(input)
	if err != nil {
		t.Fatalf("project failed: %v", err)
	}

	if len(result.Rows) != input.Assumptions.ProjectionYears+1 {
		t.Fatalf("expected %d rows, got %d", input.Assumptions.ProjectionYears+1, len(result.Rows))
	}
	assert.True(t, result.Rows[0].NetCashflow.IsZero(), "year 0 net cash flow is zero by definition")
	assert.Empty(t, result.Warnings)

	// Cumulative cash flow is the running sum of net.
	running := decimal.Zero
	for _, row := range result.Rows {
		running = running.Add(row.NetCashflow)
		assert.True(t, row.CumulativeCashflow.Equal(running),
			"cumulative mismatch at year %d", row.Year)
	}
}

func TestEngineProjectIdempotent(t *testing.T) {
	input := testScenario()
	engine := NewEngine()

	first, err := engine.Project(input)
	if err != nil {
		t.Fatalf("first project failed: %v", err)
	}
	second, err := engine.Project(input)
	if err != nil {
		t.Fatalf("second project failed: %v", err)
	}

	assert.Equal(t, len(first.Rows), len(second.Rows))
	for i := range first.Rows {
		assert.True(t, first.Rows[i].NetCashflow.Equal(second.Rows[i].NetCashflow),
			"net cash flow differs at year %d", i)
		assert.True(t, first.Rows[i].LoanBalance.Equal(second.Rows[i].LoanBalance),
			"loan balance differs at year %d", i)
	}
	assert.True(t, first.Upfront.TotalFundsRequired.Equal(second.Upfront.TotalFundsRequired))
}

func TestEngineWarningsOnDegenerateLoan(t *testing.T) {
	input := testScenario()
	// A vanishingly small but positive rate: the payment approaches the
	// straight-line P/n and the pipeline must stay warning-free.
	override := decimal.NewFromInt(500000)
	input.Financing.LoanAmountOverride = &override
	input.Financing.InterestRate = decimal.NewFromFloat(0.0000000001)

	engine := NewEngine()
	result, err := engine.Project(input)
	if err != nil {
		t.Fatalf("project failed: %v", err)
	}
	// A vanishingly small rate falls back to straight-line repayment and
	// must not warn.
	assert.Empty(t, result.Warnings)
	last := result.Rows[len(result.Rows)-1]
	assert.True(t, last.LoanBalance.LessThan(decimal.NewFromInt(1)),
		"loan should still be repaid: %s", last.LoanBalance)
}

func TestEngineWarnsOnPaymentOverflow(t *testing.T) {
	input := testScenario()
	// A rate large enough to overflow the amortization factor: the payment
	// collapses to zero with a warning, and the unamortized balance then
	// compounds, which warns again.
	input.Assumptions.ProjectionYears = 3
	override := decimal.NewFromInt(500000)
	input.Financing.LoanAmountOverride = &override
	input.Financing.InterestRate = decimal.NewFromInt(20000)

	engine := NewEngine()
	result, err := engine.Project(input)
	if err != nil {
		t.Fatalf("project failed: %v", err)
	}
	if len(result.Warnings) < 2 {
		t.Fatalf("expected overflow and compounding warnings, got %v", result.Warnings)
	}
	assert.Contains(t, result.Warnings[0], "overflowed")
	assert.Contains(t, result.Warnings[1], "compounds")

	// The projection still completes; the balance grows instead of shrinking.
	assert.True(t, result.Rows[1].LoanBalance.GreaterThan(override),
		"balance should compound once the payment is zero: %s", result.Rows[1].LoanBalance)
}

func TestEngineEvaluateScenarios(t *testing.T) {
	engine := NewEngine()
	result, stress, err := engine.EvaluateScenarios(testScenario())
	if err != nil {
		t.Fatalf("evaluate failed: %v", err)
	}
	assert.NotNil(t, result)
	if len(stress) != 7 {
		t.Fatalf("expected 7 stress scenarios, got %d", len(stress))
	}
	assert.Equal(t, "Base Case", stress[0].Name)
}
