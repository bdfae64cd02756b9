package calculation

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/ruralsim/property-calculator/internal/domain"
	"github.com/ruralsim/property-calculator/pkg/money"
)

// ErrNilInput is returned when a projection is requested without a scenario.
var ErrNilInput = errors.New("nil scenario input")

// Engine runs the projection pipeline. It holds no per-run state: the same
// input always produces the same result, and concurrent Project calls on one
// Engine are safe as long as the logger is.
type Engine struct {
	Logger Logger
}

// NewEngine returns an engine with a no-op logger.
func NewEngine() *Engine {
	return &Engine{Logger: NopLogger{}}
}

// SetLogger replaces the engine's logger; a nil logger restores the no-op.
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		l = NopLogger{}
	}
	e.Logger = l
}

// Project runs the full projection for one scenario: upfront costs, loan
// schedule, income and expense table, optional super payoff, valuation, and
// ratios. Degenerate inputs produce zeroed figures and warnings rather than
// errors; the only error is a nil input.
func (e *Engine) Project(input *domain.ScenarioInput) (*domain.ProjectionResult, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	result := &domain.ProjectionResult{}
	result.Upfront = e.computeUpfront(input)
	e.Logger.Debugf("upfront: loan %s at LVR %s%%, funds required %s",
		money.Format(result.Upfront.FinalLoanAmount),
		result.Upfront.FinalLVR.StringFixed(1),
		money.Format(result.Upfront.TotalFundsRequired))

	finalLoan := result.Upfront.FinalLoanAmount
	rate := input.Financing.InterestRate
	term := input.Financing.LoanTermYears

	monthlyPayment, warn := CalculateMonthlyPayment(finalLoan, rate, term)
	if warn != "" {
		result.Warnings = append(result.Warnings, warn)
		e.Logger.Warnf("%s", warn)
	}

	balances, warn := ProjectMonthlyBalances(finalLoan, rate, monthlyPayment, term)
	if warn != "" {
		result.Warnings = append(result.Warnings, warn)
		e.Logger.Warnf("%s", warn)
	}

	loanRows := AnnualizeLoanSchedule(balances, rate, term, input.Assumptions.ProjectionYears)
	result.Rows = ProjectIncomeExpenses(input, loanRows)

	applied := ApplyMortgagePayoff(input, result.Rows)
	if applied.IsPositive() {
		e.Logger.Infof("applied %s of super to the mortgage in year %d",
			money.Format(applied), input.Events.Super.UserRetireYear)
	}

	ApplyValuation(input, result.Rows)
	result.Ratios = ComputeRatios(finalLoan, result.Rows)
	return result, nil
}

// EvaluateScenarios projects the scenario and then runs the fixed stress
// menu against its Year-1 position.
func (e *Engine) EvaluateScenarios(input *domain.ScenarioInput) (*domain.ProjectionResult, []domain.StressResult, error) {
	result, err := e.Project(input)
	if err != nil {
		return nil, nil, err
	}
	stress := EvaluateStressScenarios(input, result.Upfront.FinalLoanAmount, result.Year1())
	return result, stress, nil
}

// computeUpfront derives the settlement funds position: deposit composition,
// base and final loan amounts, stamp duty, and the LMI treatment. When the
// base LVR exceeds 80% the premium is either capitalized into the loan or
// payable at settlement, per the financing input. An explicit loan amount
// override replaces the derived final loan before the final LVR is taken.
func (e *Engine) computeUpfront(input *domain.ScenarioInput) domain.UpfrontCosts {
	price := input.Property.PurchasePrice
	depositFunds := input.DepositFunds()
	baseLoan := money.NonNegative(price.Sub(depositFunds))

	premium, initialLVR := EstimateLMI(price, baseLoan)

	finalLoan := baseLoan
	payable := decimal.Zero
	capitalized := false
	if premium.IsPositive() {
		if input.Financing.CapitalizeLMI {
			finalLoan = baseLoan.Add(premium)
			capitalized = true
		} else {
			payable = premium
		}
	}
	if o := input.Financing.LoanAmountOverride; o != nil && o.GreaterThanOrEqual(decimal.Zero) {
		finalLoan = *o
	}
	_, finalLVR := EstimateLMI(price, finalLoan)

	stampDuty := CalculateStampDuty(price)
	depositPaid := money.NonNegative(price.Sub(finalLoan))
	totalRequired := depositPaid.Add(stampDuty).Add(payable).Add(input.Property.OtherUpfrontCosts)

	return domain.UpfrontCosts{
		StampDuty:          stampDuty,
		LMIPremium:         premium,
		LMIPayable:         payable,
		LMICapitalized:     capitalized,
		InitialLVR:         initialLVR,
		FinalLVR:           finalLVR,
		DepositFunds:       depositFunds,
		EquityContribution: input.EquityContribution(),
		BaseLoanAmount:     baseLoan,
		FinalLoanAmount:    finalLoan,
		DepositPaid:        depositPaid,
		TotalFundsRequired: totalRequired,
		Surplus:            depositFunds.Sub(totalRequired),
	}
}
