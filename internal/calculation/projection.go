package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/ruralsim/property-calculator/internal/domain"
	"github.com/ruralsim/property-calculator/pkg/money"
)

// ProjectIncomeExpenses builds the year-indexed cash flow table for the
// projection horizon. Employment income grows at the income growth rate,
// rental at the rental growth rate, and every other stream at inflation.
// Retirement replaces an earner's employment income with a flat
// post-retirement amount and books the super lump sum as income in the
// retirement year. Year 0 is the baseline: its net cash flow is zero.
//
// The loan schedule rows are merged in by year; years without a schedule
// row carry a zero payment and balance.
func ProjectIncomeExpenses(input *domain.ScenarioInput, loanRows []domain.AnnualLoanRow) []domain.ProjectionRow {
	years := input.Assumptions.ProjectionYears
	if years < 0 {
		years = 0
	}

	loanByYear := make(map[int]domain.AnnualLoanRow, len(loanRows))
	for _, lr := range loanRows {
		loanByYear[lr.Year] = lr
	}

	baseUser := input.Income.AnnualUserEmployment()
	basePartner := input.Income.AnnualPartnerEmployment()
	baseRental := input.Income.Rental.Annual()
	baseAgistment := input.Income.Agistment.Annual()
	baseLiving := input.Expenses.AnnualLiving()
	baseEducation := input.Expenses.Education.AnnualBase()

	super := input.Events.Super
	eduChange := input.Events.EducationChange

	// Education phase boundaries: the original fee applies through the floor
	// of the change offset, the new fee for the duration starting the year
	// after, and nothing once that window closes.
	eduChangeEndsAfter := 0
	newFeeStart, newFeeEnd := 0, -1
	if eduChange.Include {
		eduChangeEndsAfter = int(eduChange.YearsUntilChange.Floor().IntPart())
		newFeeStart = eduChangeEndsAfter + 1
		newFeeEnd = newFeeStart + eduChange.DurationYears - 1
	}
	children := decimal.NewFromInt(int64(input.Expenses.Education.Children))

	rows := make([]domain.ProjectionRow, years+1)
	cumulative := decimal.Zero
	for y := 0; y <= years; y++ {
		incomeGrowth := money.GrowthFactor(input.Assumptions.IncomeGrowthRate, y)
		rentalGrowth := money.GrowthFactor(input.Assumptions.RentalGrowthRate, y)
		inflation := money.GrowthFactor(input.Assumptions.InflationRate, y)

		userIncome := baseUser.Mul(incomeGrowth)
		partnerIncome := basePartner.Mul(incomeGrowth)
		lumpSum := decimal.Zero
		if super.Include {
			if y >= super.UserRetireYear {
				userIncome = super.UserPostRetirementIncome
			}
			if y == super.UserRetireYear {
				lumpSum = lumpSum.Add(super.UserSuperAmount)
			}
			if y >= super.PartnerRetireYear {
				partnerIncome = super.PartnerPostRetirementIncome
			}
			if y == super.PartnerRetireYear {
				lumpSum = lumpSum.Add(super.PartnerSuperAmount)
			}
		}

		education := baseEducation.Mul(inflation)
		if eduChange.Include {
			switch {
			case y <= eduChangeEndsAfter:
				// original fee, already set
			case y >= newFeeStart && y <= newFeeEnd:
				education = eduChange.NewAnnualFeePerChild.Mul(children).Mul(inflation)
			default:
				education = decimal.Zero
			}
		}

		loan := loanByYear[y]

		row := domain.ProjectionRow{
			Year:             y,
			EmploymentIncome: userIncome.Add(partnerIncome),
			RentalIncome:     baseRental.Mul(rentalGrowth),
			AgistmentIncome:  baseAgistment.Mul(inflation),
			LumpSumIncome:    lumpSum,

			LivingExpenses:        baseLiving.Mul(inflation),
			EducationExpenses:     education,
			CouncilRates:          input.Expenses.CouncilRates.Mul(inflation),
			Insurance:             input.Expenses.Insurance.Mul(inflation),
			Maintenance:           input.Expenses.Maintenance.Mul(inflation),
			AgistmentCosts:        input.Expenses.AgistmentCosts.Mul(inflation),
			OtherPropertyExpenses: input.Expenses.OtherProperty.Mul(inflation),
			MortgagePayment:       loan.MortgagePayment,
			LoanBalance:           loan.LoanBalance,
		}
		row.TotalIncome = row.SumIncome()
		row.TotalExpensesExclMortgage = row.SumExpensesExclMortgage()
		row.TotalExpenses = row.TotalExpensesExclMortgage.Add(row.MortgagePayment)

		if y == 0 {
			row.NetCashflow = decimal.Zero
		} else {
			row.NetCashflow = row.TotalIncome.Sub(row.TotalExpenses)
		}
		cumulative = cumulative.Add(row.NetCashflow)
		row.CumulativeCashflow = cumulative
		rows[y] = row
	}
	return rows
}
