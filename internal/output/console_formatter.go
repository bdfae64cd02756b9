package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ruralsim/property-calculator/pkg/money"
)

// ConsoleFormatter renders the projection as a human-readable text report.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(report *Report) ([]byte, error) {
	if report == nil || report.Result == nil {
		return nil, fmt.Errorf("nil report")
	}
	var buf bytes.Buffer
	result := report.Result
	up := result.Upfront

	fmt.Fprintln(&buf, "PROPERTY PURCHASE PROJECTION")
	fmt.Fprintln(&buf, strings.Repeat("=", 60))

	fmt.Fprintln(&buf, "\nUpfront Position")
	fmt.Fprintf(&buf, "  Deposit funds available: %s (equity %s)\n",
		money.Format(up.DepositFunds), money.Format(up.EquityContribution))
	fmt.Fprintf(&buf, "  Base loan:               %s (LVR %s%%)\n",
		money.Format(up.BaseLoanAmount), up.InitialLVR.StringFixed(1))
	fmt.Fprintf(&buf, "  Stamp duty:              %s\n", money.Format(up.StampDuty))
	if up.LMIPremium.IsPositive() {
		treatment := "payable at settlement"
		if up.LMICapitalized {
			treatment = "capitalized into the loan"
		}
		fmt.Fprintf(&buf, "  LMI premium:             %s (%s)\n", money.Format(up.LMIPremium), treatment)
	} else {
		fmt.Fprintln(&buf, "  LMI premium:             not required")
	}
	fmt.Fprintf(&buf, "  Final loan:              %s (LVR %s%%)\n",
		money.Format(up.FinalLoanAmount), up.FinalLVR.StringFixed(1))
	fmt.Fprintf(&buf, "  Total funds required:    %s\n", money.Format(up.TotalFundsRequired))
	if up.Surplus.IsNegative() {
		fmt.Fprintf(&buf, "  Shortfall:               %s\n", money.Format(up.Surplus.Neg()))
	} else {
		fmt.Fprintf(&buf, "  Surplus:                 %s\n", money.Format(up.Surplus))
	}

	fmt.Fprintln(&buf, "\nKey Ratios (Year 1)")
	fmt.Fprintf(&buf, "  Debt to income:     %s\n", result.Ratios.DebtToIncome.StringFixed(2))
	fmt.Fprintf(&buf, "  Expense to income:  %s\n", result.Ratios.ExpenseToIncome.StringFixed(2))
	fmt.Fprintf(&buf, "  Mortgage to income: %s\n", result.Ratios.MortgageToIncome.StringFixed(2))
	if result.Ratios.BreakEvenYear != nil {
		fmt.Fprintf(&buf, "  Break-even year:    %d\n", *result.Ratios.BreakEvenYear)
	} else {
		fmt.Fprintln(&buf, "  Break-even year:    not within the horizon")
	}

	fmt.Fprintln(&buf, "\nYearly Cash Flow")
	fmt.Fprintf(&buf, "  %-5s %14s %14s %14s %14s %14s %8s\n",
		"Year", "Income", "Expenses", "Net", "Cumulative", "Loan", "LVR%")
	for _, row := range result.Rows {
		fmt.Fprintf(&buf, "  %-5d %14s %14s %14s %14s %14s %8s\n",
			row.Year,
			money.Format(row.TotalIncome),
			money.Format(row.TotalExpenses),
			money.Format(row.NetCashflow),
			money.Format(row.CumulativeCashflow),
			money.Format(row.LoanBalance),
			row.LVRPercent.StringFixed(1))
	}

	if len(report.Stress) > 0 {
		fmt.Fprintln(&buf, "\nStress Scenarios (Year-1 position)")
		for _, s := range report.Stress {
			fmt.Fprintf(&buf, "  %-52s annual %14s  monthly %12s  rate %s%%\n",
				s.Name,
				money.Format(s.AnnualNetPosition),
				money.Format(s.MonthlyNetPosition),
				s.InterestRate.StringFixed(2))
		}
	}

	if len(result.Warnings) > 0 {
		fmt.Fprintln(&buf, "\nWarnings")
		for _, w := range result.Warnings {
			fmt.Fprintf(&buf, "  - %s\n", w)
		}
	}
	return buf.Bytes(), nil
}
