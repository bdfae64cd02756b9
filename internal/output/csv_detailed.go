package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
)

// CSVDetailedExporter writes the full year-by-year projection table.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string { return "csv" }

func (c CSVDetailedExporter) Format(report *Report) ([]byte, error) {
	if report == nil || report.Result == nil {
		return nil, fmt.Errorf("nil report")
	}
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)

	header := []string{
		"Year",
		"EmploymentIncome", "RentalIncome", "AgistmentIncome", "LumpSumIncome", "TotalIncome",
		"LivingExpenses", "EducationExpenses", "PropertyExpenses", "MortgagePayment",
		"TotalExpenses", "MortgageLumpSumPayment",
		"NetCashflow", "CumulativeCashflow",
		"LoanBalance", "PropertyValue", "Equity", "LVRPercent",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, row := range report.Result.Rows {
		propertyExpenses := row.CouncilRates.Add(row.Insurance).Add(row.Maintenance).
			Add(row.AgistmentCosts).Add(row.OtherPropertyExpenses)
		record := []string{
			strconv.Itoa(row.Year),
			row.EmploymentIncome.StringFixed(2),
			row.RentalIncome.StringFixed(2),
			row.AgistmentIncome.StringFixed(2),
			row.LumpSumIncome.StringFixed(2),
			row.TotalIncome.StringFixed(2),
			row.LivingExpenses.StringFixed(2),
			row.EducationExpenses.StringFixed(2),
			propertyExpenses.StringFixed(2),
			row.MortgagePayment.StringFixed(2),
			row.TotalExpenses.StringFixed(2),
			row.MortgageLumpSumPayment.StringFixed(2),
			row.NetCashflow.StringFixed(2),
			row.CumulativeCashflow.StringFixed(2),
			row.LoanBalance.StringFixed(2),
			row.PropertyValue.StringFixed(2),
			row.Equity.StringFixed(2),
			row.LVRPercent.StringFixed(2),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
