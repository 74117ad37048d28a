package mortgageequity

import (
	"strconv"

	"github.com/iwvelando/property-calculators/internal/report"
	"github.com/iwvelando/property-calculators/pkg/format"
	"github.com/iwvelando/property-calculators/pkg/mathutil"
)

// GenerateReport renders the analysis as Markdown.
func GenerateReport(in Inputs, out Outputs) string {
	doc := report.New("Mortgage Equity Analysis")

	doc.Section("Summary").
		KV("Total Equity", format.Currency(out.TotalEquity)).
		KV("Equity Percentage", format.Percent(out.EquityPercentage, 2)).
		KV("Borrowable Equity", format.Currency(out.BorrowableEquity)).
		KV("Loan-to-Value", format.Percent(out.LoanToValueRatio, 2)).
		KV("Equity Position", out.Classifications[AxisEquityPosition])

	doc.Section("Property").
		KV("Current Value", format.Currency(in.CurrentPropertyValue)).
		KV("Original Purchase Price", format.Currency(in.OriginalPurchasePrice)).
		KV("Mortgage Balance", format.Currency(in.CurrentMortgageBalance)).
		KV("Years Owned", strconv.FormatFloat(in.YearsOwned, 'f', -1, 64))

	doc.Section("Equity Growth")
	sources := []struct {
		label  string
		amount float64
	}{
		{"Market appreciation", out.AppreciationValue},
		{"Improvements", out.ImprovementValue},
		{"Loan payments", out.PaymentEquity},
	}
	total := 0.0
	for _, s := range sources {
		total += s.amount
	}
	rows := make([][]string, 0, len(sources))
	for _, s := range sources {
		rows = append(rows, []string{s.label, format.Currency(s.amount),
			format.Percent(mathutil.CalculatePercentage(s.amount, total), 1)})
	}
	doc.Table([]string{"Source", "Amount", "Share"}, rows)
	doc.KV("Initial Equity", format.Currency(out.Summary.InitialEquity)).
		KV("Equity Increase", format.Currency(out.Summary.EquityIncrease)).
		KV("Equity Increase Percentage", format.Percent(out.Summary.EquityIncreasePercentage, 2)).
		KV("Annual Growth Rate", format.Percent(out.EquityGrowthRate, 2)).
		KV("Monthly Equity Build", format.Currency(out.MonthlyEquityBuild)).
		KV("Annual Equity Build", format.Currency(out.AnnualEquityBuild))

	doc.Section("Borrowing Power").
		KV("Borrowable Share", format.Percent(out.BorrowablePercentage*100, 0)).
		KV("Combined Loan-to-Value", format.Percent(out.CombinedLoanToValueRatio, 2)).
		KV("LTV Risk", out.Classifications[AxisLTVRisk])
	doc.Subsection("Refinancing Options").
		List(out.RefinancingOptions, "No refinancing options available at the current equity level")

	r := out.Refinance
	doc.Section("Refinance Scenario").
		KV("Current Payment", format.Currency(r.CurrentPayment)).
		KV("New Payment", format.Currency(r.NewPayment)).
		KV("Monthly Savings", format.Currency(r.PaymentSavings)).
		KV("New Balance", format.Currency(r.NewBalance)).
		KV("New Loan-to-Value", format.Percent(r.NewLTV, 2)).
		KV("Closing Costs", format.Currency(r.ClosingCosts))
	if r.BreakEvenMonths > 0 {
		doc.KV("Break-Even", strconv.FormatFloat(r.BreakEvenMonths, 'f', 1, 64)+" months")
	}
	if r.RecommendRefinance {
		doc.Paragraph("Refinancing saves %s over the life of the new loan.", format.Currency(r.TotalSavings))
	} else {
		doc.Paragraph("Refinancing on these terms does not pay for itself.")
	}

	if len(out.Projection) > 0 {
		doc.Section("Projections")
		projection := make([][]string, 0, len(out.Projection))
		for _, p := range out.Projection {
			projection = append(projection, []string{
				strconv.Itoa(p.Year),
				format.WholeCurrency(p.PropertyValue),
				format.WholeCurrency(p.MortgageBalance),
				format.WholeCurrency(p.ProjectedEquity),
				format.Percent(p.ProjectedLTV, 1),
			})
		}
		doc.Table([]string{"Year", "Property Value", "Balance", "Equity", "LTV"}, projection)
	}

	doc.Section("Recommendations").
		Numbered(out.Recommendations)

	return doc.String()
}
