package retirement

import (
	"fmt"
	"strconv"

	"github.com/iwvelando/property-calculators/internal/report"
	"github.com/iwvelando/property-calculators/pkg/format"
)

// GenerateReport renders the analysis as Markdown.
func GenerateReport(in Inputs, out Outputs) string {
	doc := report.New("Retirement Planning Analysis")

	doc.Section("Summary").
		KV("Recommendation", out.Recommendation).
		KV("Readiness Score", format.Percent(out.ReadinessScore*100, 1)).
		KV("Success Probability", format.Percent(out.SuccessProbability*100, 1)).
		KV("Years to Retirement", strconv.Itoa(out.YearsToRetirement)).
		KV("Retirement Age", strconv.Itoa(in.Goals.RetirementAge))

	doc.Section("Current Position").
		KV("Total Income", format.Currency(out.TotalIncome)).
		KV("Total Assets", format.Currency(out.TotalAssets)).
		KV("Annual Savings", format.Currency(out.AnnualSavings)).
		KV("Current Expenses", format.Currency(in.Expenses.Current)).
		KV("Expense Ratio", format.Percent(out.KeyMetrics.ExpenseRatio, 1)).
		KV("Emergency Fund Target", format.Currency(out.KeyMetrics.EmergencyFund))

	s := out.IncomeSources
	doc.Section("Retirement Income").
		KV("Projected Assets", format.Currency(out.ProjectedRetirementAssets)).
		KV("Projected Income", format.Currency(out.ProjectedRetirementIncome)).
		KV("Retirement Expenses", format.Currency(out.ProjectedRetirementExpenses)).
		KV("Income Replacement", format.Percent(out.IncomeReplacementRate, 1)).
		KV("Income Gap", format.Currency(out.RetirementIncomeGap)).
		KV("Required Savings", format.Currency(out.RequiredRetirementSavings))
	doc.Table([]string{"Source", "Annual Income"}, [][]string{
		{"Social Security", format.Currency(s.SocialSecurity)},
		{"Pension", format.Currency(s.Pension)},
		{"Portfolio withdrawals", format.Currency(s.Withdrawals)},
		{"Rental and business", format.Currency(s.Other)},
	})

	doc.Section("Savings and Investment").
		KV("Current Savings Rate", format.Percent(out.CurrentSavingsRate, 1)).
		KV("Target Savings Rate", format.Percent(out.TargetSavingsRate, 1)).
		KV("Savings Gap", format.Percent(out.SavingsGap, 1)).
		KV("Expected Return", format.Percent(out.ExpectedReturn, 1)).
		KV("Inflation Adjusted Return", format.Percent(out.InflationAdjustedReturn, 1)).
		KV("Portfolio Growth", format.Percent(out.PortfolioGrowth, 1))

	ra := out.RiskAssessment
	doc.Section("Risk Assessment").
		KV("Risk Tolerance", in.Risk.Tolerance).
		KV("Market Risk", format.Percent(ra.Market*100, 0)).
		KV("Inflation Risk", format.Percent(ra.Inflation*100, 0)).
		KV("Longevity Risk", format.Percent(ra.Longevity*100, 0)).
		KV("Healthcare Risk", format.Percent(ra.Healthcare*100, 0)).
		KV("Total Risk", format.Percent(ra.TotalRisk*100, 1))

	doc.Section("Readiness Percentiles")
	rows := make([][]string, 0, len(out.Distribution.Percentiles))
	for _, p := range out.Distribution.Percentiles {
		rows = append(rows, []string{fmt.Sprintf("P%d", p.Percentile), format.Percent(p.Readiness*100, 1)})
	}
	doc.Table([]string{"Percentile", "Readiness"}, rows)

	doc.Section("Timeline")
	if len(out.Timeline) == 0 {
		doc.Paragraph("Already at or past the retirement age.")
	} else {
		rows = make([][]string, 0, len(out.Timeline))
		for _, m := range out.Timeline {
			rows = append(rows, []string{
				strconv.Itoa(m.Year), strconv.Itoa(m.Age), format.WholeCurrency(m.ProjectedAssets),
				format.WholeCurrency(m.ProjectedIncome), format.WholeCurrency(m.ProjectedExpenses),
				format.Percent(m.ReadinessScore*100, 1),
			})
		}
		doc.Table([]string{"Year", "Age", "Assets", "Income", "Expenses", "Readiness"}, rows)
	}

	doc.Section("Recommendations")
	if len(out.Recommendations) == 0 {
		doc.List(nil, "The plan is on track; review it annually")
	}
	for _, a := range out.Recommendations {
		doc.Subsection(a.Category).
			Paragraph("%s. %s.", a.Recommendation, a.Rationale).
			Numbered(a.Steps)
	}

	return doc.String()
}
