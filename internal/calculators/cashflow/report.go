package cashflow

import (
	"fmt"
	"strconv"

	"github.com/iwvelando/property-calculators/internal/report"
	"github.com/iwvelando/property-calculators/pkg/format"
)

// GenerateReport renders the analysis as Markdown.
func GenerateReport(in Inputs, out Outputs) string {
	doc := report.New("Cash Flow Analysis")

	doc.Section("Summary").
		KV("Monthly Cash Flow", format.Currency(out.MonthlyCashFlow)).
		KV("Annual Cash Flow", format.Currency(out.CashFlowBeforeTax)).
		KV("Cash-on-Cash Return", format.Percent(out.CashOnCashReturn, 2)).
		KV("Cap Rate", format.Percent(out.CapRate, 2)).
		KV("Investment Grade", out.InvestmentAnalysis.InvestmentGrade).
		KV("Risk Level", out.InvestmentAnalysis.RiskLevel)

	doc.Section("Income").
		KV("Gross Rental Income", format.Currency(out.GrossRentalIncome)).
		KV("Vacancy Loss", format.Currency(out.VacancyLoss)).
		KV("Other Income", format.Currency(out.OtherIncome)).
		KV("Effective Gross Income", format.Currency(out.EffectiveGrossIncome))

	doc.Section("Expenses")
	rows := make([][]string, 0, len(out.ExpenseBreakdown)+1)
	for _, item := range out.ExpenseBreakdown {
		rows = append(rows, []string{item.Category, format.Currency(item.Amount), format.Percent(item.Percentage, 1)})
	}
	rows = append(rows, []string{"**Total**", format.Currency(out.TotalOperatingExpenses), "100.0%"})
	doc.Table([]string{"Category", "Annual Amount", "Share"}, rows)
	doc.KV("Expense Ratio", format.Percent(out.ExpenseRatio, 2))

	doc.Section("Financing").
		KV("Loan Amount", format.Currency(in.LoanAmount)).
		KV("Monthly Payment", format.Currency(out.MonthlyPayment)).
		KV("Annual Debt Service", format.Currency(out.AnnualDebtService)).
		KV("Loan-to-Value", format.Percent(out.LoanToValue, 2)).
		KV("Total Cash Invested", format.Currency(out.TotalInvestment))

	doc.Section("Returns").
		KV("Net Operating Income", format.Currency(out.NetOperatingIncome)).
		KV("Cash Flow Before Tax", format.Currency(out.CashFlowBeforeTax)).
		KV("Cash Flow After Tax", format.Currency(out.CashFlowAfterTax)).
		KV("Debt Service Coverage", format.Ratio(out.DebtServiceCoverageRatio)).
		KV("Break-Even Occupancy", format.Percent(out.BreakEvenOccupancy, 2)).
		KV("Gross Rent Multiplier", fmt.Sprintf("%.2f", out.GrossRentMultiplier)).
		KV("Return on Investment", format.Percent(out.ReturnOnInvestment, 2))

	doc.Section("Investment Analysis").
		List(out.InvestmentAnalysis.Recommendations)
	doc.Subsection("Risk Factors").
		List(out.InvestmentAnalysis.RiskFactors, "No significant risk factors identified")

	doc.Section("Market Analysis").
		KV("Market Position", out.MarketAnalysis.MarketPosition+" market").
		KV("Market Risk", out.MarketAnalysis.MarketRisk).
		KV("Rent to Market", format.Percent(out.MarketAnalysis.RentToMarket, 1)).
		KV("Cap Rate Spread", format.Percent(out.MarketAnalysis.CapRateSpread, 2)).
		List(out.MarketAnalysis.Recommendations)

	if len(out.Projections) > 0 {
		doc.Section("Projections")
		projection := make([][]string, 0, len(out.Projections))
		for _, p := range out.Projections {
			projection = append(projection, []string{
				strconv.Itoa(p.Year),
				format.Currency(p.RentalIncome),
				format.Currency(p.OperatingExpenses),
				format.Currency(p.NetOperatingIncome),
				format.Currency(p.CashFlow),
				format.Currency(p.CumulativeCashFlow),
				format.WholeCurrency(p.PropertyValue),
				format.WholeCurrency(p.Equity),
			})
		}
		doc.Table([]string{"Year", "Rental Income", "Expenses", "NOI", "Cash Flow", "Cumulative", "Property Value", "Equity"}, projection)
	}

	recommendations := append([]string{}, out.InvestmentAnalysis.Recommendations...)
	recommendations = append(recommendations, out.MarketAnalysis.Recommendations...)
	doc.Section("Recommendations").
		Numbered(recommendations)

	return doc.String()
}
