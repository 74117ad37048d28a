package title

import (
	"fmt"

	"github.com/iwvelando/property-calculators/internal/report"
	"github.com/iwvelando/property-calculators/pkg/format"
)

var nextSteps = []string{
	"Review title search results carefully",
	"Address any title issues before closing",
	"Consider additional endorsements if needed",
	"Compare quotes from multiple title companies",
	"Understand your coverage limits and exclusions",
}

// GenerateReport renders the analysis as Markdown.
func GenerateReport(in Inputs, out Outputs) string {
	doc := report.New("Title Insurance Analysis Report")

	doc.Section("Policy Summary").
		KV("Property Value", format.Currency(in.PropertyValue)).
		KV("Transaction Type", in.TransactionType).
		KV("Coverage Type", in.CoverageType).
		KV("Effective Coverage", format.Currency(out.EffectiveCoverage))

	doc.Section("Premium Breakdown").
		KV("Owner's Policy Premium", format.Currency(out.OwnersPolicyPremium)).
		KV("Lender's Policy Premium", format.Currency(out.LendersPolicyPremium)).
		KV("Total Premium", format.Currency(out.TotalPremium)).
		KV("Premium per $1,000", format.Currency(out.PremiumPerThousand))

	doc.Section("Additional Costs").
		KV("Endorsement Costs", format.Currency(out.EndorsementCosts)).
		KV("Title Search Fees", format.Currency(out.SearchFees)).
		KV("Settlement Fees", format.Currency(out.SettlementFees)).
		KV("Total Costs", format.Currency(out.TotalCosts)).
		KV("Cost Percentage", format.Percent(out.CostPercentage, 2)).
		KV("Present Value", format.Currency(out.PresentValue))

	doc.Section("Assessment Scores").
		KV("Risk Score", fmt.Sprintf("%.0f/100", out.RiskScore)).
		KV("Coverage Score", fmt.Sprintf("%.0f/100", out.CoverageScore)).
		KV("Value Score", fmt.Sprintf("%.0f/100", out.ValueScore))

	rb := out.RiskBreakdown
	doc.Section("Risk Breakdown").
		KV("Known Issues", rb.KnownIssues).
		KV("Previous Claims", rb.PreviousClaims).
		KV("Chain of Title", rb.ChainOfTitle).
		KV("Property Age", rb.PropertyAge).
		KV("Overall Risk", rb.OverallRisk)

	cb := out.CostBreakdown
	doc.Section("Cost Breakdown").
		Table([]string{"Item", "Amount"}, [][]string{
			{"Base premium", format.Currency(cb.BasePremium)},
			{"Endorsements", format.Currency(cb.Endorsements)},
			{"Extended coverage", format.Currency(cb.ExtendedCoverage)},
			{"Search fees", format.Currency(cb.SearchFees)},
			{"Settlement fees", format.Currency(cb.SettlementFees)},
			{"**Total**", format.Currency(cb.TotalCosts)},
		})

	doc.Section("Policy Comparison")
	rows := make([][]string, 0, len(out.PolicyComparison))
	for _, p := range out.PolicyComparison {
		rows = append(rows, []string{p.Type, format.Currency(p.Premium), format.Currency(p.Cost), p.Coverage})
	}
	doc.Table([]string{"Policy", "Premium", "Total Cost", "Protection"}, rows)

	doc.Section("Recommendations").
		List(out.Recommendations, "Current coverage and pricing look reasonable")
	doc.Section("Key Factors").
		List(out.KeyFactors, "Standard rates apply")
	doc.Section("Risks").
		List(out.Risks, "No significant title risks identified")

	doc.Section("Next Steps").
		Numbered(nextSteps)

	return doc.String()
}
