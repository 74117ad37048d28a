package flood

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/iwvelando/property-calculators/internal/report"
	"github.com/iwvelando/property-calculators/pkg/format"
)

// GenerateReport renders the analysis as Markdown.
func GenerateReport(in Inputs, out Outputs) string {
	doc := report.New("Flood Insurance Analysis Report")

	doc.Section("Executive Summary").
		KV("Annual Premium", format.Currency(out.AnnualPremium)).
		KV("Total Annual Cost", format.Currency(out.TotalCost)).
		KV("Total Coverage", format.Currency(out.TotalCoverage)).
		KV("Flood Risk Level", strings.ReplaceAll(out.FloodRiskLevel, "_", " ")).
		KV("Policy Rating", out.PolicyRating)

	doc.Section("Property Information").
		KV("Property Value", format.Currency(in.PropertyValue)).
		KV("Property Type", in.PropertyType).
		KV("Occupancy", in.OccupancyType).
		KV("Year Built", strconv.Itoa(in.YearBuilt)).
		KV("Flood Zone", out.FloodZoneRisk)
	if diff, ok := in.elevationDifference(); ok {
		doc.KV("Elevation", fmt.Sprintf("%.1f ft relative to BFE", diff))
	} else {
		doc.KV("Elevation", "No elevation certificate")
	}

	doc.Section("Premium Analysis").
		Table([]string{"Item", "Amount"}, [][]string{
			{"Building premium", format.Currency(out.BuildingPremium)},
			{"Contents premium", format.Currency(out.ContentsPremium)},
			{"Discounts", format.Currency(-out.TotalDiscounts)},
			{"Surcharges", format.Currency(out.TotalSurcharges)},
			{"**Annual premium**", format.Currency(out.AnnualPremium)},
			{"Fees", format.Currency(out.TotalFees)},
			{"**Total annual cost**", format.Currency(out.TotalCost)},
		})
	doc.KV("Monthly Cost", format.Currency(out.MonthlyCost)).
		KV("Premium Rate", format.Percent(out.PremiumRate, 2)).
		KV("Premium per Sq Ft", format.Currency(out.PremiumPerSquareFoot)).
		KV("Affordability Score", fmt.Sprintf("%.0f/100", out.AffordabilityScore))

	doc.Section("Coverage Details").
		KV("Building Coverage", format.Currency(out.BuildingCoverage)).
		KV("Contents Coverage", format.Currency(out.ContentsCoverage)).
		KV("Coverage Ratio", format.Percent(out.CoverageRatio, 2)).
		KV("Coverage Gap", format.Currency(out.CoverageGap)).
		KV("Replacement Cost Coverage", format.Percent(out.ReplacementCostCoverage, 1)).
		KV("Total Deductible", format.Currency(out.TotalDeductible)).
		KV("Out-of-Pocket Maximum", format.Currency(out.OutOfPocketMax))

	ri := out.RiskIndicators
	doc.Section("Risk Assessment").
		KV("Risk Score", fmt.Sprintf("%.1f/10", out.RiskScore)).
		KV("High-Risk Zone", yesNo(ri.HighRiskZone)).
		KV("Coastal Zone", yesNo(ri.CoastalZone)).
		KV("Below BFE", yesNo(ri.ElevationBelowBFE)).
		KV("Other Risk Factors", yesNo(ri.OtherRiskFactors))

	pc := out.PolicyComparison
	doc.Section("Policy Comparison").
		Table([]string{"Market", "Building Premium", "Contents Premium", "Total", "Building Limit", "Contents Limit"},
			[][]string{quoteRow("NFIP", pc.NFIP), quoteRow("Private", pc.Private)}).
		Paragraph("%s", pc.Recommendation)

	doc.Section("Compliance").
		KV("Status", out.Compliance).
		List(out.ComplianceNotes)

	if len(out.Projection) > 0 {
		doc.Section("Projections")
		rows := make([][]string, 0, len(out.Projection))
		for _, p := range out.Projection {
			rows = append(rows, []string{
				strconv.Itoa(p.Year),
				format.Currency(p.Premium),
				format.Currency(p.Fees),
				format.Currency(p.TotalCost),
				format.Currency(p.CumulativeCost),
			})
		}
		doc.Table([]string{"Year", "Premium", "Fees", "Total Cost", "Cumulative"}, rows)
	}

	doc.Section("Recommendations").
		Numbered(out.Recommendations)

	return doc.String()
}

func quoteRow(market string, q Quote) []string {
	return []string{
		market,
		format.Currency(q.BuildingPremium),
		format.Currency(q.ContentsPremium),
		format.Currency(q.TotalPremium),
		format.WholeCurrency(q.BuildingLimit),
		format.WholeCurrency(q.ContentsLimit),
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
