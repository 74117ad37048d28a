package retirement

import "github.com/iwvelando/property-calculators/internal/engine"

const (
	mWeightedScore  = "weightedScore"
	mReadiness      = "readinessScore"
	mSavingsGap     = "savingsGap"
	mIncomeGap      = "incomeGap"
	mHealthcareRisk = "healthcareRisk"
)

// AxisRecommendation is the name of the overall recommendation axis.
const AxisRecommendation = "recommendation"

var recommendation = engine.Axis{
	Name: AxisRecommendation,
	Bands: []engine.Band{
		{Label: "excellent", When: []engine.Condition{engine.AtLeast(mWeightedScore, 0.8)}},
		{Label: "good", When: []engine.Condition{engine.AtLeast(mWeightedScore, 0.6)}},
		{Label: "fair", When: []engine.Condition{engine.AtLeast(mWeightedScore, 0.4)}},
		{Label: "needs_improvement", When: []engine.Condition{engine.AtLeast(mWeightedScore, 0.2)}},
	},
	Fallback: engine.Band{Label: "poor"},
}

// adviceRules are keyed by the category of the advice they trigger.
var adviceRules = []engine.Axis{
	engine.Rule("Savings", "Increase your savings rate to meet retirement goals",
		engine.Above(mSavingsGap, 5)),
	engine.Rule("Investment", "Review and optimize your investment strategy",
		engine.Below(mReadiness, 0.7)),
	engine.Rule("Income", "Consider additional income sources or delayed retirement",
		engine.Above(mIncomeGap, 0)),
	engine.Rule("Risk Management", "Plan for healthcare costs in retirement",
		engine.Above(mHealthcareRisk, 0.05)),
}

type adviceDetail struct {
	rationale   string
	improvement func(engine.Metrics) float64
	steps       []string
}

func fixed(v float64) func(engine.Metrics) float64 {
	return func(engine.Metrics) float64 { return v }
}

var adviceDetails = map[string]adviceDetail{
	"Savings": {
		rationale:   "Current savings rate is below target for retirement readiness",
		improvement: func(m engine.Metrics) float64 { return m[mSavingsGap] / 100 * 0.3 },
		steps: []string{
			"Review your budget to identify areas to reduce expenses",
			"Set up automatic savings increases",
			"Consider catch-up contributions if eligible",
		},
	},
	"Investment": {
		rationale:   "Investment strategy may need adjustment to improve returns",
		improvement: fixed(0.1),
		steps: []string{
			"Assess your current asset allocation",
			"Consider increasing equity exposure if appropriate",
			"Review investment fees and expenses",
		},
	},
	"Income": {
		rationale:   "Projected retirement income may not meet expenses",
		improvement: fixed(0.15),
		steps: []string{
			"Explore part-time work opportunities",
			"Consider delaying retirement by 1-2 years",
			"Look into passive income sources",
		},
	},
	"Risk Management": {
		rationale:   "Healthcare costs are a significant retirement risk",
		improvement: fixed(0.08),
		steps: []string{
			"Research Medicare and supplemental insurance options",
			"Consider a Health Savings Account (HSA)",
			"Budget for out-of-pocket healthcare expenses",
		},
	},
}

// Axes returns the classification axes in evaluation order.
func Axes() []engine.Axis {
	return []engine.Axis{recommendation}
}
