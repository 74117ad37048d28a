package title

import "github.com/iwvelando/property-calculators/internal/engine"

const (
	mRiskScore      = "riskScore"
	mCoverageScore  = "coverageScore"
	mValueScore     = "valueScore"
	mLenderOnly     = "lenderOnly"
	mPurchase       = "purchase"
	mRefinance      = "refinance"
	mKnownIssues    = "knownIssues"
	mRatedState     = "ratedState"
	mCommercial     = "commercial"
	mPropertyAge    = "propertyAge"
	mVeryComplex    = "veryComplexChain"
	mCostPercentage = "costPercentage"
)

// Axis names.
const (
	AxisOverallRisk = "overallRisk"
	AxisCoverage    = "coverage"
	AxisValue       = "value"
)

var (
	overallRisk = engine.Axis{
		Name: AxisOverallRisk,
		Bands: []engine.Band{
			{Label: "High", When: []engine.Condition{engine.Above(mRiskScore, 70)},
				Advisories: []string{"High title risk detected - consider additional endorsements for protection"}},
			{Label: "Medium", When: []engine.Condition{engine.Above(mRiskScore, 40)}},
		},
		Fallback: engine.Band{Label: "Low"},
	}

	coverageAdequacy = engine.Axis{
		Name: AxisCoverage,
		Bands: []engine.Band{
			{Label: "insufficient", When: []engine.Condition{engine.Below(mCoverageScore, 80)},
				Advisories: []string{"Consider increasing coverage amount to better protect your investment"}},
		},
		Fallback: engine.Band{Label: "adequate"},
	}

	policyValue = engine.Axis{
		Name: AxisValue,
		Bands: []engine.Band{
			{Label: "poor", When: []engine.Condition{engine.Below(mValueScore, 60)},
				Advisories: []string{"Consider shopping around for better rates or negotiating fees"}},
		},
		Fallback: engine.Band{Label: "fair"},
	}

	adviceRules = []engine.Axis{
		engine.Rule("ownersPolicy", "Consider adding owner's policy for complete protection",
			engine.Is(mLenderOnly), engine.Is(mPurchase)),
		engine.Rule("knownIssues", "Address known title issues before closing to reduce risk",
			engine.Is(mKnownIssues)),
	}

	keyFactorRules = []engine.Axis{
		engine.Rule("state", "State-specific rates apply", engine.Is(mRatedState)),
		engine.Rule("refinance", "Refinance discount applied", engine.Is(mRefinance)),
		engine.Rule("commercial", "Commercial property rates apply", engine.Is(mCommercial)),
		engine.Rule("risk", "Risk factors increase premium", engine.Above(mRiskScore, 50)),
	}

	riskRules = []engine.Axis{
		engine.Rule("highRisk", "High title risk - consider additional protection", engine.Above(mRiskScore, 70)),
		engine.Rule("knownIssues", "Known title issues may affect insurability", engine.Is(mKnownIssues)),
		engine.Rule("age", "Very old property may have complex title history", engine.Above(mPropertyAge, 100)),
		engine.Rule("chain", "Complex chain of title increases risk", engine.Is(mVeryComplex)),
	}
)

// Axes returns the classification axes in evaluation order.
func Axes() []engine.Axis {
	return []engine.Axis{overallRisk, coverageAdequacy, policyValue}
}

func recommendationAxes() []engine.Axis {
	axes := []engine.Axis{coverageAdequacy, overallRisk, policyValue}
	return append(axes, adviceRules...)
}
