package mortgageequity

import "github.com/iwvelando/property-calculators/internal/engine"

const (
	mEquityPct     = "equityPercentage"
	mLTV           = "loanToValueRatio"
	mEquityGrowth  = "equityGrowth"
	mGrowthRate    = "equityGrowthRate"
	mYearsOwned    = "yearsOwned"
	mMonthlyBuild  = "monthlyEquityBuild"
	mCreditScore   = "creditScore"
	mDTI           = "debtToIncomeRatio"
	mInterestRate  = "interestRate"
	mOccPrimary    = "occupancyPrimary"
	mOccSecondary  = "occupancySecondary"
	mOccInvestment = "occupancyInvestment"
	mPropertyCondo = "propertyCondo"
)

// Axis names.
const (
	AxisEquityPosition  = "equityPosition"
	AxisLTVRisk         = "ltvRisk"
	AxisEquityGrowth    = "equityGrowth"
	AxisEquityBuildPace = "equityBuildPace"
)

var (
	equityPosition = engine.Axis{
		Name: AxisEquityPosition,
		Bands: []engine.Band{
			{Label: "high", When: []engine.Condition{engine.AtLeast(mEquityPct, 50)},
				Advisories: []string{"High equity position - excellent borrowing power available."}},
			{Label: "good", When: []engine.Condition{engine.AtLeast(mEquityPct, 30)},
				Advisories: []string{"Good equity position - consider refinancing or home equity options."}},
			{Label: "moderate", When: []engine.Condition{engine.AtLeast(mEquityPct, 20)},
				Advisories: []string{"Moderate equity - focus on building equity through payments."}},
		},
		Fallback: engine.Band{Label: "low",
			Advisories: []string{"Low equity - prioritize building equity before considering additional borrowing."}},
	}

	ltvRisk = engine.Axis{
		Name: AxisLTVRisk,
		Bands: []engine.Band{
			{Label: "elevated", When: []engine.Condition{engine.Above(mLTV, 80)},
				Advisories: []string{"High LTV ratio - may need to pay PMI or consider FHA options."}},
			{Label: "low", When: []engine.Condition{engine.AtMost(mLTV, 60)},
				Advisories: []string{"Low LTV ratio - excellent refinancing opportunities available."}},
		},
		Fallback: engine.Band{Label: "standard"},
	}

	equityGrowth = engine.Axis{
		Name: AxisEquityGrowth,
		Bands: []engine.Band{
			{Label: "strong", When: []engine.Condition{
				engine.Above(mEquityGrowth, 0), engine.Above(mYearsOwned, 0), engine.Above(mGrowthRate, 10)},
				Advisories: []string{"Strong equity growth - consider leveraging for investment opportunities."}},
			{Label: "good", When: []engine.Condition{
				engine.Above(mEquityGrowth, 0), engine.Above(mYearsOwned, 0), engine.Above(mGrowthRate, 5)},
				Advisories: []string{"Good equity growth - property is appreciating well."}},
		},
		Fallback: engine.Band{Label: "modest"},
	}

	equityBuildPace = engine.Axis{
		Name: AxisEquityBuildPace,
		Bands: []engine.Band{
			{Label: "high", When: []engine.Condition{engine.Above(mMonthlyBuild, 1000)},
				Advisories: []string{"High monthly equity build - consider accelerating payments for faster equity growth."}},
			{Label: "low", When: []engine.Condition{engine.Below(mMonthlyBuild, 500)},
				Advisories: []string{"Low monthly equity build - consider refinancing to lower rate or shorter term."}},
		},
		Fallback: engine.Band{Label: "moderate"},
	}

	situationRules = []engine.Axis{
		engine.Rule("investmentOccupancy",
			"Investment property - consider 1031 exchange or portfolio diversification strategies.",
			engine.Is(mOccInvestment)),
		engine.Rule("secondaryOccupancy",
			"Secondary home - ensure adequate emergency funds before leveraging equity.",
			engine.Is(mOccSecondary)),
		engine.Rule("credit", "Improve credit score to access better refinancing rates and terms.",
			engine.Above(mCreditScore, 0), engine.Below(mCreditScore, 680)),
		engine.Rule("dti", "High DTI ratio - consider debt consolidation or income improvement strategies.",
			engine.Above(mDTI, 43)),
		engine.Rule("rate", "High interest rate - consider refinancing to lower rate if credit allows.",
			engine.Above(mInterestRate, 7)),
		engine.Rule("condo", "Condo property - check HOA restrictions on refinancing and equity loans.",
			engine.Is(mPropertyCondo)),
	}

	// refinancingOptions lists each product with its eligibility rule. The advice is the product name.
	refinancingOptions = []engine.Axis{
		engine.Rule("cashOut", "Cash-out refinance", engine.AtLeast(mEquityPct, 20), engine.AtMost(mLTV, 80)),
		engine.Rule("rateAndTerm", "Rate and term refinance", engine.AtMost(mLTV, 80)),
		engine.Rule("heloc", "HELOC (Home Equity Line of Credit)", engine.AtLeast(mEquityPct, 15), engine.AtMost(mLTV, 85)),
		engine.Rule("homeEquityLoan", "Home equity loan", engine.AtLeast(mEquityPct, 20), engine.AtMost(mLTV, 80)),
		engine.Rule("investmentRefi", "Investment property refinancing", engine.Is(mOccInvestment), engine.AtLeast(mEquityPct, 25)),
		engine.Rule("vaIRRRL", "VA IRRRL (if VA loan)", engine.Is(mOccPrimary), engine.AtLeast(mEquityPct, 10)),
		engine.Rule("fhaStreamline", "FHA streamline refinance (if FHA loan)", engine.Is(mOccPrimary), engine.AtLeast(mEquityPct, 5)),
	}
)

// Axes returns the classification axes in evaluation order.
func Axes() []engine.Axis {
	return []engine.Axis{equityPosition, ltvRisk, equityGrowth, equityBuildPace}
}

func recommendationAxes() []engine.Axis {
	return append(Axes(), situationRules...)
}
