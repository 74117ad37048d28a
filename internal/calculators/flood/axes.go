package flood

import "github.com/iwvelando/property-calculators/internal/engine"

const (
	mRiskScore         = "riskScore"
	mHighRiskZone      = "highRiskZone"
	mCoastalZone       = "coastalZone"
	mModerateZone      = "moderateZone"
	mZoneX             = "zoneX"
	mElevationAbove    = "elevationAboveBFE"
	mElevationBelow    = "elevationBelowBFE"
	mOtherRiskFactors  = "otherRiskFactors"
	mCoverageAdequacy  = "coverageAdequacy"
	mAffordability     = "affordabilityScore"
	mHasCertificate    = "elevationCertificate"
	mHasMitigation     = "hasMitigation"
	mCommunityRating   = "communityRating"
	mPremiumRate       = "premiumRate"
	mReplacementCover  = "replacementCostCoverage"
	mBuildingGap       = "buildingCoverageGap"
	mPolicyNFIP        = "policyNFIP"
	mPrivateCheaper    = "privateCheaper"
	mDeductibleToValue = "deductibleToValue"
)

// Axis names.
const (
	AxisFloodRiskLevel = "floodRiskLevel"
	AxisCompliance     = "compliance"
	AxisPolicyRating   = "policyRating"
)

var (
	floodRiskLevel = engine.Axis{
		Name: AxisFloodRiskLevel,
		Bands: []engine.Band{
			{Label: "very_high", Any: []engine.Condition{engine.Is(mCoastalZone), engine.AtLeast(mRiskScore, 8)},
				Advisories: []string{
					"Consider relocating to a lower-risk area",
					"Implement comprehensive flood protection measures",
					"Maintain maximum insurance coverage",
				}},
			{Label: "high", Any: []engine.Condition{engine.Is(mHighRiskZone), engine.AtLeast(mRiskScore, 6)},
				Advisories: []string{
					"Install flood mitigation systems",
					"Elevate utilities and appliances",
					"Create emergency flood response plan",
				}},
			{Label: "low", When: []engine.Condition{engine.Is(mZoneX), engine.Is(mElevationAbove), engine.Not(mOtherRiskFactors)},
				Advisories: []string{
					"Maintain basic flood insurance",
					"Keep emergency supplies on hand",
					"Monitor weather alerts during storms",
				}},
		},
		Fallback: engine.Band{Label: "moderate",
			Advisories: []string{
				"Install sump pump and backflow valve",
				"Waterproof basement/crawlspace",
				"Maintain adequate insurance coverage",
			}},
	}

	compliance = engine.Axis{
		Name: AxisCompliance,
		Bands: []engine.Band{
			{Label: "required", When: []engine.Condition{engine.Is(mHighRiskZone)},
				Advisories: []string{
					"Flood insurance is required for federally backed mortgages",
					"Minimum coverage: outstanding mortgage balance or 80% of building value",
					"Recommended: full replacement cost coverage",
				}},
			{Label: "recommended", When: []engine.Condition{engine.Is(mModerateZone)},
				Advisories: []string{
					"Flood insurance is recommended but not required",
					"Consider coverage for financial protection",
					"Check lender requirements",
				}},
		},
		Fallback: engine.Band{Label: "optional",
			Advisories: []string{
				"Flood insurance is optional; flooding can still occur in low-risk areas",
				"Consider basic coverage for peace of mind",
			}},
	}

	policyRating = engine.Axis{
		Name: AxisPolicyRating,
		Bands: []engine.Band{
			{Label: "Excellent", When: []engine.Condition{engine.AtLeast(mCoverageAdequacy, 90), engine.AtLeast(mAffordability, 70)},
				Advisories: []string{"Policy offers strong coverage at an affordable cost"}},
			{Label: "Good", When: []engine.Condition{engine.AtLeast(mCoverageAdequacy, 80), engine.AtLeast(mAffordability, 50)},
				Advisories: []string{"Policy provides good value; review it annually"}},
			{Label: "Average", When: []engine.Condition{engine.AtLeast(mCoverageAdequacy, 60), engine.AtLeast(mAffordability, 25)},
				Advisories: []string{"Policy is adequate; compare quotes for better value"}},
			{Label: "Poor", When: []engine.Condition{engine.AtLeast(mCoverageAdequacy, 40)},
				Advisories: []string{"Coverage or cost is out of line; consider adjusting limits and deductibles"}},
		},
		Fallback: engine.Band{Label: "Very Poor",
			Advisories: []string{"Coverage is insufficient for the property value; review policy options"}},
	}

	savingsRules = []engine.Axis{
		engine.Rule("elevationCertificate", "Get an elevation certificate - may qualify for significant discounts",
			engine.Not(mHasCertificate)),
		engine.Rule("mitigation", "Install flood mitigation measures (elevated foundation, flood walls, sump pump)",
			engine.Not(mHasMitigation)),
		engine.Rule("communityRating", "Check if your community participates in NFIP Community Rating System",
			engine.AtLeast(mCommunityRating, 10)),
		engine.Rule("preferredRisk", "Consider NFIP Preferred Risk Policy for lower premiums",
			engine.Is(mPolicyNFIP), engine.Is(mZoneX)),
		engine.Rule("privateMarket", "Private insurance may offer better value with higher coverage limits",
			engine.Is(mPolicyNFIP), engine.Is(mPrivateCheaper)),
		engine.Rule("replacementCost", "Building coverage is below replacement cost; consider excess flood coverage",
			engine.Above(mBuildingGap, 0)),
		engine.Rule("deductible", "Consider higher deductibles to reduce premiums",
			engine.Below(mDeductibleToValue, 1)),
	}
)

// Axes returns the classification axes in evaluation order.
func Axes() []engine.Axis {
	return []engine.Axis{floodRiskLevel, compliance, policyRating}
}

func recommendationAxes() []engine.Axis {
	axes := []engine.Axis{floodRiskLevel, policyRating}
	return append(axes, savingsRules...)
}
