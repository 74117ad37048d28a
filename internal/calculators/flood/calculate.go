package flood

import (
	"github.com/iwvelando/property-calculators/internal/engine"
	"github.com/iwvelando/property-calculators/pkg/constants"
	"github.com/iwvelando/property-calculators/pkg/mathutil"
)

// Risk score scale.
const (
	minRiskScore = 1
	maxRiskScore = 10
)

// competitiveness is the price ratio one market must beat to be preferred.
const competitiveness = 0.8

// RiskIndicators are the boolean risk signals behind the risk score.
type RiskIndicators struct {
	HighRiskZone      bool `json:"highRiskZone"`
	CoastalZone       bool `json:"coastalZone"`
	ElevationAboveBFE bool `json:"elevationAboveBFE"`
	ElevationBelowBFE bool `json:"elevationBelowBFE"`
	OtherRiskFactors  bool `json:"otherRiskFactors"`
}

// Quote is the undiscounted premium one market charges for the requested coverage.
type Quote struct {
	BuildingCoverage float64 `json:"buildingCoverage"`
	ContentsCoverage float64 `json:"contentsCoverage"`
	BuildingPremium  float64 `json:"buildingPremium"`
	ContentsPremium  float64 `json:"contentsPremium"`
	TotalPremium     float64 `json:"totalPremium"`
	BuildingLimit    float64 `json:"buildingLimit"`
	ContentsLimit    float64 `json:"contentsLimit"`
}

// PolicyComparison prices the same property in both markets.
type PolicyComparison struct {
	NFIP           Quote  `json:"nfip"`
	Private        Quote  `json:"private"`
	Preferred      string `json:"preferred"`
	Recommendation string `json:"recommendation"`
}

// ProjectionYear is one year of projected insurance cost.
type ProjectionYear struct {
	Year           int     `json:"year"`
	Premium        float64 `json:"premium"`
	Fees           float64 `json:"fees"`
	TotalCost      float64 `json:"totalCost"`
	CumulativeCost float64 `json:"cumulativeCost"`
}

// Outputs is the result of the flood insurance calculator.
type Outputs struct {
	BuildingCoverage float64 `json:"buildingCoverage"`
	ContentsCoverage float64 `json:"contentsCoverage"`
	TotalCoverage    float64 `json:"totalCoverage"`

	BuildingPremium float64 `json:"buildingPremium"`
	ContentsPremium float64 `json:"contentsPremium"`
	BasePremium     float64 `json:"basePremium"`
	TotalDiscounts  float64 `json:"totalDiscounts"`
	TotalSurcharges float64 `json:"totalSurcharges"`
	AnnualPremium   float64 `json:"annualPremium"`
	MonthlyPremium  float64 `json:"monthlyPremium"`
	TotalFees       float64 `json:"totalFees"`
	TotalCost       float64 `json:"totalCost"`
	MonthlyCost     float64 `json:"monthlyCost"`
	AnnualSavings   float64 `json:"annualSavings"`

	PremiumRate             float64 `json:"premiumRate"`
	CoverageRatio           float64 `json:"coverageRatio"`
	TotalDeductible         float64 `json:"totalDeductible"`
	OutOfPocketMax          float64 `json:"outOfPocketMax"`
	CoverageGap             float64 `json:"coverageGap"`
	CoverageAdequacy        float64 `json:"coverageAdequacy"`
	ReplacementCostCoverage float64 `json:"replacementCostCoverage"`
	PremiumPerSquareFoot    float64 `json:"premiumPerSquareFoot"`
	PremiumToValueRatio     float64 `json:"premiumToValueRatio"`
	AffordabilityScore      float64 `json:"affordabilityScore"`
	RecommendedCoverage     float64 `json:"recommendedCoverage"`
	MinimumRequired         float64 `json:"minimumRequired"`

	RiskScore      float64        `json:"riskScore"`
	RiskIndicators RiskIndicators `json:"riskIndicators"`
	FloodZoneRisk  string         `json:"floodZoneRisk"`
	FloodRiskLevel string         `json:"floodRiskLevel"`
	Compliance     string         `json:"compliance"`
	PolicyRating   string         `json:"policyRating"`

	PolicyComparison PolicyComparison `json:"policyComparison"`
	ComplianceNotes  []string         `json:"complianceNotes"`
	Recommendations  []string         `json:"recommendations"`
	Projection       []ProjectionYear `json:"projection"`

	Rows []engine.ProjectionRow `json:"-"`
}

// Calculate validates the inputs and computes every output.
func Calculate(in Inputs) (Outputs, error) {
	if _, err := schema.Validate(in); err != nil {
		return Outputs{}, err
	}
	return compute(in), nil
}

func compute(in Inputs) Outputs {
	var out Outputs

	out.RiskScore = RiskScore(in)
	out.RiskIndicators = indicators(in)
	out.FloodZoneRisk = "Flood Zone " + in.FloodZone + ": " + zoneDescription(in.FloodZone)

	quote := Price(in, in.PolicyType, out.RiskScore)
	out.BuildingCoverage = quote.BuildingCoverage
	out.ContentsCoverage = quote.ContentsCoverage
	out.TotalCoverage = quote.BuildingCoverage + quote.ContentsCoverage
	out.BuildingPremium = quote.BuildingPremium
	out.ContentsPremium = quote.ContentsPremium
	out.BasePremium = quote.TotalPremium

	out.TotalDiscounts = discounts(in, out.BasePremium)
	out.TotalSurcharges = surcharges(in, out.BasePremium)
	out.AnnualPremium = mathutil.Max(0, out.BasePremium-out.TotalDiscounts+out.TotalSurcharges)
	out.MonthlyPremium = out.AnnualPremium / constants.MonthsPerYear
	out.TotalFees = in.fees()
	out.TotalCost = out.AnnualPremium + out.TotalFees
	out.MonthlyCost = out.TotalCost / constants.MonthsPerYear
	out.AnnualSavings = out.TotalDiscounts

	out.PremiumRate = mathutil.CalculatePercentage(out.AnnualPremium, out.TotalCoverage)
	out.CoverageRatio = mathutil.CalculatePercentage(out.TotalCoverage, in.PropertyValue)
	out.TotalDeductible = in.BuildingDeductible + in.ContentsDeductible
	out.OutOfPocketMax = out.TotalDeductible + out.TotalFees
	out.CoverageGap = mathutil.Max(0, in.PropertyValue-out.TotalCoverage)
	out.CoverageAdequacy = mathutil.Min(100, out.CoverageRatio)
	out.ReplacementCostCoverage = mathutil.Min(100, mathutil.CalculatePercentage(out.BuildingCoverage, in.ReplacementCost))
	out.PremiumPerSquareFoot = mathutil.SafeDivide(out.AnnualPremium, in.PropertySize)
	out.PremiumToValueRatio = mathutil.CalculatePercentage(out.AnnualPremium, in.PropertyValue)
	out.AffordabilityScore = affordability(in.MonthlyBudget, out.MonthlyCost)

	basis := in.ReplacementCost
	if basis <= 0 {
		basis = in.BuildingCoverage
	}
	out.RecommendedCoverage = basis
	if out.RiskIndicators.HighRiskZone {
		out.MinimumRequired = basis * 0.8
	}

	out.PolicyComparison = compare(in, out.RiskScore)

	metrics := Metrics(in, out)
	out.FloodRiskLevel = engine.Classify(floodRiskLevel, metrics).Label
	out.Compliance = engine.Classify(compliance, metrics).Label
	out.PolicyRating = engine.Classify(policyRating, metrics).Label
	out.ComplianceNotes = engine.Advisories(compliance, metrics)
	out.Recommendations = engine.Recommend(recommendationAxes(), metrics)

	out.Rows = engine.Project(GrowthMappings(in, out), in.AnalysisPeriod)
	out.Projection = projectionYears(out.Rows)

	return publish(out)
}

// Metrics exposes the numeric view read by the threshold tables.
func Metrics(in Inputs, out Outputs) engine.Metrics {
	ri := out.RiskIndicators
	return engine.Metrics{
		mRiskScore:         out.RiskScore,
		mHighRiskZone:      engine.Flag(ri.HighRiskZone),
		mCoastalZone:       engine.Flag(ri.CoastalZone),
		mModerateZone:      engine.Flag(moderateZone(in.FloodZone)),
		mZoneX:             engine.Flag(in.FloodZone == "X"),
		mElevationAbove:    engine.Flag(ri.ElevationAboveBFE),
		mElevationBelow:    engine.Flag(ri.ElevationBelowBFE),
		mOtherRiskFactors:  engine.Flag(ri.OtherRiskFactors),
		mCoverageAdequacy:  out.CoverageAdequacy,
		mAffordability:     out.AffordabilityScore,
		mHasCertificate:    engine.Flag(in.ElevationCertificate),
		mHasMitigation:     engine.Flag(len(in.MitigationMeasures) > 0),
		mCommunityRating:   float64(in.CommunityRating),
		mPremiumRate:       out.PremiumRate,
		mReplacementCover:  out.ReplacementCostCoverage,
		mBuildingGap:       mathutil.Max(0, in.ReplacementCost-out.BuildingCoverage),
		mPolicyNFIP:        engine.Flag(in.PolicyType == PolicyNFIP),
		mPrivateCheaper:    engine.Flag(out.PolicyComparison.Preferred == PolicyPrivate),
		mDeductibleToValue: mathutil.CalculatePercentage(out.TotalDeductible, out.TotalCoverage),
	}
}

// GrowthMappings grows the premium and fees with inflation.
func GrowthMappings(in Inputs, out Outputs) []engine.Component {
	return []engine.Component{
		{Name: "premium", Base: out.AnnualPremium, RatePercent: in.InflationRate, Flow: engine.Outflow},
		{Name: "fees", Base: out.TotalFees, RatePercent: in.InflationRate, Flow: engine.Outflow},
	}
}

// RiskScore rates flood exposure from 1 (minimal) to 10 (severe).
func RiskScore(in Inputs) float64 {
	score := float64(minRiskScore) + zoneWeight(in.FloodZone)

	if diff, ok := in.elevationDifference(); ok {
		switch {
		case diff >= 2:
			score--
		case diff >= 0:
		case diff >= -1:
			score += 2
		default:
			score += 3
		}
	}
	if in.CoastalLocation {
		score++
	}
	if in.FloodHistory {
		score += 1.5
	}
	score += mathutil.Min(2, 0.5*float64(in.NumberOfPreviousClaims))

	if d := in.DistanceToWater; d > 0 {
		switch {
		case d < 100:
			score += 1.5
		case d < 500:
			score++
		case d < 1000:
			score += 0.5
		}
	}
	return mathutil.Clamp(score, minRiskScore, maxRiskScore)
}

func indicators(in Inputs) RiskIndicators {
	diff, ok := in.elevationDifference()
	nearWater := in.DistanceToWater > 0 && in.DistanceToWater < 1000
	return RiskIndicators{
		HighRiskZone:      highRiskZone(in.FloodZone),
		CoastalZone:       coastalZone(in.FloodZone),
		ElevationAboveBFE: ok && diff > 0,
		ElevationBelowBFE: ok && diff < 0,
		OtherRiskFactors:  in.CoastalLocation || in.FloodHistory || in.NumberOfPreviousClaims > 0 || nearWater,
	}
}

// Price quotes the base premium of one market, with coverage capped at its limits.
func Price(in Inputs, policyType string, riskScore float64) Quote {
	mk, ok := markets[policyType]
	if !ok {
		mk = markets[PolicyNFIP]
	}
	rate, ok := mk.rates[in.FloodZone]
	if !ok {
		rate = mk.defaultRate
	}

	q := Quote{
		BuildingCoverage: mathutil.Min(in.BuildingCoverage, mk.limits.building),
		ContentsCoverage: mathutil.Min(in.ContentsCoverage, mk.limits.contents),
		BuildingLimit:    mk.limits.building,
		ContentsLimit:    mk.limits.contents,
	}

	buildingFactor, contentsFactor := 1.0, 1.0
	if mk.ratedByFactors {
		occupancy := factor(occupancyFactors, in.OccupancyType)
		buildingFactor = factor(propertyFactors, in.PropertyType) * occupancy * elevationFactor(in)
		contentsFactor = occupancy
	}
	if mk.riskAdjusted {
		buildingFactor *= riskScore / 5
		contentsFactor *= riskScore / 5
	}

	if q.BuildingCoverage > 0 {
		q.BuildingPremium = mathutil.Max(mathutil.ApplyPercentage(q.BuildingCoverage, rate)*buildingFactor, mk.minBuilding)
	}
	if q.ContentsCoverage > 0 {
		q.ContentsPremium = mathutil.Max(mathutil.ApplyPercentage(q.ContentsCoverage, rate)*contentsFactor, mk.minContents)
	}
	q.TotalPremium = q.BuildingPremium + q.ContentsPremium
	return q
}

func factor(table map[string]float64, key string) float64 {
	if f, ok := table[key]; ok {
		return f
	}
	return 1.0
}

func discounts(in Inputs, base float64) float64 {
	share := float64(10-in.CommunityRating) * crsDiscountStep
	if share < 0 {
		share = 0
	}
	for _, m := range in.MitigationMeasures {
		share += mitigationDiscounts[m]
	}
	for _, d := range in.Discounts {
		share += policyDiscounts[d]
	}
	return base * share
}

func surcharges(in Inputs, base float64) float64 {
	total := 0.0
	for _, s := range in.Surcharges {
		rate := surchargeRates[s]
		total += rate.flat + base*rate.share
	}
	return total
}

// affordability scores the monthly cost against the budget from 0 to 100. Without a
// budget the score is neutral.
func affordability(budget, monthlyCost float64) float64 {
	if budget <= 0 {
		return 50
	}
	return mathutil.Clamp((budget-monthlyCost)/budget*constants.PercentageMultiplier, 0, 100)
}

func compare(in Inputs, riskScore float64) PolicyComparison {
	c := PolicyComparison{
		NFIP:    Price(in, PolicyNFIP, riskScore),
		Private: Price(in, PolicyPrivate, riskScore),
	}
	switch nfip, private := c.NFIP.TotalPremium, c.Private.TotalPremium; {
	case private < nfip*competitiveness:
		c.Preferred = PolicyPrivate
		c.Recommendation = "Private insurance may offer better value with higher coverage limits"
	case nfip < private*competitiveness:
		c.Preferred = PolicyNFIP
		c.Recommendation = "NFIP policy offers better value for current coverage needs"
	default:
		c.Preferred = "either"
		c.Recommendation = "Both options are competitive - consider coverage limits and policy terms"
	}
	return c
}

func projectionYears(rows []engine.ProjectionRow) []ProjectionYear {
	years := make([]ProjectionYear, 0, len(rows))
	for _, row := range rows {
		years = append(years, ProjectionYear{
			Year:           row.Period,
			Premium:        row.Value("premium"),
			Fees:           row.Value("fees"),
			TotalCost:      row.Outflow,
			CumulativeCost: -row.Cumulative,
		})
	}
	return years
}

func publish(out Outputs) Outputs {
	for _, p := range []*float64{
		&out.BuildingPremium, &out.ContentsPremium, &out.BasePremium, &out.TotalDiscounts,
		&out.TotalSurcharges, &out.AnnualPremium, &out.MonthlyPremium, &out.TotalCost,
		&out.MonthlyCost, &out.AnnualSavings, &out.PremiumRate, &out.CoverageRatio,
		&out.CoverageAdequacy, &out.ReplacementCostCoverage, &out.PremiumPerSquareFoot,
		&out.PremiumToValueRatio, &out.AffordabilityScore, &out.MinimumRequired, &out.RiskScore,
	} {
		*p = mathutil.RoundCurrency(*p)
	}
	for _, q := range []*Quote{&out.PolicyComparison.NFIP, &out.PolicyComparison.Private} {
		q.BuildingPremium = mathutil.RoundCurrency(q.BuildingPremium)
		q.ContentsPremium = mathutil.RoundCurrency(q.ContentsPremium)
		q.TotalPremium = mathutil.RoundCurrency(q.TotalPremium)
	}
	return out
}
