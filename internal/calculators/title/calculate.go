package title

import (
	"github.com/iwvelando/property-calculators/internal/engine"
	"github.com/iwvelando/property-calculators/pkg/constants"
	"github.com/iwvelando/property-calculators/pkg/mathutil"
)

// extendedBaseShare is the base cost of extended coverage as a share of coverage.
const extendedBaseShare = 0.001

// PolicyOption is one column of the policy comparison.
type PolicyOption struct {
	Type     string  `json:"type"`
	Premium  float64 `json:"premium"`
	Coverage string  `json:"coverage"`
	Cost     float64 `json:"cost"`
}

// RiskBreakdown rates each title risk factor High or Low.
type RiskBreakdown struct {
	KnownIssues    string `json:"knownIssues"`
	PreviousClaims string `json:"previousClaims"`
	ChainOfTitle   string `json:"chainOfTitle"`
	PropertyAge    string `json:"propertyAge"`
	OverallRisk    string `json:"overallRisk"`
}

// CostBreakdown itemizes the total closing cost of the title policy.
type CostBreakdown struct {
	BasePremium      float64 `json:"basePremium"`
	Endorsements     float64 `json:"endorsements"`
	ExtendedCoverage float64 `json:"extendedCoverage"`
	SearchFees       float64 `json:"searchFees"`
	SettlementFees   float64 `json:"settlementFees"`
	TotalCosts       float64 `json:"totalCosts"`
}

// Outputs is the result of the title insurance calculator.
type Outputs struct {
	EffectiveCoverage     float64 `json:"effectiveCoverage"`
	OwnersPolicyPremium   float64 `json:"ownersPolicyPremium"`
	LendersPolicyPremium  float64 `json:"lendersPolicyPremium"`
	TotalPremium          float64 `json:"totalPremium"`
	TotalMultiplier       float64 `json:"totalMultiplier"`
	EndorsementCosts      float64 `json:"endorsementCosts"`
	ExtendedCoverageCosts float64 `json:"extendedCoverageCosts"`
	SearchFees            float64 `json:"searchFees"`
	SettlementFees        float64 `json:"settlementFees"`
	TotalCosts            float64 `json:"totalCosts"`
	PremiumPerThousand    float64 `json:"premiumPerThousand"`
	CostPercentage        float64 `json:"costPercentage"`
	PresentValue          float64 `json:"presentValue"`

	RiskScore     float64 `json:"riskScore"`
	CoverageScore float64 `json:"coverageScore"`
	ValueScore    float64 `json:"valueScore"`

	Classifications  map[string]string `json:"classifications"`
	PolicyComparison []PolicyOption    `json:"policyComparison"`
	RiskBreakdown    RiskBreakdown     `json:"riskBreakdown"`
	CostBreakdown    CostBreakdown     `json:"costBreakdown"`
	Recommendations  []string          `json:"recommendations"`
	KeyFactors       []string          `json:"keyFactors"`
	Risks            []string          `json:"risks"`
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

	out.EffectiveCoverage = in.effectiveCoverage()
	out.TotalMultiplier = stateAdjustment(in.State) *
		lookup(transactionMultipliers, in.TransactionType, 1) *
		lookup(propertyMultipliers, in.PropertyType, 1) *
		riskMultiplier(in)

	ownersOnly := ownersPremium(out.EffectiveCoverage) * out.TotalMultiplier
	lendersOnly := lendersPremium(in.lenderCoverage()) * out.TotalMultiplier
	if in.hasOwners() {
		out.OwnersPolicyPremium = ownersOnly
	}
	if in.hasLenders() {
		out.LendersPolicyPremium = lendersOnly
	}
	out.TotalPremium = out.OwnersPolicyPremium + out.LendersPolicyPremium

	for _, e := range in.Endorsements {
		out.EndorsementCosts += endorsementCosts[e]
	}
	out.ExtendedCoverageCosts = out.EffectiveCoverage * extendedBaseShare * extendedShares[in.ExtendedCoverage]
	out.SearchFees = searchCost(in)
	out.SettlementFees = settlementCost(in)
	out.TotalCosts = out.TotalPremium + out.EndorsementCosts + out.ExtendedCoverageCosts + out.SearchFees + out.SettlementFees

	out.PremiumPerThousand = mathutil.SafeDivide(out.TotalPremium, out.EffectiveCoverage/1000)
	out.CostPercentage = mathutil.CalculatePercentage(out.TotalCosts, in.PropertyValue)
	out.PresentValue = out.TotalCosts / (1 + in.DiscountRate/constants.PercentageMultiplier)

	out.RiskScore = RiskScore(in)
	out.CoverageScore = coverageScore(in, out.EffectiveCoverage)
	out.ValueScore = valueScore(out.CostPercentage, out.RiskScore)

	fees := out.SearchFees + out.SettlementFees
	out.PolicyComparison = []PolicyOption{
		{Type: "Owner's Policy Only", Premium: ownersOnly, Coverage: "Owner protection only", Cost: ownersOnly + fees},
		{Type: "Lender's Policy Only", Premium: lendersOnly, Coverage: "Lender protection only", Cost: lendersOnly + fees},
		{Type: "Both Policies", Premium: ownersOnly + lendersOnly, Coverage: "Full protection",
			Cost: ownersOnly + lendersOnly + out.EndorsementCosts + out.ExtendedCoverageCosts + fees},
	}

	metrics := Metrics(in, out)
	out.Classifications = make(map[string]string, len(Axes()))
	for name, c := range engine.ClassifyAll(Axes(), metrics) {
		out.Classifications[name] = c.Label
	}
	out.Recommendations = engine.Recommend(recommendationAxes(), metrics)
	out.KeyFactors = engine.Recommend(keyFactorRules, metrics)
	out.Risks = engine.Recommend(riskRules, metrics)

	out.RiskBreakdown = RiskBreakdown{
		KnownIssues:    highLow(in.hasKnownIssues()),
		PreviousClaims: highLow(in.PreviousClaims != "" && in.PreviousClaims != noneOption),
		ChainOfTitle:   highLow(in.ChainOfTitle == "complex" || in.ChainOfTitle == chainVeryComplex),
		PropertyAge:    highLow(in.PropertyAge > 50),
		OverallRisk:    out.Classifications[AxisOverallRisk],
	}
	out.CostBreakdown = CostBreakdown{
		BasePremium:      out.TotalPremium,
		Endorsements:     out.EndorsementCosts,
		ExtendedCoverage: out.ExtendedCoverageCosts,
		SearchFees:       out.SearchFees,
		SettlementFees:   out.SettlementFees,
		TotalCosts:       out.TotalCosts,
	}

	return publish(out)
}

// Metrics exposes the numeric view read by the threshold tables.
func Metrics(in Inputs, out Outputs) engine.Metrics {
	state := normalizeState(in.State)
	return engine.Metrics{
		mRiskScore:      out.RiskScore,
		mCoverageScore:  out.CoverageScore,
		mValueScore:     out.ValueScore,
		mLenderOnly:     engine.Flag(in.CoverageType == CoverageLenders),
		mPurchase:       engine.Flag(in.TransactionType == transactionBuy),
		mRefinance:      engine.Flag(in.TransactionType == transactionRefi),
		mKnownIssues:    engine.Flag(in.hasKnownIssues()),
		mRatedState:     engine.Flag(state == "ca" || state == "ny"),
		mCommercial:     engine.Flag(in.PropertyType == propertyCommerce || in.PropertyType == propertyMultiUnit),
		mPropertyAge:    float64(in.PropertyAge),
		mVeryComplex:    engine.Flag(in.ChainOfTitle == chainVeryComplex),
		mCostPercentage: out.CostPercentage,
	}
}

func riskMultiplier(in Inputs) float64 {
	m := 1.0
	m *= knownIssueRisks[in.KnownIssues].orOne()
	m *= claimRisks[in.PreviousClaims].orOne()
	m *= chainRisks[in.ChainOfTitle].orOne()
	if in.PropertyAge > 50 {
		m *= 1.2
	}
	if in.PropertyAge > 100 {
		m *= 1.4
	}
	return m
}

func (f riskFactor) orOne() float64 {
	if f.multiplier == 0 {
		return 1
	}
	return f.multiplier
}

// RiskScore rates title risk from the base of 50 up to 100.
func RiskScore(in Inputs) float64 {
	score := 50.0
	score += knownIssueRisks[in.KnownIssues].points
	score += claimRisks[in.PreviousClaims].points
	score += chainRisks[in.ChainOfTitle].points
	if in.PropertyAge > 50 {
		score += 10
	}
	if in.PropertyAge > 100 {
		score += 20
	}
	score += propertyRiskPoints[in.PropertyType]
	return mathutil.Min(score, 100)
}

func coverageScore(in Inputs, coverage float64) float64 {
	score := 100.0
	if in.hasOwners() {
		if coverage < in.PropertyValue*0.8 {
			score -= 20
		}
		if coverage < in.PropertyValue*0.6 {
			score -= 30
		}
	}
	if in.hasLenders() && in.LoanAmount > 0 && coverage < in.LoanAmount {
		score -= 25
	}
	return mathutil.Max(score, 0)
}

func valueScore(costPercentage, riskScore float64) float64 {
	score := 100.0
	switch {
	case costPercentage > 2:
		score -= 30
	case costPercentage > 1.5:
		score -= 20
	case costPercentage > 1:
		score -= 10
	}
	switch {
	case riskScore > 80:
		score += 10
	case riskScore < 30:
		score -= 10
	}
	return mathutil.Clamp(score, 0, 100)
}

func searchCost(in Inputs) float64 {
	fees := searchFees[in.TitleSearchDepth]
	if in.SurveyRequired {
		fees += surveyFee
	}
	if in.AbstractRequired {
		fees += abstractFee
	}
	return fees
}

func settlementCost(in Inputs) float64 {
	fees := baseSettlementFee + escrowFees[in.EscrowServices]
	switch in.TransactionType {
	case transactionRefi:
		fees *= 0.8
	case "construction":
		fees *= 1.2
	}
	return fees
}

func highLow(high bool) string {
	if high {
		return "High"
	}
	return "Low"
}

func publish(out Outputs) Outputs {
	for _, p := range []*float64{
		&out.OwnersPolicyPremium, &out.LendersPolicyPremium, &out.TotalPremium, &out.EndorsementCosts,
		&out.ExtendedCoverageCosts, &out.SearchFees, &out.SettlementFees, &out.TotalCosts,
		&out.PremiumPerThousand, &out.CostPercentage, &out.PresentValue,
		&out.CostBreakdown.BasePremium, &out.CostBreakdown.ExtendedCoverage, &out.CostBreakdown.TotalCosts,
		&out.CostBreakdown.SettlementFees,
	} {
		*p = mathutil.RoundCurrency(*p)
	}
	for i := range out.PolicyComparison {
		out.PolicyComparison[i].Premium = mathutil.RoundCurrency(out.PolicyComparison[i].Premium)
		out.PolicyComparison[i].Cost = mathutil.RoundCurrency(out.PolicyComparison[i].Cost)
	}
	return out
}
