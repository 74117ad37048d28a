package retirement

import (
	"math"

	"github.com/iwvelando/property-calculators/internal/engine"
	"github.com/iwvelando/property-calculators/pkg/constants"
	"github.com/iwvelando/property-calculators/pkg/mathutil"
)

const (
	fullRetirementAge = 67
	// earningsCap bounds the average monthly earnings used for Social Security.
	earningsCap     = 10000
	benefitShare    = 0.4
	pensionAccrual  = 0.015
	maxServiceYears = 30
	safeWithdrawal  = 0.04
	incomeGrowth    = 3.0
	maxMilestones   = 10
	readinessSpread = 0.15
)

// zScores are the standard normal quantiles of the reported readiness percentiles.
var zScores = []struct {
	percentile int
	z          float64
}{
	{5, -1.645}, {10, -1.282}, {25, -0.674}, {50, 0}, {75, 0.674}, {90, 1.282}, {95, 1.645},
}

// IncomeSources splits projected retirement income by source.
type IncomeSources struct {
	SocialSecurity float64 `json:"socialSecurity"`
	Pension        float64 `json:"pension"`
	Withdrawals    float64 `json:"withdrawals"`
	Other          float64 `json:"other"`
}

type RiskAssessment struct {
	Inflation  float64 `json:"inflation"`
	Market     float64 `json:"market"`
	Longevity  float64 `json:"longevity"`
	Healthcare float64 `json:"healthcare"`
	TotalRisk  float64 `json:"totalRisk"`
}

type Percentile struct {
	Percentile int     `json:"percentile"`
	Readiness  float64 `json:"readiness"`
}

// ReadinessDistribution spreads the readiness score over a normal band of fixed width.
type ReadinessDistribution struct {
	Mean               float64      `json:"mean"`
	Median             float64      `json:"median"`
	StandardDeviation  float64      `json:"standardDeviation"`
	Percentiles        []Percentile `json:"percentiles"`
	SuccessProbability float64      `json:"successProbability"`
}

// Advice is one category tagged recommendation.
type Advice struct {
	Category            string   `json:"category"`
	Recommendation      string   `json:"recommendation"`
	Rationale           string   `json:"rationale"`
	ExpectedImprovement float64  `json:"expectedImprovement"`
	Steps               []string `json:"steps"`
}

type KeyMetrics struct {
	SavingsRate      float64 `json:"savingsRate"`
	InvestmentReturn float64 `json:"investmentReturn"`
	ExpenseRatio     float64 `json:"expenseRatio"`
	EmergencyFund    float64 `json:"emergencyFund"`
}

// Milestone is the state of the plan a number of years from now.
type Milestone struct {
	Year              int     `json:"year"`
	Age               int     `json:"age"`
	ProjectedAssets   float64 `json:"projectedAssets"`
	ProjectedIncome   float64 `json:"projectedIncome"`
	ProjectedExpenses float64 `json:"projectedExpenses"`
	ReadinessScore    float64 `json:"readinessScore"`
}

// Outputs is the result of the retirement planning calculator.
type Outputs struct {
	TotalIncome       float64 `json:"totalIncome"`
	TotalAssets       float64 `json:"totalAssets"`
	AnnualSavings     float64 `json:"annualSavings"`
	YearsToRetirement int     `json:"yearsToRetirement"`

	ProjectedRetirementAssets   float64       `json:"projectedRetirementAssets"`
	ProjectedRetirementIncome   float64       `json:"projectedRetirementIncome"`
	ProjectedRetirementExpenses float64       `json:"projectedRetirementExpenses"`
	IncomeSources               IncomeSources `json:"incomeSources"`
	RetirementIncomeGap         float64       `json:"retirementIncomeGap"`
	RequiredRetirementSavings   float64       `json:"requiredRetirementSavings"`
	IncomeReplacementRate       float64       `json:"incomeReplacementRate"`

	ReadinessScore     float64 `json:"readinessScore"`
	SuccessProbability float64 `json:"successProbability"`
	WeightedScore      float64 `json:"weightedScore"`
	Recommendation     string  `json:"recommendation"`

	CurrentSavingsRate      float64 `json:"currentSavingsRate"`
	TargetSavingsRate       float64 `json:"targetSavingsRate"`
	SavingsGap              float64 `json:"savingsGap"`
	ExpectedReturn          float64 `json:"expectedReturn"`
	InflationAdjustedReturn float64 `json:"inflationAdjustedReturn"`
	PortfolioGrowth         float64 `json:"portfolioGrowth"`

	RiskAssessment RiskAssessment        `json:"riskAssessment"`
	Distribution   ReadinessDistribution `json:"readinessPercentiles"`
	KeyMetrics     KeyMetrics            `json:"keyMetrics"`

	Recommendations []Advice    `json:"recommendations"`
	Timeline        []Milestone `json:"timeline"`

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

	out.TotalIncome = in.totalIncome()
	out.TotalAssets = in.totalAssets()
	out.AnnualSavings = in.annualSavings()
	out.YearsToRetirement = in.yearsToRetirement()

	out.ProjectedRetirementAssets = ProjectAssets(in, out.YearsToRetirement)
	out.IncomeSources = IncomeSources{
		SocialSecurity: SocialSecurity(out.TotalIncome, in.Goals.RetirementAge),
		Pension:        pension(in),
		Withdrawals:    out.ProjectedRetirementAssets * in.Strategy.WithdrawalRate / 100,
		Other:          in.Assets.RentalIncome + in.Assets.BusinessIncome,
	}
	s := out.IncomeSources
	out.ProjectedRetirementIncome = s.SocialSecurity + s.Pension + s.Withdrawals + s.Other
	out.ProjectedRetirementExpenses = in.Expenses.Retirement
	out.RetirementIncomeGap = mathutil.Max(0, in.Expenses.Retirement-out.ProjectedRetirementIncome)
	out.RequiredRetirementSavings = RequiredSavings(in, out.RetirementIncomeGap)
	out.IncomeReplacementRate = mathutil.CalculatePercentage(out.ProjectedRetirementIncome, in.Expenses.Retirement)

	out.ReadinessScore = Readiness(out.ProjectedRetirementAssets, out.RequiredRetirementSavings)
	out.SuccessProbability = successProbability(in, out.ReadinessScore)

	out.CurrentSavingsRate = in.Strategy.CurrentSavingsRate
	out.TargetSavingsRate = in.Strategy.TargetSavingsRate
	out.SavingsGap = in.Strategy.TargetSavingsRate - in.Strategy.CurrentSavingsRate
	out.ExpectedReturn = in.Strategy.TargetReturn
	out.InflationAdjustedReturn = in.Strategy.TargetReturn - in.Expenses.InflationRate
	out.PortfolioGrowth = mathutil.Max(0,
		mathutil.CalculatePercentage(out.ProjectedRetirementAssets-out.TotalAssets, out.TotalAssets))

	r := in.Risk
	out.RiskAssessment = RiskAssessment{
		Inflation:  r.Inflation,
		Market:     r.Market,
		Longevity:  r.Longevity,
		Healthcare: r.Healthcare,
		TotalRisk:  (r.Inflation + r.Market + r.Longevity + r.Healthcare) / 4,
	}
	out.Distribution = distribution(out.ReadinessScore)
	out.KeyMetrics = KeyMetrics{
		SavingsRate:      in.Strategy.CurrentSavingsRate,
		InvestmentReturn: in.Strategy.TargetReturn,
		ExpenseRatio:     mathutil.CalculatePercentage(in.Expenses.Current, out.TotalIncome),
		EmergencyFund:    in.Expenses.Current * 0.25,
	}

	out.WeightedScore = 0.4*out.ReadinessScore + 0.3*out.SuccessProbability +
		0.3*mathutil.Max(0, 1-out.SavingsGap/100)

	metrics := Metrics(in, out)
	out.Recommendation = engine.Classify(recommendation, metrics).Label
	out.Recommendations = advise(metrics)
	out.Timeline = timeline(in, out.YearsToRetirement)
	out.Rows = engine.Project(GrowthMappings(in),
		engine.ClampPeriods(out.YearsToRetirement, constants.MaxProjectionPeriods))

	return publish(out)
}

// Metrics exposes the numeric view read by the threshold tables.
func Metrics(in Inputs, out Outputs) engine.Metrics {
	return engine.Metrics{
		mWeightedScore:  out.WeightedScore,
		mReadiness:      out.ReadinessScore,
		mSavingsGap:     out.SavingsGap,
		mIncomeGap:      out.RetirementIncomeGap,
		mHealthcareRisk: in.Risk.Healthcare,
	}
}

// GrowthMappings projects annual savings, growing with income, over the years to
// retirement. Cumulative is the running total of contributions.
func GrowthMappings(in Inputs) []engine.Component {
	return []engine.Component{
		{Name: "savings", Base: in.annualSavings(), RatePercent: incomeGrowth, Flow: engine.Inflow},
		{Name: "income", Base: in.totalIncome(), RatePercent: incomeGrowth, Flow: engine.Memo},
		{Name: "expenses", Base: in.Expenses.Current, RatePercent: in.Expenses.InflationRate, Flow: engine.Memo},
	}
}

// ProjectAssets grows current assets at the real return and adds a year of savings,
// compounded from the end of each year, for every year until retirement.
func ProjectAssets(in Inputs, years int) float64 {
	r := in.realReturn()
	assets := in.totalAssets() * math.Pow(1+r, float64(years))
	savings := in.annualSavings()
	for y := 1; y <= years; y++ {
		assets += savings * math.Pow(1+r, float64(y))
	}
	return assets
}

// SocialSecurity estimates the annual benefit from current income. Claiming before
// the full retirement age reduces the benefit by 5% a year down to 70%; delaying
// raises it by 8% a year up to 124%.
func SocialSecurity(income float64, retirementAge int) float64 {
	monthly := mathutil.Min(income/constants.MonthsPerYear, earningsCap)
	annual := monthly * benefitShare * constants.MonthsPerYear

	switch {
	case retirementAge < fullRetirementAge:
		return annual * mathutil.Max(0.7, 1-0.05*float64(fullRetirementAge-retirementAge))
	case retirementAge > fullRetirementAge:
		return annual * mathutil.Min(1.24, 1+0.08*float64(retirementAge-fullRetirementAge))
	}
	return annual
}

func pension(in Inputs) float64 {
	if !in.HasPension {
		return 0
	}
	service := min(maxServiceYears, in.yearsToRetirement())
	return in.Income.Employment * pensionAccrual * float64(service)
}

// RequiredSavings sizes the nest egg that closes an annual income gap over the
// retirement duration.
func RequiredSavings(in Inputs, gap float64) float64 {
	if gap <= 0 {
		return 0
	}
	r := in.realReturn()
	d := float64(in.Goals.RetirementDuration)
	factor := d
	if r != 0 {
		factor = (1 - math.Pow(1+r, -d)) / r
	}
	return gap / safeWithdrawal * factor
}

// Readiness maps projected over required assets onto [0, 1] with a logistic curve
// centred on half funded.
func Readiness(projected, required float64) float64 {
	if required <= 0 {
		return 1
	}
	ratio := projected / required
	switch {
	case ratio >= 1:
		return 1
	case ratio <= 0:
		return 0
	}
	return 1 / (1 + math.Exp(-5*(ratio-0.5)))
}

func riskAdjustment(in Inputs) float64 {
	adj := 0.0
	switch in.Risk.Tolerance {
	case ToleranceConservative:
		adj += 0.1
	case ToleranceModerate:
		adj += 0.05
	case ToleranceAggressive:
		adj += 0.02
	}
	adj += in.Risk.Market*0.3 + in.Risk.Inflation*0.2
	return mathutil.Min(0.5, adj)
}

func successProbability(in Inputs, readiness float64) float64 {
	p := readiness * (1 - riskAdjustment(in))
	p *= 1 - mathutil.Min(0.2, float64(in.yearsToRetirement())*0.01)
	return mathutil.Clamp(p, 0, 1)
}

func distribution(readiness float64) ReadinessDistribution {
	d := ReadinessDistribution{
		Mean:               readiness,
		Median:             readiness,
		StandardDeviation:  readinessSpread,
		Percentiles:        make([]Percentile, 0, len(zScores)),
		SuccessProbability: mathutil.Clamp(readiness, 0, 1),
	}
	for _, q := range zScores {
		d.Percentiles = append(d.Percentiles, Percentile{
			Percentile: q.percentile,
			Readiness:  mathutil.Clamp(readiness+q.z*readinessSpread, 0, 1),
		})
	}
	return d
}

func advise(m engine.Metrics) []Advice {
	advice := make([]Advice, 0, len(adviceRules))
	for _, rule := range adviceRules {
		text := engine.Advisories(rule, m)
		if len(text) == 0 {
			continue
		}
		detail := adviceDetails[rule.Name]
		advice = append(advice, Advice{
			Category:            rule.Name,
			Recommendation:      text[0],
			Rationale:           detail.rationale,
			ExpectedImprovement: detail.improvement(m),
			Steps:               detail.steps,
		})
	}
	return advice
}

func timeline(in Inputs, years int) []Milestone {
	n := min(years, maxMilestones)
	milestones := make([]Milestone, 0, n)
	income := in.totalIncome()
	for y := 1; y <= n; y++ {
		assets := ProjectAssets(in, y)
		projIncome := mathutil.Grow(income, incomeGrowth, y)
		projExpenses := mathutil.Grow(in.Expenses.Current, in.Expenses.InflationRate, y)
		milestones = append(milestones, Milestone{
			Year:              y,
			Age:               in.Personal.Age + y,
			ProjectedAssets:   mathutil.RoundCurrency(assets),
			ProjectedIncome:   mathutil.RoundCurrency(projIncome),
			ProjectedExpenses: mathutil.RoundCurrency(projExpenses),
			ReadinessScore:    mathutil.RoundTo(Readiness(assets, RequiredSavings(in, projExpenses-projIncome)), 4),
		})
	}
	return milestones
}

func publish(out Outputs) Outputs {
	for _, p := range []*float64{
		&out.TotalIncome, &out.TotalAssets, &out.AnnualSavings,
		&out.ProjectedRetirementAssets, &out.ProjectedRetirementIncome, &out.ProjectedRetirementExpenses,
		&out.IncomeSources.SocialSecurity, &out.IncomeSources.Pension, &out.IncomeSources.Withdrawals,
		&out.IncomeSources.Other, &out.RetirementIncomeGap, &out.RequiredRetirementSavings,
		&out.IncomeReplacementRate, &out.PortfolioGrowth, &out.KeyMetrics.ExpenseRatio,
		&out.KeyMetrics.EmergencyFund,
	} {
		*p = mathutil.RoundCurrency(*p)
	}
	for _, p := range []*float64{
		&out.ReadinessScore, &out.SuccessProbability, &out.WeightedScore, &out.RiskAssessment.TotalRisk,
		&out.Distribution.Mean, &out.Distribution.Median, &out.Distribution.SuccessProbability,
	} {
		*p = mathutil.RoundTo(*p, 4)
	}
	for i := range out.Distribution.Percentiles {
		out.Distribution.Percentiles[i].Readiness = mathutil.RoundTo(out.Distribution.Percentiles[i].Readiness, 4)
	}
	for i := range out.Recommendations {
		out.Recommendations[i].ExpectedImprovement = mathutil.RoundTo(out.Recommendations[i].ExpectedImprovement, 4)
	}
	return out
}
