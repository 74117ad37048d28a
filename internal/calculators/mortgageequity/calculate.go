package mortgageequity

import (
	"github.com/iwvelando/property-calculators/internal/engine"
	"github.com/iwvelando/property-calculators/pkg/constants"
	"github.com/iwvelando/property-calculators/pkg/loans"
	"github.com/iwvelando/property-calculators/pkg/mathutil"
)

// Borrowable share of equity: base by occupancy, adjusted for credit and DTI, clamped.
const (
	borrowableBase       = 0.85
	borrowableSecondary  = 0.80
	borrowableInvestment = 0.75
	borrowableFloor      = 0.70
	borrowableCap        = 0.90
)

// Summary compares the equity at purchase with today.
type Summary struct {
	InitialEquity            float64 `json:"initialEquity"`
	CurrentEquity            float64 `json:"currentEquity"`
	EquityIncrease           float64 `json:"equityIncrease"`
	EquityIncreasePercentage float64 `json:"equityIncreasePercentage"`
}

// ProjectionYear is one year of the equity projection.
type ProjectionYear struct {
	Year                 int     `json:"year"`
	PropertyValue        float64 `json:"propertyValue"`
	MortgageBalance      float64 `json:"mortgageBalance"`
	ProjectedEquity      float64 `json:"projectedEquity"`
	ProjectedLTV         float64 `json:"projectedLTV"`
	CumulativeEquityGain float64 `json:"cumulativeEquityGain"`
}

// RefinanceScenario compares the current loan with the candidate replacement.
type RefinanceScenario struct {
	CurrentPayment     float64 `json:"currentPayment"`
	NewPayment         float64 `json:"newPayment"`
	PaymentSavings     float64 `json:"paymentSavings"`
	NewBalance         float64 `json:"newBalance"`
	NewLTV             float64 `json:"newLTV"`
	ClosingCosts       float64 `json:"closingCosts"`
	BreakEvenMonths    float64 `json:"breakEvenMonths"`
	TotalSavings       float64 `json:"totalSavings"`
	RecommendRefinance bool    `json:"recommendRefinance"`
}

// Outputs is the result of the mortgage equity calculator.
type Outputs struct {
	TotalEquity              float64 `json:"totalEquity"`
	EquityPercentage         float64 `json:"equityPercentage"`
	BorrowableEquity         float64 `json:"borrowableEquity"`
	BorrowablePercentage     float64 `json:"borrowablePercentage"`
	EquityGrowth             float64 `json:"equityGrowth"`
	AppreciationValue        float64 `json:"appreciationValue"`
	ImprovementValue         float64 `json:"improvementValue"`
	PaymentEquity            float64 `json:"paymentEquity"`
	LoanToValueRatio         float64 `json:"loanToValueRatio"`
	CombinedLoanToValueRatio float64 `json:"combinedLoanToValueRatio"`
	MonthlyEquityBuild       float64 `json:"monthlyEquityBuild"`
	AnnualEquityBuild        float64 `json:"annualEquityBuild"`
	EquityGrowthRate         float64 `json:"equityGrowthRate"`

	Classifications    map[string]string `json:"classifications"`
	RefinancingOptions []string          `json:"refinancingOptions"`
	Recommendations    []string          `json:"recommendations"`
	Summary            Summary           `json:"summary"`
	Projection         []ProjectionYear  `json:"projection"`
	Refinance          RefinanceScenario `json:"refinance"`

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

	out.TotalEquity = in.CurrentPropertyValue - in.CurrentMortgageBalance
	out.EquityPercentage = mathutil.CalculatePercentage(out.TotalEquity, in.CurrentPropertyValue)
	out.EquityGrowth = out.TotalEquity - in.OriginalDownPayment
	out.AppreciationValue = mathutil.Max(0, in.CurrentPropertyValue-in.OriginalPurchasePrice-in.PropertyImprovements)
	out.ImprovementValue = in.PropertyImprovements
	out.PaymentEquity = paymentEquity(in)
	out.LoanToValueRatio = mathutil.CalculatePercentage(in.CurrentMortgageBalance, in.CurrentPropertyValue)
	out.CombinedLoanToValueRatio = out.LoanToValueRatio
	out.MonthlyEquityBuild = monthlyEquityBuild(in)
	out.AnnualEquityBuild = out.MonthlyEquityBuild * constants.MonthsPerYear
	if in.YearsOwned > 0 {
		out.EquityGrowthRate = mathutil.SafeDivide(mathutil.SafeDivide(out.EquityGrowth, in.OriginalDownPayment), in.YearsOwned) *
			constants.PercentageMultiplier
	}
	out.BorrowablePercentage = borrowableShare(in)
	out.BorrowableEquity = mathutil.Max(0, out.TotalEquity*out.BorrowablePercentage)

	metrics := Metrics(in, out)
	out.Classifications = make(map[string]string, len(Axes()))
	for name, c := range engine.ClassifyAll(Axes(), metrics) {
		out.Classifications[name] = c.Label
	}
	out.RefinancingOptions = engine.Recommend(refinancingOptions, metrics)
	out.Recommendations = engine.Recommend(recommendationAxes(), metrics)

	out.Summary = Summary{
		InitialEquity:            in.OriginalDownPayment,
		CurrentEquity:            out.TotalEquity,
		EquityIncrease:           out.EquityGrowth,
		EquityIncreasePercentage: mathutil.CalculatePercentage(out.EquityGrowth, in.OriginalDownPayment),
	}

	out.Rows = engine.Project(GrowthMappings(in), in.ProjectionYears)
	out.Projection = projectionYears(in, out)
	out.Refinance = refinanceScenario(in)

	return publish(out)
}

// Metrics exposes the numeric view read by the threshold tables.
func Metrics(in Inputs, out Outputs) engine.Metrics {
	return engine.Metrics{
		mEquityPct:     out.EquityPercentage,
		mLTV:           out.LoanToValueRatio,
		mEquityGrowth:  out.EquityGrowth,
		mGrowthRate:    out.EquityGrowthRate,
		mYearsOwned:    in.YearsOwned,
		mMonthlyBuild:  out.MonthlyEquityBuild,
		mCreditScore:   in.CreditScore,
		mDTI:           in.DebtToIncomeRatio,
		mInterestRate:  in.InterestRate,
		mOccPrimary:    engine.Flag(in.OccupancyType == OccupancyPrimary),
		mOccSecondary:  engine.Flag(in.OccupancyType == OccupancySecondary),
		mOccInvestment: engine.Flag(in.OccupancyType == OccupancyInvestment),
		mPropertyCondo: engine.Flag(in.PropertyType == PropertyCondo),
	}
}

// GrowthMappings projects the property value at the appreciation rate.
func GrowthMappings(in Inputs) []engine.Component {
	return []engine.Component{
		{Name: "propertyValue", Base: in.CurrentPropertyValue, RatePercent: in.AppreciationRate, Flow: engine.Memo},
	}
}

// paymentEquity is the principal repaid so far. With full payment data it is estimated as
// payments made less interest on the average balance; otherwise as the drop in balance.
func paymentEquity(in Inputs) float64 {
	originalLoan := in.originalLoan()
	if in.MonthlyPayment <= 0 || in.InterestRate <= 0 {
		return mathutil.Max(0, originalLoan-in.CurrentMortgageBalance)
	}
	totalPayments := in.MonthlyPayment * in.YearsOwned * constants.MonthsPerYear
	averageBalance := (originalLoan + in.CurrentMortgageBalance) / 2
	totalInterest := mathutil.ApplyPercentage(averageBalance, in.InterestRate) * in.YearsOwned
	return mathutil.Max(0, totalPayments-totalInterest)
}

func monthlyEquityBuild(in Inputs) float64 {
	if !in.hasPaymentData() {
		if in.CurrentMortgageBalance <= 0 {
			return 0
		}
		term := in.RemainingLoanTerm
		if term <= 0 {
			term = 30
		}
		return in.CurrentMortgageBalance / term / constants.MonthsPerYear
	}
	principal := in.MonthlyPayment - loans.InterestPayment(in.CurrentMortgageBalance, in.InterestRate)
	return mathutil.Max(0, principal)
}

func borrowableShare(in Inputs) float64 {
	share := borrowableBase
	switch in.OccupancyType {
	case OccupancyInvestment:
		share = borrowableInvestment
	case OccupancySecondary:
		share = borrowableSecondary
	}

	if in.CreditScore > 0 {
		switch {
		case in.CreditScore >= 760:
			share += 0.05
		case in.CreditScore < 620:
			share -= 0.10
		}
	}
	if in.DebtToIncomeRatio > 0 {
		switch {
		case in.DebtToIncomeRatio > 43:
			share -= 0.05
		case in.DebtToIncomeRatio < 28:
			share += 0.03
		}
	}
	return mathutil.Clamp(share, borrowableFloor, borrowableCap)
}

// projectedBalance returns the mortgage balance after the given number of years. With
// complete loan terms the balance follows the amortization of the remaining term;
// otherwise it falls by the annual equity build.
func projectedBalance(in Inputs, annualBuild float64, years int) float64 {
	if in.hasPaymentData() {
		return mathutil.Max(0, loans.RemainingBalance(in.CurrentMortgageBalance, in.InterestRate, in.RemainingLoanTerm,
			years*constants.MonthsPerYear))
	}
	return mathutil.Max(0, in.CurrentMortgageBalance-annualBuild*float64(years))
}

func projectionYears(in Inputs, out Outputs) []ProjectionYear {
	years := make([]ProjectionYear, 0, len(out.Rows))
	for _, row := range out.Rows {
		value := row.Value("propertyValue")
		balance := projectedBalance(in, out.AnnualEquityBuild, row.Period)
		equity := value - balance
		years = append(years, ProjectionYear{
			Year:                 row.Period,
			PropertyValue:        value,
			MortgageBalance:      balance,
			ProjectedEquity:      equity,
			ProjectedLTV:         mathutil.CalculatePercentage(balance, value),
			CumulativeEquityGain: equity - out.TotalEquity,
		})
	}
	return years
}

func refinanceScenario(in Inputs) RefinanceScenario {
	r := in.Refinance
	s := RefinanceScenario{
		CurrentPayment: in.MonthlyPayment,
		NewBalance:     in.CurrentMortgageBalance + r.CashOutAmount,
	}
	if r.NewTerm > 0 && s.NewBalance > 0 {
		s.NewPayment = loans.MonthlyPayment(s.NewBalance, r.NewRate, r.NewTerm)
	}
	s.PaymentSavings = s.CurrentPayment - s.NewPayment
	s.NewLTV = mathutil.CalculatePercentage(s.NewBalance, in.CurrentPropertyValue)
	s.ClosingCosts = mathutil.ApplyPercentage(s.NewBalance, r.ClosingCostRate)
	if s.PaymentSavings > 0 {
		s.BreakEvenMonths = s.ClosingCosts / s.PaymentSavings
	}
	s.TotalSavings = s.PaymentSavings*r.NewTerm*constants.MonthsPerYear - s.ClosingCosts
	s.RecommendRefinance = s.PaymentSavings > 0 && s.TotalSavings > 0
	return s
}

// publish rounds the headline figures: currency to cents, ratios to two places.
func publish(out Outputs) Outputs {
	for _, p := range []*float64{
		&out.TotalEquity, &out.BorrowableEquity, &out.EquityGrowth, &out.AppreciationValue,
		&out.ImprovementValue, &out.PaymentEquity, &out.MonthlyEquityBuild, &out.AnnualEquityBuild,
		&out.EquityPercentage, &out.LoanToValueRatio, &out.CombinedLoanToValueRatio, &out.EquityGrowthRate,
		&out.BorrowablePercentage,
	} {
		*p = mathutil.RoundCurrency(*p)
	}
	out.Summary.EquityIncreasePercentage = mathutil.RoundCurrency(out.Summary.EquityIncreasePercentage)
	for i := range out.Projection {
		out.Projection[i].ProjectedLTV = mathutil.RoundCurrency(out.Projection[i].ProjectedLTV)
	}
	s := &out.Refinance
	for _, p := range []*float64{
		&s.CurrentPayment, &s.NewPayment, &s.PaymentSavings, &s.NewBalance, &s.NewLTV,
		&s.ClosingCosts, &s.BreakEvenMonths, &s.TotalSavings,
	} {
		*p = mathutil.RoundCurrency(*p)
	}
	return out
}
