package retirement

import (
	"context"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/iwvelando/property-calculators/internal/calculator"
	"github.com/iwvelando/property-calculators/internal/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateDefaults(t *testing.T) {
	out, err := Calculate(Defaults())
	require.NoError(t, err)

	assert.InDelta(t, 105000, out.TotalIncome, 0.001)
	assert.InDelta(t, 360000, out.TotalAssets, 0.001)
	assert.InDelta(t, 10500, out.AnnualSavings, 0.001)
	assert.Equal(t, 25, out.YearsToRetirement)

	assert.InDelta(t, 1414474.40, out.ProjectedRetirementAssets, 0.01)
	assert.InDelta(t, 37800, out.IncomeSources.SocialSecurity, 0.001)
	assert.Zero(t, out.IncomeSources.Pension)
	assert.InDelta(t, 56578.98, out.IncomeSources.Withdrawals, 0.01)
	assert.InDelta(t, 94378.98, out.ProjectedRetirementIncome, 0.01)
	assert.Zero(t, out.RetirementIncomeGap)
	assert.Zero(t, out.RequiredRetirementSavings)
	assert.InDelta(t, 157.30, out.IncomeReplacementRate, 0.01)
	assert.InDelta(t, 292.91, out.PortfolioGrowth, 0.01)

	assert.InDelta(t, 1, out.ReadinessScore, 1e-9)
	assert.InDelta(t, 0.656, out.SuccessProbability, 1e-9)
	assert.InDelta(t, 0.8818, out.WeightedScore, 1e-9)
	assert.Equal(t, "excellent", out.Recommendation)

	assert.InDelta(t, 5, out.SavingsGap, 1e-9)
	assert.InDelta(t, 4, out.InflationAdjustedReturn, 1e-9)
	assert.InDelta(t, 0.2, out.RiskAssessment.TotalRisk, 1e-9)
	assert.InDelta(t, 17500, out.KeyMetrics.EmergencyFund, 0.001)
	assert.InDelta(t, 66.67, out.KeyMetrics.ExpenseRatio, 0.01)

	require.Len(t, out.Recommendations, 1)
	assert.Equal(t, "Risk Management", out.Recommendations[0].Category)
	assert.Equal(t, "Plan for healthcare costs in retirement", out.Recommendations[0].Recommendation)
	assert.Len(t, out.Recommendations[0].Steps, 3)
}

func TestIncomeGapScenario(t *testing.T) {
	in := Defaults()
	in.Expenses.Retirement = 150000

	out, err := Calculate(in)
	require.NoError(t, err)

	gap := 150000 - 94378.97591326151
	required := gap / 0.04 * (1 - math.Pow(1.04, -25)) / 0.04
	readiness := 1 / (1 + math.Exp(-5*(1414474.3978315378/required-0.5)))

	assert.InDelta(t, gap, out.RetirementIncomeGap, 0.01)
	assert.InDelta(t, required, out.RequiredRetirementSavings, 0.01)
	assert.InDelta(t, readiness, out.ReadinessScore, 1e-4)
	assert.InDelta(t, readiness*0.82*0.8, out.SuccessProbability, 1e-4)
	assert.Equal(t, "needs_improvement", out.Recommendation)

	var categories []string
	for _, a := range out.Recommendations {
		categories = append(categories, a.Category)
	}
	assert.Equal(t, []string{"Investment", "Income", "Risk Management"}, categories)
}

func TestSavingsAdvice(t *testing.T) {
	in := Defaults()
	in.Strategy.TargetSavingsRate = 20

	out, err := Calculate(in)
	require.NoError(t, err)
	require.NotEmpty(t, out.Recommendations)
	assert.Equal(t, "Savings", out.Recommendations[0].Category)
	assert.InDelta(t, 0.1*0.3, out.Recommendations[0].ExpectedImprovement, 1e-9)
}

func TestSocialSecurity(t *testing.T) {
	tests := []struct {
		name   string
		income float64
		age    int
		want   float64
	}{
		{"Full retirement age", 105000, 67, 42000},
		{"Early by two years", 105000, 65, 37800},
		{"Early reduction floor", 105000, 60, 29400},
		{"Delayed credit", 105000, 68, 45360},
		{"Delayed credit cap", 105000, 72, 52080},
		{"Earnings cap", 200000, 67, 48000},
		{"No income", 0, 67, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, SocialSecurity(tt.income, tt.age), 1e-6)
		})
	}
}

func TestPension(t *testing.T) {
	in := Defaults()
	in.HasPension = true
	assert.InDelta(t, 100000*0.015*25, pension(in), 1e-9)

	in.Personal.Age = 25
	assert.InDelta(t, 100000*0.015*30, pension(in), 1e-9)
}

func TestRequiredSavingsZeroRealReturn(t *testing.T) {
	in := Defaults()
	in.Strategy.TargetReturn = 3
	in.Expenses.InflationRate = 3

	assert.InDelta(t, 1000/0.04*25, RequiredSavings(in, 1000), 1e-6)
	assert.Zero(t, RequiredSavings(in, 0))
	assert.Zero(t, RequiredSavings(in, -500))
}

func TestReadiness(t *testing.T) {
	assert.Equal(t, 1.0, Readiness(100, 0))
	assert.Equal(t, 1.0, Readiness(150, 100))
	assert.Equal(t, 0.0, Readiness(0, 100))
	assert.InDelta(t, 0.5, Readiness(50, 100), 1e-12)
	assert.Less(t, Readiness(20, 100), Readiness(40, 100))
}

func TestDistribution(t *testing.T) {
	d := distribution(0.5)
	require.Len(t, d.Percentiles, 7)
	assert.Equal(t, 5, d.Percentiles[0].Percentile)
	assert.InDelta(t, 0.5-1.645*0.15, d.Percentiles[0].Readiness, 1e-9)
	assert.InDelta(t, 0.5, d.Percentiles[3].Readiness, 1e-9)

	top := distribution(1)
	assert.Equal(t, 1.0, top.Percentiles[6].Readiness)
	for i := 1; i < len(top.Percentiles); i++ {
		assert.GreaterOrEqual(t, top.Percentiles[i].Readiness, top.Percentiles[i-1].Readiness)
	}
}

func TestTimelineAndProjection(t *testing.T) {
	out, err := Calculate(Defaults())
	require.NoError(t, err)

	require.Len(t, out.Timeline, 10)
	first := out.Timeline[0]
	assert.Equal(t, 41, first.Age)
	assert.InDelta(t, 108150, first.ProjectedIncome, 0.01)
	assert.InDelta(t, 72100, first.ProjectedExpenses, 0.01)
	assert.InDelta(t, ProjectAssets(Defaults(), 1), first.ProjectedAssets, 0.01)
	assert.Equal(t, 1.0, first.ReadinessScore)

	require.Len(t, out.Rows, 25)
	assert.InDelta(t, 10500, out.Rows[0].Value("savings"), 1e-9)
	assert.InDelta(t, 10500*1.03, out.Rows[1].Value("savings"), 1e-9)
	assert.InDelta(t, 10500+10500*1.03, out.Rows[1].Cumulative, 1e-9)
	assert.InDelta(t, 70000*1.03, out.Rows[1].Value("expenses"), 1e-9)

	late := Defaults()
	late.Personal.Age = 30
	out, err = Calculate(late)
	require.NoError(t, err)
	assert.Len(t, out.Rows, 30)
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Inputs)
		field   string
		message string
	}{
		{"Too young", func(in *Inputs) { in.Personal.Age = 17 }, "personal.age", "Age must be at least 18"},
		{"Retirement before current age", func(in *Inputs) { in.Personal.Age = 70 }, "goals.retirementAge",
			"Retirement age must be greater than current age"},
		{"Retirement age range", func(in *Inputs) { in.Goals.RetirementAge = 35 }, "goals.retirementAge",
			"Retirement age must be at least 40"},
		{"Duration", func(in *Inputs) { in.Goals.RetirementDuration = 0 }, "goals.retirementDuration",
			"Retirement duration must be at least 1"},
		{"Return", func(in *Inputs) { in.Strategy.TargetReturn = 35 }, "strategy.targetReturn",
			"Target return must be at most 30"},
		{"Savings rate", func(in *Inputs) { in.Strategy.TargetSavingsRate = 120 }, "strategy.targetSavingsRate",
			"Target savings rate must be at most 100"},
		{"Market risk", func(in *Inputs) { in.Risk.Market = 1.5 }, "risk.market", "Market risk must be at most 1"},
		{"Negative assets", func(in *Inputs) { in.Assets.RealEstate = -1 }, "assets.realEstate",
			"Real estate cannot be negative"},
		{"Tolerance", func(in *Inputs) { in.Risk.Tolerance = "reckless" }, "risk.tolerance",
			"Risk tolerance must be one of: conservative, moderate, aggressive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := Defaults()
			tt.mutate(&in)

			res := ValidateInputs(in)
			assert.False(t, res.IsValid)
			assert.Equal(t, tt.message, res.Errors[tt.field])

			_, err := Calculate(in)
			assert.ErrorIs(t, err, engine.ErrInvalidInput)
		})
	}
}

func TestValidationWarnings(t *testing.T) {
	in := Defaults()
	in.Goals.RetirementAge = 60
	in.Strategy.WithdrawalRate = 6
	in.Strategy.CurrentSavingsRate = 3

	res := ValidateInputs(in)
	assert.True(t, res.IsValid)
	assert.Equal(t, "Retiring before 62 reduces Social Security benefits", res.Warnings["goals.retirementAge"])
	assert.Equal(t, "Withdrawal rate above 5% may be unsustainable", res.Warnings["strategy.withdrawalRate"])
	assert.Equal(t, "Current savings rate seems low for retirement planning", res.Warnings["strategy.currentSavingsRate"])
}

func TestValidateFieldConsistency(t *testing.T) {
	bad := Defaults()
	bad.Personal.Age = 70
	bad.Risk.Tolerance = "reckless"
	bad.Strategy.WithdrawalRate = 8

	for _, in := range []Inputs{Defaults(), bad} {
		all := ValidateInputs(in)
		for _, rule := range Schema().Fields {
			fr := ValidateField(rule.Name, rule.Value(in), in)
			assert.Equal(t, all.Errors[rule.Name], fr.Error, rule.Name)
			assert.Equal(t, all.Warnings[rule.Name], fr.Warning, rule.Name)
		}
	}
}

func TestCalculateIsIdempotent(t *testing.T) {
	gap := Defaults()
	gap.Expenses.Retirement = 150000

	for _, in := range []Inputs{Defaults(), gap} {
		first, err := Calculate(in)
		require.NoError(t, err)
		second, err := Calculate(in)
		require.NoError(t, err)
		assert.True(t, reflect.DeepEqual(first, second))
	}
}

func TestGenerateReport(t *testing.T) {
	in := Defaults()
	in.Expenses.Retirement = 150000
	out, err := Calculate(in)
	require.NoError(t, err)

	doc := GenerateReport(in, out)
	for _, section := range []string{
		"# Retirement Planning Analysis", "## Summary", "## Current Position", "## Retirement Income",
		"## Savings and Investment", "## Risk Assessment", "## Readiness Percentiles", "## Timeline",
		"## Recommendations", "### Income",
	} {
		assert.Contains(t, doc, section)
	}
	assert.Contains(t, doc, "- **Recommendation:** needs_improvement")
	assert.Contains(t, doc, "| P95 |")
	assert.True(t, strings.Index(doc, "## Timeline") < strings.Index(doc, "## Recommendations"))
}

func TestModuleRunner(t *testing.T) {
	runner := Module()
	assert.Equal(t, Name, runner.Name())

	payload := []byte("goals:\n  retirementAge: 67\n  retirementDuration: 25\n")
	res, err := runner.Calculate(context.Background(), payload, calculator.FormatYAML)
	require.NoError(t, err)

	out, ok := res.Outputs.(Outputs)
	require.True(t, ok)
	assert.Equal(t, 27, out.YearsToRetirement)
	assert.InDelta(t, 42000, out.IncomeSources.SocialSecurity, 0.001)
	assert.Len(t, res.Projection, 27)

	_, err = runner.Calculate(context.Background(), []byte(`{"personal": {"age": 10}}`), calculator.FormatJSON)
	assert.ErrorIs(t, err, engine.ErrInvalidInput)
}
