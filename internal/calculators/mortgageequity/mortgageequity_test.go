package mortgageequity

import (
	"context"
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/iwvelando/property-calculators/internal/calculator"
	"github.com/iwvelando/property-calculators/internal/engine"
	"github.com/iwvelando/property-calculators/pkg/loans"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateEquityScenarios(t *testing.T) {
	tests := []struct {
		name       string
		value      float64
		balance    float64
		equity     float64
		equityPct  float64
		ltv        float64
		borrowable float64
		position   string
		ltvRisk    string
	}{
		{"Positive equity", 500000, 280000, 220000, 44, 56, 187000, "good", "low"},
		{"No equity", 300000, 300000, 0, 0, 100, 0, "low", "elevated"},
		{"Negative equity", 250000, 280000, -30000, -12, 112, 0, "low", "elevated"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := Defaults()
			in.CurrentPropertyValue = tt.value
			in.CurrentMortgageBalance = tt.balance

			out, err := Calculate(in)
			require.NoError(t, err)

			assert.InDelta(t, tt.equity, out.TotalEquity, 0.001)
			assert.InDelta(t, tt.equityPct, out.EquityPercentage, 0.001)
			assert.InDelta(t, tt.ltv, out.LoanToValueRatio, 0.001)
			assert.InDelta(t, tt.borrowable, out.BorrowableEquity, 0.001)
			assert.Equal(t, tt.position, out.Classifications[AxisEquityPosition])
			assert.Equal(t, tt.ltvRisk, out.Classifications[AxisLTVRisk])
		})
	}
}

func TestCalculateDefaults(t *testing.T) {
	out, err := Calculate(Defaults())
	require.NoError(t, err)

	assert.InDelta(t, 140000, out.EquityGrowth, 0.001)
	assert.InDelta(t, 35, out.EquityGrowthRate, 0.001)
	assert.InDelta(t, 75000, out.AppreciationValue, 0.001)
	assert.InDelta(t, 25000, out.ImprovementValue, 0.001)
	assert.InDelta(t, 750, out.MonthlyEquityBuild, 0.001)
	assert.InDelta(t, 9000, out.AnnualEquityBuild, 0.001)
	assert.InDelta(t, 0.85, out.BorrowablePercentage, 1e-9)
	assert.InDelta(t, 175, out.Summary.EquityIncreasePercentage, 0.001)

	assert.Equal(t, "strong", out.Classifications[AxisEquityGrowth])
	assert.Equal(t, "moderate", out.Classifications[AxisEquityBuildPace])

	assert.Equal(t, []string{
		"Cash-out refinance",
		"Rate and term refinance",
		"HELOC (Home Equity Line of Credit)",
		"Home equity loan",
		"VA IRRRL (if VA loan)",
		"FHA streamline refinance (if FHA loan)",
	}, out.RefinancingOptions)
	assert.Equal(t, "Good equity position - consider refinancing or home equity options.", out.Recommendations[0])
	assert.Contains(t, out.Recommendations, "Strong equity growth - consider leveraging for investment opportunities.")
}

func TestBorrowableShare(t *testing.T) {
	tests := []struct {
		name      string
		occupancy string
		credit    float64
		dti       float64
		expected  float64
	}{
		{"Primary baseline", OccupancyPrimary, 700, 35, 0.85},
		{"Secondary home", OccupancySecondary, 700, 35, 0.80},
		{"Investment", OccupancyInvestment, 700, 35, 0.75},
		{"Strong borrower capped", OccupancyPrimary, 800, 20, 0.90},
		{"Weak borrower floored", OccupancyInvestment, 600, 50, 0.70},
		{"Unset credit and DTI", OccupancySecondary, 0, 0, 0.80},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := Defaults()
			in.OccupancyType = tt.occupancy
			in.CreditScore = tt.credit
			in.DebtToIncomeRatio = tt.dti
			assert.InDelta(t, tt.expected, borrowableShare(in), 1e-9)
		})
	}
}

func TestPaymentFallbacks(t *testing.T) {
	in := Defaults()
	in.MonthlyPayment = 0

	out, err := Calculate(in)
	require.NoError(t, err)
	assert.InDelta(t, 40000, out.PaymentEquity, 0.001)
	assert.InDelta(t, 280000.0/25/12, out.MonthlyEquityBuild, 0.01)
	assert.Equal(t, "moderate", out.Classifications[AxisEquityBuildPace])
	assert.Zero(t, out.Refinance.CurrentPayment)
	assert.False(t, out.Refinance.RecommendRefinance)
}

func TestProjection(t *testing.T) {
	in := Defaults()
	in.ProjectionYears = 10

	out, err := Calculate(in)
	require.NoError(t, err)
	require.Len(t, out.Projection, 10)
	require.Len(t, out.Rows, 10)

	assert.InDelta(t, 500000, out.Projection[0].PropertyValue, 0.01)
	previous := in.CurrentMortgageBalance
	for i, p := range out.Projection {
		assert.Equal(t, i+1, p.Year)
		assert.Less(t, p.MortgageBalance, previous)
		assert.InDelta(t, p.PropertyValue-p.MortgageBalance, p.ProjectedEquity, 1e-6)
		assert.InDelta(t, p.ProjectedEquity-out.TotalEquity, p.CumulativeEquityGain, 1e-6)
		previous = p.MortgageBalance
	}
	assert.InDelta(t, loans.RemainingBalance(280000, 4.5, 25, 60), out.Projection[4].MortgageBalance, 1e-6)

	in.ProjectionYears = 0
	out, err = Calculate(in)
	require.NoError(t, err)
	assert.NotNil(t, out.Projection)
	assert.Empty(t, out.Projection)
}

func TestRefinanceScenario(t *testing.T) {
	out, err := Calculate(Defaults())
	require.NoError(t, err)

	r := out.Refinance
	assert.InDelta(t, 1800, r.CurrentPayment, 0.001)
	assert.InDelta(t, loans.MonthlyPayment(280000, 4, 30), r.NewPayment, 0.01)
	assert.InDelta(t, 8400, r.ClosingCosts, 0.001)
	assert.InDelta(t, 56, r.NewLTV, 0.001)
	assert.InDelta(t, r.ClosingCosts/r.PaymentSavings, r.BreakEvenMonths, 0.01)
	assert.True(t, r.RecommendRefinance)

	in := Defaults()
	in.Refinance.CashOutAmount = 50000
	out, err = Calculate(in)
	require.NoError(t, err)
	assert.InDelta(t, 330000, out.Refinance.NewBalance, 0.001)
	assert.InDelta(t, 66, out.Refinance.NewLTV, 0.001)
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Inputs)
		field   string
		message string
	}{
		{"Negative value", func(in *Inputs) { in.CurrentPropertyValue = -1000 }, "currentPropertyValue", "Current property value cannot be negative"},
		{"Value too small", func(in *Inputs) { in.CurrentPropertyValue = 5000 }, "currentPropertyValue", "Current property value must be between $10,000 and $10,000,000"},
		{"Down payment above price", func(in *Inputs) { in.OriginalDownPayment = 500000 }, "originalDownPayment", "Original down payment cannot exceed original purchase price"},
		{"Credit score range", func(in *Inputs) { in.CreditScore = 200 }, "creditScore", "Credit score must be between 300 and 850"},
		{"Unknown occupancy", func(in *Inputs) { in.OccupancyType = "rental" }, "occupancyType", "Occupancy type must be one of: primary-residence, secondary-home, investment-property"},
		{"Refinance term", func(in *Inputs) { in.Refinance.NewTerm = 60 }, "refinance.newTerm", "New loan term must be at most 50"},
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
	in.CurrentPropertyValue = 250000

	res := ValidateInputs(in)
	assert.True(t, res.IsValid)
	assert.Equal(t, "Mortgage balance exceeds property value (negative equity)", res.Warnings["currentMortgageBalance"])
}

func TestValidateFieldConsistency(t *testing.T) {
	bad := Defaults()
	bad.CurrentPropertyValue = 5000
	bad.CreditScore = 900
	bad.OccupancyType = ""

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
	in := Defaults()
	in.YearsOwned = 0
	in.OriginalDownPayment = 0

	for _, record := range []Inputs{Defaults(), in} {
		first, err := Calculate(record)
		require.NoError(t, err)
		second, err := Calculate(record)
		require.NoError(t, err)
		assert.True(t, reflect.DeepEqual(first, second))

		_, err = json.Marshal(first)
		require.NoError(t, err, "non-finite values fail to marshal")
	}
}

func TestGenerateReport(t *testing.T) {
	in := Defaults()
	in.CurrentPropertyValue = 250000
	in.PropertyImprovements = 0
	in.MonthlyPayment = 0
	out, err := Calculate(in)
	require.NoError(t, err)

	doc := GenerateReport(in, out)
	for _, section := range []string{
		"# Mortgage Equity Analysis", "## Summary", "## Equity Growth", "## Borrowing Power",
		"## Refinance Scenario", "## Projections", "## Recommendations",
	} {
		assert.Contains(t, doc, section)
	}
	assert.Contains(t, doc, "-$30,000.00")
	assert.NotContains(t, doc, "NaN")
	assert.NotContains(t, doc, "Inf")
	assert.True(t, strings.HasSuffix(doc, "\n"))
}

func TestModuleRunner(t *testing.T) {
	runner := Module()
	assert.Equal(t, Name, runner.Name())

	res, err := runner.Calculate(context.Background(), []byte("occupancyType: investment-property\n"), calculator.FormatYAML)
	require.NoError(t, err)
	out, ok := res.Outputs.(Outputs)
	require.True(t, ok)
	assert.Contains(t, out.RefinancingOptions, "Investment property refinancing")
	assert.Contains(t, out.Recommendations, "Investment property - consider 1031 exchange or portfolio diversification strategies.")
	assert.Len(t, res.Projection, 5)
}
