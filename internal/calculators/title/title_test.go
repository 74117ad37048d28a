package title

import (
	"context"
	"encoding/json"
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

	assert.InDelta(t, 400000, out.EffectiveCoverage, 0.001)
	assert.InDelta(t, 1000, out.OwnersPolicyPremium, 0.001)
	assert.InDelta(t, 480, out.LendersPolicyPremium, 0.001)
	assert.InDelta(t, 1480, out.TotalPremium, 0.001)
	assert.InDelta(t, 300, out.SearchFees, 0.001)
	assert.InDelta(t, 800, out.SettlementFees, 0.001)
	assert.InDelta(t, 2580, out.TotalCosts, 0.001)
	assert.InDelta(t, 3.7, out.PremiumPerThousand, 0.001)
	assert.InDelta(t, 0.65, out.CostPercentage, 0.01)
	assert.InDelta(t, 2580/1.05, out.PresentValue, 0.01)

	assert.InDelta(t, 50, out.RiskScore, 1e-9)
	assert.InDelta(t, 100, out.CoverageScore, 1e-9)
	assert.InDelta(t, 100, out.ValueScore, 1e-9)
	assert.Equal(t, "Medium", out.Classifications[AxisOverallRisk])
	assert.Equal(t, "adequate", out.Classifications[AxisCoverage])
	assert.Equal(t, "fair", out.Classifications[AxisValue])

	assert.Empty(t, out.Recommendations)
	assert.NotNil(t, out.Recommendations)
	assert.Empty(t, out.KeyFactors)
	assert.Empty(t, out.Risks)

	require.Len(t, out.PolicyComparison, 3)
	assert.InDelta(t, 1000+1100, out.PolicyComparison[0].Cost, 0.001)
	assert.InDelta(t, 480+1100, out.PolicyComparison[1].Cost, 0.001)
	assert.InDelta(t, out.TotalCosts, out.PolicyComparison[2].Cost, 0.001)
}

func TestRateTiers(t *testing.T) {
	tests := []struct {
		coverage float64
		owners   float64
		lenders  float64
	}{
		{100_000, 350, 200},
		{100_001, 250.0025, 150.0015},
		{500_000, 1250, 750},
		{1_000_000, 2000, 1200},
		{1_500_000, 2250, 1500},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.owners, ownersPremium(tt.coverage), 1e-6, "owners %v", tt.coverage)
		assert.InDelta(t, tt.lenders, lendersPremium(tt.coverage), 1e-6, "lenders %v", tt.coverage)
	}
}

func TestHighRiskCommercialRefinance(t *testing.T) {
	in := Defaults()
	in.State = "CA"
	in.TransactionType = "refinance"
	in.PropertyType = "commercial"
	in.KnownIssues = "liens"

	out, err := Calculate(in)
	require.NoError(t, err)

	multiplier := 1.2 * 0.8 * 1.5 * 1.3
	assert.InDelta(t, 1000*multiplier, out.OwnersPolicyPremium, 0.01)
	assert.InDelta(t, 480*multiplier, out.LendersPolicyPremium, 0.01)
	assert.InDelta(t, 640, out.SettlementFees, 0.001)
	assert.InDelta(t, 85, out.RiskScore, 1e-9)
	assert.Equal(t, "High", out.RiskBreakdown.OverallRisk)
	assert.Equal(t, "High", out.RiskBreakdown.KnownIssues)
	assert.Equal(t, "Low", out.RiskBreakdown.PropertyAge)
	assert.InDelta(t, 100, out.ValueScore, 1e-9)

	assert.Equal(t, []string{
		"State-specific rates apply",
		"Refinance discount applied",
		"Commercial property rates apply",
		"Risk factors increase premium",
	}, out.KeyFactors)
	assert.Equal(t, []string{
		"High title risk - consider additional protection",
		"Known title issues may affect insurability",
	}, out.Risks)
	assert.Equal(t, []string{
		"High title risk detected - consider additional endorsements for protection",
		"Address known title issues before closing to reduce risk",
	}, out.Recommendations)
}

func TestRiskScoreCapped(t *testing.T) {
	in := Defaults()
	in.KnownIssues = "multiple"
	in.PreviousClaims = "multiple"
	in.ChainOfTitle = "very-complex"
	in.PropertyAge = 150

	assert.InDelta(t, 100, RiskScore(in), 1e-9)
	assert.InDelta(t, 1.5*1.5*1.6*1.2*1.4, riskMultiplier(in), 1e-9)
}

func TestCoverageScenarios(t *testing.T) {
	lenderOnly := Defaults()
	lenderOnly.CoverageType = CoverageLenders
	out, err := Calculate(lenderOnly)
	require.NoError(t, err)
	assert.Zero(t, out.OwnersPolicyPremium)
	assert.InDelta(t, 480, out.TotalPremium, 0.001)
	assert.Contains(t, out.Recommendations, "Consider adding owner's policy for complete protection")

	underInsured := Defaults()
	underInsured.CoverageType = CoverageOwners
	underInsured.CoverageAmount = 200_000
	out, err = Calculate(underInsured)
	require.NoError(t, err)
	assert.InDelta(t, 50, out.CoverageScore, 1e-9)
	assert.Equal(t, "insufficient", out.Classifications[AxisCoverage])
	assert.Equal(t, "Consider increasing coverage amount to better protect your investment", out.Recommendations[0])

	extras := Defaults()
	extras.Endorsements = []string{"survey", "zoning"}
	extras.ExtendedCoverage = "premium"
	extras.SurveyRequired = true
	extras.AbstractRequired = true
	extras.TitleSearchDepth = "comprehensive"
	out, err = Calculate(extras)
	require.NoError(t, err)
	assert.InDelta(t, 350, out.EndorsementCosts, 0.001)
	assert.InDelta(t, 400000*0.001*1.5, out.ExtendedCoverageCosts, 0.001)
	assert.InDelta(t, 800+400+250, out.SearchFees, 0.001)
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Inputs)
		field   string
		message string
	}{
		{"Missing value", func(in *Inputs) { in.PropertyValue = 0 }, "propertyValue", "Property value is required"},
		{"Negative value", func(in *Inputs) { in.PropertyValue = -1000 }, "propertyValue", "Property value cannot be negative"},
		{"Loan above twice value", func(in *Inputs) { in.LoanAmount = 900_000 }, "loanAmount", "Loan amount cannot exceed twice the property value"},
		{"Unknown transaction", func(in *Inputs) { in.TransactionType = "invalid" }, "transactionType",
			"Transaction type must be one of: purchase, refinance, construction, equity-line"},
		{"Missing coverage type", func(in *Inputs) { in.CoverageType = "" }, "coverageType", "Coverage type is required"},
		{"Property age", func(in *Inputs) { in.PropertyAge = 400 }, "propertyAge", "Property age must be at most 300"},
		{"Discount rate", func(in *Inputs) { in.DiscountRate = 25 }, "discountRate", "Discount rate must be at most 20"},
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
	in.KnownIssues = "liens"
	in.PropertyAge = 150
	in.CoverageAmount = 300_000

	res := ValidateInputs(in)
	assert.True(t, res.IsValid)
	assert.Equal(t, "Known title issues may affect insurability and increase costs", res.Warnings["knownIssues"])
	assert.Equal(t, "Very old property may have complex title history and higher risk", res.Warnings["propertyAge"])
	assert.Equal(t, "Coverage amount is below 80% of property value", res.Warnings["coverageAmount"])
}

func TestValidateFieldConsistency(t *testing.T) {
	bad := Defaults()
	bad.KnownIssues = "liens"
	bad.LoanAmount = 1_000_000
	bad.ChainOfTitle = "tangled"

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
	cash := Defaults()
	cash.LoanAmount = 0
	cash.DiscountRate = 0

	for _, in := range []Inputs{Defaults(), cash} {
		first, err := Calculate(in)
		require.NoError(t, err)
		second, err := Calculate(in)
		require.NoError(t, err)
		assert.True(t, reflect.DeepEqual(first, second))

		_, err = json.Marshal(first)
		require.NoError(t, err)
	}
}

func TestGenerateReport(t *testing.T) {
	in := Defaults()
	out, err := Calculate(in)
	require.NoError(t, err)

	doc := GenerateReport(in, out)
	sections := []string{
		"# Title Insurance Analysis Report", "## Policy Summary", "## Premium Breakdown", "## Additional Costs",
		"## Assessment Scores", "## Risk Breakdown", "## Cost Breakdown", "## Policy Comparison",
		"## Recommendations", "## Key Factors", "## Risks", "## Next Steps",
	}
	last := -1
	for _, section := range sections {
		idx := strings.Index(doc, section)
		require.GreaterOrEqual(t, idx, 0, section)
		assert.Greater(t, idx, last, "section order: %s", section)
		last = idx
	}
	assert.Contains(t, doc, "$2,580.00")
	assert.Contains(t, doc, "5. Understand your coverage limits and exclusions")
}

func TestModuleRunner(t *testing.T) {
	runner := Module()
	assert.Equal(t, Name, runner.Name())

	res, err := runner.Calculate(context.Background(), []byte(`{"coverageType": "owners-policy"}`), calculator.FormatJSON)
	require.NoError(t, err)
	out, ok := res.Outputs.(Outputs)
	require.True(t, ok)
	assert.Zero(t, out.LendersPolicyPremium)
	assert.Empty(t, res.Projection)
}
