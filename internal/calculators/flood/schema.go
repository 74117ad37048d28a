package flood

import (
	"github.com/iwvelando/property-calculators/internal/engine"
	"github.com/iwvelando/property-calculators/pkg/constants"
)

var schema = engine.NewSchema(
	engine.Number("propertyValue", "Property value", func(in Inputs) float64 { return in.PropertyValue }).
		Relate(func(v float64, _ Inputs) (string, string) {
			switch {
			case v <= 0:
				return "Property value must be greater than zero", ""
			case v > 10_000_000:
				return "Property value over $10 million seems excessive", ""
			}
			return "", ""
		}),
	engine.Number("buildingCoverage", "Building coverage", func(in Inputs) float64 { return in.BuildingCoverage }).
		NonNegative().
		Relate(func(v float64, in Inputs) (string, string) {
			if v > in.PropertyValue {
				return "Building coverage cannot exceed property value", ""
			}
			if in.PolicyType == PolicyNFIP && v > nfipLimits.building {
				return "", "Building coverage exceeds the NFIP limit of $250,000; the excess is not insured"
			}
			return "", ""
		}),
	engine.Number("contentsCoverage", "Contents coverage", func(in Inputs) float64 { return in.ContentsCoverage }).
		NonNegative().
		Relate(func(v float64, in Inputs) (string, string) {
			if in.PolicyType == PolicyNFIP && v > nfipLimits.contents {
				return "", "Contents coverage exceeds the NFIP limit of $100,000; the excess is not insured"
			}
			return "", ""
		}),
	engine.Number("replacementCost", "Replacement cost", func(in Inputs) float64 { return in.ReplacementCost }).
		NonNegative(),
	engine.Number("buildingDeductible", "Building deductible", func(in Inputs) float64 { return in.BuildingDeductible }).
		AtLeast(500, "Building deductible must be at least $500").
		AtMost(100_000, "Building deductible over $100,000 seems excessive"),
	engine.Number("contentsDeductible", "Contents deductible", func(in Inputs) float64 { return in.ContentsDeductible }).
		NonNegative(),

	engine.Text("floodZone", "Flood zone", func(in Inputs) string { return in.FloodZone }).
		Require().OneOf(zones...),
	engine.Number("propertyElevation", "Property elevation", func(in Inputs) float64 { return in.PropertyElevation }).
		Range(-50, 10_000),
	engine.Number("baseFloodElevation", "Base flood elevation", func(in Inputs) float64 { return in.BaseFloodElevation }).
		Range(-50, 10_000),
	engine.Number("elevationCertificate", "Elevation certificate", func(in Inputs) float64 { return engine.Flag(in.ElevationCertificate) }).
		Relate(func(v float64, in Inputs) (string, string) {
			if v == 0 && highRiskZone(in.FloodZone) {
				return "", "Elevation data missing; an elevation certificate may lower the premium in a high-risk zone"
			}
			return "", ""
		}),

	engine.Number("distanceToWater", "Distance to water", func(in Inputs) float64 { return in.DistanceToWater }).
		NonNegative().WarnIfAbove(100_000, "Distance to water over 100,000 feet seems unrealistic"),
	engine.Number("numberOfPreviousClaims", "Number of previous claims", func(in Inputs) float64 { return float64(in.NumberOfPreviousClaims) }).
		Range(0, 50),

	engine.Text("propertyType", "Property type", func(in Inputs) string { return in.PropertyType }).
		OneOf(propertyTypes...),
	engine.Text("occupancyType", "Occupancy type", func(in Inputs) string { return in.OccupancyType }).
		OneOf(occupancyTypes...),
	engine.Text("policyType", "Policy type", func(in Inputs) string { return in.PolicyType }).
		Require().OneOf(PolicyNFIP, PolicyPrivate),
	engine.Number("communityRating", "Community rating", func(in Inputs) float64 { return float64(in.CommunityRating) }).
		Range(1, 10),
	engine.Items("mitigationMeasures", "Mitigation measures", func(in Inputs) []string { return in.MitigationMeasures }).
		OneOf(mitigationOptions...),
	engine.Items("discounts", "Discounts", func(in Inputs) []string { return in.Discounts }).
		OneOf(discountOptions...),
	engine.Items("surcharges", "Surcharges", func(in Inputs) []string { return in.Surcharges }).
		OneOf(surchargeOptions...),

	engine.Number("agentFee", "Agent fee", func(in Inputs) float64 { return in.AgentFee }).
		NonNegative(),
	engine.Number("inspectionFee", "Inspection fee", func(in Inputs) float64 { return in.InspectionFee }).
		NonNegative(),
	engine.Number("applicationFee", "Application fee", func(in Inputs) float64 { return in.ApplicationFee }).
		NonNegative(),

	engine.Number("monthlyBudget", "Monthly budget", func(in Inputs) float64 { return in.MonthlyBudget }).
		NonNegative(),
	engine.Number("propertySize", "Property size", func(in Inputs) float64 { return in.PropertySize }).
		NonNegative().AtMost(100_000, "Property size over 100,000 sq ft seems unrealistic"),
	engine.Number("yearBuilt", "Year built", func(in Inputs) float64 { return float64(in.YearBuilt) }).
		Relate(func(v float64, _ Inputs) (string, string) {
			if v < 1800 || v > 2030 {
				return "Year built must be between 1800 and 2030", ""
			}
			return "", ""
		}),

	engine.Number("analysisPeriod", "Analysis period", func(in Inputs) float64 { return float64(in.AnalysisPeriod) }).
		Range(0, constants.MaxProjectionPeriods),
	engine.Number("inflationRate", "Inflation rate", func(in Inputs) float64 { return in.InflationRate }).
		Range(0, 20),
)

// Schema returns the field rules of the calculator.
func Schema() *engine.Schema[Inputs] { return schema }

// ValidateInputs checks a whole input record.
func ValidateInputs(in Inputs) engine.ValidationResult { return schema.ValidateAll(in) }

// ValidateField checks one candidate field value in the context of the record.
func ValidateField(name string, value any, in Inputs) engine.FieldResult {
	return schema.ValidateField(name, value, in)
}
