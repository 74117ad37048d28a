package title

import "github.com/iwvelando/property-calculators/internal/engine"

var schema = engine.NewSchema(
	engine.Number("propertyValue", "Property value", func(in Inputs) float64 { return in.PropertyValue }).
		NonNegative().Require(),
	engine.Number("purchasePrice", "Purchase price", func(in Inputs) float64 { return in.PurchasePrice }).
		NonNegative(),
	engine.Number("loanAmount", "Loan amount", func(in Inputs) float64 { return in.LoanAmount }).
		NonNegative().
		Relate(func(v float64, in Inputs) (string, string) {
			if v > 2*in.PropertyValue {
				return "Loan amount cannot exceed twice the property value", ""
			}
			return "", ""
		}),
	engine.Text("propertyType", "Property type", func(in Inputs) string { return in.PropertyType }).
		OneOf(propertyTypes...),
	engine.Number("propertyAge", "Property age", func(in Inputs) float64 { return float64(in.PropertyAge) }).
		Range(0, 300).
		WarnIfAbove(100, "Very old property may have complex title history and higher risk"),

	engine.Text("transactionType", "Transaction type", func(in Inputs) string { return in.TransactionType }).
		Require().OneOf(transactionTypes...),
	engine.Text("coverageType", "Coverage type", func(in Inputs) string { return in.CoverageType }).
		Require().OneOf(coverageTypes...),
	engine.Number("coverageAmount", "Coverage amount", func(in Inputs) float64 { return in.CoverageAmount }).
		NonNegative().
		Relate(func(v float64, in Inputs) (string, string) {
			if v > 0 && v < 0.8*in.PropertyValue {
				return "", "Coverage amount is below 80% of property value"
			}
			return "", ""
		}),
	engine.Items("endorsements", "Endorsements", func(in Inputs) []string { return in.Endorsements }).
		OneOf(endorsementTypes...),
	engine.Text("extendedCoverage", "Extended coverage", func(in Inputs) string { return in.ExtendedCoverage }).
		OneOf(extendedLevels...),
	engine.Text("state", "State", func(in Inputs) string { return in.State }),

	engine.Text("titleSearchDepth", "Title search depth", func(in Inputs) string { return in.TitleSearchDepth }).
		OneOf(searchDepths...),
	engine.Text("knownIssues", "Known issues", func(in Inputs) string { return in.KnownIssues }).
		OneOf(knownIssueTypes...).
		RelateText(func(v string, _ Inputs) (string, string) {
			if v != noneOption {
				return "", "Known title issues may affect insurability and increase costs"
			}
			return "", ""
		}),
	engine.Text("previousClaims", "Previous claims", func(in Inputs) string { return in.PreviousClaims }).
		OneOf(claimHistories...),
	engine.Text("chainOfTitle", "Chain of title", func(in Inputs) string { return in.ChainOfTitle }).
		OneOf(chainComplexity...),
	engine.Text("escrowServices", "Escrow services", func(in Inputs) string { return in.EscrowServices }).
		OneOf(escrowLevels...),
	engine.Number("discountRate", "Discount rate", func(in Inputs) float64 { return in.DiscountRate }).
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
