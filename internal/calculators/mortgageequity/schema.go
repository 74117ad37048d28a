package mortgageequity

import (
	"github.com/iwvelando/property-calculators/internal/engine"
	"github.com/iwvelando/property-calculators/pkg/constants"
)

var schema = engine.NewSchema(
	engine.Number("currentPropertyValue", "Current property value", func(in Inputs) float64 { return in.CurrentPropertyValue }).
		NonNegative().Require().
		Relate(between(10_000, 10_000_000, "Current property value must be between $10,000 and $10,000,000")),
	engine.Number("originalPurchasePrice", "Original purchase price", func(in Inputs) float64 { return in.OriginalPurchasePrice }).
		NonNegative().Require().
		Relate(between(10_000, 10_000_000, "Original purchase price must be between $10,000 and $10,000,000")),
	engine.Number("originalDownPayment", "Original down payment", func(in Inputs) float64 { return in.OriginalDownPayment }).
		NonNegative().
		Relate(func(v float64, in Inputs) (string, string) {
			if v > in.OriginalPurchasePrice {
				return "Original down payment cannot exceed original purchase price", ""
			}
			return "", ""
		}),
	engine.Number("currentMortgageBalance", "Current mortgage balance", func(in Inputs) float64 { return in.CurrentMortgageBalance }).
		NonNegative().
		Relate(func(v float64, in Inputs) (string, string) {
			if v > in.CurrentPropertyValue {
				return "", "Mortgage balance exceeds property value (negative equity)"
			}
			return "", ""
		}),
	engine.Number("yearsOwned", "Years owned", func(in Inputs) float64 { return in.YearsOwned }).
		Range(0, 100),
	engine.Number("propertyImprovements", "Property improvements", func(in Inputs) float64 { return in.PropertyImprovements }).
		NonNegative().
		Relate(func(v float64, in Inputs) (string, string) {
			if v > in.CurrentPropertyValue {
				return "", "Property improvements exceed current property value"
			}
			return "", ""
		}),

	engine.Number("interestRate", "Interest rate", func(in Inputs) float64 { return in.InterestRate }).
		Range(0, 30),
	engine.Number("remainingLoanTerm", "Remaining loan term", func(in Inputs) float64 { return in.RemainingLoanTerm }).
		Range(0, 50),
	engine.Number("monthlyPayment", "Monthly payment", func(in Inputs) float64 { return in.MonthlyPayment }).
		NonNegative(),

	engine.Text("occupancyType", "Occupancy type", func(in Inputs) string { return in.OccupancyType }).
		Require().OneOf(OccupancyPrimary, OccupancySecondary, OccupancyInvestment),
	engine.Number("creditScore", "Credit score", func(in Inputs) float64 { return in.CreditScore }).
		NonNegative().
		Relate(func(v float64, _ Inputs) (string, string) {
			if v != 0 && (v < 300 || v > 850) {
				return "Credit score must be between 300 and 850", ""
			}
			return "", ""
		}),
	engine.Number("debtToIncomeRatio", "Debt-to-income ratio", func(in Inputs) float64 { return in.DebtToIncomeRatio }).
		Range(0, 100),
	engine.Text("propertyType", "Property type", func(in Inputs) string { return in.PropertyType }).
		OneOf(PropertySingleFamily, PropertyCondo, PropertyTownhouse, PropertyMultiFamily),
	engine.Text("loanType", "Loan type", func(in Inputs) string { return in.LoanType }).
		OneOf(loanTypes...),

	engine.Number("projectionYears", "Projection years", func(in Inputs) float64 { return float64(in.ProjectionYears) }).
		Range(0, constants.MaxProjectionPeriods),
	engine.Number("appreciationRate", "Appreciation rate", func(in Inputs) float64 { return in.AppreciationRate }).
		Range(-20, 50),

	engine.Number("refinance.newRate", "New interest rate", func(in Inputs) float64 { return in.Refinance.NewRate }).
		Range(0, 30),
	engine.Number("refinance.newTerm", "New loan term", func(in Inputs) float64 { return in.Refinance.NewTerm }).
		Range(0, 50),
	engine.Number("refinance.cashOutAmount", "Cash-out amount", func(in Inputs) float64 { return in.Refinance.CashOutAmount }).
		NonNegative(),
	engine.Number("refinance.closingCostRate", "Closing cost rate", func(in Inputs) float64 { return in.Refinance.ClosingCostRate }).
		Range(0, 10),
)

// Schema returns the field rules of the calculator.
func Schema() *engine.Schema[Inputs] { return schema }

// ValidateInputs checks a whole input record.
func ValidateInputs(in Inputs) engine.ValidationResult { return schema.ValidateAll(in) }

// ValidateField checks one candidate field value in the context of the record.
func ValidateField(name string, value any, in Inputs) engine.FieldResult {
	return schema.ValidateField(name, value, in)
}

func between(lo, hi float64, message string) engine.Relation[Inputs] {
	return func(v float64, _ Inputs) (string, string) {
		if v < lo || v > hi {
			return message, ""
		}
		return "", ""
	}
}
