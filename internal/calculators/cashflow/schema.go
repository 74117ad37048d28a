package cashflow

import (
	"math"

	"github.com/iwvelando/property-calculators/internal/engine"
	"github.com/iwvelando/property-calculators/pkg/constants"
)

var schema = buildSchema()

// Schema returns the field rules of the calculator.
func Schema() *engine.Schema[Inputs] { return schema }

// ValidateInputs checks a whole input record.
func ValidateInputs(in Inputs) engine.ValidationResult { return schema.ValidateAll(in) }

// ValidateField checks one candidate field value in the context of the record.
func ValidateField(name string, value any, in Inputs) engine.FieldResult {
	return schema.ValidateField(name, value, in)
}

func money(name, label string, get func(Inputs) float64) engine.FieldRule[Inputs] {
	return engine.Number(name, label, get).NonNegative()
}

func growth(name, label string, get func(Inputs) float64) engine.FieldRule[Inputs] {
	return engine.Number(name, label, get).Range(-20, 50)
}

func buildSchema() *engine.Schema[Inputs] {
	return engine.NewSchema(
		money("propertyValue", "Property value", func(in Inputs) float64 { return in.PropertyValue }).
			Require().
			WarnIfAbove(10_000_000, "Property value seems unusually high"),
		money("purchasePrice", "Purchase price", func(in Inputs) float64 { return in.PurchasePrice }).
			Require(),
		money("downPayment", "Down payment", func(in Inputs) float64 { return in.DownPayment }).
			Relate(func(v float64, in Inputs) (string, string) {
				if v > in.PurchasePrice {
					return "Down payment cannot exceed purchase price", ""
				}
				return "", ""
			}),
		money("loanAmount", "Loan amount", func(in Inputs) float64 { return in.LoanAmount }).
			Relate(func(v float64, in Inputs) (string, string) {
				if math.Abs(in.DownPayment+v-in.PurchasePrice) > constants.ToleranceForComparison {
					return "Down payment plus loan amount must equal purchase price", ""
				}
				return "", ""
			}),
		engine.Number("interestRate", "Interest rate", func(in Inputs) float64 { return in.InterestRate }).
			Range(0, 30).
			WarnIfAbove(15, "Interest rate seems unusually high"),
		engine.Number("loanTerm", "Loan term", func(in Inputs) float64 { return in.LoanTerm }).
			Require().Range(1, 50),

		money("monthlyRent", "Monthly rent", func(in Inputs) float64 { return in.MonthlyRent }).Require(),
		money("otherIncome", "Other income", func(in Inputs) float64 { return in.OtherIncome }),
		growth("rentGrowthRate", "Rent growth rate", func(in Inputs) float64 { return in.RentGrowthRate }),
		engine.Number("vacancyRate", "Vacancy rate", func(in Inputs) float64 { return in.VacancyRate }).
			Range(0, 100).
			WarnIfAbove(20, "Vacancy rate is unusually high"),

		money("propertyTaxes", "Property taxes", func(in Inputs) float64 { return in.PropertyTaxes }),
		money("insurance", "Insurance", func(in Inputs) float64 { return in.Insurance }),
		money("maintenance", "Maintenance", func(in Inputs) float64 { return in.Maintenance }),
		money("propertyManagement", "Property management", func(in Inputs) float64 { return in.PropertyManagement }),
		money("utilities", "Utilities", func(in Inputs) float64 { return in.Utilities }),
		money("hoaFees", "HOA fees", func(in Inputs) float64 { return in.HOAFees }),
		money("landscaping", "Landscaping", func(in Inputs) float64 { return in.Landscaping }),
		money("pestControl", "Pest control", func(in Inputs) float64 { return in.PestControl }),
		money("advertising", "Advertising", func(in Inputs) float64 { return in.Advertising }),
		money("legalFees", "Legal fees", func(in Inputs) float64 { return in.LegalFees }),
		money("accountingFees", "Accounting fees", func(in Inputs) float64 { return in.AccountingFees }),
		money("otherExpenses", "Other expenses", func(in Inputs) float64 { return in.OtherExpenses }),

		money("closingCosts", "Closing costs", func(in Inputs) float64 { return in.ClosingCosts }),
		money("points", "Points", func(in Inputs) float64 { return in.Points }),
		money("escrowAccount", "Escrow account", func(in Inputs) float64 { return in.EscrowAccount }),
		money("prepaidItems", "Prepaid items", func(in Inputs) float64 { return in.PrepaidItems }),

		money("marketRent", "Market rent", func(in Inputs) float64 { return in.MarketRent }),
		engine.Number("marketVacancy", "Market vacancy", func(in Inputs) float64 { return in.MarketVacancy }).Range(0, 100),
		engine.Number("marketExpenses", "Market expenses", func(in Inputs) float64 { return in.MarketExpenses }).Range(0, 100),
		engine.Number("marketCapRate", "Market cap rate", func(in Inputs) float64 { return in.MarketCapRate }).Range(0, 30),

		engine.Number("analysisPeriod", "Analysis period", func(in Inputs) float64 { return float64(in.AnalysisPeriod) }).
			Require().Range(1, constants.MaxProjectionPeriods),
		growth("inflationRate", "Inflation rate", func(in Inputs) float64 { return in.InflationRate }),
		growth("appreciationRate", "Appreciation rate", func(in Inputs) float64 { return in.AppreciationRate }),
		engine.Number("taxRate", "Tax rate", func(in Inputs) float64 { return in.TaxRate }).Range(0, 60),
		engine.Number("depreciationPeriod", "Depreciation period", func(in Inputs) float64 { return in.DepreciationPeriod }).
			Range(1, 50),
	)
}
