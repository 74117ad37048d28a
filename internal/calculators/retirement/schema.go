package retirement

import (
	"github.com/iwvelando/property-calculators/internal/engine"
)

var schema = engine.NewSchema(
	engine.Number("personal.age", "Age", func(in Inputs) float64 { return float64(in.Personal.Age) }).
		Range(18, 100),

	engine.Number("income.employment", "Employment income", func(in Inputs) float64 { return in.Income.Employment }).
		NonNegative(),
	engine.Number("income.selfEmployment", "Self-employment income", func(in Inputs) float64 { return in.Income.SelfEmployment }).
		NonNegative(),
	engine.Number("income.investment", "Investment income", func(in Inputs) float64 { return in.Income.Investment }).
		NonNegative(),
	engine.Number("income.other", "Other income", func(in Inputs) float64 { return in.Income.Other }).
		NonNegative(),

	engine.Number("assets.retirementAccounts", "Retirement accounts", func(in Inputs) float64 { return in.Assets.RetirementAccounts }).
		NonNegative(),
	engine.Number("assets.investmentAccounts", "Investment accounts", func(in Inputs) float64 { return in.Assets.InvestmentAccounts }).
		NonNegative(),
	engine.Number("assets.realEstate", "Real estate", func(in Inputs) float64 { return in.Assets.RealEstate }).
		NonNegative(),
	engine.Number("assets.business", "Business interests", func(in Inputs) float64 { return in.Assets.Business }).
		NonNegative(),
	engine.Number("assets.other", "Other assets", func(in Inputs) float64 { return in.Assets.Other }).
		NonNegative(),
	engine.Number("assets.rentalIncome", "Rental income", func(in Inputs) float64 { return in.Assets.RentalIncome }).
		NonNegative(),
	engine.Number("assets.businessIncome", "Business income", func(in Inputs) float64 { return in.Assets.BusinessIncome }).
		NonNegative(),

	engine.Number("expenses.current", "Current expenses", func(in Inputs) float64 { return in.Expenses.Current }).
		NonNegative(),
	engine.Number("expenses.retirement", "Retirement expenses", func(in Inputs) float64 { return in.Expenses.Retirement }).
		NonNegative(),
	engine.Number("expenses.inflationRate", "Inflation rate", func(in Inputs) float64 { return in.Expenses.InflationRate }).
		Range(0, 30),

	engine.Number("goals.retirementAge", "Retirement age", func(in Inputs) float64 { return float64(in.Goals.RetirementAge) }).
		Range(40, 100).
		WarnIfBelow(62, "Retiring before 62 reduces Social Security benefits").
		Relate(func(v float64, in Inputs) (string, string) {
			if int(v) <= in.Personal.Age {
				return "Retirement age must be greater than current age", ""
			}
			return "", ""
		}),
	engine.Number("goals.retirementDuration", "Retirement duration", func(in Inputs) float64 { return float64(in.Goals.RetirementDuration) }).
		Range(1, 50),

	engine.Number("strategy.targetReturn", "Target return", func(in Inputs) float64 { return in.Strategy.TargetReturn }).
		Range(0, 30),
	engine.Number("strategy.currentSavingsRate", "Current savings rate", func(in Inputs) float64 { return in.Strategy.CurrentSavingsRate }).
		Range(0, 100).
		WarnIfBelow(5, "Current savings rate seems low for retirement planning"),
	engine.Number("strategy.targetSavingsRate", "Target savings rate", func(in Inputs) float64 { return in.Strategy.TargetSavingsRate }).
		Range(0, 100),
	engine.Number("strategy.withdrawalRate", "Withdrawal rate", func(in Inputs) float64 { return in.Strategy.WithdrawalRate }).
		Range(0, 30).
		WarnIfAbove(5, "Withdrawal rate above 5% may be unsustainable"),

	engine.Text("risk.tolerance", "Risk tolerance", func(in Inputs) string { return in.Risk.Tolerance }).
		Require().OneOf(ToleranceConservative, ToleranceModerate, ToleranceAggressive),
	engine.Number("risk.market", "Market risk", func(in Inputs) float64 { return in.Risk.Market }).
		Range(0, 1),
	engine.Number("risk.inflation", "Inflation risk", func(in Inputs) float64 { return in.Risk.Inflation }).
		Range(0, 1),
	engine.Number("risk.longevity", "Longevity risk", func(in Inputs) float64 { return in.Risk.Longevity }).
		Range(0, 1),
	engine.Number("risk.healthcare", "Healthcare risk", func(in Inputs) float64 { return in.Risk.Healthcare }).
		Range(0, 1),
)

// Schema returns the field rules of the calculator. Field names are dotted paths into
// the nested input record.
func Schema() *engine.Schema[Inputs] { return schema }

// ValidateInputs checks a whole input record.
func ValidateInputs(in Inputs) engine.ValidationResult { return schema.ValidateAll(in) }

// ValidateField checks one candidate field value in the context of the record.
func ValidateField(name string, value any, in Inputs) engine.FieldResult {
	return schema.ValidateField(name, value, in)
}
