// Package retirement projects retirement assets and income from current savings and
// scores how ready a household is to retire at its target age.
package retirement

// Risk tolerances.
const (
	ToleranceConservative = "conservative"
	ToleranceModerate     = "moderate"
	ToleranceAggressive   = "aggressive"
)

// Inputs is the input record of the retirement planning calculator. Rates are
// percentages; risk factors are probabilities in [0, 1].
type Inputs struct {
	Personal   Personal `json:"personal" yaml:"personal"`
	Income     Income   `json:"income" yaml:"income"`
	Assets     Assets   `json:"assets" yaml:"assets"`
	Expenses   Expenses `json:"expenses" yaml:"expenses"`
	Goals      Goals    `json:"goals" yaml:"goals"`
	Strategy   Strategy `json:"strategy" yaml:"strategy"`
	Risk       Risk     `json:"risk" yaml:"risk"`
	HasPension bool     `json:"hasPension" yaml:"hasPension"`
}

type Personal struct {
	Age int `json:"age" yaml:"age"`
}

// Income is annual income by source.
type Income struct {
	Employment     float64 `json:"employment" yaml:"employment"`
	SelfEmployment float64 `json:"selfEmployment" yaml:"selfEmployment"`
	Investment     float64 `json:"investment" yaml:"investment"`
	Other          float64 `json:"other" yaml:"other"`
}

// Assets holds current balances plus the income some of them keep paying in retirement.
type Assets struct {
	RetirementAccounts float64 `json:"retirementAccounts" yaml:"retirementAccounts"`
	InvestmentAccounts float64 `json:"investmentAccounts" yaml:"investmentAccounts"`
	RealEstate         float64 `json:"realEstate" yaml:"realEstate"`
	Business           float64 `json:"business" yaml:"business"`
	Other              float64 `json:"other" yaml:"other"`

	RentalIncome   float64 `json:"rentalIncome" yaml:"rentalIncome"`
	BusinessIncome float64 `json:"businessIncome" yaml:"businessIncome"`
}

// Expenses are annual, in today's dollars.
type Expenses struct {
	Current       float64 `json:"current" yaml:"current"`
	Retirement    float64 `json:"retirement" yaml:"retirement"`
	InflationRate float64 `json:"inflationRate" yaml:"inflationRate"`
}

type Goals struct {
	RetirementAge      int `json:"retirementAge" yaml:"retirementAge"`
	RetirementDuration int `json:"retirementDuration" yaml:"retirementDuration"`
}

type Strategy struct {
	TargetReturn       float64 `json:"targetReturn" yaml:"targetReturn"`
	CurrentSavingsRate float64 `json:"currentSavingsRate" yaml:"currentSavingsRate"`
	TargetSavingsRate  float64 `json:"targetSavingsRate" yaml:"targetSavingsRate"`
	WithdrawalRate     float64 `json:"withdrawalRate" yaml:"withdrawalRate"`
}

type Risk struct {
	Tolerance  string  `json:"tolerance" yaml:"tolerance"`
	Market     float64 `json:"market" yaml:"market"`
	Inflation  float64 `json:"inflation" yaml:"inflation"`
	Longevity  float64 `json:"longevity" yaml:"longevity"`
	Healthcare float64 `json:"healthcare" yaml:"healthcare"`
}

// Defaults returns a 40 year old saving for retirement at 65.
func Defaults() Inputs {
	return Inputs{
		Personal: Personal{Age: 40},
		Income:   Income{Employment: 100000, Investment: 5000},
		Assets: Assets{
			RetirementAccounts: 250000,
			InvestmentAccounts: 100000,
			Other:              10000,
		},
		Expenses: Expenses{Current: 70000, Retirement: 60000, InflationRate: 3},
		Goals:    Goals{RetirementAge: 65, RetirementDuration: 25},
		Strategy: Strategy{
			TargetReturn:       7,
			CurrentSavingsRate: 10,
			TargetSavingsRate:  15,
			WithdrawalRate:     4,
		},
		Risk: Risk{
			Tolerance:  ToleranceModerate,
			Market:     0.3,
			Inflation:  0.2,
			Longevity:  0.2,
			Healthcare: 0.1,
		},
	}
}

func (in Inputs) totalIncome() float64 {
	i := in.Income
	return i.Employment + i.SelfEmployment + i.Investment + i.Other
}

func (in Inputs) totalAssets() float64 {
	a := in.Assets
	return a.RetirementAccounts + a.InvestmentAccounts + a.RealEstate + a.Business + a.Other
}

func (in Inputs) yearsToRetirement() int {
	return max(0, in.Goals.RetirementAge-in.Personal.Age)
}

// realReturn is the inflation adjusted annual return as a fraction.
func (in Inputs) realReturn() float64 {
	return (in.Strategy.TargetReturn - in.Expenses.InflationRate) / 100
}

func (in Inputs) annualSavings() float64 {
	return in.totalIncome() * in.Strategy.CurrentSavingsRate / 100
}
