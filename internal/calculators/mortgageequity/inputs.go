// Package mortgageequity measures the equity held in a mortgaged property, the
// borrowing and refinancing options it supports, and how it grows over time.
package mortgageequity

// Occupancy types.
const (
	OccupancyPrimary    = "primary-residence"
	OccupancySecondary  = "secondary-home"
	OccupancyInvestment = "investment-property"
)

// Property types.
const (
	PropertySingleFamily = "single-family"
	PropertyCondo        = "condo"
	PropertyTownhouse    = "townhouse"
	PropertyMultiFamily  = "multi-family"
)

var loanTypes = []string{"conventional", "fha", "va", "usda", "jumbo", "arm", "interest-only", "balloon"}

// Inputs is the input record of the mortgage equity calculator.
type Inputs struct {
	CurrentPropertyValue   float64 `json:"currentPropertyValue" yaml:"currentPropertyValue"`
	OriginalPurchasePrice  float64 `json:"originalPurchasePrice" yaml:"originalPurchasePrice"`
	OriginalDownPayment    float64 `json:"originalDownPayment" yaml:"originalDownPayment"`
	CurrentMortgageBalance float64 `json:"currentMortgageBalance" yaml:"currentMortgageBalance"`
	// YearsOwned is the holding period in years. Zero means unknown.
	YearsOwned           float64 `json:"yearsOwned" yaml:"yearsOwned"`
	PropertyImprovements float64 `json:"propertyImprovements" yaml:"propertyImprovements"`

	InterestRate      float64 `json:"interestRate" yaml:"interestRate"`
	RemainingLoanTerm float64 `json:"remainingLoanTerm" yaml:"remainingLoanTerm"`
	MonthlyPayment    float64 `json:"monthlyPayment" yaml:"monthlyPayment"`

	OccupancyType     string  `json:"occupancyType" yaml:"occupancyType"`
	CreditScore       float64 `json:"creditScore" yaml:"creditScore"`
	DebtToIncomeRatio float64 `json:"debtToIncomeRatio" yaml:"debtToIncomeRatio"`
	PropertyType      string  `json:"propertyType" yaml:"propertyType"`
	LoanType          string  `json:"loanType" yaml:"loanType"`

	ProjectionYears  int     `json:"projectionYears" yaml:"projectionYears"`
	AppreciationRate float64 `json:"appreciationRate" yaml:"appreciationRate"`

	Refinance RefinanceInputs `json:"refinance" yaml:"refinance"`
}

// RefinanceInputs describes a candidate replacement loan.
type RefinanceInputs struct {
	NewRate         float64 `json:"newRate" yaml:"newRate"`
	NewTerm         float64 `json:"newTerm" yaml:"newTerm"`
	CashOutAmount   float64 `json:"cashOutAmount" yaml:"cashOutAmount"`
	ClosingCostRate float64 `json:"closingCostRate" yaml:"closingCostRate"`
}

// Defaults returns a primary residence bought five years ago.
func Defaults() Inputs {
	return Inputs{
		CurrentPropertyValue:   500000,
		OriginalPurchasePrice:  400000,
		OriginalDownPayment:    80000,
		CurrentMortgageBalance: 280000,
		YearsOwned:             5,
		PropertyImprovements:   25000,

		InterestRate:      4.5,
		RemainingLoanTerm: 25,
		MonthlyPayment:    1800,

		OccupancyType:     OccupancyPrimary,
		CreditScore:       750,
		DebtToIncomeRatio: 35,
		PropertyType:      PropertySingleFamily,
		LoanType:          "conventional",

		ProjectionYears:  5,
		AppreciationRate: 3,

		Refinance: RefinanceInputs{
			NewRate:         4,
			NewTerm:         30,
			ClosingCostRate: 3,
		},
	}
}

func (in Inputs) originalLoan() float64 {
	return in.OriginalPurchasePrice - in.OriginalDownPayment
}

// hasPaymentData reports whether the loan terms are complete enough to amortize.
func (in Inputs) hasPaymentData() bool {
	return in.MonthlyPayment > 0 && in.InterestRate > 0 && in.CurrentMortgageBalance > 0 && in.RemainingLoanTerm > 0
}
