// Package cashflow analyzes the operating cash flow of a rental property: income,
// expenses, financing, returns and a multi-year projection.
package cashflow

// Inputs is the full input record of the cash flow calculator. Expense fields are
// annual amounts; rent and other income are monthly.
type Inputs struct {
	PropertyValue float64 `json:"propertyValue" yaml:"propertyValue"`
	PurchasePrice float64 `json:"purchasePrice" yaml:"purchasePrice"`
	DownPayment   float64 `json:"downPayment" yaml:"downPayment"`
	LoanAmount    float64 `json:"loanAmount" yaml:"loanAmount"`
	InterestRate  float64 `json:"interestRate" yaml:"interestRate"`
	LoanTerm      float64 `json:"loanTerm" yaml:"loanTerm"`

	MonthlyRent    float64 `json:"monthlyRent" yaml:"monthlyRent"`
	OtherIncome    float64 `json:"otherIncome" yaml:"otherIncome"`
	RentGrowthRate float64 `json:"rentGrowthRate" yaml:"rentGrowthRate"`
	VacancyRate    float64 `json:"vacancyRate" yaml:"vacancyRate"`

	PropertyTaxes      float64 `json:"propertyTaxes" yaml:"propertyTaxes"`
	Insurance          float64 `json:"insurance" yaml:"insurance"`
	Maintenance        float64 `json:"maintenance" yaml:"maintenance"`
	PropertyManagement float64 `json:"propertyManagement" yaml:"propertyManagement"`
	Utilities          float64 `json:"utilities" yaml:"utilities"`
	HOAFees            float64 `json:"hoaFees" yaml:"hoaFees"`
	Landscaping        float64 `json:"landscaping" yaml:"landscaping"`
	PestControl        float64 `json:"pestControl" yaml:"pestControl"`
	Advertising        float64 `json:"advertising" yaml:"advertising"`
	LegalFees          float64 `json:"legalFees" yaml:"legalFees"`
	AccountingFees     float64 `json:"accountingFees" yaml:"accountingFees"`
	OtherExpenses      float64 `json:"otherExpenses" yaml:"otherExpenses"`

	ClosingCosts  float64 `json:"closingCosts" yaml:"closingCosts"`
	Points        float64 `json:"points" yaml:"points"`
	EscrowAccount float64 `json:"escrowAccount" yaml:"escrowAccount"`
	PrepaidItems  float64 `json:"prepaidItems" yaml:"prepaidItems"`

	MarketRent     float64 `json:"marketRent" yaml:"marketRent"`
	MarketVacancy  float64 `json:"marketVacancy" yaml:"marketVacancy"`
	MarketExpenses float64 `json:"marketExpenses" yaml:"marketExpenses"`
	MarketCapRate  float64 `json:"marketCapRate" yaml:"marketCapRate"`

	AnalysisPeriod     int     `json:"analysisPeriod" yaml:"analysisPeriod"`
	InflationRate      float64 `json:"inflationRate" yaml:"inflationRate"`
	AppreciationRate   float64 `json:"appreciationRate" yaml:"appreciationRate"`
	TaxRate            float64 `json:"taxRate" yaml:"taxRate"`
	DepreciationPeriod float64 `json:"depreciationPeriod" yaml:"depreciationPeriod"`
}

// Defaults returns a single-family rental financed with 20% down.
func Defaults() Inputs {
	return Inputs{
		PropertyValue: 500000,
		PurchasePrice: 500000,
		DownPayment:   100000,
		LoanAmount:    400000,
		InterestRate:  4.5,
		LoanTerm:      30,

		MonthlyRent:    2500,
		RentGrowthRate: 3,
		VacancyRate:    5,

		PropertyTaxes:      6000,
		Insurance:          1200,
		Maintenance:        2400,
		PropertyManagement: 1500,
		Landscaping:        600,
		PestControl:        300,
		Advertising:        200,
		AccountingFees:     300,

		ClosingCosts:  10000,
		EscrowAccount: 3000,
		PrepaidItems:  2000,

		MarketRent:     2500,
		MarketVacancy:  5,
		MarketExpenses: 35,
		MarketCapRate:  6,

		AnalysisPeriod:     10,
		InflationRate:      2.5,
		AppreciationRate:   3,
		TaxRate:            25,
		DepreciationPeriod: 27.5,
	}
}

// expenseCategories lists the operating expense lines in report order.
func (in Inputs) expenseCategories() []ExpenseItem {
	return []ExpenseItem{
		{Category: "Property Taxes", Amount: in.PropertyTaxes},
		{Category: "Insurance", Amount: in.Insurance},
		{Category: "Maintenance", Amount: in.Maintenance},
		{Category: "Property Management", Amount: in.PropertyManagement},
		{Category: "Utilities", Amount: in.Utilities},
		{Category: "HOA Fees", Amount: in.HOAFees},
		{Category: "Landscaping", Amount: in.Landscaping},
		{Category: "Pest Control", Amount: in.PestControl},
		{Category: "Advertising", Amount: in.Advertising},
		{Category: "Legal Fees", Amount: in.LegalFees},
		{Category: "Accounting Fees", Amount: in.AccountingFees},
		{Category: "Other Expenses", Amount: in.OtherExpenses},
	}
}
