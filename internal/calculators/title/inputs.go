// Package title prices owner's and lender's title insurance for a transaction and
// scores the title risk, coverage and value of the resulting policy.
package title

// Coverage types.
const (
	CoverageOwners  = "owners-policy"
	CoverageLenders = "lenders-policy"
	CoverageBoth    = "both"
)

const (
	noneOption        = "none"
	transactionRefi   = "refinance"
	transactionBuy    = "purchase"
	chainVeryComplex  = "very-complex"
	propertyCommerce  = "commercial"
	propertyMultiUnit = "multi-family"
)

var (
	transactionTypes = []string{transactionBuy, transactionRefi, "construction", "equity-line"}
	coverageTypes    = []string{CoverageOwners, CoverageLenders, CoverageBoth}
	propertyTypes    = []string{"single-family", "condo", "townhouse", propertyMultiUnit, propertyCommerce, "land"}
	endorsementTypes = []string{"survey", "access", "zoning", "condo"}
	extendedLevels   = []string{noneOption, "basic", "enhanced", "premium"}
	searchDepths     = []string{"standard", "extended", "comprehensive"}
	knownIssueTypes  = []string{noneOption, "easements", "liens", "encroachments", "boundary-disputes", "multiple"}
	claimHistories   = []string{noneOption, "one", "multiple"}
	chainComplexity  = []string{"simple", "moderate", "complex", chainVeryComplex}
	escrowLevels     = []string{noneOption, "basic", "full", "custom"}
)

// Inputs is the input record of the title insurance calculator.
type Inputs struct {
	PropertyValue float64 `json:"propertyValue" yaml:"propertyValue"`
	PurchasePrice float64 `json:"purchasePrice" yaml:"purchasePrice"`
	LoanAmount    float64 `json:"loanAmount" yaml:"loanAmount"`
	PropertyType  string  `json:"propertyType" yaml:"propertyType"`
	PropertyAge   int     `json:"propertyAge" yaml:"propertyAge"`

	TransactionType string `json:"transactionType" yaml:"transactionType"`
	CoverageType    string `json:"coverageType" yaml:"coverageType"`
	// CoverageAmount defaults to the property value when zero.
	CoverageAmount   float64  `json:"coverageAmount" yaml:"coverageAmount"`
	Endorsements     []string `json:"endorsements" yaml:"endorsements"`
	ExtendedCoverage string   `json:"extendedCoverage" yaml:"extendedCoverage"`
	// State is a two-letter code; rates are adjusted for ca, ny, fl and tx.
	State string `json:"state" yaml:"state"`

	TitleSearchDepth string `json:"titleSearchDepth" yaml:"titleSearchDepth"`
	KnownIssues      string `json:"knownIssues" yaml:"knownIssues"`
	PreviousClaims   string `json:"previousClaims" yaml:"previousClaims"`
	ChainOfTitle     string `json:"chainOfTitle" yaml:"chainOfTitle"`
	SurveyRequired   bool   `json:"surveyRequired" yaml:"surveyRequired"`
	AbstractRequired bool   `json:"abstractRequired" yaml:"abstractRequired"`

	EscrowServices string  `json:"escrowServices" yaml:"escrowServices"`
	DiscountRate   float64 `json:"discountRate" yaml:"discountRate"`
}

// Defaults returns a financed purchase of a 20-year-old single-family home.
func Defaults() Inputs {
	return Inputs{
		PropertyValue: 400000,
		PurchasePrice: 400000,
		LoanAmount:    320000,
		PropertyType:  "single-family",
		PropertyAge:   20,

		TransactionType:  transactionBuy,
		CoverageType:     CoverageBoth,
		ExtendedCoverage: noneOption,

		TitleSearchDepth: "standard",
		KnownIssues:      noneOption,
		PreviousClaims:   noneOption,
		ChainOfTitle:     "simple",

		EscrowServices: "basic",
		DiscountRate:   5,
	}
}

// effectiveCoverage is the insured amount of the owner's policy.
func (in Inputs) effectiveCoverage() float64 {
	if in.CoverageAmount > 0 {
		return in.CoverageAmount
	}
	return in.PropertyValue
}

// lenderCoverage is the insured amount of the lender's policy.
func (in Inputs) lenderCoverage() float64 {
	if in.LoanAmount > 0 {
		return in.LoanAmount
	}
	return in.effectiveCoverage()
}

func (in Inputs) hasOwners() bool {
	return in.CoverageType == CoverageOwners || in.CoverageType == CoverageBoth
}

func (in Inputs) hasLenders() bool {
	return in.CoverageType == CoverageLenders || in.CoverageType == CoverageBoth
}

func (in Inputs) hasKnownIssues() bool {
	return in.KnownIssues != "" && in.KnownIssues != noneOption
}
