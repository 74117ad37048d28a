package title

import "github.com/iwvelando/property-calculators/internal/calculator"

// Name is the registry key of the calculator.
const Name = "title-insurance"

// Module returns the calculator as a registry runner. Title insurance is a one-time
// cost, so the runner has no projection.
func Module() calculator.Runner {
	return calculator.New(calculator.Definition[Inputs, Outputs]{
		Name:        Name,
		Title:       "Title Insurance Calculator",
		Description: "Owner's and lender's title premiums, closing fees and title risk",
		Defaults:    Defaults,
		Schema:      schema,
		Calculate:   Calculate,
		Report:      GenerateReport,
	})
}
