package cashflow

import (
	"github.com/iwvelando/property-calculators/internal/calculator"
	"github.com/iwvelando/property-calculators/internal/engine"
)

// Name is the registry key of the calculator.
const Name = "cash-flow"

// Module returns the calculator as a registry runner.
func Module() calculator.Runner {
	return calculator.New(calculator.Definition[Inputs, Outputs]{
		Name:        Name,
		Title:       "Cash Flow Calculator",
		Description: "Rental property income, expenses, returns and multi-year cash flow projection",
		Defaults:    Defaults,
		Schema:      schema,
		Calculate:   Calculate,
		Report:      GenerateReport,
		Projection:  func(out Outputs) []engine.ProjectionRow { return out.Rows },
	})
}
