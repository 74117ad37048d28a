package flood

import (
	"github.com/iwvelando/property-calculators/internal/calculator"
	"github.com/iwvelando/property-calculators/internal/engine"
)

// Name is the registry key of the calculator.
const Name = "flood-insurance"

// Module returns the calculator as a registry runner.
func Module() calculator.Runner {
	return calculator.New(calculator.Definition[Inputs, Outputs]{
		Name:        Name,
		Title:       "Flood Insurance Calculator",
		Description: "NFIP and private flood premiums, coverage, flood risk and compliance",
		Defaults:    Defaults,
		Schema:      schema,
		Calculate:   Calculate,
		Report:      GenerateReport,
		Projection:  func(out Outputs) []engine.ProjectionRow { return out.Rows },
	})
}
