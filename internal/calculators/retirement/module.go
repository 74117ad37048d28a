package retirement

import (
	"github.com/iwvelando/property-calculators/internal/calculator"
	"github.com/iwvelando/property-calculators/internal/engine"
)

// Name is the registry key of the calculator.
const Name = "retirement-planning"

// Module returns the calculator as a registry runner.
func Module() calculator.Runner {
	return calculator.New(calculator.Definition[Inputs, Outputs]{
		Name:        Name,
		Title:       "Retirement Planning Calculator",
		Description: "Retirement readiness, income gap, required savings and savings projection",
		Defaults:    Defaults,
		Schema:      schema,
		Calculate:   Calculate,
		Report:      GenerateReport,
		Projection:  func(out Outputs) []engine.ProjectionRow { return out.Rows },
	})
}
