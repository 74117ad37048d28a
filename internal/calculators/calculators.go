// Package calculators registers every calculator module.
package calculators

import (
	"github.com/iwvelando/property-calculators/internal/calculator"
	"github.com/iwvelando/property-calculators/internal/calculators/cashflow"
	"github.com/iwvelando/property-calculators/internal/calculators/flood"
	"github.com/iwvelando/property-calculators/internal/calculators/mortgageequity"
	"github.com/iwvelando/property-calculators/internal/calculators/retirement"
	"github.com/iwvelando/property-calculators/internal/calculators/title"
)

// Default returns a registry holding all built-in calculators.
func Default() *calculator.Registry {
	return calculator.NewRegistry(
		cashflow.Module(),
		flood.Module(),
		mortgageequity.Module(),
		retirement.Module(),
		title.Module(),
	)
}
