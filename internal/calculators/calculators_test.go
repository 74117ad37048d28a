package calculators

import (
	"context"
	"testing"

	"github.com/iwvelando/property-calculators/internal/calculator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry(t *testing.T) {
	reg := Default()
	assert.Equal(t, []string{
		"cash-flow", "flood-insurance", "mortgage-equity", "retirement-planning", "title-insurance",
	}, reg.Names())
}

func TestEveryCalculatorRunsOnDefaults(t *testing.T) {
	reg := Default()
	for _, name := range reg.Names() {
		t.Run(name, func(t *testing.T) {
			runner, err := reg.Get(name)
			require.NoError(t, err)

			res, err := runner.Calculate(context.Background(), nil, calculator.FormatJSON)
			require.NoError(t, err)
			assert.Equal(t, name, res.Calculator)
			assert.NotNil(t, res.Outputs)
			assert.NotNil(t, res.Projection)
			assert.NotEmpty(t, res.Report)

			v, err := runner.Validate(nil, calculator.FormatJSON)
			require.NoError(t, err)
			assert.True(t, v.IsValid, "%v", v.Errors)
		})
	}
}
