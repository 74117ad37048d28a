// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/iwvelando/property-calculators/pkg/constants"
	"github.com/shopspring/decimal"
)

// Round rounds a value to two decimals, i.e. to represent real currency.
// Used for making logical comparisons.
func Round(val float64) float64 {
	return math.Round(val*constants.DecimalPrecision) / constants.DecimalPrecision
}

// RoundTo rounds half away from zero to the given number of decimal places.
// Non-finite values are returned as 0.
func RoundTo(val float64, places int32) float64 {
	if !IsFinite(val) {
		return 0
	}
	rounded, _ := decimal.NewFromFloat(val).Round(places).Float64()
	return rounded
}

// RoundCurrency rounds a published currency amount to cents.
func RoundCurrency(val float64) float64 {
	return RoundTo(val, 2)
}

// RoundWhole rounds a published amount to whole dollars.
func RoundWhole(val float64) float64 {
	return RoundTo(val, 0)
}

// SumCurrency adds amounts in decimal space so that long expense lists do not drift.
func SumCurrency(values ...float64) float64 {
	total := decimal.Zero
	for _, v := range values {
		if !IsFinite(v) {
			continue
		}
		total = total.Add(decimal.NewFromFloat(v))
	}
	f, _ := total.Float64()
	return f
}

// IsZero checks if a value is effectively zero (within tolerance)
func IsZero(val float64) bool {
	return math.Abs(val) <= constants.CurrencyTolerance
}

// IsPositive checks if a value is positive (greater than tolerance)
func IsPositive(val float64) bool {
	return val > constants.CurrencyTolerance
}

// IsNegative checks if a value is negative (less than negative tolerance)
func IsNegative(val float64) bool {
	return val < -constants.CurrencyTolerance
}

// IsFinite reports whether val is neither NaN nor infinite.
func IsFinite(val float64) bool {
	return !math.IsNaN(val) && !math.IsInf(val, 0)
}

// Finite maps NaN and infinities to 0.
func Finite(val float64) float64 {
	if !IsFinite(val) {
		return 0
	}
	return val
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// Min returns the minimum of two float64 values
func Min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

// Max returns the maximum of two float64 values
func Max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// Clamp bounds val to [lo, hi].
func Clamp(val, lo, hi float64) float64 {
	return Max(lo, Min(hi, val))
}

// SafeDivide returns numerator/denominator, or 0 when the denominator is not positive.
func SafeDivide(numerator, denominator float64) float64 {
	if !(denominator > 0) {
		return 0
	}
	return Finite(numerator / denominator)
}

// CalculatePercentage calculates what percentage value is of total.
// A zero or negative total yields 0.
func CalculatePercentage(value, total float64) float64 {
	return SafeDivide(value, total) * constants.PercentageMultiplier
}

// ApplyPercentage applies a percentage to a value
func ApplyPercentage(value, percentage float64) float64 {
	return value * (percentage / constants.PercentageMultiplier)
}

// Grow compounds base by ratePercent for the given number of periods.
func Grow(base, ratePercent float64, periods int) float64 {
	if periods <= 0 {
		return base
	}
	return base * math.Pow(1+ratePercent/constants.PercentageMultiplier, float64(periods))
}
