package mathutil

import (
	"math"
	"testing"
)

func TestRound(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"Round up at midpoint", 1.235, 1.24},
		{"Round down below midpoint", 1.234, 1.23},
		{"Large number", 12345.678, 12345.68},
		{"Negative number round down", -1.234, -1.23},
		{"Zero", 0.0, 0.0},
		{"Very small negative", -0.001, 0.00},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Round(tt.input)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("Round(%v) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestRoundTo(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		places   int32
		expected float64
	}{
		{"Cents", 2026.7383, 2, 2026.74},
		{"Whole dollars half up", 2.5, 0, 3},
		{"Whole dollars negative half away from zero", -2.5, 0, -3},
		{"One place", 44.444, 1, 44.4},
		{"NaN becomes zero", math.NaN(), 2, 0},
		{"Inf becomes zero", math.Inf(1), 2, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := RoundTo(tt.input, tt.places)
			if math.Abs(result-tt.expected) > 1e-9 {
				t.Errorf("RoundTo(%v, %d) = %v, expected %v", tt.input, tt.places, result, tt.expected)
			}
		})
	}
}

func TestRoundCurrencyAndWhole(t *testing.T) {
	if got := RoundCurrency(1499.995); math.Abs(got-1500.00) > 1e-9 {
		t.Errorf("RoundCurrency(1499.995) = %v, expected 1500.00", got)
	}
	if got := RoundWhole(219999.5); got != 220000 {
		t.Errorf("RoundWhole(219999.5) = %v, expected 220000", got)
	}
}

func TestSumCurrency(t *testing.T) {
	got := SumCurrency(0.1, 0.2, 0.3, math.NaN())
	if got != 0.6 {
		t.Errorf("SumCurrency() = %v, expected exactly 0.6", got)
	}
	if got := SumCurrency(); got != 0 {
		t.Errorf("SumCurrency() with no values = %v, expected 0", got)
	}
}

func TestIsZero(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected bool
	}{
		{"Exactly zero", 0.0, true},
		{"Very small positive", 0.001, true},
		{"Just above tolerance", 0.02, false},
		{"Exactly negative tolerance", -0.01, true},
		{"Large negative", -100.0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsZero(tt.input)
			if result != tt.expected {
				t.Errorf("IsZero(%v) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestSignHelpers(t *testing.T) {
	if !IsPositive(0.02) || IsPositive(0.01) {
		t.Error("IsPositive should respect the one-cent tolerance")
	}
	if !IsNegative(-0.02) || IsNegative(-0.01) {
		t.Error("IsNegative should respect the one-cent tolerance")
	}
}

func TestFinite(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"Regular value", 12.5, 12.5},
		{"NaN", math.NaN(), 0},
		{"Positive infinity", math.Inf(1), 0},
		{"Negative infinity", math.Inf(-1), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := Finite(tt.input); result != tt.expected {
				t.Errorf("Finite(%v) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestSafeDivide(t *testing.T) {
	tests := []struct {
		name        string
		numerator   float64
		denominator float64
		expected    float64
	}{
		{"Regular division", 10, 4, 2.5},
		{"Zero denominator", 10, 0, 0},
		{"Negative denominator", 10, -5, 0},
		{"NaN denominator", 10, math.NaN(), 0},
		{"Negative numerator", -30000, 250000, -0.12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SafeDivide(tt.numerator, tt.denominator)
			if math.Abs(result-tt.expected) > 1e-9 {
				t.Errorf("SafeDivide(%v, %v) = %v, expected %v", tt.numerator, tt.denominator, result, tt.expected)
			}
		})
	}
}

func TestCalculatePercentage(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		total    float64
		expected float64
	}{
		{"50% of 100", 50.0, 100.0, 50.0},
		{"More than 100%", 280000, 250000, 112.0},
		{"Zero total", 50.0, 0.0, 0.0},
		{"Both zero", 0.0, 0.0, 0.0},
		{"Negative value", -50.0, 100.0, -50.0},
		{"Negative total", 50.0, -100.0, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculatePercentage(tt.value, tt.total)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("CalculatePercentage(%v, %v) = %v, expected %v",
					tt.value, tt.total, result, tt.expected)
			}
		})
	}
}

func TestApplyPercentage(t *testing.T) {
	if got := ApplyPercentage(30000, 5); math.Abs(got-1500) > 0.001 {
		t.Errorf("ApplyPercentage(30000, 5) = %v, expected 1500", got)
	}
	if got := ApplyPercentage(100, -50); math.Abs(got+50) > 0.001 {
		t.Errorf("ApplyPercentage(100, -50) = %v, expected -50", got)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		name     string
		val      float64
		expected float64
	}{
		{"Below range", 0.6, 0.70},
		{"Inside range", 0.85, 0.85},
		{"Above range", 0.98, 0.90},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := Clamp(tt.val, 0.70, 0.90); result != tt.expected {
				t.Errorf("Clamp(%v) = %v, expected %v", tt.val, result, tt.expected)
			}
		})
	}
}

func TestGrow(t *testing.T) {
	tests := []struct {
		name     string
		base     float64
		rate     float64
		periods  int
		expected float64
	}{
		{"No periods", 1000, 3, 0, 1000},
		{"One period", 1000, 3, 1, 1030},
		{"Two periods", 1000, 10, 2, 1210},
		{"Zero rate", 1000, 0, 5, 1000},
		{"Negative rate", 1000, -10, 1, 900},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Grow(tt.base, tt.rate, tt.periods)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("Grow(%v, %v, %d) = %v, expected %v", tt.base, tt.rate, tt.periods, result, tt.expected)
			}
		})
	}
}
