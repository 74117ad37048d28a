// Package loans provides fixed-rate loan amortization utilities.
package loans

import (
	"fmt"
	"math"

	"github.com/iwvelando/property-calculators/pkg/constants"
	"github.com/iwvelando/property-calculators/pkg/mathutil"
	"go.uber.org/zap"
)

// Payment holds the values for a given monthly payment.
type Payment struct {
	Month              int     `json:"month"`
	Payment            float64 `json:"payment"`
	Principal          float64 `json:"principal"`
	Interest           float64 `json:"interest"`
	RemainingPrincipal float64 `json:"remainingPrincipal"`
}

// ScheduleYear aggregates twelve monthly payments.
type ScheduleYear struct {
	Year          int     `json:"year"`
	Payment       float64 `json:"payment"`
	Principal     float64 `json:"principal"`
	Interest      float64 `json:"interest"`
	EndingBalance float64 `json:"endingBalance"`
}

// MonthlyRate converts an annual percentage rate into a periodic monthly rate.
func MonthlyRate(annualRatePercent float64) float64 {
	return annualRatePercent / (constants.PercentageMultiplier * constants.MonthsPerYear)
}

// MonthlyPayment calculates the level monthly payment for a fixed-rate loan using the
// standard amortization formula. A zero rate is repaid straight-line.
//
// termYears must be positive; callers validate it before reaching this point.
func MonthlyPayment(principal, annualRatePercent, termYears float64) float64 {
	n := termYears * constants.MonthsPerYear
	r := MonthlyRate(annualRatePercent)
	if r == 0 {
		return principal / n
	}

	power := math.Pow(1+r, n)
	return principal * r * power / (power - 1)
}

// InterestPayment calculates the interest portion of a payment on the remaining principal.
func InterestPayment(remainingPrincipal, annualRatePercent float64) float64 {
	return remainingPrincipal * MonthlyRate(annualRatePercent)
}

// RemainingBalance returns the outstanding principal after monthsPaid level payments.
func RemainingBalance(principal, annualRatePercent, termYears float64, monthsPaid int) float64 {
	n := int(math.Round(termYears * constants.MonthsPerYear))
	if monthsPaid <= 0 {
		return principal
	}
	if monthsPaid >= n {
		return 0
	}

	r := MonthlyRate(annualRatePercent)
	payment := MonthlyPayment(principal, annualRatePercent, termYears)
	if r == 0 {
		return mathutil.Max(0, principal-payment*float64(monthsPaid))
	}

	growth := math.Pow(1+r, float64(monthsPaid))
	return mathutil.Max(0, principal*growth-payment*(growth-1)/r)
}

// AmortizationScheduleGenerator produces amortization schedules for fixed-rate loans.
type AmortizationScheduleGenerator struct {
	logger *zap.Logger
}

// NewAmortizationScheduleGenerator creates a new generator instance
func NewAmortizationScheduleGenerator(logger *zap.Logger) *AmortizationScheduleGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AmortizationScheduleGenerator{logger: logger}
}

// GenerateSchedule creates the complete monthly schedule for a loan.
func (g *AmortizationScheduleGenerator) GenerateSchedule(principal, annualRatePercent, termYears float64) ([]Payment, error) {
	if termYears <= 0 {
		return nil, fmt.Errorf("loan term must be positive, got %v years", termYears)
	}
	if principal < 0 || annualRatePercent < 0 {
		return nil, fmt.Errorf("principal and rate must be non-negative, got %v at %v%%", principal, annualRatePercent)
	}

	months := int(math.Round(termYears * constants.MonthsPerYear))
	monthlyPayment := MonthlyPayment(principal, annualRatePercent, termYears)
	schedule := make([]Payment, 0, months)
	balance := principal

	for month := 1; month <= months; month++ {
		interest := InterestPayment(balance, annualRatePercent)
		principalPaid := monthlyPayment - interest

		if month == months || mathutil.Round(balance-principalPaid) <= 0 {
			// Final payment absorbs floating point residue.
			principalPaid = balance
			schedule = append(schedule, Payment{
				Month:              month,
				Payment:            principalPaid + interest,
				Principal:          principalPaid,
				Interest:           interest,
				RemainingPrincipal: 0,
			})
			break
		}

		balance -= principalPaid
		schedule = append(schedule, Payment{
			Month:              month,
			Payment:            monthlyPayment,
			Principal:          principalPaid,
			Interest:           interest,
			RemainingPrincipal: balance,
		})
	}

	g.logger.Debug("generated amortization schedule",
		zap.String("op", "loans.GenerateSchedule"),
		zap.Float64("principal", principal),
		zap.Float64("rate", annualRatePercent),
		zap.Int("payments", len(schedule)),
	)

	return schedule, nil
}

// GenerateYearlySchedule rolls the monthly schedule up into years.
func (g *AmortizationScheduleGenerator) GenerateYearlySchedule(principal, annualRatePercent, termYears float64) ([]ScheduleYear, error) {
	monthly, err := g.GenerateSchedule(principal, annualRatePercent, termYears)
	if err != nil {
		return nil, err
	}
	return SummarizeByYear(monthly), nil
}

// SummarizeByYear groups a monthly schedule into yearly totals.
func SummarizeByYear(schedule []Payment) []ScheduleYear {
	years := make([]ScheduleYear, 0, len(schedule)/constants.MonthsPerYear+1)
	for _, p := range schedule {
		year := (p.Month-1)/constants.MonthsPerYear + 1
		if len(years) < year {
			years = append(years, ScheduleYear{Year: year})
		}
		current := &years[year-1]
		current.Payment += p.Payment
		current.Principal += p.Principal
		current.Interest += p.Interest
		current.EndingBalance = p.RemainingPrincipal
	}
	return years
}
