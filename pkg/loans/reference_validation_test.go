package loans

import (
	"fmt"
	"math"
	"testing"

	"go.uber.org/zap"
)

// referencePayment is one row of a published amortization table.
type referencePayment struct {
	Month            int
	Payment          float64
	PrincipalPayment float64
	Interest         float64
	LoanBalance      float64
}

// referenceSchedule returns a published schedule for $175,000 at 4.5% over 360 months.
func referenceSchedule() []referencePayment {
	return []referencePayment{
		{1, 886.70, 230.45, 656.25, 174769.55},
		{2, 886.70, 231.31, 655.39, 174538.24},
		{3, 886.70, 232.18, 654.52, 174306.06},
		{12, 886.70, 240.14, 646.56, 172176.85},
		{24, 886.70, 251.17, 635.53, 169224.01},
		{60, 886.70, 287.40, 599.30, 159526.36},
		{120, 886.70, 359.76, 526.94, 140156.51},
		{180, 886.70, 450.35, 436.35, 115909.42},
		{240, 886.70, 563.75, 322.95, 85557.02},
		{300, 886.70, 705.70, 181.00, 47562.00},
		{359, 886.70, 880.09, 6.61, 883.39},
		{360, 886.70, 883.39, 3.31, 0.00},
	}
}

func TestScheduleAgainstReference(t *testing.T) {
	generator := NewAmortizationScheduleGenerator(zap.NewNop())

	schedule, err := generator.GenerateSchedule(175000, 4.5, 30)
	if err != nil {
		t.Fatalf("GenerateSchedule() error = %v", err)
	}
	if len(schedule) != 360 {
		t.Fatalf("expected 360 payments, got %d", len(schedule))
	}

	tolerance := 0.50

	for _, ref := range referenceSchedule() {
		payment := schedule[ref.Month-1]

		t.Run(fmt.Sprintf("Month_%d", ref.Month), func(t *testing.T) {
			if payment.Month != ref.Month {
				t.Fatalf("schedule index %d holds month %d", ref.Month-1, payment.Month)
			}
			if math.Abs(payment.Payment-ref.Payment) > tolerance {
				t.Errorf("Payment amount mismatch: got %.2f, expected %.2f", payment.Payment, ref.Payment)
			}
			if math.Abs(payment.Principal-ref.PrincipalPayment) > tolerance {
				t.Errorf("Principal payment mismatch: got %.2f, expected %.2f", payment.Principal, ref.PrincipalPayment)
			}
			if math.Abs(payment.Interest-ref.Interest) > tolerance {
				t.Errorf("Interest payment mismatch: got %.2f, expected %.2f", payment.Interest, ref.Interest)
			}
			if math.Abs(payment.RemainingPrincipal-ref.LoanBalance) > tolerance {
				t.Errorf("Remaining balance mismatch: got %.2f, expected %.2f", payment.RemainingPrincipal, ref.LoanBalance)
			}
			if math.Abs(payment.Principal+payment.Interest-payment.Payment) > 0.01 {
				t.Errorf("Payment components don't add up: %.2f + %.2f != %.2f",
					payment.Principal, payment.Interest, payment.Payment)
			}
		})
	}
}

func TestMonthlyPaymentAgainstReference(t *testing.T) {
	monthlyPayment := MonthlyPayment(175000, 4.5, 30)
	if math.Abs(monthlyPayment-886.70) > 0.01 {
		t.Errorf("MonthlyPayment() = %.2f, expected 886.70", monthlyPayment)
	}
}

func TestScheduleBalanceDecreasesMonotonically(t *testing.T) {
	generator := NewAmortizationScheduleGenerator(nil)

	schedule, err := generator.GenerateSchedule(175000, 4.5, 30)
	if err != nil {
		t.Fatalf("GenerateSchedule() error = %v", err)
	}

	previous := 175000.0
	for _, p := range schedule {
		if p.RemainingPrincipal > previous {
			t.Fatalf("month %d balance %.2f rose above previous %.2f", p.Month, p.RemainingPrincipal, previous)
		}
		previous = p.RemainingPrincipal
	}
	if previous != 0 {
		t.Errorf("final balance = %.2f, expected 0", previous)
	}
}
