package cashflow

import "github.com/iwvelando/property-calculators/internal/engine"

// Metric names read by the threshold tables.
const (
	mCashOnCash      = "cashOnCashReturn"
	mCapRate         = "capRate"
	mDSCR            = "debtServiceCoverageRatio"
	mExpenseRatio    = "expenseRatio"
	mVacancy         = "vacancyRate"
	mRentToMarket    = "rentToMarket"
	mCapSpread       = "capRateSpread"
	mMarketVacancy   = "marketVacancy"
	mExpenseVsMarket = "expenseRatioVsMarket"
	mAnnualCashFlow  = "annualCashFlow"
	mLTV             = "loanToValue"
	mBreakEven       = "breakEvenOccupancy"
)

// Axis names.
const (
	AxisInvestmentGrade = "investmentGrade"
	AxisRiskLevel       = "riskLevel"
	AxisMarketPosition  = "marketPosition"
	AxisMarketRisk      = "marketRisk"
)

var (
	investmentGrade = engine.Axis{
		Name: AxisInvestmentGrade,
		Bands: []engine.Band{
			{Label: "A", When: []engine.Condition{engine.AtLeast(mCashOnCash, 8), engine.AtLeast(mCapRate, 6)},
				Advisories: []string{"Excellent investment opportunity with strong returns"}},
			{Label: "B", When: []engine.Condition{engine.AtLeast(mCashOnCash, 6), engine.AtLeast(mCapRate, 5)},
				Advisories: []string{"Good investment with solid returns; look for opportunities to raise rent or reduce expenses"}},
			{Label: "C", When: []engine.Condition{engine.AtLeast(mCashOnCash, 4), engine.AtLeast(mCapRate, 4)},
				Advisories: []string{"Marginal investment; consider negotiating a lower purchase price"}},
		},
		Fallback: engine.Band{Label: "D",
			Advisories: []string{"Returns are below investment-grade thresholds; reconsider the purchase price or financing terms"}},
	}

	riskLevel = engine.Axis{
		Name: AxisRiskLevel,
		Bands: []engine.Band{
			{Label: "low", When: []engine.Condition{
				engine.AtLeast(mDSCR, 1.25), engine.AtMost(mExpenseRatio, 40), engine.AtMost(mVacancy, 5)}},
			{Label: "medium", When: []engine.Condition{engine.AtLeast(mDSCR, 1.0)},
				Advisories: []string{"Maintain cash reserves to cover vacancies and unexpected repairs"}},
		},
		Fallback: engine.Band{Label: "high",
			Advisories: []string{"Net operating income does not cover debt service; increase the down payment or find better financing"}},
	}

	marketPosition = engine.Axis{
		Name: AxisMarketPosition,
		Bands: []engine.Band{
			{Label: "above", When: []engine.Condition{engine.AtLeast(mRentToMarket, 105)},
				Advisories: []string{"Rent is above market; monitor tenant retention and vacancy closely"}},
			{Label: "at", When: []engine.Condition{engine.AtLeast(mRentToMarket, 95)},
				Advisories: []string{"Rent is in line with the market"}},
		},
		Fallback: engine.Band{Label: "below",
			Advisories: []string{"Rent is below market; consider raising rent at the next lease renewal"}},
	}

	marketRisk = engine.Axis{
		Name: AxisMarketRisk,
		Bands: []engine.Band{
			{Label: "low", When: []engine.Condition{engine.AtMost(mMarketVacancy, 5), engine.AtLeast(mCapSpread, 0)}},
			{Label: "medium", When: []engine.Condition{engine.AtMost(mMarketVacancy, 10)},
				Advisories: []string{"Cap rate or vacancy trails the market; compare against recent local sales"}},
		},
		Fallback: engine.Band{Label: "high",
			Advisories: []string{"High market vacancy; budget for longer vacancy periods and tenant incentives"}},
	}

	cashFlowHealth = []engine.Axis{
		engine.Rule("negativeCashFlow", "Negative cash flow; increase rent, reduce expenses, or refinance to lower the payment",
			engine.Below(mAnnualCashFlow, 0)),
		engine.Rule("highExpenseRatio", "Operating expenses exceed 50% of income; review management and maintenance costs",
			engine.Above(mExpenseRatio, 50)),
		engine.Rule("expensesAboveMarket", "Expense ratio is above the market average",
			engine.Above(mExpenseVsMarket, 0)),
	}

	riskFactors = []engine.Axis{
		engine.Rule("thinCoverage", "Debt service coverage ratio below 1.25", engine.Below(mDSCR, 1.25)),
		engine.Rule("expenseLoad", "Operating expenses exceed 40% of effective gross income", engine.Above(mExpenseRatio, 40)),
		engine.Rule("vacancy", "Vacancy rate above 5%", engine.Above(mVacancy, 5)),
		engine.Rule("leverage", "Loan-to-value ratio above 80%", engine.Above(mLTV, 80)),
		engine.Rule("breakEven", "Break-even occupancy above 85%", engine.Above(mBreakEven, 85)),
	}
)

// Axes returns the classification axes in evaluation order.
func Axes() []engine.Axis {
	return []engine.Axis{investmentGrade, riskLevel, marketPosition, marketRisk}
}

func investmentAxes() []engine.Axis {
	return append([]engine.Axis{investmentGrade, riskLevel}, cashFlowHealth...)
}

func marketAxes() []engine.Axis {
	return []engine.Axis{marketPosition, marketRisk}
}

// riskFactorAxes lists every axis whose advisories describe a risk factor.
func riskFactorAxes() []engine.Axis {
	return append([]engine.Axis{riskLevel}, riskFactors...)
}
