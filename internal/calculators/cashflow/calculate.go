package cashflow

import (
	"math"

	"github.com/iwvelando/property-calculators/internal/engine"
	"github.com/iwvelando/property-calculators/pkg/constants"
	"github.com/iwvelando/property-calculators/pkg/loans"
	"github.com/iwvelando/property-calculators/pkg/mathutil"
)

// buildingShare is the portion of the purchase price that is depreciable.
const buildingShare = 0.8

// ExpenseItem is one line of the operating expense breakdown.
type ExpenseItem struct {
	Category   string  `json:"category"`
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
}

// ProjectionYear is one year of the cash flow projection.
type ProjectionYear struct {
	Year               int     `json:"year"`
	RentalIncome       float64 `json:"rentalIncome"`
	OperatingExpenses  float64 `json:"operatingExpenses"`
	NetOperatingIncome float64 `json:"netOperatingIncome"`
	DebtService        float64 `json:"debtService"`
	CashFlow           float64 `json:"cashFlow"`
	CumulativeCashFlow float64 `json:"cumulativeCashFlow"`
	PropertyValue      float64 `json:"propertyValue"`
	LoanBalance        float64 `json:"loanBalance"`
	Equity             float64 `json:"equity"`
}

// InvestmentAnalysis holds the grade and risk classifications with their advice.
type InvestmentAnalysis struct {
	InvestmentGrade string   `json:"investmentGrade"`
	RiskLevel       string   `json:"riskLevel"`
	Recommendations []string `json:"recommendations"`
	RiskFactors     []string `json:"riskFactors"`
}

// MarketAnalysis compares the property with its market.
type MarketAnalysis struct {
	MarketPosition       string   `json:"marketPosition"`
	MarketRisk           string   `json:"marketRisk"`
	RentToMarket         float64  `json:"rentToMarket"`
	CapRateSpread        float64  `json:"capRateSpread"`
	ExpenseRatioVsMarket float64  `json:"expenseRatioVsMarket"`
	Recommendations      []string `json:"recommendations"`
}

// Outputs is the full result of the cash flow calculator.
type Outputs struct {
	GrossRentalIncome      float64 `json:"grossRentalIncome"`
	VacancyLoss            float64 `json:"vacancyLoss"`
	OtherIncome            float64 `json:"otherIncome"`
	EffectiveGrossIncome   float64 `json:"effectiveGrossIncome"`
	TotalOperatingExpenses float64 `json:"totalOperatingExpenses"`
	NetOperatingIncome     float64 `json:"netOperatingIncome"`

	MonthlyPayment    float64 `json:"monthlyPayment"`
	AnnualDebtService float64 `json:"annualDebtService"`
	CashFlowBeforeTax float64 `json:"cashFlowBeforeTax"`
	MonthlyCashFlow   float64 `json:"monthlyCashFlow"`
	TotalInvestment   float64 `json:"totalInvestment"`

	CashOnCashReturn         float64 `json:"cashOnCashReturn"`
	CapRate                  float64 `json:"capRate"`
	ExpenseRatio             float64 `json:"expenseRatio"`
	DebtServiceCoverageRatio float64 `json:"debtServiceCoverageRatio"`
	BreakEvenOccupancy       float64 `json:"breakEvenOccupancy"`
	LoanToValue              float64 `json:"loanToValue"`
	GrossRentMultiplier      float64 `json:"grossRentMultiplier"`

	AnnualDepreciation float64 `json:"annualDepreciation"`
	FirstYearInterest  float64 `json:"firstYearInterest"`
	FirstYearPrincipal float64 `json:"firstYearPrincipal"`
	TaxableIncome      float64 `json:"taxableIncome"`
	IncomeTax          float64 `json:"incomeTax"`
	CashFlowAfterTax   float64 `json:"cashFlowAfterTax"`
	ReturnOnInvestment float64 `json:"returnOnInvestment"`

	ExpenseBreakdown   []ExpenseItem          `json:"expenseBreakdown"`
	Projections        []ProjectionYear       `json:"projections"`
	Amortization       []loans.ScheduleYear   `json:"amortization"`
	InvestmentAnalysis InvestmentAnalysis     `json:"investmentAnalysis"`
	MarketAnalysis     MarketAnalysis         `json:"marketAnalysis"`
	Rows               []engine.ProjectionRow `json:"-"`
}

// Calculate validates the inputs and computes every output.
func Calculate(in Inputs) (Outputs, error) {
	if _, err := schema.Validate(in); err != nil {
		return Outputs{}, err
	}
	return compute(in), nil
}

func compute(in Inputs) Outputs {
	var out Outputs

	out.GrossRentalIncome = in.MonthlyRent * constants.MonthsPerYear
	out.VacancyLoss = mathutil.ApplyPercentage(out.GrossRentalIncome, in.VacancyRate)
	out.OtherIncome = in.OtherIncome * constants.MonthsPerYear
	out.EffectiveGrossIncome = out.GrossRentalIncome - out.VacancyLoss + out.OtherIncome

	categories := in.expenseCategories()
	for _, item := range categories {
		out.TotalOperatingExpenses += item.Amount
	}
	out.ExpenseBreakdown = make([]ExpenseItem, 0, len(categories))
	for _, item := range categories {
		if item.Amount == 0 {
			continue
		}
		item.Percentage = mathutil.CalculatePercentage(item.Amount, out.TotalOperatingExpenses)
		out.ExpenseBreakdown = append(out.ExpenseBreakdown, item)
	}
	out.NetOperatingIncome = out.EffectiveGrossIncome - out.TotalOperatingExpenses

	schedule := amortization(in)
	if in.LoanAmount > 0 && in.LoanTerm > 0 {
		out.MonthlyPayment = loans.MonthlyPayment(in.LoanAmount, in.InterestRate, in.LoanTerm)
	}
	out.AnnualDebtService = out.MonthlyPayment * constants.MonthsPerYear
	out.CashFlowBeforeTax = out.NetOperatingIncome - out.AnnualDebtService
	out.MonthlyCashFlow = out.CashFlowBeforeTax / constants.MonthsPerYear
	out.TotalInvestment = in.DownPayment + in.ClosingCosts + in.Points + in.EscrowAccount + in.PrepaidItems

	out.CashOnCashReturn = mathutil.CalculatePercentage(out.CashFlowBeforeTax, out.TotalInvestment)
	out.CapRate = mathutil.CalculatePercentage(out.NetOperatingIncome, in.PropertyValue)
	out.ExpenseRatio = mathutil.CalculatePercentage(out.TotalOperatingExpenses, out.EffectiveGrossIncome)
	out.DebtServiceCoverageRatio = mathutil.SafeDivide(out.NetOperatingIncome, out.AnnualDebtService)
	out.BreakEvenOccupancy = mathutil.CalculatePercentage(out.TotalOperatingExpenses+out.AnnualDebtService, out.GrossRentalIncome)
	out.LoanToValue = mathutil.CalculatePercentage(in.LoanAmount, in.PropertyValue)
	out.GrossRentMultiplier = mathutil.SafeDivide(in.PurchasePrice, out.GrossRentalIncome)

	if len(schedule) > 0 {
		out.FirstYearInterest = schedule[0].Interest
		out.FirstYearPrincipal = schedule[0].Principal
	}
	out.AnnualDepreciation = mathutil.SafeDivide(in.PurchasePrice*buildingShare, in.DepreciationPeriod)
	out.TaxableIncome = out.NetOperatingIncome - out.FirstYearInterest - out.AnnualDepreciation
	out.IncomeTax = mathutil.ApplyPercentage(mathutil.Max(0, out.TaxableIncome), in.TaxRate)
	out.CashFlowAfterTax = out.CashFlowBeforeTax - out.IncomeTax

	firstYearAppreciation := mathutil.ApplyPercentage(in.PropertyValue, in.AppreciationRate)
	out.ReturnOnInvestment = mathutil.CalculatePercentage(
		out.CashFlowBeforeTax+out.FirstYearPrincipal+firstYearAppreciation, out.TotalInvestment)

	out.Rows = engine.Project(GrowthMappings(in, out), in.AnalysisPeriod)
	out.Projections = projectionYears(out.Rows, schedule)
	out.Amortization = schedule
	if len(out.Amortization) > in.AnalysisPeriod {
		out.Amortization = out.Amortization[:in.AnalysisPeriod]
	}

	metrics := Metrics(in, out)
	out.InvestmentAnalysis = InvestmentAnalysis{
		InvestmentGrade: engine.Classify(investmentGrade, metrics).Label,
		RiskLevel:       engine.Classify(riskLevel, metrics).Label,
		Recommendations: engine.Recommend(investmentAxes(), metrics),
		RiskFactors:     engine.Recommend(riskFactorAxes(), metrics),
	}
	out.MarketAnalysis = MarketAnalysis{
		MarketPosition:       engine.Classify(marketPosition, metrics).Label,
		MarketRisk:           engine.Classify(marketRisk, metrics).Label,
		RentToMarket:         metrics[mRentToMarket],
		CapRateSpread:        metrics[mCapSpread],
		ExpenseRatioVsMarket: metrics[mExpenseVsMarket],
		Recommendations:      engine.Recommend(marketAxes(), metrics),
	}

	return finite(out)
}

// Metrics exposes the numeric view read by the threshold tables.
func Metrics(in Inputs, out Outputs) engine.Metrics {
	return engine.Metrics{
		mCashOnCash:      out.CashOnCashReturn,
		mCapRate:         out.CapRate,
		mDSCR:            out.DebtServiceCoverageRatio,
		mExpenseRatio:    out.ExpenseRatio,
		mVacancy:         in.VacancyRate,
		mRentToMarket:    mathutil.CalculatePercentage(in.MonthlyRent, in.MarketRent),
		mCapSpread:       out.CapRate - in.MarketCapRate,
		mMarketVacancy:   in.MarketVacancy,
		mExpenseVsMarket: out.ExpenseRatio - in.MarketExpenses,
		mAnnualCashFlow:  out.CashFlowBeforeTax,
		mLTV:             out.LoanToValue,
		mBreakEven:       out.BreakEvenOccupancy,
	}
}

// GrowthMappings builds the projected components from the first-year figures.
func GrowthMappings(in Inputs, out Outputs) []engine.Component {
	loanYears := int(math.Ceil(in.LoanTerm))
	return []engine.Component{
		{Name: "rentalIncome", Base: out.GrossRentalIncome, RatePercent: in.RentGrowthRate, Flow: engine.Inflow},
		{Name: "otherIncome", Base: out.OtherIncome, RatePercent: in.RentGrowthRate, Flow: engine.Inflow},
		{Name: "vacancyLoss", Base: out.VacancyLoss, RatePercent: in.RentGrowthRate, Flow: engine.Outflow},
		{Name: "operatingExpenses", Base: out.TotalOperatingExpenses, RatePercent: in.InflationRate, Flow: engine.Outflow},
		{Name: "debtService", Base: out.AnnualDebtService, Flow: engine.Outflow, Span: loanYears},
		{Name: "propertyValue", Base: in.PropertyValue, RatePercent: in.AppreciationRate, Flow: engine.Memo},
	}
}

func amortization(in Inputs) []loans.ScheduleYear {
	if in.LoanAmount <= 0 || in.LoanTerm <= 0 {
		return []loans.ScheduleYear{}
	}
	schedule, err := loans.NewAmortizationScheduleGenerator(nil).GenerateYearlySchedule(in.LoanAmount, in.InterestRate, in.LoanTerm)
	if err != nil {
		return []loans.ScheduleYear{}
	}
	return schedule
}

func projectionYears(rows []engine.ProjectionRow, schedule []loans.ScheduleYear) []ProjectionYear {
	years := make([]ProjectionYear, 0, len(rows))
	for _, row := range rows {
		rental := row.Value("rentalIncome") + row.Value("otherIncome") - row.Value("vacancyLoss")
		balance := 0.0
		if row.Period <= len(schedule) {
			balance = schedule[row.Period-1].EndingBalance
		}
		value := row.Value("propertyValue")
		years = append(years, ProjectionYear{
			Year:               row.Period,
			RentalIncome:       rental,
			OperatingExpenses:  row.Value("operatingExpenses"),
			NetOperatingIncome: rental - row.Value("operatingExpenses"),
			DebtService:        row.Value("debtService"),
			CashFlow:           row.Net,
			CumulativeCashFlow: row.Cumulative,
			PropertyValue:      value,
			LoanBalance:        balance,
			Equity:             value - balance,
		})
	}
	return years
}

func finite(out Outputs) Outputs {
	for _, p := range []*float64{
		&out.GrossRentalIncome, &out.VacancyLoss, &out.OtherIncome, &out.EffectiveGrossIncome,
		&out.TotalOperatingExpenses, &out.NetOperatingIncome, &out.MonthlyPayment, &out.AnnualDebtService,
		&out.CashFlowBeforeTax, &out.MonthlyCashFlow, &out.TotalInvestment, &out.CashOnCashReturn,
		&out.CapRate, &out.ExpenseRatio, &out.DebtServiceCoverageRatio, &out.BreakEvenOccupancy,
		&out.LoanToValue, &out.GrossRentMultiplier, &out.AnnualDepreciation, &out.FirstYearInterest,
		&out.FirstYearPrincipal, &out.TaxableIncome, &out.IncomeTax, &out.CashFlowAfterTax,
		&out.ReturnOnInvestment,
	} {
		*p = mathutil.Finite(*p)
	}
	return out
}
