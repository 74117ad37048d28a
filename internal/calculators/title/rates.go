package title

import "strings"

// rateTier is a premium rate per $1,000 of coverage up to a coverage ceiling.
type rateTier struct {
	upTo float64
	rate float64
}

var (
	ownersTiers  = []rateTier{{100_000, 3.5}, {500_000, 2.5}, {1_000_000, 2.0}}
	lendersTiers = []rateTier{{100_000, 2.0}, {500_000, 1.5}, {1_000_000, 1.2}}
)

const (
	ownersTopRate  = 1.5
	lendersTopRate = 1.0
)

// basePremium prices the whole coverage at the rate of the tier it falls in.
func basePremium(coverage float64, tiers []rateTier, topRate float64) float64 {
	rate := topRate
	for _, t := range tiers {
		if coverage <= t.upTo {
			rate = t.rate
			break
		}
	}
	return coverage / 1000 * rate
}

func ownersPremium(coverage float64) float64 {
	return basePremium(coverage, ownersTiers, ownersTopRate)
}

func lendersPremium(coverage float64) float64 {
	return basePremium(coverage, lendersTiers, lendersTopRate)
}

var stateAdjustments = map[string]float64{
	"ca": 1.2,
	"ny": 1.3,
	"fl": 1.1,
	"tx": 0.9,
}

func stateAdjustment(state string) float64 {
	if adj, ok := stateAdjustments[normalizeState(state)]; ok {
		return adj
	}
	return 1.0
}

func normalizeState(state string) string {
	return strings.ToLower(strings.TrimSpace(state))
}

var transactionMultipliers = map[string]float64{
	"purchase":     1.0,
	"refinance":    0.8,
	"construction": 1.2,
	"equity-line":  0.9,
}

var propertyMultipliers = map[string]float64{
	"single-family": 1.0,
	"condo":         0.9,
	"townhouse":     1.0,
	"multi-family":  1.3,
	"commercial":    1.5,
	"land":          1.2,
}

// riskFactor is the premium multiplier and the risk score points of one title risk.
type riskFactor struct {
	multiplier float64
	points     float64
}

var (
	knownIssueRisks = map[string]riskFactor{
		"easements":         {1.1, 10},
		"liens":             {1.3, 20},
		"encroachments":     {1.2, 15},
		"boundary-disputes": {1.4, 25},
		"multiple":          {1.5, 30},
	}
	claimRisks = map[string]riskFactor{
		"one":      {1.2, 15},
		"multiple": {1.5, 25},
	}
	chainRisks = map[string]riskFactor{
		"moderate":     {1.1, 10},
		"complex":      {1.3, 20},
		"very-complex": {1.6, 30},
	}
	propertyRiskPoints = map[string]float64{
		"multi-family": 10,
		"commercial":   15,
		"land":         5,
	}
)

var endorsementCosts = map[string]float64{
	"survey": 150,
	"access": 100,
	"zoning": 200,
	"condo":  125,
}

// extendedShares scale the extended coverage base cost of 0.1% of coverage.
var extendedShares = map[string]float64{
	"basic":    0.5,
	"enhanced": 1.0,
	"premium":  1.5,
}

var searchFees = map[string]float64{
	"standard":      300,
	"extended":      500,
	"comprehensive": 800,
}

const (
	surveyFee         = 400
	abstractFee       = 250
	baseSettlementFee = 500
)

var escrowFees = map[string]float64{
	"basic":  300,
	"full":   600,
	"custom": 800,
}

func lookup(table map[string]float64, key string, fallback float64) float64 {
	if v, ok := table[key]; ok {
		return v
	}
	return fallback
}
