package flood

import "strings"

// Base premium rates per $100 of coverage by zone. Building and contents share a table.
var (
	nfipRates = map[string]float64{
		"X": 0.25, "A": 1.25, "AE": 1.25, "AH": 1.25, "AO": 1.25, "AR": 1.25, "A99": 1.25,
		"V": 1.75, "VE": 1.75, "B": 0.65, "C": 0.65, "D": 1.25,
	}
	privateRates = map[string]float64{
		"X": 0.15, "A": 0.85, "AE": 0.85, "AH": 0.85, "AO": 0.85, "AR": 0.85, "A99": 0.85,
		"V": 1.25, "VE": 1.25, "B": 0.45, "C": 0.45, "D": 0.85,
	}
)

var (
	propertyFactors = map[string]float64{
		"single-family": 1.0,
		"multi-family":  1.2,
		"condo":         1.1,
		"commercial":    1.5,
		"rental":        1.3,
	}
	occupancyFactors = map[string]float64{
		"primary-residence": 1.0,
		"secondary-home":    1.25,
		"rental":            1.15,
		"business":          1.4,
	}
)

type limits struct {
	building, contents float64
}

var (
	nfipLimits    = limits{building: 250_000, contents: 100_000}
	privateLimits = limits{building: 1_000_000, contents: 500_000}
)

type market struct {
	rates          map[string]float64
	defaultRate    float64
	limits         limits
	minBuilding    float64
	minContents    float64
	riskAdjusted   bool
	ratedByFactors bool
}

var markets = map[string]market{
	PolicyNFIP: {
		rates: nfipRates, defaultRate: 1.25, limits: nfipLimits,
		minBuilding: 600, minContents: 150, ratedByFactors: true,
	},
	PolicyPrivate: {
		rates: privateRates, defaultRate: 0.85, limits: privateLimits,
		minBuilding: 300, minContents: 100, riskAdjusted: true,
	},
}

// Premium discounts as a share of the base premium.
var mitigationDiscounts = map[string]float64{
	"elevated-foundation": 0.15,
	"flood-walls":         0.20,
	"sump-pump":           0.10,
	"backflow-valve":      0.08,
	"waterproofing":       0.12,
}

var policyDiscounts = map[string]float64{
	"elevation-discount": 0.15,
	"loyalty-discount":   0.05,
	"multi-policy":       0.10,
}

// Surcharges are either a flat dollar amount or a share of the base premium.
var surchargeRates = map[string]struct{ flat, share float64 }{
	"late-fee":           {flat: 25},
	"administrative-fee": {share: 0.05},
	"risk-surcharge":     {share: 0.10},
	"coastal-surcharge":  {share: 0.15},
}

var (
	mitigationOptions = []string{"elevated-foundation", "flood-walls", "sump-pump", "backflow-valve", "waterproofing"}
	discountOptions   = []string{"elevation-discount", "loyalty-discount", "multi-policy"}
	surchargeOptions  = []string{"late-fee", "administrative-fee", "risk-surcharge", "coastal-surcharge"}
)

// crsDiscountStep is the discount earned per CRS class below 10.
const crsDiscountStep = 0.05

func highRiskZone(zone string) bool {
	return strings.HasPrefix(zone, "A") || strings.HasPrefix(zone, "V")
}

func coastalZone(zone string) bool {
	return zone == "V" || zone == "VE"
}

func moderateZone(zone string) bool {
	return zone == "B" || zone == "C"
}

// zoneWeight is the flood zone contribution to the 1-10 risk score.
func zoneWeight(zone string) float64 {
	switch {
	case coastalZone(zone):
		return 6
	case highRiskZone(zone):
		return 4
	case zone == "D":
		return 3
	case moderateZone(zone):
		return 2
	}
	return 0
}

// elevationFactor scales the NFIP building premium by height relative to BFE.
func elevationFactor(in Inputs) float64 {
	diff, ok := in.elevationDifference()
	switch {
	case !ok:
		return 1.0
	case diff >= 2:
		return 0.5
	case diff >= 1:
		return 0.7
	case diff >= 0:
		return 0.9
	case diff >= -1:
		return 1.2
	case diff >= -2:
		return 1.5
	}
	return 2.0
}

func zoneDescription(zone string) string {
	switch {
	case zone == "X":
		return "Low Risk - Minimal flood hazard area"
	case coastalZone(zone):
		return "High Risk - Coastal flood hazard area"
	case highRiskZone(zone):
		return "High Risk - Special flood hazard area"
	case moderateZone(zone):
		return "Moderate Risk - Shallow flooding area"
	case zone == "D":
		return "Undetermined Risk - Unstudied area"
	}
	return "Unknown Risk - Zone not specified"
}
