// Package flood prices NFIP and private flood insurance for a property, scores its
// flood risk and compares the two policy markets.
package flood

// Policy types.
const (
	PolicyNFIP    = "nfip"
	PolicyPrivate = "private"
)

// Flood zones in FEMA designation order.
var zones = []string{"X", "A", "AE", "AH", "AO", "AR", "A99", "V", "VE", "B", "C", "D"}

var (
	propertyTypes  = []string{"single-family", "multi-family", "condo", "commercial", "rental"}
	occupancyTypes = []string{"primary-residence", "secondary-home", "rental", "business"}
)

// Inputs is the input record of the flood insurance calculator.
type Inputs struct {
	PropertyValue    float64 `json:"propertyValue" yaml:"propertyValue"`
	BuildingCoverage float64 `json:"buildingCoverage" yaml:"buildingCoverage"`
	ContentsCoverage float64 `json:"contentsCoverage" yaml:"contentsCoverage"`
	ReplacementCost  float64 `json:"replacementCost" yaml:"replacementCost"`

	BuildingDeductible float64 `json:"buildingDeductible" yaml:"buildingDeductible"`
	ContentsDeductible float64 `json:"contentsDeductible" yaml:"contentsDeductible"`

	FloodZone            string  `json:"floodZone" yaml:"floodZone"`
	PropertyElevation    float64 `json:"propertyElevation" yaml:"propertyElevation"`
	BaseFloodElevation   float64 `json:"baseFloodElevation" yaml:"baseFloodElevation"`
	ElevationCertificate bool    `json:"elevationCertificate" yaml:"elevationCertificate"`

	CoastalLocation bool `json:"coastalLocation" yaml:"coastalLocation"`
	// DistanceToWater is in feet. Zero means unknown.
	DistanceToWater        float64 `json:"distanceToWater" yaml:"distanceToWater"`
	FloodHistory           bool    `json:"floodHistory" yaml:"floodHistory"`
	NumberOfPreviousClaims int     `json:"numberOfPreviousClaims" yaml:"numberOfPreviousClaims"`

	PropertyType  string `json:"propertyType" yaml:"propertyType"`
	OccupancyType string `json:"occupancyType" yaml:"occupancyType"`

	PolicyType string `json:"policyType" yaml:"policyType"`
	// CommunityRating is the NFIP Community Rating System class, 1 (best) to 10.
	CommunityRating    int      `json:"communityRating" yaml:"communityRating"`
	MitigationMeasures []string `json:"mitigationMeasures" yaml:"mitigationMeasures"`
	Discounts          []string `json:"discounts" yaml:"discounts"`
	Surcharges         []string `json:"surcharges" yaml:"surcharges"`

	AgentFee       float64 `json:"agentFee" yaml:"agentFee"`
	InspectionFee  float64 `json:"inspectionFee" yaml:"inspectionFee"`
	ApplicationFee float64 `json:"applicationFee" yaml:"applicationFee"`

	MonthlyBudget float64 `json:"monthlyBudget" yaml:"monthlyBudget"`
	PropertySize  float64 `json:"propertySize" yaml:"propertySize"`
	YearBuilt     int     `json:"yearBuilt" yaml:"yearBuilt"`

	AnalysisPeriod int     `json:"analysisPeriod" yaml:"analysisPeriod"`
	InflationRate  float64 `json:"inflationRate" yaml:"inflationRate"`
}

// Defaults returns a single-family primary residence in zone AE, two feet above BFE.
func Defaults() Inputs {
	return Inputs{
		PropertyValue:    350000,
		BuildingCoverage: 250000,
		ContentsCoverage: 100000,
		ReplacementCost:  350000,

		BuildingDeductible: 1000,
		ContentsDeductible: 1000,

		FloodZone:            "AE",
		PropertyElevation:    12,
		BaseFloodElevation:   10,
		ElevationCertificate: true,

		DistanceToWater: 500,

		PropertyType:  "single-family",
		OccupancyType: "primary-residence",

		PolicyType:      PolicyNFIP,
		CommunityRating: 7,

		MonthlyBudget: 300,
		PropertySize:  2000,
		YearBuilt:     1995,

		AnalysisPeriod: 10,
		InflationRate:  2.5,
	}
}

func (in Inputs) fees() float64 {
	return in.AgentFee + in.InspectionFee + in.ApplicationFee
}

// elevationDifference is the height of the lowest floor above BFE. It is only known
// with an elevation certificate.
func (in Inputs) elevationDifference() (float64, bool) {
	if !in.ElevationCertificate {
		return 0, false
	}
	return in.PropertyElevation - in.BaseFloodElevation, true
}
