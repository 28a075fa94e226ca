// internal/models/vendor.go
package models

type PriceRange string

const (
	PriceLow    PriceRange = "low"
	PriceMedium PriceRange = "medium"
	PriceHigh   PriceRange = "high"
)

// ServiceArea is the declared coverage of a vendor. When present it is
// preferred over parsing Vendor.Location.
type ServiceArea struct {
	City        string `json:"city,omitempty"`
	State       string `json:"state,omitempty"`
	RadiusMiles int    `json:"radiusMiles,omitempty"`
}

// Vendor is a catalog entry. Rating is 0-5 and ReliabilityScore is 0-100.
type Vendor struct {
	ID                string            `json:"id"`
	Name              string            `json:"name"`
	Specialty         []string          `json:"specialty"`
	Categories        []ServiceCategory `json:"categories,omitempty"`
	Services          []string          `json:"services,omitempty"`
	Rating            float64           `json:"rating"`
	ReviewCount       int               `json:"reviewCount"`
	PriceRange        PriceRange        `json:"priceRange"`
	ReliabilityScore  float64           `json:"reliabilityScore"`
	Sources           []string          `json:"sources"`
	EstimatedPrice    float64           `json:"estimatedPrice"`
	Availability      string            `json:"availability"`
	AvailabilityScore *float64          `json:"availabilityScore,omitempty"`
	Location          string            `json:"location"`
	YearsInBusiness   int               `json:"yearsInBusiness"`
	Licensed          bool              `json:"licensed"`
	Insured           bool              `json:"insured"`
	ServiceArea       *ServiceArea      `json:"serviceArea,omitempty"`
	BBBStatus         string            `json:"bbbStatus,omitempty"`

	// MatchScore caches the relevance score computed during a ranking call.
	MatchScore *float64 `json:"matchScore,omitempty"`
}

// HasCategory reports whether c is one of the vendor's typed categories.
func (v Vendor) HasCategory(c ServiceCategory) bool {
	for _, vc := range v.Categories {
		if vc == c {
			return true
		}
	}
	return false
}

// VendorScoreBreakdown holds the weighted total and each [0,1] component.
type VendorScoreBreakdown struct {
	Total        float64 `json:"total"`
	Relevance    float64 `json:"relevance"`
	Trust        float64 `json:"trust"`
	Compliance   float64 `json:"compliance"`
	Price        float64 `json:"price"`
	Availability float64 `json:"availability"`
}

type ScoredVendor struct {
	Vendor Vendor               `json:"vendor"`
	Score  VendorScoreBreakdown `json:"score"`
}
