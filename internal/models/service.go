// internal/models/service.go
package models

// ServiceCategory is the typed service taxonomy shared by vendors and task templates.
type ServiceCategory string

const (
	CategoryHVAC       ServiceCategory = "hvac"
	CategoryPlumbing   ServiceCategory = "plumbing"
	CategoryElectrical ServiceCategory = "electrical"
	CategoryRoofing    ServiceCategory = "roofing"
	CategoryFireSafety ServiceCategory = "fire_safety"
	CategoryITSecurity ServiceCategory = "it_security"
	CategoryITOps      ServiceCategory = "it_ops"
	CategoryCompliance ServiceCategory = "compliance"
	CategoryGeneral    ServiceCategory = "general"
)

// AllCategories lists every known category in declaration order.
var AllCategories = []ServiceCategory{
	CategoryHVAC,
	CategoryPlumbing,
	CategoryElectrical,
	CategoryRoofing,
	CategoryFireSafety,
	CategoryITSecurity,
	CategoryITOps,
	CategoryCompliance,
	CategoryGeneral,
}

// Valid reports whether c is one of the known categories.
func (c ServiceCategory) Valid() bool {
	for _, known := range AllCategories {
		if c == known {
			return true
		}
	}
	return false
}

type Urgency string

const (
	UrgencyEmergency Urgency = "emergency"
	UrgencyUrgent    Urgency = "urgent"
	UrgencyStandard  Urgency = "standard"
)

// ServiceProfile describes a unit of work that needs a vendor.
// Keywords are ordered; the first one is the primary search term.
type ServiceProfile struct {
	Category        ServiceCategory `json:"category"`
	Subcategory     string          `json:"subcategory,omitempty"`
	Keywords        []string        `json:"keywords"`
	Onsite          bool            `json:"onsite"`
	RequiresLicense []string        `json:"requiresLicense"`
	Urgency         Urgency         `json:"urgency"`
}

// PrimaryKeyword returns keywords[0], or "<category> service" when no keywords are set.
func (s ServiceProfile) PrimaryKeyword() string {
	if len(s.Keywords) > 0 {
		return s.Keywords[0]
	}
	return string(s.Category) + " service"
}

// RequiresCredentials reports whether the work is regulated.
func (s ServiceProfile) RequiresCredentials() bool {
	return len(s.RequiresLicense) > 0
}

// VendorSearchContext is where the work happens.
type VendorSearchContext struct {
	City         string `json:"city"`
	State        string `json:"state"`
	Zip          string `json:"zip,omitempty"`
	RadiusMiles  int    `json:"radiusMiles,omitempty"`
	PropertyType string `json:"propertyType,omitempty"`
}

type OptimizationMode string

const (
	ModeCost    OptimizationMode = "cost"
	ModeQuality OptimizationMode = "quality"
)

// Normalize maps anything other than "cost" to the default quality mode.
func (m OptimizationMode) Normalize() OptimizationMode {
	if m == ModeCost {
		return ModeCost
	}
	return ModeQuality
}

// VendorSearchRequest bundles everything a ranking call needs.
type VendorSearchRequest struct {
	Service ServiceProfile      `json:"service"`
	Context VendorSearchContext `json:"context"`
	Mode    OptimizationMode    `json:"mode"`
}
