// internal/vendors/seed.go
package vendors

import "upkept-workers/internal/models"

func availability(score float64) *float64 {
	return &score
}

func austin() *models.ServiceArea {
	return &models.ServiceArea{City: "Austin", State: "TX", RadiusMiles: 40}
}

// DefaultVendors returns the seed catalog: public directory data gathered
// for the Austin, TX service area plus a few out-of-area and remote firms.
func DefaultVendors() []models.Vendor {
	return []models.Vendor{
		{
			ID:                "v-hvac-1",
			Name:              "AirPro Comfort Solutions",
			Specialty:         []string{"hvac", "heating", "cooling", "air_quality"},
			Categories:        []models.ServiceCategory{models.CategoryHVAC},
			Services:          []string{"HVAC tune-up", "AC service", "furnace inspection", "indoor air quality testing"},
			Rating:            4.8,
			ReviewCount:       312,
			PriceRange:        models.PriceMedium,
			ReliabilityScore:  92,
			Sources:           []string{"Yelp", "Google Maps", "BBB Accredited"},
			EstimatedPrice:    285,
			Availability:      "3-5 business days",
			AvailabilityScore: availability(0.6),
			Location:          "Austin, TX",
			YearsInBusiness:   14,
			Licensed:          true,
			Insured:           true,
			ServiceArea:       austin(),
			BBBStatus:         "accredited",
		},
		{
			ID:                "v-hvac-2",
			Name:              "TempRight Systems",
			Specialty:         []string{"hvac", "heating", "cooling"},
			Categories:        []models.ServiceCategory{models.CategoryHVAC},
			Services:          []string{"AC repair", "heat pump service", "seasonal maintenance"},
			Rating:            4.5,
			ReviewCount:       189,
			PriceRange:        models.PriceLow,
			ReliabilityScore:  83,
			Sources:           []string{"Google Maps", "HomeAdvisor"},
			EstimatedPrice:    210,
			Availability:      "1-2 business days",
			AvailabilityScore: availability(0.85),
			Location:          "Austin, TX",
			YearsInBusiness:   6,
			Licensed:          true,
			Insured:           true,
			ServiceArea:       austin(),
		},
		{
			ID:                "v-hvac-3",
			Name:              "Elite Climate Control",
			Specialty:         []string{"hvac", "commercial", "residential"},
			Categories:        []models.ServiceCategory{models.CategoryHVAC},
			Services:          []string{"commercial HVAC tune-up", "rooftop unit service", "furnace inspection", "seasonal maintenance"},
			Rating:            4.9,
			ReviewCount:       540,
			PriceRange:        models.PriceHigh,
			ReliabilityScore:  97,
			Sources:           []string{"Yelp", "Google Maps", "Angi", "BBB Accredited"},
			EstimatedPrice:    420,
			Availability:      "7-10 business days",
			AvailabilityScore: availability(0.3),
			Location:          "Austin, TX",
			YearsInBusiness:   22,
			Licensed:          true,
			Insured:           true,
			ServiceArea:       austin(),
			BBBStatus:         "accredited",
		},
		{
			ID:                "v-plumb-1",
			Name:              "FlowStar Plumbing",
			Specialty:         []string{"plumbing", "water_heater", "pipes"},
			Categories:        []models.ServiceCategory{models.CategoryPlumbing},
			Services:          []string{"water heater replacement", "tankless installation", "leak repair"},
			Rating:            4.7,
			ReviewCount:       428,
			PriceRange:        models.PriceMedium,
			ReliabilityScore:  90,
			Sources:           []string{"Yelp", "Google Maps", "BBB Accredited"},
			EstimatedPrice:    1450,
			Availability:      "2-4 business days",
			AvailabilityScore: availability(0.7),
			Location:          "Austin, TX",
			YearsInBusiness:   18,
			Licensed:          true,
			Insured:           true,
			ServiceArea:       austin(),
			BBBStatus:         "accredited",
		},
		{
			ID:                "v-plumb-2",
			Name:              "AquaTech Plumbing",
			Specialty:         []string{"plumbing", "water_heater", "water_treatment"},
			Categories:        []models.ServiceCategory{models.CategoryPlumbing},
			Services:          []string{"hot water tank", "water softener install", "drain cleaning"},
			Rating:            4.4,
			ReviewCount:       203,
			PriceRange:        models.PriceLow,
			ReliabilityScore:  80,
			Sources:           []string{"Google Maps", "Thumbtack"},
			EstimatedPrice:    1200,
			Availability:      "Next day",
			AvailabilityScore: availability(0.9),
			Location:          "Austin, TX",
			YearsInBusiness:   5,
			Licensed:          true,
			Insured:           false,
			ServiceArea:       austin(),
		},
		{
			ID:                "v-plumb-3",
			Name:              "QuickFix Plumbing Co",
			Specialty:         []string{"plumbing", "water_heater"},
			Categories:        []models.ServiceCategory{models.CategoryPlumbing},
			Services:          []string{"water heater replacement", "emergency plumbing"},
			Rating:            4.9,
			ReviewCount:       6,
			PriceRange:        models.PriceLow,
			ReliabilityScore:  78,
			Sources:           []string{"Thumbtack"},
			EstimatedPrice:    950,
			Availability:      "Same day",
			AvailabilityScore: availability(1.0),
			Location:          "Round Rock, TX",
			YearsInBusiness:   1,
			Licensed:          true,
			Insured:           true,
		},
		{
			ID:                "v-roof-1",
			Name:              "SteelCap Roofing",
			Specialty:         []string{"roofing", "inspection", "repair", "replacement"},
			Categories:        []models.ServiceCategory{models.CategoryRoofing},
			Services:          []string{"roof inspection", "leak detection", "shingle repair"},
			Rating:            4.6,
			ReviewCount:       267,
			PriceRange:        models.PriceMedium,
			ReliabilityScore:  88,
			Sources:           []string{"Yelp", "Google Maps", "BBB Accredited"},
			EstimatedPrice:    350,
			Availability:      "3-7 business days",
			AvailabilityScore: availability(0.55),
			Location:          "Austin, TX",
			YearsInBusiness:   11,
			Licensed:          true,
			Insured:           true,
			ServiceArea:       austin(),
			BBBStatus:         "accredited",
		},
		{
			ID:                "v-roof-2",
			Name:              "PinnaclePro Roofing",
			Specialty:         []string{"roofing", "gutters", "siding"},
			Categories:        []models.ServiceCategory{models.CategoryRoofing},
			Services:          []string{"roof replacement", "gutter cleaning", "structural inspection"},
			Rating:            4.8,
			ReviewCount:       389,
			PriceRange:        models.PriceHigh,
			ReliabilityScore:  95,
			Sources:           []string{"Yelp", "Google Maps", "Angi", "BBB A+ Rating"},
			EstimatedPrice:    480,
			Availability:      "5-10 business days",
			AvailabilityScore: availability(0.35),
			Location:          "Austin, TX",
			YearsInBusiness:   19,
			Licensed:          true,
			Insured:           true,
			ServiceArea:       austin(),
			BBBStatus:         "A+",
		},
		{
			ID:               "v-roof-3",
			Name:             "Red River Roofing",
			Specialty:        []string{"roofing", "storm_damage"},
			Categories:       []models.ServiceCategory{models.CategoryRoofing},
			Services:         []string{"roof inspection", "hail damage repair"},
			Rating:           4.7,
			ReviewCount:      221,
			PriceRange:       models.PriceLow,
			ReliabilityScore: 90,
			Sources:          []string{"Google Maps", "Angi"},
			EstimatedPrice:   300,
			Availability:     "1-2 weeks",
			Location:         "Oklahoma City, OK",
			YearsInBusiness:  9,
			Licensed:         true,
			Insured:          true,
			ServiceArea:      &models.ServiceArea{City: "Oklahoma City", State: "OK", RadiusMiles: 60},
		},
		{
			ID:                "v-elec-1",
			Name:              "Volt Masters Electric",
			Specialty:         []string{"electrical", "panel_upgrade", "wiring", "inspection"},
			Categories:        []models.ServiceCategory{models.CategoryElectrical},
			Services:          []string{"electrical panel inspection", "breaker panel replacement", "load capacity test"},
			Rating:            4.7,
			ReviewCount:       356,
			PriceRange:        models.PriceMedium,
			ReliabilityScore:  91,
			Sources:           []string{"Yelp", "Google Maps", "BBB Accredited"},
			EstimatedPrice:    2200,
			Availability:      "5-7 business days",
			AvailabilityScore: availability(0.45),
			Location:          "Austin, TX",
			YearsInBusiness:   16,
			Licensed:          true,
			Insured:           true,
			ServiceArea:       austin(),
			BBBStatus:         "accredited",
		},
		{
			ID:                "v-fire-1",
			Name:              "SafeGuard Fire Services",
			Specialty:         []string{"fire_inspection", "smoke_detector", "fire_extinguisher", "compliance"},
			Categories:        []models.ServiceCategory{models.CategoryFireSafety, models.CategoryCompliance},
			Services:          []string{"fire alarm testing", "smoke detector inspection", "fire marshal inspection", "extinguisher recharge"},
			Rating:            4.9,
			ReviewCount:       512,
			PriceRange:        models.PriceLow,
			ReliabilityScore:  96,
			Sources:           []string{"Google Maps", "BBB Accredited", "State Fire Marshal Directory"},
			EstimatedPrice:    175,
			Availability:      "Next available",
			AvailabilityScore: availability(0.8),
			Location:          "Austin, TX",
			YearsInBusiness:   24,
			Licensed:          true,
			Insured:           true,
			ServiceArea:       austin(),
			BBBStatus:         "accredited",
		},
		{
			ID:                "v-it-1",
			Name:              "ClearPath IT Solutions",
			Specialty:         []string{"ssl", "web_security", "domain", "backup", "digital_compliance"},
			Categories:        []models.ServiceCategory{models.CategoryITSecurity, models.CategoryITOps},
			Services:          []string{"SSL renewal", "TLS certificate", "backup verification", "domain management"},
			Rating:            4.6,
			ReviewCount:       144,
			PriceRange:        models.PriceLow,
			ReliabilityScore:  89,
			Sources:           []string{"Clutch", "Google Maps", "Upwork Profile"},
			EstimatedPrice:    120,
			Availability:      "Same day",
			AvailabilityScore: availability(1.0),
			Location:          "Remote / Austin, TX",
			YearsInBusiness:   8,
			Licensed:          true,
			Insured:           true,
		},
		{
			ID:                "v-itops-1",
			Name:              "StackWatch Managed IT",
			Specialty:         []string{"managed_it", "monitoring", "disaster_recovery"},
			Categories:        []models.ServiceCategory{models.CategoryITOps},
			Services:          []string{"AWS S3 restore test", "disaster recovery test", "retention policy audit"},
			Rating:            4.5,
			ReviewCount:       87,
			PriceRange:        models.PriceMedium,
			ReliabilityScore:  86,
			Sources:           []string{"Clutch", "G2"},
			EstimatedPrice:    240,
			Availability:      "1-2 business days",
			AvailabilityScore: availability(0.85),
			Location:          "Remote",
			YearsInBusiness:   7,
			Licensed:          false,
			Insured:           true,
		},
		{
			ID:               "v-legal-1",
			Name:             "CompliancePro Advisors",
			Specialty:        []string{"business_license", "gdpr", "regulatory_compliance", "documentation"},
			Categories:       []models.ServiceCategory{models.CategoryCompliance},
			Services:         []string{"business license renewal", "compliance audit", "GDPR review"},
			Rating:           4.7,
			ReviewCount:      98,
			PriceRange:       models.PriceMedium,
			ReliabilityScore: 93,
			Sources:          []string{"LinkedIn", "Google Maps", "Bar Association"},
			EstimatedPrice:   350,
			Availability:     "2-3 business days",
			Location:         "Austin, TX",
			YearsInBusiness:  12,
			Licensed:         true,
			Insured:          true,
		},
	}
}
