package vendors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"upkept-workers/internal/models"
)

// ==========================
// Helpers
// ==========================

func rankScenario(service models.ServiceProfile, mode models.OptimizationMode) RankResult {
	c := DefaultCatalog()
	req := models.VendorSearchRequest{Service: service, Context: austinContext(), Mode: mode}
	return RankVendors(c.FindVendors(service), req, c.MarketPrice(string(service.Category)))
}

func roofService() models.ServiceProfile {
	return models.ServiceProfile{
		Category:        models.CategoryRoofing,
		Subcategory:     "inspection",
		Keywords:        []string{"roof inspection", "shingle assessment", "leak detection", "structural inspection"},
		Onsite:          true,
		RequiresLicense: []string{"Roofing Contractor"},
		Urgency:         models.UrgencyUrgent,
	}
}

// ==========================
// Seed Catalog Scenarios
// ==========================

func TestRankVendors_HVACQuality(t *testing.T) {
	res := rankScenario(hvacService(), models.ModeQuality)

	require.NotNil(t, res.Selected)
	assert.Equal(t, "v-hvac-1", res.Selected.ID)
	assert.Equal(t, []string{"v-hvac-3", "v-hvac-2"}, vendorIDs(res.Alternatives))

	require.Len(t, res.Scored, 3)
	assert.InDelta(t, 0.8777, res.Scored[0].Score.Total, 1e-4)
	assert.InDelta(t, 0.8661, res.Scored[1].Score.Total, 1e-4)
	assert.InDelta(t, 0.7864, res.Scored[2].Score.Total, 1e-4)

	require.NotNil(t, res.Selected.MatchScore)
	assert.InDelta(t, 0.9125, *res.Selected.MatchScore, 1e-9)
}

func TestRankVendors_HVACCost(t *testing.T) {
	res := rankScenario(hvacService(), models.ModeCost)

	require.NotNil(t, res.Selected)
	assert.Equal(t, "v-hvac-1", res.Selected.ID)
	assert.Equal(t, []string{"v-hvac-3", "v-hvac-2"}, vendorIDs(res.Alternatives))
	assert.InDelta(t, 0.8675, res.Scored[0].Score.Total, 1e-4)
}

func TestRankVendors_UrgentPlumbingDropsRiskyVendors(t *testing.T) {
	svc := models.ServiceProfile{
		Category:        models.CategoryPlumbing,
		Subcategory:     "water_heater_replacement",
		Keywords:        []string{"water heater replacement", "tankless installation", "hot water tank"},
		Onsite:          true,
		RequiresLicense: []string{"Plumber"},
		Urgency:         models.UrgencyUrgent,
	}

	res := rankScenario(svc, models.ModeQuality)

	// v-plumb-2 is uninsured and v-plumb-3 has too few reviews for urgent work
	require.NotNil(t, res.Selected)
	assert.Equal(t, "v-plumb-1", res.Selected.ID)
	assert.Empty(t, res.Alternatives)
	assert.NotNil(t, res.Alternatives)
	assert.Len(t, res.Scored, 1)
}

func TestRankVendors_RoofWinnerDependsOnMode(t *testing.T) {
	quality := rankScenario(roofService(), models.ModeQuality)
	require.NotNil(t, quality.Selected)
	assert.Equal(t, "v-roof-1", quality.Selected.ID)
	assert.Equal(t, []string{"v-roof-2"}, vendorIDs(quality.Alternatives))

	cost := rankScenario(roofService(), models.ModeCost)
	require.NotNil(t, cost.Selected)
	assert.Equal(t, "v-roof-2", cost.Selected.ID)
	assert.Equal(t, []string{"v-roof-1"}, vendorIDs(cost.Alternatives))

	for _, s := range append(quality.Scored, cost.Scored...) {
		assert.NotEqual(t, "v-roof-3", s.Vendor.ID, "out-of-state vendor must be filtered")
	}
}

func TestRankVendors_RemoteWorkIgnoresLocation(t *testing.T) {
	svc := models.ServiceProfile{
		Category:    models.CategoryITOps,
		Subcategory: "backup_restore_test",
		Keywords:    []string{"AWS S3 restore test", "backup verification", "disaster recovery test", "retention policy audit"},
		Onsite:      false,
		Urgency:     models.UrgencyStandard,
	}

	res := rankScenario(svc, models.ModeQuality)
	require.NotNil(t, res.Selected)
	assert.Equal(t, "v-itops-1", res.Selected.ID)
	assert.Equal(t, []string{"v-it-1"}, vendorIDs(res.Alternatives))
	assert.InDelta(t, 0.8591, res.Scored[0].Score.Total, 1e-4)
	assert.InDelta(t, 0.8125, res.Scored[1].Score.Total, 1e-4)
}

// ==========================
// Structural Properties
// ==========================

func TestRankVendors_NoCandidates(t *testing.T) {
	res := RankVendors(nil, models.VendorSearchRequest{
		Service: hvacService(),
		Context: austinContext(),
	}, 351)

	assert.Nil(t, res.Selected)
	assert.NotNil(t, res.Alternatives)
	assert.Empty(t, res.Alternatives)
	assert.Empty(t, res.Scored)
}

func TestRankVendors_EveryoneFiltered(t *testing.T) {
	c := DefaultCatalog()
	ctx := models.VendorSearchContext{City: "Denver", State: "CO"}
	svc := hvacService()

	res := RankVendors(c.FindVendors(svc), models.VendorSearchRequest{Service: svc, Context: ctx}, 351)
	assert.Nil(t, res.Selected)
	assert.Empty(t, res.Alternatives)
}

func TestRankVendors_TiesBreakByID(t *testing.T) {
	twin := func(id string) models.Vendor {
		return models.Vendor{
			ID:               id,
			Name:             "Twin " + id,
			Categories:       []models.ServiceCategory{models.CategoryHVAC},
			Services:         []string{"HVAC tune-up"},
			Rating:           4.5,
			ReviewCount:      50,
			ReliabilityScore: 90,
			EstimatedPrice:   300,
			Licensed:         true,
			Insured:          true,
		}
	}
	req := models.VendorSearchRequest{
		Service: models.ServiceProfile{Category: models.CategoryHVAC, Keywords: []string{"HVAC tune-up"}, Urgency: models.UrgencyStandard},
		Context: austinContext(),
	}

	forward := RankVendors([]models.Vendor{twin("v-a"), twin("v-b"), twin("v-c")}, req, 300)
	reverse := RankVendors([]models.Vendor{twin("v-c"), twin("v-b"), twin("v-a")}, req, 300)

	require.NotNil(t, forward.Selected)
	require.NotNil(t, reverse.Selected)
	assert.Equal(t, "v-a", forward.Selected.ID)
	assert.Equal(t, forward.Selected.ID, reverse.Selected.ID)
	assert.Equal(t, vendorIDs(forward.Alternatives), vendorIDs(reverse.Alternatives))
}

func TestRankVendors_CapsAlternatives(t *testing.T) {
	var candidates []models.Vendor
	for _, id := range []string{"v-1", "v-2", "v-3", "v-4", "v-5", "v-6"} {
		candidates = append(candidates, models.Vendor{
			ID:             id,
			Categories:     []models.ServiceCategory{models.CategoryGeneral},
			Rating:         4.0,
			ReviewCount:    20,
			EstimatedPrice: 100,
		})
	}
	req := models.VendorSearchRequest{
		Service: models.ServiceProfile{Category: models.CategoryGeneral, Urgency: models.UrgencyStandard},
	}

	res := RankVendors(candidates, req, 100)
	require.NotNil(t, res.Selected)
	assert.Len(t, res.Alternatives, MaxAlternatives)
	assert.Len(t, res.Scored, len(candidates))
	assert.NotContains(t, vendorIDs(res.Alternatives), res.Selected.ID)
}

func TestRankVendors_DoesNotMutateCandidates(t *testing.T) {
	c := DefaultCatalog()
	candidates := c.FindVendors(hvacService())

	_ = RankVendors(candidates, models.VendorSearchRequest{Service: hvacService(), Context: austinContext()}, 351)

	for _, v := range candidates {
		assert.Nil(t, v.MatchScore, v.ID)
	}
}

func TestRankVendors_ScoresSortedDescending(t *testing.T) {
	compliance := models.ServiceProfile{
		Category: models.CategoryCompliance,
		Keywords: []string{"business license", "regulatory compliance", "compliance audit"},
		Urgency:  models.UrgencyStandard,
	}
	res := rankScenario(compliance, models.ModeQuality)

	require.NotNil(t, res.Selected)
	assert.Equal(t, "v-fire-1", res.Selected.ID)
	assert.Equal(t, []string{"v-legal-1", "v-it-1"}, vendorIDs(res.Alternatives))
	for i := 1; i < len(res.Scored); i++ {
		assert.GreaterOrEqual(t, res.Scored[i-1].Score.Total, res.Scored[i].Score.Total)
	}
}
