package discovervendors

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"upkept-workers/internal/common/errors"
	"upkept-workers/internal/common/logger"
	"upkept-workers/internal/models"
	"upkept-workers/internal/planning"
	"upkept-workers/internal/vendors"
)

var asOf = time.Date(2025, 2, 20, 9, 30, 0, 0, time.UTC)

func testAssets() []models.Asset {
	return []models.Asset{
		{
			ID: "a-hvac", Name: "Rooftop HVAC Unit", Type: models.AssetPhysical, Status: models.AssetCritical,
			Location: "Rooftop", InstalledYear: 2012, Tags: []string{"hvac"},
		},
		{
			ID: "a-backup", Name: "Offsite Backup", Type: models.AssetDigital, Status: models.AssetOK,
			Tags: []string{"aws", "s3"},
		},
	}
}

func testTemplates() []models.TaskTemplate {
	compliance := []models.ComplianceItem{
		{ID: "c-fire", Name: "Annual Fire Inspection", DueDate: "2025-03-01", LinkedAssetIDs: []string{"a-smoke"}, RiskLevel: models.RiskHigh},
		{ID: "c-license", Name: "Business License Renewal", DueDate: "2025-05-01", RiskLevel: models.RiskMedium},
	}
	return planning.BuildTaskTemplates(testAssets(), compliance, asOf)
}

func newTestHandler(t *testing.T, config *Config) *Handler {
	if config == nil {
		config = LoadConfig()
		config.DefaultContext.City = "Austin"
		config.DefaultContext.State = "TX"
	}
	d := planning.NewDiscoverer(vendors.DefaultCatalog(), nil, logger.NewTestLogger(t), 2)
	return NewHandler(config, d, logger.NewTestLogger(t))
}

func TestHandler_Execute_Success(t *testing.T) {
	tests := []struct {
		name     string
		location *models.VendorSearchContext
	}{
		{"configured default location", nil},
		{"explicit location", &models.VendorSearchContext{City: "Austin", State: "TX"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(t, nil)

			output, err := h.Execute(context.Background(), &Input{
				Templates: testTemplates(),
				Assets:    testAssets(),
				Location:  tt.location,
			})

			require.NoError(t, err)
			require.Len(t, output.Tasks, 4)
			assert.Equal(t, 4, output.StaffedCount)
			assert.Equal(t, 0, output.UnstaffedCount)
			assert.Equal(t, "quality", output.Mode)

			want := []string{"v-hvac-3", "v-it-1", "v-fire-1", "v-legal-1"}
			for i, vendorID := range want {
				task := output.Tasks[i]
				assert.Equal(t, planning.TaskID(i), task.ID)
				require.NotNil(t, task.SelectedVendor)
				assert.Equal(t, vendorID, task.SelectedVendor.ID)
			}
			assert.Equal(t, 420.0, output.Tasks[0].EstimatedCost)
			assert.Equal(t, 500.0, output.Tasks[0].MarketPrice)
		})
	}
}

func TestHandler_Execute_CountsUnstaffedTasks(t *testing.T) {
	h := newTestHandler(t, nil)
	templates := append(testTemplates()[:1], models.TaskTemplate{
		Title:    "Lobby Carpet Maintenance",
		Priority: models.PriorityMedium,
		Service: models.ServiceProfile{
			Category: models.CategoryGeneral,
			Keywords: []string{"carpet"},
			Onsite:   true,
			Urgency:  models.UrgencyStandard,
		},
	})

	output, err := h.Execute(context.Background(), &Input{Templates: templates, Assets: testAssets(), Mode: models.ModeCost})

	require.NoError(t, err)
	require.Len(t, output.Tasks, 2)
	assert.Equal(t, 1, output.StaffedCount)
	assert.Equal(t, 1, output.UnstaffedCount)
	assert.Equal(t, "cost", output.Mode)
	assert.Nil(t, output.Tasks[1].SelectedVendor)
	assert.Equal(t, vendors.DefaultEstimatedCost, output.Tasks[1].EstimatedCost)
}

func TestHandler_Execute_MissingLocation(t *testing.T) {
	h := newTestHandler(t, LoadConfig())

	_, err := h.Execute(context.Background(), &Input{Templates: testTemplates()})

	var stdErr *errors.StandardError
	require.True(t, stderrors.As(err, &stdErr))
	assert.Equal(t, errors.ErrCodeInvalidJobInput, stdErr.Code)
}

func TestHandler_Execute_Interrupted(t *testing.T) {
	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	expired, cancelExpired := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancelExpired()

	tests := []struct {
		name string
		ctx  context.Context
		code errors.ErrorCode
	}{
		{"cancelled", cancelled, errors.ErrCodeVendorSearchFailed},
		{"deadline exceeded", expired, errors.ErrCodeVendorSearchTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(t, nil)

			output, err := h.Execute(tt.ctx, &Input{Templates: testTemplates(), Assets: testAssets()})

			assert.Nil(t, output)
			var stdErr *errors.StandardError
			require.True(t, stderrors.As(err, &stdErr))
			assert.Equal(t, tt.code, stdErr.Code)
			assert.True(t, stdErr.Retryable)
		})
	}
}

func TestHandler_Execute_EmptyCatalog(t *testing.T) {
	config := LoadConfig()
	config.DefaultContext.City = "Austin"
	config.DefaultContext.State = "TX"
	d := planning.NewDiscoverer(vendors.NewCatalog(nil), nil, logger.NewTestLogger(t), 2)
	h := NewHandler(config, d, logger.NewTestLogger(t))

	_, err := h.Execute(context.Background(), &Input{Templates: testTemplates(), Assets: testAssets()})

	var stdErr *errors.StandardError
	require.True(t, stderrors.As(err, &stdErr))
	assert.Equal(t, errors.ErrCodeVendorCatalogUnavailable, stdErr.Code)
	assert.True(t, stdErr.Retryable)

	output, err := h.Execute(context.Background(), &Input{})
	require.NoError(t, err)
	assert.Empty(t, output.Tasks)
}

func TestSearchContext_MergesDefaults(t *testing.T) {
	h := newTestHandler(t, nil)

	got := h.searchContext(&models.VendorSearchContext{City: "Dallas", Zip: "75201"})

	assert.Equal(t, models.VendorSearchContext{
		City:         "Dallas",
		State:        "TX",
		Zip:          "75201",
		RadiusMiles:  30,
		PropertyType: "commercial",
	}, got)
}

func TestInputSchema(t *testing.T) {
	tests := []struct {
		name     string
		document string
		valid    bool
	}{
		{"minimal", `{"templates": []}`, true},
		{"template", `{"templates": [{"title": "HVAC", "service": {"category": "hvac"}}], "mode": "cost"}`, true},
		{"missing templates", `{}`, false},
		{"template without service", `{"templates": [{"title": "HVAC"}]}`, false},
		{"unknown mode", `{"templates": [], "mode": "fastest"}`, false},
		{"negative radius", `{"templates": [], "location": {"radiusMiles": -5}}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, InputSchema.Validate(tt.document).Valid)
		})
	}
}
