package buildtasktemplates

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
)

func newTestHandler(t *testing.T) *Handler {
	h := NewHandler(LoadConfig(), logger.NewTestLogger(t))
	h.now = func() time.Time { return time.Date(2025, 2, 20, 9, 30, 0, 0, time.UTC) }
	return h
}

func testInput(asOf string) *Input {
	return &Input{
		Assets: []models.Asset{
			{ID: "a-hvac", Name: "Rooftop HVAC Unit", Type: models.AssetPhysical, Status: models.AssetCritical, Tags: []string{"hvac"}},
			{ID: "a-backup", Name: "Nightly Backups", Type: models.AssetDigital, Status: models.AssetOK, Tags: []string{"backup"}},
		},
		ComplianceItems: []models.ComplianceItem{
			{ID: "c-license", Name: "Business License Renewal", RiskLevel: models.RiskMedium},
		},
		AsOf: asOf,
	}
}

func TestHandler_Execute_Success(t *testing.T) {
	tests := []struct {
		name string
		asOf string
	}{
		{"timestamp", "2025-02-20T09:30:00Z"},
		{"bare date", "2025-02-20"},
		{"defaults to now", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(t)

			output, err := h.Execute(context.Background(), testInput(tt.asOf))

			require.NoError(t, err)
			require.Len(t, output.Templates, 3)
			assert.Equal(t, 3, output.TemplateCount)

			hvac := output.Templates[0]
			assert.Equal(t, "a-hvac", hvac.AssetID)
			assert.Equal(t, models.CategoryHVAC, hvac.Service.Category)
			assert.Equal(t, models.PriorityUrgent, hvac.Priority)
			assert.Equal(t, "2025-02-27", hvac.DueDate)

			backup := output.Templates[1]
			assert.Equal(t, models.CategoryITOps, backup.Service.Category)
			assert.False(t, backup.Service.Onsite)

			license := output.Templates[2]
			assert.Equal(t, "c-license", license.ComplianceID)
			assert.Equal(t, "2025-03-22", license.DueDate)
		})
	}
}

func TestHandler_Execute_Empty(t *testing.T) {
	h := newTestHandler(t)

	output, err := h.Execute(context.Background(), &Input{})

	require.NoError(t, err)
	assert.Empty(t, output.Templates)
	assert.Equal(t, 0, output.TemplateCount)
}

func TestHandler_Execute_InvalidAsOf(t *testing.T) {
	h := newTestHandler(t)

	_, err := h.Execute(context.Background(), testInput("next tuesday"))

	require.Error(t, err)
	var stdErr *errors.StandardError
	require.True(t, stderrors.As(err, &stdErr))
	assert.Equal(t, errors.ErrCodeInvalidJobInput, stdErr.Code)
}

func TestInputSchema(t *testing.T) {
	tests := []struct {
		name     string
		document string
		valid    bool
	}{
		{"empty object", `{}`, true},
		{"valid asset", `{"assets": [{"id": "a-1", "name": "Boiler", "type": "physical", "status": "ok"}]}`, true},
		{"bad asset status", `{"assets": [{"id": "a-1", "name": "Boiler", "type": "physical", "status": "broken"}]}`, false},
		{"asset missing id", `{"assets": [{"name": "Boiler", "type": "physical", "status": "ok"}]}`, false},
		{"bad risk level", `{"complianceItems": [{"id": "c-1", "name": "Permit", "riskLevel": "extreme"}]}`, false},
		{"assets not a list", `{"assets": {"id": "a-1"}}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, InputSchema.Validate(tt.document).Valid)
		})
	}
}
