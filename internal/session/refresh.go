// internal/session/refresh.go
package session

import (
	"time"

	"upkept-workers/internal/models"
)

// NewState returns an empty idle session.
func NewState(id string, now time.Time) models.SystemState {
	state := models.SystemState{
		SessionID:        id,
		Phase:            models.PhaseIdle,
		OptimizationMode: models.ModeQuality,
		Assets:           []models.Asset{},
		ComplianceItems:  []models.ComplianceItem{},
		Tasks:            []models.Task{},
		LastUpdated:      now.UTC().Format(time.RFC3339),
	}
	return Refresh(state)
}

// Refresh recomputes the derived graph and analytics of a session from its
// entity lists. Whatever graph or analytics the state carried are discarded.
func Refresh(state models.SystemState) models.SystemState {
	state.Graph = BuildGraph(state)
	state.Analytics = ComputeAnalytics(state)
	return state
}
