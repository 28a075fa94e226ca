// internal/vendors/ranker.go
package vendors

import (
	"sort"

	"upkept-workers/internal/models"
)

// MaxAlternatives is the number of runners-up kept after the winner.
const MaxAlternatives = 3

// RankResult is the outcome of a ranking call. Selected is nil when no
// candidate survived the hard filters, which is a valid outcome.
type RankResult struct {
	Selected     *models.Vendor
	Alternatives []models.Vendor
	Scored       []models.ScoredVendor
}

// RankVendors filters and scores candidates for a request and picks a winner.
// Candidates failing the hard filters are dropped entirely. Survivors are
// ordered by descending total score, with ties broken by vendor id so the
// result does not depend on candidate order. The input slice is not modified.
func RankVendors(candidates []models.Vendor, req models.VendorSearchRequest, marketPrice float64) RankResult {
	scored := make([]models.ScoredVendor, 0, len(candidates))
	for _, v := range candidates {
		match := ComputeRelevanceScore(v, req.Service)
		v.MatchScore = &match

		if !PassesHardFilters(v, req.Service, req.Context) {
			continue
		}
		scored = append(scored, models.ScoredVendor{
			Vendor: v,
			Score:  ScoreVendor(v, req.Service, marketPrice, req.Mode),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score.Total != scored[j].Score.Total {
			return scored[i].Score.Total > scored[j].Score.Total
		}
		return scored[i].Vendor.ID < scored[j].Vendor.ID
	})

	result := RankResult{
		Alternatives: make([]models.Vendor, 0, MaxAlternatives),
		Scored:       scored,
	}
	if len(scored) == 0 {
		return result
	}

	selected := scored[0].Vendor
	result.Selected = &selected
	for i := 1; i < len(scored) && i <= MaxAlternatives; i++ {
		result.Alternatives = append(result.Alternatives, scored[i].Vendor)
	}
	return result
}
