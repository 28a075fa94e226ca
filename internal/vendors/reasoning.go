// internal/vendors/reasoning.go
package vendors

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"upkept-workers/internal/models"
)

const (
	// DefaultEstimatedCost is the planning estimate for a task with no vendor.
	DefaultEstimatedCost = 300.0

	noVendorConfidence = 60
	noVendorSummary    = "No qualified vendor found in local database. Manual sourcing recommended."

	urgentRisk    = "Avoiding equipment failure, safety liability, and emergency repair premium (typically 3x)."
	proactiveRisk = "Proactive scheduling prevents reactive costs and compliance penalties."
)

var baseDataUsed = []string{
	"Vendor directory listings",
	"Aggregated customer reviews",
	"License and insurance records",
	"Historical job completion data",
}

// ReasoningInput is everything the justification for one task is built from.
type ReasoningInput struct {
	Title          string
	Priority       models.Priority
	Service        models.ServiceProfile
	Mode           models.OptimizationMode
	CandidateCount int
	MarketPrice    float64
	Result         RankResult
}

// EstimatedCost is the selected vendor's price, or DefaultEstimatedCost when
// nothing was selected.
func EstimatedCost(r RankResult) float64 {
	if r.Selected == nil {
		return DefaultEstimatedCost
	}
	return r.Selected.EstimatedPrice
}

// BuildTaskReasoning assembles the human-readable justification for a
// ranking outcome. It never fails; an empty ranking produces a
// "no vendor found" narrative with a neutral confidence.
func BuildTaskReasoning(in ReasoningInput) models.TaskReasoning {
	sel := in.Result.Selected
	estimate := EstimatedCost(in.Result)

	reasoning := models.TaskReasoning{
		Summary:              buildSummary(in),
		DataUsed:             dataUsed(in.Result),
		PriceJustification:   fmt.Sprintf("Estimated cost $%s vs market average $%s, %s.", num(estimate), num(in.MarketPrice), marketDeltaPhrase(estimate, in.MarketPrice)),
		RiskAvoided:          riskAvoided(in.Priority, in.Service.Urgency),
		ConfidenceScore:      noVendorConfidence,
		AlternativesRejected: make([]models.RejectedAlternative, 0, len(in.Result.Alternatives)),
	}

	if sel == nil {
		reasoning.VendorSelectionReason = fmt.Sprintf("No vendor passed the service-area, credential and review filters among %d candidates.", in.CandidateCount)
		return reasoning
	}

	reasoning.ConfidenceScore = int(jsRound((sel.ReliabilityScore + sel.Rating*10) / 2))

	if in.Mode.Normalize() == models.ModeCost {
		reasoning.VendorSelectionReason = fmt.Sprintf("Selected for lowest cost ($%s) with acceptable reliability (%s%%) among %d candidates.",
			num(sel.EstimatedPrice), num(sel.ReliabilityScore), in.CandidateCount)
	} else {
		top := 0.0
		if len(in.Result.Scored) > 0 {
			top = in.Result.Scored[0].Score.Total
		}
		reasoning.VendorSelectionReason = fmt.Sprintf("Selected for highest composite score (%.2f) combining relevance, trust, compliance, and pricing among %d candidates.",
			top, in.CandidateCount)
	}

	for _, alt := range in.Result.Alternatives {
		reasoning.AlternativesRejected = append(reasoning.AlternativesRejected, models.RejectedAlternative{
			VendorName: alt.Name,
			Reason:     rejectionReason(alt, *sel),
		})
	}
	return reasoning
}

// PercentBelowMarket is round((market-estimate)/market*100), or 0 when the
// market price is not positive.
func PercentBelowMarket(estimate, market float64) int {
	if market <= 0 {
		return 0
	}
	return int(jsRound((market - estimate) / market * 100))
}

func marketDeltaPhrase(estimate, market float64) string {
	pct := PercentBelowMarket(estimate, market)
	if pct < 0 {
		return fmt.Sprintf("%d%% above market", -pct)
	}
	return fmt.Sprintf("%d%% below market", pct)
}

// rejectionReason picks the most salient gap: reliability, then insurance,
// then rating. An alternative that is no worse on any of those lost on the
// composite score.
func rejectionReason(alt, selected models.Vendor) string {
	switch {
	case alt.ReliabilityScore < selected.ReliabilityScore:
		return fmt.Sprintf("Lower reliability (%s%% vs %s%%)", num(alt.ReliabilityScore), num(selected.ReliabilityScore))
	case !alt.Insured:
		return "Not insured (liability risk)"
	case alt.Rating < selected.Rating:
		return fmt.Sprintf("Lower rating (%s vs %s)", num(alt.Rating), num(selected.Rating))
	default:
		return "Lower composite score for this request"
	}
}

func riskAvoided(p models.Priority, u models.Urgency) string {
	if p == models.PriorityUrgent || u == models.UrgencyEmergency {
		return urgentRisk
	}
	return proactiveRisk
}

func buildSummary(in ReasoningInput) string {
	sel := in.Result.Selected
	if sel == nil {
		return noVendorSummary
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s is the optimal choice for %s based on %s%% reliability score across %d reviews on %s.",
		sel.Name, in.Title, num(sel.ReliabilityScore), sel.ReviewCount, strings.Join(sel.Sources, ", "))
	fmt.Fprintf(&b, " At $%s, the estimate is %s the local market average of $%s.",
		num(sel.EstimatedPrice), strings.TrimSuffix(marketDeltaPhrase(sel.EstimatedPrice, in.MarketPrice), " market"), num(in.MarketPrice))
	if len(in.Result.Alternatives) > 0 {
		alt := in.Result.Alternatives[0]
		fmt.Fprintf(&b, " Alternative %s was rejected: %s.", alt.Name, strings.ToLower(rejectionReason(alt, *sel)))
	}
	return b.String()
}

func dataUsed(r RankResult) []string {
	out := append([]string(nil), baseDataUsed...)
	seen := make(map[string]struct{})
	var vendors []models.Vendor
	if r.Selected != nil {
		vendors = append(vendors, *r.Selected)
	}
	vendors = append(vendors, r.Alternatives...)
	for _, v := range vendors {
		for _, src := range v.Sources {
			if _, ok := seen[src]; ok {
				continue
			}
			seen[src] = struct{}{}
			out = append(out, src)
		}
	}
	return out
}

// jsRound rounds half up, so -2.5 becomes -2.
func jsRound(x float64) float64 {
	return math.Floor(x + 0.5)
}

func num(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
