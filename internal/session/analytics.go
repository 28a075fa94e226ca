// internal/session/analytics.go
package session

import (
	"sort"
	"time"

	"upkept-workers/internal/models"
)

const (
	baseComplianceScore   = 100
	minComplianceScore    = 10
	defaultRiskPenalty    = 5
	criticalAssetPenalty  = 10
	attentionAssetPenalty = 4

	riskHorizonDays        = 90
	criticalAssetRiskDays  = 14
	attentionAssetRiskDays = 45
)

var riskPenalty = map[models.RiskLevel]int{
	models.RiskCritical: 25,
	models.RiskHigh:     15,
	models.RiskMedium:   8,
	models.RiskLow:      3,
}

// ComputeAnalytics derives the dashboard figures of a session. It reads
// nothing but its argument.
func ComputeAnalytics(state models.SystemState) models.Analytics {
	var totalCost, marketTotal float64
	approved := 0
	for _, t := range state.Tasks {
		totalCost += t.EstimatedCost
		marketTotal += t.MarketPrice
		if t.Status != models.TaskPending {
			approved++
		}
	}

	return models.Analytics{
		ComplianceScore:     complianceScore(state),
		UpcomingRisks:       upcomingRisks(state),
		EstimatedSavings:    max(0, marketTotal-totalCost),
		TotalCost:           totalCost,
		MaintenanceTimeline: maintenanceTimeline(state.Tasks),
		TotalTasks:          len(state.Tasks),
		ApprovedTasks:       approved,
		CriticalItems:       criticalItems(state),
		HistoricalDecisions: historicalDecisions(state),
	}
}

func complianceScore(state models.SystemState) int {
	penalty := 0
	for _, c := range state.ComplianceItems {
		if c.Status == models.ComplianceCompliant {
			continue
		}
		if p, ok := riskPenalty[c.RiskLevel]; ok {
			penalty += p
		} else {
			penalty += defaultRiskPenalty
		}
	}
	for _, a := range state.Assets {
		switch a.Status {
		case models.AssetCritical:
			penalty += criticalAssetPenalty
		case models.AssetAttention:
			penalty += attentionAssetPenalty
		}
	}
	return min(baseComplianceScore, max(minComplianceScore, baseComplianceScore-penalty))
}

func upcomingRisks(state models.SystemState) []models.UpcomingRisk {
	risks := make([]models.UpcomingRisk, 0)
	for _, c := range state.ComplianceItems {
		if c.DaysUntilDue <= riskHorizonDays {
			risks = append(risks, models.UpcomingRisk{
				Label:     c.Name,
				DaysUntil: c.DaysUntilDue,
				Severity:  c.RiskLevel,
			})
		}
	}
	for _, a := range state.Assets {
		switch a.Status {
		case models.AssetCritical:
			risks = append(risks, models.UpcomingRisk{
				Label:     a.Name + " maintenance",
				DaysUntil: criticalAssetRiskDays,
				Severity:  models.RiskCritical,
			})
		case models.AssetAttention:
			risks = append(risks, models.UpcomingRisk{
				Label:     a.Name + " maintenance",
				DaysUntil: attentionAssetRiskDays,
				Severity:  models.RiskMedium,
			})
		}
	}
	sort.SliceStable(risks, func(i, j int) bool {
		return risks[i].DaysUntil < risks[j].DaysUntil
	})
	return risks
}

func criticalItems(state models.SystemState) int {
	n := 0
	for _, a := range state.Assets {
		if a.Status == models.AssetCritical {
			n++
		}
	}
	for _, c := range state.ComplianceItems {
		if c.RiskLevel == models.RiskCritical {
			n++
		}
	}
	return n
}

func historicalDecisions(state models.SystemState) []models.HistoricalDecision {
	out := make([]models.HistoricalDecision, 0)
	for _, t := range state.Tasks {
		if t.Status != models.TaskApproved && t.Status != models.TaskScheduled {
			continue
		}

		vendor := "vendor"
		if t.SelectedVendor != nil {
			vendor = t.SelectedVendor.Name
		}
		scheduled := t.ScheduledDate
		if scheduled == "" {
			scheduled = "TBD"
		}
		date := datePart(t.ApprovedAt)
		if date == "" {
			date = datePart(state.LastUpdated)
		}

		out = append(out, models.HistoricalDecision{
			Date:    date,
			Action:  "Selected " + vendor + " for " + t.Title,
			Outcome: "Scheduled for " + scheduled,
			Savings: t.MarketPrice - t.EstimatedCost,
		})
	}
	return out
}

// maintenanceTimeline buckets tasks by the month they are scheduled in,
// or due in when unscheduled, in calendar order. Tasks with neither date
// are left out.
func maintenanceTimeline(tasks []models.Task) []models.TimelinePoint {
	type bucket struct {
		month time.Time
		point models.TimelinePoint
	}
	buckets := make(map[time.Time]*bucket)

	for _, t := range tasks {
		when := t.ScheduledDate
		if when == "" {
			when = t.DueDate
		}
		d, err := time.Parse("2006-01-02", datePart(when))
		if err != nil {
			continue
		}
		month := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
		b, ok := buckets[month]
		if !ok {
			b = &bucket{month: month, point: models.TimelinePoint{Month: month.Format("Jan 2006")}}
			buckets[month] = b
		}
		b.point.Tasks++
		b.point.Cost += t.EstimatedCost
	}

	sorted := make([]*bucket, 0, len(buckets))
	for _, b := range buckets {
		sorted = append(sorted, b)
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].month.Before(sorted[j].month)
	})

	out := make([]models.TimelinePoint, 0, len(sorted))
	for _, b := range sorted {
		out = append(out, b.point)
	}
	return out
}

// datePart returns the YYYY-MM-DD prefix of a date or RFC 3339 timestamp.
func datePart(s string) string {
	if len(s) < len("2006-01-02") {
		return ""
	}
	return s[:len("2006-01-02")]
}
