// internal/models/task.go
package models

type TaskStatus string

const (
	TaskPending   TaskStatus = "pending"
	TaskApproved  TaskStatus = "approved"
	TaskScheduled TaskStatus = "scheduled"
	TaskCompleted TaskStatus = "completed"
)

type Priority string

const (
	PriorityUrgent Priority = "urgent"
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Rank orders priorities from most to least pressing.
func (p Priority) Rank() int {
	switch p {
	case PriorityUrgent:
		return 0
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	default:
		return 3
	}
}

type RejectedAlternative struct {
	VendorName string `json:"vendorName"`
	Reason     string `json:"reason"`
}

// TaskReasoning is the justification attached to a task when it is produced.
// Re-running discovery replaces it wholesale.
type TaskReasoning struct {
	Summary               string                `json:"summary"`
	DataUsed              []string              `json:"dataUsed"`
	VendorSelectionReason string                `json:"vendorSelectionReason"`
	PriceJustification    string                `json:"priceJustification"`
	RiskAvoided           string                `json:"riskAvoided"`
	ConfidenceScore       int                   `json:"confidenceScore"`
	AlternativesRejected  []RejectedAlternative `json:"alternativesRejected"`
}

type Task struct {
	ID                 string        `json:"id"`
	Title              string        `json:"title"`
	Description        string        `json:"description"`
	AssetID            string        `json:"assetId,omitempty"`
	ComplianceID       string        `json:"complianceId,omitempty"`
	Status             TaskStatus    `json:"status"`
	Priority           Priority      `json:"priority"`
	DueDate            string        `json:"dueDate"`
	EstimatedCost      float64       `json:"estimatedCost"`
	MarketPrice        float64       `json:"marketPrice"`
	SelectedVendor     *Vendor       `json:"selectedVendor,omitempty"`
	AlternativeVendors []Vendor      `json:"alternativeVendors"`
	Reasoning          TaskReasoning `json:"reasoning"`
	ScheduledDate      string        `json:"scheduledDate,omitempty"`
	RequiresApproval   bool          `json:"requiresApproval"`
	ApprovedAt         string        `json:"approvedAt,omitempty"`
}

// TaskTemplate is a task-to-be-staffed: the work description plus the
// service profile used to discover a vendor for it.
type TaskTemplate struct {
	Title            string         `json:"title"`
	Description      string         `json:"description"`
	AssetID          string         `json:"assetId,omitempty"`
	ComplianceID     string         `json:"complianceId,omitempty"`
	Priority         Priority       `json:"priority"`
	DueDate          string         `json:"dueDate"`
	Service          ServiceProfile `json:"service"`
	RequiresApproval bool           `json:"requiresApproval"`
}
