// internal/models/state.go
package models

type AssetType string

const (
	AssetPhysical       AssetType = "physical"
	AssetDigital        AssetType = "digital"
	AssetComplianceOnly AssetType = "compliance_only"
)

type AssetStatus string

const (
	AssetOK        AssetStatus = "ok"
	AssetAttention AssetStatus = "attention"
	AssetCritical  AssetStatus = "critical"
	AssetOverdue   AssetStatus = "overdue"
)

type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

type ComplianceStatus string

const (
	ComplianceCompliant ComplianceStatus = "compliant"
	ComplianceDueSoon   ComplianceStatus = "due_soon"
	ComplianceOverdue   ComplianceStatus = "overdue"
	ComplianceUnknown   ComplianceStatus = "unknown"
)

type Phase string

const (
	PhaseIdle     Phase = "idle"
	PhaseIntake   Phase = "intake"
	PhasePlanning Phase = "planning"
	PhaseReview   Phase = "review"
	PhaseApproved Phase = "approved"
	PhaseComplete Phase = "complete"
)

type Asset struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Type          AssetType   `json:"type"`
	Status        AssetStatus `json:"status"`
	Location      string      `json:"location,omitempty"`
	InstalledYear int         `json:"installedYear,omitempty"`
	LastServiced  string      `json:"lastServiced,omitempty"`
	Description   string      `json:"description"`
	Tags          []string    `json:"tags"`
	RiskScore     int         `json:"riskScore"`
}

type ComplianceItem struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	DueDate        string           `json:"dueDate"`
	DaysUntilDue   int              `json:"daysUntilDue"`
	Status         ComplianceStatus `json:"status"`
	LinkedAssetIDs []string         `json:"linkedAssetIds"`
	RiskLevel      RiskLevel        `json:"riskLevel"`
	Authority      string           `json:"authority,omitempty"`
	Description    string           `json:"description"`
}

type NodeType string

const (
	NodeAsset      NodeType = "asset"
	NodeCompliance NodeType = "compliance"
	NodeVendor     NodeType = "vendor"
	NodeTask       NodeType = "task"
)

type EdgeType string

const (
	EdgeRequires   EdgeType = "requires"
	EdgeHandles    EdgeType = "handles"
	EdgeAssignedTo EdgeType = "assigned_to"
	EdgeLinksTo    EdgeType = "links_to"
)

type GraphNode struct {
	ID        string    `json:"id"`
	Type      NodeType  `json:"type"`
	Label     string    `json:"label"`
	Status    string    `json:"status"`
	RiskLevel RiskLevel `json:"riskLevel,omitempty"`
}

type GraphEdge struct {
	ID       string   `json:"id"`
	Source   string   `json:"source"`
	Target   string   `json:"target"`
	Label    string   `json:"label"`
	EdgeType EdgeType `json:"edgeType"`
}

type Graph struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
}

type UpcomingRisk struct {
	Label     string    `json:"label"`
	DaysUntil int       `json:"daysUntil"`
	Severity  RiskLevel `json:"severity"`
}

type HistoricalDecision struct {
	Date    string  `json:"date"`
	Action  string  `json:"action"`
	Outcome string  `json:"outcome"`
	Savings float64 `json:"savings"`
}

type TimelinePoint struct {
	Month string  `json:"month"`
	Tasks int     `json:"tasks"`
	Cost  float64 `json:"cost"`
}

type Analytics struct {
	ComplianceScore     int                  `json:"complianceScore"`
	UpcomingRisks       []UpcomingRisk       `json:"upcomingRisks"`
	EstimatedSavings    float64              `json:"estimatedSavings"`
	TotalCost           float64              `json:"totalCost"`
	MaintenanceTimeline []TimelinePoint      `json:"maintenanceTimeline"`
	TotalTasks          int                  `json:"totalTasks"`
	ApprovedTasks       int                  `json:"approvedTasks"`
	CriticalItems       int                  `json:"criticalItems"`
	HistoricalDecisions []HistoricalDecision `json:"historicalDecisions"`
}

// SystemState is a session snapshot. Graph and Analytics are derived from
// the entity lists and are recomputed whenever those change.
type SystemState struct {
	SessionID        string           `json:"sessionId"`
	Phase            Phase            `json:"phase"`
	InputDescription string           `json:"inputDescription"`
	OptimizationMode OptimizationMode `json:"optimizationMode"`
	Assets           []Asset          `json:"assets"`
	ComplianceItems  []ComplianceItem `json:"complianceItems"`
	Tasks            []Task           `json:"tasks"`
	Graph            Graph            `json:"graph"`
	Analytics        Analytics        `json:"analytics"`
	LastUpdated      string           `json:"lastUpdated"`
}
