// internal/workers/planning/materialize-session/models.go
package materializesession

import (
	"upkept-workers/internal/common/validation"
	"upkept-workers/internal/models"
)

type Input struct {
	SessionID        string                  `json:"sessionId,omitempty"`
	InputDescription string                  `json:"inputDescription"`
	Mode             models.OptimizationMode `json:"mode,omitempty"`
	Assets           []models.Asset          `json:"assets"`
	ComplianceItems  []models.ComplianceItem `json:"complianceItems"`
	Tasks            []models.Task           `json:"tasks"`
}

type Output struct {
	SessionID        string       `json:"sessionId"`
	Phase            models.Phase `json:"phase"`
	TaskCount        int          `json:"taskCount"`
	ComplianceScore  int          `json:"complianceScore"`
	TotalCost        float64      `json:"totalCost"`
	EstimatedSavings float64      `json:"estimatedSavings"`
	CriticalItems    int          `json:"criticalItems"`
	GraphNodes       int          `json:"graphNodes"`
	GraphEdges       int          `json:"graphEdges"`
}

var InputSchema = validation.MustCompile(`{
	"type": "object",
	"properties": {
		"sessionId": {"type": "string"},
		"inputDescription": {"type": "string"},
		"mode": {"enum": ["cost", "quality", ""]},
		"assets": {"type": "array", "items": {"type": "object", "required": ["id"]}},
		"complianceItems": {"type": "array", "items": {"type": "object", "required": ["id"]}},
		"tasks": {"type": "array", "items": {"type": "object", "required": ["id", "status"]}}
	}
}`)
