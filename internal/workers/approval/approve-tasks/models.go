// internal/workers/approval/approve-tasks/models.go
package approvetasks

import (
	"upkept-workers/internal/common/validation"
	"upkept-workers/internal/models"
	"upkept-workers/internal/session"
)

type Input struct {
	SessionID     string         `json:"sessionId"`
	TaskID        string         `json:"taskId,omitempty"`
	Action        session.Action `json:"action"`
	ScheduledDate string         `json:"scheduledDate,omitempty"`
}

type Output struct {
	SessionID       string       `json:"sessionId"`
	Phase           models.Phase `json:"phase"`
	ApprovedTasks   int          `json:"approvedTasks"`
	TotalTasks      int          `json:"totalTasks"`
	ComplianceScore int          `json:"complianceScore"`
	ApprovedTaskIDs []string     `json:"approvedTaskIds"`
}

var InputSchema = validation.MustCompile(`{
	"type": "object",
	"required": ["sessionId", "action"],
	"properties": {
		"sessionId": {"type": "string", "minLength": 1},
		"taskId": {"type": "string"},
		"action": {"type": "string", "minLength": 1},
		"scheduledDate": {"type": "string"}
	}
}`)
