// internal/workers/planning/propose-schedule/models.go
package proposeschedule

import (
	"upkept-workers/internal/common/validation"
	"upkept-workers/internal/models"
)

type Input struct {
	Tasks       []models.Task `json:"tasks"`
	StartDate   string        `json:"startDate,omitempty"`
	StaggerDays int           `json:"staggerDays,omitempty"`
}

type Output struct {
	Tasks     []models.Task `json:"tasks"`
	FirstDate string        `json:"firstDate,omitempty"`
	LastDate  string        `json:"lastDate,omitempty"`
}

var InputSchema = validation.MustCompile(`{
	"type": "object",
	"required": ["tasks"],
	"properties": {
		"tasks": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["id"],
				"properties": {
					"id": {"type": "string", "minLength": 1},
					"priority": {"enum": ["urgent", "high", "medium", "low"]}
				}
			}
		},
		"startDate": {"type": "string", "pattern": "^\\d{4}-\\d{2}-\\d{2}$"},
		"staggerDays": {"type": "integer", "minimum": 0, "maximum": 90}
	}
}`)
