// internal/workers/planning/build-task-templates/models.go
package buildtasktemplates

import (
	"upkept-workers/internal/common/validation"
	"upkept-workers/internal/models"
)

type Input struct {
	Assets          []models.Asset          `json:"assets"`
	ComplianceItems []models.ComplianceItem `json:"complianceItems"`
	AsOf            string                  `json:"asOf,omitempty"`
}

type Output struct {
	Templates     []models.TaskTemplate `json:"templates"`
	TemplateCount int                   `json:"templateCount"`
}

// InputSchema rejects jobs whose entity lists are malformed before any
// template is derived.
var InputSchema = validation.MustCompile(`{
	"type": "object",
	"properties": {
		"assets": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["id", "name", "type", "status"],
				"properties": {
					"id": {"type": "string", "minLength": 1},
					"type": {"enum": ["physical", "digital", "compliance_only"]},
					"status": {"enum": ["ok", "attention", "critical", "overdue"]}
				}
			}
		},
		"complianceItems": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["id", "name", "riskLevel"],
				"properties": {
					"id": {"type": "string", "minLength": 1},
					"riskLevel": {"enum": ["low", "medium", "high", "critical"]}
				}
			}
		},
		"asOf": {"type": "string"}
	}
}`)
