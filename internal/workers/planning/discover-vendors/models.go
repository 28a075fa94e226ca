// internal/workers/planning/discover-vendors/models.go
package discovervendors

import (
	"upkept-workers/internal/common/validation"
	"upkept-workers/internal/models"
)

type Input struct {
	Templates []models.TaskTemplate       `json:"templates"`
	Assets    []models.Asset              `json:"assets"`
	Location  *models.VendorSearchContext `json:"location,omitempty"`
	Mode      models.OptimizationMode     `json:"mode,omitempty"`
}

type Output struct {
	Tasks          []models.Task `json:"tasks"`
	StaffedCount   int           `json:"staffedCount"`
	UnstaffedCount int           `json:"unstaffedCount"`
	Mode           string        `json:"mode"`
}

var InputSchema = validation.MustCompile(`{
	"type": "object",
	"required": ["templates"],
	"properties": {
		"templates": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["title", "service"],
				"properties": {
					"title": {"type": "string", "minLength": 1},
					"priority": {"enum": ["urgent", "high", "medium", "low"]},
					"service": {
						"type": "object",
						"required": ["category"],
						"properties": {
							"category": {"type": "string", "minLength": 1},
							"keywords": {"type": "array", "items": {"type": "string"}}
						}
					}
				}
			}
		},
		"assets": {"type": "array"},
		"location": {
			"type": "object",
			"properties": {
				"city": {"type": "string"},
				"state": {"type": "string"},
				"radiusMiles": {"type": "integer", "minimum": 0}
			}
		},
		"mode": {"enum": ["cost", "quality", ""]}
	}
}`)
