// internal/planning/templates.go

// Package planning turns the extracted assets and compliance items of a
// property into staffed, scheduled maintenance tasks.
package planning

import (
	"fmt"
	"strings"
	"time"

	"upkept-workers/internal/models"
)

const dateLayout = "2006-01-02"

// recipe is the canned service profile for a recognizable kind of asset.
type recipe struct {
	category    models.ServiceCategory
	subcategory string
	title       string
	description string
	keywords    []string
	licenses    []string
	onsite      bool
}

// recipes are tried in order; the first one with an alias found in the
// asset's id, name or tags wins.
var recipes = []struct {
	aliases []string
	recipe  recipe
}{
	{
		aliases: []string{"water heater", "waterheater", "water_heater", "plumb", "pipe", "boiler"},
		recipe: recipe{
			category:    models.CategoryPlumbing,
			subcategory: "water_heater_replacement",
			title:       "Water Heater Service",
			description: "Inspect or replace the unit, check anode rod, pressure relief valve and supply lines.",
			keywords:    []string{"water heater replacement", "tankless installation", "hot water tank"},
			licenses:    []string{"Plumber"},
			onsite:      true,
		},
	},
	{
		aliases: []string{"hvac", "furnace", "air condition", "heat pump"},
		recipe: recipe{
			category:    models.CategoryHVAC,
			subcategory: "annual_service",
			title:       "HVAC Annual Service",
			description: "Full inspection, filter replacement, refrigerant check, and tune-up.",
			keywords:    []string{"HVAC tune-up", "AC service", "furnace inspection", "seasonal maintenance"},
			licenses:    []string{"HVAC Contractor"},
			onsite:      true,
		},
	},
	{
		aliases: []string{"ssl", "tls", "certificate", "firewall", "cyber"},
		recipe: recipe{
			category:    models.CategoryITSecurity,
			subcategory: "ssl_renewal",
			title:       "SSL Certificate Renewal",
			description: "Renew SSL certificate before expiry to prevent downtime and security warnings.",
			keywords:    []string{"SSL renewal", "TLS certificate", "certificate installation", "HTTPS setup"},
		},
	},
	{
		aliases: []string{"smoke", "fire", "sprinkler", "extinguisher", "alarm"},
		recipe: recipe{
			category:    models.CategoryFireSafety,
			subcategory: "alarm_testing",
			title:       "Smoke Detector Testing & Battery Replacement",
			description: "Test all units, replace batteries, document compliance.",
			keywords:    []string{"fire alarm testing", "smoke detector inspection", "battery replacement", "fire safety compliance"},
			licenses:    []string{"Fire Safety Inspector"},
			onsite:      true,
		},
	},
	{
		aliases: []string{"roof", "gutter", "shingle"},
		recipe: recipe{
			category:    models.CategoryRoofing,
			subcategory: "inspection",
			title:       "Roof Inspection",
			description: "Full structural inspection, check for damage, moss, and drainage issues.",
			keywords:    []string{"roof inspection", "shingle assessment", "leak detection", "structural inspection"},
			licenses:    []string{"Roofing Contractor"},
			onsite:      true,
		},
	},
	{
		aliases: []string{"electrical", "panel", "wiring", "breaker", "generator"},
		recipe: recipe{
			category:    models.CategoryElectrical,
			subcategory: "panel_inspection",
			title:       "Electrical Panel Inspection",
			description: "Inspect panel for code compliance, load capacity, and safety.",
			keywords:    []string{"electrical panel inspection", "breaker panel", "code compliance", "load capacity test"},
			licenses:    []string{"Electrician"},
			onsite:      true,
		},
	},
	{
		aliases: []string{"backup", "server", "network", "domain", "hosting"},
		recipe: recipe{
			category:    models.CategoryITOps,
			subcategory: "backup_restore_test",
			title:       "Backup System Verification",
			description: "Run full restore test, verify integrity and retention policy.",
			keywords:    []string{"AWS S3 restore test", "backup verification", "disaster recovery test", "retention policy audit"},
		},
	},
}

// BuildTaskTemplates derives one template per asset followed by one per
// compliance item, in input order. asOf anchors the due dates of asset
// work; compliance work keeps the item's own due date.
func BuildTaskTemplates(assets []models.Asset, compliance []models.ComplianceItem, asOf time.Time) []models.TaskTemplate {
	templates := make([]models.TaskTemplate, 0, len(assets)+len(compliance))
	for _, a := range assets {
		templates = append(templates, assetTemplate(a, asOf))
	}
	for _, c := range compliance {
		templates = append(templates, complianceTemplate(c, asOf))
	}
	return templates
}

func assetTemplate(a models.Asset, asOf time.Time) models.TaskTemplate {
	priority, urgency, dueIn := statusPressure(a.Status)

	t := models.TaskTemplate{
		AssetID:  a.ID,
		Priority: priority,
		DueDate:  asOf.AddDate(0, 0, dueIn).Format(dateLayout),
	}

	if r, ok := matchRecipe(a); ok {
		t.Title = r.title
		t.Description = r.description
		t.Service = models.ServiceProfile{
			Category:        r.category,
			Subcategory:     r.subcategory,
			Keywords:        append([]string(nil), r.keywords...),
			Onsite:          r.onsite && a.Type != models.AssetDigital,
			RequiresLicense: append([]string(nil), r.licenses...),
			Urgency:         urgency,
		}
	} else {
		keywords := append([]string(nil), a.Tags...)
		if len(keywords) == 0 {
			keywords = []string{"general maintenance"}
		}
		t.Title = a.Name + " Maintenance"
		t.Description = fmt.Sprintf("Scheduled maintenance for %s.", a.Name)
		t.Service = models.ServiceProfile{
			Category: models.CategoryGeneral,
			Keywords: keywords,
			Onsite:   a.Type == models.AssetPhysical,
			Urgency:  urgency,
		}
	}

	t.RequiresApproval = t.Service.RequiresCredentials() || a.Type == models.AssetPhysical
	return t
}

func complianceTemplate(c models.ComplianceItem, asOf time.Time) models.TaskTemplate {
	fire := false
	for _, id := range c.LinkedAssetIDs {
		if strings.Contains(id, "smoke") || strings.Contains(id, "fire") {
			fire = true
			break
		}
	}

	urgency := models.UrgencyStandard
	if c.RiskLevel == models.RiskCritical {
		urgency = models.UrgencyUrgent
	}

	service := models.ServiceProfile{
		Category:    models.CategoryCompliance,
		Subcategory: "regulatory",
		Keywords:    []string{"business license", "regulatory compliance", "compliance audit"},
		Urgency:     urgency,
	}
	if fire {
		service = models.ServiceProfile{
			Category:        models.CategoryFireSafety,
			Subcategory:     "fire_compliance",
			Keywords:        []string{"fire safety inspection", "fire compliance", "fire marshal inspection"},
			Onsite:          true,
			RequiresLicense: []string{"Fire Safety Inspector"},
			Urgency:         urgency,
		}
	}

	due := c.DueDate
	if due == "" {
		due = asOf.AddDate(0, 0, 30).Format(dateLayout)
	}

	return models.TaskTemplate{
		Title:            c.Name,
		Description:      c.Description,
		ComplianceID:     c.ID,
		Priority:         compliancePriority(c.RiskLevel),
		DueDate:          due,
		Service:          service,
		RequiresApproval: true,
	}
}

func matchRecipe(a models.Asset) (recipe, bool) {
	haystack := strings.ToLower(strings.Join(append([]string{a.ID, a.Name}, a.Tags...), " "))
	for _, entry := range recipes {
		for _, alias := range entry.aliases {
			if strings.Contains(haystack, alias) {
				return entry.recipe, true
			}
		}
	}
	return recipe{}, false
}

// statusPressure maps asset condition to task priority, service urgency and
// days until due.
func statusPressure(s models.AssetStatus) (models.Priority, models.Urgency, int) {
	switch s {
	case models.AssetCritical:
		return models.PriorityUrgent, models.UrgencyUrgent, 7
	case models.AssetAttention, models.AssetOverdue:
		return models.PriorityHigh, models.UrgencyUrgent, 21
	default:
		return models.PriorityMedium, models.UrgencyStandard, 45
	}
}

func compliancePriority(r models.RiskLevel) models.Priority {
	switch r {
	case models.RiskCritical:
		return models.PriorityUrgent
	case models.RiskHigh:
		return models.PriorityHigh
	default:
		return models.PriorityMedium
	}
}
