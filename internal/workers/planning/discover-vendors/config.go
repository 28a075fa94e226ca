// internal/workers/planning/discover-vendors/config.go
package discovervendors

import (
	"time"

	"upkept-workers/internal/models"
)

type Config struct {
	Timeout        time.Duration
	DefaultContext models.VendorSearchContext
	DefaultMode    models.OptimizationMode
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 30 * time.Second,
		DefaultContext: models.VendorSearchContext{
			RadiusMiles:  30,
			PropertyType: "commercial",
		},
		DefaultMode: models.ModeQuality,
	}
}
