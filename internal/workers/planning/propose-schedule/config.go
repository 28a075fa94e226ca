// internal/workers/planning/propose-schedule/config.go
package proposeschedule

import "time"

type Config struct {
	Timeout     time.Duration
	StaggerDays int
	// LeadDays is how far after today the first task lands when the job
	// gives no start date.
	LeadDays int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:     10 * time.Second,
		StaggerDays: 5,
		LeadDays:    1,
	}
}
