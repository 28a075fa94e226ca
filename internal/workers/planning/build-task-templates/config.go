// internal/workers/planning/build-task-templates/config.go
package buildtasktemplates

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}
