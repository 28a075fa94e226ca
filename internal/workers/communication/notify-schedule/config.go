// internal/workers/communication/notify-schedule/config.go
package notifyschedule

import "time"

type Config struct {
	Timeout      time.Duration
	EmailEnabled bool
	SMSEnabled   bool
	FromEmail    string
	SenderID     string
}

func LoadConfig() *Config {
	return &Config{
		Timeout:      15 * time.Second,
		EmailEnabled: true,
		SMSEnabled:   true,
		FromEmail:    "scheduling@upkept.io",
		SenderID:     "UPKEPT",
	}
}
