// internal/workers/communication/notify-schedule/models.go
package notifyschedule

import (
	"time"

	"upkept-workers/internal/common/validation"
)

const (
	StatusSent    = "sent"
	StatusSkipped = "skipped"

	ChannelEmail = "email"
	ChannelSMS   = "sms"
)

type Input struct {
	SessionID      string `json:"sessionId"`
	RecipientEmail string `json:"recipientEmail,omitempty"`
	RecipientPhone string `json:"recipientPhone,omitempty"`
}

type Output struct {
	NotificationID string    `json:"notificationId"`
	Status         string    `json:"status"`
	SentAt         time.Time `json:"sentAt"`
	Channels       []string  `json:"channels"`
	TaskCount      int       `json:"taskCount"`
}

var InputSchema = validation.MustCompile(`{
	"type": "object",
	"required": ["sessionId"],
	"properties": {
		"sessionId": {"type": "string", "minLength": 1},
		"recipientEmail": {"type": "string", "format": "email"},
		"recipientPhone": {"type": "string", "pattern": "^\\+[1-9][0-9]{6,14}$"}
	}
}`)
