// internal/workers/communication/notify-schedule/handler.go
package notifyschedule

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	sestypes "github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	snstypes "github.com/aws/aws-sdk-go-v2/service/sns/types"
	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"

	"upkept-workers/internal/common/errors"
	"upkept-workers/internal/common/logger"
	"upkept-workers/internal/common/metrics"
	"upkept-workers/internal/models"
	"upkept-workers/internal/session"
)

const (
	TaskType = "notify-schedule"
)

type SESService interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type SNSService interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

type Handler struct {
	config       *Config
	store        session.Store
	sesClient    SESService
	snsClient    SNSService
	logger       logger.Logger
	errorHandler *errors.ErrorHandler
	now          func() time.Time
}

// NewHandler accepts nil SES or SNS clients; the matching channel is then
// never used.
func NewHandler(config *Config, store session.Store, sesClient SESService, snsClient SNSService, log logger.Logger) *Handler {
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		store:        store,
		sesClient:    sesClient,
		snsClient:    snsClient,
		logger:       l,
		errorHandler: errors.NewErrorHandler(l),
		now:          time.Now,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	if err := InputSchema.Check(job.Variables); err != nil {
		h.failJob(client, job, err)
		return
	}

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.failJob(client, job, errors.NewInvalidJobInputError(fmt.Sprintf("parse input: %v", err)))
		return
	}

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.failJob(client, job, err)
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	state, err := h.store.Get(ctx, input.SessionID)
	if err != nil {
		if stderrors.Is(err, session.ErrSessionNotFound) {
			return nil, errors.NewSessionNotFoundError(input.SessionID)
		}
		return nil, errors.NewSessionStoreError(err)
	}

	tasks := committedTasks(state.Tasks)
	output := &Output{
		NotificationID: uuid.New().String(),
		Status:         StatusSkipped,
		SentAt:         h.now().UTC(),
		Channels:       []string{},
		TaskCount:      len(tasks),
	}
	if len(tasks) == 0 {
		h.logger.Info("nothing approved, notification skipped", map[string]interface{}{
			"sessionId": input.SessionID,
		})
		return output, nil
	}

	if h.emailEnabled() && input.RecipientEmail != "" {
		if err := h.sendEmail(ctx, input.RecipientEmail, state.SessionID, tasks); err != nil {
			return nil, errors.NewNotificationSendError(ChannelEmail, err)
		}
		output.Channels = append(output.Channels, ChannelEmail)
	}

	urgent := urgentTasks(tasks)
	if h.smsEnabled() && input.RecipientPhone != "" && len(urgent) > 0 {
		if err := h.sendSMS(ctx, input.RecipientPhone, urgent); err != nil {
			return nil, errors.NewNotificationSendError(ChannelSMS, err)
		}
		output.Channels = append(output.Channels, ChannelSMS)
	}

	if len(output.Channels) > 0 {
		output.Status = StatusSent
	}

	h.logger.Info("schedule notification processed", map[string]interface{}{
		"sessionId":      input.SessionID,
		"notificationId": output.NotificationID,
		"status":         output.Status,
		"channels":       strings.Join(output.Channels, ","),
	})
	return output, nil
}

func (h *Handler) emailEnabled() bool {
	return h.config.EmailEnabled && h.sesClient != nil
}

func (h *Handler) smsEnabled() bool {
	return h.config.SMSEnabled && h.snsClient != nil
}

func committedTasks(tasks []models.Task) []models.Task {
	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.Status == models.TaskApproved || t.Status == models.TaskScheduled {
			out = append(out, t)
		}
	}
	return out
}

func urgentTasks(tasks []models.Task) []models.Task {
	out := make([]models.Task, 0)
	for _, t := range tasks {
		if t.Priority == models.PriorityUrgent {
			out = append(out, t)
		}
	}
	return out
}

func emailSubject(tasks []models.Task) string {
	if len(tasks) == 1 {
		return "1 maintenance task approved"
	}
	return fmt.Sprintf("%d maintenance tasks approved", len(tasks))
}

func emailBody(sessionID string, tasks []models.Task) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Maintenance schedule for session %s\n\n", sessionID)

	var total float64
	for _, t := range tasks {
		vendor := "unassigned"
		if t.SelectedVendor != nil {
			vendor = t.SelectedVendor.Name
		}
		date := t.ScheduledDate
		if date == "" {
			date = "date to be confirmed"
		}
		fmt.Fprintf(&b, "- %s (%s): %s, %s, $%.2f\n", t.Title, t.Priority, vendor, date, t.EstimatedCost)
		total += t.EstimatedCost
	}

	fmt.Fprintf(&b, "\nTotal estimated cost: $%.2f\n", total)
	return b.String()
}

func smsMessage(tasks []models.Task) string {
	titles := make([]string, len(tasks))
	for i, t := range tasks {
		titles[i] = t.Title
		if t.ScheduledDate != "" {
			titles[i] += " on " + t.ScheduledDate
		}
	}
	return "Urgent maintenance scheduled: " + strings.Join(titles, "; ")
}

func (h *Handler) sendEmail(ctx context.Context, to, sessionID string, tasks []models.Task) error {
	_, err := h.sesClient.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &sestypes.Destination{
			ToAddresses: []string{to},
		},
		Message: &sestypes.Message{
			Subject: &sestypes.Content{Data: aws.String(emailSubject(tasks))},
			Body: &sestypes.Body{
				Text: &sestypes.Content{Data: aws.String(emailBody(sessionID, tasks))},
			},
		},
		Source: aws.String(h.config.FromEmail),
	})
	return err
}

func (h *Handler) sendSMS(ctx context.Context, to string, tasks []models.Task) error {
	params := &sns.PublishInput{
		PhoneNumber: aws.String(to),
		Message:     aws.String(smsMessage(tasks)),
	}
	if h.config.SenderID != "" {
		params.MessageAttributes = map[string]snstypes.MessageAttributeValue{
			"AWS.SNS.SMS.SenderID": {
				DataType:    aws.String("String"),
				StringValue: aws.String(h.config.SenderID),
			},
		}
	}
	_, err := h.snsClient.Publish(ctx, params)
	return err
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	if _, err := cmd.Send(context.Background()); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, err error) {
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(errors.AsStandardError(err).Code)).Inc()
	h.errorHandler.HandleJobError(context.Background(), client, job, err)
}
