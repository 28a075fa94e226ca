package notifyschedule

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"upkept-workers/internal/common/errors"
	"upkept-workers/internal/common/logger"
	"upkept-workers/internal/models"
	"upkept-workers/internal/session"
)

// ==========================
// Mock Implementations
// ==========================

type MockSESService struct {
	SendEmailFunc func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
	calls         []*ses.SendEmailInput
}

func (m *MockSESService) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	m.calls = append(m.calls, params)
	if m.SendEmailFunc == nil {
		return &ses.SendEmailOutput{MessageId: aws.String("ses-1")}, nil
	}
	return m.SendEmailFunc(ctx, params, optFns...)
}

type MockSNSService struct {
	PublishFunc func(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
	calls       []*sns.PublishInput
}

func (m *MockSNSService) Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
	m.calls = append(m.calls, params)
	if m.PublishFunc == nil {
		return &sns.PublishOutput{MessageId: aws.String("sns-1")}, nil
	}
	return m.PublishFunc(ctx, params, optFns...)
}

// ==========================
// Test Helpers
// ==========================

var fixedNow = time.Date(2025, 2, 20, 12, 0, 0, 0, time.UTC)

func newStore(t *testing.T) (*session.RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return session.NewRedisStore(client, "test:session:", time.Hour, logger.NewTestLogger(t)), mr
}

func seedSession(t *testing.T, store *session.RedisStore, tasks []models.Task) {
	t.Helper()
	state := session.NewState("s-1", fixedNow)
	state.Tasks = tasks
	_, err := store.Save(context.Background(), state)
	require.NoError(t, err)
}

func approvedTasks() []models.Task {
	return []models.Task{
		{
			ID:             "t-1",
			Title:          "HVAC Repair",
			Status:         models.TaskApproved,
			Priority:       models.PriorityUrgent,
			EstimatedCost:  420,
			ScheduledDate:  "2025-03-03",
			SelectedVendor: &models.Vendor{ID: "v-hvac-3", Name: "Polar Air"},
		},
		{
			ID:             "t-2",
			Title:          "Fire Alarm Inspection",
			Status:         models.TaskScheduled,
			Priority:       models.PriorityHigh,
			EstimatedCost:  175.5,
			SelectedVendor: &models.Vendor{ID: "v-fire-1", Name: "Beacon Fire"},
		},
		{
			ID:       "t-3",
			Title:    "Legal Review",
			Status:   models.TaskPending,
			Priority: models.PriorityUrgent,
		},
	}
}

func newTestHandler(t *testing.T, store session.Store, sesClient SESService, snsClient SNSService) *Handler {
	h := NewHandler(LoadConfig(), store, sesClient, snsClient, logger.NewTestLogger(t))
	h.now = func() time.Time { return fixedNow }
	return h
}

// ==========================
// Tests
// ==========================

func TestHandler_Execute_EmailAndSMS(t *testing.T) {
	store, _ := newStore(t)
	seedSession(t, store, approvedTasks())
	mockSES := &MockSESService{}
	mockSNS := &MockSNSService{}
	h := newTestHandler(t, store, mockSES, mockSNS)

	out, err := h.Execute(context.Background(), &Input{
		SessionID:      "s-1",
		RecipientEmail: "manager@example.com",
		RecipientPhone: "+15551234567",
	})
	require.NoError(t, err)

	assert.Equal(t, StatusSent, out.Status)
	assert.Equal(t, []string{ChannelEmail, ChannelSMS}, out.Channels)
	assert.Equal(t, 2, out.TaskCount)
	assert.Equal(t, fixedNow, out.SentAt)
	assert.NotEmpty(t, out.NotificationID)

	require.Len(t, mockSES.calls, 1)
	email := mockSES.calls[0]
	assert.Equal(t, []string{"manager@example.com"}, email.Destination.ToAddresses)
	assert.Equal(t, "scheduling@upkept.io", aws.ToString(email.Source))
	assert.Equal(t, "2 maintenance tasks approved", aws.ToString(email.Message.Subject.Data))
	body := aws.ToString(email.Message.Body.Text.Data)
	assert.Contains(t, body, "- HVAC Repair (urgent): Polar Air, 2025-03-03, $420.00")
	assert.Contains(t, body, "- Fire Alarm Inspection (high): Beacon Fire, date to be confirmed, $175.50")
	assert.Contains(t, body, "Total estimated cost: $595.50")
	assert.NotContains(t, body, "Legal Review")

	require.Len(t, mockSNS.calls, 1)
	sms := mockSNS.calls[0]
	assert.Equal(t, "+15551234567", aws.ToString(sms.PhoneNumber))
	assert.Equal(t, "Urgent maintenance scheduled: HVAC Repair on 2025-03-03", aws.ToString(sms.Message))
	assert.Equal(t, "UPKEPT", aws.ToString(sms.MessageAttributes["AWS.SNS.SMS.SenderID"].StringValue))
}

func TestHandler_Execute_NoUrgentWorkSkipsSMS(t *testing.T) {
	tasks := approvedTasks()
	tasks[0].Priority = models.PriorityMedium

	store, _ := newStore(t)
	seedSession(t, store, tasks)
	mockSES := &MockSESService{}
	mockSNS := &MockSNSService{}
	h := newTestHandler(t, store, mockSES, mockSNS)

	out, err := h.Execute(context.Background(), &Input{
		SessionID:      "s-1",
		RecipientEmail: "manager@example.com",
		RecipientPhone: "+15551234567",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{ChannelEmail}, out.Channels)
	assert.Empty(t, mockSNS.calls)
}

func TestHandler_Execute_Skipped(t *testing.T) {
	tests := []struct {
		name      string
		tasks     []models.Task
		input     *Input
		configure func(*Config)
		nilSES    bool
	}{
		{
			name:  "nothing approved",
			tasks: []models.Task{{ID: "t-1", Status: models.TaskPending}},
			input: &Input{SessionID: "s-1", RecipientEmail: "manager@example.com"},
		},
		{
			name:  "no recipients",
			tasks: approvedTasks(),
			input: &Input{SessionID: "s-1"},
		},
		{
			name:      "channels disabled",
			tasks:     approvedTasks(),
			input:     &Input{SessionID: "s-1", RecipientEmail: "manager@example.com", RecipientPhone: "+15551234567"},
			configure: func(c *Config) { c.EmailEnabled = false; c.SMSEnabled = false },
		},
		{
			name:   "no email client",
			tasks:  approvedTasks(),
			input:  &Input{SessionID: "s-1", RecipientEmail: "manager@example.com"},
			nilSES: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, _ := newStore(t)
			seedSession(t, store, tt.tasks)
			mockSES := &MockSESService{}
			mockSNS := &MockSNSService{}

			h := newTestHandler(t, store, mockSES, mockSNS)
			if tt.nilSES {
				h = newTestHandler(t, store, nil, mockSNS)
			}
			if tt.configure != nil {
				tt.configure(h.config)
			}

			out, err := h.Execute(context.Background(), tt.input)
			require.NoError(t, err)
			assert.Equal(t, StatusSkipped, out.Status)
			assert.Empty(t, out.Channels)
			assert.Empty(t, mockSES.calls)
			assert.Empty(t, mockSNS.calls)
		})
	}
}

func TestHandler_Execute_SendFailure(t *testing.T) {
	tests := []struct {
		name    string
		sesErr  error
		snsErr  error
		channel string
	}{
		{name: "email", sesErr: stderrors.New("SES service unavailable"), channel: ChannelEmail},
		{name: "sms", snsErr: stderrors.New("SNS service unavailable"), channel: ChannelSMS},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, _ := newStore(t)
			seedSession(t, store, approvedTasks())
			mockSES := &MockSESService{
				SendEmailFunc: func(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
					return nil, tt.sesErr
				},
			}
			mockSNS := &MockSNSService{
				PublishFunc: func(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
					return nil, tt.snsErr
				},
			}
			h := newTestHandler(t, store, mockSES, mockSNS)

			out, err := h.Execute(context.Background(), &Input{
				SessionID:      "s-1",
				RecipientEmail: "manager@example.com",
				RecipientPhone: "+15551234567",
			})
			require.Error(t, err)
			assert.Nil(t, out)

			stdErr := errors.AsStandardError(err)
			assert.Equal(t, errors.ErrCodeNotificationSendFailed, stdErr.Code)
			assert.True(t, stdErr.Retryable)
			assert.Equal(t, tt.channel, stdErr.Metadata["channel"])
		})
	}
}

func TestHandler_Execute_SessionErrors(t *testing.T) {
	t.Run("missing session", func(t *testing.T) {
		store, _ := newStore(t)
		h := newTestHandler(t, store, &MockSESService{}, &MockSNSService{})

		_, err := h.Execute(context.Background(), &Input{SessionID: "s-missing"})
		require.Error(t, err)
		assert.Equal(t, errors.ErrCodeSessionNotFound, errors.AsStandardError(err).Code)
	})

	t.Run("store unavailable", func(t *testing.T) {
		store, mr := newStore(t)
		mr.SetError("ERR store unavailable")
		h := newTestHandler(t, store, &MockSESService{}, &MockSNSService{})

		_, err := h.Execute(context.Background(), &Input{SessionID: "s-1"})
		require.Error(t, err)
		assert.Equal(t, errors.ErrCodeSessionStoreFailed, errors.AsStandardError(err).Code)
	})
}

func TestInputSchema(t *testing.T) {
	assert.NoError(t, InputSchema.Check(`{"sessionId":"s-1","recipientEmail":"a@b.io","recipientPhone":"+15551234567"}`))
	assert.Error(t, InputSchema.Check(`{"recipientEmail":"a@b.io"}`))
	assert.Error(t, InputSchema.Check(`{"sessionId":"s-1","recipientEmail":"not-an-email"}`))
	assert.Error(t, InputSchema.Check(`{"sessionId":"s-1","recipientPhone":"5551234"}`))
}
