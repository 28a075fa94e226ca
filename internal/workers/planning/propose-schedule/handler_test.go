package proposeschedule

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"upkept-workers/internal/common/errors"
	"upkept-workers/internal/common/logger"
	"upkept-workers/internal/models"
)

func newTestHandler(t *testing.T) *Handler {
	h := NewHandler(LoadConfig(), logger.NewTestLogger(t))
	h.now = func() time.Time { return time.Date(2025, 2, 20, 22, 15, 0, 0, time.UTC) }
	return h
}

func testTasks() []models.Task {
	return []models.Task{
		{ID: "t-1", Priority: models.PriorityMedium},
		{ID: "t-2", Priority: models.PriorityUrgent},
		{ID: "t-3", Priority: models.PriorityHigh},
	}
}

func scheduled(tasks []models.Task) ([]string, []string) {
	ids := make([]string, len(tasks))
	dates := make([]string, len(tasks))
	for i, task := range tasks {
		ids[i] = task.ID
		dates[i] = task.ScheduledDate
	}
	return ids, dates
}

func TestHandler_Execute_Success(t *testing.T) {
	tests := []struct {
		name      string
		input     *Input
		wantDates []string
	}{
		{
			name:      "explicit start and stagger",
			input:     &Input{Tasks: testTasks(), StartDate: "2025-03-03", StaggerDays: 7},
			wantDates: []string{"2025-03-03", "2025-03-10", "2025-03-17"},
		},
		{
			name:      "configured stagger",
			input:     &Input{Tasks: testTasks(), StartDate: "2025-03-03"},
			wantDates: []string{"2025-03-03", "2025-03-08", "2025-03-13"},
		},
		{
			name:      "starts the day after today",
			input:     &Input{Tasks: testTasks()},
			wantDates: []string{"2025-02-21", "2025-02-26", "2025-03-03"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(t)

			output, err := h.Execute(context.Background(), tt.input)

			require.NoError(t, err)
			ids, dates := scheduled(output.Tasks)
			assert.Equal(t, []string{"t-2", "t-3", "t-1"}, ids)
			assert.Equal(t, tt.wantDates, dates)
			assert.Equal(t, tt.wantDates[0], output.FirstDate)
			assert.Equal(t, tt.wantDates[2], output.LastDate)
		})
	}
}

func TestHandler_Execute_NoTasks(t *testing.T) {
	h := newTestHandler(t)

	output, err := h.Execute(context.Background(), &Input{})

	require.NoError(t, err)
	assert.Empty(t, output.Tasks)
	assert.Empty(t, output.FirstDate)
	assert.Empty(t, output.LastDate)
}

func TestHandler_Execute_InvalidStartDate(t *testing.T) {
	h := newTestHandler(t)

	_, err := h.Execute(context.Background(), &Input{Tasks: testTasks(), StartDate: "03/03/2025"})

	var stdErr *errors.StandardError
	require.True(t, stderrors.As(err, &stdErr))
	assert.Equal(t, errors.ErrCodeInvalidJobInput, stdErr.Code)
}

func TestInputSchema(t *testing.T) {
	assert.True(t, InputSchema.Validate(`{"tasks": [{"id": "t-1", "priority": "high"}], "startDate": "2025-03-03"}`).Valid)
	assert.False(t, InputSchema.Validate(`{"tasks": [{"id": "t-1"}], "startDate": "March 3"}`).Valid)
	assert.False(t, InputSchema.Validate(`{"tasks": [{"id": "t-1"}], "staggerDays": 365}`).Valid)
	assert.False(t, InputSchema.Validate(`{"tasks": [{"priority": "high"}]}`).Valid)
	assert.False(t, InputSchema.Validate(`{}`).Valid)
}
