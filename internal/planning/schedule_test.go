package planning

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"upkept-workers/internal/models"
)

func TestProposeDates(t *testing.T) {
	tasks := []models.Task{
		{ID: "a", Priority: models.PriorityMedium},
		{ID: "b", Priority: models.PriorityUrgent},
		{ID: "c", Priority: models.PriorityLow},
		{ID: "d", Priority: models.PriorityHigh},
		{ID: "e", Priority: models.PriorityUrgent},
	}
	start := time.Date(2025, 2, 24, 0, 0, 0, 0, time.UTC)

	got := ProposeDates(tasks, start, 5)

	ids := make([]string, len(got))
	dates := make([]string, len(got))
	for i, task := range got {
		ids[i] = task.ID
		dates[i] = task.ScheduledDate
	}
	assert.Equal(t, []string{"b", "e", "d", "a", "c"}, ids)
	assert.Equal(t, []string{"2025-02-24", "2025-03-01", "2025-03-06", "2025-03-11", "2025-03-16"}, dates)

	for _, task := range tasks {
		assert.Empty(t, task.ScheduledDate, "input must not be modified")
	}
}

func TestProposeDates_DefaultStagger(t *testing.T) {
	tasks := []models.Task{{ID: "a"}, {ID: "b"}}
	start := time.Date(2025, 12, 30, 0, 0, 0, 0, time.UTC)

	got := ProposeDates(tasks, start, 0)
	assert.Equal(t, "2025-12-30", got[0].ScheduledDate)
	assert.Equal(t, "2026-01-04", got[1].ScheduledDate)
}

func TestProposeDates_Empty(t *testing.T) {
	assert.Empty(t, ProposeDates(nil, time.Now(), 5))
}
