// internal/planning/schedule.go
package planning

import (
	"sort"
	"time"

	"upkept-workers/internal/models"
)

// DefaultStaggerDays spaces consecutive scheduled tasks.
const DefaultStaggerDays = 5

// ProposeDates orders tasks by priority (urgent first, stable within a
// priority) and assigns each a scheduled date staggerDays after the
// previous one, starting at start. The input slice is not modified.
func ProposeDates(tasks []models.Task, start time.Time, staggerDays int) []models.Task {
	if staggerDays <= 0 {
		staggerDays = DefaultStaggerDays
	}

	out := make([]models.Task, len(tasks))
	copy(out, tasks)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority.Rank() < out[j].Priority.Rank()
	})

	for i := range out {
		out[i].ScheduledDate = start.AddDate(0, 0, i*staggerDays).Format(dateLayout)
	}
	return out
}
