// internal/session/approval.go
package session

import (
	"errors"
	"fmt"
	"time"

	"upkept-workers/internal/models"
)

var (
	ErrTaskNotFound     = errors.New("task not found")
	ErrInvalidAction    = errors.New("invalid approval action")
	ErrNoVendorAssigned = errors.New("task has no vendor assigned")
)

type Action string

const (
	ActionApprove    Action = "approve"
	ActionApproveAll Action = "approve_all"
	ActionReject     Action = "reject"
)

func (a Action) Valid() bool {
	switch a {
	case ActionApprove, ActionApproveAll, ActionReject:
		return true
	}
	return false
}

type ApprovalRequest struct {
	TaskID        string `json:"taskId"`
	Action        Action `json:"action"`
	ScheduledDate string `json:"scheduledDate,omitempty"`
}

// ApplyApproval applies a human decision to a session snapshot and returns
// the updated snapshot with graph and analytics rebuilt. The input state is
// not modified.
//
// approve marks one task approved and stamps approvedAt. approve_all does
// the same for every pending task that has a vendor. reject returns one
// task to pending. A task without a selected vendor cannot be approved.
// The phase becomes approved once any task is approved.
func ApplyApproval(state models.SystemState, req ApprovalRequest, now time.Time) (models.SystemState, error) {
	if !req.Action.Valid() {
		return state, fmt.Errorf("%w: %q", ErrInvalidAction, req.Action)
	}

	tasks := make([]models.Task, len(state.Tasks))
	copy(tasks, state.Tasks)
	stamp := now.UTC().Format(time.RFC3339)

	approve := func(t *models.Task) {
		t.Status = models.TaskApproved
		t.ApprovedAt = stamp
		if req.ScheduledDate != "" {
			t.ScheduledDate = req.ScheduledDate
		}
	}

	if req.Action == ActionApproveAll {
		for i := range tasks {
			if tasks[i].Status == models.TaskPending && tasks[i].SelectedVendor != nil {
				approve(&tasks[i])
			}
		}
	} else {
		idx := -1
		for i := range tasks {
			if tasks[i].ID == req.TaskID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return state, fmt.Errorf("%w: %s", ErrTaskNotFound, req.TaskID)
		}

		switch req.Action {
		case ActionApprove:
			if tasks[idx].SelectedVendor == nil {
				return state, fmt.Errorf("%w: %s", ErrNoVendorAssigned, req.TaskID)
			}
			approve(&tasks[idx])
		case ActionReject:
			tasks[idx].Status = models.TaskPending
			tasks[idx].ApprovedAt = ""
		}
	}

	state.Tasks = tasks
	for _, t := range tasks {
		if t.Status == models.TaskApproved {
			state.Phase = models.PhaseApproved
			break
		}
	}
	state.LastUpdated = stamp
	return Refresh(state), nil
}
