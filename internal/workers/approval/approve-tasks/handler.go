// internal/workers/approval/approve-tasks/handler.go
package approvetasks

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"upkept-workers/internal/common/errors"
	"upkept-workers/internal/common/logger"
	"upkept-workers/internal/common/metrics"
	"upkept-workers/internal/models"
	"upkept-workers/internal/session"
)

const (
	TaskType = "approve-tasks"
)

type Handler struct {
	config       *Config
	store        session.Store
	logger       logger.Logger
	errorHandler *errors.ErrorHandler
	now          func() time.Time
}

func NewHandler(config *Config, store session.Store, log logger.Logger) *Handler {
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		store:        store,
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
		return nil, storeError(input.SessionID, err)
	}

	updated, err := session.ApplyApproval(state, session.ApprovalRequest{
		TaskID:        input.TaskID,
		Action:        input.Action,
		ScheduledDate: input.ScheduledDate,
	}, h.now())
	if err != nil {
		return nil, approvalError(input, err)
	}

	saved, err := h.store.Save(ctx, updated)
	if err != nil {
		return nil, storeError(input.SessionID, err)
	}

	approvedIDs := make([]string, 0, len(saved.Tasks))
	for _, t := range saved.Tasks {
		if t.Status == models.TaskApproved {
			approvedIDs = append(approvedIDs, t.ID)
		}
	}

	h.logger.Info("approval applied", map[string]interface{}{
		"sessionId": saved.SessionID,
		"action":    string(input.Action),
		"taskId":    input.TaskID,
		"approved":  len(approvedIDs),
	})

	return &Output{
		SessionID:       saved.SessionID,
		Phase:           saved.Phase,
		ApprovedTasks:   saved.Analytics.ApprovedTasks,
		TotalTasks:      saved.Analytics.TotalTasks,
		ComplianceScore: saved.Analytics.ComplianceScore,
		ApprovedTaskIDs: approvedIDs,
	}, nil
}

func storeError(sessionID string, err error) error {
	switch {
	case stderrors.Is(err, session.ErrSessionNotFound):
		return errors.NewSessionNotFoundError(sessionID)
	case stderrors.Is(err, session.ErrStoreFailed):
		return errors.NewSessionStoreError(err)
	default:
		return errors.NewInternalError(err)
	}
}

func approvalError(input *Input, err error) error {
	switch {
	case stderrors.Is(err, session.ErrInvalidAction):
		return errors.NewInvalidApprovalActionError(string(input.Action))
	case stderrors.Is(err, session.ErrTaskNotFound):
		return errors.NewTaskNotFoundError(input.TaskID)
	case stderrors.Is(err, session.ErrNoVendorAssigned):
		return errors.NewNoVendorAssignedError(input.TaskID)
	default:
		return errors.NewInternalError(err)
	}
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
