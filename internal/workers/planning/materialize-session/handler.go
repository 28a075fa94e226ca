// internal/workers/planning/materialize-session/handler.go
package materializesession

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
	TaskType = "materialize-session"
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

// execute replaces the session's entity lists with the planning results and
// moves it to review. Graph and analytics are rebuilt by the store.
func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	state := session.NewState(input.SessionID, h.now())
	if input.SessionID != "" {
		existing, err := session.GetOrNew(ctx, h.store, input.SessionID, h.now())
		if err != nil {
			return nil, errors.NewSessionStoreError(err)
		}
		state = existing
	}

	if input.InputDescription != "" {
		state.InputDescription = input.InputDescription
	}
	if input.Mode != "" {
		state.OptimizationMode = input.Mode.Normalize()
	}
	state.Assets = nonNil(input.Assets)
	state.ComplianceItems = nonNil(input.ComplianceItems)
	state.Tasks = nonNil(input.Tasks)
	state.Phase = phaseFor(state)

	saved, err := h.store.Save(ctx, state)
	if err != nil {
		if stderrors.Is(err, session.ErrStoreFailed) {
			return nil, errors.NewSessionStoreError(err)
		}
		return nil, errors.NewInternalError(err)
	}

	h.logger.Info("session materialized", map[string]interface{}{
		"sessionId":       saved.SessionID,
		"phase":           string(saved.Phase),
		"tasks":           len(saved.Tasks),
		"complianceScore": saved.Analytics.ComplianceScore,
	})

	return &Output{
		SessionID:        saved.SessionID,
		Phase:            saved.Phase,
		TaskCount:        saved.Analytics.TotalTasks,
		ComplianceScore:  saved.Analytics.ComplianceScore,
		TotalCost:        saved.Analytics.TotalCost,
		EstimatedSavings: saved.Analytics.EstimatedSavings,
		CriticalItems:    saved.Analytics.CriticalItems,
		GraphNodes:       len(saved.Graph.Nodes),
		GraphEdges:       len(saved.Graph.Edges),
	}, nil
}

// phaseFor keeps an approved session approved; otherwise a session with
// tasks is under review and one with only entities is still in intake.
func phaseFor(state models.SystemState) models.Phase {
	for _, t := range state.Tasks {
		if t.Status == models.TaskApproved {
			return models.PhaseApproved
		}
	}
	switch {
	case len(state.Tasks) > 0:
		return models.PhaseReview
	case len(state.Assets) > 0 || len(state.ComplianceItems) > 0:
		return models.PhaseIntake
	default:
		return models.PhaseIdle
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
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
