// internal/workers/planning/discover-vendors/handler.go
package discovervendors

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"upkept-workers/internal/common/errors"
	"upkept-workers/internal/common/logger"
	"upkept-workers/internal/common/metrics"
	"upkept-workers/internal/models"
	"upkept-workers/internal/planning"
)

const (
	TaskType = "discover-vendors"
)

type Handler struct {
	config       *Config
	discoverer   *planning.Discoverer
	logger       logger.Logger
	errorHandler *errors.ErrorHandler
}

func NewHandler(config *Config, discoverer *planning.Discoverer, log logger.Logger) *Handler {
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		discoverer:   discoverer,
		logger:       l,
		errorHandler: errors.NewErrorHandler(l),
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
	sc := h.searchContext(input.Location)
	if sc.City == "" || sc.State == "" {
		return nil, errors.NewInvalidJobInputError("location city and state are required when no default is configured")
	}

	mode := input.Mode
	if mode == "" {
		mode = h.config.DefaultMode
	}
	mode = mode.Normalize()

	if len(input.Templates) > 0 && !h.discoverer.HasCatalog() {
		return nil, errors.NewVendorCatalogUnavailableError(stderrors.New("vendor catalog is empty"))
	}

	tasks, err := h.discoverer.DiscoverAll(ctx, input.Templates, sc, input.Assets, mode)
	if err != nil {
		if stderrors.Is(err, context.DeadlineExceeded) {
			return nil, errors.NewVendorSearchTimeoutError(err)
		}
		return nil, errors.NewVendorSearchError(err)
	}

	staffed := 0
	for _, t := range tasks {
		if t.SelectedVendor != nil {
			staffed++
		}
	}

	h.logger.Info("vendor discovery finished", map[string]interface{}{
		"tasks":     len(tasks),
		"staffed":   staffed,
		"unstaffed": len(tasks) - staffed,
		"mode":      string(mode),
		"city":      sc.City,
		"state":     sc.State,
	})

	return &Output{
		Tasks:          tasks,
		StaffedCount:   staffed,
		UnstaffedCount: len(tasks) - staffed,
		Mode:           string(mode),
	}, nil
}

// searchContext fills fields missing from the job's location with the
// configured defaults.
func (h *Handler) searchContext(loc *models.VendorSearchContext) models.VendorSearchContext {
	sc := h.config.DefaultContext
	if loc == nil {
		return sc
	}
	if loc.City != "" {
		sc.City = loc.City
	}
	if loc.State != "" {
		sc.State = loc.State
	}
	if loc.Zip != "" {
		sc.Zip = loc.Zip
	}
	if loc.RadiusMiles > 0 {
		sc.RadiusMiles = loc.RadiusMiles
	}
	if loc.PropertyType != "" {
		sc.PropertyType = loc.PropertyType
	}
	return sc
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
