// internal/planning/discovery.go
package planning

import (
	"context"
	"fmt"
	"strconv"

	"golang.org/x/sync/errgroup"

	"upkept-workers/internal/common/logger"
	"upkept-workers/internal/common/metrics"
	"upkept-workers/internal/models"
	"upkept-workers/internal/vendors"
)

// DefaultConcurrency bounds parallel per-task discovery in DiscoverAll.
const DefaultConcurrency = 4

// CandidateSearcher looks up vendor candidates for generated queries.
// *vendors.Searcher satisfies it.
type CandidateSearcher interface {
	Search(ctx context.Context, service models.ServiceProfile, queries []string) ([]models.Vendor, error)
}

// Discoverer staffs task templates with ranked vendors. Candidates come from
// the searcher when one is configured and returns hits; otherwise they are
// looked up in the catalog.
type Discoverer struct {
	catalog     *vendors.Catalog
	searcher    CandidateSearcher
	logger      logger.Logger
	concurrency int
}

func NewDiscoverer(catalog *vendors.Catalog, searcher CandidateSearcher, log logger.Logger, concurrency int) *Discoverer {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Discoverer{
		catalog:     catalog,
		searcher:    searcher,
		logger:      log,
		concurrency: concurrency,
	}
}

// HasCatalog reports whether there is any vendor to rank against.
func (d *Discoverer) HasCatalog() bool {
	return d.catalog != nil && d.catalog.Len() > 0
}

// DiscoverTask ranks vendors for one template and returns the resulting
// pending task. A template nobody qualifies for still yields a task, with
// no selected vendor and a fallback estimate.
func (d *Discoverer) DiscoverTask(ctx context.Context, id string, tmpl models.TaskTemplate, sc models.VendorSearchContext, assets []models.Asset, mode models.OptimizationMode) models.Task {
	queries := vendors.BuildVendorQueries(tmpl.Service, sc, contextHints(tmpl.AssetID, assets))
	candidates := d.candidates(ctx, tmpl.Service, queries)

	priceKey := tmpl.Service.Subcategory
	if priceKey == "" {
		priceKey = string(tmpl.Service.Category)
	}
	marketPrice := d.catalog.MarketPrice(priceKey)

	result := vendors.RankVendors(candidates, models.VendorSearchRequest{
		Service: tmpl.Service,
		Context: sc,
		Mode:    mode,
	}, marketPrice)

	category := string(tmpl.Service.Category)
	metrics.VendorCandidates.WithLabelValues(category).Observe(float64(len(candidates)))

	fields := map[string]interface{}{
		"taskId":      id,
		"category":    category,
		"candidates":  len(candidates),
		"survivors":   len(result.Scored),
		"marketPrice": marketPrice,
	}
	if result.Selected != nil {
		metrics.VendorRankings.WithLabelValues(category, metrics.OutcomeSelected).Inc()
		fields["vendorId"] = result.Selected.ID
		fields["score"] = result.Scored[0].Score.Total
		d.logger.Info("vendor selected", fields)
	} else {
		metrics.VendorRankings.WithLabelValues(category, metrics.OutcomeNoVendor).Inc()
		d.logger.Warn("no vendor passed filters", fields)
	}

	return models.Task{
		ID:                 id,
		Title:              tmpl.Title,
		Description:        tmpl.Description,
		AssetID:            tmpl.AssetID,
		ComplianceID:       tmpl.ComplianceID,
		Status:             models.TaskPending,
		Priority:           tmpl.Priority,
		DueDate:            tmpl.DueDate,
		EstimatedCost:      vendors.EstimatedCost(result),
		MarketPrice:        marketPrice,
		SelectedVendor:     result.Selected,
		AlternativeVendors: result.Alternatives,
		Reasoning: vendors.BuildTaskReasoning(vendors.ReasoningInput{
			Title:          tmpl.Title,
			Priority:       tmpl.Priority,
			Service:        tmpl.Service,
			Mode:           mode,
			CandidateCount: len(candidates),
			MarketPrice:    marketPrice,
			Result:         result,
		}),
		RequiresApproval: tmpl.RequiresApproval,
	}
}

// DiscoverAll runs DiscoverTask for every template with bounded
// parallelism. Tasks come back in template order with ids t-1, t-2, ...
// The only error is cancellation of ctx.
func (d *Discoverer) DiscoverAll(ctx context.Context, templates []models.TaskTemplate, sc models.VendorSearchContext, assets []models.Asset, mode models.OptimizationMode) ([]models.Task, error) {
	tasks := make([]models.Task, len(templates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.concurrency)

	for i, tmpl := range templates {
		i, tmpl := i, tmpl
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			tasks[i] = d.DiscoverTask(gctx, TaskID(i), tmpl, sc, assets, mode)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("vendor discovery interrupted: %w", err)
	}
	return tasks, nil
}

// TaskID is the id of the task built from the i-th template.
func TaskID(i int) string {
	return "t-" + strconv.Itoa(i+1)
}

func (d *Discoverer) candidates(ctx context.Context, service models.ServiceProfile, queries []string) []models.Vendor {
	if d.searcher != nil {
		found, err := d.searcher.Search(ctx, service, queries)
		switch {
		case err != nil:
			d.logger.Warn("vendor search failed, using catalog", map[string]interface{}{
				"category": string(service.Category),
				"error":    err.Error(),
			})
		case len(found) > 0:
			return found
		}
	}
	return d.catalog.FindVendors(service)
}

// contextHints sharpens queries with what is known about the linked asset.
func contextHints(assetID string, assets []models.Asset) []string {
	if assetID == "" {
		return nil
	}
	for _, a := range assets {
		if a.ID != assetID {
			continue
		}
		var hints []string
		if a.Location != "" {
			hints = append(hints, a.Location)
		}
		if a.InstalledYear > 0 {
			hints = append(hints, "installed "+strconv.Itoa(a.InstalledYear))
		}
		for _, tag := range a.Tags {
			if tag != "" {
				hints = append(hints, tag)
			}
		}
		return hints
	}
	return nil
}
