// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	VendorRankings = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vendor_rankings_total",
			Help: "Total number of vendor rankings by service category and outcome",
		},
		[]string{"category", "outcome"},
	)

	VendorCandidates = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vendor_candidates",
			Help:    "Number of vendor candidates considered per ranking",
			Buckets: []float64{0, 1, 2, 3, 5, 8, 13, 21},
		},
		[]string{"category"},
	)
)

// Ranking outcomes.
const (
	OutcomeSelected = "selected"
	OutcomeNoVendor = "no_vendor"
)
