package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Sync outcomes. Failures are labelled with the sync error code instead.
const (
	OutcomeSuccess = "success"
)

var (
	syncTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gitfolio_sync_total",
			Help: "Total number of sync attempts by outcome",
		},
		[]string{"outcome"},
	)

	syncDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gitfolio_sync_duration_seconds",
			Help:    "Duration of sync attempts in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"outcome"},
	)

	syncStepFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gitfolio_sync_step_failures_total",
			Help: "Total number of sync failures by failing step",
		},
		[]string{"step"},
	)

	syncRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gitfolio_sync_rejections_total",
			Help: "Total number of syncs refused before any work, by reason",
		},
		[]string{"reason"},
	)

	repositoriesSynced = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gitfolio_sync_repositories",
			Help:    "Number of repositories written per successful sync",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100},
		},
	)

	repositoriesPruned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gitfolio_sync_repositories_pruned_total",
			Help: "Total number of stale repositories deleted by sync",
		},
	)

	syncsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "gitfolio_syncs_in_flight",
			Help: "Number of syncs currently running",
		},
	)

	profilesSynced = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gitfolio_profile_synced_events_total",
			Help: "Total number of profile.synced events handled",
		},
	)

	readPolicyMisconfigured = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gitfolio_read_policy_misconfigured_total",
			Help: "Total number of caller-scoped reads that could not see stored rows",
		},
	)

	generationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gitfolio_generations_total",
			Help: "Total number of portfolio generations by lifecycle status reached",
		},
		[]string{"status"},
	)
)

// SyncRecorder records the metrics of sync attempts.
// The zero value is ready to use.
type SyncRecorder struct{}

// SyncAttempt is one running sync. Exactly one of Succeeded, Rejected or Failed
// must be called.
type SyncAttempt struct {
	start time.Time
}

// Started marks a sync as running
func (SyncRecorder) Started() *SyncAttempt {
	syncsInFlight.Inc()
	return &SyncAttempt{start: time.Now()}
}

func (a *SyncAttempt) finish(outcome string) {
	syncsInFlight.Dec()
	syncTotal.WithLabelValues(outcome).Inc()
	syncDuration.WithLabelValues(outcome).Observe(time.Since(a.start).Seconds())
}

func (a *SyncAttempt) Succeeded() {
	a.finish(OutcomeSuccess)
}

// Rejected records a sync refused with code. It is not a step failure.
func (a *SyncAttempt) Rejected(code string) {
	a.finish(code)
	syncRejections.WithLabelValues(code).Inc()
}

// Failed records a sync that failed with code at step
func (a *SyncAttempt) Failed(code, step string) {
	a.finish(code)
	if step != "" {
		syncStepFailures.WithLabelValues(step).Inc()
	}
}

func (SyncRecorder) RepositoriesWritten(n int) {
	repositoriesSynced.Observe(float64(n))
}

func (SyncRecorder) RepositoriesPruned(n int64) {
	if n > 0 {
		repositoriesPruned.Add(float64(n))
	}
}

// ProfileSynced counts a handled profile.synced event
func ProfileSynced() {
	profilesSynced.Inc()
}

// ReadPolicyMisconfigured counts a scoped read that hit a policy gap
func ReadPolicyMisconfigured() {
	readPolicyMisconfigured.Inc()
}

// GenerationStatus counts a portfolio generation entering status
func GenerationStatus(status string) {
	generationsTotal.WithLabelValues(status).Inc()
}
