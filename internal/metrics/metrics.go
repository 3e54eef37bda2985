// Package metrics exposes Prometheus collectors for the tracker.
package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	sourceChecksTotal     *prometheus.CounterVec
	sourceActivitiesTotal prometheus.Counter
	sourcesDisabledTotal  prometheus.Counter
	roadmapRunsTotal      *prometheus.CounterVec
	roadmapChangesTotal   *prometheus.CounterVec
	notificationsTotal    *prometheus.CounterVec
	jobDurationSeconds    *prometheus.HistogramVec
	jobSkippedTotal       *prometheus.CounterVec

	once sync.Once
)

// Init registers the collectors. It is safe to call more than once.
func Init() {
	once.Do(func() {
		sourceChecksTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tracker_source_checks_total",
				Help: "Total number of source checks, labeled by outcome.",
			},
			[]string{"outcome"},
		)

		sourceActivitiesTotal = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "tracker_source_activities_total",
				Help: "Total number of activities recorded from feeds.",
			},
		)

		sourcesDisabledTotal = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "tracker_sources_disabled_total",
				Help: "Total number of sources disabled after repeated failures.",
			},
		)

		roadmapRunsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tracker_roadmap_runs_total",
				Help: "Total number of roadmap checks, labeled by result.",
			},
			[]string{"result"},
		)

		roadmapChangesTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tracker_roadmap_changes_total",
				Help: "Total number of persisted roadmap changes, labeled by type.",
			},
			[]string{"type"},
		)

		notificationsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tracker_notifications_total",
				Help: "Total number of notifications, labeled by kind and status.",
			},
			[]string{"kind", "status"},
		)

		jobDurationSeconds = promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tracker_job_duration_seconds",
				Help:    "Histogram of scheduled job durations.",
				Buckets: []float64{0.5, 1, 5, 15, 30, 60, 120, 300, 600},
			},
			[]string{"job"},
		)

		jobSkippedTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tracker_job_skipped_total",
				Help: "Total number of ticks skipped because the job was still running.",
			},
			[]string{"job"},
		)
	})
}

// Handler returns an http.Handler for exposing Prometheus metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

func ObserveSourceCheck(outcome string) {
	Init()
	sourceChecksTotal.WithLabelValues(outcome).Inc()
}

func ObserveActivities(n int) {
	Init()
	sourceActivitiesTotal.Add(float64(n))
}

func ObserveSourceDisabled() {
	Init()
	sourcesDisabledTotal.Inc()
}

// ObserveRoadmapRun records one roadmap check: first_run, unchanged, saved or failed.
func ObserveRoadmapRun(result string) {
	Init()
	roadmapRunsTotal.WithLabelValues(result).Inc()
}

func ObserveRoadmapChange(changeType string) {
	Init()
	roadmapChangesTotal.WithLabelValues(changeType).Inc()
}

func ObserveNotification(kind string, err error) {
	Init()
	status := "sent"
	if err != nil {
		status = "failed"
	}
	notificationsTotal.WithLabelValues(kind, status).Inc()
}

func ObserveJob(job string, duration time.Duration) {
	Init()
	jobDurationSeconds.WithLabelValues(job).Observe(duration.Seconds())
}

func ObserveJobSkipped(job string) {
	Init()
	jobSkippedTotal.WithLabelValues(job).Inc()
}
