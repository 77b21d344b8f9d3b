// Package metrics records per-run sync counters. The job is one-shot,
// so metrics are pushed to a Pushgateway rather than scraped.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/push"
	"github.com/systmms/secretsync/internal/sync"
)

// Recorder owns a dedicated registry so repeated runs in tests never
// collide with the default registry.
type Recorder struct {
	registry *prometheus.Registry

	secretsDiscovered prometheus.Counter
	secretsSynced     prometheus.Counter
	secretsFailed     prometheus.Counter
	appliesTotal      *prometheus.CounterVec
	runDuration       prometheus.Gauge
	lastRunTimestamp  prometheus.Gauge
}

// NewRecorder creates a Recorder with all metrics registered
func NewRecorder() *Recorder {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Recorder{
		registry: registry,
		secretsDiscovered: factory.NewCounter(prometheus.CounterOpts{
			Name: "secretsync_secrets_discovered_total",
			Help: "Number of tagged secrets returned by discovery",
		}),
		secretsSynced: factory.NewCounter(prometheus.CounterOpts{
			Name: "secretsync_secrets_synced_total",
			Help: "Number of secrets applied to all their namespaces without error",
		}),
		secretsFailed: factory.NewCounter(prometheus.CounterOpts{
			Name: "secretsync_secrets_failed_total",
			Help: "Number of secrets skipped or partially applied",
		}),
		appliesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "secretsync_applies_total",
			Help: "Number of per-namespace apply operations by status",
		}, []string{"status"}),
		runDuration: factory.NewGauge(prometheus.GaugeOpts{
			Name: "secretsync_run_duration_seconds",
			Help: "Wall-clock duration of the last run",
		}),
		lastRunTimestamp: factory.NewGauge(prometheus.GaugeOpts{
			Name: "secretsync_last_run_timestamp_seconds",
			Help: "Unix time of the last completed run",
		}),
	}
}

// Record translates one run's summary into metric values
func (r *Recorder) Record(summary sync.Summary, elapsed time.Duration) {
	r.secretsDiscovered.Add(float64(summary.Discovered))
	r.secretsSynced.Add(float64(summary.Synced))
	r.secretsFailed.Add(float64(summary.Failed))
	r.appliesTotal.WithLabelValues("ok").Add(float64(summary.AppliesOK))
	r.appliesTotal.WithLabelValues("failed").Add(float64(summary.AppliesFailed))
	r.runDuration.Set(elapsed.Seconds())
	r.lastRunTimestamp.Set(float64(time.Now().Unix()))
}

// Push sends the recorded metrics to a Pushgateway under the
// `secretsync` job. Push failures never fail the run; callers log and
// move on.
func (r *Recorder) Push(url string) error {
	return push.New(url, "secretsync").Gatherer(r.registry).Push()
}
