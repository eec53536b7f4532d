package telemetry

import (
	"log"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/mohammad-safakhou/weekender/config"
)

// Telemetry tracks run and stage outcomes. All methods are safe on a
// nil receiver so tests and one-shot CLI paths can skip wiring it.
type Telemetry struct {
	config config.TelemetryConfig
	logger *log.Logger

	runsTotal        *prometheus.CounterVec
	stageLatency     *prometheus.HistogramVec
	stageFallbacks   *prometheus.CounterVec
	enrichmentTotals *prometheus.CounterVec

	mu         sync.RWMutex
	totalRuns  int64
	failedRuns int64
}

// NewTelemetry creates a telemetry instance and registers its collectors
// with the given registerer (usually prometheus.DefaultRegisterer).
func NewTelemetry(cfg config.TelemetryConfig, reg prometheus.Registerer) *Telemetry {
	t := &Telemetry{
		config: cfg,
		logger: log.New(log.Writer(), "[TELEMETRY] ", log.LstdFlags),
		runsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "weekender_runs_total",
			Help: "Pipeline runs by terminal state.",
		}, []string{"state"}),
		stageLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "weekender_stage_duration_seconds",
			Help:    "Stage execution latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"stage"}),
		stageFallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "weekender_stage_fallbacks_total",
			Help: "Deterministic fallbacks applied per stage.",
		}, []string{"stage"}),
		enrichmentTotals: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "weekender_enrichment_lookups_total",
			Help: "Venue enrichment lookups by outcome.",
		}, []string{"outcome"}),
	}
	if reg != nil && cfg.Enabled {
		reg.MustRegister(t.runsTotal, t.stageLatency, t.stageFallbacks, t.enrichmentTotals)
	}
	return t
}

// RecordRun records a completed run with its terminal state.
func (t *Telemetry) RecordRun(state string, d time.Duration) {
	if t == nil {
		return
	}
	t.mu.Lock()
	t.totalRuns++
	if state != "done" {
		t.failedRuns++
	}
	t.mu.Unlock()
	t.runsTotal.WithLabelValues(state).Inc()
	if t.config.Enabled {
		t.logger.Printf("run finished state=%s duration=%s", state, d)
	}
}

// RecordStage records one stage execution.
func (t *Telemetry) RecordStage(stage string, d time.Duration) {
	if t == nil {
		return
	}
	t.stageLatency.WithLabelValues(stage).Observe(d.Seconds())
}

// RecordFallback records a deterministic fallback applied by a stage.
func (t *Telemetry) RecordFallback(stage string) {
	if t == nil {
		return
	}
	t.stageFallbacks.WithLabelValues(stage).Inc()
}

// RecordEnrichment records an enrichment lookup outcome ("hit", "miss"
// or "error").
func (t *Telemetry) RecordEnrichment(outcome string) {
	if t == nil {
		return
	}
	t.enrichmentTotals.WithLabelValues(outcome).Inc()
}

// Totals returns the run counters.
func (t *Telemetry) Totals() (total, failed int64) {
	if t == nil {
		return 0, 0
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.totalRuns, t.failedRuns
}
