package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the catalog service.
type Metrics struct {
	RequestTotal       *prometheus.CounterVec
	RequestDurationMs  *prometheus.HistogramVec
	MatchesTotal       *prometheus.CounterVec
	StageDroppedTotal  *prometheus.CounterVec
	CatalogRecords     prometheus.Gauge
	CatalogReloadTotal *prometheus.CounterVec
	RateLimitHitTotal  *prometheus.CounterVec
}

// NewMetrics creates the metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		RequestTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "catalog_request_total",
			Help: "Total number of HTTP requests served.",
		}, []string{"route", "status"}),

		RequestDurationMs: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "catalog_request_duration_ms",
			Help:    "Request duration in milliseconds.",
			Buckets: []float64{0.5, 1, 2, 5, 10, 25, 50, 100, 250},
		}, []string{"route"}),

		MatchesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "catalog_matches_total",
			Help: "Recommended models by bucket.",
		}, []string{"bucket"}),

		StageDroppedTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "catalog_stage_dropped_total",
			Help: "Records removed by each filter stage.",
		}, []string{"stage"}),

		CatalogRecords: f.NewGauge(prometheus.GaugeOpts{
			Name: "catalog_records",
			Help: "Records in the currently loaded catalog.",
		}),

		CatalogReloadTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "catalog_reload_total",
			Help: "Catalog reload attempts.",
		}, []string{"status"}),

		RateLimitHitTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "catalog_rate_limit_hit_total",
			Help: "Requests rejected by the rate limiter.",
		}, []string{"dimension"}),
	}
}

// RequestLabels holds the label values for recording a request.
type RequestLabels struct {
	Route      string
	Status     string
	DurationMs float64
}

// RecordRequest records metrics for a completed request.
func (m *Metrics) RecordRequest(labels RequestLabels) {
	m.RequestTotal.WithLabelValues(labels.Route, labels.Status).Inc()
	m.RequestDurationMs.WithLabelValues(labels.Route).Observe(labels.DurationMs)
}

// RecordMatches adds the bucket counts of one recommendation.
func (m *Metrics) RecordMatches(perfect, good, partial int) {
	m.MatchesTotal.WithLabelValues("perfect").Add(float64(perfect))
	m.MatchesTotal.WithLabelValues("good").Add(float64(good))
	m.MatchesTotal.WithLabelValues("partial").Add(float64(partial))
}

// RecordStage records how many records a filter stage removed.
func (m *Metrics) RecordStage(stage string, in, out int) {
	if in > out {
		m.StageDroppedTotal.WithLabelValues(stage).Add(float64(in - out))
	}
}

// RecordReload records a reload attempt and, on success, the new set size.
func (m *Metrics) RecordReload(err error, records int) {
	if err != nil {
		m.CatalogReloadTotal.WithLabelValues("error").Inc()
		return
	}
	m.CatalogReloadTotal.WithLabelValues("ok").Inc()
	m.CatalogRecords.Set(float64(records))
}

// RecordRateLimitHit records a rejected request.
func (m *Metrics) RecordRateLimitHit(dimension string) {
	m.RateLimitHitTotal.WithLabelValues(dimension).Inc()
}
