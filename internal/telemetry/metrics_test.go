package telemetry

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func value(t *testing.T, m prometheus.Metric) float64 {
	t.Helper()
	var pb dto.Metric
	if err := m.Write(&pb); err != nil {
		t.Fatal(err)
	}
	if pb.Counter != nil {
		return pb.Counter.GetValue()
	}
	return pb.Gauge.GetValue()
}

func series(c prometheus.Collector) int {
	ch := make(chan prometheus.Metric, 16)
	c.Collect(ch)
	close(ch)
	return len(ch)
}

func TestNewMetrics(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	if m.RequestTotal == nil {
		t.Error("RequestTotal should not be nil")
	}
	if m.RequestDurationMs == nil {
		t.Error("RequestDurationMs should not be nil")
	}
	if m.MatchesTotal == nil {
		t.Error("MatchesTotal should not be nil")
	}
	if m.CatalogRecords == nil {
		t.Error("CatalogRecords should not be nil")
	}
}

func TestNewMetrics_SeparateRegistries(t *testing.T) {
	// Two registries must not collide.
	NewMetrics(prometheus.NewRegistry())
	NewMetrics(prometheus.NewRegistry())
}

func TestRecordRequest(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.RecordRequest(RequestLabels{Route: "/v1/recommendations", Status: "200", DurationMs: 1.5})
	m.RecordRequest(RequestLabels{Route: "/v1/recommendations", Status: "200", DurationMs: 3})

	if got := value(t, m.RequestTotal.WithLabelValues("/v1/recommendations", "200")); got != 2 {
		t.Errorf("request_total = %v, want 2", got)
	}

	var metric dto.Metric
	if err := m.RequestDurationMs.WithLabelValues("/v1/recommendations").(prometheus.Histogram).Write(&metric); err != nil {
		t.Fatal(err)
	}
	if metric.Histogram.GetSampleCount() != 2 {
		t.Errorf("expected 2 samples, got %d", metric.Histogram.GetSampleCount())
	}
	if metric.Histogram.GetSampleSum() != 4.5 {
		t.Errorf("expected sum 4.5, got %v", metric.Histogram.GetSampleSum())
	}
}

func TestRecordMatchesAndStages(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.RecordMatches(1, 2, 3)
	m.RecordStage("deployment", 10, 4)
	m.RecordStage("latency", 4, 4)

	for bucket, want := range map[string]float64{"perfect": 1, "good": 2, "partial": 3} {
		if got := value(t, m.MatchesTotal.WithLabelValues(bucket)); got != want {
			t.Errorf("%s = %v, want %v", bucket, got, want)
		}
	}
	if got := value(t, m.StageDroppedTotal.WithLabelValues("deployment")); got != 6 {
		t.Errorf("deployment dropped = %v, want 6", got)
	}
	if got := series(m.StageDroppedTotal); got != 1 {
		t.Errorf("expected only the deployment series, got %d", got)
	}
}

func TestRecordReload(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.RecordReload(nil, 68)
	m.RecordReload(errors.New("boom"), 0)

	if got := value(t, m.CatalogRecords); got != 68 {
		t.Errorf("catalog_records = %v, want 68 (failed reload keeps the gauge)", got)
	}
	if got := value(t, m.CatalogReloadTotal.WithLabelValues("error")); got != 1 {
		t.Errorf("reload errors = %v, want 1", got)
	}
}

func TestRecordRateLimitHit(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())
	m.RecordRateLimitHit("rpm")
	if got := value(t, m.RateLimitHitTotal.WithLabelValues("rpm")); got != 1 {
		t.Errorf("rate limit hits = %v, want 1", got)
	}
}
