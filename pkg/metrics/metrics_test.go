package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func counterValue(t *testing.T, vec *prometheus.CounterVec, labels ...string) float64 {
	t.Helper()
	counter, err := vec.GetMetricWithLabelValues(labels...)
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}
	var metric dto.Metric
	if err := counter.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	return metric.Counter.GetValue()
}

func histogramSample(t *testing.T, vec *prometheus.HistogramVec, labels ...string) (uint64, float64) {
	t.Helper()
	observer, err := vec.GetMetricWithLabelValues(labels...)
	if err != nil {
		t.Fatalf("Failed to get histogram: %v", err)
	}
	var metric dto.Metric
	if err := observer.(prometheus.Histogram).Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	return metric.Histogram.GetSampleCount(), metric.Histogram.GetSampleSum()
}

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r == nil {
		t.Fatal("NewRegistry() returned nil")
	}

	// Verify all metrics are initialized
	if r.HTTPRequestsTotal == nil {
		t.Error("HTTPRequestsTotal not initialized")
	}
	if r.SimulationsTotal == nil {
		t.Error("SimulationsTotal not initialized")
	}
	if r.ValidationErrorsTotal == nil {
		t.Error("ValidationErrorsTotal not initialized")
	}
	if r.StoreArchitecturesTotal == nil {
		t.Error("StoreArchitecturesTotal not initialized")
	}
	if r.registry == nil {
		t.Error("Prometheus registry not initialized")
	}
}

func TestDefaultRegistry(t *testing.T) {
	// Should return the same instance
	r1 := DefaultRegistry()
	r2 := DefaultRegistry()

	if r1 != r2 {
		t.Error("DefaultRegistry() should return the same instance")
	}
}

func TestRecordHTTPRequest(t *testing.T) {
	r := NewRegistry()

	r.RecordHTTPRequest("POST", "/architectures/{id}/simulate", "200", 100*time.Millisecond)
	r.RecordHTTPRequest("GET", "/architectures", "200", 200*time.Millisecond)
	r.RecordHTTPRequest("POST", "/architectures/{id}/simulate", "422", 50*time.Millisecond)

	if got := counterValue(t, r.HTTPRequestsTotal, "POST", "/architectures/{id}/simulate", "200"); got != 1 {
		t.Errorf("Counter value = %v, want 1", got)
	}
	if got := counterValue(t, r.HTTPRequestsTotal, "POST", "/architectures/{id}/simulate", "422"); got != 1 {
		t.Errorf("Counter value = %v, want 1", got)
	}
}

func TestRecordSimulation(t *testing.T) {
	r := NewRegistry()

	r.RecordSimulation("node_compromise", 2*time.Millisecond, 3, 3, -100)
	r.RecordSimulation("node_compromise", 1*time.Millisecond, 3, 1, -33.33)

	if got := counterValue(t, r.SimulationsTotal, "node_compromise", StatusSuccess); got != 2 {
		t.Errorf("Simulations success = %v, want 2", got)
	}

	count, sum := histogramSample(t, r.SimulationAffectedComponents, "node_compromise")
	if count != 2 || sum != 4 {
		t.Errorf("Affected components count=%d sum=%v, want 2 and 4", count, sum)
	}

	_, lost := histogramSample(t, r.SimulationScoreDelta, "node_compromise")
	if lost < 133.32 || lost > 133.34 {
		t.Errorf("Score delta sum = %v, want ~133.33 points lost", lost)
	}

	var metric dto.Metric
	if err := r.GraphNodes.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	if metric.Histogram.GetSampleCount() != 2 {
		t.Errorf("Graph nodes sample count = %v, want 2", metric.Histogram.GetSampleCount())
	}
}

func TestRecordSimulationFailure(t *testing.T) {
	r := NewRegistry()

	r.RecordSimulationFailure("node_compromise", "target-not-found")
	r.RecordSimulationFailure("ransomware", "unknown-scenario")
	r.RecordSimulationFailure("node_compromise", "")

	if got := counterValue(t, r.SimulationsTotal, "node_compromise", StatusValidation); got != 1 {
		t.Errorf("Validation failures = %v, want 1", got)
	}
	if got := counterValue(t, r.SimulationsTotal, "node_compromise", StatusError); got != 1 {
		t.Errorf("Internal failures = %v, want 1", got)
	}
	if got := counterValue(t, r.ValidationErrorsTotal, "unknown-scenario"); got != 1 {
		t.Errorf("unknown-scenario errors = %v, want 1", got)
	}
	if got := counterValue(t, r.ValidationErrorsTotal, "target-not-found"); got != 1 {
		t.Errorf("target-not-found errors = %v, want 1", got)
	}
}

func TestRecordStoreOperation(t *testing.T) {
	r := NewRegistry()

	r.RecordStoreOperation("create", "success", 10*time.Millisecond)
	r.RecordStoreOperation("create", "success", 20*time.Millisecond)
	r.RecordStoreOperation("get", "not_found", 5*time.Millisecond)
	r.SetArchitectureCount(7)

	if got := counterValue(t, r.StoreOperationsTotal, "create", "success"); got != 2 {
		t.Errorf("Create success = %v, want 2", got)
	}

	var metric dto.Metric
	if err := r.StoreArchitecturesTotal.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	if metric.Gauge.GetValue() != 7 {
		t.Errorf("Architectures = %v, want 7", metric.Gauge.GetValue())
	}
}

func TestUpdateSystemMetrics(t *testing.T) {
	r := NewRegistry()
	r.UpdateSystemMetrics()

	var metric dto.Metric
	if err := r.GoRoutines.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	if metric.Gauge.GetValue() < 1 {
		t.Errorf("GoRoutines = %v, want >= 1", metric.Gauge.GetValue())
	}

	if err := r.MemorySysBytes.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	if metric.Gauge.GetValue() <= 0 {
		t.Errorf("MemorySysBytes = %v, want > 0", metric.Gauge.GetValue())
	}
}

func TestGetPrometheusRegistry(t *testing.T) {
	r := NewRegistry()
	promRegistry := r.GetPrometheusRegistry()

	if promRegistry == nil {
		t.Fatal("GetPrometheusRegistry() returned nil")
	}

	metrics, err := promRegistry.Gather()
	if err != nil {
		t.Fatalf("Failed to gather metrics: %v", err)
	}

	expectedMetrics := []string{
		"missionsim_store_architectures_total",
		"missionsim_graph_nodes",
		"missionsim_uptime_seconds",
	}

	metricNames := make(map[string]bool)
	for _, m := range metrics {
		metricNames[m.GetName()] = true
	}

	for _, expected := range expectedMetrics {
		if !metricNames[expected] {
			t.Errorf("Expected metric %s not found", expected)
		}
	}
}

func TestHandler(t *testing.T) {
	r := NewRegistry()
	r.RecordSimulation("node_compromise", time.Millisecond, 3, 3, -100)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	if rec.Code != 200 {
		t.Fatalf("Status = %d, want 200", rec.Code)
	}
	body, _ := io.ReadAll(rec.Body)
	for _, want := range []string{
		`missionsim_simulations_total{scenario="node_compromise",status="success"} 1`,
		"missionsim_goroutines",
	} {
		if !strings.Contains(string(body), want) {
			t.Errorf("Exposition missing %q", want)
		}
	}
}

func TestConcurrentMetricUpdates(t *testing.T) {
	r := NewRegistry()

	done := make(chan bool)
	for i := 0; i < 10; i++ {
		go func() {
			for j := 0; j < 100; j++ {
				r.RecordSimulation("node_compromise", time.Millisecond, 3, 1, -33.33)
			}
			done <- true
		}()
	}

	for i := 0; i < 10; i++ {
		<-done
	}

	if got := counterValue(t, r.SimulationsTotal, "node_compromise", StatusSuccess); got != 1000 {
		t.Errorf("Counter = %v, want 1000", got)
	}
}

func TestMetricNaming(t *testing.T) {
	r := NewRegistry()
	r.RecordHTTPRequest("GET", "/health", "200", time.Millisecond)
	r.RecordSimulationFailure("node_compromise", "empty-architecture")
	r.RecordStoreOperation("list", "success", time.Millisecond)

	metrics, err := r.GetPrometheusRegistry().Gather()
	if err != nil {
		t.Fatalf("Failed to gather metrics: %v", err)
	}

	// Verify all metrics have the missionsim_ prefix
	for _, m := range metrics {
		name := m.GetName()
		if !strings.HasPrefix(name, "missionsim_") {
			t.Errorf("Metric %s does not have missionsim_ prefix", name)
		}
	}
}

func BenchmarkRecordSimulation(b *testing.B) {
	r := NewRegistry()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.RecordSimulation("node_compromise", time.Millisecond, 100, 50, -50)
	}
}

func TestHTTPInFlightAndResponseSize(t *testing.T) {
	r := NewRegistry()

	r.IncHTTPRequestsInFlight()
	r.IncHTTPRequestsInFlight()
	r.DecHTTPRequestsInFlight()
	r.RecordResponseSize("GET", "GET /health", 512)

	var metric dto.Metric
	if err := r.HTTPRequestsInFlight.Write(&metric); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	if metric.Gauge.GetValue() != 1 {
		t.Errorf("In flight = %v, want 1", metric.Gauge.GetValue())
	}

	count, sum := histogramSample(t, r.HTTPResponseSizeBytes, "GET", "GET /health")
	if count != 1 || sum != 512 {
		t.Errorf("Response size count=%d sum=%v, want 1 and 512", count, sum)
	}
}
