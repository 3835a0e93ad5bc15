package metrics

import (
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Simulation outcome labels
const (
	StatusSuccess    = "success"
	StatusValidation = "validation_error"
	StatusError      = "error"
)

// RecordHTTPRequest records an HTTP request with its duration
func (r *Registry) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	r.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	r.HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// RecordResponseSize records the size of an HTTP response body
func (r *Registry) RecordResponseSize(method, path string, size float64) {
	r.HTTPResponseSizeBytes.WithLabelValues(method, path).Observe(size)
}

// IncHTTPRequestsInFlight marks a request as started
func (r *Registry) IncHTTPRequestsInFlight() {
	r.HTTPRequestsInFlight.Inc()
}

// DecHTTPRequestsInFlight marks a request as finished
func (r *Registry) DecHTTPRequestsInFlight() {
	r.HTTPRequestsInFlight.Dec()
}

// RecordSimulation records a successful simulation run. scoreDelta is the
// signed score change; the histogram stores the points lost.
func (r *Registry) RecordSimulation(scenario string, duration time.Duration, nodes, affected int, scoreDelta float64) {
	r.SimulationsTotal.WithLabelValues(scenario, StatusSuccess).Inc()
	r.SimulationDuration.WithLabelValues(scenario).Observe(duration.Seconds())
	r.SimulationAffectedComponents.WithLabelValues(scenario).Observe(float64(affected))
	r.SimulationScoreDelta.WithLabelValues(scenario).Observe(-scoreDelta)
	r.GraphNodes.Observe(float64(nodes))
}

// RecordSimulationFailure records a rejected or failed simulation run.
// kind is the validation error kind, or empty for internal errors.
func (r *Registry) RecordSimulationFailure(scenario, kind string) {
	if kind == "" {
		r.SimulationsTotal.WithLabelValues(scenario, StatusError).Inc()
		return
	}
	r.SimulationsTotal.WithLabelValues(scenario, StatusValidation).Inc()
	r.ValidationErrorsTotal.WithLabelValues(kind).Inc()
}

// RecordStoreOperation records an architecture store operation
func (r *Registry) RecordStoreOperation(operation, status string, duration time.Duration) {
	r.StoreOperationsTotal.WithLabelValues(operation, status).Inc()
	r.StoreOperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// SetArchitectureCount sets the number of stored architectures
func (r *Registry) SetArchitectureCount(n int) {
	r.StoreArchitecturesTotal.Set(float64(n))
}

// UpdateSystemMetrics refreshes uptime, goroutine and memory gauges
func (r *Registry) UpdateSystemMetrics() {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	r.UptimeSeconds.Set(time.Since(r.startTime).Seconds())
	r.GoRoutines.Set(float64(runtime.NumGoroutine()))
	r.MemoryAllocBytes.Set(float64(mem.Alloc))
	r.MemorySysBytes.Set(float64(mem.Sys))
}

// Handler serves the registry in the Prometheus exposition format,
// refreshing system gauges on each scrape.
func (r *Registry) Handler() http.Handler {
	inner := promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		r.UpdateSystemMetrics()
		inner.ServeHTTP(w, req)
	})
}
