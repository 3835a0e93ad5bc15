package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initStoreMetrics() {
	r.StoreArchitecturesTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "missionsim_store_architectures_total",
			Help: "Total number of stored architectures",
		},
	)

	r.StoreOperationsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "missionsim_store_operations_total",
			Help: "Total number of architecture store operations",
		},
		[]string{"operation", "status"},
	)

	r.StoreOperationDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "missionsim_store_operation_duration_seconds",
			Help:    "Architecture store operation duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
		},
		[]string{"operation"},
	)
}
