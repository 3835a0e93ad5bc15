package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initSimulationMetrics() {
	r.SimulationsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "missionsim_simulations_total",
			Help: "Total number of simulation runs",
		},
		[]string{"scenario", "status"},
	)

	r.SimulationDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "missionsim_simulation_duration_seconds",
			Help:    "Simulation run duration in seconds, graph build included",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
		},
		[]string{"scenario"},
	)

	r.SimulationAffectedComponents = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "missionsim_simulation_affected_components",
			Help:    "Number of components affected per simulation",
			Buckets: []float64{1, 2, 5, 10, 25, 50, 100, 250, 1000},
		},
		[]string{"scenario"},
	)

	r.SimulationScoreDelta = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "missionsim_simulation_score_delta",
			Help:    "Mission score lost per simulation, in percentage points",
			Buckets: []float64{1, 5, 10, 25, 50, 75, 100},
		},
		[]string{"scenario"},
	)

	r.ValidationErrorsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "missionsim_validation_errors_total",
			Help: "Total number of rejected simulation inputs by kind",
		},
		[]string{"kind"},
	)

	r.GraphNodes = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "missionsim_graph_nodes",
			Help:    "Number of components in simulated architectures",
			Buckets: []float64{1, 5, 10, 50, 100, 500, 1000, 5000},
		},
	)
}
