// Package api is the HTTP boundary of the simulator. It loads architectures
// from a store, runs one simulator per request and maps engine validation
// failures to 422 responses.
package api

import (
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/dd0wney/missionsim/pkg/api/middleware"
	"github.com/dd0wney/missionsim/pkg/config"
	"github.com/dd0wney/missionsim/pkg/health"
	"github.com/dd0wney/missionsim/pkg/logging"
	"github.com/dd0wney/missionsim/pkg/metrics"
	"github.com/dd0wney/missionsim/pkg/simulator"
	"github.com/dd0wney/missionsim/pkg/store"
)

const tracerName = "github.com/dd0wney/missionsim/pkg/api"

// WithLogger sets the request and simulation logger.
func WithLogger(logger logging.Logger) Option {
	return func(s *Server) { s.logger = logging.OrNop(logger) }
}

// WithMetrics sets the metrics registry. Without it each Server gets a
// private registry.
func WithMetrics(r *metrics.Registry) Option {
	return func(s *Server) {
		if r != nil {
			s.metricsRegistry = r
		}
	}
}

// WithHealthChecker sets the checker behind the /health endpoints.
func WithHealthChecker(hc *health.HealthChecker) Option {
	return func(s *Server) {
		if hc != nil {
			s.healthChecker = hc
		}
	}
}

// WithTracerProvider sets the provider simulation spans are created from.
// The global provider is used otherwise.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *Server) {
		if tp != nil {
			s.tracer = tp.Tracer(tracerName)
		}
	}
}

// WithCORS sets the CORS policy.
func WithCORS(cfg *middleware.CORSConfig) Option {
	return func(s *Server) { s.corsConfig = cfg }
}

// WithTLS marks the server as served over TLS so HSTS is sent.
func WithTLS() Option {
	return func(s *Server) { s.securityConfig = &middleware.SecurityHeadersConfig{TLSEnabled: true} }
}

// WithScenarios sets the scenarios every simulator is built with.
func WithScenarios(scenarios ...simulator.Scenario) Option {
	return func(s *Server) { s.scenarios = scenarios }
}

// WithTopN sets the criticality ranking length.
func WithTopN(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.topN = n
		}
	}
}

// WithMaxBodyBytes bounds request bodies.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBodyBytes = n
		}
	}
}

// NewServer creates a new API server backed by st.
func NewServer(st store.Store, opts ...Option) *Server {
	s := &Server{
		store:           st,
		logger:          logging.NopLogger{},
		metricsRegistry: metrics.NewRegistry(),
		healthChecker:   health.NewHealthChecker(config.EnvDevelopment, config.Version),
		tracer:          otel.Tracer(tracerName),
		corsConfig:      middleware.DefaultCORSConfig(),
		scenarios:       simulator.DefaultScenarios(),
		topN:            simulator.DefaultTopN,
		maxBodyBytes:    middleware.DefaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the routed handler wrapped in the middleware chain.
//
// RequestID replaces the request, so Logging and Metrics sit inside it and
// read the route pattern the mux records on that same request.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Health and metrics
	mux.HandleFunc("GET /health", s.healthChecker.HTTPHandler())
	mux.HandleFunc("GET /health/live", s.healthChecker.LivenessHandler())
	mux.HandleFunc("GET /health/ready", s.healthChecker.ReadinessHandler())
	mux.Handle("GET /metrics", s.metricsRegistry.Handler())

	// Architectures
	mux.HandleFunc("GET /architectures", s.handleListArchitectures)
	mux.HandleFunc("POST /architectures", s.handleCreateArchitecture)
	mux.HandleFunc("GET /architectures/{id}", s.handleGetArchitecture)

	// Simulation
	mux.HandleFunc("POST /architectures/{id}/simulate", s.handleSimulateStored)
	mux.HandleFunc("POST /simulate", s.handleSimulateInline)

	var handler http.Handler = mux
	handler = middleware.BodySizeLimit(s.maxBodyBytes)(handler)
	handler = middleware.PanicRecovery(s.logger)(handler)
	handler = middleware.Metrics(s.metricsRegistry)(handler)
	handler = middleware.Logging(s.logger)(handler)
	handler = middleware.RequestID()(handler)
	handler = middleware.CORS(s.corsConfig)(handler)
	handler = middleware.SecurityHeaders(s.securityConfig)(handler)
	return handler
}

// SupportedScenarios returns the names of the configured scenarios.
func (s *Server) SupportedScenarios() []string {
	names := make([]string, 0, len(s.scenarios))
	for _, sc := range s.scenarios {
		names = append(names, simulator.NormalizeScenario(sc.Name()))
	}
	return names
}
