package api

import (
	"go.opentelemetry.io/otel/trace"

	"github.com/dd0wney/missionsim/pkg/api/middleware"
	"github.com/dd0wney/missionsim/pkg/health"
	"github.com/dd0wney/missionsim/pkg/logging"
	"github.com/dd0wney/missionsim/pkg/metrics"
	"github.com/dd0wney/missionsim/pkg/simulator"
	"github.com/dd0wney/missionsim/pkg/store"
)

// Server represents the HTTP API server
type Server struct {
	store           store.Store
	logger          logging.Logger
	metricsRegistry *metrics.Registry
	healthChecker   *health.HealthChecker
	tracer          trace.Tracer
	corsConfig      *middleware.CORSConfig
	securityConfig  *middleware.SecurityHeadersConfig
	scenarios       []simulator.Scenario
	topN            int
	maxBodyBytes    int64
}

// Option configures a Server.
type Option func(*Server)
