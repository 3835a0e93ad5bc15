// Command missionsim-server serves the mission attack simulator over HTTP.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/dd0wney/missionsim/pkg/api"
	"github.com/dd0wney/missionsim/pkg/api/middleware"
	"github.com/dd0wney/missionsim/pkg/config"
	"github.com/dd0wney/missionsim/pkg/health"
	"github.com/dd0wney/missionsim/pkg/logging"
	"github.com/dd0wney/missionsim/pkg/metrics"
	"github.com/dd0wney/missionsim/pkg/mission"
	"github.com/dd0wney/missionsim/pkg/server"
	"github.com/dd0wney/missionsim/pkg/simulator"
	"github.com/dd0wney/missionsim/pkg/store"
)

func main() {
	configPath := flag.String("config", "", "Optional YAML config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "missionsim-server: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := logging.New(cfg.LogLevel).With(logging.Component("missionsim-server"))
	logger.Info("starting",
		logging.String("version", config.Version),
		logging.String("environment", cfg.Environment),
		logging.Int("port", cfg.Port),
	)

	ctx := context.Background()
	reg := metrics.DefaultRegistry()

	st, backend, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	instrumented, err := store.NewInstrumented(ctx, st, reg)
	if err != nil {
		return fmt.Errorf("failed to prime store metrics: %w", err)
	}

	if cfg.ShouldSeedStub() {
		seeded, err := store.SeedStub(ctx, instrumented)
		if err != nil {
			return fmt.Errorf("failed to seed stub architecture: %w", err)
		}
		if seeded != nil {
			logger.Info("seeded stub architecture", logging.ArchitectureID(seeded.ID))
		}
	}

	hc := health.NewHealthChecker(cfg.Environment, config.Version)
	hc.RegisterLivenessCheck("api", health.SimpleCheck("api"))
	hc.RegisterReadinessCheck("store", health.StoreCheck(backend, instrumented.Ping))
	hc.RegisterCheck("store", health.StoreCheck(backend, instrumented.Ping))
	hc.RegisterCheck("engine", health.EngineCheck(engineSelfTest))
	hc.RegisterCheck("memory", health.MemoryCheck(func() (uint64, uint64) {
		var m runtime.MemStats
		runtime.ReadMemStats(&m)
		return m.Alloc, m.Sys
	}))

	srv := api.NewServer(instrumented,
		api.WithLogger(logger),
		api.WithMetrics(reg),
		api.WithHealthChecker(hc),
		api.WithCORS(middleware.PlannerCORSConfig(cfg.AllowedOrigins)),
		api.WithTopN(cfg.DefaultTopN),
	)

	gs := server.NewGracefulServer(cfg.Addr(), srv.Handler(), server.Options{
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		ShutdownTimeout: cfg.ShutdownTimeout,
		Logger:          logger,
	})
	gs.SetConfigReloadFunc(func() error {
		next, err := config.Load(configPath)
		if err != nil {
			return err
		}
		logger.SetLevel(logging.ParseLevel(next.LogLevel))
		logger.Info("log level reloaded", logging.String("level", next.LogLevel))
		return nil
	})

	return gs.Run(ctx)
}

// openStore connects to PostgreSQL when a database URL is configured and
// falls back to the in-memory store otherwise.
func openStore(ctx context.Context, cfg *config.Config) (store.Store, string, error) {
	if cfg.DatabaseURL == "" {
		return store.NewMemoryStore(), "memory", nil
	}
	pg, err := store.NewPGStore(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open database: %w", err)
	}
	return pg, "postgres", nil
}

// engineSelfTest simulates the stub architecture and checks the expected
// outcome.
func engineSelfTest() error {
	sim, err := simulator.New(mission.StubArchitecture(0))
	if err != nil {
		return err
	}
	res, err := sim.Run("node_compromise", "sensor-1")
	if err != nil {
		return err
	}
	if res.BaselineScore != 100 || len(res.AffectedComponents) != 3 {
		return fmt.Errorf("unexpected stub result: baseline %.2f, %d affected",
			res.BaselineScore, len(res.AffectedComponents))
	}
	return nil
}
