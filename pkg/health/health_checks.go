package health

import (
	"context"
	"time"
)

// Common health check functions

// DefaultCheckTimeout bounds checks that talk to external dependencies.
const DefaultCheckTimeout = 2 * time.Second

// SimpleCheck creates a simple health check that always returns healthy
func SimpleCheck(name string) CheckFunc {
	return func() Check {
		return Check{
			Name:   name,
			Status: StatusHealthy,
		}
	}
}

// StoreCheck creates a health check for architecture store connectivity.
// The ping runs under DefaultCheckTimeout.
func StoreCheck(backend string, ping func(ctx context.Context) error) CheckFunc {
	return func() Check {
		check := Check{
			Name:    "store",
			Details: map[string]any{"backend": backend},
		}

		ctx, cancel := context.WithTimeout(context.Background(), DefaultCheckTimeout)
		defer cancel()

		if err := ping(ctx); err != nil {
			check.Status = StatusUnhealthy
			check.Message = err.Error()
		} else {
			check.Status = StatusHealthy
			check.Message = "Connected"
		}

		return check
	}
}

// EngineCheck runs a smoke simulation and reports whether it succeeded.
func EngineCheck(run func() error) CheckFunc {
	return func() Check {
		check := Check{Name: "simulator"}

		if err := run(); err != nil {
			check.Status = StatusUnhealthy
			check.Message = err.Error()
		} else {
			check.Status = StatusHealthy
			check.Message = "Smoke simulation passed"
		}

		return check
	}
}

// MemoryCheck creates a health check for memory usage
func MemoryCheck(getUsage func() (alloc, sys uint64)) CheckFunc {
	return func() Check {
		check := Check{
			Name:    "memory",
			Details: make(map[string]any),
		}

		alloc, sys := getUsage()

		check.Details["alloc_bytes"] = alloc
		check.Details["sys_bytes"] = sys

		if sys == 0 {
			check.Status = StatusHealthy
			check.Message = "Memory usage unknown"
			return check
		}

		// Consider degraded if allocated memory > 90% of system memory
		usagePercent := float64(alloc) / float64(sys) * 100

		if usagePercent > 90 {
			check.Status = StatusDegraded
			check.Message = "High memory usage"
		} else {
			check.Status = StatusHealthy
			check.Message = "Memory usage normal"
		}

		return check
	}
}
