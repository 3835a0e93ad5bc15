// Package store persists mission architectures. The simulator never talks
// to a Store directly; the HTTP layer loads an architecture and hands the
// simulator a plain value.
package store

import (
	"context"
	"errors"

	"github.com/dd0wney/missionsim/pkg/mission"
)

// ErrNotFound is returned when an architecture ID is unknown.
var ErrNotFound = errors.New("architecture not found")

// Store is the architecture repository. Implementations are safe for
// concurrent use.
type Store interface {
	// Create stores arch under a newly assigned ID and returns the stored copy.
	Create(ctx context.Context, arch *mission.Architecture) (*mission.Architecture, error)
	// Get returns the architecture stored under id, or an error wrapping ErrNotFound.
	Get(ctx context.Context, id int64) (*mission.Architecture, error)
	// List returns summaries of every stored architecture, ordered by ID.
	List(ctx context.Context) ([]mission.ArchitectureSummary, error)
	Ping(ctx context.Context) error
	Close() error
}

// SeedStub stores the development stub architecture when s is empty and
// returns it. An already populated store is left untouched and nil is
// returned.
func SeedStub(ctx context.Context, s Store) (*mission.Architecture, error) {
	existing, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, nil
	}
	return s.Create(ctx, mission.StubArchitecture(0))
}
