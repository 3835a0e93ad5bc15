package store

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"golang.org/x/exp/maps"

	"github.com/dd0wney/missionsim/pkg/mission"
)

// MemoryStore keeps architectures in process memory. IDs start at 1.
type MemoryStore struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]*mission.Architecture
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextID: 1,
		items:  make(map[int64]*mission.Architecture),
	}
}

// Create stores a copy of arch.
func (s *MemoryStore) Create(ctx context.Context, arch *mission.Architecture) (*mission.Architecture, error) {
	if arch == nil {
		return nil, fmt.Errorf("create architecture: nil architecture")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored := arch.Clone()
	stored.ID = s.nextID
	s.nextID++
	s.items[stored.ID] = stored

	return stored.Clone(), nil
}

// Get returns a copy of the architecture stored under id.
func (s *MemoryStore) Get(ctx context.Context, id int64) (*mission.Architecture, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	arch, ok := s.items[id]
	if !ok {
		return nil, fmt.Errorf("architecture %d: %w", id, ErrNotFound)
	}
	return arch.Clone(), nil
}

// List returns summaries ordered by ID.
func (s *MemoryStore) List(ctx context.Context) ([]mission.ArchitectureSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	summaries := make([]mission.ArchitectureSummary, 0, len(s.items))
	ids := maps.Keys(s.items)
	slices.Sort(ids)
	for _, id := range ids {
		summaries = append(summaries, s.items[id].Summary())
	}
	return summaries, nil
}

// Ping always succeeds.
func (s *MemoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

// Close is a no-op.
func (s *MemoryStore) Close() error { return nil }
