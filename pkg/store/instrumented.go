package store

import (
	"context"
	"errors"
	"time"

	"github.com/dd0wney/missionsim/pkg/metrics"
	"github.com/dd0wney/missionsim/pkg/mission"
)

// Operation status labels
const (
	statusSuccess  = "success"
	statusNotFound = "not_found"
	statusError    = "error"
)

// Instrumented wraps a Store and records operation counts, durations and
// the stored architecture count in a metrics registry.
type Instrumented struct {
	next    Store
	metrics *metrics.Registry
}

// NewInstrumented wraps next. The architecture gauge is primed from List.
func NewInstrumented(ctx context.Context, next Store, m *metrics.Registry) (*Instrumented, error) {
	s := &Instrumented{next: next, metrics: m}
	if _, err := s.List(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Instrumented) record(op string, start time.Time, err error) {
	status := statusSuccess
	switch {
	case errors.Is(err, ErrNotFound):
		status = statusNotFound
	case err != nil:
		status = statusError
	}
	s.metrics.RecordStoreOperation(op, status, time.Since(start))
}

func (s *Instrumented) Create(ctx context.Context, arch *mission.Architecture) (*mission.Architecture, error) {
	start := time.Now()
	stored, err := s.next.Create(ctx, arch)
	s.record("create", start, err)
	if err == nil {
		s.metrics.StoreArchitecturesTotal.Inc()
	}
	return stored, err
}

func (s *Instrumented) Get(ctx context.Context, id int64) (*mission.Architecture, error) {
	start := time.Now()
	arch, err := s.next.Get(ctx, id)
	s.record("get", start, err)
	return arch, err
}

func (s *Instrumented) List(ctx context.Context) ([]mission.ArchitectureSummary, error) {
	start := time.Now()
	summaries, err := s.next.List(ctx)
	s.record("list", start, err)
	if err == nil {
		s.metrics.SetArchitectureCount(len(summaries))
	}
	return summaries, err
}

func (s *Instrumented) Ping(ctx context.Context) error { return s.next.Ping(ctx) }

func (s *Instrumented) Close() error { return s.next.Close() }
