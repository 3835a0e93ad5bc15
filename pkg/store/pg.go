package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dd0wney/missionsim/pkg/mission"
)

// PGStore handles architecture persistence using PostgreSQL
type PGStore struct {
	pool *pgxpool.Pool
}

// NewPGStore creates a new PostgreSQL-backed architecture store
func NewPGStore(ctx context.Context, databaseURL string) (*PGStore, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	// Connection pooling configuration
	config.MaxConns = 25
	config.MinConns = 5
	config.MaxConnLifetime = 5 * time.Minute
	config.MaxConnIdleTime = 1 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database unreachable: %w", err)
	}

	s := &PGStore{pool: pool}

	// Create tables if they don't exist
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return s, nil
}

// Create stores arch and its components and flows in one transaction.
func (s *PGStore) Create(ctx context.Context, arch *mission.Architecture) (*mission.Architecture, error) {
	if arch == nil {
		return nil, fmt.Errorf("create architecture: nil architecture")
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	stored := arch.Clone()
	err = tx.QueryRow(ctx,
		`INSERT INTO architectures (name, description) VALUES ($1, $2) RETURNING id`,
		stored.Name, stored.Description,
	).Scan(&stored.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create architecture: %w", err)
	}

	batch := &pgx.Batch{}
	for i, c := range stored.Components {
		batch.Queue(`
			INSERT INTO components (architecture_id, ordinal, component_id, name, type, criticality, position_x, position_y)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			stored.ID, i, c.ID, c.Name, c.Type, c.Criticality, c.Position.X, c.Position.Y,
		)
	}
	for i, f := range stored.Flows {
		batch.Queue(`
			INSERT INTO flows (architecture_id, ordinal, flow_id, source, target, data_type, cia_requirement, latency_sensitivity)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			stored.ID, i, f.ID, f.Source, f.Target, f.DataType, f.CIARequirement, f.LatencySensitivity,
		)
	}
	if batch.Len() > 0 {
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return nil, fmt.Errorf("failed to store components and flows: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit architecture: %w", err)
	}
	return stored, nil
}

// Get retrieves an architecture by ID
func (s *PGStore) Get(ctx context.Context, id int64) (*mission.Architecture, error) {
	arch := &mission.Architecture{ID: id}

	err := s.pool.QueryRow(ctx,
		`SELECT name, description FROM architectures WHERE id = $1`, id,
	).Scan(&arch.Name, &arch.Description)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("architecture %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get architecture: %w", err)
	}

	if arch.Components, err = s.components(ctx, id); err != nil {
		return nil, err
	}
	if arch.Flows, err = s.flows(ctx, id); err != nil {
		return nil, err
	}
	return arch, nil
}

func (s *PGStore) components(ctx context.Context, archID int64) ([]mission.Component, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT component_id, name, type, criticality, position_x, position_y
		FROM components
		WHERE architecture_id = $1
		ORDER BY ordinal`, archID)
	if err != nil {
		return nil, fmt.Errorf("failed to load components: %w", err)
	}

	components, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (mission.Component, error) {
		var c mission.Component
		err := row.Scan(&c.ID, &c.Name, &c.Type, &c.Criticality, &c.Position.X, &c.Position.Y)
		return c, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan components: %w", err)
	}
	return components, nil
}

func (s *PGStore) flows(ctx context.Context, archID int64) ([]mission.Flow, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT flow_id, source, target, data_type, cia_requirement, latency_sensitivity
		FROM flows
		WHERE architecture_id = $1
		ORDER BY ordinal`, archID)
	if err != nil {
		return nil, fmt.Errorf("failed to load flows: %w", err)
	}

	flows, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (mission.Flow, error) {
		var f mission.Flow
		err := row.Scan(&f.ID, &f.Source, &f.Target, &f.DataType, &f.CIARequirement, &f.LatencySensitivity)
		return f, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan flows: %w", err)
	}
	return flows, nil
}

// List returns architecture summaries ordered by ID
func (s *PGStore) List(ctx context.Context) ([]mission.ArchitectureSummary, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT a.id, a.name, a.description,
		       (SELECT count(*) FROM components c WHERE c.architecture_id = a.id),
		       (SELECT count(*) FROM flows f WHERE f.architecture_id = a.id)
		FROM architectures a
		ORDER BY a.id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list architectures: %w", err)
	}
	defer rows.Close()

	summaries := []mission.ArchitectureSummary{}
	for rows.Next() {
		var sum mission.ArchitectureSummary
		if err := rows.Scan(&sum.ID, &sum.Name, &sum.Description, &sum.ComponentCount, &sum.FlowCount); err != nil {
			return nil, fmt.Errorf("failed to scan architecture: %w", err)
		}
		summaries = append(summaries, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list architectures: %w", err)
	}
	return summaries, nil
}

// Ping checks database connectivity
func (s *PGStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close closes the database connection pool
func (s *PGStore) Close() error {
	s.pool.Close()
	return nil
}
