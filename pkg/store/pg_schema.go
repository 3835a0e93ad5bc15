package store

import "context"

// migrate creates the necessary database tables
func (s *PGStore) migrate(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS architectures (
		id BIGSERIAL PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);

	CREATE TABLE IF NOT EXISTS components (
		architecture_id BIGINT NOT NULL REFERENCES architectures(id) ON DELETE CASCADE,
		ordinal INTEGER NOT NULL,
		component_id VARCHAR(255) NOT NULL,
		name VARCHAR(255) NOT NULL,
		type VARCHAR(50) NOT NULL,
		criticality INTEGER NOT NULL DEFAULT 5 CHECK (criticality BETWEEN 1 AND 10),
		position_x DOUBLE PRECISION NOT NULL DEFAULT 0,
		position_y DOUBLE PRECISION NOT NULL DEFAULT 0,
		PRIMARY KEY (architecture_id, ordinal),
		UNIQUE (architecture_id, component_id)
	);

	CREATE TABLE IF NOT EXISTS flows (
		architecture_id BIGINT NOT NULL REFERENCES architectures(id) ON DELETE CASCADE,
		ordinal INTEGER NOT NULL,
		flow_id VARCHAR(255) NOT NULL,
		source VARCHAR(255) NOT NULL,
		target VARCHAR(255) NOT NULL,
		data_type VARCHAR(100) NOT NULL DEFAULT '',
		cia_requirement VARCHAR(50) NOT NULL DEFAULT '',
		latency_sensitivity VARCHAR(20) NOT NULL DEFAULT '',
		PRIMARY KEY (architecture_id, ordinal)
	);

	CREATE INDEX IF NOT EXISTS idx_flows_source ON flows(architecture_id, source);
	CREATE INDEX IF NOT EXISTS idx_flows_target ON flows(architecture_id, target);
	`

	_, err := s.pool.Exec(ctx, schema)
	return err
}
