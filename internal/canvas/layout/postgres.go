package layout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agentcanvas-dev/agentcanvas/internal/canvas/graph"
)

const layoutSchema = `
CREATE TABLE IF NOT EXISTS layouts (
	project_id TEXT PRIMARY KEY,
	positions  JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// PostgresStore persists layouts in a single table, one row per project.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects a pool, verifies the connection, and ensures
// the layouts table exists.
func NewPostgresStore(ctx context.Context, connectionURI string) (*PostgresStore, error) {
	config, err := pgxpool.ParseConfig(connectionURI)
	if err != nil {
		return nil, fmt.Errorf("failed to parse PostgreSQL config: %w", err)
	}

	// Layout traffic is light; keep a small warm pool.
	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnIdleTime = 30 * time.Minute
	config.MaxConnLifetime = 2 * time.Hour

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create PostgreSQL pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping PostgreSQL: %w", err)
	}
	if _, err := pool.Exec(ctx, layoutSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ensure layouts table: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Get(ctx context.Context, projectID string) (map[string]graph.Position, error) {
	var data []byte
	err := s.pool.QueryRow(ctx,
		`SELECT positions FROM layouts WHERE project_id = $1`, projectID,
	).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return map[string]graph.Position{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load layout for %q: %w", projectID, err)
	}
	var positions map[string]graph.Position
	if err := json.Unmarshal(data, &positions); err != nil {
		return nil, fmt.Errorf("failed to decode layout for %q: %w", projectID, err)
	}
	if positions == nil {
		positions = map[string]graph.Position{}
	}
	return positions, nil
}

func (s *PostgresStore) Set(ctx context.Context, projectID string, positions map[string]graph.Position) error {
	data, err := json.Marshal(positions)
	if err != nil {
		return fmt.Errorf("failed to encode layout for %q: %w", projectID, err)
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO layouts (project_id, positions, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (project_id)
		DO UPDATE SET positions = EXCLUDED.positions, updated_at = now()`,
		projectID, data)
	if err != nil {
		return fmt.Errorf("failed to store layout for %q: %w", projectID, err)
	}
	return nil
}

// Close releases the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}
