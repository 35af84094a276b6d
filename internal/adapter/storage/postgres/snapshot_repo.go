package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// SnapshotRepo implements ports.SnapshotStore on a PostgreSQL key-value
// table. Each row holds one whole-collection JSON entry.
type SnapshotRepo struct {
	pool Pool
}

// NewSnapshotRepo creates a new SnapshotRepo.
func NewSnapshotRepo(pool Pool) *SnapshotRepo {
	return &SnapshotRepo{pool: pool}
}

// EnsureSchema creates the snapshots table when it does not exist yet.
func (r *SnapshotRepo) EnsureSchema(ctx context.Context) error {
	query := `CREATE TABLE IF NOT EXISTS snapshots (
		key        TEXT PRIMARY KEY,
		payload    JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`

	if _, err := r.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("create snapshots table: %w", err)
	}
	return nil
}

// Get fetches a snapshot entry by key. Returns nil, nil when the key has
// never been written.
func (r *SnapshotRepo) Get(ctx context.Context, key string) ([]byte, error) {
	query := `SELECT payload FROM snapshots WHERE key = $1`

	var payload []byte
	err := r.pool.QueryRow(ctx, query, key).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get snapshot %s: %w", key, err)
	}
	return payload, nil
}

// Set replaces a snapshot entry.
func (r *SnapshotRepo) Set(ctx context.Context, key string, value []byte) error {
	query := `INSERT INTO snapshots (key, payload, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET payload = EXCLUDED.payload, updated_at = NOW()`

	if _, err := r.pool.Exec(ctx, query, key, value); err != nil {
		return fmt.Errorf("set snapshot %s: %w", key, err)
	}
	return nil
}
