package ports

import "context"

// SnapshotStore is the durable key-value mirror of the ledger state.
// Each entry is a whole-collection JSON replacement; there are no
// incremental writes, so no partial-write state is possible.
type SnapshotStore interface {
	// Get returns the stored entry, or nil, nil when the key has never
	// been written.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set replaces the stored entry.
	Set(ctx context.Context, key string, value []byte) error
}
