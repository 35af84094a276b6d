package redis

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"
)

// SnapshotStore implements ports.SnapshotStore on Redis. Entries are
// whole-collection JSON replacements and carry no TTL: the snapshot is the
// durable source of truth, not a cache.
type SnapshotStore struct {
	client *goredis.Client
	prefix string
}

// NewSnapshotStore creates a Redis-backed snapshot store.
func NewSnapshotStore(client *goredis.Client) *SnapshotStore {
	return &SnapshotStore{
		client: client,
		prefix: "jetwallet:snapshot:",
	}
}

// Get retrieves a snapshot entry by key.
// Returns nil, nil if the key has never been written.
func (s *SnapshotStore) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if err != nil {
		if err == goredis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("redis snapshot get %s: %w", key, err)
	}
	return val, nil
}

// Set replaces a snapshot entry.
func (s *SnapshotStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis snapshot set %s: %w", key, err)
	}
	return nil
}
