package redis

import (
	"context"
	"testing"
	"time"

	"jetwallet/internal/core/domain"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*SnapshotStore, *miniredis.Miniredis) {
	t.Helper()
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	return NewSnapshotStore(client), s
}

func TestSnapshotStore_GetAbsent(t *testing.T) {
	store, _ := newTestStore(t)

	data, err := store.Get(context.Background(), domain.SnapshotKeyWallets)
	assert.NoError(t, err)
	assert.Nil(t, data)
}

func TestSnapshotStore_SetAndGet(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	value := []byte(`{"schema_version":1,"active_index":0,"wallets":[]}`)
	require.NoError(t, store.Set(ctx, domain.SnapshotKeyWallets, value))

	data, err := store.Get(ctx, domain.SnapshotKeyWallets)
	require.NoError(t, err)
	assert.Equal(t, value, data)
}

func TestSnapshotStore_Overwrite(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, domain.SnapshotKeyTransactions, []byte("first")))
	require.NoError(t, store.Set(ctx, domain.SnapshotKeyTransactions, []byte("second")))

	data, err := store.Get(ctx, domain.SnapshotKeyTransactions)
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), data)
}

func TestSnapshotStore_KeysAreNamespaced(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, domain.SnapshotKeyWallets, []byte("x")))
	assert.True(t, mr.Exists("jetwallet:snapshot:wallets"))
}

func TestSnapshotStore_EntriesAreDurable(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, domain.SnapshotKeySavedCards, []byte("cards")))

	// Snapshot entries carry no TTL.
	mr.FastForward(365 * 24 * time.Hour)

	data, err := store.Get(ctx, domain.SnapshotKeySavedCards)
	require.NoError(t, err)
	assert.Equal(t, []byte("cards"), data)
}

func TestHealthCheck(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})

	hc := NewHealthCheck(client)
	assert.Equal(t, "redis", hc.Name())
	assert.NoError(t, hc.Ping(context.Background()))

	s.Close()
	assert.Error(t, hc.Ping(context.Background()))
}
