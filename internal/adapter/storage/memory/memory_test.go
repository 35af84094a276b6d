package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_GetAbsent(t *testing.T) {
	s := NewStore()

	data, err := s.Get(context.Background(), "wallets")
	assert.NoError(t, err)
	assert.Nil(t, data)
}

func TestStore_SetAndGet(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "wallets", []byte(`{"schema_version":1}`)))

	data, err := s.Get(ctx, "wallets")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"schema_version":1}`), data)
}

func TestStore_ReturnsCopies(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	in := []byte("original")
	require.NoError(t, s.Set(ctx, "k", in))
	in[0] = 'X'

	out, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("original"), out)

	out[0] = 'Y'
	again, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("original"), again)
}

func TestStore_Health(t *testing.T) {
	s := NewStore()
	assert.NoError(t, s.Ping(context.Background()))
	assert.Equal(t, "memory", s.Name())
}
