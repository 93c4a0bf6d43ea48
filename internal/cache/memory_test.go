package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_SetAndGet(t *testing.T) {
	cache := NewMemory()

	require.NoError(t, cache.Set(context.Background(), "user:1", "true", time.Minute))

	value, ok, err := cache.Get(context.Background(), "user:1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "true", value)
}

func TestMemory_MissingKey(t *testing.T) {
	cache := NewMemory()

	_, ok, err := cache.Get(context.Background(), "nope")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemory_Expiry(t *testing.T) {
	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	cache := NewMemoryWithClock(func() time.Time { return current })

	require.NoError(t, cache.Set(context.Background(), "user:1", "true", 5*time.Minute))

	current = current.Add(4 * time.Minute)
	_, ok, err := cache.Get(context.Background(), "user:1")
	require.NoError(t, err)
	assert.True(t, ok)

	current = current.Add(2 * time.Minute)
	_, ok, err = cache.Get(context.Background(), "user:1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemory_Invalidate(t *testing.T) {
	cache := NewMemory()

	require.NoError(t, cache.Set(context.Background(), "user:1", "true", time.Minute))
	require.NoError(t, cache.Invalidate(context.Background(), "user:1"))

	_, ok, err := cache.Get(context.Background(), "user:1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemory_SetOverwrites(t *testing.T) {
	cache := NewMemory()

	require.NoError(t, cache.Set(context.Background(), "user:1", "false", time.Minute))
	require.NoError(t, cache.Set(context.Background(), "user:1", "true", time.Minute))

	value, ok, err := cache.Get(context.Background(), "user:1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "true", value)
}
