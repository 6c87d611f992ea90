package redis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saisirisha1111/pitchlens/pkg/config"
)

func TestBenchmarkKey(t *testing.T) {
	assert.Equal(t, "benchmark:SaaS:seed", BenchmarkKey("SaaS", "seed"))
	assert.Equal(t, "benchmark::series_a", BenchmarkKey("", "series_a"))
}

func TestCache_DisabledClientIsNoOp(t *testing.T) {
	client, err := New(&config.Config{Redis: config.RedisConfig{Enabled: false}})
	require.NoError(t, err)

	cache := NewCache(client, "test")
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k", map[string]int{"a": 1}, TTLShort))

	var dest map[string]int
	found, err := cache.Get(ctx, "k", &dest)
	require.NoError(t, err)
	assert.False(t, found)

	assert.NoError(t, cache.Delete(ctx, "k"))
}

func TestCache_RoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	client, err := New(&config.Config{Redis: config.RedisConfig{
		Host:    "localhost",
		Port:    "6379",
		Enabled: true,
	}})
	require.NoError(t, err, "redis connection failed")
	defer client.Close()

	cache := NewCache(client, "test")
	ctx := context.Background()

	type payload struct {
		Sector string  `json:"sector"`
		Value  float64 `json:"value"`
	}

	require.NoError(t, cache.Set(ctx, BenchmarkKey("SaaS", "seed"), payload{"SaaS", 8.5}, TTLShort))

	var got payload
	found, err := cache.Get(ctx, BenchmarkKey("SaaS", "seed"), &got)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 8.5, got.Value)

	require.NoError(t, cache.Delete(ctx, BenchmarkKey("SaaS", "seed")))
	found, err = cache.Get(ctx, BenchmarkKey("SaaS", "seed"), &got)
	require.NoError(t, err)
	assert.False(t, found)
}
