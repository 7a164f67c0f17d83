package database

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/pylearn-api/internal/config"
)

func TestRedisOptions(t *testing.T) {
	t.Run("single uses first address", func(t *testing.T) {
		opts, err := redisOptions(config.RedisConfig{Addrs: []string{"a:1", "b:2"}, MinRetryBackoff: 8})
		require.NoError(t, err)
		assert.Equal(t, []string{"a:1"}, opts.Addrs)
		assert.Equal(t, 8*time.Millisecond, opts.MinRetryBackoff)
	})

	t.Run("addr fallback", func(t *testing.T) {
		opts, err := redisOptions(config.RedisConfig{Addr: "localhost:6379"})
		require.NoError(t, err)
		assert.Equal(t, []string{"localhost:6379"}, opts.Addrs)
	})

	t.Run("sentinel requires master", func(t *testing.T) {
		_, err := redisOptions(config.RedisConfig{Mode: "sentinel", Addr: "s:26379"})
		assert.Error(t, err)
	})

	t.Run("no address", func(t *testing.T) {
		_, err := redisOptions(config.RedisConfig{})
		assert.Error(t, err)
	})

	t.Run("unknown mode", func(t *testing.T) {
		_, err := redisOptions(config.RedisConfig{Mode: "ring", Addr: "x:1"})
		assert.Error(t, err)
	})
}

func TestNewUniversalRedisClient_Miniredis(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewUniversalRedisClient(context.Background(), config.RedisConfig{Addr: mr.Addr()})

	require.NoError(t, err)
	defer client.Close()
	require.NoError(t, client.Set(context.Background(), "k", "v", 0).Err())
	got, err := mr.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)
}
