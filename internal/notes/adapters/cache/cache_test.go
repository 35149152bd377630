package cache_test

import (
	"context"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"technotes/internal/notes/adapters/cache"
	"technotes/internal/notes/config"
	cachePorts "technotes/internal/notes/ports/cache"
)

func mockRedisServer(t *testing.T) *miniredis.Miniredis {
	t.Helper()

	s, err := miniredis.Run()
	require.NoError(t, err)

	t.Cleanup(func() {
		s.Close()
	})

	return s
}

func redisConfigFor(t *testing.T, s *miniredis.Miniredis) *config.RedisConfig {
	t.Helper()

	host, portStr, ok := strings.Cut(s.Addr(), ":")
	require.True(t, ok)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	return &config.RedisConfig{
		Host:           host,
		Port:           port,
		ConnectTimeout: 5 * time.Second,
		ReadTimeout:    3 * time.Second,
		WriteTimeout:   3 * time.Second,
		PoolSize:       10,
		MinIdle:        2,
		DefaultTTL:     15 * time.Minute,
	}
}

func TestNewRedisCache_Success(t *testing.T) {
	s := mockRedisServer(t)
	ctx := context.Background()

	notesCache, err := cache.NewRedisCache(ctx, redisConfigFor(t, s))

	require.NoError(t, err)
	require.NotNil(t, notesCache)

	_, ok := notesCache.(cachePorts.Cache)
	assert.True(t, ok, "should implement Cache interface")

	assert.NoError(t, notesCache.Close(), "should close without errors")
}

func TestNewRedisCache_ConnectionFailure(t *testing.T) {
	ctx := context.Background()

	cfg := &config.RedisConfig{
		Host:           "nonexistent.host",
		Port:           12345,
		ConnectTimeout: 100 * time.Millisecond,
		ReadTimeout:    100 * time.Millisecond,
		WriteTimeout:   100 * time.Millisecond,
	}

	notesCache, err := cache.NewRedisCache(ctx, cfg)

	require.Error(t, err)
	assert.Nil(t, notesCache)
	assert.Contains(t, err.Error(), "failed to connect to redis")
}

func TestRedisCache_RoundTrip(t *testing.T) {
	s := mockRedisServer(t)
	ctx := context.Background()

	notesCache, err := cache.NewRedisCache(ctx, redisConfigFor(t, s))
	require.NoError(t, err)
	defer func() { require.NoError(t, notesCache.Close()) }()

	require.NoError(t, notesCache.Set(ctx, "notes:enriched", `[{"id":"note-1"}]`, time.Minute))

	value, err := notesCache.Get(ctx, "notes:enriched")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"note-1"}]`, value)

	require.NoError(t, notesCache.Delete(ctx, "notes:enriched"))

	value, err = notesCache.Get(ctx, "notes:enriched")
	require.NoError(t, err)
	assert.Empty(t, value, "deleted key reads as empty string")
}

func TestRedisCache_MissingKeyIsNotAnError(t *testing.T) {
	s := mockRedisServer(t)
	ctx := context.Background()

	notesCache, err := cache.NewRedisCache(ctx, redisConfigFor(t, s))
	require.NoError(t, err)
	defer func() { require.NoError(t, notesCache.Close()) }()

	value, err := notesCache.Get(ctx, "never-set")
	require.NoError(t, err)
	assert.Empty(t, value)
}

func TestRedisCache_ZeroTTLUsesDefault(t *testing.T) {
	s := mockRedisServer(t)
	ctx := context.Background()

	cfg := redisConfigFor(t, s)
	cfg.DefaultTTL = time.Minute

	notesCache, err := cache.NewRedisCache(ctx, cfg)
	require.NoError(t, err)
	defer func() { require.NoError(t, notesCache.Close()) }()

	require.NoError(t, notesCache.Set(ctx, "key", "value", 0))

	ttl := s.TTL("key")
	assert.Equal(t, time.Minute, ttl)
}
