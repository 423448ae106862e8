package canvas_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edukit-io/canvas-client/pkg/canvas"
)

func TestMemoryCache_SetAndGet(t *testing.T) {
	t.Parallel()

	cache := canvas.NewMemoryCache(10)
	ctx := context.Background()

	entry := &canvas.CacheEntry{
		Data:      []byte(`{"id": 1}`),
		ExpiresAt: time.Now().Add(time.Minute),
		ETag:      `"abc"`,
	}

	require.NoError(t, cache.Set(ctx, "GET:/api/v1/courses/1", entry))

	got, err := cache.Get(ctx, "GET:/api/v1/courses/1")
	require.NoError(t, err)
	assert.Equal(t, entry.Data, got.Data)
	assert.Equal(t, `"abc"`, got.ETag)
}

func TestMemoryCache_Miss(t *testing.T) {
	t.Parallel()

	cache := canvas.NewMemoryCache(10)

	_, err := cache.Get(context.Background(), "GET:/api/v1/courses/404")
	require.ErrorIs(t, err, canvas.ErrCacheMiss)
}

func TestMemoryCache_ExpiredEntry(t *testing.T) {
	t.Parallel()

	cache := canvas.NewMemoryCache(10)
	ctx := context.Background()

	entry := &canvas.CacheEntry{
		Data:      []byte("stale"),
		ExpiresAt: time.Now().Add(-time.Second),
	}
	require.NoError(t, cache.Set(ctx, "GET:/api/v1/users/1", entry))

	_, err := cache.Get(ctx, "GET:/api/v1/users/1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expired")

	// An expired read removes the entry.
	assert.False(t, cache.Has(ctx, "GET:/api/v1/users/1"))
}

func TestMemoryCache_DeleteAndClear(t *testing.T) {
	t.Parallel()

	cache := canvas.NewMemoryCache(10)
	ctx := context.Background()

	fresh := func() *canvas.CacheEntry {
		return &canvas.CacheEntry{Data: []byte("x"), ExpiresAt: time.Now().Add(time.Minute)}
	}

	require.NoError(t, cache.Set(ctx, "a", fresh()))
	require.NoError(t, cache.Set(ctx, "b", fresh()))

	require.NoError(t, cache.Delete(ctx, "a"))
	assert.False(t, cache.Has(ctx, "a"))
	assert.True(t, cache.Has(ctx, "b"))

	require.NoError(t, cache.Clear(ctx))
	assert.False(t, cache.Has(ctx, "b"))
}

func TestMemoryCache_EvictsClosestToExpiry(t *testing.T) {
	t.Parallel()

	cache := canvas.NewMemoryCache(2)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "soon", &canvas.CacheEntry{
		Data:      []byte("1"),
		ExpiresAt: time.Now().Add(time.Second),
	}))
	require.NoError(t, cache.Set(ctx, "later", &canvas.CacheEntry{
		Data:      []byte("2"),
		ExpiresAt: time.Now().Add(time.Hour),
	}))
	require.NoError(t, cache.Set(ctx, "new", &canvas.CacheEntry{
		Data:      []byte("3"),
		ExpiresAt: time.Now().Add(time.Minute),
	}))

	assert.False(t, cache.Has(ctx, "soon"))
	assert.True(t, cache.Has(ctx, "later"))
	assert.True(t, cache.Has(ctx, "new"))
}

func TestMemoryCache_Cleanup(t *testing.T) {
	t.Parallel()

	cache := canvas.NewMemoryCache(10)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "stale", &canvas.CacheEntry{
		ExpiresAt: time.Now().Add(-time.Minute),
	}))
	require.NoError(t, cache.Set(ctx, "fresh", &canvas.CacheEntry{
		ExpiresAt: time.Now().Add(time.Minute),
	}))

	cache.Cleanup()

	assert.False(t, cache.Has(ctx, "stale"))
	assert.True(t, cache.Has(ctx, "fresh"))
}

func TestCacheManager_GetCacheKey(t *testing.T) {
	t.Parallel()

	manager := canvas.NewCacheManager(canvas.NewMemoryCache(10), nil)

	assert.Equal(t, "GET:/api/v1/courses",
		manager.GetCacheKey("GET", "/api/v1/courses", nil))

	// Parameters are sorted so equivalent requests share one key.
	withParams := manager.GetCacheKey("GET", "/api/v1/courses", map[string]string{
		"enrollment_type": "teacher",
		"per_page":        "50",
	})
	assert.Equal(t, "GET:/api/v1/courses:enrollment_type=teacher&per_page=50", withParams)
}

func TestCacheManager_Stats(t *testing.T) {
	t.Parallel()

	manager := canvas.NewCacheManager(canvas.NewMemoryCache(10), nil)
	ctx := context.Background()

	key := manager.GetCacheKey("GET", "/api/v1/courses", nil)

	_, err := manager.Get(ctx, key)
	require.Error(t, err)

	require.NoError(t, manager.Set(ctx, key, []byte("[]"), time.Minute))

	_, err = manager.Get(ctx, key)
	require.NoError(t, err)
	_, err = manager.Get(ctx, key)
	require.NoError(t, err)
	_, err = manager.Get(ctx, manager.GetCacheKey("GET", "/api/v1/users", nil))
	require.Error(t, err)

	stats := manager.GetStats()
	assert.Equal(t, int64(2), stats.Hits)
	assert.Equal(t, int64(2), stats.Misses)
	assert.Equal(t, int64(1), stats.Sets)
	assert.InDelta(t, 0.5, stats.GetHitRate(), 0.001)
}

func TestCacheStats_GetHitRate(t *testing.T) {
	t.Parallel()

	empty := canvas.CacheStats{}
	assert.Zero(t, empty.GetHitRate())

	stats := canvas.CacheStats{Hits: 75, Misses: 25}
	assert.InDelta(t, 0.75, stats.GetHitRate(), 0.001)
}

func TestDefaultCachingPolicy(t *testing.T) {
	t.Parallel()

	policy := canvas.DefaultCachingPolicy()

	assert.True(t, policy.ShouldCache("GET", "/api/v1/courses", 200))
	assert.False(t, policy.ShouldCache("POST", "/api/v1/courses", 201))
	assert.False(t, policy.ShouldCache("GET", "/api/v1/courses", 404))
	assert.False(t, policy.ShouldCache("GET", "/login/oauth2/token", 200))
	assert.False(t, policy.ShouldCache("GET", "/api/v1/courses/1/quizzes/2/quiz_submissions", 200))
	assert.False(t, policy.ShouldCache("GET", "/api/v1/accounts/1/content_migrations", 200))
}

func TestCachingPolicy_IncludePaths(t *testing.T) {
	t.Parallel()

	policy := &canvas.CachingPolicy{
		CacheGET:     true,
		IncludePaths: []string{"/courses"},
	}

	assert.True(t, policy.ShouldCache("GET", "/api/v1/courses/1", 200))
	assert.False(t, policy.ShouldCache("GET", "/api/v1/users/1", 200))
}

func TestCachingPolicy_POSTAndErrors(t *testing.T) {
	t.Parallel()

	policy := &canvas.CachingPolicy{CachePOST: true, CacheErrors: true}

	assert.True(t, policy.ShouldCache("POST", "/api/v1/courses", 201))
	assert.True(t, policy.ShouldCache("POST", "/api/v1/courses", 422))
	assert.False(t, policy.ShouldCache("GET", "/api/v1/courses", 200))
	assert.False(t, policy.ShouldCache("DELETE", "/api/v1/courses/1", 200))
}

func TestNoOpCache(t *testing.T) {
	t.Parallel()

	cache := canvas.NewNoOpCache()
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "k", &canvas.CacheEntry{}))
	assert.False(t, cache.Has(ctx, "k"))

	_, err := cache.Get(ctx, "k")
	require.ErrorIs(t, err, canvas.ErrCacheDisabled)
}

func TestNewCacheFromConfig(t *testing.T) {
	t.Parallel()

	t.Run("memory", func(t *testing.T) {
		t.Parallel()

		cache, err := canvas.NewCacheFromConfig(canvas.DefaultCacheConfig())
		require.NoError(t, err)
		assert.IsType(t, &canvas.MemoryCache{}, cache)
	})

	t.Run("none", func(t *testing.T) {
		t.Parallel()

		cache, err := canvas.NewCacheFromConfig(&canvas.CacheConfig{Type: canvas.CacheTypeNone})
		require.NoError(t, err)
		assert.IsType(t, &canvas.NoOpCache{}, cache)
	})

	t.Run("nats without config", func(t *testing.T) {
		t.Parallel()

		_, err := canvas.NewCacheFromConfig(&canvas.CacheConfig{Type: canvas.CacheTypeNATS})
		require.ErrorIs(t, err, canvas.ErrNATSConfigRequired)
	})

	t.Run("unknown type", func(t *testing.T) {
		t.Parallel()

		_, err := canvas.NewCacheFromConfig(&canvas.CacheConfig{Type: canvas.CacheType("redis")})
		require.ErrorIs(t, err, canvas.ErrUnsupportedCache)
	})
}

func TestCacheBuilder(t *testing.T) {
	t.Parallel()

	cache, err := canvas.NewCacheBuilder().
		WithType(canvas.CacheTypeMemory).
		WithMemoryConfig(100).
		Build()
	require.NoError(t, err)
	assert.IsType(t, &canvas.MemoryCache{}, cache)
}
