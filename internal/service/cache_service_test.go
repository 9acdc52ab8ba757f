package service

import (
	"context"
	"testing"
	"time"

	"volunteerhub/internal/domain"
	"volunteerhub/pkg/redis"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupCacheService(t *testing.T) (*miniredis.Miniredis, *redis.Client, *CacheService) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client, err := redis.NewClient("redis://"+mr.Addr(), "test", zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return mr, client, NewCacheService(client, zap.NewNop())
}

func TestCacheService_GetActivityWithCache_MissThenHit(t *testing.T) {
	_, client, cache := setupCacheService(t)
	ctx := context.Background()

	calls := 0
	fallback := func(ctx context.Context, id int64) (*domain.Activity, error) {
		calls++
		return &domain.Activity{ID: id, Title: "Park Cleanup", MaxParticipants: 30}, nil
	}

	// First call misses the cache and hits the fallback
	activity, err := cache.GetActivityWithCache(ctx, 5, fallback)
	require.NoError(t, err)
	assert.Equal(t, "Park Cleanup", activity.Title)
	assert.Equal(t, 1, calls)

	// The result must now be cached
	n, err := client.Exists(ctx, client.KeyBuilder.KeyActivity(5))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	// Second call is served from cache
	activity, err = cache.GetActivityWithCache(ctx, 5, fallback)
	require.NoError(t, err)
	assert.Equal(t, "Park Cleanup", activity.Title)
	assert.Equal(t, 1, calls)
}

func TestCacheService_GetActivityWithCache_FallbackError(t *testing.T) {
	_, _, cache := setupCacheService(t)

	activity, err := cache.GetActivityWithCache(context.Background(), 404,
		func(ctx context.Context, id int64) (*domain.Activity, error) {
			return nil, domain.ErrActivityNotFound
		})

	assert.Nil(t, activity)
	assert.ErrorIs(t, err, domain.ErrActivityNotFound)
}

func TestCacheService_GetActivityWithCache_CorruptedEntry(t *testing.T) {
	_, client, cache := setupCacheService(t)
	ctx := context.Background()

	key := client.KeyBuilder.KeyActivity(5)
	require.NoError(t, client.Set(ctx, key, "{not json", time.Minute))

	calls := 0
	activity, err := cache.GetActivityWithCache(ctx, 5,
		func(ctx context.Context, id int64) (*domain.Activity, error) {
			calls++
			return &domain.Activity{ID: id, Title: "Park Cleanup"}, nil
		})

	require.NoError(t, err)
	assert.Equal(t, "Park Cleanup", activity.Title)
	assert.Equal(t, 1, calls, "corrupted cache entry must fall through to the database")
}

func TestCacheService_InvalidateActivity(t *testing.T) {
	_, client, cache := setupCacheService(t)
	ctx := context.Background()

	fallback := func(ctx context.Context, id int64) (*domain.Activity, error) {
		return &domain.Activity{ID: id}, nil
	}
	_, err := cache.GetActivityWithCache(ctx, 5, fallback)
	require.NoError(t, err)

	cache.InvalidateActivity(ctx, 5)

	n, err := client.Exists(ctx, client.KeyBuilder.KeyActivity(5))
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCacheService_GetStatisticsWithCache(t *testing.T) {
	_, client, cache := setupCacheService(t)
	ctx := context.Background()

	calls := 0
	fallback := func(ctx context.Context, id int64) (*domain.UserStatistics, error) {
		calls++
		return &domain.UserStatistics{CompletedActivities: 3, VolunteerHours: 9}, nil
	}

	stats, err := cache.GetStatisticsWithCache(ctx, 7, fallback)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.CompletedActivities)

	stats, err = cache.GetStatisticsWithCache(ctx, 7, fallback)
	require.NoError(t, err)
	assert.Equal(t, float64(9), stats.VolunteerHours)
	assert.Equal(t, 1, calls)

	cache.InvalidateUserStatistics(ctx, 7)
	n, err := client.Exists(ctx, client.KeyBuilder.KeyUserStatistics(7))
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCacheService_NilRedisFallsThrough(t *testing.T) {
	cache := NewCacheService(nil, zap.NewNop())
	ctx := context.Background()

	calls := 0
	activity, err := cache.GetActivityWithCache(ctx, 5,
		func(ctx context.Context, id int64) (*domain.Activity, error) {
			calls++
			return &domain.Activity{ID: id}, nil
		})
	require.NoError(t, err)
	assert.Equal(t, int64(5), activity.ID)

	_, err = cache.GetActivityWithCache(ctx, 5,
		func(ctx context.Context, id int64) (*domain.Activity, error) {
			calls++
			return &domain.Activity{ID: id}, nil
		})
	require.NoError(t, err)
	assert.Equal(t, 2, calls, "without redis every call must hit the database")

	// Invalidation must be a no-op, not a panic
	cache.InvalidateActivity(ctx, 5)
	cache.InvalidateUserStatistics(ctx, 7)
}
