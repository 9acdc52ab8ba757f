package service

import (
	"context"
	"encoding/json"

	"volunteerhub/internal/domain"
	"volunteerhub/pkg/redis"

	"go.uber.org/zap"
)

// CacheService implements the cache-aside pattern for activity details and
// user statistics. A nil redis client disables caching: every call falls
// through to the database fallback.
type CacheService struct {
	redis  *redis.Client
	logger *zap.Logger
}

// NewCacheService creates a new cache service
func NewCacheService(redisClient *redis.Client, logger *zap.Logger) *CacheService {
	return &CacheService{
		redis:  redisClient,
		logger: logger,
	}
}

// GetActivityWithCache retrieves an activity with cache-aside fallback
func (c *CacheService) GetActivityWithCache(ctx context.Context, activityID int64, dbFallback func(ctx context.Context, id int64) (*domain.Activity, error)) (*domain.Activity, error) {
	if c.redis == nil {
		return dbFallback(ctx, activityID)
	}

	cacheKey := c.redis.KeyBuilder.KeyActivity(activityID)
	cached, err := c.redis.Get(ctx, cacheKey)
	if err == nil && cached != "" {
		var activity domain.Activity
		if unmarshalErr := json.Unmarshal([]byte(cached), &activity); unmarshalErr == nil {
			c.logger.Debug("Activity cache hit", zap.Int64("activity_id", activityID))
			return &activity, nil
		}
		c.logger.Warn("Activity cache corrupted, falling back to database",
			zap.Int64("activity_id", activityID))
	} else if err != nil && err != redis.Nil {
		c.logger.Warn("Activity cache error, falling back to database",
			zap.Int64("activity_id", activityID),
			zap.Error(err))
	}

	activity, err := dbFallback(ctx, activityID)
	if err != nil {
		return nil, err
	}

	if data, marshalErr := json.Marshal(activity); marshalErr == nil {
		if setErr := c.redis.Set(ctx, cacheKey, data, redis.TTLActivity); setErr != nil {
			c.logger.Warn("Failed to cache activity", zap.Error(setErr))
		}
	}

	return activity, nil
}

// InvalidateActivity drops the cached detail for an activity. Called after
// every seat mutation so readers never see a stale counter for long.
func (c *CacheService) InvalidateActivity(ctx context.Context, activityID int64) {
	if c.redis == nil {
		return
	}
	if err := c.redis.Delete(ctx, c.redis.KeyBuilder.KeyActivity(activityID)); err != nil {
		c.logger.Warn("Failed to invalidate activity cache",
			zap.Int64("activity_id", activityID),
			zap.Error(err))
	}
}

// GetStatisticsWithCache retrieves user statistics with cache-aside fallback
func (c *CacheService) GetStatisticsWithCache(ctx context.Context, userID int64, dbFallback func(ctx context.Context, id int64) (*domain.UserStatistics, error)) (*domain.UserStatistics, error) {
	if c.redis == nil {
		return dbFallback(ctx, userID)
	}

	cacheKey := c.redis.KeyBuilder.KeyUserStatistics(userID)
	cached, err := c.redis.Get(ctx, cacheKey)
	if err == nil && cached != "" {
		var stats domain.UserStatistics
		if unmarshalErr := json.Unmarshal([]byte(cached), &stats); unmarshalErr == nil {
			c.logger.Debug("Statistics cache hit", zap.Int64("user_id", userID))
			return &stats, nil
		}
		c.logger.Warn("Statistics cache corrupted, falling back to database",
			zap.Int64("user_id", userID))
	} else if err != nil && err != redis.Nil {
		c.logger.Warn("Statistics cache error, falling back to database",
			zap.Int64("user_id", userID),
			zap.Error(err))
	}

	stats, err := dbFallback(ctx, userID)
	if err != nil {
		return nil, err
	}

	if data, marshalErr := json.Marshal(stats); marshalErr == nil {
		if setErr := c.redis.Set(ctx, cacheKey, data, redis.TTLUserStats); setErr != nil {
			c.logger.Warn("Failed to cache statistics", zap.Error(setErr))
		}
	}

	return stats, nil
}

// InvalidateUserStatistics drops the cached statistics for a user
func (c *CacheService) InvalidateUserStatistics(ctx context.Context, userID int64) {
	if c.redis == nil {
		return
	}
	if err := c.redis.Delete(ctx, c.redis.KeyBuilder.KeyUserStatistics(userID)); err != nil {
		c.logger.Warn("Failed to invalidate statistics cache",
			zap.Int64("user_id", userID),
			zap.Error(err))
	}
}
