package accommodation

import (
	"context"
	"encoding/json"
	"time"

	"stayhub/models"
	"stayhub/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const cacheKeyPrefix = "accommodation:"

// Cache is a read-through cache for single accommodations. The public
// catalog is read far more often than it changes, so reads are served
// from here and mutations invalidate.
type Cache interface {
	Get(id string) (*models.Accommodation, bool)
	Set(a *models.Accommodation)
	Invalidate(id string)
}

// RedisCache stores accommodations as JSON under a per-id key.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) Get(id string) (*models.Accommodation, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	data, err := c.client.Get(ctx, cacheKeyPrefix+id).Bytes()
	if err != nil {
		if err != redis.Nil {
			utils.GetLogger().Warn("accommodation cache read failed",
				zap.String("id", id), zap.Error(err))
		}
		return nil, false
	}

	var a models.Accommodation
	if err := json.Unmarshal(data, &a); err != nil {
		utils.GetLogger().Warn("accommodation cache entry corrupt, dropping",
			zap.String("id", id), zap.Error(err))
		c.Invalidate(id)
		return nil, false
	}
	return &a, true
}

func (c *RedisCache) Set(a *models.Accommodation) {
	data, err := json.Marshal(a)
	if err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := c.client.Set(ctx, cacheKeyPrefix+a.ID, data, c.ttl).Err(); err != nil {
		utils.GetLogger().Warn("accommodation cache write failed",
			zap.String("id", a.ID), zap.Error(err))
	}
}

func (c *RedisCache) Invalidate(id string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := c.client.Del(ctx, cacheKeyPrefix+id).Err(); err != nil {
		utils.GetLogger().Warn("accommodation cache invalidation failed",
			zap.String("id", id), zap.Error(err))
	}
}
