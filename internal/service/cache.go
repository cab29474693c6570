package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/appdotbuilder/canossa-info-system/internal/observability"
)

// readCache is a JSON read-through cache over Redis. A nil client disables it.
type readCache struct {
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

func newReadCache(client *redis.Client, ttl time.Duration, logger zerolog.Logger) readCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return readCache{client: client, ttl: ttl, logger: logger}
}

func (c readCache) get(ctx context.Context, name, key string, target interface{}) bool {
	if c.client == nil {
		return false
	}

	cached, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn().Err(err).Str("key", key).Msg("cache lookup failed")
			observability.CacheRequests().WithLabelValues(name, "error").Inc()
			return false
		}
		observability.CacheRequests().WithLabelValues(name, "miss").Inc()
		return false
	}

	if err := json.Unmarshal(cached, target); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("discarding undecodable cache entry")
		observability.CacheRequests().WithLabelValues(name, "error").Inc()
		return false
	}

	observability.CacheRequests().WithLabelValues(name, "hit").Inc()
	return true
}

func (c readCache) set(ctx context.Context, key string, value interface{}) {
	if c.client == nil {
		return
	}

	payload, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("failed to encode cache entry")
		return
	}
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("failed to write cache entry")
	}
}

func (c readCache) invalidate(ctx context.Context, keys ...string) {
	if c.client == nil || len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn().Err(err).Strs("keys", keys).Msg("failed to invalidate cache")
	}
}
