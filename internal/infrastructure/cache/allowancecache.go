package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/atelier-edu/atelier/internal/application/claim/usecases"
	"github.com/atelier-edu/atelier/internal/shared/logger"
)

const (
	allowanceKeyPrefix = "allowance:snapshot:"
	baseAllowanceTTL   = 10 * time.Minute
	allowanceTTLJitter = 3 * time.Minute // TTL range: 10-13 min (anti-stampede)
)

// RedisAllowanceCache caches computed allowance snapshots in Redis, keyed
// by subscription and calendar period. Claim writes invalidate the entry,
// so staleness is bounded by the TTL only for out-of-band changes such as
// plan edits.
type RedisAllowanceCache struct {
	client *redis.Client
	ttl    time.Duration
	logger logger.Interface
}

func NewRedisAllowanceCache(client *redis.Client, ttl time.Duration, logger logger.Interface) *RedisAllowanceCache {
	if ttl <= 0 {
		ttl = baseAllowanceTTL
	}
	return &RedisAllowanceCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

func (c *RedisAllowanceCache) key(subscriptionID uint, period string) string {
	return fmt.Sprintf("%s%d:%s", allowanceKeyPrefix, subscriptionID, period)
}

func (c *RedisAllowanceCache) GetSnapshot(ctx context.Context, subscriptionID uint, period string) (*usecases.AllowanceSnapshot, error) {
	data, err := c.client.Get(ctx, c.key(subscriptionID, period)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil // Cache miss
		}
		return nil, fmt.Errorf("failed to get allowance snapshot from cache: %w", err)
	}

	var snapshot usecases.AllowanceSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		// Treat a corrupt entry as a miss; it will be overwritten.
		c.logger.Warnw("dropping corrupt allowance snapshot cache entry",
			"subscription_id", subscriptionID,
			"period", period,
			"error", err,
		)
		return nil, nil
	}

	return &snapshot, nil
}

func (c *RedisAllowanceCache) SetSnapshot(ctx context.Context, snapshot *usecases.AllowanceSnapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal allowance snapshot: %w", err)
	}

	key := c.key(snapshot.SubscriptionID, snapshot.Period)
	if err := c.client.Set(ctx, key, data, c.ttlWithJitter()).Err(); err != nil {
		return fmt.Errorf("failed to set allowance snapshot in cache: %w", err)
	}

	c.logger.Debugw("allowance snapshot cached",
		"subscription_id", snapshot.SubscriptionID,
		"period", snapshot.Period,
	)
	return nil
}

func (c *RedisAllowanceCache) Invalidate(ctx context.Context, subscriptionID uint, period string) error {
	if err := c.client.Del(ctx, c.key(subscriptionID, period)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate allowance snapshot cache: %w", err)
	}

	c.logger.Debugw("allowance snapshot cache invalidated",
		"subscription_id", subscriptionID,
		"period", period,
	)
	return nil
}

func (c *RedisAllowanceCache) ttlWithJitter() time.Duration {
	return c.ttl + rand.N(allowanceTTLJitter)
}
