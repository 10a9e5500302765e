// Package ratelimit throttles expensive endpoints per user with a GCRA
// limiter stored in redis, so the limit holds across instances.
package ratelimit

import (
	"context"
	"time"

	"github.com/go-redis/redis_rate/v10"
	"github.com/redis/go-redis/v9"
)

type RedisLimiter struct {
	limiter *redis_rate.Limiter
	limit   redis_rate.Limit
	prefix  string
}

func NewRedisLimiter(client *redis.Client, prefix string, perMinute int) *RedisLimiter {
	return &RedisLimiter{
		limiter: redis_rate.NewLimiter(client),
		limit:   redis_rate.PerMinute(perMinute),
		prefix:  prefix,
	}
}

func (rl *RedisLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	result, err := rl.limiter.Allow(ctx, rl.prefix+":"+key, rl.limit)
	if err != nil {
		return false, 0, err
	}
	return result.Allowed > 0, result.RetryAfter, nil
}
