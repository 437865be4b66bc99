package reasoning

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache keeps insight responses with a TTL. Cache errors are treated
// as misses; the engine then falls through to a direct call.
type RedisCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisCache(rdb *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{rdb: rdb, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context, key string) (*Insights, bool) {
	raw, err := c.rdb.Get(ctx, key).Result()
	if err != nil {
		return nil, false
	}
	insights := &Insights{}
	if err := json.Unmarshal([]byte(raw), insights); err != nil {
		return nil, false
	}
	return insights, true
}

func (c *RedisCache) Set(ctx context.Context, key string, insights *Insights) {
	raw, err := json.Marshal(insights)
	if err != nil {
		return
	}
	// best effort; a failed write just means a future re-call
	_ = c.rdb.Set(ctx, key, raw, c.ttl).Err()
}
