package cache

import (
	"context"
	"time"
)

// defaultRefillTTL bounds the lifetime of L1 entries refilled from L2,
// where the remaining L2 TTL is unknown.
const defaultRefillTTL = time.Minute

// LayeredCache is a two-level cache: a fast in-process L1 in front of a
// shared Redis L2. Writes go through to both; L1 is refilled on L2 hits.
type LayeredCache struct {
	mem       *MemoryCache
	redis     *RedisCache
	refillTTL time.Duration
}

// LayeredOption configures a LayeredCache.
type LayeredOption func(*LayeredCache)

// WithRefillTTL sets the L1 lifetime for entries refilled from L2.
func WithRefillTTL(ttl time.Duration) LayeredOption {
	return func(lc *LayeredCache) { lc.refillTTL = ttl }
}

// NewLayeredCache combines a memory L1 with a Redis L2.
func NewLayeredCache(redisCache *RedisCache, opts ...LayeredOption) *LayeredCache {
	lc := &LayeredCache{
		mem:       NewMemoryCache(),
		redis:     redisCache,
		refillTTL: defaultRefillTTL,
	}
	for _, opt := range opts {
		opt(lc)
	}
	return lc
}

func (lc *LayeredCache) Set(ctx context.Context, key, value string, expiration time.Duration) error {
	if err := lc.redis.Set(ctx, key, value, expiration); err != nil {
		return err
	}
	_ = lc.mem.Set(ctx, key, value, expiration)
	return nil
}

func (lc *LayeredCache) Get(ctx context.Context, key string) (string, error) {
	if v, err := lc.mem.Get(ctx, key); err == nil {
		return v, nil
	}
	v, err := lc.redis.Get(ctx, key)
	if err != nil {
		return "", err
	}
	_ = lc.mem.Set(ctx, key, v, lc.refillTTL)
	return v, nil
}

func (lc *LayeredCache) Delete(ctx context.Context, keys ...string) error {
	_ = lc.mem.Delete(ctx, keys...)
	return lc.redis.Delete(ctx, keys...)
}

func (lc *LayeredCache) Exists(ctx context.Context, key string) (bool, error) {
	if ok, _ := lc.mem.Exists(ctx, key); ok {
		return true, nil
	}
	return lc.redis.Exists(ctx, key)
}

func (lc *LayeredCache) Close() error {
	_ = lc.mem.Close()
	return lc.redis.Close()
}
