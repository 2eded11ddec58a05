package infra

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Cache stores JSON documents in Redis. It is best effort: a nil Cache, a
// nil client or an open breaker turn every call into a miss / no-op, so
// callers never fail because Redis is down.
type Cache struct {
	rdb     *redis.Client
	ttl     time.Duration
	breaker *Breaker
}

func NewCache(rdb *redis.Client, ttl time.Duration) *Cache {
	if rdb == nil {
		return nil
	}
	return &Cache{rdb: rdb, ttl: ttl, breaker: NewBreaker(3, 30*time.Second)}
}

// BreakerState reports "disabled" without Redis, otherwise the breaker state
// guarding the snapshot reads.
func (c *Cache) BreakerState() string {
	if c == nil {
		return "disabled"
	}
	return c.breaker.State().String()
}

// GetJSON decodes the value at key into dst and reports whether it was found.
func (c *Cache) GetJSON(ctx context.Context, key string, dst any) bool {
	if c == nil {
		return false
	}
	var raw []byte
	err := c.breaker.Do(func() error {
		b, err := c.rdb.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return nil
		}
		raw = b
		return err
	})
	if err != nil {
		c.warn(err, "get", key)
		return false
	}
	if raw == nil {
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		c.warn(err, "decode", key)
		return false
	}
	return true
}

// SetJSON stores v under key with the cache TTL.
func (c *Cache) SetJSON(ctx context.Context, key string, v any) {
	if c == nil {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		c.warn(err, "encode", key)
		return
	}
	if err := c.breaker.Do(func() error { return c.rdb.Set(ctx, key, b, c.ttl).Err() }); err != nil {
		c.warn(err, "set", key)
	}
}

// Generation returns the counter stored at key, 0 when it was never bumped.
// ok is false when the cache is disabled or Redis failed: callers must then
// neither read nor fill generation-scoped entries.
func (c *Cache) Generation(ctx context.Context, key string) (gen int64, ok bool) {
	if c == nil {
		return 0, false
	}
	err := c.breaker.Do(func() error {
		v, err := c.rdb.Get(ctx, key).Int64()
		if errors.Is(err, redis.Nil) {
			return nil
		}
		gen = v
		return err
	})
	if err != nil {
		c.warn(err, "generation", key)
		return 0, false
	}
	return gen, true
}

// Bump increments the counter at key. Entries keyed on an older generation
// are never read again and expire with their TTL.
func (c *Cache) Bump(ctx context.Context, key string) {
	if c == nil {
		return
	}
	if err := c.breaker.Do(func() error { return c.rdb.Incr(ctx, key).Err() }); err != nil {
		c.warn(err, "bump", key)
	}
}

// GenerationKey joins base and gen into the key of one cached snapshot.
func GenerationKey(base string, gen int64) string {
	return base + ":" + strconv.FormatInt(gen, 10)
}

func (c *Cache) warn(err error, op, key string) {
	if errors.Is(err, ErrBreakerOpen) {
		return
	}
	log.Warn().Err(err).Str("op", op).Str("key", key).Str("breaker", c.breaker.State().String()).Msg("cache: redis call failed")
}
