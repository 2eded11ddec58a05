package infra

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// NewRedis connects the client backing the week snapshot cache.
// An empty URL returns a nil client: snapshots are then always rebuilt from
// the database.
func NewRedis(redisURL string) (*redis.Client, error) {
	if redisURL == "" {
		log.Info().Msg("REDIS_URL not set, week snapshot cache disabled")
		return nil, nil
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis %s db %d: %w", opts.Addr, opts.DB, err)
	}

	log.Info().Str("addr", opts.Addr).Int("db", opts.DB).Msg("week snapshot cache connected")
	return rdb, nil
}
