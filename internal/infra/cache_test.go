package infra

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMiniCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewCache(rdb, time.Minute), mr
}

func TestNewCache_NilClientDisablesCache(t *testing.T) {
	c := NewCache(nil, time.Minute)
	assert.Nil(t, c)

	var dst map[string]int
	assert.False(t, c.GetJSON(context.Background(), "k", &dst))
	c.SetJSON(context.Background(), "k", map[string]int{"a": 1})
	c.Bump(context.Background(), "g")
	_, ok := c.Generation(context.Background(), "g")
	assert.False(t, ok)
	assert.Equal(t, "disabled", c.BreakerState())
}

func TestCache_UnreachableRedisIsAMiss(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer rdb.Close()
	c := NewCache(rdb, time.Minute)

	var dst map[string]int
	for range 3 {
		assert.False(t, c.GetJSON(context.Background(), "semaine:complete:1", &dst))
	}
	assert.Equal(t, BreakerOpen, c.breaker.State())
	assert.Equal(t, "open", c.BreakerState())

	// open breaker short-circuits without touching redis
	c.SetJSON(context.Background(), "semaine:complete:1", map[string]int{"a": 1})
	c.Bump(context.Background(), "semaine:gen:1")
	_, ok := c.Generation(context.Background(), "semaine:gen:1")
	assert.False(t, ok)
	assert.Nil(t, dst)
}

func TestCache_JSONRoundTripWithTTL(t *testing.T) {
	c, mr := newMiniCache(t)
	ctx := context.Background()

	c.SetJSON(ctx, "semaine:complete:1:0", map[string]int{"lignes": 2})

	var dst map[string]int
	require.True(t, c.GetJSON(ctx, "semaine:complete:1:0", &dst))
	assert.Equal(t, 2, dst["lignes"])
	assert.Equal(t, time.Minute, mr.TTL("semaine:complete:1:0"))
	assert.False(t, c.GetJSON(ctx, "semaine:complete:2:0", &dst))
}

func TestCache_GenerationStartsAtZeroAndBumps(t *testing.T) {
	c, _ := newMiniCache(t)
	ctx := context.Background()

	gen, ok := c.Generation(ctx, "semaine:gen:7")
	require.True(t, ok)
	assert.Zero(t, gen)

	c.Bump(ctx, "semaine:gen:7")
	c.Bump(ctx, "semaine:gen:7")

	gen, ok = c.Generation(ctx, "semaine:gen:7")
	require.True(t, ok)
	assert.EqualValues(t, 2, gen)
	assert.Equal(t, "semaine:complete:7:2", GenerationKey("semaine:complete:7", gen))
}
