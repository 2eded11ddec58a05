package middleware

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_BlocksAfterBurst(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimiter(3))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusNoContent, get(r, "/", "").Code, "request %d", i)
	}
	w := get(r, "/", "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
}

func TestIPLimiter_SeparateBucketsPerIP(t *testing.T) {
	l := newIPLimiter(1)

	assert.True(t, l.allow("10.0.0.1"))
	assert.False(t, l.allow("10.0.0.1"))
	assert.True(t, l.allow("10.0.0.2"))
}

func TestIPLimiter_PurgesIdleVisitors(t *testing.T) {
	now := time.Now()
	l := newIPLimiter(10)
	l.now = func() time.Time { return now }
	l.allow("10.0.0.1")
	l.allow("10.0.0.2")
	assert.Len(t, l.visitors, 2)

	now = now.Add(idleTTL + time.Minute)
	l.allow("10.0.0.3")

	assert.Len(t, l.visitors, 1)
	assert.Contains(t, l.visitors, "10.0.0.3")
}
