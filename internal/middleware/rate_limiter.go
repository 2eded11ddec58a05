package middleware

import (
	"net/http"
	"sync"
	"time"

	"prodplan/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// idleTTL is how long an IP may stay silent before its limiter is dropped.
const idleTTL = 10 * time.Minute

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ipLimiter keeps one token bucket per client IP. Idle entries are purged
// on the request path, at most once per idleTTL.
type ipLimiter struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	every     rate.Limit
	burst     int
	lastPurge time.Time
	now       func() time.Time
}

func newIPLimiter(perMinute int) *ipLimiter {
	if perMinute <= 0 {
		perMinute = 60
	}
	return &ipLimiter{
		visitors: make(map[string]*visitor),
		every:    rate.Every(time.Minute / time.Duration(perMinute)),
		burst:    perMinute,
		now:      time.Now,
	}
}

func (l *ipLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if now.Sub(l.lastPurge) > idleTTL {
		purged := 0
		for k, v := range l.visitors {
			if now.Sub(v.lastSeen) > idleTTL {
				delete(l.visitors, k)
				purged++
			}
		}
		l.lastPurge = now
		if purged > 0 {
			log.Debug().Int("purged", purged).Int("remaining", len(l.visitors)).Msg("rate limiter purged")
		}
	}

	v, ok := l.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.every, l.burst)}
		l.visitors[ip] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

// RateLimiter allows perMinute requests per minute per IP, with bursts of the same size.
func RateLimiter(perMinute int) gin.HandlerFunc {
	l := newIPLimiter(perMinute)
	return func(c *gin.Context) {
		if !l.allow(c.ClientIP()) {
			c.Header("Retry-After", "60")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New("Trop de requêtes. Réessayez dans un instant."))
			return
		}
		c.Next()
	}
}

// LoginRateLimiter limits login attempts per IP.
func LoginRateLimiter(perMinute int) gin.HandlerFunc {
	l := newIPLimiter(perMinute)
	return func(c *gin.Context) {
		if !l.allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New("Trop de tentatives de connexion. Réessayez dans une minute."))
			return
		}
		c.Next()
	}
}
