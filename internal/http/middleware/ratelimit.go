// In-memory token-bucket rate limiting for webhook calls.
//
// The chat platform is effectively a single client, but a leaked endpoint
// URL invites replay floods; a per-IP bucket caps the damage without any
// external dependency. Process-local only: scale-out deployments need a
// shared limiter instead.
package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// visitor pairs a bucket with its last use so idle entries can be evicted.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter keys token buckets by client IP. Buckets are created on
// demand and evicted opportunistically after idleTTL. Safe for concurrent
// use.
type RateLimiter struct {
	rps   rate.Limit
	burst int

	mu       sync.Mutex
	visitors map[string]*visitor

	idleTTL     time.Duration
	lastCleanup time.Time
}

// NewRateLimiter builds a limiter allowing rps requests per second with the
// given burst per client IP. An rps of 0 disables limiting.
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	return &RateLimiter{
		rps:         rate.Limit(rps),
		burst:       burst,
		visitors:    make(map[string]*visitor),
		idleTTL:     10 * time.Minute,
		lastCleanup: time.Now(),
	}
}

// Handler returns the Gin middleware. Over-limit calls are rejected with a
// 429 envelope; that is a transport-level refusal, the platform retries.
func (rl *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.rps <= 0 {
			c.Next()
			return
		}
		if !rl.take("ip:" + c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"request_id": c.GetString(requestIDKey),
				"code":       "too_many_requests",
				"message":    "rate limit exceeded",
			})
			return
		}
		c.Next()
	}
}

// take reserves one token for key, creating the bucket when needed and
// running cleanup at most once per idleTTL.
func (rl *RateLimiter) take(key string) bool {
	now := time.Now()

	rl.mu.Lock()
	v, ok := rl.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.rps, rl.burst)}
		rl.visitors[key] = v
	}
	v.lastSeen = now

	if now.Sub(rl.lastCleanup) > rl.idleTTL {
		for k, vv := range rl.visitors {
			if now.Sub(vv.lastSeen) > rl.idleTTL {
				delete(rl.visitors, k)
			}
		}
		rl.lastCleanup = now
	}
	rl.mu.Unlock()

	return v.limiter.Allow()
}
