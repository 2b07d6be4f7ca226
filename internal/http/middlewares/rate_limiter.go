package middlewares

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

type clientBucket struct {
	tokens   int
	lastSeen time.Time
}

// RateLimiter is a per-client-IP token bucket. Buckets idle longer than
// staleAfter are dropped so the map does not grow with one-off clients.
type RateLimiter struct {
	mu         sync.Mutex
	rate       int
	burst      int
	buckets    map[string]*clientBucket
	staleAfter time.Duration
	lastSweep  time.Time
}

func NewRateLimiter(rate, burst int) *RateLimiter {
	return &RateLimiter{
		rate:       rate,
		burst:      burst,
		buckets:    make(map[string]*clientBucket),
		staleAfter: 10 * time.Minute,
		lastSweep:  time.Now(),
	}
}

func (rl *RateLimiter) RateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()

		rl.mu.Lock()
		now := time.Now()
		rl.sweepLocked(now)

		b, ok := rl.buckets[ip]
		if !ok {
			b = &clientBucket{tokens: rl.burst}
			rl.buckets[ip] = b
		} else {
			b.tokens += int(now.Sub(b.lastSeen).Seconds()) * rl.rate
			if b.tokens > rl.burst {
				b.tokens = rl.burst
			}
		}
		b.lastSeen = now

		if b.tokens <= 0 {
			rl.mu.Unlock()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		b.tokens--
		rl.mu.Unlock()

		c.Next()
	}
}

// sweepLocked drops idle buckets at most once per staleAfter interval.
func (rl *RateLimiter) sweepLocked(now time.Time) {
	if now.Sub(rl.lastSweep) < rl.staleAfter {
		return
	}
	rl.lastSweep = now
	for ip, b := range rl.buckets {
		if now.Sub(b.lastSeen) > rl.staleAfter {
			delete(rl.buckets, ip)
		}
	}
}
