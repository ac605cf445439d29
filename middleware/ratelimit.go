package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"propertyhub-backend/utils"
)

type clientBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ClientRateLimiter hands out one token bucket per client IP. Buckets idle
// long enough to have refilled are dropped, since a new bucket behaves the
// same.
type ClientRateLimiter struct {
	mu        sync.Mutex
	buckets   map[string]*clientBucket
	limit     rate.Limit
	burst     int
	idle      time.Duration
	lastSweep time.Time
	now       func() time.Time
}

// NewClientRateLimiter allows perMinute requests per client with the given
// burst. perMinute <= 0 disables limiting.
func NewClientRateLimiter(perMinute, burst int) *ClientRateLimiter {
	if burst <= 0 {
		burst = 1
	}
	limit := rate.Inf
	idle := time.Minute
	if perMinute > 0 {
		every := time.Minute / time.Duration(perMinute)
		limit = rate.Every(every)
		if refill := every * time.Duration(burst); refill > idle {
			idle = refill
		}
	}
	return &ClientRateLimiter{
		buckets: map[string]*clientBucket{},
		limit:   limit,
		burst:   burst,
		idle:    idle,
		now:     time.Now,
	}
}

func (l *ClientRateLimiter) Allow(client string) bool {
	if l.limit == rate.Inf {
		return true
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, ok := l.buckets[client]
	if !ok {
		l.sweep(now)
		b = &clientBucket{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.buckets[client] = b
	}
	b.lastSeen = now
	return b.limiter.AllowN(now, 1)
}

// sweep drops idle buckets, at most once per idle window. Callers hold mu.
func (l *ClientRateLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < l.idle {
		return
	}
	l.lastSweep = now
	for client, b := range l.buckets {
		if now.Sub(b.lastSeen) >= l.idle {
			delete(l.buckets, client)
		}
	}
}

// Len reports how many clients currently hold a bucket.
func (l *ClientRateLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

func RateLimit(l *ClientRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow(c.ClientIP()) {
			utils.JSONAbort(c, http.StatusTooManyRequests, "Too many booking requests, please try again later")
			return
		}
		c.Next()
	}
}
