package middleware

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"skincare-backend/internal/shared/server/respond"
)

// RateLimitRule is a token bucket: Rate tokens per second up to Burst.
type RateLimitRule struct {
	Rate  float64
	Burst int
}

// PerMinute builds a rule allowing n requests per minute with the given burst.
func PerMinute(n float64, burst int) RateLimitRule {
	return RateLimitRule{Rate: n / 60.0, Burst: burst}
}

// sweepEvery bounds how often Allow scans for buckets that have refilled.
const sweepEvery = time.Minute

// RateLimiter holds one bucket per caller and rule name. A bucket that has
// refilled to its burst is indistinguishable from a new one and is dropped.
type RateLimiter struct {
	mu        sync.Mutex
	buckets   map[string]*rateBucket
	now       func() time.Time
	lastSweep time.Time
}

type rateBucket struct {
	tokens float64
	last   time.Time
	fullAt time.Time
}

// NewRateLimiter constructs a limiter; now defaults to time.Now.
func NewRateLimiter(now func() time.Time) *RateLimiter {
	if now == nil {
		now = time.Now
	}
	return &RateLimiter{
		buckets: make(map[string]*rateBucket),
		now:     now,
	}
}

// RateLimit limits each caller (user id, else client IP) under the named rule.
func RateLimit(name string, rule RateLimitRule, limiter *RateLimiter) gin.HandlerFunc {
	if limiter == nil {
		limiter = NewRateLimiter(nil)
	}
	return func(c *gin.Context) {
		principal := strings.TrimSpace(UserIDFromContext(c))
		if principal == "" {
			principal = strings.TrimSpace(c.ClientIP())
		}
		allowed, retryAfter := limiter.Allow(principal+"|"+name, rule)
		if allowed {
			c.Next()
			return
		}
		retryAfterSeconds := int(math.Ceil(retryAfter.Seconds()))
		if retryAfterSeconds <= 0 {
			retryAfterSeconds = 1
		}
		c.Header("Retry-After", strconv.Itoa(retryAfterSeconds))
		respond.Error(c, http.StatusTooManyRequests, "rate_limited", "Too many requests, please slow down", map[string]int{
			"retryAfterSeconds": retryAfterSeconds,
		})
	}
}

// Allow takes one token from key's bucket and otherwise reports how long
// until the next token.
func (l *RateLimiter) Allow(key string, rule RateLimitRule) (bool, time.Duration) {
	if l == nil || rule.Rate <= 0 || rule.Burst <= 0 {
		return true, 0
	}
	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sweep(now)
	bucket, ok := l.buckets[key]
	if !ok {
		bucket = &rateBucket{tokens: float64(rule.Burst), last: now}
		l.buckets[key] = bucket
	}
	if elapsed := now.Sub(bucket.last).Seconds(); elapsed > 0 {
		bucket.tokens = math.Min(float64(rule.Burst), bucket.tokens+elapsed*rule.Rate)
		bucket.last = now
	}
	allowed := bucket.tokens >= 1
	if allowed {
		bucket.tokens--
	}
	bucket.fullAt = now.Add(secondsToDuration((float64(rule.Burst) - bucket.tokens) / rule.Rate))
	if allowed {
		return true, 0
	}
	return false, secondsToDuration((1 - bucket.tokens) / rule.Rate)
}

func (l *RateLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < sweepEvery {
		return
	}
	l.lastSweep = now
	for key, bucket := range l.buckets {
		if !now.Before(bucket.fullAt) {
			delete(l.buckets, key)
		}
	}
}

func secondsToDuration(sec float64) time.Duration {
	return time.Duration(math.Ceil(sec*1000.0)) * time.Millisecond
}
