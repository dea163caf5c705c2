package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// UserRateLimiter provides per-user token bucket rate limiting so one busy
// till cannot starve the others. Requests without a user fall back to the
// client IP.
type UserRateLimiter struct {
	limiters    map[string]*rateLimiterEntry
	mu          sync.Mutex
	rate        rate.Limit // requests per second
	burst       int        // maximum burst size
	cleanupTick time.Duration
	entryTTL    time.Duration
	stop        chan struct{}
	stopOnce    sync.Once
}

type rateLimiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiterConfig holds configuration for the rate limiter
type RateLimiterConfig struct {
	RequestsPerSecond float64       // Rate of requests allowed per second
	BurstSize         int           // Maximum burst size
	CleanupInterval   time.Duration // How often to clean up stale entries
	EntryTTL          time.Duration // How long to keep unused entries
}

// DefaultRateLimiterConfig returns sensible defaults
func DefaultRateLimiterConfig() RateLimiterConfig {
	return RateLimiterConfig{
		RequestsPerSecond: 10,
		BurstSize:         20,
		CleanupInterval:   5 * time.Minute,
		EntryTTL:          10 * time.Minute,
	}
}

// RateLimiterConfigFrom converts "requests per duration seconds" settings.
func RateLimiterConfigFrom(requests, durationSeconds int) RateLimiterConfig {
	cfg := DefaultRateLimiterConfig()
	if requests > 0 && durationSeconds > 0 {
		cfg.RequestsPerSecond = float64(requests) / float64(durationSeconds)
		cfg.BurstSize = requests
	}
	return cfg
}

// NewUserRateLimiter creates a new per-user rate limiter. Call Close to stop
// its cleanup goroutine.
func NewUserRateLimiter(cfg RateLimiterConfig) *UserRateLimiter {
	rl := &UserRateLimiter{
		limiters:    make(map[string]*rateLimiterEntry),
		rate:        rate.Limit(cfg.RequestsPerSecond),
		burst:       cfg.BurstSize,
		cleanupTick: cfg.CleanupInterval,
		entryTTL:    cfg.EntryTTL,
		stop:        make(chan struct{}),
	}

	if rl.cleanupTick > 0 {
		go rl.cleanupLoop()
	}

	return rl
}

// Close stops the background cleanup.
func (rl *UserRateLimiter) Close() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

func (rl *UserRateLimiter) getLimiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if entry, exists := rl.limiters[key]; exists {
		entry.lastSeen = time.Now()
		return entry.limiter
	}

	limiter := rate.NewLimiter(rl.rate, rl.burst)
	rl.limiters[key] = &rateLimiterEntry{
		limiter:  limiter,
		lastSeen: time.Now(),
	}
	return limiter
}

func (rl *UserRateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.cleanupTick)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanup()
		case <-rl.stop:
			return
		}
	}
}

// cleanup removes entries that haven't been used recently
func (rl *UserRateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := time.Now().Add(-rl.entryTTL)
	for key, entry := range rl.limiters {
		if entry.lastSeen.Before(cutoff) {
			delete(rl.limiters, key)
		}
	}
}

// Middleware returns a Gin middleware that applies per-user rate limiting
func (rl *UserRateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "ip:" + c.ClientIP()
		if v, ok := c.Get(ContextUserID); ok {
			if id, ok := v.(uuid.UUID); ok && id != uuid.Nil {
				key = "user:" + id.String()
			}
		}

		limiter := rl.getLimiter(key)
		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.burst))

		if !limiter.Allow() {
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"message": "Rate limit exceeded. Please try again later.",
				"error":   "too_many_requests",
			})
			return
		}

		c.Header("X-RateLimit-Remaining", strconv.Itoa(int(limiter.Tokens())))
		c.Next()
	}
}

// Stats returns current statistics about the rate limiter
func (rl *UserRateLimiter) Stats() map[string]interface{} {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	return map[string]interface{}{
		"active_clients":      len(rl.limiters),
		"rate_per_second":     float64(rl.rate),
		"burst_size":          rl.burst,
		"cleanup_interval_ms": rl.cleanupTick.Milliseconds(),
		"entry_ttl_ms":        rl.entryTTL.Milliseconds(),
	}
}
