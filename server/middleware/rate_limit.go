// Package middleware holds shared echo middleware helpers.
package middleware

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter throttles chat traffic per user. Each message can fan out
// into LLM calls, so one chatty client must not starve the rest.
type RateLimiter struct {
	mu     sync.Mutex
	limits map[string]*rate.Limiter

	perSecond rate.Limit
	burst     int
}

// NewRateLimiter creates a per-key rate limiter: 2 messages per second
// with a burst of 5, roughly typing speed.
func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		limits:    make(map[string]*rate.Limiter),
		perSecond: rate.Every(time.Second / 2),
		burst:     5,
	}
}

// Allow reports whether a request under the given key may proceed now.
func (rl *RateLimiter) Allow(key string) bool {
	return rl.getLimiter(key).Allow()
}

func (rl *RateLimiter) getLimiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if limiter, ok := rl.limits[key]; ok {
		return limiter
	}
	limiter := rate.NewLimiter(rl.perSecond, rl.burst)
	rl.limits[key] = limiter
	return limiter
}
