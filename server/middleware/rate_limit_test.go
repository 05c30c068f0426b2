package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiter_BurstThenBlocked(t *testing.T) {
	rl := NewRateLimiter()

	allowed := 0
	for i := 0; i < 10; i++ {
		if rl.Allow("u-1") {
			allowed++
		}
	}
	assert.Equal(t, 5, allowed)

	// Keys are independent.
	assert.True(t, rl.Allow("u-2"))
}
