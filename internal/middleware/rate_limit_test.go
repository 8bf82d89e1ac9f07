package middleware

import (
	"testing"

	"github.com/set-night/aura/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestLimiterAllowsUpToLimit(t *testing.T) {
	l := NewLimiter()

	for i := 0; i < config.RateLimitPerChat; i++ {
		assert.True(t, l.Allow(1), "message %d should pass", i+1)
	}
	assert.False(t, l.Allow(1))
}

func TestLimiterIsPerChat(t *testing.T) {
	l := NewLimiter()

	for i := 0; i < config.RateLimitPerChat+1; i++ {
		l.Allow(1)
	}
	assert.False(t, l.Allow(1))
	assert.True(t, l.Allow(2), "another chat has its own window")
}

func TestCleanupKeepsActiveWindows(t *testing.T) {
	l := NewLimiter()
	l.Allow(1)

	l.Cleanup()

	l.mu.Lock()
	_, ok := l.windows[1]
	l.mu.Unlock()
	assert.True(t, ok, "a fresh window must survive cleanup")
}
