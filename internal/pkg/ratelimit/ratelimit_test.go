//go:build unit

package ratelimit_test

import (
	"testing"
	"time"

	"fin-approvals/internal/pkg/clock"
	"fin-approvals/internal/pkg/ratelimit"

	"github.com/stretchr/testify/assert"
)

func TestLimiter_Allow(t *testing.T) {
	t.Run("allows up to the limit then refuses", func(t *testing.T) {
		clk := clock.NewMockClock(time.Now())
		limiter := ratelimit.NewLimiter(3, time.Minute, clk)

		for i := 0; i < 3; i++ {
			assert.True(t, limiter.Allow("10.0.0.1"), "hit %d should pass", i+1)
		}
		assert.False(t, limiter.Allow("10.0.0.1"))
	})

	t.Run("keys are counted independently", func(t *testing.T) {
		clk := clock.NewMockClock(time.Now())
		limiter := ratelimit.NewLimiter(1, time.Minute, clk)

		assert.True(t, limiter.Allow("10.0.0.1"))
		assert.False(t, limiter.Allow("10.0.0.1"))
		assert.True(t, limiter.Allow("10.0.0.2"))
	})

	t.Run("an elapsed window resets the count", func(t *testing.T) {
		clk := clock.NewMockClock(time.Now())
		limiter := ratelimit.NewLimiter(1, time.Minute, clk)

		assert.True(t, limiter.Allow("10.0.0.1"))
		assert.False(t, limiter.Allow("10.0.0.1"))

		clk.Add(time.Minute + time.Second)
		assert.True(t, limiter.Allow("10.0.0.1"))
	})

	t.Run("expired buckets are swept", func(t *testing.T) {
		clk := clock.NewMockClock(time.Now())
		limiter := ratelimit.NewLimiter(1, time.Minute, clk)

		limiter.Allow("10.0.0.1")
		limiter.Allow("10.0.0.2")
		assert.Equal(t, 2, limiter.Len())

		clk.Add(2 * time.Minute)
		limiter.Allow("10.0.0.3")
		assert.Equal(t, 1, limiter.Len())
	})
}
