package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func frozenLimiter(at time.Time) *LocalRateLimiter {
	l := NewLocalRateLimiter()
	l.now = func() time.Time { return at }
	return l
}

func TestLocalRateLimiter(t *testing.T) {
	ctx := context.Background()
	limit := Limit{Rate: 10, Period: time.Second, Burst: 2}

	t.Run("burst then reject", func(t *testing.T) {
		l := frozenLimiter(time.Unix(1700000000, 0))

		res, err := l.Allow(ctx, "ratelimit:1.1.1.1", limit)
		require.NoError(t, err)
		assert.True(t, res.Allowed)
		assert.Equal(t, 1, res.Remaining)

		res, err = l.Allow(ctx, "ratelimit:1.1.1.1", limit)
		require.NoError(t, err)
		assert.True(t, res.Allowed)
		assert.Equal(t, 0, res.Remaining)

		res, err = l.Allow(ctx, "ratelimit:1.1.1.1", limit)
		require.NoError(t, err)
		assert.False(t, res.Allowed)
		assert.InDelta(t, float64(100*time.Millisecond), float64(res.RetryAfter), float64(time.Millisecond))
	})

	t.Run("keys are independent", func(t *testing.T) {
		l := frozenLimiter(time.Unix(1700000000, 0))
		for i := 0; i < 2; i++ {
			res, err := l.Allow(ctx, "a", limit)
			require.NoError(t, err)
			require.True(t, res.Allowed)
		}

		res, err := l.Allow(ctx, "b", limit)
		require.NoError(t, err)
		assert.True(t, res.Allowed)
	})

	t.Run("tokens refill over time", func(t *testing.T) {
		now := time.Unix(1700000000, 0)
		l := NewLocalRateLimiter()
		l.now = func() time.Time { return now }

		for i := 0; i < 2; i++ {
			_, err := l.Allow(ctx, "k", limit)
			require.NoError(t, err)
		}
		res, err := l.Allow(ctx, "k", limit)
		require.NoError(t, err)
		require.False(t, res.Allowed)

		now = now.Add(100 * time.Millisecond)
		res, err = l.Allow(ctx, "k", limit)
		require.NoError(t, err)
		assert.True(t, res.Allowed)
	})

	t.Run("invalid limit", func(t *testing.T) {
		_, err := NewLocalRateLimiter().Allow(ctx, "k", Limit{Rate: 0, Period: time.Second})
		assert.Error(t, err)
	})
}
