package timing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTargetFPS(t *testing.T) {
	assert.InDelta(t, 60.0988, TargetFPS(), 0.0001)
	assert.InDelta(t, 16.639, float64(FrameDuration())/float64(time.Millisecond), 0.001)
}

func TestNew(t *testing.T) {
	_, ok := New(false).(*noOpLimiter)
	assert.True(t, ok)

	_, ok = New(true).(*AdaptiveLimiter)
	assert.True(t, ok)
}

// fakeClock advances only when the limiter sleeps or checks the time.
type fakeClock struct {
	now   time.Time
	slept time.Duration
}

func (c *fakeClock) Now() time.Time {
	c.now = c.now.Add(100 * time.Microsecond)
	return c.now
}

func (c *fakeClock) Sleep(d time.Duration) {
	c.slept += d
	c.now = c.now.Add(d)
}

func newFakeLimiter(clock *fakeClock) *AdaptiveLimiter {
	return &AdaptiveLimiter{
		frameTime: FrameDuration(),
		deadline:  clock.now,
		now:       clock.Now,
		sleep:     clock.Sleep,
	}
}

func TestAdaptiveLimiter(t *testing.T) {
	t.Run("waits out the frame", func(t *testing.T) {
		clock := &fakeClock{now: time.Unix(0, 0)}
		limiter := newFakeLimiter(clock)

		start := clock.now
		limiter.WaitForNextFrame()

		assert.False(t, clock.now.Before(start.Add(FrameDuration())))
		assert.Greater(t, clock.slept, FrameDuration()-2*time.Millisecond)
	})

	t.Run("reschedules when far behind", func(t *testing.T) {
		clock := &fakeClock{now: time.Unix(0, 0)}
		limiter := newFakeLimiter(clock)

		clock.now = clock.now.Add(time.Second)
		limiter.WaitForNextFrame()

		assert.Zero(t, clock.slept)
		assert.False(t, limiter.deadline.Before(time.Unix(1, 0)))
	})

	t.Run("does not wait when slightly behind", func(t *testing.T) {
		clock := &fakeClock{now: time.Unix(0, 0)}
		limiter := newFakeLimiter(clock)

		clock.now = clock.now.Add(FrameDuration() + time.Millisecond)
		limiter.WaitForNextFrame()

		assert.Zero(t, clock.slept)
		assert.Equal(t, time.Unix(0, 0).Add(FrameDuration()), limiter.deadline)
	})
}
