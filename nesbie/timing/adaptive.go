package timing

import (
	"log/slog"
	"time"
)

// spinThreshold is the remaining wait below which the limiter spins instead of sleeping.
const spinThreshold = 2 * time.Millisecond

// AdaptiveLimiter sleeps for most of the frame and spins for the rest,
// rescheduling when it falls too far behind.
type AdaptiveLimiter struct {
	frameTime time.Duration
	deadline  time.Time
	frames    int64
	now       func() time.Time
	sleep     func(time.Duration)
}

func NewAdaptiveLimiter() *AdaptiveLimiter {
	return &AdaptiveLimiter{
		frameTime: FrameDuration(),
		deadline:  time.Now(),
		now:       time.Now,
		sleep:     time.Sleep,
	}
}

func (a *AdaptiveLimiter) WaitForNextFrame() {
	a.deadline = a.deadline.Add(a.frameTime)
	a.frames++

	wait := a.deadline.Sub(a.now())
	switch {
	case wait > spinThreshold:
		a.sleep(wait - time.Millisecond)
		fallthrough
	case wait > 0:
		for a.now().Before(a.deadline) {
		}
	case wait < -5*a.frameTime:
		// too far behind to catch up, e.g. after a debugger pause
		slog.Debug("Frame limiter rescheduled", "behind_ms", (-wait).Milliseconds(), "frame", a.frames)
		a.deadline = a.now()
	}
}

func (a *AdaptiveLimiter) Reset() {
	a.deadline = a.now()
	a.frames = 0
}
