package timing

import "time"

// Limiter paces emulation to the console's frame rate.
type Limiter interface {
	// WaitForNextFrame blocks until the next frame is due.
	// Returns immediately if emulation is behind schedule.
	WaitForNextFrame()

	// Reset restarts the schedule, e.g. after a pause.
	Reset()
}

// NewNoOpLimiter returns a limiter that never waits, for headless runs and --no-limit.
func NewNoOpLimiter() Limiter {
	return &noOpLimiter{}
}

type noOpLimiter struct{}

func (n *noOpLimiter) WaitForNextFrame() {}
func (n *noOpLimiter) Reset()            {}

// NTSC timing. A frame is 262 lines of 341 dots at 3 dots per CPU cycle,
// with one dot dropped on every other frame while rendering.
const (
	CPUFrequency    = 1789773
	DotsPerFrame    = 341 * 262
	CyclesPerFrame  = (DotsPerFrame - 0.5) / 3
	DotsPerCPUCycle = 3
)

// TargetFPS returns the NTSC frame rate, about 60.0988.
func TargetFPS() float64 {
	return float64(CPUFrequency) / CyclesPerFrame
}

// FrameDuration returns the target duration of a single frame.
func FrameDuration() time.Duration {
	return time.Duration(float64(time.Second) / TargetFPS())
}

// New returns the limiter used by interactive backends, or a no-op one when
// limiting is disabled.
func New(limit bool) Limiter {
	if !limit {
		return NewNoOpLimiter()
	}
	return NewAdaptiveLimiter()
}
