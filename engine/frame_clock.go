package engine

import "time"

// MinFrameInterval is the shortest pause the timer clock takes between frames, even when a
// frame overran its budget.
const MinFrameInterval = time.Millisecond

// FrameClock paces the render loop. The loop calls Wait after every frame, including frames
// that failed or took longer than the frame limit, so hosts with a cooperative scheduler get
// a chance to run between frames.
type FrameClock interface {
	// Wait blocks until the next frame should start.
	//
	// Parameters:
	//   - quit: closed when the engine stops
	//   - remaining: time left in the current frame budget; zero or negative when over budget
	//
	// Returns:
	//   - bool: false if quit closed while waiting
	Wait(quit <-chan struct{}, remaining time.Duration) bool
}

type timerClock struct {
	min time.Duration
}

// NewTimerClock returns a FrameClock that sleeps for the remaining budget, never less than
// MinFrameInterval.
func NewTimerClock() FrameClock {
	return &timerClock{min: MinFrameInterval}
}

func (c *timerClock) Wait(quit <-chan struct{}, remaining time.Duration) bool {
	d := max(remaining, c.min)
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-quit:
		return false
	case <-t.C:
		return true
	}
}
