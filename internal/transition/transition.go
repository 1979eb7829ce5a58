// Package transition implements the cross-fade clock: a two-state
// machine that is either holding the current frame or blending the
// previous frame into it over a fixed duration.
package transition

import "time"

// State of the cross-fade.
type State int

const (
	// Holding means the current frame is shown at full opacity.
	Holding State = iota
	// Transitioning means the previous frame is still being blended
	// out.
	Transitioning
)

// Crossfade tracks a single blend between two frames. The caller
// supplies time explicitly, which keeps the arithmetic testable
// without a real clock.
type Crossfade struct {
	duration time.Duration
	start    time.Time
	state    State
}

// New creates a crossfade with the given blend duration. The machine
// starts in Holding; nothing fades until Begin is called.
func New(duration time.Duration) *Crossfade {
	return &Crossfade{duration: duration}
}

// Begin starts a new blend at time now. A zero duration is an
// instantaneous switch and stays in Holding.
func (c *Crossfade) Begin(now time.Time) {
	if c.duration <= 0 {
		c.state = Holding
		return
	}
	c.start = now
	c.state = Transitioning
}

// State returns the machine state as of the last Alpha or Begin call.
func (c *Crossfade) State() State {
	return c.state
}

// Alpha returns the opacity of the incoming frame at time now, in
// [0,1]. It is non-decreasing in now and reaches exactly 1 once the
// elapsed time meets the duration, at which point the machine returns
// to Holding.
func (c *Crossfade) Alpha(now time.Time) float64 {
	if c.state != Transitioning {
		return 1
	}

	elapsed := now.Sub(c.start)
	if elapsed < 0 {
		return 0
	}
	if elapsed >= c.duration {
		c.state = Holding
		return 1
	}
	return float64(elapsed) / float64(c.duration)
}
