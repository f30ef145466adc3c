package app

import "time"

const (
	// TickRate is the simulation rate; camera speeds are expressed per tick
	TickRate = 60
	// maxTicksPerFrame bounds catch-up after a stall
	maxTicksPerFrame = 5
)

// TickClock converts variable frame times into a whole number of fixed ticks
type TickClock struct {
	step time.Duration
	acc  time.Duration
}

func NewTickClock(rate int) *TickClock {
	if rate <= 0 {
		rate = TickRate
	}
	return &TickClock{step: time.Second / time.Duration(rate)}
}

// Advance adds frame time and returns how many ticks to run. Time beyond
// maxTicksPerFrame ticks is dropped so a long stall does not fast-forward the camera.
func (c *TickClock) Advance(dt time.Duration) int {
	if dt < 0 {
		dt = 0
	}
	c.acc += dt
	n := int(c.acc / c.step)
	if n > maxTicksPerFrame {
		n = maxTicksPerFrame
		c.acc = 0
		return n
	}
	c.acc -= time.Duration(n) * c.step
	return n
}

func (c *TickClock) Step() time.Duration {
	return c.step
}

// FPSCounter counts frames over one-second windows
type FPSCounter struct {
	frames    int
	current   int
	lastCheck time.Time
}

// Frame records a presented frame and reports whether a new per-second value is ready
func (c *FPSCounter) Frame(now time.Time) (int, bool) {
	if c.lastCheck.IsZero() {
		c.lastCheck = now
	}
	c.frames++
	if now.Sub(c.lastCheck) < time.Second {
		return c.current, false
	}
	c.current = c.frames
	c.frames = 0
	c.lastCheck = now
	return c.current, true
}

func (c *FPSCounter) FPS() int {
	return c.current
}
