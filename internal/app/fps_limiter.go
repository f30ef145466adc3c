package app

import (
	"time"

	"cubefield/internal/config"
)

// spinWindow is the tail of each wait spent busy-looping instead of sleeping
const spinWindow = 200 * time.Microsecond

// FPSLimiter paces the frame loop to the configured frame rate
type FPSLimiter struct {
	next  time.Time
	limit func() int
}

// NewFPSLimiter follows config.GetFPSLimit, so runtime changes apply on the next frame
func NewFPSLimiter() *FPSLimiter {
	return &FPSLimiter{limit: config.GetFPSLimit}
}

// Wait blocks until the next frame is due. A limit of 0 disables pacing.
// Sleeping stops spinWindow short of the deadline and the rest is spun for precision.
func (f *FPSLimiter) Wait() {
	target := f.frameTime()
	if target == 0 {
		f.next = time.Time{}
		return
	}

	if f.next.IsZero() {
		f.next = time.Now().Add(target)
	} else {
		f.next = f.next.Add(target)
	}

	for {
		remaining := time.Until(f.next)
		if remaining <= 0 {
			break
		}
		if remaining > spinWindow {
			time.Sleep(remaining - spinWindow)
		}
	}

	// after a hitch, resync instead of rushing to catch up
	if late := -time.Until(f.next); late > target {
		f.next = time.Now().Add(target)
	}
}

func (f *FPSLimiter) frameTime() time.Duration {
	limit := f.limit()
	if limit <= 0 {
		return 0
	}
	return time.Second / time.Duration(limit)
}
