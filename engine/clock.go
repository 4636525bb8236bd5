package engine

import "time"

// PausableClock tracks elapsed running time for a frame-loop driver.
// While paused, elapsed time is frozen and Delta reports zero, so the
// driver can keep its loop running and the simulation simply receives
// no time. The clock is for a single-goroutine driver; the simulation
// core itself never reads wall time.
type PausableClock struct {
	start       time.Time
	totalPaused time.Duration
	pauseStart  time.Time
	paused      bool
	lastDelta   time.Duration
}

func NewPausableClock() *PausableClock {
	return &PausableClock{start: time.Now()}
}

// Elapsed returns running time since creation, excluding paused spans.
func (c *PausableClock) Elapsed() time.Duration {
	if c.paused {
		return c.pauseStart.Sub(c.start) - c.totalPaused
	}
	return time.Since(c.start) - c.totalPaused
}

// Delta returns the running time in seconds since the previous Delta
// call, clamped to max. Zero while paused.
func (c *PausableClock) Delta(max time.Duration) float64 {
	now := c.Elapsed()
	dt := now - c.lastDelta
	c.lastDelta = now
	if dt <= 0 {
		return 0
	}
	if dt > max {
		dt = max
	}
	return dt.Seconds()
}

func (c *PausableClock) Pause() {
	if c.paused {
		return
	}
	c.paused = true
	c.pauseStart = time.Now()
}

func (c *PausableClock) Resume() {
	if !c.paused {
		return
	}
	c.paused = false
	c.totalPaused += time.Since(c.pauseStart)
}

// Toggle flips the pause state and returns the new state.
func (c *PausableClock) Toggle() bool {
	if c.paused {
		c.Resume()
	} else {
		c.Pause()
	}
	return c.paused
}

func (c *PausableClock) IsPaused() bool {
	return c.paused
}
