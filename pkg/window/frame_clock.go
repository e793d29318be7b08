package window

import "time"

const defaultFrameDelay = time.Second / 60

// frameClock paces rendering to a fixed delay and measures the time between
// rendered frames.
type frameClock struct {
	delay     time.Duration
	now       func() time.Time
	next      time.Time
	lastFrame time.Time
	delta     time.Duration
	frames    uint64
}

func newFrameClock(delay time.Duration, now func() time.Time) *frameClock {
	if delay <= 0 {
		delay = defaultFrameDelay
	}
	if now == nil {
		now = time.Now
	}
	t := now()
	return &frameClock{delay: delay, now: now, next: t.Add(delay), lastFrame: t}
}

// untilNext returns how long to wait for the next frame, clamped to
// [0, limit].
func (c *frameClock) untilNext(limit time.Duration) time.Duration {
	wait := c.next.Sub(c.now())
	if wait < 0 {
		return 0
	}
	return min(wait, limit)
}

// tick reports whether a frame is due. When it is, the clock records the
// frame, updates the delta and schedules the next one.
func (c *frameClock) tick() bool {
	t := c.now()
	if t.Before(c.next) {
		return false
	}
	c.delta = t.Sub(c.lastFrame)
	c.lastFrame = t
	c.next = t.Add(c.delay)
	c.frames++
	return true
}
