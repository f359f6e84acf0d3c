// Package timer provides frame-time tracking for the ggo loop: per-frame
// deltas, a rolling FPS estimate and optional frame-rate pacing.
//
// Nothing here limits the frame rate on its own. A loop that should not
// run at full speed calls [Clock.SleepUntilNextFrame] at the end of its
// draw phase.
package timer

import (
	"time"
)

// frameLogSize is how many frame durations the clock remembers,
// nominally one second of history at 60 FPS.
const frameLogSize = 60

// logBuffer holds the last N values pushed into it, overwriting the
// oldest in round-robin fashion. Values cannot be removed; slots not yet
// written hold the zero value, which skews averages only for the first
// moments of a run.
type logBuffer[T any] struct {
	head     int
	contents []T
}

func newLogBuffer[T any](size int) *logBuffer[T] {
	return &logBuffer[T]{contents: make([]T, size)}
}

func (b *logBuffer[T]) push(v T) {
	b.head = (b.head + 1) % len(b.contents)
	b.contents[b.head] = v
}

func (b *logBuffer[T]) latest() T {
	return b.contents[b.head]
}

// Clock tracks frame timing. It is owned by the frame loop goroutine and
// is not safe for concurrent use.
type Clock struct {
	start  time.Time
	last   time.Time
	frames *logBuffer[time.Duration]
}

// NewClock creates a clock with its start time set to now.
func NewClock() *Clock {
	now := time.Now()
	return &Clock{
		start:  now,
		last:   now,
		frames: newLogBuffer[time.Duration](frameLogSize),
	}
}

// Tick records that a frame has completed. The frame loop calls this once
// per frame; embedders replacing the loop must do the same.
func (c *Clock) Tick() {
	now := time.Now()
	c.frames.push(now.Sub(c.last))
	c.last = now
}

// Delta returns the duration of the last completed frame.
func (c *Clock) Delta() time.Duration {
	return c.frames.latest()
}

// AverageDelta returns the frame duration averaged over the last
// 60 frames.
func (c *Clock) AverageDelta() time.Duration {
	var sum time.Duration
	for _, d := range c.frames.contents {
		sum += d
	}
	return sum / time.Duration(len(c.frames.contents))
}

// FPS returns the frame rate implied by [Clock.AverageDelta]. It reports
// zero while no frame has been recorded yet.
func (c *Clock) FPS() float64 {
	avg := c.AverageDelta()
	if avg <= 0 {
		return 0
	}
	return float64(time.Second) / float64(avg)
}

// SinceStart returns the time elapsed since the clock was created.
func (c *Clock) SinceStart() time.Duration {
	return time.Since(c.start)
}

// SleepUntilNextFrame sleeps until the next frame of a fixed frame rate
// should begin, based on how long the current frame has already taken.
// It returns immediately when the frame already overran its slot or when
// fps is not positive.
func (c *Clock) SleepUntilNextFrame(fps int) {
	if fps <= 0 {
		return
	}
	perFrame := time.Second / time.Duration(fps)
	spent := time.Since(c.last)
	if spent >= perFrame {
		return
	}
	time.Sleep(perFrame - spent)
}
