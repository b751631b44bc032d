package testing

import (
	"errors"
	"testing"
	"time"

	"github.com/go-drift/motion/pkg/animation"
)

// DefaultFrameDuration is the fake time between pumped frames (~60fps).
const DefaultFrameDuration = 16 * time.Millisecond

// ErrSettleTimeout is returned when PumpAndSettle exceeds its timeout.
var ErrSettleTimeout = errors.New("PumpAndSettle timed out: animations did not settle")

// FrameTester owns a fake clock and a private frame loop. While it is alive
// the fake clock is installed as the animation clock.
type FrameTester struct {
	// FrameDuration is how far each pumped frame advances the clock.
	FrameDuration time.Duration

	clock     *FakeClock
	prevClock animation.Clock
	loop      *animation.FrameLoop
	frames    int
}

// NewFrameTester creates a tester and installs its clock.
// Call Cleanup() when done, or use NewFrameTesterWithT() instead.
func NewFrameTester() *FrameTester {
	clk := NewFakeClock()
	t := &FrameTester{
		FrameDuration: DefaultFrameDuration,
		clock:         clk,
		loop:          animation.NewFrameLoop(),
	}
	t.prevClock = animation.SetClock(clk)
	return t
}

// NewFrameTesterWithT creates a tester that restores the previous clock
// when the test finishes.
func NewFrameTesterWithT(tb testing.TB) *FrameTester {
	tb.Helper()
	t := NewFrameTester()
	tb.Cleanup(t.Cleanup)
	return t
}

// Cleanup restores the clock that was active before the tester was created.
func (t *FrameTester) Cleanup() {
	if t.prevClock != nil {
		animation.SetClock(t.prevClock)
		t.prevClock = nil
	}
}

// Clock returns the tester's fake clock.
func (t *FrameTester) Clock() *FakeClock { return t.clock }

// Loop returns the tester's frame loop.
func (t *FrameTester) Loop() *animation.FrameLoop { return t.loop }

// Frames returns how many frames have been pumped.
func (t *FrameTester) Frames() int { return t.frames }

// Controller returns a new controller scheduled on the tester's loop.
func (t *FrameTester) Controller() *animation.Controller {
	c := animation.NewController()
	c.Scheduler = t.loop
	return c
}

// Pump advances the clock by one frame and runs the frame's callbacks.
func (t *FrameTester) Pump() {
	t.clock.Advance(t.FrameDuration)
	t.loop.Step()
	t.frames++
}

// PumpFrames pumps up to n frames, stopping early once nothing is pending.
// It returns the number of frames pumped.
func (t *FrameTester) PumpFrames(n int) int {
	pumped := 0
	for pumped < n && t.loop.Pending() > 0 {
		t.Pump()
		pumped++
	}
	return pumped
}

// PumpAndSettle pumps frames until no frame requests remain or timeout of
// fake time has elapsed.
func (t *FrameTester) PumpAndSettle(timeout time.Duration) error {
	var elapsed time.Duration
	for t.loop.Pending() > 0 {
		if elapsed >= timeout {
			return ErrSettleTimeout
		}
		t.Pump()
		elapsed += t.FrameDuration
	}
	return nil
}
