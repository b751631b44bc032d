package animation_test

import (
	"sync"
	"testing"
	"time"

	"github.com/go-drift/motion/pkg/animation"
	"github.com/go-drift/motion/pkg/errors"
	motiontest "github.com/go-drift/motion/pkg/testing"
)

const frame = motiontest.DefaultFrameDuration

// settle pumps until the tester's loop is idle and returns the frame count.
func settle(t *testing.T, tester *motiontest.FrameTester) int {
	t.Helper()
	before := tester.Frames()
	if err := tester.PumpAndSettle(30 * time.Second); err != nil {
		t.Fatal(err)
	}
	return tester.Frames() - before
}

func numberOf(t *testing.T, c *animation.Controller, name string) float64 {
	t.Helper()
	v, ok := c.Values()[name].(float64)
	if !ok {
		t.Fatalf("%s = %#v, want a float64", name, c.Values()[name])
	}
	return v
}

// recordingHandler captures reported errors.
type recordingHandler struct {
	mu     sync.Mutex
	errs   []*errors.AnimationError
	panics []*errors.PanicError
}

func (h *recordingHandler) HandleError(err *errors.AnimationError) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.errs = append(h.errs, err)
}

func (h *recordingHandler) HandlePanic(err *errors.PanicError) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.panics = append(h.panics, err)
}

func recordErrors(t *testing.T) *recordingHandler {
	t.Helper()
	h := &recordingHandler{}
	prev := errors.SetHandler(h)
	t.Cleanup(func() { errors.SetHandler(prev) })
	return h
}

// endRecorder collects end callback results.
type endRecorder struct {
	results []animation.EndResult
}

func (r *endRecorder) onEnd(res animation.EndResult) { r.results = append(r.results, res) }

func (r *endRecorder) last() (animation.EndResult, bool) {
	if len(r.results) == 0 {
		return animation.EndResult{}, false
	}
	return r.results[len(r.results)-1], true
}
