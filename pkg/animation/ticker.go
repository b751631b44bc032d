package animation

import (
	"sync"

	"github.com/go-drift/motion/pkg/errors"
)

// FrameHandle identifies a pending frame request. The zero handle is never
// issued and means "no request".
type FrameHandle uint64

// Scheduler requests and cancels callbacks on the next display frame.
// A [Controller] keeps at most one request outstanding.
type Scheduler interface {
	RequestFrame(fn func()) FrameHandle
	CancelFrame(h FrameHandle)
}

// FrameLoop is an engine-driven Scheduler. The host calls Step once per
// display frame; every callback requested before that Step runs exactly once.
// Callbacks requested while a Step is running are deferred to the next Step,
// so a controller re-arming itself cannot spin inside a single frame.
type FrameLoop struct {
	mu      sync.Mutex
	next    FrameHandle
	pending map[FrameHandle]func()
	order   []FrameHandle
}

// NewFrameLoop creates an empty frame loop.
func NewFrameLoop() *FrameLoop {
	return &FrameLoop{pending: make(map[FrameHandle]func())}
}

// RequestFrame schedules fn for the next Step.
func (l *FrameLoop) RequestFrame(fn func()) FrameHandle {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.next++
	h := l.next
	l.pending[h] = fn
	l.order = append(l.order, h)
	return h
}

// CancelFrame drops a pending request. Unknown or already-run handles are ignored.
func (l *FrameLoop) CancelFrame(h FrameHandle) {
	l.mu.Lock()
	delete(l.pending, h)
	l.mu.Unlock()
}

// Pending returns the number of outstanding requests.
func (l *FrameLoop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.pending)
}

// Step runs one frame. Panics from callbacks propagate to the caller and
// abandon the rest of the frame's callbacks.
func (l *FrameLoop) Step() {
	l.step(false)
}

// StepSafe runs one frame, recovering panics per callback and reporting them
// through the errors package so one failing controller cannot starve the rest.
func (l *FrameLoop) StepSafe() {
	l.step(true)
}

func (l *FrameLoop) step(safe bool) {
	l.mu.Lock()
	order := l.order
	l.order = nil
	l.mu.Unlock()

	for _, h := range order {
		l.mu.Lock()
		fn, ok := l.pending[h]
		delete(l.pending, h)
		l.mu.Unlock()
		if !ok || fn == nil {
			continue
		}
		runFrame(fn, safe)
	}
}

func runFrame(fn func(), safe bool) {
	if safe {
		defer errors.Recover("animation.FrameLoop")
	}
	fn()
}

// DefaultLoop is the scheduler controllers use when none is configured.
var DefaultLoop = NewFrameLoop()

// StepFrames advances DefaultLoop by one frame.
// This should be called once per display frame by the host.
func StepFrames() {
	DefaultLoop.Step()
}

// HasPendingFrames reports whether any controller is waiting on DefaultLoop.
func HasPendingFrames() bool {
	return DefaultLoop.Pending() > 0
}
