// Package teaframes drives an animation frame loop from a Bubble Tea program.
//
// A Driver re-arms a tea.Tick while any frame request is outstanding and
// goes quiet once every controller on its loop has settled:
//
//	func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
//	    if cmd, ok := m.frames.Update(msg); ok {
//	        return m, cmd
//	    }
//	    ...
//	    m.ctrl.Start(nil, nil)
//	    return m, m.frames.Wake()
//	}
package teaframes

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"

	"github.com/go-drift/motion/pkg/animation"
)

// DefaultFPS is the frame rate used when none is given.
const DefaultFPS = 60

var nextID atomic.Uint64

// FrameMsg is delivered once per driven frame.
type FrameMsg struct {
	Time time.Time
	id   uint64
}

// Driver steps a FrameLoop on Bubble Tea ticks.
type Driver struct {
	loop     *animation.FrameLoop
	interval time.Duration
	id       uint64
	ticking  bool
}

// New returns a driver for loop at fps frames per second. A nil loop drives
// animation.DefaultLoop; a non-positive fps means DefaultFPS.
func New(loop *animation.FrameLoop, fps int) *Driver {
	if loop == nil {
		loop = animation.DefaultLoop
	}
	if fps <= 0 {
		fps = DefaultFPS
	}
	return &Driver{
		loop:     loop,
		interval: time.Duration(harmonica.FPS(fps) * float64(time.Second)),
		id:       nextID.Add(1),
	}
}

// Interval returns the time between frames.
func (d *Driver) Interval() time.Duration { return d.interval }

// Loop returns the driven frame loop.
func (d *Driver) Loop() *animation.FrameLoop { return d.loop }

// Ticking reports whether a frame tick is in flight.
func (d *Driver) Ticking() bool { return d.ticking }

// Wake returns a tick command if frames are pending and none is in flight.
// Call it after starting a controller.
func (d *Driver) Wake() tea.Cmd {
	if d.ticking || d.loop.Pending() == 0 {
		return nil
	}
	d.ticking = true
	id := d.id
	return tea.Tick(d.interval, func(t time.Time) tea.Msg {
		return FrameMsg{Time: t, id: id}
	})
}

// Init implements the first half of tea.Model for embedding.
func (d *Driver) Init() tea.Cmd { return d.Wake() }

// Update steps the loop when msg is this driver's frame and returns the next
// tick, if any. ok is false for messages the driver does not own.
func (d *Driver) Update(msg tea.Msg) (cmd tea.Cmd, ok bool) {
	frame, isFrame := msg.(FrameMsg)
	if !isFrame || frame.id != d.id {
		return nil, false
	}
	d.ticking = false
	d.loop.StepSafe()
	return d.Wake(), true
}
