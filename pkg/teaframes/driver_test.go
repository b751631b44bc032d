package teaframes

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/go-drift/motion/pkg/animation"
)

func TestNewDefaults(t *testing.T) {
	d := New(nil, 0)
	if d.Loop() != animation.DefaultLoop {
		t.Error("nil loop should drive DefaultLoop")
	}
	want := time.Second / DefaultFPS
	if got := d.Interval(); got < want-time.Microsecond || got > want+time.Microsecond {
		t.Errorf("Interval() = %v, want ~%v", got, want)
	}
}

func TestWakeOnlyWithPendingFrames(t *testing.T) {
	loop := animation.NewFrameLoop()
	d := New(loop, 30)

	if cmd := d.Wake(); cmd != nil {
		t.Error("Wake() with an idle loop should return nil")
	}

	loop.RequestFrame(func() {})
	if cmd := d.Wake(); cmd == nil {
		t.Fatal("Wake() with a pending frame should return a tick")
	}
	if !d.Ticking() {
		t.Error("driver should be ticking")
	}
	if cmd := d.Wake(); cmd != nil {
		t.Error("Wake() while ticking should not start a second tick")
	}
}

func TestUpdateStepsLoop(t *testing.T) {
	loop := animation.NewFrameLoop()
	d := New(loop, 60)

	remaining := 2
	var frame func()
	frame = func() {
		remaining--
		if remaining > 0 {
			loop.RequestFrame(frame)
		}
	}
	loop.RequestFrame(frame)
	d.Wake()

	cmd, ok := d.Update(FrameMsg{Time: time.Now(), id: d.id})
	if !ok {
		t.Fatal("driver should own its frame message")
	}
	if remaining != 1 {
		t.Errorf("remaining = %d, want 1", remaining)
	}
	if cmd == nil {
		t.Fatal("expected the next tick while frames are pending")
	}

	cmd, _ = d.Update(FrameMsg{Time: time.Now(), id: d.id})
	if remaining != 0 {
		t.Errorf("remaining = %d, want 0", remaining)
	}
	if cmd != nil {
		t.Error("driver should go quiet once the loop is idle")
	}
}

func TestUpdateIgnoresForeignMessages(t *testing.T) {
	a := New(animation.NewFrameLoop(), 60)
	b := New(animation.NewFrameLoop(), 60)

	if _, ok := a.Update(tea.KeyMsg{Type: tea.KeyEnter}); ok {
		t.Error("key message should not be handled")
	}
	if _, ok := a.Update(FrameMsg{id: b.id}); ok {
		t.Error("another driver's frame should not be handled")
	}
}
