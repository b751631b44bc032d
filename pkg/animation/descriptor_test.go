package animation

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/go-drift/motion/pkg/errors"
)

type discard struct{}

func (discard) HandleError(*errors.AnimationError) {}
func (discard) HandlePanic(*errors.PanicError)     {}

func attachTo(src *Controller) func(*Controller) *Controller {
	return func(*Controller) *Controller { return src }
}

func TestUpdateIdentity(t *testing.T) {
	c := NewController()
	p := Props{From: Values{"x": 0}, To: Values{"x": 1, "y": 2}}

	if !c.Update(p) || !c.HasChanged() {
		t.Fatal("first update should change")
	}
	dx, dy := c.animations["x"], c.animations["y"]
	out := c.Output()
	cont, _ := c.Container("x")

	if c.Update(p) {
		t.Error("identical update reported a change")
	}
	if c.HasChanged() {
		t.Error("HasChanged() = true after identical update")
	}
	if c.animations["x"] != dx || c.animations["y"] != dy {
		t.Error("identical update replaced descriptors")
	}
	if c.Output() != out || out.Detached() {
		t.Error("identical update replaced the output")
	}

	if !c.Update(Props{To: Values{"x": 1, "y": 3}}) {
		t.Fatal("changed target should be reported")
	}
	if c.animations["x"] != dx {
		t.Error("unchanged name x was rebuilt")
	}
	if c.animations["y"] == dy {
		t.Error("changed name y kept its descriptor")
	}
	if again, _ := c.Container("x"); again != cont {
		t.Error("container for x was replaced")
	}
	if !out.Detached() || c.Output() == out {
		t.Error("changed update should detach the previous output")
	}
}

func TestNewKeysAppendSorted(t *testing.T) {
	c := NewController()
	c.Update(Props{To: Values{"b": 1, "a": 2}})
	c.Update(Props{To: Values{"d": 1, "c": 2}})
	if diff := cmp.Diff([]string{"a", "b", "c", "d"}, c.order); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestMalformedRetargetKeepsPrevious(t *testing.T) {
	defer errors.SetHandler(errors.SetHandler(discard{}))
	c := NewController()
	c.Update(Props{From: Values{"w": "0px"}, To: Values{"w": "10px"}})
	d := c.animations["w"]
	if c.Update(Props{To: Values{"w": "10px 5px"}}) {
		t.Error("unusable target should not count as a change")
	}
	if c.animations["w"] != d {
		t.Error("previous descriptor should be retained")
	}
}

func TestAttachChanges(t *testing.T) {
	src := NewController()
	src.Update(Props{To: Values{"x": 30}})

	c := NewController()
	c.Update(Props{From: Values{"x": 0}, To: Values{"x": 100}})
	if c.animations["x"].attached() {
		t.Fatal("plain update should not be attached")
	}

	attach := Props{To: Values{"x": 100}, Attach: attachTo(src)}
	if !c.Update(attach) {
		t.Fatal("attaching with an unchanged target should be a change")
	}
	if !c.animations["x"].attached() {
		t.Error("descriptor should trail src after attaching")
	}
	if c.Update(attach) {
		t.Error("same attachment reported a change")
	}

	src.Update(Props{To: Values{"x": 30}, Reset: true})
	if !c.Update(attach) {
		t.Error("rebuilt source leaves should be a change")
	}

	if !c.Update(Props{To: Values{"x": 100}}) {
		t.Error("detaching should be a change")
	}
	if c.animations["x"].attached() {
		t.Error("descriptor still attached after detaching")
	}
}

func TestAttachIgnored(t *testing.T) {
	disposed := NewController()
	disposed.Update(Props{To: Values{"x": 1}})
	disposed.Dispose()

	tests := []struct {
		name   string
		attach func(*Controller) *Controller
	}{
		{"self", func(self *Controller) *Controller { return self }},
		{"nil", func(*Controller) *Controller { return nil }},
		{"disposed", attachTo(disposed)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewController()
			c.Update(Props{To: Values{"x": 1}, Attach: tt.attach})
			if c.animations["x"].attached() {
				t.Error("descriptor should not be attached")
			}
		})
	}
}

func TestTrackedLeafLooksUpSource(t *testing.T) {
	src := NewController()
	p := Props{From: Values{"x": 0}, To: Values{"x": 100}}
	src.Update(p)

	c := NewController()
	c.Update(Props{To: Values{"x": 50}, Attach: attachTo(src)})
	d := c.animations["x"]
	if got, want := d.trackedLeaf(0), src.animations["x"].leaves[0]; got != want {
		t.Fatalf("trackedLeaf(0) = %p, want the source leaf %p", got, want)
	}

	p.Reset = true
	src.Update(p)
	if got, want := d.trackedLeaf(0), src.animations["x"].leaves[0]; got != want {
		t.Errorf("after reset trackedLeaf(0) = %p, want the new source leaf %p", got, want)
	}

	for _, to := range []any{"10px", []float64{1, 2}} {
		src.Update(Props{To: Values{"x": to}})
		if got := d.trackedLeaf(0); got != nil {
			t.Errorf("trackedLeaf(0) = %p with source %v, want nil", got, to)
		}
	}

	src.Update(Props{To: Values{"x": 7}})
	if got, want := d.trackedLeaf(0), src.animations["x"].leaves[0]; got != want {
		t.Errorf("trackedLeaf(0) = %p, want the rebuilt source leaf %p", got, want)
	}
	src.Dispose()
	if got := d.trackedLeaf(0); got != nil {
		t.Errorf("trackedLeaf(0) = %p after dispose, want nil", got)
	}
	if !d.attached() {
		t.Error("a disposed but reachable source should still read as attached")
	}
}

func TestDisposeReleasesLeaves(t *testing.T) {
	c := NewController()
	c.Update(Props{From: Values{"x": 0, "pos": []float64{0, 0}}, To: Values{"x": 1, "pos": []float64{1, 1}}})
	out := c.Output()
	c.Dispose()
	if !out.Detached() {
		t.Error("Dispose should detach the output")
	}
	for _, name := range []string{"x", "pos"} {
		for i, l := range c.animations[name].leaves {
			if !l.released || l.alive() {
				t.Errorf("%s leaf %d not released", name, i)
			}
		}
	}
}
