// Package animation drives per-property spring and tween animations.
//
// # Core Components
//
//   - [Controller]: merges declarative updates ([Props]) into a live set of
//     per-property descriptors without discarding in-flight motion, then steps
//     them once per display frame until every property settles.
//
//   - Containers ([Value], [ArrayValue]) hold the leaf state the integrator
//     moves. [Interpolation] maps a container's [0, 1] progress onto colors,
//     unit strings, sequences and maps.
//
//   - [Scheduler]: delivers frame callbacks. [FrameLoop] is the engine-driven
//     implementation; the host calls [StepFrames] once per frame.
//
//   - Curves ([Easing], [CubicBezier]) shape duration-based tweens.
//
// # Basic Usage
//
//	c := animation.NewController()
//	c.Update(animation.Props{
//	    From: animation.Values{"opacity": 0, "color": "#ff0000"},
//	    To:   animation.Values{"opacity": 1, "color": "#0000ff"},
//	})
//	c.Start(func(r animation.EndResult) { /* settled or stopped */ }, nil)
//
//	// once per display frame:
//	animation.StepFrames()
//	v := c.Values()
//
// All methods must be called from the goroutine that steps the controller's
// scheduler. Re-entrant calls from callbacks (Stop inside an end callback,
// Start while running) are supported.
package animation

import (
	"maps"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EndResult is passed to the end callback of a run.
type EndResult struct {
	// Finished is true when every property settled, false when stopped.
	Finished bool
	// NoChange is true when no frame of the run moved a number.
	NoChange bool
}

// Props is one declarative update.
type Props struct {
	// From and To map property names to values: numbers, numeric slices,
	// strings, maps/sequences of those, or an Animatable to follow.
	From, To Values
	// Delay applies to every property without its own SpringConfig.Delay.
	Delay time.Duration
	// Reverse swaps From and To before anything else happens.
	Reverse bool
	// Reset forgets previous targets and rebuilds every property with a
	// fresh container, starting again from From.
	Reset bool
	// Immediate reports properties that jump to their target instead of animating.
	Immediate func(name string) bool
	// Config returns the configuration for a property. Nil means DefaultSpring.
	Config func(name string) SpringConfig
	// Attach returns a controller whose live values this one should trail.
	Attach func(c *Controller) *Controller
	// Native selects composite output: per-frame notifications go to the
	// composite's OnChange notifier instead of the Start update hook.
	Native bool

	OnStart func()
	OnFrame func(Values)
	// OnRest receives the settled values after a run finishes.
	OnRest func(Values)
}

// Controller animates a set of named properties for one entity.
type Controller struct {
	// Scheduler delivers frame callbacks. Nil means DefaultLoop.
	Scheduler Scheduler

	id  string
	log *zap.Logger

	props       Props
	merged      Values
	mergedOrder []string

	animations     map[string]*descriptor
	order          []string
	configs        []*descriptor
	interpolations map[string]Readable
	projected      *Composite
	hasChanged     bool

	active     bool
	pendingEnd bool
	noChange   bool
	startTime  time.Time
	frame      FrameHandle
	generation uint64
	onEnd      func(EndResult)
	onUpdate   func()
	disposed   bool
}

// NewController creates an idle controller with no properties.
func NewController() *Controller {
	id := uuid.NewString()
	return &Controller{
		id:             id,
		log:            logger.Load().With(zap.String("controller", id)),
		merged:         Values{},
		animations:     make(map[string]*descriptor),
		interpolations: make(map[string]Readable),
	}
}

// ID returns the controller's unique identifier.
func (c *Controller) ID() string { return c.id }

// Update merges p into the controller and reports whether any property's
// target changed. Unchanged properties keep their descriptors, containers and
// motion untouched. Update never starts the controller; call Start.
func (c *Controller) Update(p Props) bool {
	c.props = p
	from, to := p.From, p.To
	if p.Reverse {
		from, to = to, from
	}
	c.hasChanged = false

	var source *Controller
	if p.Attach != nil {
		if s := p.Attach(c); s != nil && s != c && !s.disposed {
			source = s
		}
	}

	if p.Reset {
		c.merged = Values{}
		c.mergedOrder = nil
	}
	c.merge(from)
	c.merge(to)

	var (
		changed []string
		built   = make(map[string]*descriptor)
	)
	for _, name := range c.mergedOrder {
		value := c.merged[name]
		kind, norm, err := classify(value)
		if err != nil {
			reportValueError(name, err)
			continue
		}
		var fingerprint any = norm
		switch {
		case kind == kindDelegated:
			fingerprint = norm.(Animatable).Payload()
		case source != nil:
			fingerprint = trailing{target: norm, leaves: source.payload(name)}
		}

		prev := c.animations[name]
		if p.Reset {
			prev = nil
		} else if prev != nil && shallowEqual(prev.fingerprint, fingerprint) {
			continue
		}

		fromValue, ok := from[name]
		if !ok {
			fromValue = value
		}
		in := buildInput{
			name:        name,
			kind:        kind,
			value:       norm,
			fromValue:   fromValue,
			fingerprint: fingerprint,
			prev:        prev,
			config:      c.configFor(p, name),
			immediate:   p.Immediate != nil && p.Immediate(name),
			source:      source,
		}
		d, err := c.build(in)
		if err != nil {
			reportValueError(name, err)
			continue
		}
		built[name] = d
		changed = append(changed, name)
	}

	if len(changed) == 0 {
		return false
	}
	c.hasChanged = true
	c.apply(changed, built)
	c.log.Debug("animation updated",
		zap.Strings("changed", changed),
		zap.Int("descriptors", len(c.configs)),
		zap.Bool("reset", p.Reset))
	return true
}

// merge overlays vals onto the durable target map. New names are appended in
// sorted order so iteration order does not depend on Go map ordering.
func (c *Controller) merge(vals Values) {
	for _, name := range slices.Sorted(maps.Keys(vals)) {
		if _, ok := c.merged[name]; !ok {
			c.mergedOrder = append(c.mergedOrder, name)
		}
		c.merged[name] = vals[name]
	}
}

func (c *Controller) configFor(p Props, name string) SpringConfig {
	cfg := DefaultSpring
	if p.Config != nil {
		cfg = p.Config(name)
	}
	return cfg.resolve(p.Delay)
}

// apply installs rebuilt descriptors copy-on-change: untouched entries are
// shared with the previous map.
func (c *Controller) apply(changed []string, built map[string]*descriptor) {
	animations := maps.Clone(c.animations)
	for _, name := range changed {
		if _, ok := animations[name]; !ok {
			c.order = append(c.order, name)
		}
		animations[name] = built[name]
	}
	c.animations = animations

	c.configs = make([]*descriptor, 0, len(c.order))
	c.interpolations = make(map[string]Readable, len(c.order))
	for _, name := range c.order {
		d := animations[name]
		c.configs = append(c.configs, d)
		c.interpolations[name] = d.exposed
	}

	if c.projected != nil {
		c.projected.Detach()
	}
	c.projected = newComposite(c.interpolations)
}

func (c *Controller) scheduler() Scheduler {
	if c.Scheduler == nil {
		return DefaultLoop
	}
	return c.Scheduler
}

// Start begins a run. A running controller is stopped first, which finishes
// the previous run with Finished=false. onEnd is called once when the run
// settles or is stopped; onUpdate is called after every frame unless the
// props select Native output.
func (c *Controller) Start(onEnd func(EndResult), onUpdate func()) {
	now := Now()
	if c.active {
		c.Stop(false)
		if c.active {
			// The previous end callback restarted us; this call supersedes it.
			c.Stop(false)
		}
	}
	if c.frame != 0 {
		c.scheduler().CancelFrame(c.frame)
		c.frame = 0
	}

	c.startTime = now
	c.active = true
	c.pendingEnd = true
	c.noChange = true
	c.generation++
	c.onEnd, c.onUpdate = onEnd, onUpdate
	c.log.Debug("animation started", zap.Int("descriptors", len(c.configs)))

	gen := c.generation
	if c.props.OnStart != nil {
		c.props.OnStart()
	}
	if !c.active || c.generation != gen {
		return
	}
	c.frame = c.scheduler().RequestFrame(c.runFrame)
}

func (c *Controller) runFrame() {
	c.frame = 0
	if !c.active {
		return
	}
	gen := c.generation
	now := Now()

	done := true
	for _, d := range c.configs {
		settled, moved := d.step(now, c.startTime)
		if !settled {
			done = false
		}
		if moved {
			c.noChange = false
		}
	}

	if c.props.OnFrame != nil {
		c.props.OnFrame(c.Values())
	}
	if c.props.Native {
		if c.projected != nil {
			c.projected.notify()
		}
	} else if c.onUpdate != nil {
		c.onUpdate()
	}

	// A callback may have stopped or restarted the run.
	if !c.active || c.generation != gen {
		return
	}
	if !done {
		c.frame = c.scheduler().RequestFrame(c.runFrame)
		return
	}
	c.finalize(true)
}

// Stop ends the run immediately, cancelling the pending frame, and calls the
// end callback with the given finished flag. Stopping an idle controller is a
// no-op.
func (c *Controller) Stop(finished bool) {
	c.active = false
	if c.frame != 0 {
		c.scheduler().CancelFrame(c.frame)
		c.frame = 0
	}
	c.finalize(finished)
}

// finalize is idempotent: the pending end callback is cleared before it is
// invoked, so a Stop from inside it finds nothing left to finish.
func (c *Controller) finalize(finished bool) {
	c.active = false
	if !c.pendingEnd {
		return
	}
	c.pendingEnd = false
	onEnd := c.onEnd
	onRest := c.props.OnRest
	c.onEnd, c.onUpdate = nil, nil

	result := EndResult{Finished: finished, NoChange: c.noChange}
	c.log.Debug("animation ended",
		zap.Bool("finished", result.Finished),
		zap.Bool("noChange", result.NoChange))
	if onEnd != nil {
		onEnd(result)
	}
	if finished && onRest != nil {
		onRest(c.Values())
	}
}

// Dispose stops the controller and releases its containers. Controllers
// trailing this one fall back to their static targets.
func (c *Controller) Dispose() {
	if c.disposed {
		return
	}
	c.Stop(false)
	c.disposed = true
	for _, d := range c.configs {
		if d.kind == kindDelegated {
			continue
		}
		for _, l := range d.leaves {
			if l.owner == c {
				l.released = true
			}
		}
	}
	if c.projected != nil {
		c.projected.Detach()
	}
	c.log.Debug("animation disposed")
}

// IsActive reports whether a run is in progress.
func (c *Controller) IsActive() bool { return c.active }

// HasChanged reports whether the most recent Update changed any property.
func (c *Controller) HasChanged() bool { return c.hasChanged }

// Values returns the current value of every property, read fresh from the
// containers and interpolations.
func (c *Controller) Values() Values {
	out := make(Values, len(c.configs))
	for _, d := range c.configs {
		out[d.name] = d.exposed.Value()
	}
	return out
}

// Output returns the composite output object. It is replaced, and the old
// one detached, whenever an Update changes the set of descriptors.
func (c *Controller) Output() *Composite {
	if c.projected == nil {
		c.projected = newComposite(nil)
	}
	return c.projected
}

// Get returns the readable currently exposed for name.
func (c *Controller) Get(name string) (Readable, bool) {
	r, ok := c.interpolations[name]
	return r, ok
}

// payload returns the leaves currently driving name, or nil.
func (c *Controller) payload(name string) []*Leaf {
	if d, ok := c.animations[name]; ok {
		return d.leaves
	}
	return nil
}

// Container returns the container driving name, for use as another
// controller's delegated value.
func (c *Controller) Container(name string) (Animatable, bool) {
	d, ok := c.animations[name]
	if !ok {
		return nil, false
	}
	return d.container, true
}

// Targets returns a copy of the merged target map.
func (c *Controller) Targets() Values {
	return maps.Clone(c.merged)
}
