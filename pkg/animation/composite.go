package animation

import "maps"

// Composite is the live output object of a controller: each field is the
// container or interpolation currently exposed for that name, so a reader can
// sample values at any time without polling the controller.
//
// A controller replaces its composite whenever its set of descriptors
// changes and detaches the old one first. A detached composite still reads
// values but no longer fires its change notifier.
type Composite struct {
	fields   map[string]Readable
	onChange func()
	detached bool
}

func newComposite(fields map[string]Readable) *Composite {
	return &Composite{fields: maps.Clone(fields)}
}

// Get returns the readable exposed for name.
func (c *Composite) Get(name string) (Readable, bool) {
	r, ok := c.fields[name]
	return r, ok
}

// Values snapshots every field's current value.
func (c *Composite) Values() Values {
	out := make(Values, len(c.fields))
	for name, r := range c.fields {
		out[name] = r.Value()
	}
	return out
}

// Value implements Readable; it is equivalent to Values.
func (c *Composite) Value() any { return c.Values() }

// OnChange installs the per-frame notifier, replacing any previous one.
// It is ignored once the composite has been detached.
func (c *Composite) OnChange(fn func()) {
	if c.detached {
		return
	}
	c.onChange = fn
}

// Detach releases the notifier. It is safe to call more than once.
func (c *Composite) Detach() {
	c.detached = true
	c.onChange = nil
}

// Detached reports whether the composite has been superseded.
func (c *Composite) Detached() bool { return c.detached }

func (c *Composite) notify() {
	if c.onChange != nil {
		c.onChange()
	}
}
