package animation

import (
	"weak"

	"github.com/go-drift/motion/pkg/errors"
)

// descriptor is everything the integrator needs to move one named property.
// It is immutable once built: a changed target produces a new descriptor that
// may reuse the previous one's container, never an in-place edit.
type descriptor struct {
	name string
	kind valueKind

	container Animatable
	// scalar and array are the typed forms of container for owned kinds;
	// interp is set for kindRange.
	scalar *Value
	array  *ArrayValue
	interp *Interpolation

	exposed Readable
	leaves  []*Leaf
	from    []scalar
	to      []scalar

	fingerprint any
	config      SpringConfig
	immediate   bool

	// source is the controller this property trails, if any. Its leaves are
	// looked up by name every frame, so a rebuilt source container is
	// followed and a disposed or collected source means a static target.
	source weak.Pointer[Controller]
}

// buildInput collects what a single descriptor build reads from an update.
type buildInput struct {
	name        string
	kind        valueKind
	value       any // normalised target
	fromValue   any // raw from value, or the target when absent
	fingerprint any
	prev        *descriptor
	config      SpringConfig
	immediate   bool
	source      *Controller // attachment source, if any
}

// build constructs a descriptor for a changed name, reusing prev's container
// where the container type allows it.
func (c *Controller) build(in buildInput) (*descriptor, error) {
	d := &descriptor{
		name:        in.name,
		kind:        in.kind,
		fingerprint: in.fingerprint,
		config:      in.config,
		immediate:   in.immediate,
	}
	prev := in.prev

	switch in.kind {
	case kindDelegated:
		a := in.value.(Animatable)
		d.container = a
		d.exposed = a

	case kindNumber, kindString:
		var v *Value
		if prev != nil && prev.scalar != nil && prev.interp == nil {
			v = prev.scalar
		} else {
			start := in.fromValue
			if _, ok := toScalar(start); !ok {
				start = in.value
			}
			v = NewValue(start)
		}
		target, _ := toScalar(in.value)
		d.scalar, d.container, d.exposed = v, v, v
		d.to = []scalar{target}

	case kindArray:
		target := in.value.([]float64)
		var a *ArrayValue
		if prev != nil && prev.array != nil && prev.array.Len() == len(target) {
			a = prev.array
		} else {
			start, ok := asNumbers(in.fromValue)
			if !ok || len(start) != len(target) {
				start = target
			}
			a = NewArrayValue(start)
		}
		d.array, d.container, d.exposed = a, a, a
		d.to = make([]scalar, len(target))
		for i, f := range target {
			d.to[i] = numberScalar(f)
		}

	case kindRange:
		start := in.fromValue
		if prev != nil && prev.interp != nil {
			start = prev.interp.Calc(prev.scalar.Float())
		}
		var (
			progress *Value
			interp   *Interpolation
		)
		if prev != nil && prev.interp != nil {
			progress, interp = prev.scalar, prev.interp
			if err := interp.UpdateRange(start, in.value); err != nil {
				return nil, err
			}
			progress.SetValue(0.0)
		} else {
			progress = NewValue(0.0)
			var err error
			if interp, err = progress.Interpolate(start, in.value); err != nil {
				return nil, err
			}
		}
		d.scalar, d.interp = progress, interp
		d.container, d.exposed = progress, interp
		d.to = []scalar{numberScalar(1)}
	}

	if in.immediate {
		switch in.kind {
		case kindRange:
			d.scalar.SetValue(1.0)
		case kindNumber, kindString:
			d.scalar.SetValue(in.value)
		case kindArray:
			d.array.SetValue(in.value)
		}
	}

	if d.kind != kindDelegated {
		d.container.Prepare(c)
	}
	d.leaves = d.container.Payload()
	d.from = make([]scalar, len(d.leaves))
	for i, l := range d.leaves {
		d.from[i] = l.current
	}
	if d.kind == kindDelegated {
		d.to = d.from
	}

	if in.source != nil && in.kind != kindDelegated {
		d.source = weak.Make(in.source)
	}
	return d, nil
}

// trackedLeaf returns the source's current leaf for index i. It returns nil,
// meaning the static target applies, when nothing is attached, the source is
// gone or disposed, or the source's descriptor for the name is missing or
// has a different kind or leaf count.
func (d *descriptor) trackedLeaf(i int) *Leaf {
	src := d.source.Value()
	if src == nil || src.disposed {
		return nil
	}
	sd, ok := src.animations[d.name]
	if !ok || sd.kind != d.kind || len(sd.leaves) != len(d.leaves) {
		return nil
	}
	if l := sd.leaves[i]; l.alive() {
		return l
	}
	return nil
}

// attached reports whether d trails another controller.
func (d *descriptor) attached() bool {
	return d.source.Value() != nil
}

func reportValueError(name string, err error) {
	errors.Report(&errors.AnimationError{
		Op:   "animation.Controller.Update",
		Kind: errors.KindValue,
		Name: name,
		Err:  err,
	})
}
