package animation

import (
	"math"
	"time"
)

// Values maps animated property names to values.
type Values map[string]any

// Readable is anything a reader can sample for a current value: containers,
// interpolations and composites.
type Readable interface {
	Value() any
}

// Animatable is an owned value container a controller can drive.
//
// Payload exposes the leaf states the integrator advances. Prepare resets
// those leaves for a new run; it is a no-op for leaves owned by a different
// controller, which is what lets a descriptor read another controller's
// container without disturbing it.
type Animatable interface {
	Readable
	Payload() []*Leaf
	SetValue(v any)
	Prepare(owner *Controller)
}

// scalar is a leaf value: either a number or an opaque string.
type scalar struct {
	num   float64
	str   string
	isStr bool
}

func numberScalar(f float64) scalar { return scalar{num: f} }

func stringScalar(s string) scalar { return scalar{str: s, isStr: true} }

func (s scalar) value() any {
	if s.isStr {
		return s.str
	}
	return s.num
}

func toScalar(v any) (scalar, bool) {
	if s, ok := v.(string); ok {
		return stringScalar(s), true
	}
	if f, ok := asNumber(v); ok {
		return numberScalar(f), true
	}
	return scalar{}, false
}

// Leaf is the state of one animated scalar: its current value, whether it
// has settled and the integrator's memory of the previous frame. New leaves
// start at rest.
type Leaf struct {
	current scalar
	settled bool

	lastPosition float64
	lastVelocity float64
	hasVelocity  bool
	lastTime     time.Time
	hasTime      bool

	owner    *Controller
	released bool
}

// Value returns the leaf's current number or string.
func (l *Leaf) Value() any { return l.current.value() }

// Settled reports whether the leaf has reached its target.
func (l *Leaf) Settled() bool { return l.settled }

func (l *Leaf) set(s scalar) {
	l.current = s
}

func (l *Leaf) prepare(owner *Controller) {
	if l.owner == nil {
		l.owner = owner
	}
	if l.owner != owner {
		return
	}
	l.lastPosition = l.current.num
	l.lastVelocity = 0
	l.hasVelocity = false
	l.lastTime = time.Time{}
	l.hasTime = false
	l.settled = false
}

// alive reports whether the leaf can still be read as a trailing source.
func (l *Leaf) alive() bool {
	return l != nil && !l.released
}

// Value is a single-scalar container holding a number or a string.
type Value struct {
	leaf *Leaf
}

// NewValue creates a container holding a number (any Go numeric type) or a
// string. Other inputs start at zero.
func NewValue(v any) *Value {
	s, _ := toScalar(v)
	return &Value{leaf: &Leaf{current: s, settled: true}}
}

// Value returns the current float64 or string.
func (v *Value) Value() any { return v.leaf.Value() }

// Payload returns the container's single leaf.
func (v *Value) Payload() []*Leaf { return []*Leaf{v.leaf} }

// SetValue writes a number or string. Other inputs are ignored.
func (v *Value) SetValue(x any) {
	if s, ok := toScalar(x); ok {
		v.leaf.set(s)
	}
}

// Prepare claims the leaf for owner if unclaimed and, when owner holds it,
// resets it for a new run.
func (v *Value) Prepare(owner *Controller) { v.leaf.prepare(owner) }

// Float returns the current value as a number, or 0 for strings.
func (v *Value) Float() float64 { return v.leaf.current.num }

// Interpolate derives a readable mapping this container's [0, 1] progress to
// the range from→to.
func (v *Value) Interpolate(from, to any) (*Interpolation, error) {
	return newInterpolation(v, from, to)
}

// ArrayValue holds one leaf per numeric component.
type ArrayValue struct {
	leaves []*Leaf
}

// NewArrayValue creates a container with one leaf per component.
func NewArrayValue(values []float64) *ArrayValue {
	a := &ArrayValue{leaves: make([]*Leaf, len(values))}
	for i, f := range values {
		a.leaves[i] = &Leaf{current: numberScalar(f), settled: true}
	}
	return a
}

// Value returns a fresh []float64 snapshot.
func (a *ArrayValue) Value() any {
	out := make([]float64, len(a.leaves))
	for i, l := range a.leaves {
		out[i] = l.current.num
	}
	return out
}

// Payload returns one leaf per component, in order.
func (a *ArrayValue) Payload() []*Leaf { return a.leaves }

// SetValue accepts a numeric sequence of the same length; anything else is ignored.
func (a *ArrayValue) SetValue(x any) {
	nums, ok := asNumbers(x)
	if !ok || len(nums) != len(a.leaves) {
		return
	}
	for i, f := range nums {
		a.leaves[i].set(numberScalar(f))
	}
}

// Prepare resets every component leaf owned by owner. See [Value.Prepare].
func (a *ArrayValue) Prepare(owner *Controller) {
	for _, l := range a.leaves {
		l.prepare(owner)
	}
}

// Len returns the number of components.
func (a *ArrayValue) Len() int { return len(a.leaves) }

func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}

func asFinite(v any) (float64, bool) {
	f, ok := asNumber(v)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// asNumbers accepts a plain sequence of finite numbers.
func asNumbers(v any) ([]float64, bool) {
	switch s := v.(type) {
	case []float64:
		for _, f := range s {
			if math.IsNaN(f) || math.IsInf(f, 0) {
				return nil, false
			}
		}
		return append([]float64(nil), s...), true
	case []int:
		out := make([]float64, len(s))
		for i, n := range s {
			out[i] = float64(n)
		}
		return out, true
	case []float32:
		out := make([]float64, len(s))
		for i, f := range s {
			n, ok := asFinite(f)
			if !ok {
				return nil, false
			}
			out[i] = n
		}
		return out, true
	case []any:
		out := make([]float64, len(s))
		for i, e := range s {
			f, ok := asFinite(e)
			if !ok {
				return nil, false
			}
			out[i] = f
		}
		return out, true
	}
	return nil, false
}
