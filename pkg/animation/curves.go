package animation

import "math"

// Easing maps linear tween progress in [0, 1] to eased progress. It is only
// consulted for duration-based configs; springs ignore it.
type Easing func(t float64) float64

// LinearCurve is the identity easing and the default for tweens.
func LinearCurve(t float64) float64 {
	return t
}

// The CSS keyword timing functions.
var (
	Ease      = CubicBezier(0.25, 0.1, 0.25, 1.0)
	EaseIn    = CubicBezier(0.42, 0.0, 1.0, 1.0)
	EaseOut   = CubicBezier(0.0, 0.0, 0.58, 1.0)
	EaseInOut = CubicBezier(0.42, 0.0, 0.58, 1.0)
)

// EaseOutCubic decelerates with a cubic falloff.
func EaseOutCubic(t float64) float64 {
	inv := 1 - t
	return 1 - inv*inv*inv
}

// EaseInOutQuad accelerates to the midpoint and decelerates after it.
func EaseInOutQuad(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return 1 - math.Pow(-2*t+2, 2)/2
}

// CubicBezier builds the easing CSS writes as cubic-bezier(x1, y1, x2, y2).
// The curve runs from (0,0) to (1,1); progress outside [0, 1] is clamped.
func CubicBezier(x1, y1, x2, y2 float64) Easing {
	c := newBezier(x1, y1, x2, y2)
	return func(t float64) float64 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}
		return c.y(c.solve(t))
	}
}

// bezier holds both axes of a unit cubic in power form, p(u) = ((a*u + b)*u + c)*u.
type bezier struct {
	ax, bx, cx float64
	ay, by, cy float64
}

func newBezier(x1, y1, x2, y2 float64) bezier {
	var z bezier
	z.cx = 3 * x1
	z.bx = 3*(x2-x1) - z.cx
	z.ax = 1 - z.cx - z.bx
	z.cy = 3 * y1
	z.by = 3*(y2-y1) - z.cy
	z.ay = 1 - z.cy - z.by
	return z
}

func (z bezier) x(u float64) float64 { return ((z.ax*u+z.bx)*u + z.cx) * u }

func (z bezier) y(u float64) float64 { return ((z.ay*u+z.by)*u + z.cy) * u }

func (z bezier) dx(u float64) float64 { return (3*z.ax*u+2*z.bx)*u + z.cx }

// solve finds the curve parameter whose x is t.
func (z bezier) solve(t float64) float64 {
	const epsilon = 1e-7

	u := t
	for range 8 {
		err := z.x(u) - t
		if math.Abs(err) < epsilon {
			return u
		}
		slope := z.dx(u)
		if math.Abs(slope) < epsilon {
			break
		}
		u -= err / slope
	}

	// x is monotonic on [0, 1] for valid control points.
	lo, hi := 0.0, 1.0
	u = t
	for range 32 {
		x := z.x(u)
		if math.Abs(x-t) < epsilon {
			break
		}
		if x < t {
			lo = u
		} else {
			hi = u
		}
		u = lo + (hi-lo)/2
	}
	return u
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
