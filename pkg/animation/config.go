package animation

import "time"

// Spring defaults.
const (
	DefaultTension   = 170.0
	DefaultFriction  = 26.0
	DefaultMass      = 1.0
	DefaultPrecision = 0.01
)

// Field names SpringConfig fields whose zero value would otherwise be
// replaced by a default.
type Field uint8

const (
	FieldTension Field = 1 << iota
	FieldFriction
	FieldDelay
)

// SpringConfig configures how one named property moves. Every field is
// defaulted independently: zero Tension, Friction, Mass and Precision take the
// package defaults, zero Delay inherits Props.Delay, and a nil Easing is linear.
// List a field in Zero to keep an explicit zero instead.
//
// A positive Duration switches the property from spring physics to a
// duration-based tween shaped by Easing.
type SpringConfig struct {
	Tension   float64
	Friction  float64
	Mass      float64
	Precision float64
	// Velocity is the initial velocity in units per second.
	Velocity float64
	// Clamp stops the spring as soon as it crosses its target.
	Clamp    bool
	Duration time.Duration
	Delay    time.Duration
	Easing   Easing
	Zero     Field
}

// DefaultSpring is the configuration used when Props.Config is nil.
var DefaultSpring = SpringConfig{
	Tension:   DefaultTension,
	Friction:  DefaultFriction,
	Mass:      DefaultMass,
	Precision: DefaultPrecision,
	Easing:    LinearCurve,
}

// resolve fills defaults. Non-positive mass and precision are replaced rather
// than kept, since the integrator divides by mass and compares against
// precision; negative delays and durations behave as zero.
func (c SpringConfig) resolve(delay time.Duration) SpringConfig {
	if c.Tension == 0 && c.Zero&FieldTension == 0 {
		c.Tension = DefaultTension
	}
	if c.Friction == 0 && c.Zero&FieldFriction == 0 {
		c.Friction = DefaultFriction
	}
	if c.Mass <= 0 {
		c.Mass = DefaultMass
	}
	if c.Precision <= 0 {
		c.Precision = DefaultPrecision
	}
	if c.Delay == 0 && c.Zero&FieldDelay == 0 {
		c.Delay = delay
	}
	if c.Delay < 0 {
		c.Delay = 0
	}
	if c.Duration < 0 {
		c.Duration = 0
	}
	if c.Easing == nil {
		c.Easing = LinearCurve
	}
	return c
}
