// Package config loads named spring presets from an optional motion.yaml and
// turns them into per-property configuration for animation controllers.
package config

import (
	stderrors "errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-drift/motion/pkg/animation"
	"github.com/go-drift/motion/pkg/errors"
	"gopkg.in/yaml.v3"
)

// FileName is the preset file looked up by LoadOptional.
const FileName = "motion.yaml"

// DefaultPreset names the preset used for properties without an assignment.
const DefaultPreset = "default"

// Config represents the optional motion.yaml configuration.
type Config struct {
	// Presets adds or overrides named presets.
	Presets map[string]Preset `yaml:"presets,omitempty"`
	// Properties assigns presets to property names.
	Properties map[string]string `yaml:"properties,omitempty"`
	// Default names the preset for unassigned properties.
	Default string `yaml:"default,omitempty"`
}

// Preset is one spring configuration as written in YAML. Pointer fields
// distinguish "unset" (take the animation default) from an explicit zero.
type Preset struct {
	Tension   *float64       `yaml:"tension,omitempty"`
	Friction  *float64       `yaml:"friction,omitempty"`
	Mass      *float64       `yaml:"mass,omitempty"`
	Precision *float64       `yaml:"precision,omitempty"`
	Velocity  float64        `yaml:"velocity,omitempty"`
	Clamp     bool           `yaml:"clamp,omitempty"`
	Duration  time.Duration  `yaml:"duration,omitempty"`
	Delay     *time.Duration `yaml:"delay,omitempty"`
	Easing    string         `yaml:"easing,omitempty"`
}

var easings = map[string]animation.Easing{
	"":                 animation.LinearCurve,
	"linear":           animation.LinearCurve,
	"ease":             animation.Ease,
	"ease-in":          animation.EaseIn,
	"ease-out":         animation.EaseOut,
	"ease-in-out":      animation.EaseInOut,
	"ease-out-cubic":   animation.EaseOutCubic,
	"ease-in-out-quad": animation.EaseInOutQuad,
}

// SpringConfig converts the preset, validating it.
func (p Preset) SpringConfig() (animation.SpringConfig, error) {
	cfg := animation.SpringConfig{
		Velocity: p.Velocity,
		Clamp:    p.Clamp,
		Duration: p.Duration,
	}
	if p.Tension != nil {
		cfg.Tension = *p.Tension
		if cfg.Tension == 0 {
			cfg.Zero |= animation.FieldTension
		}
	}
	if p.Friction != nil {
		cfg.Friction = *p.Friction
		if cfg.Friction == 0 {
			cfg.Zero |= animation.FieldFriction
		}
	}
	if p.Mass != nil {
		if *p.Mass <= 0 {
			return cfg, fmt.Errorf("%w: mass must be positive, got %v", errors.ErrInvalidPreset, *p.Mass)
		}
		cfg.Mass = *p.Mass
	}
	if p.Precision != nil {
		if *p.Precision <= 0 {
			return cfg, fmt.Errorf("%w: precision must be positive, got %v", errors.ErrInvalidPreset, *p.Precision)
		}
		cfg.Precision = *p.Precision
	}
	if p.Duration < 0 {
		return cfg, fmt.Errorf("%w: negative duration %v", errors.ErrInvalidPreset, p.Duration)
	}
	if p.Delay != nil {
		if *p.Delay < 0 {
			return cfg, fmt.Errorf("%w: negative delay %v", errors.ErrInvalidPreset, *p.Delay)
		}
		cfg.Delay = *p.Delay
		if cfg.Delay == 0 {
			cfg.Zero |= animation.FieldDelay
		}
	}
	easing, ok := easings[strings.ToLower(strings.TrimSpace(p.Easing))]
	if !ok {
		return cfg, fmt.Errorf("%w: unknown easing %q", errors.ErrInvalidPreset, p.Easing)
	}
	cfg.Easing = easing
	return cfg, nil
}

func spring(tension, friction float64) animation.SpringConfig {
	return animation.SpringConfig{Tension: tension, Friction: friction}
}

// Builtin returns the built-in presets.
func Builtin() Presets {
	return Presets{
		DefaultPreset: spring(170, 26),
		"gentle":      spring(120, 14),
		"wobbly":      spring(180, 12),
		"stiff":       spring(210, 20),
		"slow":        spring(280, 60),
		"molasses":    spring(280, 120),
	}
}

// Presets maps preset names to spring configurations.
type Presets map[string]animation.SpringConfig

// Lookup returns the named preset.
func (p Presets) Lookup(name string) (animation.SpringConfig, bool) {
	cfg, ok := p[name]
	return cfg, ok
}

// LoadOptional reads motion.yaml from dir if present. A missing file yields
// an empty configuration.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}
	return Parse(data)
}

// Parse decodes a motion.yaml document.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}
	return &cfg, nil
}

// Resolved is a loaded configuration ready to hand to controllers.
type Resolved struct {
	Presets    Presets
	Properties map[string]string
	Default    string
}

// Resolve merges the file's presets over the built-ins and checks that every
// property assignment names a known preset. Invalid presets are reported
// through the errors package and fail the whole resolution.
func (c *Config) Resolve() (*Resolved, error) {
	presets := Builtin()
	for name, p := range c.Presets {
		cfg, err := p.SpringConfig()
		if err != nil {
			errors.Report(&errors.AnimationError{
				Op:   "config.Resolve",
				Kind: errors.KindConfig,
				Name: name,
				Err:  err,
			})
			return nil, fmt.Errorf("preset %q: %w", name, err)
		}
		presets[name] = cfg
	}

	def := strings.TrimSpace(c.Default)
	if def == "" {
		def = DefaultPreset
	}
	if _, ok := presets[def]; !ok {
		return nil, fmt.Errorf("%w: default preset %q not defined", errors.ErrInvalidPreset, def)
	}
	for prop, name := range c.Properties {
		if _, ok := presets[name]; !ok {
			return nil, fmt.Errorf("%w: property %q uses undefined preset %q", errors.ErrInvalidPreset, prop, name)
		}
	}

	return &Resolved{
		Presets:    presets,
		Properties: maps.Clone(c.Properties),
		Default:    def,
	}, nil
}

// Resolve loads motion.yaml (if present) from dir and resolves it.
func Resolve(dir string) (*Resolved, error) {
	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}
	return cfg.Resolve()
}

// ConfigFunc returns a resolver suitable for animation.Props.Config.
func (r *Resolved) ConfigFunc() func(name string) animation.SpringConfig {
	return func(name string) animation.SpringConfig {
		preset, ok := r.Properties[name]
		if !ok {
			preset = r.Default
		}
		return r.Presets[preset]
	}
}
