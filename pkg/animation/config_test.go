package animation

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestSpringConfigResolve(t *testing.T) {
	tests := []struct {
		name string
		in   SpringConfig
		want SpringConfig
	}{
		{
			"defaults",
			SpringConfig{},
			SpringConfig{Tension: 170, Friction: 26, Mass: 1, Precision: 0.01, Delay: 30 * time.Millisecond},
		},
		{
			"explicit zeros",
			SpringConfig{Zero: FieldTension | FieldFriction | FieldDelay},
			SpringConfig{Mass: 1, Precision: 0.01, Zero: FieldTension | FieldFriction | FieldDelay},
		},
		{
			"invalid mass and precision",
			SpringConfig{Tension: 50, Mass: -2, Precision: -1},
			SpringConfig{Tension: 50, Friction: 26, Mass: 1, Precision: 0.01, Delay: 30 * time.Millisecond},
		},
		{
			"negative durations",
			SpringConfig{Duration: -time.Second, Delay: -time.Second},
			SpringConfig{Tension: 170, Friction: 26, Mass: 1, Precision: 0.01},
		},
		{
			"negative tension kept",
			SpringConfig{Tension: -10, Friction: -1, Mass: 2},
			SpringConfig{Tension: -10, Friction: -1, Mass: 2, Precision: 0.01, Delay: 30 * time.Millisecond},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.resolve(30 * time.Millisecond)
			if got.Easing == nil {
				t.Fatal("Easing should default to linear")
			}
			got.Easing = nil
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("resolve mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
