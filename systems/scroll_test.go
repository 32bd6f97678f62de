package systems

import (
	"math"
	"testing"

	"github.com/pthm-cable/galaxies/config"
)

func TestScrollProgressClamp(t *testing.T) {
	tests := []struct {
		name    string
		scrollY float64
		height  float64
		want    float64
	}{
		{"top of page", 0, 1000, 0},
		{"negative overscroll", -250, 1000, 0},
		{"halfway", 400, 1000, 0.5},
		{"saturated", 800, 1000, 1},
		{"far past saturation", 1e9, 1000, 1},
		{"infinite", math.Inf(1), 1000, 1},
		{"nan", math.NaN(), 1000, 0},
		{"zero viewport positive", 10, 0, 1},
		{"zero viewport at top", 0, 0, 0},
		{"negative viewport", 10, -5, 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ScrollProgress(tc.scrollY, tc.height, 0.8)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("expected %f, got %f", tc.want, got)
			}
			if got < 0 || got > 1 {
				t.Errorf("progress %f outside [0, 1]", got)
			}
		})
	}
}

func TestMultiplierFloors(t *testing.T) {
	cfg := config.Default()
	phys := &cfg.Physics

	prevSpeed, prevOpacity := math.Inf(1), math.Inf(1)
	for i := 0; i <= 100; i++ {
		s := float64(i) / 100
		speed := SpeedMultiplier(s, phys)
		opacity := OpacityMultiplier(s, phys)

		if speed < phys.SpeedFloor {
			t.Errorf("s=%.2f: speed multiplier %f below floor %f", s, speed, phys.SpeedFloor)
		}
		if opacity < phys.OpacityFloor {
			t.Errorf("s=%.2f: opacity multiplier %f below floor %f", s, opacity, phys.OpacityFloor)
		}
		if speed > prevSpeed || opacity > prevOpacity {
			t.Errorf("s=%.2f: multipliers increased", s)
		}
		prevSpeed, prevOpacity = speed, opacity
	}

	if got := SpeedMultiplier(0, phys); got != 1 {
		t.Errorf("expected full speed at s=0, got %f", got)
	}
	if got := SpeedMultiplier(1, phys); math.Abs(got-0.2) > 1e-9 {
		t.Errorf("expected speed 0.2 at s=1, got %f", got)
	}
	if got := OpacityMultiplier(1, phys); math.Abs(got-0.3) > 1e-9 {
		t.Errorf("expected opacity 0.3 at s=1, got %f", got)
	}
}

func TestMultiplierFloorWithStrongDamping(t *testing.T) {
	phys := config.PhysicsConfig{SpeedFloor: 0.25, SpeedDamping: 3, OpacityFloor: 0.1, OpacityDamping: 5}

	if got := SpeedMultiplier(0.9, &phys); got != 0.25 {
		t.Errorf("expected speed floor 0.25, got %f", got)
	}
	if got := OpacityMultiplier(0.9, &phys); got != 0.1 {
		t.Errorf("expected opacity floor 0.1, got %f", got)
	}
}
