package main

import (
	"math"
	"testing"

	"github.com/pthm-cable/galaxies/config"
)

func TestNormalizeRoundTrip(t *testing.T) {
	pv := NewParamVector()
	raw := pv.DefaultVector()
	back := pv.Denormalize(pv.Normalize(raw))

	for i, spec := range pv.Specs {
		if math.Abs(back[i]-raw[i]) > 1e-12 {
			t.Errorf("%s: expected %v, got %v", spec.Name, raw[i], back[i])
		}
	}
}

func TestDefaultsMatchEmbeddedConfig(t *testing.T) {
	pv := NewParamVector()
	got := pv.ExtractFromConfig(config.Default())
	for i, spec := range pv.Specs {
		if got[i] != spec.Default {
			t.Errorf("%s: config has %v, param default is %v", spec.Name, got[i], spec.Default)
		}
		if spec.Default < spec.Min || spec.Default > spec.Max {
			t.Errorf("%s: default %v outside [%v, %v]", spec.Name, spec.Default, spec.Min, spec.Max)
		}
	}
}

func TestApplyToConfigClampsAndOrdersTidal(t *testing.T) {
	pv := NewParamVector()
	cfg := config.Default()

	values := pv.DefaultVector()
	values[0] = 1     // attraction far above max
	values[4] = 0.001 // tidal_near at min
	values[5] = 0.001 // tidal_far at max, above near after clamping
	pv.ApplyToConfig(cfg, values)

	if cfg.Physics.Attraction != pv.Specs[0].Max {
		t.Errorf("expected attraction clamped to %v, got %v", pv.Specs[0].Max, cfg.Physics.Attraction)
	}
	if cfg.Physics.TidalFar > cfg.Physics.TidalNear {
		t.Errorf("expected tidal_far <= tidal_near, got %v > %v", cfg.Physics.TidalFar, cfg.Physics.TidalNear)
	}
}

func TestBreakdownTotal(t *testing.T) {
	b := Breakdown{Scatter: 0.1, Edge: 0.2, Encounter: 0.3, Stall: 0.4}
	want := 0.1 + edgeWeight*0.2 + 0.3 + 0.4
	if math.Abs(b.Total()-want) > 1e-12 {
		t.Errorf("expected %v, got %v", want, b.Total())
	}
}
