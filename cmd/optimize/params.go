// Package main provides CMA-ES tuning of the galaxy physics coefficients.
package main

import (
	"github.com/pthm-cable/galaxies/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			// Galaxy encounter
			{Name: "attraction", Path: "physics.attraction", Min: 0.0005, Max: 0.006, Default: 0.0025},
			{Name: "merge_damping", Path: "physics.merge_damping", Min: 0.9, Max: 0.995, Default: 0.98},
			// Star confinement
			{Name: "home_strength", Path: "physics.home_strength", Min: 20, Max: 120, Default: 60},
			{Name: "orbit_factor", Path: "generator.orbit_factor", Min: 0.7, Max: 1.1, Default: 0.95},
			// Tidal perturbation
			{Name: "tidal_near", Path: "physics.tidal_near", Min: 0.001, Max: 0.01, Default: 0.004},
			{Name: "tidal_far", Path: "physics.tidal_far", Min: 0.00005, Max: 0.001, Default: 0.0002},
			{Name: "tidal_distance", Path: "physics.tidal_distance", Min: 150, Max: 500, Default: 300},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = min(max(v[i], spec.Min), spec.Max)
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config struct.
// Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)

	cfg.Physics.Attraction = clamped[0]
	cfg.Physics.MergeDamping = clamped[1]
	cfg.Physics.HomeStrength = clamped[2]
	cfg.Generator.OrbitFactor = clamped[3]
	cfg.Physics.TidalNear = clamped[4]
	cfg.Physics.TidalFar = clamped[5]
	cfg.Physics.TidalDistance = clamped[6]

	// Tidal pull must strengthen on approach
	if cfg.Physics.TidalFar > cfg.Physics.TidalNear {
		cfg.Physics.TidalFar = cfg.Physics.TidalNear
	}
}

// ExtractFromConfig extracts current parameter values from a Config struct.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		cfg.Physics.Attraction,
		cfg.Physics.MergeDamping,
		cfg.Physics.HomeStrength,
		cfg.Generator.OrbitFactor,
		cfg.Physics.TidalNear,
		cfg.Physics.TidalFar,
		cfg.Physics.TidalDistance,
	}
}
