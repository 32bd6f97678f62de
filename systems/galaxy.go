package systems

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/galaxies/config"
)

// Galaxy is the aggregate body that one star population orbits.
type Galaxy struct {
	Center        r2.Vec
	Velocity      r2.Vec
	RotationPhase float64 // cosmetic, advanced every tick
}

// Bounds represents the viewport extent in pixels.
type Bounds struct {
	Width, Height float64
}

// Empty reports whether the viewport has no area.
func (b Bounds) Empty() bool {
	return b.Width <= 0 || b.Height <= 0
}

// GalaxyTargets returns where the two galaxy centers sit for a viewport.
func GalaxyTargets(cfg *config.GalaxyConfig, b Bounds) [2]r2.Vec {
	y := b.Height * cfg.CenterY
	return [2]r2.Vec{
		{X: b.Width * cfg.CenterLeft, Y: y},
		{X: b.Width * cfg.CenterRight, Y: y},
	}
}

// NewGalaxies places both galaxies at their targets with opposite drift.
func NewGalaxies(cfg *config.GalaxyConfig, b Bounds) [2]Galaxy {
	targets := GalaxyTargets(cfg, b)
	return [2]Galaxy{
		{Center: targets[0], Velocity: r2.Vec{Y: -cfg.InitialDrift}},
		{Center: targets[1], Velocity: r2.Vec{Y: cfg.InitialDrift}},
	}
}
