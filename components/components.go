// Package components defines ECS components for the simulation.
package components

import "gonum.org/v1/gonum/spatial/r2"

// Galaxy affiliation values.
const (
	GalaxyOne uint8 = 1
	GalaxyTwo uint8 = 2
)

// BulgeArm marks a star that belongs to the central bulge rather than a spiral arm.
const BulgeArm int8 = -1

// Position represents a star's position in viewport pixels.
type Position struct {
	X, Y float64
}

// Vec returns the position as a vector.
func (p Position) Vec() r2.Vec {
	return r2.Vec{X: p.X, Y: p.Y}
}

// Set assigns the position from a vector.
func (p *Position) Set(v r2.Vec) {
	p.X, p.Y = v.X, v.Y
}

// Velocity represents a star's velocity in pixels per tick.
type Velocity struct {
	X, Y float64
}

// Vec returns the velocity as a vector.
func (v Velocity) Vec() r2.Vec {
	return r2.Vec{X: v.X, Y: v.Y}
}

// Set assigns the velocity from a vector.
func (v *Velocity) Set(u r2.Vec) {
	v.X, v.Y = u.X, u.Y
}

// Appearance holds render-only attributes, fixed at creation.
type Appearance struct {
	Size        float64 // disc radius in pixels
	BaseOpacity float64 // (0, 1]
	Brightness  float64 // [0, 1]
}

// Membership ties a star to its home galaxy and arm.
type Membership struct {
	Galaxy uint8 // GalaxyOne or GalaxyTwo
	Arm    int8  // spiral arm index, BulgeArm for bulge stars
}

// Home returns the index of the star's own galaxy body.
func (m Membership) Home() int {
	return int(m.Galaxy) - 1
}

// Other returns the index of the galaxy body that exerts the tidal pull.
func (m Membership) Other() int {
	return 1 - m.Home()
}
