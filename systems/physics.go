// Package systems contains the generation and physics steps of the simulation.
package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/galaxies/components"
	"github.com/pthm-cable/galaxies/config"
)

// TickReport summarizes one physics step.
type TickReport struct {
	Separation float64 // distance between the galaxy centers after the step
	SpeedMul   float64
	OpacityMul float64
	Stars      int
	Wrapped    int // stars teleported by the wrap boundary this tick

	// Displacements holds each star's movement this tick, in query order.
	// The slice is reused by the next Update.
	Displacements []float64
}

// PhysicsSystem advances galaxies and stars by one tick.
type PhysicsSystem struct {
	filter *ecs.Filter4[components.Position, components.Velocity, components.Membership, components.Trail]
	cfg    *config.Config

	displacements []float64
}

// NewPhysicsSystem creates a physics system over the stars of w.
func NewPhysicsSystem(w *ecs.World, cfg *config.Config) *PhysicsSystem {
	return &PhysicsSystem{
		filter: ecs.NewFilter4[components.Position, components.Velocity, components.Membership, components.Trail](w),
		cfg:    cfg,
	}
}

// Update runs one tick at scroll progress s.
// Order: galaxy attraction, galaxy motion, rotation, star forces, star motion,
// star boundary, trail append.
func (s *PhysicsSystem) Update(galaxies *[2]Galaxy, bounds Bounds, scroll float64) TickReport {
	phys := &s.cfg.Physics
	speedMul := SpeedMultiplier(scroll, phys)

	s.updateGalaxies(galaxies, bounds, speedMul)

	_, separation := direction(galaxies[0].Center, galaxies[1].Center)
	tidal := phys.TidalFar
	if separation < phys.TidalDistance {
		tidal = phys.TidalNear
	}

	report := TickReport{
		Separation: separation,
		SpeedMul:   speedMul,
		OpacityMul: OpacityMultiplier(scroll, phys),
	}
	s.displacements = s.displacements[:0]

	wrap := s.cfg.Boundary.Mode == config.BoundaryWrap
	xlo, xhi := span(s.cfg.Boundary.Inset, bounds.Width)
	ylo, yhi := span(s.cfg.Boundary.Inset, bounds.Height)
	restitution := s.cfg.Boundary.Restitution

	query := s.filter.Query()
	for query.Next() {
		pos, vel, member, trail := query.Get()

		p := pos.Vec()
		v := vel.Vec()

		// Pull back toward the home galaxy, steeper with proximity
		if dir, dist := direction(p, galaxies[member.Home()].Center); dist >= epsilon {
			r := math.Max(dist, phys.Softening)
			v = r2.Add(v, r2.Scale(phys.HomeStrength/math.Pow(r, phys.HomeExponent)*speedMul, dir))
		}
		// Tidal pull toward the other galaxy
		if dir, dist := direction(p, galaxies[member.Other()].Center); dist >= epsilon {
			v = r2.Add(v, r2.Scale(tidal*speedMul, dir))
		}
		v = clampSpeed(v, phys.MaxStarSpeed)

		prev := p
		p = r2.Add(p, r2.Scale(speedMul, v))

		if wrap {
			wrapped := p.X < 0 || p.X >= bounds.Width || p.Y < 0 || p.Y >= bounds.Height
			if wrapped {
				p.X = mod(p.X, bounds.Width)
				p.Y = mod(p.Y, bounds.Height)
				trail.Reset()
				report.Wrapped++
				s.displacements = append(s.displacements, r2.Norm(v)*speedMul)
			} else {
				s.displacements = append(s.displacements, r2.Norm(r2.Sub(p, prev)))
			}
		} else {
			p.X, v.X = reflect(p.X, v.X, xlo, xhi, restitution)
			p.Y, v.Y = reflect(p.Y, v.Y, ylo, yhi, restitution)
			s.displacements = append(s.displacements, r2.Norm(r2.Sub(p, prev)))
		}

		pos.Set(p)
		vel.Set(v)
		trail.Push(p)
	}

	report.Stars = len(s.displacements)
	report.Displacements = s.displacements
	return report
}

// updateGalaxies applies mutual attraction or merger damping, moves both
// centers and keeps them on screen with a soft velocity reflection.
func (s *PhysicsSystem) updateGalaxies(galaxies *[2]Galaxy, bounds Bounds, speedMul float64) {
	phys := &s.cfg.Physics
	gcfg := &s.cfg.Galaxy

	dir, separation := direction(galaxies[0].Center, galaxies[1].Center)
	if separation > phys.MergeDistance {
		pull := r2.Scale(phys.Attraction*speedMul, dir)
		galaxies[0].Velocity = r2.Add(galaxies[0].Velocity, pull)
		galaxies[1].Velocity = r2.Sub(galaxies[1].Velocity, pull)
	} else {
		galaxies[0].Velocity = r2.Scale(phys.MergeDamping, galaxies[0].Velocity)
		galaxies[1].Velocity = r2.Scale(phys.MergeDamping, galaxies[1].Velocity)
	}

	xlo, xhi := span(gcfg.Margin, bounds.Width)
	ylo, yhi := span(gcfg.Margin, bounds.Height)

	for i := range galaxies {
		g := &galaxies[i]
		g.Velocity = clampSpeed(g.Velocity, gcfg.MaxSpeed)
		g.Center = r2.Add(g.Center, r2.Scale(speedMul, g.Velocity))

		if (g.Center.X < xlo && g.Velocity.X < 0) || (g.Center.X > xhi && g.Velocity.X > 0) {
			g.Velocity.X = -g.Velocity.X * gcfg.Bounce
		}
		if (g.Center.Y < ylo && g.Velocity.Y < 0) || (g.Center.Y > yhi && g.Velocity.Y > 0) {
			g.Velocity.Y = -g.Velocity.Y * gcfg.Bounce
		}

		if i == 0 {
			g.RotationPhase += gcfg.RotationRate
		} else {
			g.RotationPhase -= gcfg.RotationRate
		}
	}
}

// reflect clamps x into [lo, hi] and bounces the outward velocity with restitution.
func reflect(x, v, lo, hi, restitution float64) (float64, float64) {
	if x < lo {
		x = lo
		if v < 0 {
			v = -v * restitution
		}
	} else if x > hi {
		x = hi
		if v > 0 {
			v = -v * restitution
		}
	}
	return x, v
}
