package systems

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/galaxies/components"
	"github.com/pthm-cable/galaxies/config"
)

// StarSpec is the initial state of one generated star.
type StarSpec struct {
	Position   r2.Vec
	Velocity   r2.Vec
	Appearance components.Appearance
	Membership components.Membership
}

// Generator builds spiral star populations. All randomness comes from rng,
// so a fixed seed reproduces the same population.
type Generator struct {
	gen     *config.GeneratorConfig
	physics *config.PhysicsConfig
	pop     *config.PopulationConfig
	rng     *rand.Rand
}

// NewGenerator creates a generator drawing from rng.
func NewGenerator(cfg *config.Config, rng *rand.Rand) *Generator {
	return &Generator{
		gen:     &cfg.Generator,
		physics: &cfg.Physics,
		pop:     &cfg.Population,
		rng:     rng,
	}
}

// Generate appends both galaxies' stars to dst and returns it.
// Galaxy 1 stars come first, each galaxy lists its arms in order followed by its bulge.
func (g *Generator) Generate(dst []StarSpec, galaxies [2]Galaxy, b Bounds) []StarSpec {
	armLength := g.gen.ArmScale * math.Max(0, math.Min(b.Width, b.Height))

	for gi := range galaxies {
		galaxy := components.GalaxyOne
		spin := 1.0
		if gi == 1 {
			galaxy = components.GalaxyTwo
			spin = -1.0
		}
		body := galaxies[gi]

		for arm := 0; arm < g.pop.Arms; arm++ {
			for i := 0; i < g.pop.StarsPerArm; i++ {
				dst = append(dst, g.armStar(body, galaxy, spin, arm, i, armLength))
			}
		}
		for i := 0; i < g.pop.BulgeStars; i++ {
			dst = append(dst, g.bulgeStar(body, galaxy))
		}
	}
	return dst
}

// armStar places star i of an arm on a logarithmic-style spiral.
func (g *Generator) armStar(body Galaxy, galaxy uint8, spin float64, arm, i int, armLength float64) StarSpec {
	t := 0.0
	if g.pop.StarsPerArm > 1 {
		t = float64(i) / float64(g.pop.StarsPerArm-1)
	}

	radius := g.gen.BaseRadius + math.Pow(t, g.gen.RadiusExponent)*armLength
	radius += (g.rng.Float64() - 0.5) * g.gen.RadiusJitter
	radius = math.Max(radius, g.gen.BaseRadius*0.5)

	armOffset := float64(arm) * 2 * math.Pi / float64(g.pop.Arms)
	angle := g.gen.Tightness*t*2*math.Pi*g.gen.Turns + armOffset
	angle += (g.rng.Float64() - 0.5) * g.gen.AngleJitter
	// The second galaxy winds the other way
	angle *= spin

	radial := r2.Vec{X: math.Cos(angle), Y: math.Sin(angle)}
	tangent := r2.Vec{X: -radial.Y, Y: radial.X}

	// Circular speed under the home force: inner stars orbit faster
	r := math.Max(radius, g.physics.Softening)
	speed := g.gen.OrbitFactor * math.Sqrt(g.physics.HomeStrength/math.Pow(r, g.physics.HomeExponent-1))

	return StarSpec{
		Position:   r2.Add(body.Center, r2.Scale(radius, radial)),
		Velocity:   r2.Add(body.Velocity, r2.Scale(speed*spin, tangent)),
		Appearance: g.appearance(),
		Membership: components.Membership{Galaxy: galaxy, Arm: int8(arm)},
	}
}

// bulgeStar places a star near the center with a small, near-isotropic velocity.
func (g *Generator) bulgeStar(body Galaxy, galaxy uint8) StarSpec {
	radius := g.rng.Float64() * g.gen.BulgeRadius
	angle := g.rng.Float64() * 2 * math.Pi
	offset := r2.Vec{X: math.Cos(angle) * radius, Y: math.Sin(angle) * radius}
	jitter := r2.Vec{
		X: (g.rng.Float64() - 0.5) * g.gen.BulgeVelocityJitter,
		Y: (g.rng.Float64() - 0.5) * g.gen.BulgeVelocityJitter,
	}

	return StarSpec{
		Position:   r2.Add(body.Center, offset),
		Velocity:   r2.Add(body.Velocity, jitter),
		Appearance: g.appearance(),
		Membership: components.Membership{Galaxy: galaxy, Arm: components.BulgeArm},
	}
}

func (g *Generator) appearance() components.Appearance {
	opacity := g.between(g.gen.OpacityMin, g.gen.OpacityMax)
	if opacity <= 0 {
		opacity = epsilon
	}
	return components.Appearance{
		Size:        g.between(g.gen.SizeMin, g.gen.SizeMax),
		BaseOpacity: math.Min(opacity, 1),
		Brightness:  clamp(g.between(g.gen.BrightnessMin, g.gen.BrightnessMax), 0, 1),
	}
}

func (g *Generator) between(lo, hi float64) float64 {
	return lo + g.rng.Float64()*(hi-lo)
}
