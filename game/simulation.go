package game

import (
	"log/slog"
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/galaxies/components"
	"github.com/pthm-cable/galaxies/config"
	"github.com/pthm-cable/galaxies/systems"
)

// Simulation owns the galaxies and their stars. It is independent of any
// host or drawing surface, so it can be stepped headless.
type Simulation struct {
	cfg   *config.Config
	world *ecs.World
	rng   *rand.Rand

	starMapper *ecs.Map5[
		components.Position,
		components.Velocity,
		components.Appearance,
		components.Membership,
		components.Trail,
	]
	starFilter *ecs.Filter5[
		components.Position,
		components.Velocity,
		components.Appearance,
		components.Membership,
		components.Trail,
	]

	generator *systems.Generator
	physics   *systems.PhysicsSystem

	galaxies   [2]systems.Galaxy
	bounds     systems.Bounds
	scroll     float64
	tick       int64
	generation int
	stars      int

	specs []systems.StarSpec
}

// StarState is a read-only copy of one star.
type StarState struct {
	Position   r2.Vec
	Velocity   r2.Vec
	Appearance components.Appearance
	Membership components.Membership
	TrailLen   int
}

// NewSimulation creates an empty simulation. Nothing exists until Populate.
func NewSimulation(cfg *config.Config, seed int64) *Simulation {
	world := ecs.NewWorld()
	rng := rand.New(rand.NewSource(seed))

	return &Simulation{
		cfg:   cfg,
		world: world,
		rng:   rng,
		starMapper: ecs.NewMap5[
			components.Position,
			components.Velocity,
			components.Appearance,
			components.Membership,
			components.Trail,
		](world),
		starFilter: ecs.NewFilter5[
			components.Position,
			components.Velocity,
			components.Appearance,
			components.Membership,
			components.Trail,
		](world),
		generator: systems.NewGenerator(cfg, rng),
		physics:   systems.NewPhysicsSystem(world, cfg),
		specs:     make([]systems.StarSpec, 0, cfg.Derived.TotalStars),
	}
}

// Populate discards any existing stars and generates both galaxies for b.
func (s *Simulation) Populate(b systems.Bounds) {
	s.clearStars()

	s.bounds = b
	s.galaxies = systems.NewGalaxies(&s.cfg.Galaxy, b)
	s.specs = s.generator.Generate(s.specs[:0], s.galaxies, b)

	for i := range s.specs {
		spec := &s.specs[i]
		pos := components.Position{X: spec.Position.X, Y: spec.Position.Y}
		vel := components.Velocity{X: spec.Velocity.X, Y: spec.Velocity.Y}
		app := spec.Appearance
		member := spec.Membership
		trail := components.NewTrail(s.cfg.Trail.Capacity)
		s.starMapper.NewEntity(&pos, &vel, &app, &member, &trail)
	}
	s.stars = len(s.specs)
	s.generation++

	slog.Debug("population generated",
		"generation", s.generation,
		"stars", s.stars,
		"width", b.Width,
		"height", b.Height,
	)
}

// clearStars removes every star entity.
func (s *Simulation) clearStars() {
	var toRemove []ecs.Entity
	query := s.starFilter.Query()
	for query.Next() {
		toRemove = append(toRemove, query.Entity())
	}
	for _, e := range toRemove {
		s.starMapper.Remove(e)
	}
	s.stars = 0
}

// Resize adapts the simulation to a new viewport. A significant change
// regenerates the population; otherwise each galaxy moves proportionally
// and carries its stars and trails along. Returns true if regenerated.
func (s *Simulation) Resize(b systems.Bounds) bool {
	if s.generation == 0 || s.SignificantResize(b) {
		s.Populate(b)
		return true
	}

	old := s.bounds
	s.bounds = b

	var offsets [2]r2.Vec
	for i := range s.galaxies {
		g := &s.galaxies[i]
		moved := r2.Vec{
			X: g.Center.X * b.Width / old.Width,
			Y: g.Center.Y * b.Height / old.Height,
		}
		offsets[i] = r2.Sub(moved, g.Center)
		g.Center = moved
	}

	query := s.starFilter.Query()
	for query.Next() {
		pos, _, _, member, trail := query.Get()
		d := offsets[member.Home()]
		pos.Set(r2.Add(pos.Vec(), d))
		trail.Translate(d)
	}

	slog.Debug("viewport resized",
		"generation", s.generation,
		"width", b.Width,
		"height", b.Height,
	)
	return false
}

// SignificantResize reports whether moving to b warrants a new population.
func (s *Simulation) SignificantResize(b systems.Bounds) bool {
	old := s.bounds
	if old.Empty() || b.Empty() {
		return true
	}
	threshold := s.cfg.Screen.SignificantResize
	dw := math.Abs(b.Width-old.Width) / old.Width
	dh := math.Abs(b.Height-old.Height) / old.Height
	return dw > threshold || dh > threshold
}

// SetScroll stores scroll progress, clamped into [0, 1].
func (s *Simulation) SetScroll(progress float64) {
	if math.IsNaN(progress) || progress < 0 {
		progress = 0
	}
	s.scroll = math.Min(progress, 1)
}

// Step advances the simulation by one tick.
func (s *Simulation) Step() systems.TickReport {
	report := s.physics.Update(&s.galaxies, s.bounds, s.scroll)
	s.tick++
	return report
}

// Stars returns a snapshot of every star in generation order.
func (s *Simulation) Stars() []StarState {
	out := make([]StarState, 0, s.stars)
	query := s.starFilter.Query()
	for query.Next() {
		pos, vel, app, member, trail := query.Get()
		out = append(out, StarState{
			Position:   pos.Vec(),
			Velocity:   vel.Vec(),
			Appearance: *app,
			Membership: *member,
			TrailLen:   trail.Len(),
		})
	}
	return out
}

// World returns the ECS world holding the stars.
func (s *Simulation) World() *ecs.World { return s.world }

// Galaxies returns a copy of both galaxy bodies.
func (s *Simulation) Galaxies() [2]systems.Galaxy { return s.galaxies }

// Bounds returns the current viewport extent.
func (s *Simulation) Bounds() systems.Bounds { return s.bounds }

// Scroll returns the current scroll progress.
func (s *Simulation) Scroll() float64 { return s.scroll }

// Tick returns the number of steps taken.
func (s *Simulation) Tick() int64 { return s.tick }

// Generation returns how many times the population has been generated.
func (s *Simulation) Generation() int { return s.generation }

// StarCount returns the number of live stars.
func (s *Simulation) StarCount() int { return s.stars }

// Populated reports whether a population exists.
func (s *Simulation) Populated() bool { return s.generation > 0 }
