package main

import (
	"math"
	"sync"

	"github.com/pthm-cable/galaxies/config"
	"github.com/pthm-cable/galaxies/game"
	"github.com/pthm-cable/galaxies/systems"
	"github.com/pthm-cable/galaxies/telemetry"
)

// Fitness shaping constants.
const (
	sampleEvery   = 60  // ticks between formation samples
	scatterFactor = 1.5 // stars beyond this many arm radii count as scattered
	edgeBand      = 2.0 // pixels inside the star boundary counted as pinned
	minMotion     = 0.3 // mean per-tick displacement below this reads as stalled
	edgeWeight    = 2.0
)

// Breakdown holds the fitness terms of one run. Every term is a penalty in [0, ~1].
type Breakdown struct {
	Scatter   float64 // mean fraction of stars drifted far from their galaxy
	Edge      float64 // mean fraction of stars pressed against the viewport edge
	Encounter float64 // how far the galaxies stayed from tidal range
	Stall     float64 // shortfall of visible motion
}

// Total combines the terms into a fitness value (lower = better).
func (b Breakdown) Total() float64 {
	return b.Scatter + edgeWeight*b.Edge + b.Encounter + b.Stall
}

// FitnessEvaluator runs headless simulations and computes fitness.
type FitnessEvaluator struct {
	params     *ParamVector
	ticks      int64
	seeds      []int64
	baseConfig *config.Config
	bounds     systems.Bounds

	mu            sync.Mutex
	lastBreakdown Breakdown
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, ticks int, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		ticks:      int64(ticks),
		seeds:      seeds,
		baseConfig: baseCfg,
		bounds: systems.Bounds{
			Width:  float64(baseCfg.Screen.Width),
			Height: float64(baseCfg.Screen.Height),
		},
	}
}

// LastBreakdown returns the mean fitness terms of the most recent evaluation.
func (fe *FitnessEvaluator) LastBreakdown() Breakdown {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastBreakdown
}

// Evaluate computes fitness for raw parameter values (lower = better),
// averaged over all seeds. Seeds run in parallel, each with its own simulation.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	results := make([]Breakdown, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = fe.runSimulation(cfg, s)
		}(i, seed)
	}
	wg.Wait()

	var mean Breakdown
	for _, r := range results {
		mean.Scatter += r.Scatter
		mean.Edge += r.Edge
		mean.Encounter += r.Encounter
		mean.Stall += r.Stall
	}
	n := float64(len(results))
	mean.Scatter /= n
	mean.Edge /= n
	mean.Encounter /= n
	mean.Stall /= n

	fe.mu.Lock()
	fe.lastBreakdown = mean
	fe.mu.Unlock()

	fitness := mean.Total()
	if math.IsNaN(fitness) || math.IsInf(fitness, 0) {
		return math.MaxFloat64
	}
	return fitness
}

// runSimulation steps one seeded population at rest scroll and scores it.
func (fe *FitnessEvaluator) runSimulation(cfg *config.Config, seed int64) Breakdown {
	sim := game.NewSimulation(cfg, seed)
	sim.Populate(fe.bounds)
	collector := telemetry.NewCollector(sampleEvery)

	armRadius := cfg.Generator.BaseRadius + cfg.Generator.ArmScale*math.Min(fe.bounds.Width, fe.bounds.Height)
	scatterRadius := armRadius * scatterFactor
	edge := cfg.Boundary.Inset + edgeBand

	var windows []telemetry.WindowStats
	var scatterSum, edgeSum float64
	samples := 0

	for sim.Tick() < fe.ticks {
		report := sim.Step()
		tick := sim.Tick()
		collector.Record(telemetry.FrameSample{
			Tick:             tick,
			Stars:            report.Stars,
			SpeedMul:         report.SpeedMul,
			OpacityMul:       report.OpacityMul,
			Separation:       report.Separation,
			MeanDisplacement: telemetry.Mean(report.Displacements),
		})

		if collector.ShouldFlush(tick) {
			windows = append(windows, collector.Flush(tick))
			scatter, pinned := formation(sim, scatterRadius, edge)
			scatterSum += scatter
			edgeSum += pinned
			samples++
		}
	}
	if samples == 0 {
		return Breakdown{Scatter: 1, Edge: 1, Encounter: 1, Stall: 1}
	}

	minSeparation := math.Inf(1)
	motion := 0.0
	for _, w := range windows {
		minSeparation = math.Min(minSeparation, w.SeparationMin)
		motion += w.DisplacementMean
	}
	motion /= float64(len(windows))

	tidal := cfg.Physics.TidalDistance
	return Breakdown{
		Scatter:   scatterSum / float64(samples),
		Edge:      edgeSum / float64(samples),
		Encounter: math.Max(0, minSeparation-tidal) / tidal,
		Stall:     math.Max(0, minMotion-motion) / minMotion,
	}
}

// formation returns the fraction of stars beyond scatterRadius from their
// home galaxy and the fraction within edge pixels of the viewport border.
func formation(sim *game.Simulation, scatterRadius, edge float64) (scattered, pinned float64) {
	galaxies := sim.Galaxies()
	b := sim.Bounds()
	stars := sim.Stars()
	if len(stars) == 0 {
		return 0, 0
	}

	for _, s := range stars {
		home := galaxies[s.Membership.Home()].Center
		if math.Hypot(s.Position.X-home.X, s.Position.Y-home.Y) > scatterRadius {
			scattered++
		}
		p := s.Position
		if p.X <= edge || p.Y <= edge || p.X >= b.Width-edge || p.Y >= b.Height-edge {
			pinned++
		}
	}
	n := float64(len(stars))
	return scattered / n, pinned / n
}

// copyConfig creates a copy of the base config. Sections are plain values;
// the derived color slices are shared read-only.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	return &cfg
}
