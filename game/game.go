package game

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/galaxies/config"
	"github.com/pthm-cable/galaxies/renderer"
	"github.com/pthm-cable/galaxies/systems"
	"github.com/pthm-cable/galaxies/telemetry"
)

// State is the driver lifecycle state.
type State int

const (
	StateUnmounted State = iota
	StateInitializing
	StateRunning
)

func (s State) String() string {
	switch s {
	case StateUnmounted:
		return "unmounted"
	case StateInitializing:
		return "initializing"
	case StateRunning:
		return "running"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Options configures a Game.
type Options struct {
	Seed        int64
	LogStats    bool   // Output stats via slog
	StatsWindow int    // Ticks per stats window (0 = use config)
	OutputDir   string // Directory for CSV output (empty = disabled)
}

// Game drives a Simulation from host frames: one physics tick and one
// rendered frame per callback.
type Game struct {
	cfg  *config.Config
	opts Options

	sim   *Simulation
	stars *renderer.StarRenderer

	// Mount state
	state        State
	host         Host
	canvas       renderer.Canvas
	frame        FrameHandle
	framePending bool
	removeResize func()
	removeScroll func()

	paused bool

	// Telemetry
	collector *telemetry.Collector
	perf      *telemetry.PerfCollector
	output    *telemetry.OutputManager

	lastReport systems.TickReport
	lastFrame  renderer.FrameStats
}

// NewGame creates an unmounted game.
func NewGame(cfg *config.Config, opts Options) (*Game, error) {
	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("creating output manager: %w", err)
	}
	if err := output.WriteConfig(cfg); err != nil {
		output.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	window := cfg.Telemetry.StatsWindow
	if opts.StatsWindow > 0 {
		window = opts.StatsWindow
	}

	sim := NewSimulation(cfg, opts.Seed)
	return &Game{
		cfg:       cfg,
		opts:      opts,
		sim:       sim,
		stars:     renderer.NewStarRenderer(sim.World(), cfg),
		collector: telemetry.NewCollector(window),
		perf:      telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		output:    output,
	}, nil
}

// Mount attaches the game to host and starts animating. Without a drawing
// surface the game stays unmounted. Mounting while mounted is a no-op.
func (g *Game) Mount(host Host) {
	if g.state != StateUnmounted {
		return
	}
	g.state = StateInitializing

	canvas, ok := host.Surface()
	if !ok || canvas == nil {
		slog.Debug("no drawing surface, animation not started")
		g.state = StateUnmounted
		return
	}
	g.host = host
	g.canvas = canvas

	w, h := host.Viewport()
	bounds := systems.Bounds{Width: w, Height: h}
	if !g.sim.Populated() {
		g.sim.Populate(bounds)
	} else if bounds != g.sim.Bounds() {
		g.sim.Resize(bounds)
	}

	g.removeResize = host.OnResize(g.handleResize)
	g.removeScroll = host.OnScroll(g.handleScroll)
	g.handleScroll(host.ScrollOffset())

	g.state = StateRunning
	g.requestFrame()

	slog.Info("animation mounted",
		"generation", g.sim.Generation(),
		"stars", g.sim.StarCount(),
		"width", w,
		"height", h,
	)
}

// Teardown stops the animation and releases every host registration.
// Safe to call any number of times. The population is kept for the next Mount.
func (g *Game) Teardown() {
	if g.host != nil && g.framePending {
		g.host.CancelFrame(g.frame)
	}
	g.framePending = false

	if g.removeResize != nil {
		g.removeResize()
		g.removeResize = nil
	}
	if g.removeScroll != nil {
		g.removeScroll()
		g.removeScroll = nil
	}

	if g.state != StateUnmounted {
		slog.Debug("animation torn down", "tick", g.sim.Tick())
	}
	g.host = nil
	g.canvas = nil
	g.state = StateUnmounted
}

// Close tears down and flushes output files.
func (g *Game) Close() error {
	g.Teardown()
	return g.output.Close()
}

func (g *Game) requestFrame() {
	g.frame = g.host.RequestFrame(g.onFrame)
	g.framePending = true
}

// onFrame runs one tick: physics, render, telemetry, then the next request.
func (g *Game) onFrame() {
	g.framePending = false
	if g.state != StateRunning {
		return
	}

	g.perf.StartTick()

	g.perf.StartPhase(telemetry.PhasePhysics)
	if !g.paused {
		g.lastReport = g.sim.Step()
	}

	g.perf.StartPhase(telemetry.PhaseRender)
	g.canvas.BeginFrame()
	g.lastFrame = g.stars.Draw(g.canvas, g.sim.Scroll())
	g.canvas.EndFrame()

	g.perf.StartPhase(telemetry.PhaseTelemetry)
	if !g.paused {
		g.recordTelemetry()
	}

	g.perf.EndTick()

	g.requestFrame()
}

func (g *Game) handleResize(width, height float64) {
	bounds := systems.Bounds{Width: width, Height: height}
	if bounds == g.sim.Bounds() {
		return
	}
	if g.sim.Resize(bounds) {
		slog.Info("population regenerated", "generation", g.sim.Generation(), "width", width, "height", height)
	}
	// Keep scroll progress relative to the new viewport height
	if g.host != nil {
		g.handleScroll(g.host.ScrollOffset())
	}
}

func (g *Game) handleScroll(offset float64) {
	h := g.sim.Bounds().Height
	g.sim.SetScroll(systems.ScrollProgress(offset, h, g.cfg.Scroll.Range))
}

// recordTelemetry feeds the collector and flushes finished windows.
func (g *Game) recordTelemetry() {
	tick := g.sim.Tick()
	g.collector.Record(telemetry.FrameSample{
		Tick:             tick,
		Generation:       g.sim.Generation(),
		Stars:            g.lastReport.Stars,
		Scroll:           g.sim.Scroll(),
		SpeedMul:         g.lastReport.SpeedMul,
		OpacityMul:       g.lastReport.OpacityMul,
		Separation:       g.lastReport.Separation,
		MeanDisplacement: telemetry.Mean(g.lastReport.Displacements),
		MeanAlpha:        g.lastFrame.MeanAlpha,
		Segments:         g.lastFrame.Segments,
		Wrapped:          g.lastReport.Wrapped,
	})

	if !g.collector.ShouldFlush(tick) {
		return
	}
	stats := g.collector.Flush(tick)
	perfStats := g.perf.Stats()

	if g.opts.LogStats {
		stats.LogStats()
		perfStats.LogStats()
	}
	// Output errors never stop the animation
	if err := g.output.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
	if err := g.output.WritePerf(perfStats, tick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
}

// Reseed regenerates the population for the current viewport.
func (g *Game) Reseed() {
	g.sim.Populate(g.sim.Bounds())
	slog.Info("population reseeded", "generation", g.sim.Generation())
}

// SetPaused freezes or resumes physics. Frames keep rendering while paused.
func (g *Game) SetPaused(paused bool) { g.paused = paused }

// Paused reports whether physics is frozen.
func (g *Game) Paused() bool { return g.paused }

// State returns the lifecycle state.
func (g *Game) State() State { return g.state }

// Simulation returns the simulation driven by the game.
func (g *Game) Simulation() *Simulation { return g.sim }

// LastReport returns the most recent physics report.
func (g *Game) LastReport() systems.TickReport { return g.lastReport }

// LastFrame returns statistics of the most recent rendered frame.
func (g *Game) LastFrame() renderer.FrameStats { return g.lastFrame }

// Perf returns the frame timing collector.
func (g *Game) Perf() *telemetry.PerfCollector { return g.perf }
