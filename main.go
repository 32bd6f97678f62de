package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/galaxies/config"
	"github.com/pthm-cable/galaxies/game"
	"github.com/pthm-cable/galaxies/renderer"
	"github.com/pthm-cable/galaxies/ui"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Int("stats-window", 0, "Stats window size in ticks (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited, headless requires a limit)")
	scroll := flag.Float64("scroll", 0, "Headless scroll offset in pixels")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	opts := game.Options{
		Seed:        rngSeed,
		LogStats:    *logStats,
		StatsWindow: *statsWindow,
		OutputDir:   *outputDir,
	}

	if *headless {
		if err := runHeadless(cfg, opts, *maxTicks, *scroll); err != nil {
			slog.Error("headless run failed", "error", err)
			os.Exit(1)
		}
		return
	}
	if err := runWindow(cfg, opts, *maxTicks); err != nil {
		slog.Error("window run failed", "error", err)
		os.Exit(1)
	}
}

// runHeadless drives the game from a manual host with a no-op canvas.
func runHeadless(cfg *config.Config, opts game.Options, maxTicks int, scroll float64) error {
	if maxTicks <= 0 {
		maxTicks = 3600
	}

	g, err := game.NewGame(cfg, opts)
	if err != nil {
		return err
	}
	defer g.Close()

	width, height := float64(cfg.Screen.Width), float64(cfg.Screen.Height)
	host := game.NewManualHost(&renderer.NopCanvas{Width: width, Height: height}, width, height)
	host.Scroll(scroll)
	g.Mount(host)

	slog.Info("starting headless simulation",
		"seed", opts.Seed,
		"max_ticks", maxTicks,
		"scroll", scroll,
		"stars", cfg.Derived.TotalStars,
	)

	for g.Simulation().Tick() < int64(maxTicks) {
		if host.Step() == 0 {
			break
		}
	}
	slog.Info("max ticks reached", "tick", g.Simulation().Tick())
	return nil
}

// runWindow opens a resizable raylib window and pumps frames until it closes.
func runWindow(cfg *config.Config, opts game.Options, maxTicks int) error {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), cfg.Screen.Title)
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := game.NewGame(cfg, opts)
	if err != nil {
		return err
	}
	defer g.Close()

	host := game.NewRaylibHost(cfg)
	defer host.Unload()

	overlay := ui.NewOverlay(10, 10, 260)
	host.SetOverlay(func() {
		sim := g.Simulation()
		report := g.LastReport()
		actions := overlay.Draw(ui.OverlayData{
			Tick:         sim.Tick(),
			Generation:   sim.Generation(),
			Stars:        sim.StarCount(),
			FPS:          rl.GetFPS(),
			Paused:       g.Paused(),
			ScrollOffset: host.ScrollOffset(),
			MaxScroll:    host.MaxScroll(),
			Progress:     sim.Scroll(),
			SpeedMul:     report.SpeedMul,
			OpacityMul:   report.OpacityMul,
			Separation:   report.Separation,
			MeanAlpha:    g.LastFrame().MeanAlpha,
		})
		if actions.ScrollChanged {
			host.SetScroll(actions.ScrollOffset)
		}
		if actions.Reseed {
			g.Reseed()
		}
		if actions.TogglePause {
			g.SetPaused(!g.Paused())
		}
	})

	g.Mount(host)
	slog.Info("starting window", "seed", opts.Seed, "stars", cfg.Derived.TotalStars)

	for !rl.WindowShouldClose() {
		if g.HandleInput(host) {
			overlay.Toggle()
		}
		host.Pump()

		if maxTicks > 0 && g.Simulation().Tick() >= int64(maxTicks) {
			break
		}
	}
	return nil
}
