package telemetry

import (
	"fmt"
	"log/slog"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Phase identifies one stage of an animation frame.
type Phase int

const (
	PhasePhysics Phase = iota
	PhaseRender
	PhaseTelemetry
	numPhases
)

var phaseNames = [numPhases]string{"physics", "render", "telemetry"}

func (p Phase) String() string {
	if p < 0 || p >= numPhases {
		return fmt.Sprintf("Phase(%d)", int(p))
	}
	return phaseNames[p]
}

// frameTiming is the measured cost of one frame callback.
type frameTiming struct {
	work     time.Duration // callback start to end
	interval time.Duration // since the previous callback started, 0 for the first
	phases   [numPhases]time.Duration
}

// PerfCollector tracks frame timings over a rolling window. The driver runs
// one callback per presented frame, so the gap between StartTick calls is
// the frame cadence.
type PerfCollector struct {
	window []frameTiming
	next   int
	filled int

	current    frameTiming
	frameStart time.Time
	phaseStart time.Time
	phase      Phase
	inPhase    bool
}

// NewPerfCollector creates a collector averaging over windowSize frames.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{window: make([]frameTiming, windowSize)}
}

// StartTick begins timing a frame.
func (p *PerfCollector) StartTick() {
	now := time.Now()
	p.current = frameTiming{}
	if !p.frameStart.IsZero() {
		p.current.interval = now.Sub(p.frameStart)
	}
	p.frameStart = now
	p.inPhase = false
}

// StartPhase closes the running phase, if any, and begins timing phase.
func (p *PerfCollector) StartPhase(phase Phase) {
	now := time.Now()
	p.closePhase(now)
	p.phase = phase
	p.phaseStart = now
	p.inPhase = true
}

// EndTick finishes timing the frame and stores it in the window.
func (p *PerfCollector) EndTick() {
	now := time.Now()
	p.closePhase(now)
	p.current.work = now.Sub(p.frameStart)

	p.window[p.next] = p.current
	p.next = (p.next + 1) % len(p.window)
	if p.filled < len(p.window) {
		p.filled++
	}
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.inPhase && p.phase >= 0 && p.phase < numPhases {
		p.current.phases[p.phase] += now.Sub(p.phaseStart)
	}
	p.inPhase = false
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	AvgTickDuration time.Duration
	MinTickDuration time.Duration
	MaxTickDuration time.Duration

	// Average duration and share of the frame work per phase
	PhaseAvg [numPhases]time.Duration
	PhasePct [numPhases]float64

	// Frames the callback could sustain if nothing else ran
	TicksPerSecond float64

	// Presented-frame cadence
	FrameDuration time.Duration
	FrameJitter   time.Duration
	FPS           float64
}

// Stats aggregates the frames currently in the window.
func (p *PerfCollector) Stats() PerfStats {
	var s PerfStats
	if p.filled == 0 {
		return s
	}

	var work time.Duration
	var phaseSum [numPhases]time.Duration
	intervals := make([]float64, 0, p.filled)

	for i, f := range p.window[:p.filled] {
		work += f.work
		if i == 0 || f.work < s.MinTickDuration {
			s.MinTickDuration = f.work
		}
		s.MaxTickDuration = max(s.MaxTickDuration, f.work)
		for ph, d := range f.phases {
			phaseSum[ph] += d
		}
		if f.interval > 0 {
			intervals = append(intervals, float64(f.interval))
		}
	}

	n := time.Duration(p.filled)
	s.AvgTickDuration = work / n
	for ph := range phaseSum {
		s.PhaseAvg[ph] = phaseSum[ph] / n
		if s.AvgTickDuration > 0 {
			s.PhasePct[ph] = float64(s.PhaseAvg[ph]) / float64(s.AvgTickDuration) * 100
		}
	}
	if s.AvgTickDuration > 0 {
		s.TicksPerSecond = float64(time.Second) / float64(s.AvgTickDuration)
	}

	switch len(intervals) {
	case 0:
	case 1:
		s.FrameDuration = time.Duration(intervals[0])
	default:
		mean, std := stat.MeanStdDev(intervals, nil)
		s.FrameDuration = time.Duration(mean)
		s.FrameJitter = time.Duration(std)
	}
	if s.FrameDuration > 0 {
		s.FPS = float64(time.Second) / float64(s.FrameDuration)
	}
	return s
}

// LogStats logs performance statistics.
func (s PerfStats) LogStats() {
	attrs := []any{
		"avg_tick_us", s.AvgTickDuration.Microseconds(),
		"max_tick_us", s.MaxTickDuration.Microseconds(),
		"fps", int(s.FPS),
		"jitter_us", s.FrameJitter.Microseconds(),
	}
	for ph, pct := range s.PhasePct {
		if pct > 0.1 {
			attrs = append(attrs, Phase(ph).String()+"_pct", float64(int(pct*10))/10)
		}
	}
	slog.Info("perf", attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	WindowEnd    int64   `csv:"window_end"`
	AvgTickUS    int64   `csv:"avg_tick_us"`
	MinTickUS    int64   `csv:"min_tick_us"`
	MaxTickUS    int64   `csv:"max_tick_us"`
	TicksPerSec  float64 `csv:"ticks_per_sec"`
	FPS          float64 `csv:"fps"`
	JitterUS     int64   `csv:"jitter_us"`
	PhysicsPct   float64 `csv:"physics_pct"`
	RenderPct    float64 `csv:"render_pct"`
	TelemetryPct float64 `csv:"telemetry_pct"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV(windowEnd int64) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:    windowEnd,
		AvgTickUS:    s.AvgTickDuration.Microseconds(),
		MinTickUS:    s.MinTickDuration.Microseconds(),
		MaxTickUS:    s.MaxTickDuration.Microseconds(),
		TicksPerSec:  s.TicksPerSecond,
		FPS:          s.FPS,
		JitterUS:     s.FrameJitter.Microseconds(),
		PhysicsPct:   s.PhasePct[PhasePhysics],
		RenderPct:    s.PhasePct[PhaseRender],
		TelemetryPct: s.PhasePct[PhaseTelemetry],
	}
}
