package telemetry

import (
	"testing"
	"time"
)

func TestPerfCollector_BasicTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartTick()
		pc.StartPhase(PhasePhysics)
		time.Sleep(100 * time.Microsecond)
		pc.StartPhase(PhaseRender)
		time.Sleep(200 * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()

	if stats.AvgTickDuration <= 0 {
		t.Error("expected positive average tick duration")
	}
	if stats.PhaseAvg[PhasePhysics] <= 0 {
		t.Error("expected physics phase to be tracked")
	}
	if stats.PhaseAvg[PhaseRender] <= 0 {
		t.Error("expected render phase to be tracked")
	}
	if stats.PhaseAvg[PhaseTelemetry] != 0 {
		t.Errorf("expected no telemetry time, got %v", stats.PhaseAvg[PhaseTelemetry])
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc := NewPerfCollector(5)

	// Overfill the window so the ring wraps
	for i := 0; i < 10; i++ {
		pc.StartTick()
		pc.StartPhase(PhasePhysics)
		time.Sleep(10 * time.Microsecond)
		pc.EndTick()
	}

	stats := pc.Stats()

	if stats.AvgTickDuration <= 0 {
		t.Error("expected positive average tick duration after window filled")
	}
	if stats.TicksPerSecond <= 0 {
		t.Error("expected positive ticks per second")
	}
	if stats.MinTickDuration > stats.MaxTickDuration {
		t.Errorf("expected min %v <= max %v", stats.MinTickDuration, stats.MaxTickDuration)
	}
}

func TestPerfCollector_PhasePercentages(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartTick()
		pc.StartPhase(PhasePhysics)
		time.Sleep(10 * time.Microsecond)
		pc.StartPhase(PhaseRender)
		time.Sleep(2 * time.Millisecond)
		pc.EndTick()
	}

	stats := pc.Stats()

	fastPct := stats.PhasePct[PhasePhysics]
	slowPct := stats.PhasePct[PhaseRender]
	if slowPct <= fastPct {
		t.Errorf("expected render (%v%%) > physics (%v%%)", slowPct, fastPct)
	}
}

func TestPerfCollector_EmptyStats(t *testing.T) {
	pc := NewPerfCollector(10)

	stats := pc.Stats()

	if stats.AvgTickDuration != 0 || stats.FPS != 0 {
		t.Errorf("expected zero stats for empty collector, got %+v", stats)
	}
}

func TestPerfCollector_FrameTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	// A single frame has no predecessor to measure against
	pc.StartTick()
	pc.EndTick()
	if fps := pc.Stats().FPS; fps != 0 {
		t.Errorf("expected no FPS from one frame, got %v", fps)
	}

	for i := 0; i < 3; i++ {
		time.Sleep(16 * time.Millisecond) // ~60fps frame time
		pc.StartTick()
		pc.EndTick()
	}

	stats := pc.Stats()

	if stats.FrameDuration < 15*time.Millisecond {
		t.Errorf("expected frame duration >= 15ms, got %v", stats.FrameDuration)
	}
	if stats.FPS <= 0 {
		t.Error("expected positive FPS")
	}
	// Sleeping 16ms caps the rate just above 60 FPS
	if stats.FPS > 70 {
		t.Errorf("expected at most ~60 FPS with 16ms frame time, got %v", stats.FPS)
	}
}

func TestPhaseString(t *testing.T) {
	tests := []struct {
		phase Phase
		want  string
	}{
		{PhasePhysics, "physics"},
		{PhaseRender, "render"},
		{PhaseTelemetry, "telemetry"},
		{Phase(7), "Phase(7)"},
	}
	for _, tc := range tests {
		if got := tc.phase.String(); got != tc.want {
			t.Errorf("expected %q, got %q", tc.want, got)
		}
	}
}

func TestPerfStatsToCSV(t *testing.T) {
	var stats PerfStats
	stats.AvgTickDuration = 2 * time.Millisecond
	stats.FrameJitter = 500 * time.Microsecond
	stats.PhasePct[PhasePhysics] = 60
	stats.PhasePct[PhaseRender] = 35
	stats.PhasePct[PhaseTelemetry] = 5

	row := stats.ToCSV(240)
	if row.WindowEnd != 240 || row.AvgTickUS != 2000 || row.JitterUS != 500 {
		t.Errorf("unexpected csv row %+v", row)
	}
	if row.PhysicsPct != 60 || row.RenderPct != 35 || row.TelemetryPct != 5 {
		t.Errorf("expected phase shares copied, got %+v", row)
	}
}
