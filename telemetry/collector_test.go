package telemetry

import (
	"math"
	"testing"
)

func TestCollectorWindow(t *testing.T) {
	c := NewCollector(10)

	for tick := int64(1); tick <= 10; tick++ {
		c.Record(FrameSample{
			Tick:             tick,
			Generation:       1,
			Stars:            500,
			Scroll:           0.5,
			SpeedMul:         0.6,
			OpacityMul:       0.65,
			Separation:       float64(1000 - tick),
			MeanDisplacement: 1,
			MeanAlpha:        0.4,
			Segments:         1500,
			Wrapped:          1,
		})
	}
	if c.ShouldFlush(9) {
		t.Fatal("flush requested before the window is full")
	}
	if !c.ShouldFlush(10) {
		t.Fatal("expected flush after a full window")
	}

	stats := c.Flush(10)
	if stats.WindowStartTick != 0 || stats.WindowEndTick != 10 {
		t.Errorf("unexpected window [%d, %d]", stats.WindowStartTick, stats.WindowEndTick)
	}
	if stats.Stars != 500 || stats.Generation != 1 {
		t.Errorf("expected end-of-window counts, got stars=%d generation=%d", stats.Stars, stats.Generation)
	}
	if stats.SeparationMin != 990 || stats.SeparationMax != 999 {
		t.Errorf("unexpected separation range [%v, %v]", stats.SeparationMin, stats.SeparationMax)
	}
	if math.Abs(stats.ScrollMean-0.5) > 1e-9 || math.Abs(stats.AlphaMean-0.4) > 1e-9 {
		t.Errorf("unexpected means: scroll %v alpha %v", stats.ScrollMean, stats.AlphaMean)
	}
	if stats.DisplacementMean != 1 || stats.DisplacementStd != 0 {
		t.Errorf("unexpected displacement mean %v std %v", stats.DisplacementMean, stats.DisplacementStd)
	}
	if stats.Wrapped != 10 {
		t.Errorf("expected 10 wrapped stars, got %d", stats.Wrapped)
	}
	if stats.SegmentsMean != 1500 {
		t.Errorf("expected 1500 segments per frame, got %v", stats.SegmentsMean)
	}
}

func TestCollectorResetsAfterFlush(t *testing.T) {
	c := NewCollector(5)
	for tick := int64(1); tick <= 5; tick++ {
		c.Record(FrameSample{Tick: tick, Separation: 100, Wrapped: 2})
	}
	c.Flush(5)

	if c.ShouldFlush(6) {
		t.Error("expected new window to start at the flush tick")
	}
	c.Record(FrameSample{Tick: 6, Separation: 50})
	stats := c.Flush(10)

	if stats.WindowStartTick != 5 {
		t.Errorf("expected window to start at tick 5, got %d", stats.WindowStartTick)
	}
	if stats.Wrapped != 0 {
		t.Errorf("expected wrapped counter reset, got %d", stats.Wrapped)
	}
	if stats.SeparationMax != 50 {
		t.Errorf("expected previous window's separations dropped, got max %v", stats.SeparationMax)
	}
}

func TestCollectorDropsNonFinite(t *testing.T) {
	c := NewCollector(3)
	c.Record(FrameSample{Separation: math.NaN(), MeanDisplacement: math.Inf(1)})
	c.Record(FrameSample{Separation: 10, MeanDisplacement: 2})

	stats := c.Flush(3)
	if stats.SeparationMean != 10 || stats.DisplacementMean != 2 {
		t.Errorf("expected non-finite samples ignored, got %+v", stats)
	}
}

func TestNewCollectorMinimumWindow(t *testing.T) {
	if got := NewCollector(0).WindowTicks(); got != 1 {
		t.Errorf("expected window of 1 tick, got %d", got)
	}
}
