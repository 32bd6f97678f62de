package telemetry

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// FrameSample is what one animation frame contributes to the window.
type FrameSample struct {
	Tick       int64
	Generation int
	Stars      int

	Scroll     float64
	SpeedMul   float64
	OpacityMul float64
	Separation float64

	MeanDisplacement float64
	MeanAlpha        float64
	Segments         int
	Wrapped          int
}

// Collector accumulates frame samples within tick windows and produces WindowStats.
type Collector struct {
	windowTicks     int64
	windowStartTick int64

	last         FrameSample
	count        int
	scrollSum    float64
	alphaSum     float64
	segmentsSum  int
	wrapped      int
	separations  []float64
	displacement []float64
}

// NewCollector creates a collector flushing every windowTicks ticks.
func NewCollector(windowTicks int) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{
		windowTicks:  int64(windowTicks),
		separations:  make([]float64, 0, windowTicks),
		displacement: make([]float64, 0, windowTicks),
	}
}

// Record adds one frame to the current window. Non-finite values are dropped
// from the distributions.
func (c *Collector) Record(s FrameSample) {
	c.last = s
	c.count++
	c.scrollSum += s.Scroll
	c.alphaSum += s.MeanAlpha
	c.segmentsSum += s.Segments
	c.wrapped += s.Wrapped

	if finite(s.Separation) {
		c.separations = append(c.separations, s.Separation)
	}
	if finite(s.MeanDisplacement) {
		c.displacement = append(c.displacement, s.MeanDisplacement)
	}
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int64) bool {
	return currentTick-c.windowStartTick >= c.windowTicks
}

// Flush produces a WindowStats and resets the window.
func (c *Collector) Flush(currentTick int64) WindowStats {
	sep := Summarize(c.separations)
	disp := Summarize(c.displacement)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		Generation:      c.last.Generation,
		Stars:           c.last.Stars,
		SpeedMul:        c.last.SpeedMul,
		OpacityMul:      c.last.OpacityMul,

		SeparationMean: sep.Mean,
		SeparationMin:  sep.Min,
		SeparationMax:  sep.Max,

		DisplacementMean: disp.Mean,
		DisplacementStd:  disp.Std,
		DisplacementP50:  disp.P50,
		DisplacementP90:  disp.P90,

		Wrapped: c.wrapped,
	}
	if c.count > 0 {
		stats.ScrollMean = c.scrollSum / float64(c.count)
		stats.AlphaMean = c.alphaSum / float64(c.count)
		stats.SegmentsMean = float64(c.segmentsSum) / float64(c.count)
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.count = 0
	c.scrollSum = 0
	c.alphaSum = 0
	c.segmentsSum = 0
	c.wrapped = 0
	c.separations = c.separations[:0]
	c.displacement = c.displacement[:0]

	return stats
}

// WindowTicks returns the number of ticks per window.
func (c *Collector) WindowTicks() int64 {
	return c.windowTicks
}

// Mean returns the arithmetic mean of values, 0 when empty.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return stat.Mean(values, nil)
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
