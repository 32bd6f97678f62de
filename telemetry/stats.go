package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a window of ticks.
type WindowStats struct {
	WindowStartTick int64 `csv:"-"`
	WindowEndTick   int64 `csv:"window_end"`
	Generation      int   `csv:"generation"`
	Stars           int   `csv:"stars"`

	// Scroll modulation
	ScrollMean float64 `csv:"scroll_mean"`
	SpeedMul   float64 `csv:"speed_mul"`   // at window end
	OpacityMul float64 `csv:"opacity_mul"` // at window end

	// Galaxy encounter
	SeparationMean float64 `csv:"separation_mean"`
	SeparationMin  float64 `csv:"separation_min"`
	SeparationMax  float64 `csv:"separation_max"`

	// Per-tick mean star displacement, distributed over the window
	DisplacementMean float64 `csv:"displacement_mean"`
	DisplacementStd  float64 `csv:"displacement_std"`
	DisplacementP50  float64 `csv:"displacement_p50"`
	DisplacementP90  float64 `csv:"displacement_p90"`

	AlphaMean    float64 `csv:"alpha_mean"`
	SegmentsMean float64 `csv:"segments_mean"`
	Wrapped      int     `csv:"wrapped"`
}

// Summary describes the distribution of a sample.
type Summary struct {
	Mean, Std, Min, Max, P50, P90 float64
}

// Summarize computes mean, standard deviation, extremes and quantiles.
// Returns the zero Summary for an empty sample.
func Summarize(values []float64) Summary {
	n := len(values)
	if n == 0 {
		return Summary{}
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	if n == 1 {
		v := sorted[0]
		return Summary{Mean: v, Min: v, Max: v, P50: v, P90: v}
	}

	var s Summary
	s.Mean, s.Std = stat.MeanStdDev(sorted, nil)
	s.Min = sorted[0]
	s.Max = sorted[n-1]
	s.P50 = stat.Quantile(0.5, stat.LinInterp, sorted, nil)
	s.P90 = stat.Quantile(0.9, stat.LinInterp, sorted, nil)
	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("window_start", s.WindowStartTick),
		slog.Int64("window_end", s.WindowEndTick),
		slog.Int("generation", s.Generation),
		slog.Int("stars", s.Stars),
		slog.Float64("scroll_mean", s.ScrollMean),
		slog.Float64("speed_mul", s.SpeedMul),
		slog.Float64("opacity_mul", s.OpacityMul),
		slog.Float64("separation_mean", s.SeparationMean),
		slog.Float64("separation_min", s.SeparationMin),
		slog.Float64("separation_max", s.SeparationMax),
		slog.Float64("displacement_mean", s.DisplacementMean),
		slog.Float64("displacement_p90", s.DisplacementP90),
		slog.Float64("alpha_mean", s.AlphaMean),
		slog.Int("wrapped", s.Wrapped),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
