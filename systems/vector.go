package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// epsilon guards divisions by distances that collapse to zero.
const epsilon = 1e-6

// direction returns the unit vector from a to b and the distance between them.
// The unit vector is zero when the points coincide.
func direction(a, b r2.Vec) (r2.Vec, float64) {
	d := r2.Sub(b, a)
	dist := r2.Norm(d)
	if dist < epsilon {
		return r2.Vec{}, dist
	}
	return r2.Unit(d), dist
}

// clampSpeed limits the magnitude of v to max. Non-positive max disables the limit.
func clampSpeed(v r2.Vec, max float64) r2.Vec {
	if max <= 0 {
		return v
	}
	speed := r2.Norm(v)
	if speed > max {
		return r2.Scale(max/speed, v)
	}
	return v
}

// clamp restricts x to [lo, hi].
func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// span returns the allowed [lo, hi] range along an axis of the given extent
// with inset kept clear on both sides. Extents too small for the inset
// collapse to their midpoint.
func span(inset, extent float64) (lo, hi float64) {
	if extent <= 2*inset {
		return extent / 2, extent / 2
	}
	return inset, extent - inset
}

// mod returns positive modulo (Go's math.Mod can return negative).
func mod(a, b float64) float64 {
	if b <= 0 {
		return 0
	}
	m := math.Mod(a, b)
	if m < 0 {
		m += b
	}
	return m
}
