package systems

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
)

func TestDirection(t *testing.T) {
	tests := []struct {
		name     string
		a, b     r2.Vec
		wantDir  r2.Vec
		wantDist float64
	}{
		{"right", r2.Vec{}, r2.Vec{X: 5}, r2.Vec{X: 1}, 5},
		{"diagonal", r2.Vec{X: 1, Y: 1}, r2.Vec{X: 4, Y: 5}, r2.Vec{X: 0.6, Y: 0.8}, 5},
		{"coincident", r2.Vec{X: 2, Y: 2}, r2.Vec{X: 2, Y: 2}, r2.Vec{}, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir, dist := direction(tc.a, tc.b)
			if math.Abs(dist-tc.wantDist) > 1e-12 {
				t.Errorf("expected distance %v, got %v", tc.wantDist, dist)
			}
			if r2.Norm(r2.Sub(dir, tc.wantDir)) > 1e-12 {
				t.Errorf("expected direction %v, got %v", tc.wantDir, dir)
			}
		})
	}
}

func TestClampSpeed(t *testing.T) {
	tests := []struct {
		name string
		v    r2.Vec
		max  float64
		want r2.Vec
	}{
		{"under limit", r2.Vec{X: 1, Y: 1}, 4, r2.Vec{X: 1, Y: 1}},
		{"over limit", r2.Vec{X: 6, Y: 8}, 5, r2.Vec{X: 3, Y: 4}},
		{"no limit", r2.Vec{X: 60, Y: 80}, 0, r2.Vec{X: 60, Y: 80}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := clampSpeed(tc.v, tc.max)
			if r2.Norm(r2.Sub(got, tc.want)) > 1e-12 {
				t.Errorf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestSpanAndMod(t *testing.T) {
	if lo, hi := span(4, 100); lo != 4 || hi != 96 {
		t.Errorf("expected [4, 96], got [%v, %v]", lo, hi)
	}
	if lo, hi := span(4, 6); lo != 3 || hi != 3 {
		t.Errorf("expected collapsed span at 3, got [%v, %v]", lo, hi)
	}
	if got := mod(-1, 10); got != 9 {
		t.Errorf("expected mod(-1, 10) = 9, got %v", got)
	}
}
