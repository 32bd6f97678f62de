package renderer

import (
	"image/color"
	"math"
	"testing"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/galaxies/components"
	"github.com/pthm-cable/galaxies/config"
)

type line struct {
	from, to r2.Vec
	width    float64
	color    color.RGBA
}

type disc struct {
	center r2.Vec
	radius float64
	color  color.RGBA
}

// recorder is a Canvas that keeps every call for inspection.
type recorder struct {
	washes []color.RGBA
	lines  []line
	discs  []disc
	glows  []disc
	frames int
}

func (r *recorder) BeginFrame() { r.frames++ }
func (r *recorder) EndFrame() {}
func (r *recorder) Size() (float64, float64) { return 800, 600 }
func (r *recorder) Wash(c color.RGBA) { r.washes = append(r.washes, c) }
func (r *recorder) Line(a, b r2.Vec, w float64, c color.RGBA) {
	r.lines = append(r.lines, line{a, b, w, c})
}
func (r *recorder) Disc(p r2.Vec, rad float64, c color.RGBA) {
	r.discs = append(r.discs, disc{p, rad, c})
}
func (r *recorder) Glow(p r2.Vec, rad float64, c color.RGBA) {
	r.glows = append(r.glows, disc{p, rad, c})
}

func spawnStar(w *ecs.World, pos r2.Vec, app components.Appearance, member components.Membership, trail []r2.Vec) {
	mapper := ecs.NewMap5[components.Position, components.Velocity, components.Appearance, components.Membership, components.Trail](w)
	p := components.Position{X: pos.X, Y: pos.Y}
	v := components.Velocity{}
	tr := components.NewTrail(4)
	for _, pt := range trail {
		tr.Push(pt)
	}
	mapper.NewEntity(&p, &v, &app, &member, &tr)
}

func TestDrawWashAlphaFollowsScroll(t *testing.T) {
	cfg := config.Default()
	world := ecs.NewWorld()
	r := NewStarRenderer(world, cfg)

	tests := []struct {
		scroll float64
		want   uint8
	}{
		{0, 13},  // 0.05
		{1, 26},  // 0.10
		{5, 26},  // clamped
		{-1, 13}, // clamped
	}
	for _, tc := range tests {
		rec := &recorder{}
		r.Draw(rec, tc.scroll)
		if len(rec.washes) != 1 {
			t.Fatalf("expected one wash per frame, got %d", len(rec.washes))
		}
		got := rec.washes[0]
		if got.A != tc.want {
			t.Errorf("scroll %v: expected wash alpha %d, got %d", tc.scroll, tc.want, got.A)
		}
		if got.R != cfg.Derived.Background.R || got.G != cfg.Derived.Background.G || got.B != cfg.Derived.Background.B {
			t.Errorf("expected background color in wash, got %+v", got)
		}
	}
}

func TestDrawTrailTapers(t *testing.T) {
	cfg := config.Default()
	world := ecs.NewWorld()
	trail := []r2.Vec{{X: 100, Y: 100}, {X: 110, Y: 100}, {X: 120, Y: 100}, {X: 130, Y: 100}}
	spawnStar(world, trail[3],
		components.Appearance{Size: 2, BaseOpacity: 1, Brightness: 0.2},
		components.Membership{Galaxy: components.GalaxyOne, Arm: 0},
		trail)

	r := NewStarRenderer(world, cfg)
	rec := &recorder{}
	stats := r.Draw(rec, 0)

	// The newest point coincides with the star, so only three segments are drawn
	if len(rec.lines) != 3 || stats.Segments != 3 {
		t.Fatalf("expected 3 trail segments, got %d", len(rec.lines))
	}
	for i := 1; i < len(rec.lines); i++ {
		prev, cur := rec.lines[i-1], rec.lines[i]
		if cur.width <= prev.width {
			t.Errorf("segment %d: expected width to grow toward the star, %f then %f", i, prev.width, cur.width)
		}
		if cur.color.A <= prev.color.A {
			t.Errorf("segment %d: expected alpha to grow toward the star, %d then %d", i, prev.color.A, cur.color.A)
		}
	}
	if rec.lines[0].from != trail[0] || rec.lines[2].to != trail[3] {
		t.Errorf("expected segments to run oldest to newest, got %v", rec.lines)
	}
	if want := 2 * 0.25; math.Abs(rec.lines[0].width-want) > 1e-9 {
		t.Errorf("expected oldest segment width %f, got %f", want, rec.lines[0].width)
	}
	if len(rec.glows) != 1 || len(rec.discs) != 1 {
		t.Fatalf("expected one glow and one disc, got %d and %d", len(rec.glows), len(rec.discs))
	}
	if rec.glows[0].radius != 2*cfg.Render.GlowScale {
		t.Errorf("expected glow radius %f, got %f", 2*cfg.Render.GlowScale, rec.glows[0].radius)
	}
	if rec.glows[0].color.A >= rec.discs[0].color.A {
		t.Errorf("expected glow fainter than the disc")
	}
}

func TestDrawOpacityFollowsScroll(t *testing.T) {
	cfg := config.Default()
	world := ecs.NewWorld()
	spawnStar(world, r2.Vec{X: 50, Y: 50},
		components.Appearance{Size: 1, BaseOpacity: 0.8, Brightness: 0.1},
		components.Membership{Galaxy: components.GalaxyTwo, Arm: 1},
		nil)

	r := NewStarRenderer(world, cfg)
	top := r.Draw(&recorder{}, 0)
	bottom := r.Draw(&recorder{}, 1)

	if math.Abs(top.MeanAlpha-0.8) > 1e-9 {
		t.Errorf("expected full opacity at the top, got %f", top.MeanAlpha)
	}
	want := 0.8 * cfg.Physics.OpacityFloor
	if math.Abs(bottom.MeanAlpha-want) > 1e-9 {
		t.Errorf("expected floored opacity %f when scrolled, got %f", want, bottom.MeanAlpha)
	}
}

func TestDrawColorFixedPerStar(t *testing.T) {
	cfg := config.Default()
	world := ecs.NewWorld()
	spawnStar(world, r2.Vec{X: 50, Y: 50},
		components.Appearance{Size: 1, BaseOpacity: 1, Brightness: 0.4},
		components.Membership{Galaxy: components.GalaxyTwo, Arm: 1},
		nil)

	r := NewStarRenderer(world, cfg)
	var colors []color.RGBA
	for _, s := range []float64{0, 0.3, 0.9} {
		rec := &recorder{}
		r.Draw(rec, s)
		c := rec.discs[0].color
		c.A = 0
		colors = append(colors, c)
	}
	for i := 1; i < len(colors); i++ {
		if colors[i] != colors[0] {
			t.Errorf("expected a fixed star color, got %+v then %+v", colors[0], colors[i])
		}
	}
	want := cfg.Derived.Palettes[1][1]
	if colors[0].R != want.R || colors[0].G != want.G || colors[0].B != want.B {
		t.Errorf("expected galaxy two arm one color %+v, got %+v", want, colors[0])
	}
}

func TestPaletteIndex(t *testing.T) {
	tests := []struct {
		name       string
		arm        int8
		brightness float64
		want       int
	}{
		{"arm zero", 0, 0.2, 0},
		{"arm one", 1, 0.2, 1},
		{"highlight", 1, 0.9, 2},
		{"dim bulge", components.BulgeArm, 0.1, 0},
		{"bright bulge", components.BulgeArm, 0.6, 1},
		{"bulge highlight", components.BulgeArm, 0.85, 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := PaletteIndex(
				components.Membership{Galaxy: components.GalaxyOne, Arm: tc.arm},
				components.Appearance{Brightness: tc.brightness},
				0.85, 3)
			if got != tc.want {
				t.Errorf("expected palette index %d, got %d", tc.want, got)
			}
		})
	}
}
