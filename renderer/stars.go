package renderer

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/galaxies/components"
	"github.com/pthm-cable/galaxies/config"
	"github.com/pthm-cable/galaxies/systems"
)

// glowWhiten is how far glow colors are blended toward white.
const glowWhiten = 0.3

// FrameStats summarizes what one Draw call put on the canvas.
type FrameStats struct {
	Stars     int
	Segments  int
	MeanAlpha float64 // mean star disc alpha in [0, 1]
}

// StarRenderer draws stars with their glow and tapered trails.
type StarRenderer struct {
	filter *ecs.Filter4[components.Position, components.Appearance, components.Membership, components.Trail]
	cfg    *config.Config

	glow [2][]color.RGBA
}

// NewStarRenderer creates a renderer for the stars of w.
func NewStarRenderer(w *ecs.World, cfg *config.Config) *StarRenderer {
	r := &StarRenderer{
		filter: ecs.NewFilter4[components.Position, components.Appearance, components.Membership, components.Trail](w),
		cfg:    cfg,
	}

	white := colorful.Color{R: 1, G: 1, B: 1}
	for g, palette := range cfg.Derived.Palettes {
		r.glow[g] = make([]color.RGBA, len(palette))
		for i, c := range palette {
			base, _ := colorful.MakeColor(c)
			cr, cg, cb := base.BlendLab(white, glowWhiten).Clamped().RGB255()
			r.glow[g][i] = color.RGBA{R: cr, G: cg, B: cb, A: 255}
		}
	}
	return r
}

// Draw renders one frame at scroll progress s: the translucent wash first,
// then every star's trail, glow and disc.
func (r *StarRenderer) Draw(c Canvas, s float64) FrameStats {
	rc := &r.cfg.Render
	s = clamp01(s)
	opacityMul := systems.OpacityMultiplier(s, &r.cfg.Physics)

	wash := r.cfg.Derived.Background
	wash.A = alpha8(rc.WashBase + s*rc.WashScroll)
	c.Wash(wash)

	var stats FrameStats
	alphaSum := 0.0

	query := r.filter.Query()
	for query.Next() {
		pos, app, member, trail := query.Get()

		home := member.Home()
		idx := PaletteIndex(*member, *app, rc.HighlightBrightness, len(r.cfg.Derived.Palettes[home]))
		col := r.cfg.Derived.Palettes[home][idx]
		alpha := app.BaseOpacity * opacityMul
		p := pos.Vec()

		// Trail segments, oldest first, thinning and fading toward the tail
		n := trail.Len()
		for k := 0; k < n; k++ {
			from := trail.At(k)
			to := p
			if k+1 < n {
				to = trail.At(k + 1)
			}
			if from == to {
				continue
			}
			f := float64(k+1) / float64(n)
			seg := col
			seg.A = alpha8(alpha * f * rc.TrailAlpha)
			c.Line(from, to, app.Size*f, seg)
			stats.Segments++
		}

		glow := r.glow[home][idx]
		glow.A = alpha8(alpha * rc.GlowAlpha)
		c.Glow(p, app.Size*rc.GlowScale, glow)

		disc := col
		disc.A = alpha8(alpha)
		c.Disc(p, app.Size, disc)

		stats.Stars++
		alphaSum += alpha
	}

	if stats.Stars > 0 {
		stats.MeanAlpha = alphaSum / float64(stats.Stars)
	}
	return stats
}

// PaletteIndex picks a star's fixed color from a palette of n entries whose
// last entry is the highlight. Arm stars use their arm's entry, bulge stars
// split between the first two by brightness.
func PaletteIndex(m components.Membership, a components.Appearance, highlight float64, n int) int {
	if n <= 1 {
		return 0
	}
	last := n - 1
	if a.Brightness >= highlight {
		return last
	}
	if m.Arm == components.BulgeArm {
		if a.Brightness >= 0.5 {
			return 1 % last
		}
		return 0
	}
	return int(m.Arm) % last
}

func alpha8(a float64) uint8 {
	return uint8(math.Round(clamp01(a) * 255))
}

func clamp01(x float64) float64 {
	if math.IsNaN(x) || x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
