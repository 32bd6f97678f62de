// Package renderer draws the star field onto a Canvas.
package renderer

import (
	"image/color"

	"gonum.org/v1/gonum/spatial/r2"
)

// Canvas is a persistent drawing surface. Nothing is cleared between frames:
// fading comes from the translucent wash drawn at the start of every frame.
type Canvas interface {
	BeginFrame()
	EndFrame()
	Size() (w, h float64)

	// Wash covers the whole surface with c, blending by its alpha.
	Wash(c color.RGBA)
	Line(from, to r2.Vec, width float64, c color.RGBA)
	Disc(center r2.Vec, radius float64, c color.RGBA)
	// Glow draws a soft disc fading from c at the center to transparent at radius.
	Glow(center r2.Vec, radius float64, c color.RGBA)
}

// NopCanvas discards all drawing. Used by headless runs.
type NopCanvas struct {
	Width, Height float64
}

func (NopCanvas) BeginFrame() {}
func (NopCanvas) EndFrame() {}
func (c NopCanvas) Size() (float64, float64) { return c.Width, c.Height }
func (NopCanvas) Wash(color.RGBA) {}
func (NopCanvas) Line(_, _ r2.Vec, _ float64, _ color.RGBA) {}
func (NopCanvas) Disc(r2.Vec, float64, color.RGBA) {}
func (NopCanvas) Glow(r2.Vec, float64, color.RGBA) {}
