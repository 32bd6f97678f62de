package game

import "github.com/pthm-cable/galaxies/renderer"

// FrameHandle identifies a requested frame so it can be cancelled.
type FrameHandle uint64

// Host is the environment the animation is mounted into. It supplies the
// drawing surface, viewport size, scroll offset and frame scheduling.
type Host interface {
	// Surface returns the drawing surface, or false if none is available.
	Surface() (renderer.Canvas, bool)
	Viewport() (width, height float64)
	ScrollOffset() float64

	// OnResize and OnScroll register listeners and return their removers.
	OnResize(fn func(width, height float64)) (remove func())
	OnScroll(fn func(offset float64)) (remove func())

	// RequestFrame schedules fn to run once on the next frame.
	RequestFrame(fn func()) FrameHandle
	CancelFrame(h FrameHandle)
}
