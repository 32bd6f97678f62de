package game

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/galaxies/config"
	"github.com/pthm-cable/galaxies/renderer"
)

// RaylibHost hosts the animation in a raylib window. The mouse wheel scrolls
// a virtual page several viewport heights long, standing in for the page the
// animation sits behind.
type RaylibHost struct {
	cfg    *config.Config
	canvas *renderer.RaylibCanvas

	width, height float64
	scroll        float64

	nextID    uint64
	resizeFns map[uint64]func(w, h float64)
	scrollFns map[uint64]func(offset float64)

	pending   func()
	pendingID FrameHandle

	overlay func()
}

// NewRaylibHost creates a host for the current window
// (must be called after raylib window is created).
func NewRaylibHost(cfg *config.Config) *RaylibHost {
	w, h := rl.GetScreenWidth(), rl.GetScreenHeight()
	canvas := renderer.NewRaylibCanvas(int32(w), int32(h), cfg.Derived.Gradient)
	canvas.Init()

	return &RaylibHost{
		cfg:       cfg,
		canvas:    canvas,
		width:     float64(w),
		height:    float64(h),
		resizeFns: make(map[uint64]func(w, h float64)),
		scrollFns: make(map[uint64]func(offset float64)),
	}
}

func (h *RaylibHost) Surface() (renderer.Canvas, bool) {
	return h.canvas, h.canvas != nil
}

func (h *RaylibHost) Viewport() (float64, float64) {
	return h.width, h.height
}

func (h *RaylibHost) ScrollOffset() float64 {
	return h.scroll
}

func (h *RaylibHost) OnResize(fn func(w, h float64)) func() {
	h.nextID++
	id := h.nextID
	h.resizeFns[id] = fn
	return func() { delete(h.resizeFns, id) }
}

func (h *RaylibHost) OnScroll(fn func(offset float64)) func() {
	h.nextID++
	id := h.nextID
	h.scrollFns[id] = fn
	return func() { delete(h.scrollFns, id) }
}

// RequestFrame schedules fn for the next Pump. A later request replaces
// an earlier one that has not run yet.
func (h *RaylibHost) RequestFrame(fn func()) FrameHandle {
	h.nextID++
	h.pendingID = FrameHandle(h.nextID)
	h.pending = fn
	return h.pendingID
}

func (h *RaylibHost) CancelFrame(handle FrameHandle) {
	if handle == h.pendingID {
		h.pending = nil
	}
}

// SetOverlay sets a function drawn on top of the animation every frame.
func (h *RaylibHost) SetOverlay(fn func()) {
	h.overlay = fn
}

// SetScroll moves the virtual page and notifies scroll listeners.
// The offset is clamped to the page length.
func (h *RaylibHost) SetScroll(offset float64) {
	offset = math.Max(0, math.Min(offset, h.MaxScroll()))
	if offset == h.scroll {
		return
	}
	h.scroll = offset
	for _, fn := range h.scrollFns {
		fn(offset)
	}
}

// Pump handles window events, runs the pending frame and presents it.
func (h *RaylibHost) Pump() {
	if rl.IsWindowResized() {
		w, ht := rl.GetScreenWidth(), rl.GetScreenHeight()
		h.width, h.height = float64(w), float64(ht)
		h.canvas.Resize(int32(w), int32(ht))
		for _, fn := range h.resizeFns {
			fn(h.width, h.height)
		}
		// Page length follows the viewport
		h.SetScroll(h.scroll)
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		h.SetScroll(h.scroll - float64(wheel)*h.cfg.Scroll.WheelStep)
	}

	if fn := h.pending; fn != nil {
		h.pending = nil
		fn()
	}

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)
	h.canvas.Present()
	if h.overlay != nil {
		h.overlay()
	}
	rl.EndDrawing()
}

// MaxScroll returns the length of the virtual page beyond the viewport.
func (h *RaylibHost) MaxScroll() float64 {
	return math.Max(0, h.height*(h.cfg.Scroll.PageHeights-1))
}

// Unload frees resources.
func (h *RaylibHost) Unload() {
	h.canvas.Unload()
}
