package game

import (
	"sort"

	"github.com/pthm-cable/galaxies/renderer"
)

// ManualHost is an in-memory Host driven explicitly by the caller.
// Headless runs and tests use it to step frames, resize and scroll.
type ManualHost struct {
	canvas        renderer.Canvas
	width, height float64
	scroll        float64

	nextID    uint64
	resizeFns map[uint64]func(w, h float64)
	scrollFns map[uint64]func(offset float64)
	frames    map[FrameHandle]func()
}

// NewManualHost creates a host with the given viewport. A nil canvas
// simulates an environment without a drawing surface.
func NewManualHost(canvas renderer.Canvas, width, height float64) *ManualHost {
	return &ManualHost{
		canvas:    canvas,
		width:     width,
		height:    height,
		resizeFns: make(map[uint64]func(w, h float64)),
		scrollFns: make(map[uint64]func(offset float64)),
		frames:    make(map[FrameHandle]func()),
	}
}

func (h *ManualHost) Surface() (renderer.Canvas, bool) {
	return h.canvas, h.canvas != nil
}

func (h *ManualHost) Viewport() (float64, float64) {
	return h.width, h.height
}

func (h *ManualHost) ScrollOffset() float64 {
	return h.scroll
}

func (h *ManualHost) OnResize(fn func(w, h float64)) func() {
	id := h.id()
	h.resizeFns[id] = fn
	return func() { delete(h.resizeFns, id) }
}

func (h *ManualHost) OnScroll(fn func(offset float64)) func() {
	id := h.id()
	h.scrollFns[id] = fn
	return func() { delete(h.scrollFns, id) }
}

func (h *ManualHost) RequestFrame(fn func()) FrameHandle {
	handle := FrameHandle(h.id())
	h.frames[handle] = fn
	return handle
}

func (h *ManualHost) CancelFrame(handle FrameHandle) {
	delete(h.frames, handle)
}

func (h *ManualHost) id() uint64 {
	h.nextID++
	return h.nextID
}

// Step runs the frames pending at the time of the call, in request order.
// Frames requested while stepping run on the next Step. Returns the number run.
func (h *ManualHost) Step() int {
	if len(h.frames) == 0 {
		return 0
	}
	handles := make([]FrameHandle, 0, len(h.frames))
	for handle := range h.frames {
		handles = append(handles, handle)
	}
	sort.Slice(handles, func(i, j int) bool { return handles[i] < handles[j] })

	ran := 0
	for _, handle := range handles {
		fn, ok := h.frames[handle]
		if !ok {
			continue
		}
		delete(h.frames, handle)
		fn()
		ran++
	}
	return ran
}

// Run steps up to n frames and returns how many ran. It stops early when no
// frame is pending.
func (h *ManualHost) Run(n int) int {
	total := 0
	for i := 0; i < n; i++ {
		ran := h.Step()
		if ran == 0 {
			break
		}
		total += ran
	}
	return total
}

// Resize changes the viewport and notifies resize listeners.
func (h *ManualHost) Resize(width, height float64) {
	h.width = width
	h.height = height
	for _, fn := range h.resizeFns {
		fn(width, height)
	}
}

// Scroll changes the scroll offset and notifies scroll listeners.
func (h *ManualHost) Scroll(offset float64) {
	h.scroll = offset
	for _, fn := range h.scrollFns {
		fn(offset)
	}
}

// PendingFrames returns the number of requested, not yet run frames.
func (h *ManualHost) PendingFrames() int {
	return len(h.frames)
}

// Listeners returns the number of registered resize and scroll listeners.
func (h *ManualHost) Listeners() int {
	return len(h.resizeFns) + len(h.scrollFns)
}
