package renderer

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"
)

// RaylibCanvas draws into a persistent render texture that is composited over
// the page gradient by Present.
type RaylibCanvas struct {
	target   rl.RenderTexture2D
	width    int32
	height   int32
	gradient []color.RGBA

	initialized bool
}

// NewRaylibCanvas creates a canvas of the given size.
// The render texture is created lazily, after the raylib window exists.
func NewRaylibCanvas(width, height int32, gradient []color.RGBA) *RaylibCanvas {
	return &RaylibCanvas{
		width:    width,
		height:   height,
		gradient: gradient,
	}
}

// Init creates the render texture (must be called after raylib window is created).
func (c *RaylibCanvas) Init() {
	if c.initialized {
		return
	}
	c.target = rl.LoadRenderTexture(max(c.width, 1), max(c.height, 1))

	// Start fully transparent so the gradient shows through
	rl.BeginTextureMode(c.target)
	rl.ClearBackground(rl.Color{})
	rl.EndTextureMode()

	c.initialized = true
}

// Resize recreates the render texture. Accumulated trails are dropped.
func (c *RaylibCanvas) Resize(width, height int32) {
	if width == c.width && height == c.height {
		return
	}
	c.Unload()
	c.width = width
	c.height = height
	c.Init()
}

func (c *RaylibCanvas) BeginFrame() {
	if !c.initialized {
		c.Init()
	}
	rl.BeginTextureMode(c.target)
}

func (c *RaylibCanvas) EndFrame() {
	rl.EndTextureMode()
}

func (c *RaylibCanvas) Size() (float64, float64) {
	return float64(c.width), float64(c.height)
}

func (c *RaylibCanvas) Wash(col color.RGBA) {
	rl.DrawRectangle(0, 0, c.width, c.height, toRL(col))
}

func (c *RaylibCanvas) Line(from, to r2.Vec, width float64, col color.RGBA) {
	rl.DrawLineEx(vec2(from), vec2(to), float32(width), toRL(col))
}

func (c *RaylibCanvas) Disc(center r2.Vec, radius float64, col color.RGBA) {
	rl.DrawCircleV(vec2(center), float32(radius), toRL(col))
}

func (c *RaylibCanvas) Glow(center r2.Vec, radius float64, col color.RGBA) {
	outer := col
	outer.A = 0

	rl.BeginBlendMode(rl.BlendAdditive)
	rl.DrawCircleGradient(int32(center.X), int32(center.Y), float32(radius), toRL(col), toRL(outer))
	rl.EndBlendMode()
}

// Present draws the page gradient and the canvas texture to the screen.
// Call between rl.BeginDrawing and rl.EndDrawing.
func (c *RaylibCanvas) Present() {
	c.drawGradient()

	if !c.initialized {
		return
	}
	// Render textures are stored upside down
	src := rl.Rectangle{
		X:      0,
		Y:      0,
		Width:  float32(c.width),
		Height: -float32(c.height),
	}
	rl.DrawTextureRec(c.target.Texture, src, rl.Vector2{}, rl.White)
}

// drawGradient fills the screen top to bottom through the gradient stops.
func (c *RaylibCanvas) drawGradient() {
	switch len(c.gradient) {
	case 0:
		rl.ClearBackground(rl.Black)
		return
	case 1:
		rl.ClearBackground(toRL(c.gradient[0]))
		return
	}

	bands := int32(len(c.gradient) - 1)
	bandHeight := c.height / bands
	for i := int32(0); i < bands; i++ {
		y := i * bandHeight
		h := bandHeight
		if i == bands-1 {
			h = c.height - y
		}
		rl.DrawRectangleGradientV(0, y, c.width, h, toRL(c.gradient[i]), toRL(c.gradient[i+1]))
	}
}

// Unload releases GPU resources.
func (c *RaylibCanvas) Unload() {
	if c.initialized {
		rl.UnloadRenderTexture(c.target)
		c.initialized = false
	}
}

func vec2(v r2.Vec) rl.Vector2 {
	return rl.Vector2{X: float32(v.X), Y: float32(v.Y)}
}

func toRL(c color.RGBA) rl.Color {
	return rl.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}
