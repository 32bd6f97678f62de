package ui

import (
	"fmt"
	"math"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// OverlayData holds what the overlay displays for one frame.
type OverlayData struct {
	Tick       int64
	Generation int
	Stars      int
	FPS        int32
	Paused     bool

	ScrollOffset float64 // virtual page offset in pixels
	MaxScroll    float64
	Progress     float64 // scroll progress s in [0, 1]
	SpeedMul     float64
	OpacityMul   float64
	Separation   float64
	MeanAlpha    float64
}

// OverlayActions reports what the user changed through the overlay.
type OverlayActions struct {
	ScrollChanged bool
	ScrollOffset  float64
	Reseed        bool
	TogglePause   bool
}

// Overlay is a small raygui panel for inspecting the animation: a scroll
// slider standing in for the page, reseed and pause buttons, and live stats.
type Overlay struct {
	theme   Theme
	x, y    int32
	width   int32
	visible bool
}

// NewOverlay creates a hidden overlay panel at the given position.
func NewOverlay(x, y, width int32) *Overlay {
	return &Overlay{
		theme: DefaultTheme(),
		x:     x,
		y:     y,
		width: width,
	}
}

// Toggle switches overlay visibility.
func (o *Overlay) Toggle() bool {
	o.visible = !o.visible
	return o.visible
}

// IsVisible returns whether the overlay is shown.
func (o *Overlay) IsVisible() bool {
	return o.visible
}

// Draw renders the overlay and returns the user's actions.
func (o *Overlay) Draw(data OverlayData) OverlayActions {
	var actions OverlayActions
	if !o.visible {
		rl.DrawText("[Tab] overlay", 10, 10, o.theme.FontSize, rl.Color{R: 200, G: 200, B: 220, A: 120})
		return actions
	}

	th := &o.theme
	inner := o.width - th.Padding*2
	rl.DrawRectangle(o.x, o.y, o.width, o.height(), th.PanelBg)
	rl.DrawRectangleLines(o.x, o.y, o.width, o.height(), th.PanelBorder)

	col := column{theme: th, x: o.x + th.Padding, y: o.y + th.Padding, width: inner}
	col.header("Galaxies")

	// Scroll slider drives the host's virtual page
	col.y += 4
	offset := gui.SliderBar(
		rl.Rectangle{X: float32(col.x + 40), Y: float32(col.y), Width: float32(inner - 90), Height: 16},
		"scroll", fmt.Sprintf("%.0f", data.ScrollOffset),
		float32(data.ScrollOffset), 0, float32(data.MaxScroll),
	)
	if offset != float32(data.ScrollOffset) {
		actions.ScrollChanged = true
		actions.ScrollOffset = float64(offset)
	}
	col.y += 24

	col.bar("progress", data.Progress)
	col.bar("speed", data.SpeedMul)
	col.bar("opacity", data.OpacityMul)
	col.y += 4

	col.header("Simulation")
	col.row("tick", fmt.Sprintf("%d", data.Tick))
	col.row("generation", fmt.Sprintf("%d", data.Generation))
	col.row("stars", fmt.Sprintf("%d", data.Stars))
	col.row("separation", fmt.Sprintf("%.1f", data.Separation))
	col.row("mean alpha", fmt.Sprintf("%.3f", data.MeanAlpha))
	col.row("fps", fmt.Sprintf("%d", data.FPS))
	col.y += th.LineHeight / 2

	buttonWidth := float32(inner-th.Padding) / 2
	if gui.Button(rl.Rectangle{X: float32(col.x), Y: float32(col.y), Width: buttonWidth, Height: 24}, "Reseed") {
		actions.Reseed = true
	}
	if gui.Button(rl.Rectangle{X: float32(col.x) + buttonWidth + float32(th.Padding), Y: float32(col.y), Width: buttonWidth, Height: 24},
		toggleText(data.Paused, "Resume", "Pause")) {
		actions.TogglePause = true
	}

	return actions
}

// height is the panel height for the fixed overlay content: two headers,
// the slider, three bars, six rows and the buttons.
func (o *Overlay) height() int32 {
	th := &o.theme
	return th.Padding*2 + th.LineHeight*2 + 28 + (th.LineHeight+2)*3 + 4 +
		th.LineHeight*6 + th.LineHeight/2 + 24
}

// column lays out overlay lines top to bottom.
type column struct {
	theme *Theme
	x, y  int32
	width int32
}

func (c *column) header(title string) {
	rl.DrawText(title, c.x, c.y, c.theme.HeaderFontSize, c.theme.SectionHeader)
	c.y += c.theme.LineHeight
}

func (c *column) row(label, value string) {
	rl.DrawText(label+":", c.x, c.y, c.theme.FontSize, c.theme.LabelColor)
	rl.DrawText(value, c.x+c.theme.LabelWidth, c.y, c.theme.FontSize, c.theme.ValueColor)
	c.y += c.theme.LineHeight
}

// bar shows a [0, 1] value as a raygui progress bar.
func (c *column) bar(label string, value float64) {
	v := float32(math.Max(0, math.Min(value, 1)))
	rl.DrawText(label+":", c.x, c.y, c.theme.FontSize, c.theme.LabelColor)
	gui.ProgressBar(
		rl.Rectangle{
			X:      float32(c.x + c.theme.LabelWidth),
			Y:      float32(c.y + 2),
			Width:  float32(c.width - c.theme.LabelWidth - 50),
			Height: float32(c.theme.BarHeight),
		},
		"", fmt.Sprintf("%.2f", v), v, 0, 1,
	)
	c.y += c.theme.LineHeight + 2
}

func toggleText(on bool, onText, offText string) string {
	if on {
		return onText
	}
	return offText
}
