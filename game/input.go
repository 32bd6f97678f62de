package game

import rl "github.com/gen2brain/raylib-go/raylib"

// HandleInput processes debug keyboard shortcuts in window mode.
// Returns true when the overlay should be toggled.
func (g *Game) HandleInput(host *RaylibHost) bool {
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}

	if rl.IsKeyPressed(rl.KeyR) {
		g.Reseed()
	}

	// Page keys scroll by a viewport, Home returns to the top
	_, h := host.Viewport()
	if rl.IsKeyPressed(rl.KeyPageDown) {
		host.SetScroll(host.ScrollOffset() + h)
	}
	if rl.IsKeyPressed(rl.KeyPageUp) {
		host.SetScroll(host.ScrollOffset() - h)
	}
	if rl.IsKeyPressed(rl.KeyHome) {
		host.SetScroll(0)
	}

	return rl.IsKeyPressed(rl.KeyTab)
}
