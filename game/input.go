package game

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// controlsLegend lists the window key bindings.
const controlsLegend = "[Click] drop food  [F] feeding  [Space] pause  [,/.] speed  [S] snapshot  [F3] perf  [F11] fullscreen"

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	// Window resize propagation
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}

	if rl.IsKeyPressed(rl.KeyF) {
		g.SetFeeding(!g.scene.Feeding())
	}

	if rl.IsKeyPressed(rl.KeyS) {
		g.snapshot()
	}

	if rl.IsKeyPressed(rl.KeyF3) {
		g.showPerf = !g.showPerf
	}

	// Steps-per-update control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) && g.stepsPerUpdate > 1 {
		g.stepsPerUpdate--
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && g.stepsPerUpdate < 10 {
		g.stepsPerUpdate++
	}

	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		m := rl.GetMousePosition()
		g.handleClick(m.X, m.Y)
	}
}

// handleClick queues a drop unless the click landed on the feeding toggle,
// which handles its own clicks when drawn. The scene rejects drops while
// feeding mode is off.
func (g *Game) handleClick(x, y float32) {
	if g.button != nil && g.button.Contains(x, y) {
		return
	}
	g.RequestFeed(float64(x), float64(y))
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := int32(rl.GetScreenWidth())
	h := int32(rl.GetScreenHeight())
	g.applyWindowSize(w, h)
}

// applyWindowSize resizes the canvas to the window plus its margin.
func (g *Game) applyWindowSize(w, h int32) {
	if w <= 0 || h <= 0 || (w == g.screenWidth && h == g.screenHeight) {
		return
	}
	g.screenWidth, g.screenHeight = w, h

	if g.button != nil {
		g.button.Layout(w, h)
	}
	margin := float64(g.cfg.Screen.Margin)
	g.resizeCanvas(float64(w)+margin, float64(h)+margin)
}

// snapshot saves the tank on request, logging failures.
func (g *Game) snapshot() {
	if _, err := g.SaveSnapshot(nil); err != nil {
		slog.Error("failed to save snapshot", "error", err)
	}
}
