package game

import (
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/fishtank/ui"
)

// Update polls input and advances the scene by stepsPerUpdate ticks.
func (g *Game) Update() {
	g.handleInput()
	g.perfCollector.RecordFrame()

	if g.paused {
		return
	}
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.step(g.takeResize())
	}
}

// Draw renders one frame: backdrop, creatures, food, then the overlays.
func (g *Game) Draw() {
	rl.BeginDrawing()
	defer rl.EndDrawing()

	top := g.backdrop.Top()
	rl.ClearBackground(rl.Color{R: top.R, G: top.G, B: top.B, A: 255})

	g.canvas.DrawBackdrop(g.backdrop, g.scene.Frame(), time.Since(g.start).Seconds())
	g.scene.Render(g.canvas)

	g.drawUI()
}

// drawUI renders the HUD, the feeding toggle and the perf panel.
func (g *Game) drawUI() {
	g.hud.Draw(g.hudData())
	g.hud.DrawControls(g.screenHeight, controlsLegend)

	if g.button.Draw(g.scene.Feeding()) {
		g.SetFeeding(!g.scene.Feeding())
	}

	if g.showPerf {
		g.perfPanel.Draw(g.perfCollector.Stats())
	}
}

func (g *Game) hudData() ui.HUDData {
	return ui.HUDData{
		Title:          g.cfg.Screen.Title,
		Creatures:      len(g.scene.Creatures()),
		Food:           g.scene.FoodCount(),
		MaxFood:        g.cfg.Scene.MaxFood,
		Tick:           g.scene.Frame(),
		StepsPerUpdate: g.stepsPerUpdate,
		FPS:            rl.GetFPS(),
		Feeding:        g.scene.Feeding(),
		Paused:         g.paused,
	}
}
