// Fish proportions preview - a fish chasing the mouse with sliders for its
// spine and scale.
//
// Usage: go run ./cmd/fishpreview [-config config.yaml]
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/fishtank/config"
	"github.com/pthm-cable/fishtank/fish"
	"github.com/pthm-cable/fishtank/renderer"
	"github.com/pthm-cable/fishtank/vecmath"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	previewSize  = 512
	panelWidth   = windowWidth - previewSize - 30

	// swimSpeed caps how far the head moves toward the mouse per frame.
	swimSpeed = 6.0
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	base := cfg.Fish

	rl.InitWindow(windowWidth, windowHeight, "Fish Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	params := paramsFrom(base)
	center := vecmath.V(10+previewSize/2, 10+previewSize/2)
	body := build(cfg, params, center)
	canvas := renderer.NewCanvas()
	following := true

	for !rl.WindowShouldClose() {
		if following {
			m := rl.GetMousePosition()
			target := vecmath.V(
				vecmath.Clamp(float64(m.X), 10, 10+previewSize),
				vecmath.Clamp(float64(m.Y), 10, 10+previewSize),
			)
			head := body.Head()
			body.Resolve(r2.Add(head, vecmath.Limit(r2.Sub(target, head), swimSpeed)))
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		rl.BeginScissorMode(10, 10, previewSize, previewSize)
		rl.DrawRectangleGradientV(10, 10, previewSize, previewSize,
			rlColor(cfg.Background.TopColor), rlColor(cfg.Background.BottomColor))
		body.Shape().Draw(canvas)
		rl.EndScissorMode()
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)

		lo, hi := body.Shape().Bounds()
		statsY := int32(previewSize + 25)
		rl.DrawText(fmt.Sprintf("Joints: %d  Length: %.0f", body.Spine.Len(), body.Spine.LinkSize()*float64(body.Spine.Len()-1)), 15, statsY, 16, rl.DarkGray)
		rl.DrawText(fmt.Sprintf("Bounds: %.0f x %.0f", hi.X-lo.X, hi.Y-lo.Y), 15, statsY+20, 16, rl.DarkGray)

		// Control panel
		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText("Fish Proportions", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		next := params
		next.Joints = int(slider(&panelY, panelX, "Joint count", fmt.Sprintf("%d", params.Joints),
			float32(params.Joints), minJoints, maxJoints) + 0.5)
		next.Scale = slider(&panelY, panelX, "Scale", fmt.Sprintf("%.3f", params.Scale),
			params.Scale, minScale, maxScale)
		next.LinkSize = slider(&panelY, panelX, "Link size (unscaled)", fmt.Sprintf("%.0f", params.LinkSize),
			params.LinkSize, minLinkSize, maxLinkSize)
		next.ConstraintDeg = slider(&panelY, panelX, "Angle constraint (degrees)", fmt.Sprintf("%.1f", params.ConstraintDeg),
			params.ConstraintDeg, minConstraintD, maxConstraintD)
		panelY += 10

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(following, "Hold", "Follow")) {
			following = !following
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			next = paramsFrom(base)
		}
		panelY += 55

		if next != params {
			params = next.clamped()
			body = build(cfg, params, body.Head())
		}

		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		for _, line := range yamlLines(params.apply(cfg.Fish)) {
			rl.DrawText(line, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 18
		}

		rl.EndDrawing()
	}
}

// slider draws a labelled slider bar and advances the panel cursor.
func slider(y *float32, x float32, label, value string, current, lo, hi float32) float32 {
	rl.DrawText(label, int32(x), int32(*y), 14, rl.Gray)
	*y += 18
	v := gui.SliderBar(
		rl.Rectangle{X: x, Y: *y, Width: float32(panelWidth - 80), Height: 20},
		fmt.Sprintf("%g", lo), fmt.Sprintf("%g", hi),
		current, lo, hi,
	)
	rl.DrawText(value, int32(x+float32(panelWidth-70)), int32(*y+2), 16, rl.DarkGray)
	*y += 35
	return v
}

// build makes a fish from the config with the tuned proportions applied.
func build(cfg *config.Config, p Params, head vecmath.Vec) *fish.Body {
	tuned := *cfg
	tuned.Fish = p.apply(cfg.Fish)
	return fish.New(head, tuned.FishConfig())
}

func rlColor(c config.RGB) rl.Color {
	return rl.Color{R: c[0], G: c[1], B: c[2], A: 255}
}

func toggleText(on bool, onText, offText string) string {
	if on {
		return onText
	}
	return offText
}
