package ui

import (
	"fmt"
	"sort"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/fishtank/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title          string
	Creatures      int
	Food           int
	MaxFood        int
	Tick           uint64
	StepsPerUpdate int
	FPS            int32
	Feeding        bool
	Paused         bool
}

// StatusLine is the one-line summary shared by the window and terminal.
func StatusLine(data HUDData) string {
	mode := "off"
	if data.Feeding {
		mode = "on"
	}
	status := ""
	if data.Paused {
		status = " | PAUSED"
	}
	return fmt.Sprintf("Fish: %d | Food: %d | Feeding: %s | Tick: %d%s",
		data.Creatures, data.Food, mode, data.Tick, status)
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	rl.DrawText(StatusLine(data), 10, 35, 16, rl.RayWhite)

	rl.DrawText(
		fmt.Sprintf("Speed: %dx | FPS: %d", data.StepsPerUpdate, data.FPS),
		10, 55, 16, rl.LightGray,
	)

	h.renderer.DrawFillBar(10, 77, "Food", data.Food, data.MaxFood, 260)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Color{R: 220, G: 240, B: 245, A: 200})
}

// PerfPanel renders the per-phase tick timings.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// SortedPhases returns phase names by average duration, slowest first.
func SortedPhases(stats telemetry.PerfStats) []string {
	names := make([]string, 0, len(stats.PhaseAvg))
	for name := range stats.PhaseAvg {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if stats.PhaseAvg[names[i]] != stats.PhaseAvg[names[j]] {
			return stats.PhaseAvg[names[i]] > stats.PhaseAvg[names[j]]
		}
		return names[i] < names[j]
	})
	return names
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	names := SortedPhases(stats)
	r := p.renderer
	height := int32(len(names)+2)*r.Theme.LineHeight + r.Theme.Padding*2
	r.DrawPanel(p.x, p.y, 260, height)

	x := p.x + r.Theme.Padding
	y := p.y + r.Theme.Padding

	rl.DrawText(fmt.Sprintf("Tick: %s", stats.AvgTickDuration.Round(time.Microsecond)), x, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	y += r.Theme.LineHeight + 2

	for _, name := range names {
		pct := stats.PhasePct[name]
		color := r.Theme.LabelColor
		if pct > 50 {
			color = rl.Orange
		}
		rl.DrawText(
			fmt.Sprintf("%-10s %8s %5.1f%%", name, stats.PhaseAvg[name].Round(time.Microsecond), pct),
			x, y, r.Theme.FontSize, color,
		)
		y += r.Theme.LineHeight
	}
}
