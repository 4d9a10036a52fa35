// Package camera maps the aquarium's world coordinates onto a coarse pixel
// grid, such as the half-block cells of a terminal.
package camera

import "math"

// Viewport is an axis-aligned window into the world anchored at its
// top-left corner. Screen pixels are square.
type Viewport struct {
	// X, Y is the world point shown at screen pixel (0, 0).
	X, Y float64

	// Zoom is the number of world units covered by one screen pixel.
	Zoom float64

	// Screen size in pixels.
	ViewportW, ViewportH int

	MinZoom, MaxZoom float64
}

// New creates a viewport at the world origin.
func New(viewportW, viewportH int, zoom float64) *Viewport {
	v := &Viewport{
		ViewportW: viewportW,
		ViewportH: viewportH,
		MinZoom:   1,
		MaxZoom:   32,
	}
	v.SetZoom(zoom)
	return v
}

// WorldToScreen converts world coordinates to fractional screen pixels.
func (v *Viewport) WorldToScreen(wx, wy float64) (sx, sy float64) {
	return (wx - v.X) / v.Zoom, (wy - v.Y) / v.Zoom
}

// ScreenToWorld converts screen pixels to world coordinates. Integer pixel
// coordinates name the pixel's top-left corner.
func (v *Viewport) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	return v.X + sx*v.Zoom, v.Y + sy*v.Zoom
}

// PixelCenter returns the world position at the center of pixel (px, py).
func (v *Viewport) PixelCenter(px, py int) (wx, wy float64) {
	return v.ScreenToWorld(float64(px)+0.5, float64(py)+0.5)
}

// WorldSize returns the world extent covered by the screen.
func (v *Viewport) WorldSize() (w, h float64) {
	return float64(v.ViewportW) * v.Zoom, float64(v.ViewportH) * v.Zoom
}

// IsVisible reports whether a circle could touch the screen.
func (v *Viewport) IsVisible(wx, wy, radius float64) bool {
	minX, minY, maxX, maxY := v.VisibleWorldBounds()
	return wx+radius >= minX && wx-radius <= maxX &&
		wy+radius >= minY && wy-radius <= maxY
}

// VisibleWorldBounds returns the world rectangle shown on screen.
func (v *Viewport) VisibleWorldBounds() (minX, minY, maxX, maxY float64) {
	w, h := v.WorldSize()
	return v.X, v.Y, v.X + w, v.Y + h
}

// Resize updates the screen size. It reports whether anything changed.
func (v *Viewport) Resize(viewportW, viewportH int) bool {
	if viewportW <= 0 || viewportH <= 0 {
		return false
	}
	if viewportW == v.ViewportW && viewportH == v.ViewportH {
		return false
	}
	v.ViewportW, v.ViewportH = viewportW, viewportH
	return true
}

// SetZoom sets the zoom level, clamped to min/max.
func (v *Viewport) SetZoom(zoom float64) {
	if math.IsNaN(zoom) {
		zoom = v.MinZoom
	}
	v.Zoom = math.Max(v.MinZoom, math.Min(zoom, v.MaxZoom))
}

// ZoomBy multiplies the current zoom by factor.
func (v *Viewport) ZoomBy(factor float64) {
	v.SetZoom(v.Zoom * factor)
}

// Reset moves the viewport back to the world origin.
func (v *Viewport) Reset() {
	v.X, v.Y = 0, 0
}
