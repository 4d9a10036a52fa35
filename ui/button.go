package ui

import (
	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	buttonWidth  = 200
	buttonHeight = 44
	buttonMargin = 20
)

// FeedLabel returns the toggle's caption for the current feeding mode.
func FeedLabel(feeding bool) string {
	if feeding {
		return "Feeding Mode On!"
	}
	return "Feed the Phish!"
}

// FeedButton is the feeding mode toggle, anchored to the bottom-right
// corner of the window.
type FeedButton struct {
	Bounds rl.Rectangle
}

// NewFeedButton lays the button out for a window of the given size.
func NewFeedButton(screenW, screenH int32) *FeedButton {
	b := &FeedButton{}
	b.Layout(screenW, screenH)
	return b
}

// Layout re-anchors the button after a resize.
func (b *FeedButton) Layout(screenW, screenH int32) {
	b.Bounds = rl.Rectangle{
		X:      float32(screenW - buttonWidth - buttonMargin),
		Y:      float32(screenH - buttonHeight - buttonMargin),
		Width:  buttonWidth,
		Height: buttonHeight,
	}
}

// Contains reports whether a screen point falls on the button. Clicks there
// toggle feeding and never drop food.
func (b *FeedButton) Contains(x, y float32) bool {
	r := b.Bounds
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Draw renders the button and reports whether it was clicked this frame.
func (b *FeedButton) Draw(feeding bool) bool {
	clicked := gui.Button(b.Bounds, FeedLabel(feeding))
	if feeding {
		rl.DrawRectangleLinesEx(b.Bounds, 3, rl.Yellow)
	}
	return clicked
}
