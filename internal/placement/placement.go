// Package placement computes where a hover card goes so that it stays on
// screen. All coordinates are terminal cells with the origin at the top-left.
package placement

import "github.com/tinytelemetry/peek/internal/model"

// Geometry is the fixed card size plus spacing rules.
type Geometry struct {
	Width   int
	Height  int
	Offset  int // gap between the pointer and the card
	Padding int // minimum distance from the screen edge
}

// Viewport is the visible screen size. A viewport with a non-positive
// dimension is unknown and disables clamping.
type Viewport struct {
	Width  int
	Height int
}

// Unbounded returns a viewport with no known size.
func Unbounded() Viewport {
	return Viewport{}
}

// Known reports whether the viewport has a usable size.
func (v Viewport) Known() bool {
	return v.Width > 0 && v.Height > 0
}

// Point is the top-left cell of a placed card.
type Point struct {
	X int
	Y int
}

// Place returns the top-left position of a card for the given pointer anchor.
//
// The card sits Offset cells right of the pointer and is vertically centred
// on it. If it would cross the right edge it flips to the left of the
// pointer; the flipped position is not re-checked against the left edge.
// Vertically it is clamped between Padding and the bottom edge.
func Place(anchor model.Anchor, g Geometry, vp Viewport) Point {
	x := anchor.X + g.Offset
	y := anchor.Y - g.Height/2

	if !vp.Known() {
		return Point{X: x, Y: y}
	}

	if x+g.Width > vp.Width-g.Padding {
		x = anchor.X - g.Width - g.Offset
	}

	if y < g.Padding {
		y = g.Padding
	} else if y+g.Height > vp.Height-g.Padding {
		y = vp.Height - g.Height - g.Padding
	}

	return Point{X: x, Y: y}
}
