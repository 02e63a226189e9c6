// Package core provides the terminal-facing primitives shared by the game:
// screen cells, colors, input actions and integer cell geometry.
// It has no Bubble Tea dependency so scene logic stays testable.
package core

import "cmp"

// Rect is an axis-aligned rectangle in screen cells.
type Rect struct {
	X, Y int // Top-left cell
	W, H int
}

// NewRect creates a rectangle.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the first column past the rectangle.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the first row past the rectangle.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Empty reports whether the rectangle covers no cells.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Clip returns the part of r inside bounds. ok is false when nothing is left.
func (r Rect) Clip(bounds Rect) (clipped Rect, ok bool) {
	x0, y0 := max(r.X, bounds.X), max(r.Y, bounds.Y)
	x1, y1 := min(r.Right(), bounds.Right()), min(r.Bottom(), bounds.Bottom())
	clipped = Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
	if clipped.Empty() {
		return Rect{}, false
	}
	return clipped, true
}

// Clamp restricts v to [lo, hi].
func Clamp[T cmp.Ordered](v, lo, hi T) T {
	return min(max(v, lo), hi)
}
