// Package geom holds world-space geometry shared by levels and the character
// resolver.
package geom

import "github.com/go-gl/mathgl/mgl64"

// overlapEpsilon absorbs float rounding so that touching edges never count
// as an overlap.
const overlapEpsilon = 1e-6

// Rect is an axis-aligned rectangle in world units. Y grows downward.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// CenteredRect builds a rectangle of the given size centered on p.
func CenteredRect(p mgl64.Vec2, size mgl64.Vec2) Rect {
	return Rect{
		X:      p.X() - size.X()/2,
		Y:      p.Y() - size.Y()/2,
		Width:  size.X(),
		Height: size.Y(),
	}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() float64 {
	return r.X + r.Width
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() float64 {
	return r.Y + r.Height
}

// Translate returns the rectangle moved by offset.
func (r Rect) Translate(offset mgl64.Vec2) Rect {
	r.X += offset.X()
	r.Y += offset.Y()
	return r
}

// Overlaps reports whether the two rectangles share a non-zero area.
// Rectangles that only touch along an edge do not overlap.
func (r Rect) Overlaps(other Rect) bool {
	if r.X >= other.Right()-overlapEpsilon || other.X >= r.Right()-overlapEpsilon {
		return false
	}
	if r.Y >= other.Bottom()-overlapEpsilon || other.Y >= r.Bottom()-overlapEpsilon {
		return false
	}
	return true
}
