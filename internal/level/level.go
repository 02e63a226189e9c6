// Package level loads platformer levels: colliders, zones and background art.
//
// Rectangles are stored in level-local coordinates. They are moved into
// world space at query time: horizontally by the configured world offset and
// vertically by minus the level height, so the bottom of every level sits at
// world y = 0.
package level

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/dataloss/internal/character"
	"github.com/vovakirdan/dataloss/internal/geom"
)

// Zones are the special regions of a level.
type Zones struct {
	Appear    []geom.Rect `json:"appear"`    // Solid but invisible
	Disappear []geom.Rect `json:"disappear"` // Visible but not solid
	Kill      []geom.Rect `json:"kill"`
	Win       geom.Rect   `json:"win"`
}

// Level is one playable stage.
type Level struct {
	Name       string
	Background []string // Optional ASCII art rows, tiled behind the level
	Colliders  []geom.Rect
	Zones      Zones
}

// Solids returns every rectangle the character can stand on: the colliders
// plus the appear zones.
func (l *Level) Solids() []geom.Rect {
	solids := make([]geom.Rect, 0, len(l.Colliders)+len(l.Zones.Appear))
	solids = append(solids, l.Colliders...)
	solids = append(solids, l.Zones.Appear...)
	return solids
}

// Height returns the lowest edge of any rectangle in the level.
func (l *Level) Height() float64 {
	var h float64
	grow := func(rects ...geom.Rect) {
		for _, r := range rects {
			h = max(h, r.Bottom())
		}
	}
	grow(l.Colliders...)
	grow(l.Zones.Appear...)
	grow(l.Zones.Disappear...)
	grow(l.Zones.Kill...)
	grow(l.Zones.Win)
	return h
}

// Offset returns the translation from level-local to world coordinates.
func (l *Level) Offset(xOffset float64) mgl64.Vec2 {
	return mgl64.Vec2{xOffset, -l.Height()}
}

// Geometry returns the resolver input for this level.
func (l *Level) Geometry(xOffset, fallLimit float64) character.Geometry {
	return character.Geometry{
		Colliders: l.Solids(),
		KillZones: l.Zones.Kill,
		Offset:    l.Offset(xOffset),
		FallLimit: fallLimit,
	}
}

// Won reports whether a character at world x has passed the win zone.
func (l *Level) Won(x, xOffset float64) bool {
	return x > l.Zones.Win.X+xOffset
}
