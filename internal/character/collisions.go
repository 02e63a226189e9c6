package character

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/dataloss/internal/geom"
)

// Geometry is the static level data the resolver tests against.
// Rectangles are in level-local coordinates and are moved into world space
// by Offset at query time.
type Geometry struct {
	Colliders []geom.Rect
	KillZones []geom.Rect
	Offset    mgl64.Vec2

	// FallLimit is the world Y below which the character dies.
	// Zero disables the check.
	FallLimit float64
}

// Outcome is the gameplay result of a single tick.
type Outcome int

const (
	Alive Outcome = iota
	Died
)

// Cause explains a Died outcome.
type Cause int

const (
	CauseNone     Cause = iota
	CauseFell           // Dropped below the fall limit
	CauseCrushed        // Overlapping solid geometry after moving
	CauseKillZone       // Touched a kill zone
)

// String returns a human-readable name for the cause.
func (c Cause) String() string {
	switch c {
	case CauseFell:
		return "fell"
	case CauseCrushed:
		return "crushed"
	case CauseKillZone:
		return "kill zone"
	default:
		return "none"
	}
}

// Report describes what happened during one Step.
type Report struct {
	Outcome  Outcome
	Cause    Cause
	Grounded bool // Landed on or is standing on a collider
	Blocked  bool // The forward probe stopped horizontal motion at a wall
}

// Dead reports whether the tick killed the character.
func (r Report) Dead() bool {
	return r.Outcome == Died
}

// Step integrates one frame of motion and resolves collisions.
func (c *Character) Step(geo Geometry) Report {
	var report Report

	// Gravity accumulates while airborne; the state force is added on top.
	c.FallVelocity = c.FallVelocity.Add(c.BaseVelocity)
	c.Velocity = c.MovementForce.Add(c.FallVelocity)

	current := c.Bounds()
	predicted := geom.CenteredRect(c.Position.Add(c.Velocity), c.Size)
	probe := forwardProbe(current, c.Velocity.X())

	colliders := translate(geo.Colliders, geo.Offset)

	hit := false
	landing := math.Inf(1)
	blockDist := math.Inf(1)
	for _, col := range colliders {
		direct := predicted.Overlaps(col)
		forward := probe.Overlaps(col)
		if !direct && !forward {
			continue
		}
		hit = true

		if direct && c.Velocity.Y() > 0 && current.Bottom() <= col.Y+1e-6 {
			landing = math.Min(landing, col.Y)
		}
		if forward && !direct {
			if d, ahead := distanceAhead(current, col, c.Velocity.X()); ahead {
				blockDist = math.Min(blockDist, d)
			}
		}
	}

	if hit && c.Velocity.Y() != 0 {
		if !math.IsInf(landing, 1) {
			c.Position[1] = landing - c.Size.Y()/2
			report.Grounded = true
		}
		c.Velocity[1] = 0
		c.FallVelocity = mgl64.Vec2{}
		if c.state == Jumping || c.state == Dashing {
			c.RequestState(Running)
		}
	} else if !hit && c.state == Running {
		c.overrideState(Jumping)
	}

	// A wall inside the probe's extra unit is not reached this tick.
	if vx := c.Velocity.X(); blockDist < math.Abs(vx) {
		c.Velocity[0] = math.Copysign(blockDist, vx)
		report.Blocked = true
	}

	c.Position = c.Position.Add(c.Velocity)
	after := c.Bounds()

	switch {
	case geo.FallLimit != 0 && c.Position.Y() > geo.FallLimit:
		report.Outcome, report.Cause = Died, CauseFell
	case overlapsAny(after, colliders):
		report.Outcome, report.Cause = Died, CauseCrushed
	}

	if !report.Dead() {
		kills := translate(geo.KillZones, geo.Offset)
		if overlapsAny(current, kills) || overlapsAny(predicted, kills) || overlapsAny(after, kills) {
			report.Outcome, report.Cause = Died, CauseKillZone
		}
	}

	return report
}

// forwardProbe covers the horizontal path of this tick plus one unit ahead,
// lifted one unit so that the floor under the character is not reported.
func forwardProbe(current geom.Rect, dx float64) geom.Rect {
	probe := current
	probe.Y--
	switch {
	case dx > 0:
		probe.Width += dx + 1
	case dx < 0:
		probe.X += dx - 1
		probe.Width += -dx + 1
	}
	return probe
}

// distanceAhead returns how far the character can move along dx before its
// leading edge touches col. ahead is false when col is not in front.
func distanceAhead(current, col geom.Rect, dx float64) (dist float64, ahead bool) {
	switch {
	case dx > 0 && col.X >= current.Right()-1e-6:
		return math.Max(0, col.X-current.Right()), true
	case dx < 0 && col.Right() <= current.X+1e-6:
		return math.Max(0, current.X-col.Right()), true
	}
	return 0, false
}

func translate(rects []geom.Rect, offset mgl64.Vec2) []geom.Rect {
	out := make([]geom.Rect, len(rects))
	for i, r := range rects {
		out[i] = r.Translate(offset)
	}
	return out
}

func overlapsAny(r geom.Rect, rects []geom.Rect) bool {
	for _, other := range rects {
		if r.Overlaps(other) {
			return true
		}
	}
	return false
}
