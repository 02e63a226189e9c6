package scenes

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/dataloss/internal/character"
	"github.com/vovakirdan/dataloss/internal/config"
	"github.com/vovakirdan/dataloss/internal/core"
	"github.com/vovakirdan/dataloss/internal/geom"
	"github.com/vovakirdan/dataloss/internal/level"
)

// hudRows is the number of screen rows reserved above the world view.
const hudRows = 1

// camera maps world units to screen cells. The view follows the player
// horizontally; vertically it is fixed so that world y = 0 (the bottom of
// every level) is the top edge of the second-to-last row.
type camera struct {
	left, top     float64 // World coordinates of the top-left cell
	colW, rowH    float64 // World units per cell
	width, height int
}

func newCamera(cfg config.RenderConfig, scr *core.Screen, focusX float64) camera {
	w, h := scr.Width(), scr.Height()
	return camera{
		left:   focusX - cfg.CameraLead*float64(w)*cfg.UnitsPerCol,
		top:    -float64(h-2-hudRows) * cfg.UnitsPerRow,
		colW:   cfg.UnitsPerCol,
		rowH:   cfg.UnitsPerRow,
		width:  w,
		height: h,
	}
}

// project converts a world rectangle to the screen cells it covers, clipped
// to the view. ok is false when nothing is visible.
func (c camera) project(r geom.Rect) (cells core.Rect, ok bool) {
	x0 := int(math.Floor((r.X - c.left) / c.colW))
	x1 := int(math.Ceil((r.Right() - c.left) / c.colW))
	y0 := int(math.Floor((r.Y-c.top)/c.rowH)) + hudRows
	y1 := int(math.Ceil((r.Bottom()-c.top)/c.rowH)) + hudRows

	return core.NewRect(x0, y0, x1-x0, y1-y0).Clip(core.NewRect(0, hudRows, c.width, c.height-hudRows))
}

func (c camera) fill(scr *core.Screen, r geom.Rect, glyph rune, color core.Color) {
	if cells, ok := c.project(r); ok {
		scr.DrawRect(cells, glyph, color)
	}
}

// drawWorld renders the level and the player.
func drawWorld(scr *core.Screen, cam camera, lvl *level.Level, offset mgl64.Vec2, player *character.Character, animFPS float64) {
	drawBackground(scr, cam, lvl.Background)

	for _, r := range lvl.Colliders {
		cam.fill(scr, r.Translate(offset), '█', core.ColorPlatform)
	}
	for _, r := range lvl.Zones.Disappear {
		cam.fill(scr, r.Translate(offset), '▒', core.ColorGhost)
	}
	for _, r := range lvl.Zones.Kill {
		cam.fill(scr, r.Translate(offset), '▲', core.ColorHazard)
	}

	win := lvl.Zones.Win.Translate(offset)
	win.Width = cam.colW
	cam.fill(scr, win, '┃', core.ColorGoal)

	drawPlayer(scr, cam, player, animFPS)
}

// drawBackground tiles the art behind the world at half scroll speed.
func drawBackground(scr *core.Screen, cam camera, art []string) {
	if len(art) == 0 {
		return
	}
	shift := int(cam.left/cam.colW) / 2
	for row, line := range art {
		runes := []rune(line)
		if len(runes) == 0 {
			continue
		}
		y := hudRows + 1 + row
		for x := 0; x < scr.Width(); x++ {
			r := runes[((x+shift)%len(runes)+len(runes))%len(runes)]
			if r != ' ' {
				scr.SetColored(x, y, r, core.ColorMuted)
			}
		}
	}
}

var (
	runFrames  = []string{"/|", "|\\"}
	jumpFrames = []string{"/\\"}
	dashFrames = []string{"==", "--"}
)

func drawPlayer(scr *core.Screen, cam camera, p *character.Character, animFPS float64) {
	cells, ok := cam.project(p.Bounds())
	if !ok {
		return
	}
	scr.DrawRect(cells, '▓', core.ColorPlayer)

	frames := runFrames
	switch p.State() {
	case character.Jumping:
		frames = jumpFrames
	case character.Dashing:
		frames = dashFrames
	}
	legs := frames[p.AnimationFrame(animFPS, len(frames))]
	scr.DrawTextColored(cells.X+(cells.W-len(legs))/2, cells.Bottom()-1, legs, core.ColorPlayer)
}
