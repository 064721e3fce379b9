package viz

import (
	"math"

	"github.com/san-kum/pendulab/internal/pendulum"
)

// Viewport maps rendering space (the coordinates the pendulum and pointer
// use) onto canvas sub-pixels. Each terminal cell is 2x4 sub-pixels.
type Viewport struct {
	Scale  float64       // sub-pixels per rendering unit
	Model  pendulum.Vec2 // rendering-space point drawn at Screen
	Screen pendulum.Vec2 // sub-pixel position of Model
}

// FitViewport scales reach (the longest possible pendulum) so that it fits
// below the pivot in a canvas of cols x rows cells, with the pivot centred
// horizontally near the top.
func FitViewport(cols, rows int, origin pendulum.Vec2, reach float64) Viewport {
	w, h := float64(cols*2), float64(rows*4)
	const top = 4.0

	scale := (h - top - 2) / reach
	if alt := (w/2 - 2) / reach; alt < scale {
		scale = alt
	}
	if scale <= 0 {
		scale = 1
	}
	return Viewport{
		Scale:  scale,
		Model:  origin,
		Screen: pendulum.Vec2{X: w / 2, Y: top},
	}
}

func (v Viewport) ToScreen(p pendulum.Vec2) (int, int) {
	x := v.Screen.X + (p.X-v.Model.X)*v.Scale
	y := v.Screen.Y + (p.Y-v.Model.Y)*v.Scale
	return int(math.Round(x)), int(math.Round(y))
}

func (v Viewport) ToModel(sx, sy float64) pendulum.Vec2 {
	return pendulum.Vec2{
		X: v.Model.X + (sx-v.Screen.X)/v.Scale,
		Y: v.Model.Y + (sy-v.Screen.Y)/v.Scale,
	}
}

// CellToModel returns the rendering-space point under the centre of the
// canvas cell (col, row).
func (v Viewport) CellToModel(col, row int) pendulum.Vec2 {
	return v.ToModel(float64(col*2)+1, float64(row*4)+2)
}

// ModelToCell returns the canvas cell containing p.
func (v Viewport) ModelToCell(p pendulum.Vec2) (int, int) {
	x, y := v.ToScreen(p)
	return floorDiv(x, 2), floorDiv(y, 4)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// Length scales a rendering-space length to sub-pixels.
func (v Viewport) Length(l float64) int {
	return int(math.Round(l * v.Scale))
}
