package viz

import (
	"strings"
)

const blankCell = '\u2800'

// dotBits[row][col] is the braille dot bit for a sub-pixel inside one
// 2x4 terminal cell.
var dotBits = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// Canvas is a braille raster. Each terminal cell holds 2x4 sub-pixels, so
// drawing coordinates run over (Width*2) x (Height*4).
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{Width: w, Height: h, Grid: make([][]rune, h)}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// dot locates sub-pixel (x, y). ok is false off the canvas.
func (c *Canvas) dot(x, y int) (row, col int, bit rune, ok bool) {
	if x < 0 || y < 0 || x >= c.Width*2 || y >= c.Height*4 {
		return 0, 0, 0, false
	}
	return y / 4, x / 2, dotBits[y%4][x%2], true
}

// Set lights sub-pixel (x, y). Points off the canvas are dropped.
func (c *Canvas) Set(x, y int) {
	if row, col, bit, ok := c.dot(x, y); ok {
		c.Grid[row][col] |= bit
	}
}

// Clear blanks every cell.
func (c *Canvas) Clear() {
	for _, row := range c.Grid {
		for j := range row {
			row[j] = blankCell
		}
	}
}

// DrawLine rasterises the segment from (x0, y0) to (x1, y1), both ends
// included.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx, stepX := absInt(x1-x0), sign(x1-x0)
	dy, stepY := -absInt(y1-y0), sign(y1-y0)
	e := dx + dy
	for x, y := x0, y0; ; {
		c.Set(x, y)
		if x == x1 && y == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x += stepX
		}
		if e2 <= dx {
			e += dx
			y += stepY
		}
	}
}

// DrawCircle draws a circle outline of radius r around (cx, cy) using the
// midpoint algorithm. A radius below one sets a single pixel.
func (c *Canvas) DrawCircle(cx, cy, r int) {
	if r < 1 {
		c.Set(cx, cy)
		return
	}
	x, y := r, 0
	err := 1 - r
	for x >= y {
		c.Set(cx+x, cy+y)
		c.Set(cx+y, cy+x)
		c.Set(cx-y, cy+x)
		c.Set(cx-x, cy+y)
		c.Set(cx-x, cy-y)
		c.Set(cx-y, cy-x)
		c.Set(cx+y, cy-x)
		c.Set(cx+x, cy-y)
		y++
		if err < 0 {
			err += 2*y + 1
		} else {
			x--
			err += 2*(y-x) + 1
		}
	}
}

// FillCircle sets every pixel within radius r of (cx, cy).
func (c *Canvas) FillCircle(cx, cy, r int) {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r {
				c.Set(cx+dx, cy+dy)
			}
		}
	}
}

// Near reports whether (x, y) lies within one canvas size of the visible
// area. Lines to points farther out are not worth walking.
func (c *Canvas) Near(x, y int) bool {
	w, h := c.Width*2, c.Height*4
	return x > -w && x < 2*w && y > -h && y < 2*h
}

// IsSet reports whether the sub-pixel at (x, y) is lit.
func (c *Canvas) IsSet(x, y int) bool {
	row, col, bit, ok := c.dot(x, y)
	return ok && c.Grid[row][col]&bit != 0
}

func (c *Canvas) String() string {
	var b strings.Builder
	b.Grow(c.Height * (c.Width*3 + 1))
	for _, row := range c.Grid {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
