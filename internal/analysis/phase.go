package analysis

import (
	"strings"

	"github.com/san-kum/pendulab/internal/dynamo"
)

type Point struct{ X, Y float64 }

// Phase pairs state components xIdx and yIdx of every recorded sample,
// stopping at the first sample that is not finite.
func Phase(states []dynamo.State, xIdx, yIdx int) []Point {
	points := make([]Point, 0, len(states))
	for _, x := range states {
		if xIdx >= len(x) || yIdx >= len(x) || !x.IsValid() {
			break
		}
		points = append(points, Point{X: x[xIdx], Y: x[yIdx]})
	}
	return points
}

// Poincare records components recordX and recordY each time component
// crossIdx crosses threshold going upward.
func Poincare(states []dynamo.State, crossIdx int, threshold float64, recordX, recordY int) []Point {
	points := make([]Point, 0)
	for i := 1; i < len(states); i++ {
		prev, curr := states[i-1], states[i]
		if !curr.IsValid() || crossIdx >= len(curr) || recordX >= len(curr) || recordY >= len(curr) {
			break
		}
		if prev[crossIdx] < threshold && curr[crossIdx] >= threshold {
			points = append(points, Point{X: curr[recordX], Y: curr[recordY]})
		}
	}
	return points
}

// PhaseToASCII plots points on a width x height character grid, with axes
// drawn where they cross the visible area.
func PhaseToASCII(points []Point, width, height int) string {
	if len(points) == 0 || width < 2 || height < 2 {
		return ""
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", width))
	}

	for _, p := range points {
		col := int((p.X - minX) / rangeX * float64(width-1))
		row := height - 1 - int((p.Y-minY)/rangeY*float64(height-1))
		if row >= 0 && row < height && col >= 0 && col < width {
			grid[row][col] = '•'
		}
	}

	if minX <= 0 && maxX >= 0 {
		col := int((0 - minX) / rangeX * float64(width-1))
		for row := 0; row < height; row++ {
			if grid[row][col] == ' ' {
				grid[row][col] = '│'
			}
		}
	}
	if minY <= 0 && maxY >= 0 {
		row := height - 1 - int((0-minY)/rangeY*float64(height-1))
		for col := 0; col < width; col++ {
			if grid[row][col] == ' ' {
				grid[row][col] = '─'
			}
		}
	}

	var sb strings.Builder
	for _, row := range grid {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
