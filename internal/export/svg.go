package export

import (
	"bufio"
	"fmt"
	"io"
	"math"

	"github.com/san-kum/pendulab/internal/pendulum"
	"github.com/san-kum/pendulab/internal/sim"
)

const (
	svgBackground = "#0a0a0a"
	svgTrace      = "#00ff00"
	svgRod        = "#cccccc"
)

// SVG draws the path of the lower bob over the run, plus the rods and bobs
// at the last finite sample, in rendering space scaled to width x height.
// Bobs are drawn with their mass as radius.
func SVG(w io.Writer, p *pendulum.Pendulum, result *sim.Result, width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("export: svg size %dx%d", width, height)
	}

	origin := p.Origin()
	trace := make([]pendulum.Vec2, 0, len(result.States))
	var last [2]pendulum.Vec2
	for _, x := range result.States {
		if len(x) < 2 || !x.IsValid() {
			break
		}
		b1, b2 := pendulum.Positions(x[0], x[1], p.Config.Length1, p.Config.Length2, origin)
		trace = append(trace, b2)
		last = [2]pendulum.Vec2{b1, b2}
	}

	// Fit the full reach around the pivot so the framing does not depend on
	// where the bob happened to go.
	reach := p.Config.Length1 + p.Config.Length2 + math.Max(p.Config.Mass1, p.Config.Mass2)
	scale := math.Min(float64(width), float64(height)) / (2 * reach)
	tx := func(v pendulum.Vec2) (float64, float64) {
		return float64(width)/2 + (v.X-origin.X)*scale, float64(height)/2 + (v.Y-origin.Y)*scale
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, svgBackground)

	if len(trace) > 1 {
		fmt.Fprintf(bw, `<path fill="none" stroke="%s" stroke-width="1" stroke-opacity="0.7" d="`, svgTrace)
		for i, v := range trace {
			x, y := tx(v)
			if i == 0 {
				fmt.Fprintf(bw, "M%.1f,%.1f", x, y)
			} else {
				fmt.Fprintf(bw, " L%.1f,%.1f", x, y)
			}
		}
		bw.WriteString("\"/>\n")
	}

	ox, oy := tx(origin)
	if len(trace) > 0 {
		x1, y1 := tx(last[0])
		x2, y2 := tx(last[1])
		fmt.Fprintf(bw, `<polyline fill="none" stroke="%s" stroke-width="2" points="%.1f,%.1f %.1f,%.1f %.1f,%.1f"/>
`, svgRod, ox, oy, x1, y1, x2, y2)
		fmt.Fprintf(bw, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, x1, y1, p.Config.Mass1*scale, svgRod)
		fmt.Fprintf(bw, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, x2, y2, p.Config.Mass2*scale, svgRod)
	}
	fmt.Fprintf(bw, `<circle cx="%.1f" cy="%.1f" r="3" fill="%s"/>
</svg>
`, ox, oy, svgRod)

	return bw.Flush()
}
