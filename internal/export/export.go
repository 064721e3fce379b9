// Package export writes recorded runs to CSV or JSON. It only writes; no
// run is ever read back into a simulation.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/san-kum/pendulab/internal/dynamo"
	"github.com/san-kum/pendulab/internal/pendulum"
	"github.com/san-kum/pendulab/internal/sim"
)

var csvHeader = []string{"frame", "time", "theta1", "theta2", "omega1", "omega2", "dragging"}

// CSV writes one row per recorded sample. Non-finite values are written as
// Go formats them (NaN, +Inf, -Inf).
func CSV(w io.Writer, result *sim.Result) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for i, x := range result.States {
		if len(x) < 4 {
			return fmt.Errorf("export: sample %d has %d values, want 4: %w", i, len(x), dynamo.ErrDimensionMismatch)
		}
		row := []string{
			strconv.Itoa(i),
			strconv.FormatFloat(result.Times[i], 'f', 6, 64),
		}
		for _, val := range x[:4] {
			row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
		}
		row = append(row, result.Dragging[i].String())
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

type Data struct {
	Config       pendulum.Config    `json:"config"`
	Origin       pendulum.Vec2      `json:"origin"`
	Dt           float64            `json:"dt"`
	Damping      float64            `json:"damping"`
	Frames       int                `json:"frames"`
	FirstInvalid int                `json:"first_invalid"`
	Times        []float64          `json:"times"`
	States       [][]jsonFloat      `json:"states"`
	Dragging     []string           `json:"dragging"`
	Metrics      map[string]float64 `json:"metrics"`
}

// jsonFloat marshals NaN and ±Inf as strings; encoding/json rejects them.
type jsonFloat float64

func (f jsonFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	if !finite(v) {
		return []byte(strconv.Quote(strconv.FormatFloat(v, 'g', -1, 64))), nil
	}
	return []byte(strconv.FormatFloat(v, 'g', -1, 64)), nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// JSON writes the run as one indented document.
func JSON(w io.Writer, p *pendulum.Pendulum, result *sim.Result) error {
	data := Data{
		Config:       p.Config,
		Origin:       p.Origin(),
		Dt:           pendulum.FrameDt,
		Damping:      pendulum.Damping,
		Frames:       len(result.States) - 1,
		FirstInvalid: result.FirstInvalid,
		Times:        result.Times,
		States:       make([][]jsonFloat, len(result.States)),
		Dragging:     make([]string, len(result.Dragging)),
		Metrics:      sanitize(result.Metrics),
	}

	for i, s := range result.States {
		row := make([]jsonFloat, len(s))
		for j, v := range s {
			row[j] = jsonFloat(v)
		}
		data.States[i] = row
	}
	for i, d := range result.Dragging {
		data.Dragging[i] = d.String()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// sanitize drops metric values JSON cannot carry.
func sanitize(m map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		if !finite(v) {
			continue
		}
		out[k] = v
	}
	return out
}
