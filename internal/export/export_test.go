package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"encoding/xml"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/san-kum/pendulab/internal/dynamo"
	"github.com/san-kum/pendulab/internal/interact"
	"github.com/san-kum/pendulab/internal/pendulum"
	"github.com/san-kum/pendulab/internal/sim"
)

func runFor(t *testing.T, p *pendulum.Pendulum, frames int) *sim.Result {
	t.Helper()
	result, err := sim.New(interact.New(p)).Run(context.Background(), sim.Config{Frames: frames})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	return result
}

func TestCSV(t *testing.T) {
	p := pendulum.NewDefault()
	p.Motion.Theta1 = 0.25
	result := runFor(t, p, 3)

	var buf bytes.Buffer
	if err := CSV(&buf, result); err != nil {
		t.Fatalf("csv export failed: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("csv parse failed: %v", err)
	}
	if len(records) != 5 {
		t.Fatalf("expected header + 4 rows, got %d", len(records))
	}
	if strings.Join(records[0], ",") != "frame,time,theta1,theta2,omega1,omega2,dragging" {
		t.Errorf("unexpected header %v", records[0])
	}
	if records[1][2] != "0.250000" || records[1][6] != "idle" {
		t.Errorf("unexpected first row %v", records[1])
	}
	if records[4][0] != "3" || records[4][1] != "0.048000" {
		t.Errorf("unexpected last row %v", records[4])
	}
}

func TestCSVRejectsShortSamples(t *testing.T) {
	result := &sim.Result{
		States:   []dynamo.State{{1, 2}},
		Times:    []float64{0},
		Dragging: []interact.DragState{interact.Idle},
	}
	if err := CSV(&bytes.Buffer{}, result); !errors.Is(err, dynamo.ErrDimensionMismatch) {
		t.Errorf("expected dimension mismatch, got %v", err)
	}
}

func TestJSON(t *testing.T) {
	p := pendulum.NewDefault()
	p.Motion.Theta1 = 0.25
	result := runFor(t, p, 2)
	result.Metrics["energy"] = 1.5

	var buf bytes.Buffer
	if err := JSON(&buf, p, result); err != nil {
		t.Fatalf("json export failed: %v", err)
	}

	var data struct {
		Config   pendulum.Config    `json:"config"`
		Frames   int                `json:"frames"`
		Dt       float64            `json:"dt"`
		States   [][]float64        `json:"states"`
		Dragging []string           `json:"dragging"`
		Metrics  map[string]float64 `json:"metrics"`
	}
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("json parse failed: %v", err)
	}

	if data.Frames != 2 || len(data.States) != 3 {
		t.Errorf("expected 2 frames / 3 samples, got %d / %d", data.Frames, len(data.States))
	}
	if data.Dt != pendulum.FrameDt {
		t.Errorf("expected dt %f, got %f", pendulum.FrameDt, data.Dt)
	}
	if data.Config != p.Config {
		t.Errorf("config mismatch: %+v", data.Config)
	}
	if data.States[0][0] != 0.25 {
		t.Errorf("unexpected first state %v", data.States[0])
	}
	if data.Metrics["energy"] != 1.5 {
		t.Errorf("metric lost: %v", data.Metrics)
	}
}

func TestJSONCarriesNonFiniteStates(t *testing.T) {
	p := pendulum.NewDefault()
	p.Config.Mass1 = 0
	p.Motion = pendulum.Motion{Theta1: 0.5, Theta2: 0.5}
	result := runFor(t, p, 1)

	var buf bytes.Buffer
	if err := JSON(&buf, p, result); err != nil {
		t.Fatalf("non-finite values must still export: %v", err)
	}
	if !strings.Contains(buf.String(), `"first_invalid": 1`) {
		t.Errorf("expected first_invalid to be recorded:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), `"NaN"`) && !strings.Contains(buf.String(), `Inf"`) {
		t.Errorf("expected a quoted non-finite value:\n%s", buf.String())
	}
}

func TestSVG(t *testing.T) {
	p := pendulum.NewDefault()
	p.Motion.Theta1, p.Motion.Theta2 = 1.0, 0.5
	result := runFor(t, p, 50)

	var buf bytes.Buffer
	if err := SVG(&buf, p, result, 400, 300); err != nil {
		t.Fatalf("svg export failed: %v", err)
	}
	out := buf.String()

	dec := xml.NewDecoder(strings.NewReader(out))
	for {
		if _, err := dec.Token(); err != nil {
			if err != io.EOF {
				t.Fatalf("svg is not well formed: %v", err)
			}
			break
		}
	}

	if !strings.Contains(out, `width="400" height="300"`) {
		t.Error("missing svg size")
	}
	// 51 samples: one move and 50 line segments.
	if got := strings.Count(out, " L"); got != 50 {
		t.Errorf("expected 50 path segments, got %d", got)
	}
	if got := strings.Count(out, "<circle"); got != 3 {
		t.Errorf("expected pivot and two bobs, got %d circles", got)
	}
}

func TestSVGStopsAtInvalidState(t *testing.T) {
	cfg := pendulum.DefaultConfig()
	cfg.Mass1 = 0
	p := pendulum.New(cfg, pendulum.DefaultOrigin)
	p.Motion.Theta1, p.Motion.Theta2 = 0.5, 0.5
	result := runFor(t, p, 10)

	var buf bytes.Buffer
	if err := SVG(&buf, p, result, 200, 200); err != nil {
		t.Fatalf("svg export failed: %v", err)
	}
	if strings.Contains(buf.String(), "NaN") {
		t.Error("svg must not contain NaN coordinates")
	}
}

func TestSVGRejectsEmptySize(t *testing.T) {
	p := pendulum.NewDefault()
	if err := SVG(io.Discard, p, runFor(t, p, 1), 0, 100); err == nil {
		t.Error("expected error for zero width")
	}
}
