package analysis

import (
	"math"
	"strings"
	"testing"

	"github.com/san-kum/pendulab/internal/dynamo"
	"github.com/san-kum/pendulab/internal/pendulum"
)

func TestLyapunovSeparatesChaosFromSmallSwings(t *testing.T) {
	cfg := pendulum.DefaultConfig()

	gentle := Lyapunov(cfg, pendulum.Motion{Theta1: 0.1, Theta2: 0.1}, 1000, 1e-8)
	chaos := Lyapunov(cfg, pendulum.Motion{Theta1: 3.0, Theta2: 3.0}, 1000, 1e-8)

	if chaos <= 0 {
		t.Errorf("expected positive exponent for chaotic release, got %v", chaos)
	}
	if chaos <= gentle {
		t.Errorf("chaotic exponent %v should exceed small-swing exponent %v", chaos, gentle)
	}
}

func TestLyapunovDegenerateInputs(t *testing.T) {
	cfg := pendulum.DefaultConfig()
	if got := Lyapunov(cfg, pendulum.Motion{}, 0, 1e-8); got != 0 {
		t.Errorf("zero frames: got %v", got)
	}
	if got := Lyapunov(cfg, pendulum.Motion{}, 100, 0); got != 0 {
		t.Errorf("zero perturbation: got %v", got)
	}
}

func sine(freq, dt float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Sin(2 * math.Pi * freq * float64(i) * dt)
	}
	return out
}

func TestDominantFrequency(t *testing.T) {
	got := DominantFrequency(sine(1.25, pendulum.FrameDt, 1000), pendulum.FrameDt)
	if math.Abs(got-1.25) > 0.07 {
		t.Errorf("DominantFrequency = %v, want ~1.25", got)
	}

	flat := make([]float64, 256)
	for i := range flat {
		flat[i] = 0.3
	}
	if got := DominantFrequency(flat, pendulum.FrameDt); got != 0 {
		t.Errorf("flat series: got %v", got)
	}
	if got := DominantFrequency([]float64{1}, pendulum.FrameDt); got != 0 {
		t.Errorf("single sample: got %v", got)
	}
}

func TestPhaseStopsAtInvalidState(t *testing.T) {
	states := []dynamo.State{
		{0.1, 0.2, 0.3, 0.4},
		{0.2, 0.3, 0.4, 0.5},
		{math.NaN(), 0, 0, 0},
		{0.3, 0.4, 0.5, 0.6},
	}
	points := Phase(states, 0, 2)
	if len(points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(points))
	}
	if points[1] != (Point{X: 0.2, Y: 0.4}) {
		t.Errorf("unexpected point %+v", points[1])
	}
}

func TestPoincareCountsUpwardCrossings(t *testing.T) {
	series := sine(1, 0.01, 500) // five periods
	states := make([]dynamo.State, len(series))
	for i, v := range series {
		states[i] = dynamo.State{v, 0, float64(i), 0}
	}

	points := Poincare(states, 0, 0.5, 2, 1)
	if len(points) != 5 {
		t.Errorf("expected 5 crossings, got %d", len(points))
	}
}

func TestPhaseToASCII(t *testing.T) {
	points := []Point{{-1, -1}, {0, 0}, {1, 1}}
	out := PhaseToASCII(points, 20, 10)
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 10 {
		t.Fatalf("expected 10 rows, got %d", len(lines))
	}
	if !strings.Contains(out, "•") || !strings.Contains(out, "│") || !strings.Contains(out, "─") {
		t.Errorf("expected points and both axes:\n%s", out)
	}
	if PhaseToASCII(nil, 20, 10) != "" {
		t.Error("expected empty plot for no points")
	}
}
