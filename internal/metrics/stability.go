package metrics

import (
	"math"

	"github.com/san-kum/pendulab/internal/dynamo"
)

// Stability is the fraction of frames whose angular velocities both stay
// below threshold. Non-finite frames count as violations.
type Stability struct {
	name       string
	threshold  float64
	violations int
	samples    int
}

func NewStability(threshold float64) *Stability {
	return &Stability{
		name:      "stability",
		threshold: threshold,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(x dynamo.State, t float64) {
	if len(x) < 4 {
		return
	}
	s.samples++
	for _, w := range x[2:4] {
		if !(math.Abs(w) < s.threshold) {
			s.violations++
			break
		}
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}

// Finite records the index of the first frame containing NaN or Inf.
// Value is -1 while every frame has been finite.
type Finite struct {
	frame int
	first int
}

func NewFinite() *Finite {
	return &Finite{first: -1}
}

func (f *Finite) Name() string { return "first_invalid_frame" }

func (f *Finite) Observe(x dynamo.State, t float64) {
	if f.first < 0 && !x.IsValid() {
		f.first = f.frame
	}
	f.frame++
}

func (f *Finite) Value() float64 { return float64(f.first) }

func (f *Finite) Reset() {
	f.frame = 0
	f.first = -1
}
