// Package controls is the numeric control surface bound to a pendulum's
// configuration: five range-limited sliders and a reset action.
package controls

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/pendulab/internal/pendulum"
)

var ErrUnknownControl = errors.New("controls: unknown control")

const (
	Length1 = "length1"
	Length2 = "length2"
	Mass1   = "mass1"
	Mass2   = "mass2"
	Gravity = "gravity"
)

type Slider struct {
	Name  string
	Label string
	Unit  string
	Min   float64
	Max   float64
	Step  float64
}

// Clamp limits v to the slider range and snaps it to the slider step.
func (s Slider) Clamp(v float64) float64 {
	if math.IsNaN(v) {
		return s.Min
	}
	v = math.Max(s.Min, math.Min(s.Max, v))
	if s.Step > 0 {
		v = s.Min + math.Round((v-s.Min)/s.Step)*s.Step
		// Snapping can overshoot by a rounding error at the top end.
		v = math.Min(v, s.Max)
		v = math.Round(v*1e9) / 1e9
	}
	return v
}

var sliders = []Slider{
	{Name: Length1, Label: "Length 1", Unit: "px", Min: 50, Max: 250, Step: 1},
	{Name: Length2, Label: "Length 2", Unit: "px", Min: 50, Max: 250, Step: 1},
	{Name: Mass1, Label: "Mass 1", Min: 10, Max: 50, Step: 1},
	{Name: Mass2, Label: "Mass 2", Min: 10, Max: 50, Step: 1},
	{Name: Gravity, Label: "Gravity", Unit: "m/s²", Min: 1, Max: 20, Step: 0.1},
}

// Sliders returns the control layout in display order.
func Sliders() []Slider {
	out := make([]Slider, len(sliders))
	copy(out, sliders)
	return out
}

func Lookup(name string) (Slider, bool) {
	for _, s := range sliders {
		if s.Name == name {
			return s, true
		}
	}
	return Slider{}, false
}

// Surface writes slider values into a pendulum. Each write touches one
// field; there is no multi-field consistency.
type Surface struct {
	p *pendulum.Pendulum
}

func NewSurface(p *pendulum.Pendulum) *Surface {
	return &Surface{p: p}
}

func (s *Surface) field(name string) (*float64, error) {
	cfg := &s.p.Config
	switch name {
	case Length1:
		return &cfg.Length1, nil
	case Length2:
		return &cfg.Length2, nil
	case Mass1:
		return &cfg.Mass1, nil
	case Mass2:
		return &cfg.Mass2, nil
	case Gravity:
		return &cfg.Gravity, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownControl, name)
}

// Set clamps v to the named slider and writes it. It returns the value
// actually stored.
func (s *Surface) Set(name string, v float64) (float64, error) {
	slider, ok := Lookup(name)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownControl, name)
	}
	f, err := s.field(name)
	if err != nil {
		return 0, err
	}
	*f = slider.Clamp(v)
	return *f, nil
}

// Nudge moves the named slider by n steps.
func (s *Surface) Nudge(name string, n int) (float64, error) {
	cur, err := s.Value(name)
	if err != nil {
		return 0, err
	}
	slider, _ := Lookup(name)
	return s.Set(name, cur+float64(n)*slider.Step)
}

func (s *Surface) Value(name string) (float64, error) {
	f, err := s.field(name)
	if err != nil {
		return 0, err
	}
	return *f, nil
}

// Reset is the surface's reset button.
func (s *Surface) Reset() {
	s.p.Reset()
}
