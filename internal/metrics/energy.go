package metrics

import (
	"math"

	"github.com/san-kum/pendulab/internal/dynamo"
	"github.com/san-kum/pendulab/internal/pendulum"
)

func motionOf(x dynamo.State) (pendulum.Motion, bool) {
	if len(x) < 4 {
		return pendulum.Motion{}, false
	}
	return pendulum.Motion{Theta1: x[0], Theta2: x[1], Omega1: x[2], Omega2: x[3]}, true
}

// Energy reports the mean total energy over the observed frames. It reads
// the configuration through a pointer so slider changes between frames are
// picked up.
type Energy struct {
	name        string
	cfg         *pendulum.Config
	samples     int
	totalEnergy float64
	last        float64
}

func NewEnergy(cfg *pendulum.Config) *Energy {
	return &Energy{name: "energy", cfg: cfg}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(x dynamo.State, t float64) {
	m, ok := motionOf(x)
	if !ok {
		return
	}
	e.last = pendulum.Energy(*e.cfg, m)
	e.totalEnergy += e.last
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.totalEnergy / float64(e.samples)
}

// Last is the energy of the most recent sample.
func (e *Energy) Last() float64 { return e.last }

func (e *Energy) Reset() {
	e.totalEnergy = 0
	e.samples = 0
	e.last = 0
}

// EnergyDrift is the largest relative deviation from the first sample.
type EnergyDrift struct {
	name          string
	cfg           *pendulum.Config
	initialEnergy float64
	maxDrift      float64
	samples       int
}

func NewEnergyDrift(cfg *pendulum.Config) *EnergyDrift {
	return &EnergyDrift{name: "energy_drift", cfg: cfg}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(x dynamo.State, t float64) {
	m, ok := motionOf(x)
	if !ok {
		return
	}
	energy := pendulum.Energy(*e.cfg, m)

	if e.samples == 0 {
		e.initialEnergy = energy
	}
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 { return e.maxDrift }

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}
