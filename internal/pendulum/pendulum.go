// Package pendulum holds the double pendulum model: its adjustable
// configuration, its motion state, the forward kinematics that place the
// bobs in rendering space, and the fixed-step integrator that evolves it.
//
// Lengths are stored in rendering units (pixels, terminal sub-cells, ...).
// The integrator converts them to physical lengths with [PixelsPerMeter];
// nothing outside this package sees the physical values.
package pendulum

import "github.com/san-kum/pendulab/internal/dynamo"

const (
	DefaultLength  = 150.0
	DefaultMass    = 20.0
	DefaultGravity = 9.8
)

// DefaultOrigin is the pivot used by hosts that have no layout of their own.
var DefaultOrigin = Vec2{X: 320, Y: 50}

// Config is the externally adjustable part of the model. Mass doubles as
// the rendered bob radius. All fields must stay strictly positive; writers
// are expected to clamp before assigning.
type Config struct {
	Length1 float64 `yaml:"length1" json:"length1"`
	Length2 float64 `yaml:"length2" json:"length2"`
	Mass1   float64 `yaml:"mass1" json:"mass1"`
	Mass2   float64 `yaml:"mass2" json:"mass2"`
	Gravity float64 `yaml:"gravity" json:"gravity"`
}

func DefaultConfig() Config {
	return Config{
		Length1: DefaultLength,
		Length2: DefaultLength,
		Mass1:   DefaultMass,
		Mass2:   DefaultMass,
		Gravity: DefaultGravity,
	}
}

// Motion is the simulation-owned state. Angles are measured from the
// downward vertical and are never wrapped. Alpha1 and Alpha2 are whatever
// the last integration step computed.
type Motion struct {
	Theta1, Theta2 float64
	Omega1, Omega2 float64
	Alpha1, Alpha2 float64
}

// Vector returns [θ1, θ2, ω1, ω2].
func (m Motion) Vector() dynamo.State {
	return dynamo.State{m.Theta1, m.Theta2, m.Omega1, m.Omega2}
}

// Pendulum owns one simulation instance. It is not safe for concurrent use;
// hosts give each instance a single owning goroutine.
type Pendulum struct {
	Config Config
	Motion Motion
	origin Vec2
}

func New(cfg Config, origin Vec2) *Pendulum {
	return &Pendulum{Config: cfg, origin: origin}
}

func NewDefault() *Pendulum {
	return New(DefaultConfig(), DefaultOrigin)
}

func (p *Pendulum) Origin() Vec2 { return p.origin }

// Reset zeroes angles, velocities and accelerations. Config is untouched.
func (p *Pendulum) Reset() {
	p.Motion = Motion{}
}

// Advance integrates one step of length dt in place.
func (p *Pendulum) Advance(dt float64) {
	p.Motion = Step(p.Config, p.Motion, dt)
}

// Bobs returns the rendered positions of both bobs for the current angles.
func (p *Pendulum) Bobs() (bob1, bob2 Vec2) {
	return Positions(p.Motion.Theta1, p.Motion.Theta2, p.Config.Length1, p.Config.Length2, p.origin)
}

// Bob1 returns the rendered position of the first bob only.
func (p *Pendulum) Bob1() Vec2 {
	return Hang(p.origin, p.Config.Length1, p.Motion.Theta1)
}
