package pendulum

import "math"

const (
	// PixelsPerMeter converts stored rod lengths to the physical lengths
	// used by the equations of motion.
	PixelsPerMeter = 100.0

	// FrameDt is the time advanced per frame. No clock is read, so hosts
	// running at another refresh rate change the simulated time scale.
	FrameDt = 0.016

	// Damping is applied to both angular velocities once per step. It keeps
	// the explicit scheme from drifting; it is not a friction model.
	Damping = 0.999
)

// Accelerations evaluates the coupled equations of motion for m under cfg.
//
// The denominators are not guarded. With Mass1 driven to zero and the rods
// aligned, den1 vanishes and the result is NaN or ±Inf. That is a property
// of the model and is surfaced to the caller unchanged.
func Accelerations(cfg Config, m Motion) (alpha1, alpha2 float64) {
	m1, m2, g := cfg.Mass1, cfg.Mass2, cfg.Gravity
	l1, l2 := cfg.Length1/PixelsPerMeter, cfg.Length2/PixelsPerMeter
	w1, w2 := m.Omega1, m.Omega2

	delta := m.Theta2 - m.Theta1
	sinD, cosD := math.Sin(delta), math.Cos(delta)

	den1 := (m1+m2)*l1 - m2*l1*cosD*cosD
	den2 := (l2 / l1) * den1

	alpha1 = (-m2*l1*w1*w1*sinD*cosD +
		m2*g*math.Sin(m.Theta2)*cosD +
		m2*l2*w2*w2*sinD -
		(m1+m2)*g*math.Sin(m.Theta1)) / den1

	alpha2 = (-m2*l2*w2*w2*sinD*cosD +
		(m1+m2)*g*math.Sin(m.Theta1)*cosD +
		(m1+m2)*l1*w1*w1*sinD -
		(m1+m2)*g*math.Sin(m.Theta2)) / den2

	return alpha1, alpha2
}

// Step returns m advanced by one semi-implicit Euler step: velocities are
// updated and damped first, then angles move with the new velocities.
func Step(cfg Config, m Motion, dt float64) Motion {
	m.Alpha1, m.Alpha2 = Accelerations(cfg, m)

	m.Omega1 += m.Alpha1 * dt
	m.Omega2 += m.Alpha2 * dt
	m.Omega1 *= Damping
	m.Omega2 *= Damping

	m.Theta1 += m.Omega1 * dt
	m.Theta2 += m.Omega2 * dt
	return m
}
