package pendulum

import "math"

// Energy is the total mechanical energy in physical units, with the pivot
// as the potential reference. Damping makes it decay; it is reported, not
// conserved.
func Energy(cfg Config, m Motion) float64 {
	m1, m2, g := cfg.Mass1, cfg.Mass2, cfg.Gravity
	l1, l2 := cfg.Length1/PixelsPerMeter, cfg.Length2/PixelsPerMeter
	w1, w2 := m.Omega1, m.Omega2

	v1sq := l1 * l1 * w1 * w1
	v2sq := l1*l1*w1*w1 + l2*l2*w2*w2 +
		2*l1*l2*w1*w2*math.Cos(m.Theta1-m.Theta2)

	ke := 0.5*m1*v1sq + 0.5*m2*v2sq
	y1 := -l1 * math.Cos(m.Theta1)
	y2 := y1 - l2*math.Cos(m.Theta2)
	pe := m1*g*y1 + m2*g*y2

	return ke + pe
}

func (p *Pendulum) Energy() float64 { return Energy(p.Config, p.Motion) }
