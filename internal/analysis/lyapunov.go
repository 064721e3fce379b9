package analysis

import (
	"math"

	"github.com/san-kum/pendulab/internal/pendulum"
)

// Lyapunov estimates the largest Lyapunov exponent (1/s) of the undragged
// pendulum started from m, using the frame step. A copy perturbed by
// perturbation in θ1 is stepped alongside; their separation is logged and
// renormalised every frame.
func Lyapunov(cfg pendulum.Config, m pendulum.Motion, frames int, perturbation float64) float64 {
	if frames <= 0 || perturbation <= 0 {
		return 0
	}

	a := m
	b := m
	b.Theta1 += perturbation
	d0 := perturbation

	sumLog := 0.0
	count := 0
	for i := 0; i < frames; i++ {
		a = pendulum.Step(cfg, a, pendulum.FrameDt)
		b = pendulum.Step(cfg, b, pendulum.FrameDt)

		xa, xb := a.Vector(), b.Vector()
		if !xa.IsValid() || !xb.IsValid() {
			break
		}
		sep := xb.Sub(xa).Norm()
		if sep > 0 {
			sumLog += math.Log(sep / d0)
			count++

			// Pull b back to distance d0 along the separation.
			scale := d0 / sep
			b.Theta1 = a.Theta1 + (b.Theta1-a.Theta1)*scale
			b.Theta2 = a.Theta2 + (b.Theta2-a.Theta2)*scale
			b.Omega1 = a.Omega1 + (b.Omega1-a.Omega1)*scale
			b.Omega2 = a.Omega2 + (b.Omega2-a.Omega2)*scale
		}
	}

	if count == 0 {
		return 0
	}
	return sumLog / (float64(count) * pendulum.FrameDt)
}
