package analysis

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// Spectrum returns the magnitude of the first half of the discrete Fourier
// transform of data, with the mean removed so bin 0 does not dominate.
func Spectrum(data []float64) []float64 {
	if len(data) < 2 {
		return nil
	}
	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(len(data))

	centred := make([]float64, len(data))
	for i, v := range data {
		centred[i] = v - mean
	}

	coeffs := fft.FFTReal(centred)
	ps := make([]float64, len(coeffs)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(coeffs[i])
	}
	return ps
}

// DominantFrequency returns the frequency (Hz) of the strongest non-zero
// bin of data sampled every dt seconds. Zero if the series is flat or too
// short.
func DominantFrequency(data []float64, dt float64) float64 {
	ps := Spectrum(data)
	best, bestMag := 0, 0.0
	for i := 1; i < len(ps); i++ {
		if ps[i] > bestMag && !math.IsNaN(ps[i]) {
			best, bestMag = i, ps[i]
		}
	}
	if best == 0 || bestMag < 1e-9 || dt <= 0 {
		return 0
	}
	return float64(best) / (float64(len(data)) * dt)
}
