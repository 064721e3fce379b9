// Package analysis characterises recorded pendulum runs.
//
//   - [Lyapunov]: largest Lyapunov exponent via trajectory separation
//   - [Spectrum] and [DominantFrequency]: power spectrum of one state component
//   - [Phase]: 2D phase space trajectory from recorded states
//   - [Poincare]: stroboscopic section of phase space
//
// # Chaos Detection
//
// A positive largest Lyapunov exponent indicates chaotic motion:
//
//	lambda := analysis.Lyapunov(cfg, m, 2000, 1e-8)
//	if lambda > 0 {
//	    // chaotic
//	}
package analysis
