// Package dynamo provides the small set of numeric primitives shared by the
// pendulum simulation and the layers that observe it.
//
//   - [State]: flat vector snapshot of a simulation ([θ1, θ2, ω1, ω2])
//   - [Metric]: observer that folds snapshots into a single number
//   - [Observer]: per-frame callback used by hosts and the headless runner
//
// Nothing in this package clamps or repairs values. [State.IsValid] only
// reports whether a snapshot contains NaN or Inf so callers can record it.
package dynamo
