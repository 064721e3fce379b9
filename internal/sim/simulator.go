// Package sim drives a pendulum headlessly: it plays the role of the host's
// frame driver and pointer source, frame by frame, and records what happened.
package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/pendulab/internal/dynamo"
	"github.com/san-kum/pendulab/internal/interact"
	"github.com/san-kum/pendulab/internal/pendulum"
)

type Runner struct {
	ctrl      *interact.Controller
	metrics   []dynamo.Metric
	observers []dynamo.Observer
}

func New(ctrl *interact.Controller) *Runner {
	return &Runner{
		ctrl:      ctrl,
		metrics:   make([]dynamo.Metric, 0),
		observers: make([]dynamo.Observer, 0),
	}
}

func (r *Runner) AddMetric(m dynamo.Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o dynamo.Observer) { r.observers = append(r.observers, o) }

// Run plays cfg.Frames frames. The initial state is recorded as sample 0, so
// the result holds Frames+1 samples. Non-finite states do not stop the run.
func (r *Runner) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	result := &Result{
		States:       make([]dynamo.State, 0, cfg.Frames+1),
		Times:        make([]float64, 0, cfg.Frames+1),
		Dragging:     make([]interact.DragState, 0, cfg.Frames+1),
		Metrics:      make(map[string]float64),
		FirstInvalid: -1,
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	p := r.ctrl.Pendulum()
	r.record(result, p.Motion.Vector(), 0)

	next := 0
	for i := 0; i < cfg.Frames; i++ {
		select {
		case <-ctx.Done():
			r.collect(result)
			return result, ctx.Err()
		default:
		}

		for next < len(cfg.Script) && cfg.Script[next].Frame <= i {
			r.apply(cfg.Script[next])
			next++
		}

		r.ctrl.Frame()
		t := float64(i+1) * pendulum.FrameDt
		r.record(result, p.Motion.Vector(), t)

		if cfg.StopOnInvalid && result.FirstInvalid >= 0 {
			r.collect(result)
			return result, &dynamo.FrameError{
				Frame:   result.FirstInvalid,
				Time:    t,
				State:   result.States[result.FirstInvalid],
				Wrapped: dynamo.ErrInvalidState,
			}
		}
	}

	r.collect(result)
	return result, nil
}

func (r *Runner) record(result *Result, x dynamo.State, t float64) {
	for _, m := range r.metrics {
		m.Observe(x, t)
	}
	for _, obs := range r.observers {
		obs.OnFrame(x, t)
	}
	if result.FirstInvalid < 0 && !x.IsValid() {
		result.FirstInvalid = len(result.States)
	}
	result.States = append(result.States, x)
	result.Times = append(result.Times, t)
	result.Dragging = append(result.Dragging, r.ctrl.State())
}

func (r *Runner) collect(result *Result) {
	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

func (r *Runner) apply(ev Event) {
	switch ev.Kind {
	case PointerDown:
		r.ctrl.PointerDown(ev.Point)
	case PointerMove:
		r.ctrl.PointerMove(ev.Point)
	case PointerUp:
		r.ctrl.PointerUp()
	case Reset:
		r.ctrl.Reset()
	}
}

func validateConfig(cfg Config) error {
	if cfg.Frames <= 0 {
		return fmt.Errorf("%w: frames must be positive, got %d", ErrInvalidRun, cfg.Frames)
	}
	for i := 1; i < len(cfg.Script); i++ {
		if cfg.Script[i].Frame < cfg.Script[i-1].Frame {
			return fmt.Errorf("%w: script event %d is out of order", ErrInvalidRun, i)
		}
	}
	return nil
}

// DragScript grabs whatever sits under from at frame start, moves the pointer
// to to, holds it there for hold frames and releases.
func DragScript(from, to pendulum.Vec2, start, hold int) Script {
	return Script{
		{Frame: start, Kind: PointerDown, Point: from},
		{Frame: start, Kind: PointerMove, Point: to},
		{Frame: start + hold, Kind: PointerUp},
	}
}
