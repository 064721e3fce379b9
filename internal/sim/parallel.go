package sim

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/pendulab/internal/dynamo"
	"github.com/san-kum/pendulab/internal/interact"
	"github.com/san-kum/pendulab/internal/pendulum"
)

// Case is one independent simulation in a sweep.
type Case struct {
	Name    string
	Config  pendulum.Config
	Motion  pendulum.Motion
	Metrics func(p *pendulum.Pendulum) []dynamo.Metric
}

type Outcome struct {
	Name   string
	Result *Result
}

// Sweep runs every case on its own pendulum. Each pendulum is owned by
// exactly one goroutine for the whole run.
func Sweep(ctx context.Context, cases []Case, cfg Config) ([]Outcome, error) {
	out := make([]Outcome, len(cases))
	g, ctx := errgroup.WithContext(ctx)

	for i, c := range cases {
		g.Go(func() error {
			p := pendulum.New(c.Config, pendulum.DefaultOrigin)
			p.Motion = c.Motion

			r := New(interact.New(p))
			if c.Metrics != nil {
				for _, m := range c.Metrics(p) {
					r.AddMetric(m)
				}
			}

			res, err := r.Run(ctx, cfg)
			if err != nil {
				return err
			}
			out[i] = Outcome{Name: c.Name, Result: res}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
