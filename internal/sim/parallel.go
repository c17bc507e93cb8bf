package sim

import (
	"context"
	"runtime"

	"github.com/san-kum/blockpi/internal/config"
	"golang.org/x/sync/errgroup"
)

// Ensemble runs independent scenes concurrently, one State per goroutine.
type Ensemble struct {
	// NewSimulator builds a fresh simulator per scene so metrics are never
	// shared between goroutines. Nil means a bare simulator.
	NewSimulator func() *Simulator
	Speed        float64
	MaxTicks     int
	Workers      int
}

// Run simulates every scene to settlement. Results are index-aligned with
// cfgs. The first failing scene cancels the rest.
func (e *Ensemble) Run(ctx context.Context, cfgs []*config.Config) ([]*Result, error) {
	results := make([]*Result, len(cfgs))

	g, ctx := errgroup.WithContext(ctx)
	workers := e.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	g.SetLimit(workers)

	for i, cfg := range cfgs {
		i, cfg := i, cfg
		g.Go(func() error {
			s, err := New(cfg)
			if err != nil {
				return err
			}

			var simulator *Simulator
			if e.NewSimulator != nil {
				simulator = e.NewSimulator()
			} else {
				simulator = NewSimulator(nil)
			}

			maxTicks := e.MaxTicks
			if maxTicks <= 0 {
				maxTicks = cfg.MaxTicks
			}
			speed := e.Speed
			if speed <= 0 {
				speed = cfg.Speed
			}

			res, err := simulator.Run(ctx, s, speed, maxTicks)
			results[i] = res
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
