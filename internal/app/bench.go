package app

import (
	"context"
	"time"

	"github.com/san-kum/rigidsim/internal/config"
	"github.com/san-kum/rigidsim/internal/dynamo"
)

type BenchResult struct {
	Scene       string
	Members     int
	Steps       int
	Elapsed     time.Duration
	StepsPerSec float64
}

// Bench runs members independent copies of a scene concurrently, without
// any display, and reports the combined step rate.
func (a *App) Bench(ctx context.Context, cfg *config.Config, members, parallel int) (*BenchResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	factory := func(member int) (*dynamo.Driver, func(), error) {
		s, err := a.registry.Build(cfg.Scene, cfg)
		if err != nil {
			return nil, nil, err
		}
		return s.Driver(nil), s.Close, nil
	}

	ens := dynamo.NewEnsemble(factory, members)
	ens.SetLimit(parallel)

	a.log.Info("bench started", "scene", cfg.Scene, "members", members, "steps", cfg.Steps)
	start := time.Now()
	if err := ens.Run(ctx, dynamo.Config{Steps: cfg.Steps, Dt: cfg.Dt}); err != nil {
		return nil, err
	}
	elapsed := time.Since(start)

	res := &BenchResult{
		Scene:   cfg.Scene,
		Members: members,
		Steps:   members * cfg.Steps,
		Elapsed: elapsed,
	}
	if elapsed > 0 {
		res.StepsPerSec = float64(res.Steps) / elapsed.Seconds()
	}
	a.log.Info("bench finished", "scene", cfg.Scene, "elapsed", elapsed, "steps_per_sec", res.StepsPerSec)
	return res, nil
}
