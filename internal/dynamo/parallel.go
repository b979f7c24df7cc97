package dynamo

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Factory builds the driver for one ensemble member together with a release
// function for whatever the member's callbacks hold (worlds, screens). It is
// called on the member's own goroutine.
type Factory func(member int) (*Driver, func(), error)

// Ensemble runs independent drivers concurrently. Members share nothing but
// the config, so each produces the same step sequence it would alone.
type Ensemble struct {
	factory Factory
	members int
	limit   int
}

func NewEnsemble(factory Factory, members int) *Ensemble {
	return &Ensemble{factory: factory, members: members, limit: runtime.NumCPU()}
}

// SetLimit caps the number of members running at once.
func (e *Ensemble) SetLimit(n int) {
	if n > 0 {
		e.limit = n
	}
}

// Run starts every member and waits for all of them. The first failure
// cancels the rest and is returned as a *StepError.
func (e *Ensemble) Run(ctx context.Context, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.limit)

	for i := 0; i < e.members; i++ {
		idx := i
		g.Go(func() error {
			d, release, err := e.factory(idx)
			if err != nil {
				return &StepError{Member: idx, Wrapped: err}
			}
			if release != nil {
				defer release()
			}
			if err := d.Run(gctx, cfg); err != nil {
				return &StepError{Member: idx, Wrapped: err}
			}
			return nil
		})
	}

	return g.Wait()
}
