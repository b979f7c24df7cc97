package dynamo

import "context"

// Driver runs the collide/advance/cleanup/render sequence for a fixed number
// of steps.
type Driver struct {
	advance   AdvanceFunc
	collide   CollideFunc
	render    RenderFunc
	cleanup   []func()
	observers []Observer
}

// New builds a driver. A nil collide or render is a no-op; a nil advance is
// reported by Run.
func New(advance AdvanceFunc, collide CollideFunc, render RenderFunc) *Driver {
	return &Driver{
		advance:   advance,
		collide:   collide,
		render:    render,
		cleanup:   make([]func(), 0),
		observers: make([]Observer, 0),
	}
}

// OnCleanup registers a hook run after every advance and before the next
// collide. Contact groups are emptied here.
func (d *Driver) OnCleanup(fn func()) {
	d.cleanup = append(d.cleanup, fn)
}

func (d *Driver) AddObserver(o Observer) { d.observers = append(d.observers, o) }

// Run executes cfg.Steps iterations. A zero step count returns immediately.
// The first callback error ends the run and is returned unchanged; a
// cancelled context ends it before the next collide with ctx.Err().
func (d *Driver) Run(ctx context.Context, cfg Config) error {
	if cfg.Steps == 0 {
		return nil
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if d.advance == nil {
		return ErrNoAdvance
	}

	for i := 0; i < cfg.Steps; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		sc := StepContext{Step: i, Time: cfg.TimeAt(i)}

		if d.collide != nil {
			if err := d.collide(sc); err != nil {
				return err
			}
		}

		if err := d.advance(cfg.Dt); err != nil {
			return err
		}

		for _, fn := range d.cleanup {
			fn()
		}

		if d.render != nil {
			if err := d.render(sc); err != nil {
				return err
			}
		}

		for _, obs := range d.observers {
			obs.OnStep(sc)
		}
	}

	return nil
}

// Run is the one-shot form of New(advance, collide, render).Run(ctx, cfg).
func Run(ctx context.Context, cfg Config, advance AdvanceFunc, collide CollideFunc, render RenderFunc) error {
	return New(advance, collide, render).Run(ctx, cfg)
}
