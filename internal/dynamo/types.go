package dynamo

import (
	"math"
	"time"
)

// Config fixes the shape of a run. It is copied into the driver when Run
// starts, so later changes by the caller have no effect on a run in flight.
type Config struct {
	Steps int
	Dt    float64
}

// DefaultConfig matches the demonstration programs: 1000 steps of 10ms.
func DefaultConfig() Config {
	return Config{
		Steps: 1000,
		Dt:    0.01,
	}
}

// Validate checks the preconditions of Run.
func (c Config) Validate() error {
	if c.Steps < 0 {
		return ErrNegativeSteps
	}
	if c.Dt <= 0 || math.IsNaN(c.Dt) || math.IsInf(c.Dt, 0) {
		return ErrInvalidDt
	}
	return nil
}

// Duration is the simulated time covered by a full run.
func (c Config) Duration() float64 {
	return float64(c.Steps) * c.Dt
}

// TimeAt returns the simulated time at the start of step i. It multiplies
// instead of accumulating so the value carries no drift.
func (c Config) TimeAt(i int) float64 {
	return float64(i) * c.Dt
}

// WallDuration is the simulated span as a time.Duration, for pacing and logs.
func (c Config) WallDuration() time.Duration {
	return time.Duration(c.Duration() * float64(time.Second))
}

// StepContext is handed to collide, render and observers once per step.
type StepContext struct {
	Step int
	Time float64
}

// AdvanceFunc integrates the world forward by exactly dt.
type AdvanceFunc func(dt float64) error

// CollideFunc runs collision detection and creates this step's contacts.
type CollideFunc func(sc StepContext) error

// RenderFunc presents the state reached at the end of a step.
type RenderFunc func(sc StepContext) error

// Observer sees every completed step after render.
type Observer interface {
	OnStep(sc StepContext)
}

// ObserverFunc adapts a plain function to Observer.
type ObserverFunc func(sc StepContext)

func (f ObserverFunc) OnStep(sc StepContext) { f(sc) }
