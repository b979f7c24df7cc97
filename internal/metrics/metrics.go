package metrics

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/rigidsim/internal/dynamo"
)

// Body is the read-only view of a rigid body the metrics need.
type Body interface {
	Position() mgl64.Vec3
	Velocity() mgl64.Vec3
	Mass() float64
}

// Metric accumulates a single number over the steps of a run.
type Metric interface {
	Name() string
	Observe(sc dynamo.StepContext)
	Value() float64
	Reset()
}

// Set feeds every step to each of its metrics, in order.
type Set []Metric

func (s Set) OnStep(sc dynamo.StepContext) {
	for _, m := range s {
		m.Observe(sc)
	}
}

func (s Set) Values() map[string]float64 {
	out := make(map[string]float64, len(s))
	for _, m := range s {
		out[m.Name()] = m.Value()
	}
	return out
}

func (s Set) Reset() {
	for _, m := range s {
		m.Reset()
	}
}

// ForScene returns the metrics reported for a scene.
func ForScene(scene string, gravity mgl64.Vec3, bodies []Body) Set {
	set := Set{
		NewEnergy(gravity, bodies),
		NewEnergyDrift(gravity, bodies),
		NewMinHeight(bodies),
	}
	if scene == "bounce" && len(bodies) > 0 {
		set = append(set, NewBounces(bodies[0]), NewSettled(bodies, 0.05))
	}
	return set
}
