package metrics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/rigidsim/internal/dynamo"
)

// mechanicalEnergy is the translational kinetic energy plus the potential
// energy in a uniform gravity field, summed over the bodies.
func mechanicalEnergy(gravity mgl64.Vec3, bodies []Body) float64 {
	total := 0.0
	for _, b := range bodies {
		m := b.Mass()
		v := b.Velocity()
		total += 0.5*m*v.Dot(v) - m*gravity.Dot(b.Position())
	}
	return total
}

// Energy reports the total mechanical energy at the last observed step.
type Energy struct {
	name    string
	gravity mgl64.Vec3
	bodies  []Body
	current float64
	samples int
}

func NewEnergy(gravity mgl64.Vec3, bodies []Body) *Energy {
	return &Energy{
		name:    "energy",
		gravity: gravity,
		bodies:  bodies,
	}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(dynamo.StepContext) {
	e.current = mechanicalEnergy(e.gravity, e.bodies)
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.current
}

func (e *Energy) Reset() {
	e.current = 0
	e.samples = 0
}

// EnergyDrift is the largest relative departure from the energy seen at the
// first observed step.
type EnergyDrift struct {
	name          string
	gravity       mgl64.Vec3
	bodies        []Body
	initialEnergy float64
	maxDrift      float64
	samples       int
}

func NewEnergyDrift(gravity mgl64.Vec3, bodies []Body) *EnergyDrift {
	return &EnergyDrift{
		name:    "energy_drift",
		gravity: gravity,
		bodies:  bodies,
	}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(dynamo.StepContext) {
	energy := mechanicalEnergy(e.gravity, e.bodies)

	if e.samples == 0 {
		e.initialEnergy = energy
	}
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}
