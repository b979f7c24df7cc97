package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
)

const (
	// geomCollisionType tags every shape so one wildcard handler sees all pairs.
	geomCollisionType cp.CollisionType = 1

	// collisionSlop is the overlap the engine tolerates before correcting.
	collisionSlop = 1e-3
)

// World owns the engine space and every body, geometry and joint made from it.
type World struct {
	space    *cp.Space
	closed   bool
	nextID   int
	bodies   []*Body
	geoms    []*Geom
	byShape  map[*cp.Shape]*Geom
	joints   []*Joint
	contacts map[pairKey]*activeContact
	gravity  mgl64.Vec3
	linear   float64
	angular  float64
}

// NewWorld creates an empty world with zero gravity and no damping.
func NewWorld() *World {
	w := &World{
		space:    cp.NewSpace(),
		bodies:   make([]*Body, 0),
		geoms:    make([]*Geom, 0),
		byShape:  make(map[*cp.Shape]*Geom),
		joints:   make([]*Joint, 0),
		contacts: make(map[pairKey]*activeContact),
	}
	w.space.SetCollisionSlop(collisionSlop)

	handler := w.space.NewWildcardCollisionHandler(geomCollisionType)
	handler.PreSolveFunc = w.preSolve

	return w
}

// SetGravity sets the gravity vector. The y component must be zero.
func (w *World) SetGravity(g mgl64.Vec3) error {
	if w.closed {
		return ErrClosed
	}
	if !inPlane(g) {
		return ErrUnsupportedAxis
	}
	w.gravity = g
	w.space.SetGravity(toPlane(g))
	return nil
}

func (w *World) Gravity() mgl64.Vec3 { return w.gravity }

// SetDamping sets the fraction of linear and angular velocity removed every
// step, independent of the step size.
func (w *World) SetDamping(linear, angular float64) {
	w.linear = clamp01(linear)
	w.angular = clamp01(angular)
}

// Step advances the world by dt, resolving only contacts attached to a
// contact group since it was last emptied.
func (w *World) Step(dt float64) error {
	if w.closed {
		return ErrClosed
	}
	if dt <= 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		return ErrInvalidStep
	}

	// The engine retains damping^dt of the velocity per step.
	keep := 1 - w.linear
	w.space.SetDamping(math.Pow(keep, 1/dt))
	w.space.Step(dt)

	if w.angular != w.linear && keep > 0 {
		scale := (1 - w.angular) / keep
		for _, b := range w.bodies {
			b.body.SetAngularVelocity(b.body.AngularVelocity() * scale)
		}
	}
	return nil
}

// Close releases the space. Step and construction fail with ErrClosed
// afterwards; bodies keep their last state for reading.
func (w *World) Close() {
	if w.closed {
		return
	}
	for _, j := range w.joints {
		w.space.RemoveConstraint(j.constraint)
	}
	for _, g := range w.geoms {
		w.space.RemoveShape(g.shape)
	}
	for _, b := range w.bodies {
		w.space.RemoveBody(b.body)
	}
	w.closed = true
	w.joints = nil
	w.geoms = nil
	w.byShape = nil
	w.contacts = nil
}

func (w *World) Closed() bool    { return w.closed }
func (w *World) Bodies() []*Body { return w.bodies }
func (w *World) Geoms() []*Geom  { return w.geoms }

func (w *World) id() int {
	w.nextID++
	return w.nextID
}

func (w *World) owns(b *Body) bool {
	return b == nil || b.world == w
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
