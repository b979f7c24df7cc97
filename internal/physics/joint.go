package physics

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
)

// Joint is a persistent constraint between two bodies or a body and the world.
type Joint struct {
	id         int
	a, b       *Body
	anchor     mgl64.Vec3
	constraint *cp.Constraint
}

func (j *Joint) ID() int                { return j.id }
func (j *Joint) Bodies() (*Body, *Body) { return j.a, j.b }
func (j *Joint) Anchor() mgl64.Vec3     { return j.anchor }

// NewHinge joins a and b at a world-space anchor, free to rotate about axis.
// A nil a attaches b to the static world. The axis must be parallel to y.
func (w *World) NewHinge(a, b *Body, anchor, axis mgl64.Vec3) (*Joint, error) {
	if w.closed {
		return nil, ErrClosed
	}
	if b == nil {
		return nil, ErrInvalidMass
	}
	if !w.owns(a) || !w.owns(b) {
		return nil, ErrForeignBody
	}
	if axis.Len() == 0 {
		return nil, ErrDegenerate
	}
	if !alongY(axis) {
		return nil, ErrUnsupportedAxis
	}

	first := w.space.StaticBody
	if a != nil {
		first = a.body
	}

	c := w.space.AddConstraint(cp.NewPivotJoint(first, b.body, toPlane(anchor)))
	j := &Joint{id: w.id(), a: a, b: b, anchor: anchor, constraint: c}
	w.joints = append(w.joints, j)
	return j, nil
}
