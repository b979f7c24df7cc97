package physics

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
)

// Body is a dynamic rigid body.
type Body struct {
	id    int
	world *World
	body  *cp.Body
	mass  Mass
	y     float64
}

// NewBody adds a dynamic body with the given mass at the origin.
func (w *World) NewBody(m Mass) (*Body, error) {
	if w.closed {
		return nil, ErrClosed
	}
	if m.Total <= 0 || m.Moment <= 0 {
		return nil, ErrInvalidMass
	}

	b := &Body{
		id:    w.id(),
		world: w,
		body:  w.space.AddBody(cp.NewBody(m.Total, m.Moment)),
		mass:  m,
	}
	w.bodies = append(w.bodies, b)
	return b, nil
}

// NewSphereBody adds a body with the mass distribution of a solid sphere.
func (w *World) NewSphereBody(mass, radius float64) (*Body, error) {
	m, err := SphereMass(mass, radius)
	if err != nil {
		return nil, err
	}
	return w.NewBody(m)
}

func (b *Body) ID() int        { return b.id }
func (b *Body) Mass() float64  { return b.mass.Total }
func (b *Body) MassInfo() Mass { return b.mass }

// SetPosition places the body. The y coordinate is stored and reported back
// unchanged; the engine only sees x and z.
func (b *Body) SetPosition(p mgl64.Vec3) {
	b.y = p.Y()
	b.body.SetPosition(toPlane(p))
}

func (b *Body) Position() mgl64.Vec3 {
	return fromPlane(b.body.Position(), b.y)
}

// SetVelocity sets the linear velocity; the y component is ignored.
func (b *Body) SetVelocity(v mgl64.Vec3) {
	b.body.SetVelocity(v.X(), v.Z())
}

func (b *Body) Velocity() mgl64.Vec3 {
	return fromPlane(b.body.Velocity(), 0)
}

// AngularVelocity is the spin about the y axis.
func (b *Body) AngularVelocity() float64 {
	return -b.body.AngularVelocity()
}

// Rotation returns the body's orientation as a rotation about y. The engine
// turns x toward z for positive angles, which is a negative rotation about y.
func (b *Body) Rotation() mgl64.Mat3 {
	return mgl64.Rotate3DY(-b.body.Angle())
}
