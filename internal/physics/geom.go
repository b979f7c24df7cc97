package physics

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
)

const (
	// planeExtent is the half length of the segment standing in for a plane.
	planeExtent = 1e4

	// planeThickness is the radius of that segment. The segment is pushed
	// back by the same amount so the surface stays on the plane; bodies that
	// sink below the surface are still pushed out on the correct side.
	planeThickness = 1.0
)

type GeomKind int

const (
	GeomSphere GeomKind = iota
	GeomPlane
)

func (k GeomKind) String() string {
	switch k {
	case GeomSphere:
		return "sphere"
	case GeomPlane:
		return "plane"
	default:
		return "unknown"
	}
}

// Geom is a collision shape, either static or attached to a body.
type Geom struct {
	id    int
	kind  GeomKind
	shape *cp.Shape
	body  *Body
}

func (g *Geom) ID() int        { return g.id }
func (g *Geom) Kind() GeomKind { return g.kind }
func (g *Geom) Body() *Body    { return g.body }
func (g *Geom) Static() bool   { return g.body == nil }

// velocity is the velocity of the geometry's body; static geometries are at
// rest.
func (g *Geom) velocity() mgl64.Vec3 {
	if g.body == nil {
		return mgl64.Vec3{}
	}
	return g.body.Velocity()
}

// NewPlane adds the static plane n·p = d. The normal must lie in the x-z plane.
func (w *World) NewPlane(normal mgl64.Vec3, d float64) (*Geom, error) {
	if w.closed {
		return nil, ErrClosed
	}
	if normal.Len() == 0 {
		return nil, ErrDegenerate
	}
	if !inPlane(normal) {
		return nil, ErrUnsupportedAxis
	}

	n := toPlane(normal.Normalize())
	centre := n.Mult(d - planeThickness)
	along := cp.Vector{X: -n.Y, Y: n.X}.Mult(planeExtent)

	shape := cp.NewSegment(w.space.StaticBody, centre.Sub(along), centre.Add(along), planeThickness)
	return w.addGeom(GeomPlane, shape, nil), nil
}

// NewSphere attaches a sphere of the given radius to body, centred on it.
func (w *World) NewSphere(body *Body, radius float64) (*Geom, error) {
	if w.closed {
		return nil, ErrClosed
	}
	if body == nil || radius <= 0 {
		return nil, ErrInvalidMass
	}
	if !w.owns(body) {
		return nil, ErrForeignBody
	}

	shape := cp.NewCircle(body.body, radius, cp.Vector{})
	return w.addGeom(GeomSphere, shape, body), nil
}

func (w *World) addGeom(kind GeomKind, shape *cp.Shape, body *Body) *Geom {
	shape.SetElasticity(0)
	shape.SetFriction(0)
	shape.SetCollisionType(geomCollisionType)
	w.space.AddShape(shape)

	g := &Geom{id: w.id(), kind: kind, shape: shape, body: body}
	w.geoms = append(w.geoms, g)
	w.byShape[shape] = g
	return g
}
