package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
)

// planeEps is the tolerance for a y component treated as zero.
const planeEps = 1e-9

// toPlane drops y: world (x, y, z) maps to engine (X=x, Y=z).
func toPlane(v mgl64.Vec3) cp.Vector {
	return cp.Vector{X: v.X(), Y: v.Z()}
}

func fromPlane(v cp.Vector, y float64) mgl64.Vec3 {
	return mgl64.Vec3{v.X, y, v.Y}
}

// inPlane reports whether a direction has no y component.
func inPlane(v mgl64.Vec3) bool {
	return math.Abs(v.Y()) <= planeEps*math.Max(1, v.Len())
}

// alongY reports whether an axis is parallel to y.
func alongY(v mgl64.Vec3) bool {
	if v.Len() == 0 {
		return false
	}
	return math.Abs(v.X()) <= planeEps && math.Abs(v.Z()) <= planeEps
}
