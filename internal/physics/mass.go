package physics

// Mass describes a body's total mass and its moment of inertia about the
// y axis, the only rotation axis in a plane-constrained world.
type Mass struct {
	Total  float64
	Moment float64
}

// SphereMass is a solid sphere of the given total mass and radius.
func SphereMass(total, radius float64) (Mass, error) {
	if total <= 0 || radius <= 0 {
		return Mass{}, ErrInvalidMass
	}
	return Mass{Total: total, Moment: 0.4 * total * radius * radius}, nil
}
