package physics

import "errors"

var (
	// ErrClosed is returned by operations on a world after Close.
	ErrClosed = errors.New("physics: world is closed")

	// ErrUnsupportedAxis indicates a vector that leaves the x-z plane.
	ErrUnsupportedAxis = errors.New("physics: direction must lie in the x-z plane")

	// ErrInvalidMass indicates a non-positive mass or radius.
	ErrInvalidMass = errors.New("physics: mass and radius must be positive")

	// ErrForeignBody indicates a body created by a different world.
	ErrForeignBody = errors.New("physics: body belongs to another world")

	// ErrInvalidStep indicates a non-positive step size.
	ErrInvalidStep = errors.New("physics: step size must be positive")

	// ErrDegenerate indicates a zero-length normal or axis.
	ErrDegenerate = errors.New("physics: zero-length direction")
)
