package tui

import (
	"fmt"
	"io"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/rigidsim/internal/dynamo"
)

// Positioner is anything with a world position, usually a physics body.
type Positioner interface {
	Position() mgl64.Vec3
}

// Text reports body positions as plain lines, one per body per step.
type Text struct {
	w      io.Writer
	bodies []Positioner
}

func NewText(w io.Writer, bodies ...Positioner) *Text {
	return &Text{w: w, bodies: bodies}
}

// Render writes the lines for one step. A single body is reported without
// an index.
func (t *Text) Render(sc dynamo.StepContext) error {
	if len(t.bodies) == 1 {
		p := t.bodies[0].Position()
		_, err := fmt.Fprintf(t.w, "t=%f, pos=(%f, %f, %f)\n", sc.Time, p.X(), p.Y(), p.Z())
		return err
	}
	for i, b := range t.bodies {
		p := b.Position()
		if _, err := fmt.Fprintf(t.w, "t=%f, i=%d, pos=(%f, %f, %f)\n", sc.Time, i, p.X(), p.Y(), p.Z()); err != nil {
			return err
		}
	}
	return nil
}
