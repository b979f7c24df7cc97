package tui

import (
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/rigidsim/internal/dynamo"
)

const (
	bounceGroundWidth = 28
	chainGroundWidth  = 36
)

// Layout draws one frame of a scene. Heights map to rows counted up from
// the ground row, so z = 0 sits on the ground line.
type Layout interface {
	Draw(s *Screen, t float64, pos []mgl64.Vec3)
}

// BounceLayout draws a single ball in a fixed column above the ground, with
// its position in the header.
type BounceLayout struct {
	GroundRow int
	Col       int
}

func (l BounceLayout) Draw(s *Screen, t float64, pos []mgl64.Vec3) {
	if len(pos) == 0 {
		return
	}
	p := pos[0]
	s.Print(int(float64(l.GroundRow)-p.Z()), l.Col, "*")
	s.Print(l.GroundRow, 0, strings.Repeat("=", bounceGroundWidth))
	s.Printf(0, 0, "t=%f, pos=(%f, %f, %f) ", t, p.X(), p.Y(), p.Z())
}

// ChainLayout draws every ball at its x offset from OriginCol and lists the
// positions under the time header.
type ChainLayout struct {
	GroundRow int
	OriginCol int
}

func (l ChainLayout) Draw(s *Screen, t float64, pos []mgl64.Vec3) {
	for i, p := range pos {
		s.Print(int(float64(l.GroundRow)-p.Z()), int(float64(l.OriginCol)+p.X()), "*")
		s.Printf(1+i, 4, "i=%d, pos=(%f, %f, %f)", i, p.X(), p.Y(), p.Z())
	}
	s.Print(l.GroundRow, 0, strings.Repeat("=", chainGroundWidth))
	s.Printf(0, 0, "t=%f", t)
}

// Renderer returns a render callback that redraws the screen from the
// bodies' current positions, refreshes it and waits out the pace.
func Renderer(s *Screen, l Layout, bodies ...Positioner) dynamo.RenderFunc {
	pos := make([]mgl64.Vec3, len(bodies))
	return func(sc dynamo.StepContext) error {
		for i, b := range bodies {
			pos[i] = b.Position()
		}
		s.Erase()
		l.Draw(s, sc.Time, pos)
		if err := s.Refresh(); err != nil {
			return err
		}
		s.Pace()
		return nil
	}
}
