package metrics

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/rigidsim/internal/dynamo"
)

// Recording is the trajectory of a run: one time and one position per body
// for every observed step.
type Recording struct {
	Times     []float64
	Positions [][]mgl64.Vec3
}

func (r *Recording) Len() int { return len(r.Times) }

// Bodies is the number of bodies per sample.
func (r *Recording) Bodies() int {
	if len(r.Positions) == 0 {
		return 0
	}
	return len(r.Positions[0])
}

// Heights returns the z history of one body.
func (r *Recording) Heights(body int) []float64 {
	out := make([]float64, 0, len(r.Positions))
	for _, p := range r.Positions {
		if body < len(p) {
			out = append(out, p[body].Z())
		}
	}
	return out
}

// Recorder samples body positions after every step.
type Recorder struct {
	bodies []Body
	rec    *Recording
}

func NewRecorder(bodies []Body, capacity int) *Recorder {
	return &Recorder{
		bodies: bodies,
		rec: &Recording{
			Times:     make([]float64, 0, capacity),
			Positions: make([][]mgl64.Vec3, 0, capacity),
		},
	}
}

func (r *Recorder) OnStep(sc dynamo.StepContext) {
	pos := make([]mgl64.Vec3, len(r.bodies))
	for i, b := range r.bodies {
		pos[i] = b.Position()
	}
	r.rec.Times = append(r.rec.Times, sc.Time)
	r.rec.Positions = append(r.rec.Positions, pos)
}

func (r *Recorder) Recording() *Recording { return r.rec }
