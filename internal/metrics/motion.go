package metrics

import (
	"math"

	"github.com/san-kum/rigidsim/internal/dynamo"
)

// MinHeight is the lowest z reached by any body.
type MinHeight struct {
	bodies  []Body
	lowest  float64
	samples int
}

func NewMinHeight(bodies []Body) *MinHeight {
	return &MinHeight{bodies: bodies, lowest: math.Inf(1)}
}

func (m *MinHeight) Name() string { return "min_height" }

func (m *MinHeight) Observe(dynamo.StepContext) {
	for _, b := range m.bodies {
		m.lowest = math.Min(m.lowest, b.Position().Z())
	}
	m.samples++
}

func (m *MinHeight) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.lowest
}

func (m *MinHeight) Reset() {
	m.lowest = math.Inf(1)
	m.samples = 0
}

// bounceEps is the vertical speed below which a body counts as neither
// rising nor falling.
const bounceEps = 1e-3

// Bounces counts the times a body's vertical velocity turns from downward
// to upward.
type Bounces struct {
	body    Body
	falling bool
	count   int
}

func NewBounces(body Body) *Bounces {
	return &Bounces{body: body}
}

func (b *Bounces) Name() string { return "bounces" }

func (b *Bounces) Observe(dynamo.StepContext) {
	vz := b.body.Velocity().Z()
	switch {
	case vz < -bounceEps:
		b.falling = true
	case vz > bounceEps && b.falling:
		b.count++
		b.falling = false
	}
}

func (b *Bounces) Value() float64 { return float64(b.count) }

func (b *Bounces) Reset() {
	b.falling = false
	b.count = 0
}

// Settled is the fraction of observed steps in which every body moved
// slower than threshold.
type Settled struct {
	bodies    []Body
	threshold float64
	resting   int
	samples   int
}

func NewSettled(bodies []Body, threshold float64) *Settled {
	return &Settled{bodies: bodies, threshold: threshold}
}

func (s *Settled) Name() string { return "settled" }

func (s *Settled) Observe(dynamo.StepContext) {
	s.samples++
	for _, b := range s.bodies {
		if b.Velocity().Len() >= s.threshold {
			return
		}
	}
	s.resting++
}

func (s *Settled) Value() float64 {
	if s.samples == 0 {
		return 0
	}
	return float64(s.resting) / float64(s.samples)
}

func (s *Settled) Reset() {
	s.resting = 0
	s.samples = 0
}
