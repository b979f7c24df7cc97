package physics

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Surface holds the contact parameters of ODE's bounce mode.
type Surface struct {
	// Mu is the Coulomb friction coefficient; 0 is frictionless.
	Mu float64
	// Bounce is the restitution, 0 (inelastic) to 1 (elastic).
	Bounce float64
	// BounceVel is the minimum approach speed that bounces at all.
	BounceVel float64
}

type activeContact struct {
	surface Surface
	refs    int
}

// ContactGroup collects the transient contact joints of one step.
type ContactGroup struct {
	world  *World
	joints []Contact
	keys   []pairKey
}

func (w *World) NewContactGroup() *ContactGroup {
	return &ContactGroup{
		world:  w,
		joints: make([]Contact, 0),
		keys:   make([]pairKey, 0),
	}
}

// Attach creates a contact joint between the contact's geometries and puts
// its surface on both shapes for the next step. The most recently attached
// surface wins when a pair has several contacts or a geometry touches
// several others.
func (g *ContactGroup) Attach(c Contact, s Surface) {
	w := g.world
	if w.closed || c.G1 == nil || c.G2 == nil {
		return
	}

	key := keyOf(c.G1, c.G2)
	ac, ok := w.contacts[key]
	if !ok {
		ac = &activeContact{}
		w.contacts[key] = ac
	}
	ac.surface = s
	ac.refs++

	bounce := s.Bounce
	if math.Abs(c.G2.velocity().Sub(c.G1.velocity()).Dot(c.Normal)) < s.BounceVel {
		bounce = 0
	}
	// The engine combines the two shapes' coefficients by product.
	e, u := math.Sqrt(math.Max(bounce, 0)), math.Sqrt(math.Max(s.Mu, 0))
	for _, geom := range []*Geom{c.G1, c.G2} {
		geom.shape.SetElasticity(e)
		geom.shape.SetFriction(u)
	}

	g.joints = append(g.joints, c)
	g.keys = append(g.keys, key)
}

func (g *ContactGroup) Len() int            { return len(g.joints) }
func (g *ContactGroup) Contacts() []Contact { return g.joints }

// Empty destroys every contact joint in the group.
func (g *ContactGroup) Empty() {
	w := g.world
	if !w.closed {
		for _, key := range g.keys {
			if ac, ok := w.contacts[key]; ok {
				ac.refs--
				if ac.refs <= 0 {
					delete(w.contacts, key)
				}
			}
		}
	}
	g.joints = g.joints[:0]
	g.keys = g.keys[:0]
}

// preSolve lets the engine resolve a touching pair only when a contact joint
// exists for it.
func (w *World) preSolve(arb *cp.Arbiter, _ *cp.Space, _ interface{}) bool {
	sa, sb := arb.Shapes()
	ga, okA := w.byShape[sa]
	gb, okB := w.byShape[sb]
	if !okA || !okB {
		return false
	}
	_, ok := w.contacts[keyOf(ga, gb)]
	return ok
}
