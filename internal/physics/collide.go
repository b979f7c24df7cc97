package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
)

// Pair identifies two geometries found touching by the broad-phase query.
// It carries the engine's contact manifold for Contacts and is otherwise
// opaque.
type Pair struct {
	g1, g2 *Geom
	set    cp.ContactPointSet
}

func (p Pair) Geoms() (*Geom, *Geom) { return p.g1, p.g2 }

// NearCallback receives each candidate pair once per Collide call.
type NearCallback func(p Pair) error

// Contact is one narrow-phase contact point between two geometries. Normal
// points from G1 toward G2.
type Contact struct {
	Position mgl64.Vec3
	Normal   mgl64.Vec3
	Depth    float64
	G1, G2   *Geom
}

type pairKey struct {
	lo, hi int
}

func keyOf(a, b *Geom) pairKey {
	if a.id > b.id {
		a, b = b, a
	}
	return pairKey{lo: a.id, hi: b.id}
}

// Collide runs the broad phase over every body-attached geometry and calls
// near once for each touching pair. Pairs on the same body and pairs of two
// static geometries are skipped. The first error from near stops the query.
func (w *World) Collide(near NearCallback) error {
	if w.closed {
		return ErrClosed
	}

	seen := make(map[pairKey]bool)
	pairs := make([]Pair, 0)

	for _, g := range w.geoms {
		if g.Static() {
			continue
		}
		w.space.ShapeQuery(g.shape, func(shape *cp.Shape, points *cp.ContactPointSet) {
			other, ok := w.byShape[shape]
			if !ok || other == g {
				return
			}
			if other.body != nil && other.body == g.body {
				return
			}
			key := keyOf(g, other)
			if seen[key] {
				return
			}
			seen[key] = true
			pairs = append(pairs, Pair{g1: g, g2: other, set: *points})
		})
	}

	for _, p := range pairs {
		if err := near(p); err != nil {
			return err
		}
	}
	return nil
}

// Contacts returns up to limit contact points for a pair found by Collide.
func (w *World) Contacts(p Pair, limit int) []Contact {
	n := p.set.Count
	if n > limit {
		n = limit
	}
	if n <= 0 {
		return nil
	}

	y := 0.0
	if b := p.g1.body; b != nil {
		y = b.y
	} else if b := p.g2.body; b != nil {
		y = b.y
	}

	normal := fromPlane(p.set.Normal, 0)
	out := make([]Contact, 0, n)
	for i := 0; i < n; i++ {
		pt := p.set.Points[i]
		mid := pt.PointA.Add(pt.PointB).Mult(0.5)
		out = append(out, Contact{
			Position: fromPlane(mid, y),
			Normal:   normal,
			Depth:    math.Max(0, -pt.Distance),
			G1:       p.g1,
			G2:       p.g2,
		})
	}
	return out
}
