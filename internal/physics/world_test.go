package physics

import (
	"errors"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

const dt = 0.01

func newBall(w *World, pos mgl64.Vec3) *Body {
	m, err := SphereMass(1.0, 0.2)
	Expect(err).NotTo(HaveOccurred())
	b, err := w.NewBody(m)
	Expect(err).NotTo(HaveOccurred())
	b.SetPosition(pos)
	return b
}

var _ = Describe("World", func() {
	var w *World

	BeforeEach(func() {
		w = NewWorld()
		Expect(w.SetGravity(mgl64.Vec3{0, 0, -9.8})).To(Succeed())
	})

	AfterEach(func() {
		w.Close()
	})

	Describe("free fall", func() {
		It("accelerates a body under gravity", func() {
			b := newBall(w, mgl64.Vec3{0, 0, 10})
			for i := 0; i < 100; i++ {
				Expect(w.Step(dt)).To(Succeed())
			}

			Expect(b.Velocity().Z()).To(BeNumerically("~", -9.8, 1e-9))
			Expect(b.Velocity().X()).To(BeNumerically("~", 0, 1e-12))
			Expect(b.Position().Z()).To(BeNumerically("~", 10-0.5*9.8, 0.06))
		})

		It("keeps the y coordinate given to SetPosition", func() {
			b := newBall(w, mgl64.Vec3{1, 2.5, 3})
			Expect(w.Step(dt)).To(Succeed())
			Expect(b.Position().Y()).To(Equal(2.5))
			Expect(b.Position().X()).To(BeNumerically("~", 1, 1e-12))
		})

		It("reports an identity rotation for a body that does not spin", func() {
			b := newBall(w, mgl64.Vec3{0, 0, 10})
			Expect(w.Step(dt)).To(Succeed())
			Expect(b.Rotation().ApproxEqual(mgl64.Ident3())).To(BeTrue())
		})
	})

	Describe("validation", func() {
		It("rejects gravity with a y component", func() {
			Expect(w.SetGravity(mgl64.Vec3{0, -9.8, 0})).To(MatchError(ErrUnsupportedAxis))
		})

		It("rejects non-positive masses", func() {
			_, err := SphereMass(0, 0.2)
			Expect(err).To(MatchError(ErrInvalidMass))
			_, err = w.NewBody(Mass{})
			Expect(err).To(MatchError(ErrInvalidMass))
		})

		It("rejects planes that leave the x-z plane", func() {
			_, err := w.NewPlane(mgl64.Vec3{0, 1, 0}, 0)
			Expect(err).To(MatchError(ErrUnsupportedAxis))
			_, err = w.NewPlane(mgl64.Vec3{}, 0)
			Expect(err).To(MatchError(ErrDegenerate))
		})

		It("rejects bodies from another world", func() {
			other := NewWorld()
			defer other.Close()
			b := newBall(other, mgl64.Vec3{})
			_, err := w.NewSphere(b, 0.2)
			Expect(err).To(MatchError(ErrForeignBody))
		})

		It("rejects non-positive step sizes", func() {
			Expect(w.Step(0)).To(MatchError(ErrInvalidStep))
			Expect(w.Step(-dt)).To(MatchError(ErrInvalidStep))
		})

		It("fails every operation after Close", func() {
			w.Close()
			Expect(w.Closed()).To(BeTrue())
			Expect(w.Step(dt)).To(MatchError(ErrClosed))
			Expect(w.SetGravity(mgl64.Vec3{})).To(MatchError(ErrClosed))
			_, err := w.NewBody(Mass{Total: 1, Moment: 1})
			Expect(err).To(MatchError(ErrClosed))
			Expect(w.Collide(func(Pair) error { return nil })).To(MatchError(ErrClosed))
		})
	})

	Describe("collision", func() {
		var (
			ground *Geom
			ball   *Body
			sphere *Geom
		)

		BeforeEach(func() {
			var err error
			ground, err = w.NewPlane(mgl64.Vec3{0, 0, 1}, 0)
			Expect(err).NotTo(HaveOccurred())
			ball = newBall(w, mgl64.Vec3{0, 0, 10})
			sphere, err = w.NewSphere(ball, 0.2)
			Expect(err).NotTo(HaveOccurred())
		})

		It("reports no pairs while the ball is in the air", func() {
			calls := 0
			Expect(w.Collide(func(Pair) error { calls++; return nil })).To(Succeed())
			Expect(calls).To(BeZero())
		})

		It("reports the ball and the ground once when they overlap", func() {
			ball.SetPosition(mgl64.Vec3{0, 0, 0.1})

			var pairs []Pair
			Expect(w.Collide(func(p Pair) error { pairs = append(pairs, p); return nil })).To(Succeed())
			Expect(pairs).To(HaveLen(1))

			g1, g2 := pairs[0].Geoms()
			Expect(g1).To(Equal(sphere))
			Expect(g2).To(Equal(ground))

			contacts := w.Contacts(pairs[0], 10)
			Expect(contacts).NotTo(BeEmpty())
			Expect(contacts[0].Depth).To(BeNumerically("~", 0.1, 0.02))
			Expect(contacts[0].G1).To(Equal(sphere))
			Expect(w.Contacts(pairs[0], 0)).To(BeEmpty())
		})

		It("stops the query at the first near callback error", func() {
			ball.SetPosition(mgl64.Vec3{0, 0, 0.1})
			boom := errors.New("near failed")
			Expect(w.Collide(func(Pair) error { return boom })).To(MatchError(boom))
		})

		It("lets the ball fall through the ground without contact joints", func() {
			for i := 0; i < 300; i++ {
				Expect(w.Step(dt)).To(Succeed())
			}
			Expect(ball.Position().Z()).To(BeNumerically("<", -1))
		})

		It("bounces the ball off the ground with contact joints", func() {
			group := w.NewContactGroup()
			surface := Surface{Mu: 0, Bounce: 0.7, BounceVel: 0.01}
			minZ := math.Inf(1)
			bounced := false

			for i := 0; i < 1000; i++ {
				Expect(w.Collide(func(p Pair) error {
					for _, c := range w.Contacts(p, 10) {
						group.Attach(c, surface)
					}
					return nil
				})).To(Succeed())
				Expect(w.Step(dt)).To(Succeed())
				group.Empty()

				minZ = math.Min(minZ, ball.Position().Z())
				if ball.Position().Z() < 1 && ball.Velocity().Z() > 1 {
					bounced = true
				}
			}

			Expect(bounced).To(BeTrue())
			Expect(minZ).To(BeNumerically(">", -0.5))
			Expect(ball.Position().Z()).To(BeNumerically("<", 5))
		})

		Context("surface parameters", func() {
			// dropOnGround steps the world with contact joints for every
			// touching pair and returns the highest z reached after the first
			// contact.
			dropOnGround := func(surface Surface, steps int) float64 {
				group := w.NewContactGroup()
				touched := false
				maxZ := math.Inf(-1)
				for i := 0; i < steps; i++ {
					Expect(w.Collide(func(p Pair) error {
						for _, c := range w.Contacts(p, 10) {
							group.Attach(c, surface)
						}
						return nil
					})).To(Succeed())
					if group.Len() > 0 {
						touched = true
					}
					Expect(w.Step(dt)).To(Succeed())
					group.Empty()
					if touched {
						maxZ = math.Max(maxZ, ball.Position().Z())
					}
				}
				Expect(touched).To(BeTrue())
				return maxZ
			}

			BeforeEach(func() {
				ball.SetPosition(mgl64.Vec3{0, 0, 2})
			})

			It("rebounds when the ball arrives faster than the bounce velocity", func() {
				Expect(dropOnGround(Surface{Bounce: 0.7, BounceVel: 0.01}, 200)).To(BeNumerically(">", 0.6))
			})

			It("does not rebound below the bounce velocity", func() {
				Expect(dropOnGround(Surface{Bounce: 0.7, BounceVel: 10}, 200)).To(BeNumerically("<", 0.3))
			})

			It("stays down without restitution", func() {
				Expect(dropOnGround(Surface{Bounce: 0, BounceVel: 0.01}, 200)).To(BeNumerically("<", 0.3))
				Expect(ball.Position().Z()).To(BeNumerically("~", 0.2, 0.05))
			})

			It("puts the surface on both shapes", func() {
				ball.SetPosition(mgl64.Vec3{0, 0, 0.1})
				ball.SetVelocity(mgl64.Vec3{0, 0, -2})
				contact := Contact{Normal: mgl64.Vec3{0, 0, -1}, G1: sphere, G2: ground}

				group := w.NewContactGroup()
				group.Attach(contact, Surface{Mu: 0.25, Bounce: 0.49, BounceVel: 0.01})
				for _, g := range []*Geom{sphere, ground} {
					Expect(g.shape.Elasticity()).To(BeNumerically("~", 0.7, 1e-12))
					Expect(g.shape.Friction()).To(BeNumerically("~", 0.5, 1e-12))
				}

				group.Attach(contact, Surface{Mu: 0.25, Bounce: 0.49, BounceVel: 5})
				Expect(sphere.shape.Elasticity()).To(BeZero())
				Expect(ground.shape.Elasticity()).To(BeZero())
			})

			It("slows a sliding ball only with friction", func() {
				slide := func(mu float64) float64 {
					ball.SetPosition(mgl64.Vec3{0, 0, 0.19})
					ball.SetVelocity(mgl64.Vec3{3, 0, 0})
					dropOnGround(Surface{Mu: mu, BounceVel: 0.01}, 100)
					return ball.Velocity().X()
				}

				frictionless := slide(0)
				Expect(frictionless).To(BeNumerically("~", 3, 0.05))

				w.Close()
				w = NewWorld()
				Expect(w.SetGravity(mgl64.Vec3{0, 0, -9.8})).To(Succeed())
				var err error
				ground, err = w.NewPlane(mgl64.Vec3{0, 0, 1}, 0)
				Expect(err).NotTo(HaveOccurred())
				ball = newBall(w, mgl64.Vec3{})
				sphere, err = w.NewSphere(ball, 0.2)
				Expect(err).NotTo(HaveOccurred())

				Expect(slide(0.5)).To(BeNumerically("<", 0.9*frictionless))
			})
		})
	})

	Describe("contact groups", func() {
		It("forgets attached contacts when emptied", func() {
			ground, err := w.NewPlane(mgl64.Vec3{0, 0, 1}, 0)
			Expect(err).NotTo(HaveOccurred())
			ball := newBall(w, mgl64.Vec3{0, 0, 0.1})
			sphere, err := w.NewSphere(ball, 0.2)
			Expect(err).NotTo(HaveOccurred())

			group := w.NewContactGroup()
			group.Attach(Contact{G1: sphere, G2: ground}, Surface{Bounce: 0.5})
			group.Attach(Contact{G1: ground, G2: sphere}, Surface{Bounce: 0.7})
			Expect(group.Len()).To(Equal(2))
			Expect(w.contacts).To(HaveLen(1))
			Expect(w.contacts[keyOf(sphere, ground)].surface.Bounce).To(Equal(0.7))

			group.Empty()
			Expect(group.Len()).To(BeZero())
			Expect(w.contacts).To(BeEmpty())
		})

		It("keeps contacts shared with another group", func() {
			ground, _ := w.NewPlane(mgl64.Vec3{0, 0, 1}, 0)
			ball := newBall(w, mgl64.Vec3{0, 0, 0.1})
			sphere, _ := w.NewSphere(ball, 0.2)

			a, b := w.NewContactGroup(), w.NewContactGroup()
			a.Attach(Contact{G1: sphere, G2: ground}, Surface{})
			b.Attach(Contact{G1: sphere, G2: ground}, Surface{})

			a.Empty()
			Expect(w.contacts).To(HaveLen(1))
			b.Empty()
			Expect(w.contacts).To(BeEmpty())
		})
	})

	Describe("hinges", func() {
		It("rejects axes other than y", func() {
			b := newBall(w, mgl64.Vec3{0, 0, 10})
			_, err := w.NewHinge(nil, b, mgl64.Vec3{0, 0, 10}, mgl64.Vec3{1, 0, 0})
			Expect(err).To(MatchError(ErrUnsupportedAxis))
			_, err = w.NewHinge(nil, b, mgl64.Vec3{0, 0, 10}, mgl64.Vec3{})
			Expect(err).To(MatchError(ErrDegenerate))
		})

		It("holds a chain of balls at fixed spacing", func() {
			balls := make([]*Body, 3)
			for i := range balls {
				balls[i] = newBall(w, mgl64.Vec3{5 * float64(i), 0, 10})
			}
			axis := mgl64.Vec3{0, 1, 0}
			_, err := w.NewHinge(nil, balls[0], mgl64.Vec3{0, 0, 10}, axis)
			Expect(err).NotTo(HaveOccurred())
			_, err = w.NewHinge(balls[0], balls[1], mgl64.Vec3{5, 0, 10}, axis)
			Expect(err).NotTo(HaveOccurred())
			j, err := w.NewHinge(balls[1], balls[2], mgl64.Vec3{10, 0, 10}, axis)
			Expect(err).NotTo(HaveOccurred())

			a, b := j.Bodies()
			Expect(a).To(Equal(balls[1]))
			Expect(b).To(Equal(balls[2]))

			w.SetDamping(1e-4, 1e-5)
			for i := 0; i < 200; i++ {
				Expect(w.Step(dt)).To(Succeed())
			}

			Expect(balls[0].Position().Sub(mgl64.Vec3{0, 0, 10}).Len()).To(BeNumerically("<", 0.1))
			Expect(balls[1].Position().Sub(balls[0].Position()).Len()).To(BeNumerically("~", 5, 0.1))
			Expect(balls[2].Position().Sub(balls[1].Position()).Len()).To(BeNumerically("~", 5, 0.1))
			Expect(balls[2].Position().Z()).To(BeNumerically("<", 10))
		})
	})
})
