package scene

import (
	"context"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/san-kum/rigidsim/internal/config"
	"github.com/san-kum/rigidsim/internal/dynamo"
)

func runScene(s *Scene, steps int, render dynamo.RenderFunc) {
	cfg := dynamo.Config{Steps: steps, Dt: 0.01}
	Expect(s.Driver(render).Run(context.Background(), cfg)).To(Succeed())
}

var _ = Describe("Registry", func() {
	var r *Registry

	BeforeEach(func() {
		r = NewRegistry()
	})

	It("lists the built-in scenes in order", func() {
		Expect(r.List()).To(Equal([]string{"bounce", "chain", "freefall"}))
		Expect(r.Describe("bounce")).NotTo(BeEmpty())
	})

	It("rejects unknown scenes", func() {
		_, err := r.Build("orbit", config.DefaultConfig())
		Expect(err).To(MatchError(ErrUnknownScene))
	})

	It("validates the config before building", func() {
		cfg := config.ForScene("bounce")
		cfg.Ball.Radius = 0
		_, err := r.Build("bounce", cfg)
		Expect(err).To(MatchError(config.ErrInvalid))
	})

	It("builds every registered scene from its defaults", func() {
		for _, name := range r.List() {
			s, err := r.Build(name, config.ForScene(name))
			Expect(err).NotTo(HaveOccurred())
			Expect(s.Name).To(Equal(name))
			Expect(s.Bodies).NotTo(BeEmpty())
			s.Close()
			Expect(s.World.Closed()).To(BeTrue())
		}
	})
})

var _ = Describe("FreeFall", func() {
	var s *Scene

	BeforeEach(func() {
		var err error
		s, err = FreeFall(config.ForScene("freefall"))
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		s.Close()
	})

	It("has one ball and no collision geometry", func() {
		Expect(s.Bodies).To(HaveLen(1))
		Expect(s.Geoms).To(BeEmpty())
		Expect(s.Ground).To(BeNil())
		Expect(s.Bodies[0].Position()).To(Equal(mgl64.Vec3{0, 0, 10}))
	})

	It("falls under gravity", func() {
		runScene(s, 100, nil)
		pos := s.Bodies[0].Position()
		Expect(pos.Z()).To(BeNumerically("~", 5.1, 0.06))
		Expect(pos.X()).To(BeNumerically("~", 0, 1e-12))
		Expect(s.Bodies[0].Velocity().Z()).To(BeNumerically("~", -9.8, 1e-9))
	})

	It("never creates contacts", func() {
		maxContacts := 0
		runScene(s, 1000, func(dynamo.StepContext) error {
			maxContacts = max(maxContacts, s.Contacts.Len())
			return nil
		})
		Expect(maxContacts).To(BeZero())
		Expect(s.Bodies[0].Position().Z()).To(BeNumerically("<", -400))
	})
})

var _ = Describe("Bounce", func() {
	var s *Scene

	BeforeEach(func() {
		var err error
		s, err = Bounce(config.ForScene("bounce"))
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		s.Close()
	})

	It("has a ground plane and a ball geometry", func() {
		Expect(s.Ground).NotTo(BeNil())
		Expect(s.Ground.Static()).To(BeTrue())
		Expect(s.Geoms).To(HaveLen(2))
	})

	It("attaches contacts when the ball touches the ground", func() {
		s.Bodies[0].SetPosition(mgl64.Vec3{0, 0, 0.1})
		Expect(s.Collide(dynamo.StepContext{})).To(Succeed())
		Expect(s.Contacts.Len()).To(BeNumerically(">=", 1))
		Expect(s.Contacts.Len()).To(BeNumerically("<=", 10))

		s.Cleanup()
		Expect(s.Contacts.Len()).To(BeZero())
	})

	It("bounces on the ground and comes to rest above it", func() {
		minZ := math.Inf(1)
		rose := false
		runScene(s, 1000, func(dynamo.StepContext) error {
			b := s.Bodies[0]
			minZ = math.Min(minZ, b.Position().Z())
			if b.Position().Z() < 5 && b.Velocity().Z() > 1 {
				rose = true
			}
			return nil
		})

		Expect(rose).To(BeTrue())
		Expect(minZ).To(BeNumerically(">", -0.5))
		Expect(s.Bodies[0].Position().Z()).To(BeNumerically("<", 2))
	})

	It("empties the contact group after every step", func() {
		runScene(s, 300, func(dynamo.StepContext) error {
			Expect(s.Contacts.Len()).To(BeZero())
			return nil
		})
	})
	It("stays on the ground without restitution", func() {
		s.Close()
		var err error
		s, err = Bounce(config.GetPreset("bounce", "dead"))
		Expect(err).NotTo(HaveOccurred())

		touched := false
		maxZ := math.Inf(-1)
		runScene(s, 400, func(dynamo.StepContext) error {
			z := s.Bodies[0].Position().Z()
			if z < 0.25 {
				touched = true
			}
			if touched {
				maxZ = math.Max(maxZ, z)
			}
			return nil
		})

		Expect(touched).To(BeTrue())
		Expect(maxZ).To(BeNumerically("<", 0.5))
	})
})

var _ = Describe("HingeChain", func() {
	var s *Scene

	BeforeEach(func() {
		var err error
		s, err = HingeChain(config.ForScene("chain"))
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		s.Close()
	})

	It("lays out the balls along x", func() {
		Expect(s.Bodies).To(HaveLen(3))
		Expect(s.Joints).To(HaveLen(3))
		for i, p := range s.Positions() {
			Expect(p).To(Equal(mgl64.Vec3{5 * float64(i), 0, 10}))
		}
	})

	It("hinges the first ball to the world", func() {
		a, b := s.Joints[0].Bodies()
		Expect(a).To(BeNil())
		Expect(b).To(Equal(s.Bodies[0]))

		a, b = s.Joints[2].Bodies()
		Expect(a).To(Equal(s.Bodies[1]))
		Expect(b).To(Equal(s.Bodies[2]))
		Expect(s.Joints[2].Anchor()).To(Equal(mgl64.Vec3{10, 0, 10}))
	})

	It("swings while keeping the links together", func() {
		lowest := math.Inf(1)
		runScene(s, 200, func(dynamo.StepContext) error {
			lowest = math.Min(lowest, s.Bodies[2].Position().Z())
			return nil
		})

		pos := s.Positions()
		Expect(pos[0].Sub(mgl64.Vec3{0, 0, 10}).Len()).To(BeNumerically("<", 0.1))
		for i := 1; i < len(pos); i++ {
			Expect(pos[i].Sub(pos[i-1]).Len()).To(BeNumerically("~", 5, 0.25))
		}
		Expect(lowest).To(BeNumerically("<", 5))
	})

	It("builds longer chains", func() {
		long, err := HingeChain(config.GetPreset("chain", "long"))
		Expect(err).NotTo(HaveOccurred())
		defer long.Close()
		Expect(long.Bodies).To(HaveLen(5))
		Expect(long.Positions()[4]).To(Equal(mgl64.Vec3{12, 0, 15}))
	})
})
