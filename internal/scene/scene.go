package scene

import (
	"errors"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/rigidsim/internal/config"
	"github.com/san-kum/rigidsim/internal/dynamo"
	"github.com/san-kum/rigidsim/internal/physics"
)

var ErrUnknownScene = errors.New("scene: unknown scene")

// Scene is a built world together with the handles its callbacks need. The
// world and contact group live here rather than in package state, so several
// scenes can run side by side.
type Scene struct {
	Name     string
	World    *physics.World
	Bodies   []*physics.Body
	Geoms    []*physics.Geom
	Joints   []*physics.Joint
	Ground   *physics.Geom
	Contacts *physics.ContactGroup

	surface     physics.Surface
	maxContacts int
	collides    bool
}

func newScene(name string, cfg *config.Config) (*Scene, error) {
	w := physics.NewWorld()
	if err := w.SetGravity(mgl64.Vec3(cfg.Gravity)); err != nil {
		w.Close()
		return nil, err
	}
	w.SetDamping(cfg.Damping.Linear, cfg.Damping.Angular)

	return &Scene{
		Name:     name,
		World:    w,
		Contacts: w.NewContactGroup(),
		surface: physics.Surface{
			Mu:        cfg.Contact.Mu,
			Bounce:    cfg.Contact.Bounce,
			BounceVel: cfg.Contact.BounceVel,
		},
		maxContacts: cfg.Contact.MaxContacts,
	}, nil
}

func (s *Scene) addBall(cfg *config.Config, pos mgl64.Vec3, withGeom bool) (*physics.Body, error) {
	b, err := s.World.NewSphereBody(cfg.Ball.Mass, cfg.Ball.Radius)
	if err != nil {
		return nil, err
	}
	b.SetPosition(pos)
	s.Bodies = append(s.Bodies, b)

	if withGeom {
		g, err := s.World.NewSphere(b, cfg.Ball.Radius)
		if err != nil {
			return nil, err
		}
		s.Geoms = append(s.Geoms, g)
		s.collides = true
	}
	return b, nil
}

func (s *Scene) addGround() error {
	g, err := s.World.NewPlane(mgl64.Vec3{0, 0, 1}, 0)
	if err != nil {
		return err
	}
	s.Ground = g
	s.Geoms = append(s.Geoms, g)
	return nil
}

// Collide runs the broad phase and attaches a contact joint for every
// narrow-phase contact point.
func (s *Scene) Collide(dynamo.StepContext) error {
	return s.World.Collide(s.near)
}

func (s *Scene) near(p physics.Pair) error {
	for _, c := range s.World.Contacts(p, s.maxContacts) {
		s.Contacts.Attach(c, s.surface)
	}
	return nil
}

func (s *Scene) Advance(dt float64) error { return s.World.Step(dt) }
func (s *Scene) Cleanup()                 { s.Contacts.Empty() }
func (s *Scene) Close()                   { s.World.Close() }

// Driver wires the scene's callbacks into a loop driver. Scenes without
// collision geometry get no collide callback.
func (s *Scene) Driver(render dynamo.RenderFunc) *dynamo.Driver {
	var collide dynamo.CollideFunc
	if s.collides {
		collide = s.Collide
	}
	d := dynamo.New(s.Advance, collide, render)
	d.OnCleanup(s.Cleanup)
	return d
}

// Positions returns the current position of every body, in creation order.
func (s *Scene) Positions() []mgl64.Vec3 {
	out := make([]mgl64.Vec3, len(s.Bodies))
	for i, b := range s.Bodies {
		out[i] = b.Position()
	}
	return out
}
