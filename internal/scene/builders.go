package scene

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/rigidsim/internal/config"
	"github.com/san-kum/rigidsim/internal/physics"
)

// FreeFall drops a single ball with no collision geometry.
func FreeFall(cfg *config.Config) (*Scene, error) {
	s, err := newScene("freefall", cfg)
	if err != nil {
		return nil, err
	}
	if _, err := s.addBall(cfg, mgl64.Vec3{cfg.Ball.X, 0, cfg.Ball.Height}, false); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// Bounce drops a single ball onto the ground plane z = 0.
func Bounce(cfg *config.Config) (*Scene, error) {
	s, err := newScene("bounce", cfg)
	if err != nil {
		return nil, err
	}
	if err := s.addGround(); err != nil {
		s.Close()
		return nil, err
	}
	if _, err := s.addBall(cfg, mgl64.Vec3{cfg.Ball.X, 0, cfg.Ball.Height}, true); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// HingeChain lays cfg.Ball.Count balls out along x at the configured height.
// Ball i is hinged at its own centre to ball i-1, and ball 0 to the world,
// all about the y axis.
func HingeChain(cfg *config.Config) (*Scene, error) {
	s, err := newScene("chain", cfg)
	if err != nil {
		return nil, err
	}
	if err := s.addGround(); err != nil {
		s.Close()
		return nil, err
	}

	axis := mgl64.Vec3{0, 1, 0}
	for i := 0; i < cfg.Ball.Count; i++ {
		pos := mgl64.Vec3{cfg.Ball.X + cfg.Ball.Spacing*float64(i), 0, cfg.Ball.Height}
		b, err := s.addBall(cfg, pos, true)
		if err != nil {
			s.Close()
			return nil, err
		}

		var parent *physics.Body
		if i > 0 {
			parent = s.Bodies[i-1]
		}
		j, err := s.World.NewHinge(parent, b, pos, axis)
		if err != nil {
			s.Close()
			return nil, err
		}
		s.Joints = append(s.Joints, j)
	}
	return s, nil
}
