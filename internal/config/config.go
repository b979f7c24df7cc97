package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultSteps       = 1000
	DefaultDt          = 0.01
	DefaultGravity     = -9.8
	DefaultMass        = 1.0
	DefaultRadius      = 0.2
	DefaultHeight      = 10.0
	DefaultMaxContacts = 10
	DefaultBounce      = 0.7
	DefaultBounceVel   = 0.01
	DefaultPaceMillis  = 10
)

var ErrInvalid = errors.New("config: invalid value")

type Config struct {
	Scene   string        `yaml:"scene"`
	Steps   int           `yaml:"steps"`
	Dt      float64       `yaml:"dt"`
	Gravity [3]float64    `yaml:"gravity"`
	Damping DampingConfig `yaml:"damping"`
	Ball    BallConfig    `yaml:"ball"`
	Contact ContactConfig `yaml:"contact"`
	Display DisplayConfig `yaml:"display"`
}

type DampingConfig struct {
	Linear  float64 `yaml:"linear"`
	Angular float64 `yaml:"angular"`
}

type BallConfig struct {
	Mass    float64 `yaml:"mass"`
	Radius  float64 `yaml:"radius"`
	Count   int     `yaml:"count"`
	Spacing float64 `yaml:"spacing"`
	X       float64 `yaml:"x"`
	Height  float64 `yaml:"height"`
}

type ContactConfig struct {
	MaxContacts int     `yaml:"max_contacts"`
	Mu          float64 `yaml:"mu"`
	Bounce      float64 `yaml:"bounce"`
	BounceVel   float64 `yaml:"bounce_vel"`
}

type DisplayConfig struct {
	Mode      string `yaml:"mode"`
	PaceMS    int    `yaml:"pace_ms"`
	GroundRow int    `yaml:"ground_row"`
	OriginCol int    `yaml:"origin_col"`
}

// Display modes.
const (
	ModeText   = "text"
	ModeScreen = "screen"
	ModeLive   = "live"
)

func DefaultConfig() *Config {
	return &Config{
		Scene:   "freefall",
		Steps:   DefaultSteps,
		Dt:      DefaultDt,
		Gravity: [3]float64{0, 0, DefaultGravity},
		Ball: BallConfig{
			Mass:    DefaultMass,
			Radius:  DefaultRadius,
			Count:   1,
			Spacing: 5.0,
			Height:  DefaultHeight,
		},
		Contact: ContactConfig{
			MaxContacts: DefaultMaxContacts,
			Bounce:      DefaultBounce,
			BounceVel:   DefaultBounceVel,
		},
		Display: DisplayConfig{
			Mode:      ModeText,
			PaceMS:    DefaultPaceMillis,
			GroundRow: 12,
			OriginCol: 5,
		},
	}
}

// Load reads a YAML file over the defaults of the scene it names, so omitted
// keys keep that scene's values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var head struct {
		Scene string `yaml:"scene"`
	}
	if err := yaml.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	cfg := ForScene(head.Scene)
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the values the scenes and the loop depend on.
func (c *Config) Validate() error {
	switch {
	case c.Steps < 0:
		return fmt.Errorf("%w: steps must not be negative, got %d", ErrInvalid, c.Steps)
	case c.Dt <= 0 || math.IsNaN(c.Dt) || math.IsInf(c.Dt, 0):
		return fmt.Errorf("%w: dt must be positive and finite, got %f", ErrInvalid, c.Dt)
	case c.Gravity[1] != 0:
		return fmt.Errorf("%w: gravity must lie in the x-z plane", ErrInvalid)
	case c.Ball.Mass <= 0 || c.Ball.Radius <= 0:
		return fmt.Errorf("%w: ball mass and radius must be positive", ErrInvalid)
	case c.Ball.Count < 1:
		return fmt.Errorf("%w: ball count must be at least 1, got %d", ErrInvalid, c.Ball.Count)
	case c.Contact.MaxContacts < 1:
		return fmt.Errorf("%w: max_contacts must be at least 1", ErrInvalid)
	case c.Contact.Bounce < 0 || c.Contact.Bounce > 1:
		return fmt.Errorf("%w: bounce must be within [0, 1], got %f", ErrInvalid, c.Contact.Bounce)
	case c.Display.PaceMS < 0:
		return fmt.Errorf("%w: pace_ms must not be negative", ErrInvalid)
	}

	switch c.Display.Mode {
	case ModeText, ModeScreen, ModeLive:
	default:
		return fmt.Errorf("%w: unknown display mode %q", ErrInvalid, c.Display.Mode)
	}
	return nil
}

// Clone returns a copy that shares nothing with c, since every field is a
// value or an array. Presets are shared and must not be mutated.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}
