package config

import "sort"

// ForScene returns the stock settings of a scene, or nil for an unknown scene.
func ForScene(scene string) *Config {
	cfg := DefaultConfig()
	cfg.Scene = scene

	switch scene {
	case "freefall":
	case "bounce":
		cfg.Display.Mode = ModeScreen
		cfg.Display.GroundRow = 12
		cfg.Display.OriginCol = 5
	case "chain":
		cfg.Ball.Count = 3
		cfg.Damping = DampingConfig{Linear: 1e-4, Angular: 1e-5}
		cfg.Display.Mode = ModeScreen
		cfg.Display.GroundRow = 20
		cfg.Display.OriginCol = 10
	default:
		return nil
	}
	return cfg
}

func preset(scene string, apply func(c *Config)) *Config {
	cfg := ForScene(scene)
	apply(cfg)
	return cfg
}

var Presets = map[string]map[string]*Config{
	"freefall": {
		"earth": preset("freefall", func(c *Config) {}),
		"moon": preset("freefall", func(c *Config) {
			c.Gravity = [3]float64{0, 0, -1.62}
		}),
		"drift": preset("freefall", func(c *Config) {
			c.Gravity = [3]float64{0.5, 0, -9.8}
		}),
	},
	"bounce": {
		"default": preset("bounce", func(c *Config) {}),
		"dead": preset("bounce", func(c *Config) {
			c.Contact.Bounce = 0
		}),
		"super": preset("bounce", func(c *Config) {
			c.Contact.Bounce = 0.95
			c.Contact.BounceVel = 0.001
		}),
		"low": preset("bounce", func(c *Config) {
			c.Ball.Height = 2
			c.Steps = 300
		}),
	},
	"chain": {
		"default": preset("chain", func(c *Config) {}),
		"long": preset("chain", func(c *Config) {
			c.Ball.Count = 5
			c.Ball.Spacing = 3
			c.Ball.Height = 15
			c.Display.GroundRow = 22
			c.Display.OriginCol = 4
		}),
		"stiff": preset("chain", func(c *Config) {
			c.Damping = DampingConfig{Linear: 5e-3, Angular: 5e-3}
		}),
	},
}

// GetPreset returns a copy of a named preset, or nil.
func GetPreset(scene, name string) *Config {
	scenePresets, ok := Presets[scene]
	if !ok {
		return nil
	}
	cfg, ok := scenePresets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

// ListPresets returns the preset names of a scene in sorted order.
func ListPresets(scene string) []string {
	scenePresets, ok := Presets[scene]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(scenePresets))
	for name := range scenePresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
