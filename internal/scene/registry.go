package scene

import (
	"fmt"
	"sort"

	"github.com/san-kum/rigidsim/internal/config"
)

// Builder constructs a scene from a validated config.
type Builder func(cfg *config.Config) (*Scene, error)

type Registry struct {
	builders     map[string]Builder
	descriptions map[string]string
}

func NewRegistry() *Registry {
	r := &Registry{
		builders:     make(map[string]Builder),
		descriptions: make(map[string]string),
	}

	r.Register("freefall", "single ball in free fall, no collision", FreeFall)
	r.Register("bounce", "single ball bouncing on the ground plane", Bounce)
	r.Register("chain", "balls joined by hinges, swinging onto the ground", HingeChain)

	return r
}

func (r *Registry) Register(name, description string, b Builder) {
	r.builders[name] = b
	r.descriptions[name] = description
}

// Build validates cfg and constructs the named scene.
func (r *Registry) Build(name string, cfg *config.Config) (*Scene, error) {
	b, ok := r.builders[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownScene, name)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return b(cfg)
}

func (r *Registry) Describe(name string) string {
	return r.descriptions[name]
}

func (r *Registry) List() []string {
	names := make([]string, 0, len(r.builders))
	for name := range r.builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
