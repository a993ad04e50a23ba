package router

import (
	"github.com/aipalm/aipalm/internal/screen"
)

// Factory builds a screen. It receives the params staged before navigation.
type Factory func(params Params) screen.Screen

// Registry maps screen identifiers to factories.
type Registry struct {
	factories map[screen.ID]Factory
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[screen.ID]Factory)}
}

// Register binds id to f, replacing any earlier binding.
func (r *Registry) Register(id screen.ID, f Factory) *Registry {
	r.factories[id] = f
	return r
}

// Has reports whether id has a factory.
func (r *Registry) Has(id screen.ID) bool {
	_, ok := r.factories[id]
	return ok
}

// Validate checks that every required identifier has a factory. It is meant
// to run once at startup so wiring defects surface before the UI starts.
func (r *Registry) Validate(required ...screen.ID) error {
	var missing []string
	for _, id := range required {
		if !r.Has(id) {
			missing = append(missing, id.String())
		}
	}
	if len(missing) > 0 {
		return &ConfigError{Component: "router", Missing: missing}
	}
	return nil
}

func (r *Registry) build(id screen.ID, params Params) screen.Screen {
	return r.factories[id](params)
}
