package scene

import (
	"context"
	"fmt"

	"github.com/burlang/tolibot/core/logger"
	"log/slog"
)

// Registry is the fixed catalog of scenes, built once at startup and
// immutable during dispatch.
type Registry struct {
	home    ID
	scenes  map[ID]*Scene
	globals map[string]ActionHandlerFunc
}

// NewRegistry creates a registry whose designated home scene is home.
func NewRegistry(home ID) *Registry {
	return &Registry{
		home:    home,
		scenes:  make(map[ID]*Scene),
		globals: make(map[string]ActionHandlerFunc),
	}
}

// Add registers a scene. Duplicate ids are rejected.
func (r *Registry) Add(s *Scene) error {
	if s == nil || s.id == "" {
		return fmt.Errorf("scene registry: invalid scene")
	}
	if _, exists := r.scenes[s.id]; exists {
		logger.Warn(context.Background(), "tg", "register.scene.duplicate",
			slog.String("scene", string(s.id)),
		)
		return fmt.Errorf("scene already registered: %s", s.id)
	}
	r.scenes[s.id] = s
	return nil
}

// Global binds an action key available regardless of the active scene.
// Scene-scoped bindings take precedence.
func (r *Registry) Global(key string, h ActionHandlerFunc) {
	if key != "" && h != nil {
		r.globals[key] = h
	}
}

// Scene returns the scene registered under id.
func (r *Registry) Scene(id ID) (*Scene, bool) {
	s, ok := r.scenes[id]
	return s, ok
}

// Home returns the designated home scene id.
func (r *Registry) Home() ID {
	return r.home
}

func (r *Registry) global(key string) (ActionHandlerFunc, bool) {
	h, ok := r.globals[key]
	return h, ok
}
