package scene

import "strings"

// HandlerFunc handles a dispatch positioned in a scene or step.
type HandlerFunc func(c *Context) error

// ActionHandlerFunc handles a named button action with its decoded payload.
type ActionHandlerFunc func(c *Context, payload string) error

type prefixBinding struct {
	prefix  string
	handler ActionHandlerFunc
}

// Scene is a static top-level conversational context: an enter handler that
// renders its menu, optional numbered wizard steps reached by SelectStep, and
// action bindings scoped to the scene.
type Scene struct {
	id       ID
	enter    HandlerFunc
	steps    map[int]HandlerFunc
	actions  map[string]ActionHandlerFunc
	prefixes []prefixBinding
}

// New creates an empty scene with the given id.
func New(id ID) *Scene {
	return &Scene{
		id:      id,
		steps:   make(map[int]HandlerFunc),
		actions: make(map[string]ActionHandlerFunc),
	}
}

// ID returns the scene identifier.
func (s *Scene) ID() ID {
	return s.id
}

// OnEnter registers the handler invoked whenever the scene is (re-)entered.
// Entering always re-renders the menu from scratch.
func (s *Scene) OnEnter(h HandlerFunc) *Scene {
	s.enter = h
	return s
}

// OnStep registers a wizard step handler. Steps are numbered from 1; step 0
// is by convention the menu rendered by OnEnter.
func (s *Scene) OnStep(step int, h HandlerFunc) *Scene {
	if step >= 1 && h != nil {
		s.steps[step] = h
	}
	return s
}

// OnAction binds an exact action key to a handler.
func (s *Scene) OnAction(key string, h ActionHandlerFunc) *Scene {
	if key != "" && h != nil {
		s.actions[key] = h
	}
	return s
}

// OnActionPrefix binds a parameterized action. The handler receives the
// callback payload, or the embedded token for legacy keys shaped like
// "<prefix>_<token>".
func (s *Scene) OnActionPrefix(prefix string, h ActionHandlerFunc) *Scene {
	if prefix != "" && h != nil {
		s.prefixes = append(s.prefixes, prefixBinding{prefix: prefix, handler: h})
	}
	return s
}

func (s *Scene) step(i int) (HandlerFunc, bool) {
	h, ok := s.steps[i]
	return h, ok
}

// resolveAction finds the handler for an action key. Exact bindings take
// precedence over prefix bindings.
func (s *Scene) resolveAction(key, payload string) (ActionHandlerFunc, string, bool) {
	if h, ok := s.actions[key]; ok {
		return h, payload, true
	}
	for _, b := range s.prefixes {
		if key == b.prefix {
			return b.handler, payload, true
		}
		if strings.HasPrefix(key, b.prefix+"_") {
			return b.handler, key[len(b.prefix)+1:], true
		}
	}
	return nil, "", false
}
