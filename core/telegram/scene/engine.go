package scene

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/burlang/tolibot/core/logger"
	"github.com/burlang/tolibot/core/telegram/callbacks"
	"github.com/burlang/tolibot/core/telegram/helpers"

	tele "gopkg.in/telebot.v4"
)

// maxTransitionDepth bounds chained scene switches triggered from enter
// handlers within a single dispatch.
const maxTransitionDepth = 5

// Engine routes incoming updates through the scene machine. Dispatches for
// the same user are serialized; different users proceed concurrently.
type Engine struct {
	reg   *Registry
	store Store
	locks sync.Map // int64 -> *sync.Mutex
}

// NewEngine creates an engine over a built registry and a session store.
func NewEngine(reg *Registry, store Store) *Engine {
	return &Engine{reg: reg, store: store}
}

func (e *Engine) userLock(userID int64) *sync.Mutex {
	mu, _ := e.locks.LoadOrStore(userID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// dispatch loads the session under the per-user lock, runs fn, applies the
// requested transition and persists the session.
func (e *Engine) dispatch(tc tele.Context, fn HandlerFunc) error {
	userID := int64(0)
	if sender := tc.Sender(); sender != nil {
		userID = sender.ID
	}

	mu := e.userLock(userID)
	mu.Lock()
	defer mu.Unlock()

	sess, err := e.store.Get(userID)
	if err != nil {
		logger.Warn(helpers.BuildContext(tc), "tg", "session.load_failed",
			slog.String("err", logger.SanitizeLimit(err.Error(), 128)),
		)
		sess = NewSession(e.reg.Home())
	}
	if _, ok := e.reg.Scene(sess.Scene); !ok {
		sess.ResetFor(e.reg.Home())
	}

	c := &Context{Context: tc, sess: sess}
	err = fn(c)
	if err == nil {
		err = e.applyTransition(c)
	}

	if putErr := e.store.Put(userID, sess); putErr != nil {
		logger.Warn(helpers.BuildContext(tc), "tg", "session.save_failed",
			slog.String("err", logger.SanitizeLimit(putErr.Error(), 128)),
		)
		if err == nil {
			err = putErr
		}
	}
	return err
}

func (e *Engine) applyTransition(c *Context) error {
	for depth := 0; depth < maxTransitionDepth; depth++ {
		t := c.pending
		c.pending = transition{}

		switch t.kind {
		case transNone:
			return nil

		case transStep:
			if t.step == NoStep {
				c.sess.Step = NoStep
				return nil
			}
			s, ok := e.reg.Scene(c.sess.Scene)
			if !ok {
				return fmt.Errorf("scene engine: step jump in unknown scene %q", c.sess.Scene)
			}
			if _, ok := s.step(t.step); !ok {
				logger.Warn(helpers.BuildContext(c.Context), "tg", "scene.step_unknown",
					slog.String("scene", string(c.sess.Scene)),
					slog.Int("step", t.step),
				)
				return nil
			}
			c.sess.Step = t.step
			return nil

		case transSwitch:
			target, ok := e.reg.Scene(t.scene)
			if !ok {
				logger.Warn(helpers.BuildContext(c.Context), "tg", "scene.unknown",
					slog.String("scene", string(t.scene)),
				)
				target, ok = e.reg.Scene(e.reg.Home())
				if !ok {
					return fmt.Errorf("scene engine: home scene %q not registered", e.reg.Home())
				}
			}
			c.sess.ResetFor(target.ID())
			if target.enter == nil {
				return nil
			}
			if err := target.enter(c); err != nil {
				return err
			}
			// enter may request a follow-up transition; loop applies it
		}
	}
	return fmt.Errorf("scene engine: transition chain exceeded depth %d", maxTransitionDepth)
}

// Enter moves the user into the given scene and renders its menu. Used by
// command handlers such as /start.
func (e *Engine) Enter(tc tele.Context, id ID) error {
	return e.dispatch(tc, func(c *Context) error {
		return c.SwitchScene(id)
	})
}

// HandleText routes a plain text message. With an active wizard step the text
// goes to the step handler; otherwise the user is returned to the home scene.
func (e *Engine) HandleText(tc tele.Context) error {
	return e.dispatch(tc, func(c *Context) error {
		if c.sess.Step >= 1 {
			if s, ok := e.reg.Scene(c.sess.Scene); ok {
				if h, found := s.step(c.sess.Step); found {
					return h(c)
				}
			}
		}
		return c.SwitchScene(e.reg.Home())
	})
}

// HandleMedia routes a non-text message (photo, sticker, voice and the like).
// Inside a wizard step the prompt handler asks the user for text again;
// outside a step the message is ignored.
func (e *Engine) HandleMedia(tc tele.Context, prompt HandlerFunc) error {
	return e.dispatch(tc, func(c *Context) error {
		if c.sess.Step >= 1 && prompt != nil {
			return prompt(c)
		}
		return nil
	})
}

// HandleCallback routes a button press by its decoded action key: bindings of
// the active scene first, then global bindings. An unmatched key is
// acknowledged without any visible effect.
func (e *Engine) HandleCallback(tc tele.Context) error {
	key, payload := callbacks.Parse(tc.Callback())
	return e.dispatch(tc, func(c *Context) error {
		if key != "" {
			if s, ok := e.reg.Scene(c.sess.Scene); ok {
				if h, p, found := s.resolveAction(key, payload); found {
					return h(c, p)
				}
			}
			if h, ok := e.reg.global(key); ok {
				return h(c, payload)
			}
		}
		logger.Debug(helpers.BuildContext(c.Context), "tg", "action.unmatched",
			slog.String("cb_key", key),
			slog.String("scene", string(c.sess.Scene)),
		)
		return c.Respond()
	})
}
