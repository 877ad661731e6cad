package scene

import (
	tele "gopkg.in/telebot.v4"
)

type transitionKind uint8

const (
	transNone transitionKind = iota
	transSwitch
	transStep
)

type transition struct {
	kind  transitionKind
	scene ID
	step  int
}

// Context wraps tele.Context with the user's session and the transition the
// handler requests. It is valid only for the duration of one dispatch.
type Context struct {
	tele.Context

	sess    *Session
	pending transition
}

// Session returns the user's session for this dispatch.
func (c *Context) Session() *Session {
	return c.sess
}

// UserID returns the Telegram id of the user the dispatch belongs to.
func (c *Context) UserID() int64 {
	if sender := c.Sender(); sender != nil {
		return sender.ID
	}
	return 0
}

// Flow reads a scene-scoped scratch field.
func (c *Context) Flow(key string) (string, bool) {
	v, ok := c.sess.Flow[key]
	return v, ok
}

// SetFlow writes a scene-scoped scratch field. Fields survive step jumps and
// are dropped when the scene is switched.
func (c *Context) SetFlow(key, value string) {
	if c.sess.Flow == nil {
		c.sess.Flow = make(map[string]string)
	}
	c.sess.Flow[key] = value
}

// ClearFlow removes a scratch field.
func (c *Context) ClearFlow(key string) {
	delete(c.sess.Flow, key)
}

// Stay requests no scene or step change. It is the default; handlers call it
// for explicitness.
func (c *Context) Stay() error {
	c.pending = transition{}
	return nil
}

// SwitchScene requests a switch to another scene. The step is reset, scratch
// state is cleared, and the target scene's enter handler renders its menu.
func (c *Context) SwitchScene(id ID) error {
	c.pending = transition{kind: transSwitch, scene: id}
	return nil
}

// SelectStep requests a jump to a wizard step of the active scene. Scratch
// state accumulated so far is preserved.
func (c *Context) SelectStep(step int) error {
	c.pending = transition{kind: transStep, step: step}
	return nil
}

// LeaveStep requests leaving the active wizard step while keeping the scene,
// scratch state and pagination cursors.
func (c *Context) LeaveStep() error {
	c.pending = transition{kind: transStep, step: NoStep}
	return nil
}
