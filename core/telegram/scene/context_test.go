package scene

import (
	tele "gopkg.in/telebot.v4"
)

// fakeTeleContext implements the subset of tele.Context exercised by the
// engine and pager. Unimplemented methods panic through the embedded nil
// interface, which would flag an unexpected call in a test.
type fakeTeleContext struct {
	tele.Context

	user     *tele.User
	chat     *tele.Chat
	update   tele.Update
	callback *tele.Callback
	text     string

	store map[string]interface{}

	sent      []string
	edited    []string
	markups   []*tele.ReplyMarkup
	responses []*tele.CallbackResponse
	responded int

	editErr error
}

func newFakeContext(userID int64) *fakeTeleContext {
	return &fakeTeleContext{
		user:   &tele.User{ID: userID},
		chat:   &tele.Chat{ID: userID},
		update: tele.Update{ID: 1},
		store:  make(map[string]interface{}),
	}
}

func newFakeCallback(userID int64, data string) *fakeTeleContext {
	f := newFakeContext(userID)
	f.callback = &tele.Callback{Data: data}
	return f
}

func (f *fakeTeleContext) Sender() *tele.User        { return f.user }
func (f *fakeTeleContext) Chat() *tele.Chat          { return f.chat }
func (f *fakeTeleContext) Update() tele.Update       { return f.update }
func (f *fakeTeleContext) Callback() *tele.Callback  { return f.callback }
func (f *fakeTeleContext) Text() string              { return f.text }
func (f *fakeTeleContext) Get(key string) interface{} { return f.store[key] }
func (f *fakeTeleContext) Set(key string, val interface{}) {
	f.store[key] = val
}

func (f *fakeTeleContext) Send(what interface{}, opts ...interface{}) error {
	if s, ok := what.(string); ok {
		f.sent = append(f.sent, s)
	}
	f.captureMarkup(opts)
	return nil
}

func (f *fakeTeleContext) Edit(what interface{}, opts ...interface{}) error {
	if f.editErr != nil {
		return f.editErr
	}
	if s, ok := what.(string); ok {
		f.edited = append(f.edited, s)
	}
	f.captureMarkup(opts)
	return nil
}

func (f *fakeTeleContext) Respond(resp ...*tele.CallbackResponse) error {
	f.responded++
	if len(resp) > 0 {
		f.responses = append(f.responses, resp[0])
	}
	return nil
}

func (f *fakeTeleContext) captureMarkup(opts []interface{}) {
	for _, o := range opts {
		if so, ok := o.(*tele.SendOptions); ok {
			f.markups = append(f.markups, so.ReplyMarkup)
		}
		if rm, ok := o.(*tele.ReplyMarkup); ok {
			f.markups = append(f.markups, rm)
		}
	}
}

// lastMarkup returns the markup attached to the most recent outgoing message.
func (f *fakeTeleContext) lastMarkup() *tele.ReplyMarkup {
	if len(f.markups) == 0 {
		return nil
	}
	return f.markups[len(f.markups)-1]
}
