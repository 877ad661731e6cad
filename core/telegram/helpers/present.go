package helpers

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/burlang/tolibot/core/logger"
	"github.com/burlang/tolibot/core/telegram/keyboard"

	tele "gopkg.in/telebot.v4"
)

// Present renders a text/keyboard pair as the response to the current update.
//
// When the update is a callback (button press) the originating message is
// edited in place; an edit that fails because the message was already edited
// or did not change is absorbed as a non-actionable race. Plain messages
// always get a fresh reply. The markup is never omitted so every message
// keeps a shape that later edits can target.
func Present(c tele.Context, text string, markup *tele.ReplyMarkup) error {
	if markup == nil {
		markup = keyboard.Empty()
	}
	opts := &tele.SendOptions{ParseMode: tele.ModeHTML, ReplyMarkup: markup}

	if c.Callback() == nil {
		return SendText(c, text, opts)
	}

	if err := c.Edit(text, opts); err != nil {
		if isStaleEdit(err) {
			logger.Debug(BuildContext(c), "tg", "present.edit_race",
				slog.String("status", "skip"),
				slog.String("err", logger.SanitizeLimit(err.Error(), 128)),
			)
			return nil
		}
		return err
	}
	return nil
}

func isStaleEdit(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, tele.ErrSameMessageContent) || errors.Is(err, tele.ErrCantEditMessage) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "message is not modified") ||
		strings.Contains(msg, "message can't be edited") ||
		strings.Contains(msg, "message to edit not found")
}
