package app

import (
	"context"
	"log/slog"

	"github.com/burlang/tolibot/app/scenes"
	"github.com/burlang/tolibot/core/logger"
	"github.com/burlang/tolibot/core/telegram"
	"github.com/burlang/tolibot/core/telegram/commands"
	"github.com/burlang/tolibot/core/telegram/helpers"
	"github.com/burlang/tolibot/core/telegram/middleware"
	"github.com/burlang/tolibot/core/vocabulary"

	tele "gopkg.in/telebot.v4"
)

// TelegramRunOptions builds the bot wiring: commands, update routes and
// global middlewares.
func (a *App) TelegramRunOptions() (telegram.RunOptions, error) {
	reg := telegram.NewRegistry()
	reg.RegisterCommand("/start", commands.Command{
		Handler:     a.handleStart,
		Description: "Перезапустить бота",
		Aliases:     []string{"/home"},
	})

	var routes []telegram.Route
	for name, cmd := range reg.Commands() {
		cmd := cmd
		handlerName := middleware.NormalizeHandlerName(name)
		handler := func(c tele.Context) error {
			return middleware.HandleWithSummary(c, handlerName, func() error {
				return cmd.Handler(c)
			})
		}
		routes = append(routes, telegram.Route{Endpoint: name, Handler: handler})
		for _, alias := range cmd.Aliases {
			routes = append(routes, telegram.Route{Endpoint: alias, Handler: handler})
		}
	}

	mediaHandler := func(c tele.Context) error {
		return middleware.HandleWithSummary(c, "on_media", func() error {
			return a.engine.HandleMedia(c, scenes.TextOnlyReminder)
		})
	}

	routes = append(routes,
		telegram.Route{Endpoint: tele.OnMedia, Handler: mediaHandler},
		telegram.Route{Endpoint: tele.OnSticker, Handler: mediaHandler},
		telegram.Route{
			Endpoint: tele.OnText,
			Handler: func(c tele.Context) error {
				return middleware.HandleWithSummary(c, "on_text", func() error {
					return a.engine.HandleText(c)
				})
			},
		},
		telegram.Route{
			Endpoint: tele.OnCallback,
			Handler: func(c tele.Context) error {
				return middleware.HandleWithSummary(c, "on_callback", func() error {
					if err := a.engine.HandleCallback(c); err != nil {
						return err
					}
					// stop the button spinner; harmless when the handler
					// already answered the query
					_ = c.Respond()
					return nil
				})
			},
		},
	)

	return telegram.RunOptions{
		Config:   a.cfg.CoreConfig(),
		Registry: reg,
		Middlewares: []telegram.Middleware{
			{Name: "recover", Use: middleware.RecoverMiddleware},
			{Name: "logging", Use: middleware.LoggerMiddleware},
		},
		Routes: routes,
		OnStop: func(ctx context.Context, rt telegram.Runtime) error {
			if a.db != nil {
				return a.db.Close()
			}
			return nil
		},
	}, nil
}

// handleStart makes sure the backend knows the user, then opens the home menu.
func (a *App) handleStart(c tele.Context) error {
	ctx := helpers.BuildContext(c)
	if user := c.Sender(); user != nil {
		exists, err := a.vocab.IsUserRegistered(ctx, user.ID)
		switch {
		case err != nil:
			logger.Warn(ctx, "app", "user.check_failed",
				slog.String("err", logger.SanitizeLimit(err.Error(), 128)),
			)
		case !exists:
			regErr := a.vocab.RegisterUser(ctx, vocabulary.TelegramUser{
				ID:        user.ID,
				Username:  user.Username,
				FirstName: user.FirstName,
			})
			if regErr != nil {
				logger.Warn(ctx, "app", "user.register_failed",
					slog.String("err", logger.SanitizeLimit(regErr.Error(), 128)),
				)
			} else {
				logger.Info(ctx, "app", "user.registered")
			}
		}
	}
	return a.engine.Enter(c, scenes.Home)
}
