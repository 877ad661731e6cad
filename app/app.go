// Package app assembles the bot: configuration, logging, the vocabulary
// client, session storage and the scene registry.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"

	"github.com/burlang/tolibot/app/scenes"
	"github.com/burlang/tolibot/app/storage"
	coreconfig "github.com/burlang/tolibot/core/config"
	"github.com/burlang/tolibot/core/database"
	"github.com/burlang/tolibot/core/logger"
	"github.com/burlang/tolibot/core/telegram/scene"
	"github.com/burlang/tolibot/core/tunnel"
	"github.com/burlang/tolibot/core/vocabulary"
)

// App holds the wired application components.
type App struct {
	cfg    *Config
	vocab  *vocabulary.Client
	engine *scene.Engine
	db     *sqlx.DB
}

// Bootstrap initializes logging, storage and the scene machine from config.
func Bootstrap(ctx context.Context, cfg *Config) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("app: nil config")
	}
	if err := logger.Init(cfg.CoreConfig()); err != nil {
		return nil, fmt.Errorf("app: logger init: %w", err)
	}

	vocab := vocabulary.NewClient(cfg.Vocabulary)

	var (
		store scene.Store
		db    *sqlx.DB
	)
	switch cfg.Session.Backend {
	case SessionBackendPostgres:
		if err := database.RunMigrations(cfg.Database); err != nil {
			return nil, err
		}
		conn, err := database.Connect(cfg.Database)
		if err != nil {
			return nil, err
		}
		db = conn
		store = storage.NewSessionStore(db, scenes.Home)
	default:
		store = scene.NewMemoryStore(scenes.Home)
	}
	logger.APP.Info("session store ready",
		slog.String("event", "session.store"),
		slog.String("backend", cfg.Session.Backend),
	)

	if err := resolveWebhookURL(ctx, cfg); err != nil {
		return nil, err
	}

	reg, err := scenes.BuildRegistry(scenes.Deps{
		Vocab:       vocab,
		IsModerator: cfg.Telegram.IsModerator,
		PageSize:    cfg.Vocabulary.PageSize,
	})
	if err != nil {
		return nil, err
	}

	return &App{
		cfg:    cfg,
		vocab:  vocab,
		engine: scene.NewEngine(reg, store),
		db:     db,
	}, nil
}

// resolveWebhookURL fills webhook.url from the local tunnel agent when webhook
// mode is requested without an explicit public URL.
func resolveWebhookURL(ctx context.Context, cfg *Config) error {
	if cfg.Telegram.RunMode != coreconfig.RunModeWebhook {
		return nil
	}
	if cfg.Webhook.URL != "" || !cfg.Tunnel.Enabled {
		return nil
	}
	url, err := tunnel.PublicURL(ctx, cfg.Tunnel.AgentURL)
	if err != nil {
		return fmt.Errorf("app: webhook url discovery: %w", err)
	}
	cfg.Webhook.URL = url
	return nil
}
