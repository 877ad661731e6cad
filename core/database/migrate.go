package database

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/burlang/tolibot/core/logger"
	"log/slog"
)

// RunMigrations applies all up migrations from the configured migrations directory.
func RunMigrations(cfg Config) error {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Name, cfg.SSLMode,
	)

	dir := cfg.MigrationsDir
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("get working directory: %w", err)
		}
		dir = filepath.Join(cwd, "migrations")
	}
	sourceURL := "file://" + dir

	start := time.Now()
	m, err := migrate.New(sourceURL, dsn)
	if err != nil {
		logger.MIG.Error("migrate init failed",
			slog.String("event", "db.migrate"),
			slog.String("path", dir),
			slog.String("err", err.Error()),
		)
		return fmt.Errorf("migrate init: %w", err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil || dbErr != nil {
			logger.MIG.Warn("migrate close",
				slog.String("event", "db.migrate"),
				slog.Any("src_err", srcErr),
				slog.Any("db_err", dbErr),
			)
		}
	}()

	err = m.Up()
	switch {
	case err == nil:
		logger.MIG.Info("migrations applied",
			slog.String("event", "db.migrate"),
			slog.String("status", "ok"),
			slog.String("path", dir),
			slog.Duration("duration", logger.Took(start)),
		)
	case errors.Is(err, migrate.ErrNoChange):
		logger.MIG.Info("migrations up to date",
			slog.String("event", "db.migrate"),
			slog.String("status", "skip"),
			slog.String("path", dir),
		)
	default:
		logger.MIG.Error("migrations failed",
			slog.String("event", "db.migrate"),
			slog.String("path", dir),
			slog.String("err", err.Error()),
		)
		return fmt.Errorf("migrate up: %w", err)
	}
	return nil
}
