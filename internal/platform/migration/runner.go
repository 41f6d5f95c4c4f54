// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package migration runs the SQL schema migrations under data/migrations
// through golang-migrate.
//
// The API server applies pending migrations at startup and the seed command
// does the same before loading fixtures, so the catalog and users schemas
// always exist before any repository touches them.
package migration

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	// Registers the "pgx5" database scheme.
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	// Registers the "file" source scheme.
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// RunUp applies every pending up migration. A database already at the
// latest version is not an error.
//
// # Parameters
//   - dsn: A postgres:// URL or a pgx5:// URL.
//   - migrationsPath: Directory holding the NNNNNN_name.{up,down}.sql files.
//   - logger: Receives migration events.
func RunUp(dsn string, migrationsPath string, logger *slog.Logger) error {
	return withMigrator(dsn, migrationsPath, logger, func(migrator *migrate.Migrate, from uint) error {
		logger.Info("migration_started", slog.Int("current_version", int(from)))

		err := migrator.Up()
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info("migration_already_up_to_date")
			return nil
		}
		if err != nil {
			return fmt.Errorf("migration: up failed: %w", err)
		}

		to, _, _ := migrator.Version()
		logger.Info("migration_successful", slog.Int("from_version", int(from)), slog.Int("to_version", int(to)))
		return nil
	})
}

// Reset rolls every migration back and reapplies them, leaving empty tables.
// It backs the seed command's -reset flag and must never run against a
// database whose data matters.
func Reset(dsn string, migrationsPath string, logger *slog.Logger) error {
	err := withMigrator(dsn, migrationsPath, logger, func(migrator *migrate.Migrate, from uint) error {
		logger.Warn("migration_reset_started", slog.Int("current_version", int(from)))

		if err := migrator.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("migration: down failed: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	return RunUp(dsn, migrationsPath, logger)
}

// withMigrator opens a migrator, refuses to work on a dirty database, and
// hands the current version to step.
func withMigrator(dsn, migrationsPath string, logger *slog.Logger, step func(*migrate.Migrate, uint) error) error {
	migrator, err := migrate.New("file://"+migrationsPath, convertToPgx5DSN(dsn))
	if err != nil {
		return fmt.Errorf("migration: failed to initialize: %w", err)
	}
	defer func() {
		sourceError, dbError := migrator.Close()
		if sourceError != nil {
			logger.Error("migration_source_close_failed", slog.Any("error", sourceError))
		}
		if dbError != nil {
			logger.Error("migration_db_close_failed", slog.Any("error", dbError))
		}
	}()

	migrator.Log = &migrateLogger{logger: logger}

	version, dirty, err := migrator.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("migration: failed to get current version: %w", err)
	}
	if dirty {
		return fmt.Errorf("migration: database is dirty at version %d, fix it with the migrate CLI", version)
	}

	return step(migrator, version)
}

// convertToPgx5DSN rewrites postgres:// and postgresql:// URLs to the pgx5:// scheme.
func convertToPgx5DSN(dsn string) string {
	for _, prefix := range []string{"postgres://", "postgresql://"} {
		if rest, ok := strings.CutPrefix(dsn, prefix); ok {
			return "pgx5://" + rest
		}
	}
	return dsn
}

// migrateLogger forwards golang-migrate output to slog at debug level.
type migrateLogger struct {
	logger *slog.Logger
}

func (l *migrateLogger) Printf(format string, args ...any) {
	l.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (l *migrateLogger) Verbose() bool {
	return l.logger.Enabled(context.Background(), slog.LevelDebug)
}
