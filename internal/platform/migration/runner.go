// Copyright (c) 2026 Treadstock. All rights reserved.
// Author: dev@treadstock.io

// Package migration runs the SQL schema migrations at startup so the API
// never serves traffic against an out-of-date schema.
package migration

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	// Registers the "pgx5" database scheme.
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	// Registers the "file" source scheme for on-disk .sql migrations.
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// RunUp applies every pending up-migration from migrationsPath against the
// database at dsn. A dirty schema (a previous run died mid-migration) is
// refused outright; it needs an operator, not a retry.
func RunUp(dsn string, migrationsPath string, logger *slog.Logger) error {
	migrator, err := migrate.New("file://"+migrationsPath, pgx5URL(dsn))
	if err != nil {
		return fmt.Errorf("migration: failed to initialize: %w", err)
	}
	defer closeMigrator(migrator, logger)

	migrator.Log = &migrateLogger{logger: logger}

	version, dirty, err := migrator.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("migration: failed to get current version: %w", err)
	}
	if dirty {
		return fmt.Errorf("migration: database is in a dirty state at version %d (manual intervention required)", version)
	}

	logger.Info("migration_started", slog.Int("current_version", int(version)))

	switch err := migrator.Up(); {
	case err == nil:
		applied, _, _ := migrator.Version()
		logger.Info("migration_successful",
			slog.Int("from_version", int(version)),
			slog.Int("to_version", int(applied)),
		)
		return nil
	case errors.Is(err, migrate.ErrNoChange):
		logger.Info("migration_already_up_to_date")
		return nil
	default:
		return fmt.Errorf("migration: up failed: %w", err)
	}
}

func closeMigrator(migrator *migrate.Migrate, logger *slog.Logger) {
	sourceErr, dbErr := migrator.Close()
	if sourceErr != nil {
		logger.Error("migration_source_close_failed", slog.Any("error", sourceErr))
	}
	if dbErr != nil {
		logger.Error("migration_db_close_failed", slog.Any("error", dbErr))
	}
}

// pgx5URL rewrites postgres:// and postgresql:// DSNs to the pgx5:// scheme
// the golang-migrate pgx/v5 driver registers under.
func pgx5URL(dsn string) string {
	for _, scheme := range []string{"postgres://", "postgresql://"} {
		if strings.HasPrefix(dsn, scheme) {
			return "pgx5://" + strings.TrimPrefix(dsn, scheme)
		}
	}
	return dsn
}

// migrateLogger bridges golang-migrate's log interface onto slog at debug
// level.
type migrateLogger struct {
	logger  *slog.Logger
	verbose bool
}

func (l *migrateLogger) Printf(format string, args ...any) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

func (l *migrateLogger) Verbose() bool { return l.verbose }
