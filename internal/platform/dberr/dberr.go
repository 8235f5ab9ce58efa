// Copyright (c) 2026 Treadstock. All rights reserved.
// Author: dev@treadstock.io

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"errors"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/treadstock/treadstock/internal/platform/apperr"
)

var (
	// ErrNotFound is a standard error returned when a queried row doesn't exist.
	ErrNotFound = apperr.NotFound("Resource")
)

// Wrap classifies a database error into an [apperr.AppError]. Stores map
// their resource-specific cases first (named constraints, owner-scoped
// misses) and route every remaining error through Wrap so nothing leaks raw
// to the client; the original error stays in the chain for logging.
func Wrap(err error) error {
	if err == nil {
		return nil
	}

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	// 2. Unique constraint violations become Conflicts
	if IsUniqueViolation(err, "") {
		return apperr.Conflict("Resource already exists")
	}

	// 3. Unknown query errors become Internal Server Errors
	return apperr.Internal(err)
}

// IsUniqueViolation reports whether err is a PostgreSQL unique-constraint
// violation (SQLSTATE 23505), optionally on the named constraint.
//
// # Concurrency
//
// Two concurrent registrations with the same username constitute a race the
// in-process checks cannot close; the database constraint is the authority,
// and callers translate this classification into the same "already registered"
// rejection as the pre-check.
func IsUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgerrcode.UniqueViolation {
		return false
	}
	if constraint == "" {
		return true
	}
	return strings.Contains(pgErr.ConstraintName, constraint)
}
