// Copyright (c) 2026 Treadstock. All rights reserved.
// Author: dev@treadstock.io

// PostgreSQL implementation of the account repository.
//
// # Error Mapping
//
// Storage-specific errors (like pgx.ErrNoRows) are mapped to domain-friendly
// [apperr.AppError] types to avoid leaking storage implementation details.
// Uniqueness violations surface as the same field-specific Conflict the
// service-level pre-checks produce, because the database constraint — not the
// in-process check — is the authority for email/username uniqueness.
package account

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/treadstock/treadstock/internal/platform/apperr"
	"github.com/treadstock/treadstock/internal/platform/dberr"
)

// Unique constraint names declared in the schema migration.
const (
	constraintEmail    = "account_email_key"
	constraintUsername = "account_username_key"
)

// PostgresRepository implements the Repository interface using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL implementation of the Repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

/*
Create persists a new account record into the users.account table.

Description: Inserts the row and hydrates the database-assigned numeric ID
back onto the entity.

Parameters:
  - context: context.Context
  - account: *Account (Entity to persist; ID populated on success)

Returns:
  - error: apperr.DuplicateEmail / apperr.DuplicateUsername on uniqueness
    violations, or connectivity errors
*/
func (repository *PostgresRepository) Create(context context.Context, account *Account) error {
	const query = `
		INSERT INTO users.account (email, username, passwordhash, isactive, createdat)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	if account.CreatedAt.IsZero() {
		account.CreatedAt = time.Now()
	}

	err := repository.pool.QueryRow(context, query,
		account.Email,
		account.Username,
		account.PasswordHash,
		account.IsActive,
		account.CreatedAt,
	).Scan(&account.ID)

	if err != nil {
		// Concurrent registration race: the constraint fires even when the
		// service-level pre-check passed moments earlier.
		if dberr.IsUniqueViolation(err, constraintEmail) {
			return apperr.DuplicateEmail()
		}
		if dberr.IsUniqueViolation(err, constraintUsername) {
			return apperr.DuplicateUsername()
		}
		return dberr.Wrap(fmt.Errorf("postgres_account_repo_create_failed: %w", err))
	}

	return nil
}

/*
FindByEmail retrieves an account record by its unique email address.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - *Account: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresRepository) FindByEmail(context context.Context, email string) (*Account, error) {
	const query = `
		SELECT id, email, username, passwordhash, isactive, createdat
		FROM users.account
		WHERE email = $1`

	return repository.scanOne(context, query, email, "Account not found with this email")
}

/*
FindByUsername retrieves an account record by its unique username.

Description: Standard lookup for authentication and identity resolution.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - *Account: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresRepository) FindByUsername(context context.Context, username string) (*Account, error) {
	const query = `
		SELECT id, email, username, passwordhash, isactive, createdat
		FROM users.account
		WHERE username = $1`

	return repository.scanOne(context, query, username, "Account not found with this username")
}

/*
FindByID retrieves an account record by its numeric ID.

Parameters:
  - context: context.Context
  - id: int64

Returns:
  - *Account: Hydrated account entity
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresRepository) FindByID(context context.Context, id int64) (*Account, error) {
	const query = `
		SELECT id, email, username, passwordhash, isactive, createdat
		FROM users.account
		WHERE id = $1`

	return repository.scanOne(context, query, id, "Account not found")
}

// scanOne executes a single-row account query and maps pgx.ErrNoRows to a 404.
func (repository *PostgresRepository) scanOne(context context.Context, query string, arg any, notFoundMsg string) (*Account, error) {
	account := &Account{}
	err := repository.pool.QueryRow(context, query, arg).Scan(
		&account.ID,
		&account.Email,
		&account.Username,
		&account.PasswordHash,
		&account.IsActive,
		&account.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			notFound := apperr.NotFound("Account")
			notFound.Message = notFoundMsg
			return nil, notFound
		}
		return nil, dberr.Wrap(fmt.Errorf("postgres_account_repo_find_failed: %w", err))
	}

	return account, nil
}
