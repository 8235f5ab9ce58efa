// Copyright (c) 2026 Treadstock. All rights reserved.
// Author: dev@treadstock.io

/*
Package account defines the registered-user entity and its data access contract.

# Architecture

This layer is the "Truth" of identity. The entity defined here has no external
dependencies; persistence is delegated to a repository implementation so the
auth core never issues raw queries.
*/
package account

import (
	"context"
	"time"
)

// # Domain Entity

// Account represents a registered user of the Treadstock platform.
//
// The numeric ID is assigned by the database at creation, is immutable, and is
// the scoping key for every owned resource. Email and username are each unique
// across all accounts; the database uniqueness constraints are the authority
// for that invariant.
type Account struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Explicitly omitted from JSON for security.
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

// # Data Access

// Repository defines the account-lookup capability consumed by the auth core.
type Repository interface {

	/*
		FindByID returns the account with the given numeric ID.

		Parameters:
		  - context: context.Context
		  - id: int64

		Returns:
		  - *Account: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByID(context context.Context, id int64) (*Account, error)

	/*
		FindByEmail returns the account with the given email.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *Account: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByEmail(context context.Context, email string) (*Account, error)

	/*
		FindByUsername returns the account with the given username.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - *Account: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByUsername(context context.Context, username string) (*Account, error)

	/*
		Create persists a brand-new account and assigns its numeric ID.

		Parameters:
		  - context: context.Context
		  - account: *Account (ID is populated on success)

		Returns:
		  - error: apperr.DuplicateEmail / apperr.DuplicateUsername on
		    uniqueness violations, or other persistence failures
	*/
	Create(context context.Context, account *Account) error
}
