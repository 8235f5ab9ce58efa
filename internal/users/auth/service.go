// Copyright (c) 2026 Treadstock. All rights reserved.
// Author: dev@treadstock.io

/*
Package auth implements the authentication and authorization core.

It handles credential issuance (registration and login), the token lifecycle,
and per-request identity resolution for every protected operation.

Architecture:

  - Service: Orchestrates business logic (Register, Login, ResolveIdentity).
  - Repository: Abstracted account-lookup capability (Postgres behind an interface).
  - Security: Bcrypt verifiers and HMAC-signed tokens via internal/platform/sec.

The service is constructed with an immutable token configuration so tests can
inject distinct keys and lifetimes per case.
*/
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/treadstock/treadstock/internal/platform/apperr"
	"github.com/treadstock/treadstock/internal/platform/sec"
	"github.com/treadstock/treadstock/internal/users/account"
)

// # Contracts & Types

// TokenCodec defines the contract for issuing and verifying access tokens.
type TokenCodec interface {
	// Encode creates a signed token asserting the given subject, expiring
	// after the given lifetime.
	Encode(subject string, lifetime time.Duration) (string, error)

	// Decode verifies a token string and returns its claims, or one of the
	// sec sentinel errors on rejection.
	Decode(tokenString string) (*sec.Claims, error)
}

// Rejection messages. Login failures are deliberately identical for "no such
// user" and "wrong password" so the API never confirms whether a username
// exists.
const (
	msgIncorrectCredentials = "Incorrect username or password"
	msgInvalidCredential    = "Could not validate credentials"
)

// Service implements the credential issuance flow and the identity resolver.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, registration,
// or login logic must be reviewed carefully.
type Service struct {
	accounts      account.Repository
	codec         TokenCodec
	tokenLifetime time.Duration
	logger        *slog.Logger
}

// NewService constructs a new auth [Service] with its dependencies.
//
// The token lifetime is fixed at construction: tokens issued by Register and
// Login expire exactly lifetime after issuance.
func NewService(accounts account.Repository, codec TokenCodec, tokenLifetime time.Duration, logger *slog.Logger) *Service {
	return &Service{
		accounts:      accounts,
		codec:         codec,
		tokenLifetime: tokenLifetime,
		logger:        logger,
	}
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new account.
type RegisterInput struct {
	Email    string
	Username string
	Password string
}

// Credentials pairs a created or authenticated account with its freshly
// issued token. The account never carries its password verifier outward.
type Credentials struct {
	Account *account.Account
	Token   string
}

/*
Register validates, hashes, and persists a brand new account, then issues
its first token.

Description: Precondition checks run in fixed order — email first, then
username — each producing a distinct rejection. The persistence layer's
uniqueness constraints back the same checks against concurrent registrations.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *Credentials: Created account (verifier omitted) plus token
  - error: apperr.DuplicateEmail, apperr.DuplicateUsername, or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*Credentials, error) {

	// Verify email uniqueness first; precedence is part of the contract.
	if _, err := service.accounts.FindByEmail(context, input.Email); err == nil {
		return nil, apperr.DuplicateEmail()
	}

	// Username is checked only after the email check passed.
	if _, err := service.accounts.FindByUsername(context, input.Username); err == nil {
		return nil, apperr.DuplicateUsername()
	}

	// Prevent storing plain-text passwords. Bcrypt is deliberately slow;
	// that cost is the point and must not be optimized away.
	verifier, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	created := &account.Account{
		Email:        input.Email,
		Username:     input.Username,
		PasswordHash: verifier,
		IsActive:     true,
	}

	// Persist. The repository translates constraint races into the same
	// Duplicate* rejections the pre-checks produce.
	if err := service.accounts.Create(context, created); err != nil {
		return nil, err
	}

	token, err := service.issueToken(created.Username)
	if err != nil {
		return nil, err
	}

	return &Credentials{Account: created, Token: token}, nil
}

// # Authentication Flow

/*
Login validates credentials and issues a fresh token.

Description: Looks up the account by username and performs a constant-time
password comparison. An unknown username and a wrong password yield the
identical generic rejection to prevent username enumeration.

Parameters:
  - context: context.Context
  - username: string
  - password: string

Returns:
  - *Credentials: Account plus newly issued token
  - error: apperr.Unauthorized (generic) or internal failures
*/
func (service *Service) Login(context context.Context, username, password string) (*Credentials, error) {
	found, err := service.accounts.FindByUsername(context, username)
	if err != nil {
		// Unknown user. Same message as a wrong password.
		return nil, apperr.Unauthorized(msgIncorrectCredentials)
	}

	matches, err := sec.VerifyPassword(password, found.PasswordHash)
	if err != nil {
		// A malformed verifier is data corruption, not a failed login. It is
		// fatal to this one attempt and must not masquerade as "wrong password".
		service.logger.ErrorContext(context, "auth_verifier_malformed",
			slog.Int64("account_id", found.ID),
			slog.Any("error", err),
		)
		return nil, apperr.Internal(err)
	}

	if !matches {
		return nil, apperr.Unauthorized(msgIncorrectCredentials)
	}

	token, err := service.issueToken(found.Username)
	if err != nil {
		return nil, err
	}

	return &Credentials{Account: found, Token: token}, nil
}

// # Identity Resolution

/*
ResolveIdentity turns a transmitted token into the authenticated account.

Description: This is the single gate every protected operation passes through
before consulting or mutating owned data. Each call is independent — decode
either completes or rejects synchronously, with no retries.

# Flow

 1. Decode via the token codec. Any rejection (bad signature, expired,
    malformed, missing subject) terminates with Unauthenticated.
 2. Look up the account whose username equals the claims' subject. A token
    for a deleted or renamed account is never valid, even if
    cryptographically well-formed and unexpired.
 3. Return the resolved account. Its numeric ID — never any client-supplied
    identity — scopes all subsequent data access.

The external rejection is one generic message; the underlying reason stays
distinguishable in the logs.

Parameters:
  - context: context.Context
  - tokenString: string

Returns:
  - *account.Account: The authenticated caller
  - error: apperr.Unauthorized on any rejection
*/
func (service *Service) ResolveIdentity(context context.Context, tokenString string) (*account.Account, error) {
	claims, err := service.codec.Decode(tokenString)
	if err != nil {
		service.logger.DebugContext(context, "auth_token_rejected",
			slog.String("reason", rejectionReason(err)),
		)
		return nil, apperr.Unauthorized(msgInvalidCredential)
	}

	resolved, err := service.accounts.FindByUsername(context, claims.Subject)
	if err != nil {
		service.logger.DebugContext(context, "auth_token_rejected",
			slog.String("reason", "unknown_subject"),
		)
		return nil, apperr.Unauthorized(msgInvalidCredential)
	}

	return resolved, nil
}

// # Helpers

// issueToken signs a fresh token asserting the username, expiring after the
// configured lifetime.
func (service *Service) issueToken(username string) (string, error) {
	token, err := service.codec.Encode(username, service.tokenLifetime)
	if err != nil {
		return "", fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}
	return token, nil
}

// rejectionReason maps codec sentinel errors to log-friendly labels.
func rejectionReason(err error) string {
	switch {
	case errors.Is(err, sec.ErrTokenExpired):
		return "expired"
	case errors.Is(err, sec.ErrTokenSignature):
		return "signature_invalid"
	case errors.Is(err, sec.ErrMissingSubject):
		return "subject_missing"
	default:
		return "malformed"
	}
}
