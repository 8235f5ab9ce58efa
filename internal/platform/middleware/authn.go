// Copyright (c) 2026 Treadstock. All rights reserved.
// Author: dev@treadstock.io

// Package middleware provides the HTTP middleware chain for the Treadstock API server.
//
// # Architecture
//
// Middleware intercepts incoming HTTP requests to apply global policies
// before they reach the domain handlers. This includes cross-cutting concerns
// like Logging, AuthN, Rate Limiting, and CORS.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/treadstock/treadstock/internal/platform/apperr"
	"github.com/treadstock/treadstock/internal/platform/ctxutil"
	"github.com/treadstock/treadstock/internal/platform/respond"
	"github.com/treadstock/treadstock/internal/users/account"
)

// IdentityResolver turns a transmitted token string into a definitive caller
// identity or a rejection.
//
// # Why an interface?
//
// Defining IdentityResolver here decouples the middleware from the auth
// service implementation, allowing us to easily inject mocks during unit testing.
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, tokenString string) (*account.Account, error)
}

// Authenticate extracts the bearer token and resolves the caller identity.
//
// # Flow
//  1. Check for 'Authorization: Bearer <token>' header.
//  2. If absent, request proceeds as anonymous.
//  3. If present, resolve the token via [IdentityResolver] — one decode plus
//     one account lookup; any rejection terminates the request with 401.
//  4. Inject the resolved [*account.Account] into the request context.
//
// Every protected operation downstream scopes its data access by the
// context account's numeric ID.
func Authenticate(resolver IdentityResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authHeader := request.Header.Get("Authorization")

			// ── 1. Anonymous Access ───────────────────────────────────────────
			if authHeader == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Format Validation ──────────────────────────────────────────
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				respond.Error(writer, request, apperr.Unauthorized("Invalid authorization format"))
				return
			}

			// ── 3. Identity Resolution ────────────────────────────────────────
			caller, err := resolver.ResolveIdentity(request.Context(), parts[1])
			if err != nil {
				respond.Error(writer, request, err)
				return
			}

			// ── 4. Context Injection ──────────────────────────────────────────
			ctx := ctxutil.WithAccount(request.Context(), caller)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth blocks requests that are not authenticated.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate].
//
// # Flow
//  1. Check if a resolved [*account.Account] exists in context.
//  2. If missing, abort with HTTP 401 Unauthorized.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		caller := ctxutil.GetAccount(request.Context())
		if caller == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}
