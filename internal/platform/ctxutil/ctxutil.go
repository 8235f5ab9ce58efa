// Copyright (c) 2026 Treadstock. All rights reserved.
// Author: dev@treadstock.io

// Package ctxutil reads and writes the per-request context values keyed by
// ctxkey: correlation ID, request logger, and resolved caller identity.
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/treadstock/treadstock/internal/platform/ctxkey"
	"github.com/treadstock/treadstock/internal/users/account"
)

// # Request Tracing

// WithRequestID returns a new context with the provided request ID attached.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxkey.KeyRequestID, id)
}

// GetRequestID retrieves the request ID from the context.
// Returns an empty string if not found.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxkey.KeyRequestID).(string)
	return id
}

// # Structured Logging

// WithLogger returns a new context with the provided logger attached.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxkey.KeyLogger, logger)
}

// GetLogger retrieves the logger from the context.
// If no logger is found, it returns the global default logger.
func GetLogger(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(ctxkey.KeyLogger).(*slog.Logger)
	if !ok {
		return slog.Default()
	}
	return logger
}

// # Identity & Access

// WithAccount returns a new context with the resolved caller identity attached.
func WithAccount(ctx context.Context, acc *account.Account) context.Context {
	return context.WithValue(ctx, ctxkey.KeyAccount, acc)
}

// GetAccount retrieves the resolved [*account.Account] from the context.
// Returns nil for anonymous requests.
func GetAccount(ctx context.Context) *account.Account {
	acc, ok := ctx.Value(ctxkey.KeyAccount).(*account.Account)
	if !ok {
		return nil
	}
	return acc
}
