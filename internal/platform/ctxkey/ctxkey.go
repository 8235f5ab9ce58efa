// Copyright (c) 2026 Treadstock. All rights reserved.
// Author: dev@treadstock.io

// Package ctxkey holds the context keys for per-request values. The
// unexported key type keeps them from colliding with string keys set by
// other packages.
package ctxkey

type key string

const (
	// KeyRequestID carries the X-Request-ID correlation value.
	KeyRequestID key = "request_id"

	// KeyAccount carries the resolved caller identity ([*account.Account]).
	KeyAccount key = "account"

	// KeyLogger carries the request-scoped [*log/slog.Logger].
	KeyLogger key = "logger"
)
