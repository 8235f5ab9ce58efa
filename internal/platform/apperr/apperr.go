// Copyright (c) 2026 Treadstock. All rights reserved.
// Author: dev@treadstock.io

/*
Package apperr carries typed application errors from the service layer to the
HTTP boundary.

Every rejection a handler can return is an [*AppError] holding a stable
machine-readable code, a client-safe message, and the HTTP status it maps to.
Storage and third-party failures are wrapped by [Internal] so their details
reach the server log but never the client. The respond package serializes
whatever [*AppError] it finds in an error chain; anything else becomes a
generic 500.
*/
package apperr

import (
	"errors"
	"net/http"
)

// AppError is the one error shape the API returns.
type AppError struct {
	// Code is the stable identifier clients branch on (e.g. "NOT_FOUND").
	Code string `json:"code"`
	// Message is safe to show to end users.
	Message string `json:"error"`
	// HTTPStatus selects the response status. Not serialized.
	HTTPStatus int `json:"-"`
	// Cause keeps the wrapped server-side error for logging only.
	Cause error `json:"-"`
	// Details lists per-field failures on validation rejections.
	Details []FieldError `json:"details,omitempty"`
}

// FieldError points a validation message at one input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *AppError) Error() string { return e.Message }

// Unwrap exposes the cause chain to [errors.Is] and [errors.As].
func (e *AppError) Unwrap() error { return e.Cause }

func newError(status int, code, message string) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: status}
}

// # Client Errors (4xx)

// NotFound builds the 404 rejection for a named resource, e.g.
// NotFound("Item") renders "Item not found". Owner-scoped lookups return
// this for foreign rows too, so callers cannot probe other accounts' data.
func NotFound(resource string) *AppError {
	return newError(http.StatusNotFound, "NOT_FOUND", resource+" not found")
}

// Unauthorized builds a 401 rejection.
func Unauthorized(msg string) *AppError {
	return newError(http.StatusUnauthorized, "UNAUTHORIZED", msg)
}

// Conflict builds a 409 rejection for unique-constraint collisions.
func Conflict(msg string) *AppError {
	return newError(http.StatusConflict, "CONFLICT", msg)
}

// ValidationError builds a 400 rejection, optionally itemized per field.
func ValidationError(msg string, details ...FieldError) *AppError {
	err := newError(http.StatusBadRequest, "VALIDATION_ERROR", msg)
	err.Details = details
	return err
}

// # Registration Rejections

// DuplicateEmail reports that the email already belongs to an account.
// Registration checks email before username, so when both collide this is
// the rejection the caller sees.
func DuplicateEmail() *AppError {
	err := newError(http.StatusConflict, "DUPLICATE_EMAIL", "Email already registered")
	err.Details = []FieldError{{Field: "email", Message: "Already registered"}}
	return err
}

// DuplicateUsername reports that the username is taken.
func DuplicateUsername() *AppError {
	err := newError(http.StatusConflict, "DUPLICATE_USERNAME", "Username already registered")
	err.Details = []FieldError{{Field: "username", Message: "Already registered"}}
	return err
}

// # Server Errors (5xx)

// Internal wraps an unexpected failure. The cause stays server-side; the
// client sees only the generic message.
func Internal(cause error) *AppError {
	err := newError(http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred")
	err.Cause = cause
	return err
}

// ServiceUnavailable builds a 503 rejection for features whose backing
// dependency is not configured or not reachable.
func ServiceUnavailable(msg string) *AppError {
	return newError(http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", msg)
}

// # Helpers

// As pulls the [*AppError] out of err's chain, or nil when there is none.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}
