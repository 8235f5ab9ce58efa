// Copyright (c) 2026 Treadstock. All rights reserved.
// Author: dev@treadstock.io

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/treadstock/treadstock/internal/platform/apperr"
	"github.com/treadstock/treadstock/internal/platform/ctxutil"
	"github.com/treadstock/treadstock/internal/platform/validate"
	"github.com/treadstock/treadstock/internal/users/account"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: interface{} (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
IntParam retrieves a named URL parameter and parses it as a positive int64.

Returns:
  - int64: Parsed value
  - error: apperr.ValidationError for non-numeric or non-positive values
*/
func IntParam(request *http.Request, name string) (int64, error) {
	raw := chi.URLParam(request, name)
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value < 1 {
		return 0, validate.RequiredError(name, "Must be a positive integer")
	}
	return value, nil
}

/*
Caller extracts the resolved account identity from the request context.

Returns nil if the request is not authenticated.
*/
func Caller(request *http.Request) *account.Account {
	return ctxutil.GetAccount(request.Context())
}

/*
RequiredCaller ensures the request is authenticated and returns the caller.

Returns:
  - *account.Account: The resolved caller identity
  - error: apperr.Unauthorized if the request is not authenticated
*/
func RequiredCaller(request *http.Request) (*account.Account, error) {
	caller := ctxutil.GetAccount(request.Context())
	if caller == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}
	return caller, nil
}

/*
RequiredCallerID returns the numeric account ID of the currently logged-in user.

This — never any client-supplied identity parameter — is the value used to
scope all owned-data access.

Returns:
  - int64: Account ID
  - error: apperr.Unauthorized if not authenticated
*/
func RequiredCallerID(request *http.Request) (int64, error) {
	caller, err := RequiredCaller(request)
	if err != nil {
		return 0, err
	}
	return caller.ID, nil
}
