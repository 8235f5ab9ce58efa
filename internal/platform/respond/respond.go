// Copyright (c) 2026 Treadstock. All rights reserved.
// Author: dev@treadstock.io

// Package respond serializes handler results into the API's JSON envelopes.
//
// Success bodies wrap their payload in {"data": ...}; list bodies add a
// {"meta": ...} pagination block; failures render the AppError fields. The
// frontend relies on these three shapes and nothing else.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/treadstock/treadstock/internal/platform/apperr"
	"github.com/treadstock/treadstock/internal/platform/ctxkey"
	"github.com/treadstock/treadstock/pkg/pagination"
)

type successEnvelope struct {
	Data interface{} `json:"data"`
}

type paginatedEnvelope struct {
	Data interface{}     `json:"data"`
	Meta pagination.Meta `json:"meta"`
}

type errorEnvelope struct {
	Error   string              `json:"error"`
	Code    string              `json:"code"`
	Details []apperr.FieldError `json:"details,omitempty"`
}

// JSON writes the payload with the given status. Encoding failures are
// ignored; by then the status line has already gone out.
func JSON(writer http.ResponseWriter, statusCode int, payload interface{}) {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(statusCode)
	_ = json.NewEncoder(writer).Encode(payload)
}

// OK writes 200 with the payload in the success envelope.
func OK(writer http.ResponseWriter, data interface{}) {
	JSON(writer, http.StatusOK, successEnvelope{Data: data})
}

// Created writes 201 with the payload in the success envelope.
func Created(writer http.ResponseWriter, data interface{}) {
	JSON(writer, http.StatusCreated, successEnvelope{Data: data})
}

// Paginated writes 200 with the list payload plus its pagination block.
func Paginated(writer http.ResponseWriter, data interface{}, metadata pagination.Meta) {
	JSON(writer, http.StatusOK, paginatedEnvelope{Data: data, Meta: metadata})
}

// NoContent writes 204.
func NoContent(writer http.ResponseWriter) {
	writer.WriteHeader(http.StatusNoContent)
}

// Error renders err as an API failure. Errors without an AppError in their
// chain count as unexpected: logged in full, returned as a generic 500.
// Deliberate 5xx rejections log their cause with the correlation ID.
func Error(writer http.ResponseWriter, request *http.Request, err error) {
	appError := apperr.As(err)
	if appError == nil {
		requestLogger(request).ErrorContext(request.Context(), "unhandled_error_swallowed",
			slog.String("error", err.Error()),
			slog.String("request_id", requestID(request)),
		)
		appError = apperr.Internal(err)
	} else if appError.HTTPStatus >= 500 {
		requestLogger(request).ErrorContext(request.Context(), "api_server_error",
			slog.String("code", appError.Code),
			slog.String("request_id", requestID(request)),
			slog.Any("cause", appError.Cause),
		)
	}

	JSON(writer, appError.HTTPStatus, errorEnvelope{
		Error:   appError.Message,
		Code:    appError.Code,
		Details: appError.Details,
	})
}

func requestLogger(request *http.Request) *slog.Logger {
	if logger, ok := request.Context().Value(ctxkey.KeyLogger).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return slog.Default()
}

func requestID(request *http.Request) string {
	id, _ := request.Context().Value(ctxkey.KeyRequestID).(string)
	return id
}
