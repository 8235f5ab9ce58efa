// Copyright (c) 2026 Treadstock. All rights reserved.
// Author: dev@treadstock.io

// Package validate checks request payloads at the transport boundary.
//
// A [Validator] chain runs every rule, collecting each failing field, and
// Err() folds the collected failures into one VALIDATION_ERROR so clients
// get the whole picture in a single response.
package validate

import (
	"fmt"
	"net/mail"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/treadstock/treadstock/internal/platform/apperr"
)

// ErrInvalidJSON rejects bodies that fail JSON decoding.
var ErrInvalidJSON = apperr.ValidationError("Invalid JSON payload")

// Validator accumulates field failures across a rule chain. Not safe for
// concurrent use; build one per request.
type Validator struct {
	errs []apperr.FieldError
}

func (v *Validator) fail(field, message string) *Validator {
	v.errs = append(v.errs, apperr.FieldError{Field: field, Message: message})
	return v
}

// Required rejects values that are empty after trimming whitespace.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		return v.fail(field, "This field is required")
	}
	return v
}

// MinLen and MaxLen bound the value's length in runes, not bytes.

func (v *Validator) MinLen(field, value string, min int) *Validator {
	if utf8.RuneCountInString(value) < min {
		return v.fail(field, fmt.Sprintf("Minimum %d characters", min))
	}
	return v
}

func (v *Validator) MaxLen(field, value string, max int) *Validator {
	if utf8.RuneCountInString(value) > max {
		return v.fail(field, fmt.Sprintf("Maximum %d characters", max))
	}
	return v
}

// Range rejects values outside [min, max].
func (v *Validator) Range(field string, value, min, max int) *Validator {
	if value < min || value > max {
		return v.fail(field, fmt.Sprintf("Must be between %d and %d", min, max))
	}
	return v
}

// NonNegative rejects values below zero.
func (v *Validator) NonNegative(field string, value int) *Validator {
	if value < 0 {
		return v.fail(field, "Must not be negative")
	}
	return v
}

// Email rejects values that do not parse as an RFC 5322 address.
func (v *Validator) Email(field, value string) *Validator {
	if _, err := mail.ParseAddress(value); err != nil {
		return v.fail(field, "Must be a valid email address")
	}
	return v
}

// OneOf rejects values outside the allowed set.
func (v *Validator) OneOf(field, value string, allowed ...string) *Validator {
	if !slices.Contains(allowed, value) {
		return v.fail(field, fmt.Sprintf("Must be one of: %s", strings.Join(allowed, ", ")))
	}
	return v
}

// Custom records a failure with a caller-supplied message when the
// condition holds. Used for rules the generic helpers cannot express,
// e.g. Custom("price", price < 0, "Price cannot be negative").
func (v *Validator) Custom(field string, failed bool, message string) *Validator {
	if failed {
		return v.fail(field, message)
	}
	return v
}

// HasErrors reports whether any rule in the chain has failed so far.
func (v *Validator) HasErrors() bool {
	return len(v.errs) > 0
}

// Err terminates the chain: nil when everything passed, otherwise one
// VALIDATION_ERROR carrying every collected field failure.
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return apperr.ValidationError("Validation failed", v.errs...)
}

// RequiredError builds a single-field VALIDATION_ERROR without a chain.
func RequiredError(field, message string) *apperr.AppError {
	return apperr.ValidationError("Validation failed", apperr.FieldError{
		Field:   field,
		Message: message,
	})
}
