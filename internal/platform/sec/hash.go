// Copyright (c) 2026 Treadstock. All rights reserved.
// Author: dev@treadstock.io

package sec

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrMalformedVerifier reports that a stored password hash cannot be parsed.
//
// This is a data-corruption class error, deliberately distinct from a plain
// password mismatch: callers must not collapse it into "wrong password".
var ErrMalformedVerifier = errors.New("sec: stored password verifier is malformed")

// HashPassword hashes a plain-text password using the bcrypt algorithm.
//
// The salt is randomized per call, so two hashes of the same password will
// differ. Callers must never compare verifiers for equality; use
// [VerifyPassword] instead.
func HashPassword(plainTextPassword string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plainTextPassword), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("sec: failed to hash password: %w", err)
	}
	return string(hashedBytes), nil
}

// VerifyPassword compares a plain-text password with its stored verifier.
//
// A mismatch is the normal negative path: (false, nil). A verifier that bcrypt
// cannot parse at all yields (false, [ErrMalformedVerifier]) so the caller can
// treat corrupt stored data as an internal fault rather than a failed login.
// bcrypt performs the comparison in constant time.
func VerifyPassword(plainTextPassword, storedVerifier string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(storedVerifier), []byte(plainTextPassword))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, fmt.Errorf("%w: %w", ErrMalformedVerifier, err)
}
