// Copyright (c) 2026 Treadstock. All rights reserved.
// Author: dev@treadstock.io

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing) from
// the domain logic. It acts as an Infrastructure service injected into the
// Application layer via small interfaces (TokenIssuer, TokenVerifier).
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// # Failure Taxonomy

// Token rejection reasons. The external API collapses all of these into one
// generic "invalid credential" response; the distinction exists for logging
// and tests.
var (
	// ErrTokenExpired reports that the token's expiry has passed.
	ErrTokenExpired = errors.New("sec: token expired")

	// ErrTokenSignature reports a signature produced with a different key or
	// algorithm than currently configured. Treated as tampering.
	ErrTokenSignature = errors.New("sec: token signature invalid")

	// ErrTokenMalformed reports a token that cannot be parsed at all.
	ErrTokenMalformed = errors.New("sec: token malformed")

	// ErrMissingSubject reports a well-formed token whose subject claim is
	// absent or empty. Such a claims set must never be trusted.
	ErrMissingSubject = errors.New("sec: token subject missing")
)

// # Claims

// Claims represents the payload embedded inside an access token.
//
// The subject carries the username the token asserts; expiry is always set at
// issuance. Claims are never stored server-side — the signed token held by the
// client is the only record.
type Claims struct {
	jwt.RegisteredClaims
}

// # Token Codec

// hmacMethods maps configured algorithm identifiers to their jwt signing
// methods. Only the HMAC family is supported: the signing key is a shared
// process-wide secret, and pinning the method closes any algorithm-confusion
// fallback (an unsigned or alternately-signed token never verifies).
var hmacMethods = map[string]*jwt.SigningMethodHMAC{
	"HS256": jwt.SigningMethodHS256,
	"HS384": jwt.SigningMethodHS384,
	"HS512": jwt.SigningMethodHS512,
}

// TokenCodec encodes and decodes signed access tokens.
//
// The signing key, algorithm, and issuer are process-wide configuration fixed
// at construction time, not per-call inputs. The codec is immutable and safe
// for concurrent use.
type TokenCodec struct {
	secret    []byte
	method    *jwt.SigningMethodHMAC
	algorithm string
	issuer    string
}

// NewTokenCodec creates a TokenCodec for the given secret and algorithm
// identifier (HS256, HS384, or HS512).
//
// An empty secret or unsupported algorithm is a configuration fault and is
// rejected here, at startup, rather than on the first request.
func NewTokenCodec(secret, algorithm, issuer string) (*TokenCodec, error) {
	if secret == "" {
		return nil, fmt.Errorf("sec: signing secret must not be empty")
	}

	method, ok := hmacMethods[algorithm]
	if !ok {
		return nil, fmt.Errorf("sec: unsupported signing algorithm %q", algorithm)
	}

	return &TokenCodec{
		secret:    []byte(secret),
		method:    method,
		algorithm: algorithm,
		issuer:    issuer,
	}, nil
}

// Encode serializes a claims set (subject + expiry) into a signed, compact
// token string. The signature covers the entire claims payload.
func (codec *TokenCodec) Encode(subject string, lifetime time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    codec.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
		},
	}

	token := jwt.NewWithClaims(codec.method, claims)
	signedToken, err := token.SignedString(codec.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// Decode verifies a token string and returns its claims.
//
// # Validation Order
//
//  1. Signature — must match the configured key AND algorithm (reject as
//     [ErrTokenSignature] on mismatch).
//  2. Expiry — reject as [ErrTokenExpired] once now >= expiry.
//  3. Subject — reject as [ErrMissingSubject] when absent or empty.
//
// Each call is independent and synchronous; there are no retries.
func (codec *TokenCodec) Decode(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(token *jwt.Token) (interface{}, error) {
			return codec.secret, nil
		},
		// Pin the exact configured algorithm. Tokens signed with any other
		// method (including "none") fail before the key is even consulted.
		jwt.WithValidMethods([]string{codec.algorithm}),
	)

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, fmt.Errorf("%w: %w", ErrTokenExpired, err)
		case errors.Is(err, jwt.ErrTokenSignatureInvalid),
			errors.Is(err, jwt.ErrTokenUnverifiable):
			return nil, fmt.Errorf("%w: %w", ErrTokenSignature, err)
		default:
			return nil, fmt.Errorf("%w: %w", ErrTokenMalformed, err)
		}
	}

	if !token.Valid {
		return nil, ErrTokenMalformed
	}

	if claims.Subject == "" {
		return nil, ErrMissingSubject
	}

	return claims, nil
}

// Algorithm returns the configured signing algorithm identifier.
func (codec *TokenCodec) Algorithm() string { return codec.algorithm }
