// Copyright (c) 2026 Treadstock. All rights reserved.
// Author: dev@treadstock.io

// Package sku generates and normalizes stock-keeping-unit codes.
//
// # Usage
//
// SKUs are the human-scannable identifiers printed on warehouse labels
// (e.g., "MICH-PILOTSPORT4-2254517"). This package handles accent removal,
// character sanitization, and the brand/model/size composition rule.
package sku

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// nonAlphanumeric matches any sequence of characters illegal in a SKU segment.
	nonAlphanumeric = regexp.MustCompile(`[^A-Z0-9]+`)
	// multiHyphen collapses multiple consecutive hyphens into one.
	multiHyphen = regexp.MustCompile(`-{2,}`)
	// nonSKU matches characters illegal in a full SKU code (hyphens allowed).
	nonSKU = regexp.MustCompile(`[^A-Z0-9-]+`)
)

// Canonical converts a full SKU code into its storage form: accent-free
// uppercase ASCII with single hyphens as the only separators.
//
// Unlike [Normalize], segment-separating hyphens survive:
//
//	Canonical(" mich-pilotsport4-2254517 ") // "MICH-PILOTSPORT4-2254517"
func Canonical(s string) string {
	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn))
	result, _, _ := transform.String(t, s)

	result = strings.ToUpper(result)
	result = nonSKU.ReplaceAllString(result, "-")
	result = multiHyphen.ReplaceAllString(result, "-")
	return strings.Trim(result, "-")
}

// Normalize converts an arbitrary Unicode string into an uppercase ASCII
// SKU segment.
//
// # Transformation Pipeline
//
// 1. Normalizes to NFD (decomposes accented chars: é → e + combining acute).
// 2. Removes combining marks (accents).
// 3. Converts to uppercase.
// 4. Strips every remaining non-alphanumeric character.
func Normalize(s string) string {
	// 1. Normalize and remove accents
	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn))
	result, _, _ := transform.String(t, s)

	// 2. Uppercase
	result = strings.ToUpper(result)

	// 3. Strip separators and symbols
	result = nonAlphanumeric.ReplaceAllString(result, "")

	return result
}

// Compose builds a tire SKU from its brand, model, and size.
//
// # Composition Rule
//
// The first four characters of the normalized brand, the full normalized
// model, and the size with its separators and radial marker stripped,
// joined by hyphens:
//
//	Compose("Michelin", "Pilot Sport 4", "225/45R17") // "MICH-PILOTSPORT4-2254517"
func Compose(brand, model, size string) string {
	brandPart := Normalize(brand)
	if len(brandPart) > 4 {
		brandPart = brandPart[:4]
	}

	sizePart := strings.ReplaceAll(Normalize(size), "R", "")

	code := brandPart + "-" + Normalize(model) + "-" + sizePart
	code = multiHyphen.ReplaceAllString(code, "-")
	return strings.Trim(code, "-")
}

// isMn reports whether r is a Unicode non-spacing mark (e.g., accents).
func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
