// Copyright (c) 2026 Treadstock. All rights reserved.
// Author: dev@treadstock.io

// Package pagination parses page-based navigation from query strings and
// builds the metadata block list responses carry.
package pagination

import (
	"net/http"
	"strconv"
)

const (
	// DefaultLimit is the page size when the client does not ask for one.
	DefaultLimit = 20
	// MaxLimit caps the page size a client may request.
	MaxLimit = 100
	// DefaultPage is the first page. Pages are 1-indexed.
	DefaultPage = 1
)

// Params is the sanitized page/limit pair extracted from a request.
type Params struct {
	Page  int
	Limit int
}

// Offset derives the SQL OFFSET for the current page.
func (p Params) Offset() int {
	if p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.Limit
}

// Meta is the navigation block attached to list responses.
type Meta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// NewMeta computes the page count from the total row count, rounding the
// last partial page up.
func NewMeta(page, limit, total int) Meta {
	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}
	return Meta{Page: page, Limit: limit, Total: total, TotalPages: pages}
}

// FromRequest reads "page" and "limit" from the query string. Missing,
// non-numeric, non-positive, or oversized values fall back to the defaults
// rather than erroring; pagination input is never worth a 400.
func FromRequest(r *http.Request) Params {
	page := queryInt(r, "page", DefaultPage)
	if page < 1 {
		page = DefaultPage
	}

	limit := queryInt(r, "limit", DefaultLimit)
	if limit < 1 || limit > MaxLimit {
		limit = DefaultLimit
	}

	return Params{Page: page, Limit: limit}
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
