// Copyright (c) 2026 Treadstock. All rights reserved.
// Author: dev@treadstock.io

package inventory

import "context"

// # Storage Contracts

/*
Repository defines the persistence capabilities for inventory items.

Description: Every method that touches existing rows takes the owner's
account ID and folds it into the WHERE clause. An item belonging to another
account is indistinguishable from a missing one.
*/
type Repository interface {
	// List returns one page of the owner's items plus the total count.
	List(context context.Context, ownerID int64, limit, offset int) ([]*Item, int, error)

	// FindByID returns the owner's item, or apperr.NotFound when absent or
	// held by a different account.
	FindByID(context context.Context, id, ownerID int64) (*Item, error)

	// Create persists a new item and hydrates its assigned ID. A SKU the
	// owner already uses yields apperr.Conflict.
	Create(context context.Context, item *Item) error

	// CreateBatch persists many items in a single pipelined round-trip.
	CreateBatch(context context.Context, items []*Item) error

	// Update overwrites the owner's item and refreshes its last-updated
	// timestamp. Missing or foreign rows yield apperr.NotFound.
	Update(context context.Context, item *Item) error

	// Delete removes the owner's item. Missing or foreign rows yield
	// apperr.NotFound.
	Delete(context context.Context, id, ownerID int64) error

	// UpsertBySKU inserts each item or, when the owner already holds its
	// SKU, overwrites that row's stock attributes. Used by sheet imports.
	UpsertBySKU(context context.Context, items []*Item) error
}
