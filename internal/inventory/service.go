// Copyright (c) 2026 Treadstock. All rights reserved.
// Author: dev@treadstock.io

package inventory

import (
	"context"
	"log/slog"

	"github.com/treadstock/treadstock/internal/platform/validate"
	"github.com/treadstock/treadstock/pkg/sku"
)

// # Service Layer

// Service orchestrates the business logic for inventory items.
//
// The owner ID threaded through every operation comes from the resolved
// identity; the service trusts it and the repository scopes by it.
type Service struct {
	items  Repository
	logger *slog.Logger
}

// NewService constructs a new [Service] with its repository dependency.
func NewService(items Repository, logger *slog.Logger) *Service {
	return &Service{items: items, logger: logger}
}

// # Item Operations

/*
ListItems retrieves one page of the owner's stock.

Parameters:
  - context: context.Context
  - ownerID: int64 (Resolved caller)
  - limit: int
  - offset: int

Returns:
  - []*Item: The page of items
  - int: Total items the owner holds
  - error: Storage errors
*/
func (service *Service) ListItems(context context.Context, ownerID int64, limit, offset int) ([]*Item, int, error) {
	return service.items.List(context, ownerID, limit, offset)
}

/*
GetItem retrieves a single item scoped to its owner.

Parameters:
  - context: context.Context
  - id: int64
  - ownerID: int64 (Resolved caller)

Returns:
  - *Item: The hydrated item
  - error: apperr.NotFound when absent or held by another account
*/
func (service *Service) GetItem(context context.Context, id, ownerID int64) (*Item, error) {
	return service.items.FindByID(context, id, ownerID)
}

/*
CreateItem validates and persists a new stock line for the owner.

Description: The SKU is normalized to its canonical uppercase alphanumeric
form before storage so lookups and uniqueness are insensitive to formatting.

Parameters:
  - context: context.Context
  - item: *Item (OwnerID already set from the resolved identity)

Returns:
  - error: Validation errors, apperr.Conflict on a duplicate SKU
*/
func (service *Service) CreateItem(context context.Context, item *Item) error {
	item.SKU = sku.Canonical(item.SKU)

	if err := validateItem(item); err != nil {
		return err
	}

	if err := service.items.Create(context, item); err != nil {
		return err
	}

	service.logger.Info("inventory_item_created",
		slog.Int64("item_id", item.ID),
		slog.Int64("owner_id", item.OwnerID),
		slog.String("sku", item.SKU),
	)

	return nil
}

/*
UpdateItem overwrites an existing stock line the owner holds.

Parameters:
  - context: context.Context
  - item: *Item (ID and OwnerID identify the target row)

Returns:
  - error: Validation errors, apperr.NotFound, or apperr.Conflict on a
    duplicate SKU
*/
func (service *Service) UpdateItem(context context.Context, item *Item) error {
	item.SKU = sku.Canonical(item.SKU)

	if err := validateItem(item); err != nil {
		return err
	}

	if err := service.items.Update(context, item); err != nil {
		return err
	}

	service.logger.Info("inventory_item_updated",
		slog.Int64("item_id", item.ID),
		slog.Int64("owner_id", item.OwnerID),
	)

	return nil
}

/*
DeleteItem removes a stock line the owner holds.

Parameters:
  - context: context.Context
  - id: int64
  - ownerID: int64 (Resolved caller)

Returns:
  - error: apperr.NotFound when absent or held by another account
*/
func (service *Service) DeleteItem(context context.Context, id, ownerID int64) error {
	if err := service.items.Delete(context, id, ownerID); err != nil {
		return err
	}

	service.logger.Info("inventory_item_deleted",
		slog.Int64("item_id", id),
		slog.Int64("owner_id", ownerID),
	)

	return nil
}

// # Internal Helpers

// validateItem enforces the required core fields and numeric sanity.
func validateItem(item *Item) error {
	validator := &validate.Validator{}
	validator.Required(FieldName, item.Name).
		Required(FieldSKU, item.SKU).
		NonNegative(FieldQuantity, item.Quantity).
		NonNegative(FieldMinimumStock, item.MinimumStock).
		Custom(FieldPrice, item.Price < 0, "Price cannot be negative")

	return validator.Err()
}
