// Copyright (c) 2026 Treadstock. All rights reserved.
// Author: dev@treadstock.io

// PostgreSQL implementation of the inventory repository.
//
// # Error Mapping
//
// pgx.ErrNoRows and zero-row updates surface as apperr.NotFound; the
// per-owner SKU uniqueness constraint surfaces as apperr.Conflict. Listing
// uses a COUNT(*) OVER() window so one round-trip returns both the page and
// the total.
package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/treadstock/treadstock/internal/platform/apperr"
	"github.com/treadstock/treadstock/internal/platform/dberr"
)

// Unique constraint declared in the schema migration: one SKU per owner.
const constraintOwnerSKU = "inventory_item_owner_sku_key"

const itemColumns = `id, name, sku, quantity, price, brand, model, size, type,
	location, minimumstock, season, speedrating, loadindex, dot, imageurl,
	notes, warrantymonths, manufacturedate, treaddepth, weight, lastupdated, ownerid`

// PostgresRepository implements the Repository interface using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL implementation of the Repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

/*
List retrieves one page of the owner's items, newest changes first.

Parameters:
  - context: context.Context
  - ownerID: int64 (Scoping account)
  - limit: int
  - offset: int

Returns:
  - []*Item: The page of items
  - int: Total items the owner holds
  - error: Execution errors
*/
func (repository *PostgresRepository) List(context context.Context, ownerID int64, limit, offset int) ([]*Item, int, error) {
	query := fmt.Sprintf(`
		SELECT %s, COUNT(*) OVER() AS total_count
		FROM core.inventory_item
		WHERE ownerid = $1
		ORDER BY lastupdated DESC, id DESC
		LIMIT $2 OFFSET $3`, itemColumns)

	rows, err := repository.pool.Query(context, query, ownerID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(fmt.Errorf("postgres_inventory_repo_list_failed: %w", err))
	}
	defer rows.Close()

	var items []*Item
	var totalCount int

	for rows.Next() {
		item := &Item{}
		if err := scanItem(rows, item, &totalCount); err != nil {
			return nil, 0, dberr.Wrap(fmt.Errorf("postgres_inventory_repo_scan_failed: %w", err))
		}
		items = append(items, item)
	}

	return items, totalCount, nil
}

/*
FindByID retrieves a single item scoped to its owner.

Parameters:
  - context: context.Context
  - id: int64
  - ownerID: int64 (Scoping account)

Returns:
  - *Item: Hydrated item entity
  - error: apperr.NotFound when absent or owned by another account
*/
func (repository *PostgresRepository) FindByID(context context.Context, id, ownerID int64) (*Item, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM core.inventory_item
		WHERE id = $1 AND ownerid = $2`, itemColumns)

	item := &Item{}
	err := scanItem(repository.pool.QueryRow(context, query, id, ownerID), item, nil)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Item")
		}
		return nil, dberr.Wrap(fmt.Errorf("postgres_inventory_repo_find_failed: %w", err))
	}

	return item, nil
}

/*
Create persists a new item and hydrates the database-assigned ID.

Returns:
  - error: apperr.Conflict when the owner already holds the SKU
*/
func (repository *PostgresRepository) Create(context context.Context, item *Item) error {
	item.LastUpdated = time.Now()

	err := repository.pool.QueryRow(context, insertQuery, insertArgs(item)...).Scan(&item.ID)
	if err != nil {
		if dberr.IsUniqueViolation(err, constraintOwnerSKU) {
			return duplicateSKU(item.SKU)
		}
		return dberr.Wrap(fmt.Errorf("postgres_inventory_repo_create_failed: %w", err))
	}

	return nil
}

/*
CreateBatch persists many items in a single pipelined batch.

Description: Uses pgx batching to keep seed generation and bulk loads to one
network round-trip. The batch is not transactional; the first failure aborts
the remaining queued inserts.
*/
func (repository *PostgresRepository) CreateBatch(context context.Context, items []*Item) error {
	if len(items) == 0 {
		return nil
	}

	now := time.Now()
	batch := &pgx.Batch{}
	for _, item := range items {
		item.LastUpdated = now
		batch.Queue(insertQuery, insertArgs(item)...)
	}

	results := repository.pool.SendBatch(context, batch)
	defer results.Close()

	for index, item := range items {
		if err := results.QueryRow().Scan(&item.ID); err != nil {
			if dberr.IsUniqueViolation(err, constraintOwnerSKU) {
				return duplicateSKU(item.SKU)
			}
			return dberr.Wrap(fmt.Errorf("postgres_inventory_repo_batch_insert_failed at %d: %w", index, err))
		}
	}

	return nil
}

/*
Update overwrites the owner's item, refreshing the last-updated timestamp.

Returns:
  - error: apperr.NotFound on missing or foreign rows, apperr.Conflict when
    the new SKU collides with another of the owner's items
*/
func (repository *PostgresRepository) Update(context context.Context, item *Item) error {
	const query = `
		UPDATE core.inventory_item
		SET name = $1, sku = $2, quantity = $3, price = $4, brand = $5,
			model = $6, size = $7, type = $8, location = $9, minimumstock = $10,
			season = $11, speedrating = $12, loadindex = $13, dot = $14,
			imageurl = $15, notes = $16, warrantymonths = $17,
			manufacturedate = $18, treaddepth = $19, weight = $20,
			lastupdated = NOW()
		WHERE id = $21 AND ownerid = $22`

	result, err := repository.pool.Exec(context, query,
		item.Name, item.SKU, item.Quantity, item.Price, item.Brand,
		item.Model, item.Size, item.Type, item.Location, item.MinimumStock,
		item.Season, item.SpeedRating, item.LoadIndex, item.DOT,
		item.ImageURL, item.Notes, item.WarrantyMonths,
		item.ManufactureDate, item.TreadDepth, item.Weight,
		item.ID, item.OwnerID,
	)
	if err != nil {
		if dberr.IsUniqueViolation(err, constraintOwnerSKU) {
			return duplicateSKU(item.SKU)
		}
		return dberr.Wrap(fmt.Errorf("postgres_inventory_repo_update_failed: %w", err))
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("Item")
	}

	return nil
}

/*
Delete removes the owner's item.

Returns:
  - error: apperr.NotFound on missing or foreign rows
*/
func (repository *PostgresRepository) Delete(context context.Context, id, ownerID int64) error {
	const query = `DELETE FROM core.inventory_item WHERE id = $1 AND ownerid = $2`

	result, err := repository.pool.Exec(context, query, id, ownerID)
	if err != nil {
		return dberr.Wrap(fmt.Errorf("postgres_inventory_repo_delete_failed: %w", err))
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("Item")
	}

	return nil
}

/*
UpsertBySKU inserts each item or refreshes the owner's existing row for that
SKU.

Description: Backs sheet imports, where the spreadsheet is the source of
truth for stock attributes but must never resurrect a different owner's rows.
*/
func (repository *PostgresRepository) UpsertBySKU(context context.Context, items []*Item) error {
	if len(items) == 0 {
		return nil
	}

	query := insertBase + `
		ON CONFLICT (ownerid, sku) DO UPDATE
		SET name = EXCLUDED.name, quantity = EXCLUDED.quantity,
			price = EXCLUDED.price, brand = EXCLUDED.brand,
			model = EXCLUDED.model, size = EXCLUDED.size,
			type = EXCLUDED.type, location = EXCLUDED.location,
			lastupdated = NOW()
		RETURNING id`

	now := time.Now()
	batch := &pgx.Batch{}
	for _, item := range items {
		item.LastUpdated = now
		batch.Queue(query, insertArgs(item)...)
	}

	results := repository.pool.SendBatch(context, batch)
	defer results.Close()

	for index, item := range items {
		if err := results.QueryRow().Scan(&item.ID); err != nil {
			return dberr.Wrap(fmt.Errorf("postgres_inventory_repo_upsert_failed at %d: %w", index, err))
		}
	}

	return nil
}

// # Internal Helpers

const insertBase = `
	INSERT INTO core.inventory_item (
		name, sku, quantity, price, brand, model, size, type, location,
		minimumstock, season, speedrating, loadindex, dot, imageurl, notes,
		warrantymonths, manufacturedate, treaddepth, weight, lastupdated, ownerid
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11,
		$12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22
	)`

const insertQuery = insertBase + `
	RETURNING id`

func insertArgs(item *Item) []any {
	return []any{
		item.Name, item.SKU, item.Quantity, item.Price, item.Brand,
		item.Model, item.Size, item.Type, item.Location, item.MinimumStock,
		item.Season, item.SpeedRating, item.LoadIndex, item.DOT,
		item.ImageURL, item.Notes, item.WarrantyMonths,
		item.ManufactureDate, item.TreadDepth, item.Weight,
		item.LastUpdated, item.OwnerID,
	}
}

// duplicateSKU builds the field-specific conflict for an owner re-using a SKU.
func duplicateSKU(value string) *apperr.AppError {
	err := apperr.Conflict("SKU already exists in your inventory")
	err.Details = []apperr.FieldError{{Field: FieldSKU, Message: "Already in use: " + value}}
	return err
}

// scanItem hydrates one item row; totalCount is scanned when non-nil so the
// list query's window column rides along.
func scanItem(row pgx.Row, item *Item, totalCount *int) error {
	targets := []any{
		&item.ID, &item.Name, &item.SKU, &item.Quantity, &item.Price,
		&item.Brand, &item.Model, &item.Size, &item.Type, &item.Location,
		&item.MinimumStock, &item.Season, &item.SpeedRating, &item.LoadIndex,
		&item.DOT, &item.ImageURL, &item.Notes, &item.WarrantyMonths,
		&item.ManufactureDate, &item.TreadDepth, &item.Weight,
		&item.LastUpdated, &item.OwnerID,
	}
	if totalCount != nil {
		targets = append(targets, totalCount)
	}
	return row.Scan(targets...)
}
