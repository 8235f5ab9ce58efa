// Copyright (c) 2026 Treadstock. All rights reserved.
// Author: dev@treadstock.io

package sheets

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/treadstock/treadstock/internal/inventory"
	"github.com/treadstock/treadstock/internal/platform/apperr"
	"github.com/treadstock/treadstock/pkg/sku"
)

// Ranges and layout of the mirror worksheet. Columns A through I hold, in
// order: ID, SKU, Brand, Model, Size, Type, Quantity, Price, Location.
const (
	exportRange = "Inventory!A1"
	importRange = "Inventory!A2:I"
	dataRange   = "Inventory!A:I"

	sheetColumns = 9

	// exportPageSize bounds each database read while walking the full stock.
	exportPageSize = 500
)

var sheetHeader = []any{"ID", "SKU", "Brand", "Model", "Size", "Type", "Quantity", "Price", "Location"}

// # Service Layer

// Service synchronizes one account's inventory with the mirror spreadsheet.
type Service struct {
	client Client
	items  inventory.Repository
	logger *slog.Logger
}

// NewService constructs a new [Service]. A nil client marks the mirror as
// unconfigured; every operation then rejects with a 503.
func NewService(client Client, items inventory.Repository, logger *slog.Logger) *Service {
	return &Service{
		client: client,
		items:  items,
		logger: logger,
	}
}

// Enabled reports whether the spreadsheet mirror is configured.
func (service *Service) Enabled() bool {
	return service.client != nil
}

/*
Export overwrites the mirror worksheet with the owner's full inventory.

Description: Walks the owner's stock page by page, flattens it into the
nine-column layout, and writes header plus rows in one range update starting
at A1. Rows beyond the exported block are left untouched.

Parameters:
  - context: context.Context
  - ownerID: int64 (Resolved caller)

Returns:
  - int: Number of exported items
  - error: apperr.ServiceUnavailable when unconfigured, storage or API errors
*/
func (service *Service) Export(context context.Context, ownerID int64) (int, error) {
	if !service.Enabled() {
		return 0, errMirrorDisabled()
	}

	values := [][]any{sheetHeader}

	offset := 0
	for {
		page, _, err := service.items.List(context, ownerID, exportPageSize, offset)
		if err != nil {
			return 0, err
		}
		if len(page) == 0 {
			break
		}

		for _, item := range page {
			values = append(values, []any{
				item.ID, item.SKU, item.Brand, item.Model, item.Size,
				item.Type, item.Quantity, item.Price, item.Location,
			})
		}

		if len(page) < exportPageSize {
			break
		}
		offset += exportPageSize
	}

	if err := service.client.UpdateRange(context, exportRange, values); err != nil {
		return 0, err
	}

	exported := len(values) - 1
	service.logger.Info("sheets_export_completed",
		slog.Int64("owner_id", ownerID),
		slog.Int("items", exported),
	)

	return exported, nil
}

/*
Import upserts the mirror worksheet's rows into the owner's inventory.

Description: Reads every data row below the header and matches rows to the
owner's items by SKU; matches are overwritten, the rest inserted. Rows with
fewer than nine columns or unparsable numerics are skipped, not fatal. The
sheet's ID column is ignored — the database assigns identity.

Parameters:
  - context: context.Context
  - ownerID: int64 (Resolved caller; owns every imported row)

Returns:
  - int: Number of imported items
  - int: Number of skipped rows
  - error: apperr.ServiceUnavailable when unconfigured, storage or API errors
*/
func (service *Service) Import(context context.Context, ownerID int64) (int, int, error) {
	if !service.Enabled() {
		return 0, 0, errMirrorDisabled()
	}

	rows, err := service.client.ReadRange(context, importRange)
	if err != nil {
		return 0, 0, err
	}

	var items []*inventory.Item
	skipped := 0

	for _, row := range rows {
		item, ok := parseRow(row, ownerID)
		if !ok {
			skipped++
			continue
		}
		items = append(items, item)
	}

	if err := service.items.UpsertBySKU(context, items); err != nil {
		return 0, 0, err
	}

	service.logger.Info("sheets_import_completed",
		slog.Int64("owner_id", ownerID),
		slog.Int("items", len(items)),
		slog.Int("skipped", skipped),
	)

	return len(items), skipped, nil
}

/*
RawData returns the worksheet as header-keyed records.

Description: The first row is treated as the header; every following row
becomes one record mapping header cells to row cells. Short rows simply omit
the trailing keys.

Returns:
  - []map[string]any: One record per data row, empty when the sheet is blank
  - error: apperr.ServiceUnavailable when unconfigured, API errors
*/
func (service *Service) RawData(context context.Context) ([]map[string]any, error) {
	if !service.Enabled() {
		return nil, errMirrorDisabled()
	}

	rows, err := service.client.ReadRange(context, dataRange)
	if err != nil {
		return nil, err
	}

	records := []map[string]any{}
	if len(rows) < 2 {
		return records, nil
	}

	header := rows[0]
	for _, row := range rows[1:] {
		record := make(map[string]any, len(header))
		for index, cell := range row {
			if index >= len(header) {
				break
			}
			record[fmt.Sprint(header[index])] = cell
		}
		records = append(records, record)
	}

	return records, nil
}

// # Internal Helpers

func errMirrorDisabled() error {
	return apperr.ServiceUnavailable("Spreadsheet sync is not configured")
}

// parseRow converts one sheet row into an inventory item owned by ownerID.
// The boolean is false for rows that cannot be used.
func parseRow(row []any, ownerID int64) (*inventory.Item, bool) {
	if len(row) < sheetColumns {
		return nil, false
	}

	// Hand-edited sheet cells get the same SKU shape as API writes, so an
	// import matches the canonical row instead of planting a lowercase twin.
	item := &inventory.Item{
		SKU:      sku.Canonical(cellString(row[1])),
		Brand:    cellString(row[2]),
		Model:    cellString(row[3]),
		Size:     cellString(row[4]),
		Type:     cellString(row[5]),
		Location: cellString(row[8]),
		OwnerID:  ownerID,
	}

	if item.SKU == "" {
		return nil, false
	}

	quantity, err := strconv.Atoi(cellString(row[6]))
	if err != nil || quantity < 0 {
		return nil, false
	}
	item.Quantity = quantity

	price, err := strconv.ParseFloat(cellString(row[7]), 64)
	if err != nil || price < 0 {
		return nil, false
	}
	item.Price = price

	// The sheet has no separate name column; brand and model stand in.
	item.Name = item.DisplayName()

	return item, true
}

func cellString(cell any) string {
	if cell == nil {
		return ""
	}
	return fmt.Sprint(cell)
}
