// Copyright (c) 2026 Treadstock. All rights reserved.
// Author: dev@treadstock.io

package sheets_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/treadstock/treadstock/internal/inventory"
	"github.com/treadstock/treadstock/internal/platform/apperr"
	"github.com/treadstock/treadstock/internal/sheets"
)

// fakeClient records writes and serves canned reads per range.
type fakeClient struct {
	written     map[string][][]any
	readResults map[string][][]any
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		written:     make(map[string][][]any),
		readResults: make(map[string][][]any),
	}
}

func (client *fakeClient) UpdateRange(_ context.Context, rangeName string, values [][]any) error {
	client.written[rangeName] = values
	return nil
}

func (client *fakeClient) ReadRange(_ context.Context, rangeName string) ([][]any, error) {
	return client.readResults[rangeName], nil
}

// stubItemRepo serves a fixed list and records upserts.
type stubItemRepo struct {
	listed   []*inventory.Item
	upserted []*inventory.Item
}

func (repo *stubItemRepo) List(_ context.Context, _ int64, limit, offset int) ([]*inventory.Item, int, error) {
	total := len(repo.listed)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return repo.listed[offset:end], total, nil
}

func (repo *stubItemRepo) FindByID(_ context.Context, _, _ int64) (*inventory.Item, error) {
	return nil, apperr.NotFound("Item")
}

func (repo *stubItemRepo) Create(_ context.Context, _ *inventory.Item) error { return nil }

func (repo *stubItemRepo) CreateBatch(_ context.Context, _ []*inventory.Item) error { return nil }

func (repo *stubItemRepo) Update(_ context.Context, _ *inventory.Item) error { return nil }

func (repo *stubItemRepo) Delete(_ context.Context, _, _ int64) error { return nil }

func (repo *stubItemRepo) UpsertBySKU(_ context.Context, items []*inventory.Item) error {
	repo.upserted = append(repo.upserted, items...)
	return nil
}

/*
TestService_Export verifies the exported block: header row first, one row per
item in the nine-column layout.
*/
func TestService_Export(t *testing.T) {
	client := newFakeClient()
	repo := &stubItemRepo{
		listed: []*inventory.Item{
			{ID: 1, SKU: "MICH-PILOTSPORT4-2254517", Brand: "Michelin", Model: "Pilot Sport 4",
				Size: "225/45R17", Type: "Summer", Quantity: 8, Price: 189.90, Location: "A3"},
			{ID: 2, SKU: "BRID-T005-2155516", Brand: "Bridgestone", Model: "Turanza T005",
				Size: "215/55R16", Type: "All Season", Quantity: 12, Price: 140, Location: "B7"},
		},
	}

	service := sheets.NewService(client, repo, slog.Default())

	exported, err := service.Export(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 2, exported)

	values := client.written["Inventory!A1"]
	require.Len(t, values, 3)

	assert.Equal(t, []any{"ID", "SKU", "Brand", "Model", "Size", "Type", "Quantity", "Price", "Location"}, values[0])
	assert.Equal(t, []any{int64(1), "MICH-PILOTSPORT4-2254517", "Michelin", "Pilot Sport 4",
		"225/45R17", "Summer", 8, 189.90, "A3"}, values[1])
}

/*
TestService_Import verifies row parsing, the skip rules for unusable rows,
and that imported items belong to the caller.
*/
func TestService_Import(t *testing.T) {
	client := newFakeClient()
	client.readResults["Inventory!A2:I"] = [][]any{
		{"1", "MICH-PILOTSPORT4-2254517", "Michelin", "Pilot Sport 4", "225/45R17", "Summer", "8", "189.90", "A3"},
		{"2", "BRID-T005-2155516", "Bridgestone", "Turanza T005"},             // short row
		{"3", "PIRE-P7-2254517", "Pirelli", "P7", "225/45R17", "Summer", "x", "150", "C2"}, // bad quantity
		{"4", "good-f1 2454019", "Goodyear", "Eagle F1", "245/40R19", "Performance", "5", "210.50", "D1"}, // hand-edited SKU
	}

	repo := &stubItemRepo{}
	service := sheets.NewService(client, repo, slog.Default())

	imported, skipped, err := service.Import(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 2, imported)
	assert.Equal(t, 2, skipped)

	require.Len(t, repo.upserted, 2)
	first := repo.upserted[0]
	assert.Equal(t, "MICH-PILOTSPORT4-2254517", first.SKU)
	assert.Equal(t, int64(7), first.OwnerID)
	assert.Equal(t, 8, first.Quantity)
	assert.InDelta(t, 189.90, first.Price, 0.001)
	assert.Equal(t, "Michelin Pilot Sport 4", first.Name)

	// A sloppy hand-edited cell still lands on the canonical SKU, so the
	// upsert matches the existing row instead of planting a twin.
	assert.Equal(t, "GOOD-F1-2454019", repo.upserted[1].SKU)
}

/*
TestService_RawData verifies header-keyed record conversion.
*/
func TestService_RawData(t *testing.T) {
	client := newFakeClient()
	client.readResults["Inventory!A:I"] = [][]any{
		{"ID", "SKU", "Brand"},
		{"1", "MICH-PILOTSPORT4-2254517", "Michelin"},
		{"2", "BRID-T005-2155516"}, // short row keeps only leading columns
	}

	service := sheets.NewService(client, &stubItemRepo{}, slog.Default())

	records, err := service.RawData(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "Michelin", records[0]["Brand"])
	assert.Equal(t, "BRID-T005-2155516", records[1]["SKU"])
	_, hasBrand := records[1]["Brand"]
	assert.False(t, hasBrand)
}

/*
TestService_Disabled verifies that an unconfigured mirror rejects every
operation with a 503 instead of panicking or failing obscurely.
*/
func TestService_Disabled(t *testing.T) {
	service := sheets.NewService(nil, &stubItemRepo{}, slog.Default())
	assert.False(t, service.Enabled())

	_, err := service.Export(context.Background(), 1)
	require.Error(t, err)
	assert.Equal(t, "SERVICE_UNAVAILABLE", apperr.As(err).Code)

	_, _, err = service.Import(context.Background(), 1)
	require.Error(t, err)
	assert.Equal(t, "SERVICE_UNAVAILABLE", apperr.As(err).Code)

	_, err = service.RawData(context.Background())
	require.Error(t, err)
	assert.Equal(t, "SERVICE_UNAVAILABLE", apperr.As(err).Code)
}
