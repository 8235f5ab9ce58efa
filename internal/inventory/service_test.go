// Copyright (c) 2026 Treadstock. All rights reserved.
// Author: dev@treadstock.io

package inventory_test

import (
	"context"
	"log/slog"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/treadstock/treadstock/internal/inventory"
	"github.com/treadstock/treadstock/internal/platform/apperr"
)

// memoryItemRepo is an in-memory inventory.Repository for service tests.
type memoryItemRepo struct {
	nextID int64
	items  map[int64]*inventory.Item
}

func newMemoryItemRepo() *memoryItemRepo {
	return &memoryItemRepo{items: make(map[int64]*inventory.Item)}
}

func (repo *memoryItemRepo) List(_ context.Context, ownerID int64, limit, offset int) ([]*inventory.Item, int, error) {
	var owned []*inventory.Item
	for _, item := range repo.items {
		if item.OwnerID == ownerID {
			owned = append(owned, item)
		}
	}

	total := len(owned)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return owned[offset:end], total, nil
}

func (repo *memoryItemRepo) FindByID(_ context.Context, id, ownerID int64) (*inventory.Item, error) {
	item, ok := repo.items[id]
	if !ok || item.OwnerID != ownerID {
		return nil, apperr.NotFound("Item")
	}
	copied := *item
	return &copied, nil
}

func (repo *memoryItemRepo) Create(_ context.Context, item *inventory.Item) error {
	for _, existing := range repo.items {
		if existing.OwnerID == item.OwnerID && existing.SKU == item.SKU {
			return apperr.Conflict("SKU already exists in your inventory")
		}
	}

	repo.nextID++
	item.ID = repo.nextID
	stored := *item
	repo.items[item.ID] = &stored
	return nil
}

func (repo *memoryItemRepo) CreateBatch(ctx context.Context, items []*inventory.Item) error {
	for _, item := range items {
		if err := repo.Create(ctx, item); err != nil {
			return err
		}
	}
	return nil
}

func (repo *memoryItemRepo) Update(_ context.Context, item *inventory.Item) error {
	existing, ok := repo.items[item.ID]
	if !ok || existing.OwnerID != item.OwnerID {
		return apperr.NotFound("Item")
	}
	stored := *item
	repo.items[item.ID] = &stored
	return nil
}

func (repo *memoryItemRepo) Delete(_ context.Context, id, ownerID int64) error {
	existing, ok := repo.items[id]
	if !ok || existing.OwnerID != ownerID {
		return apperr.NotFound("Item")
	}
	delete(repo.items, id)
	return nil
}

func (repo *memoryItemRepo) UpsertBySKU(ctx context.Context, items []*inventory.Item) error {
	for _, item := range items {
		var match *inventory.Item
		for _, existing := range repo.items {
			if existing.OwnerID == item.OwnerID && existing.SKU == item.SKU {
				match = existing
				break
			}
		}
		if match == nil {
			if err := repo.Create(ctx, item); err != nil {
				return err
			}
			continue
		}
		item.ID = match.ID
		stored := *item
		repo.items[item.ID] = &stored
	}
	return nil
}

func testService(t *testing.T) (*inventory.Service, *memoryItemRepo) {
	t.Helper()
	repo := newMemoryItemRepo()
	return inventory.NewService(repo, slog.Default()), repo
}

/*
TestService_CreateItem verifies validation, SKU canonicalization, and the
per-owner duplicate rejection.
*/
func TestService_CreateItem(t *testing.T) {
	service, _ := testService(t)
	ctx := context.Background()

	t.Run("success_canonicalizes_sku", func(t *testing.T) {
		item := &inventory.Item{
			Name:     "Pilot Sport 4",
			SKU:      " mich-pilotsport4-2254517 ",
			Quantity: 8,
			Price:    189.90,
			OwnerID:  1,
		}

		require.NoError(t, service.CreateItem(ctx, item))
		assert.Positive(t, item.ID)
		assert.Equal(t, "MICH-PILOTSPORT4-2254517", item.SKU)
	})

	t.Run("duplicate_sku_same_owner", func(t *testing.T) {
		dup := &inventory.Item{
			Name:     "Pilot Sport 4",
			SKU:      "MICH-PILOTSPORT4-2254517",
			Quantity: 2,
			Price:    175,
			OwnerID:  1,
		}

		err := service.CreateItem(ctx, dup)
		require.Error(t, err)

		ae := apperr.As(err)
		require.NotNil(t, ae)
		assert.Equal(t, "CONFLICT", ae.Code)
	})

	t.Run("same_sku_different_owner", func(t *testing.T) {
		other := &inventory.Item{
			Name:     "Pilot Sport 4",
			SKU:      "MICH-PILOTSPORT4-2254517",
			Quantity: 4,
			Price:    180,
			OwnerID:  2,
		}

		assert.NoError(t, service.CreateItem(ctx, other))
	})

	t.Run("validation_failures", func(t *testing.T) {
		tests := []struct {
			name string
			item *inventory.Item
		}{
			{"missing_name", &inventory.Item{SKU: "SKU-1", Quantity: 1, Price: 10, OwnerID: 1}},
			{"missing_sku", &inventory.Item{Name: "Tire", Quantity: 1, Price: 10, OwnerID: 1}},
			{"negative_quantity", &inventory.Item{Name: "Tire", SKU: "SKU-2", Quantity: -1, Price: 10, OwnerID: 1}},
			{"negative_price", &inventory.Item{Name: "Tire", SKU: "SKU-3", Quantity: 1, Price: -5, OwnerID: 1}},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				err := service.CreateItem(ctx, tt.item)
				require.Error(t, err)

				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, "VALIDATION_ERROR", ae.Code)
			})
		}
	})
}

/*
TestService_OwnerScoping verifies that reads, updates, and deletes never
cross account boundaries: a foreign item looks exactly like a missing one.
*/
func TestService_OwnerScoping(t *testing.T) {
	service, _ := testService(t)
	ctx := context.Background()

	item := &inventory.Item{Name: "Turanza T005", SKU: "BRID-T005-2155516", Quantity: 12, Price: 140, OwnerID: 1}
	require.NoError(t, service.CreateItem(ctx, item))

	t.Run("owner_reads_own_item", func(t *testing.T) {
		found, err := service.GetItem(ctx, item.ID, 1)
		require.NoError(t, err)
		assert.Equal(t, item.SKU, found.SKU)
	})

	t.Run("foreign_read_is_not_found", func(t *testing.T) {
		_, err := service.GetItem(ctx, item.ID, 2)
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	})

	t.Run("foreign_update_is_not_found", func(t *testing.T) {
		hijack := *item
		hijack.OwnerID = 2
		err := service.UpdateItem(ctx, &hijack)
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	})

	t.Run("foreign_delete_is_not_found", func(t *testing.T) {
		err := service.DeleteItem(ctx, item.ID, 2)
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)

		// The item is still there for its real owner.
		_, err = service.GetItem(ctx, item.ID, 1)
		assert.NoError(t, err)
	})
}

/*
TestService_GenerateDummyStock verifies seed bounds and the shape of
generated items.
*/
func TestService_GenerateDummyStock(t *testing.T) {
	service, repo := testService(t)
	ctx := context.Background()

	skuPattern := regexp.MustCompile(`^[A-Z]{4}-[A-Z0-9]+-[0-9]+-[A-Z2-9]{4}[0-9]{3}$`)

	t.Run("default_count", func(t *testing.T) {
		items, err := service.GenerateDummyStock(ctx, 1, 0)
		require.NoError(t, err)
		assert.Len(t, items, inventory.DefaultSeedCount)

		for _, item := range items {
			assert.Equal(t, int64(1), item.OwnerID)
			assert.Positive(t, item.Quantity)
			assert.Positive(t, item.Price)
			assert.Positive(t, item.MinimumStock)
			assert.Regexp(t, skuPattern, item.SKU)
		}
	})

	t.Run("explicit_count", func(t *testing.T) {
		items, err := service.GenerateDummyStock(ctx, 2, 5)
		require.NoError(t, err)
		assert.Len(t, items, 5)
	})

	t.Run("count_above_cap", func(t *testing.T) {
		_, err := service.GenerateDummyStock(ctx, 1, inventory.MaxSeedCount+1)
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
	})

	t.Run("negative_count", func(t *testing.T) {
		_, err := service.GenerateDummyStock(ctx, 1, -3)
		require.Error(t, err)
	})

	// The brand/model/size pools are small, so a max-size batch draws every
	// combination many times over; the serial suffix must keep the SKUs
	// distinct anyway, or the unique constraint sinks the whole batch.
	t.Run("max_batch_has_no_sku_collisions", func(t *testing.T) {
		items, err := service.GenerateDummyStock(ctx, 3, inventory.MaxSeedCount)
		require.NoError(t, err)

		seen := make(map[string]bool, len(items))
		for _, item := range items {
			assert.False(t, seen[item.SKU], "duplicate generated SKU %s", item.SKU)
			seen[item.SKU] = true
		}
	})

	// Everything landed in storage under the right owner.
	_, total, err := repo.List(ctx, 1, 1000, 0)
	require.NoError(t, err)
	assert.Equal(t, inventory.DefaultSeedCount, total)
}
