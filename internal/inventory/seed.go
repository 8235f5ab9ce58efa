// Copyright (c) 2026 Treadstock. All rights reserved.
// Author: dev@treadstock.io

package inventory

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/treadstock/treadstock/internal/platform/validate"
	"github.com/treadstock/treadstock/pkg/sku"
)

// # Demo Stock Generation

// Bounds for a single seed request.
const (
	DefaultSeedCount = 20
	MaxSeedCount     = 500
)

// Pools the generator draws from. The size strings use the standard
// width/aspect-ratio/rim notation printed on a tire's sidewall.
var (
	seedBrands = []string{"Michelin", "Bridgestone", "Continental", "Pirelli", "Goodyear"}
	seedTypes  = []string{"All Season", "Summer", "Winter", "Performance"}
	seedSizes  = []string{"225/45R17", "215/55R16", "245/40R19", "275/35R20", "205/60R15"}

	seedModelLines = []string{
		"Pilot", "Turanza", "Premium", "Cinturato", "Eagle",
		"Primacy", "Potenza", "Sport", "Scorpion", "Vector",
	}
	seedModelCodes = []string{
		"SPORT4", "T005", "CONTACT6", "P7", "F1",
		"MXM4", "RE980", "MAXX", "VERDE", "GEN3",
	}
)

/*
GenerateDummyStock fills the owner's inventory with plausible demo items.

Description: Draws brand, type, and size from fixed pools, fabricates a
model name, and derives each SKU from the brand/model/size composition rule.
Items are written in one batch. Intended for demos and fresh environments,
not production data entry.

Parameters:
  - context: context.Context
  - ownerID: int64 (Resolved caller; owns every generated item)
  - count: int (Items to generate; 0 means DefaultSeedCount)

Returns:
  - []*Item: The generated items with assigned IDs
  - error: Validation or storage errors
*/
func (service *Service) GenerateDummyStock(context context.Context, ownerID int64, count int) ([]*Item, error) {
	if count == 0 {
		count = DefaultSeedCount
	}

	validator := &validate.Validator{}
	validator.Range(FieldCount, count, 1, MaxSeedCount)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	tag := seedBatchTag()
	items := make([]*Item, 0, count)
	for i := 0; i < count; i++ {
		items = append(items, randomItem(ownerID, fmt.Sprintf("%s%03d", tag, i)))
	}

	if err := service.items.CreateBatch(context, items); err != nil {
		return nil, err
	}

	service.logger.Info("inventory_dummy_stock_generated",
		slog.Int64("owner_id", ownerID),
		slog.Int("count", count),
	)

	return items, nil
}

// randomItem fabricates one demo item for the owner. The serial becomes the
// SKU suffix; the caller keeps serials distinct across the batch.
func randomItem(ownerID int64, serial string) *Item {
	brand := pick(seedBrands)
	size := pick(seedSizes)
	model := pick(seedModelLines) + " " + pick(seedModelCodes)

	return &Item{
		Name:         model,
		SKU:          fmt.Sprintf("%s-%s", sku.Compose(brand, model, size), serial),
		Quantity:     1 + rand.Intn(50),
		Price:        round2(100 + rand.Float64()*200),
		Brand:        brand,
		Model:        model,
		Size:         size,
		Type:         pick(seedTypes),
		Location:     fmt.Sprintf("%c%d", 'A'+rune(rand.Intn(4)), 1+rand.Intn(20)),
		MinimumStock: 2 + rand.Intn(9),
		OwnerID:      ownerID,
	}
}

// seedTagAlphabet avoids characters the Canonical form would rewrite and
// the easily-confused 0/O, 1/I/L pairs.
const seedTagAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// seedBatchTag returns the random tag shared by one generated batch. The
// tag plus the sequential serial keeps every generated SKU unique within a
// batch and collision-free across repeated seeds of the same account short
// of a tag, index, and base all matching at once.
func seedBatchTag() string {
	tag := make([]byte, 4)
	for i := range tag {
		tag[i] = seedTagAlphabet[rand.Intn(len(seedTagAlphabet))]
	}
	return string(tag)
}

func pick(pool []string) string {
	return pool[rand.Intn(len(pool))]
}

func round2(value float64) float64 {
	return float64(int(value*100+0.5)) / 100
}
