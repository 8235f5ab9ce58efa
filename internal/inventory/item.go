// Copyright (c) 2026 Treadstock. All rights reserved.
// Author: dev@treadstock.io

/*
Package inventory implements the tire stock domain.

Every item belongs to exactly one account. All reads and writes are scoped by
the owner's numeric ID, which is always taken from the resolved identity and
never from client input. Two accounts can therefore hold the same SKU without
conflict; within one account the SKU is unique.
*/
package inventory

import "time"

// Field names used in validation errors and JSON payloads.
const (
	FieldName         = "name"
	FieldSKU          = "sku"
	FieldQuantity     = "quantity"
	FieldPrice        = "price"
	FieldMinimumStock = "minimum_stock"
	FieldCount        = "count"
)

// Item is a tire product line held in stock by one account.
//
// Name, SKU, Quantity, and Price form the required core. The remaining
// attributes are free-form tire metadata; an empty string or zero value means
// the attribute was not provided.
type Item struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	SKU          string  `json:"sku"`
	Quantity     int     `json:"quantity"`
	Price        float64 `json:"price"`
	Brand        string  `json:"brand,omitempty"`
	Model        string  `json:"model,omitempty"`
	Size         string  `json:"size,omitempty"`
	Type         string  `json:"type,omitempty"`
	Location     string  `json:"location,omitempty"`
	MinimumStock int     `json:"minimum_stock"`

	// Extended tire metadata.
	Season          string     `json:"season,omitempty"`
	SpeedRating     string     `json:"speed_rating,omitempty"`
	LoadIndex       string     `json:"load_index,omitempty"`
	DOT             string     `json:"dot,omitempty"`
	ImageURL        string     `json:"image_url,omitempty"`
	Notes           string     `json:"notes,omitempty"`
	WarrantyMonths  int        `json:"warranty_months,omitempty"`
	ManufactureDate *time.Time `json:"manufacture_date,omitempty"`
	TreadDepth      float64    `json:"tread_depth,omitempty"`
	Weight          float64    `json:"weight,omitempty"`

	LastUpdated time.Time `json:"last_updated"`
	OwnerID     int64     `json:"owner_id"`
}

// LowOnStock reports whether the item's quantity has fallen to or below its
// configured minimum.
func (item *Item) LowOnStock() bool {
	return item.MinimumStock > 0 && item.Quantity <= item.MinimumStock
}

// DisplayName combines brand and model for alert payloads, falling back to
// the item name when neither is set.
func (item *Item) DisplayName() string {
	switch {
	case item.Brand != "" && item.Model != "":
		return item.Brand + " " + item.Model
	case item.Brand != "":
		return item.Brand
	default:
		return item.Name
	}
}
