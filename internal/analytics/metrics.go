// Copyright (c) 2026 Treadstock. All rights reserved.
// Author: dev@treadstock.io

/*
Package analytics computes read-only aggregates over an account's inventory.

The aggregation happens inside Postgres; this package shapes the results for
the dashboard and caches the heavier metrics payload in Redis for a short,
fixed window. Like every other read in the system, aggregates are scoped to
the calling account.
*/
package analytics

import (
	"context"
	"time"
)

// DashboardMetrics is the headline aggregate block rendered on the dashboard.
type DashboardMetrics struct {
	TotalInventory       int            `json:"total_inventory"`
	LowStockItems        int            `json:"low_stock_items"`
	TotalValue           float64        `json:"total_value"`
	SeasonalDistribution map[string]int `json:"seasonal_distribution"`
	BrandDistribution    map[string]int `json:"brand_distribution"`
	TrendingSizes        map[string]int `json:"trending_sizes"`
}

// LowStockAlert flags an item whose quantity fell to or below its minimum.
type LowStockAlert struct {
	ID           int64  `json:"id"`
	SKU          string `json:"sku"`
	Name         string `json:"name"`
	Quantity     int    `json:"quantity"`
	MinimumStock int    `json:"minimum_stock"`
}

// StaleAlert flags an item that has not been touched within the staleness
// window.
type StaleAlert struct {
	ID          int64     `json:"id"`
	SKU         string    `json:"sku"`
	Name        string    `json:"name"`
	LastUpdated time.Time `json:"last_updated"`
}

// AlertReport bundles both alert classes for the alerts endpoint.
type AlertReport struct {
	LowStock        []LowStockAlert `json:"low_stock"`
	NoRecentUpdates []StaleAlert    `json:"no_recent_updates"`
}

// # Storage Contracts

// Store defines the aggregate queries the analytics service needs.
type Store interface {
	// DashboardMetrics computes the owner's headline aggregates.
	DashboardMetrics(context context.Context, ownerID int64) (*DashboardMetrics, error)

	// Alerts returns the owner's low-stock items and every item last
	// updated before the staleness cutoff.
	Alerts(context context.Context, ownerID int64, staleBefore time.Time) (*AlertReport, error)
}
