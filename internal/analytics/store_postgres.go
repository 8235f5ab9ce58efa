// Copyright (c) 2026 Treadstock. All rights reserved.
// Author: dev@treadstock.io

// PostgreSQL implementation of the analytics aggregates.
//
// All sums, groupings, and orderings run inside the database; the Go side
// only shapes rows into the dashboard payloads. Every query filters on the
// owner's account ID.
package analytics

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// trendingSizeLimit caps the "top sizes" grouping on the dashboard.
const trendingSizeLimit = 5

// PostgresStore implements the Store interface using pgx.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgreSQL implementation of the Store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

/*
DashboardMetrics computes the owner's headline aggregates.

Description: One scalar query covers totals and the low-stock count; three
grouping queries produce the type, brand, and size distributions. Items with
an empty grouping attribute are excluded from their distribution but still
count toward the totals.

Parameters:
  - context: context.Context
  - ownerID: int64 (Scoping account)

Returns:
  - *DashboardMetrics: Fully populated aggregate block
  - error: Execution errors
*/
func (store *PostgresStore) DashboardMetrics(context context.Context, ownerID int64) (*DashboardMetrics, error) {
	metrics := &DashboardMetrics{}

	const totalsQuery = `
		SELECT
			COALESCE(SUM(quantity), 0),
			COUNT(*) FILTER (WHERE minimumstock > 0 AND quantity <= minimumstock),
			COALESCE(SUM(quantity * price), 0)
		FROM core.inventory_item
		WHERE ownerid = $1`

	err := store.pool.QueryRow(context, totalsQuery, ownerID).Scan(
		&metrics.TotalInventory,
		&metrics.LowStockItems,
		&metrics.TotalValue,
	)
	if err != nil {
		return nil, fmt.Errorf("postgres_analytics_totals_failed: %w", err)
	}
	metrics.TotalValue = roundCurrency(metrics.TotalValue)

	metrics.SeasonalDistribution, err = store.distribution(context, ownerID, "type", 0)
	if err != nil {
		return nil, err
	}

	metrics.BrandDistribution, err = store.distribution(context, ownerID, "brand", 0)
	if err != nil {
		return nil, err
	}

	metrics.TrendingSizes, err = store.distribution(context, ownerID, "size", trendingSizeLimit)
	if err != nil {
		return nil, err
	}

	return metrics, nil
}

/*
Alerts returns the owner's low-stock items plus items untouched since the
staleness cutoff.

Parameters:
  - context: context.Context
  - ownerID: int64 (Scoping account)
  - staleBefore: time.Time (Items last updated at or before this are stale)

Returns:
  - *AlertReport: Both alert classes, empty slices when clean
  - error: Execution errors
*/
func (store *PostgresStore) Alerts(context context.Context, ownerID int64, staleBefore time.Time) (*AlertReport, error) {
	report := &AlertReport{
		LowStock:        []LowStockAlert{},
		NoRecentUpdates: []StaleAlert{},
	}

	const lowStockQuery = `
		SELECT id, sku, TRIM(CONCAT(brand, ' ', model)), name, quantity, minimumstock
		FROM core.inventory_item
		WHERE ownerid = $1 AND minimumstock > 0 AND quantity <= minimumstock
		ORDER BY quantity ASC`

	rows, err := store.pool.Query(context, lowStockQuery, ownerID)
	if err != nil {
		return nil, fmt.Errorf("postgres_analytics_low_stock_failed: %w", err)
	}

	report.LowStock, err = collectLowStock(rows)
	if err != nil {
		return nil, err
	}

	const staleQuery = `
		SELECT id, sku, TRIM(CONCAT(brand, ' ', model)), name, lastupdated
		FROM core.inventory_item
		WHERE ownerid = $1 AND lastupdated <= $2
		ORDER BY lastupdated ASC`

	rows, err = store.pool.Query(context, staleQuery, ownerID, staleBefore)
	if err != nil {
		return nil, fmt.Errorf("postgres_analytics_stale_failed: %w", err)
	}

	report.NoRecentUpdates, err = collectStale(rows)
	if err != nil {
		return nil, err
	}

	return report, nil
}

// # Internal Helpers

// distribution sums quantities grouped by one attribute column, skipping
// rows where the attribute is empty. A limit of 0 means unbounded.
func (store *PostgresStore) distribution(context context.Context, ownerID int64, column string, limit int) (map[string]int, error) {
	query := fmt.Sprintf(`
		SELECT %s, COALESCE(SUM(quantity), 0) AS total
		FROM core.inventory_item
		WHERE ownerid = $1 AND %s <> ''
		GROUP BY %s
		ORDER BY total DESC`, column, column, column)
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := store.pool.Query(context, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("postgres_analytics_distribution_failed for %s: %w", column, err)
	}
	defer rows.Close()

	result := make(map[string]int)
	for rows.Next() {
		var key string
		var total int
		if err := rows.Scan(&key, &total); err != nil {
			return nil, fmt.Errorf("postgres_analytics_distribution_scan_failed: %w", err)
		}
		result[key] = total
	}

	return result, nil
}

func collectLowStock(rows pgx.Rows) ([]LowStockAlert, error) {
	defer rows.Close()

	alerts := []LowStockAlert{}
	for rows.Next() {
		var alert LowStockAlert
		var display, fallback string
		err := rows.Scan(&alert.ID, &alert.SKU, &display, &fallback, &alert.Quantity, &alert.MinimumStock)
		if err != nil {
			return nil, fmt.Errorf("postgres_analytics_low_stock_scan_failed: %w", err)
		}
		alert.Name = pickName(display, fallback)
		alerts = append(alerts, alert)
	}
	return alerts, nil
}

func collectStale(rows pgx.Rows) ([]StaleAlert, error) {
	defer rows.Close()

	alerts := []StaleAlert{}
	for rows.Next() {
		var alert StaleAlert
		var display, fallback string
		err := rows.Scan(&alert.ID, &alert.SKU, &display, &fallback, &alert.LastUpdated)
		if err != nil {
			return nil, fmt.Errorf("postgres_analytics_stale_scan_failed: %w", err)
		}
		alert.Name = pickName(display, fallback)
		alerts = append(alerts, alert)
	}
	return alerts, nil
}

// pickName prefers the brand/model label and falls back to the item name.
func pickName(display, fallback string) string {
	if display != "" {
		return display
	}
	return fallback
}

// roundCurrency rounds a monetary sum to two decimal places.
func roundCurrency(value float64) float64 {
	return math.Round(value*100) / 100
}
