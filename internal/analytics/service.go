// Copyright (c) 2026 Treadstock. All rights reserved.
// Author: dev@treadstock.io

package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/treadstock/treadstock/internal/platform/constants"
)

// # Service Layer

// Service serves dashboard aggregates, fronting the Postgres store with a
// short-lived Redis cache.
//
// The cache is strictly an accelerator: any Redis failure degrades to a
// direct database read, never to a request failure. Entries expire on their
// TTL; inventory writes do not invalidate them, so metrics can lag stock
// changes by up to [constants.DashboardCacheTTL].
type Service struct {
	store  Store
	cache  *redis.Client
	logger *slog.Logger
}

// NewService constructs a new [Service]. A nil cache client disables caching.
func NewService(store Store, cache *redis.Client, logger *slog.Logger) *Service {
	return &Service{
		store:  store,
		cache:  cache,
		logger: logger,
	}
}

// # Dashboard Operations

/*
GetDashboardMetrics returns the owner's headline aggregates, cached per
account.

Parameters:
  - context: context.Context
  - ownerID: int64 (Resolved caller)

Returns:
  - *DashboardMetrics: Aggregate block, at most DashboardCacheTTL stale
  - error: Database errors (cache errors are absorbed)
*/
func (service *Service) GetDashboardMetrics(context context.Context, ownerID int64) (*DashboardMetrics, error) {
	key := dashboardKey(ownerID)

	if cached := service.readCache(context, key); cached != nil {
		return cached, nil
	}

	metrics, err := service.store.DashboardMetrics(context, ownerID)
	if err != nil {
		return nil, err
	}

	service.writeCache(context, key, metrics)
	return metrics, nil
}

/*
GetInventoryAlerts returns the owner's low-stock and stale-item alerts.

Description: Alerts are always computed live; stale advice about what needs
restocking defeats the purpose.

Parameters:
  - context: context.Context
  - ownerID: int64 (Resolved caller)

Returns:
  - *AlertReport: Both alert classes
  - error: Database errors
*/
func (service *Service) GetInventoryAlerts(context context.Context, ownerID int64) (*AlertReport, error) {
	staleBefore := time.Now().Add(-constants.StaleItemThreshold)
	return service.store.Alerts(context, ownerID, staleBefore)
}

// # Cache Plumbing

func dashboardKey(ownerID int64) string {
	return fmt.Sprintf("%s%d", constants.RedisPrefixDashboard, ownerID)
}

// readCache returns the cached metrics for key, or nil on miss, disabled
// cache, or any Redis/decoding problem.
func (service *Service) readCache(context context.Context, key string) *DashboardMetrics {
	if service.cache == nil {
		return nil
	}

	payload, err := service.cache.Get(context, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			service.logger.WarnContext(context, "analytics_cache_read_failed",
				slog.String("key", key),
				slog.Any("error", err),
			)
		}
		return nil
	}

	metrics := &DashboardMetrics{}
	if err := json.Unmarshal(payload, metrics); err != nil {
		service.logger.WarnContext(context, "analytics_cache_decode_failed",
			slog.String("key", key),
			slog.Any("error", err),
		)
		return nil
	}

	return metrics
}

// writeCache stores the metrics under key with the dashboard TTL. Failures
// are logged and swallowed.
func (service *Service) writeCache(context context.Context, key string, metrics *DashboardMetrics) {
	if service.cache == nil {
		return
	}

	payload, err := json.Marshal(metrics)
	if err != nil {
		service.logger.WarnContext(context, "analytics_cache_encode_failed",
			slog.String("key", key),
			slog.Any("error", err),
		)
		return
	}

	if err := service.cache.Set(context, key, payload, constants.DashboardCacheTTL).Err(); err != nil {
		service.logger.WarnContext(context, "analytics_cache_write_failed",
			slog.String("key", key),
			slog.Any("error", err),
		)
	}
}
