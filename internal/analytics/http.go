// Copyright (c) 2026 Treadstock. All rights reserved.
// Author: dev@treadstock.io

package analytics

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/treadstock/treadstock/internal/platform/request"
	"github.com/treadstock/treadstock/internal/platform/respond"
)

// Handler implements the analytics HTTP endpoints. Both routes are read-only
// and sit behind the authentication middleware.
type Handler struct {
	analyticsService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{analyticsService: service}
}

// Routes returns a [chi.Router] configured with analytics routes.
//
// # Endpoints
//   - GET /dashboard-metrics : Headline aggregates (cached).
//   - GET /inventory-alerts  : Low-stock and stale-item alerts (live).
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/dashboard-metrics", handler.dashboardMetrics)
	router.Get("/inventory-alerts", handler.inventoryAlerts)

	return router
}

/*
DashboardMetrics returns the caller's aggregate dashboard block.

GET /api/v1/analytics/dashboard-metrics

Response:
  - 200: DashboardMetrics
  - 401: ErrUnauthorized: Missing or invalid token
*/
func (handler *Handler) dashboardMetrics(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredCallerID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	metrics, err := handler.analyticsService.GetDashboardMetrics(request.Context(), ownerID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, metrics)
}

/*
InventoryAlerts returns the caller's low-stock and stale-item alerts.

GET /api/v1/analytics/inventory-alerts

Response:
  - 200: AlertReport
  - 401: ErrUnauthorized: Missing or invalid token
*/
func (handler *Handler) inventoryAlerts(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredCallerID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	report, err := handler.analyticsService.GetInventoryAlerts(request.Context(), ownerID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, report)
}
