// Copyright (c) 2026 Treadstock. All rights reserved.
// Author: dev@treadstock.io

package sheets

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/treadstock/treadstock/internal/platform/request"
	"github.com/treadstock/treadstock/internal/platform/respond"
)

// Handler implements the spreadsheet sync HTTP endpoints. All routes sit
// behind the authentication middleware.
type Handler struct {
	sheetsService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{sheetsService: service}
}

// Routes returns a [chi.Router] configured with sync routes.
//
// # Endpoints
//   - POST /sheets/export : Overwrites the worksheet from the caller's stock.
//   - POST /sheets/import : Upserts worksheet rows into the caller's stock.
//   - GET  /sheets/data   : Returns the raw worksheet as records.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/sheets/export", handler.export)
	router.Post("/sheets/import", handler.importSheet)
	router.Get("/sheets/data", handler.data)

	return router
}

/*
Export mirrors the caller's inventory out to the worksheet.

POST /api/v1/sync/sheets/export

Response:
  - 200: Summary with the exported item count
  - 503: ErrServiceUnavailable: Mirror not configured
*/
func (handler *Handler) export(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredCallerID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	exported, err := handler.sheetsService.Export(request.Context(), ownerID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		"exported": exported,
	})
}

/*
ImportSheet pulls worksheet rows into the caller's inventory.

POST /api/v1/sync/sheets/import

Response:
  - 200: Summary with imported and skipped row counts
  - 503: ErrServiceUnavailable: Mirror not configured
*/
func (handler *Handler) importSheet(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredCallerID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	imported, skipped, err := handler.sheetsService.Import(request.Context(), ownerID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		"imported": imported,
		"skipped":  skipped,
	})
}

/*
Data returns the worksheet contents as header-keyed records.

GET /api/v1/sync/sheets/data

Response:
  - 200: []map[string]any: One record per worksheet row
  - 503: ErrServiceUnavailable: Mirror not configured
*/
func (handler *Handler) data(writer http.ResponseWriter, request *http.Request) {
	if _, err := requestutil.RequiredCallerID(request); err != nil {
		respond.Error(writer, request, err)
		return
	}

	records, err := handler.sheetsService.RawData(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, records)
}
