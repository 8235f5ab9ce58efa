// Copyright (c) 2026 Treadstock. All rights reserved.
// Author: dev@treadstock.io

package inventory

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/treadstock/treadstock/internal/platform/request"
	"github.com/treadstock/treadstock/internal/platform/respond"
	"github.com/treadstock/treadstock/internal/platform/validate"
	"github.com/treadstock/treadstock/pkg/pagination"
)

// # Definitions & Constructors

// Handler implements the inventory HTTP endpoints.
//
// All routes sit behind the authentication middleware; the owner scoping
// every call comes from the resolved caller, never from the request.
type Handler struct {
	inventoryService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{inventoryService: service}
}

// Routes returns a [chi.Router] configured with inventory routes.
//
// # Endpoints
//   - GET    /          : Lists the caller's items (paginated).
//   - POST   /          : Creates a new item.
//   - GET    /{itemID}  : Returns one of the caller's items.
//   - PUT    /{itemID}  : Overwrites one of the caller's items.
//   - DELETE /{itemID}  : Removes one of the caller's items.
//   - POST   /generate-dummy-data : Seeds the caller's stock with demo items.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Post("/", handler.create)
	router.Post("/generate-dummy-data", handler.generateDummyData)

	router.Route("/{itemID}", func(r chi.Router) {
		r.Get("/", handler.get)
		r.Put("/", handler.update)
		r.Delete("/", handler.remove)
	})

	return router
}

// # Request Payloads

type itemRequest struct {
	Name            string     `json:"name"`
	SKU             string     `json:"sku"`
	Quantity        int        `json:"quantity"`
	Price           float64    `json:"price"`
	Brand           string     `json:"brand"`
	Model           string     `json:"model"`
	Size            string     `json:"size"`
	Type            string     `json:"type"`
	Location        string     `json:"location"`
	MinimumStock    int        `json:"minimum_stock"`
	Season          string     `json:"season"`
	SpeedRating     string     `json:"speed_rating"`
	LoadIndex       string     `json:"load_index"`
	DOT             string     `json:"dot"`
	ImageURL        string     `json:"image_url"`
	Notes           string     `json:"notes"`
	WarrantyMonths  int        `json:"warranty_months"`
	ManufactureDate *time.Time `json:"manufacture_date"`
	TreadDepth      float64    `json:"tread_depth"`
	Weight          float64    `json:"weight"`
}

// toItem maps the payload onto a domain entity owned by the caller.
func (input *itemRequest) toItem(ownerID int64) *Item {
	return &Item{
		Name:            input.Name,
		SKU:             input.SKU,
		Quantity:        input.Quantity,
		Price:           input.Price,
		Brand:           input.Brand,
		Model:           input.Model,
		Size:            input.Size,
		Type:            input.Type,
		Location:        input.Location,
		MinimumStock:    input.MinimumStock,
		Season:          input.Season,
		SpeedRating:     input.SpeedRating,
		LoadIndex:       input.LoadIndex,
		DOT:             input.DOT,
		ImageURL:        input.ImageURL,
		Notes:           input.Notes,
		WarrantyMonths:  input.WarrantyMonths,
		ManufactureDate: input.ManufactureDate,
		TreadDepth:      input.TreadDepth,
		Weight:          input.Weight,
		OwnerID:         ownerID,
	}
}

/*
List returns one page of the caller's inventory.

GET /api/v1/inventory?page=1&limit=20

Response:
  - 200: []Item with pagination metadata
  - 401: ErrUnauthorized: Missing or invalid token
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredCallerID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	items, total, err := handler.inventoryService.ListItems(request.Context(), ownerID, params.Limit, params.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if items == nil {
		items = []*Item{}
	}

	respond.Paginated(writer, items, pagination.NewMeta(params.Page, params.Limit, total))
}

/*
Create persists a new stock line for the caller.

POST /api/v1/inventory

Response:
  - 201: Item: The created item with its assigned ID
  - 400: ErrInvalidJSON: Bad input or validation failure
  - 409: ErrConflict: Caller already uses this SKU
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredCallerID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input itemRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	item := input.toItem(ownerID)
	if err := handler.inventoryService.CreateItem(request.Context(), item); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, item)
}

/*
Get returns a single item the caller owns.

GET /api/v1/inventory/{itemID}

Response:
  - 200: Item
  - 404: ErrNotFound: Absent, or held by a different account
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredCallerID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	itemID, err := requestutil.IntParam(request, "itemID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	item, err := handler.inventoryService.GetItem(request.Context(), itemID, ownerID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, item)
}

/*
Update overwrites a single item the caller owns.

PUT /api/v1/inventory/{itemID}

Response:
  - 200: Item: The updated item
  - 404: ErrNotFound: Absent, or held by a different account
  - 409: ErrConflict: New SKU collides with another of the caller's items
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredCallerID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	itemID, err := requestutil.IntParam(request, "itemID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input itemRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	item := input.toItem(ownerID)
	item.ID = itemID

	if err := handler.inventoryService.UpdateItem(request.Context(), item); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, item)
}

/*
Remove deletes a single item the caller owns.

DELETE /api/v1/inventory/{itemID}

Response:
  - 204: No Content
  - 404: ErrNotFound: Absent, or held by a different account
*/
func (handler *Handler) remove(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredCallerID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	itemID, err := requestutil.IntParam(request, "itemID")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.inventoryService.DeleteItem(request.Context(), itemID, ownerID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
GenerateDummyData seeds the caller's inventory with demo stock.

POST /api/v1/inventory/generate-dummy-data?count=20

Response:
  - 201: Summary with the number of generated items
  - 400: ErrInvalidJSON: Count outside the allowed range
*/
func (handler *Handler) generateDummyData(writer http.ResponseWriter, request *http.Request) {
	ownerID, err := requestutil.RequiredCallerID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	count := 0
	if raw := request.URL.Query().Get(FieldCount); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respond.Error(writer, request, validate.RequiredError(FieldCount, "must be a number"))
			return
		}
		count = parsed
	}

	items, err := handler.inventoryService.GenerateDummyStock(request.Context(), ownerID, count)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, map[string]any{
		FieldCount: len(items),
		"message":  strconv.Itoa(len(items)) + " items generated",
	})
}
