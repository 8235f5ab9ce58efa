// Copyright (c) 2026 Treadstock. All rights reserved.
// Author: dev@treadstock.io

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/treadstock/treadstock/internal/platform/middleware"
	requestutil "github.com/treadstock/treadstock/internal/platform/request"
	"github.com/treadstock/treadstock/internal/platform/respond"
	"github.com/treadstock/treadstock/internal/platform/validate"
)

// Field names used in validation errors and response payloads.
const (
	FieldEmail    = "email"
	FieldUsername = "username"
	FieldPassword = "password"
	FieldToken    = "access_token"
	FieldType     = "token_type"
	FieldUser     = "user"
)

// # Definitions & Constructors

// Handler implements the authentication HTTP endpoints.
//
// # Scope
//
// This handler owns the user lifecycle entry points (registration, login,
// current-identity introspection). It is strictly responsible for transport
// concerns (status codes, headers, JSON).
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Routes returns a [chi.Router] configured with authentication routes.
//
// # Endpoints
//   - POST /register : Creates a new account and issues its first token.
//   - POST /login    : Authenticates and issues a fresh token.
//   - GET  /me       : Returns the authenticated caller's account.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Public endpoints
	router.Post("/register", handler.register)
	router.Post("/login", handler.login)

	// Protected endpoints
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/me", handler.me)
	})

	return router
}

// # Request Payloads

type registerRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

/*
Register handles the creation of a new account.

POST /api/v1/auth/register

Description: Validates input, checks for identity conflicts (email before
username), persists the account, and issues its first access token.

Request:
  - Body: registerRequest (Email, Username, Password)

Response:
  - 201: Credentials: Created account plus access token
  - 400: ErrInvalidJSON: Bad input or validation failure
  - 409: ErrConflict: Email or username already registered
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input registerRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldUsername, input.Username).
		MinLen(FieldUsername, input.Username, 3).
		Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, 8)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	credentials, err := handler.authService.Register(request.Context(), RegisterInput{
		Email:    input.Email,
		Username: input.Username,
		Password: input.Password,
	})

	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, map[string]any{
		FieldUser:  credentials.Account,
		FieldToken: credentials.Token,
		FieldType:  "Bearer",
	})
}

/*
Login authenticates an account and issues a fresh token.

POST /api/v1/auth/login

Description: Verifies credentials by username and constant-time password
comparison. Unknown usernames and wrong passwords are indistinguishable in
the response.

Request:
  - Body: loginRequest (Username, Password)

Response:
  - 200: Credentials: Account profile plus access token
  - 401: ErrUnauthorized: Incorrect username or password
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username)
	validator.Required(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	credentials, err := handler.authService.Login(request.Context(), input.Username, input.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		FieldUser:  credentials.Account,
		FieldToken: credentials.Token,
		FieldType:  "Bearer",
	})
}

/*
Me returns the account resolved from the caller's token.

GET /api/v1/auth/me

Description: The identity is resolved by the authentication middleware before
this handler runs; the handler only echoes the resolved account.

Response:
  - 200: Account: The authenticated caller
  - 401: ErrUnauthorized: Missing or invalid token
*/
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	caller, err := requestutil.RequiredCaller(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, caller)
}
