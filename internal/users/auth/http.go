// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/locallibrary/internal/platform/middleware"
	requestutil "github.com/taibuivan/locallibrary/internal/platform/request"
	"github.com/taibuivan/locallibrary/internal/platform/respond"
	"github.com/taibuivan/locallibrary/internal/platform/sec"
)

// # Definitions & Constructors

// Handler implements the account HTTP endpoints.
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// RegisterRoutes mounts the account routes on /accounts.
//
// # Endpoints
//   - POST /login   : Authenticates and returns a JWT.
//   - GET  /profile : The caller's own account (login required).
func (handler *Handler) RegisterRoutes(router chi.Router, gatekeeper *middleware.Gatekeeper) {
	router.Post("/login", handler.login)
	router.With(gatekeeper.Require(sec.ActionViewProfile)).Get("/profile", handler.profile)
}

/*
Login authenticates an account and returns an access token.

POST /accounts/login/

Request:
  - Body: LoginInput (Username, Password)

Response:
  - 200: LoginSession: Access token and account
  - 400: Validation failure
  - 401: Invalid credentials or inactive account
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input LoginInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.authService.Login(request.Context(), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, session)
}

/*
Profile returns the authenticated caller's account.

GET /accounts/profile/
*/
func (handler *Handler) profile(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	account, err := handler.authService.Profile(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, account)
}
