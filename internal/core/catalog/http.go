// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/locallibrary/internal/platform/ctxutil"
	"github.com/taibuivan/locallibrary/internal/platform/respond"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts GET / on the /catalog router.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.home)
}

func (handler *Handler) home(writer http.ResponseWriter, request *http.Request) {
	summary, err := handler.service.Summary(request.Context(), ctxutil.GetSessionID(request.Context()))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, summary)
}
